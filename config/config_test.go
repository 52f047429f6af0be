package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err, "jwt key has no default")

	t.Setenv("AUCTION_JWT_KEY", "unit-test-key")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "unit-test-key", cfg.Jwt.Key)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 587, cfg.Email.SmtpPort)
	assert.Equal(t, "Auction Service", cfg.Email.FromName)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "auctionapi.yml")
	require.NoError(t, os.WriteFile(file, []byte(`
web:
  port: 9090
database:
  type: postgres
  host: db.internal
jwt:
  key: secret
ratelimit:
  store: redis
`), 0o600))

	cfg, err := LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "redis", cfg.RateLimit.Store)
	// untouched sections keep their defaults
	assert.Equal(t, "Auction Notification", cfg.Email.Subject)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg := *DefaultAppConfig
	err := applyEnv(&cfg, []string{
		"AUCTION_WEB_PORT=8181",
		"AUCTION_JWT_ENABLED=false",
		"AUCTION_JWT_EXPIRE_HOURS=2",
		"AUCTION_RATELIMIT_RATE=2.5",
		"AUCTION_KAFKA_BROKERS=k1:9092,k2:9092",
		"AUCTION_EMAIL_FROM_NAME=Gallery",
		"AUCTION_WEB_TRUSTED_PROXIES=10.0.0.0/8,192.168.1.1",
		"PATH=/usr/bin",
		"AUCTION_CONFIG=/etc/auction.yml",
	})
	require.NoError(t, err)
	assert.Equal(t, 8181, cfg.Web.Port)
	assert.False(t, cfg.Jwt.Enabled)
	assert.Equal(t, 2, cfg.Jwt.ExpireHours)
	assert.Equal(t, 2.5, cfg.RateLimit.Rate)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "Gallery", cfg.Email.FromName)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.Web.TrustedProxies)
	assert.Equal(t, "0.0.0.0", cfg.Web.Host)
	assert.Equal(t, []string{"localhost:9092"}, DefaultAppConfig.Kafka.Brokers)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *AppConfig)
		ok     bool
	}{
		{"defaults", func(c *AppConfig) {}, true},
		{"bad database", func(c *AppConfig) { c.Database.Type = "oracle" }, false},
		{"jwt without key", func(c *AppConfig) { c.Jwt.Key = " " }, false},
		{"jwt disabled without key", func(c *AppConfig) { c.Jwt.Enabled = false; c.Jwt.Key = "" }, true},
		{"bad store", func(c *AppConfig) { c.RateLimit.Store = "etcd" }, false},
		{"bad port", func(c *AppConfig) { c.Web.Port = 0 }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := *DefaultAppConfig
			cfg.Jwt.Key = "k"
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
