package config

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables that override file settings,
// e.g. AUCTION_DATABASE_HOST or AUCTION_JWT_KEY.
const EnvPrefix = "AUCTION_"

type SysConfig struct {
	Appid              string `yaml:"appid"`
	Location           string `yaml:"location"`
	Workdir            string `yaml:"workdir"`
	Debug              bool   `yaml:"debug"`
	AuditRetentionDays int    `yaml:"audit_retention_days"`
}

type WebConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	ReadTimeout  int    `yaml:"read_timeout"`
	WriteTimeout int    `yaml:"write_timeout"`
	Metrics      bool   `yaml:"metrics"` // expose /metrics for Prometheus
	// TrustedProxies lists the proxy addresses or CIDRs whose
	// X-Forwarded-For is believed. Empty means the peer address is the client.
	TrustedProxies []string `yaml:"trusted_proxies"`
}

type DBConfig struct {
	Type     string `yaml:"type"` // sqlite, postgres or mysql
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type JwtConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Key           string `yaml:"key"`
	Issuer        string `yaml:"issuer"`
	Audience      string `yaml:"audience"`
	ExpireHours   int    `yaml:"expire_hours"`
	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`
}

type RateLimitConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Store         string  `yaml:"store"` // memory or redis
	Rate          float64 `yaml:"rate"`  // requests per second for the memory store
	Burst         int     `yaml:"burst"`
	ExpiresIn     int     `yaml:"expires_in"` // seconds
	Requests      int     `yaml:"requests"`   // requests per window for the redis store
	Window        int     `yaml:"window"`     // seconds
	RedisAddr     string  `yaml:"redis_addr"`
	RedisPassword string  `yaml:"redis_password"`
	RedisDB       int     `yaml:"redis_db"`
}

type EmailConfig struct {
	Enabled      bool   `yaml:"enabled"`
	SmtpServer   string `yaml:"smtp_server"`
	SmtpPort     int    `yaml:"smtp_port"`
	SmtpUser     string `yaml:"smtp_user"`
	SmtpPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
	FromName     string `yaml:"from_name"`
	Subject      string `yaml:"subject"`
	Workers      int    `yaml:"workers"`
}

type KafkaConfig struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type AppConfig struct {
	System    SysConfig       `yaml:"system"`
	Web       WebConfig       `yaml:"web"`
	Database  DBConfig        `yaml:"database"`
	Logger    LogConfig       `yaml:"logger"`
	Jwt       JwtConfig       `yaml:"jwt"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
	Email     EmailConfig     `yaml:"email"`
	Kafka     KafkaConfig     `yaml:"kafka"`
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

func (c *AppConfig) initDirs() {
	_ = os.MkdirAll(c.GetLogDir(), 0o755)
	_ = os.MkdirAll(c.GetDataDir(), 0o755)
}

// Validate reports settings that would leave the server unusable.
func (c *AppConfig) Validate() error {
	switch c.Database.Type {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database type %q", c.Database.Type)
	}
	if c.Jwt.Enabled && strings.TrimSpace(c.Jwt.Key) == "" {
		return errors.New("jwt.key is required when jwt is enabled")
	}
	switch c.RateLimit.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported ratelimit store %q", c.RateLimit.Store)
	}
	if c.Web.Port <= 0 || c.Web.Port > 65535 {
		return fmt.Errorf("invalid web port %d", c.Web.Port)
	}
	return nil
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:              "ArtAuction",
		Location:           "UTC",
		Workdir:            "/var/auctionapi",
		Debug:              false,
		AuditRetentionDays: 90,
	},
	Web: WebConfig{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30,
		WriteTimeout: 30,
		Metrics:      true,
	},
	Database: DBConfig{
		Type:     "sqlite",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "auction.db",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/auctionapi/logs/auctionapi.log",
	},
	Jwt: JwtConfig{
		Enabled:       true,
		Issuer:        "auctionapi",
		Audience:      "auctionapi",
		ExpireHours:   24,
		AdminUsername: "admin",
		AdminPassword: "auctionadmin",
	},
	RateLimit: RateLimitConfig{
		Enabled:   true,
		Store:     "memory",
		Rate:      10,
		Burst:     30,
		ExpiresIn: 180,
		Requests:  600,
		Window:    60,
		RedisAddr: "127.0.0.1:6379",
	},
	Email: EmailConfig{
		SmtpPort: 587,
		FromName: "Auction Service",
		Subject:  "Auction Notification",
		Workers:  4,
	},
	Kafka: KafkaConfig{
		Brokers: []string{"localhost:9092"},
		Topic:   "auction-events",
	},
}

// LoadConfig reads the YAML file at cfile over the defaults and then applies
// AUCTION_* environment overrides. An empty cfile skips the file step.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := *DefaultAppConfig
	cfg.Kafka.Brokers = append([]string(nil), DefaultAppConfig.Kafka.Brokers...)
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		if err != nil {
			return nil, errors.Wrapf(err, "read config file %s", cfile)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config file %s", cfile)
		}
	}
	if err := applyEnv(&cfg, os.Environ()); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoadConfig is LoadConfig for main packages; it panics on error and
// creates the working directories.
func MustLoadConfig(cfile string) *AppConfig {
	cfg, err := LoadConfig(cfile)
	if err != nil {
		panic(err)
	}
	cfg.initDirs()
	return cfg
}

// applyEnv maps AUCTION_SECTION_KEY=value pairs onto cfg. The first segment
// after the prefix selects the section, the rest is the yaml key.
func applyEnv(cfg *AppConfig, environ []string) error {
	overrides := map[string]interface{}{}
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		section, key, ok := strings.Cut(strings.ToLower(strings.TrimPrefix(name, EnvPrefix)), "_")
		if !ok || key == "" {
			continue
		}
		sub, _ := overrides[section].(map[string]interface{})
		if sub == nil {
			sub = map[string]interface{}{}
			overrides[section] = sub
		}
		sub[key] = value
	}
	if len(overrides) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "yaml",
		WeaklyTypedInput: true,
		ZeroFields:       true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		Result:           cfg,
	})
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.Wrap(decoder.Decode(overrides), "apply environment overrides")
}
