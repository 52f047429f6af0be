package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/artauction/auctionapi/config"
	"github.com/artauction/auctionapi/internal/domain"
	"github.com/artauction/auctionapi/internal/repository"
	"github.com/artauction/auctionapi/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestApp(t *testing.T) *Application {
	t.Helper()
	cfg := *config.DefaultAppConfig
	cfg.Jwt.Key = "test"
	a := NewApplication(&cfg)
	a.OverrideDB(testutil.NewDB(t))
	return a
}

func TestCheckSuper(t *testing.T) {
	a := newTestApp(t)
	a.checkSuper()

	opr, err := a.Repos().Operators.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.ENABLED, opr.Status)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(opr.Password), []byte("auctionadmin")))

	// a disabled admin is re-enabled without touching the password
	require.NoError(t, a.DB().Model(&domain.SysOpr{}).Where("id = ?", opr.ID).Update("status", domain.DISABLED).Error)
	a.checkSuper()
	repaired, err := a.Repos().Operators.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.ENABLED, repaired.Status)
	assert.Equal(t, opr.Password, repaired.Password)

	var count int64
	a.DB().Model(&domain.SysOpr{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCheckCategories(t *testing.T) {
	a := newTestApp(t)
	a.checkCategories()
	a.checkCategories()

	cats, err := a.Repos().Categories.GetAll(context.Background(), repository.Page{})
	require.NoError(t, err)
	require.Len(t, cats, len(DefaultCategories))
	assert.Equal(t, "Painting", cats[0].Name)
	assert.Equal(t, int64(1), cats[0].Version)
}

func TestSchedClearAuditLog(t *testing.T) {
	a := newTestApp(t)
	now := time.Now()
	old := domain.SysOprLog{OprName: "admin", OptAction: "DELETE", OptTime: now.AddDate(0, 0, -400)}
	fresh := domain.SysOprLog{OprName: "admin", OptAction: "POST", OptTime: now.AddDate(0, 0, -1)}
	require.NoError(t, a.DB().Create(&old).Error)
	require.NoError(t, a.DB().Create(&fresh).Error)

	assert.Equal(t, int64(1), a.SchedClearAuditLog(now))

	a.appConfig.System.AuditRetentionDays = 0
	assert.Equal(t, int64(0), a.SchedClearAuditLog(now))
}

func TestSystemStats(t *testing.T) {
	a := newTestApp(t)
	assert.Positive(t, a.SystemStats().Goroutines)

	a.SchedSystemMonitorTask()
	s := a.SystemStats()
	assert.False(t, s.SampledAt.IsZero())
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, filepath.Join("/data", "auction.db")+"?_foreign_keys=on", sqliteDSN("", "/data"))
	assert.Equal(t, ":memory:?_foreign_keys=on", sqliteDSN(":memory:", "/data"))
	assert.Equal(t, "/abs/x.db?_foreign_keys=on", sqliteDSN("/abs/x.db", "/data"))
	assert.Equal(t, "file:x.db?cache=shared&_foreign_keys=on", sqliteDSN("file:x.db?cache=shared", "/data"))
}

func TestOpenDatabase(t *testing.T) {
	_, err := OpenDatabase(config.DBConfig{Type: "oracle"}, t.TempDir())
	assert.Error(t, err)

	db, err := OpenDatabase(config.DBConfig{Type: "sqlite", Name: "test.db"}, t.TempDir())
	require.NoError(t, err)
	a := NewApplication(config.DefaultAppConfig)
	a.OverrideDB(db)
	require.NoError(t, a.MigrateDB(false))
	assert.True(t, db.Migrator().HasTable(&domain.Product{}))
	a.DropAll()
	assert.False(t, db.Migrator().HasTable(&domain.Product{}))
	sqlDB, _ := db.DB()
	_ = sqlDB.Close()
}
