package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/artauction/auctionapi/config"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dialector picks the gorm driver for the configured database type.
// Relative sqlite names live under datadir.
func dialector(cfg config.DBConfig, datadir string) (gorm.Dialector, error) {
	switch cfg.Type {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			cfg.Host, cfg.Port, cfg.User, cfg.Passwd, cfg.Name)
		return postgres.Open(dsn), nil
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.User, cfg.Passwd, cfg.Host, cfg.Port, cfg.Name)
		return mysql.Open(dsn), nil
	case "sqlite", "":
		return sqlite.Open(sqliteDSN(cfg.Name, datadir)), nil
	default:
		return nil, errors.Errorf("unsupported database type %q", cfg.Type)
	}
}

func sqliteDSN(name, datadir string) string {
	if name == "" {
		name = "auction.db"
	}
	if name != ":memory:" && !strings.HasPrefix(name, "file:") && !filepath.IsAbs(name) {
		name = filepath.Join(datadir, name)
	}
	sep := "?"
	if strings.Contains(name, "?") {
		sep = "&"
	}
	return name + sep + "_foreign_keys=on"
}

// OpenDatabase connects to the configured database and sizes its pool.
func OpenDatabase(cfg config.DBConfig, datadir string) (*gorm.DB, error) {
	d, err := dialector(cfg, datadir)
	if err != nil {
		return nil, err
	}
	level := logger.Warn
	if cfg.Debug {
		level = logger.Info
	}
	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(level),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", cfg.Type)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql handle")
	}
	if cfg.Type == "sqlite" && cfg.Name == ":memory:" {
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}
	if cfg.MaxConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
	}
	if cfg.IdleConn > 0 {
		sqlDB.SetMaxIdleConns(cfg.IdleConn)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}
