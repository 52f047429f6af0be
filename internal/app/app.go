package app

import (
	"os"
	"runtime/debug"
	"sync/atomic"
	"time"
	_ "time/tzdata"

	"github.com/artauction/auctionapi/config"
	"github.com/artauction/auctionapi/internal/domain"
	"github.com/artauction/auctionapi/internal/notify"
	"github.com/artauction/auctionapi/internal/repository"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Application struct {
	appConfig *config.AppConfig
	gormDB    *gorm.DB
	repos     *repository.Repositories
	hub       *notify.Hub
	sched     *cron.Cron
	stats     atomic.Value // SystemStats
}

// Ensure Application implements all interfaces
var (
	_ DBProvider         = (*Application)(nil)
	_ ConfigProvider     = (*Application)(nil)
	_ RepositoryProvider = (*Application)(nil)
	_ EventProvider      = (*Application)(nil)
	_ SchedulerProvider  = (*Application)(nil)
	_ StatsProvider      = (*Application)(nil)
	_ AppContext         = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

func (a *Application) Repos() *repository.Repositories {
	return a.repos
}

func (a *Application) Events() notify.Publisher {
	return a.hub
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
	a.repos = repository.New(db)
}

// Init sets up logging, the database, notifications and background jobs.
func (a *Application) Init(cfg *config.AppConfig) error {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	logger, err := newLogger(cfg.Logger)
	if err != nil {
		return errors.Wrap(err, "init logger")
	}
	zap.ReplaceGlobals(logger)

	db, err := OpenDatabase(cfg.Database, cfg.GetDataDir())
	if err != nil {
		return err
	}
	a.OverrideDB(db)
	zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)

	if err := a.MigrateDB(cfg.Database.Debug); err != nil {
		return errors.Wrap(err, "migrate database")
	}
	a.checkSuper()
	a.checkCategories()

	if err := a.InitEvents(); err != nil {
		return err
	}
	a.initJob()
	return nil
}

// InitEvents builds the notification hub from the email and kafka settings.
func (a *Application) InitEvents() error {
	hub, err := notify.NewHub(a.appConfig)
	if err != nil {
		return errors.Wrap(err, "init notifications")
	}
	a.hub = hub
	return nil
}

func (a *Application) MigrateDB(track bool) (err error) {
	defer func() {
		if err1 := recover(); err1 != nil {
			if os.Getenv("GO_DEGUB_TRACE") != "" {
				debug.PrintStack()
			}
			err2, ok := err1.(error)
			if ok {
				err = err2
				zap.S().Error(err2.Error())
			}
		}
	}()
	db := a.gormDB
	if track {
		db = db.Debug()
	}
	return db.Migrator().AutoMigrate(domain.Tables...)
}

func (a *Application) DropAll() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		<-a.sched.Stop().Done()
	}
	if a.hub != nil {
		a.hub.Close()
	}
	if a.gormDB != nil {
		if sqlDB, err := a.gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = zap.L().Sync()
}
