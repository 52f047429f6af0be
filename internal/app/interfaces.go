package app

import (
	"github.com/artauction/auctionapi/config"
	"github.com/artauction/auctionapi/internal/notify"
	"github.com/artauction/auctionapi/internal/repository"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// RepositoryProvider provides the entity repositories
type RepositoryProvider interface {
	Repos() *repository.Repositories
}

// EventProvider provides the domain event publisher
type EventProvider interface {
	Events() notify.Publisher
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// StatsProvider provides the latest resource usage sample
type StatsProvider interface {
	SystemStats() SystemStats
}

// AppContext combines all provider interfaces for full application context
// Handlers should depend on specific providers or this combined interface
type AppContext interface {
	DBProvider
	ConfigProvider
	RepositoryProvider
	EventProvider
	SchedulerProvider
	StatsProvider

	MigrateDB(track bool) error
	DropAll()
}
