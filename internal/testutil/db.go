// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"testing"

	"github.com/artauction/auctionapi/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with foreign keys enforced
// and every table migrated. The database is closed when the test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would otherwise get its own empty database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

// Seed holds the ids created by SeedCatalogue.
type Seed struct {
	ArtistID   int64
	CategoryID int64
	ProductIDs []int64
}

// SeedCatalogue inserts one artist, one category and three products named
// "Sunset Over Water", "Bronze Horse" and "Blue Nude Study".
func SeedCatalogue(t testing.TB, db *gorm.DB) Seed {
	t.Helper()
	artist := domain.Artist{Name: "Mira Holt", Country: "NL"}
	artist.Version = 1
	require.NoError(t, db.Create(&artist).Error)
	category := domain.Category{Name: "Painting"}
	category.Version = 1
	require.NoError(t, db.Create(&category).Error)

	seed := Seed{ArtistID: artist.ID, CategoryID: category.ID}
	products := []struct {
		name, desc string
		price      string
	}{
		{"Sunset Over Water", "Oil on canvas", "1200.50"},
		{"Bronze Horse", "Cast bronze sculpture", "5400"},
		{"Blue Nude Study", "Charcoal and pastel", "300"},
	}
	for _, p := range products {
		row := domain.Product{
			ArtistID:    artist.ID,
			CategoryID:  category.ID,
			Name:        p.name,
			Description: p.desc,
			Price:       decimal.RequireFromString(p.price),
		}
		row.Version = 1
		require.NoError(t, db.Create(&row).Error)
		seed.ProductIDs = append(seed.ProductIDs, row.ID)
	}
	return seed
}
