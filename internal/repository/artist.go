package repository

import (
	"context"

	"github.com/artauction/auctionapi/internal/domain"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ArtistRepository interface {
	CRUD[domain.Artist]
	// Events returns the events the artist takes part in
	Events(ctx context.Context, artistID int64, page Page) ([]domain.Event, error)
}

type GormArtistRepository struct {
	gormStore[domain.Artist, *domain.Artist]
}

func NewGormArtistRepository(db *gorm.DB) *GormArtistRepository {
	return &GormArtistRepository{gormStore[domain.Artist, *domain.Artist]{db: db, name: "artist"}}
}

func (r *GormArtistRepository) Events(ctx context.Context, artistID int64, page Page) ([]domain.Event, error) {
	var rows []domain.Event
	links := r.db.Model(&domain.EventArtist{}).Select("event_id").Where("artist_id = ?", artistID)
	err := r.db.WithContext(ctx).
		Where("id IN (?)", links).
		Scopes(byID, page.scope).
		Find(&rows).Error
	return rows, errors.Wrapf(err, "query events of artist %d", artistID)
}
