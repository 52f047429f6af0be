package repository

import (
	"context"
	"time"

	"github.com/artauction/auctionapi/internal/domain"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository interface {
	CRUD[domain.Event]
	// ByDateRange returns events that start on or after start and end on or before end
	ByDateRange(ctx context.Context, start, end time.Time, page Page) ([]domain.Event, error)
	// Artists returns the artists linked to the event
	Artists(ctx context.Context, eventID int64, page Page) ([]domain.Artist, error)
	// LinkArtist is idempotent
	LinkArtist(ctx context.Context, eventID, artistID int64) error
	// UnlinkArtist reports whether a link was removed
	UnlinkArtist(ctx context.Context, eventID, artistID int64) (bool, error)
}

type GormEventRepository struct {
	gormStore[domain.Event, *domain.Event]
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{gormStore[domain.Event, *domain.Event]{db: db, name: "event"}}
}

func (r *GormEventRepository) ByDateRange(ctx context.Context, start, end time.Time, page Page) ([]domain.Event, error) {
	return r.find(ctx, page, func(db *gorm.DB) *gorm.DB {
		return db.Where("start_date >= ? AND end_date <= ?", start.UTC(), end.UTC())
	})
}

func (r *GormEventRepository) Artists(ctx context.Context, eventID int64, page Page) ([]domain.Artist, error) {
	var rows []domain.Artist
	links := r.db.Model(&domain.EventArtist{}).Select("artist_id").Where("event_id = ?", eventID)
	err := r.db.WithContext(ctx).
		Where("id IN (?)", links).
		Scopes(byID, page.scope).
		Find(&rows).Error
	return rows, errors.Wrapf(err, "query artists of event %d", eventID)
}

func (r *GormEventRepository) LinkArtist(ctx context.Context, eventID, artistID int64) error {
	link := domain.EventArtist{EventID: eventID, ArtistID: artistID}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
	return errors.Wrapf(err, "link artist %d to event %d", artistID, eventID)
}

func (r *GormEventRepository) UnlinkArtist(ctx context.Context, eventID, artistID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("event_id = ? AND artist_id = ?", eventID, artistID).
		Delete(&domain.EventArtist{})
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "unlink artist %d from event %d", artistID, eventID)
	}
	return res.RowsAffected > 0, nil
}
