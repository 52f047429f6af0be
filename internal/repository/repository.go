package repository

import (
	"context"
	stderrors "errors"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = stderrors.New("record not found")
	// ErrConcurrencyConflict is returned when an update lost a race against
	// another writer of the same row.
	ErrConcurrencyConflict = stderrors.New("concurrency conflict")
)

// Page is an optional skip/take window. The zero value selects every row.
type Page struct {
	Number int
	Size   int
}

func (p Page) Enabled() bool {
	return p.Number > 0 && p.Size > 0
}

func (p Page) scope(db *gorm.DB) *gorm.DB {
	if !p.Enabled() {
		return db
	}
	return db.Offset((p.Number - 1) * p.Size).Limit(p.Size)
}

// CRUD is the data access contract shared by every entity repository.
type CRUD[T any] interface {
	// GetAll returns rows ordered by id, optionally windowed by page
	GetAll(ctx context.Context, page Page) ([]T, error)
	// GetByID returns ErrNotFound when no row has the id
	GetByID(ctx context.Context, id int64) (*T, error)
	// Add inserts the entity and fills in its id
	Add(ctx context.Context, entity *T) error
	// Update replaces the row wholesale
	Update(ctx context.Context, id int64, entity *T) error
	// Delete removes the row; a missing row is not an error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type record interface {
	PrimaryKey() int64
	SetPrimaryKey(id int64)
	Revision() int64
	SetRevision(v int64)
}

type scope = func(*gorm.DB) *gorm.DB

func byID(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: clause.PrimaryKey}})
}

// gormStore implements CRUD for any entity embedding domain.Model.
type gormStore[T any, P interface {
	*T
	record
}] struct {
	db       *gorm.DB
	name     string
	preloads []string
}

func (s *gormStore[T, P]) query(ctx context.Context) *gorm.DB {
	q := s.db.WithContext(ctx)
	for _, p := range s.preloads {
		q = q.Preload(p, byID)
	}
	return q
}

func (s *gormStore[T, P]) find(ctx context.Context, page Page, scopes ...scope) ([]T, error) {
	var rows []T
	err := s.query(ctx).Scopes(scopes...).Scopes(byID, page.scope).Find(&rows).Error
	if err != nil {
		return nil, errors.Wrapf(err, "query %s", s.name)
	}
	return rows, nil
}

func (s *gormStore[T, P]) GetAll(ctx context.Context, page Page) ([]T, error) {
	return s.find(ctx, page)
}

func (s *gormStore[T, P]) GetByID(ctx context.Context, id int64) (*T, error) {
	var row T
	err := s.query(ctx).First(&row, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get %s %d", s.name, id)
	}
	return &row, nil
}

func (s *gormStore[T, P]) Add(ctx context.Context, entity *T) error {
	P(entity).SetPrimaryKey(0)
	P(entity).SetRevision(1)
	return errors.Wrapf(s.db.WithContext(ctx).Create(entity).Error, "add %s", s.name)
}

func (s *gormStore[T, P]) Update(ctx context.Context, id int64, entity *T) error {
	return s.update(s.db.WithContext(ctx), id, entity)
}

// update writes every column of entity guarded by its version. A zero
// version means the caller did not read the row first; the current
// version is looked up so the write still fails if the row changes
// between the two statements.
func (s *gormStore[T, P]) update(db *gorm.DB, id int64, entity *T) error {
	// a zero key would drop the id predicate from the UPDATE
	if id <= 0 {
		return ErrNotFound
	}
	rec := P(entity)
	rec.SetPrimaryKey(id)
	expected := rec.Revision()
	if expected == 0 {
		var current T
		err := db.Select("version").Where("id = ?", id).Take(&current).Error
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return errors.Wrapf(err, "read %s %d", s.name, id)
		}
		expected = P(&current).Revision()
	}
	rec.SetRevision(expected + 1)

	res := db.Model(entity).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Where("version = ?", expected).
		Updates(entity)
	if res.Error != nil {
		rec.SetRevision(expected)
		return errors.Wrapf(res.Error, "update %s %d", s.name, id)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	rec.SetRevision(expected)
	var count int64
	if err := db.Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return errors.Wrapf(err, "update %s %d", s.name, id)
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrConcurrencyConflict
}

func (s *gormStore[T, P]) Delete(ctx context.Context, id int64) error {
	return errors.Wrapf(s.db.WithContext(ctx).Delete(new(T), id).Error, "delete %s %d", s.name, id)
}

func (s *gormStore[T, P]) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, errors.Wrapf(err, "check %s %d", s.name, id)
	}
	return count > 0, nil
}
