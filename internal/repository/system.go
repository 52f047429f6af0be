package repository

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/artauction/auctionapi/internal/domain"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// OperatorRepository handles operator accounts
type OperatorRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.SysOpr, error)
	Add(ctx context.Context, opr *domain.SysOpr) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

type GormOperatorRepository struct {
	db *gorm.DB
}

func NewGormOperatorRepository(db *gorm.DB) *GormOperatorRepository {
	return &GormOperatorRepository{db: db}
}

func (r *GormOperatorRepository) GetByUsername(ctx context.Context, username string) (*domain.SysOpr, error) {
	var opr domain.SysOpr
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&opr).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get operator %s", username)
	}
	return &opr, nil
}

func (r *GormOperatorRepository) Add(ctx context.Context, opr *domain.SysOpr) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(opr).Error, "add operator")
}

func (r *GormOperatorRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.SysOpr{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}

// OprLogRepository handles the audit trail of mutating calls
type OprLogRepository interface {
	Add(ctx context.Context, log *domain.SysOprLog) error
	// DeleteBefore removes entries older than t and returns how many were removed
	DeleteBefore(ctx context.Context, t time.Time) (int64, error)
}

type GormOprLogRepository struct {
	db *gorm.DB
}

func NewGormOprLogRepository(db *gorm.DB) *GormOprLogRepository {
	return &GormOprLogRepository{db: db}
}

func (r *GormOprLogRepository) Add(ctx context.Context, log *domain.SysOprLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *GormOprLogRepository) DeleteBefore(ctx context.Context, t time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("opt_time < ?", t).Delete(&domain.SysOprLog{})
	return res.RowsAffected, res.Error
}
