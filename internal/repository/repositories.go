package repository

import "gorm.io/gorm"

// Repositories bundles the data access objects handed to the HTTP layer.
type Repositories struct {
	Artists    ArtistRepository
	Events     EventRepository
	Products   ProductRepository
	Categories CategoryRepository
	Orders     OrderRepository
	Reviews    ReviewRepository
	Operators  OperatorRepository
	OprLogs    OprLogRepository
}

func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Artists:    NewGormArtistRepository(db),
		Events:     NewGormEventRepository(db),
		Products:   NewGormProductRepository(db),
		Categories: NewGormCategoryRepository(db),
		Orders:     NewGormOrderRepository(db),
		Reviews:    NewGormReviewRepository(db),
		Operators:  NewGormOperatorRepository(db),
		OprLogs:    NewGormOprLogRepository(db),
	}
}

var (
	_ ArtistRepository   = (*GormArtistRepository)(nil)
	_ EventRepository    = (*GormEventRepository)(nil)
	_ ProductRepository  = (*GormProductRepository)(nil)
	_ CategoryRepository = (*GormCategoryRepository)(nil)
	_ OrderRepository    = (*GormOrderRepository)(nil)
	_ ReviewRepository   = (*GormReviewRepository)(nil)
	_ OperatorRepository = (*GormOperatorRepository)(nil)
	_ OprLogRepository   = (*GormOprLogRepository)(nil)
)
