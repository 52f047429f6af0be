package repository

import (
	"context"
	"testing"
	"time"

	"github.com/artauction/auctionapi/internal/domain"
	"github.com/artauction/auctionapi/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAllPagination(t *testing.T) {
	db := testutil.NewDB(t)
	seed := testutil.SeedCatalogue(t, db)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	all, err := repo.GetAll(ctx, Page{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, seed.ProductIDs[0], all[0].ID)

	first, err := repo.GetAll(ctx, Page{Number: 1, Size: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, seed.ProductIDs[0], first[0].ID)
	assert.Equal(t, seed.ProductIDs[1], first[1].ID)

	second, err := repo.GetAll(ctx, Page{Number: 2, Size: 2})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, seed.ProductIDs[2], second[0].ID)

	beyond, err := repo.GetAll(ctx, Page{Number: 3, Size: 2})
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestAddAndGetByID(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGormArtistRepository(db)
	ctx := context.Background()

	born := time.Date(1961, 3, 14, 0, 0, 0, 0, time.UTC)
	artist := &domain.Artist{Name: "Ode Varga", Genre: "Abstract", BirthDate: &born}
	require.NoError(t, repo.Add(ctx, artist))
	assert.NotZero(t, artist.ID)
	assert.EqualValues(t, 1, artist.Version)

	got, err := repo.GetByID(ctx, artist.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ode Varga", got.Name)
	assert.Equal(t, "Abstract", got.Genre)
	require.NotNil(t, got.BirthDate)
	assert.True(t, born.Equal(*got.BirthDate))

	_, err = repo.GetByID(ctx, artist.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	cat := &domain.Category{Name: "Sculpture"}
	require.NoError(t, repo.Add(ctx, cat))
	created := cat.CreatedAt

	t.Run("version guarded", func(t *testing.T) {
		upd := &domain.Category{Name: "Sculptures"}
		upd.Version = 1
		require.NoError(t, repo.Update(ctx, cat.ID, upd))
		assert.EqualValues(t, 2, upd.Version)

		got, err := repo.GetByID(ctx, cat.ID)
		require.NoError(t, err)
		assert.Equal(t, "Sculptures", got.Name)
		assert.EqualValues(t, 2, got.Version)
		assert.True(t, created.Equal(got.CreatedAt), "created_at is not rewritten")
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		stale := &domain.Category{Name: "Stale"}
		stale.Version = 1
		err := repo.Update(ctx, cat.ID, stale)
		assert.ErrorIs(t, err, ErrConcurrencyConflict)

		got, err := repo.GetByID(ctx, cat.ID)
		require.NoError(t, err)
		assert.Equal(t, "Sculptures", got.Name)
	})

	t.Run("zero version is last write wins", func(t *testing.T) {
		upd := &domain.Category{Name: "Bronze"}
		require.NoError(t, repo.Update(ctx, cat.ID, upd))
		got, err := repo.GetByID(ctx, cat.ID)
		require.NoError(t, err)
		assert.Equal(t, "Bronze", got.Name)
		assert.EqualValues(t, 3, got.Version)
	})

	t.Run("missing row", func(t *testing.T) {
		err := repo.Update(ctx, cat.ID+50, &domain.Category{Name: "Ghost"})
		assert.ErrorIs(t, err, ErrNotFound)
		upd := &domain.Category{Name: "Ghost"}
		upd.Version = 4
		assert.ErrorIs(t, repo.Update(ctx, cat.ID+50, upd), ErrNotFound)
	})

	t.Run("non-positive id touches nothing", func(t *testing.T) {
		other := &domain.Category{Name: "Drawing"}
		require.NoError(t, repo.Add(ctx, other))
		for _, id := range []int64{0, -1} {
			upd := &domain.Category{Name: "Overwritten"}
			upd.Version = 1
			assert.ErrorIs(t, repo.Update(ctx, id, upd), ErrNotFound)
		}
		got, err := repo.GetByID(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, "Drawing", got.Name)
	})
}

func TestDeleteIsNoOpWhenMissing(t *testing.T) {
	db := testutil.NewDB(t)
	seed := testutil.SeedCatalogue(t, db)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, 9999))

	ok, err := repo.Exists(ctx, seed.ProductIDs[0])
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.Delete(ctx, seed.ProductIDs[0]))
	ok, err = repo.Exists(ctx, seed.ProductIDs[0])
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = repo.GetByID(ctx, seed.ProductIDs[0])
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductFilters(t *testing.T) {
	db := testutil.NewDB(t)
	seed := testutil.SeedCatalogue(t, db)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	t.Run("search name", func(t *testing.T) {
		rows, err := repo.Search(ctx, "horse", Page{})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Bronze Horse", rows[0].Name)
	})

	t.Run("search description", func(t *testing.T) {
		rows, err := repo.Search(ctx, "canvas", Page{})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, seed.ProductIDs[0], rows[0].ID)
	})

	t.Run("category case insensitive", func(t *testing.T) {
		rows, err := repo.ByCategory(ctx, "PAINTING", Page{})
		require.NoError(t, err)
		assert.Len(t, rows, 3)
		rows, err = repo.ByCategory(ctx, "Drawing", Page{})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("artist", func(t *testing.T) {
		rows, err := repo.ByArtist(ctx, seed.ArtistID, Page{Number: 1, Size: 2})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("price range inclusive", func(t *testing.T) {
		rows, err := repo.ByPriceRange(ctx, decimal.NewFromInt(300), decimal.RequireFromString("1200.50"), Page{})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, seed.ProductIDs[0], rows[0].ID)
		assert.Equal(t, seed.ProductIDs[2], rows[1].ID)
		assert.True(t, rows[0].Price.Equal(decimal.RequireFromString("1200.5")))
	})
}

func TestProductPreloadsReviews(t *testing.T) {
	db := testutil.NewDB(t)
	seed := testutil.SeedCatalogue(t, db)
	products := NewGormProductRepository(db)
	reviews := NewGormReviewRepository(db)
	ctx := context.Background()

	for _, rating := range []int{5, 3} {
		require.NoError(t, reviews.Add(ctx, &domain.Review{
			ProductID:     seed.ProductIDs[1],
			ReviewerName:  "Ann",
			ReviewerEmail: "ann@example.com",
			Rating:        rating,
		}))
	}

	p, err := products.GetByID(ctx, seed.ProductIDs[1])
	require.NoError(t, err)
	require.Len(t, p.Reviews, 2)
	assert.Equal(t, 5, p.Reviews[0].Rating)

	ratings, err := reviews.Ratings(ctx, seed.ProductIDs[1])
	require.NoError(t, err)
	assert.ElementsMatch(t, []float64{5, 3}, ratings)

	byEmail, err := reviews.ByReviewerEmail(ctx, "ANN@example.com", Page{})
	require.NoError(t, err)
	assert.Len(t, byEmail, 2)

	byRating, err := reviews.ByRating(ctx, 3, Page{})
	require.NoError(t, err)
	assert.Len(t, byRating, 1)

	// deleting the product cascades to its reviews
	require.NoError(t, products.Delete(ctx, seed.ProductIDs[1]))
	left, err := reviews.ByProduct(ctx, seed.ProductIDs[1], Page{})
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestOrderItemsReplacedOnUpdate(t *testing.T) {
	db := testutil.NewDB(t)
	seed := testutil.SeedCatalogue(t, db)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	order := &domain.Order{
		CustomerName:  "Lena Park",
		CustomerEmail: "lena@example.com",
		OrderDate:     time.Now(),
		OrderStatus:   domain.OrderPending,
		TotalAmount:   decimal.NewFromInt(600),
		OrderItems: []domain.OrderItem{
			{ProductID: seed.ProductIDs[2], Quantity: 2, Price: decimal.NewFromInt(300)},
		},
	}
	require.NoError(t, repo.Add(ctx, order))
	items, err := repo.Items(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	upd := &domain.Order{
		CustomerName:  "Lena Park",
		CustomerEmail: "lena@example.com",
		OrderDate:     order.OrderDate,
		OrderStatus:   domain.OrderShipped,
		TotalAmount:   decimal.NewFromInt(6600),
		OrderItems: []domain.OrderItem{
			{ProductID: seed.ProductIDs[1], Quantity: 1, Price: decimal.NewFromInt(5400)},
			{ProductID: seed.ProductIDs[0], Quantity: 1, Price: decimal.NewFromInt(1200)},
		},
	}
	upd.Version = order.Version
	require.NoError(t, repo.Update(ctx, order.ID, upd))

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderShipped, got.OrderStatus)
	require.Len(t, got.OrderItems, 2)
	assert.Equal(t, seed.ProductIDs[1], got.OrderItems[0].ProductID)

	shipped, err := repo.ByStatus(ctx, domain.OrderShipped, Page{})
	require.NoError(t, err)
	assert.Len(t, shipped, 1)
	byEmail, err := repo.ByCustomerEmail(ctx, "Lena@Example.com", Page{})
	require.NoError(t, err)
	assert.Len(t, byEmail, 1)

	// a failed update must leave the items alone
	stale := *upd
	stale.OrderItems = nil
	stale.Version = 1
	assert.ErrorIs(t, repo.Update(ctx, order.ID, &stale), ErrConcurrencyConflict)
	items, err = repo.Items(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestEventArtistLinks(t *testing.T) {
	db := testutil.NewDB(t)
	seed := testutil.SeedCatalogue(t, db)
	events := NewGormEventRepository(db)
	artists := NewGormArtistRepository(db)
	ctx := context.Background()

	spring := &domain.Event{
		Title:     "Spring Auction",
		StartDate: time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 4, 3, 18, 0, 0, 0, time.UTC),
	}
	autumn := &domain.Event{
		Title:     "Autumn Auction",
		StartDate: time.Date(2025, 10, 1, 10, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 10, 2, 18, 0, 0, 0, time.UTC),
	}
	require.NoError(t, events.Add(ctx, spring))
	require.NoError(t, events.Add(ctx, autumn))

	inRange, err := events.ByDateRange(ctx,
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), Page{})
	require.NoError(t, err)
	require.Len(t, inRange, 1)
	assert.Equal(t, "Spring Auction", inRange[0].Title)

	require.NoError(t, events.LinkArtist(ctx, spring.ID, seed.ArtistID))
	require.NoError(t, events.LinkArtist(ctx, spring.ID, seed.ArtistID), "linking twice is harmless")

	linked, err := events.Artists(ctx, spring.ID, Page{})
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, seed.ArtistID, linked[0].ID)

	of, err := artists.Events(ctx, seed.ArtistID, Page{})
	require.NoError(t, err)
	require.Len(t, of, 1)
	assert.Equal(t, spring.ID, of[0].ID)

	removed, err := events.UnlinkArtist(ctx, spring.ID, seed.ArtistID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = events.UnlinkArtist(ctx, spring.ID, seed.ArtistID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestOprLogPurge(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGormOprLogRepository(db)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.Add(ctx, &domain.SysOprLog{OprName: "admin", OptAction: "POST", OptTime: now.AddDate(0, 0, -120)}))
	require.NoError(t, repo.Add(ctx, &domain.SysOprLog{OprName: "admin", OptAction: "PUT", OptTime: now}))

	n, err := repo.DeleteBefore(ctx, now.AddDate(0, 0, -90))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
