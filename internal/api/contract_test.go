package api

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/artauction/auctionapi/internal/domain"
	"github.com/artauction/auctionapi/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateThenGetReturnsInput(t *testing.T) {
	env := newSeededEnv(t)
	born := time.Date(1961, 4, 12, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	t.Run("artist", func(t *testing.T) {
		in := dto.CreateArtistDTO{
			Name: "Lena Voss", Bio: "Painter of harbours", Genre: "Realism", Country: "DE",
			BirthDate: &born, WebsiteUrl: "https://voss.example", SocialMediaLinks: "@lenavoss",
		}
		rec := env.create("/api/Artists", in)
		out := decode[dto.ArtistDTO](t, rec)
		assert.Equal(t, fmt.Sprintf("/api/Artists/%d", out.ID), rec.Header().Get("Location"))

		got := decode[dto.ArtistDTO](t, env.do(http.MethodGet, rec.Header().Get("Location"), nil))
		assert.Equal(t, in.Name, got.Name)
		assert.Equal(t, in.Bio, got.Bio)
		assert.Equal(t, in.Genre, got.Genre)
		assert.Equal(t, in.Country, got.Country)
		assert.Equal(t, in.WebsiteUrl, got.WebsiteUrl)
		assert.Equal(t, in.SocialMediaLinks, got.SocialMediaLinks)
		require.NotNil(t, got.BirthDate)
		assert.True(t, born.Equal(*got.BirthDate))
		assert.Nil(t, got.DeathDate)
		assert.Equal(t, int64(1), got.Version)
	})

	t.Run("category", func(t *testing.T) {
		rec := env.create("/api/Categories", dto.CreateCategoryDTO{Name: "Ceramics"})
		got := decode[dto.CategoryDTO](t, env.do(http.MethodGet, rec.Header().Get("Location"), nil))
		assert.Equal(t, "Ceramics", got.Name)
	})

	t.Run("event", func(t *testing.T) {
		in := dto.CreateEventDTO{
			Title: "Summer Sale", Description: "Evening auction", Location: "Rotterdam",
			StartDate: start, EndDate: start.Add(4 * time.Hour),
		}
		rec := env.create("/api/Events", in)
		got := decode[dto.EventDTO](t, env.do(http.MethodGet, rec.Header().Get("Location"), nil))
		assert.Equal(t, in.Title, got.Title)
		assert.Equal(t, in.Location, got.Location)
		assert.True(t, in.StartDate.Equal(got.StartDate))
		assert.True(t, in.EndDate.Equal(got.EndDate))
	})

	t.Run("product", func(t *testing.T) {
		in := dto.CreateProductDTO{
			ArtistID: env.seed.ArtistID, CategoryID: env.seed.CategoryID,
			Name: "Harbour at Dusk", Description: "Oil on linen", Price: decimal.RequireFromString("250.75"),
		}
		rec := env.create("/api/Products", in)
		got := decode[dto.ProductDTO](t, env.do(http.MethodGet, rec.Header().Get("Location"), nil))
		assert.Equal(t, in.Name, got.Name)
		assert.Equal(t, in.Description, got.Description)
		assert.Equal(t, in.ArtistID, got.ArtistID)
		assert.Equal(t, in.CategoryID, got.CategoryID)
		assert.True(t, in.Price.Equal(got.Price), got.Price.String())
		assert.NotNil(t, got.Reviews)
	})

	t.Run("review", func(t *testing.T) {
		in := dto.CreateReviewDTO{
			ProductID: env.seed.ProductIDs[0], ReviewerName: "Sam", ReviewerEmail: "sam@example.com",
			Comment: "Stunning colours", Rating: 5,
		}
		rec := env.create("/api/Reviews", in)
		got := decode[dto.ReviewDTO](t, env.do(http.MethodGet, rec.Header().Get("Location"), nil))
		assert.Equal(t, in.ProductID, got.ProductID)
		assert.Equal(t, in.ReviewerName, got.ReviewerName)
		assert.Equal(t, in.ReviewerEmail, got.ReviewerEmail)
		assert.Equal(t, in.Comment, got.Comment)
		assert.Equal(t, in.Rating, got.Rating)
	})

	t.Run("order", func(t *testing.T) {
		in := dto.CreateOrderDTO{
			CustomerName: "Ada Park", CustomerEmail: "ada@example.com", OrderDate: start,
			OrderStatus: domain.OrderPending, TotalAmount: decimal.RequireFromString("1500.5"),
			OrderItems: []dto.CreateOrderItemDTO{
				{ProductID: env.seed.ProductIDs[0], Quantity: 1, Price: decimal.RequireFromString("1200.5")},
				{ProductID: env.seed.ProductIDs[2], Quantity: 1, Price: decimal.NewFromInt(300)},
			},
		}
		rec := env.create("/api/Orders", in)
		got := decode[dto.OrderDTO](t, env.do(http.MethodGet, rec.Header().Get("Location"), nil))
		assert.Equal(t, in.CustomerName, got.CustomerName)
		assert.Equal(t, in.CustomerEmail, got.CustomerEmail)
		assert.Equal(t, in.OrderStatus, got.OrderStatus)
		assert.True(t, in.OrderDate.Equal(got.OrderDate))
		assert.True(t, in.TotalAmount.Equal(got.TotalAmount))
		require.Len(t, got.OrderItems, 2)
		assert.Equal(t, in.OrderItems[1].ProductID, got.OrderItems[1].ProductID)
		assert.True(t, in.OrderItems[1].Price.Equal(got.OrderItems[1].Price))
	})
}

func TestCreateRejectsInvalidBody(t *testing.T) {
	env := newSeededEnv(t)
	tests := []struct {
		name, path string
		body       interface{}
	}{
		{"empty artist", "/api/Artists", ""},
		{"null artist", "/api/Artists", "null"},
		{"malformed json", "/api/Artists", `{"name":`},
		{"short category", "/api/Categories", dto.CreateCategoryDTO{Name: "ab"}},
		{"event ends before start", "/api/Events", dto.CreateEventDTO{
			Title: "Backwards", StartDate: time.Now(), EndDate: time.Now().Add(-time.Hour),
		}},
		{"product over price cap", "/api/Products", dto.CreateProductDTO{
			ArtistID: env.seed.ArtistID, CategoryID: env.seed.CategoryID, Name: "Pricey",
			Price: decimal.NewFromInt(100001),
		}},
		{"product unknown artist", "/api/Products", dto.CreateProductDTO{
			ArtistID: 999, CategoryID: env.seed.CategoryID, Name: "Orphan", Price: decimal.NewFromInt(5),
		}},
		{"order bad email", "/api/Orders", dto.CreateOrderDTO{
			CustomerName: "Bob", CustomerEmail: "not-an-email", OrderStatus: domain.OrderPending,
		}},
		{"order unknown product", "/api/Orders", dto.CreateOrderDTO{
			CustomerName: "Bob", CustomerEmail: "bob@example.com", OrderStatus: domain.OrderPending,
			OrderItems: []dto.CreateOrderItemDTO{{ProductID: 999, Quantity: 1}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	env := newSeededEnv(t)

	rec := env.create("/api/Reviews", dto.CreateReviewDTO{
		ProductID: env.seed.ProductIDs[1], ReviewerName: "Kim", Rating: 9, Comment: "  ",
	})
	review := decode[dto.ReviewDTO](t, rec)
	assert.Equal(t, 1, review.Rating)
	assert.Equal(t, dto.DefaultReviewComment, review.Comment)

	rec = env.create("/api/Products", dto.CreateProductDTO{
		ArtistID: env.seed.ArtistID, CategoryID: env.seed.CategoryID, Name: "Free Sketch",
		Price: decimal.NewFromInt(-20),
	})
	product := decode[dto.ProductDTO](t, rec)
	assert.True(t, product.Price.IsZero())

	rec = env.create("/api/Orders", dto.CreateOrderDTO{CustomerName: "Noor", CustomerEmail: "noor@example.com"})
	order := decode[dto.OrderDTO](t, rec)
	assert.Equal(t, domain.OrderPending, order.OrderStatus)
	assert.NotNil(t, order.OrderItems)
	assert.Empty(t, order.OrderItems)
	assert.False(t, order.OrderDate.IsZero())
}

func TestDelete(t *testing.T) {
	env := newSeededEnv(t)

	rec := env.do(http.MethodDelete, "/api/Artists/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	path := fmt.Sprintf("/api/Products/%d", env.seed.ProductIDs[0])
	requireStatus(t, env.do(http.MethodDelete, path, nil), http.StatusNoContent)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, path, nil).Code)

	// deleting the artist cascades to the remaining products
	requireStatus(t, env.do(http.MethodDelete, fmt.Sprintf("/api/Artists/%d", env.seed.ArtistID), nil), http.StatusNoContent)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/Products", nil).Code)
}

func TestGetByID(t *testing.T) {
	env := newSeededEnv(t)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/Products/999", nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/api/Products/abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/api/Products/0x1", nil).Code)

	rec := env.do(http.MethodGet, fmt.Sprintf("/api/Products/%d", env.seed.ProductIDs[1]), nil)
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, "Bronze Horse", decode[dto.ProductDTO](t, rec).Name)
}

func TestNonPositiveIDIsNotFound(t *testing.T) {
	env := newSeededEnv(t)
	for _, id := range []string{"0", "-4"} {
		for _, target := range []string{
			"/api/Artists/" + id,
			"/api/Orders/" + id + "/Items",
			"/api/Products/artist/" + id,
			"/api/Reviews/Product/" + id,
			"/api/Events/" + id + "/Artists",
		} {
			assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, target, nil).Code, target)
		}
		assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, "/api/Categories/"+id, nil).Code, id)
		assert.Equal(t, http.StatusNotFound,
			env.do(http.MethodPost, fmt.Sprintf("/api/Events/%s/Artists/%d", id, env.seed.ArtistID), nil).Code, id)
	}

	// the path id is checked before the body, so no row is touched
	body := dto.UpdateCategoryDTO{CreateCategoryDTO: dto.CreateCategoryDTO{Name: "Overwritten"}}
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodPut, "/api/Categories/0", body).Code)
	got := decode[dto.CategoryDTO](t, env.do(http.MethodGet, fmt.Sprintf("/api/Categories/%d", env.seed.CategoryID), nil))
	assert.Equal(t, "Painting", got.Name)
}

func TestListPagination(t *testing.T) {
	env := newSeededEnv(t)

	all := decode[[]dto.ProductDTO](t, env.do(http.MethodGet, "/api/Products", nil))
	require.Len(t, all, 3)

	first := decode[[]dto.ProductDTO](t, env.do(http.MethodGet, "/api/Products?page=1&pageSize=2", nil))
	require.Len(t, first, 2)
	assert.Equal(t, all[0].ID, first[0].ID)
	assert.Equal(t, all[1].ID, first[1].ID)

	second := decode[[]dto.ProductDTO](t, env.do(http.MethodGet, "/api/Products?page=2&pageSize=2", nil))
	require.Len(t, second, 1)
	assert.Equal(t, all[2].ID, second[0].ID)

	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/Products?page=3&pageSize=2", nil).Code)

	// leading zeros are plain decimal
	padded := decode[[]dto.ProductDTO](t, env.do(http.MethodGet, "/api/Products?page=02&pageSize=02", nil))
	require.Len(t, padded, 1)
	assert.Equal(t, all[2].ID, padded[0].ID)
	eight := decode[[]dto.ProductDTO](t, env.do(http.MethodGet, "/api/Products?page=1&pageSize=08", nil))
	assert.Len(t, eight, 3)
}

func TestListEmptyIsNotFound(t *testing.T) {
	env := newEnv(t)
	for _, r := range []string{"Artists", "Events", "Products", "Orders", "Reviews", "Categories"} {
		rec := env.do(http.MethodGet, "/api/"+r, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, r)
	}
}

func TestInvalidPaginationIsBadRequest(t *testing.T) {
	env := newSeededEnv(t)
	endpoints := []string{
		"/api/Artists", "/api/Events", "/api/Products", "/api/Orders", "/api/Reviews", "/api/Categories",
		"/api/Products/category/painting", "/api/Products/search/horse",
		fmt.Sprintf("/api/Products/artist/%d", env.seed.ArtistID),
		"/api/Products/priceRange?minPrice=0&maxPrice=10000",
		"/api/Orders/ByCustomerEmail/ada@example.com", "/api/Orders/ByStatus/Pending",
		fmt.Sprintf("/api/Reviews/Product/%d", env.seed.ProductIDs[0]),
		"/api/Reviews/ByReviewerEmail/sam@example.com", "/api/Reviews/ByRating/5",
		"/api/Events/dateRange?startDate=2025-01-01&endDate=2025-12-31",
		fmt.Sprintf("/api/Artists/%d/Events", env.seed.ArtistID), "/api/Events/1/Artists",
	}
	for _, path := range endpoints {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		for _, q := range []string{"page=0&pageSize=2", "page=1&pageSize=0", "page=-1&pageSize=2", "page=x&pageSize=2", "page=0x1&pageSize=2", "page=1&pageSize=1e1"} {
			target := path + sep + q
			rec := env.do(http.MethodGet, target, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		}
	}
}

func TestUpdate(t *testing.T) {
	env := newSeededEnv(t)
	path := fmt.Sprintf("/api/Artists/%d", env.seed.ArtistID)
	current := decode[dto.ArtistDTO](t, env.do(http.MethodGet, path, nil))

	body := dto.UpdateArtistDTO{ID: current.ID, Version: current.Version, CreateArtistDTO: dto.CreateArtistDTO{
		Name: "Mira Holt-Berg", Country: "BE",
	}}

	t.Run("id mismatch", func(t *testing.T) {
		mismatch := body
		mismatch.ID = current.ID + 1
		rec := env.do(http.MethodPut, path, mismatch)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "ID_MISMATCH")
		assert.Equal(t, "Mira Holt", decode[dto.ArtistDTO](t, env.do(http.MethodGet, path, nil)).Name)
	})

	t.Run("replaces row", func(t *testing.T) {
		requireStatus(t, env.do(http.MethodPut, path, body), http.StatusNoContent)
		got := decode[dto.ArtistDTO](t, env.do(http.MethodGet, path, nil))
		assert.Equal(t, "Mira Holt-Berg", got.Name)
		assert.Equal(t, "BE", got.Country)
		assert.Equal(t, current.Version+1, got.Version)
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		rec := env.do(http.MethodPut, path, body)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "CONCURRENCY_CONFLICT")
	})

	t.Run("zero version overwrites", func(t *testing.T) {
		unguarded := body
		unguarded.Version = 0
		unguarded.Name = "Mira H."
		requireStatus(t, env.do(http.MethodPut, path, unguarded), http.StatusNoContent)
	})

	t.Run("missing", func(t *testing.T) {
		missing := body
		missing.ID = 999
		assert.Equal(t, http.StatusNotFound, env.do(http.MethodPut, "/api/Artists/999", missing).Code)
	})

	t.Run("invalid review rating", func(t *testing.T) {
		rec := env.create("/api/Reviews", dto.CreateReviewDTO{ProductID: env.seed.ProductIDs[0], ReviewerName: "Jo", Rating: 3})
		review := decode[dto.ReviewDTO](t, rec)
		rec = env.do(http.MethodPut, fmt.Sprintf("/api/Reviews/%d", review.ID), dto.UpdateReviewDTO{
			ID: review.ID, ProductID: review.ProductID, ReviewerName: "Jo", Rating: 7,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateOrderReplacesItems(t *testing.T) {
	env := newSeededEnv(t)
	rec := env.create("/api/Orders", dto.CreateOrderDTO{
		CustomerName: "Ada Park", CustomerEmail: "ada@example.com", OrderStatus: domain.OrderPending,
		OrderItems: []dto.CreateOrderItemDTO{{ProductID: env.seed.ProductIDs[0], Quantity: 1}},
	})
	order := decode[dto.OrderDTO](t, rec)

	update := dto.UpdateOrderDTO{ID: order.ID, Version: order.Version, CreateOrderDTO: dto.CreateOrderDTO{
		CustomerName: "Ada Park", CustomerEmail: "ada@example.com", OrderStatus: domain.OrderShipped,
		OrderItems: []dto.CreateOrderItemDTO{
			{ProductID: env.seed.ProductIDs[1], Quantity: 2},
			{ProductID: env.seed.ProductIDs[2], Quantity: 1},
		},
	}}
	requireStatus(t, env.do(http.MethodPut, fmt.Sprintf("/api/Orders/%d", order.ID), update), http.StatusNoContent)

	items := decode[[]dto.OrderItemDTO](t, env.do(http.MethodGet, fmt.Sprintf("/api/Orders/%d/Items", order.ID), nil))
	require.Len(t, items, 2)
	assert.Equal(t, env.seed.ProductIDs[1], items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)

	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/Orders/999/Items", nil).Code)
}
