package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/artauction/auctionapi/internal/domain"
	"github.com/artauction/auctionapi/internal/dto"
	"github.com/artauction/auctionapi/internal/notify"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func addOperator(t *testing.T, env *testEnv, username, password, status string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, env.app.Repos().Operators.Add(context.Background(), &domain.SysOpr{
		Username: username, Password: string(hash), Level: "super", Status: status,
	}))
}

func TestMutationsRequireToken(t *testing.T) {
	env := newSeededEnv(t)
	env.token = ""

	rec := env.do(http.MethodPost, "/api/Categories", dto.CreateCategoryDTO{Name: "Textile"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = env.do(http.MethodDelete, fmt.Sprintf("/api/Products/%d", env.seed.ProductIDs[0]), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// reads stay public
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/Products", nil).Code)
}

func TestLogin(t *testing.T) {
	env := newEnv(t)
	addOperator(t, env, "curator", "s3cret-pass", domain.ENABLED)
	addOperator(t, env, "retired", "s3cret-pass", domain.DISABLED)
	env.token = ""

	rec := env.do(http.MethodPost, "/api/Auth/login", loginRequest{Username: "curator", Password: "s3cret-pass"})
	requireStatus(t, rec, http.StatusOK)
	resp := decode[loginResponse](t, rec)
	require.NotEmpty(t, resp.Token)
	assert.False(t, resp.ExpiresAt.IsZero())

	opr, err := env.app.Repos().Operators.GetByUsername(context.Background(), "curator")
	require.NoError(t, err)
	assert.False(t, opr.LastLogin.IsZero())

	// the issued token unlocks mutations
	env.token = resp.Token
	env.create("/api/Categories", dto.CreateCategoryDTO{Name: "Textile"})
	env.token = ""

	for _, req := range []loginRequest{
		{Username: "curator", Password: "wrong"},
		{Username: "nobody", Password: "s3cret-pass"},
		{Username: "retired", Password: "s3cret-pass"},
	} {
		rec := env.do(http.MethodPost, "/api/Auth/login", req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, req.Username)
		assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
	}
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodPost, "/api/Auth/login", loginRequest{}).Code)
}

func TestHealth(t *testing.T) {
	env := newEnv(t)
	rec := env.do(http.MethodGet, "/api/health", nil)
	requireStatus(t, rec, http.StatusOK)
	resp := decode[healthResponse](t, rec)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Database)
}

func TestExportProducts(t *testing.T) {
	env := newSeededEnv(t)

	t.Run("csv", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/Products/export", nil)
		requireStatus(t, rec, http.StatusOK)
		assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), "text/csv"))
		assert.Equal(t, "attachment; filename=products.csv", rec.Header().Get(echo.HeaderContentDisposition))

		var rows []dto.ProductRow
		require.NoError(t, gocsv.UnmarshalBytes(rec.Body.Bytes(), &rows))
		require.Len(t, rows, 3)
		assert.Equal(t, "Bronze Horse", rows[1].Name)
		assert.Equal(t, "5400.00", rows[1].Price)
	})

	t.Run("xlsx", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/Products/export?format=xlsx", nil)
		requireStatus(t, rec, http.StatusOK)
		assert.Equal(t, mimeXLSX, rec.Header().Get(echo.HeaderContentType))

		book, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, "name", book.GetCellValue("Products", "B1"))
		assert.Equal(t, "Blue Nude Study", book.GetCellValue("Products", "B4"))
	})

	t.Run("unknown format", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/api/Products/export?format=pdf", nil).Code)
	})
}

func TestCellName(t *testing.T) {
	assert.Equal(t, "A1", cellName(0, 1))
	assert.Equal(t, "G12", cellName(6, 12))
}

func TestOrderLifecyclePublishesEvents(t *testing.T) {
	env := newSeededEnv(t)
	hub, isHub := env.app.Events().(*notify.Hub)
	require.True(t, isHub)

	var got []notify.Event
	for _, topic := range []string{notify.TopicOrderCreated, notify.TopicOrderUpdated, notify.TopicOrderDeleted} {
		require.NoError(t, hub.Subscribe(topic, func(evt notify.Event) { got = append(got, evt) }))
	}

	body := dto.CreateOrderDTO{
		CustomerName: "Ada Park", CustomerEmail: "ada@example.com", OrderStatus: domain.OrderPending,
		TotalAmount: decimal.NewFromInt(300),
	}
	order := decode[dto.OrderDTO](t, env.create("/api/Orders", body))
	path := fmt.Sprintf("/api/Orders/%d", order.ID)

	body.OrderStatus = domain.OrderCancelled
	requireStatus(t, env.do(http.MethodPut, path, dto.UpdateOrderDTO{ID: order.ID, Version: order.Version, CreateOrderDTO: body}),
		http.StatusNoContent)
	requireStatus(t, env.do(http.MethodDelete, path, nil), http.StatusNoContent)

	require.Len(t, got, 3)
	assert.Equal(t, "created", got[0].Action)
	assert.Equal(t, order.ID, got[0].EntityID)
	created, isOrder := got[0].Payload.(dto.OrderDTO)
	require.True(t, isOrder)
	assert.Equal(t, "ada@example.com", created.CustomerEmail)
	assert.Equal(t, "updated", got[1].Action)
	assert.Equal(t, domain.OrderCancelled, got[1].Payload.(dto.OrderDTO).OrderStatus)
	assert.Equal(t, "deleted", got[2].Action)
}

func TestFailedMutationsAreNotAudited(t *testing.T) {
	env := newSeededEnv(t)
	env.create("/api/Categories", dto.CreateCategoryDTO{Name: "Textile"})
	env.do(http.MethodDelete, "/api/Categories/999", nil)

	var logs []domain.SysOprLog
	require.NoError(t, env.app.DB().Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "admin", logs[0].OprName)
	assert.Equal(t, http.MethodPost, logs[0].OptAction)
	assert.Equal(t, http.StatusCreated, logs[0].Status)
}
