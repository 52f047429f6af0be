package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/artauction/auctionapi/config"
	"github.com/artauction/auctionapi/internal/app"
	"github.com/artauction/auctionapi/internal/testutil"
	"github.com/artauction/auctionapi/internal/webserver"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	t     *testing.T
	app   *app.Application
	srv   *webserver.WebServer
	seed  testutil.Seed
	token string
}

// newEnv starts a server on an empty database. Requests carry an admin
// token unless the token is cleared.
func newEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := *config.DefaultAppConfig
	cfg.Jwt.Key = "api-test-key"
	cfg.RateLimit.Enabled = false
	a := app.NewApplication(&cfg)
	a.OverrideDB(testutil.NewDB(t))
	require.NoError(t, a.InitEvents())
	s, err := webserver.New(a)
	require.NoError(t, err)
	Register(s)

	token, _, err := s.Auth().IssueToken("admin", "super", time.Now())
	require.NoError(t, err)
	return &testEnv{t: t, app: a, srv: s, token: token}
}

// newSeededEnv adds one artist, one category and three products.
func newSeededEnv(t *testing.T) *testEnv {
	env := newEnv(t)
	env.seed = testutil.SeedCatalogue(t, env.app.DB())
	return env
}

func (e *testEnv) do(method, target string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(e.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if e.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+e.token)
	}
	rec := httptest.NewRecorder()
	e.srv.Echo().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
}

func (e *testEnv) create(path string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	rec := e.do(http.MethodPost, path, body)
	requireStatus(e.t, rec, http.StatusCreated)
	return rec
}
