package webserver

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	_ "github.com/artauction/auctionapi/docs"
	"github.com/artauction/auctionapi/internal/app"
	"github.com/bwmarrin/snowflake"
	"github.com/labstack/echo-contrib/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

const AppContextKey = "app"

// WebServer is the echo instance serving /api. Mutating routes registered
// through ApiPOST, ApiPUT and ApiDELETE require a bearer token when jwt is
// enabled.
type WebServer struct {
	root *echo.Echo
	api  *echo.Group
	auth *Auth
	app  app.AppContext
}

func New(appCtx app.AppContext) (*WebServer, error) {
	cfg := appCtx.Config()
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.System.Debug
	if cfg.System.Debug {
		e.Logger.SetLevel(log.DEBUG)
	} else {
		e.Logger.SetLevel(log.INFO)
	}
	e.Validator = NewValidator()
	e.JSONSerializer = JSONSerializer{}
	e.HTTPErrorHandler = httpErrorHandler
	e.Server.ReadTimeout = time.Duration(cfg.Web.ReadTimeout) * time.Second
	e.Server.WriteTimeout = time.Duration(cfg.Web.WriteTimeout) * time.Second
	ipExtractor, err := clientIPExtractor(cfg.Web.TrustedProxies)
	if err != nil {
		return nil, err
	}
	e.IPExtractor = ipExtractor

	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, errors.Wrap(err, "create request id generator")
	}
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return node.Generate().String() },
	}))
	e.Use(requestLogger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		ExposeHeaders: []string{echo.HeaderLocation, echo.HeaderXRequestID},
	}))
	if cfg.RateLimit.Enabled {
		store, err := NewRateLimiterStore(cfg.RateLimit)
		if err != nil {
			return nil, err
		}
		e.Use(rateLimiter(store))
	}
	if cfg.Web.Metrics {
		prometheus.NewPrometheus("auctionapi", nil).Use(e)
	}
	e.Use(withAppContext(appCtx))

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	s := &WebServer{
		root: e,
		api:  e.Group("/api", auditLog(appCtx.Repos().OprLogs)),
		app:  appCtx,
	}
	if cfg.Jwt.Enabled {
		s.auth = NewAuth(cfg.Jwt)
	}
	return s, nil
}

func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

// Auth returns nil when jwt is disabled.
func (s *WebServer) Auth() *Auth {
	return s.auth
}

func (s *WebServer) guard(m []echo.MiddlewareFunc) []echo.MiddlewareFunc {
	if s.auth == nil {
		return m
	}
	return append([]echo.MiddlewareFunc{s.auth.Middleware()}, m...)
}

func (s *WebServer) ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.api.GET(path, h, m...)
}

func (s *WebServer) ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.api.POST(path, h, s.guard(m)...)
}

// ApiPublicPOST registers a POST route that never requires a token.
func (s *WebServer) ApiPublicPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.api.POST(path, h, m...)
}

func (s *WebServer) ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.api.PUT(path, h, s.guard(m)...)
}

func (s *WebServer) ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.api.DELETE(path, h, s.guard(m)...)
}

// Start listens until Shutdown is called.
func (s *WebServer) Start() error {
	cfg := s.app.Config().Web
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	zap.S().Infof("Start api server %s", addr)
	err := s.root.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}
