package webserver

import (
	"net/http"
	"time"

	"github.com/artauction/auctionapi/internal/app"
	"github.com/artauction/auctionapi/internal/domain"
	"github.com/artauction/auctionapi/internal/repository"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func withAppContext(appCtx app.AppContext) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppContextKey, appCtx)
			return next(c)
		}
	}
}

// GetAppContext returns the application injected by the server.
func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(AppContextKey).(app.AppContext)
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("ip", v.RemoteIP),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			if v.Status >= http.StatusInternalServerError {
				zap.L().Error("request", fields...)
			} else {
				zap.L().Info("request", fields...)
			}
			return nil
		},
	})
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// auditLog records every mutating request that completed with a 2xx or 3xx.
func auditLog(logs repository.OprLogRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			req := c.Request()
			if err != nil || !isMutation(req.Method) || c.Response().Status >= http.StatusBadRequest {
				return err
			}
			desc := req.URL.RequestURI()
			if len(desc) > 512 {
				desc = desc[:512]
			}
			entry := &domain.SysOprLog{
				OprName:   OperatorName(c),
				OprIp:     c.RealIP(),
				OptAction: req.Method,
				OptDesc:   desc,
				Status:    c.Response().Status,
				OptTime:   time.Now(),
			}
			if e := logs.Add(req.Context(), entry); e != nil {
				zap.L().Warn("write audit log", zap.String("path", desc), zap.Error(e))
			}
			return nil
		}
	}
}
