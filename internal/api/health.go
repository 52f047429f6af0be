package api

import (
	"context"
	"net/http"
	"time"

	"github.com/artauction/auctionapi/internal/app"
	"github.com/artauction/auctionapi/internal/webserver"
	"github.com/labstack/echo/v4"
)

var startedAt = time.Now()

type healthResponse struct {
	Status   string          `json:"status"`
	Database string          `json:"database"`
	Uptime   string          `json:"uptime"`
	Stats    app.SystemStats `json:"stats"`
}

func registerHealthRoutes(s *webserver.WebServer) {
	s.ApiGET("/health", health)
}

// health reports database reachability and resource usage
//
// @Summary service health
// @Tags System
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} healthResponse
// @Router /health [get]
func health(c echo.Context) error {
	appCtx := GetAppContext(c)
	resp := healthResponse{
		Status:   "ok",
		Database: "ok",
		Uptime:   time.Since(startedAt).Round(time.Second).String(),
		Stats:    appCtx.SystemStats(),
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	sqlDB, err := appCtx.DB().DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		return c.JSON(http.StatusServiceUnavailable, resp)
	}
	return ok(c, resp)
}
