package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/artauction/auctionapi/internal/domain"
	"github.com/artauction/auctionapi/internal/repository"
	"github.com/artauction/auctionapi/internal/webserver"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func registerAuthRoutes(s *webserver.WebServer) {
	if s.Auth() == nil {
		return
	}
	s.ApiPublicPOST("/Auth/login", loginHandler(s.Auth()))
}

// loginHandler exchanges operator credentials for a bearer token
//
// @Summary issue an operator token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "credentials"
// @Success 200 {object} loginResponse
// @Failure 400 {object} webserver.ErrorBody
// @Failure 401 {object} webserver.ErrorBody
// @Router /Auth/login [post]
func loginHandler(auth *webserver.Auth) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req loginRequest
		if cont, err := bind(c, &req); !cont {
			return err
		}
		ctx := c.Request().Context()
		operators := GetRepos(c).Operators
		opr, err := operators.GetByUsername(ctx, strings.TrimSpace(req.Username))
		if errors.Is(err, repository.ErrNotFound) {
			return invalidCredentials(c, req.Username)
		}
		if err != nil {
			return serverError(c, err)
		}
		if opr.Status != domain.ENABLED {
			return invalidCredentials(c, req.Username)
		}
		if bcrypt.CompareHashAndPassword([]byte(opr.Password), []byte(req.Password)) != nil {
			return invalidCredentials(c, req.Username)
		}

		now := time.Now()
		token, expires, err := auth.IssueToken(opr.Username, opr.Level, now)
		if err != nil {
			return serverError(c, err)
		}
		if err := operators.UpdateLastLogin(ctx, opr.ID, now); err != nil {
			zap.L().Warn("update last login", zap.String("username", opr.Username), zap.Error(err))
		}
		zap.L().Info("operator logged in", zap.String("username", opr.Username), zap.String("ip", c.RealIP()))
		return ok(c, loginResponse{Token: token, ExpiresAt: expires})
	}
}

func invalidCredentials(c echo.Context, username string) error {
	zap.L().Warn("login rejected", zap.String("username", username), zap.String("ip", c.RealIP()))
	return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
}
