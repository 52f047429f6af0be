package webserver

import (
	"net/http"
	"time"

	"github.com/artauction/auctionapi/config"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const UserContextKey = "user"

// Claims are carried by operator tokens.
type Claims struct {
	jwt.RegisteredClaims
	Level string `json:"level,omitempty"`
}

// Auth issues and verifies HS256 bearer tokens.
type Auth struct {
	cfg config.JwtConfig
}

func NewAuth(cfg config.JwtConfig) *Auth {
	return &Auth{cfg: cfg}
}

// IssueToken signs a token for the operator valid for jwt.expire_hours.
func (a *Auth) IssueToken(username, level string, now time.Time) (string, time.Time, error) {
	hours := a.cfg.ExpireHours
	if hours <= 0 {
		hours = 24
	}
	expires := now.Add(time.Duration(hours) * time.Hour)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Level: level,
	}
	if a.cfg.Issuer != "" {
		claims.Issuer = a.cfg.Issuer
	}
	if a.cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{a.cfg.Audience}
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.cfg.Key))
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "sign token")
	}
	return signed, expires, nil
}

// ParseToken verifies signature, expiry, issuer and audience.
func (a *Auth) ParseToken(_ echo.Context, auth string) (interface{}, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(auth, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(a.cfg.Key), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if a.cfg.Issuer != "" && !claims.VerifyIssuer(a.cfg.Issuer, true) {
		return nil, errors.New("invalid token issuer")
	}
	if a.cfg.Audience != "" && !claims.VerifyAudience(a.cfg.Audience, true) {
		return nil, errors.New("invalid token audience")
	}
	return token, nil
}

func (a *Auth) Middleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:     UserContextKey,
		ParseTokenFunc: a.ParseToken,
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Missing or invalid bearer token").SetInternal(err)
		},
	})
}

// OperatorName is the token subject, or "anonymous" when the request
// carried no token.
func OperatorName(c echo.Context) string {
	if token, ok := c.Get(UserContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok && claims.Subject != "" {
			return claims.Subject
		}
	}
	return "anonymous"
}
