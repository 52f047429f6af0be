package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/artauction/auctionapi/internal/app"
	"github.com/artauction/auctionapi/internal/dto"
	"github.com/artauction/auctionapi/internal/repository"
	"github.com/artauction/auctionapi/internal/webserver"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GetAppContext returns the application bound to the request.
func GetAppContext(c echo.Context) app.AppContext {
	return webserver.GetAppContext(c)
}

// GetRepos returns the repositories of the application bound to the request.
func GetRepos(c echo.Context) *repository.Repositories {
	return GetAppContext(c).Repos()
}

func publish(c echo.Context, topic string, id int64, payload interface{}) {
	if topic == "" {
		return
	}
	GetAppContext(c).Events().Publish(topic, id, payload)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func created(c echo.Context, location string, data interface{}) error {
	c.Response().Header().Set(echo.HeaderLocation, location)
	return c.JSON(http.StatusCreated, data)
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, webserver.ErrorBody{Code: code, Message: message, Details: details})
}

// serverError logs err and answers with a generic 500.
func serverError(c echo.Context, err error) error {
	zap.L().Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Request().URL.Path),
		zap.Error(err))
	return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
}

var (
	errInvalidID = errors.New("id is not a number")
	// errUnknownID marks a numeric id that no row can have
	errUnknownID = errors.New("id is not positive")
)

// parseIDParam reads a decimal path id.
func parseIDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, errInvalidID)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid %s: %w", name, errUnknownID)
	}
	return id, nil
}

// idError answers a failed parseIDParam: 404 for an id no row can have,
// 400 for anything that is not a number.
func idError(c echo.Context, err error, label string) error {
	if errors.Is(err, errUnknownID) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", label+" not found", nil)
	}
	return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+label+" ID", nil)
}

// positiveInt parses a decimal integer greater than zero.
func positiveInt(raw string) (int, bool) {
	v, err := strconv.Atoi(raw)
	return v, err == nil && v > 0
}

// parsePage reads page and pageSize. Paging applies only when both are
// given; any value that is present must be a positive decimal integer.
func parsePage(c echo.Context) (repository.Page, error) {
	var page repository.Page
	for _, p := range []struct {
		name string
		dst  *int
	}{{"page", &page.Number}, {"pageSize", &page.Size}} {
		raw := c.QueryParam(p.name)
		if raw == "" {
			continue
		}
		v, valid := positiveInt(raw)
		if !valid {
			return page, fmt.Errorf("%s must be a positive integer", p.name)
		}
		*p.dst = v
	}
	if !page.Enabled() {
		return repository.Page{}, nil
	}
	return page, nil
}

// respondList maps rows to D and applies the list contract: 404 when the
// result is empty.
func respondList[D, E any](c echo.Context, rows []E, err error, what string) error {
	if err != nil {
		return serverError(c, err)
	}
	if len(rows) == 0 {
		return fail(c, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("No %s found", what), nil)
	}
	return ok(c, dto.AdaptAll[D](rows))
}

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

func handleValidationError(c echo.Context, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", nil)
	}
	details := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fieldError{Field: fe.Namespace(), Rule: fe.Tag(), Param: fe.Param()})
	}
	return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", details)
}

// bind decodes and validates the body, writing the 400 response itself.
// The returned bool is false when the handler should stop.
func bind(c echo.Context, req interface{}) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request body", nil)
	}
	if err := c.Validate(req); err != nil {
		return false, handleValidationError(c, err)
	}
	return true, nil
}

// badReference marks a body that points at a row that does not exist.
type badReference string

func (b badReference) Error() string { return string(b) }

// repoError maps repository sentinels onto the HTTP contract.
func repoError(c echo.Context, err error, what string) error {
	var ref badReference
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", what+" not found", nil)
	case errors.Is(err, repository.ErrConcurrencyConflict):
		return fail(c, http.StatusConflict, "CONCURRENCY_CONFLICT",
			what+" was modified by another request", nil)
	case errors.As(err, &ref):
		return fail(c, http.StatusBadRequest, "UNKNOWN_REFERENCE", ref.Error(), nil)
	default:
		return serverError(c, err)
	}
}
