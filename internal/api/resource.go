package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/artauction/auctionapi/internal/dto"
	"github.com/artauction/auctionapi/internal/repository"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type keyed interface {
	PrimaryKey() int64
}

type updateRequest interface {
	TargetID() int64
}

// resource serves the uniform list/get/create/replace/delete contract of
// one entity under /api/{name}. E is the entity, D its response DTO, C and
// U the create and update bodies.
type resource[E any, D any, C any, U updateRequest, P interface {
	*E
	keyed
}] struct {
	name  string // route segment and list label, e.g. "Artists"
	label string // used in messages, e.g. "Artist"
	repo  func(*repository.Repositories) repository.CRUD[E]
	// check validates references of a new or replaced entity and returns
	// a badReference when one is missing
	check func(c echo.Context, e *E) error

	createdTopic string
	updatedTopic string
	deletedTopic string
}

func (r *resource[E, D, C, U, P]) list(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PAGINATION", err.Error(), nil)
	}
	rows, err := r.repo(GetRepos(c)).GetAll(c.Request().Context(), page)
	return respondList[D](c, rows, err, r.name)
}

func (r *resource[E, D, C, U, P]) get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return idError(c, err, r.label)
	}
	e, err := r.repo(GetRepos(c)).GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err, r.label)
	}
	return ok(c, dto.Adapt[D](*e))
}

func (r *resource[E, D, C, U, P]) create(c echo.Context) error {
	var req C
	if cont, err := bind(c, &req); !cont {
		return err
	}
	e := dto.Adapt[E](req)
	if r.check != nil {
		if err := r.check(c, &e); err != nil {
			return repoError(c, err, r.label)
		}
	}
	if err := r.repo(GetRepos(c)).Add(c.Request().Context(), &e); err != nil {
		return serverError(c, err)
	}
	id := P(&e).PrimaryKey()
	zap.L().Info("created "+r.label, zap.Int64("id", id))
	out := dto.Adapt[D](e)
	publish(c, r.createdTopic, id, out)
	return created(c, fmt.Sprintf("/api/%s/%d", r.name, id), out)
}

func (r *resource[E, D, C, U, P]) update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return idError(c, err, r.label)
	}
	var req U
	if cont, err := bind(c, &req); !cont {
		return err
	}
	if req.TargetID() != id {
		return fail(c, http.StatusBadRequest, "ID_MISMATCH",
			fmt.Sprintf("Body id %d does not match URL id %d", req.TargetID(), id), nil)
	}
	e := dto.Adapt[E](req)
	if r.check != nil {
		if err := r.check(c, &e); err != nil {
			return repoError(c, err, r.label)
		}
	}
	if err := r.repo(GetRepos(c)).Update(c.Request().Context(), id, &e); err != nil {
		if errors.Is(err, repository.ErrConcurrencyConflict) {
			zap.L().Warn("update conflict", zap.String("resource", r.name), zap.Int64("id", id))
		}
		return repoError(c, err, r.label)
	}
	publish(c, r.updatedTopic, id, dto.Adapt[D](e))
	return c.NoContent(http.StatusNoContent)
}

func (r *resource[E, D, C, U, P]) delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return idError(c, err, r.label)
	}
	repo := r.repo(GetRepos(c))
	exists, err := repo.Exists(c.Request().Context(), id)
	if err != nil {
		return serverError(c, err)
	}
	if !exists {
		return fail(c, http.StatusNotFound, "NOT_FOUND", r.label+" not found", nil)
	}
	if err := repo.Delete(c.Request().Context(), id); err != nil {
		return serverError(c, err)
	}
	zap.L().Info("deleted "+r.label, zap.Int64("id", id))
	publish(c, r.deletedTopic, id, nil)
	return c.NoContent(http.StatusNoContent)
}

// exists turns a missing row into a badReference.
func exists(check func() (bool, error), what string, id int64) error {
	found, err := check()
	if err != nil {
		return err
	}
	if !found {
		return badReference(fmt.Sprintf("%s %d does not exist", what, id))
	}
	return nil
}
