package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/artauction/auctionapi/internal/domain"
	"github.com/artauction/auctionapi/internal/dto"
	"github.com/artauction/auctionapi/internal/repository"
	"github.com/artauction/auctionapi/internal/webserver"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var events = &resource[domain.Event, dto.EventDTO, dto.CreateEventDTO, dto.UpdateEventDTO, *domain.Event]{
	name:  "Events",
	label: "Event",
	repo:  func(r *repository.Repositories) repository.CRUD[domain.Event] { return r.Events },
}

func registerEventRoutes(s *webserver.WebServer) {
	s.ApiGET("/Events", listEvents)
	s.ApiGET("/Events/:id", getEvent)
	s.ApiPOST("/Events", createEvent)
	s.ApiPUT("/Events/:id", updateEvent)
	s.ApiDELETE("/Events/:id", deleteEvent)
	s.ApiGET("/Events/dateRange", listEventsByDateRange)
	s.ApiGET("/Events/:id/Artists", listEventArtists)
	s.ApiPOST("/Events/:id/Artists/:artistId", linkEventArtist)
	s.ApiDELETE("/Events/:id/Artists/:artistId", unlinkEventArtist)
}

// @Summary list events
// @Tags Events
// @Produce json
// @Param page query int false "page number, starting at 1"
// @Param pageSize query int false "rows per page"
// @Success 200 {array} dto.EventDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Events [get]
func listEvents(c echo.Context) error { return events.list(c) }

// @Summary get an event
// @Tags Events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} dto.EventDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Events/{id} [get]
func getEvent(c echo.Context) error { return events.get(c) }

// @Summary create an event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateEventDTO true "new event"
// @Success 201 {object} dto.EventDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 401 {object} webserver.ErrorBody
// @Router /Events [post]
func createEvent(c echo.Context) error { return events.create(c) }

// @Summary replace an event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param body body dto.UpdateEventDTO true "event with the id of the path and the version last read"
// @Success 204
// @Failure 400 {object} webserver.ErrorBody
// @Failure 401 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Failure 409 {object} webserver.ErrorBody
// @Router /Events/{id} [put]
func updateEvent(c echo.Context) error { return events.update(c) }

// @Summary delete an event
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 204
// @Failure 401 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Events/{id} [delete]
func deleteEvent(c echo.Context) error { return events.delete(c) }

// listEventsByDateRange returns events held entirely inside the range.
// Dates may be given in any common layout, e.g. 2025-05-01 or 05/01/2025.
//
// @Summary events inside a date range
// @Tags Events
// @Produce json
// @Param startDate query string true "range start"
// @Param endDate query string true "range end"
// @Param page query int false "page number, starting at 1"
// @Param pageSize query int false "rows per page"
// @Success 200 {array} dto.EventDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Events/dateRange [get]
func listEventsByDateRange(c echo.Context) error {
	rawStart := strings.TrimSpace(c.QueryParam("startDate"))
	rawEnd := strings.TrimSpace(c.QueryParam("endDate"))
	if rawStart == "" || rawEnd == "" {
		return fail(c, http.StatusBadRequest, "INVALID_RANGE", "startDate and endDate are required", nil)
	}
	start, err := dateparse.ParseLocal(rawStart)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_RANGE", "Unable to parse startDate", nil)
	}
	end, err := dateparse.ParseLocal(rawEnd)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_RANGE", "Unable to parse endDate", nil)
	}
	if start.After(end) {
		return fail(c, http.StatusBadRequest, "INVALID_RANGE", "startDate must not be after endDate", nil)
	}
	page, err := parsePage(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PAGINATION", err.Error(), nil)
	}
	rows, err := GetRepos(c).Events.ByDateRange(c.Request().Context(), start, end, page)
	return respondList[dto.EventDTO](c, rows, err, "events")
}

// @Summary artists taking part in an event
// @Tags Events
// @Produce json
// @Param id path int true "Event ID"
// @Param page query int false "page number, starting at 1"
// @Param pageSize query int false "rows per page"
// @Success 200 {array} dto.ArtistDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Events/{id}/Artists [get]
func listEventArtists(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return idError(c, err, "Event")
	}
	page, err := parsePage(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PAGINATION", err.Error(), nil)
	}
	rows, err := GetRepos(c).Events.Artists(c.Request().Context(), id, page)
	return respondList[dto.ArtistDTO](c, rows, err, "artists")
}

func eventArtistParams(c echo.Context) (eventID, artistID int64, label string, err error) {
	if eventID, err = parseIDParam(c, "id"); err != nil {
		return 0, 0, "Event", err
	}
	if artistID, err = parseIDParam(c, "artistId"); err != nil {
		return 0, 0, "Artist", err
	}
	return eventID, artistID, "", nil
}

// @Summary link an artist to an event
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param artistId path int true "Artist ID"
// @Success 201 {object} dto.EventArtistDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 401 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Events/{id}/Artists/{artistId} [post]
func linkEventArtist(c echo.Context) error {
	eventID, artistID, label, err := eventArtistParams(c)
	if err != nil {
		return idError(c, err, label)
	}
	ctx := c.Request().Context()
	repos := GetRepos(c)
	if found, err := repos.Events.Exists(ctx, eventID); err != nil {
		return serverError(c, err)
	} else if !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Event not found", nil)
	}
	if found, err := repos.Artists.Exists(ctx, artistID); err != nil {
		return serverError(c, err)
	} else if !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Artist not found", nil)
	}
	if err := repos.Events.LinkArtist(ctx, eventID, artistID); err != nil {
		return serverError(c, err)
	}
	zap.L().Info("linked artist to event", zap.Int64("event", eventID), zap.Int64("artist", artistID))
	return created(c, fmt.Sprintf("/api/Events/%d/Artists", eventID),
		dto.EventArtistDTO{EventID: eventID, ArtistID: artistID})
}

// @Summary unlink an artist from an event
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param artistId path int true "Artist ID"
// @Success 204
// @Failure 400 {object} webserver.ErrorBody
// @Failure 401 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Events/{id}/Artists/{artistId} [delete]
func unlinkEventArtist(c echo.Context) error {
	eventID, artistID, label, err := eventArtistParams(c)
	if err != nil {
		return idError(c, err, label)
	}
	removed, err := GetRepos(c).Events.UnlinkArtist(c.Request().Context(), eventID, artistID)
	if err != nil {
		return serverError(c, err)
	}
	if !removed {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Artist is not linked to the event", nil)
	}
	return c.NoContent(http.StatusNoContent)
}
