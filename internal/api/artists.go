package api

import (
	"net/http"

	"github.com/artauction/auctionapi/internal/domain"
	"github.com/artauction/auctionapi/internal/dto"
	"github.com/artauction/auctionapi/internal/repository"
	"github.com/artauction/auctionapi/internal/webserver"
	"github.com/labstack/echo/v4"
)

var artists = &resource[domain.Artist, dto.ArtistDTO, dto.CreateArtistDTO, dto.UpdateArtistDTO, *domain.Artist]{
	name:  "Artists",
	label: "Artist",
	repo:  func(r *repository.Repositories) repository.CRUD[domain.Artist] { return r.Artists },
}

func registerArtistRoutes(s *webserver.WebServer) {
	s.ApiGET("/Artists", listArtists)
	s.ApiGET("/Artists/:id", getArtist)
	s.ApiPOST("/Artists", createArtist)
	s.ApiPUT("/Artists/:id", updateArtist)
	s.ApiDELETE("/Artists/:id", deleteArtist)
	s.ApiGET("/Artists/:id/Events", listArtistEvents)
}

// @Summary list artists
// @Tags Artists
// @Produce json
// @Param page query int false "page number, starting at 1"
// @Param pageSize query int false "rows per page"
// @Success 200 {array} dto.ArtistDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Artists [get]
func listArtists(c echo.Context) error { return artists.list(c) }

// @Summary get an artist
// @Tags Artists
// @Produce json
// @Param id path int true "Artist ID"
// @Success 200 {object} dto.ArtistDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Artists/{id} [get]
func getArtist(c echo.Context) error { return artists.get(c) }

// @Summary create an artist
// @Tags Artists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateArtistDTO true "new artist"
// @Success 201 {object} dto.ArtistDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 401 {object} webserver.ErrorBody
// @Router /Artists [post]
func createArtist(c echo.Context) error { return artists.create(c) }

// @Summary replace an artist
// @Tags Artists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Artist ID"
// @Param body body dto.UpdateArtistDTO true "artist with the id of the path and the version last read"
// @Success 204
// @Failure 400 {object} webserver.ErrorBody
// @Failure 401 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Failure 409 {object} webserver.ErrorBody
// @Router /Artists/{id} [put]
func updateArtist(c echo.Context) error { return artists.update(c) }

// @Summary delete an artist
// @Tags Artists
// @Produce json
// @Security BearerAuth
// @Param id path int true "Artist ID"
// @Success 204
// @Failure 401 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Artists/{id} [delete]
func deleteArtist(c echo.Context) error { return artists.delete(c) }

// listArtistEvents returns the events an artist takes part in
//
// @Summary events of an artist
// @Tags Artists
// @Produce json
// @Param id path int true "Artist ID"
// @Param page query int false "page number, starting at 1"
// @Param pageSize query int false "rows per page"
// @Success 200 {array} dto.EventDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Artists/{id}/Events [get]
func listArtistEvents(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return idError(c, err, "Artist")
	}
	page, err := parsePage(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PAGINATION", err.Error(), nil)
	}
	rows, err := GetRepos(c).Artists.Events(c.Request().Context(), id, page)
	return respondList[dto.EventDTO](c, rows, err, "events")
}
