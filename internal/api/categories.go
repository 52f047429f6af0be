package api

import (
	"github.com/artauction/auctionapi/internal/domain"
	"github.com/artauction/auctionapi/internal/dto"
	"github.com/artauction/auctionapi/internal/repository"
	"github.com/artauction/auctionapi/internal/webserver"
	"github.com/labstack/echo/v4"
)

var categories = &resource[domain.Category, dto.CategoryDTO, dto.CreateCategoryDTO, dto.UpdateCategoryDTO, *domain.Category]{
	name:  "Categories",
	label: "Category",
	repo:  func(r *repository.Repositories) repository.CRUD[domain.Category] { return r.Categories },
}

func registerCategoryRoutes(s *webserver.WebServer) {
	s.ApiGET("/Categories", listCategories)
	s.ApiGET("/Categories/:id", getCategory)
	s.ApiPOST("/Categories", createCategory)
	s.ApiPUT("/Categories/:id", updateCategory)
	s.ApiDELETE("/Categories/:id", deleteCategory)
}

// @Summary list categories
// @Tags Categories
// @Produce json
// @Param page query int false "page number, starting at 1"
// @Param pageSize query int false "rows per page"
// @Success 200 {array} dto.CategoryDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Categories [get]
func listCategories(c echo.Context) error { return categories.list(c) }

// @Summary get a category
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.CategoryDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Categories/{id} [get]
func getCategory(c echo.Context) error { return categories.get(c) }

// @Summary create a category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateCategoryDTO true "new category"
// @Success 201 {object} dto.CategoryDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 401 {object} webserver.ErrorBody
// @Router /Categories [post]
func createCategory(c echo.Context) error { return categories.create(c) }

// @Summary replace a category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param body body dto.UpdateCategoryDTO true "category with the id of the path and the version last read"
// @Success 204
// @Failure 400 {object} webserver.ErrorBody
// @Failure 401 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Failure 409 {object} webserver.ErrorBody
// @Router /Categories/{id} [put]
func updateCategory(c echo.Context) error { return categories.update(c) }

// @Summary delete a category
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 204
// @Failure 401 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Categories/{id} [delete]
func deleteCategory(c echo.Context) error { return categories.delete(c) }
