package api

import (
	"net/http"
	"strings"

	"github.com/artauction/auctionapi/internal/domain"
	"github.com/artauction/auctionapi/internal/dto"
	"github.com/artauction/auctionapi/internal/repository"
	"github.com/artauction/auctionapi/internal/webserver"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

var products = &resource[domain.Product, dto.ProductDTO, dto.CreateProductDTO, dto.UpdateProductDTO, *domain.Product]{
	name:  "Products",
	label: "Product",
	repo:  func(r *repository.Repositories) repository.CRUD[domain.Product] { return r.Products },
	check: checkProductRefs,
}

func registerProductRoutes(s *webserver.WebServer) {
	s.ApiGET("/Products", listProducts)
	s.ApiGET("/Products/:id", getProduct)
	s.ApiPOST("/Products", createProduct)
	s.ApiPUT("/Products/:id", updateProduct)
	s.ApiDELETE("/Products/:id", deleteProduct)
	s.ApiGET("/Products/export", exportProducts)
	s.ApiGET("/Products/category/:category", listProductsByCategory)
	s.ApiGET("/Products/search/:searchTerm", searchProducts)
	s.ApiGET("/Products/artist/:artistId", listProductsByArtist)
	s.ApiGET("/Products/priceRange", listProductsByPriceRange)
}

// @Summary list products
// @Tags Products
// @Produce json
// @Param page query int false "page number, starting at 1"
// @Param pageSize query int false "rows per page"
// @Success 200 {array} dto.ProductDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Products [get]
func listProducts(c echo.Context) error { return products.list(c) }

// @Summary get a product
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} dto.ProductDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Products/{id} [get]
func getProduct(c echo.Context) error { return products.get(c) }

// @Summary create a product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateProductDTO true "new product"
// @Success 201 {object} dto.ProductDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 401 {object} webserver.ErrorBody
// @Router /Products [post]
func createProduct(c echo.Context) error { return products.create(c) }

// @Summary replace a product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param body body dto.UpdateProductDTO true "product with the id of the path and the version last read"
// @Success 204
// @Failure 400 {object} webserver.ErrorBody
// @Failure 401 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Failure 409 {object} webserver.ErrorBody
// @Router /Products/{id} [put]
func updateProduct(c echo.Context) error { return products.update(c) }

// @Summary delete a product
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 204
// @Failure 401 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Products/{id} [delete]
func deleteProduct(c echo.Context) error { return products.delete(c) }

func checkProductRefs(c echo.Context, p *domain.Product) error {
	ctx := c.Request().Context()
	repos := GetRepos(c)
	if err := exists(func() (bool, error) { return repos.Artists.Exists(ctx, p.ArtistID) }, "artist", p.ArtistID); err != nil {
		return err
	}
	return exists(func() (bool, error) { return repos.Categories.Exists(ctx, p.CategoryID) }, "category", p.CategoryID)
}

// @Summary products of a category
// @Tags Products
// @Produce json
// @Param category path string true "category name"
// @Param page query int false "page number, starting at 1"
// @Param pageSize query int false "rows per page"
// @Success 200 {array} dto.ProductDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Products/category/{category} [get]
func listProductsByCategory(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PAGINATION", err.Error(), nil)
	}
	rows, err := GetRepos(c).Products.ByCategory(c.Request().Context(), c.Param("category"), page)
	return respondList[dto.ProductDTO](c, rows, err, "products")
}

// searchProducts matches the term against name and description, ignoring case
//
// @Summary search products by name or description
// @Tags Products
// @Produce json
// @Param searchTerm path string true "substring to look for"
// @Param page query int false "page number, starting at 1"
// @Param pageSize query int false "rows per page"
// @Success 200 {array} dto.ProductDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Products/search/{searchTerm} [get]
func searchProducts(c echo.Context) error {
	term := strings.TrimSpace(c.Param("searchTerm"))
	if term == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "searchTerm is required", nil)
	}
	page, err := parsePage(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PAGINATION", err.Error(), nil)
	}
	rows, err := GetRepos(c).Products.Search(c.Request().Context(), term, page)
	return respondList[dto.ProductDTO](c, rows, err, "products")
}

// @Summary products of an artist
// @Tags Products
// @Produce json
// @Param artistId path int true "Artist ID"
// @Param page query int false "page number, starting at 1"
// @Param pageSize query int false "rows per page"
// @Success 200 {array} dto.ProductDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Products/artist/{artistId} [get]
func listProductsByArtist(c echo.Context) error {
	artistID, err := parseIDParam(c, "artistId")
	if err != nil {
		return idError(c, err, "Artist")
	}
	page, err := parsePage(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PAGINATION", err.Error(), nil)
	}
	rows, err := GetRepos(c).Products.ByArtist(c.Request().Context(), artistID, page)
	return respondList[dto.ProductDTO](c, rows, err, "products")
}

// listProductsByPriceRange returns products with minPrice <= price <= maxPrice
//
// @Summary products priced within a range
// @Tags Products
// @Produce json
// @Param minPrice query number true "lowest price"
// @Param maxPrice query number true "highest price"
// @Param page query int false "page number, starting at 1"
// @Param pageSize query int false "rows per page"
// @Success 200 {array} dto.ProductDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Products/priceRange [get]
func listProductsByPriceRange(c echo.Context) error {
	minPrice, err := decimal.NewFromString(strings.TrimSpace(c.QueryParam("minPrice")))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_RANGE", "minPrice must be a number", nil)
	}
	maxPrice, err := decimal.NewFromString(strings.TrimSpace(c.QueryParam("maxPrice")))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_RANGE", "maxPrice must be a number", nil)
	}
	if minPrice.IsNegative() {
		return fail(c, http.StatusBadRequest, "INVALID_RANGE", "minPrice must not be negative", nil)
	}
	if minPrice.GreaterThan(maxPrice) {
		return fail(c, http.StatusBadRequest, "INVALID_RANGE", "minPrice must not exceed maxPrice", nil)
	}
	page, err := parsePage(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PAGINATION", err.Error(), nil)
	}
	rows, err := GetRepos(c).Products.ByPriceRange(c.Request().Context(), minPrice, maxPrice, page)
	return respondList[dto.ProductDTO](c, rows, err, "products")
}
