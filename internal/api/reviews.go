package api

import (
	"net/http"
	"strings"

	"github.com/artauction/auctionapi/internal/domain"
	"github.com/artauction/auctionapi/internal/dto"
	"github.com/artauction/auctionapi/internal/notify"
	"github.com/artauction/auctionapi/internal/repository"
	"github.com/artauction/auctionapi/internal/webserver"
	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"
)

var reviews = &resource[domain.Review, dto.ReviewDTO, dto.CreateReviewDTO, dto.UpdateReviewDTO, *domain.Review]{
	name:         "Reviews",
	label:        "Review",
	repo:         func(r *repository.Repositories) repository.CRUD[domain.Review] { return r.Reviews },
	check:        checkReviewRefs,
	createdTopic: notify.TopicReviewCreated,
}

func registerReviewRoutes(s *webserver.WebServer) {
	s.ApiGET("/Reviews", listReviews)
	s.ApiGET("/Reviews/:id", getReview)
	s.ApiPOST("/Reviews", createReview)
	s.ApiPUT("/Reviews/:id", updateReview)
	s.ApiDELETE("/Reviews/:id", deleteReview)
	s.ApiGET("/Reviews/Product/:productId", listReviewsByProduct)
	s.ApiGET("/Reviews/Product/:productId/stats", productRatingSummary)
	s.ApiGET("/Reviews/ByReviewerEmail/:email", listReviewsByReviewerEmail)
	s.ApiGET("/Reviews/ByRating/:rating", listReviewsByRating)
}

// @Summary list reviews
// @Tags Reviews
// @Produce json
// @Param page query int false "page number, starting at 1"
// @Param pageSize query int false "rows per page"
// @Success 200 {array} dto.ReviewDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Reviews [get]
func listReviews(c echo.Context) error { return reviews.list(c) }

// @Summary get a review
// @Tags Reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} dto.ReviewDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Reviews/{id} [get]
func getReview(c echo.Context) error { return reviews.get(c) }

// @Summary create a review
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateReviewDTO true "new review"
// @Success 201 {object} dto.ReviewDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 401 {object} webserver.ErrorBody
// @Router /Reviews [post]
func createReview(c echo.Context) error { return reviews.create(c) }

// @Summary replace a review
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Param body body dto.UpdateReviewDTO true "review with the id of the path and the version last read"
// @Success 204
// @Failure 400 {object} webserver.ErrorBody
// @Failure 401 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Failure 409 {object} webserver.ErrorBody
// @Router /Reviews/{id} [put]
func updateReview(c echo.Context) error { return reviews.update(c) }

// @Summary delete a review
// @Tags Reviews
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Success 204
// @Failure 401 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Reviews/{id} [delete]
func deleteReview(c echo.Context) error { return reviews.delete(c) }

func checkReviewRefs(c echo.Context, r *domain.Review) error {
	ctx := c.Request().Context()
	return exists(func() (bool, error) { return GetRepos(c).Products.Exists(ctx, r.ProductID) }, "product", r.ProductID)
}

// @Summary reviews of a product
// @Tags Reviews
// @Produce json
// @Param productId path int true "Product ID"
// @Param page query int false "page number, starting at 1"
// @Param pageSize query int false "rows per page"
// @Success 200 {array} dto.ReviewDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Reviews/Product/{productId} [get]
func listReviewsByProduct(c echo.Context) error {
	productID, err := parseIDParam(c, "productId")
	if err != nil {
		return idError(c, err, "Product")
	}
	page, err := parsePage(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PAGINATION", err.Error(), nil)
	}
	rows, err := GetRepos(c).Reviews.ByProduct(c.Request().Context(), productID, page)
	return respondList[dto.ReviewDTO](c, rows, err, "reviews")
}

// @Summary reviews written by a reviewer
// @Tags Reviews
// @Produce json
// @Param email path string true "reviewer email"
// @Param page query int false "page number, starting at 1"
// @Param pageSize query int false "rows per page"
// @Success 200 {array} dto.ReviewDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Reviews/ByReviewerEmail/{email} [get]
func listReviewsByReviewerEmail(c echo.Context) error {
	email := strings.TrimSpace(c.Param("email"))
	if email == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "email is required", nil)
	}
	page, err := parsePage(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PAGINATION", err.Error(), nil)
	}
	rows, err := GetRepos(c).Reviews.ByReviewerEmail(c.Request().Context(), email, page)
	return respondList[dto.ReviewDTO](c, rows, err, "reviews")
}

// @Summary reviews with a rating
// @Tags Reviews
// @Produce json
// @Param rating path int true "rating from 1 to 5"
// @Param page query int false "page number, starting at 1"
// @Param pageSize query int false "rows per page"
// @Success 200 {array} dto.ReviewDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Reviews/ByRating/{rating} [get]
func listReviewsByRating(c echo.Context) error {
	rating, valid := positiveInt(c.Param("rating"))
	if !valid || rating > 5 {
		return fail(c, http.StatusBadRequest, "INVALID_RATING", "rating must be between 1 and 5", nil)
	}
	page, err := parsePage(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PAGINATION", err.Error(), nil)
	}
	rows, err := GetRepos(c).Reviews.ByRating(c.Request().Context(), rating, page)
	return respondList[dto.ReviewDTO](c, rows, err, "reviews")
}

// productRatingSummary describes the ratings a product received
//
// @Summary rating summary of a product
// @Tags Reviews
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} dto.RatingSummary
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Reviews/Product/{productId}/stats [get]
func productRatingSummary(c echo.Context) error {
	productID, err := parseIDParam(c, "productId")
	if err != nil {
		return idError(c, err, "Product")
	}
	ratings, err := GetRepos(c).Reviews.Ratings(c.Request().Context(), productID)
	if err != nil {
		return serverError(c, err)
	}
	if len(ratings) == 0 {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "No reviews found", nil)
	}
	summary, err := summarize(productID, ratings)
	if err != nil {
		return serverError(c, err)
	}
	return ok(c, summary)
}

func summarize(productID int64, ratings []float64) (dto.RatingSummary, error) {
	data := stats.Float64Data(ratings)
	out := dto.RatingSummary{ProductID: productID, Count: data.Len()}
	var err error
	if out.Mean, err = data.Mean(); err != nil {
		return out, err
	}
	if out.Median, err = data.Median(); err != nil {
		return out, err
	}
	if out.Min, err = data.Min(); err != nil {
		return out, err
	}
	if out.Max, err = data.Max(); err != nil {
		return out, err
	}
	out.Mean, _ = stats.Round(out.Mean, 2)
	return out, nil
}
