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
)

var orders = &resource[domain.Order, dto.OrderDTO, dto.CreateOrderDTO, dto.UpdateOrderDTO, *domain.Order]{
	name:         "Orders",
	label:        "Order",
	repo:         func(r *repository.Repositories) repository.CRUD[domain.Order] { return r.Orders },
	check:        checkOrderRefs,
	createdTopic: notify.TopicOrderCreated,
	updatedTopic: notify.TopicOrderUpdated,
	deletedTopic: notify.TopicOrderDeleted,
}

func registerOrderRoutes(s *webserver.WebServer) {
	s.ApiGET("/Orders", listOrders)
	s.ApiGET("/Orders/:id", getOrder)
	s.ApiPOST("/Orders", createOrder)
	s.ApiPUT("/Orders/:id", updateOrder)
	s.ApiDELETE("/Orders/:id", deleteOrder)
	s.ApiGET("/Orders/:id/Items", listOrderItems)
	s.ApiGET("/Orders/ByCustomerEmail/:email", listOrdersByCustomerEmail)
	s.ApiGET("/Orders/ByStatus/:status", listOrdersByStatus)
}

// @Summary list orders
// @Tags Orders
// @Produce json
// @Param page query int false "page number, starting at 1"
// @Param pageSize query int false "rows per page"
// @Success 200 {array} dto.OrderDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Orders [get]
func listOrders(c echo.Context) error { return orders.list(c) }

// @Summary get an order
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} dto.OrderDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Orders/{id} [get]
func getOrder(c echo.Context) error { return orders.get(c) }

// @Summary create an order
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateOrderDTO true "new order"
// @Success 201 {object} dto.OrderDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 401 {object} webserver.ErrorBody
// @Router /Orders [post]
func createOrder(c echo.Context) error { return orders.create(c) }

// @Summary replace an order
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param body body dto.UpdateOrderDTO true "order with the id of the path and the version last read"
// @Success 204
// @Failure 400 {object} webserver.ErrorBody
// @Failure 401 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Failure 409 {object} webserver.ErrorBody
// @Router /Orders/{id} [put]
func updateOrder(c echo.Context) error { return orders.update(c) }

// @Summary delete an order
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 204
// @Failure 401 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Orders/{id} [delete]
func deleteOrder(c echo.Context) error { return orders.delete(c) }

func checkOrderRefs(c echo.Context, o *domain.Order) error {
	ctx := c.Request().Context()
	products := GetRepos(c).Products
	for _, item := range o.OrderItems {
		productID := item.ProductID
		if err := exists(func() (bool, error) { return products.Exists(ctx, productID) }, "product", productID); err != nil {
			return err
		}
	}
	return nil
}

// @Summary items of an order
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {array} dto.OrderItemDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Orders/{id}/Items [get]
func listOrderItems(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return idError(c, err, "Order")
	}
	rows, err := GetRepos(c).Orders.Items(c.Request().Context(), id)
	return respondList[dto.OrderItemDTO](c, rows, err, "order items")
}

// @Summary orders of a customer
// @Tags Orders
// @Produce json
// @Param email path string true "customer email"
// @Param page query int false "page number, starting at 1"
// @Param pageSize query int false "rows per page"
// @Success 200 {array} dto.OrderDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Orders/ByCustomerEmail/{email} [get]
func listOrdersByCustomerEmail(c echo.Context) error {
	email := strings.TrimSpace(c.Param("email"))
	if email == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "email is required", nil)
	}
	page, err := parsePage(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PAGINATION", err.Error(), nil)
	}
	rows, err := GetRepos(c).Orders.ByCustomerEmail(c.Request().Context(), email, page)
	return respondList[dto.OrderDTO](c, rows, err, "orders")
}

// listOrdersByStatus accepts a status name such as "shipped" or its number
//
// @Summary orders in a status
// @Tags Orders
// @Produce json
// @Param status path string true "Pending, Processing, Shipped, Delivered, Cancelled, Returned or 1-6"
// @Param page query int false "page number, starting at 1"
// @Param pageSize query int false "rows per page"
// @Success 200 {array} dto.OrderDTO
// @Failure 400 {object} webserver.ErrorBody
// @Failure 404 {object} webserver.ErrorBody
// @Router /Orders/ByStatus/{status} [get]
func listOrdersByStatus(c echo.Context) error {
	status, valid := domain.ParseOrderStatus(c.Param("status"))
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown order status", nil)
	}
	page, err := parsePage(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PAGINATION", err.Error(), nil)
	}
	rows, err := GetRepos(c).Orders.ByStatus(c.Request().Context(), status, page)
	return respondList[dto.OrderDTO](c, rows, err, "orders")
}
