package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type placeOrderReq struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
}

type updateOrderStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// @Summary Place an order from the cart
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body placeOrderReq true "Shipping"
// @Success 201 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Router /orders [post]
func (s *Server) placeOrder(c *gin.Context) {
	identity, _ := identityFrom(c)

	var req placeOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shipping_address is required"})
		return
	}

	order, err := s.orders.PlaceOrder(c.Request.Context(), identity.UserID, req.ShippingAddress)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// @Summary List all orders (admin)
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Order
// @Failure 403 {object} map[string]string
// @Router /orders [get]
func (s *Server) listAllOrders(c *gin.Context) {
	orders, err := s.orders.ListAllOrders(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// @Summary List own order history
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Order
// @Router /orders/my-orders [get]
func (s *Server) listMyOrders(c *gin.Context) {
	identity, _ := identityFrom(c)

	orders, err := s.orders.ListOrders(c.Request.Context(), identity.UserID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// @Summary Get order by id
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (s *Server) getOrder(c *gin.Context) {
	identity, _ := identityFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	order, err := s.orders.GetOrder(c.Request.Context(), identity.UserID, identity.Role, id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// @Summary Update order status (admin)
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param input body updateOrderStatusReq true "Status"
// @Success 200 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [put]
func (s *Server) updateOrderStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req updateOrderStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	order, err := s.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// @Summary Cancel a pending order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/cancel [post]
func (s *Server) cancelOrder(c *gin.Context) {
	identity, _ := identityFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	order, err := s.orders.CancelOrder(c.Request.Context(), identity.UserID, identity.Role, id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}
