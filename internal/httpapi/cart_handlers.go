package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type addToCartReq struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
}

type updateCartItemReq struct {
	Quantity int64 `json:"quantity" binding:"required,min=1"`
}

// @Summary Get own cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Cart
// @Failure 401 {object} map[string]string
// @Router /cart [get]
func (s *Server) getCart(c *gin.Context) {
	identity, _ := identityFrom(c)

	cart, err := s.carts.GetCart(c.Request.Context(), identity.UserID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// @Summary Add product to cart
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body addToCartReq true "Line item"
// @Success 200 {object} domain.Cart
// @Failure 400 {object} map[string]string
// @Router /cart [post]
func (s *Server) addToCart(c *gin.Context) {
	identity, _ := identityFrom(c)

	var req addToCartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product_id"})
		return
	}

	cart, err := s.carts.AddItem(c.Request.Context(), identity.UserID, productID, req.Quantity)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// @Summary Set cart item quantity
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Param input body updateCartItemReq true "Quantity"
// @Success 200 {object} domain.Cart
// @Failure 404 {object} map[string]string
// @Router /cart/{productId} [put]
func (s *Server) updateCartItem(c *gin.Context) {
	identity, _ := identityFrom(c)

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req updateCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	cart, err := s.carts.UpdateItem(c.Request.Context(), identity.UserID, productID, req.Quantity)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// @Summary Remove product from cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Success 200 {object} domain.Cart
// @Failure 404 {object} map[string]string
// @Router /cart/{productId} [delete]
func (s *Server) removeFromCart(c *gin.Context) {
	identity, _ := identityFrom(c)

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	cart, err := s.carts.RemoveItem(c.Request.Context(), identity.UserID, productID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}
