package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"storefront/internal/domain"
	"storefront/internal/port"
)

type moneyReq struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" binding:"required"`
}

func (m moneyReq) toDomain() (domain.Money, error) {
	unit, err := currency.ParseISO(m.Currency)
	if err != nil {
		return domain.Money{}, fmt.Errorf("currency[%s] is not valid: %w", m.Currency, err)
	}

	return domain.Money{Amount: m.Amount, Currency: unit}, nil
}

type productReq struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       moneyReq `json:"price" binding:"required"`
	CategoryID  string   `json:"category_id"`
	Stock       int64    `json:"stock"`
}

func (r productReq) toDomain() (domain.Product, error) {
	price, err := r.Price.toDomain()
	if err != nil {
		return domain.Product{}, err
	}

	var categoryID uuid.UUID
	if r.CategoryID != "" {
		categoryID, err = uuid.Parse(r.CategoryID)
		if err != nil {
			return domain.Product{}, fmt.Errorf("category_id is not valid: %w", err)
		}
	}

	return domain.Product{
		Name:        r.Name,
		Description: r.Description,
		Price:       price,
		CategoryID:  categoryID,
		Stock:       r.Stock,
	}, nil
}

// @Summary List products
// @Tags products
// @Produce json
// @Param q query string false "Name contains"
// @Param category_id query string false "Category ID"
// @Param min_price query string false "Min price"
// @Param max_price query string false "Max price"
// @Success 200 {array} domain.Product
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	var filter port.ProductFilter

	filter.NameSubstring = c.Query("q")

	if v := c.Query("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		filter.CategoryID = id
	}
	if v := c.Query("min_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MinPrice = &d
		}
	}
	if v := c.Query("max_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MaxPrice = &d
		}
	}

	products, err := s.products.List(c.Request.Context(), filter)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	product, err := s.products.Get(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body productReq true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Router /products [post]
func (s *Server) createProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	product, err := req.toDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := s.products.Create(c.Request.Context(), product)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param input body productReq true "Product"
// @Success 200 {object} domain.Product
// @Failure 404 {object} map[string]string
// @Router /products/{id} [put]
func (s *Server) updateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	product, err := req.toDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product.ID = id

	updated, err := s.products.Update(c.Request.Context(), product)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// @Summary Delete product
// @Tags products
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /products/{id} [delete]
func (s *Server) deleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := s.products.Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
