package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type categoryReq struct {
	Name string `json:"name" binding:"required"`
}

// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} domain.Category
// @Router /categories [get]
func (s *Server) listCategories(c *gin.Context) {
	categories, err := s.categories.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// @Summary Get category by id
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} domain.Category
// @Failure 404 {object} map[string]string
// @Router /categories/{id} [get]
func (s *Server) getCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	category, err := s.categories.Get(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body categoryReq true "Category"
// @Success 201 {object} domain.Category
// @Failure 400 {object} map[string]string
// @Router /categories [post]
func (s *Server) createCategory(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	category, err := s.categories.Create(c.Request.Context(), req.Name)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// @Summary Update category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param input body categoryReq true "Category"
// @Success 200 {object} domain.Category
// @Failure 404 {object} map[string]string
// @Router /categories/{id} [put]
func (s *Server) updateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	category, err := s.categories.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// @Summary Delete category
// @Tags categories
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /categories/{id} [delete]
func (s *Server) deleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := s.categories.Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
