package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

type registerReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResp struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param input body registerReq true "Registration"
// @Success 201 {object} authResp
// @Failure 400 {object} map[string]string
// @Router /users/register [post]
func (s *Server) register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please provide name, email and password"})
		return
	}

	user, token, err := s.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResp{Token: token, User: user})
}

// @Summary Log in
// @Tags users
// @Accept json
// @Produce json
// @Param input body loginReq true "Credentials"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /users/login [post]
func (s *Server) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please provide email and password"})
		return
	}

	token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.User
// @Failure 401 {object} map[string]string
// @Router /users/me [get]
func (s *Server) profile(c *gin.Context) {
	identity, _ := identityFrom(c)

	user, err := s.users.Profile(c.Request.Context(), identity.UserID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
