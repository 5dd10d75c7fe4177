package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/service"
)

func mapErrorToStatus(err error) int {
	var (
		insufficientStock *domain.InsufficientStockError
		invalidStatus     *domain.InvalidStatusError
	)

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrMixedCurrencies),
		errors.As(err, &insufficientStock),
		errors.As(err, &invalidStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps the error to a status; client errors carry their message,
// server errors are logged in full and surfaced generically.
func (s *Server) respondError(c *gin.Context, err error) {
	status := mapErrorToStatus(err)

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
