package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warewise/slotkeeper/internal/service/transactions"
)

// actorFrom extracts the acting operator from request headers. Authentication
// itself is handled upstream; the backend only needs identity and role.
func actorFrom(c *gin.Context) transactions.Actor {
	actor := transactions.Actor{
		ID:   c.GetHeader("X-Actor"),
		Role: c.GetHeader("X-Role"),
	}
	if actor.ID == "" {
		actor.ID = "anonymous"
	}
	return actor
}

// statusFor maps the transaction error taxonomy onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, transactions.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, transactions.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, transactions.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, transactions.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, transactions.ErrPersistence):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
