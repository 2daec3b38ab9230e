// Package api contains the gin handlers. Handlers parse and authenticate,
// delegate to a command or query, and translate the result; they hold no
// orchestration logic of their own.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ticketing-orchestrator/internal/handler/httperr"
	"ticketing-orchestrator/internal/handler/middleware"
)

// respondError converts a marked usecase error into the public envelope.
// detail may carry a partial-result payload for multi-status responses;
// without one, any detail string attached to the error identifies the
// failing sub-resource alongside the canned message.
func respondError(c *gin.Context, err error, detail any) {
	if detail == nil {
		detail = httperr.DetailOf(err)
	}
	httperr.AbortWithError(c, httperr.StatusOf(err), err, httperr.MessageOf(err), detail)
}

// currentUserID aborts with 500 when the auth middleware did not run; the
// route table guarantees it does.
func currentUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return "", false
	}
	return userID, true
}

var errIdempotencyKeyRequired = errors.New("Idempotency-Key header required")

func idempotencyKey(c *gin.Context) (uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return uuid.Nil, errIdempotencyKeyRequired
	}
	key, err := uuid.Parse(keyStr)
	if err != nil {
		return uuid.Nil, errors.New("invalid idempotency key format")
	}
	return key, nil
}
