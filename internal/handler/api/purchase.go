package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	reqdto "ticketing-orchestrator/internal/handler/dto/request"
	resdto "ticketing-orchestrator/internal/handler/dto/response"
	"ticketing-orchestrator/internal/usecase"
	"ticketing-orchestrator/internal/usecase/commands"
)

type PurchaseHandler struct {
	orchestrator PurchaseCommands
}

func NewPurchaseHandler(orchestrator PurchaseCommands) *PurchaseHandler {
	return &PurchaseHandler{orchestrator: orchestrator}
}

// @Summary Lock seats
// @Description Reserve seats in a category and create pending tickets
// @Tags purchase
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event path string true "Event ID"
// @Param category path string true "Seat category"
// @Param request body reqdto.LockSeatsRequest true "Lock request"
// @Success 201 {object} resdto.LockResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /lock/{event}/{category} [post]
func (h *PurchaseHandler) Lock(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req reqdto.LockSeatsRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.orchestrator.Lock(c.Request.Context(), commands.LockInput{
		UserID:   userID,
		EventID:  c.Param("event"),
		Category: c.Param("category"),
		Quantity: req.Quantity,
	})
	if err != nil {
		respondError(c, err, nil)
		return
	}

	status := http.StatusCreated
	if result.Reused {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromLockResult(result))
}

// @Summary Purchase locked seats
// @Description Charge the pending tickets and confirm seats and tickets
// @Tags purchase
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param event path string true "Event ID"
// @Param category path string true "Seat category"
// @Param request body reqdto.PurchaseRequest true "Purchase request"
// @Success 200 {object} resdto.PurchaseResponse
// @Failure 400 {object} httperr.Response
// @Failure 402 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /purchase/{event}/{category} [post]
func (h *PurchaseHandler) Purchase(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	key, err := idempotencyKey(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req reqdto.PurchaseRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.orchestrator.Purchase(c.Request.Context(), commands.PurchaseInput{
		UserID:         userID,
		EventID:        c.Param("event"),
		Category:       c.Param("category"),
		PaymentSource:  req.PaymentSource,
		IdempotencyKey: key,
	})
	if err != nil {
		// Declines and post-payment gaps carry the saga's state so the
		// caller knows what is still locked or charged.
		if result != nil && (errors.Is(err, usecase.ErrPaymentDeclined) || errors.Is(err, usecase.ErrPostPaymentInconsistency)) {
			respondError(c, err, resdto.FromPurchaseResult(result))
			return
		}
		respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPurchaseResult(result))
}

// @Summary Timeout pending purchase
// @Description Release seats and void tickets of an unpaid lock
// @Tags purchase
// @Produce json
// @Security BearerAuth
// @Param event path string true "Event ID"
// @Param category path string true "Seat category"
// @Success 200 {object} resdto.TimeoutResponse
// @Success 207 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /timeout/{event}/{category} [post]
func (h *PurchaseHandler) Timeout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.orchestrator.Timeout(c.Request.Context(), userID, c.Param("event"), c.Param("category"))
	if err != nil {
		if result != nil && errors.Is(err, usecase.ErrPartialOutcome) {
			respondError(c, err, resdto.FromTimeoutResult(result))
			return
		}
		respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromTimeoutResult(result))
}
