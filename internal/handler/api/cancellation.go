package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	resdto "ticketing-orchestrator/internal/handler/dto/response"
	"ticketing-orchestrator/internal/usecase"
)

type CancellationHandler struct {
	orchestrator CancellationCommands
}

func NewCancellationHandler(orchestrator CancellationCommands) *CancellationHandler {
	return &CancellationHandler{orchestrator: orchestrator}
}

// @Summary Check refund eligibility
// @Description Report whether cancelling the transaction now earns a refund; blocked bookings answer ineligible with the reason
// @Tags cancellation
// @Produce json
// @Security BearerAuth
// @Param txn path string true "Transaction ID"
// @Success 200 {object} resdto.EligibilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /refund-eligibility/{txn} [get]
func (h *CancellationHandler) RefundEligibility(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.orchestrator.CheckEligibility(c.Request.Context(), userID, c.Param("txn"))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromEligibilityResult(result))
}

// @Summary Cancel a purchase
// @Description Void the transaction's tickets, release seats and refund when eligible
// @Tags cancellation
// @Produce json
// @Security BearerAuth
// @Param txn path string true "Transaction ID"
// @Success 200 {object} resdto.CancelResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /cancel/{txn} [post]
func (h *CancellationHandler) Cancel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.orchestrator.Cancel(c.Request.Context(), userID, c.Param("txn"))
	if err != nil {
		if result != nil && errors.Is(err, usecase.ErrPostPaymentInconsistency) {
			respondError(c, err, resdto.FromCancelResult(result))
			return
		}
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCancelResult(result))
}
