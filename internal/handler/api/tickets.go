package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reqdto "ticketing-orchestrator/internal/handler/dto/request"
	resdto "ticketing-orchestrator/internal/handler/dto/response"
)

type TicketHandler struct {
	availability AvailabilityQueries
	tickets      TicketQueries
}

func NewTicketHandler(availability AvailabilityQueries, tickets TicketQueries) *TicketHandler {
	return &TicketHandler{availability: availability, tickets: tickets}
}

// @Summary Seat availability for an event
// @Tags tickets
// @Produce json
// @Param event path string true "Event ID"
// @Param category path string false "Seat category"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /availability/{event} [get]
func (h *TicketHandler) Availability(c *gin.Context) {
	result, err := h.availability.ForEvent(c.Request.Context(), c.Param("event"), c.Param("category"))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityResult(result))
}

// @Summary The caller's tickets
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.TicketResponse
// @Router /tickets [get]
func (h *TicketHandler) MyTickets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	views, err := h.tickets.ForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTicketViews(views))
}

// @Summary The caller's unpaid locks for an event
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param event path string true "Event ID"
// @Success 200 {array} resdto.TicketResponse
// @Router /tickets/pending/{event} [get]
func (h *TicketHandler) Pending(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	views, err := h.tickets.PendingForUser(c.Request.Context(), userID, c.Param("event"))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTicketViews(views))
}

// @Summary Tickets listed for trade at an event
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param event path string true "Event ID"
// @Success 200 {array} resdto.TicketResponse
// @Router /tickets/up-for-trade/{event} [get]
func (h *TicketHandler) UpForTrade(c *gin.Context) {
	views, err := h.tickets.UpForTrade(c.Request.Context(), c.Param("event"))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTicketViews(views))
}

// @Summary Verify a ticket at the gate
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ticket path string true "Ticket ID"
// @Param request body reqdto.VerifyTicketRequest false "Presented holder"
// @Success 200 {object} resdto.VerifyResponse
// @Failure 503 {object} httperr.Response
// @Router /tickets/{ticket}/verify [post]
func (h *TicketHandler) Verify(c *gin.Context) {
	var req reqdto.VerifyTicketRequest
	// Body is optional; a bare verify only checks the ticket status.
	_ = c.ShouldBindJSON(&req)

	result, err := h.tickets.Verify(c.Request.Context(), c.Param("ticket"), req.HolderID)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromVerifyResult(result))
}
