package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reqdto "ticketing-orchestrator/internal/handler/dto/request"
	resdto "ticketing-orchestrator/internal/handler/dto/response"
	"ticketing-orchestrator/internal/usecase/commands"
)

type TradeHandler struct {
	orchestrator TradeCommands
	query        TradeQueries
}

func NewTradeHandler(orchestrator TradeCommands, query TradeQueries) *TradeHandler {
	return &TradeHandler{orchestrator: orchestrator, query: query}
}

// @Summary Propose a trade
// @Description Offer one confirmed ticket against another listed for trade
// @Tags trade
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param request body reqdto.ProposeTradeRequest true "Trade proposal"
// @Success 201 {object} resdto.ProposalResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /trade-requests [post]
func (h *TradeHandler) Propose(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	key, err := idempotencyKey(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req reqdto.ProposeTradeRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.orchestrator.Propose(c.Request.Context(), commands.ProposeInput{
		RequesterID:    userID,
		TicketA:        req.TicketA,
		TicketB:        req.TicketB,
		IdempotencyKey: key,
	})
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromProposeResult(result))
}

// @Summary Accept a trade proposal
// @Description Commit the swap; competing pending proposals are declined
// @Tags trade
// @Produce json
// @Security BearerAuth
// @Param id path string true "Proposal ID"
// @Success 200 {object} resdto.AcceptResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /trade-requests/{id}/accept [patch]
func (h *TradeHandler) Accept(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid proposal ID format"})
		return
	}

	result, err := h.orchestrator.Accept(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAcceptResult(result))
}

// @Summary Cancel a trade proposal
// @Description Withdraw a pending proposal; either participant may cancel
// @Tags trade
// @Produce json
// @Security BearerAuth
// @Param id path string true "Proposal ID"
// @Success 200 {object} resdto.TradeCancelResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /trade-requests/{id}/cancel [patch]
func (h *TradeHandler) Cancel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid proposal ID format"})
		return
	}

	result, err := h.orchestrator.Cancel(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTradeCancelResult(result))
}

// @Summary Get a trade proposal
// @Tags trade
// @Produce json
// @Security BearerAuth
// @Param id path string true "Proposal ID"
// @Success 200 {object} resdto.ProposalViewResponse
// @Failure 404 {object} httperr.Response
// @Router /trade-requests/{id} [get]
func (h *TradeHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid proposal ID format"})
		return
	}

	view, err := h.query.ByID(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProposalView(view))
}

// @Summary List the caller's trade proposals
// @Tags trade
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by proposal status"
// @Success 200 {array} resdto.ProposalViewResponse
// @Failure 400 {object} httperr.Response
// @Router /trade-requests [get]
func (h *TradeHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	views, err := h.query.ForUser(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProposalViews(views))
}

// @Summary Trade history of a ticket
// @Tags trade
// @Produce json
// @Security BearerAuth
// @Param ticket path string true "Ticket ID"
// @Success 200 {object} resdto.TradeStatusResponse
// @Router /trade-status/{ticket} [get]
func (h *TradeHandler) StatusForTicket(c *gin.Context) {
	result, err := h.query.StatusForTicket(c.Request.Context(), c.Param("ticket"))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTradeStatusResult(result))
}

// @Summary Toggle a ticket's trade listing
// @Tags trade
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ticket path string true "Ticket ID"
// @Param request body reqdto.ListForTradeRequest true "Listing flag"
// @Success 200 {object} resdto.ListForTradeResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /tickets/{ticket}/list-for-trade [put]
func (h *TradeHandler) ListForTrade(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req reqdto.ListForTradeRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil || req.Listed == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.orchestrator.ListForTrade(c.Request.Context(), userID, c.Param("ticket"), *req.Listed)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromListForTradeResult(result))
}
