package response

import (
	"time"

	"ticketing-orchestrator/internal/usecase/commands"
	"ticketing-orchestrator/internal/usecase/queries"
)

type ProposalResponse struct {
	ProposalID     string `json:"proposalID"`
	TicketA        string `json:"ticketA"`
	TicketB        string `json:"ticketB"`
	RequesterID    string `json:"requesterID"`
	CounterpartyID string `json:"counterpartyID"`
	Status         string `json:"status"`
}

type AcceptResponse struct {
	ProposalID string   `json:"proposalID"`
	TicketA    string   `json:"ticketA"`
	TicketB    string   `json:"ticketB"`
	Status     string   `json:"status"`
	Declined   []string `json:"declinedProposals"`
}

type TradeCancelResponse struct {
	ProposalID string `json:"proposalID"`
	Status     string `json:"status"`
}

type ListForTradeResponse struct {
	TicketID string `json:"ticketID"`
	Listed   bool   `json:"listed_for_trade"`
}

type ProposalViewResponse struct {
	ProposalID     string    `json:"proposalID"`
	TicketA        string    `json:"ticketA"`
	TicketB        string    `json:"ticketB"`
	RequesterID    string    `json:"requesterID"`
	CounterpartyID string    `json:"counterpartyID"`
	Status         string    `json:"status"`
	Role           string    `json:"role,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type TradeStatusResponse struct {
	TicketID  string                 `json:"ticketID"`
	Proposals []ProposalViewResponse `json:"proposals"`
}

func FromProposeResult(r *commands.ProposeResult) *ProposalResponse {
	var resp ProposalResponse
	mustCopy(&resp, r)
	return &resp
}

func FromAcceptResult(r *commands.AcceptResult) *AcceptResponse {
	var resp AcceptResponse
	mustCopy(&resp, r)
	if resp.Declined == nil {
		resp.Declined = []string{}
	}
	return &resp
}

func FromTradeCancelResult(r *commands.TradeCancelResult) *TradeCancelResponse {
	var resp TradeCancelResponse
	mustCopy(&resp, r)
	return &resp
}

func FromListForTradeResult(r *commands.ListForTradeResult) *ListForTradeResponse {
	var resp ListForTradeResponse
	mustCopy(&resp, r)
	return &resp
}

func FromProposalView(v *queries.ProposalView) *ProposalViewResponse {
	var resp ProposalViewResponse
	mustCopy(&resp, v)
	return &resp
}

func FromProposalViews(views []queries.ProposalView) []ProposalViewResponse {
	out := make([]ProposalViewResponse, 0, len(views))
	for i := range views {
		out = append(out, *FromProposalView(&views[i]))
	}
	return out
}

func FromTradeStatusResult(r *queries.TradeStatusResult) *TradeStatusResponse {
	return &TradeStatusResponse{
		TicketID:  r.TicketID,
		Proposals: FromProposalViews(r.Proposals),
	}
}
