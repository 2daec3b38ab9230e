package response

import (
	"ticketing-orchestrator/internal/usecase/queries"
)

type TicketResponse struct {
	TicketID       string `json:"ticketID"`
	EventID        string `json:"eventID"`
	SeatID         string `json:"seatID"`
	OwnerID        string `json:"ownerID"`
	Status         string `json:"status"`
	TransactionID  string `json:"transactionID,omitempty"`
	TradeRequestID string `json:"tradeRequestID,omitempty"`
	ListedForTrade bool   `json:"listed_for_trade"`
}

type AvailabilityResponse struct {
	EventID    string                 `json:"eventID"`
	Categories []CategoryAvailability `json:"categories"`
}

type CategoryAvailability struct {
	Category   string   `json:"category"`
	Available  int      `json:"available"`
	SeatIDs    []string `json:"seatIDs"`
	PriceCents int64    `json:"priceCents"`
	Currency   string   `json:"currency"`
}

type VerifyResponse struct {
	TicketID string `json:"ticketID"`
	Valid    bool   `json:"valid"`
	Reason   string `json:"reason,omitempty"`
}

func FromTicketViews(views []queries.TicketView) []TicketResponse {
	out := make([]TicketResponse, 0, len(views))
	for i := range views {
		var resp TicketResponse
		mustCopy(&resp, &views[i])
		out = append(out, resp)
	}
	return out
}

func FromAvailabilityResult(r *queries.AvailabilityResult) *AvailabilityResponse {
	var resp AvailabilityResponse
	mustCopy(&resp, r)
	if resp.Categories == nil {
		resp.Categories = []CategoryAvailability{}
	}
	return &resp
}

func FromVerifyResult(r *queries.VerifyResult) *VerifyResponse {
	var resp VerifyResponse
	mustCopy(&resp, r)
	return &resp
}
