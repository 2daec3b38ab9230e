package request

type ProposeTradeRequest struct {
	TicketA string `json:"ticketA" binding:"required"`
	TicketB string `json:"ticketB" binding:"required"`
}

type ListForTradeRequest struct {
	Listed *bool `json:"listed_for_trade" binding:"required"`
}

type VerifyTicketRequest struct {
	HolderID string `json:"holderID"`
}
