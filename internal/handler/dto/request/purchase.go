package request

type LockSeatsRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type PurchaseRequest struct {
	PaymentSource string `json:"paymentSource" binding:"required"`
}
