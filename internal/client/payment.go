package client

import (
	"context"
	"net/http"

	"ticketing-orchestrator/internal/domain/booking"
	"ticketing-orchestrator/internal/pkg/config"
)

// Payment is the contract of the payment service. Charge and Refund carry an
// idempotency key so retried calls settle on the first attempt's outcome.
type Payment interface {
	Charge(ctx context.Context, req ChargeRequest) (*booking.Transaction, error)
	Refund(ctx context.Context, req RefundRequest) (*booking.Transaction, error)
	GetByTransaction(ctx context.Context, transactionID string) (*booking.Transaction, error)
}

type ChargeRequest struct {
	UserID         string
	AmountCents    int64
	Currency       string
	Source         string
	IdempotencyKey string
}

type RefundRequest struct {
	TransactionID  string
	ChargeRef      string
	AmountCents    int64
	Currency       string
	IdempotencyKey string
}

type PaymentClient struct {
	httpClient
}

func NewPaymentClient(cfg config.CollaboratorConfig) *PaymentClient {
	return &PaymentClient{newHTTPClient("payment", cfg.PaymentBaseURL, cfg)}
}

type transactionPayload struct {
	TransactionID  string `json:"transactionID"`
	UserID         string `json:"userID"`
	ChargeRef      string `json:"chargeRef"`
	AmountCents    int64  `json:"amountCents"`
	Currency       string `json:"currency"`
	Kind           string `json:"kind"`
	Status         string `json:"status"`
	IdempotencyKey string `json:"idempotencyKey"`
}

func (p transactionPayload) toDomain() booking.Transaction {
	return booking.Transaction{
		ID:             p.TransactionID,
		UserID:         p.UserID,
		ChargeRef:      p.ChargeRef,
		AmountCents:    p.AmountCents,
		Currency:       p.Currency,
		Kind:           booking.TransactionKind(p.Kind),
		Status:         booking.TransactionStatus(p.Status),
		IdempotencyKey: p.IdempotencyKey,
	}
}

func (c *PaymentClient) Charge(ctx context.Context, req ChargeRequest) (*booking.Transaction, error) {
	body := map[string]any{
		"userID":         req.UserID,
		"amountCents":    req.AmountCents,
		"currency":       req.Currency,
		"source":         req.Source,
		"idempotencyKey": req.IdempotencyKey,
	}
	var p transactionPayload
	if err := c.doJSON(ctx, http.MethodPost, "/payment/charge", body, &p); err != nil {
		return nil, err
	}
	t := p.toDomain()
	return &t, nil
}

func (c *PaymentClient) Refund(ctx context.Context, req RefundRequest) (*booking.Transaction, error) {
	body := map[string]any{
		"transactionID":  req.TransactionID,
		"chargeRef":      req.ChargeRef,
		"amountCents":    req.AmountCents,
		"currency":       req.Currency,
		"idempotencyKey": req.IdempotencyKey,
	}
	var p transactionPayload
	if err := c.doJSON(ctx, http.MethodPost, "/payment/refund", body, &p); err != nil {
		return nil, err
	}
	t := p.toDomain()
	return &t, nil
}

func (c *PaymentClient) GetByTransaction(ctx context.Context, transactionID string) (*booking.Transaction, error) {
	var p transactionPayload
	if err := c.doJSON(ctx, http.MethodGet, "/payment/"+transactionID, nil, &p); err != nil {
		return nil, err
	}
	t := p.toDomain()
	return &t, nil
}
