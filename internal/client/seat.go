package client

import (
	"context"
	"net/http"

	"ticketing-orchestrator/internal/domain/booking"
	"ticketing-orchestrator/internal/pkg/config"
)

// Seat is the contract of the seat-allocation service. Reserve, Confirm and
// Release are conditional transitions: a 409 means the precondition on the
// current status failed, typically because another caller won the race.
type Seat interface {
	Availability(ctx context.Context, eventID string) ([]booking.Seat, error)
	Details(ctx context.Context, seatID string) (*booking.Seat, error)
	Reserve(ctx context.Context, seatID string) error
	Confirm(ctx context.Context, seatID string) error
	Release(ctx context.Context, seatID string) error
}

type SeatClient struct {
	httpClient
}

func NewSeatClient(cfg config.CollaboratorConfig) *SeatClient {
	return &SeatClient{newHTTPClient("seat", cfg.SeatBaseURL, cfg)}
}

type seatPayload struct {
	SeatID   string `json:"seatid"`
	EventID  string `json:"eventid"`
	Category string `json:"cat_no"`
	Status   string `json:"status"`
}

func (p seatPayload) toDomain() booking.Seat {
	return booking.Seat{
		ID:       p.SeatID,
		EventID:  p.EventID,
		Category: p.Category,
		Status:   booking.SeatStatus(p.Status),
	}
}

func (c *SeatClient) Availability(ctx context.Context, eventID string) ([]booking.Seat, error) {
	var resp struct {
		AvailableSeats []seatPayload `json:"available_seats"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/availability/"+eventID, nil, &resp); err != nil {
		return nil, err
	}
	seats := make([]booking.Seat, 0, len(resp.AvailableSeats))
	for _, p := range resp.AvailableSeats {
		seats = append(seats, p.toDomain())
	}
	return seats, nil
}

func (c *SeatClient) Details(ctx context.Context, seatID string) (*booking.Seat, error) {
	var p seatPayload
	if err := c.doJSON(ctx, http.MethodGet, "/seat/details/"+seatID, nil, &p); err != nil {
		return nil, err
	}
	seat := p.toDomain()
	return &seat, nil
}

func (c *SeatClient) Reserve(ctx context.Context, seatID string) error {
	return c.doJSON(ctx, http.MethodPost, "/reserve/"+seatID, nil, nil)
}

func (c *SeatClient) Confirm(ctx context.Context, seatID string) error {
	return c.doJSON(ctx, http.MethodPut, "/confirm/"+seatID, nil, nil)
}

func (c *SeatClient) Release(ctx context.Context, seatID string) error {
	return c.doJSON(ctx, http.MethodPut, "/release/"+seatID, nil, nil)
}
