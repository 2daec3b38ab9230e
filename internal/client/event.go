package client

import (
	"context"
	"net/http"
	"time"

	"ticketing-orchestrator/internal/domain/booking"
	"ticketing-orchestrator/internal/pkg/config"
)

// EventCatalog exposes the event schedule used by the refund-eligibility rule.
type EventCatalog interface {
	Get(ctx context.Context, eventID string) (*booking.Event, error)
}

type EventClient struct {
	httpClient
}

func NewEventClient(cfg config.CollaboratorConfig) *EventClient {
	return &EventClient{newHTTPClient("event", cfg.EventBaseURL, cfg)}
}

type eventPayload struct {
	EventID  string    `json:"eventID"`
	Name     string    `json:"name"`
	StartsAt time.Time `json:"startsAt"`
}

func (c *EventClient) Get(ctx context.Context, eventID string) (*booking.Event, error) {
	var p eventPayload
	if err := c.doJSON(ctx, http.MethodGet, "/event/"+eventID, nil, &p); err != nil {
		return nil, err
	}
	return &booking.Event{ID: p.EventID, Name: p.Name, StartsAt: p.StartsAt}, nil
}
