// Package queries holds the read side: availability, ticket lookups and
// trade views. Queries never mutate collaborator state.
package queries

import (
	"context"
	"sort"

	"ticketing-orchestrator/internal/client"
	"ticketing-orchestrator/internal/domain/booking"
	"ticketing-orchestrator/internal/pkg/errs"
	"ticketing-orchestrator/internal/usecase"
)

type CategoryAvailability struct {
	Category   string   `json:"category"`
	Available  int      `json:"available"`
	SeatIDs    []string `json:"seatIDs"`
	PriceCents int64    `json:"priceCents"`
	Currency   string   `json:"currency"`
}

type AvailabilityResult struct {
	EventID    string                 `json:"eventID"`
	Categories []CategoryAvailability `json:"categories"`
}

type AvailabilityQuery struct {
	seats   client.Seat
	pricing booking.PriceCalculator
}

func NewAvailabilityQuery(seats client.Seat, pricing booking.PriceCalculator) *AvailabilityQuery {
	return &AvailabilityQuery{seats: seats, pricing: pricing}
}

// ForEvent groups the event's open seats by category. An unknown category
// filter is a validation error rather than an empty result.
func (q *AvailabilityQuery) ForEvent(ctx context.Context, eventID, category string) (*AvailabilityResult, error) {
	if category != "" && !booking.KnownCategory(category) {
		return nil, errs.Mark(booking.ErrUnknownCategory, usecase.ErrValidation)
	}

	seats, err := q.seats.Availability(ctx, eventID)
	if err != nil {
		return nil, markClientErr(err)
	}

	byCategory := map[string][]string{}
	for _, s := range seats {
		if s.Status != booking.SeatAvailable {
			continue
		}
		if category != "" && s.Category != category {
			continue
		}
		byCategory[s.Category] = append(byCategory[s.Category], s.ID)
	}

	result := &AvailabilityResult{EventID: eventID, Categories: make([]CategoryAvailability, 0, len(byCategory))}
	for cat, ids := range byCategory {
		price, err := q.pricing.PriceCents(cat, 1)
		if err != nil {
			// Seats in an unpriced category are invisible to buyers.
			continue
		}
		sort.Strings(ids)
		result.Categories = append(result.Categories, CategoryAvailability{
			Category:   cat,
			Available:  len(ids),
			SeatIDs:    ids,
			PriceCents: price,
			Currency:   booking.Currency,
		})
	}
	sort.Slice(result.Categories, func(i, j int) bool {
		return result.Categories[i].Category < result.Categories[j].Category
	})
	return result, nil
}

func markClientErr(err error) error {
	switch {
	case client.IsKind(err, client.KindNotFound):
		return errs.Mark(err, usecase.ErrNotFound)
	case client.IsKind(err, client.KindConflict):
		return errs.Mark(err, usecase.ErrConflict)
	case client.IsKind(err, client.KindInvalid):
		return errs.Mark(err, usecase.ErrValidation)
	default:
		return errs.Mark(err, usecase.ErrUpstreamUnavailable)
	}
}
