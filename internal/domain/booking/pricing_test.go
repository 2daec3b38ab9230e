//go:build unit

package booking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketing-orchestrator/internal/domain/booking"
)

func TestRateTablePriceCalculator(t *testing.T) {
	calc := booking.NewRateTablePriceCalculator()

	tests := []struct {
		name      string
		category  string
		quantity  int
		wantCents int64
		wantErr   error
	}{
		{name: "vip single", category: "vip", quantity: 1, wantCents: 39900},
		{name: "cat_1 pair", category: "cat_1", quantity: 2, wantCents: 59800},
		{name: "cat_2 single", category: "cat_2", quantity: 1, wantCents: 19900},
		{name: "cat_3 four", category: "cat_3", quantity: 4, wantCents: 39600},
		{name: "unknown category", category: "balcony", quantity: 1, wantErr: booking.ErrUnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.PriceCents(tt.category, tt.quantity)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCents, got)
		})
	}
}

func TestKnownCategory(t *testing.T) {
	assert.True(t, booking.KnownCategory("vip"))
	assert.True(t, booking.KnownCategory("cat_3"))
	assert.False(t, booking.KnownCategory("standing"))
}

func TestTicket_TradeLocked(t *testing.T) {
	tests := []struct {
		name   string
		ticket booking.Ticket
		want   bool
	}{
		{name: "plain confirmed ticket", ticket: booking.Ticket{Status: booking.TicketConfirmed}, want: false},
		{name: "listed for trade", ticket: booking.Ticket{ListedForTrade: true}, want: true},
		{name: "marked with trade request", ticket: booking.Ticket{TradeRequestID: "tr-1"}, want: true},
		{name: "both markings", ticket: booking.Ticket{ListedForTrade: true, TradeRequestID: "tr-1"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ticket.TradeLocked())
		})
	}
}
