package booking

import "errors"

var ErrUnknownCategory = errors.New("unknown seat category")

const Currency = "SGD"

// PriceCalculator resolves the charge amount for a purchase before the
// payment call is made.
type PriceCalculator interface {
	PriceCents(category string, quantity int) (int64, error)
}

// categoryRatesCents is the per-seat rate table, in cents.
var categoryRatesCents = map[string]int64{
	"vip":   39900,
	"cat_1": 29900,
	"cat_2": 19900,
	"cat_3": 9900,
}

type rateTableCalculator struct{}

func NewRateTablePriceCalculator() PriceCalculator {
	return &rateTableCalculator{}
}

func (rateTableCalculator) PriceCents(category string, quantity int) (int64, error) {
	rate, ok := categoryRatesCents[category]
	if !ok {
		return 0, ErrUnknownCategory
	}
	return rate * int64(quantity), nil
}

// KnownCategory reports whether category has a published rate.
func KnownCategory(category string) bool {
	_, ok := categoryRatesCents[category]
	return ok
}
