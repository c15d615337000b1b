package pricing

import (
	"math"

	"santiice/internal/domain"
)

// ClientDefaults is the last configurable tier of the resolver, used when the
// catalog has no usable price for a client and size.
var ClientDefaults = map[domain.ClientType]domain.PriceTable{
	domain.ClientOXXO:   {domain.Size5kg: 17.5, domain.Size15kg: 37.5},
	domain.ClientKIOSKO: {domain.Size5kg: 16.0, domain.Size15kg: 45.0},
}

const (
	literal5kg   = 17.5
	literalOther = 37.5
)

// ClientDefault returns the built-in price for a client and size. It is always
// usable, falling back to a literal by size for unknown clients.
func ClientDefault(client domain.ClientType, size domain.ProductSize) float64 {
	if p, ok := usable(ClientDefaults[client], size); ok {
		return p
	}
	if size == domain.Size5kg {
		return literal5kg
	}
	return literalOther
}

// Usable reports whether a price can be charged.
func Usable(p float64) bool {
	return p > 0 && !math.IsNaN(p) && !math.IsInf(p, 0)
}

// Resolver answers unit prices from a catalog price list.
type Resolver struct {
	prices domain.Prices
}

// NewResolver creates a resolver over a snapshot of prices.
func NewResolver(prices domain.Prices) *Resolver {
	return &Resolver{prices: prices}
}

// Price returns the unit price of a size at a branch. Lookup order: the
// branch's own table, the client's default tier, the OXXO default tier, then
// ClientDefault. It never fails and the result is always usable.
func (r *Resolver) Price(client domain.ClientType, branch string, size domain.ProductSize) float64 {
	tiers := []domain.PriceTable{
		r.prices.Branch(client, branch),
		r.prices.Default(client),
		r.prices.Default(domain.ClientOXXO),
	}
	for _, table := range tiers {
		if p, ok := usable(table, size); ok {
			return p
		}
	}
	return ClientDefault(client, size)
}

func usable(table domain.PriceTable, size domain.ProductSize) (float64, bool) {
	if table == nil {
		return 0, false
	}
	p, ok := table[size]
	if !ok || !Usable(p) {
		return 0, false
	}
	return p, true
}
