// Package exchange provides exchange-rate lookup and currency conversion.
// The rate source is an injected dependency so the static table can be
// swapped for a live-rate provider without touching the engine.
package exchange

import (
	"sync"

	"github.com/altinbank/core/pkg/currency"
	"github.com/shopspring/decimal"
)

// RateSource supplies exchange rates between currency pairs.
type RateSource interface {
	// Rate returns the exchange rate from one currency to another.
	// It reports false when the pair is unknown or from == to.
	Rate(from, to currency.Code) (decimal.Decimal, bool)
}

// StaticSource is an in-memory rate table. Safe for concurrent use.
type StaticSource struct {
	mu    sync.RWMutex
	rates map[currency.Code]map[currency.Code]decimal.Decimal
}

// NewStaticSource returns a StaticSource seeded with the default rate table.
func NewStaticSource() *StaticSource {
	s := &StaticSource{rates: make(map[currency.Code]map[currency.Code]decimal.Decimal)}
	for from, pairs := range map[currency.Code]map[currency.Code]string{
		"USD": {"EUR": "0.85", "ALL": "100.0"},
		"EUR": {"USD": "1.18", "ALL": "123.0"},
		"ALL": {"USD": "0.01", "EUR": "0.0081"},
	} {
		for to, rate := range pairs {
			s.SetRate(from, to, decimal.RequireFromString(rate))
		}
	}
	return s
}

// SetRate registers or replaces the rate for a currency pair.
func (s *StaticSource) SetRate(from, to currency.Code, rate decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rates[from] == nil {
		s.rates[from] = make(map[currency.Code]decimal.Decimal)
	}
	s.rates[from][to] = rate
}

// Rate implements RateSource.
func (s *StaticSource) Rate(from, to currency.Code) (decimal.Decimal, bool) {
	if from == to {
		return decimal.Decimal{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rate, ok := s.rates[from][to]
	return rate, ok
}
