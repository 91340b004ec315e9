package exchange

import (
	"log/slog"

	"github.com/altinbank/core/pkg/currency"
	"github.com/altinbank/core/pkg/money"
	"github.com/shopspring/decimal"
)

// Conversion describes the outcome of a currency conversion.
type Conversion struct {
	Original  money.Money
	Converted money.Money
	Rate      decimal.Decimal
	// Applied is false when no rate was found and the amount passed
	// through unconverted. Callers that need a real conversion must
	// check currency equality themselves.
	Applied bool
}

// Converter converts monetary amounts between currencies using an
// injected RateSource. Results are rounded half-up to two fractional
// digits.
type Converter struct {
	source RateSource
	logger *slog.Logger
}

// NewConverter creates a Converter backed by the given rate source.
func NewConverter(source RateSource, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{source: source, logger: logger.With("component", "converter")}
}

// Convert converts m into the target currency.
//
// When no rate is known for the pair, the original amount is returned
// re-denominated in the target currency with Applied=false. This
// pass-through fallback is a deliberate compatibility choice; see the
// missing-rate note in DESIGN.md before relying on it.
func (c *Converter) Convert(m money.Money, to currency.Code) (Conversion, error) {
	if m.Currency() == to {
		return Conversion{Original: m, Converted: m, Rate: decimal.NewFromInt(1)}, nil
	}

	rate, ok := c.source.Rate(m.Currency(), to)
	if !ok {
		c.logger.Warn("no exchange rate found, returning amount unconverted",
			"from", m.Currency(), "to", to, "amount", m.Amount())
		passthrough, err := money.New(m.Amount(), to)
		if err != nil {
			return Conversion{}, err
		}
		return Conversion{
			Original:  m,
			Converted: passthrough,
			Rate:      decimal.NewFromInt(1),
		}, nil
	}

	// Round half-up to the fixed two fractional digits.
	converted, err := money.New(m.Amount().Mul(rate).Round(money.Decimals), to)
	if err != nil {
		return Conversion{}, err
	}
	return Conversion{
		Original:  m,
		Converted: converted,
		Rate:      rate,
		Applied:   true,
	}, nil
}
