package household

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a share of a transaction, 100 meaning the whole amount.
type Percent struct {
	value decimal.Decimal
}

// P creates a Percent from a numeric value.
func P[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Percent {
	return Percent{value: newDecimal(value)}
}

var hundred = decimal.NewFromInt(100)

// PercentOf returns the share part/whole as a Percent rounded to 2 decimals.
func PercentOf(part, whole Money) Percent {
	if whole.IsZero() {
		return Percent{}
	}
	return Percent{value: part.value.Mul(hundred).DivRound(whole.value, Precision)}
}

// Of applies the percentage to m, without rounding.
func (p Percent) Of(m Money) Money { return m.Mul(p.value.Div(hundred)) }

func (p Percent) Add(q Percent) Percent { return Percent{value: p.value.Add(q.value)} }
func (p Percent) IsZero() bool          { return p.value.IsZero() }
func (p Percent) Decimal() decimal.Decimal {
	return p.value
}

// Equal compares with a 0.01 precision.
func (p Percent) Equal(q Percent) bool {
	return p.value.Sub(q.value).Abs().LessThanOrEqual(SplitTolerance)
}

func (p Percent) String() string {
	return fmt.Sprintf("%s%%", p.value.StringFixed(2))
}

func (p Percent) MarshalJSON() ([]byte, error) {
	return p.value.Round(Precision).MarshalJSON()
}

func (p *Percent) UnmarshalJSON(data []byte) error {
	return p.value.UnmarshalJSON(data)
}
