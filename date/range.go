package date

import (
	"fmt"
	"time"
)

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// NewRange return the period containing d.
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// Month returns the calendar month of d.
func Month(d Date) Range { return NewRange(d, Monthly) }

// ParseMonth parses a "2006-01" month identifier.
func ParseMonth(str string) (Range, error) {
	on, err := time.Parse("2006-1", str)
	if err != nil {
		return Range{}, fmt.Errorf("invalid month %q want format %q: %w", str, "2006-01", err)
	}
	return Month(New(on.Year(), on.Month(), 1)), nil
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return (!date.Before(r.From) && !date.After(r.To)) }

// IsZero reports whether r is the zero range.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// Identifier compute a short identifier for the Range: "2006-01" for a
// calendar month, "2006" for a year, the day for a single day, and "from_to"
// otherwise.
func (r Range) Identifier() string {
	switch {
	case r.From == r.To:
		return r.From.String()
	case r.From.Day() == 1 && r.From.EndOf(Monthly) == r.To:
		return r.From.Format("2006-01")
	case r.From.StartOf(Yearly) == r.From && r.From.EndOf(Yearly) == r.To:
		return r.From.Format("2006")
	default:
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}
}

func (r Range) String() string { return r.Identifier() }
