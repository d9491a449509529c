package calculator

import "fmt"

// AdjustmentKind tells whether an Adjustment is a fixed amount or a percentage.
type AdjustmentKind string

const (
	KindAmount     AdjustmentKind = "amount"
	KindPercentage AdjustmentKind = "percentage"
)

// Adjustment is a tax or tip specification: either a fixed amount or a
// percentage of some base. The zero value and Amount(0) mean "unset".
type Adjustment struct {
	Kind  AdjustmentKind
	Value float64
}

// Amount returns a fixed-amount adjustment.
func Amount(v float64) Adjustment {
	return Adjustment{Kind: KindAmount, Value: v}
}

// Percentage returns an adjustment of v percent.
func Percentage(v float64) Adjustment {
	return Adjustment{Kind: KindPercentage, Value: v}
}

// PreferAmount builds an Adjustment from a pair of amount and percentage
// fields: an explicit amount > 0 wins, otherwise the percentage is used.
func PreferAmount(amount, percentage float64) Adjustment {
	if amount > 0 {
		return Amount(amount)
	}
	return Percentage(percentage)
}

// Resolve returns the monetary value of the adjustment applied to base.
func (a Adjustment) Resolve(base float64) float64 {
	switch a.Kind {
	case KindAmount:
		return a.Value
	case KindPercentage:
		return base * a.Value / 100
	default:
		return 0
	}
}

func (a Adjustment) String() string {
	switch a.Kind {
	case KindAmount:
		return fmt.Sprintf("%.2f", a.Value)
	case KindPercentage:
		return fmt.Sprintf("%.2f%%", a.Value)
	default:
		return "unset"
	}
}
