// Package calculator splits a bill, its tax and its tip across participants.
package calculator

import (
	"errors"
)

var (
	// ErrInvalidTotalCustomAmount is returned when weighted mode is entered
	// but the custom amounts sum to zero.
	ErrInvalidTotalCustomAmount = errors.New("custom amounts must be greater than 0")

	// ErrNoParticipants is returned when an equal split has nobody to divide by.
	ErrNoParticipants = errors.New("must have at least one participant")
)

// Mode is the allocation strategy applied to a bill.
type Mode string

const (
	// ModeEqual gives every participant an identical share.
	ModeEqual Mode = "equal"
	// ModeWeighted splits proportionally to each participant's custom amount.
	ModeWeighted Mode = "weighted"
)

// Participant is one person splitting the bill.
type Participant struct {
	ID   string
	Name string

	// CustomAmount is the participant's declared base amount.
	// Zero means unset; any positive value switches the bill to weighted mode.
	CustomAmount float64
}

// BillInput describes a bill to be split.
type BillInput struct {
	// TotalAmount is the pre-tax, pre-tip subtotal.
	TotalAmount float64

	// Tax percentages resolve against TotalAmount.
	Tax Adjustment

	// Tip percentages resolve against TotalAmount plus tax.
	Tip Adjustment

	Participants []Participant
}

// CalculationResult is one participant's share of the bill.
type CalculationResult struct {
	Participant Participant

	// BaseShare is the participant's portion of subtotal plus tax.
	BaseShare float64
	TipShare  float64
	TotalDue  float64
}

// BillSummary is the bill-level breakdown returned by ComputeSplit.
type BillSummary struct {
	Subtotal float64
	Tax      float64
	Tip      float64
	Total    float64
	Mode     Mode

	// Results are in the same order as BillInput.Participants.
	Results []CalculationResult
}

// SelectMode reports which allocation ComputeSplit will use for participants.
func SelectMode(participants []Participant) Mode {
	for _, p := range participants {
		if p.CustomAmount > 0 {
			return ModeWeighted
		}
	}
	return ModeEqual
}

// ComputeSplit allocates the subtotal, tax and tip of a bill across its participants.
//
// Algorithm:
//   - tax = Tax resolved against the subtotal
//   - tip = Tip resolved against subtotal + tax
//   - weighted mode: proportion = custom / Σcustom,
//     base = custom + tax × proportion, tip share = tip × proportion
//   - equal mode: every participant gets (subtotal + tax) / n and tip / n
//
// No rounding is applied. Per-participant totals may differ from the bill
// total by floating point error.
func ComputeSplit(input BillInput) (*BillSummary, error) {
	tax := input.Tax.Resolve(input.TotalAmount)
	tip := input.Tip.Resolve(input.TotalAmount + tax)

	subtotal := input.TotalAmount
	total := subtotal + tax + tip

	mode := SelectMode(input.Participants)
	results := make([]CalculationResult, len(input.Participants))

	switch mode {
	case ModeWeighted:
		var totalCustom float64
		for _, p := range input.Participants {
			totalCustom += p.CustomAmount
		}
		if totalCustom == 0 {
			return nil, ErrInvalidTotalCustomAmount
		}

		for i, p := range input.Participants {
			proportion := p.CustomAmount / totalCustom
			baseShare := p.CustomAmount + tax*proportion
			tipShare := tip * proportion
			results[i] = CalculationResult{
				Participant: p,
				BaseShare:   baseShare,
				TipShare:    tipShare,
				TotalDue:    baseShare + tipShare,
			}
		}
	default:
		n := float64(len(input.Participants))
		if n == 0 {
			return nil, ErrNoParticipants
		}

		perPersonBase := (subtotal + tax) / n
		perPersonTip := tip / n
		perPersonTotal := total / n
		for i, p := range input.Participants {
			results[i] = CalculationResult{
				Participant: p,
				BaseShare:   perPersonBase,
				TipShare:    perPersonTip,
				TotalDue:    perPersonTotal,
			}
		}
	}

	return &BillSummary{
		Subtotal: subtotal,
		Tax:      tax,
		Tip:      tip,
		Total:    total,
		Mode:     mode,
		Results:  results,
	}, nil
}
