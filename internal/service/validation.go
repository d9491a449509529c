package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mmynk/billsplit/internal/calculator"
	api "github.com/mmynk/billsplit/pkg/api"
)

const minParticipants = 2

// ValidationError lists every problem found in a bill, in a stable order.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// billForm is the validated view of an api.Bill.
type billForm struct {
	TotalAmount float64 `validate:"gt=0"`
	Tax         adjustmentForm
	TaxFlat     flatForm
	Tip         adjustmentForm
	TipFlat     flatForm
	Customs     []float64        `validate:"dive,gte=0"`
	People      []participantRow `validate:"min=2"`
}

// flatForm holds the legacy amount/percentage pair. Both must be
// non-negative, including the one PreferAmount ignores.
type flatForm struct {
	Amount     float64 `validate:"gte=0"`
	Percentage float64 `validate:"gte=0"`
}

type adjustmentForm struct {
	Kind  string  `validate:"oneof=amount percentage"`
	Value float64 `validate:"gte=0"`
}

type participantRow struct {
	ID   string
	Name string
}

var validate = validator.New()

// ValidateBill checks a bill the way the split form does before calculating,
// and converts it into engine input.
//
// Participants with blank names are dropped, names are trimmed and missing
// IDs are filled in with UUIDs. Every failing rule is reported.
func ValidateBill(bill *api.Bill) (calculator.BillInput, error) {
	if bill == nil {
		return calculator.BillInput{}, &ValidationError{Messages: []string{"Bill is required"}}
	}

	participants := normalizeParticipants(bill.Participants)
	form := billForm{
		TotalAmount: bill.TotalAmount,
		Tax:         toAdjustmentForm(bill.Tax, bill.TaxAmount, bill.TaxPercentage),
		Tip:         toAdjustmentForm(bill.Tip, bill.TipAmount, bill.TipPercentage),
		TaxFlat:     toFlatForm(bill.Tax, bill.TaxAmount, bill.TaxPercentage),
		TipFlat:     toFlatForm(bill.Tip, bill.TipAmount, bill.TipPercentage),
		People:      make([]participantRow, len(participants)),
	}
	for i, p := range participants {
		form.Customs = append(form.Customs, p.CustomAmount)
		form.People[i] = participantRow{ID: p.ID, Name: p.Name}
	}

	var messages []string
	if err := validate.Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return calculator.BillInput{}, fmt.Errorf("validate bill: %w", err)
		}
		messages = appendFieldMessages(messages, fieldErrs, form)
	}

	if hasDuplicateIDs(participants) {
		messages = append(messages, "Participant IDs must be unique")
	}
	if calculator.SelectMode(participants) == calculator.ModeWeighted {
		var totalCustom float64
		for _, p := range participants {
			totalCustom += p.CustomAmount
		}
		if totalCustom <= 0 {
			messages = append(messages, "Custom amounts must be greater than 0")
		}
	}

	if len(messages) > 0 {
		return calculator.BillInput{}, &ValidationError{Messages: messages}
	}

	return calculator.BillInput{
		TotalAmount:  bill.TotalAmount,
		Tax:          toAdjustment(form.Tax),
		Tip:          toAdjustment(form.Tip),
		Participants: participants,
	}, nil
}

// appendFieldMessages turns validator field errors into user-facing messages.
func appendFieldMessages(messages []string, errs validator.ValidationErrors, form billForm) []string {
	seen := make(map[string]bool)
	add := func(msg string) {
		if !seen[msg] {
			seen[msg] = true
			messages = append(messages, msg)
		}
	}

	for _, fe := range errs {
		switch {
		case fe.StructField() == "TotalAmount":
			add("Total amount must be greater than 0")
		case strings.HasPrefix(fe.StructNamespace(), "billForm.Tax."):
			add(adjustmentMessage("Tax", form.Tax, fe))
		case strings.HasPrefix(fe.StructNamespace(), "billForm.Tip."):
			add(adjustmentMessage("Tip", form.Tip, fe))
		case strings.HasPrefix(fe.StructNamespace(), "billForm.TaxFlat."):
			add(flatMessage("Tax", fe))
		case strings.HasPrefix(fe.StructNamespace(), "billForm.TipFlat."):
			add(flatMessage("Tip", fe))
		case strings.HasPrefix(fe.StructNamespace(), "billForm.Customs"):
			add("Custom amounts cannot be negative")
		case fe.StructField() == "People":
			add(fmt.Sprintf("At least %d participants are required", minParticipants))
		default:
			add(fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return messages
}

func adjustmentMessage(label string, adj adjustmentForm, fe validator.FieldError) string {
	if fe.StructField() == "Kind" {
		return fmt.Sprintf("%s kind must be amount or percentage", label)
	}
	switch calculator.AdjustmentKind(adj.Kind) {
	case calculator.KindAmount, calculator.KindPercentage:
		return fmt.Sprintf("%s %s cannot be negative", label, adj.Kind)
	default:
		return fmt.Sprintf("%s value cannot be negative", label)
	}
}

func flatMessage(label string, fe validator.FieldError) string {
	return fmt.Sprintf("%s %s cannot be negative", label, strings.ToLower(fe.StructField()))
}

// toAdjustmentForm prefers the tagged adjustment and falls back to the flat
// amount/percentage fields.
func toAdjustmentForm(tagged *api.Adjustment, amount, percentage float64) adjustmentForm {
	if tagged != nil {
		if tagged.Kind == "" && tagged.Value == 0 {
			return adjustmentForm{Kind: string(calculator.KindAmount)}
		}
		return adjustmentForm{Kind: strings.ToLower(strings.TrimSpace(tagged.Kind)), Value: tagged.Value}
	}
	adj := calculator.PreferAmount(amount, percentage)
	return adjustmentForm{Kind: string(adj.Kind), Value: adj.Value}
}

// toFlatForm is empty when the tagged adjustment is present, since the flat
// fields are ignored then.
func toFlatForm(tagged *api.Adjustment, amount, percentage float64) flatForm {
	if tagged != nil {
		return flatForm{}
	}
	return flatForm{Amount: amount, Percentage: percentage}
}

func toAdjustment(f adjustmentForm) calculator.Adjustment {
	return calculator.Adjustment{Kind: calculator.AdjustmentKind(f.Kind), Value: f.Value}
}

func normalizeParticipants(in []*api.Participant) []calculator.Participant {
	out := make([]calculator.Participant, 0, len(in))
	for _, p := range in {
		if p == nil {
			continue
		}
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		id := strings.TrimSpace(p.ID)
		if id == "" {
			id = uuid.NewString()
		}
		out = append(out, calculator.Participant{
			ID:           id,
			Name:         name,
			CustomAmount: p.CustomAmount,
		})
	}
	return out
}

func hasDuplicateIDs(participants []calculator.Participant) bool {
	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if seen[p.ID] {
			return true
		}
		seen[p.ID] = true
	}
	return false
}
