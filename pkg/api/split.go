// Package api defines the wire messages of the billsplit.v1.SplitService.
// Messages are plain Go structs encoded as JSON by the codec in apiconnect.
package api

// Adjustment is a tagged tax or tip specification.
type Adjustment struct {
	// Kind is "amount" or "percentage".
	Kind  string  `json:"kind"`
	Value float64 `json:"value"`
}

// Participant is one person splitting the bill.
type Participant struct {
	// ID is optional; the server assigns one when empty.
	ID           string  `json:"id,omitempty"`
	Name         string  `json:"name"`
	CustomAmount float64 `json:"customAmount,omitempty"`
}

// Bill is the input to a split calculation.
//
// Tax and Tip take precedence when present. Otherwise the flat fields are
// used, with an explicit amount > 0 winning over the percentage.
type Bill struct {
	TotalAmount  float64        `json:"totalAmount"`
	Tax          *Adjustment    `json:"tax,omitempty"`
	Tip          *Adjustment    `json:"tip,omitempty"`
	Participants []*Participant `json:"participants"`

	TaxAmount     float64 `json:"taxAmount,omitempty"`
	TaxPercentage float64 `json:"taxPercentage,omitempty"`
	TipAmount     float64 `json:"tipAmount,omitempty"`
	TipPercentage float64 `json:"tipPercentage,omitempty"`
}

// ParticipantShare is one participant's computed share.
type ParticipantShare struct {
	Participant *Participant `json:"participant"`
	BaseShare   float64      `json:"baseShare"`
	TipShare    float64      `json:"tipShare"`
	TotalDue    float64      `json:"totalDue"`
}

// BillSummary is the bill-level breakdown.
type BillSummary struct {
	Subtotal float64             `json:"subtotal"`
	Tax      float64             `json:"tax"`
	Tip      float64             `json:"tip"`
	Total    float64             `json:"total"`
	Mode     string              `json:"mode"`
	Results  []*ParticipantShare `json:"results"`
}

type CalculateSplitRequest struct {
	Bill *Bill `json:"bill"`
}

type CalculateSplitResponse struct {
	Summary *BillSummary `json:"summary"`
}

type ExportSummaryRequest struct {
	Bill *Bill `json:"bill"`
}

type ExportSummaryResponse struct {
	Summary *BillSummary `json:"summary"`
	// Text is the shareable plain-text rendering of Summary.
	Text string `json:"text"`
}
