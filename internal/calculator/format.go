package calculator

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// FormatSummary renders a summary as shareable plain text.
// Callers copy the output verbatim, so the line order is part of the contract.
func FormatSummary(summary *BillSummary) string {
	var b strings.Builder

	b.WriteString("💰 Split Bill Summary\n\n")
	b.WriteString("Subtotal: $" + FormatAmount(summary.Subtotal) + "\n")
	b.WriteString("Tax: $" + FormatAmount(summary.Tax) + "\n")
	b.WriteString("Tip: $" + FormatAmount(summary.Tip) + "\n")
	b.WriteString("Total: $" + FormatAmount(summary.Total) + "\n\n")
	b.WriteString("👥 Individual Amounts:\n")

	for _, r := range summary.Results {
		b.WriteString(r.Participant.Name + ": $" + FormatAmount(r.TotalDue) + "\n")
		b.WriteString("  Base + Tax: $" + FormatAmount(r.BaseShare) + "\n")
		b.WriteString("  Tip: $" + FormatAmount(r.TipShare) + "\n\n")
	}

	return b.String()
}

// FormatAmount formats v with two decimals. A value lying exactly halfway
// between two cents rounds away from zero (2.625 -> "2.63"); everything else
// rounds to the nearest cent of its exact binary value (2.675 -> "2.67").
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}

	// |v| in thousandths of a unit, exact.
	mills := new(big.Float).SetPrec(256).SetFloat64(math.Abs(v))
	mills.Mul(mills, big.NewFloat(1000))
	if !mills.IsInt() {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}

	n, _ := mills.Int(nil)
	ten := big.NewInt(10)
	if new(big.Int).Mod(n, ten).Int64() != 5 {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}

	cents := n.Add(n, big.NewInt(5)).Quo(n, ten).String()
	if len(cents) < 3 {
		cents = strings.Repeat("0", 3-len(cents)) + cents
	}
	out := cents[:len(cents)-2] + "." + cents[len(cents)-2:]
	if v < 0 {
		out = "-" + out
	}
	return out
}
