package provider

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatNumber truncates a decimal string to two places with floor semantics
// and drops trailing zeros: "12.3456" -> "12.34", "-0.001" -> "-0.01", "8.40" -> "8.4".
func FormatNumber(s string) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("parsing number %q: %w", s, err)
	}
	return d.Shift(2).Floor().Shift(-2).String(), nil
}
