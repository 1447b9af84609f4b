package exporter

import (
	"fmt"
	"strings"
)

// formatTurnover formats a summed turnover value for CSV output: up to six
// decimal places with trailing zeros removed, so 150.0 appears as 150.
func formatTurnover(v float64) string {
	s := fmt.Sprintf("%.6f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
