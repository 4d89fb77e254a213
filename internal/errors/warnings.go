package errors

import (
	"fmt"
	"strings"
)

// CountryMismatch records a row whose country identifier did not resolve
// to any country in the merge spine. Mismatches are non-fatal: they are
// collected and reported so the user can extend the alias configuration.
type CountryMismatch struct {
	Dataset    string
	Identifier string
	Name       string
}

func (m CountryMismatch) String() string {
	if m.Name != "" {
		return fmt.Sprintf("%s: %q (%s)", m.Dataset, m.Identifier, m.Name)
	}
	return fmt.Sprintf("%s: %q", m.Dataset, m.Identifier)
}

// FormatMismatches renders a one-line summary for logging.
func FormatMismatches(ms []CountryMismatch) string {
	if len(ms) == 0 {
		return ""
	}
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = m.String()
	}
	return strings.Join(parts, "; ")
}

// ConstantColumn records an indicator whose values were identical across
// all countries, so min-max normalization defined the column as all
// zeros instead of dividing by zero.
type ConstantColumn struct {
	Indicator string
	Value     float64
	Rows      int
}

func (c ConstantColumn) String() string {
	return fmt.Sprintf("indicator %s constant at %.6g across %d rows, normalized to 0", c.Indicator, c.Value, c.Rows)
}
