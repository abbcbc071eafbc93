// Package validation collects field violations before a write.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// Violations maps a field name to the reason it was rejected.
type Violations map[string]string

// Empty reports whether no violation was recorded.
func (v Violations) Empty() bool { return len(v) == 0 }

// Err returns nil when v is empty, otherwise an error listing every violation
// sorted by field name.
func (v Violations) Err() error {
	if v.Empty() {
		return nil
	}
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = fmt.Sprintf("%s: %s", field, v[field])
	}
	return fmt.Errorf("invalid input: %s", strings.Join(parts, "; "))
}

// Required rejects blank strings.
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// PositiveFloat rejects zero, negative and non-finite values.
func PositiveFloat(field string, val float64, v Violations) {
	if math.IsNaN(val) || math.IsInf(val, 0) || val <= 0 {
		v[field] = "must be a positive number"
	}
}

// NonNegativeFloat rejects negative and non-finite values.
func NonNegativeFloat(field string, val float64, v Violations) {
	if math.IsNaN(val) || math.IsInf(val, 0) || val < 0 {
		v[field] = "must be a non-negative number"
	}
}

// PositiveInt rejects zero and negative values.
func PositiveInt(field string, val int, v Violations) {
	if val <= 0 {
		v[field] = "must be a positive integer"
	}
}

// MaxLength rejects strings longer than max runes.
func MaxLength(field, value string, max int, v Violations) {
	if len([]rune(value)) > max {
		v[field] = fmt.Sprintf("must be at most %d characters", max)
	}
}

// Matches rejects values that do not match re.
func Matches(field, value string, re *regexp.Regexp, hint string, v Violations) {
	if !re.MatchString(value) {
		v[field] = hint
	}
}
