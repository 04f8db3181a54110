// Package core defines the canonical record shapes shared by every layer:
// drivers, vehicles, activities, and the tolerant revenue amount type.
package core

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a monetary value attached to an activity. Persisted data and
// imported snapshots come from sources this code does not control, so
// decoding never fails: a JSON number, a numeric string, null, or anything
// else all decode, with unusable input becoming 0.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*a = Amount(f)
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
			*a = Amount(f)
			return nil
		}
	}
	*a = 0
	return nil
}

// Coerced returns the amount as a non-negative float64 for aggregation.
// Negative, NaN, and infinite values count as 0.
func (a Amount) Coerced() float64 {
	f := float64(a)
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
