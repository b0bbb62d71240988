package timeseries

import (
	"fmt"
	"math"
	"strings"
)

// Reduction collapses the samples of one bucket into a chart value.
type Reduction string

const (
	// Sum adds sample values.
	Sum Reduction = "sum"
	// Count counts samples regardless of value. Each output sample is one
	// produced unit, so this is the daily yield.
	Count Reduction = "count"
	Avg   Reduction = "avg"
	Max   Reduction = "max"
	Min   Reduction = "min"
	// PassThrough emits every raw sample as its own point.
	PassThrough Reduction = "passthrough"
)

// ParseReduction accepts a reduction name, case-insensitively.
func ParseReduction(s string) (Reduction, error) {
	switch r := Reduction(strings.ToLower(strings.TrimSpace(s))); r {
	case Sum, Count, Avg, Max, Min, PassThrough:
		return r, nil
	case "none", "raw":
		return PassThrough, nil
	default:
		return "", fmt.Errorf("unknown reduction %q", s)
	}
}

func reduce(r Reduction, values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	switch r {
	case Count:
		return float64(len(values))
	case Avg:
		return sum(values) / float64(len(values))
	case Max:
		m := math.Inf(-1)
		for _, v := range values {
			m = math.Max(m, v)
		}
		return m
	case Min:
		m := math.Inf(1)
		for _, v := range values {
			m = math.Min(m, v)
		}
		return m
	default:
		return sum(values)
	}
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
