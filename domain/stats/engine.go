package stats

import (
	"math"

	"curelab/domain/dataset"

	"github.com/montanaflynn/stats"
)

// FieldStats is the {mean,min,max} summary of one field over one record
// subset. A subset with zero valid values yields the zero-value sentinel
// {0,0,0}; callers treat that as defined output, not an error.
type FieldStats struct {
	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// ComputeStats filters values to finite numbers and returns their arithmetic
// mean, minimum and maximum. Total function: never fails, empty or fully
// invalid input returns the {0,0,0} sentinel.
func ComputeStats(values []float64) FieldStats {
	valid := FilterFinite(values)
	if len(valid) == 0 {
		return FieldStats{}
	}
	mean, _ := stats.Mean(valid)
	min, _ := stats.Min(valid)
	max, _ := stats.Max(valid)
	return FieldStats{Mean: mean, Min: min, Max: max}
}

// StatsForField projects one field out of every record's inputs or outputs
// and summarizes it. Records missing the field contribute nothing.
func StatsForField(records []dataset.Record, field string, kind dataset.FieldKind) FieldStats {
	return ComputeStats(FieldValues(records, field, kind))
}

// FieldValues collects the finite values of one field across the records.
func FieldValues(records []dataset.Record, field string, kind dataset.FieldKind) []float64 {
	values := make([]float64, 0, len(records))
	for _, r := range records {
		v, ok := r.Field(field, kind)
		if !ok {
			continue
		}
		values = append(values, v)
	}
	return FilterFinite(values)
}

// Median returns the median of the finite values, 0 when none remain.
func Median(values []float64) float64 {
	valid := FilterFinite(values)
	if len(valid) == 0 {
		return 0
	}
	m, _ := stats.Median(valid)
	return m
}

// FilterFinite drops NaN and infinite entries.
func FilterFinite(values []float64) []float64 {
	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		valid = append(valid, v)
	}
	return valid
}
