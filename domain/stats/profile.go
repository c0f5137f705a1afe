package stats

import (
	"math"

	"curelab/domain/dataset"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// FieldSummary is the dataset-wide profile of one field. It extends
// FieldStats with spread and shape measures for the profile endpoint and the
// prompt compiler's historical summary lines.
type FieldSummary struct {
	Field      string  `json:"field"`
	Kind       string  `json:"kind"`
	SampleSize int     `json:"sample_size"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`
	Median     float64 `json:"median"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Q25        float64 `json:"q25"`
	Q75        float64 `json:"q75"`
	Skewness   float64 `json:"skewness"`
}

// SummarizeField profiles one field across all records. Zero valid values
// yields a zeroed summary with SampleSize 0, mirroring the FieldStats
// sentinel.
func SummarizeField(records []dataset.Record, field string, kind dataset.FieldKind) FieldSummary {
	summary := FieldSummary{Field: field, Kind: string(kind)}
	values := FieldValues(records, field, kind)
	if len(values) == 0 {
		return summary
	}

	summary.SampleSize = len(values)
	summary.Mean, _ = stats.Mean(values)
	summary.Median, _ = stats.Median(values)
	summary.Min, _ = stats.Min(values)
	summary.Max, _ = stats.Max(values)
	summary.Q25, _ = stats.Percentile(values, 25)
	summary.Q75, _ = stats.Percentile(values, 75)

	if len(values) > 1 {
		summary.StdDev = finiteOrZero(stat.StdDev(values, nil))
	}
	// gonum's skewness divides by n-2, so two samples yield NaN.
	if len(values) > 2 {
		summary.Skewness = finiteOrZero(stat.Skew(values, nil))
	}
	return summary
}

// finiteOrZero maps NaN and infinities to the zero sentinel the rest of the
// package uses, keeping summaries JSON-encodable.
func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// SummarizeStore profiles every registered field, inputs first.
func SummarizeStore(store *dataset.Store) []FieldSummary {
	out := make([]FieldSummary, 0, len(store.InputKeys)+len(store.OutputKeys))
	for _, key := range store.InputKeys {
		out = append(out, SummarizeField(store.Records, key, dataset.KindInput))
	}
	for _, key := range store.OutputKeys {
		out = append(out, SummarizeField(store.Records, key, dataset.KindOutput))
	}
	return out
}
