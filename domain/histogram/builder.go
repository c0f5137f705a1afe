package histogram

import (
	"fmt"
	"math"

	"curelab/domain/dataset"
)

// DefaultBinCount is used when the caller passes a non-positive bin count.
const DefaultBinCount = 6

// Bin is one interval of the partition with its occupancy.
type Bin struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Result carries the partition plus how many records passed the output-range
// filter. MatchingCount can exceed the sum of bin counts when matching
// records lack the chosen input field.
type Result struct {
	Bins          []Bin `json:"bins"`
	MatchingCount int   `json:"matching_count"`
}

// Builder bins input values of records whose chosen output falls in a range.
// The per-output extent table is handed in at construction so range defaults
// come from the one cache computed at load time.
type Builder struct {
	store   *dataset.Store
	extents map[string]dataset.Extent
}

func NewBuilder(store *dataset.Store, extents map[string]dataset.Extent) *Builder {
	return &Builder{store: store, extents: extents}
}

// DefaultRange returns the cached dataset-wide extent of an output field,
// the natural bounds for a range selector.
func (b *Builder) DefaultRange(outputField string) (dataset.Extent, bool) {
	ext, ok := b.extents[outputField]
	return ext, ok
}

// Build filters records to those whose outputField lies in
// [rangeMin, rangeMax] inclusive, then partitions the matching records'
// inputField values into binCount contiguous intervals. Total function: any
// dataset shape degrades to empty bins, never an error.
func (b *Builder) Build(inputField, outputField string, rangeMin, rangeMax float64, binCount int) Result {
	if binCount <= 0 {
		binCount = DefaultBinCount
	}

	var matching []dataset.Record
	for _, r := range b.store.Records {
		v, ok := r.Outputs[outputField]
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < rangeMin || v > rangeMax {
			continue
		}
		matching = append(matching, r)
	}
	result := Result{MatchingCount: len(matching)}

	var values []float64
	for _, r := range matching {
		v, ok := r.Inputs[inputField]
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return result
	}

	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	// All values identical: one bin covers everything.
	if minVal == maxVal {
		result.Bins = []Bin{{Label: fmt.Sprintf("%.2f", minVal), Count: len(values)}}
		return result
	}

	step := (maxVal - minVal) / float64(binCount)
	bins := make([]Bin, binCount)
	for i := range bins {
		start := minVal + float64(i)*step
		end := start + step
		if i == binCount-1 {
			// Close the partition at the true max despite step accumulation.
			end = maxVal
		}
		bins[i].Label = fmt.Sprintf("%.1f–%.1f", start, end)
	}
	for _, v := range values {
		idx := int(math.Floor((v - minVal) / step))
		if idx >= binCount {
			idx = binCount - 1
		}
		bins[idx].Count++
	}
	result.Bins = bins
	return result
}
