package dataset

// FieldKind distinguishes formulation inputs from measured outputs.
type FieldKind string

const (
	KindInput  FieldKind = "input"
	KindOutput FieldKind = "output"
)

// Record is one normalized experiment: named numeric formulation inputs
// (phr quantities, oven settings) and measured outputs. Field sets are not
// guaranteed identical across records; a record may lack a field that other
// records carry. Records are built once at load time and never mutated.
type Record struct {
	ID      string             `json:"id"`
	Inputs  map[string]float64 `json:"inputs"`
	Outputs map[string]float64 `json:"outputs"`
}

// Field looks up a named field on the given side of the record.
func (r Record) Field(name string, kind FieldKind) (float64, bool) {
	switch kind {
	case KindInput:
		v, ok := r.Inputs[name]
		return v, ok
	case KindOutput:
		v, ok := r.Outputs[name]
		return v, ok
	}
	return 0, false
}

// RawRecord is the ingestion contract: what a dataset reader hands over for
// one record identifier. Missing maps default to empty, not nil semantics.
type RawRecord struct {
	Inputs  map[string]float64 `json:"inputs"`
	Outputs map[string]float64 `json:"outputs"`
}

// Extent is the cached per-output value range, computed once at load.
type Extent struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
