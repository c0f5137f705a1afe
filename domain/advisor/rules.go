package advisor

import "curelab/domain/dataset"

// Predicate tags how a rule compares the anchor value to the dataset mean.
type Predicate string

const (
	// PredicateHigh fires only when the value is high; a cheap or low value
	// needs no flag.
	PredicateHigh Predicate = "high"
	// PredicateHighElse always produces a bullet: the high branch or the
	// else branch.
	PredicateHighElse Predicate = "high_else"
	// PredicateAtMostMean is the binary favorable-iff-at-most-mean check;
	// both branches produce a bullet.
	PredicateAtMostMean Predicate = "at_most_mean"
	// PredicateHighLow fires on high or low and stays silent in the neutral
	// middle band.
	PredicateHighLow Predicate = "high_low"
)

// Rule compares one anchor field against its dataset-wide stats. Rules are
// data: the engine interprets the predicate tag, so threshold logic lives in
// exactly one place.
//
// Message templates receive (value, mean) or, with WithRange set,
// (value, mean, min, max).
type Rule struct {
	Field     string
	Kind      dataset.FieldKind
	Predicate Predicate
	WithRange bool

	// HighMsg renders the fired (high / favorable) branch, LowMsg the low,
	// else or unfavorable branch where the predicate has one.
	HighMsg string
	LowMsg  string
}

// Category is one advisory grouping with its fixed, ordered rule set and the
// neutral text substituted when no rule contributes a bullet.
type Category struct {
	ID       string
	Title    string
	Rules    []Rule
	Fallback string
}

// Well-known formulation fields inspected by the fixed rule table.
const (
	FieldCoagentA    = "coagent_a_phr"
	FieldCoagentB    = "coagent_b_phr"
	FieldFiller      = "filler_phr"
	FieldOvenTemp    = "oven_temp_c"
	FieldCureTime    = "cure_time_min"
	FieldCompression = "compression_set_pct"
	FieldElongation  = "elongation_pct"
)

// Categories returns the fixed advisory table in presentation order:
// cost, cure, field performance.
func Categories() []Category {
	return []Category{
		{
			ID:    "cost",
			Title: "Cost levers",
			Rules: []Rule{
				{
					Field: FieldCoagentA, Kind: dataset.KindInput,
					Predicate: PredicateHigh, WithRange: true,
					HighMsg: "Co-agent A loading %.2f phr is high versus the dataset mean %.2f phr (range %.2f–%.2f phr); trimming it is the first cost lever.",
				},
				{
					Field: FieldCoagentB, Kind: dataset.KindInput,
					Predicate: PredicateHigh, WithRange: true,
					HighMsg: "Co-agent B loading %.2f phr is high versus the dataset mean %.2f phr (range %.2f–%.2f phr); check whether the extra dosage buys measurable cure benefit.",
				},
				{
					Field: FieldFiller, Kind: dataset.KindInput,
					Predicate: PredicateHigh, WithRange: true,
					HighMsg: "Filler loading %.2f phr is above typical (mean %.2f phr, range %.2f–%.2f phr); high filler can mask co-agent effects and add mixing cost.",
				},
			},
			Fallback: "Formulation loadings sit in the typical range; no obvious cost lever stands out.",
		},
		{
			ID:    "cure",
			Title: "Cure time & oven utilization",
			Rules: []Rule{
				{
					Field: FieldCureTime, Kind: dataset.KindOutput,
					Predicate: PredicateHighElse,
					HighMsg:   "Cure time %.2f min runs long versus the dataset mean %.2f min; oven throughput suffers at this setting.",
					LowMsg:    "Cure time %.2f min is acceptable against the dataset mean %.2f min.",
				},
				{
					Field: FieldOvenTemp, Kind: dataset.KindInput,
					Predicate: PredicateHighElse,
					HighMsg:   "Oven temperature %.2f °C is high versus the dataset mean %.2f °C; energy cost rises and scorch risk grows.",
					LowMsg:    "Oven temperature %.2f °C is moderate against the dataset mean %.2f °C.",
				},
			},
			Fallback: "No cure or oven readings available for this experiment.",
		},
		{
			ID:    "field",
			Title: "Field performance & scrap",
			Rules: []Rule{
				{
					Field: FieldCompression, Kind: dataset.KindOutput,
					Predicate: PredicateAtMostMean,
					HighMsg:   "Compression set %.2f%% is at or below the dataset mean %.2f%%, favorable for sealing life.",
					LowMsg:    "Compression set %.2f%% exceeds the dataset mean %.2f%%; expect faster relaxation and more field scrap.",
				},
				{
					Field: FieldElongation, Kind: dataset.KindOutput,
					Predicate: PredicateHighLow, WithRange: true,
					HighMsg:   "Elongation %.2f%% is high versus the mean %.2f%% (range %.2f–%.2f%%); the compound may be undercured.",
					LowMsg:    "Elongation %.2f%% is low versus the mean %.2f%% (range %.2f–%.2f%%); brittle parts raise installation scrap.",
				},
			},
			Fallback: "Field performance readings are in the neutral band for this experiment.",
		},
	}
}
