package advisor

import (
	"fmt"
	"math"
	"strings"

	"curelab/domain/dataset"
	"curelab/domain/stats"
	"curelab/internal/errors"
)

// Threshold factors shared by every rule. High and Low are the single source
// of truth for "notably above" and "notably below" the dataset mean.
const (
	HighFactor = 1.15
	LowFactor  = 0.85
)

// High reports whether v sits strictly above 115% of the mean. The ratio
// form keeps the exact boundary out: HighFactor*mean rounds below the true
// product for means like 100, which would flip v == 1.15*mean to true.
func High(v float64, s stats.FieldStats) bool {
	if s.Mean > 0 {
		return v/s.Mean > HighFactor
	}
	return v > HighFactor*s.Mean
}

// Low reports whether v sits strictly below 85% of the mean.
func Low(v float64, s stats.FieldStats) bool {
	if s.Mean > 0 {
		return v/s.Mean < LowFactor
	}
	return v < LowFactor*s.Mean
}

// Section is one advisory grouping rendered for the UI: ordered bullets plus
// a newline-joined explanation log that restates each bullet's arithmetic.
type Section struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Bullets     []string `json:"bullets"`
	Explanation string   `json:"explanation"`
}

// Engine evaluates the fixed rule table for one anchor record against
// dataset-wide statistics.
type Engine struct {
	store      *dataset.Store
	categories []Category
}

// NewEngine validates the rule table against the store's field registry so a
// mistyped rule field surfaces at construction, not silently at evaluation.
// The engine is returned alongside the error and stays usable: the registry
// cannot tell a typo from a dataset that legitimately lacks a column, so
// rules for absent fields degrade to skips and fallbacks per category while
// the caller decides whether the mismatch is fatal.
func NewEngine(store *dataset.Store) (*Engine, error) {
	categories := Categories()
	engine := &Engine{store: store, categories: categories}

	var unknown []string
	for _, cat := range categories {
		for _, rule := range cat.Rules {
			if !store.HasField(rule.Field, rule.Kind) {
				unknown = append(unknown, fmt.Sprintf("%s/%s", rule.Kind, rule.Field))
			}
		}
	}
	if len(unknown) > 0 {
		return engine, errors.New("UNKNOWN_RULE_FIELD",
			fmt.Sprintf("advisory rules reference fields absent from the dataset: %s", strings.Join(unknown, ", ")))
	}
	return engine, nil
}

// Advise produces exactly three sections in fixed order (cost, cure, field).
// Missing anchor fields skip their rules; a category with no fired rule gets
// its neutral fallback, so bullets are never empty. Advise never fails, any
// dataset shape degrades to neutral text.
func (e *Engine) Advise(anchor dataset.Record) []Section {
	sections := make([]Section, 0, len(e.categories))
	for _, cat := range e.categories {
		sections = append(sections, e.evaluateCategory(cat, anchor))
	}
	return sections
}

func (e *Engine) evaluateCategory(cat Category, anchor dataset.Record) Section {
	section := Section{ID: cat.ID, Title: cat.Title}
	var explanations []string

	for _, rule := range cat.Rules {
		v, ok := anchor.Field(rule.Field, rule.Kind)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		fieldStats := stats.StatsForField(e.store.Records, rule.Field, rule.Kind)

		bullet, explanation := evaluateRule(rule, v, fieldStats)
		if bullet == "" {
			continue
		}
		section.Bullets = append(section.Bullets, bullet)
		explanations = append(explanations, explanation)
	}

	if len(section.Bullets) == 0 {
		section.Bullets = []string{cat.Fallback}
		explanations = append(explanations,
			fmt.Sprintf("%s: no rule matched for this record; neutral fallback shown", cat.ID))
	}
	section.Explanation = strings.Join(explanations, "\n")
	return section
}

// evaluateRule interprets one tagged rule. It returns an empty bullet when
// the rule stays silent for this value.
func evaluateRule(rule Rule, v float64, s stats.FieldStats) (string, string) {
	switch rule.Predicate {
	case PredicateHigh:
		if High(v, s) {
			return render(rule, rule.HighMsg, v, s), explainThreshold(rule.Field, v, s, true)
		}
		return "", ""

	case PredicateHighElse:
		if High(v, s) {
			return render(rule, rule.HighMsg, v, s), explainThreshold(rule.Field, v, s, true)
		}
		return render(rule, rule.LowMsg, v, s),
			fmt.Sprintf("%s: value=%.4f mean=%.4f rule=value <= %.2f*mean threshold=%.4f",
				rule.Field, v, s.Mean, HighFactor, HighFactor*s.Mean)

	case PredicateAtMostMean:
		if v <= s.Mean {
			return render(rule, rule.HighMsg, v, s),
				fmt.Sprintf("%s: value=%.4f mean=%.4f rule=value <= mean (favorable)", rule.Field, v, s.Mean)
		}
		return render(rule, rule.LowMsg, v, s),
			fmt.Sprintf("%s: value=%.4f mean=%.4f rule=value > mean (unfavorable)", rule.Field, v, s.Mean)

	case PredicateHighLow:
		if High(v, s) {
			return render(rule, rule.HighMsg, v, s), explainThreshold(rule.Field, v, s, true)
		}
		if Low(v, s) {
			return render(rule, rule.LowMsg, v, s), explainThreshold(rule.Field, v, s, false)
		}
		return "", ""
	}
	return "", ""
}

func render(rule Rule, template string, v float64, s stats.FieldStats) string {
	if rule.WithRange {
		return fmt.Sprintf(template, v, s.Mean, s.Min, s.Max)
	}
	return fmt.Sprintf(template, v, s.Mean)
}

func explainThreshold(field string, v float64, s stats.FieldStats, high bool) string {
	if high {
		return fmt.Sprintf("%s: value=%.4f mean=%.4f rule=value > %.2f*mean threshold=%.4f",
			field, v, s.Mean, HighFactor, HighFactor*s.Mean)
	}
	return fmt.Sprintf("%s: value=%.4f mean=%.4f rule=value < %.2f*mean threshold=%.4f",
		field, v, s.Mean, LowFactor, LowFactor*s.Mean)
}
