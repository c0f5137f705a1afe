package ai

import (
	"fmt"
	"strings"

	"curelab/domain/dataset"
	"curelab/domain/stats"
)

// AdviceModel is the fixed model identifier sent with every advice request.
const AdviceModel = "gpt-4o-mini"

// OutputTokenBudget is reserved for the model's reply and added to every
// token estimate.
const OutputTokenBudget = 700

// Section header titles the prompt contract fixes, in required order. The
// response parser relies on the model honoring these.
var SectionHeaders = []string{
	"Cost levers",
	"Cure time & oven utilization",
	"Field performance & scrap",
}

// PromptPreview is a rendered prompt plus its rough token estimate.
type PromptPreview struct {
	Text            string `json:"text"`
	EstimatedTokens int    `json:"estimated_tokens"`
}

// BuildPrompt assembles the advice prompt for one anchor experiment:
// instructional preamble, the anchor's inputs and outputs, and a historical
// summary per output over the whole dataset. Pure and deterministic; the
// response-shape contract is restated on every call.
func BuildPrompt(anchor dataset.Record, store *dataset.Store) string {
	var b strings.Builder

	b.WriteString("You are a rubber compounding advisor. Compare the experiment below against the historical dataset summary and give practical formulation advice.\n")
	b.WriteString("Respond with exactly three markdown sections, in this order:\n")
	for _, title := range SectionHeaders {
		b.WriteString("### " + title + "\n")
	}
	b.WriteString("Each section must contain 2–4 numbered bullets (\"1. ...\"). No other text.\n\n")

	b.WriteString("Experiment " + anchor.ID + "\n")

	b.WriteString("\nInputs (phr / settings):\n")
	b.WriteString(fieldListing(anchor.Inputs, store.InputKeys))
	b.WriteString("\nOutputs (measured):\n")
	b.WriteString(fieldListing(anchor.Outputs, store.OutputKeys))

	b.WriteString(fmt.Sprintf("\nHistorical dataset: %d experiments.\n", len(store.Records)))
	for _, key := range store.OutputKeys {
		values := stats.FieldValues(store.Records, key, dataset.KindOutput)
		if len(values) == 0 {
			b.WriteString(fmt.Sprintf("%s: no historical data available\n", key))
			continue
		}
		fs := stats.ComputeStats(values)
		b.WriteString(fmt.Sprintf("%s: mean=%.2f median=%.2f min=%.2f max=%.2f\n",
			key, fs.Mean, stats.Median(values), fs.Min, fs.Max))
	}
	return b.String()
}

// BuildPreview bundles the prompt with its token estimate.
func BuildPreview(anchor dataset.Record, store *dataset.Store) PromptPreview {
	text := BuildPrompt(anchor, store)
	return PromptPreview{Text: text, EstimatedTokens: EstimateTokens(text)}
}

// EstimateTokens gives a rough request budget: a four-characters-per-token
// heuristic for the prompt plus the fixed reply reservation. Explicitly an
// estimate, not a tokenizer.
func EstimateTokens(prompt string) int {
	promptTokens := (len(prompt) + 3) / 4
	return promptTokens + OutputTokenBudget
}

func fieldListing(fields map[string]float64, keys []string) string {
	var b strings.Builder
	for _, key := range keys {
		v, ok := fields[key]
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("%s: %.2f\n", key, v))
	}
	return b.String()
}
