package ui

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gomarkdown/markdown"

	"curelab/ai"
	"curelab/domain/dataset"
	"curelab/domain/histogram"
	"curelab/domain/stats"
)

func (a *App) handleRecords(w http.ResponseWriter, r *http.Request) {
	ids := make([]string, 0, len(a.store.Records))
	for _, rec := range a.store.Records {
		ids = append(ids, rec.ID)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"snapshot_id": a.store.SnapshotID,
		"record_ids":  ids,
		"input_keys":  a.store.InputKeys,
		"output_keys": a.store.OutputKeys,
		"extents":     a.store.Extents,
	})
}

func (a *App) handleAdvisory(w http.ResponseWriter, r *http.Request) {
	anchor, ok := a.anchorFromQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"record_id": anchor.ID,
		"sections":  a.advisor.Advise(anchor),
	})
}

func (a *App) handleHistogram(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("input")
	output := r.URL.Query().Get("output")
	if !a.store.HasField(input, dataset.KindInput) {
		writeError(w, http.StatusBadRequest, "unknown input field: "+input)
		return
	}
	if !a.store.HasField(output, dataset.KindOutput) {
		writeError(w, http.StatusBadRequest, "unknown output field: "+output)
		return
	}

	// Range bounds default to the cached dataset-wide extent of the output.
	ext, _ := a.histogram.DefaultRange(output)
	rangeMin := queryFloat(r, "min", ext.Min)
	rangeMax := queryFloat(r, "max", ext.Max)
	bins := int(queryFloat(r, "bins", histogram.DefaultBinCount))

	result := a.histogram.Build(input, output, rangeMin, rangeMax, bins)
	writeJSON(w, http.StatusOK, result)
}

func (a *App) handlePrompt(w http.ResponseWriter, r *http.Request) {
	anchor, ok := a.anchorFromQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ai.BuildPreview(anchor, a.store))
}

func (a *App) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"snapshot_id": a.store.SnapshotID,
		"fields":      stats.SummarizeStore(a.store),
	})
}

// adviceResponse is the variant result of the external call: parsed sections
// when the reply matched the contract, plus the raw text either way.
type adviceResponse struct {
	Disabled bool         `json:"disabled,omitempty"`
	Message  string       `json:"message,omitempty"`
	Sections []ai.Section `json:"sections,omitempty"`
	Raw      string       `json:"raw,omitempty"`
	HTML     string       `json:"html,omitempty"`
}

func (a *App) handleAdvice(w http.ResponseWriter, r *http.Request) {
	if a.client == nil {
		writeJSON(w, http.StatusOK, adviceResponse{
			Disabled: true,
			Message:  "AI advice is disabled: no OpenAI API key is configured",
		})
		return
	}
	anchor, ok := a.anchorFromQuery(w, r)
	if !ok {
		return
	}

	if !a.adviceSem.TryAcquire(1) {
		writeError(w, http.StatusTooManyRequests, "an advice request is already in flight")
		return
	}
	defer a.adviceSem.Release(1)

	prompt := ai.BuildPrompt(anchor, a.store)
	reply, err := a.client.Respond(r.Context(), a.model, prompt, ai.OutputTokenBudget)
	if err != nil {
		// One-shot call: surface the failure once, no retry.
		a.logger.Error("advice call failed for record %s: %v", anchor.ID, err)
		writeError(w, http.StatusBadGateway, "the advice service is unavailable right now")
		return
	}

	writeJSON(w, http.StatusOK, adviceResponse{
		Sections: ai.ParseSections(reply),
		Raw:      reply,
		HTML:     string(markdown.ToHTML([]byte(reply), nil, nil)),
	})
}

func (a *App) anchorFromQuery(w http.ResponseWriter, r *http.Request) (dataset.Record, bool) {
	id := r.URL.Query().Get("record")
	if id == "" {
		writeError(w, http.StatusBadRequest, "record query parameter is required")
		return dataset.Record{}, false
	}
	anchor, ok := a.store.FindRecord(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown record: "+id)
		return dataset.Record{}, false
	}
	return anchor, true
}

func queryFloat(r *http.Request, key string, fallback float64) float64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	// Marshal before touching the status line so an encode failure cannot
	// leave a 200 with an empty body.
	body, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to encode response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
