package dataset

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Store holds the normalized record list and the field-name registries
// derived at load time. It is immutable after construction, so it is safe to
// share across concurrent readers without locking.
type Store struct {
	SnapshotID string    `json:"snapshot_id"`
	LoadedAt   time.Time `json:"loaded_at"`

	Records []Record `json:"records"`

	// Key lists are derived from the first record (by id order), which is
	// assumed representative of the whole dataset.
	InputKeys  []string `json:"input_keys"`
	OutputKeys []string `json:"output_keys"`
	AllKeys    []string `json:"all_keys"`

	// Extents caches {min,max} per output field. Written once here, read-only
	// afterward.
	Extents map[string]Extent `json:"extents"`
}

// NewStore normalizes the ingestion mapping into an immutable snapshot.
// Records are ordered by id so key derivation and iteration are
// deterministic regardless of map iteration order.
func NewStore(raw map[string]RawRecord) *Store {
	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	records := make([]Record, 0, len(ids))
	for _, id := range ids {
		entry := raw[id]
		rec := Record{ID: id, Inputs: entry.Inputs, Outputs: entry.Outputs}
		if rec.Inputs == nil {
			rec.Inputs = map[string]float64{}
		}
		if rec.Outputs == nil {
			rec.Outputs = map[string]float64{}
		}
		records = append(records, rec)
	}

	s := &Store{
		SnapshotID: uuid.NewString(),
		LoadedAt:   time.Now(),
		Records:    records,
	}

	if len(records) > 0 {
		s.InputKeys = sortedKeys(records[0].Inputs)
		s.OutputKeys = sortedKeys(records[0].Outputs)
	}
	s.AllKeys = append(append([]string{}, s.InputKeys...), s.OutputKeys...)

	s.Extents = make(map[string]Extent, len(s.OutputKeys))
	for _, key := range s.OutputKeys {
		s.Extents[key] = outputExtent(records, key)
	}
	return s
}

// HasField reports whether the registry derived at load time knows the field.
func (s *Store) HasField(name string, kind FieldKind) bool {
	keys := s.InputKeys
	if kind == KindOutput {
		keys = s.OutputKeys
	}
	for _, k := range keys {
		if k == name {
			return true
		}
	}
	return false
}

// FindRecord returns the record with the given id.
func (s *Store) FindRecord(id string) (Record, bool) {
	for _, r := range s.Records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

func outputExtent(records []Record, field string) Extent {
	first := true
	var ext Extent
	for _, r := range records {
		v, ok := r.Outputs[field]
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if first {
			ext = Extent{Min: v, Max: v}
			first = false
			continue
		}
		if v < ext.Min {
			ext.Min = v
		}
		if v > ext.Max {
			ext.Max = v
		}
	}
	return ext
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
