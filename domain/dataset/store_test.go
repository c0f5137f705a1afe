package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_DerivesKeysFromFirstRecord(t *testing.T) {
	store := NewStore(map[string]RawRecord{
		"exp_002": {
			Inputs:  map[string]float64{"filler_phr": 30},
			Outputs: map[string]float64{"cure_time_min": 9, "elongation_pct": 310},
		},
		"exp_001": {
			Inputs:  map[string]float64{"filler_phr": 20, "oven_temp_c": 170},
			Outputs: map[string]float64{"cure_time_min": 10},
		},
	})

	require.Len(t, store.Records, 2)
	assert.Equal(t, "exp_001", store.Records[0].ID, "records ordered by id")

	// Keys come from the first record only, sorted.
	assert.Equal(t, []string{"filler_phr", "oven_temp_c"}, store.InputKeys)
	assert.Equal(t, []string{"cure_time_min"}, store.OutputKeys)
	assert.Equal(t, []string{"filler_phr", "oven_temp_c", "cure_time_min"}, store.AllKeys)
	assert.NotEmpty(t, store.SnapshotID)
}

func TestNewStore_ExtentsCoverAllRecords(t *testing.T) {
	store := NewStore(map[string]RawRecord{
		"a": {Outputs: map[string]float64{"cure_time_min": 8}},
		"b": {Outputs: map[string]float64{"cure_time_min": 14}},
		"c": {Outputs: map[string]float64{"cure_time_min": math.NaN()}},
	})

	ext, ok := store.Extents["cure_time_min"]
	require.True(t, ok)
	assert.Equal(t, 8.0, ext.Min)
	assert.Equal(t, 14.0, ext.Max)
}

func TestNewStore_NilMapsDefaultEmpty(t *testing.T) {
	store := NewStore(map[string]RawRecord{"a": {}})

	require.Len(t, store.Records, 1)
	assert.NotNil(t, store.Records[0].Inputs)
	assert.NotNil(t, store.Records[0].Outputs)
	assert.Empty(t, store.InputKeys)
	assert.Empty(t, store.OutputKeys)
}

func TestStore_HasFieldAndFindRecord(t *testing.T) {
	store := NewStore(map[string]RawRecord{
		"exp_001": {
			Inputs:  map[string]float64{"filler_phr": 20},
			Outputs: map[string]float64{"cure_time_min": 10},
		},
	})

	assert.True(t, store.HasField("filler_phr", KindInput))
	assert.False(t, store.HasField("filler_phr", KindOutput))
	assert.False(t, store.HasField("bogus", KindInput))

	rec, ok := store.FindRecord("exp_001")
	require.True(t, ok)
	assert.Equal(t, "exp_001", rec.ID)

	_, ok = store.FindRecord("missing")
	assert.False(t, ok)
}

func TestRecord_Field(t *testing.T) {
	rec := Record{
		Inputs:  map[string]float64{"oven_temp_c": 175},
		Outputs: map[string]float64{"cure_time_min": 9.5},
	}

	v, ok := rec.Field("oven_temp_c", KindInput)
	require.True(t, ok)
	assert.Equal(t, 175.0, v)

	_, ok = rec.Field("oven_temp_c", KindOutput)
	assert.False(t, ok)

	_, ok = rec.Field("cure_time_min", FieldKind("bogus"))
	assert.False(t, ok)
}
