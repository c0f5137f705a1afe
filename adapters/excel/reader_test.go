package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "experiments.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadRecords_SplitsInputsAndOutputs(t *testing.T) {
	path := writeCSV(t,
		"experiment_id,coagent_a_phr,filler_phr,cure_time_min,elongation_pct\n"+
			"exp_001,3.0,20,10,300\n"+
			"exp_002,4.0,22,12,320\n")

	reader := NewDataReader(path, []string{"cure_time_min", "elongation_pct"})
	records, err := reader.ReadRecords()
	require.NoError(t, err)
	require.Len(t, records, 2)

	rec := records["exp_001"]
	assert.Equal(t, map[string]float64{"coagent_a_phr": 3, "filler_phr": 20}, rec.Inputs)
	assert.Equal(t, map[string]float64{"cure_time_min": 10, "elongation_pct": 300}, rec.Outputs)
}

func TestReadRecords_SkipsNonNumericCells(t *testing.T) {
	path := writeCSV(t,
		"experiment_id,filler_phr,cure_time_min\n"+
			"exp_001,n/a,10\n"+
			"exp_002,22,\n")

	reader := NewDataReader(path, []string{"cure_time_min"})
	records, err := reader.ReadRecords()
	require.NoError(t, err)

	assert.Empty(t, records["exp_001"].Inputs, "unparseable cell leaves the field absent")
	assert.Equal(t, 10.0, records["exp_001"].Outputs["cure_time_min"])
	assert.Empty(t, records["exp_002"].Outputs)
}

func TestReadRecords_SkipsRowsWithoutID(t *testing.T) {
	path := writeCSV(t,
		"experiment_id,filler_phr\n"+
			",20\n"+
			"exp_001,21\n")

	reader := NewDataReader(path, nil)
	records, err := reader.ReadRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Contains(t, records, "exp_001")
}

func TestReadRecords_DuplicateIDKeepsFirst(t *testing.T) {
	path := writeCSV(t,
		"experiment_id,filler_phr\n"+
			"exp_001,20\n"+
			"exp_001,99\n")

	reader := NewDataReader(path, nil)
	records, err := reader.ReadRecords()
	require.NoError(t, err)
	assert.Equal(t, 20.0, records["exp_001"].Inputs["filler_phr"])
}

func TestReadRecords_MissingFile(t *testing.T) {
	reader := NewDataReader(filepath.Join(t.TempDir(), "nope.csv"), nil)
	_, err := reader.ReadRecords()
	assert.Error(t, err)
}

func TestReadRecords_HeaderOnly(t *testing.T) {
	path := writeCSV(t, "experiment_id,filler_phr\n")
	reader := NewDataReader(path, nil)
	_, err := reader.ReadRecords()
	assert.Error(t, err)
}
