package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"curelab/domain/dataset"

	"github.com/xuri/excelize/v2"
)

// DataReader reads an experiment sheet (.xlsx or .csv) into the ingestion
// mapping. The first column is the experiment id; output columns are named
// by the caller and every other numeric column becomes an input. Cells that
// fail to parse as numbers are skipped, so the record simply lacks that
// field.
type DataReader struct {
	filePath      string
	fileType      string // "xlsx" or "csv"
	outputColumns map[string]bool
}

// NewDataReader creates a reader for the given file, choosing the format by
// extension.
func NewDataReader(filePath string, outputColumns []string) *DataReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	outputs := make(map[string]bool, len(outputColumns))
	for _, col := range outputColumns {
		outputs[col] = true
	}
	return &DataReader{filePath: filePath, fileType: fileType, outputColumns: outputs}
}

// ReadRecords loads the sheet into the record mapping consumed by
// dataset.NewStore.
func (r *DataReader) ReadRecords() (map[string]dataset.RawRecord, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("dataset file must have a header row and at least one data row")
	}
	return r.processRows(rows)
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	log.Printf("[DataReader] Sheet1 read (%d rows)", len(rows))
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV rows: %w", err)
	}
	log.Printf("[DataReader] CSV read (%d rows)", len(rows))
	return rows, nil
}

func (r *DataReader) processRows(rows [][]string) (map[string]dataset.RawRecord, error) {
	header := rows[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("dataset file needs an id column and at least one field column")
	}

	records := make(map[string]dataset.RawRecord, len(rows)-1)
	skipped := 0
	for i, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			skipped++
			continue
		}
		id := strings.TrimSpace(row[0])
		rec := dataset.RawRecord{
			Inputs:  map[string]float64{},
			Outputs: map[string]float64{},
		}
		for col := 1; col < len(header) && col < len(row); col++ {
			name := strings.TrimSpace(header[col])
			if name == "" {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
			if err != nil {
				continue
			}
			if r.outputColumns[name] {
				rec.Outputs[name] = v
			} else {
				rec.Inputs[name] = v
			}
		}
		if _, exists := records[id]; exists {
			log.Printf("[DataReader] duplicate experiment id %q at row %d, keeping first", id, i+2)
			continue
		}
		records[id] = rec
	}
	if skipped > 0 {
		log.Printf("[DataReader] skipped %d rows with empty id", skipped)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no usable records in %s", r.filePath)
	}
	return records, nil
}
