package bulk

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RequiredColumns must all be present (after normalization) before any row
// is handed downstream.
var RequiredColumns = []string{"email", "password", "name", "role"}

var (
	ErrUnsupportedFormat = errors.New("unsupported file type, please upload a CSV or XLSX file")
	ErrEmptyFile         = errors.New("the uploaded file is empty")
)

// MissingColumnsError names every required column absent from the upload.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns in file: " + strings.Join(e.Columns, ", ")
}

// Decode turns an uploaded table into an ordered sequence of rows keyed by
// normalized (lower-cased, trimmed) column names. Format is determined by
// the file extension. All failures here are whole-batch preconditions.
func Decode(filename string, data []byte) ([]Row, error) {
	var records [][]string
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		records, err = parseCSV(data)
	case ".xlsx":
		records, err = parseXLSX(data)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	header := normalizeHeader(records[0])

	var missing []string
	for _, col := range RequiredColumns {
		if !containsColumn(header, col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	if len(records) < 2 {
		return nil, ErrEmptyFile
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseCSV(data []byte) ([][]string, error) {
	// Strip a UTF-8 BOM so the first header cell normalizes cleanly.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error processing file: %w", err)
	}
	return records, nil
}

func parseXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error processing file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error processing file: %w", err)
	}
	return records, nil
}

func normalizeHeader(raw []string) []string {
	header := make([]string, len(raw))
	for i, col := range raw {
		header[i] = strings.ToLower(strings.TrimSpace(col))
	}
	return header
}

func containsColumn(header []string, col string) bool {
	for _, h := range header {
		if h == col {
			return true
		}
	}
	return false
}
