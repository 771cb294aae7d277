package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/membercards/internal/encoding"
)

//go:generate mockgen -source=source.go -destination=source_mock.go -package=sheet

// Source supplies whole input tables by workbook name and sheet name.
type Source interface {
	Load(name, sheetName string) (*Table, error)
}

// MissingInputError reports a required input table that was not found at
// any of its candidate paths. It aborts the run: the pipeline never
// produces partial output from a partial snapshot.
type MissingInputError struct {
	Table string
	Paths []string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("input table %q not found, looked for %v", e.Table, e.Paths)
}

// Dir loads tables from a directory of exported workbooks. Each table is
// probed as <name>.xlsx, <name>.xlsm, then <name>.csv.
type Dir struct {
	dir string
}

func NewDir(dir string) *Dir {
	return &Dir{dir: dir}
}

func (d *Dir) Load(name, sheetName string) (*Table, error) {
	candidates := []string{
		filepath.Join(d.dir, name+".xlsx"),
		filepath.Join(d.dir, name+".xlsm"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		tbl, err := loadWorkbook(path, sheetName)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}

		return tbl, nil
	}

	csvPath := filepath.Join(d.dir, name+".csv")
	if _, err := os.Stat(csvPath); err == nil {
		tbl, err := loadCSV(csvPath)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", csvPath, err)
		}

		return tbl, nil
	}

	return nil, &MissingInputError{Table: name, Paths: append(candidates, csvPath)}
}

func loadWorkbook(path, sheetName string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
	}

	return tableFromRows(rows), nil
}

func loadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	utf8r, err := encoding.NewUTF8Reader(f)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return tableFromRows(rows), nil
}

// tableFromRows treats the first non-empty row as the header.
func tableFromRows(rows [][]string) *Table {
	for i, row := range rows {
		if !emptyRow(row) {
			return NewTable(row, rows[i+1:]...)
		}
	}

	return NewTable(nil)
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}

	return true
}
