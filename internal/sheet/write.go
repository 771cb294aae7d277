package sheet

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// NamedTable pairs a table with the sheet name it is written under.
type NamedTable struct {
	Name  string
	Table *Table
}

// WriteWorkbook writes the given sheets to a single xlsx workbook.
func WriteWorkbook(path string, sheets []NamedTable) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, sh := range sheets {
		if i == 0 {
			// Rename the default sheet instead of leaving it empty.
			if err := f.SetSheetName("Sheet1", sh.Name); err != nil {
				return fmt.Errorf("sheet %q: %w", sh.Name, err)
			}
		} else {
			if _, err := f.NewSheet(sh.Name); err != nil {
				return fmt.Errorf("sheet %q: %w", sh.Name, err)
			}
		}

		if err := writeSheet(f, sh.Name, sh.Table); err != nil {
			return fmt.Errorf("sheet %q: %w", sh.Name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}

	return nil
}

func writeSheet(f *excelize.File, name string, t *Table) error {
	if err := f.SetSheetRow(name, "A1", rowValues(t.Columns)); err != nil {
		return err
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(name, cell, rowValues(row)); err != nil {
			return err
		}
	}

	return nil
}

func rowValues(row []string) *[]interface{} {
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}

	return &values
}

// WriteCSV writes the table as a CSV file with a header row.
func WriteCSV(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if err := w.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}

	w.Flush()

	return w.Error()
}
