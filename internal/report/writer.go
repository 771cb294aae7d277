package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/MrJamesThe3rd/membercards/internal/pipeline"
	"github.com/MrJamesThe3rd/membercards/internal/sheet"
)

// Writer renders a run's results into the workbooks and CSVs the
// office prints and uploads from.
type Writer struct {
	outputDir string
	log       *logrus.Logger
}

// NewWriter creates a writer targeting the given output directory.
func NewWriter(outputDir string, log *logrus.Logger) *Writer {
	return &Writer{outputDir: outputDir, log: log}
}

// WriteAll writes every output file for the run. Filenames carry the
// wall-clock run time so repeated runs never overwrite each other.
func (w *Writer) WriteAll(result *pipeline.Result) error {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	ts := result.Started.Format("2006-01-02T15-04-05")

	workbooks := []struct {
		name   string
		sheets []sheet.NamedTable
	}{
		{
			name: fmt.Sprintf("Cards to Print %s.xlsx", ts),
			sheets: []sheet.NamedTable{
				{Name: "New Letter Accounts", Table: newLetterTable(result.NewLetters)},
				{Name: "Normal Letter Accounts", Table: renewalLetterTable(result.RenewalLetters)},
				{Name: "New Issuances", Table: newIssuancesTable(result)},
				{Name: "Preprints", Table: usedPreprintsTable(result)},
				{Name: "Post Zones", Table: zoneTable(result.LetterZones)},
			},
		},
		{
			name: fmt.Sprintf("postal batches %s.xlsx", ts),
			sheets: []sheet.NamedTable{
				{Name: "Postal Batches", Table: postalBatchesTable(result)},
				{Name: "Zone Resolved", Table: zoneResolvedTable(result)},
				{Name: "Working", Table: workingTable(result)},
			},
		},
		{
			name: fmt.Sprintf("Addresses %s.xlsx", ts),
			sheets: []sheet.NamedTable{
				{Name: "Offsite Members", Table: offsiteTable(result)},
				{Name: "Post Zones", Table: zoneTable(result.PostZones)},
			},
		},
	}

	for _, wb := range workbooks {
		path := filepath.Join(w.outputDir, wb.name)
		if err := sheet.WriteWorkbook(path, wb.sheets); err != nil {
			return fmt.Errorf("writing %s: %w", wb.name, err)
		}

		w.log.WithField("file", wb.name).Info("workbook written")
	}

	csvs := []struct {
		name  string
		table *sheet.Table
	}{
		{fmt.Sprintf("Cards %s.csv", ts), cardsTable(result.Cards)},
		{fmt.Sprintf("Cards_10up %s.csv", ts), tenUpTable(result.Blocks)},
		{fmt.Sprintf("current_members-%s.csv", ts), detailsTable(result)},
		{fmt.Sprintf("associate_members%s.csv", ts), emailTable(result.Segments.Associates)},
		{fmt.Sprintf("normal_members%s.csv", ts), emailTable(result.Segments.Normals)},
		{fmt.Sprintf("mailing_list_members%s.csv", ts), emailTable(result.Segments.MailingList)},
	}

	for _, c := range csvs {
		path := filepath.Join(w.outputDir, c.name)
		if err := sheet.WriteCSV(path, c.table); err != nil {
			return fmt.Errorf("writing %s: %w", c.name, err)
		}

		w.log.WithField("file", c.name).Info("csv written")
	}

	return nil
}
