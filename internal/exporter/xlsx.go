package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/manifest-network/adacoin/internal/ledger"
)

const rejectionsSheet = "Rejections"

var rejectionsHeader = []string{"Seq", "Date", "TID", "Kind", "Message", "Value"}

// ExportRejectionsXLSX writes the rejected blocks of a JSON journal to a spreadsheet with one row
// per rejection.
func ExportRejectionsXLSX(inputDir, outputPath string) error {
	entries, err := readJournal(inputDir)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rejectionsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	for i, header := range rejectionsHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(rejectionsSheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	row := 2
	for _, e := range entries {
		if e.event.Type != ledger.EventBlockRejected {
			continue
		}
		ev := e.event
		values := []any{e.seq, ev.Timestamp, ev.TID, string(ev.Kind), ev.Message, ev.Value}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(rejectionsSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
		row++
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save spreadsheet: %w", err)
	}
	return nil
}
