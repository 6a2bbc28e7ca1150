package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/expensetracker/backend/internal/models"
	"github.com/xuri/excelize/v2"
)

// exportHeader is the column layout shared by the CSV and XLSX export.
var exportHeader = []string{"Date", "Type", "Purpose", "Category", "Payment Method", "Amount", "Notes"}

// exportRow serializes one transaction into the export columns. The
// date uses the short locale form, not ISO, and the amount is fixed to
// two decimal places.
func exportRow(t models.Transaction) []string {
	return []string{
		t.Date.Format("1/2/2006"),
		string(t.Type),
		t.Purpose,
		t.Category,
		t.PaymentMethod,
		t.Amount.StringFixed(2),
		t.Notes,
	}
}

// WriteCSV writes the transactions as CSV. Fields containing quotes or
// separators are quoted with embedded quotes doubled.
func WriteCSV(w io.Writer, transactions []models.Transaction) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeader); err != nil {
		return err
	}

	for _, transaction := range transactions {
		if err := writer.Write(exportRow(transaction)); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteXLSX writes the transactions as an Excel workbook with the same
// columns as the CSV export.
func WriteXLSX(w io.Writer, transactions []models.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for column, name := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(column+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}

	for i, transaction := range transactions {
		for column, value := range exportRow(transaction) {
			cell, err := excelize.CoordinatesToCellName(column+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

// ExportFilename returns the attachment filename for an export created
// at the given time, e.g. "transactions_export_2024-03-17.csv".
func ExportFilename(format string, now time.Time) string {
	return fmt.Sprintf("transactions_export_%s.%s", now.In(time.UTC).Format("2006-01-02"), format)
}
