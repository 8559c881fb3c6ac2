// Package xlsxexport builds the invoice register workbook handed to the
// accounting department.
package xlsxexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"alazab/internal/domain"
)

const sheetName = "Invoices"

// columns defines the register header row.
var columns = []string{
	"Invoice Number",
	"Client",
	"Total",
	"Invoice Date",
	"Status",
	"Synced From Daftra",
	"Last Synced At",
	"Documents",
	"Notes",
}

// Writer builds an XLSX invoice register.
type Writer struct {
	file *excelize.File
	row  int
}

// NewWriter creates a Writer with the header row already in place.
func NewWriter() (*Writer, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("xlsxexport.NewWriter: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("xlsxexport.NewWriter: %w", err)
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return nil, err
		}
	}
	return &Writer{file: f, row: 1}, nil
}

// WriteInvoices appends one row per invoice record.
func (w *Writer) WriteInvoices(invoices []domain.Invoice) error {
	for i := range invoices {
		w.row++
		if err := w.writeRow(&invoices[i]); err != nil {
			return fmt.Errorf("xlsxexport.WriteInvoices: row %d: %w", w.row, err)
		}
	}
	return nil
}

func (w *Writer) writeRow(inv *domain.Invoice) error {
	invoiceDate := ""
	if inv.InvoiceDate != nil {
		invoiceDate = inv.InvoiceDate.Format("2006-01-02")
	}
	lastSynced := ""
	if inv.LastSyncedAt != nil {
		lastSynced = inv.LastSyncedAt.Format("2006-01-02 15:04:05")
	}
	total, _ := inv.Total.Float64()

	values := []interface{}{
		inv.InvoiceNumber,
		inv.ClientName,
		total,
		invoiceDate,
		string(inv.Status),
		inv.SyncedFromDaftra,
		lastSynced,
		documentSummary(inv.Documents),
		inv.Notes,
	}
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, w.row)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(sheetName, cell, value); err != nil {
			return err
		}
	}
	return nil
}

// documentSummary lists the stored kinds in a stable order.
func documentSummary(docs domain.DocumentPaths) string {
	summary := ""
	for _, kind := range []domain.DocumentKind{domain.DocumentKindTax, domain.DocumentKindDetailed, domain.DocumentKindReceipt} {
		if _, ok := docs[kind]; !ok {
			continue
		}
		if summary != "" {
			summary += ", "
		}
		summary += string(kind)
	}
	return summary
}

// WriteTo finalizes the workbook and writes it to w.
func (w *Writer) WriteTo(out io.Writer) error {
	if err := w.file.Write(out); err != nil {
		return fmt.Errorf("xlsxexport.WriteTo: %w", err)
	}
	return w.file.Close()
}
