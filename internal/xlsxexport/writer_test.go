package xlsxexport

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"alazab/internal/domain"
)

func TestWriter_BuildsRegister(t *testing.T) {
	invoiceDate := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	lastSynced := time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC)

	invoices := []domain.Invoice{
		{
			InvoiceNumber:    "AZ-INV-2025-0142",
			ClientName:       "Nile Contracting",
			Total:            decimal.RequireFromString("4200.50"),
			InvoiceDate:      &invoiceDate,
			Status:           domain.InvoiceStatusApproved,
			Documents:        domain.DocumentPaths{domain.DocumentKindReceipt: "r", domain.DocumentKindTax: "t"},
			SyncedFromDaftra: true,
			LastSyncedAt:     &lastSynced,
			Notes:            "paid in two installments",
		},
		{
			InvoiceNumber: "AZ-INV-2025-0143",
			ClientName:    "Delta Steel",
			Total:         decimal.RequireFromString("980"),
			Status:        domain.InvoiceStatusPending,
			Documents:     domain.DocumentPaths{},
		},
	}

	w, err := NewWriter()
	require.NoError(t, err)
	require.NoError(t, w.WriteInvoices(invoices))

	var buf bytes.Buffer
	require.NoError(t, w.WriteTo(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, columns, rows[0])

	assert.Equal(t, "AZ-INV-2025-0142", rows[1][0])
	assert.Equal(t, "Nile Contracting", rows[1][1])
	assert.Equal(t, "4200.5", rows[1][2])
	assert.Equal(t, "2025-03-14", rows[1][3])
	assert.Equal(t, "approved", rows[1][4])
	assert.Equal(t, "TRUE", rows[1][5])
	assert.Equal(t, "2025-03-15 09:30:00", rows[1][6])
	// Kinds come out in tax, detailed, receipt order regardless of map order.
	assert.Equal(t, "tax, receipt", rows[1][7])
	assert.Equal(t, "paid in two installments", rows[1][8])

	assert.Equal(t, "AZ-INV-2025-0143", rows[2][0])
	assert.Equal(t, "pending", rows[2][4])
	// GetRows trims trailing empty cells, so the second row may be short.
	if len(rows[2]) > 3 {
		assert.Equal(t, "", rows[2][3])
	}
}

func TestDocumentSummary_Order(t *testing.T) {
	docs := domain.DocumentPaths{
		domain.DocumentKindReceipt:  "2025/AZ-INV-2025-0142/AZ-INV-2025-0142-receipt.pdf",
		domain.DocumentKindDetailed: "2025/AZ-INV-2025-0142/AZ-INV-2025-0142-detailed.pdf",
		domain.DocumentKindTax:      "2025/AZ-INV-2025-0142/AZ-INV-2025-0142.pdf",
	}
	assert.Equal(t, "tax, detailed, receipt", documentSummary(docs))
	assert.Equal(t, "", documentSummary(domain.DocumentPaths{}))
}
