package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alazab/internal/domain"
)

func newTestVault(t *testing.T) (*Vault, string) {
	t.Helper()
	root := t.TempDir()
	v, err := NewVault(root)
	require.NoError(t, err)
	return v.(*Vault), root
}

func TestInvoiceYear(t *testing.T) {
	tests := []struct {
		name    string
		number  string
		want    string
		wantErr bool
	}{
		{"standard number", "AZ-INV-2025-0142", "2025", false},
		{"different year", "AZ-INV-2019-0001", "2019", false},
		{"too few segments", "AZ-2025-0142", "", true},
		{"too many segments", "AZ-INV-X-2025-0142", "", true},
		{"year too short", "AZ-INV-25-0142", "", true},
		{"year not numeric", "AZ-INV-ABCD-0142", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := invoiceYear(tt.number)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrMalformedInvoiceNumber)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "AZ-INV-2025-0142.pdf", fileName("AZ-INV-2025-0142", domain.DocumentKindTax))
	assert.Equal(t, "AZ-INV-2025-0142-detailed.pdf", fileName("AZ-INV-2025-0142", domain.DocumentKindDetailed))
	assert.Equal(t, "AZ-INV-2025-0142-receipt.pdf", fileName("AZ-INV-2025-0142", domain.DocumentKindReceipt))
}

func TestVault_Save_LayoutAndIdempotency(t *testing.T) {
	v, root := newTestVault(t)

	rel, err := v.Save("AZ-INV-2025-0142", domain.DocumentKindDetailed, []byte("first"))
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join("invoices", "2025", "AZ-INV-2025-0142", "AZ-INV-2025-0142-detailed.pdf"), rel)

	// A second save with the same key overwrites the same physical file.
	rel2, err := v.Save("AZ-INV-2025-0142", domain.DocumentKindDetailed, []byte("second"))
	assert.NoError(t, err)
	assert.Equal(t, rel, rel2)

	data, err := os.ReadFile(filepath.Join(root, rel))
	assert.NoError(t, err)
	assert.Equal(t, []byte("second"), data)

	// No temp files are left behind.
	entries, err := os.ReadDir(filepath.Join(root, "invoices", "2025", "AZ-INV-2025-0142"))
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestVault_Save_MalformedNumber(t *testing.T) {
	v, _ := newTestVault(t)

	_, err := v.Save("NOT-A-VALID-NUM", domain.DocumentKindDetailed, []byte("x"))
	assert.ErrorIs(t, err, domain.ErrMalformedInvoiceNumber)
}

func TestVault_Read_MissingFile(t *testing.T) {
	v, _ := newTestVault(t)

	_, err := v.Read("invoices/2025/AZ-INV-2025-0142/nope.pdf")
	assert.ErrorIs(t, err, domain.ErrDocumentFileNotFound)
}

func TestVault_ReadAndExists(t *testing.T) {
	v, _ := newTestVault(t)

	rel, err := v.Save("AZ-INV-2025-0142", domain.DocumentKindTax, []byte("tax"))
	require.NoError(t, err)

	assert.True(t, v.Exists(rel))

	data, err := v.Read(rel)
	assert.NoError(t, err)
	assert.Equal(t, []byte("tax"), data)
}

func TestVault_ListInvoiceFiles(t *testing.T) {
	v, _ := newTestVault(t)

	// Missing folder yields an empty list, not an error.
	files, err := v.ListInvoiceFiles("AZ-INV-2025-0142")
	assert.NoError(t, err)
	assert.Empty(t, files)

	_, err = v.Save("AZ-INV-2025-0142", domain.DocumentKindDetailed, []byte("pdf"))
	require.NoError(t, err)
	_, err = v.Save("AZ-INV-2025-0142", domain.DocumentKindReceipt, []byte("receipt"))
	require.NoError(t, err)

	files, err = v.ListInvoiceFiles("AZ-INV-2025-0142")
	assert.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestVault_DeleteInvoiceFolder(t *testing.T) {
	v, root := newTestVault(t)

	rel, err := v.Save("AZ-INV-2025-0142", domain.DocumentKindDetailed, []byte("pdf"))
	require.NoError(t, err)

	assert.NoError(t, v.DeleteInvoiceFolder("AZ-INV-2025-0142"))
	_, err = os.Stat(filepath.Join(root, rel))
	assert.True(t, os.IsNotExist(err))
}

func TestVault_UsageBreakdown(t *testing.T) {
	v, root := newTestVault(t)

	_, err := v.Save("AZ-INV-2025-0142", domain.DocumentKindDetailed, []byte("12345"))
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "backups"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "backups", "b.tar"), []byte("1234567890"), 0o644))

	breakdown, err := v.UsageBreakdown(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(5), breakdown.Invoices)
	assert.Equal(t, int64(10), breakdown.Backups)
	// Categories that do not exist on disk count as zero.
	assert.Zero(t, breakdown.Projects)
	assert.Zero(t, breakdown.Temp)
}

func TestVault_CapacityStats(t *testing.T) {
	v, _ := newTestVault(t)

	stats, err := v.CapacityStats()
	assert.NoError(t, err)
	assert.NotZero(t, stats.TotalBytes)
	assert.LessOrEqual(t, stats.PercentUsed, 100.0)
}
