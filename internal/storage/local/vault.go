package local

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"alazab/internal/domain"
	"alazab/internal/port"
)

const (
	invoicesDir = "invoices"
	projectsDir = "projects"
	backupsDir  = "backups"
	tempDir     = "temp"
)

// Vault lays invoice PDFs out on a local volume as
// {root}/invoices/{year}/{invoiceNumber}/{invoiceNumber}[-kind].pdf.
type Vault struct {
	root string
}

// NewVault creates a DocumentVault rooted at the given directory.
func NewVault(root string) (port.DocumentVault, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root must not be empty")
	}
	if err := os.MkdirAll(filepath.Join(root, invoicesDir), 0o755); err != nil {
		return nil, fmt.Errorf("creating invoices directory: %w", err)
	}
	return &Vault{root: root}, nil
}

// invoiceYear extracts the year token from an invoice number of the form
// PREFIX-PREFIX-YYYY-SEQ. A malformed number is a hard error, never
// defaulted to the current year.
func invoiceYear(invoiceNumber string) (string, error) {
	parts := strings.Split(invoiceNumber, "-")
	if len(parts) != 4 {
		return "", fmt.Errorf("%w: %q", domain.ErrMalformedInvoiceNumber, invoiceNumber)
	}
	year := parts[2]
	if len(year) != 4 {
		return "", fmt.Errorf("%w: %q", domain.ErrMalformedInvoiceNumber, invoiceNumber)
	}
	for _, r := range year {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: %q", domain.ErrMalformedInvoiceNumber, invoiceNumber)
		}
	}
	return year, nil
}

// fileName returns the deterministic file name for a document kind.
func fileName(invoiceNumber string, kind domain.DocumentKind) string {
	switch kind {
	case domain.DocumentKindTax:
		return invoiceNumber + ".pdf"
	case domain.DocumentKindDetailed:
		return invoiceNumber + "-detailed.pdf"
	case domain.DocumentKindReceipt:
		return invoiceNumber + "-receipt.pdf"
	default:
		return fmt.Sprintf("%s-%s.pdf", invoiceNumber, kind)
	}
}

func (v *Vault) invoiceFolder(invoiceNumber string) (string, error) {
	year, err := invoiceYear(invoiceNumber)
	if err != nil {
		return "", err
	}
	return filepath.Join(v.root, invoicesDir, year, invoiceNumber), nil
}

// EnsureFolder creates the invoice folder if needed and returns its
// absolute path.
func (v *Vault) EnsureFolder(invoiceNumber string) (string, error) {
	folder, err := v.invoiceFolder(invoiceNumber)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", fmt.Errorf("creating invoice folder: %w", err)
	}
	return folder, nil
}

// Save writes a PDF to its deterministic path and returns the path
// relative to the storage root. The write goes through a temp file and a
// rename, so a re-save replaces the previous file in place and a failed
// write never clobbers an existing document.
func (v *Vault) Save(invoiceNumber string, kind domain.DocumentKind, data []byte) (string, error) {
	folder, err := v.EnsureFolder(invoiceNumber)
	if err != nil {
		return "", err
	}

	target := filepath.Join(folder, fileName(invoiceNumber, kind))

	tmp, err := os.CreateTemp(folder, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("placing document: %w", err)
	}

	rel, err := filepath.Rel(v.root, target)
	if err != nil {
		return "", fmt.Errorf("relativizing path: %w", err)
	}
	return rel, nil
}

// Read returns the bytes of a stored document.
func (v *Vault) Read(relativePath string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(v.root, relativePath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrDocumentFileNotFound
		}
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return data, nil
}

// Exists reports whether a stored document is present on disk.
func (v *Vault) Exists(relativePath string) bool {
	_, err := os.Stat(filepath.Join(v.root, relativePath))
	return err == nil
}

// DeleteInvoiceFolder removes an invoice's folder and everything in it.
func (v *Vault) DeleteInvoiceFolder(invoiceNumber string) error {
	folder, err := v.invoiceFolder(invoiceNumber)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(folder); err != nil {
		return fmt.Errorf("removing invoice folder: %w", err)
	}
	return nil
}

// ListInvoiceFiles returns the files stored under an invoice's folder.
// A folder that does not exist yet yields an empty list.
func (v *Vault) ListInvoiceFiles(invoiceNumber string) ([]domain.StoredFileInfo, error) {
	folder, err := v.invoiceFolder(invoiceNumber)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(folder)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.StoredFileInfo{}, nil
		}
		return nil, fmt.Errorf("listing invoice folder: %w", err)
	}

	files := make([]domain.StoredFileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		full := filepath.Join(folder, entry.Name())
		rel, err := filepath.Rel(v.root, full)
		if err != nil {
			continue
		}
		files = append(files, domain.StoredFileInfo{
			Name:       entry.Name(),
			Path:       rel,
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}
	return files, nil
}

// CapacityStats reports the volume usage of the storage root.
func (v *Vault) CapacityStats() (*domain.CapacityStats, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(v.root, &stat); err != nil {
		return nil, fmt.Errorf("statfs %s: %w", v.root, err)
	}

	total := stat.Blocks * uint64(stat.Bsize)
	available := stat.Bavail * uint64(stat.Bsize)
	used := total - stat.Bfree*uint64(stat.Bsize)

	percent := 0.0
	if total > 0 {
		percent = float64(used) / float64(total) * 100
	}

	return &domain.CapacityStats{
		TotalBytes:     total,
		UsedBytes:      used,
		AvailableBytes: available,
		PercentUsed:    percent,
	}, nil
}

// UsageBreakdown walks the top-level storage categories and sums their
// byte totals. Missing categories count as zero.
func (v *Vault) UsageBreakdown(ctx context.Context) (*domain.UsageBreakdown, error) {
	sizes := make(map[string]int64, 4)
	for _, dir := range []string{invoicesDir, projectsDir, backupsDir, tempDir} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		size, err := folderSize(filepath.Join(v.root, dir))
		if err != nil {
			return nil, fmt.Errorf("sizing %s: %w", dir, err)
		}
		sizes[dir] = size
	}
	return &domain.UsageBreakdown{
		Invoices: sizes[invoicesDir],
		Projects: sizes[projectsDir],
		Backups:  sizes[backupsDir],
		Temp:     sizes[tempDir],
	}, nil
}

func folderSize(path string) (int64, error) {
	var total int64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	return total, nil
}
