// Command syncdaftra runs the invoice sync pipeline from the terminal,
// without going through the HTTP API.
// Usage: go run ./cmd/syncdaftra -number AZ-INV-2025-0142
//
//	go run ./cmd/syncdaftra -since 2025-01-01
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"alazab/internal/config"
	"alazab/internal/daftra"
	"alazab/internal/port"
	"alazab/internal/repository/postgres"
	"alazab/internal/service"
	"alazab/internal/storage/local"
	s3storage "alazab/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		number   = flag.String("number", "", "sync a single invoice by number")
		sinceStr = flag.String("since", "", "sync every invoice created since this date (YYYY-MM-DD)")
		force    = flag.Bool("force", false, "re-sync an invoice that is already marked synced")
	)
	flag.Parse()

	if (*number == "") == (*sinceStr == "") {
		fmt.Println("Usage: syncdaftra -number INVOICE_NUMBER [-force] | -since YYYY-MM-DD")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	vault, err := local.NewVault(cfg.Storage.Root)
	if err != nil {
		return fmt.Errorf("initializing document vault: %w", err)
	}

	var archive port.ObjectStorage
	if cfg.Archive.Enabled {
		archive, err = s3storage.NewS3Client(&cfg.Archive)
		if err != nil {
			return fmt.Errorf("initializing archive storage: %w", err)
		}
	}

	syncSvc := service.NewSyncService(
		postgres.NewInvoiceRepo(db),
		postgres.NewAuditLogRepo(db),
		daftra.NewClient(&cfg.Daftra),
		vault,
		archive,
		&cfg.Archive,
		&cfg.Sync,
	)

	ctx := context.Background()

	if *number != "" {
		result, err := syncSvc.SyncOne(ctx, *number, *force, nil)
		if result != nil {
			printJSON(result)
		}
		return err
	}

	since, err := time.Parse("2006-01-02", *sinceStr)
	if err != nil {
		return fmt.Errorf("invalid -since date, expected YYYY-MM-DD: %w", err)
	}
	result, err := syncSvc.SyncAllNewSince(ctx, since, nil)
	if err != nil {
		return err
	}
	printJSON(result)
	log.Printf("done: %d total, %d succeeded, %d failed", result.Total, result.Succeeded, result.Failed)
	return nil
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("WARN: encoding result: %v", err)
		return
	}
	fmt.Println(string(out))
}
