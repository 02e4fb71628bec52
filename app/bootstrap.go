package app

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"

	"salesboard/adapters/excel"
	"salesboard/adapters/gsheet"
	"salesboard/adapters/postgres"
	"salesboard/internal/config"
	"salesboard/internal/credentials"
	"salesboard/internal/errors"
)

// NewLoaderFromConfig builds the loader the servers share: the Sheets source
// when SPREADSHEET_ID is set, otherwise the local file source. db may be nil;
// with a connection, completed loads are recorded as snapshots.
func NewLoaderFromConfig(ctx context.Context, cfg *config.Config, db *sqlx.DB) (*Loader, *postgres.SnapshotRepository, error) {
	var recorder SnapshotRecorder
	var snapshots *postgres.SnapshotRepository
	if db != nil {
		snapshots = postgres.NewSnapshotRepository(db)
		if err := snapshots.EnsureSchema(ctx); err != nil {
			return nil, nil, err
		}
		recorder = snapshots
	}

	var source Source
	var ttl time.Duration

	if cfg.UseSheets() {
		account, err := credentials.Resolve(cfg.Credentials.SecretsFile, cfg.Credentials.CredentialsFile)
		if err != nil {
			return nil, nil, errors.Wrap(err, "credential resolution failed")
		}
		source = gsheet.NewSource(gsheet.Config{
			SpreadsheetID: cfg.Sheets.SpreadsheetID,
			Worksheets:    cfg.Sheets.Worksheets,
		}, account)
		ttl = cfg.Sheets.CacheTTL
		log.Printf("[Bootstrap] Using Google Sheets source: %s (%d worksheets)",
			cfg.Sheets.SpreadsheetID, len(cfg.Sheets.Worksheets))
	} else {
		source = excel.NewFileSource(cfg.Data.File)
		ttl = cfg.Data.CacheTTL
		log.Printf("[Bootstrap] Using local file source: %s", cfg.Data.File)
	}

	return NewLoader(source, ttl, recorder), snapshots, nil
}
