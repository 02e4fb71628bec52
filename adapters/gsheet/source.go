// Package gsheet reads the source worksheets through the Google Sheets API
// using a service-account credential.
package gsheet

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/oauth2/jwt"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"salesboard/domain/sales"
	"salesboard/internal/credentials"
	"salesboard/internal/errors"
)

// Config holds the spreadsheet coordinates for a Source.
type Config struct {
	SpreadsheetID string
	Worksheets    []string
}

// Source fetches and combines every configured worksheet into one table.
type Source struct {
	cfg     Config
	account *credentials.ServiceAccount
}

// NewSource creates a Sheets-backed table source.
func NewSource(cfg Config, account *credentials.ServiceAccount) *Source {
	return &Source{cfg: cfg, account: account}
}

// Name identifies the source in logs and status views.
func (s *Source) Name() string {
	return "sheets:" + s.cfg.SpreadsheetID
}

// service builds an authenticated read-only Sheets client.
func (s *Source) service(ctx context.Context) (*sheets.Service, error) {
	conf := &jwt.Config{
		Email:        s.account.ClientEmail,
		PrivateKey:   []byte(s.account.PrivateKey),
		PrivateKeyID: s.account.PrivateKeyID,
		TokenURL:     s.account.TokenURI,
		Scopes:       []string{sheets.SpreadsheetsReadonlyScope},
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create sheets client")
	}
	return svc, nil
}

// Fetch reads every configured worksheet concurrently and combines the rows.
// A worksheet that fails or is empty is skipped with a warning; the fetch
// fails only when no worksheet yields data.
func (s *Source) Fetch(ctx context.Context) (*sales.Table, error) {
	svc, err := s.service(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*sales.Table, len(s.cfg.Worksheets))
	g, gctx := errgroup.WithContext(ctx)

	for i, name := range s.cfg.Worksheets {
		i, name := i, name
		g.Go(func() error {
			table, err := s.fetchWorksheet(gctx, svc, name)
			if err != nil {
				log.Printf("[Sheets] Skipping worksheet %q: %v", name, err)
				return nil
			}
			results[i] = table
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	combined := sales.NewTable(nil)
	for _, table := range results {
		combined.Append(table)
	}
	if combined.Len() == 0 {
		return nil, errors.SheetUnreachable(s.cfg.SpreadsheetID, fmt.Errorf("no data found in any worksheet"))
	}

	log.Printf("[Sheets] Combined %d rows from %d worksheets", combined.Len(), len(s.cfg.Worksheets))
	return combined, nil
}

// worksheetRange quotes a worksheet name as an A1 range. Embedded apostrophes
// are doubled per A1 notation.
func worksheetRange(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// fetchWorksheet reads one worksheet's values and normalizes them into records.
func (s *Source) fetchWorksheet(ctx context.Context, svc *sheets.Service, name string) (*sales.Table, error) {
	resp, err := svc.Spreadsheets.Values.Get(s.cfg.SpreadsheetID, worksheetRange(name)).Context(ctx).Do()
	if err != nil {
		return nil, errors.SheetUnreachable(name, err)
	}

	if len(resp.Values) < 2 {
		return nil, errors.SchemaMismatch(fmt.Sprintf("worksheet %q is empty or has no data rows", name))
	}

	headers := RepairHeaders(cellsToStrings(resp.Values[0]))
	rows := make([][]string, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		rows = append(rows, cellsToStrings(raw))
	}

	records, err := sales.ParseRecords(headers, rows, name)
	if err != nil {
		return nil, err
	}

	log.Printf("[Sheets] Worksheet %q fetched (%d columns, %d rows)", name, len(headers), len(rows))
	return sales.NewTable(records), nil
}

// RepairHeaders fills in empty header cells as Column_N and disambiguates
// duplicates with a numeric suffix, matching the worksheet repair rules.
func RepairHeaders(headers []string) []string {
	fixed := make([]string, len(headers))
	counts := make(map[string]int)

	for i, header := range headers {
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		if n, seen := counts[header]; seen {
			counts[header] = n + 1
			fixed[i] = fmt.Sprintf("%s_%d", header, n+1)
		} else {
			counts[header] = 0
			fixed[i] = header
		}
	}
	return fixed
}

// cellsToStrings flattens a row of Sheets API cell values into strings.
func cellsToStrings(cells []interface{}) []string {
	row := make([]string, len(cells))
	for i, cell := range cells {
		if cell == nil {
			continue
		}
		row[i] = fmt.Sprint(cell)
	}
	return row
}
