package bookings

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsConfig points a SheetsStore at one tab of a Google spreadsheet.
type SheetsConfig struct {
	SpreadsheetID   string
	Tab             string
	CredentialsFile string
}

// SheetsStore keeps records in a Google Sheet, one record per row, with a
// header row written the first time the sheet is found empty.
type SheetsStore struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
	tab           string

	mu           sync.Mutex
	headerExists bool
}

// NewSheetsStore authenticates with a service account file.
func NewSheetsStore(ctx context.Context, cfg SheetsConfig, opts ...option.ClientOption) (*SheetsStore, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	opts = append(opts, option.WithScopes(sheets.SpreadsheetsScope))

	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	tab := cfg.Tab
	if tab == "" {
		tab = "Sheet1"
	}
	return &SheetsStore{
		values:        srv.Spreadsheets.Values,
		spreadsheetID: cfg.SpreadsheetID,
		tab:           tab,
	}, nil
}

func (s *SheetsStore) Append(ctx context.Context, record Record) error {
	if err := s.ensureHeader(ctx); err != nil {
		return err
	}
	return s.appendRow(ctx, record.Values())
}

func (s *SheetsStore) SeatColumn(ctx context.Context) ([]string, error) {
	resp, err := s.values.Get(s.spreadsheetID, s.tab+"!E2:E").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read seat column: %w", err)
	}

	column := make([]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		if len(row) == 0 {
			column = append(column, "")
			continue
		}
		column = append(column, fmt.Sprint(row[0]))
	}
	return column, nil
}

func (s *SheetsStore) ensureHeader(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.headerExists {
		return nil
	}

	resp, err := s.values.Get(s.spreadsheetID, s.tab+"!A1:E1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read sheet header: %w", err)
	}
	if len(resp.Values) == 0 {
		header := make([]interface{}, 0, len(Columns))
		for _, c := range Columns {
			header = append(header, c)
		}
		if err := s.appendRow(ctx, header); err != nil {
			return err
		}
	}
	s.headerExists = true
	return nil
}

func (s *SheetsStore) appendRow(ctx context.Context, row []interface{}) error {
	_, err := s.values.Append(s.spreadsheetID, s.tab+"!A:E", &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append row: %w", err)
	}
	return nil
}
