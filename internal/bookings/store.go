package bookings

import (
	"context"
	"fmt"

	"seatbook/internal/shared/config"

	"gorm.io/gorm"
)

// OpenRecordStore returns the record store selected by cfg.StoreBackend.
// pg is only used by the postgres backend.
func OpenRecordStore(ctx context.Context, cfg *config.Config, pg *gorm.DB) (RecordStore, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		if pg == nil {
			return nil, fmt.Errorf("postgres store selected but no database connection")
		}
		return NewRepository(pg), nil
	case config.StoreBackendSheets:
		return NewSheetsStore(ctx, SheetsConfig{
			SpreadsheetID:   cfg.Sheets.SpreadsheetID,
			Tab:             cfg.Sheets.Tab,
			CredentialsFile: cfg.Sheets.CredentialsFile,
		})
	case config.StoreBackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
