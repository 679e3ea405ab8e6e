package bookings

import (
	"context"

	"gorm.io/gorm"
)

// RecordStore is the append-only record store behind the booking engine.
// Implementations own their own concurrency control.
type RecordStore interface {
	Append(ctx context.Context, record Record) error
	// SeatColumn returns the raw seat column of every record, oldest first.
	SeatColumn(ctx context.Context) ([]string, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a RecordStore backed by the booking_records table.
func NewRepository(db *gorm.DB) RecordStore {
	return &repository{db: db}
}

func (r *repository) Append(ctx context.Context, record Record) error {
	record.ID = 0
	return r.db.WithContext(ctx).Create(&record).Error
}

func (r *repository) SeatColumn(ctx context.Context) ([]string, error) {
	var values []string
	err := r.db.WithContext(ctx).
		Model(&Record{}).
		Order("id ASC").
		Pluck("seats", &values).Error
	return values, err
}
