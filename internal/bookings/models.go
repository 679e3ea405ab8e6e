package bookings

import (
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the format of the timestamp stamped on every stored record.
const TimestampLayout = "2006-01-02 15:04:05"

// Row binds exactly one seat to one name and one mobile.
type Row struct {
	UserCode string `json:"user_code"`
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Seat     int    `json:"seat"`
}

// Record converts the row to the stored shape, stamped with at.
func (r Row) Record(at time.Time) Record {
	return Record{
		Timestamp: at.Format(TimestampLayout),
		UserCode:  r.UserCode,
		Name:      r.Name,
		Mobile:    r.Mobile,
		Seats:     strconv.Itoa(r.Seat),
	}
}

// Record is one row of the record store. Seats holds a single seat for
// current records; legacy records hold a comma-joined list.
type Record struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	Timestamp string `gorm:"type:varchar(19);not null" json:"timestamp"`
	UserCode  string `gorm:"type:varchar(255)" json:"user_code"`
	Name      string `gorm:"type:varchar(255);not null" json:"name"`
	Mobile    string `gorm:"type:varchar(32);not null" json:"mobile"`
	Seats     string `gorm:"not null" json:"seats"`
}

// TableName sets the table name for Record
func (Record) TableName() string {
	return "booking_records"
}

// Values returns the record in column order:
// Timestamp, User Code, Name, Mobile, Selected Seats.
func (r Record) Values() []interface{} {
	return []interface{}{r.Timestamp, r.UserCode, r.Name, r.Mobile, r.Seats}
}

// Columns is the header row of the record store.
var Columns = []string{"Timestamp", "User Code", "Name", "Mobile", "Selected Seats"}

// SubmitResult is returned for a fully saved submission.
type SubmitResult struct {
	Rows   []Row `json:"rows"`
	Seats  []int `json:"seats"`
	Groups int   `json:"groups"`
}

func (r *SubmitResult) Summary() string {
	return "Booking saved for seat(s) " + joinInts(r.Seats) + "."
}

func seatsOf(rows []Row) []int {
	seats := make([]int, 0, len(rows))
	for _, row := range rows {
		seats = append(seats, row.Seat)
	}
	return seats
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ", ")
}
