package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeBookingConfirmed NotificationType = "BOOKING_CONFIRMED"
)

// BookedSeat is one saved row of a booking group.
type BookedSeat struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	Seat   int    `json:"seat"`
}

// BookingNotification is published once per saved booking group.
type BookingNotification struct {
	ID        uuid.UUID        `json:"id"`
	Type      NotificationType `json:"type"`
	UserCode  string           `json:"user_code,omitempty"`
	Seats     []BookedSeat     `json:"seats"`
	CreatedAt time.Time        `json:"created_at"`
}

func NewBookingConfirmed(userCode string, seats []BookedSeat) *BookingNotification {
	return &BookingNotification{
		ID:        uuid.New(),
		Type:      NotificationTypeBookingConfirmed,
		UserCode:  userCode,
		Seats:     seats,
		CreatedAt: time.Now().UTC(),
	}
}

func (n *BookingNotification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

func FromJSON(data []byte) (*BookingNotification, error) {
	var n BookingNotification
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// GetPartitionKey keeps every notification of one booker on one partition.
func (n *BookingNotification) GetPartitionKey() string {
	if n.UserCode != "" {
		return n.UserCode
	}
	if len(n.Seats) > 0 {
		return n.Seats[0].Mobile
	}
	return n.ID.String()
}

// SeatNumbers lists the seats in the notification, in row order.
func (n *BookingNotification) SeatNumbers() []int {
	seats := make([]int, 0, len(n.Seats))
	for _, s := range n.Seats {
		seats = append(seats, s.Seat)
	}
	return seats
}
