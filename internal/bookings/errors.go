package bookings

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies why a booking group was rejected.
type Kind string

const (
	KindMissingField     Kind = "MissingField"
	KindInvalidMobile    Kind = "InvalidMobile"
	KindSeatOutOfRange   Kind = "SeatOutOfRange"
	KindAmbiguousPairing Kind = "AmbiguousPairing"
	KindStoreUnavailable Kind = "StoreUnavailable"
)

// Error is a rejected booking group. Only KindStoreUnavailable is retryable.
type Error struct {
	Kind    Kind
	Message string

	Fields  []string // missing fields
	Mobiles []string // mobiles below the minimum length
	Seats   []int    // seats outside the venue

	Err error // store diagnostic
}

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrMissingField     = &Error{Kind: KindMissingField}
	ErrInvalidMobile    = &Error{Kind: KindInvalidMobile}
	ErrSeatOutOfRange   = &Error{Kind: KindSeatOutOfRange}
	ErrAmbiguousPairing = &Error{Kind: KindAmbiguousPairing}
	ErrStoreUnavailable = &Error{Kind: KindStoreUnavailable}
)

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func (e *Error) Retryable() bool {
	return e.Kind == KindStoreUnavailable
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func missingField(fields ...string) *Error {
	return &Error{
		Kind:    KindMissingField,
		Message: "name, mobile and at least one seat are required (missing: " + strings.Join(fields, ", ") + ")",
		Fields:  fields,
	}
}

func invalidMobile(mobiles []string, minDigits int) *Error {
	return &Error{
		Kind:    KindInvalidMobile,
		Message: fmt.Sprintf("mobile numbers must have at least %d digits: %s", minDigits, strings.Join(mobiles, ", ")),
		Mobiles: mobiles,
	}
}

func seatOutOfRange(seats []int, seatCount int) *Error {
	return &Error{
		Kind:    KindSeatOutOfRange,
		Message: fmt.Sprintf("seats must be between 1 and %d: %s", seatCount, joinInts(seats)),
		Seats:   seats,
	}
}

func ambiguousPairing(names, mobiles, seats int) *Error {
	return &Error{
		Kind: KindAmbiguousPairing,
		Message: fmt.Sprintf("cannot pair %d name(s) and %d mobile(s) with %d seat(s); "+
			"give one name and mobile per seat, or a single shared name or mobile", names, mobiles, seats),
	}
}

func storeUnavailable(err error) *Error {
	return &Error{Kind: KindStoreUnavailable, Message: "failed to save booking", Err: err}
}

// BatchError reports the group that stopped a batch. Groups before it stay
// saved: Committed lists their rows, plus any rows of the failing group that
// were appended before the store failed.
type BatchError struct {
	Group     int
	Committed []Row
	Err       error
}

func (e *BatchError) Error() string {
	if len(e.Committed) > 0 {
		return fmt.Sprintf("booking group %d: %v (%d row(s) already saved)", e.Group+1, e.Err, len(e.Committed))
	}
	return fmt.Sprintf("booking group %d: %v", e.Group+1, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
