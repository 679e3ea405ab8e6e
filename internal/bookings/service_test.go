package bookings

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"seatbook/internal/intake"
	"seatbook/internal/notifications"
	"seatbook/internal/shared/config"
	"seatbook/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore fails every Append after the first failAfter calls.
type flakyStore struct {
	*MemoryStore
	failAfter int
	calls     int
}

func (s *flakyStore) Append(ctx context.Context, record Record) error {
	s.calls++
	if s.calls > s.failAfter {
		return errors.New("quota exceeded")
	}
	return s.MemoryStore.Append(ctx, record)
}

type recordingPublisher struct {
	published []*notifications.BookingNotification
	err       error
}

func (p *recordingPublisher) PublishBookingConfirmed(_ context.Context, n *notifications.BookingNotification) error {
	p.published = append(p.published, n)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type countingInvalidator struct{ calls int }

func (i *countingInvalidator) InvalidateBookedSeats(context.Context) error {
	i.calls++
	return nil
}

var fixedNow = time.Date(2024, 3, 9, 18, 30, 5, 0, time.UTC)

func newTestService(store RecordStore) (*service, *recordingPublisher, *countingInvalidator) {
	svc := NewService(store, &config.Config{Venue: config.VenueConfig{SeatCount: 200}}).(*service)
	svc.now = func() time.Time { return fixedNow }
	publisher := &recordingPublisher{}
	invalidator := &countingInvalidator{}
	svc.SetPublisher(publisher)
	svc.SetInvalidator(invalidator)
	return svc, publisher, invalidator
}

func newGroup(userCode, name, mobile string, seats intake.Field) intake.Group {
	return intake.Group{
		UserCode: intake.String(userCode),
		Name:     intake.String(name),
		Mobile:   intake.String(mobile),
		Seats:    seats,
	}
}

func TestSubmitSavesOneRecordPerSeat(t *testing.T) {
	store := NewMemoryStore()
	svc, publisher, invalidator := newTestService(store)

	result, err := svc.Submit(context.Background(), []intake.Group{
		newGroup("U1", "Asha", "+91 99999-99999", intake.String("Seat: 4, Seat: 12")),
	})
	require.NoError(t, err)

	assert.Equal(t, []int{4, 12}, result.Seats)
	assert.Equal(t, "Booking saved for seat(s) 4, 12.", result.Summary())
	assert.Equal(t, []Record{
		{ID: 1, Timestamp: "2024-03-09 18:30:05", UserCode: "U1", Name: "Asha", Mobile: "919999999999", Seats: "4"},
		{ID: 2, Timestamp: "2024-03-09 18:30:05", UserCode: "U1", Name: "Asha", Mobile: "919999999999", Seats: "12"},
	}, store.Records())

	require.Len(t, publisher.published, 1)
	assert.Equal(t, []int{4, 12}, publisher.published[0].SeatNumbers())
	assert.Equal(t, 1, invalidator.calls)
}

func TestSubmitRejectedGroupAppendsNothing(t *testing.T) {
	store := NewMemoryStore()
	svc, publisher, invalidator := newTestService(store)

	_, err := svc.Submit(context.Background(), []intake.Group{
		newGroup("U1", "A, B", "1111111111, 2222222222", intake.Ints(5)),
	})
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrAmbiguousPairing)
	var batchErr *BatchError
	require.True(t, errors.As(err, &batchErr))
	assert.Equal(t, 0, batchErr.Group)
	assert.Empty(t, batchErr.Committed)

	assert.Empty(t, store.Records())
	assert.Empty(t, publisher.published)
	assert.Zero(t, invalidator.calls)
}

func TestSubmitBatchStopsAtFirstBadGroup(t *testing.T) {
	store := NewMemoryStore()
	svc, _, invalidator := newTestService(store)

	_, err := svc.Submit(context.Background(), []intake.Group{
		newGroup("U1", "Asha", "9999999999", intake.Ints(1)),
		newGroup("U2", "Ravi", "9888888888", intake.Ints(0, 201)),
		newGroup("U3", "Neha", "9777777777", intake.Ints(3)),
	})
	require.Error(t, err)

	var batchErr *BatchError
	require.True(t, errors.As(err, &batchErr))
	assert.Equal(t, 1, batchErr.Group)
	assert.Equal(t, []Row{{UserCode: "U1", Name: "Asha", Mobile: "9999999999", Seat: 1}}, batchErr.Committed)
	assert.Equal(t, KindSeatOutOfRange, KindOf(err))

	assert.Len(t, store.Records(), 1)
	assert.Equal(t, 1, invalidator.calls)
}

func TestSubmitStoreFailureMidGroup(t *testing.T) {
	store := &flakyStore{MemoryStore: NewMemoryStore(), failAfter: 1}
	svc, publisher, _ := newTestService(store)

	_, err := svc.Submit(context.Background(), []intake.Group{
		newGroup("U1", "Asha", "9999999999", intake.Ints(4, 5, 6)),
	})
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	var bookingErr *Error
	require.True(t, errors.As(err, &bookingErr))
	assert.True(t, bookingErr.Retryable())
	assert.Contains(t, err.Error(), "quota exceeded")

	var batchErr *BatchError
	require.True(t, errors.As(err, &batchErr))
	assert.Len(t, batchErr.Committed, 1)
	assert.Len(t, store.Records(), 1)
	assert.Empty(t, publisher.published)
}

func TestSubmitPublishFailureDoesNotFailBooking(t *testing.T) {
	store := NewMemoryStore()
	svc, publisher, _ := newTestService(store)
	publisher.err = errors.New("broker down")

	result, err := svc.Submit(context.Background(), []intake.Group{
		newGroup("U1", "Asha", "9999999999", intake.Ints(8)),
	})
	require.NoError(t, err)
	assert.Equal(t, []int{8}, result.Seats)
}

func TestSubmitEmpty(t *testing.T) {
	svc, _, _ := newTestService(NewMemoryStore())
	_, err := svc.Submit(context.Background(), nil)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestSubmitLogsCarryRequestID(t *testing.T) {
	store := &flakyStore{MemoryStore: NewMemoryStore(), failAfter: 1}
	svc, _, _ := newTestService(store)

	var buf bytes.Buffer
	svc.logger = logger.NewWithWriter(&buf, "info")

	ctx := logger.ContextWithRequestID(context.Background(), "req-42")
	_, err := svc.Submit(ctx, []intake.Group{
		newGroup("U1", "Asha", "9999999999", intake.Ints(1)),
		newGroup("U2", "Ravi", "9888888888", intake.Ints(2)),
	})
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "Booking Saved")
	assert.Contains(t, out, "Record Store Failure")
	assert.Equal(t, 2, strings.Count(out, "req-42"))
}
