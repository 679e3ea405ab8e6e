package bookings

import (
	"context"
	"time"

	"seatbook/internal/intake"
	"seatbook/internal/notifications"
	"seatbook/internal/shared/config"
	"seatbook/pkg/logger"
)

// Invalidator is told when new records were saved so cached seat views can be dropped.
type Invalidator interface {
	InvalidateBookedSeats(ctx context.Context) error
}

type Service interface {
	// Submit validates and saves booking groups in order. A failing group
	// stops the batch; earlier groups stay saved (see BatchError).
	Submit(ctx context.Context, groups []intake.Group) (*SubmitResult, error)

	SetPublisher(publisher notifications.Producer)
	SetInvalidator(invalidator Invalidator)
}

type service struct {
	store       RecordStore
	seatCount   int
	now         func() time.Time
	publisher   notifications.Producer
	invalidator Invalidator
	logger      *logger.Logger
}

func NewService(store RecordStore, cfg *config.Config) Service {
	return &service{
		store:     store,
		seatCount: cfg.Venue.SeatCount,
		now:       time.Now,
		logger:    logger.GetDefault(),
	}
}

func (s *service) SetPublisher(publisher notifications.Producer) {
	s.publisher = publisher
}

func (s *service) SetInvalidator(invalidator Invalidator) {
	s.invalidator = invalidator
}

func (s *service) Submit(ctx context.Context, groups []intake.Group) (*SubmitResult, error) {
	if len(groups) == 0 {
		return nil, &Error{Kind: KindMissingField, Message: "no booking groups submitted"}
	}

	var committed []Row
	defer func() {
		if len(committed) > 0 {
			s.invalidate(ctx)
		}
	}()

	log := s.logger.FromContext(ctx)

	for i, group := range groups {
		normalized := group.Normalize()
		pairing, err := Prepare(normalized, s.seatCount)
		if err != nil {
			log.LogBookingRejected(ctx, i, string(KindOf(err)), err.Error())
			return nil, &BatchError{Group: i, Committed: committed, Err: err}
		}

		stamp := s.now()
		for _, row := range pairing.Rows {
			if err := s.store.Append(ctx, row.Record(stamp)); err != nil {
				log.LogStoreFailure(ctx, "append", len(committed), err)
				return nil, &BatchError{Group: i, Committed: committed, Err: storeUnavailable(err)}
			}
			committed = append(committed, row)
		}

		log.LogBookingSaved(ctx, normalized.UserCode, pairing.Rule, seatsOf(pairing.Rows))
		s.publish(ctx, normalized.UserCode, pairing.Rows)
	}

	return &SubmitResult{
		Rows:   committed,
		Seats:  seatsOf(committed),
		Groups: len(groups),
	}, nil
}

// publish is best effort: the rows are already saved.
func (s *service) publish(ctx context.Context, userCode string, rows []Row) {
	if s.publisher == nil {
		return
	}
	booked := make([]notifications.BookedSeat, 0, len(rows))
	for _, row := range rows {
		booked = append(booked, notifications.BookedSeat{Name: row.Name, Mobile: row.Mobile, Seat: row.Seat})
	}
	if err := s.publisher.PublishBookingConfirmed(ctx, notifications.NewBookingConfirmed(userCode, booked)); err != nil {
		s.logger.FromContext(ctx).WithError(err).WarnContext(ctx, "Failed to publish booking notification")
	}
}

func (s *service) invalidate(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.InvalidateBookedSeats(ctx); err != nil {
		s.logger.FromContext(ctx).WithError(err).WarnContext(ctx, "Failed to invalidate booked seats cache")
	}
}
