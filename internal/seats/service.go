package seats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"seatbook/internal/intake"
	"seatbook/internal/shared/config"
	"seatbook/internal/shared/constants"
	"seatbook/pkg/cache"
	"seatbook/pkg/logger"
)

var ErrSourceUnavailable = errors.New("seat source unavailable")

// Source yields the stored seat strings in record order
type Source interface {
	SeatColumn(ctx context.Context) ([]string, error)
}

type Service interface {
	BookedSeats(ctx context.Context) ([]int, error)
	SeatMap(ctx context.Context) (*SeatMap, error)
	Report(ctx context.Context) (*Report, error)

	// InvalidateBookedSeats drops the cached booked list after a submission
	InvalidateBookedSeats(ctx context.Context) error

	SetCacheService(cacheService cache.Service)
}

type service struct {
	source       Source
	seatCount    int
	cacheTTL     time.Duration
	cacheService cache.Service
	logger       *logger.Logger
}

func NewService(source Source, cfg *config.Config) Service {
	ttl := cfg.Redis.BookedSeatsTTL
	if ttl <= 0 {
		ttl = constants.TTL_REALTIME_SHORT
	}
	return &service{
		source:    source,
		seatCount: cfg.Venue.SeatCount,
		cacheTTL:  ttl,
		logger:    logger.GetDefault(),
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) BookedSeats(ctx context.Context) ([]int, error) {
	if s.cacheService == nil {
		return s.load(ctx)
	}

	var booked []int
	err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_BOOKED_SEATS, s.cacheTTL, func() (interface{}, error) {
		return s.load(ctx)
	}, &booked)
	if err != nil {
		if errors.Is(err, ErrSourceUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get booked seats: %w", err)
	}
	if booked == nil {
		booked = []int{}
	}
	return booked, nil
}

func (s *service) load(ctx context.Context) ([]int, error) {
	values, err := s.source.SeatColumn(ctx)
	if err != nil {
		s.logger.FromContext(ctx).LogStoreFailure(ctx, "read_seats", 0, err)
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return Aggregate(values), nil
}

func (s *service) SeatMap(ctx context.Context) (*SeatMap, error) {
	booked, err := s.BookedSeats(ctx)
	if err != nil {
		return nil, err
	}

	counts := countSeats(booked)
	distinct := intake.DistinctSorted(booked)

	available := make([]int, 0, s.seatCount)
	for seat := 1; seat <= s.seatCount; seat++ {
		if counts[seat] == 0 {
			available = append(available, seat)
		}
	}

	doubleBooked := []int{}
	for _, seat := range distinct {
		if counts[seat] > 1 {
			doubleBooked = append(doubleBooked, seat)
		}
	}

	return &SeatMap{
		SeatCount:    s.seatCount,
		Booked:       distinct,
		Available:    available,
		DoubleBooked: doubleBooked,
	}, nil
}

// Report uses reporting mode: duplicates collapsed, ascending order
func (s *service) Report(ctx context.Context) (*Report, error) {
	booked, err := s.BookedSeats(ctx)
	if err != nil {
		return nil, err
	}

	counts := countSeats(booked)
	distinct := intake.DistinctSorted(booked)

	report := &Report{
		SeatCount:    s.seatCount,
		TotalEntries: len(booked),
		Seats:        distinct,
		Duplicates:   []DuplicateSeat{},
		OutOfRange:   []int{},
	}
	inRange := 0
	for _, seat := range distinct {
		if counts[seat] > 1 {
			report.Duplicates = append(report.Duplicates, DuplicateSeat{Seat: seat, Count: counts[seat]})
		}
		if seat < 1 || seat > s.seatCount {
			report.OutOfRange = append(report.OutOfRange, seat)
			continue
		}
		inRange++
	}
	report.DistinctBooked = len(distinct)
	report.AvailableCount = s.seatCount - inRange
	return report, nil
}

func (s *service) InvalidateBookedSeats(ctx context.Context) error {
	if s.cacheService == nil {
		return nil
	}
	if err := s.cacheService.Delete(ctx, constants.CACHE_KEY_BOOKED_SEATS); err != nil {
		s.logger.FromContext(ctx).WithError(err).WarnContext(ctx, "Failed to invalidate booked seats cache")
		return err
	}
	return nil
}

func countSeats(booked []int) map[int]int {
	counts := make(map[int]int, len(booked))
	for _, seat := range booked {
		counts[seat]++
	}
	return counts
}
