package bookings

import (
	"errors"
	"testing"

	"seatbook/internal/intake"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairRules(t *testing.T) {
	tests := []struct {
		name     string
		names    []string
		mobiles  []string
		seats    []int
		wantRule string
		want     []Row
	}{
		{
			name:     "exact triple",
			names:    []string{"A", "B"},
			mobiles:  []string{"1111111111", "2222222222"},
			seats:    []int{4, 5},
			wantRule: "exact",
			want: []Row{
				{UserCode: "U1", Name: "A", Mobile: "1111111111", Seat: 4},
				{UserCode: "U1", Name: "B", Mobile: "2222222222", Seat: 5},
			},
		},
		{
			name:     "single person many seats",
			names:    []string{"A"},
			mobiles:  []string{"1111111111"},
			seats:    []int{4, 12},
			wantRule: "single-person",
			want: []Row{
				{UserCode: "U1", Name: "A", Mobile: "1111111111", Seat: 4},
				{UserCode: "U1", Name: "A", Mobile: "1111111111", Seat: 12},
			},
		},
		{
			name:     "single person single seat is exact",
			names:    []string{"A"},
			mobiles:  []string{"1111111111"},
			seats:    []int{9},
			wantRule: "exact",
			want:     []Row{{UserCode: "U1", Name: "A", Mobile: "1111111111", Seat: 9}},
		},
		{
			name:     "shared name",
			names:    []string{"A"},
			mobiles:  []string{"1111111111", "2222222222"},
			seats:    []int{1, 2},
			wantRule: "shared-name",
			want: []Row{
				{UserCode: "U1", Name: "A", Mobile: "1111111111", Seat: 1},
				{UserCode: "U1", Name: "A", Mobile: "2222222222", Seat: 2},
			},
		},
		{
			name:     "shared mobile",
			names:    []string{"A", "B", "C"},
			mobiles:  []string{"9999999999"},
			seats:    []int{1, 2, 3},
			wantRule: "shared-mobile",
			want: []Row{
				{UserCode: "U1", Name: "A", Mobile: "9999999999", Seat: 1},
				{UserCode: "U1", Name: "B", Mobile: "9999999999", Seat: 2},
				{UserCode: "U1", Name: "C", Mobile: "9999999999", Seat: 3},
			},
		},
		{
			name:     "duplicate seats keep their own rows",
			names:    []string{"A"},
			mobiles:  []string{"1111111111"},
			seats:    []int{7, 7},
			wantRule: "single-person",
			want: []Row{
				{UserCode: "U1", Name: "A", Mobile: "1111111111", Seat: 7},
				{UserCode: "U1", Name: "A", Mobile: "1111111111", Seat: 7},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairing, err := Pair("U1", tt.names, tt.mobiles, tt.seats)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRule, pairing.Rule)
			assert.Equal(t, tt.want, pairing.Rows)
			assert.Len(t, pairing.Rows, len(tt.seats))
		})
	}
}

func TestPairRejects(t *testing.T) {
	tests := []struct {
		name     string
		names    []string
		mobiles  []string
		seats    []int
		wantKind Kind
	}{
		{"ambiguous counts", []string{"A", "B"}, []string{"1111111111", "2222222222"}, []int{5}, KindAmbiguousPairing},
		{"two names three seats one mobile each", []string{"A", "B"}, []string{"1111111111"}, []int{1, 2, 3}, KindAmbiguousPairing},
		{"short mobile", []string{"A"}, []string{"12345"}, []int{1}, KindInvalidMobile},
		{"mobile checked before pairing", []string{"A", "B"}, []string{"12345", "2222222222"}, []int{5}, KindInvalidMobile},
		{"no names", nil, []string{"1111111111"}, []int{1}, KindMissingField},
		{"no seats", []string{"A"}, []string{"1111111111"}, []int{}, KindMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairing, err := Pair("U1", tt.names, tt.mobiles, tt.seats)
			assert.Nil(t, pairing)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, KindOf(err))
		})
	}
}

func TestValidateMobilesListsEveryShortNumber(t *testing.T) {
	err := ValidateMobiles([]string{"12345", "9999999999", "678"})
	require.Error(t, err)

	var bookingErr *Error
	require.True(t, errors.As(err, &bookingErr))
	assert.Equal(t, []string{"12345", "678"}, bookingErr.Mobiles)
	assert.ErrorIs(t, err, ErrInvalidMobile)
	assert.False(t, bookingErr.Retryable())
}

func TestValidateSeatRange(t *testing.T) {
	assert.NoError(t, ValidateSeatRange([]int{1, 200, 50}, 200))

	err := ValidateSeatRange([]int{0, 201, 50, 0}, 200)
	require.Error(t, err)

	var bookingErr *Error
	require.True(t, errors.As(err, &bookingErr))
	assert.Equal(t, KindSeatOutOfRange, bookingErr.Kind)
	assert.Equal(t, []int{0, 201}, bookingErr.Seats)
	assert.Contains(t, err.Error(), "0, 201")
}

func TestPrepareOrder(t *testing.T) {
	t.Run("range is checked before mobiles", func(t *testing.T) {
		_, err := Prepare(intake.Normalized{
			Names:   []string{"A"},
			Mobiles: []string{"123"},
			Seats:   []int{500},
		}, 200)
		assert.ErrorIs(t, err, ErrSeatOutOfRange)
	})

	t.Run("missing fields are all reported", func(t *testing.T) {
		_, err := Prepare(intake.Normalized{Seats: []int{500}}, 200)
		var bookingErr *Error
		require.True(t, errors.As(err, &bookingErr))
		assert.Equal(t, []string{"name", "mobile"}, bookingErr.Fields)
	})

	t.Run("normalized request pairs", func(t *testing.T) {
		group := intake.Group{
			UserCode: intake.String(" U9 "),
			Name:     intake.String("Asha"),
			Mobile:   intake.String("+91 999-999-9999"),
			Seats:    intake.String("Seat: 4, Seat: 12"),
		}
		pairing, err := Prepare(group.Normalize(), 200)
		require.NoError(t, err)
		assert.Equal(t, []Row{
			{UserCode: "U9", Name: "Asha", Mobile: "919999999999", Seat: 4},
			{UserCode: "U9", Name: "Asha", Mobile: "919999999999", Seat: 12},
		}, pairing.Rows)
	})
}
