package intake

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSeats(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		want  []int
	}{
		{"single number", Number("7"), []int{7}},
		{"labeled text", String("Seat: 14"), []int{14}},
		{"comma joined text", String("1,2"), []int{1, 2}},
		{"labeled list text", String("Seat: 4, Seat: 12"), []int{4, 12}},
		{"list of numbers keeps order", Ints(9, 3, 9), []int{9, 3, 9}},
		{"mixed list", List(Number("5"), String("Seat 6"), String("no seat")), []int{5, 6}},
		{"integral float", Number("8.0"), []int{8}},
		{"fractional number ignored", Number("8.5"), []int{}},
		{"absent", Field{}, []int{}},
		{"unsupported kind", Field{kind: KindOther}, []int{}},
		{"overlong digit run skipped", String("99999999999999999999999 and 3"), []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSeats(tt.field))
		})
	}
}

func TestReportingSeats(t *testing.T) {
	assert.Equal(t, []int{4, 12}, ReportingSeats(String("Seat: 12, Seat: 4, Seat: 12")))
	assert.Equal(t, []int{4, 12}, ReportingSeats(String("Seat: 4, Seat: 12")))

	t.Run("idempotent", func(t *testing.T) {
		once := ReportingSeats(Ints(30, 2, 2, 17, 5))
		twice := ReportingSeats(Ints(once...))
		assert.Equal(t, once, twice)
	})

	assert.Equal(t, []int{}, DistinctSorted(nil))
}

func TestNormalizeMobiles(t *testing.T) {
	assert.Equal(t, []string{"919999999999"}, NormalizeMobiles(String("+91 999-999-9999")))
	assert.Equal(t, []string{"1111111111", "2222222222"}, NormalizeMobiles(String(" 1111111111 , 2222222222,")))
	assert.Equal(t, []string{"1111111111"}, NormalizeMobiles(Strings("(111) 111-1111", "---", "")))
	assert.Empty(t, NormalizeMobiles(Number("9999999999")))
	assert.Empty(t, NormalizeMobiles(Field{}))
}

func TestNormalizeNames(t *testing.T) {
	assert.Equal(t, []string{"Asha", "Ravi"}, NormalizeNames(String("Asha, Ravi")))
	assert.Equal(t, []string{"Asha, Ravi", "Meena"}, NormalizeNames(Strings(" Asha, Ravi ", "Meena", "  ")))
	assert.Empty(t, NormalizeNames(String("   ")))
	assert.Empty(t, NormalizeNames(Field{kind: KindOther}))
}

func TestFieldUnmarshalJSON(t *testing.T) {
	var g Group
	require.NoError(t, json.Unmarshal([]byte(`{
		"user_code": 42,
		"name": ["A", "B"],
		"mobile": "1111111111",
		"seats": [5, "Seat: 6", true]
	}`), &g))

	assert.Equal(t, "42", g.UserCode.Text())
	assert.Equal(t, KindList, g.Name.Kind())
	assert.Equal(t, KindString, g.Mobile.Kind())
	assert.Equal(t, []int{5, 6}, NormalizeSeats(g.Seats))

	var absent Group
	require.NoError(t, json.Unmarshal([]byte(`{"name": null, "seats": {"a": 1}}`), &absent))
	assert.True(t, absent.Name.IsAbsent())
	assert.Equal(t, KindOther, absent.Seats.Kind())
}

func TestFieldMarshalJSON(t *testing.T) {
	out, err := json.Marshal(List(Number("3"), String("Seat 4")))
	require.NoError(t, err)
	assert.JSONEq(t, `[3, "Seat 4"]`, string(out))
}
