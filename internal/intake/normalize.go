package intake

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var digitRun = regexp.MustCompile(`[0-9]+`)

// NormalizeSeats extracts every seat number mentioned in f, in order of first
// occurrence. Duplicates are kept: positions drive pairing.
//
// Strings contribute one seat per maximal digit run ("Seat: 14" -> 14,
// "1,2" -> 1, 2). Numbers contribute themselves when integral. Lists are walked
// element by element. Anything else contributes nothing.
func NormalizeSeats(f Field) []int {
	seats := make([]int, 0)
	return appendSeats(seats, f)
}

func appendSeats(seats []int, f Field) []int {
	switch f.kind {
	case KindNumber:
		if n, ok := integralNumber(f.text); ok {
			seats = append(seats, n)
		}
	case KindString:
		for _, run := range digitRun.FindAllString(f.text, -1) {
			// runs too long for an int cannot name a seat; skip them
			if n, err := strconv.Atoi(run); err == nil {
				seats = append(seats, n)
			}
		}
	case KindList:
		for _, item := range f.items {
			seats = appendSeats(seats, item)
		}
	}
	return seats
}

func integralNumber(literal string) (int, bool) {
	if n, err := strconv.Atoi(literal); err == nil {
		return n, true
	}
	v, err := strconv.ParseFloat(literal, 64)
	if err != nil || v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
		return 0, false
	}
	return int(v), true
}

// ReportingSeats is the reporting variant of NormalizeSeats: distinct seats in
// ascending order.
func ReportingSeats(f Field) []int {
	return DistinctSorted(NormalizeSeats(f))
}

// DistinctSorted returns a sorted copy of seats without duplicates.
func DistinctSorted(seats []int) []int {
	out := slices.Clone(seats)
	if out == nil {
		out = make([]int, 0)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// NormalizeNames returns one trimmed name per person mentioned in f.
func NormalizeNames(f Field) []string {
	return splitEntries(f)
}

// NormalizeMobiles returns one digit-only mobile number per person mentioned in f.
// "+91 999-999-9999" becomes "919999999999".
func NormalizeMobiles(f Field) []string {
	entries := splitEntries(f)
	mobiles := make([]string, 0, len(entries))
	for _, entry := range entries {
		if digits := DigitsOnly(entry); digits != "" {
			mobiles = append(mobiles, digits)
		}
	}
	return mobiles
}

// DigitsOnly drops every character of s that is not an ASCII digit.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// splitEntries splits a scalar string on commas; list items are taken as they
// are. Every entry is trimmed and empty entries are dropped.
func splitEntries(f Field) []string {
	var raw []string
	switch f.kind {
	case KindString:
		raw = strings.Split(f.text, ",")
	case KindList:
		for _, item := range f.items {
			if item.kind == KindString {
				raw = append(raw, item.text)
			}
		}
	}

	entries := make([]string, 0, len(raw))
	for _, r := range raw {
		if trimmed := strings.TrimSpace(r); trimmed != "" {
			entries = append(entries, trimmed)
		}
	}
	return entries
}
