package bookings

import "seatbook/internal/intake"

// MinMobileDigits is the shortest mobile number accepted after normalization.
const MinMobileDigits = 10

// pairingRule maps row i to the name and mobile it uses.
type pairingRule struct {
	name    string
	matches func(names, mobiles, seats int) bool
	person  func(i int) (name, mobile int)
}

// pairingRules are evaluated top-down; the first match wins.
var pairingRules = []pairingRule{
	{
		name:    "exact",
		matches: func(n, m, s int) bool { return n == s && m == s },
		person:  func(i int) (int, int) { return i, i },
	},
	{
		name:    "single-person",
		matches: func(n, m, s int) bool { return n == 1 && m == 1 && s >= 1 },
		person:  func(int) (int, int) { return 0, 0 },
	},
	{
		name:    "shared-name",
		matches: func(n, m, s int) bool { return n == 1 && m == s },
		person:  func(i int) (int, int) { return 0, i },
	},
	{
		name:    "shared-mobile",
		matches: func(n, m, s int) bool { return m == 1 && n == s },
		person:  func(i int) (int, int) { return i, 0 },
	},
}

// Pairing is the outcome of a successful Pair: the rule that matched and its rows.
type Pairing struct {
	Rule string
	Rows []Row
}

// Pair turns the normalized names, mobiles and seats of one group into one row
// per seat. Every mobile is checked before any row is built.
func Pair(userCode string, names, mobiles []string, seats []int) (*Pairing, error) {
	if err := checkPresent(names, mobiles, seats); err != nil {
		return nil, err
	}
	if err := ValidateMobiles(mobiles); err != nil {
		return nil, err
	}

	n, m, s := len(names), len(mobiles), len(seats)
	for _, rule := range pairingRules {
		if !rule.matches(n, m, s) {
			continue
		}
		rows := make([]Row, 0, s)
		for i, seat := range seats {
			ni, mi := rule.person(i)
			rows = append(rows, Row{
				UserCode: userCode,
				Name:     names[ni],
				Mobile:   mobiles[mi],
				Seat:     seat,
			})
		}
		return &Pairing{Rule: rule.name, Rows: rows}, nil
	}
	return nil, ambiguousPairing(n, m, s)
}

// ValidateMobiles rejects the group if any mobile is shorter than MinMobileDigits.
func ValidateMobiles(mobiles []string) error {
	var short []string
	for _, mobile := range mobiles {
		if len(mobile) < MinMobileDigits {
			short = append(short, mobile)
		}
	}
	if len(short) > 0 {
		return invalidMobile(short, MinMobileDigits)
	}
	return nil
}

// ValidateSeatRange rejects seats outside [1, seatCount], listing every
// offending seat once in order of first appearance.
func ValidateSeatRange(seats []int, seatCount int) error {
	var bad []int
	seen := make(map[int]bool)
	for _, seat := range seats {
		if seat >= 1 && seat <= seatCount {
			continue
		}
		if !seen[seat] {
			seen[seat] = true
			bad = append(bad, seat)
		}
	}
	if len(bad) > 0 {
		return seatOutOfRange(bad, seatCount)
	}
	return nil
}

// Prepare validates one normalized group and pairs it into rows. Nothing
// here touches the store.
func Prepare(group intake.Normalized, seatCount int) (*Pairing, error) {
	if err := checkPresent(group.Names, group.Mobiles, group.Seats); err != nil {
		return nil, err
	}
	if err := ValidateSeatRange(group.Seats, seatCount); err != nil {
		return nil, err
	}
	return Pair(group.UserCode, group.Names, group.Mobiles, group.Seats)
}

func checkPresent(names, mobiles []string, seats []int) error {
	var missing []string
	if len(names) == 0 {
		missing = append(missing, "name")
	}
	if len(mobiles) == 0 {
		missing = append(missing, "mobile")
	}
	if len(seats) == 0 {
		missing = append(missing, "seats")
	}
	if len(missing) > 0 {
		return missingField(missing...)
	}
	return nil
}
