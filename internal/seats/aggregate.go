package seats

import (
	"strconv"
	"strings"
)

// Aggregate flattens stored seat strings into seat numbers.
// Values are read in record order, tokens left to right. A token counts only
// when it is made of ASCII digits after trimming; duplicates are kept.
func Aggregate(values []string) []int {
	booked := make([]int, 0, len(values))
	for _, value := range values {
		for _, token := range strings.Split(value, ",") {
			token = strings.TrimSpace(token)
			if !isDigits(token) {
				continue
			}
			seat, err := strconv.Atoi(token)
			if err != nil {
				continue
			}
			booked = append(booked, seat)
		}
	}
	return booked
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
