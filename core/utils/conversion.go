package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber parses free-form numeric text as entered in inventory sheets.
// It accepts currency symbols, surrounding spaces and "," or "_" thousands
// separators ("$ 5,000,000", "12_500", " 6 "). Anything else, including
// negative, NaN or infinite values, yields 0.
func ParseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	s = strings.Map(func(r rune) rune {
		switch r {
		case ',', '_', ' ', '$', '€', '£':
			return -1
		}
		return r
	}, s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
