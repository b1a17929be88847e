package utils

import (
	"strconv"
	"strings"
)

// ParseFloat reads a spreadsheet cell as float64, tolerating blanks and
// comma decimal separators. Unparseable values come back as zero.
func ParseFloat(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	value = strings.ReplaceAll(value, ",", ".")
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}
