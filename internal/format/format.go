package format

import (
	"math"
	"strconv"
)

// DefaultPlaces is the rounding precision used by StripDecimal.
const DefaultPlaces = 1

// StripDecimal rounds value to one decimal place and drops the fraction
// when it is zero (1.0 → "1", 1.122 → "1.1").
func StripDecimal(value float64) string {
	return StripDecimalN(value, DefaultPlaces)
}

// StripDecimalN rounds value to places decimal digits and renders it as an
// integer literal when the rounded fraction is zero. Rounding works on the
// exact binary value, so 2.675 (stored as 2.67499...) rounds to 2.67 and an
// exact half goes to the even digit.
func StripDecimalN(value float64, places int) string {
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(value, 'f', places, 64), 64)

	// -0 renders as "0"
	if rounded == 0 {
		rounded = 0
	}

	if rounded == math.Trunc(rounded) {
		return strconv.FormatFloat(rounded, 'f', 0, 64)
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
