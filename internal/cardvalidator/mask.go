package cardvalidator

import "strings"

// MaskNumber hides all but the first six and last four characters of a card
// number so it can be logged. Short inputs keep at most their last four.
func MaskNumber(number string) string {
	n := len(number)
	switch {
	case n == 0:
		return ""
	case n <= 4:
		return strings.Repeat("*", n)
	case n < 10:
		return strings.Repeat("*", n-4) + number[n-4:]
	default:
		return number[:6] + strings.Repeat("*", n-10) + number[n-4:]
	}
}
