package utils

import "strings"

// Control digit weights for the repeat pass, used when the first pass
// comes out to 10.
var binRepeatWeights = [11]int{3, 4, 5, 6, 7, 8, 9, 10, 11, 1, 2}

// BINCheckDigit derives the control digit for the leading 11 digits of a
// Kazakhstan BIN. The first pass weights positions 1 through 11; when the
// weighted sum mod 11 equals 10, a repeat pass with shifted weights is
// taken. Returns -1 when the input is malformed or both passes yield 10,
// in which case no valid BIN starts with those digits.
func BINCheckDigit(first11 string) int {
	if len(first11) != 11 {
		return -1
	}

	sum := 0
	for i := 0; i < len(first11); i++ {
		c := first11[i]
		if c < '0' || c > '9' {
			return -1
		}
		sum += (i + 1) * int(c-'0')
	}

	check := sum % 11
	if check == 10 {
		sum = 0
		for i := 0; i < len(first11); i++ {
			sum += binRepeatWeights[i] * int(first11[i]-'0')
		}
		check = sum % 11
		if check == 10 {
			return -1
		}
	}

	return check
}

// ValidateBIN reports whether s is a structurally valid BIN: exactly 12
// digits whose last digit matches the derived control digit. Surrounding
// whitespace is ignored. No registry lookup is involved.
func ValidateBIN(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) != 12 {
		return false
	}

	last := s[11]
	if last < '0' || last > '9' {
		return false
	}

	return BINCheckDigit(s[:11]) == int(last-'0')
}
