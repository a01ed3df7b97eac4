// Package lei implements ISO 17442 Legal Entity Identifier handling:
// best-effort cleanup of raw identifier strings and MOD 97-10 checksum
// verification.
package lei

import "strings"

// Length is the fixed length of a Legal Entity Identifier.
const Length = 20

// Sanitize uppercases s and strips everything that is not A-Z or 0-9.
// It is a cleanup step for identifiers pasted from documents, not a
// validity guarantee; run Valid on the result.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsShaped reports whether s has the shape of an LEI: exactly 20
// characters from [A-Z0-9]. It does not verify the checksum.
func IsShaped(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// Valid reports whether s is a checksum-valid LEI per ISO 17442.
//
// Each letter is replaced by its numeric value (A=10 .. Z=35), digits
// are kept as-is, and the resulting numeral must be congruent to 1
// modulo 97. The remainder is accumulated digit by digit so the
// numeral never has to exist as a single integer.
func Valid(s string) bool {
	if !IsShaped(s) {
		return false
	}

	rem := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			rem = (rem*10 + int(c-'0')) % 97
			continue
		}
		// Letters expand to two digits (10..35).
		v := int(c-'A') + 10
		rem = (rem*10 + v/10) % 97
		rem = (rem*10 + v%10) % 97
	}
	return rem == 1
}
