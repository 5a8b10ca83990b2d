// Package normalize canonicalizes raw spreadsheet values: phone numbers,
// free text and salutations.
package normalize

import "strings"

// countryCallingCode is the Bangladesh calling code; numbers already
// carrying it are left untouched.
const countryCallingCode = "88"

// Phone canonicalizes a raw phone value to its digit-only storage form.
// Non-digits are stripped. A leading "0" marks the number as already in
// trunk-prefix form and is kept; otherwise "0" is prepended unless the
// digits start with the country calling code. Blank input yields "".
func Phone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	switch {
	case digits == "":
		return ""
	case strings.HasPrefix(digits, "0"):
		return digits
	case strings.HasPrefix(digits, countryCallingCode):
		return digits
	default:
		return "0" + digits
	}
}
