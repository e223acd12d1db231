package form

import (
	"regexp"
	"strings"
	"unicode/utf16"
)

// SpecialChars is the set that satisfies the special-character criterion.
const SpecialChars = `!@#$%^&*(),.?":{}|<>`

const (
	minLoginPassword  = 6
	minSignupPassword = 8
	minName           = 2

	// MaxStrength is the number of password criteria.
	MaxStrength = 5
	// acceptStrength is the signup acceptance bar. A password missing one
	// criterion still passes.
	acceptStrength = 4
)

// emailPart excludes every character a browser treats as whitespace, not just
// the ASCII set RE2's \s covers.
const emailPart = `[^\s\v\p{Z}\x{0085}\x{FEFF}@]+`

var (
	emailPattern   = regexp.MustCompile(`^` + emailPart + `@` + emailPart + `\.` + emailPart + `$`)
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	digitPattern   = regexp.MustCompile(`[0-9]`)
	specialPattern = regexp.MustCompile(`[` + regexp.QuoteMeta(SpecialChars) + `]`)
)

// ValidateEmail is a loose sanity check: local@domain.tld with no whitespace
// and no extra '@'.
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidateLoginPassword only enforces a minimum length.
func ValidateLoginPassword(s string) bool {
	return textLen(s) >= minLoginPassword
}

// ValidateName requires at least two characters after trimming.
func ValidateName(s string) bool {
	return textLen(strings.TrimSpace(s)) >= minName
}

// PasswordStrength counts satisfied criteria: uppercase, lowercase, digit,
// special character, and length >= 8.
func PasswordStrength(s string) int {
	n := 0
	for _, re := range []*regexp.Regexp{upperPattern, lowerPattern, digitPattern, specialPattern} {
		if re.MatchString(s) {
			n++
		}
	}
	if textLen(s) >= minSignupPassword {
		n++
	}
	return n
}

// textLen counts UTF-16 code units, so a character outside the BMP counts
// twice, as it does in a browser input's length.
func textLen(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// ValidateSignupPassword reports whether s meets the signup policy along with
// its strength score.
func ValidateSignupPassword(s string) (bool, int) {
	strength := PasswordStrength(s)
	return strength >= acceptStrength, strength
}
