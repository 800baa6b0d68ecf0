// Package validate provides the email and password checks shared by the
// sign-in and sign-up flows. Every check returns an empty string when the
// input is acceptable, or the message to show next to the field.
package validate

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"
)

// Email messages.
const (
	EmailRequired = "Email is required"
	EmailInvalid  = "Invalid email address"
)

// Password messages, in the order the rules are checked.
const (
	PasswordLength    = "Password must be 8-16 characters long"
	PasswordUppercase = "Password must contain at least one uppercase letter"
	PasswordLowercase = "Password must contain at least one lowercase letter"
	PasswordDigit     = "Password must contain at least one number"
	PasswordSymbol    = "Password must contain at least one symbol"
)

const (
	// MinPasswordLength is the shortest accepted password, in UTF-16 code units.
	MinPasswordLength = 8
	// MaxPasswordLength is the longest accepted password, in UTF-16 code units.
	MaxPasswordLength = 16
	// PasswordSymbols lists the characters that satisfy the symbol rule.
	PasswordSymbols = `!@#$%^&*(),.?":{}|<>`
)

// spaceClass is the whitespace set browsers use for \s and trim():
// ASCII \t \n \v \f \r, every Unicode separator (\p{Z}) and U+FEFF.
// U+0085 is not part of it.
const spaceClass = `\t\n\v\f\r\p{Z}\x{FEFF}`

// emailPattern accepts local@domain.tld with no whitespace and exactly one "@".
var emailPattern = regexp.MustCompile(
	`^[^` + spaceClass + `@]+@[^` + spaceClass + `@]+\.[^` + spaceClass + `@]+$`,
)

// isSpace reports whether r belongs to spaceClass.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\uFEFF':
		return true
	}
	return unicode.In(r, unicode.Z)
}

// Email checks that s is present and shaped like an address.
// Blank input (after trimming spaceClass) is reported separately from
// malformed input.
func Email(s string) string {
	if strings.TrimFunc(s, isSpace) == "" {
		return EmailRequired
	}
	if !emailPattern.MatchString(s) {
		return EmailInvalid
	}
	return ""
}

// Password returns the first password rule s violates.
func Password(s string) string {
	if n := passwordLength(s); n < MinPasswordLength || n > MaxPasswordLength {
		return PasswordLength
	}
	if !strings.ContainsFunc(s, isUpper) {
		return PasswordUppercase
	}
	if !strings.ContainsFunc(s, isLower) {
		return PasswordLowercase
	}
	if !strings.ContainsFunc(s, isDigit) {
		return PasswordDigit
	}
	if !strings.ContainsAny(s, PasswordSymbols) {
		return PasswordSymbol
	}
	return ""
}

// passwordLength counts UTF-16 code units, so a character outside the
// Basic Multilingual Plane counts as two.
func passwordLength(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
