package service

import (
	"strings"
	"unicode"
)

const (
	minPasswordLength = 8
	// bcrypt only consumes the first 72 bytes and errors on longer input,
	// so anything past that is rejected up front as a field error.
	maxPasswordBytes = 72
)

// commonPasswords is a short list of frequently used passwords rejected at
// signup. Matching is case-insensitive.
var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"12345678":    {},
	"123456789":   {},
	"1234567890":  {},
	"qwerty123":   {},
	"qwertyuiop":  {},
	"letmein1":    {},
	"iloveyou":    {},
	"admin123":    {},
	"welcome1":    {},
	"sunshine":    {},
	"football":    {},
	"baseball":    {},
	"superman":    {},
	"trustno1":    {},
	"dragon123":   {},
	"monkey123":   {},
	"abc12345":    {},
}

// validatePassword applies the signup password-strength rules and appends
// any failures to verr under the "password" field.
func validatePassword(username, password string, verr *ValidationError) {
	if password == "" {
		verr.add("password", "password is required")
		return
	}
	if len(password) < minPasswordLength {
		verr.add("password", "password must be at least 8 characters")
	}
	if len(password) > maxPasswordBytes {
		verr.add("password", "password must be at most 72 bytes")
	}
	if isEntirelyNumeric(password) {
		verr.add("password", "password cannot be entirely numeric")
	}
	if _, common := commonPasswords[strings.ToLower(password)]; common {
		verr.add("password", "password is too common")
	}
	if tooSimilar(username, password) {
		verr.add("password", "password is too similar to the username")
	}
}

func isEntirelyNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// tooSimilar reports whether one of username/password contains the other,
// ignoring case. Short usernames are skipped to avoid rejecting passwords
// over one or two shared characters.
func tooSimilar(username, password string) bool {
	u := strings.ToLower(strings.TrimSpace(username))
	p := strings.ToLower(password)
	if len(u) < 3 {
		return false
	}
	return strings.Contains(p, u) || strings.Contains(u, p)
}
