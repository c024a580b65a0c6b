// Package validation holds the pure registration predicates. Nothing in
// here touches storage, so the rules are unit-testable in isolation.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// EmailDomain is the institutional domain every student account must use.
const EmailDomain = "@estudante.ifto.edu.br"

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

// MinNameLength applies to both team and player names.
const MinNameLength = 3

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail accepts a non-empty address of a generic local@domain.tld
// shape that ends with the institutional domain.
func ValidateEmail(email string) bool {
	if email == "" {
		return false
	}
	return strings.HasSuffix(email, EmailDomain) && emailShape.MatchString(email)
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) bool {
	return utf8.RuneCountInString(password) >= MinPasswordLength
}

// ValidateTeamName accepts names of at least MinNameLength runes that are
// not already taken. existingLower must contain the taken names lowercased.
func ValidateTeamName(name string, existingLower []string) bool {
	if utf8.RuneCountInString(name) < MinNameLength {
		return false
	}
	lower := strings.ToLower(name)
	for _, taken := range existingLower {
		if lower == taken {
			return false
		}
	}
	return true
}

// ValidatePlayerName accepts player names of at least MinNameLength runes.
func ValidatePlayerName(name string) bool {
	return utf8.RuneCountInString(name) >= MinNameLength
}
