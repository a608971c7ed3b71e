package onboarding

import (
	"regexp"
	"strings"
)

// emailRe is deliberately permissive: one @, no whitespace, and a dotted
// domain. Real deliverability is out of scope; this only filters obvious
// typos before the lead is stored.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsValidEmail reports whether the trimmed input looks like an email address.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}
