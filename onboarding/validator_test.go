package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmailAccepts(t *testing.T) {
	for _, email := range []string{
		"a@b.co",
		"alice@example.com",
		"first.last@sub.domain.org",
		"user+tag@example.io",
		"  padded@example.com  ",
		"weird!#$%@example.com",
	} {
		assert.True(t, IsValidEmail(email), email)
	}
}

func TestIsValidEmailRejects(t *testing.T) {
	for _, email := range []string{
		"",
		"   ",
		"plainaddress",
		"@example.com",
		"user@",
		"user@domain",
		"user@@example.com",
		"two@at@example.com",
		"spaces in@example.com",
		"user@exam ple.com",
		"user@example.com extra",
	} {
		assert.False(t, IsValidEmail(email), email)
	}
}
