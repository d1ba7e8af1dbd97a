package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/currency"
)

// MaxReasonLength bounds the free-text reason attached to an approval action
const MaxReasonLength = 1000

var controlChars = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)

// ValidateCurrency checks that code is an ISO 4217 currency
func ValidateCurrency(code string) error {
	if len(code) != 3 {
		return fmt.Errorf("currency must be a 3-letter ISO code: %q", code)
	}
	if _, err := currency.ParseISO(code); err != nil {
		return fmt.Errorf("unknown currency %q: %w", code, err)
	}
	return nil
}

// ValidateAmount validates an invoice amount
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive: %.2f", amount)
	}
	return nil
}

// NormalizeReason trims and sanitizes an action reason and enforces its length
func NormalizeReason(reason string) (string, error) {
	reason = strings.TrimSpace(SanitizeString(reason))
	if utf8.RuneCountInString(reason) > MaxReasonLength {
		return "", fmt.Errorf("reason exceeds %d characters", MaxReasonLength)
	}
	return reason, nil
}

// SanitizeString removes control characters, keeping tabs and newlines
func SanitizeString(s string) string {
	return controlChars.ReplaceAllString(s, "")
}
