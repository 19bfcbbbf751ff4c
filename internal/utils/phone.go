package utils

import (
	"regexp"
	"strings"
)

var phoneStripPattern = regexp.MustCompile(`[^\d+]`)

// NormalizePhone strips formatting characters. An international "00" prefix
// becomes "+". A national number with a leading 0 is rewritten to
// +<countryCode> when a country code is given and is otherwise left as
// dialled, for the provider to accept or reject.
func NormalizePhone(phone, countryCode string) string {
	// Remove all spaces, dashes, parentheses, etc.
	normalized := phoneStripPattern.ReplaceAllString(phone, "")
	countryCode = strings.TrimPrefix(strings.TrimSpace(countryCode), "+")

	switch {
	case normalized == "", normalized == "+":
		return ""
	case strings.HasPrefix(normalized, "+"):
		return normalized
	case strings.HasPrefix(normalized, "00"):
		return "+" + normalized[2:]
	case strings.HasPrefix(normalized, "0"):
		if countryCode == "" {
			return normalized
		}
		return "+" + countryCode + normalized[1:]
	default:
		return "+" + normalized
	}
}

func MaskPhone(phone string) string {
	if len(phone) < 4 {
		return phone
	}

	// Show last 4 digits
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}
