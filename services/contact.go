package services

import (
	"strings"

	"estate-crm/normalize"
)

// WhatsAppLink builds a wa.me deep link from a raw phone field. Domestic
// numbers ("05321234567" or "5321234567") get the TR country code; numbers
// already carrying it pass through. Returns "" when the field has no digits,
// so callers can hide the contact action instead of rendering a dead link.
func WhatsAppLink(rawPhone string) string {
	digits := normalize.Phone(rawPhone)
	if digits == "" {
		return ""
	}

	switch {
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		digits = "90" + digits[1:]
	case len(digits) == 10 && strings.HasPrefix(digits, "5"):
		digits = "90" + digits
	}
	return "https://wa.me/" + digits
}
