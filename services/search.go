package services

import (
	"strings"

	"estate-crm/models"
	"estate-crm/normalize"
)

// SearchClients returns the clients whose full name contains term
// (case-insensitive) or whose phone contains the digits of term. A term
// without letters or digits matches nothing rather than everything.
func SearchClients(clients []*models.Client, term string) []*models.Client {
	name := strings.ToLower(strings.TrimSpace(term))
	digits := normalize.Phone(term)
	if name == "" && digits == "" {
		return nil
	}

	var out []*models.Client
	for _, c := range clients {
		if name != "" && strings.Contains(strings.ToLower(c.FullName), name) {
			out = append(out, c)
			continue
		}
		if digits != "" && strings.Contains(normalize.Phone(c.Phone), digits) {
			out = append(out, c)
		}
	}
	return out
}
