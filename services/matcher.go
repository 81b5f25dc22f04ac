package services

import (
	"errors"
	"strings"

	"estate-crm/models"
	"estate-crm/utils"
)

// ErrInsufficientData signals that matching was requested with no client or
// an empty listing set. It is distinct from "ran and found nothing": an empty
// match result comes back as a nil slice with a nil error.
var ErrInsufficientData = errors.New("services: insufficient data for matching")

// Matcher pairs a client's stated intent with the listings that satisfy it.
type Matcher struct {
	logger *utils.Logger
}

// NewMatcher creates a Matcher with the given logger.
func NewMatcher(logger *utils.Logger) *Matcher {
	return &Matcher{logger: logger}
}

// Match returns the listings whose status matches the polarity of the
// client's intent, preserving the original listing order. This is a coarse
// single-predicate filter, not a scored recommender.
func (m *Matcher) Match(client *models.Client, listings []*models.Listing) ([]*models.Listing, error) {
	if client == nil || len(listings) == 0 {
		return nil, ErrInsufficientData
	}

	polarity := classifyIntent(client.Intent)
	m.logger.Debug("[matcher] intent %q classified as %s", client.Intent, polarity)

	var matched []*models.Listing
	for _, l := range listings {
		if l.Status == polarity {
			matched = append(matched, l)
		}
	}

	m.logger.Info("[matcher] %d of %d listings match %s for %s",
		len(matched), len(listings), polarity, client.FullName)
	return matched, nil
}

// classifyIntent maps free-text intent to a listing polarity by substring:
// any intent mentioning the for-sale marker seeks ForSale listings,
// everything else falls through to ForRent. Unrecognized intents are
// therefore silently treated as rental seekers; the stored client data
// depends on this fallthrough (see DESIGN.md).
func classifyIntent(intent string) models.Status {
	if strings.Contains(intent, string(models.StatusForSale)) {
		return models.StatusForSale
	}
	return models.StatusForRent
}
