package services

import (
	"testing"

	"estate-crm/models"
)

func TestMapPointsFiltersMissingCoordinates(t *testing.T) {
	lat, lon := 41.0082, 28.9784
	listings := []*models.Listing{
		{Title: "Plottable", Latitude: &lat, Longitude: &lon},
		{Title: "No coords"},
		{Title: "Half coords", Latitude: &lat},
	}

	points := MapPoints(listings)
	if len(points) != 1 {
		t.Fatalf("got %d points; want 1", len(points))
	}
	p := points[0]
	if p.Title != "Plottable" || p.Latitude != lat || p.Longitude != lon {
		t.Errorf("point = %+v", p)
	}
}

func TestMapPointsEmpty(t *testing.T) {
	if points := MapPoints(nil); len(points) != 0 {
		t.Errorf("got %v; want none", points)
	}
}
