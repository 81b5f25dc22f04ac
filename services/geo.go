package services

import "estate-crm/models"

// MapPoint is one plottable listing position.
type MapPoint struct {
	Title     string
	Latitude  float64
	Longitude float64
}

// MapPoints returns a point for every listing with a usable coordinate pair.
// Listings whose latitude or longitude failed normalization are left off the
// map instead of being plotted at a sentinel position.
func MapPoints(listings []*models.Listing) []MapPoint {
	var points []MapPoint
	for _, l := range listings {
		if l.Latitude == nil || l.Longitude == nil {
			continue
		}
		points = append(points, MapPoint{
			Title:     l.Title,
			Latitude:  *l.Latitude,
			Longitude: *l.Longitude,
		})
	}
	return points
}
