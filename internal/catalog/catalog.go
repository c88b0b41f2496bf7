// Package catalog holds the reference set of named cities a tour can be planned over.
package catalog

import (
	"fmt"
	"strings"

	"tsp-genetic/internal/models"
)

var cities = []models.Point{
	{Name: "New York", Lat: 40.7128, Lng: -74.0060},
	{Name: "London", Lat: 51.5074, Lng: -0.1278},
	{Name: "Tokyo", Lat: 35.6762, Lng: 139.6503},
	{Name: "Paris", Lat: 48.8566, Lng: 2.3522},
	{Name: "Berlin", Lat: 52.5200, Lng: 13.4050},
	{Name: "Sydney", Lat: -33.8688, Lng: 151.2093},
	{Name: "Los Angeles", Lat: 34.0522, Lng: -118.2437},
	{Name: "Rome", Lat: 41.9028, Lng: 12.4964},
	{Name: "Beijing", Lat: 39.9042, Lng: 116.4074},
	{Name: "Moscow", Lat: 55.7558, Lng: 37.6173},
	{Name: "Ljubljana", Lat: 46.0511, Lng: 14.5051},
	{Name: "Koper", Lat: 45.5501, Lng: 13.7304},
	{Name: "Piran", Lat: 45.5277, Lng: 13.5723},
	{Name: "Izola", Lat: 45.5440, Lng: 13.6551},
	{Name: "Trieste", Lat: 45.6495, Lng: 13.7768},
	{Name: "Zagreb", Lat: 45.8131, Lng: 15.978},
	{Name: "Pula", Lat: 44.8686, Lng: 13.8486},
	{Name: "Dubrovnik", Lat: 42.6507, Lng: 18.0944},
	{Name: "Prague", Lat: 50.0755, Lng: 14.4378},
	{Name: "Vienna", Lat: 48.2082, Lng: 16.3738},
	{Name: "Barcelona", Lat: 41.3851, Lng: 2.1734},
	{Name: "Skopje", Lat: 41.9981, Lng: 21.4254},
	{Name: "Sofia", Lat: 42.6977, Lng: 23.3219},
	{Name: "Sarajevo", Lat: 43.8486, Lng: 18.3564},
	{Name: "Belgrade", Lat: 44.8176, Lng: 20.4633},
	{Name: "Maribor", Lat: 46.5547, Lng: 15.6450},
}

// index maps lowercased names to catalog positions
var index = func() map[string]int {
	m := make(map[string]int, len(cities))
	for i, c := range cities {
		m[strings.ToLower(c.Name)] = i
	}
	return m
}()

// ErrUnknownCity is returned when a name is not in the catalog
type ErrUnknownCity struct {
	Name string
}

func (e *ErrUnknownCity) Error() string {
	return fmt.Sprintf("unknown city: %q", e.Name)
}

// Size returns the number of cities in the catalog
func Size() int {
	return len(cities)
}

// All returns a copy of the catalog in its fixed order
func All() []models.Point {
	out := make([]models.Point, len(cities))
	copy(out, cities)
	return out
}

// Names returns the city names in catalog order
func Names() []string {
	names := make([]string, len(cities))
	for i, c := range cities {
		names[i] = c.Name
	}
	return names
}

// Lookup finds a city by name, ignoring case and surrounding whitespace
func Lookup(name string) (models.Point, bool) {
	i, ok := index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return models.Point{}, false
	}
	return cities[i], true
}

// Select resolves names to catalog points, preserving the given order.
// Returned points carry the catalog spelling of each name.
func Select(names []string) ([]models.Point, error) {
	points := make([]models.Point, 0, len(names))
	for _, name := range names {
		p, ok := Lookup(name)
		if !ok {
			return nil, &ErrUnknownCity{Name: name}
		}
		points = append(points, p)
	}
	return points, nil
}

// ParseList splits a comma separated list of city names and resolves it
func ParseList(list string) ([]models.Point, error) {
	var names []string
	for _, part := range strings.Split(list, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return Select(names)
}
