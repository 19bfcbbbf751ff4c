package services

import (
	"regexp"

	"alertcast/internal/models"
)

const (
	LocationNotAvailable = "N/A"
	LocationUnknown      = "Unknown Location"
)

// coordinatePattern matches "Lat: <num>, Lng: <num>" at the start of the
// field. Anything after the longitude is ignored.
var coordinatePattern = regexp.MustCompile(`^\s*Lat:\s*([-+]?\d+(?:\.\d+)?),\s*Lng:\s*([-+]?\d+(?:\.\d+)?)`)

// ResolveLocation turns a report's location fields into display text. It
// never fails: unrecognised input falls back to the raw text or a
// placeholder.
func ResolveLocation(locationType models.LocationType, raw string) string {
	switch locationType {
	case models.LocationTypeHomeAddress, models.LocationTypePresentAddress:
		if raw == "" {
			return LocationNotAvailable
		}
		return raw

	case models.LocationTypeCurrentLocation, models.LocationTypeCustomLocation:
		if match := coordinatePattern.FindStringSubmatch(raw); match != nil {
			// keep the captured text so precision is not altered
			return match[1] + ", " + match[2]
		}
		if raw == "" {
			return LocationUnknown
		}
		return raw

	default:
		return LocationNotAvailable
	}
}
