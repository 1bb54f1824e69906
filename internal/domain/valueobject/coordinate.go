package valueobject

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Coordinate is a single latitude or longitude decoded from loosely typed
// input. Upstream payloads carry numbers, numeric strings, null or garbage;
// anything that is not a finite number decodes to an invalid Coordinate
// rather than an error.
type Coordinate struct {
	value float64
	valid bool
}

func NewCoordinate(v float64) Coordinate {
	return Coordinate{value: v, valid: isFinite(v)}
}

// ParseCoordinate accepts decimal strings with surrounding whitespace.
func ParseCoordinate(s string) Coordinate {
	s = strings.TrimSpace(s)
	if s == "" {
		return Coordinate{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Coordinate{}
	}
	return NewCoordinate(v)
}

func (c Coordinate) Float64() (float64, bool) {
	return c.value, c.valid
}

func (c Coordinate) Valid() bool {
	return c.valid
}

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	*c = Coordinate{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*c = ParseCoordinate(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		v, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return nil
		}
		*c = NewCoordinate(v)
	}
	return nil
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	if !c.valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(c.value, 'f', -1, 64)), nil
}

// PointFromCoordinates builds a GeoPoint when both components are numeric
// and in range.
func PointFromCoordinates(lat, lng Coordinate) (GeoPoint, bool) {
	if !lat.valid || !lng.valid {
		return GeoPoint{}, false
	}
	p := GeoPoint{Latitude: lat.value, Longitude: lng.value}
	if !p.IsValid() {
		return GeoPoint{}, false
	}
	return p, true
}
