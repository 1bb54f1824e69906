package main

import (
	"encoding/json"
	"fmt"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
)

// looseRecord is an arbitrary JSON object whose coordinates may be numbers,
// numeric strings, null or absent.
type looseRecord struct {
	raw      json.RawMessage
	lat, lng valueobject.Coordinate
}

func (r looseRecord) Position() (valueobject.GeoPoint, bool) {
	return valueobject.PointFromCoordinates(r.lat, r.lng)
}

func (r *looseRecord) UnmarshalJSON(data []byte) error {
	var fields struct {
		Latitude  valueobject.Coordinate `json:"latitude"`
		Longitude valueobject.Coordinate `json:"longitude"`
	}
	// non-objects decode to no coordinates and are dropped as unlocatable
	_ = json.Unmarshal(data, &fields)
	r.raw = append(json.RawMessage(nil), data...)
	r.lat, r.lng = fields.Latitude, fields.Longitude
	return nil
}

func decodeRecords(data []byte) ([]looseRecord, error) {
	var records []looseRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding records: expected a JSON array: %w", err)
	}
	return records, nil
}
