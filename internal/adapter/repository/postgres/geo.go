package postgres

import (
	"fmt"

	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/repository"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
)

// pointExpr builds a geography point from two consecutive placeholders
// holding longitude and latitude. NULL arguments yield a NULL point.
func pointExpr(argNum int) string {
	return fmt.Sprintf("ST_SetSRID(ST_MakePoint($%d, $%d), 4326)::geography", argNum, argNum+1)
}

func envelopeCondition(column string, argNum int) string {
	return fmt.Sprintf(`ST_Intersects(%s, ST_MakeEnvelope($%d, $%d, $%d, $%d, 4326)::geography)`,
		column, argNum, argNum+1, argNum+2, argNum+3)
}

// candidateClause appends the envelope condition and returns the ORDER BY,
// LIMIT and OFFSET tail that puts rows nearest to the origin first. tie
// breaks equal distances.
func candidateClause(q repository.CandidateQuery, conditions []string, args []any, tie string) ([]string, []any, string) {
	argNum := len(args) + 1
	if q.Box != nil {
		conditions = append(conditions, envelopeCondition("location", argNum))
		args = append(args, envelopeArgs(q.Box)...)
		argNum += 4
	}

	tail := fmt.Sprintf("ORDER BY location <-> %s NULLS LAST, %s LIMIT $%d OFFSET $%d",
		pointExpr(argNum), tie, argNum+2, argNum+3)
	args = append(args, q.Origin.Longitude, q.Origin.Latitude, q.Limit, q.Offset)
	return conditions, args, tail
}

func envelopeArgs(bb *valueobject.BoundingBox) []any {
	return []any{bb.MinLng, bb.MinLat, bb.MaxLng, bb.MaxLat}
}

func pointArgs(p *valueobject.GeoPoint) (lng, lat *float64) {
	if p == nil {
		return nil, nil
	}
	lngV, latV := p.Longitude, p.Latitude
	return &lngV, &latV
}

func pointFromColumns(lat, lng *float64) *valueobject.GeoPoint {
	if lat == nil || lng == nil {
		return nil
	}
	p := valueobject.NewGeoPoint(*lat, *lng)
	return &p
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
