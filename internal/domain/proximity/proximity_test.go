package proximity_test

import (
	"encoding/json"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/proximity"
	"github.com/marcos-nsantos/petfinder-backend/internal/domain/valueobject"
)

var (
	seoul   = valueobject.NewGeoPoint(37.5665, 126.9780)
	daejeon = valueobject.NewGeoPoint(36.3504, 127.3845)
)

type place struct {
	Name      string                 `json:"name"`
	Latitude  valueobject.Coordinate `json:"latitude"`
	Longitude valueobject.Coordinate `json:"longitude"`
}

func (p place) Position() (valueobject.GeoPoint, bool) {
	return valueobject.PointFromCoordinates(p.Latitude, p.Longitude)
}

func newPlace(name string, p valueobject.GeoPoint) place {
	return place{
		Name:      name,
		Latitude:  valueobject.NewCoordinate(p.Latitude),
		Longitude: valueobject.NewCoordinate(p.Longitude),
	}
}

// northOf returns the point exactly meters north along the meridian.
func northOf(p valueobject.GeoPoint, meters float64) valueobject.GeoPoint {
	return valueobject.NewGeoPoint(p.Latitude+meters/proximity.EarthRadiusMeters*180/math.Pi, p.Longitude)
}

func names(places []place) []string {
	out := make([]string, len(places))
	for i, p := range places {
		out[i] = p.Name
	}
	return out
}

func randomPoint(r *rand.Rand) valueobject.GeoPoint {
	return valueobject.NewGeoPoint(r.Float64()*180-90, r.Float64()*360-180)
}

func TestDistance(t *testing.T) {
	t.Run("identical points", func(t *testing.T) {
		assert.Equal(t, 0.0, proximity.Distance(seoul, seoul))
	})

	t.Run("daejeon to seoul", func(t *testing.T) {
		d := proximity.Distance(daejeon, seoul)
		assert.GreaterOrEqual(t, d, 130000.0)
		assert.LessOrEqual(t, d, 150000.0)
	})

	t.Run("antipodal", func(t *testing.T) {
		d := proximity.Distance(valueobject.NewGeoPoint(0, 0), valueobject.NewGeoPoint(0, 180))
		assert.InDelta(t, 20015086.8, d, 1.0)
	})

	t.Run("along meridian", func(t *testing.T) {
		assert.InDelta(t, 5000, proximity.Distance(seoul, northOf(seoul, 5000)), 1e-6)
	})
}

func TestDistanceBetween(t *testing.T) {
	_, err := proximity.DistanceBetween(seoul, valueobject.NewGeoPoint(91, 0))
	assert.ErrorIs(t, err, domain.ErrInvalidLocation)

	d, err := proximity.DistanceBetween(seoul, daejeon)
	require.NoError(t, err)
	assert.Equal(t, proximity.Distance(seoul, daejeon), d)
}

func TestDistance_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 42))

	for i := 0; i < 500; i++ {
		a, b, c := randomPoint(r), randomPoint(r), randomPoint(r)

		ab := proximity.Distance(a, b)
		ba := proximity.Distance(b, a)
		assert.InDelta(t, ab, ba, 1e-6, "symmetry %v %v", a, b)
		assert.Equal(t, 0.0, proximity.Distance(a, a), "identity %v", a)

		ac := proximity.Distance(a, c)
		cb := proximity.Distance(c, b)
		assert.LessOrEqual(t, ab, ac+cb+1e-6, "triangle %v %v %v", a, b, c)
	}
}

func TestNewSearchContext(t *testing.T) {
	tests := []struct {
		name    string
		origin  valueobject.GeoPoint
		radius  float64
		wantErr error
	}{
		{"valid", seoul, 10000, nil},
		{"zero radius", seoul, 0, domain.ErrInvalidRadius},
		{"negative radius", seoul, -5, domain.ErrInvalidRadius},
		{"nan radius", seoul, math.NaN(), domain.ErrInvalidRadius},
		{"infinite radius", seoul, math.Inf(1), domain.ErrInvalidRadius},
		{"invalid origin", valueobject.NewGeoPoint(120, 0), 1000, domain.ErrInvalidLocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := proximity.NewSearchContext(tt.origin, tt.radius)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.radius, sc.RadiusMeters)
		})
	}
}

func TestFilterWithinRadius(t *testing.T) {
	sc, err := proximity.NewSearchContext(seoul, 10000)
	require.NoError(t, err)

	t.Run("keeps near records in input order", func(t *testing.T) {
		records := []place{
			newPlace("far", northOf(seoul, 15000)),
			newPlace("mid", northOf(seoul, 5000)),
			newPlace("here", seoul),
		}

		got, err := proximity.FilterWithinRadius(records, sc)
		require.NoError(t, err)
		if diff := cmp.Diff([]string{"mid", "here"}, names(got)); diff != "" {
			t.Errorf("filtered names mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("radius boundary is inclusive", func(t *testing.T) {
		edge := newPlace("edge", northOf(seoul, 9999.999))
		got, err := proximity.FilterWithinRadius([]place{edge}, sc)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("empty input", func(t *testing.T) {
		got, err := proximity.FilterWithinRadius([]place{}, sc)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("invalid radius fails fast", func(t *testing.T) {
		_, err := proximity.FilterWithinRadius([]place{newPlace("here", seoul)}, proximity.SearchContext{Origin: seoul, RadiusMeters: 0})
		assert.ErrorIs(t, err, domain.ErrInvalidRadius)
	})
}

func TestFilterWithinRadius_ExcludesBadData(t *testing.T) {
	var records []place
	require.NoError(t, json.Unmarshal([]byte(`[
		{"name": "null lat", "latitude": null, "longitude": 126.978},
		{"name": "missing lng", "latitude": 37.5665},
		{"name": "garbage", "latitude": "abc", "longitude": "def"},
		{"name": "out of range", "latitude": 95, "longitude": 126.978},
		{"name": "string coords", "latitude": "37.5665", "longitude": "126.978"}
	]`), &records))

	sc, err := proximity.NewSearchContext(seoul, 1e9)
	require.NoError(t, err)

	got, err := proximity.FilterWithinRadius(records, sc)
	require.NoError(t, err)
	assert.Equal(t, []string{"string coords"}, names(got))

	_, stats, err := proximity.WithinRadius(records, sc)
	require.NoError(t, err)
	assert.Equal(t, proximity.FilterStats{Candidates: 5, Matched: 1, Unlocatable: 4}, stats)
}

func TestFilterWithinRadius_NullLatitudeOnly(t *testing.T) {
	var records []place
	require.NoError(t, json.Unmarshal([]byte(`[{"latitude": null}]`), &records))

	sc, err := proximity.NewSearchContext(seoul, 1e9)
	require.NoError(t, err)

	got, err := proximity.FilterWithinRadius(records, sc)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilterWithinRadius_Monotonic(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	records := make([]place, 200)
	for i := range records {
		p := valueobject.NewGeoPoint(seoul.Latitude+r.Float64()-0.5, seoul.Longitude+r.Float64()-0.5)
		records[i] = newPlace(p.String(), p)
	}

	radii := []float64{100, 1000, 5000, 10000, 25000, 60000}
	var prev map[string]bool
	for _, radius := range radii {
		sc, err := proximity.NewSearchContext(seoul, radius)
		require.NoError(t, err)

		got, err := proximity.FilterWithinRadius(records, sc)
		require.NoError(t, err)

		current := make(map[string]bool, len(got))
		for _, p := range got {
			current[p.Name] = true
		}
		for name := range prev {
			assert.True(t, current[name], "record %s lost when radius grew to %v", name, radius)
		}
		prev = current
	}
}

func TestWithinRadius_SortByDistance(t *testing.T) {
	records := []place{
		newPlace("b", northOf(seoul, 3000)),
		newPlace("a", northOf(seoul, 1000)),
		newPlace("c", northOf(seoul, 3000)),
		newPlace("far", northOf(seoul, 30000)),
	}
	sc, err := proximity.NewSearchContext(seoul, 5000)
	require.NoError(t, err)

	matches, _, err := proximity.WithinRadius(records, sc)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, "b", matches[0].Record.Name)

	proximity.SortByDistance(matches, func(x, y place) int {
		// reverse name order on ties
		if x.Name > y.Name {
			return -1
		}
		if x.Name < y.Name {
			return 1
		}
		return 0
	})
	got := []string{matches[0].Record.Name, matches[1].Record.Name, matches[2].Record.Name}
	assert.Equal(t, []string{"a", "c", "b"}, got)
	assert.InDelta(t, 1000, matches[0].DistanceMeters, 1e-6)
}

func TestZoomTable_Default(t *testing.T) {
	tests := []struct {
		radius float64
		want   int
	}{
		{0, 5},
		{1000, 5},
		{1001, 6},
		{3000, 6},
		{5000, 7},
		{10000, 8},
		{20000, 9},
		{25000, 10},
		{50000, 10},
		{50001, 12},
		{100000, 12},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, proximity.MapLevelForRadius(tt.radius), "radius %v", tt.radius)
	}
}

func TestZoomTable_Monotonic(t *testing.T) {
	table := proximity.DefaultZoomTable()
	prev := table.LevelFor(0)
	for r := 0.0; r <= 200000; r += 250 {
		level := table.LevelFor(r)
		assert.GreaterOrEqual(t, level, prev, "radius %v", r)
		prev = level
	}
}

func TestParseZoomTable(t *testing.T) {
	t.Run("round trips default", func(t *testing.T) {
		def := proximity.DefaultZoomTable()
		parsed, err := proximity.ParseZoomTable(def.String())
		require.NoError(t, err)
		assert.Equal(t, def.Steps(), parsed.Steps())
		assert.Equal(t, def.Beyond(), parsed.Beyond())
	})

	t.Run("custom table", func(t *testing.T) {
		table, err := proximity.ParseZoomTable(" 500:3, 2000:4 ,*:9")
		require.NoError(t, err)
		assert.Equal(t, 3, table.LevelFor(500))
		assert.Equal(t, 4, table.LevelFor(501))
		assert.Equal(t, 9, table.LevelFor(2001))
	})

	invalid := map[string]string{
		"missing beyond":    "1000:5",
		"descending radius": "3000:6,1000:5,*:12",
		"decreasing level":  "1000:7,3000:6,*:12",
		"beyond too small":  "1000:5,*:4",
		"bad level":         "1000:x,*:12",
		"bad radius":        "abc:5,*:12",
		"no separator":      "1000,*:12",
		"negative radius":   "-5:5,*:12",
	}
	for name, raw := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := proximity.ParseZoomTable(raw)
			assert.ErrorIs(t, err, domain.ErrInvalidZoomTable)
		})
	}
}

func TestZoomTable_ZeroValueUsesDefault(t *testing.T) {
	var table proximity.ZoomTable
	assert.Equal(t, 8, table.LevelFor(10000))
}
