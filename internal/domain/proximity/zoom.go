package proximity

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain"
)

// ZoomStep applies Level to every radius up to and including MaxRadius.
type ZoomStep struct {
	MaxRadius float64
	Level     int
}

// ZoomTable maps a search radius to a map zoom level. Larger levels are
// wider views in the map provider's scale.
type ZoomTable struct {
	steps  []ZoomStep
	beyond int
}

// DefaultZoomTable maps 1 km to level 5 up through 50 km to level 10, and 12 beyond.
func DefaultZoomTable() ZoomTable {
	return ZoomTable{
		steps: []ZoomStep{
			{MaxRadius: 1000, Level: 5},
			{MaxRadius: 3000, Level: 6},
			{MaxRadius: 5000, Level: 7},
			{MaxRadius: 10000, Level: 8},
			{MaxRadius: 20000, Level: 9},
			{MaxRadius: 50000, Level: 10},
		},
		beyond: 12,
	}
}

// NewZoomTable requires strictly ascending radii and levels that never
// decrease, including the beyond level.
func NewZoomTable(steps []ZoomStep, beyond int) (ZoomTable, error) {
	for i, s := range steps {
		if s.MaxRadius <= 0 || math.IsInf(s.MaxRadius, 0) || math.IsNaN(s.MaxRadius) {
			return ZoomTable{}, fmt.Errorf("%w: step %d radius %v", domain.ErrInvalidZoomTable, i, s.MaxRadius)
		}
		if i == 0 {
			continue
		}
		prev := steps[i-1]
		if s.MaxRadius <= prev.MaxRadius {
			return ZoomTable{}, fmt.Errorf("%w: radii must ascend at step %d", domain.ErrInvalidZoomTable, i)
		}
		if s.Level < prev.Level {
			return ZoomTable{}, fmt.Errorf("%w: levels must not decrease at step %d", domain.ErrInvalidZoomTable, i)
		}
	}
	if n := len(steps); n > 0 && beyond < steps[n-1].Level {
		return ZoomTable{}, fmt.Errorf("%w: beyond level %d below last step", domain.ErrInvalidZoomTable, beyond)
	}
	return ZoomTable{steps: slices.Clone(steps), beyond: beyond}, nil
}

// ParseZoomTable reads "1000:5,3000:6,*:12". The "*" entry is the level
// for radii beyond the last step and is required.
func ParseZoomTable(s string) (ZoomTable, error) {
	var steps []ZoomStep
	beyond, haveBeyond := 0, false

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		radiusStr, levelStr, ok := strings.Cut(part, ":")
		if !ok {
			return ZoomTable{}, fmt.Errorf("%w: malformed entry %q", domain.ErrInvalidZoomTable, part)
		}
		level, err := strconv.Atoi(strings.TrimSpace(levelStr))
		if err != nil {
			return ZoomTable{}, fmt.Errorf("%w: level in %q", domain.ErrInvalidZoomTable, part)
		}
		radiusStr = strings.TrimSpace(radiusStr)
		if radiusStr == "*" {
			beyond, haveBeyond = level, true
			continue
		}
		radius, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil {
			return ZoomTable{}, fmt.Errorf("%w: radius in %q", domain.ErrInvalidZoomTable, part)
		}
		steps = append(steps, ZoomStep{MaxRadius: radius, Level: level})
	}

	if !haveBeyond {
		return ZoomTable{}, fmt.Errorf("%w: missing \"*\" entry", domain.ErrInvalidZoomTable)
	}
	return NewZoomTable(steps, beyond)
}

// LevelFor returns the level of the first step whose MaxRadius is at least
// radiusMeters.
func (t ZoomTable) LevelFor(radiusMeters float64) int {
	if len(t.steps) == 0 && t.beyond == 0 {
		t = DefaultZoomTable()
	}
	for _, s := range t.steps {
		if radiusMeters <= s.MaxRadius {
			return s.Level
		}
	}
	return t.beyond
}

func (t ZoomTable) Steps() []ZoomStep {
	return slices.Clone(t.steps)
}

func (t ZoomTable) Beyond() int {
	return t.beyond
}

func (t ZoomTable) String() string {
	var b strings.Builder
	for _, s := range t.steps {
		fmt.Fprintf(&b, "%s:%d,", strconv.FormatFloat(s.MaxRadius, 'f', -1, 64), s.Level)
	}
	fmt.Fprintf(&b, "*:%d", t.beyond)
	return b.String()
}

// MapLevelForRadius uses the default table.
func MapLevelForRadius(radiusMeters float64) int {
	return DefaultZoomTable().LevelFor(radiusMeters)
}
