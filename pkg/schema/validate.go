package schema

import (
	"errors"
	"fmt"
)

// ValidationError reports one invalid WorldSchema field. Generation never
// starts on a schema that fails validation; the caller corrects the input
// and retries.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema: %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks every configuration bound the generator relies on.
// It returns all violations joined, or nil if the schema is usable.
func (s *WorldSchema) Validate() error {
	var errs []error

	if s.ScaleKm <= 0 {
		errs = append(errs, invalid("scale_km", "must be positive, got %g", s.ScaleKm))
	}
	if s.GridResolution < 2 {
		errs = append(errs, invalid("grid_resolution", "must be at least 2, got %d", s.GridResolution))
	}

	n := s.Noise
	if n.Octaves < 1 || n.Octaves > 12 {
		errs = append(errs, invalid("noise.octaves", "must be in [1,12], got %d", n.Octaves))
	}
	if n.Lacunarity <= 1 {
		errs = append(errs, invalid("noise.lacunarity", "must be greater than 1, got %g", n.Lacunarity))
	}
	if n.Persistence <= 0 {
		errs = append(errs, invalid("noise.persistence", "must be positive, got %g", n.Persistence))
	}
	if n.Frequency <= 0 {
		errs = append(errs, invalid("noise.frequency", "must be positive, got %g", n.Frequency))
	}
	if n.AmplitudeRange[0] > n.AmplitudeRange[1] {
		errs = append(errs, invalid("noise.amplitude_range", "min %g exceeds max %g",
			n.AmplitudeRange[0], n.AmplitudeRange[1]))
	}

	for i, p := range s.Paths {
		field := fmt.Sprintf("paths[%d]", i)
		if p.Kind != PathRoad && p.Kind != PathRiver {
			errs = append(errs, invalid(field+".kind", "unknown kind %q", p.Kind))
		}
		if p.Width <= 0 {
			errs = append(errs, invalid(field+".width", "must be positive, got %g", p.Width))
		}
		if len(p.Waypoints) < 2 {
			errs = append(errs, invalid(field+".waypoints", "need at least 2 waypoints, got %d", len(p.Waypoints)))
		}
		if p.Kind == PathRiver && p.Depth <= 0 {
			errs = append(errs, invalid(field+".depth", "rivers need a positive carve depth, got %g", p.Depth))
		}
	}

	for i, r := range s.Structures {
		field := fmt.Sprintf("structures[%d]", i)
		switch r.Kind {
		case KindTower, KindSpire, KindDome, KindBridge:
		default:
			errs = append(errs, invalid(field+".kind", "unknown kind %q", r.Kind))
		}
		if r.CountRange[0] < 0 || r.CountRange[0] > r.CountRange[1] {
			errs = append(errs, invalid(field+".count_range", "invalid range [%d,%d]",
				r.CountRange[0], r.CountRange[1]))
		}
		if r.HeightRange[0] <= 0 || r.HeightRange[0] > r.HeightRange[1] {
			errs = append(errs, invalid(field+".height_range", "invalid range [%g,%g]",
				r.HeightRange[0], r.HeightRange[1]))
		}
		if r.ScaleRange[0] <= 0 || r.ScaleRange[0] > r.ScaleRange[1] {
			errs = append(errs, invalid(field+".scale_range", "invalid range [%g,%g]",
				r.ScaleRange[0], r.ScaleRange[1]))
		}
		if r.Taper < 0 || r.Taper > 1 {
			errs = append(errs, invalid(field+".taper", "must be in [0,1], got %g", r.Taper))
		}
		if r.CutRatio < 0 || r.CutRatio > 0.9 {
			errs = append(errs, invalid(field+".cut_ratio", "must be in [0,0.9], got %g", r.CutRatio))
		}
		if r.Segments < 0 {
			errs = append(errs, invalid(field+".segments", "must not be negative, got %d", r.Segments))
		}
	}

	v := s.Vegetation
	if v.DensityPerKm2 < 0 {
		errs = append(errs, invalid("vegetation.density_per_km2", "must not be negative, got %g", v.DensityPerKm2))
	}
	if v.DensityPerKm2 > 0 {
		if v.HeightRange[0] <= 0 || v.HeightRange[0] > v.HeightRange[1] {
			errs = append(errs, invalid("vegetation.height_range", "invalid range [%g,%g]",
				v.HeightRange[0], v.HeightRange[1]))
		}
		for i, sp := range v.Species {
			if sp.Weight <= 0 {
				errs = append(errs, invalid(fmt.Sprintf("vegetation.species[%d].weight", i),
					"must be positive, got %g", sp.Weight))
			}
		}
	}

	return errors.Join(errs...)
}
