package pipeline

import (
	gomath "math"

	"github.com/Faultbox/worldforge/internal/export"
	"github.com/Faultbox/worldforge/pkg/schema"
)

// moodPreset is the light rig baseline a mood selects before the
// schema's explicit lighting values are layered on top.
type moodPreset struct {
	SunColor  [3]float64
	Intensity float64
	Ambient   float64
	SkyColor  [3]float64
	Fog       float64
}

var moodPresets = map[string]moodPreset{
	"bright": {
		SunColor:  [3]float64{1.0, 0.98, 0.92},
		Intensity: 1.2,
		Ambient:   0.55,
		SkyColor:  [3]float64{0.55, 0.75, 0.95},
		Fog:       0.0008,
	},
	"dark": {
		SunColor:  [3]float64{0.45, 0.48, 0.60},
		Intensity: 0.4,
		Ambient:   0.15,
		SkyColor:  [3]float64{0.08, 0.09, 0.14},
		Fog:       0.004,
	},
	"warm": {
		SunColor:  [3]float64{1.0, 0.80, 0.55},
		Intensity: 0.9,
		Ambient:   0.40,
		SkyColor:  [3]float64{0.85, 0.62, 0.45},
		Fog:       0.0015,
	},
	"cool": {
		SunColor:  [3]float64{0.80, 0.88, 1.0},
		Intensity: 0.85,
		Ambient:   0.38,
		SkyColor:  [3]float64{0.50, 0.65, 0.85},
		Fog:       0.0015,
	},
	"neutral": {
		SunColor:  [3]float64{1.0, 0.96, 0.90},
		Intensity: 1.0,
		Ambient:   0.40,
		SkyColor:  [3]float64{0.55, 0.70, 0.90},
		Fog:       0.001,
	},
}

// deriveLighting resolves the mood preset and sun angles into the light
// rig recorded in export metadata. Explicit non-zero schema values win
// over the preset.
func deriveLighting(ws *schema.WorldSchema) export.Lighting {
	mood := ws.Mood
	if ws.Lighting.Mood != "" {
		mood = ws.Lighting.Mood
	}
	preset, ok := moodPresets[mood]
	if !ok {
		mood = "neutral"
		preset = moodPresets[mood]
	}

	out := export.Lighting{
		Mood:             mood,
		SunDirection:     sunDirection(ws.Lighting.SunAzimuth, ws.Lighting.SunElevation),
		SunColor:         preset.SunColor,
		SunIntensity:     preset.Intensity,
		AmbientIntensity: preset.Ambient,
		SkyColor:         preset.SkyColor,
		FogDensity:       preset.Fog,
	}
	if ws.Lighting.AmbientIntensity > 0 {
		out.AmbientIntensity = ws.Lighting.AmbientIntensity
	}
	if ws.Lighting.SkyColor != [3]float64{} {
		out.SkyColor = ws.Lighting.SkyColor
	}
	if ws.Lighting.FogDensity > 0 {
		out.FogDensity = ws.Lighting.FogDensity
	}
	return out
}

// sunDirection converts azimuth/elevation degrees into a unit vector
// pointing from the sun toward the scene. Zero angles mean a default
// mid-morning sun.
func sunDirection(azimuthDeg, elevationDeg float64) [3]float64 {
	if azimuthDeg == 0 && elevationDeg == 0 {
		azimuthDeg, elevationDeg = 135, 50
	}
	az := azimuthDeg * gomath.Pi / 180
	el := elevationDeg * gomath.Pi / 180

	cosEl := gomath.Cos(el)
	return [3]float64{
		-cosEl * gomath.Sin(az),
		-gomath.Sin(el),
		-cosEl * gomath.Cos(az),
	}
}
