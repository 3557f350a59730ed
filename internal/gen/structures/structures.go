package structures

import (
	gomath "math"
	"sync"

	"github.com/Faultbox/worldforge/internal/gen/grid"
	"github.com/Faultbox/worldforge/internal/gen/mesh"
	"github.com/Faultbox/worldforge/internal/rng"
	wmath "github.com/Faultbox/worldforge/pkg/math"
	"github.com/Faultbox/worldforge/pkg/schema"
)

const (
	// Attempts per instance before the site search gives up and the
	// instance is skipped.
	siteAttempts = 24

	// Minimum gap kept between a new footprint and any occupied cell.
	clearance = 2.0

	// Sites steeper than this are rejected outright.
	maxSiteSlope = 0.8

	// Structures sink slightly below grade so bases never float.
	baseSink = 0.4

	edgeMargin = 12.0
)

// Instance is one placed structure: the drawn parameters plus the
// resolved world transform. Geometry is built separately so placement
// stays cheap and sequential while construction can fan out.
type Instance struct {
	Kind      schema.StructureKind
	Position  wmath.Vec3
	RotationY float64
	Height    float64
	Scale     float64
	Footprint float64

	Segments int
	Taper    float64
	CutRatio float64
	Span     float64
}

// Place resolves every placement rule in declaration order against the
// carved terrain. Counts and site candidates come from derived random
// streams keyed by rule and instance index, so each rule's outcome is
// independent of the others. Instances that exhaust their site attempts
// are skipped; the per-rule reports carry requested vs placed counts so
// callers can surface the shortfall.
func Place(rules []schema.PlacementRule, h *grid.HeightField, mask *grid.OccupancyMask, seed int64) ([]Instance, []schema.StructureReport) {
	var placed []Instance
	reports := make([]schema.StructureReport, 0, len(rules))

	for ri, rule := range rules {
		countStream := rng.New(seed, "structure-count", ri)
		want := countStream.IntRange(rule.CountRange[0], rule.CountRange[1])

		got := 0
		for i := 0; i < want; i++ {
			stream := rng.New(seed, "structure", ri<<16|i)
			inst, ok := placeOne(rule, h, mask, stream)
			if !ok {
				continue
			}
			mask.MarkCircle(inst.Position.X, inst.Position.Z, inst.Footprint+clearance)
			placed = append(placed, inst)
			got++
		}
		reports = append(reports, schema.StructureReport{
			Kind:      rule.Kind,
			Requested: want,
			Placed:    got,
		})
	}
	return placed, reports
}

func placeOne(rule schema.PlacementRule, h *grid.HeightField, mask *grid.OccupancyMask, stream *rng.Stream) (Instance, bool) {
	height := stream.Range(rule.HeightRange[0], rule.HeightRange[1])
	scale := stream.Range(rule.ScaleRange[0], rule.ScaleRange[1])
	if scale <= 0 {
		scale = 1
	}
	yaw := stream.Angle()

	inst := Instance{
		Kind:      rule.Kind,
		RotationY: yaw,
		Height:    height,
		Scale:     scale,
		Segments:  rule.Segments,
		Taper:     rule.Taper,
		CutRatio:  rule.CutRatio,
		Footprint: footprintRadius(rule.Kind, height, scale, rule.CutRatio),
	}
	if rule.Kind == schema.KindBridge {
		inst.Span = 40 * scale
		inst.Footprint = inst.Span/2 + clearance
	}

	for attempt := 0; attempt < siteAttempts; attempt++ {
		pos := candidate(rule, h, stream)
		if mask.OccupiedCircle(pos.X, pos.Y, inst.Footprint+clearance) {
			continue
		}
		if h.SlopeAt(pos.X, pos.Y) > maxSiteSlope {
			continue
		}
		inst.Position = wmath.Vec3{X: pos.X, Y: h.Sample(pos.X, pos.Y) - baseSink, Z: pos.Y}
		return inst, true
	}
	return Instance{}, false
}

// candidate draws a site: uniform over the usable interior, or an
// annulus around the world center when the rule scatters.
func candidate(rule schema.PlacementRule, h *grid.HeightField, stream *rng.Stream) wmath.Vec2 {
	size := h.Size()
	if rule.ScatterRadius > 0 {
		center := wmath.Vec2{X: size / 2, Y: size / 2}
		theta := stream.Angle()
		r := rule.ScatterRadius * stream.Range(0.35, 1.0)
		p := wmath.Vec2{
			X: center.X + r*gomath.Cos(theta),
			Y: center.Y + r*gomath.Sin(theta),
		}
		p.X = wmath.Clamp(p.X, edgeMargin, size-edgeMargin)
		p.Y = wmath.Clamp(p.Y, edgeMargin, size-edgeMargin)
		return p
	}
	return wmath.Vec2{
		X: stream.Range(edgeMargin, size-edgeMargin),
		Y: stream.Range(edgeMargin, size-edgeMargin),
	}
}

func footprintRadius(kind schema.StructureKind, height, scale, cutRatio float64) float64 {
	switch kind {
	case schema.KindTower:
		return 6 * scale
	case schema.KindSpire:
		return 4 * scale
	case schema.KindDome:
		return domeRimRadius(height, cutRatio) * scale
	case schema.KindBridge:
		return 20 * scale
	}
	return 6 * scale
}

// domeRimRadius is the base-circle radius of an unscaled dome of the
// given height. For the default hemisphere the rim radius equals the
// height.
func domeRimRadius(height, cutRatio float64) float64 {
	if cutRatio <= 0 || cutRatio > 0.9 {
		cutRatio = 0.5
	}
	phiCut := gomath.Pi * (1 - cutRatio)
	return height * gomath.Sin(phiCut) / (1 - gomath.Cos(phiCut))
}

// BuildGeometry constructs one mesh per instance. Instances are
// independent, so construction fans out over workers; results land at
// the instance's index and stay in placement order.
func BuildGeometry(instances []Instance, workers int) []*mesh.Mesh {
	if workers < 1 {
		workers = 1
	}
	meshes := make([]*mesh.Mesh, len(instances))

	var wg sync.WaitGroup
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				meshes[i] = buildOne(instances[i])
			}
		}()
	}
	for i := range instances {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return meshes
}

func buildOne(inst Instance) *mesh.Mesh {
	var m *mesh.Mesh
	switch inst.Kind {
	case schema.KindTower:
		m = Tower(inst.Height, 6*inst.Scale, towerSegments(inst.Segments), towerTaper(inst.Taper))
	case schema.KindSpire:
		m = Spire(inst.Height, 4*inst.Scale)
	case schema.KindDome:
		// Scale widens the rim only; the drawn height is a hard bound.
		m = Dome(inst.Height, inst.CutRatio, inst.Scale)
	case schema.KindBridge:
		m = Bridge(inst.Span, inst.Height, 8*inst.Scale)
	default:
		m = Tower(inst.Height, 6*inst.Scale, towerSegments(inst.Segments), towerTaper(inst.Taper))
	}
	m.RotateY(inst.RotationY)
	m.Translate(inst.Position)
	return m
}

func towerSegments(n int) int {
	if n < 1 {
		return 3
	}
	return n
}

func towerTaper(t float64) float64 {
	if t <= 0 || t > 1 {
		return 0.8
	}
	return t
}
