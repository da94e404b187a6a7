package sim

import (
	"math"

	"github.com/vovakirdan/chuteworks/internal/config"
	"github.com/vovakirdan/chuteworks/internal/core"
)

// DragResolver turns a pointer target into a bounded per-tick displacement
// for the dragged block.
//
// Far from the nearest grid point (any axis at least one cell away) the
// block follows the major axis and is pulled onto the grid line of the minor
// one. Close to it the pointer moves freely inside a circular play zone and
// only slides along the zone's edge beyond that.
type DragResolver struct {
	Tuning config.DragConfig
}

// NewDragResolver creates a resolver with the given tuning.
func NewDragResolver(tuning config.DragConfig) DragResolver {
	return DragResolver{Tuning: tuning}
}

// ClampTarget keeps the target from pulling the block in a blocked direction.
func ClampTarget(target, snapped core.Vec2, allowed Moves) core.Vec2 {
	if !allowed.Left {
		target.X = math.Max(snapped.X, target.X)
	}
	if !allowed.Right {
		target.X = math.Min(snapped.X, target.X)
	}
	if !allowed.Down {
		target.Y = math.Max(snapped.Y, target.Y)
	}
	if !allowed.Up {
		target.Y = math.Min(snapped.Y, target.Y)
	}
	return target
}

// Step returns the displacement to apply this tick.
// current is the dragged block's continuous position, target the pointer.
func (r DragResolver) Step(current, target core.Vec2, allowed Moves) core.Vec2 {
	snapped := current.Round()
	target = ClampTarget(target, snapped, allowed)

	posToTarget := target.Sub(current)
	gridToTarget := target.Sub(snapped)
	absDelta := gridToTarget.Abs()

	var out core.Vec2
	if absDelta.X >= 1 || absDelta.Y >= 1 {
		out = r.longDrag(current, posToTarget, absDelta)
	} else {
		out = r.shortDrag(current, snapped, gridToTarget)
	}

	out = out.ClampAxes(r.Tuning.MaxStep)
	if math.IsNaN(out.X) || math.IsNaN(out.Y) {
		return core.Vec2{}
	}
	return out
}

func (r DragResolver) longDrag(current, posToTarget, absDelta core.Vec2) core.Vec2 {
	major := math.Max(absDelta.X, absDelta.Y)
	minor := math.Min(absDelta.X, absDelta.Y)
	snappiness := core.Clamp01(major / r.Tuning.SnapDivisor * math.Max(r.Tuning.MinMinor, minor))

	rounded := current.Round()
	if absDelta.Y >= absDelta.X {
		return core.V(snappiness*(rounded.X-current.X), posToTarget.Y)
	}
	return core.V(posToTarget.X, snappiness*(rounded.Y-current.Y))
}

func (r DragResolver) shortDrag(current, snapped, gridToTarget core.Vec2) core.Vec2 {
	d := r.Tuning.ZoneOffset
	center := core.V(signedOffset(gridToTarget.X, d), signedOffset(gridToTarget.Y, d))

	t := RaycastCircle(gridToTarget, center, r.Tuning.ZoneRadius, r.Tuning.BisectIterations)
	gridToEdge := gridToTarget.Scale(t)
	edgeToTarget := gridToTarget.Scale(1 - t)

	// Both vectors are relative to the grid point.
	radial := center.Sub(gridToEdge).Normalized()
	intoCircle := radial.Scale(edgeToTarget.Dot(radial))
	alongCircle := edgeToTarget.Sub(intoCircle)

	return snapped.Add(gridToEdge).Add(alongCircle.Scale(r.Tuning.TangentFactor)).Sub(current)
}

func signedOffset(v, d float64) float64 {
	if v >= 0 {
		return d
	}
	return -d
}

// RaycastCircle finds by bisection the largest t in [0, 1] such that v*t is
// still outside the circle. It returns close to 0 when the origin is inside
// the circle and close to 1 when v never reaches it.
//
// The search assumes v starts at the origin and stays within the circle's
// bounding box; other inputs give a bounded but meaningless t.
func RaycastCircle(v, center core.Vec2, radius float64, iterations int) float64 {
	a, b := 0.0, 1.0
	rr := radius * radius
	for i := 0; i < iterations; i++ {
		s := 0.5 * (a + b)
		if v.Scale(s).Sub(center).LenSq() < rr {
			b = s
		} else {
			a = s
		}
	}
	return a
}
