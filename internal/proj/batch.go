package proj

import "github.com/pk-codebox-evo/openmap/internal/coord"

// Batch is the result of ForwardBatch. Points, Visible and the input slice
// share indexes.
type Batch struct {
	Points  []coord.ScreenPoint
	Visible []bool
	// AnyVisible is true when at least one point landed in the viewport.
	AnyVisible bool
}

// VisibleCount returns how many points landed in the viewport.
func (b Batch) VisibleCount() int {
	n := 0
	for _, v := range b.Visible {
		if v {
			n++
		}
	}
	return n
}

// forwardBatch runs fwd over pts. Callers pass a forward function bound to a
// single constants snapshot so the whole batch is projected consistently.
func forwardBatch(fwd func(coord.GeoPoint) coord.ScreenPoint, width, height int, pts []coord.GeoPoint) Batch {
	b := Batch{
		Points:  make([]coord.ScreenPoint, len(pts)),
		Visible: make([]bool, len(pts)),
	}
	for i, p := range pts {
		sp := fwd(p)
		b.Points[i] = sp
		if coord.InViewport(sp, width, height) {
			b.Visible[i] = true
			b.AnyVisible = true
		}
	}
	return b
}
