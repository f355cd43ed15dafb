package linechain

import (
	"math/rand/v2"
	"testing"
)

func randomPoint(r *rand.Rand) Point {
	return Point{r.IntN(2001) - 1000, r.IntN(2001) - 1000}
}

// randomChain returns a chain of n straight segments and arcs.
func randomChain(r *rand.Rand, n int, closed bool) *Chain {
	c := &Chain{}
	c.Append(randomPoint(r))
	for i := 1; i < n; i++ {
		switch r.IntN(3) {
		case 0:
			c.Append(randomPoint(r))
		default:
			start := c.PointAt(-1)
			if r.IntN(4) == 0 {
				start = randomPoint(r)
			}
			radius := 100 + r.IntN(400)
			theta := r.Float64() * 6.0
			center := Vec2{float64(start.X), float64(start.Y)}.Sub(polar(Vec2{}, float64(radius), theta)).Round()
			angle := 20.0 + r.Float64()*250.0
			if r.IntN(2) == 0 {
				angle = -angle
			}
			c.AppendArc(ArcFromCenterAngle(center, start, angle), 10)
		}
	}
	if closed {
		c.SetClosed(true)
	}
	return c
}

// checkChain verifies the structural invariants of a chain.
func checkChain(t *testing.T, c *Chain) {
	t.Helper()
	n := len(c.points)
	if len(c.shapes) != n {
		t.Fatalf("%d points but %d shapes", n, len(c.shapes))
	}
	if c.closed && 1 < n && c.points[0] == c.points[n-1] {
		t.Fatalf("closed chain repeats its first point: %v", c.points)
	}
	for i, s := range c.shapes {
		if !s.IsPlain() && len(c.arcs) <= s.Arc || s.Kind == SeamPoint && len(c.arcs) <= s.Next {
			t.Fatalf("point %d: shape %v refers to missing arc", i, s)
		}
	}
	for a, arc := range c.arcs {
		if arc.IsStraight() {
			t.Fatalf("arc %d is straight", a)
		}
	}

	segs := c.segmentArcs()
	for i := range c.shapes {
		in, out := -1, -1
		if i < len(segs) {
			out = segs[i]
		}
		if 0 < i && i-1 < len(segs) {
			in = segs[i-1]
		} else if i == 0 && c.closed && 0 < len(segs) {
			in = segs[len(segs)-1]
		}
		if c.shapes[i] != makeShape(in, out) {
			t.Fatalf("point %d: shape %v does not match segments %d and %d", i, c.shapes[i], in, out)
		}
	}
	if c.closed && 0 < len(segs) && segs[0] != -1 && segs[0] == segs[len(segs)-1] {
		t.Fatalf("point zero is inside the run of arc %d", segs[0])
	}

	for a, arc := range c.arcs {
		first, last, runs := -1, -1, 0
		for i, b := range segs {
			if b != a {
				continue
			}
			if i == 0 || segs[i-1] != a {
				runs++
				first = i
			}
			last = i
		}
		if runs != 1 {
			t.Fatalf("arc %d has %d runs", a, runs)
		}
		if c.points[first] != arc.start || c.points[(last+1)%n] != arc.end {
			t.Fatalf("arc %d from %v to %v does not match its run from %v to %v", a, arc.start, arc.end, c.points[first], c.points[(last+1)%n])
		}
	}
}
