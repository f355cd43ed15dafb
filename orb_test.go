package linechain

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/tdewolff/test"
)

func TestToLineString(t *testing.T) {
	test.T(t, rectangle().ToLineString(), orb.LineString{{0, 0}, {10, 0}, {10, 20}, {0, 20}, {0, 0}})
	test.T(t, New(Point{0, 0}, Point{10, 0}).ToLineString(), orb.LineString{{0, 0}, {10, 0}})
	test.T(t, len((&Chain{}).ToLineString()), 0)

	ring := New(Point{0, 0}, Point{10, 0}, Point{10, 20}).ToRing()
	test.T(t, ring, orb.Ring{{0, 0}, {10, 0}, {10, 20}, {0, 0}})
	test.That(t, ring.Closed())
	test.Float(t, planar.Area(rectangle().ToRing()), 200.0)
	test.T(t, rectangle().ToRing().Bound(), rectangle().Bounds())
}

func TestFromLineString(t *testing.T) {
	c := FromLineString(orb.LineString{{0.4, 0.0}, {0.0, 0.0}, {10.6, -0.2}, {10.0, 20.0}})
	test.T(t, c.Points(), []Point{{0, 0}, {11, 0}, {10, 20}})
	test.That(t, !c.Closed())

	c = FromRing(rectangle().ToRing())
	test.T(t, c, rectangle())

	// round trip through orb keeps the points but not the arcs
	d := MustParse(halfDisc)
	c = FromRing(d.ToRing())
	test.T(t, c.Points(), d.Points())
	test.T(t, c.ArcCount(), 0)
}

func TestToPolygon(t *testing.T) {
	outer, hole := square(0, 0, 10, 10), square(2, 2, 4, 4)
	hole.Reverse()
	poly := ToPolygon([]*Chain{outer, hole})
	test.T(t, len(poly), 2)
	test.T(t, poly[1], hole.ToRing())
	test.Float(t, planar.Area(poly), 96.0)
	test.That(t, planar.PolygonContains(poly, orb.Point{1, 1}))
	test.That(t, !planar.PolygonContains(poly, orb.Point{3, 3}))
}
