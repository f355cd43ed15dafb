package linechain

import (
	"math"

	"github.com/paulmach/orb"
)

func orbPoint(p Point) orb.Point {
	return orb.Point{float64(p.X), float64(p.Y)}
}

func fromOrbPoint(p orb.Point) Point {
	return Point{int(math.Round(p[0])), int(math.Round(p[1]))}
}

// ToLineString returns the chain's points as a line string. Closed chains repeat their first point at the end.
func (c *Chain) ToLineString() orb.LineString {
	ls := make(orb.LineString, 0, len(c.points)+1)
	for _, p := range c.points {
		ls = append(ls, orbPoint(p))
	}
	if c.closed && 0 < len(c.points) {
		ls = append(ls, orbPoint(c.points[0]))
	}
	return ls
}

// ToRing returns the chain's points as a closed ring.
func (c *Chain) ToRing() orb.Ring {
	r := make(orb.Ring, 0, len(c.points)+1)
	for _, p := range c.points {
		r = append(r, orbPoint(p))
	}
	if 0 < len(c.points) {
		r = append(r, orbPoint(c.points[0]))
	}
	return r
}

// FromLineString returns an open chain of the line string's points rounded to integers. Consecutive points that round to the same coordinate are merged.
func FromLineString(ls orb.LineString) *Chain {
	return New(fromOrbPoints(ls)...)
}

// FromRing returns a closed chain of the ring's points rounded to integers.
func FromRing(r orb.Ring) *Chain {
	return NewClosed(fromOrbPoints(r)...)
}

func fromOrbPoints(ps []orb.Point) []Point {
	pts := make([]Point, 0, len(ps))
	for _, p := range ps {
		q := fromOrbPoint(p)
		if len(pts) == 0 || pts[len(pts)-1] != q {
			pts = append(pts, q)
		}
	}
	return pts
}

// ToPolygon returns the closed chains as a polygon, where the first chain is the outer ring and the others are holes.
func ToPolygon(cs []*Chain) orb.Polygon {
	poly := make(orb.Polygon, 0, len(cs))
	for _, c := range cs {
		poly = append(poly, c.ToRing())
	}
	return poly
}
