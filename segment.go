package linechain

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Segment is a straight line segment from A to B.
type Segment struct {
	A, B Point
}

// Length returns the length of the segment.
func (s Segment) Length() float64 {
	return s.B.Sub(s.A).Length()
}

// SquaredLength returns the squared length of the segment.
func (s Segment) SquaredLength() int64 {
	return s.B.Sub(s.A).SquaredLength()
}

// orient returns the perp dot product of AB and AP, ie. positive when P lies to the left of AB.
func orient(a, b, p Point) int64 {
	return b.Sub(a).PerpDot(p.Sub(a))
}

func sign(v int64) int {
	if v < 0 {
		return -1
	} else if 0 < v {
		return 1
	}
	return 0
}

// Side returns 1 if p lies to the left of the segment's line, -1 if to the right, and 0 if on the line.
func (s Segment) Side(p Point) int {
	return sign(orient(s.A, s.B, p))
}

// Contains returns true if p lies exactly on the segment.
func (s Segment) Contains(p Point) bool {
	if orient(s.A, s.B, p) != 0 {
		return false
	}
	return min(s.A.X, s.B.X) <= p.X && p.X <= max(s.A.X, s.B.X) && min(s.A.Y, s.B.Y) <= p.Y && p.Y <= max(s.A.Y, s.B.Y)
}

// NearestPoint returns the point on the segment closest to p, rounded to integer coordinates.
func (s Segment) NearestPoint(p Point) Point {
	d := s.B.Sub(s.A)
	l2 := d.SquaredLength()
	if l2 == 0 {
		return s.A
	}
	t := p.Sub(s.A).Dot(d)
	if t <= 0 {
		return s.A
	} else if l2 <= t {
		return s.B
	}
	return s.A.Vec().Add(d.Vec().Mul(float64(t) / float64(l2))).Round()
}

func (s Segment) nearestVec(p Vec2) Vec2 {
	a := s.A.Vec()
	d := s.B.Vec().Sub(a)
	l2 := d.Dot(d)
	if l2 == 0.0 {
		return a
	}
	t := p.Sub(a).Dot(d) / l2
	if t <= 0.0 {
		return a
	} else if 1.0 <= t {
		return s.B.Vec()
	}
	return a.Add(d.Mul(t))
}

// SquaredDistance returns the squared distance between p and the nearest point on the segment.
func (s Segment) SquaredDistance(p Point) int64 {
	return p.Sub(s.NearestPoint(p)).SquaredLength()
}

// Intersect returns a point the segments have in common. For collinear overlapping segments it returns one of the end points within the overlap. Parallel segments that do not overlap have no intersection.
func (s Segment) Intersect(o Segment) (Point, bool) {
	o1 := orient(o.A, o.B, s.A)
	o2 := orient(o.A, o.B, s.B)
	o3 := orient(s.A, s.B, o.A)
	o4 := orient(s.A, s.B, o.B)
	if sign(o1)*sign(o2) < 0 && sign(o3)*sign(o4) < 0 {
		// proper crossing, o1 and o2 have opposite signs so the denominator is non-zero
		t := float64(o1) / float64(o1-o2)
		return s.A.Vec().Interpolate(s.B.Vec(), t).Round(), true
	}
	if o1 == 0 && o.Contains(s.A) {
		return s.A, true
	} else if o2 == 0 && o.Contains(s.B) {
		return s.B, true
	} else if o3 == 0 && s.Contains(o.A) {
		return o.A, true
	} else if o4 == 0 && s.Contains(o.B) {
		return o.B, true
	}
	return Point{}, false
}

// SquaredDistanceSegment returns the squared distance between both segments, which is zero if they intersect.
func (s Segment) SquaredDistanceSegment(o Segment) int64 {
	if _, ok := s.Intersect(o); ok {
		return 0
	}
	return min(s.SquaredDistance(o.A), s.SquaredDistance(o.B), o.SquaredDistance(s.A), o.SquaredDistance(s.B))
}

// Bounds returns the bounding box of the segment.
func (s Segment) Bounds() orb.Bound {
	return orb.Bound{Min: orbPoint(s.A), Max: orbPoint(s.A)}.Extend(orbPoint(s.B))
}

func (s Segment) String() string {
	return fmt.Sprintf("Segment(%v-%v)", s.A, s.B)
}
