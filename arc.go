package linechain

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"golang.org/x/image/math/f64"
)

// DefaultMaxError is the default maximum chord error when converting arcs to line segments, ie. 5µm for a unit of 1nm.
const DefaultMaxError = 5000

// Arc is a circular arc from start to end around center. The rotation sense is CCW for a positive sweep (with the Y-axis pointing up) and CW for a negative sweep. An arc without sweep is straight and is treated as a line segment from start to end. Arcs are immutable values, Amend returns a modified copy.
type Arc struct {
	start, end Point
	center     Vec2
	radius     float64
	theta0     float64 // angle of start from center
	sweep      float64 // signed central angle
}

// ArcFromThreePoints returns the arc that starts at start, passes through mid and ends at end. If the points are collinear the arc is straight.
func ArcFromThreePoints(start, mid, end Point) Arc {
	b := mid.Sub(start)
	c := end.Sub(start)
	d := 2.0 * float64(b.PerpDot(c))
	if d == 0.0 || start == end {
		return Arc{start: start, end: end}
	}

	b2 := float64(b.SquaredLength())
	c2 := float64(c.SquaredLength())
	u := Vec2{
		(float64(c.Y)*b2 - float64(b.Y)*c2) / d,
		(float64(b.X)*c2 - float64(c.X)*b2) / d,
	}
	center := start.Vec().Add(u)
	return makeArc(start, end, center, u.Length(), 0.0 < d)
}

// ArcFromStartEndCenter returns the arc from start to end around center, rotating CCW when ccw is true.
func ArcFromStartEndCenter(start, end, center Point, ccw bool) Arc {
	c := center.Vec()
	return makeArc(start, end, c, start.Vec().Sub(c).Length(), ccw)
}

// ArcFromCenterAngle returns the arc that starts at start and rotates around center by angle degrees, positive angles being CCW. The angle must be within (-360,360), a full circle needs two arcs.
func ArcFromCenterAngle(center, start Point, angle float64) Arc {
	c := center.Vec()
	r := start.Vec().Sub(c).Length()
	theta0 := start.Vec().Sub(c).Angle()
	end := polar(c, r, theta0+angle*math.Pi/180.0).Round()
	return makeArc(start, end, c, r, 0.0 < angle)
}

func makeArc(start, end Point, center Vec2, radius float64, ccw bool) Arc {
	a := Arc{start: start, end: end, center: center, radius: radius}
	if start == end || !(0.0 < radius) || math.IsInf(radius, 0) {
		return Arc{start: start, end: end}
	}
	a.theta0 = start.Vec().Sub(center).Angle()
	theta1 := end.Vec().Sub(center).Angle()
	if ccw {
		a.sweep = angleNorm(theta1 - a.theta0)
	} else {
		a.sweep = -angleNorm(a.theta0 - theta1)
	}
	if a.sweep == 0.0 {
		return Arc{start: start, end: end}
	}
	return a
}

// Start returns the start point.
func (a Arc) Start() Point {
	return a.start
}

// End returns the end point.
func (a Arc) End() Point {
	return a.end
}

// Center returns the center of the circle.
func (a Arc) Center() Vec2 {
	return a.center
}

// Radius returns the radius of the circle.
func (a Arc) Radius() float64 {
	return a.radius
}

// CCW returns true if the arc rotates counter clockwise from start to end.
func (a Arc) CCW() bool {
	return 0.0 < a.sweep
}

// IsStraight returns true for degenerate arcs, which are straight lines from start to end.
func (a Arc) IsStraight() bool {
	return a.sweep == 0.0
}

// StartAngle returns the angle in degrees of the start point as seen from the center.
func (a Arc) StartAngle() float64 {
	return a.theta0 * 180.0 / math.Pi
}

// Angle returns the signed central angle in degrees.
func (a Arc) Angle() float64 {
	return a.sweep * 180.0 / math.Pi
}

// Sweep returns the signed central angle in radians.
func (a Arc) Sweep() float64 {
	return a.sweep
}

// Contains returns true if p lies on the arc within one unit, which absorbs the rounding of points to the integer grid.
func (a Arc) Contains(p Point) bool {
	return a.Distance(p.Vec()) <= 1.0
}

// Length returns the arc length.
func (a Arc) Length() float64 {
	if a.IsStraight() {
		return a.end.Sub(a.start).Length()
	}
	return a.radius * math.Abs(a.sweep)
}

// Mid returns the point halfway along the arc.
func (a Arc) Mid() Point {
	if a.IsStraight() {
		return a.start.Vec().Interpolate(a.end.Vec(), 0.5).Round()
	}
	return polar(a.center, a.radius, a.theta0+a.sweep/2.0).Round()
}

// Amend returns the arc moved to start at start and end at end, keeping its circle and rotation sense.
func (a Arc) Amend(start, end Point) Arc {
	if a.IsStraight() {
		return Arc{start: start, end: end}
	}
	return makeArc(start, end, a.center, a.radius, a.CCW())
}

// Reversed returns the same arc traversed from end to start.
func (a Arc) Reversed() Arc {
	if a.IsStraight() {
		return Arc{start: a.end, end: a.start}
	}
	return makeArc(a.end, a.start, a.center, a.radius, !a.CCW())
}

// Transform returns the arc transformed by the affine matrix m, which must be a similarity transformation (no shear or non-uniform scaling). Reflections flip the rotation sense.
func (a Arc) Transform(m f64.Aff3) Arc {
	start := transformPoint(m, a.start.Vec()).Round()
	end := transformPoint(m, a.end.Vec()).Round()
	if a.IsStraight() {
		return Arc{start: start, end: end}
	}
	det := m[0]*m[4] - m[1]*m[3]
	ccw := a.CCW()
	if det < 0.0 {
		ccw = !ccw
	}
	return makeArc(start, end, transformPoint(m, a.center), a.radius*math.Sqrt(math.Abs(det)), ccw)
}

// Polyline approximates the arc by line segments so that the distance between the segments and the arc is at most maxError (DefaultMaxError if maxError <= 0). The first and last points are the arc's start and end, and an arc is always divided in at least two segments unless it is too small for its middle point to be distinct.
func (a Arc) Polyline(maxError int) []Point {
	if a.IsStraight() {
		return []Point{a.start, a.end}
	}
	if maxError <= 0 {
		maxError = DefaultMaxError
	}

	n := 2
	if e := float64(maxError); e < a.radius {
		// chord error of a segment spanning angle phi is r*(1-cos(phi/2))
		phi := 2.0 * math.Acos(1.0-e/a.radius)
		n = max(n, int(math.Ceil(math.Abs(a.sweep)/phi)))
	}

	pts := make([]Point, 0, n+1)
	pts = append(pts, a.start)
	for i := 1; i < n; i++ {
		p := polar(a.center, a.radius, a.theta0+a.sweep*float64(i)/float64(n)).Round()
		if p != pts[len(pts)-1] && p != a.end {
			pts = append(pts, p)
		}
	}
	return append(pts, a.end)
}

// containsAngle returns true if the direction theta seen from the center falls within the arc.
func (a Arc) containsAngle(theta float64) bool {
	return angleInSweep(theta, a.theta0, a.sweep)
}

// NearestPoint returns the point on the arc closest to p.
func (a Arc) NearestPoint(p Vec2) Vec2 {
	if a.IsStraight() {
		return Segment{a.start, a.end}.nearestVec(p)
	}
	d := p.Sub(a.center)
	if !d.Equals(Vec2{}) && a.containsAngle(d.Angle()) {
		return a.center.Add(d.Norm(a.radius))
	}
	s, e := a.start.Vec(), a.end.Vec()
	if p.Sub(e).Length() < p.Sub(s).Length() {
		return e
	}
	return s
}

// Distance returns the distance between p and the arc.
func (a Arc) Distance(p Vec2) float64 {
	return p.Sub(a.NearestPoint(p)).Length()
}

// Bounds returns the bounding box of the arc.
func (a Arc) Bounds() orb.Bound {
	b := orb.Bound{Min: orbPoint(a.start), Max: orbPoint(a.start)}
	b = b.Extend(orbPoint(a.end))
	if a.IsStraight() {
		return b
	}
	for k := 0; k < 4; k++ {
		theta := float64(k) * math.Pi / 2.0
		if a.containsAngle(theta) {
			p := polar(a.center, a.radius, theta)
			b = b.Extend(orb.Point{p.X, p.Y})
		}
	}
	return b
}

func (a Arc) String() string {
	if a.IsStraight() {
		return fmt.Sprintf("Arc(%v→%v straight)", a.start, a.end)
	}
	return fmt.Sprintf("Arc(%v→%v c=%v r=%g %g°)", a.start, a.end, a.center, a.radius, a.Angle())
}

func transformPoint(m f64.Aff3, p Vec2) Vec2 {
	return Vec2{
		m[0]*p.X + m[1]*p.Y + m[2],
		m[3]*p.X + m[4]*p.Y + m[5],
	}
}
