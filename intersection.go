package linechain

import (
	"math"

	"github.com/paulmach/orb"
)

// element is either a straight segment or a whole arc of a chain.
type element struct {
	index int // index of the first segment
	arc   int // arc index, -1 for straight segments
	s     Segment
	a     Arc
}

func (e element) isArc() bool {
	return e.arc != -1
}

func (e element) start() Point {
	return e.s.A
}

func (e element) end() Point {
	return e.s.B
}

func (e element) bounds() orb.Bound {
	if e.isArc() {
		return e.a.Bounds()
	}
	return e.s.Bounds()
}

func (e element) nearest(p Vec2) Vec2 {
	if e.isArc() {
		return e.a.NearestPoint(p)
	}
	return e.s.nearestVec(p)
}

func (e element) distance(p Vec2) float64 {
	return p.Sub(e.nearest(p)).Length()
}

////////////////////////////////////////////////////////////////

// intersectionLineCircle appends the intersections between the line segment l0-l1 and the arc.
func intersectionLineCircle(zs []Vec2, l0, l1 Vec2, arc Arc) []Vec2 {
	if l0.Equals(l1) {
		return zs
	}

	// solve l0 + t*(l1-l0) = P + t*D = X  (line equation)
	// and |X - center| = |X - C| = R = radius  (circle equation)
	// by substitution and squaring: |P + t*D - C|^2 = R^2
	// giving: D^2 t^2 + 2D(P-C) t + (P-C)^2-R^2 = 0
	dir := l1.Sub(l0)
	diff := l0.Sub(arc.center) // P-C
	length := dir.Length()
	D := dir.Div(length)

	// we normalise D to be of length 1, so that the roots are in [0,length]
	a := 1.0
	b := 2.0 * D.Dot(diff)
	c := diff.Dot(diff) - arc.radius*arc.radius

	roots := []float64{}
	r0, r1 := solveQuadraticFormula(a, b, c)
	if !math.IsNaN(r0) {
		roots = append(roots, r0)
		if !math.IsNaN(r1) && !Equal(r0, r1) {
			roots = append(roots, r1)
		}
	}

	// the tolerance on the roots absorbs rounding of the integer end points
	for _, root := range roots {
		if root < -0.5 || length+0.5 < root {
			continue
		}
		pos := diff.Add(D.Mul(root))
		if arc.containsAngle(pos.Angle()) {
			zs = append(zs, arc.center.Add(pos))
		}
	}
	return zs
}

// intersectionCircleCircle returns the two intersections of two circles, which coincide when they touch.
func intersectionCircleCircle(c0 Vec2, r0 float64, c1 Vec2, r1 float64) (Vec2, Vec2, bool) {
	R := c0.Sub(c1).Length()
	if R < math.Abs(r0-r1) || r0+r1 < R || c0.Equals(c1) {
		return Vec2{}, Vec2{}, false
	}
	R2 := R * R

	k := r0*r0 - r1*r1
	a := 0.5
	b := 0.5 * k / R2
	c := 0.5 * math.Sqrt(math.Max(0.0, 2.0*(r0*r0+r1*r1)/R2-k*k/(R2*R2)-1.0))

	i0 := c0.Add(c1).Mul(a)
	i1 := c1.Sub(c0).Mul(b)
	i2 := Vec2{c1.Y - c0.Y, c0.X - c1.X}.Mul(c)
	return i0.Add(i1).Add(i2), i0.Add(i1).Sub(i2), true
}

// intersectionArcArc appends the intersections between two arcs. Arcs on the same circle that overlap return the end points within the overlap.
func intersectionArcArc(zs []Vec2, a, b Arc) []Vec2 {
	if a.center.Equals(b.center) && Equal(a.radius, b.radius) {
		for _, p := range []Point{a.start, a.end} {
			if b.containsAngle(p.Vec().Sub(b.center).Angle()) {
				zs = append(zs, p.Vec())
			}
		}
		for _, p := range []Point{b.start, b.end} {
			if a.containsAngle(p.Vec().Sub(a.center).Angle()) {
				zs = append(zs, p.Vec())
			}
		}
		return zs
	}

	p0, p1, ok := intersectionCircleCircle(a.center, a.radius, b.center, b.radius)
	if !ok {
		return zs
	}
	for i, p := range []Vec2{p0, p1} {
		if i == 1 && p0.Equals(p1) {
			break
		}
		if a.containsAngle(p.Sub(a.center).Angle()) && b.containsAngle(p.Sub(b.center).Angle()) {
			zs = append(zs, p)
		}
	}
	return zs
}

// intersectionElements returns the intersections between two chain elements.
func intersectionElements(e, f element) []Vec2 {
	switch {
	case !e.isArc() && !f.isArc():
		if p, ok := e.s.Intersect(f.s); ok {
			return []Vec2{p.Vec()}
		}
		return nil
	case !e.isArc():
		return intersectionLineCircle(nil, e.s.A.Vec(), e.s.B.Vec(), f.a)
	case !f.isArc():
		return intersectionLineCircle(nil, f.s.A.Vec(), f.s.B.Vec(), e.a)
	}
	return intersectionArcArc(nil, e.a, f.a)
}

// distanceElements returns the distance between two chain elements and the closest points on each of them.
func distanceElements(e, f element) (float64, Vec2, Vec2) {
	if zs := intersectionElements(e, f); 0 < len(zs) {
		return 0.0, zs[0], zs[0]
	}

	d, pe, pf := math.Inf(1), Vec2{}, Vec2{}
	try := func(p Vec2, onE bool) {
		var q Vec2
		if onE {
			q = f.nearest(p)
		} else {
			q = e.nearest(p)
		}
		if dist := p.Sub(q).Length(); dist < d {
			d = dist
			if onE {
				pe, pf = p, q
			} else {
				pe, pf = q, p
			}
		}
	}

	try(e.start().Vec(), true)
	try(e.end().Vec(), true)
	try(f.start().Vec(), false)
	try(f.end().Vec(), false)

	// interior extrema of an arc lie on the line through its center and the closest point of the other element
	if e.isArc() {
		for _, p := range arcCandidates(e.a, f) {
			try(p, true)
		}
	}
	if f.isArc() {
		for _, p := range arcCandidates(f.a, e) {
			try(p, false)
		}
	}
	return d, pe, pf
}

// arcCandidates returns points on the arc that may be closest to the other element.
func arcCandidates(a Arc, o element) []Vec2 {
	var dirs []Vec2
	if o.isArc() {
		if d := o.a.center.Sub(a.center); !d.Equals(Vec2{}) {
			dirs = append(dirs, d, d.Mul(-1.0))
		}
	} else if d := o.s.nearestVec(a.center).Sub(a.center); !d.Equals(Vec2{}) {
		dirs = append(dirs, d, d.Mul(-1.0))
	}

	ps := []Vec2{}
	for _, d := range dirs {
		if a.containsAngle(d.Angle()) {
			ps = append(ps, a.center.Add(d.Norm(a.radius)))
		}
	}
	return ps
}
