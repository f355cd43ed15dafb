package linechain

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// selfIntersectionBucket is the number of consecutive shapes grouped in one bounding box for the self-intersection search.
const selfIntersectionBucket = 16

// sharedPointTolerance is the distance within which an intersection between consecutive shapes is considered to be their shared end point. Arc end points are rounded to the grid while the circle is not, so an arc and its neighbour may meet up to about one unit away from their shared point; crossings further out are real.
const sharedPointTolerance = 2.0

// see ClosestSegmentsFast
const (
	closestMaxBoxes        = 100
	closestMinPointsPerBox = 20
)

// Length returns the length of the chain, using the exact length of arcs.
func (c *Chain) Length() float64 {
	l := 0.0
	for _, e := range c.elements() {
		if e.isArc() {
			l += e.a.Length()
		} else {
			l += e.s.Length()
		}
	}
	return l
}

// Area returns the area enclosed by the points of a closed chain, which is positive for CCW chains (with the Y-axis pointing up) unless absolute is true. Open chains have no area.
func (c *Chain) Area(absolute bool) float64 {
	n := len(c.points)
	if !c.closed || n < 3 {
		return 0.0
	}

	a := 0.0
	for i, p := range c.points {
		a += float64(p.PerpDot(c.points[(i+1)%n]))
	}
	a /= 2.0
	if absolute {
		return math.Abs(a)
	}
	return a
}

// PointInside returns true if p is inside the closed chain using the crossing number of a ray towards positive X, which is exact for integer coordinates. For accuracy larger than one, points within accuracy of an edge are also inside. Points on the boundary are otherwise either inside or outside. Open chains have no inside.
func (c *Chain) PointInside(p Point, accuracy int) bool {
	n := len(c.points)
	if !c.closed || n < 3 {
		return false
	}

	inside := false
	for i, a := range c.points {
		b := c.points[(i+1)%n]
		if (p.Y < a.Y) == (p.Y < b.Y) {
			continue
		}
		// the edge crosses the ray right of p if a.X + (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) > p.X
		lhs := int64(b.X-a.X) * int64(p.Y-a.Y)
		rhs := int64(p.X-a.X) * int64(b.Y-a.Y)
		if dy := b.Y - a.Y; 0 < dy && rhs < lhs || dy < 0 && lhs < rhs {
			inside = !inside
		}
	}
	if 1 < accuracy {
		return inside || c.PointOnEdge(p, accuracy)
	}
	return inside
}

// PointOnEdge returns true if p is within accuracy of a segment of the chain.
func (c *Chain) PointOnEdge(p Point, accuracy int) bool {
	acc := int64(max(accuracy, 0))
	if len(c.points) == 1 {
		return p.Sub(c.points[0]).SquaredLength() <= acc*acc
	}
	for i := 0; i < c.SegmentCount(); i++ {
		if c.Segment(i).SquaredDistance(p) <= acc*acc {
			return true
		}
	}
	return false
}

// Distance returns the distance between p and the chain, which is zero inside closed chains unless outlineOnly is true. Arcs are measured exactly.
func (c *Chain) Distance(p Point, outlineOnly bool) float64 {
	if len(c.points) == 0 {
		panic("distance to empty chain")
	} else if !outlineOnly && c.PointInside(p, 0) {
		return 0.0
	}
	d, _ := c.nearestElement(func(e element) (float64, Vec2) {
		return e.distance(p.Vec()), Vec2{}
	})
	return d
}

// SquaredDistance returns the squared distance between p and the chain rounded to an integer, see Distance.
func (c *Chain) SquaredDistance(p Point, outlineOnly bool) int64 {
	d := c.Distance(p, outlineOnly)
	return int64(math.Round(d * d))
}

// singleElements returns the elements of the chain, or a zero-length segment for chains of one point.
func (c *Chain) singleElements() []element {
	if len(c.points) == 1 {
		return []element{{arc: -1, s: Segment{c.points[0], c.points[0]}}}
	}
	return c.elements()
}

// nearestElement returns the smallest distance returned by dist over all elements with the corresponding point on the chain.
func (c *Chain) nearestElement(dist func(element) (float64, Vec2)) (float64, Vec2) {
	best, q := math.Inf(1), Vec2{}
	for _, e := range c.singleElements() {
		if d, p := dist(e); d < best {
			best, q = d, p
			if d == 0.0 {
				break
			}
		}
	}
	return best, q
}

func collision(d float64, q Vec2, clearance int) (bool, int, Point) {
	if math.IsInf(d, 1) {
		return false, 0, Point{}
	}
	return d == 0.0 || d < float64(clearance), int(math.Round(d)), q.Round()
}

// CollidePoint returns true if p is closer than clearance to the chain, or on or inside a closed chain. It also returns the actual distance and the nearest point on the chain, which is p itself inside closed chains. Arcs are tested exactly.
func (c *Chain) CollidePoint(p Point, clearance int) (bool, int, Point) {
	if c.PointInside(p, 0) {
		return true, 0, p
	}
	d, q := c.nearestElement(func(e element) (float64, Vec2) {
		q := e.nearest(p.Vec())
		return p.Vec().Sub(q).Length(), q
	})
	return collision(d, q, clearance)
}

// CollideSegment returns true if s is closer than clearance to the chain, see CollidePoint.
func (c *Chain) CollideSegment(s Segment, clearance int) (bool, int, Point) {
	if c.PointInside(s.A, 0) {
		return true, 0, s.A
	}
	f := element{arc: -1, s: s}
	d, q := c.nearestElement(func(e element) (float64, Vec2) {
		d, q, _ := distanceElements(e, f)
		return d, q
	})
	return collision(d, q, clearance)
}

// CollideChain returns true if o is closer than clearance to the chain, see CollidePoint. A chain contained in the other closed chain collides with distance zero.
func (c *Chain) CollideChain(o *Chain, clearance int) (bool, int, Point) {
	if len(o.points) == 0 || len(c.points) == 0 {
		return false, 0, Point{}
	} else if c.PointInside(o.points[0], 0) {
		return true, 0, o.points[0]
	} else if o.PointInside(c.points[0], 0) {
		return true, 0, c.points[0]
	}

	fs := o.singleElements()
	d, q := c.nearestElement(func(e element) (float64, Vec2) {
		best, q := math.Inf(1), Vec2{}
		for _, f := range fs {
			if d, p, _ := distanceElements(e, f); d < best {
				best, q = d, p
			}
		}
		return best, q
	})
	return collision(d, q, clearance)
}

// NearestPoint returns the point on the chain's segments nearest to p. If allowInternalShapePoints is false and the nearest segment is part of an arc, the nearer end point of the arc is returned instead, since points inside an arc cannot be used for editing without splitting the arc.
func (c *Chain) NearestPoint(p Point, allowInternalShapePoints bool) Point {
	n := c.SegmentCount()
	if n == 0 {
		if len(c.points) == 0 {
			panic("nearest point on empty chain")
		}
		return c.points[0]
	}

	nearest, dmin := 0, int64(math.MaxInt64)
	for i := 0; i < n; i++ {
		if d := c.Segment(i).SquaredDistance(p); d < dmin {
			nearest, dmin = i, d
		}
	}
	if a := c.segmentArc(nearest); !allowInternalShapePoints && a != -1 {
		s := c.Segment(nearest)
		if p.Sub(s.A).SquaredLength() <= p.Sub(s.B).SquaredLength() {
			if c.IsArcStart(nearest) || c.IsArcEnd(nearest) {
				return s.A
			}
		} else if c.IsArcStart(nearest+1) || c.IsArcEnd(nearest+1) {
			return s.B
		}
		arc := c.arcs[a]
		if p.Sub(arc.start).SquaredLength() <= p.Sub(arc.end).SquaredLength() {
			return arc.start
		}
		return arc.end
	}
	return c.Segment(nearest).NearestPoint(p)
}

// Bounds returns the bounding box of the chain, including arc extrema.
func (c *Chain) Bounds() orb.Bound {
	if len(c.points) == 0 {
		return orb.Bound{}
	}
	b := orb.Bound{Min: orbPoint(c.points[0]), Max: orbPoint(c.points[0])}
	for _, p := range c.points[1:] {
		b = b.Extend(orbPoint(p))
	}
	for _, arc := range c.arcs {
		b = b.Union(arc.Bounds())
	}
	return b
}

////////////////////////////////////////////////////////////////

// SelfIntersection is an intersection between two shapes of a chain. A and B are the (first) segment indices of the shapes.
type SelfIntersection struct {
	A, B int
	P    Point
}

func (z SelfIntersection) String() string {
	return fmt.Sprintf("SelfIntersection(%d,%d %v)", z.A, z.B, z.P)
}

// SelfIntersecting returns the first intersection between two segments of the chain, treating arcs as their polygonization, or nil if there is none. Consecutive segments may share their common end point.
func (c *Chain) SelfIntersecting() *SelfIntersection {
	es := make([]element, c.SegmentCount())
	for i := range es {
		es[i] = element{index: i, arc: -1, s: c.Segment(i)}
	}
	return c.selfIntersecting(es)
}

// SelfIntersectingWithArcs returns the first intersection between two shapes of the chain, where arcs are tested exactly, or nil if there is none. Consecutive shapes may share their common end point.
func (c *Chain) SelfIntersectingWithArcs() *SelfIntersection {
	return c.selfIntersecting(c.elements())
}

// selfIntersecting groups consecutive shapes in buckets and only tests shapes from buckets with overlapping bounding boxes.
func (c *Chain) selfIntersecting(es []element) *SelfIntersection {
	n := len(es)
	bounds := make([]orb.Bound, (n+selfIntersectionBucket-1)/selfIntersectionBucket)
	for i, e := range es {
		if b := i / selfIntersectionBucket; i%selfIntersectionBucket == 0 {
			bounds[b] = e.bounds()
		} else {
			bounds[b] = bounds[b].Union(e.bounds())
		}
	}

	for bi := range bounds {
		for bj := bi; bj < len(bounds); bj++ {
			if bi != bj && !bounds[bi].Intersects(bounds[bj]) {
				continue
			}
			for i := bi * selfIntersectionBucket; i < min((bi+1)*selfIntersectionBucket, n); i++ {
				j0 := bj * selfIntersectionBucket
				if bi == bj {
					j0 = i + 1
				}
				for j := j0; j < min((bj+1)*selfIntersectionBucket, n); j++ {
					if p, ok := c.intersectsShapes(es, i, j); ok {
						return &SelfIntersection{A: es[i].index, B: es[j].index, P: p}
					}
				}
			}
		}
	}
	return nil
}

// intersectsShapes returns an intersection between shapes i < j, ignoring the shared end point of consecutive shapes.
func (c *Chain) intersectsShapes(es []element, i, j int) (Point, bool) {
	e, f := es[i], es[j]
	zs := intersectionElements(e, f)

	shared := []Point{}
	if j == i+1 {
		shared = append(shared, e.end())
	}
	if c.closed && i == 0 && j == len(es)-1 {
		shared = append(shared, e.start())
	}
	for _, z := range zs {
		isShared := false
		for _, p := range shared {
			if z.Sub(p.Vec()).Length() <= sharedPointTolerance {
				isShared = true
			}
		}
		if !isShared {
			return z.Round(), true
		}
	}

	// consecutive collinear segments that turn back overlap
	if len(shared) == 1 && j == i+1 && !e.isArc() && !f.isArc() {
		d0, d1 := e.s.B.Sub(e.s.A), f.s.B.Sub(f.s.A)
		if d0.PerpDot(d1) == 0 && d0.Dot(d1) < 0 {
			return f.s.B, true
		}
	}
	return Point{}, false
}

// Intersection is an intersection between two chains, where Our and Their are the (first) segment indices of the shapes on both chains.
type Intersection struct {
	Our, Their int
	P          Point
}

// Intersect returns all intersections between the chain and o, where arcs are tested exactly.
func (c *Chain) Intersect(o *Chain) []Intersection {
	zs := []Intersection{}
	fs := o.elements()
	for _, e := range c.elements() {
		eb := e.bounds()
		for _, f := range fs {
			if !eb.Intersects(f.bounds()) {
				continue
			}
			for _, z := range intersectionElements(e, f) {
				zs = append(zs, Intersection{Our: e.index, Their: f.index, P: z.Round()})
			}
		}
	}
	return zs
}

// ClosestPoints returns the nearest points between the chain and o and their distance. It tests all pairs of shapes, see ClosestSegmentsFast for a faster approximation.
func (c *Chain) ClosestPoints(o *Chain) (Point, Point, float64) {
	if len(c.points) == 0 || len(o.points) == 0 {
		panic("closest points of empty chain")
	}

	best, pa, pb := math.Inf(1), Vec2{}, Vec2{}
	fs := o.singleElements()
	for _, e := range c.singleElements() {
		for _, f := range fs {
			if d, p, q := distanceElements(e, f); d < best {
				best, pa, pb = d, p, q
			}
		}
	}
	return pa.Round(), pb.Round(), best
}

type closestBox struct {
	first, last int // segment range
	center      orb.Point
	radius      float64
}

func closestBoxes(c *Chain) []closestBox {
	n := c.SegmentCount()
	per := max(closestMinPointsPerBox, len(c.points)/closestMaxBoxes+1)
	boxes := []closestBox{}
	for first := 0; first < n; first += per {
		last := min(first+per, n)
		b := c.Segment(first).Bounds()
		for i := first + 1; i < last; i++ {
			b = b.Union(c.Segment(i).Bounds())
		}
		center := b.Center()
		radius := math.Hypot(b.Max[0]-center[0], b.Max[1]-center[1])
		boxes = append(boxes, closestBox{first, last, center, radius})
	}
	return boxes
}

// ClosestSegmentsFast returns a pair of close points on the segments of the chain and o. Segments are grouped in boxes of consecutive points and only the box pairs that successively lowered the smallest lower bound on their distance are tested. This bounds the cost for chains with many points, but it is an approximation that may miss the true nearest points, use ClosestPoints for the exact result. It returns false if either chain has no segments.
func (c *Chain) ClosestSegmentsFast(o *Chain) (Point, Point, bool) {
	boxesA, boxesB := closestBoxes(c), closestBoxes(o)
	if len(boxesA) == 0 || len(boxesB) == 0 {
		return Point{}, Point{}, false
	}

	type boxPair struct{ a, b int }
	pairs := []boxPair{}
	lowest := math.Inf(1)
	for ia, ba := range boxesA {
		for ib, bb := range boxesB {
			dc := math.Hypot(ba.center[0]-bb.center[0], ba.center[1]-bb.center[1])
			if d := dc - ba.radius - bb.radius; d < lowest {
				lowest = d
				pairs = append(pairs, boxPair{ia, ib})
			}
		}
	}

	best, pa, pb := math.Inf(1), Vec2{}, Vec2{}
	for _, pair := range pairs {
		ba, bb := boxesA[pair.a], boxesB[pair.b]
		for i := ba.first; i < ba.last; i++ {
			e := element{index: i, arc: -1, s: c.Segment(i)}
			for j := bb.first; j < bb.last; j++ {
				f := element{index: j, arc: -1, s: o.Segment(j)}
				if d, p, q := distanceElements(e, f); d < best {
					best, pa, pb = d, p, q
				}
			}
		}
	}
	return pa.Round(), pb.Round(), true
}
