package linechain

import (
	"fmt"
	"slices"
)

// ShapeKind is the kind of shape a chain point belongs to.
type ShapeKind uint8

// see ShapeKind
const (
	PlainPoint    ShapeKind = iota // not part of an arc
	ArcPoint                       // part of a single arc
	SeamPoint                      // end of one arc and start of the next
	conflictPoint                  // coordinate claimed by different tags in a clip batch
)

// Shape tags a chain point with the arc(s) it belongs to. For an ArcPoint, Arc is the arc index. For a SeamPoint, Arc is the arc ending and Next the arc starting at the point. Fields not used by the kind are zero.
type Shape struct {
	Kind ShapeKind
	Arc  int
	Next int
}

func makeShape(in, out int) Shape {
	if in == -1 && out == -1 {
		return Shape{}
	} else if in == -1 {
		return Shape{Kind: ArcPoint, Arc: out}
	} else if out == -1 || in == out {
		return Shape{Kind: ArcPoint, Arc: in}
	}
	return Shape{Kind: SeamPoint, Arc: in, Next: out}
}

// IsPlain returns true if the point is not part of any arc.
func (s Shape) IsPlain() bool {
	return s.Kind != ArcPoint && s.Kind != SeamPoint
}

// first returns the arc the point belongs to, which is the ending arc for seams, or -1 for plain points.
func (s Shape) first() int {
	if s.IsPlain() {
		return -1
	}
	return s.Arc
}

// second returns the arc starting at a seam, or otherwise the single arc of the point or -1.
func (s Shape) second() int {
	if s.Kind == SeamPoint {
		return s.Next
	}
	return s.first()
}

func (s Shape) has(a int) bool {
	return a != -1 && (s.first() == a || s.second() == a)
}

func (s Shape) String() string {
	switch s.Kind {
	case ArcPoint:
		return fmt.Sprintf("Arc(%d)", s.Arc)
	case SeamPoint:
		return fmt.Sprintf("Seam(%d,%d)", s.Arc, s.Next)
	}
	return "Plain"
}

////////////////////////////////////////////////////////////////

// Chain is a polyline of integer points that may be open or closed, where runs of consecutive points can follow true circular arcs. The points of an arc are its polygonization, while the arc descriptors in the chain's catalog keep the exact geometry. Each point has a shape tag that records which arc(s) it belongs to. A segment between two consecutive points is an arc segment when the arc leaving the first point is the arc entering the second point.
//
// Points sharing an arc form one contiguous run, and for closed chains point zero is never in the interior of an arc run. A closed chain never stores its first point again as its last point. All arcs in the catalog are used by at least one segment and their start and end points equal the first and last points of their run.
//
// The zero value is an empty open chain.
type Chain struct {
	points []Point
	shapes []Shape
	arcs   []Arc
	closed bool
	width  int
}

// New returns an open chain through the given points.
func New(points ...Point) *Chain {
	c := &Chain{}
	c.points = slices.Clone(points)
	c.shapes = make([]Shape, len(points))
	return c
}

// NewClosed returns a closed chain through the given points. A last point equal to the first is dropped.
func NewClosed(points ...Point) *Chain {
	c := &Chain{closed: true}
	vs := make([]vertex, len(points))
	for i, p := range points {
		vs[i] = vertex{p, -1}
	}
	c.setVertices(vs, nil)
	return c
}

// FromArc returns an open chain of the arc polygonized with maxError.
func FromArc(arc Arc, maxError int) *Chain {
	c := &Chain{}
	c.AppendArc(arc, maxError)
	return c
}

// Clone returns a deep copy.
func (c *Chain) Clone() *Chain {
	return &Chain{
		points: slices.Clone(c.points),
		shapes: slices.Clone(c.shapes),
		arcs:   slices.Clone(c.arcs),
		closed: c.closed,
		width:  c.width,
	}
}

// Clear removes all points and arcs, but keeps the closed flag and width.
func (c *Chain) Clear() {
	c.points = c.points[:0]
	c.shapes = c.shapes[:0]
	c.arcs = c.arcs[:0]
}

// Equals returns true if both chains have exactly the same points, shapes, arcs, closed flag and width.
func (c *Chain) Equals(o *Chain) bool {
	return slices.Equal(c.points, o.points) && slices.Equal(c.shapes, o.shapes) && slices.Equal(c.arcs, o.arcs) && c.closed == o.closed && c.width == o.width
}

// Empty returns true if the chain has no points.
func (c *Chain) Empty() bool {
	return len(c.points) == 0
}

// Closed returns true for closed chains.
func (c *Chain) Closed() bool {
	return c.closed
}

// Width returns the chain's stroke width.
func (c *Chain) Width() int {
	return c.width
}

// SetWidth sets the chain's stroke width.
func (c *Chain) SetWidth(width int) {
	c.width = width
}

// PointCount returns the number of points.
func (c *Chain) PointCount() int {
	return len(c.points)
}

// SegmentCount returns the number of segments, including the closing segment of closed chains.
func (c *Chain) SegmentCount() int {
	n := len(c.points)
	if n < 2 {
		return 0
	} else if c.closed {
		return n
	}
	return n - 1
}

// ShapeCount returns the number of segments where all segments of an arc count as one.
func (c *Chain) ShapeCount() int {
	n := c.SegmentCount()
	count := n
	for i := 1; i < n; i++ {
		if a := c.segmentArc(i); a != -1 && a == c.segmentArc(i-1) {
			count--
		}
	}
	return count
}

// ArcCount returns the number of arcs.
func (c *Chain) ArcCount() int {
	return len(c.arcs)
}

// index resolves a point index. Closed chains wrap any index, open chains accept negative indices counted from the end.
func (c *Chain) index(i int) int {
	n := len(c.points)
	if c.closed && 0 < n {
		if i %= n; i < 0 {
			i += n
		}
		return i
	}
	j := i
	if j < 0 {
		j += n
	}
	if j < 0 || n <= j {
		panic(fmt.Sprintf("point index %d out of range for chain with %d points", i, n))
	}
	return j
}

// PointAt returns the point at index i.
func (c *Chain) PointAt(i int) Point {
	return c.points[c.index(i)]
}

// ShapeAt returns the shape tag of the point at index i.
func (c *Chain) ShapeAt(i int) Shape {
	return c.shapes[c.index(i)]
}

// Points returns a copy of the points.
func (c *Chain) Points() []Point {
	return slices.Clone(c.points)
}

// Arcs returns a copy of the arc catalog.
func (c *Chain) Arcs() []Arc {
	return slices.Clone(c.arcs)
}

// ArcAt returns the arc with index i.
func (c *Chain) ArcAt(i int) Arc {
	return c.arcs[i]
}

// Segment returns the segment from point i to point i+1.
func (c *Chain) Segment(i int) Segment {
	n := c.SegmentCount()
	if i < 0 {
		i += n
	}
	if i < 0 || n <= i {
		panic(fmt.Sprintf("segment index %d out of range for chain with %d segments", i, n))
	}
	return Segment{c.points[i], c.points[(i+1)%len(c.points)]}
}

// IsSharedPoint returns true if point i is a seam between two arcs.
func (c *Chain) IsSharedPoint(i int) bool {
	return c.ShapeAt(i).Kind == SeamPoint
}

// IsPointOnArc returns true if point i is part of an arc.
func (c *Chain) IsPointOnArc(i int) bool {
	return !c.ShapeAt(i).IsPlain()
}

// ArcIndexAt returns the arc that point i belongs to, which is the arc starting at the point for seams, or -1 for plain points.
func (c *Chain) ArcIndexAt(i int) int {
	return c.ShapeAt(i).second()
}

// segmentArc returns the arc of segment i, or -1 if the segment is straight. A segment from the end of an arc back to its start is the straight chord that closes a chain with a single arc.
func (c *Chain) segmentArc(i int) int {
	j := (i + 1) % len(c.shapes)
	a := c.shapes[i].second()
	if a == -1 || c.shapes[j].first() != a {
		return -1
	} else if c.points[i] == c.arcs[a].end && c.points[j] == c.arcs[a].start {
		return -1
	}
	return a
}

// IsArcSegment returns true if segment i is part of an arc.
func (c *Chain) IsArcSegment(i int) bool {
	n := c.SegmentCount()
	if i < 0 {
		i += n
	}
	if i < 0 || n <= i {
		panic(fmt.Sprintf("segment index %d out of range for chain with %d segments", i, n))
	}
	return c.segmentArc(i) != -1
}

// IsArcStart returns true if an arc starts at point i.
func (c *Chain) IsArcStart(i int) bool {
	i = c.index(i)
	a := c.shapes[i].second()
	return a != -1 && i < c.SegmentCount() && c.segmentArc(i) == a && c.inArc(i) != a
}

// IsArcEnd returns true if an arc ends at point i.
func (c *Chain) IsArcEnd(i int) bool {
	i = c.index(i)
	a := c.shapes[i].first()
	return a != -1 && c.inArc(i) == a && (c.SegmentCount() <= i || c.segmentArc(i) != a)
}

// inArc returns the arc of the segment ending at point i, or -1.
func (c *Chain) inArc(i int) int {
	if 0 < i {
		return c.segmentArc(i - 1)
	} else if n := c.SegmentCount(); c.closed && 0 < n {
		return c.segmentArc(n - 1)
	}
	return -1
}

// segmentArcs returns the arc for each segment, -1 for straight segments.
func (c *Chain) segmentArcs() []int {
	segs := make([]int, c.SegmentCount())
	for i := range segs {
		segs[i] = c.segmentArc(i)
	}
	return segs
}

// elements returns the straight segments and whole arcs in order.
func (c *Chain) elements() []element {
	segs := c.segmentArcs()
	es := make([]element, 0, len(segs))
	for i, a := range segs {
		if a == -1 {
			es = append(es, element{index: i, arc: -1, s: c.Segment(i)})
		} else if i == 0 || segs[i-1] != a {
			arc := c.arcs[a]
			es = append(es, element{index: i, arc: a, s: Segment{arc.start, arc.end}, a: arc})
		}
	}
	return es
}

////////////////////////////////////////////////////////////////

// vertex is a chain point with the arc of its outgoing segment, the editing form of a chain.
type vertex struct {
	p   Point
	seg int
}

func (c *Chain) vertices() []vertex {
	segs := c.segmentArcs()
	vs := make([]vertex, len(c.points))
	for i, p := range c.points {
		vs[i] = vertex{p, -1}
		if i < len(segs) {
			vs[i].seg = segs[i]
		}
	}
	return vs
}

// setVertices replaces the chain's content by the vertices, whose seg fields index into arcs. It takes ownership of both slices and restores all chain invariants: a duplicate closing point is dropped, arcs that do not form a single contiguous run become straight, closed chains are rotated so that point zero is not inside an arc run, arcs are amended to the end points of their run, and unused arcs are removed from the catalog with the remaining references renumbered.
func (c *Chain) setVertices(vs []vertex, arcs []Arc) {
	n := len(vs)
	if c.closed && 1 < n && vs[n-1].p == vs[0].p {
		vs = vs[:n-1]
		n--
	}

	nsegs := 0
	if 2 < n || !c.closed && n == 2 {
		nsegs = n
		if !c.closed {
			nsegs--
		}
	}
	for i := nsegs; i < n; i++ {
		vs[i].seg = -1
	}
	prev := func(i int) int {
		if 0 < i {
			return vs[i-1].seg
		} else if c.closed && 0 < nsegs {
			return vs[nsegs-1].seg
		}
		return -1
	}

	// arcs must cover a single run of segments
	counts := make([]int, len(arcs))
	starts := make([]int, len(arcs))
	for i := 0; i < nsegs; i++ {
		if a := vs[i].seg; a != -1 {
			counts[a]++
			if prev(i) != a {
				starts[a]++
			}
		}
	}
	for i := 0; i < nsegs; i++ {
		if a := vs[i].seg; a != -1 && starts[a] != 1 {
			vs[i].seg = -1
		}
	}

	// point zero of closed chains must be a run boundary
	if c.closed && 0 < nsegs {
		if a := vs[0].seg; a != -1 && vs[nsegs-1].seg == a {
			r := nsegs - 1
			for vs[r-1].seg == a {
				r--
			}
			vs = slices.Concat(vs[r:], vs[:r])
		}
	}

	// amend arcs to their runs
	used := make([]bool, len(arcs))
	for i := 0; i < nsegs; i++ {
		a := vs[i].seg
		if a == -1 || prev(i) == a {
			continue
		}
		j := i + counts[a]
		start, end := vs[i].p, vs[j%n].p
		if arc := arcs[a]; arc.start != start || arc.end != end {
			arcs[a] = arc.Amend(start, end)
		}
		if arcs[a].IsStraight() {
			for k := i; k < j; k++ {
				vs[k].seg = -1
			}
		} else {
			used[a] = true
		}
	}

	// remove unused arcs and renumber
	index := make([]int, len(arcs))
	c.arcs = make([]Arc, 0, len(arcs))
	for a, arc := range arcs {
		index[a] = -1
		if used[a] {
			index[a] = len(c.arcs)
			c.arcs = append(c.arcs, arc)
		}
	}

	c.points = make([]Point, n)
	c.shapes = make([]Shape, n)
	for i, v := range vs {
		in, out := -1, -1
		if a := prev(i); a != -1 {
			in = index[a]
		}
		if v.seg != -1 {
			out = index[v.seg]
		}
		c.points[i] = v.p
		c.shapes[i] = makeShape(in, out)
	}
}
