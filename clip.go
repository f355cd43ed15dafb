package linechain

import (
	"errors"
	"fmt"

	clipper "github.com/ctessum/go.clipper"
)

// ErrClipFailed is returned when the clip engine could not complete an operation.
var ErrClipFailed = errors.New("clip engine failed")

// ClipBatch converts chains to and from the paths of the clip engine, which only has straight edges. Since paths carry only coordinates, the batch keeps the arcs of all exported chains in a shared buffer and the shape tag of each exported coordinate, with arc indices into the shared buffer. Importing the clip engine's output recovers the arcs from the tags of its vertices. Chains that are clipped together must be exported through the same batch.
type ClipBatch struct {
	arcs []Arc
	tags map[Point]Shape
}

// NewClipBatch returns an empty batch.
func NewClipBatch() *ClipBatch {
	return &ClipBatch{
		tags: map[Point]Shape{},
	}
}

// Arcs returns the arcs of all exported chains.
func (b *ClipBatch) Arcs() []Arc {
	return b.arcs
}

// Tag returns the shape tag of the coordinate, with arc indices into the batch's arcs. Coordinates that were exported with conflicting tags are plain.
func (b *ClipBatch) Tag(p Point) Shape {
	if tag := b.tags[p]; tag.Kind != conflictPoint {
		return tag
	}
	return Shape{}
}

// Export returns the path of the chain's points. If the sign of the chain's area does not match orientation (true for a positive area), the path is reversed. The chain's arcs are added to the batch.
func (b *ClipBatch) Export(c *Chain, orientation bool) clipper.Path {
	if area := c.Area(false); area != 0.0 && (0.0 < area) != orientation {
		c = c.Clone()
		c.Reverse()
	}

	offset := len(b.arcs)
	b.arcs = append(b.arcs, c.arcs...)
	path := make(clipper.Path, len(c.points))
	for i, p := range c.points {
		path[i] = &clipper.IntPoint{X: clipper.CInt(p.X), Y: clipper.CInt(p.Y)}

		tag := c.shapes[i]
		if !tag.IsPlain() {
			tag.Arc += offset
			if tag.Kind == SeamPoint {
				tag.Next += offset
			}
		}
		if old, ok := b.tags[p]; ok && old != tag {
			tag = Shape{Kind: conflictPoint}
		}
		b.tags[p] = tag
	}
	return path
}

// ExportAll exports all chains, see Export.
func (b *ClipBatch) ExportAll(cs []*Chain, orientation bool) clipper.Paths {
	paths := make(clipper.Paths, 0, len(cs))
	for _, c := range cs {
		paths = append(paths, b.Export(c, orientation))
	}
	return paths
}

// commonArc returns the arc shared by both tags, or -1.
func commonArc(s, t Shape) int {
	if a := s.first(); t.has(a) {
		return a
	} else if a := s.second(); t.has(a) {
		return a
	}
	return -1
}

// Import returns the closed chain of a path from the clip engine. Consecutive vertices whose tags share an arc become segments of that arc, arcs traversed backwards are reversed and arcs are amended to the part that remains. Arcs whose vertices no longer form a single run, for example because the clip engine dropped or reordered vertices, are converted to straight segments.
func (b *ClipBatch) Import(path clipper.Path) *Chain {
	pts := make([]Point, 0, len(path))
	for _, ip := range path {
		p := Point{int(ip.X), int(ip.Y)}
		if len(pts) == 0 || pts[len(pts)-1] != p {
			pts = append(pts, p)
		}
	}
	if 1 < len(pts) && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}

	n := len(pts)
	vs := make([]vertex, n)
	arcs := []Arc{}
	global := []int{}
	local := map[int]int{}
	for i, p := range pts {
		vs[i] = vertex{p, -1}
		if n < 3 {
			continue
		}
		g := commonArc(b.Tag(p), b.Tag(pts[(i+1)%n]))
		if g == -1 {
			continue
		}
		a, ok := local[g]
		if !ok {
			a = len(arcs)
			local[g] = a
			arcs = append(arcs, b.arcs[g])
			global = append(global, g)
		}
		vs[i].seg = a
	}

	counts := make([]int, len(arcs))
	for _, v := range vs {
		if v.seg != -1 {
			counts[v.seg]++
		}
	}

	// the chord between the end points of an arc is straight, unless it is the arc's only segment
	for i, v := range vs {
		if a := v.seg; a != -1 && 1 < counts[a] {
			p, q := v.p, vs[(i+1)%n].p
			if arc := arcs[a]; p == arc.start && q == arc.end || p == arc.end && q == arc.start {
				vs[i].seg = -1
				counts[a]--
			}
		}
	}

	// arcs must form one run and are reversed when traversed backwards
	starts := make([]int, len(arcs))
	first := make([]int, len(arcs))
	for i, v := range vs {
		if a := v.seg; a != -1 && vs[(i-1+n)%n].seg != a {
			starts[a]++
			first[a] = i
		}
	}
	for a, arc := range arcs {
		if counts[a] == 0 {
			continue
		} else if starts[a] != 1 {
			Logger().Debug("arc converted to straight segments", "arc", global[a], "runs", starts[a], "segments", counts[a])
			for i := range vs {
				if vs[i].seg == a {
					vs[i].seg = -1
				}
			}
			continue
		}
		i := first[a]
		p, q := vs[i].p.Vec().Sub(arc.center), vs[(i+1)%n].p.Vec().Sub(arc.center)
		if ccw := 0.0 < p.PerpDot(q); ccw != arc.CCW() {
			arcs[a] = arc.Reversed()
		}
	}

	c := &Chain{closed: true}
	c.setVertices(vs, arcs)
	return c
}

// ImportAll imports all paths with at least three vertices, see Import.
func (b *ClipBatch) ImportAll(paths clipper.Paths) []*Chain {
	cs := make([]*Chain, 0, len(paths))
	for _, path := range paths {
		if c := b.Import(path); 3 <= c.PointCount() {
			cs = append(cs, c)
		}
	}
	return cs
}

////////////////////////////////////////////////////////////////

// ClipOp is a boolean operation between chains.
type ClipOp int

// see ClipOp
const (
	OpAnd ClipOp = iota // intersection
	OpOr                // union
	OpNot               // difference
	OpXor               // symmetric difference
)

func (op ClipOp) String() string {
	switch op {
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpNot:
		return "not"
	case OpXor:
		return "xor"
	}
	return fmt.Sprintf("ClipOp(%d)", int(op))
}

func (op ClipOp) clipType() clipper.ClipType {
	switch op {
	case OpAnd:
		return clipper.CtIntersection
	case OpOr:
		return clipper.CtUnion
	case OpNot:
		return clipper.CtDifference
	case OpXor:
		return clipper.CtXor
	}
	panic(fmt.Sprintf("invalid clip operation %d", int(op)))
}

// Boolean applies the boolean operation to the closed subject and clip chains using the non-zero fill rule. Arcs of the input chains are recovered in the result where the clip engine kept their vertices. The subject and clip chains are not modified.
func Boolean(op ClipOp, subjects, clips []*Chain) ([]*Chain, error) {
	for _, c := range subjects {
		if !c.closed {
			return nil, fmt.Errorf("boolean %v: open chain", op)
		}
	}
	for _, c := range clips {
		if !c.closed {
			return nil, fmt.Errorf("boolean %v: open chain", op)
		}
	}

	b := NewClipBatch()
	cl := clipper.NewClipper(clipper.IoNone)
	cl.AddPaths(b.ExportAll(subjects, true), clipper.PtSubject, true)
	cl.AddPaths(b.ExportAll(clips, true), clipper.PtClip, true)
	solution, ok := cl.Execute1(op.clipType(), clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return nil, ErrClipFailed
	}
	return b.ImportAll(solution), nil
}

// And returns the intersection of the subject and clip chains.
func And(subjects, clips []*Chain) ([]*Chain, error) {
	return Boolean(OpAnd, subjects, clips)
}

// Or returns the union of the subject and clip chains.
func Or(subjects, clips []*Chain) ([]*Chain, error) {
	return Boolean(OpOr, subjects, clips)
}

// Not returns the subject chains minus the clip chains.
func Not(subjects, clips []*Chain) ([]*Chain, error) {
	return Boolean(OpNot, subjects, clips)
}

// Xor returns the area covered by either the subject or the clip chains but not both.
func Xor(subjects, clips []*Chain) ([]*Chain, error) {
	return Boolean(OpXor, subjects, clips)
}

// Offset grows closed chains by delta (or shrinks them for negative delta) using round joins approximated within maxError (DefaultMaxError if maxError <= 0). The new vertices are straight segments.
func Offset(cs []*Chain, delta float64, maxError int) []*Chain {
	if maxError <= 0 {
		maxError = DefaultMaxError
	}
	b := NewClipBatch()
	co := clipper.NewClipperOffset()
	co.ArcTolerance = float64(maxError)
	for _, c := range cs {
		if c.closed {
			co.AddPath(b.Export(c, true), clipper.JtRound, clipper.EtClosedPolygon)
		}
	}
	return b.ImportAll(co.Execute(delta))
}
