package linechain

import (
	"fmt"
	"math"
	"slices"

	"golang.org/x/image/math/f64"
)

// arcVertices returns the polygonization of arc as vertices on arc index zero.
func arcVertices(arc Arc, maxError int) []vertex {
	seg := 0
	if arc.IsStraight() {
		seg = -1
	}
	pts := arc.Polyline(maxError)
	vs := make([]vertex, len(pts))
	for i, p := range pts {
		vs[i] = vertex{p, seg}
	}
	vs[len(vs)-1].seg = -1
	return vs
}

// chainVertices returns the vertices of an open or closed chain as an open sequence, repeating the first point at the end for closed chains.
func chainVertices(c *Chain) []vertex {
	vs := c.vertices()
	if c.closed && 1 < len(vs) {
		vs = append(vs, vertex{vs[0].p, -1})
	}
	return vs
}

// insertVertices inserts the open sequence q before point i, with the seg fields of q indexing into qarcs. Points of q that coincide with the neighbouring points are merged. When q is inserted inside an arc run, the arc is split first so that both sides keep their curvature.
func (c *Chain) insertVertices(i int, q []vertex, qarcs []Arc) {
	n := len(c.points)
	if i < 0 || n < i {
		panic(fmt.Sprintf("insert index %d out of range for chain with %d points", i, n))
	} else if len(q) == 0 {
		return
	}

	vs := c.vertices()
	arcs := slices.Concat(c.arcs, qarcs)
	q = slices.Clone(q)
	for k := range q {
		if q[k].seg != -1 {
			q[k].seg += len(c.arcs)
		}
	}
	q[len(q)-1].seg = -1

	prev, next := i-1, i
	if c.closed && 0 < n {
		prev = (i - 1 + n) % n
		next = i % n
	}
	hasPrev, hasNext := 0 <= prev, next < n

	connector := -1
	mergePrev := hasPrev && q[0].p == vs[prev].p
	if mergePrev {
		connector = q[0].seg
		q = q[1:]
	}
	mergeNext := hasNext && 0 < len(q) && q[len(q)-1].p == vs[next].p
	if mergeNext {
		q = q[:len(q)-1]
	}
	if len(q) == 0 && !(mergePrev && mergeNext) {
		return
	}

	if hasPrev && hasNext {
		if a := vs[prev].seg; a != -1 {
			// the part of the run after the insertion continues as a copy of the arc
			arcs = append(arcs, arcs[a])
			b := len(arcs) - 1
			for j := next; j != prev && vs[j].seg == a; j = (j + 1) % n {
				vs[j].seg = b
			}
		}
	}
	if hasPrev {
		vs[prev].seg = connector
	}
	c.setVertices(slices.Concat(vs[:i], q, vs[i:]), arcs)
}

// Append appends a point at the end. A point equal to the last point is not added, and for closed chains neither is a point equal to the first point.
func (c *Chain) Append(p Point) {
	c.insertVertices(len(c.points), []vertex{{p, -1}}, nil)
}

// AppendArc appends the arc polygonized with maxError. If the arc's start equals the last point, the point becomes the start of the arc.
func (c *Chain) AppendArc(arc Arc, maxError int) {
	c.insertVertices(len(c.points), arcVertices(arc, maxError), []Arc{arc})
}

// AppendChain appends the points and arcs of o. If the first point of o equals the last point, both points are merged. A closed chain o is appended including its closing segment.
func (c *Chain) AppendChain(o *Chain) {
	c.insertVertices(len(c.points), chainVertices(o), o.arcs)
}

// Insert inserts point p before point i, ie. p becomes point i. Inserting inside an arc run splits the arc, the new point connects by straight segments.
func (c *Chain) Insert(i int, p Point) {
	c.insertVertices(i, []vertex{{p, -1}}, nil)
}

// InsertArc inserts the arc polygonized with maxError before point i.
func (c *Chain) InsertArc(i int, arc Arc, maxError int) {
	c.insertVertices(i, arcVertices(arc, maxError), []Arc{arc})
}

// SplitArc splits the arc running through point i into two arcs with the same circle and rotation sense. If coincident is true, point i becomes a seam between both arcs, otherwise the segment from point i to i+1 becomes straight. It does nothing if point i is not inside an arc run.
func (c *Chain) SplitArc(i int, coincident bool) {
	i = c.index(i)
	vs := c.vertices()
	nsegs := c.SegmentCount()
	in, out := -1, -1
	if 0 < i {
		in = vs[i-1].seg
	} else if c.closed && 0 < nsegs {
		in = vs[nsegs-1].seg
	}
	if i < nsegs {
		out = vs[i].seg
	}
	if in == -1 || in != out {
		return
	}

	arcs := append(slices.Clone(c.arcs), c.arcs[in])
	b := len(arcs) - 1
	for j := i; j < nsegs && vs[j].seg == in; j++ {
		vs[j].seg = b
	}
	if !coincident {
		vs[i].seg = -1
	}
	c.setVertices(vs, arcs)
}

// Remove removes the points start through end inclusive. Arcs are first split at both indices, so that arcs outside the range keep their curvature and arcs inside the range are removed. The neighbours of the removed range are joined by a straight segment. It does nothing if end < start.
func (c *Chain) Remove(start, end int) {
	start, end = c.index(start), c.index(end)
	if end < start {
		return
	}
	c.SplitArc(start, true)
	c.SplitArc(end, true)

	n := len(c.points)
	if start == 0 && end == n-1 {
		c.Clear()
		return
	}
	vs := c.vertices()
	if 0 < start {
		vs[start-1].seg = -1
	} else if c.closed {
		vs[n-1].seg = -1
	}
	c.setVertices(slices.Concat(vs[:start], vs[end+1:]), slices.Clone(c.arcs))
}

// RemoveAt removes point i.
func (c *Chain) RemoveAt(i int) {
	c.Remove(i, i)
}

// Replace replaces the points start through end inclusive by point p.
func (c *Chain) Replace(start, end int, p Point) {
	start, end = c.index(start), c.index(end)
	if end < start {
		return
	}
	c.Remove(start, end)
	c.Insert(min(start, len(c.points)), p)
}

// ReplaceChain replaces the points start through end inclusive by the points and arcs of o. End points of o that coincide with the neighbouring points are merged.
func (c *Chain) ReplaceChain(start, end int, o *Chain) {
	start, end = c.index(start), c.index(end)
	if end < start {
		return
	}
	vs, arcs := chainVertices(o), slices.Clone(o.arcs)
	c.Remove(start, end)
	c.insertVertices(min(start, len(c.points)), vs, arcs)
}

// Slice returns an open chain of the points start through end inclusive. For closed chains end may be smaller than start, in which case the slice wraps around. Arcs that are cut by the slice boundaries are rebuilt from their circle and polygonized with maxError.
func (c *Chain) Slice(start, end, maxError int) *Chain {
	start, end = c.index(start), c.index(end)
	if end < start && !c.closed {
		panic(fmt.Sprintf("invalid slice [%d,%d] of open chain", start, end))
	}

	n := len(c.points)
	vs := c.vertices()
	var sub []vertex
	if start <= end {
		sub = slices.Clone(vs[start : end+1])
	} else {
		sub = slices.Concat(vs[start:], vs[:end+1])
	}
	sub[len(sub)-1].seg = -1
	arcs := slices.Clone(c.arcs)

	s := &Chain{width: c.width}
	if len(sub) < 2 {
		s.setVertices(sub, nil)
		return s
	}

	in := -1
	if 0 < start {
		in = vs[start-1].seg
	} else if c.closed {
		in = vs[n-1].seg
	}
	whole := false
	if a := sub[0].seg; a != -1 && in == a {
		u := 1
		for u < len(sub)-1 && sub[u].seg == a {
			u++
		}
		whole = u == len(sub)-1
		sub = repolygonize(sub, 0, u, arcs, a, maxError)
	}

	last := len(sub) - 1
	if b := sub[last-1].seg; !whole && b != -1 && vs[end].seg == b {
		w := last - 1
		for 0 < w && sub[w-1].seg == b {
			w--
		}
		sub = repolygonize(sub, w, last, arcs, b, maxError)
	}
	s.setVertices(sub, arcs)
	return s
}

// repolygonize replaces vertices from through to of the run of arc a by the polygonization of the arc amended to their end points.
func repolygonize(vs []vertex, from, to int, arcs []Arc, a int, maxError int) []vertex {
	arcs[a] = arcs[a].Amend(vs[from].p, vs[to].p)
	if arcs[a].IsStraight() {
		return vs
	}
	q := arcVertices(arcs[a], maxError)
	q = q[:len(q)-1]
	for k := range q {
		q[k].seg = a
	}
	return slices.Concat(vs[:from], q, vs[to:])
}

// Reverse reverses the direction of the chain and its arcs. For closed chains the first point stays in place.
func (c *Chain) Reverse() {
	n := len(c.points)
	if n < 2 {
		return
	}

	vs := c.vertices()
	rs := make([]vertex, n)
	for i := range rs {
		if c.closed {
			j := (n - i) % n
			rs[i] = vertex{vs[j].p, vs[(j-1+n)%n].seg}
		} else {
			rs[i] = vertex{vs[n-1-i].p, -1}
			if i < n-1 {
				rs[i].seg = vs[n-2-i].seg
			}
		}
	}
	arcs := make([]Arc, len(c.arcs))
	for i, arc := range c.arcs {
		arcs[i] = arc.Reversed()
	}
	c.setVertices(rs, arcs)
}

// RemoveDuplicatePoints merges consecutive points that are equal. A point that ends one arc and an equal point that starts another arc become a seam between both arcs.
func (c *Chain) RemoveDuplicatePoints() {
	vs := c.vertices()
	if len(vs) < 2 {
		return
	}

	out := make([]vertex, 0, len(vs))
	out = append(out, vs[0])
	for _, v := range vs[1:] {
		if last := &out[len(out)-1]; last.p == v.p {
			last.seg = v.seg
			continue
		}
		out = append(out, v)
	}
	c.setVertices(out, slices.Clone(c.arcs))
}

// Simplify removes duplicate points and then removes points between two straight segments that lie within tolerance of the segment joining their neighbours, until no more points can be removed. Points on arcs and the end points of open chains are kept, and closed chains keep at least three points.
func (c *Chain) Simplify(tolerance int) {
	c.RemoveDuplicatePoints()
	for c.simplifyPass(tolerance) {
	}
}

func (c *Chain) simplifyPass(tolerance int) bool {
	vs := c.vertices()
	n := len(vs)
	if n < 3 {
		return false
	}

	tol2 := int64(max(tolerance, 0)) * int64(max(tolerance, 0))
	removed := false
	out := make([]vertex, 0, n)
	for i, v := range vs {
		if !c.closed && (i == 0 || i == n-1) {
			out = append(out, v)
			continue
		}

		prev := vs[n-1]
		if 0 < len(out) {
			prev = out[len(out)-1]
		}
		next := vs[(i+1)%n].p
		if i == n-1 && 0 < len(out) {
			next = out[0].p
		}
		chord := Segment{prev.p, next}
		if prev.seg == -1 && v.seg == -1 && prev.p != next && (!c.closed || 3 <= len(out)+n-i-1) && chord.SquaredDistance(v.p) <= tol2 {
			removed = true
			continue
		}
		out = append(out, v)
	}
	if removed {
		c.setVertices(out, slices.Clone(c.arcs))
	}
	return removed
}

// RemoveArc removes arc i from the catalog. Its points remain as straight segments and arcs with a higher index are renumbered.
func (c *Chain) RemoveArc(i int) {
	if i < 0 || len(c.arcs) <= i {
		panic(fmt.Sprintf("arc index %d out of range for chain with %d arcs", i, len(c.arcs)))
	}
	vs := c.vertices()
	for k := range vs {
		if vs[k].seg == i {
			vs[k].seg = -1
		}
	}
	c.setVertices(vs, slices.Clone(c.arcs))
}

// SetPoint moves point i to p. Arcs that pass through or end at the point become straight segments.
func (c *Chain) SetPoint(i int, p Point) {
	i = c.index(i)
	vs := c.vertices()
	in, out := -1, vs[i].seg
	if 0 < i {
		in = vs[i-1].seg
	} else if c.closed {
		in = vs[len(vs)-1].seg
	}
	for k := range vs {
		if a := vs[k].seg; a != -1 && (a == in || a == out) {
			vs[k].seg = -1
		}
	}
	vs[i].p = p
	c.setVertices(vs, slices.Clone(c.arcs))
}

// SetClosed opens or closes the chain. Closing adds a straight closing segment unless the last point equals the first, in which case the last point is dropped. Opening keeps the closing segment by repeating the first point at the end.
func (c *Chain) SetClosed(closed bool) {
	if c.closed == closed {
		return
	}
	vs := c.vertices()
	if closed && 0 < len(vs) {
		vs[len(vs)-1].seg = -1
	} else if !closed && 1 < len(vs) {
		vs = append(vs, vertex{vs[0].p, -1})
	}
	c.closed = closed
	c.setVertices(vs, slices.Clone(c.arcs))
}

// Transform transforms the chain by the affine matrix m, which must be a similarity transformation. Arcs are transformed exactly and keep their association with the points.
func (c *Chain) Transform(m f64.Aff3) {
	vs := c.vertices()
	for k := range vs {
		vs[k].p = transformPoint(m, vs[k].p.Vec()).Round()
	}
	arcs := make([]Arc, len(c.arcs))
	for i, arc := range c.arcs {
		arcs[i] = arc.Transform(m)
	}
	c.setVertices(vs, arcs)
}

// Move translates the chain by v.
func (c *Chain) Move(v Point) {
	c.Transform(f64.Aff3{1.0, 0.0, float64(v.X), 0.0, 1.0, float64(v.Y)})
}

// Rotate rotates the chain by angle degrees CCW around center.
func (c *Chain) Rotate(angle float64, center Point) {
	sintheta, costheta := math.Sincos(angle * math.Pi / 180.0)
	cx, cy := float64(center.X), float64(center.Y)
	c.Transform(f64.Aff3{
		costheta, -sintheta, cx - costheta*cx + sintheta*cy,
		sintheta, costheta, cy - sintheta*cx - costheta*cy,
	})
}

// Mirror mirrors the chain around the vertical line through ref if x is true, and around the horizontal line through ref if y is true.
func (c *Chain) Mirror(x, y bool, ref Point) {
	m := f64.Aff3{1.0, 0.0, 0.0, 0.0, 1.0, 0.0}
	if x {
		m[0], m[2] = -1.0, 2.0*float64(ref.X)
	}
	if y {
		m[4], m[5] = -1.0, 2.0*float64(ref.Y)
	}
	c.Transform(m)
}
