package linechain

import (
	"testing"

	"github.com/tdewolff/test"
)

// halfDisc is the upper half of a circle with radius 1000, closed by its diameter.
const halfDisc = `chain closed 0
p 1000 0 a 0
p 707 707 a 0
p 0 1000 a 0
p -707 707 a 0
p -1000 0 a 0
arc 1000 0 -1000 0 0 0 1000 ccw
`

func quarterArc() Arc {
	return ArcFromStartEndCenter(Point{10, 0}, Point{0, 10}, Point{0, 0}, true)
}

func TestChainNew(t *testing.T) {
	c := New(Point{0, 0}, Point{10, 0}, Point{10, 10})
	checkChain(t, c)
	test.T(t, c.PointCount(), 3)
	test.T(t, c.SegmentCount(), 2)
	test.T(t, c.ShapeCount(), 2)
	test.T(t, c.ArcCount(), 0)
	test.That(t, !c.Closed())
	test.That(t, !c.Empty())
	test.T(t, c.PointAt(-1), Point{10, 10})
	test.T(t, c.Segment(-1), Segment{Point{10, 0}, Point{10, 10}})

	c = NewClosed(Point{0, 0}, Point{10, 0}, Point{10, 10}, Point{0, 0})
	checkChain(t, c)
	test.T(t, c.PointCount(), 3)
	test.T(t, c.SegmentCount(), 3)
	test.T(t, c.PointAt(3), Point{0, 0})
	test.T(t, c.PointAt(-1), Point{10, 10})
	test.T(t, c.Segment(2), Segment{Point{10, 10}, Point{0, 0}})

	test.T(t, (&Chain{}).SegmentCount(), 0)
	test.T(t, New(Point{1, 1}).SegmentCount(), 0)
	test.That(t, (&Chain{}).Empty())
}

func TestChainIndexPanics(t *testing.T) {
	defer func() {
		test.That(t, recover() != nil)
	}()
	New(Point{0, 0}, Point{10, 0}).PointAt(2)
}

func TestChainFromArc(t *testing.T) {
	c := FromArc(quarterArc(), 1)
	checkChain(t, c)
	test.T(t, c.Points(), []Point{{10, 0}, {7, 7}, {0, 10}})
	test.T(t, c.ArcCount(), 1)
	test.T(t, c.ShapeCount(), 1)
	test.T(t, c.ShapeAt(1), Shape{Kind: ArcPoint, Arc: 0})
	test.That(t, c.IsPointOnArc(0))
	test.That(t, !c.IsSharedPoint(1))
	test.T(t, c.ArcIndexAt(2), 0)
	test.That(t, c.IsArcSegment(0))
	test.That(t, c.IsArcSegment(1))
	test.That(t, c.IsArcStart(0))
	test.That(t, !c.IsArcStart(1))
	test.That(t, c.IsArcEnd(2))
	test.That(t, !c.IsArcEnd(1))
}

func TestChainSeam(t *testing.T) {
	c := FromArc(quarterArc(), 1)
	c.AppendArc(ArcFromStartEndCenter(Point{0, 10}, Point{-10, 0}, Point{0, 0}, true), 1)
	checkChain(t, c)
	test.T(t, c.Points(), []Point{{10, 0}, {7, 7}, {0, 10}, {-7, 7}, {-10, 0}})
	test.T(t, c.ArcCount(), 2)
	test.T(t, c.ShapeAt(2), Shape{Kind: SeamPoint, Arc: 0, Next: 1})
	test.That(t, c.IsSharedPoint(2))
	test.T(t, c.ArcIndexAt(2), 1)
	test.That(t, c.IsArcEnd(2))
	test.That(t, c.IsArcStart(2))
	test.T(t, c.ShapeCount(), 2)
	test.T(t, c.ShapeAt(2).String(), "Seam(0,1)")
}

func TestChainShapeCount(t *testing.T) {
	c := FromArc(ArcFromStartEndCenter(Point{1000, 0}, Point{-1000, 0}, Point{0, 0}, true), 100)
	test.T(t, c.SegmentCount(), 4)
	test.T(t, c.ShapeCount(), 1)

	c.Append(Point{-1000, -500})
	test.T(t, c.ShapeCount(), 2)

	// two half circles closed into a circle, seamed at point zero
	c = FromArc(ArcFromStartEndCenter(Point{1000, 0}, Point{-1000, 0}, Point{0, 0}, true), 100)
	c.AppendArc(ArcFromStartEndCenter(Point{-1000, 0}, Point{1000, 0}, Point{0, 0}, true), 100)
	c.SetClosed(true)
	checkChain(t, c)
	test.T(t, c.PointCount(), 8)
	test.T(t, c.SegmentCount(), 8)
	test.T(t, c.ArcCount(), 2)
	test.T(t, c.ShapeAt(0), Shape{Kind: SeamPoint, Arc: 1, Next: 0})
	test.T(t, c.ShapeCount(), 2)

	c = New(Point{0, 0}, Point{10, 0}, Point{10, 10})
	test.T(t, c.ShapeCount(), 2)
	c.SetClosed(true)
	test.T(t, c.ShapeCount(), 3)
}

func TestChainClosingChord(t *testing.T) {
	c := MustParse(halfDisc)
	checkChain(t, c)
	test.T(t, c.SegmentCount(), 5)
	test.T(t, c.ShapeCount(), 2)
	test.That(t, c.IsArcSegment(3))
	test.That(t, !c.IsArcSegment(4))
	test.That(t, c.IsArcStart(0))
	test.That(t, !c.IsArcEnd(0))
	test.That(t, c.IsArcEnd(4))

	es := c.elements()
	test.T(t, len(es), 2)
	test.That(t, es[0].isArc())
	test.That(t, !es[1].isArc())
	test.T(t, es[1].index, 4)
}

func TestChainClone(t *testing.T) {
	c := MustParse(halfDisc)
	c.SetWidth(100)
	d := c.Clone()
	test.T(t, d, c)
	test.T(t, d.Width(), 100)

	d.Move(Point{1, 0})
	test.That(t, !d.Equals(c))
	test.T(t, c.PointAt(0), Point{1000, 0})

	c.Clear()
	test.That(t, c.Empty())
	test.T(t, c.ArcCount(), 0)
	test.That(t, c.Closed())
}
