package linechain

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	clipper "github.com/ctessum/go.clipper"
	"github.com/tdewolff/test"
)

func square(x0, y0, x1, y1 int) *Chain {
	return NewClosed(Point{x0, y0}, Point{x1, y0}, Point{x1, y1}, Point{x0, y1})
}

func totalArea(cs []*Chain) float64 {
	a := 0.0
	for _, c := range cs {
		a += c.Area(true)
	}
	return a
}

func clipPath(ps ...Point) clipper.Path {
	path := make(clipper.Path, len(ps))
	for i, p := range ps {
		path[i] = &clipper.IntPoint{X: clipper.CInt(p.X), Y: clipper.CInt(p.Y)}
	}
	return path
}

func TestClipBatchRoundTrip(t *testing.T) {
	c := MustParse(halfDisc)
	b := NewClipBatch()
	path := b.Export(c, true)
	test.T(t, len(path), 5)
	test.T(t, b.Import(path), c)

	// a path starting inside the arc
	path = append(path[2:], path[:2]...)
	test.T(t, b.Import(path), c)

	// traversed backwards
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	d := b.Import(path)
	checkChain(t, d)
	test.T(t, d.ArcCount(), 1)
	test.That(t, !d.ArcAt(0).CCW())
	test.Float(t, d.Area(false), -c.Area(false))
}

func TestClipBatchRoundTripArea(t *testing.T) {
	twoArcs := FromArc(quarterArc(), 1)
	twoArcs.AppendArc(ArcFromStartEndCenter(Point{0, 10}, Point{-10, 0}, Point{0, 0}, true), 1)
	twoArcs.SetClosed(true)

	for i, c := range []*Chain{MustParse(halfDisc), twoArcs, rectangle(), square(-5, -5, 5, 5)} {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			b := NewClipBatch()
			d := b.Import(b.Export(c, true))
			checkChain(t, d)
			test.Float(t, d.Area(false), c.Area(false))
			test.T(t, d.Arcs(), c.Arcs())
			test.T(t, d, c)
		})
	}
}

func TestClipBatchExport(t *testing.T) {
	b := NewClipBatch()
	path := b.Export(square(0, 0, 10, 20), false)
	test.T(t, b.Import(path).Points(), []Point{{0, 0}, {0, 20}, {10, 20}, {10, 0}})

	b = NewClipBatch()
	b.Export(MustParse(halfDisc), true)
	test.T(t, len(b.Arcs()), 1)
	test.T(t, b.Tag(Point{707, 707}), Shape{Kind: ArcPoint, Arc: 0})
	test.T(t, b.Tag(Point{1, 1}), Shape{})

	// coordinates claimed by different tags are plain
	b.Export(NewClosed(Point{1000, 0}, Point{2000, 0}, Point{2000, 1000}), true)
	test.T(t, b.Tag(Point{1000, 0}), Shape{})
	b.Export(MustParse(halfDisc), true)
	test.T(t, len(b.Arcs()), 2)
	test.T(t, b.Tag(Point{707, 707}), Shape{})
}

func TestClipBatchImport(t *testing.T) {
	b := NewClipBatch()
	b.Export(MustParse(halfDisc), true)

	// duplicates and the closing point are dropped
	c := b.Import(clipPath(Point{0, 0}, Point{10, 0}, Point{10, 0}, Point{10, 10}, Point{0, 0}))
	test.T(t, c.Points(), []Point{{0, 0}, {10, 0}, {10, 10}})
	test.That(t, c.Closed())

	// the arc is cut short by a new vertex
	c = b.Import(clipPath(Point{0, 0}, Point{1000, 0}, Point{707, 707}, Point{0, 1000}))
	checkChain(t, c)
	test.T(t, c.ArcCount(), 1)
	test.T(t, c.ArcAt(0).Start(), Point{1000, 0})
	test.T(t, c.ArcAt(0).End(), Point{0, 1000})
	test.That(t, c.ArcAt(0).Center() == Vec2{0.0, 0.0})

	cs := b.ImportAll(clipper.Paths{clipPath(Point{0, 0}, Point{10, 0}), clipPath(Point{0, 0}, Point{10, 0}, Point{0, 10})})
	test.T(t, len(cs), 1)
}

func TestClipBatchImportLogs(t *testing.T) {
	buf := &bytes.Buffer{}
	SetLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	b := NewClipBatch()
	b.Export(MustParse(halfDisc), true)

	// a vertex inside the arc splits it in two runs
	c := b.Import(clipPath(Point{1000, 0}, Point{707, 707}, Point{0, 0}, Point{0, 1000}, Point{-707, 707}, Point{-1000, 0}))
	checkChain(t, c)
	test.T(t, c.PointCount(), 6)
	test.T(t, c.ArcCount(), 0)
	test.That(t, strings.Contains(buf.String(), "arc converted to straight segments"), buf.String())
}

func TestBoolean(t *testing.T) {
	var tts = []struct {
		op   ClipOp
		n    int // zero when the clip engine may join touching results
		area float64
	}{
		{OpOr, 1, 175.0},
		{OpAnd, 1, 25.0},
		{OpNot, 1, 75.0},
		{OpXor, 0, 150.0},
	}
	a, b := square(0, 0, 10, 10), square(5, 5, 15, 15)
	for _, tt := range tts {
		t.Run(tt.op.String(), func(t *testing.T) {
			cs, err := Boolean(tt.op, []*Chain{a}, []*Chain{b})
			test.Error(t, err)
			if tt.n != 0 {
				test.T(t, len(cs), tt.n)
			}
			test.Float(t, totalArea(cs), tt.area)
			for _, c := range cs {
				checkChain(t, c)
				test.That(t, c.Closed())
			}
		})
	}

	cs, err := And([]*Chain{a}, []*Chain{b})
	test.Error(t, err)
	test.Float(t, totalArea(cs), 25.0)
	cs, err = Or([]*Chain{a}, []*Chain{b})
	test.Error(t, err)
	test.Float(t, totalArea(cs), 175.0)
	cs, err = Not([]*Chain{b}, []*Chain{a})
	test.Error(t, err)
	test.Float(t, totalArea(cs), 75.0)
	cs, err = Xor([]*Chain{a}, []*Chain{b})
	test.Error(t, err)
	test.Float(t, totalArea(cs), 150.0)

	// inputs are not modified
	test.T(t, a, square(0, 0, 10, 10))

	_, err = Boolean(OpOr, []*Chain{New(Point{0, 0}, Point{10, 0}, Point{10, 10})}, nil)
	test.That(t, err != nil)
	_, err = Boolean(OpOr, []*Chain{a}, []*Chain{New(Point{0, 0}, Point{10, 0}, Point{10, 10})})
	test.That(t, err != nil)
}

func TestBooleanKeepsArcs(t *testing.T) {
	disc := MustParse(halfDisc)
	cs, err := Or([]*Chain{disc}, []*Chain{square(3000, 0, 4000, 1000)})
	test.Error(t, err)
	test.T(t, len(cs), 2)
	arcs := 0
	for _, c := range cs {
		checkChain(t, c)
		for i := 0; i < c.ArcCount(); i++ {
			arcs++
			test.That(t, c.ArcAt(i).Center() == Vec2{0.0, 0.0})
			test.Float(t, c.ArcAt(i).Radius(), 1000.0)
		}
	}
	test.T(t, arcs, 1)

	// the left quarter of the disc
	cs, err = And([]*Chain{disc}, []*Chain{square(-2000, -10, 0, 2000)})
	test.Error(t, err)
	test.T(t, len(cs), 1)
	c := cs[0]
	checkChain(t, c)
	test.T(t, c.PointCount(), 4)
	test.T(t, c.ArcCount(), 1)
	arc := c.ArcAt(0)
	test.T(t, arc.Start(), Point{0, 1000})
	test.T(t, arc.End(), Point{-1000, 0})
	test.That(t, arc.Center() == Vec2{0.0, 0.0})
	test.Float(t, arc.Angle(), 90.0)
	test.Float(t, c.Area(false), 1000.0*707.0)
}

func TestOffset(t *testing.T) {
	cs := Offset([]*Chain{square(0, 0, 100, 100)}, 10.0, 1)
	test.T(t, len(cs), 1)
	checkChain(t, cs[0])
	area := cs[0].Area(true)
	test.That(t, 14000.0 < area && area < 14400.0, area)
	test.T(t, cs[0].Bounds().Min[0], -10.0)

	cs = Offset([]*Chain{square(0, 0, 100, 100)}, -10.0, 1)
	test.T(t, len(cs), 1)
	test.FloatDiff(t, cs[0].Area(true), 6400.0, 1.0)

	// open chains are ignored
	cs = Offset([]*Chain{New(Point{0, 0}, Point{100, 0})}, 10.0, 0)
	test.T(t, len(cs), 0)
}

func TestClipOp(t *testing.T) {
	test.T(t, OpXor.String(), "xor")
	test.T(t, ClipOp(9).String(), "ClipOp(9)")
	test.T(t, fmt.Sprint(OpNot), "not")
}
