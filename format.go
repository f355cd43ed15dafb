package linechain

import (
	"bytes"
	"strconv"

	"github.com/tdewolff/parse/v2"
	pstrconv "github.com/tdewolff/parse/v2/strconv"
)

// Format returns the chain in a line based text format meant for debugging and test fixtures. The first line is the header "chain <closed|open> <width>", followed by one line per point "p x y" with the suffix "a i" for arc points and "s i j" for seams, and one line per arc "arc sx sy ex ey cx cy r <ccw|cw>". Parse reads it back exactly.
func (c *Chain) Format() string {
	b := make([]byte, 0, 16*len(c.points)+48*len(c.arcs)+16)
	b = append(b, "chain "...)
	if c.closed {
		b = append(b, "closed "...)
	} else {
		b = append(b, "open "...)
	}
	b = strconv.AppendInt(b, int64(c.width), 10)
	b = append(b, '\n')

	for i, p := range c.points {
		b = append(b, "p "...)
		b = appendPoint(b, p)
		switch s := c.shapes[i]; s.Kind {
		case ArcPoint:
			b = append(b, " a "...)
			b = strconv.AppendInt(b, int64(s.Arc), 10)
		case SeamPoint:
			b = append(b, " s "...)
			b = strconv.AppendInt(b, int64(s.Arc), 10)
			b = append(b, ' ')
			b = strconv.AppendInt(b, int64(s.Next), 10)
		}
		b = append(b, '\n')
	}
	for _, arc := range c.arcs {
		b = append(b, "arc "...)
		b = appendPoint(b, arc.start)
		b = append(b, ' ')
		b = appendPoint(b, arc.end)
		b = append(b, ' ')
		b = strconv.AppendFloat(b, arc.center.X, 'g', -1, 64)
		b = append(b, ' ')
		b = strconv.AppendFloat(b, arc.center.Y, 'g', -1, 64)
		b = append(b, ' ')
		b = strconv.AppendFloat(b, arc.radius, 'g', -1, 64)
		if arc.CCW() {
			b = append(b, " ccw\n"...)
		} else {
			b = append(b, " cw\n"...)
		}
	}
	return string(b)
}

func (c *Chain) String() string {
	return c.Format()
}

func appendPoint(b []byte, p Point) []byte {
	b = strconv.AppendInt(b, int64(p.X), 10)
	b = append(b, ' ')
	return strconv.AppendInt(b, int64(p.Y), 10)
}

type formatParser struct {
	data   []byte
	offset int // of the current line
	fields [][]byte
	pos    []int
	err    error

	pointOffsets []int
}

func (z *formatParser) errorf(field int, format string, a ...interface{}) {
	if z.err == nil {
		offset := z.offset
		if field < len(z.pos) {
			offset += z.pos[field]
		}
		z.err = parse.NewError(bytes.NewReader(z.data), offset, format, a...)
	}
}

// split sets the fields of the line starting at the current offset and returns the offset of the next line.
func (z *formatParser) split() int {
	end := bytes.IndexByte(z.data[z.offset:], '\n')
	if end == -1 {
		end = len(z.data)
	} else {
		end += z.offset
	}
	line := z.data[z.offset:end]
	z.fields = z.fields[:0]
	z.pos = z.pos[:0]
	for i := 0; i < len(line); {
		if line[i] == ' ' || line[i] == '\t' || line[i] == '\r' {
			i++
			continue
		}
		j := i
		for j < len(line) && line[j] != ' ' && line[j] != '\t' && line[j] != '\r' {
			j++
		}
		z.fields = append(z.fields, line[i:j])
		z.pos = append(z.pos, i)
		i = j
	}
	return end + 1
}

func (z *formatParser) int(field int) int {
	if len(z.fields) <= field {
		z.errorf(len(z.pos), "expected integer")
		return 0
	}
	i, n := pstrconv.ParseInt(z.fields[field])
	if n == 0 || n != len(z.fields[field]) || i < -MaxCoord || MaxCoord < i {
		z.errorf(field, "bad integer: %s", z.fields[field])
		return 0
	}
	return int(i)
}

func (z *formatParser) float(field int) float64 {
	if len(z.fields) <= field {
		z.errorf(len(z.pos), "expected number")
		return 0.0
	}
	f, err := strconv.ParseFloat(string(z.fields[field]), 64)
	if err != nil {
		z.errorf(field, "bad number: %s", z.fields[field])
		return 0.0
	}
	return f
}

func (z *formatParser) point(field int) Point {
	return Point{z.int(field), z.int(field + 1)}
}

func (z *formatParser) expectFields(n int) {
	if len(z.fields) < n {
		z.errorf(len(z.pos), "missing fields")
	} else if n < len(z.fields) {
		z.errorf(n, "unexpected field: %s", z.fields[n])
	}
}

// Parse reads a chain in the format written by Format. Errors are of type *parse.Error and report the line and column. Point and arc lines may appear in any order, lines starting with # are ignored, and structural inconsistencies such as non-contiguous arc runs are repaired as by the chain's editing operations.
func Parse(s string) (*Chain, error) {
	z := &formatParser{data: []byte(s)}
	c := z.chain()
	if z.err == nil && z.skip() {
		z.errorf(0, "duplicate header")
	}
	if z.err != nil {
		return nil, z.err
	}
	return c, nil
}

// ParseAll reads all chains of a text that concatenates the formats of several chains, see Parse.
func ParseAll(s string) ([]*Chain, error) {
	z := &formatParser{data: []byte(s)}
	cs := []*Chain{}
	for z.skip() {
		cs = append(cs, z.chain())
		if z.err != nil {
			return nil, z.err
		}
	}
	return cs, nil
}

// skip moves to the next line with content and returns false at the end of the text.
func (z *formatParser) skip() bool {
	for z.offset < len(z.data) {
		next := z.split()
		if len(z.fields) != 0 && z.fields[0][0] != '#' {
			return true
		}
		z.offset = next
	}
	z.fields = z.fields[:0]
	z.pos = z.pos[:0]
	return false
}

// chain reads the header at the current line and all following point and arc lines up to the next header.
func (z *formatParser) chain() *Chain {
	c := &Chain{}
	if !z.skip() || string(z.fields[0]) != "chain" {
		z.errorf(0, "expected header")
		return nil
	}
	z.expectFields(3)
	if 1 < len(z.fields) {
		switch string(z.fields[1]) {
		case "closed":
			c.closed = true
		case "open":
		default:
			z.errorf(1, "expected closed or open: %s", z.fields[1])
		}
	}
	c.width = z.int(2)
	if c.width < 0 {
		z.errorf(2, "negative width")
	}
	z.offset = z.split()

	z.pointOffsets = z.pointOffsets[:0]
	for z.err == nil && z.skip() && string(z.fields[0]) != "chain" {
		switch cmd := string(z.fields[0]); cmd {
		case "p":
			c.parsePoint(z)
		case "arc":
			c.parseArc(z)
		default:
			z.errorf(0, "unknown command: %s", cmd)
		}
		z.offset = z.split()
	}
	if z.err != nil {
		return nil
	}

	for i, s := range c.shapes {
		if !s.IsPlain() && len(c.arcs) <= s.Arc || s.Kind == SeamPoint && len(c.arcs) <= s.Next {
			z.err = parse.NewError(bytes.NewReader(z.data), z.pointOffsets[i], "arc index out of range: %v", s)
			return nil
		}
	}

	// structure follows from the tags, normalized as after any edit
	if c.closed && 1 < len(c.points) && c.points[0] == c.points[len(c.points)-1] {
		c.points = c.points[:len(c.points)-1]
		c.shapes = c.shapes[:len(c.shapes)-1]
	}
	c.setVertices(c.vertices(), c.arcs)
	return c
}

func (c *Chain) parsePoint(z *formatParser) {
	s := Shape{}
	if 3 < len(z.fields) {
		switch string(z.fields[3]) {
		case "a":
			z.expectFields(5)
			s = Shape{Kind: ArcPoint, Arc: z.int(4)}
		case "s":
			z.expectFields(6)
			s = Shape{Kind: SeamPoint, Arc: z.int(4), Next: z.int(5)}
			if s.Arc == s.Next {
				s = Shape{Kind: ArcPoint, Arc: s.Arc}
			}
		default:
			z.errorf(3, "expected a or s: %s", z.fields[3])
		}
		if s.Arc < 0 || s.Next < 0 {
			z.errorf(4, "negative arc index")
		}
	} else {
		z.expectFields(3)
	}
	c.points = append(c.points, z.point(1))
	c.shapes = append(c.shapes, s)
	z.pointOffsets = append(z.pointOffsets, z.offset)
}

func (c *Chain) parseArc(z *formatParser) {
	z.expectFields(9)
	start, end := z.point(1), z.point(3)
	center := Vec2{z.float(5), z.float(6)}
	radius := z.float(7)
	ccw := false
	if 8 < len(z.fields) {
		switch string(z.fields[8]) {
		case "ccw":
			ccw = true
		case "cw":
		default:
			z.errorf(8, "expected ccw or cw: %s", z.fields[8])
		}
	}
	c.arcs = append(c.arcs, makeArc(start, end, center, radius, ccw))
}

// MustParse is like Parse but panics on error.
func MustParse(s string) *Chain {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}
