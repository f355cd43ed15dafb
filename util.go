package linechain

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used for floating point comparisons.
var Epsilon = 1e-10

// MaxCoord is the largest coordinate magnitude for which all integer cross and dot products of coordinate differences fit in an int64.
const MaxCoord = 1<<30 - 1

// Equal returns true if a and b are equal with tolerance Epsilon.
func Equal(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// Interval returns true if f is in the closed interval [lower-Epsilon,upper+Epsilon] where lower and upper can be interchanged.
func Interval(f, lower, upper float64) bool {
	if upper < lower {
		lower, upper = upper, lower
	}
	return lower-Epsilon <= f && f <= upper+Epsilon
}

// angleNorm returns the angle theta in the range [0,2PI).
func angleNorm(theta float64) float64 {
	theta = math.Mod(theta, 2.0*math.Pi)
	if theta < 0.0 {
		theta += 2.0 * math.Pi
	}
	return theta
}

// angleInSweep is true when theta lies on the arc that starts at angle start and sweeps over sweep radians, including the end points. The sweep is positive for CCW and negative for CW.
func angleInSweep(theta, start, sweep float64) bool {
	if sweep < 0.0 {
		start, sweep = start+sweep, -sweep
	}
	d := angleNorm(theta - start)
	return d <= sweep+Epsilon || 2.0*math.Pi-Epsilon <= d
}

// Numerically stable quadratic formula, lowest root is returned first
// see https://math.stackexchange.com/a/2007723
func solveQuadraticFormula(a, b, c float64) (float64, float64) {
	if a == 0.0 {
		if b == 0.0 {
			if c == 0.0 {
				// all terms disappear, all x satisfy the solution
				return 0.0, math.NaN()
			}
			// linear term disappears, no solutions
			return math.NaN(), math.NaN()
		}
		// quadratic term disappears, solve linear equation
		return -c / b, math.NaN()
	}

	if c == 0.0 {
		// no constant term, one solution at zero and one from solving linearly
		x2 := -b / a
		if x2 < 0.0 {
			return x2, 0.0
		}
		return 0.0, x2
	}

	discriminant := b*b - 4.0*a*c
	if discriminant < 0.0 {
		return math.NaN(), math.NaN()
	} else if discriminant == 0.0 {
		return -b / (2.0 * a), math.NaN()
	}

	// Avoid catastrophic cancellation, which occurs when we subtract two nearly equal numbers and causes a large error
	// this can be the case when 4*a*c is small so that sqrt(discriminant) -> b, and the sign of b and in front of the radical are the same
	// instead we calculate x where b and the radical have different signs, and then use this result in the analytical equivalent
	// of the formula, called the Citardauq Formula.
	q := math.Sqrt(discriminant)
	if b < 0.0 {
		// apply sign of b
		q = -q
	}
	x1 := -(b + q) / (2.0 * a)
	x2 := c / (a * x1)
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	return x1, x2
}

////////////////////////////////////////////////////////////////

// Point is an integer coordinate in the native unit of the CAD, typically nanometers. OP refers to the line that goes through the origin (0,0) and this point (x,y).
type Point struct {
	X, Y int
}

// Add adds Q to P.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub subtracts Q from P.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Neg negates x and y.
func (p Point) Neg() Point {
	return Point{-p.X, -p.Y}
}

// Dot returns the dot product between OP and OQ.
func (p Point) Dot(q Point) int64 {
	return int64(p.X)*int64(q.X) + int64(p.Y)*int64(q.Y)
}

// PerpDot returns the perp dot product between OP and OQ, ie. zero if aligned, positive if OQ is CCW from OP.
func (p Point) PerpDot(q Point) int64 {
	return int64(p.X)*int64(q.Y) - int64(p.Y)*int64(q.X)
}

// SquaredLength returns the squared length of OP.
func (p Point) SquaredLength() int64 {
	return p.Dot(p)
}

// Length returns the length of OP.
func (p Point) Length() float64 {
	return math.Hypot(float64(p.X), float64(p.Y))
}

// Vec returns P as a floating point vector.
func (p Point) Vec() Vec2 {
	return Vec2{float64(p.X), float64(p.Y)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

////////////////////////////////////////////////////////////////

// Vec2 is a floating point coordinate, used for arc centers and intermediate results.
type Vec2 struct {
	X, Y float64
}

// Equals returns true if P and Q are equal with tolerance Epsilon.
func (p Vec2) Equals(q Vec2) bool {
	return Equal(p.X, q.X) && Equal(p.Y, q.Y)
}

// Add adds Q to P.
func (p Vec2) Add(q Vec2) Vec2 {
	return Vec2{p.X + q.X, p.Y + q.Y}
}

// Sub subtracts Q from P.
func (p Vec2) Sub(q Vec2) Vec2 {
	return Vec2{p.X - q.X, p.Y - q.Y}
}

// Mul multiplies x and y by f.
func (p Vec2) Mul(f float64) Vec2 {
	return Vec2{f * p.X, f * p.Y}
}

// Div divides x and y by f.
func (p Vec2) Div(f float64) Vec2 {
	return Vec2{p.X / f, p.Y / f}
}

// Rot90CCW rotates the line OP by 90 degrees CCW.
func (p Vec2) Rot90CCW() Vec2 {
	return Vec2{-p.Y, p.X}
}

// Dot returns the dot product between OP and OQ, ie. zero if perpendicular and |OP|*|OQ| if aligned.
func (p Vec2) Dot(q Vec2) float64 {
	return p.X*q.X + p.Y*q.Y
}

// PerpDot returns the perp dot product between OP and OQ, ie. zero if aligned and |OP|*|OQ| if perpendicular.
func (p Vec2) PerpDot(q Vec2) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of OP.
func (p Vec2) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Angle returns the angle between the x-axis and OP.
func (p Vec2) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// Norm normalized OP to be of certain length.
func (p Vec2) Norm(length float64) Vec2 {
	d := p.Length()
	if Equal(d, 0.0) {
		return Vec2{}
	}
	return Vec2{p.X / d * length, p.Y / d * length}
}

// Interpolate returns a point on PQ that is linearly interpolated by t, ie. t=0 returns P and t=1 returns Q.
func (p Vec2) Interpolate(q Vec2, t float64) Vec2 {
	return Vec2{(1-t)*p.X + t*q.X, (1-t)*p.Y + t*q.Y}
}

// Round returns the nearest integer point.
func (p Vec2) Round() Point {
	return Point{int(math.Round(p.X)), int(math.Round(p.Y))}
}

func (p Vec2) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// polar returns the point at angle theta and distance r from center.
func polar(center Vec2, r, theta float64) Vec2 {
	sintheta, costheta := math.Sincos(theta)
	return Vec2{center.X + r*costheta, center.Y + r*sintheta}
}
