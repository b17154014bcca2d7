package htmldoc

import (
	"math"
	"strconv"
)

// pathBounds adds the geometry of path data d, transformed by m, to b.
// Curves contribute their extrema, not their control points. Arcs are
// sampled.
func pathBounds(d string, m matrix, b *bounds) {
	s := pathScanner{s: d}
	var cx, cy, sx, sy float64 // current and subpath start points
	var qx, qy float64         // reflected control point for S and T
	var prev byte
	var cmd byte
	for {
		if c, ok := s.command(); ok {
			cmd = c
		} else if !s.more() || cmd == 0 {
			return
		}
		rel := cmd >= 'a'
		up := cmd &^ 0x20
		ox, oy := 0.0, 0.0
		if rel {
			ox, oy = cx, cy
		}
		switch up {
		case 'Z':
			cx, cy = sx, sy
			prev = up
			cmd = 0
			continue
		case 'M', 'L':
			p, ok := s.numbers(2)
			if !ok {
				return
			}
			cx, cy = ox+p[0], oy+p[1]
			if up == 'M' {
				sx, sy = cx, cy
				// Further coordinate pairs are implicit line-tos.
				cmd = 'L' | (cmd & 0x20)
			}
			b.add(m.apply(cx, cy))
		case 'H':
			p, ok := s.numbers(1)
			if !ok {
				return
			}
			cx = ox + p[0]
			b.add(m.apply(cx, cy))
		case 'V':
			p, ok := s.numbers(1)
			if !ok {
				return
			}
			cy = oy + p[0]
			b.add(m.apply(cx, cy))
		case 'C', 'S':
			var x1, y1 float64
			var p []float64
			var ok bool
			if up == 'C' {
				if p, ok = s.numbers(6); !ok {
					return
				}
				x1, y1 = ox+p[0], oy+p[1]
				p = p[2:]
			} else {
				if p, ok = s.numbers(4); !ok {
					return
				}
				x1, y1 = cx, cy
				if prev == 'C' || prev == 'S' {
					x1, y1 = 2*cx-qx, 2*cy-qy
				}
			}
			x2, y2, x, y := ox+p[0], oy+p[1], ox+p[2], oy+p[3]
			cubicBounds(b, m, [4][2]float64{{cx, cy}, {x1, y1}, {x2, y2}, {x, y}})
			qx, qy, cx, cy = x2, y2, x, y
		case 'Q', 'T':
			var x1, y1, x, y float64
			if up == 'Q' {
				p, ok := s.numbers(4)
				if !ok {
					return
				}
				x1, y1, x, y = ox+p[0], oy+p[1], ox+p[2], oy+p[3]
			} else {
				p, ok := s.numbers(2)
				if !ok {
					return
				}
				x1, y1 = cx, cy
				if prev == 'Q' || prev == 'T' {
					x1, y1 = 2*cx-qx, 2*cy-qy
				}
				x, y = ox+p[0], oy+p[1]
			}
			// A quadratic is the cubic with control points at 2/3.
			cubicBounds(b, m, [4][2]float64{
				{cx, cy},
				{cx + 2*(x1-cx)/3, cy + 2*(y1-cy)/3},
				{x + 2*(x1-x)/3, y + 2*(y1-y)/3},
				{x, y},
			})
			qx, qy, cx, cy = x1, y1, x, y
		case 'A':
			r, ok := s.numbers(3)
			if !ok {
				return
			}
			large, ok1 := s.flag()
			sweep, ok2 := s.flag()
			p, ok3 := s.numbers(2)
			if !ok1 || !ok2 || !ok3 {
				return
			}
			x, y := ox+p[0], oy+p[1]
			arcBounds(b, m, cx, cy, r[0], r[1], r[2], large, sweep, x, y)
			cx, cy = x, y
		default:
			return
		}
		prev = up
	}
}

// cubicBounds adds the transformed endpoints and extrema of a cubic Bézier.
// Affine maps preserve Bézier curves, so the control points are mapped first.
func cubicBounds(b *bounds, m matrix, p [4][2]float64) {
	for i := range p {
		p[i][0], p[i][1] = m.apply(p[i][0], p[i][1])
	}
	b.add(p[0][0], p[0][1])
	b.add(p[3][0], p[3][1])
	for axis := 0; axis < 2; axis++ {
		p0, p1, p2, p3 := p[0][axis], p[1][axis], p[2][axis], p[3][axis]
		// Derivative as at² + bt + c.
		a := 3 * (-p0 + 3*p1 - 3*p2 + p3)
		bb := 6 * (p0 - 2*p1 + p2)
		c := 3 * (p1 - p0)
		for _, t := range quadraticRoots(a, bb, c) {
			if t <= 0 || t >= 1 {
				continue
			}
			b.add(cubicAt(p, t))
		}
	}
}

func cubicAt(p [4][2]float64, t float64) (float64, float64) {
	u := 1 - t
	w0, w1, w2, w3 := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return w0*p[0][0] + w1*p[1][0] + w2*p[2][0] + w3*p[3][0],
		w0*p[0][1] + w1*p[1][1] + w2*p[2][1] + w3*p[3][1]
}

func quadraticRoots(a, b, c float64) []float64 {
	const eps = 1e-12
	if math.Abs(a) < eps {
		if math.Abs(b) < eps {
			return nil
		}
		return []float64{-c / b}
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

// arcSamples is the number of points taken along an elliptical arc.
const arcSamples = 32

// arcBounds converts an endpoint-parameterized arc to its center form and
// adds sampled points along it.
func arcBounds(b *bounds, m matrix, x1, y1, rx, ry, phiDeg float64, large, sweep bool, x2, y2 float64) {
	b.add(m.apply(x1, y1))
	b.add(m.apply(x2, y2))
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 || (x1 == x2 && y1 == y2) {
		return
	}
	sinPhi, cosPhi := math.Sincos(phiDeg * math.Pi / 180)
	dx, dy := (x1-x2)/2, (y1-y2)/2
	x1p := cosPhi*dx + sinPhi*dy
	y1p := -sinPhi*dx + cosPhi*dy

	// Scale up radii that cannot span the endpoints.
	if l := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry); l > 1 {
		s := math.Sqrt(l)
		rx, ry = rx*s, ry*s
	}
	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	coef := 0.0
	if den != 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx
	cx := cosPhi*cxp - sinPhi*cyp + (x1+x2)/2
	cy := sinPhi*cxp + cosPhi*cyp + (y1+y2)/2

	theta1 := math.Atan2((y1p-cyp)/ry, (x1p-cxp)/rx)
	theta2 := math.Atan2((-y1p-cyp)/ry, (-x1p-cxp)/rx)
	delta := theta2 - theta1
	if sweep && delta < 0 {
		delta += 2 * math.Pi
	} else if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	}
	for i := 1; i < arcSamples; i++ {
		th := theta1 + delta*float64(i)/arcSamples
		s, c := math.Sincos(th)
		x := cosPhi*rx*c - sinPhi*ry*s + cx
		y := sinPhi*rx*c + cosPhi*ry*s + cy
		b.add(m.apply(x, y))
	}
}

// pathScanner tokenizes SVG path data.
type pathScanner struct {
	s string
	i int
}

func (p *pathScanner) skip() {
	for p.i < len(p.s) {
		switch p.s[p.i] {
		case ' ', ',', '\n', '\t', '\r', '\f':
			p.i++
		default:
			return
		}
	}
}

func isCommand(c byte) bool {
	switch c &^ 0x20 {
	case 'M', 'L', 'H', 'V', 'C', 'S', 'Q', 'T', 'A', 'Z':
		return true
	}
	return false
}

// command consumes a command letter if one is next.
func (p *pathScanner) command() (byte, bool) {
	p.skip()
	if p.i < len(p.s) && isCommand(p.s[p.i]) {
		c := p.s[p.i]
		p.i++
		return c, true
	}
	return 0, false
}

// more reports whether a number is next.
func (p *pathScanner) more() bool {
	p.skip()
	if p.i >= len(p.s) {
		return false
	}
	c := p.s[p.i]
	return c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9')
}

func (p *pathScanner) number() (float64, bool) {
	if !p.more() {
		return 0, false
	}
	start := p.i
	if c := p.s[p.i]; c == '-' || c == '+' {
		p.i++
	}
	digits := p.digits()
	if p.i < len(p.s) && p.s[p.i] == '.' {
		p.i++
		digits += p.digits()
	}
	if digits == 0 {
		p.i = start
		return 0, false
	}
	if p.i < len(p.s) && (p.s[p.i] == 'e' || p.s[p.i] == 'E') {
		save := p.i
		p.i++
		if p.i < len(p.s) && (p.s[p.i] == '-' || p.s[p.i] == '+') {
			p.i++
		}
		if p.digits() == 0 {
			p.i = save
		}
	}
	f, err := strconv.ParseFloat(p.s[start:p.i], 64)
	return f, err == nil
}

func (p *pathScanner) digits() int {
	n := 0
	for p.i < len(p.s) && p.s[p.i] >= '0' && p.s[p.i] <= '9' {
		p.i++
		n++
	}
	return n
}

func (p *pathScanner) numbers(n int) ([]float64, bool) {
	out := make([]float64, n)
	for i := range out {
		f, ok := p.number()
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// flag reads an arc flag, which may be written without a separator.
func (p *pathScanner) flag() (bool, bool) {
	p.skip()
	if p.i >= len(p.s) {
		return false, false
	}
	switch p.s[p.i] {
	case '0':
		p.i++
		return false, true
	case '1':
		p.i++
		return true, true
	}
	return false, false
}
