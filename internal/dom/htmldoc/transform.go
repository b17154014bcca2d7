package htmldoc

import (
	"math"
	"strings"
)

// matrix is an SVG affine transform [a c e; b d f; 0 0 1].
type matrix struct{ A, B, C, D, E, F float64 }

var identity = matrix{A: 1, D: 1}

// mult returns m·n, the transform applying n first and then m.
func (m matrix) mult(n matrix) matrix {
	return matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

func (m matrix) apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

func translate(tx, ty float64) matrix { return matrix{A: 1, D: 1, E: tx, F: ty} }

func rotate(deg float64) matrix {
	s, c := math.Sincos(deg * math.Pi / 180)
	return matrix{A: c, B: s, C: -s, D: c}
}

// parseTransform reads a transform attribute as a list of functions applied
// left to right. Malformed functions are skipped.
func parseTransform(v string) matrix {
	m := identity
	for _, fn := range strings.Split(v, ")") {
		name, args, ok := strings.Cut(fn, "(")
		if !ok {
			continue
		}
		var p []float64
		for _, f := range strings.FieldsFunc(args, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\n' || r == '\t'
		}) {
			x, ok := number(f)
			if !ok {
				p = nil
				break
			}
			p = append(p, x)
		}
		switch name = strings.ToLower(strings.TrimSpace(strings.TrimLeft(name, ", "))); {
		case name == "translate" && len(p) == 1:
			m = m.mult(translate(p[0], 0))
		case name == "translate" && len(p) == 2:
			m = m.mult(translate(p[0], p[1]))
		case name == "scale" && len(p) == 1:
			m = m.mult(matrix{A: p[0], D: p[0]})
		case name == "scale" && len(p) == 2:
			m = m.mult(matrix{A: p[0], D: p[1]})
		case name == "rotate" && len(p) == 1:
			m = m.mult(rotate(p[0]))
		case name == "rotate" && len(p) == 3:
			m = m.mult(translate(p[1], p[2])).mult(rotate(p[0])).mult(translate(-p[1], -p[2]))
		case name == "skewx" && len(p) == 1:
			m = m.mult(matrix{A: 1, C: math.Tan(p[0] * math.Pi / 180), D: 1})
		case name == "skewy" && len(p) == 1:
			m = m.mult(matrix{A: 1, B: math.Tan(p[0] * math.Pi / 180), D: 1})
		case name == "matrix" && len(p) == 6:
			m = m.mult(matrix{A: p[0], B: p[1], C: p[2], D: p[3], E: p[4], F: p[5]})
		}
	}
	return m
}
