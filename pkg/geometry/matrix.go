package geometry

import "math"

// Matrix is a PDF transformation matrix [a b c d e f] representing
//
//	| a b 0 |
//	| c d 0 |
//	| e f 1 |
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Translation returns a pure translation matrix.
func Translation(tx, ty float64) Matrix {
	return Matrix{A: 1, D: 1, E: tx, F: ty}
}

// Scaling returns a pure scaling matrix.
func Scaling(sx, sy float64) Matrix {
	return Matrix{A: sx, D: sy}
}

// Multiply returns m x n, matching the PDF convention where m is applied
// before n.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.B*n.C,
		B: m.A*n.B + m.B*n.D,
		C: m.C*n.A + m.D*n.C,
		D: m.C*n.B + m.D*n.D,
		E: m.E*n.A + m.F*n.C + n.E,
		F: m.E*n.B + m.F*n.D + n.F,
	}
}

// TransformPoint applies the matrix to a point.
func (m Matrix) TransformPoint(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// EffectiveFontSize returns the vertical scale of the matrix, the rendered
// size of text placed through it.
func (m Matrix) EffectiveFontSize() float64 {
	return math.Hypot(m.B, m.D)
}

// IsUpright reports whether the matrix carries no rotation or skew.
func (m Matrix) IsUpright() bool {
	const eps = 1e-6
	return math.Abs(m.B) < eps && math.Abs(m.C) < eps && m.A*m.D > 0
}

// AsArray returns the six matrix entries in PDF order.
func (m Matrix) AsArray() [6]float64 {
	return [6]float64{m.A, m.B, m.C, m.D, m.E, m.F}
}
