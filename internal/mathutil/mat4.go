package mathutil

import "math"

// Mat4 is a 4×4 matrix in the host's flat layout: row-major storage for the
// row-vector convention, so a point multiplies on the left ([x y z 1]·M) and
// the translation lives in elements 12..14.
type Mat4 [16]float64

// singularEpsilon is the determinant magnitude below which a matrix is
// reported as not invertible.
const singularEpsilon = 1e-12

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Mul returns a × b. With row vectors this applies a first, then b.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[r*4+c] = a[r*4+0]*b[0*4+c] + a[r*4+1]*b[1*4+c] +
				a[r*4+2]*b[2*4+c] + a[r*4+3]*b[3*4+c]
		}
	}
	return m
}

// TransformPoint maps a 2D point (z=0, w=1) through the matrix, dividing by
// the resulting w.
func (m Mat4) TransformPoint(v Vec2) Vec2 {
	w := v.X*m[3] + v.Y*m[7] + m[15]
	return Vec2{
		X: (v.X*m[0] + v.Y*m[4] + m[12]) / w,
		Y: (v.X*m[1] + v.Y*m[5] + m[13]) / w,
	}
}

// Det returns the determinant via cofactor expansion.
func (m Mat4) Det() float64 {
	c := m.cofactors()
	return m[0]*c.t0 + m[4]*c.t1 + m[8]*c.t2 + m[12]*c.t3
}

// Invertible reports whether the determinant is far enough from zero for
// Inverse to produce a meaningful result.
func (m Mat4) Invertible() bool {
	return math.Abs(m.Det()) > singularEpsilon
}

type cofactorTerms struct {
	tmp            [24]float64
	t0, t1, t2, t3 float64
}

func (m Mat4) cofactors() cofactorTerms {
	m00, m01, m02, m03 := m[0], m[1], m[2], m[3]
	m10, m11, m12, m13 := m[4], m[5], m[6], m[7]
	m20, m21, m22, m23 := m[8], m[9], m[10], m[11]
	m30, m31, m32, m33 := m[12], m[13], m[14], m[15]

	var c cofactorTerms
	c.tmp = [24]float64{
		m22 * m33, m32 * m23, m12 * m33, m32 * m13, m12 * m23, m22 * m13,
		m02 * m33, m32 * m03, m02 * m23, m22 * m03, m02 * m13, m12 * m03,
		m20 * m31, m30 * m21, m10 * m31, m30 * m11, m10 * m21, m20 * m11,
		m00 * m31, m30 * m01, m00 * m21, m20 * m01, m00 * m11, m10 * m01,
	}
	t := &c.tmp
	c.t0 = (t[0]*m11 + t[3]*m21 + t[4]*m31) - (t[1]*m11 + t[2]*m21 + t[5]*m31)
	c.t1 = (t[1]*m01 + t[6]*m21 + t[9]*m31) - (t[0]*m01 + t[7]*m21 + t[8]*m31)
	c.t2 = (t[2]*m01 + t[7]*m11 + t[10]*m31) - (t[3]*m01 + t[6]*m11 + t[11]*m31)
	c.t3 = (t[5]*m01 + t[8]*m11 + t[11]*m21) - (t[4]*m01 + t[9]*m11 + t[10]*m21)
	return c
}

// Inverse returns the general 4×4 inverse. There is no singularity guard: a
// degenerate matrix yields non-finite or meaningless values. Callers that care
// check Invertible first.
func (m Mat4) Inverse() Mat4 {
	m00, _, m02, m03 := m[0], m[1], m[2], m[3]
	m10, _, m12, m13 := m[4], m[5], m[6], m[7]
	m20, _, m22, m23 := m[8], m[9], m[10], m[11]
	m30, _, m32, m33 := m[12], m[13], m[14], m[15]

	c := m.cofactors()
	t := &c.tmp
	d := 1.0 / (m00*c.t0 + m10*c.t1 + m20*c.t2 + m30*c.t3)

	return Mat4{
		d * c.t0,
		d * c.t1,
		d * c.t2,
		d * c.t3,
		d * ((t[1]*m10 + t[2]*m20 + t[5]*m30) - (t[0]*m10 + t[3]*m20 + t[4]*m30)),
		d * ((t[0]*m00 + t[7]*m20 + t[8]*m30) - (t[1]*m00 + t[6]*m20 + t[9]*m30)),
		d * ((t[3]*m00 + t[6]*m10 + t[11]*m30) - (t[2]*m00 + t[7]*m10 + t[10]*m30)),
		d * ((t[4]*m00 + t[9]*m10 + t[10]*m20) - (t[5]*m00 + t[8]*m10 + t[11]*m20)),
		d * ((t[12]*m13 + t[15]*m23 + t[16]*m33) - (t[13]*m13 + t[14]*m23 + t[17]*m33)),
		d * ((t[13]*m03 + t[18]*m23 + t[21]*m33) - (t[12]*m03 + t[19]*m23 + t[20]*m33)),
		d * ((t[14]*m03 + t[19]*m13 + t[22]*m33) - (t[15]*m03 + t[18]*m13 + t[23]*m33)),
		d * ((t[17]*m03 + t[20]*m13 + t[23]*m23) - (t[16]*m03 + t[21]*m13 + t[22]*m23)),
		d * ((t[14]*m22 + t[17]*m32 + t[13]*m12) - (t[16]*m32 + t[12]*m12 + t[15]*m22)),
		d * ((t[20]*m32 + t[12]*m02 + t[19]*m22) - (t[18]*m22 + t[21]*m32 + t[13]*m02)),
		d * ((t[18]*m12 + t[23]*m32 + t[15]*m02) - (t[22]*m32 + t[14]*m02 + t[19]*m12)),
		d * ((t[22]*m22 + t[16]*m02 + t[21]*m12) - (t[20]*m12 + t[23]*m22 + t[17]*m02)),
	}
}

