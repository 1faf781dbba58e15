package math

import "github.com/chewxy/math32"

// Mat4 is a 4x4 matrix stored column-major: element (row r, col c) lives at
// index c*4+r. The layout matches OpenGL uniforms and mgl32.Mat4.
type Mat4 [16]float32

// singularEpsilon is the determinant magnitude below which Invert refuses to
// divide.
const singularEpsilon = 1e-4

// wEpsilon guards the perspective divide in TransformPoint.
const wEpsilon = 1e-7

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func Mat4Translation(t Vec3) Mat4 {
	m := Mat4Identity()
	m[12], m[13], m[14] = t.X, t.Y, t.Z
	return m
}

func Mat4Scale(s Vec3) Mat4 {
	m := Mat4Identity()
	m[0], m[5], m[10] = s.X, s.Y, s.Z
	return m
}

// Mat4RotationX rotates counter-clockwise about +X when looking down the axis.
func Mat4RotationX(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// Mat4RotationY maps +Z onto (sin a, 0, cos a).
func Mat4RotationY(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// Mat4Perspective builds a right-handed OpenGL projection (clip z in [-1,1]).
// fovDegrees is the full vertical field of view.
func Mat4Perspective(fovDegrees, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovDegrees*math32.Pi/360)
	d := far - near
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, -(far + near) / d, -1,
		0, 0, -(2 * far * near) / d, 0,
	}
}

// Mat4LookAt builds a view matrix from an orthonormal basis:
// z = normalize(eye-center), x = normalize(up × z), y = z × x.
func Mat4LookAt(eye, center, up Vec3) Mat4 {
	z := eye.Sub(center).Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x)
	return Mat4{
		x.X, y.X, z.X, 0,
		x.Y, y.Y, z.Y, 0,
		x.Z, y.Z, z.Z, 0,
		-x.Dot(eye), -y.Dot(eye), -z.Dot(eye), 1,
	}
}

// Mul returns m*other. Composition reads right to left: world = parent.Mul(local).
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * other[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

func (m Mat4) At(row, col int) float32 {
	return m[col*4+row]
}

func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[row*4+col] = m[col*4+row]
		}
	}
	return out
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{X: m[12], Y: m[13], Z: m[14]}
}

// ApproxEqual compares element-wise within eps.
func (m Mat4) ApproxEqual(other Mat4, eps float32) bool {
	for i := range m {
		if math32.Abs(m[i]-other[i]) > eps {
			return false
		}
	}
	return true
}

// Identity resets m in place.
func (m *Mat4) Identity() *Mat4 {
	*m = Mat4Identity()
	return m
}

// Copy overwrites m with src.
func (m *Mat4) Copy(src Mat4) *Mat4 {
	*m = src
	return m
}

// Multiply sets m = m*b.
func (m *Mat4) Multiply(b Mat4) *Mat4 {
	*m = m.Mul(b)
	return m
}

// Translate sets m = m*T(x,y,z).
func (m *Mat4) Translate(x, y, z float32) *Mat4 {
	for row := 0; row < 4; row++ {
		m[12+row] += m[row]*x + m[4+row]*y + m[8+row]*z
	}
	return m
}

// Scale sets m = m*S(x,y,z).
func (m *Mat4) Scale(x, y, z float32) *Mat4 {
	for row := 0; row < 4; row++ {
		m[row] *= x
		m[4+row] *= y
		m[8+row] *= z
	}
	return m
}

// RotateX sets m = m*Rx(angle).
func (m *Mat4) RotateX(angle float32) *Mat4 {
	s, c := math32.Sincos(angle)
	for row := 0; row < 4; row++ {
		y, z := m[4+row], m[8+row]
		m[4+row] = c*y + s*z
		m[8+row] = c*z - s*y
	}
	return m
}

// RotateY sets m = m*Ry(angle).
func (m *Mat4) RotateY(angle float32) *Mat4 {
	s, c := math32.Sincos(angle)
	for row := 0; row < 4; row++ {
		x, z := m[row], m[8+row]
		m[row] = c*x - s*z
		m[8+row] = s*x + c*z
	}
	return m
}

// Invert replaces m with its inverse, assuming m is affine (rotation, scale
// and translation with a [0 0 0 1] bottom row). When the upper 3x3
// determinant is below 1e-4 in magnitude, m is left untouched and Invert
// returns false.
func (m *Mat4) Invert() bool {
	a, b, c := m[0], m[1], m[2]
	e, f, g := m[4], m[5], m[6]
	i, j, k := m[8], m[9], m[10]

	det := a*(f*k-g*j) - b*(e*k-g*i) + c*(e*j-f*i)
	if math32.Abs(det) < singularEpsilon {
		return false
	}
	inv := 1 / det

	var out Mat4
	out[0] = (f*k - g*j) * inv
	out[1] = -(b*k - c*j) * inv
	out[2] = (b*g - c*f) * inv

	out[4] = -(e*k - g*i) * inv
	out[5] = (a*k - c*i) * inv
	out[6] = -(a*g - c*e) * inv

	out[8] = (e*j - f*i) * inv
	out[9] = -(a*j - b*i) * inv
	out[10] = (a*f - b*e) * inv

	tx, ty, tz := m[12], m[13], m[14]
	out[12] = -(out[0]*tx + out[4]*ty + out[8]*tz)
	out[13] = -(out[1]*tx + out[5]*ty + out[9]*tz)
	out[14] = -(out[2]*tx + out[6]*ty + out[10]*tz)
	out[15] = 1

	*m = out
	return true
}

// TransformPoint applies the full matrix to p with w=1 and divides by the
// resulting w. If w is (near) zero the undivided xyz is returned with ok=false.
func (m Mat4) TransformPoint(p Vec3) (Vec3, bool) {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if math32.Abs(w) < wEpsilon {
		return Vec3{X: x, Y: y, Z: z}, false
	}
	return Vec3{X: x / w, Y: y / w, Z: z / w}, true
}

// TransformVector applies only the upper 3x3 and renormalizes the result.
func (m Mat4) TransformVector(v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}.Normalize()
}
