package math

import (
	stdmath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const tolerance = float32(1e-4)

func approx(a, b float32) bool {
	return stdmath.Abs(float64(a-b)) <= float64(tolerance)
}

func vecApprox(a, b Vec3) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

// sample builds a handful of non-trivial affine matrices.
func sampleMatrices() []Mat4 {
	a := Mat4Identity()
	a.Translate(1, 2, 3).RotateY(0.7).Scale(2, 1, 0.5)

	b := Mat4Identity()
	b.RotateX(-1.1).Translate(-4, 0.5, 9)

	c := Mat4Identity()
	c.Scale(3, 3, 3).RotateY(2.5).RotateX(0.3).Translate(0, -7, 2)

	return []Mat4{a, b, c}
}

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	if got := v1.Add(v2); got != NewVec3(5, 7, 9) {
		t.Errorf("Add: got %v", got)
	}
	if got := v2.Sub(v1); got != NewVec3(3, 3, 3) {
		t.Errorf("Sub: got %v", got)
	}
	if got := v1.Mul(2); got != NewVec3(2, 4, 6) {
		t.Errorf("Mul: got %v", got)
	}
	if got := v1.Dot(v2); got != 32 {
		t.Errorf("Dot: expected 32, got %v", got)
	}
	// Right x Up = Front in a right-handed system
	if got := Vec3Right.Cross(Vec3Up); got != Vec3Front {
		t.Errorf("Cross: expected %v, got %v", Vec3Front, got)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := NewVec3(3, 0, 0).Normalize()
	if n != NewVec3(1, 0, 0) {
		t.Errorf("Normalize: got %v", n)
	}
	if z := Vec3Zero.Normalize(); z != Vec3Zero {
		t.Errorf("Normalize(zero): got %v", z)
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		name       string
		yaw, pitch float32
		want       Vec3
	}{
		{"forward", 0, 0, Vec3Front},
		{"quarter turn", stdmath.Pi / 2, 0, Vec3Right},
		{"straight up", 0, stdmath.Pi / 2, Vec3Up},
		{"behind", stdmath.Pi, 0, Vec3Back},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Direction(tt.yaw, tt.pitch); !vecApprox(got, tt.want) {
				t.Errorf("Direction(%v, %v) = %v, want %v", tt.yaw, tt.pitch, got, tt.want)
			}
		})
	}
}

func TestMat4Identity(t *testing.T) {
	m := Mat4Identity()
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			want := float32(0)
			if row == col {
				want = 1
			}
			if m.At(row, col) != want {
				t.Errorf("Identity[%d][%d] = %v", row, col, m.At(row, col))
			}
		}
	}

	for _, s := range sampleMatrices() {
		if got := Mat4Identity().Mul(s); got != s {
			t.Errorf("I*M changed M: %v", got)
		}
		if got := s.Mul(Mat4Identity()); got != s {
			t.Errorf("M*I changed M: %v", got)
		}
	}
}

func TestMat4MulAssociative(t *testing.T) {
	ms := sampleMatrices()
	a, b, c := ms[0], ms[1], ms[2]
	left := a.Mul(b).Mul(c)
	right := a.Mul(b.Mul(c))
	if !left.ApproxEqual(right, 1e-3) {
		t.Errorf("(AB)C != A(BC):\n%v\n%v", left, right)
	}
}

func TestMat4MulMatchesMathGL(t *testing.T) {
	ms := sampleMatrices()
	got := ms[0].Mul(ms[2])
	want := Mat4(mgl32.Mat4(ms[0]).Mul4(mgl32.Mat4(ms[2])))
	if !got.ApproxEqual(want, 1e-4) {
		t.Errorf("Mul mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestMat4InPlaceMutatorsPostMultiply(t *testing.T) {
	base := sampleMatrices()[1]

	tests := []struct {
		name  string
		apply func(m *Mat4) *Mat4
		want  Mat4
	}{
		{"translate", func(m *Mat4) *Mat4 { return m.Translate(1, -2, 3) }, base.Mul(Mat4Translation(NewVec3(1, -2, 3)))},
		{"scale", func(m *Mat4) *Mat4 { return m.Scale(2, 3, 4) }, base.Mul(Mat4Scale(NewVec3(2, 3, 4)))},
		{"rotateX", func(m *Mat4) *Mat4 { return m.RotateX(0.4) }, base.Mul(Mat4RotationX(0.4))},
		{"rotateY", func(m *Mat4) *Mat4 { return m.RotateY(-1.3) }, base.Mul(Mat4RotationY(-1.3))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := base
			if ret := tt.apply(&m); ret != &m {
				t.Errorf("mutator did not return the receiver")
			}
			if !m.ApproxEqual(tt.want, 1e-4) {
				t.Errorf("got %v, want %v", m, tt.want)
			}
		})
	}
}

func TestMat4RotationsMatchMathGL(t *testing.T) {
	for _, angle := range []float32{-2, -0.5, 0, 0.3, 1.57, 3} {
		if got, want := Mat4RotationX(angle), Mat4(mgl32.HomogRotate3DX(angle)); !got.ApproxEqual(want, 1e-6) {
			t.Errorf("RotationX(%v) = %v, want %v", angle, got, want)
		}
		if got, want := Mat4RotationY(angle), Mat4(mgl32.HomogRotate3DY(angle)); !got.ApproxEqual(want, 1e-6) {
			t.Errorf("RotationY(%v) = %v, want %v", angle, got, want)
		}
	}
}

func TestMat4Translation(t *testing.T) {
	translation := NewVec3(1, 2, 3)
	m := Mat4Translation(translation)

	if m.Translation() != translation {
		t.Errorf("Translation: expected %v, got %v", translation, m.Translation())
	}
	p, ok := m.TransformPoint(Vec3Zero)
	if !ok || p != translation {
		t.Errorf("TransformPoint: expected %v, got %v (ok=%v)", translation, p, ok)
	}
}

func TestMat4Perspective(t *testing.T) {
	got := Mat4Perspective(60, 16.0/9.0, 0.1, 1000)
	want := Mat4(mgl32.Perspective(mgl32.DegToRad(60), 16.0/9.0, 0.1, 1000))
	if !got.ApproxEqual(want, 1e-4) {
		t.Errorf("Perspective:\n got %v\nwant %v", got, want)
	}

	// A point on the near plane along -Z maps to NDC z = -1.
	ndc, ok := got.TransformPoint(NewVec3(0, 0, -0.1))
	if !ok || !approx(ndc.Z, -1) {
		t.Errorf("near plane: got %v (ok=%v)", ndc, ok)
	}
}

func TestMat4LookAt(t *testing.T) {
	eye := NewVec3(3, 4, 5)
	center := NewVec3(-1, 0.5, 2)

	got := Mat4LookAt(eye, center, Vec3Up)
	want := Mat4(mgl32.LookAtV(mgl32.Vec3{3, 4, 5}, mgl32.Vec3{-1, 0.5, 2}, mgl32.Vec3{0, 1, 0}))
	if !got.ApproxEqual(want, 1e-4) {
		t.Errorf("LookAt:\n got %v\nwant %v", got, want)
	}

	// The eye lands on the origin and the center on the -Z axis.
	if p, _ := got.TransformPoint(eye); !vecApprox(p, Vec3Zero) {
		t.Errorf("LookAt: expected eye at origin, got %v", p)
	}
	p, _ := got.TransformPoint(center)
	if !approx(p.X, 0) || !approx(p.Y, 0) || p.Z >= 0 {
		t.Errorf("LookAt: expected center on -Z, got %v", p)
	}
}

func TestMat4Invert(t *testing.T) {
	for i, s := range sampleMatrices() {
		inv := s
		if !inv.Invert() {
			t.Fatalf("matrix %d: unexpected inversion failure", i)
		}
		if got := s.Mul(inv); !got.ApproxEqual(Mat4Identity(), 1e-4) {
			t.Errorf("matrix %d: M*inv(M) = %v", i, got)
		}
		if got := inv.Mul(s); !got.ApproxEqual(Mat4Identity(), 1e-4) {
			t.Errorf("matrix %d: inv(M)*M = %v", i, got)
		}
	}
}

func TestMat4InvertSingular(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
	}{
		{"zero scale axis", Mat4Scale(NewVec3(1, 0, 1))},
		{"tiny scale", Mat4Scale(NewVec3(0.01, 0.01, 0.01))},
		{"all zero", Mat4{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.m
			m.Translate(1, 2, 3)
			before := m
			if m.Invert() {
				t.Fatalf("expected failure on singular matrix")
			}
			if m != before {
				t.Errorf("singular matrix was modified: %v", m)
			}
		})
	}
}

func TestMat4TransformPointZeroW(t *testing.T) {
	var m Mat4 // w row is all zero
	m[0], m[5], m[10] = 1, 1, 1
	p, ok := m.TransformPoint(NewVec3(2, 3, 4))
	if ok {
		t.Errorf("expected ok=false for w=0")
	}
	if p != NewVec3(2, 3, 4) {
		t.Errorf("expected undivided point, got %v", p)
	}
}

func TestMat4TransformVector(t *testing.T) {
	m := Mat4Identity()
	m.Translate(10, 20, 30).RotateY(stdmath.Pi / 2).Scale(5, 5, 5)

	got := m.TransformVector(Vec3Front)
	if !vecApprox(got, Vec3Right) {
		t.Errorf("TransformVector: expected %v, got %v", Vec3Right, got)
	}
	if !approx(got.Length(), 1) {
		t.Errorf("TransformVector: expected unit length, got %v", got.Length())
	}
}

func TestScalarHelpers(t *testing.T) {
	if Clamp(5, 0, 1) != 1 || Clamp(-5, 0, 1) != 0 || Clamp(0.5, 0, 1) != 0.5 {
		t.Errorf("Clamp misbehaves")
	}
	if got := Approach(0, 10, 0.25); got != 2.5 {
		t.Errorf("Approach: expected 2.5, got %v", got)
	}
	if got := Approach(0, 10, 4); got != 10 {
		t.Errorf("Approach: rate must cap at 1, got %v", got)
	}
	if got := WrapAngle(2.5 * stdmath.Pi); !approx(got, 0.5*stdmath.Pi) {
		t.Errorf("WrapAngle(2.5pi) = %v", got)
	}
	if got := WrapAngle(-1.5 * stdmath.Pi); !approx(got, 0.5*stdmath.Pi) {
		t.Errorf("WrapAngle(-1.5pi) = %v", got)
	}
}

func TestMat4MulVec4(t *testing.T) {
	m := sampleMatrices()[0]
	p := NewVec3(0.5, -2, 7)
	clip := m.MulVec4(NewVec4(p.X, p.Y, p.Z, 1))
	want, _ := m.TransformPoint(p)
	if clip.W != 1 || !vecApprox(clip.ToVec3(), want) {
		t.Errorf("MulVec4: got %v, want %v", clip, want)
	}
}

func TestVec2InUnitSquare(t *testing.T) {
	if !NewVec2(0.99, -1).InUnitSquare() {
		t.Errorf("expected point on the edge to be inside")
	}
	if NewVec2(1.01, 0).InUnitSquare() {
		t.Errorf("expected point past +X edge to be outside")
	}
	if got := Lerp(2, 4, 0.25); got != 2.5 {
		t.Errorf("Lerp: expected 2.5, got %v", got)
	}
}

func BenchmarkVec3Add(b *testing.B) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)
	for i := 0; i < b.N; i++ {
		_ = v1.Add(v2)
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	ms := sampleMatrices()
	for i := 0; i < b.N; i++ {
		_ = ms[0].Mul(ms[1])
	}
}

func BenchmarkMat4Invert(b *testing.B) {
	src := sampleMatrices()[2]
	for i := 0; i < b.N; i++ {
		m := src
		m.Invert()
	}
}
