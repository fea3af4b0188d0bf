package vector_math

import (
	"math"
	"testing"
)

const eps = 1e-5

// TestNewMat calls NewMat and confirms some general size constraints
func TestNewMat(t *testing.T) {
	mat0, err := NewMat(0, 0)
	if mat0 != nil || err == nil {
		t.Errorf("Should not be able to create mat0: %s", mat0.ToString())
	}
	for s := uint(1); s <= 6; s++ {
		m, err := NewMat(s, s)
		if err != nil {
			t.Fatalf("Error creating matrix of size %dx%d: %s", s, s, err)
		}
		if m.ByteSize() != int(4*s*s) {
			t.Errorf("%dx%d matrix should have byte size %d but was %d", s, s, 4*s*s, m.ByteSize())
		}
	}
}

func TestMultSizeMismatch(t *testing.T) {
	a, _ := NewMat(2, 3)
	b, _ := NewMat(2, 3)
	if _, err := a.Mult(&b); err == nil {
		t.Errorf("Multiplying 2x3 with 2x3 should fail")
	}
}

func TestRotationY(t *testing.T) {
	for _, deg := range []float64{0, 1, 45, 90, 181, 720} {
		mry := NewRotationY(ToRad(deg))
		mryComplex := NewRotation(ToRad(deg), Vec3{Y: 1})
		if !mry.ApproxEquals(&mryComplex, eps) {
			t.Errorf(
				"RotY(%v) not equal to generic rotation around Y. RotY: \n%s\n Rotation around y-axis: \n%s",
				deg, mry.ToString(), mryComplex.ToString(),
			)
		}
	}
}

func TestRotationYTurnsXTowardsMinusZ(t *testing.T) {
	m := NewRotationY(ToRad(90))
	got := m.MulVec4(Vec4{X: 1, W: 1})
	if math.Abs(float64(got.X)) > eps || math.Abs(float64(got.Z+1)) > eps || got.W != 1 {
		t.Errorf("Expected +X to rotate onto -Z, got %+v", got)
	}
}

func TestArbitraryRotation(t *testing.T) {
	mr := NewRotation(ToRad(-74), Vec3{X: -0.5, Y: 1, Z: 1})
	mrExample := NewUnitMat(4)
	mrExample[0][0] = 0.3561221
	mrExample[0][1] = 0.47987163
	mrExample[0][2] = -0.8018106

	mrExample[1][0] = -0.8018106
	mrExample[1][1] = 0.5975763
	mrExample[1][2] = 0.0015183985

	mrExample[2][0] = 0.47987163
	mrExample[2][1] = 0.6423595
	mrExample[2][2] = 0.5975763

	if !mr.ApproxEquals(&mrExample, eps) {
		t.Errorf(
			"Arbitrary rotation didnt match expectations. expectation: \n%s\n actual: \n%s",
			mrExample.ToString(),
			mr.ToString(),
		)
	}
}

func TestLookAtRHMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{Y: 2, Z: 3}
	view := NewLookAtRH(eye, Vec3{}, Vec3{Y: 1})
	got := view.MulVec4(eye.Point())
	if math.Abs(float64(got.X)) > eps || math.Abs(float64(got.Y)) > eps || math.Abs(float64(got.Z)) > eps {
		t.Errorf("Eye should map to the origin, got %+v", got)
	}
	target := view.MulVec4(Vec4{W: 1})
	if target.Z >= 0 {
		t.Errorf("Target should be in front of the camera (negative z), got %+v", target)
	}
}

func TestPerspectiveRHDepthRange(t *testing.T) {
	p := NewPerspectiveRH(ToRad(30), 1280.0/720.0, 1, 100)
	near := p.MulVec4(Vec4{Z: -1, W: 1})
	far := p.MulVec4(Vec4{Z: -100, W: 1})
	if d := near.Z / near.W; math.Abs(float64(d)) > eps {
		t.Errorf("Near plane should map to depth 0, got %f", d)
	}
	if d := far.Z / far.W; math.Abs(float64(d-1)) > eps {
		t.Errorf("Far plane should map to depth 1, got %f", d)
	}
}

func TestUnroll(t *testing.T) {
	m, _ := NewMat(2, 3)
	m[0] = []float32{1, 2, 3}
	m[1] = []float32{4, 5, 6}
	want := []float32{1, 2, 3, 4, 5, 6}
	got := m.Unroll()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Unroll mismatch at %d: %v", i, got)
		}
	}
	wantCols := []float32{1, 4, 2, 5, 3, 6}
	gotCols := m.ColumnMajor()
	for i := range wantCols {
		if gotCols[i] != wantCols[i] {
			t.Fatalf("ColumnMajor mismatch at %d: %v", i, gotCols)
		}
	}
}

func TestTranspose(t *testing.T) {
	m, _ := NewMat(3, 4)
	m[1][3] = 7
	mT := m.Transpose()
	if r, c := mT.Size(); r != 4 || c != 3 {
		t.Fatalf("Transpose of 3x4 should be 4x3, got %dx%d", r, c)
	}
	if mT[3][1] != 7 {
		t.Errorf("Transposed element misplaced:\n%s", mT.ToString())
	}
}

func TestChain(t *testing.T) {
	sc := NewScale(Vec3{X: 2, Y: 2, Z: 2})
	m := Chain(NewClipCorrection(), sc)
	got := m.MulVec4(Vec4{X: 1, Y: 1, W: 1})
	if got.X != 2 || got.Y != -2 || got.W != 1 {
		t.Errorf("Expected scale then flip to give (2, -2), got %+v", got)
	}
}
