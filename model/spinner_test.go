package model

import (
	"math"
	"testing"

	vm "github.com/mei1161/0522-3D/vector_math"
)

func TestSpinnerAdvancesOneDegree(t *testing.T) {
	var s Spinner
	for frame := 0; frame < 1000; frame++ {
		before := s.Angle
		world := s.Advance()
		if s.Angle != before+1 {
			t.Fatalf("Frame %d: angle went from %v to %v", frame, before, s.Angle)
		}
		want := vm.NewRotationY(vm.ToRad(before))
		if !world.ApproxEquals(&want, 1e-6) {
			t.Fatalf("Frame %d: world was not built from the pre-increment angle", frame)
		}
	}
	if s.Angle != 1000 {
		t.Errorf("Angle should not wrap, got %v", s.Angle)
	}
}

func TestSpinnerWorldIsPureYRotation(t *testing.T) {
	s := Spinner{Angle: 37}
	w := s.World()
	if w[1][1] != 1 || w[0][1] != 0 || w[1][0] != 0 || w[2][1] != 0 || w[1][2] != 0 {
		t.Errorf("Y axis must be left untouched:\n%s", w.ToString())
	}
	if w[0][3] != 0 || w[1][3] != 0 || w[2][3] != 0 || w[3][3] != 1 {
		t.Errorf("World must not translate:\n%s", w.ToString())
	}
	// rotation preserves length, so no scale
	for _, v := range CubeVertices {
		p := w.MulVec4(v.Pos.Point())
		l := math.Sqrt(float64(p.X*p.X + p.Y*p.Y + p.Z*p.Z))
		if math.Abs(l-math.Sqrt(0.75)) > 1e-5 {
			t.Errorf("Rotated corner has length %f", l)
		}
	}
}
