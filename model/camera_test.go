package model

import (
	"math"
	"testing"

	vm "github.com/mei1161/0522-3D/vector_math"
)

// Clip space positions of the cube corners at angle 0 for a 1280x720 view.
var clipAtZero = [8]vm.Vec4{
	{X: -1.049639, Y: 0.517542, Z: 1.931491, W: 2.912176},
	{X: 1.049639, Y: 0.517542, Z: 1.931491, W: 2.912176},
	{X: -1.049639, Y: -2.587712, Z: 2.491794, W: 3.466876},
	{X: 1.049639, Y: -2.587712, Z: 2.491794, W: 3.466876},
	{X: -1.049639, Y: 2.587712, Z: 2.771946, W: 3.744226},
	{X: 1.049639, Y: 2.587712, Z: 2.771946, W: 3.744226},
	{X: -1.049639, Y: -0.517542, Z: 3.332249, W: 4.298927},
	{X: 1.049639, Y: -0.517542, Z: 3.332249, W: 4.298927},
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestProjectionMatchesReference(t *testing.T) {
	cam := NewCamera(1280, 720)
	var s Spinner
	wvp := NewEffectMatrices(s.Advance(), cam).WorldViewProjection()
	for i, v := range CubeVertices {
		got := wvp.MulVec4(v.Pos.Point())
		want := clipAtZero[i]
		if !near(got.X, want.X) || !near(got.Y, want.Y) || !near(got.Z, want.Z) || !near(got.W, want.W) {
			t.Errorf("Vertex %d projected to %+v, expected %+v", i, got, want)
		}
	}
}

func TestCubeInsideFrustum(t *testing.T) {
	cam := NewCamera(1280, 720)
	s := Spinner{}
	for frame := 0; frame < 360; frame++ {
		wvp := NewEffectMatrices(s.Advance(), cam).WorldViewProjection()
		for i, v := range CubeVertices {
			c := wvp.MulVec4(v.Pos.Point())
			if c.W <= 0 || c.Z < 0 || c.Z > c.W {
				t.Fatalf("Frame %d vertex %d leaves the depth range: %+v", frame, i, c)
			}
		}
	}
}

func TestPushConstantsFlipY(t *testing.T) {
	cam := NewCamera(1280, 720)
	e := NewEffectMatrices(vm.NewUnitMat(4), cam)
	b := e.PushConstants()
	if len(b) != PushConstantSize {
		t.Fatalf("Expected %d bytes, got %d", PushConstantSize, len(b))
	}
	// Column 1, row 1 of the corrected matrix is the negated y scale.
	off := (1*4 + 1) * 4
	bits := uint32(b[off]) | uint32(b[off+1])<<8 | uint32(b[off+2])<<16 | uint32(b[off+3])<<24
	got := math.Float32frombits(bits)
	wvp := e.WorldViewProjection()
	if !near(got, -wvp[1][1]) {
		t.Errorf("Expected flipped y scale %f, got %f", -wvp[1][1], got)
	}
}
