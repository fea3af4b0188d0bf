package model

import vm "github.com/mei1161/0522-3D/vector_math"

// Spinner holds the rotation of the cube around +Y in degrees. The angle
// grows without bound.
type Spinner struct {
	Angle float64
}

// Advance returns the world transform for the current angle and then moves
// the angle forward by one degree.
func (s *Spinner) Advance() vm.Mat {
	world := s.World()
	s.Angle += 1
	return world
}

func (s *Spinner) World() vm.Mat {
	return vm.NewRotationY(vm.ToRad(s.Angle))
}
