package model

import (
	vm "github.com/mei1161/0522-3D/vector_math"
)

// Camera is a fixed right handed perspective camera.
type Camera struct {
	Eye    vm.Vec3
	Target vm.Vec3
	Up     vm.Vec3

	FovY   float64 // degrees
	Aspect float64
	Near   float32
	Far    float32
}

// NewCamera places the eye above and in front of the origin, looking at it.
func NewCamera(width, height int) *Camera {
	return &Camera{
		Eye:    vm.Vec3{X: 0, Y: 2, Z: 3},
		Target: vm.Vec3{},
		Up:     vm.Vec3{Y: 1},
		FovY:   30,
		Aspect: float64(width) / float64(height),
		Near:   1,
		Far:    100,
	}
}

func (c *Camera) View() vm.Mat {
	return vm.NewLookAtRH(c.Eye, c.Target, c.Up)
}

func (c *Camera) Projection() vm.Mat {
	return vm.NewPerspectiveRH(vm.ToRad(c.FovY), c.Aspect, c.Near, c.Far)
}
