package vector_math

import "math"

func NewUnitMat(s uint) Mat {
	um, _ := NewMat(s, s)
	for i := range um {
		um[i][i] = 1
	}
	return um
}

// NewRotationY rotates counter clockwise around +Y when looking down the
// axis towards the origin.
func NewRotationY(rad float64) Mat {
	c := float32(math.Cos(rad))
	s := float32(math.Sin(rad))
	m := NewUnitMat(4)
	m[0][0] = c
	m[0][2] = s
	m[2][0] = -s
	m[2][2] = c
	return m
}

// NewRotation builds a rotation of rad around an arbitrary axis.
func NewRotation(rad float64, axis Vec3) Mat {
	u := axis
	if u.Dot(u) != 1 {
		u = u.Norm()
	}
	cosT := float32(math.Cos(rad))
	sinT := float32(math.Sin(rad))
	rm := NewUnitMat(4)
	rm[0][0] = cosT + (u.X*u.X)*(1-cosT)
	rm[0][1] = (u.X*u.Y)*(1-cosT) - u.Z*sinT
	rm[0][2] = (u.X*u.Z)*(1-cosT) + u.Y*sinT

	rm[1][0] = (u.Y*u.X)*(1-cosT) + u.Z*sinT
	rm[1][1] = cosT + (u.Y*u.Y)*(1-cosT)
	rm[1][2] = (u.Y*u.Z)*(1-cosT) - u.X*sinT

	rm[2][0] = (u.Z*u.X)*(1-cosT) - u.Y*sinT
	rm[2][1] = (u.Z*u.Y)*(1-cosT) + u.X*sinT
	rm[2][2] = cosT + (u.Z*u.Z)*(1-cosT)
	return rm
}

func NewScale(s Vec3) Mat {
	sm := NewUnitMat(4)
	sm[0][0] = s.X
	sm[1][1] = s.Y
	sm[2][2] = s.Z
	return sm
}

// NewLookAtRH builds a right handed view matrix. The camera looks down its
// local -Z axis.
func NewLookAtRH(eye Vec3, target Vec3, up Vec3) Mat {
	zAxis := eye.Sub(target).Norm()
	xAxis := up.Cross(zAxis).Norm()
	yAxis := zAxis.Cross(xAxis)

	m := NewUnitMat(4)
	for i, axis := range []Vec3{xAxis, yAxis, zAxis} {
		m[i][0] = axis.X
		m[i][1] = axis.Y
		m[i][2] = axis.Z
		m[i][3] = -axis.Dot(eye)
	}
	return m
}

// NewPerspectiveRH maps view space depth [-near, -far] onto [0, 1].
func NewPerspectiveRH(fovy float64, aspect float64, near float32, far float32) Mat {
	yScale := float32(1 / math.Tan(fovy/2))
	xScale := yScale / float32(aspect)
	m, _ := NewMat(4, 4)
	m[0][0] = xScale
	m[1][1] = yScale
	m[2][2] = far / (near - far)
	m[2][3] = near * far / (near - far)
	m[3][2] = -1
	return m
}

// NewClipCorrection flips Y so a projection written for a Y-up clip space
// lands right side up in Vulkan's Y-down clip space.
func NewClipCorrection() Mat {
	return NewScale(Vec3{X: 1, Y: -1, Z: 1})
}
