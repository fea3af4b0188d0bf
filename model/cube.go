package model

import vm "github.com/mei1161/0522-3D/vector_math"

var (
	red    = vm.Vec4{X: 1, Y: 0, Z: 0, W: 1}
	green  = vm.Vec4{X: 0, Y: 1, Z: 0, W: 1}
	blue   = vm.Vec4{X: 0, Y: 0, Z: 1, W: 1}
	yellow = vm.Vec4{X: 1, Y: 1, Z: 0, W: 1}
)

// CubeVertices are the corners of a unit cube centered at the origin. The
// front face (+Z) is 0..3, the back face (-Z) is 4..7.
var CubeVertices = [8]Vertex{
	{Pos: vm.Vec3{X: -0.5, Y: 0.5, Z: 0.5}, Color: red},
	{Pos: vm.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, Color: green},
	{Pos: vm.Vec3{X: -0.5, Y: -0.5, Z: 0.5}, Color: blue},
	{Pos: vm.Vec3{X: 0.5, Y: -0.5, Z: 0.5}, Color: yellow},
	{Pos: vm.Vec3{X: -0.5, Y: 0.5, Z: -0.5}, Color: red},
	{Pos: vm.Vec3{X: 0.5, Y: 0.5, Z: -0.5}, Color: green},
	{Pos: vm.Vec3{X: -0.5, Y: -0.5, Z: -0.5}, Color: blue},
	{Pos: vm.Vec3{X: 0.5, Y: -0.5, Z: -0.5}, Color: yellow},
}

// CubeIndices is a closed triangle list, clockwise when seen from outside.
var CubeIndices = [36]uint16{
	0, 1, 2, 2, 1, 3, // front
	0, 4, 5, 0, 5, 1, // top
	1, 5, 3, 3, 5, 7, // right
	5, 4, 7, 7, 4, 6, // back
	6, 4, 0, 6, 0, 2, // left
	6, 2, 3, 6, 3, 7, // bottom
}

type Mesh struct {
	Vertices []Vertex
	Indices  []uint16
}

// NewCubeMesh returns slices over copies of the cube arrays.
func NewCubeMesh() *Mesh {
	v := CubeVertices
	id := CubeIndices
	return &Mesh{
		Vertices: v[:],
		Indices:  id[:],
	}
}
