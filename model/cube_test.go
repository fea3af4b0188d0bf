package model

import (
	"testing"
)

func TestCubeIndicesInRange(t *testing.T) {
	if len(CubeIndices)%3 != 0 {
		t.Fatalf("Index count %d is not a triangle list", len(CubeIndices))
	}
	if got := len(CubeIndices) / 3; got != 12 {
		t.Errorf("Expected 12 triangles, got %d", got)
	}
	for i, id := range CubeIndices {
		if int(id) >= len(CubeVertices) {
			t.Errorf("Index %d references vertex %d outside of 0..%d", i, id, len(CubeVertices)-1)
		}
	}
}

func TestCubeIsClosedAndConsistentlyWound(t *testing.T) {
	type edge struct{ a, b uint16 }
	directed := map[edge]int{}
	undirected := map[edge]int{}
	for tri := 0; tri < len(CubeIndices); tri += 3 {
		v := CubeIndices[tri : tri+3]
		if v[0] == v[1] || v[1] == v[2] || v[0] == v[2] {
			t.Errorf("Triangle %d is degenerate: %v", tri/3, v)
		}
		for k := 0; k < 3; k++ {
			a, b := v[k], v[(k+1)%3]
			directed[edge{a, b}]++
			if a > b {
				a, b = b, a
			}
			undirected[edge{a, b}]++
		}
	}
	if len(undirected) != 18 {
		t.Errorf("Expected 18 distinct edges, got %d", len(undirected))
	}
	for e, n := range undirected {
		if n != 2 {
			t.Errorf("Edge %v shared by %d triangles, expected 2", e, n)
		}
	}
	for e, n := range directed {
		if n != 1 {
			t.Errorf("Directed edge %v used %d times, winding is inconsistent", e, n)
		}
	}
}

func TestCubeTrianglesFaceInwardNormal(t *testing.T) {
	// Clockwise from outside means the right handed normal points towards the center.
	for tri := 0; tri < len(CubeIndices); tri += 3 {
		p0 := CubeVertices[CubeIndices[tri]].Pos
		p1 := CubeVertices[CubeIndices[tri+1]].Pos
		p2 := CubeVertices[CubeIndices[tri+2]].Pos
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		centroid := p0
		centroid.X = (p0.X + p1.X + p2.X) / 3
		centroid.Y = (p0.Y + p1.Y + p2.Y) / 3
		centroid.Z = (p0.Z + p1.Z + p2.Z) / 3
		if n.Dot(centroid) >= 0 {
			t.Errorf("Triangle %d is not clockwise from outside", tri/3)
		}
	}
}

func TestCubeVerticesAreUnitCube(t *testing.T) {
	for i, v := range CubeVertices {
		for _, c := range []float32{v.Pos.X, v.Pos.Y, v.Pos.Z} {
			if c != 0.5 && c != -0.5 {
				t.Errorf("Vertex %d has coordinate %f, expected +-0.5", i, c)
			}
		}
		if v.Color.W != 1 {
			t.Errorf("Vertex %d should be opaque, alpha is %f", i, v.Color.W)
		}
	}
}

func TestNewCubeMeshCopies(t *testing.T) {
	m := NewCubeMesh()
	m.Vertices[0].Pos.X = 42
	m.Indices[0] = 7
	if CubeVertices[0].Pos.X == 42 || CubeIndices[0] == 7 {
		t.Errorf("NewCubeMesh must not alias the fixed cube arrays")
	}
}

func TestVertexBytes(t *testing.T) {
	m := NewCubeMesh()
	if got := len(VertexBytes(m.Vertices)); got != 8*VertexStride {
		t.Errorf("Expected %d vertex bytes, got %d", 8*VertexStride, got)
	}
	if got := len(IndexBytes(m.Indices)); got != 72 {
		t.Errorf("Expected 72 index bytes, got %d", got)
	}
	last := VertexElements()[len(VertexElements())-1]
	if last.Offset+last.Components*4 != VertexStride {
		t.Errorf("Vertex elements do not cover the stride")
	}
}
