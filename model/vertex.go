package model

import (
	"bytes"
	"encoding/binary"
	"log"

	vm "github.com/mei1161/0522-3D/vector_math"
)

// Vertex is a position plus an RGBA color, tightly packed as 7 float32.
type Vertex struct {
	Pos   vm.Vec3
	Color vm.Vec4
}

const VertexStride = 28

// Semantic names the meaning of a vertex element for the input layout.
type Semantic string

const (
	SemanticPosition Semantic = "POSITION"
	SemanticColor    Semantic = "COLOR"
)

// VertexElement describes one attribute of Vertex as the vertex shader sees it.
type VertexElement struct {
	Semantic   Semantic
	Location   uint32
	Components uint32
	Offset     uint32
}

// VertexElements lists the attributes of Vertex in shader location order.
func VertexElements() []VertexElement {
	return []VertexElement{
		{Semantic: SemanticPosition, Location: 0, Components: 3, Offset: 0},
		{Semantic: SemanticColor, Location: 1, Components: 4, Offset: 12},
	}
}

// VertexBytes writes vertices little endian, matching VertexStride.
func VertexBytes(v []Vertex) []byte {
	buf := new(bytes.Buffer)
	buf.Grow(len(v) * VertexStride)
	if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
		log.Panicf("Failed to encode vertices: %s", err)
	}
	return buf.Bytes()
}

func IndexBytes(idx []uint16) []byte {
	buf := new(bytes.Buffer)
	buf.Grow(len(idx) * 2)
	if err := binary.Write(buf, binary.LittleEndian, idx); err != nil {
		log.Panicf("Failed to encode indices: %s", err)
	}
	return buf.Bytes()
}
