// Package primitive accumulates indexed geometry between Begin and End so it
// can be submitted as a single draw.
package primitive

import (
	"errors"
	"fmt"

	"github.com/mei1161/0522-3D/model"
)

type Topology int

const (
	TriangleList Topology = iota
	LineList
	PointList
)

const (
	MaxVertices = 4096
	MaxIndices  = MaxVertices * 3
)

var (
	ErrAlreadyOpen = errors.New("primitive batch: Begin called twice")
	ErrNotOpen     = errors.New("primitive batch: no Begin before draw or End")
	ErrTopology    = errors.New("primitive batch: unsupported topology")
	ErrIndexCount  = errors.New("primitive batch: index count is not a multiple of 3")
	ErrIndexRange  = errors.New("primitive batch: index outside of vertex range")
	ErrCapacity    = errors.New("primitive batch: capacity exceeded")
)

// Batch collects triangle list geometry. Indices are rebased so several
// DrawIndexed calls end up in one vertex/index pair.
type Batch struct {
	open     bool
	vertices []model.Vertex
	indices  []uint16
}

func NewBatch() *Batch {
	return &Batch{
		vertices: make([]model.Vertex, 0, MaxVertices),
		indices:  make([]uint16, 0, MaxIndices),
	}
}

func (b *Batch) Begin() error {
	if b.open {
		return ErrAlreadyOpen
	}
	b.open = true
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
	return nil
}

func (b *Batch) DrawIndexed(topology Topology, indices []uint16, vertices []model.Vertex) error {
	if !b.open {
		return ErrNotOpen
	}
	if topology != TriangleList {
		return fmt.Errorf("%w: %d", ErrTopology, topology)
	}
	if len(indices)%3 != 0 {
		return fmt.Errorf("%w: %d", ErrIndexCount, len(indices))
	}
	if len(b.vertices)+len(vertices) > MaxVertices || len(b.indices)+len(indices) > MaxIndices {
		return fmt.Errorf("%w: %d vertices, %d indices", ErrCapacity, len(vertices), len(indices))
	}
	for _, id := range indices {
		if int(id) >= len(vertices) {
			return fmt.Errorf("%w: %d >= %d", ErrIndexRange, id, len(vertices))
		}
	}
	base := uint16(len(b.vertices))
	b.vertices = append(b.vertices, vertices...)
	for _, id := range indices {
		b.indices = append(b.indices, base+id)
	}
	return nil
}

// End closes the batch and returns the accumulated geometry. The slices are
// reused by the next Begin.
func (b *Batch) End() ([]model.Vertex, []uint16, error) {
	if !b.open {
		return nil, nil, ErrNotOpen
	}
	b.open = false
	return b.vertices, b.indices, nil
}

func (b *Batch) IsOpen() bool {
	return b.open
}
