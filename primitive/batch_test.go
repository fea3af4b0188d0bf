package primitive

import (
	"errors"
	"testing"

	"github.com/mei1161/0522-3D/model"
)

func TestBatchStateMachine(t *testing.T) {
	b := NewBatch()
	if err := b.DrawIndexed(TriangleList, nil, nil); !errors.Is(err, ErrNotOpen) {
		t.Errorf("Draw before Begin: got %v", err)
	}
	if _, _, err := b.End(); !errors.Is(err, ErrNotOpen) {
		t.Errorf("End before Begin: got %v", err)
	}
	if err := b.Begin(); err != nil {
		t.Fatalf("Begin: %s", err)
	}
	if err := b.Begin(); !errors.Is(err, ErrAlreadyOpen) {
		t.Errorf("Second Begin: got %v", err)
	}
	if _, _, err := b.End(); err != nil || b.IsOpen() {
		t.Errorf("End: %v open=%v", err, b.IsOpen())
	}
}

func TestBatchCube(t *testing.T) {
	mesh := model.NewCubeMesh()
	b := NewBatch()
	_ = b.Begin()
	if err := b.DrawIndexed(TriangleList, mesh.Indices, mesh.Vertices); err != nil {
		t.Fatalf("DrawIndexed: %s", err)
	}
	v, id, err := b.End()
	if err != nil {
		t.Fatalf("End: %s", err)
	}
	if len(v) != 8 || len(id) != 36 {
		t.Errorf("Expected 8 vertices and 36 indices, got %d and %d", len(v), len(id))
	}
	for i := range id {
		if id[i] != model.CubeIndices[i] {
			t.Fatalf("First draw must not be rebased, index %d is %d", i, id[i])
		}
	}
}

func TestBatchRebasesSecondDraw(t *testing.T) {
	mesh := model.NewCubeMesh()
	b := NewBatch()
	_ = b.Begin()
	_ = b.DrawIndexed(TriangleList, mesh.Indices, mesh.Vertices)
	_ = b.DrawIndexed(TriangleList, mesh.Indices, mesh.Vertices)
	v, id, _ := b.End()
	if len(v) != 16 || len(id) != 72 {
		t.Fatalf("Expected 16 vertices and 72 indices, got %d and %d", len(v), len(id))
	}
	if id[36] != model.CubeIndices[0]+8 {
		t.Errorf("Second draw should be offset by 8, got %d", id[36])
	}
	// a fresh Begin starts empty
	_ = b.Begin()
	v, id, _ = b.End()
	if len(v) != 0 || len(id) != 0 {
		t.Errorf("Begin should reset the batch")
	}
}

func TestBatchRejects(t *testing.T) {
	mesh := model.NewCubeMesh()
	b := NewBatch()
	_ = b.Begin()
	if err := b.DrawIndexed(LineList, mesh.Indices, mesh.Vertices); !errors.Is(err, ErrTopology) {
		t.Errorf("Line list: got %v", err)
	}
	if err := b.DrawIndexed(TriangleList, mesh.Indices[:4], mesh.Vertices); !errors.Is(err, ErrIndexCount) {
		t.Errorf("Partial triangle: got %v", err)
	}
	if err := b.DrawIndexed(TriangleList, mesh.Indices, mesh.Vertices[:4]); !errors.Is(err, ErrIndexRange) {
		t.Errorf("Out of range index: got %v", err)
	}
	big := make([]model.Vertex, MaxVertices+1)
	if err := b.DrawIndexed(TriangleList, []uint16{0, 1, 2}, big); !errors.Is(err, ErrCapacity) {
		t.Errorf("Over capacity: got %v", err)
	}
	_, id, _ := b.End()
	if len(id) != 0 {
		t.Errorf("Rejected draws must not leave data behind, got %d indices", len(id))
	}
}
