package renderer

import (
	"fmt"

	vk "github.com/goki/vulkan"

	com "github.com/mei1161/0522-3D/common"
	"github.com/mei1161/0522-3D/model"
	"github.com/mei1161/0522-3D/primitive"
)

// PrimitiveBatch moves geometry gathered by a primitive.Batch into mapped vertex and index buffers, one
// pair per frame in flight, and records a single indexed draw for it.
type PrimitiveBatch struct {
	batch    *primitive.Batch
	vertices []*com.Buffer
	indices  []*com.Buffer
	frame    int
}

func NewPrimitiveBatch(dc *com.Device, framesInFlight int) (*PrimitiveBatch, error) {
	pb := &PrimitiveBatch{batch: primitive.NewBatch()}
	for i := 0; i < framesInFlight; i++ {
		vb, err := com.CreateHostBuffer(dc, vk.DeviceSize(primitive.MaxVertices*model.VertexStride), vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit))
		if err != nil {
			pb.Destroy(dc)
			return nil, fmt.Errorf("batch vertex buffer %d: %w", i, err)
		}
		pb.vertices = append(pb.vertices, vb)
		ib, err := com.CreateHostBuffer(dc, vk.DeviceSize(primitive.MaxIndices*2), vk.BufferUsageFlags(vk.BufferUsageIndexBufferBit))
		if err != nil {
			pb.Destroy(dc)
			return nil, fmt.Errorf("batch index buffer %d: %w", i, err)
		}
		pb.indices = append(pb.indices, ib)
	}
	return pb, nil
}

// Begin opens the batch for the given frame in flight.
func (pb *PrimitiveBatch) Begin(frame int) error {
	if err := pb.batch.Begin(); err != nil {
		return err
	}
	pb.frame = frame
	return nil
}

func (pb *PrimitiveBatch) DrawIndexed(topology primitive.Topology, indices []uint16, vertices []model.Vertex) error {
	return pb.batch.DrawIndexed(topology, indices, vertices)
}

// End closes the batch, uploads what it gathered and records one indexed draw into buffer.
func (pb *PrimitiveBatch) End(buffer vk.CommandBuffer) error {
	vertices, indices, err := pb.batch.End()
	if err != nil {
		return err
	}
	if len(indices) == 0 {
		return nil
	}
	vb, ib := pb.vertices[pb.frame], pb.indices[pb.frame]
	if err := vb.Write(model.VertexBytes(vertices), 0); err != nil {
		return err
	}
	if err := ib.Write(model.IndexBytes(indices), 0); err != nil {
		return err
	}
	vk.CmdBindVertexBuffers(buffer, 0, 1, []vk.Buffer{vb.Handle}, []vk.DeviceSize{0})
	vk.CmdBindIndexBuffer(buffer, ib.Handle, 0, vk.IndexTypeUint16)
	vk.CmdDrawIndexed(buffer, uint32(len(indices)), 1, 0, 0, 0)
	return nil
}

// Discard closes an open batch without drawing, so the next Begin succeeds.
func (pb *PrimitiveBatch) Discard() {
	if pb.batch.IsOpen() {
		pb.batch.End()
	}
}

func (pb *PrimitiveBatch) Destroy(dc *com.Device) {
	for _, b := range pb.vertices {
		b.Destroy(dc)
	}
	for _, b := range pb.indices {
		b.Destroy(dc)
	}
	pb.vertices, pb.indices = nil, nil
}
