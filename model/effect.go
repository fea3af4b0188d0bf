package model

import (
	"bytes"
	"encoding/binary"
	"log"

	vm "github.com/mei1161/0522-3D/vector_math"
)

// PushConstantSize is the byte size of one column major mat4.
const PushConstantSize = 64

// EffectMatrices are the transforms fed to the vertex color effect.
type EffectMatrices struct {
	World      vm.Mat
	View       vm.Mat
	Projection vm.Mat
}

func NewEffectMatrices(world vm.Mat, cam *Camera) EffectMatrices {
	return EffectMatrices{
		World:      world,
		View:       cam.View(),
		Projection: cam.Projection(),
	}
}

// WorldViewProjection maps object space to clip space (Y up).
func (e EffectMatrices) WorldViewProjection() vm.Mat {
	return vm.Chain(e.Projection, e.View, e.World)
}

// PushConstants returns the clip corrected transform as it is laid out in
// the vertex shader's push constant block.
func (e EffectMatrices) PushConstants() []byte {
	m := vm.Chain(vm.NewClipCorrection(), e.WorldViewProjection())
	buf := new(bytes.Buffer)
	buf.Grow(PushConstantSize)
	if err := binary.Write(buf, binary.LittleEndian, m.ColumnMajor()); err != nil {
		log.Panicf("Failed to encode push constants: %s", err)
	}
	return buf.Bytes()
}
