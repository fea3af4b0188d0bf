package common

import (
	"errors"
	"fmt"
	"log"
	"unsafe"

	vk "github.com/goki/vulkan"
)

// This Code section contains allocation helpers. Buffers created here stay mapped for their whole lifetime
// so per frame uploads are a plain copy.

var ErrNoMemoryType = errors.New("failed to find suitable memory type")

type Buffer struct {
	Handle    vk.Buffer
	DeviceMem vk.DeviceMemory
	Size      vk.DeviceSize
	Usage     vk.BufferUsageFlags
	mapped    unsafe.Pointer
}

// CreateHostBuffer allocates a host visible and coherent buffer of size bytes and maps it.
func CreateHostBuffer(dc *Device, size vk.DeviceSize, usage vk.BufferUsageFlags) (*Buffer, error) {
	bufferInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        size,
		Usage:       usage,
		SharingMode: vk.SharingModeExclusive,
	}
	buf, err := VkCreateBuffer(dc.D, &bufferInfo, nil)
	if err != nil {
		return nil, fmt.Errorf("create buffer: %w", err)
	}
	b := &Buffer{Handle: buf, Size: size, Usage: usage}

	req := ReadBufferMemoryRequirements(dc.D, buf)
	props := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)
	memType, err := FindMemoryType(dc.MemProps, req.MemoryTypeBits, props)
	if err != nil {
		b.Destroy(dc)
		return nil, err
	}
	allocInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  req.Size,
		MemoryTypeIndex: memType,
	}
	b.DeviceMem, err = VkAllocateMemory(dc.D, &allocInfo, nil)
	if err != nil {
		b.Destroy(dc)
		return nil, fmt.Errorf("allocate buffer memory: %w", err)
	}
	if err := VkBindBufferMemory(dc.D, buf, b.DeviceMem, 0); err != nil {
		b.Destroy(dc)
		return nil, fmt.Errorf("bind buffer memory: %w", err)
	}
	b.mapped, err = VkMapMemory(dc.D, b.DeviceMem, 0, size, 0)
	if err != nil {
		b.Destroy(dc)
		return nil, fmt.Errorf("map buffer memory: %w", err)
	}
	return b, nil
}

// Write copies payload into the mapped buffer at offset.
func (b *Buffer) Write(payload []byte, offset int) error {
	if offset < 0 || uint64(offset+len(payload)) > uint64(b.Size) {
		return fmt.Errorf("write of %d bytes at %d exceeds buffer of %d bytes", len(payload), offset, b.Size)
	}
	if len(payload) == 0 {
		return nil
	}
	vk.Memcopy(unsafe.Add(b.mapped, offset), payload)
	return nil
}

func (b *Buffer) Destroy(dc *Device) {
	if b.mapped != nil {
		vk.UnmapMemory(dc.D, b.DeviceMem)
		b.mapped = nil
	}
	if b.Handle != nil {
		vk.DestroyBuffer(dc.D, b.Handle, nil)
		b.Handle = nil
	}
	if b.DeviceMem != nil {
		vk.FreeMemory(dc.D, b.DeviceMem, nil)
		b.DeviceMem = nil
	}
}

// FindMemoryType returns the first memory type allowed by typeFilter that carries all propFlags.
func FindMemoryType(memProps vk.PhysicalDeviceMemoryProperties, typeFilter uint32, propFlags vk.MemoryPropertyFlags) (uint32, error) {
	for i := uint32(0); i < memProps.MemoryTypeCount; i++ {
		ofType := (typeFilter & (1 << i)) > 0
		hasProperties := memProps.MemoryTypes[i].PropertyFlags&propFlags == propFlags
		if ofType && hasProperties {
			log.Printf("Found memory type for buffer -> %d on heap %d", i, memProps.MemoryTypes[i].HeapIndex)
			return i, nil
		}
	}
	return 0, ErrNoMemoryType
}
