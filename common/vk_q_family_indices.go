package common

import (
	"errors"

	vk "github.com/goki/vulkan"
)

var (
	ErrNoGraphicsQueue = errors.New("unable to find graphics capable queue family")
	ErrNoPresentQueue  = errors.New("unable to find present capable queue family for given surface")
)

type QueueFamilyIndices struct {
	GraphicsFamily *uint32
	PresentFamily  *uint32
}

// PresentSupport reports whether queue family i can present to the surface the caller has in mind.
type PresentSupport func(i uint32) bool

// FindQueueFamilies picks the first graphics capable family and the first family able to present.
func FindQueueFamilies(qFamilies []vk.QueueFamilyProperties, canPresent PresentSupport) (*QueueFamilyIndices, error) {
	indices := &QueueFamilyIndices{}
	for i := range qFamilies {
		if indices.GraphicsFamily == nil && isBitSet(qFamilies[i], vk.QueueGraphicsBit) {
			indices.GraphicsFamily = new(uint32)
			*indices.GraphicsFamily = uint32(i)
		}
		if indices.PresentFamily == nil && canPresent(uint32(i)) {
			indices.PresentFamily = new(uint32)
			*indices.PresentFamily = uint32(i)
		}
		if indices.IsComplete() {
			break
		}
	}
	if indices.GraphicsFamily == nil {
		return nil, ErrNoGraphicsQueue
	}
	if indices.PresentFamily == nil {
		return nil, ErrNoPresentQueue
	}
	return indices, nil
}

func surfacePresentSupport(pd vk.PhysicalDevice, surf vk.Surface) PresentSupport {
	return func(i uint32) bool {
		var presentSupport vk.Bool32
		vk.GetPhysicalDeviceSurfaceSupport(pd, i, surf, &presentSupport)
		return presentSupport > 0
	}
}

func isBitSet(qFamily vk.QueueFamilyProperties, bit vk.QueueFlagBits) bool {
	return vk.QueueFlagBits(qFamily.QueueFlags)&bit > 0
}

func (q *QueueFamilyIndices) IsComplete() bool {
	return q.GraphicsFamily != nil && q.PresentFamily != nil
}

// Shared reports whether one family serves both graphics and presentation.
func (q *QueueFamilyIndices) Shared() bool {
	return *q.GraphicsFamily == *q.PresentFamily
}

// UniqueFamilies lists each used family index once, graphics first.
func (q *QueueFamilyIndices) UniqueFamilies() []uint32 {
	uniq := []uint32{*q.GraphicsFamily}
	if !q.Shared() {
		uniq = append(uniq, *q.PresentFamily)
	}
	return uniq
}

func (q *QueueFamilyIndices) toQueueCreateInfos() []vk.DeviceQueueCreateInfo {
	uniq := q.UniqueFamilies()
	infos := make([]vk.DeviceQueueCreateInfo, len(uniq))
	for i := range uniq {
		infos[i] = vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: uniq[i],
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		}
	}
	return infos
}
