package renderer

import (
	"fmt"

	vk "github.com/goki/vulkan"

	com "github.com/mei1161/0522-3D/common"
)

// frameContext holds what a frame in flight records into and synchronizes on. renderFinished is indexed
// by swap chain image, the rest by frame in flight.
type frameContext struct {
	commandPool    vk.CommandPool
	commandBuffers []vk.CommandBuffer
	imageAvailable []vk.Semaphore
	renderFinished []vk.Semaphore
	inFlight       []vk.Fence
}

func newFrameContext(dc *com.Device, framesInFlight int, images int) (*frameContext, error) {
	fc := &frameContext{}
	var err error
	fc.commandPool, err = com.VKSCreateCommandPool(
		dc.D,
		vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
		*dc.QFamilies.GraphicsFamily,
	)
	if err != nil {
		return nil, fmt.Errorf("create command pool: %w", err)
	}
	fc.commandBuffers, err = com.VKSAllocatePrimaryCommandBuffers(dc.D, fc.commandPool, uint32(framesInFlight))
	if err != nil {
		fc.destroy(dc)
		return nil, fmt.Errorf("allocate command buffers: %w", err)
	}
	for i := 0; i < framesInFlight; i++ {
		ias, err := com.VKSCreateSemaphore(dc.D)
		if err != nil {
			fc.destroy(dc)
			return nil, fmt.Errorf("create sync objects: %w", err)
		}
		fc.imageAvailable = append(fc.imageAvailable, ias)
		iff, err := com.VKSCreateFence(dc.D, true)
		if err != nil {
			fc.destroy(dc)
			return nil, fmt.Errorf("create sync objects: %w", err)
		}
		fc.inFlight = append(fc.inFlight, iff)
	}
	if err := fc.ensureRenderFinished(dc, images); err != nil {
		fc.destroy(dc)
		return nil, err
	}
	return fc, nil
}

// ensureRenderFinished grows the per image semaphores to cover images swap chain images.
func (fc *frameContext) ensureRenderFinished(dc *com.Device, images int) error {
	for len(fc.renderFinished) < images {
		rfs, err := com.VKSCreateSemaphore(dc.D)
		if err != nil {
			return fmt.Errorf("create sync objects: %w", err)
		}
		fc.renderFinished = append(fc.renderFinished, rfs)
	}
	return nil
}

// presentSemaphore is signalled when rendering into swap chain image imgIdx completes.
func (fc *frameContext) presentSemaphore(imgIdx uint32) (vk.Semaphore, error) {
	if int(imgIdx) >= len(fc.renderFinished) {
		return nil, fmt.Errorf("no render finished semaphore for image %d of %d", imgIdx, len(fc.renderFinished))
	}
	return fc.renderFinished[imgIdx], nil
}

func (fc *frameContext) destroy(dc *com.Device) {
	for i := range fc.imageAvailable {
		vk.DestroySemaphore(dc.D, fc.imageAvailable[i], nil)
	}
	for i := range fc.renderFinished {
		vk.DestroySemaphore(dc.D, fc.renderFinished[i], nil)
	}
	for i := range fc.inFlight {
		vk.DestroyFence(dc.D, fc.inFlight[i], nil)
	}
	fc.imageAvailable, fc.renderFinished, fc.inFlight = nil, nil, nil
	if fc.commandPool != nil {
		vk.DestroyCommandPool(dc.D, fc.commandPool, nil)
		fc.commandPool = nil
		fc.commandBuffers = nil
	}
}
