package renderer

import (
	"testing"

	vk "github.com/goki/vulkan"

	com "github.com/mei1161/0522-3D/common"
)

func TestRenderFinishedIndexedByImage(t *testing.T) {
	// two frames in flight presenting into three swap chain images
	fc := &frameContext{
		imageAvailable: make([]vk.Semaphore, 2),
		inFlight:       make([]vk.Fence, 2),
		renderFinished: make([]vk.Semaphore, 3),
	}
	if err := fc.ensureRenderFinished(&com.Device{}, 3); err != nil {
		t.Fatalf("Enough semaphores exist already, got %s", err)
	}
	if len(fc.renderFinished) != 3 {
		t.Errorf("Expected 3 render finished semaphores, got %d", len(fc.renderFinished))
	}
	if _, err := fc.presentSemaphore(2); err != nil {
		t.Errorf("Last swap chain image should have a semaphore, got %s", err)
	}
	if _, err := fc.presentSemaphore(3); err == nil {
		t.Errorf("Image outside of the swap chain should be rejected")
	}
}
