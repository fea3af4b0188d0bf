package common

import (
	"log"
	"math"

	vk "github.com/goki/vulkan"

	"github.com/mei1161/0522-3D/stage"
)

// Formats tried for the back buffers, in order. Both are plain UNORM targets.
var PreferredFormats = []vk.Format{vk.FormatB8g8r8a8Unorm, vk.FormatR8g8b8a8Unorm}

type SwapChain struct {
	details SwapChainDetails
	Handle  vk.Swapchain

	Format      vk.SurfaceFormat
	PresentMode vk.PresentMode
	Extent      vk.Extent2D

	Images       []vk.Image
	ImgViews     []vk.ImageView
	FrameBuffers []vk.Framebuffer
}

// NewSwapChain creates the swap chain for the window's surface together with one view per back buffer.
// Failures are tagged with the swap chain, back buffer or render target view stage.
func NewSwapChain(dc *Device, w *Window) (*SwapChain, error) {
	sc := &SwapChain{details: ReadSwapChainSupportDetails(dc.PD, w.Surf)}
	sc.Format = sc.details.SelectFormat(PreferredFormats)
	sc.PresentMode = sc.details.SelectPresentMode(vk.PresentModeFifo)
	sc.Extent = sc.details.SelectExtent(uint32(w.Width), uint32(w.Height))

	if err := sc.createHandle(dc, w.Surf); err != nil {
		return nil, stage.Wrap(stage.SwapChain, err)
	}
	var err error
	sc.Images, err = ReadSwapChainImages(dc.D, sc.Handle)
	if err != nil {
		sc.Destroy(dc)
		return nil, stage.Wrap(stage.BackBuffer, err)
	}
	if err := sc.createImageViews(dc); err != nil {
		sc.Destroy(dc)
		return nil, stage.Wrap(stage.RenderTargetView, err)
	}
	log.Printf("Created swap chain %dx%d with %d images, format %d", sc.Extent.Width, sc.Extent.Height, len(sc.Images), sc.Format.Format)
	return sc, nil
}

func (sc *SwapChain) createHandle(dc *Device, surf vk.Surface) error {
	var sharingMode = vk.SharingModeExclusive
	var qFamIndices []uint32
	if !dc.QFamilies.Shared() {
		sharingMode = vk.SharingModeConcurrent
		qFamIndices = dc.QFamilies.UniqueFamilies()
	}
	createInfo := &vk.SwapchainCreateInfo{
		SType:                 vk.StructureTypeSwapchainCreateInfo,
		Surface:               surf,
		MinImageCount:         sc.details.ImageCount(),
		ImageFormat:           sc.Format.Format,
		ImageColorSpace:       sc.Format.ColorSpace,
		ImageExtent:           sc.Extent,
		ImageArrayLayers:      1,
		ImageUsage:            vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageSharingMode:      sharingMode,
		QueueFamilyIndexCount: uint32(len(qFamIndices)),
		PQueueFamilyIndices:   qFamIndices,
		PreTransform:          sc.details.Capabilities.CurrentTransform,
		CompositeAlpha:        vk.CompositeAlphaOpaqueBit,
		PresentMode:           sc.PresentMode,
		Clipped:               vk.True,
		OldSwapchain:          nil,
	}
	var err error
	sc.Handle, err = VkCreateSwapChain(dc.D, createInfo, nil)
	return err
}

func (sc *SwapChain) createImageViews(dc *Device) error {
	sc.ImgViews = make([]vk.ImageView, 0, len(sc.Images))
	for i := range sc.Images {
		createInfo := &vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			Image:    sc.Images[i],
			ViewType: vk.ImageViewType2d,
			Format:   sc.Format.Format,
			Components: vk.ComponentMapping{
				R: vk.ComponentSwizzleIdentity,
				G: vk.ComponentSwizzleIdentity,
				B: vk.ComponentSwizzleIdentity,
				A: vk.ComponentSwizzleIdentity,
			},
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
				LevelCount: 1,
				LayerCount: 1,
			},
		}
		iv, err := VkCreateImageView(dc.D, createInfo, nil)
		if err != nil {
			return err
		}
		sc.ImgViews = append(sc.ImgViews, iv)
	}
	return nil
}

// CreateFrameBuffers binds one framebuffer per back buffer view to the render pass.
func (sc *SwapChain) CreateFrameBuffers(dc *Device, renderPass vk.RenderPass) error {
	sc.FrameBuffers = make([]vk.Framebuffer, 0, len(sc.ImgViews))
	for i := range sc.ImgViews {
		framebufferInfo := vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      renderPass,
			AttachmentCount: 1,
			PAttachments:    []vk.ImageView{sc.ImgViews[i]},
			Width:           sc.Extent.Width,
			Height:          sc.Extent.Height,
			Layers:          1,
		}
		fb, err := VkCreateFrameBuffer(dc.D, &framebufferInfo, nil)
		if err != nil {
			return stage.Wrap(stage.RenderTargetView, err)
		}
		sc.FrameBuffers = append(sc.FrameBuffers, fb)
	}
	return nil
}

func (sc *SwapChain) Destroy(dc *Device) {
	for i := range sc.FrameBuffers {
		vk.DestroyFramebuffer(dc.D, sc.FrameBuffers[i], nil)
	}
	sc.FrameBuffers = nil
	for i := range sc.ImgViews {
		vk.DestroyImageView(dc.D, sc.ImgViews[i], nil)
	}
	sc.ImgViews = nil
	if sc.Handle != nil {
		vk.DestroySwapchain(dc.D, sc.Handle, nil)
		sc.Handle = nil
	}
}

type SwapChainDetails struct {
	Capabilities vk.SurfaceCapabilities
	Formats      []vk.SurfaceFormat
	PresentModes []vk.PresentMode
}

func (s *SwapChainDetails) Adequate() bool {
	return len(s.Formats) > 0 && len(s.PresentModes) > 0
}

// SelectFormat returns the first preferred format the surface offers, else the first one offered.
func (s *SwapChainDetails) SelectFormat(preferred []vk.Format) vk.SurfaceFormat {
	for _, want := range preferred {
		for _, af := range s.Formats {
			if af.Format == want {
				return af
			}
		}
	}
	fallback := s.Formats[0]
	log.Printf("Did not find prefered SurfaceFormat, selecting first one available. (%v)", fallback)
	return fallback
}

func (s *SwapChainDetails) SelectPresentMode(desiredMode vk.PresentMode) vk.PresentMode {
	for _, pm := range s.PresentModes {
		if pm == desiredMode {
			return pm
		}
	}
	return vk.PresentModeFifo
}

// SelectExtent uses the surface's current extent, or the requested size clamped to the allowed range when
// the surface leaves the choice to the swap chain.
func (s *SwapChainDetails) SelectExtent(width, height uint32) vk.Extent2D {
	c := s.Capabilities
	if c.CurrentExtent.Width != math.MaxUint32 {
		return c.CurrentExtent
	}
	return vk.Extent2D{
		Width:  clamp(width, c.MinImageExtent.Width, c.MaxImageExtent.Width),
		Height: clamp(height, c.MinImageExtent.Height, c.MaxImageExtent.Height),
	}
}

// ImageCount asks for one image more than the minimum. A maximum of 0 means unbounded.
func (s *SwapChainDetails) ImageCount() uint32 {
	n := s.Capabilities.MinImageCount + 1
	if maxCount := s.Capabilities.MaxImageCount; maxCount > 0 && n > maxCount {
		n = maxCount
	}
	return n
}

func clamp(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
