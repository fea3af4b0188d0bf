package renderer

import (
	"fmt"

	vk "github.com/goki/vulkan"

	com "github.com/mei1161/0522-3D/common"
	"github.com/mei1161/0522-3D/stage"
)

// createRenderTarget builds the color only render pass writing to the back buffer and one framebuffer
// per swap chain image. The pass clears on load and leaves the image ready to present.
func createRenderTarget(dc *com.Device, sc *com.SwapChain) (vk.RenderPass, error) {
	colorAttachment := vk.AttachmentDescription{
		Format:         sc.Format.Format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}
	colorAttachmentRef := vk.AttachmentReference{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}
	subpass := vk.SubpassDescription{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: 1,
		PColorAttachments:    []vk.AttachmentReference{colorAttachmentRef},
	}
	dependency := vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		SrcAccessMask: 0,
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentWriteBit),
	}
	renderPassInfo := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: 1,
		PAttachments:    []vk.AttachmentDescription{colorAttachment},
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{dependency},
	}
	renderPass, err := com.VkCreateRenderPass(dc.D, &renderPassInfo, nil)
	if err != nil {
		return nil, stage.Wrap(stage.RenderTargetView, fmt.Errorf("create render pass: %w", err))
	}
	if err := sc.CreateFrameBuffers(dc, renderPass); err != nil {
		vk.DestroyRenderPass(dc.D, renderPass, nil)
		return nil, err
	}
	return renderPass, nil
}
