package renderer

import (
	"errors"
	"fmt"
	"log"
	"unsafe"

	vk "github.com/goki/vulkan"

	com "github.com/mei1161/0522-3D/common"
	"github.com/mei1161/0522-3D/model"
	"github.com/mei1161/0522-3D/spirv"
	"github.com/mei1161/0522-3D/stage"
)

// Set 0 of the vertex color effect carries the point wrap sampler at binding 0.
const (
	statesSet      = 0
	samplerBinding = 0
)

var errComponentCount = errors.New("unsupported vertex element component count")

// Effect is the vertex color pipeline: position and color per vertex, one world-view-projection matrix as
// push constant.
type Effect struct {
	setLayout      vk.DescriptorSetLayout
	pipelineLayout vk.PipelineLayout
	pipeline       vk.Pipeline
}

// NewEffect loads both shader stages and builds the pipeline for the given render pass. A vertex shader
// reading an input the vertex format does not provide fails with the input layout stage.
func NewEffect(dc *com.Device, renderPass vk.RenderPass, extent vk.Extent2D, vertPath, fragPath string) (*Effect, error) {
	vertCode, err := readShaderCode(vertPath, spirv.ModelVertex)
	if err != nil {
		return nil, stage.Wrap(stage.Effect, err)
	}
	fragCode, err := readShaderCode(fragPath, spirv.ModelFragment)
	if err != nil {
		return nil, stage.Wrap(stage.Effect, err)
	}

	elements := model.VertexElements()
	if err := vertCode.refl.RequireInputs(locations(elements)...); err != nil {
		return nil, stage.Wrap(stage.InputLayout, err)
	}
	bindings, attributes, err := InputLayout(elements)
	if err != nil {
		return nil, stage.Wrap(stage.InputLayout, err)
	}

	vert, err := vertCode.createStage(dc.D, vk.ShaderStageVertexBit)
	if err != nil {
		return nil, stage.Wrap(stage.Effect, err)
	}
	defer vert.destroy(dc.D)
	frag, err := fragCode.createStage(dc.D, vk.ShaderStageFragmentBit)
	if err != nil {
		return nil, stage.Wrap(stage.Effect, err)
	}
	defer frag.destroy(dc.D)

	e := &Effect{}
	if err := e.createLayouts(dc); err != nil {
		e.Destroy(dc)
		return nil, stage.Wrap(stage.Effect, err)
	}
	stages := []vk.PipelineShaderStageCreateInfo{vert.info, frag.info}
	if err := e.createPipeline(dc, renderPass, extent, stages, bindings, attributes); err != nil {
		e.Destroy(dc)
		return nil, stage.Wrap(stage.Effect, err)
	}
	log.Printf("Successfully created vertex color effect")
	return e, nil
}

func locations(elements []model.VertexElement) []uint32 {
	locs := make([]uint32, len(elements))
	for i := range elements {
		locs[i] = elements[i].Location
	}
	return locs
}

// InputLayout turns the vertex format description into the single interleaved binding the pipeline reads.
func InputLayout(elements []model.VertexElement) ([]vk.VertexInputBindingDescription, []vk.VertexInputAttributeDescription, error) {
	bindings := []vk.VertexInputBindingDescription{{
		Binding:   0,
		Stride:    model.VertexStride,
		InputRate: vk.VertexInputRateVertex,
	}}
	attributes := make([]vk.VertexInputAttributeDescription, len(elements))
	for i, el := range elements {
		format, err := floatFormat(el.Components)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", el.Semantic, err)
		}
		attributes[i] = vk.VertexInputAttributeDescription{
			Location: el.Location,
			Binding:  0,
			Format:   format,
			Offset:   el.Offset,
		}
	}
	return bindings, attributes, nil
}

func floatFormat(components uint32) (vk.Format, error) {
	switch components {
	case 1:
		return vk.FormatR32Sfloat, nil
	case 2:
		return vk.FormatR32g32Sfloat, nil
	case 3:
		return vk.FormatR32g32b32Sfloat, nil
	case 4:
		return vk.FormatR32g32b32a32Sfloat, nil
	}
	return vk.FormatUndefined, fmt.Errorf("%w: %d", errComponentCount, components)
}

func (e *Effect) createLayouts(dc *com.Device) error {
	samplerLayoutBinding := vk.DescriptorSetLayoutBinding{
		Binding:         samplerBinding,
		DescriptorType:  vk.DescriptorTypeSampler,
		DescriptorCount: 1,
		StageFlags:      vk.ShaderStageFlags(vk.ShaderStageFragmentBit),
	}
	layoutInfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: 1,
		PBindings:    []vk.DescriptorSetLayoutBinding{samplerLayoutBinding},
	}
	var err error
	e.setLayout, err = com.VkCreateDescriptorSetLayout(dc.D, &layoutInfo, nil)
	if err != nil {
		return fmt.Errorf("create descriptor set layout: %w", err)
	}

	pushConstantRange := vk.PushConstantRange{
		StageFlags: vk.ShaderStageFlags(vk.ShaderStageVertexBit),
		Offset:     0,
		Size:       model.PushConstantSize,
	}
	pipelineLayoutInfo := vk.PipelineLayoutCreateInfo{
		SType:                  vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount:         1,
		PSetLayouts:            []vk.DescriptorSetLayout{e.setLayout},
		PushConstantRangeCount: 1,
		PPushConstantRanges:    []vk.PushConstantRange{pushConstantRange},
	}
	e.pipelineLayout, err = com.VkCreatePipelineLayout(dc.D, &pipelineLayoutInfo, nil)
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	return nil
}

// rasterizationState culls back faces with clockwise front faces and no depth bias.
func rasterizationState() vk.PipelineRasterizationStateCreateInfo {
	return vk.PipelineRasterizationStateCreateInfo{
		SType:                   vk.StructureTypePipelineRasterizationStateCreateInfo,
		DepthClampEnable:        vk.False,
		RasterizerDiscardEnable: vk.False,
		PolygonMode:             vk.PolygonModeFill,
		CullMode:                vk.CullModeFlags(vk.CullModeBackBit),
		FrontFace:               vk.FrontFaceClockwise,
		DepthBiasEnable:         vk.False,
		LineWidth:               1.0,
	}
}

// fullViewport covers the whole target with depth range [0, 1].
func fullViewport(extent vk.Extent2D) (vk.Viewport, vk.Rect2D) {
	return vk.Viewport{
			X:        0,
			Y:        0,
			Width:    float32(extent.Width),
			Height:   float32(extent.Height),
			MinDepth: 0,
			MaxDepth: 1.0,
		}, vk.Rect2D{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: extent,
		}
}

func (e *Effect) createPipeline(
	dc *com.Device,
	renderPass vk.RenderPass,
	extent vk.Extent2D,
	stages []vk.PipelineShaderStageCreateInfo,
	bindings []vk.VertexInputBindingDescription,
	attributes []vk.VertexInputAttributeDescription,
) error {
	vertexInputInfo := vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   uint32(len(bindings)),
		PVertexBindingDescriptions:      bindings,
		VertexAttributeDescriptionCount: uint32(len(attributes)),
		PVertexAttributeDescriptions:    attributes,
	}
	inputAssemblyInfo := vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology:               vk.PrimitiveTopologyTriangleList,
		PrimitiveRestartEnable: vk.False,
	}
	viewport, scissor := fullViewport(extent)
	viewportStateInfo := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		PViewports:    []vk.Viewport{viewport},
		ScissorCount:  1,
		PScissors:     []vk.Rect2D{scissor},
	}
	rasterizerInfo := rasterizationState()
	multisamplingInfo := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		RasterizationSamples: vk.SampleCount1Bit,
		SampleShadingEnable:  vk.False,
		MinSampleShading:     1.0,
	}
	colorBlendAttachmentInfo := vk.PipelineColorBlendAttachmentState{
		BlendEnable:    vk.False,
		ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit | vk.ColorComponentGBit | vk.ColorComponentBBit | vk.ColorComponentABit),
	}
	colorBlendingInfo := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		LogicOpEnable:   vk.False,
		LogicOp:         vk.LogicOpCopy,
		AttachmentCount: 1,
		PAttachments:    []vk.PipelineColorBlendAttachmentState{colorBlendAttachmentInfo},
	}

	pipelineInfo := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(stages)),
		PStages:             stages,
		PVertexInputState:   &vertexInputInfo,
		PInputAssemblyState: &inputAssemblyInfo,
		PViewportState:      &viewportStateInfo,
		PRasterizationState: &rasterizerInfo,
		PMultisampleState:   &multisamplingInfo,
		PColorBlendState:    &colorBlendingInfo,
		Layout:              e.pipelineLayout,
		RenderPass:          renderPass,
		Subpass:             0,
		BasePipelineIndex:   -1,
	}
	pipelines, err := com.VkCreateGraphicsPipelines(dc.D, nil, 1, []vk.GraphicsPipelineCreateInfo{pipelineInfo}, nil)
	if err != nil {
		return fmt.Errorf("create graphics pipeline: %w", err)
	}
	e.pipeline = pipelines[0]
	return nil
}

// Apply binds the pipeline, the transform and the states set for the following draws.
func (e *Effect) Apply(buffer vk.CommandBuffer, pushConstants []byte, states *CommonStates) {
	if len(pushConstants) != model.PushConstantSize {
		log.Panicf("Push constants must be %d bytes, got %d", model.PushConstantSize, len(pushConstants))
	}
	vk.CmdBindPipeline(buffer, vk.PipelineBindPointGraphics, e.pipeline)
	vk.CmdPushConstants(buffer, e.pipelineLayout, vk.ShaderStageFlags(vk.ShaderStageVertexBit), 0, model.PushConstantSize, unsafe.Pointer(&pushConstants[0]))
	vk.CmdBindDescriptorSets(buffer, vk.PipelineBindPointGraphics, e.pipelineLayout, statesSet, 1, []vk.DescriptorSet{states.set}, 0, nil)
}

func (e *Effect) Destroy(dc *com.Device) {
	if e.pipeline != nil {
		vk.DestroyPipeline(dc.D, e.pipeline, nil)
		e.pipeline = nil
	}
	if e.pipelineLayout != nil {
		vk.DestroyPipelineLayout(dc.D, e.pipelineLayout, nil)
		e.pipelineLayout = nil
	}
	if e.setLayout != nil {
		vk.DestroyDescriptorSetLayout(dc.D, e.setLayout, nil)
		e.setLayout = nil
	}
}
