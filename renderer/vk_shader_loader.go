package renderer

import (
	"fmt"
	"log"
	"os"

	vk "github.com/goki/vulkan"

	com "github.com/mei1161/0522-3D/common"
	"github.com/mei1161/0522-3D/spirv"
)

const shaderEntryPoint = "main"

// shaderCode is a '.spv' file that passed reflection: it parses and has the expected entry point.
type shaderCode struct {
	path  string
	bytes []byte
	refl  *spirv.Module
}

func readShaderCode(path string, model uint32) (*shaderCode, error) {
	codeB, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shader file %q: %w", path, err)
	}
	log.Printf("Read shader file (%s) of size: %dByte", path, len(codeB))

	refl, err := spirv.Parse(codeB)
	if err != nil {
		return nil, fmt.Errorf("shader %q: %w", path, err)
	}
	if !refl.HasEntryPoint(model, shaderEntryPoint) {
		return nil, fmt.Errorf("shader %q has no %q entry point for execution model %d", path, shaderEntryPoint, model)
	}
	return &shaderCode{path: path, bytes: codeB, refl: refl}, nil
}

// shaderStage is a shader module and the create info binding it to a pipeline. The module only carries the
// code onto the device, it can be deleted right after pipeline creation.
type shaderStage struct {
	module vk.ShaderModule
	info   vk.PipelineShaderStageCreateInfo
}

func (sc *shaderCode) createStage(d vk.Device, stageBit vk.ShaderStageFlagBits) (*shaderStage, error) {
	createInfo := &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint64(len(sc.bytes)),
		PCode:    com.AsUint32Arr(sc.bytes),
	}
	mod, err := com.VkCreateShaderModule(d, createInfo, nil)
	if err != nil {
		return nil, fmt.Errorf("create shader module %q: %w", sc.path, err)
	}
	log.Printf("Created shader module for %s", sc.path)
	return &shaderStage{
		module: mod,
		info: vk.PipelineShaderStageCreateInfo{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  stageBit,
			Module: mod,
			PName:  com.TerminatedStr(shaderEntryPoint),
		},
	}, nil
}

func (s *shaderStage) destroy(d vk.Device) {
	if s != nil && s.module != nil {
		vk.DestroyShaderModule(d, s.module, nil)
		s.module = nil
	}
}
