package renderer

import (
	"fmt"
	"log"

	vk "github.com/goki/vulkan"

	com "github.com/mei1161/0522-3D/common"
	"github.com/mei1161/0522-3D/stage"
)

// CommonStates owns the point wrap sampler and the descriptor set that binds it for the effect.
type CommonStates struct {
	sampler vk.Sampler
	pool    vk.DescriptorPool
	set     vk.DescriptorSet
}

// pointWrapInfo describes nearest filtering with repeating addressing on every axis.
func pointWrapInfo() vk.SamplerCreateInfo {
	return vk.SamplerCreateInfo{
		SType:                   vk.StructureTypeSamplerCreateInfo,
		MagFilter:               vk.FilterNearest,
		MinFilter:               vk.FilterNearest,
		MipmapMode:              vk.SamplerMipmapModeNearest,
		AddressModeU:            vk.SamplerAddressModeRepeat,
		AddressModeV:            vk.SamplerAddressModeRepeat,
		AddressModeW:            vk.SamplerAddressModeRepeat,
		AnisotropyEnable:        vk.False,
		MaxAnisotropy:           1,
		CompareEnable:           vk.False,
		CompareOp:               vk.CompareOpNever,
		MinLod:                  0,
		MaxLod:                  0,
		BorderColor:             vk.BorderColorFloatTransparentBlack,
		UnnormalizedCoordinates: vk.False,
	}
}

// NewCommonStates creates the sampler and writes it into a set allocated against the effect's set layout.
func NewCommonStates(dc *com.Device, effect *Effect) (*CommonStates, error) {
	s := &CommonStates{}
	if err := s.create(dc, effect.setLayout); err != nil {
		s.Destroy(dc)
		return nil, stage.Wrap(stage.States, err)
	}
	log.Printf("Successfully created common states")
	return s, nil
}

func (s *CommonStates) create(dc *com.Device, layout vk.DescriptorSetLayout) error {
	info := pointWrapInfo()
	var err error
	s.sampler, err = com.VkCreateSampler(dc.D, &info, nil)
	if err != nil {
		return fmt.Errorf("create sampler: %w", err)
	}

	poolInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       1,
		PoolSizeCount: 1,
		PPoolSizes: []vk.DescriptorPoolSize{{
			Type:            vk.DescriptorTypeSampler,
			DescriptorCount: 1,
		}},
	}
	s.pool, err = com.VkCreateDescriptorPool(dc.D, &poolInfo, nil)
	if err != nil {
		return fmt.Errorf("create descriptor pool: %w", err)
	}

	allocInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     s.pool,
		DescriptorSetCount: 1,
		PSetLayouts:        []vk.DescriptorSetLayout{layout},
	}
	sets, err := com.VkAllocateDescriptorSets(dc.D, &allocInfo)
	if err != nil {
		return fmt.Errorf("allocate descriptor set: %w", err)
	}
	s.set = sets[0]

	write := vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstSet:          s.set,
		DstBinding:      samplerBinding,
		DstArrayElement: 0,
		DescriptorCount: 1,
		DescriptorType:  vk.DescriptorTypeSampler,
		PImageInfo:      []vk.DescriptorImageInfo{{Sampler: s.sampler}},
	}
	vk.UpdateDescriptorSets(dc.D, 1, []vk.WriteDescriptorSet{write}, 0, nil)
	return nil
}

// Destroy frees the pool, which releases the set with it, and the sampler.
func (s *CommonStates) Destroy(dc *com.Device) {
	if s.pool != nil {
		vk.DestroyDescriptorPool(dc.D, s.pool, nil)
		s.pool = nil
		s.set = nil
	}
	if s.sampler != nil {
		vk.DestroySampler(dc.D, s.sampler, nil)
		s.sampler = nil
	}
}
