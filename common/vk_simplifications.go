package common

import (
	vk "github.com/goki/vulkan"
)

// Slightly altered versions of common calls that hide obvious default values. Names are prefixed with VKS
// which stands for (V)ul(K)an (S)implified.

// VKSCreateCommandPool instantiates the CreateInfo from the two values that matter here.
func VKSCreateCommandPool(device vk.Device, flags vk.CommandPoolCreateFlags, queueFamilyIndex uint32) (vk.CommandPool, error) {
	poolInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            flags,
		QueueFamilyIndex: queueFamilyIndex,
	}
	return VkCreateCommandPool(device, &poolInfo, nil)
}

// VKSAllocatePrimaryCommandBuffers allocates count primary level buffers from pool.
func VKSAllocatePrimaryCommandBuffers(device vk.Device, pool vk.CommandPool, count uint32) ([]vk.CommandBuffer, error) {
	allocInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        pool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: count,
	}
	var buffers = make([]vk.CommandBuffer, count)
	if err := vk.Error(vk.AllocateCommandBuffers(device, &allocInfo, buffers)); err != nil {
		return nil, err
	}
	return buffers, nil
}

func VKSCreateSemaphore(device vk.Device) (vk.Semaphore, error) {
	semCreateInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}
	var sem vk.Semaphore
	return checked(vk.CreateSemaphore(device, &semCreateInfo, nil, &sem), &sem)
}

// VKSCreateFence creates a fence, signaled if requested so the first wait on it returns immediately.
func VKSCreateFence(device vk.Device, signaled bool) (vk.Fence, error) {
	fenCreateInfo := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
	}
	if signaled {
		fenCreateInfo.Flags = vk.FenceCreateFlags(vk.FenceCreateSignaledBit)
	}
	var fen vk.Fence
	return checked(vk.CreateFence(device, &fenCreateInfo, nil, &fen), &fen)
}
