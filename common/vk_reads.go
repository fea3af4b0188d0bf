package common

import (
	"errors"
	"fmt"

	vk "github.com/goki/vulkan"
)

// Read operations that require duplicated calls, allocations and dereferencing. Each of them follows the
// count-then-fill pattern of the bindings and hands back dereferenced go values.

var ErrNoPhysicalDevices = errors.New("there are 0 physical devices available")

// ReadInstanceExtensionPropertyNames reduces the instance extensions to their names so support checks become
// string comparisons.
func ReadInstanceExtensionPropertyNames() ([]string, error) {
	count := uint32(0)
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, nil)); err != nil {
		return nil, fmt.Errorf("read number of instance extensions: %w", err)
	}
	props := make([]vk.ExtensionProperties, count)
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, props)); err != nil {
		return nil, fmt.Errorf("read %d instance extensions: %w", count, err)
	}
	return extensionNames(props), nil
}

// ReadInstanceLayerPropertyNames reduces the instance (validation) layers to their names.
func ReadInstanceLayerPropertyNames() ([]string, error) {
	count := uint32(0)
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, nil)); err != nil {
		return nil, fmt.Errorf("read number of instance layers: %w", err)
	}
	layers := make([]vk.LayerProperties, count)
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, layers)); err != nil {
		return nil, fmt.Errorf("read %d instance layers: %w", count, err)
	}
	names := make([]string, len(layers))
	for i := range layers {
		layers[i].Deref()
		names[i] = vk.ToString(layers[i].LayerName[:])
	}
	return names, nil
}

func ReadPhysicalDevices(instance vk.Instance) ([]vk.PhysicalDevice, error) {
	var gpuCount uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(instance, &gpuCount, nil)); err != nil {
		return nil, fmt.Errorf("read number of physical devices: %w", err)
	}
	if gpuCount == 0 {
		return nil, ErrNoPhysicalDevices
	}
	physDevices := make([]vk.PhysicalDevice, gpuCount)
	if err := vk.Error(vk.EnumeratePhysicalDevices(instance, &gpuCount, physDevices)); err != nil {
		return nil, fmt.Errorf("read %d physical devices: %w", gpuCount, err)
	}
	return physDevices, nil
}

func ReadPhysicalDeviceProperties(pd vk.PhysicalDevice) vk.PhysicalDeviceProperties {
	var pdProps vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(pd, &pdProps)
	pdProps.Deref()
	pdProps.Limits.Deref()
	return pdProps
}

func ReadQueueFamilies(pd vk.PhysicalDevice) []vk.QueueFamilyProperties {
	qFamilyCount := uint32(0)
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &qFamilyCount, nil)
	qFamilyProps := make([]vk.QueueFamilyProperties, qFamilyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &qFamilyCount, qFamilyProps)
	for i := range qFamilyProps {
		qFamilyProps[i].Deref()
		qFamilyProps[i].MinImageTransferGranularity.Deref()
	}
	return qFamilyProps
}

func ReadDeviceExtensionPropertyNames(pd vk.PhysicalDevice) ([]string, error) {
	count := uint32(0)
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(pd, "", &count, nil)); err != nil {
		return nil, fmt.Errorf("read number of device extensions: %w", err)
	}
	props := make([]vk.ExtensionProperties, count)
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(pd, "", &count, props)); err != nil {
		return nil, fmt.Errorf("read %d device extensions: %w", count, err)
	}
	return extensionNames(props), nil
}

func extensionNames(props []vk.ExtensionProperties) []string {
	names := make([]string, len(props))
	for i := range props {
		props[i].Deref()
		names[i] = vk.ToString(props[i].ExtensionName[:])
	}
	return names
}

func ReadSwapChainSupportDetails(pd vk.PhysicalDevice, surface vk.Surface) SwapChainDetails {
	scDetails := SwapChainDetails{}
	vk.GetPhysicalDeviceSurfaceCapabilities(pd, surface, &scDetails.Capabilities)
	scDetails.Capabilities.Deref()
	scDetails.Capabilities.CurrentExtent.Deref()
	scDetails.Capabilities.MinImageExtent.Deref()
	scDetails.Capabilities.MaxImageExtent.Deref()

	var formatCount uint32
	vk.GetPhysicalDeviceSurfaceFormats(pd, surface, &formatCount, nil)
	scDetails.Formats = make([]vk.SurfaceFormat, formatCount)
	vk.GetPhysicalDeviceSurfaceFormats(pd, surface, &formatCount, scDetails.Formats)
	for i := range scDetails.Formats {
		scDetails.Formats[i].Deref()
	}

	var presentModeCount uint32
	vk.GetPhysicalDeviceSurfacePresentModes(pd, surface, &presentModeCount, nil)
	scDetails.PresentModes = make([]vk.PresentMode, presentModeCount)
	vk.GetPhysicalDeviceSurfacePresentModes(pd, surface, &presentModeCount, scDetails.PresentModes)

	return scDetails
}

func ReadSwapChainImages(device vk.Device, swapChain vk.Swapchain) ([]vk.Image, error) {
	var imgCount uint32
	if err := vk.Error(vk.GetSwapchainImages(device, swapChain, &imgCount, nil)); err != nil {
		return nil, err
	}
	imgs := make([]vk.Image, imgCount)
	if err := vk.Error(vk.GetSwapchainImages(device, swapChain, &imgCount, imgs)); err != nil {
		return nil, err
	}
	return imgs, nil
}

func ReadDeviceMemoryProperties(pd vk.PhysicalDevice) vk.PhysicalDeviceMemoryProperties {
	var pdMemProps vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(pd, &pdMemProps)
	pdMemProps.Deref()
	for i := range pdMemProps.MemoryTypes {
		pdMemProps.MemoryTypes[i].Deref()
	}
	for i := range pdMemProps.MemoryHeaps {
		pdMemProps.MemoryHeaps[i].Deref()
	}
	return pdMemProps
}

func ReadBufferMemoryRequirements(device vk.Device, b vk.Buffer) vk.MemoryRequirements {
	var memRequirements vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(device, b, &memRequirements)
	memRequirements.Deref()
	return memRequirements
}
