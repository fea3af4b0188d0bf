package common

import (
	"errors"
	"fmt"
	"log"

	vk "github.com/goki/vulkan"

	"github.com/mei1161/0522-3D/featurelevel"
)

var DEVICE_EXTENSIONS = []string{
	"VK_KHR_swapchain",
}

var ErrNoSuitableDevice = errors.New("no suitable physical device (GPU) found")

// Device bundles the selected physical device, the logical device created on it and the queues the
// renderer submits to.
type Device struct {
	PD        vk.PhysicalDevice
	Props     vk.PhysicalDeviceProperties
	MemProps  vk.PhysicalDeviceMemoryProperties
	QFamilies QueueFamilyIndices
	Level     featurelevel.Level

	D         vk.Device
	GraphicsQ vk.Queue
	PresentQ  vk.Queue
}

// candidate is a physical device that passed every requirement.
type candidate struct {
	pd       vk.PhysicalDevice
	props    vk.PhysicalDeviceProperties
	families *QueueFamilyIndices
	level    featurelevel.Level
}

// NewDevice picks a device for the window's surface, preferring discrete GPUs, and creates the logical device.
func NewDevice(w *Window, prefs []featurelevel.Level, validation bool) (*Device, error) {
	available, err := ReadPhysicalDevices(w.Inst)
	if err != nil {
		return nil, err
	}
	var chosen *candidate
	for i := range available {
		c, err := evaluateDevice(available[i], w.Surf, w.Level, prefs)
		if err != nil {
			log.Printf("Skipping %s: %s", vk.ToString(c.props.DeviceName[:]), err)
			continue
		}
		if chosen == nil || (c.props.DeviceType == vk.PhysicalDeviceTypeDiscreteGpu &&
			chosen.props.DeviceType != vk.PhysicalDeviceTypeDiscreteGpu) {
			chosen = c
		}
	}
	if chosen == nil {
		return nil, ErrNoSuitableDevice
	}
	log.Printf("Selected %s at level %s", vk.ToString(chosen.props.DeviceName[:]), chosen.level)

	dc := &Device{
		PD:        chosen.pd,
		Props:     chosen.props,
		MemProps:  ReadDeviceMemoryProperties(chosen.pd),
		QFamilies: *chosen.families,
		Level:     chosen.level,
	}
	if err := dc.createLogicalDevice(validation); err != nil {
		dc.Destroy()
		return nil, err
	}
	return dc, nil
}

// evaluateDevice checks every requirement of the renderer against pd. The returned candidate always carries
// the device properties so a rejection can be logged by name.
func evaluateDevice(pd vk.PhysicalDevice, surf vk.Surface, instanceLevel featurelevel.Level, prefs []featurelevel.Level) (*candidate, error) {
	c := &candidate{pd: pd, props: ReadPhysicalDeviceProperties(pd)}
	qFamilies := ReadQueueFamilies(pd)
	log.Printf("Physical device %s", DescribePhysicalDevice(c.props, qFamilies))

	supported := featurelevel.Decode(c.props.ApiVersion)
	if instanceLevel.AtMost(supported) {
		supported = instanceLevel
	}
	level, err := featurelevel.Negotiate(supported, prefs)
	if err != nil {
		return c, err
	}
	c.level = level

	c.families, err = FindQueueFamilies(qFamilies, surfacePresentSupport(pd, surf))
	if err != nil {
		return c, err
	}
	extNames, err := ReadDeviceExtensionPropertyNames(pd)
	if err != nil {
		return c, err
	}
	if missing := MissingFrom(DEVICE_EXTENSIONS, extNames); len(missing) > 0 {
		return c, fmt.Errorf("missing device extensions %v", missing)
	}
	details := ReadSwapChainSupportDetails(pd, surf)
	if !details.Adequate() {
		return c, errors.New("swap chain support inadequate")
	}
	return c, nil
}

func (dc *Device) createLogicalDevice(validation bool) error {
	queueInfos := dc.QFamilies.toQueueCreateInfos()
	deviceCreateInfo := &vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(DEVICE_EXTENSIONS)),
		PpEnabledExtensionNames: TerminatedStrs(DEVICE_EXTENSIONS),
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{{}},
	}
	if validation {
		deviceCreateInfo.EnabledLayerCount = uint32(len(VALIDATION_LAYERS))
		deviceCreateInfo.PpEnabledLayerNames = TerminatedStrs(VALIDATION_LAYERS)
	}

	var err error
	dc.D, err = VkCreateDevice(dc.PD, deviceCreateInfo, nil)
	if err != nil {
		return fmt.Errorf("create logical device: %w", err)
	}
	dc.GraphicsQ, err = VkGetDeviceQueue(dc.D, dc.QFamilies.GraphicsFamily, 0)
	if err != nil {
		return fmt.Errorf("get graphics queue: %w", err)
	}
	dc.PresentQ, err = VkGetDeviceQueue(dc.D, dc.QFamilies.PresentFamily, 0)
	if err != nil {
		return fmt.Errorf("get present queue: %w", err)
	}
	return nil
}

// WaitIdle blocks until the device finished all submitted work.
func (dc *Device) WaitIdle() {
	if dc.D != nil {
		vk.DeviceWaitIdle(dc.D)
	}
}

func (dc *Device) Destroy() {
	if dc.D != nil {
		vk.DestroyDevice(dc.D, nil)
		dc.D = nil
	}
}
