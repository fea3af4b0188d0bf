package common

import (
	"fmt"
	"strings"

	vk "github.com/goki/vulkan"
)

// Human readable renderings of device information, used when logging the device selection.

// DescribePhysicalDevice summarizes one candidate device with one line per queue family.
func DescribePhysicalDevice(props vk.PhysicalDeviceProperties, qFamilies []vk.QueueFamilyProperties) string {
	b := strings.Builder{}
	b.WriteString(fmt.Sprintf(
		"%s:\n|_api: %s, driver: %s, vendor: %s, type: %s\n",
		vk.ToString(props.DeviceName[:]),
		vk.Version(props.ApiVersion).String(),
		DriverVersion(vk.VendorId(props.VendorID), props.DriverVersion),
		VendorName(vk.VendorId(props.VendorID)),
		DeviceTypeName(props.DeviceType),
	))
	for i := range qFamilies {
		lead := "| "
		if i == len(qFamilies)-1 {
			lead = "|_"
		}
		b.WriteString(fmt.Sprintf("%sQfamily[%d] count: %2d, flags: %v\n",
			lead, i, qFamilies[i].QueueCount, QueueFlagNames(qFamilies[i].QueueFlags)))
	}
	return b.String()
}

func VendorName(v vk.VendorId) string {
	switch v {
	case 0x1002:
		return "AMD"
	case 0x1010:
		return "ImgTec"
	case 0x10DE:
		return "NVIDIA"
	case 0x13B5:
		return "ARM"
	case 0x5143:
		return "Qualcomm"
	case 0x8086:
		return "INTEL"
	case 0x10005:
		return "Mesa"
	default:
		return "unknown"
	}
}

// DriverVersion decodes the vendor specific driver version. NVIDIA packs it differently from the api version.
func DriverVersion(vendor vk.VendorId, raw uint32) string {
	if vendor != 0x10DE {
		return vk.Version(raw).String()
	}
	return fmt.Sprintf(
		"%d.%d.%d.%d",
		(raw>>22)&0x3ff,
		(raw>>14)&0x0ff,
		(raw>>6)&0x0ff,
		raw&0x003f,
	)
}

func DeviceTypeName(dt vk.PhysicalDeviceType) string {
	switch dt {
	case vk.PhysicalDeviceTypeOther:
		return "other"
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "integrated gpu"
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "discrete gpu"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "virtual gpu"
	case vk.PhysicalDeviceTypeCpu:
		return "cpu"
	default:
		return "unknown"
	}
}

func QueueFlagNames(bits vk.QueueFlags) []string {
	var names []string
	flags := vk.QueueFlagBits(bits)
	for _, f := range []struct {
		bit  vk.QueueFlagBits
		name string
	}{
		{vk.QueueGraphicsBit, "graphics"},
		{vk.QueueComputeBit, "compute"},
		{vk.QueueTransferBit, "transfer"},
		{vk.QueueSparseBindingBit, "sparse"},
		{vk.QueueProtectedBit, "protected"},
	} {
		if flags&f.bit > 0 {
			names = append(names, f.name)
		}
	}
	return names
}
