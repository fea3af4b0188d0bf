package common

import (
	"reflect"
	"testing"

	vk "github.com/goki/vulkan"
)

func TestDriverVersion(t *testing.T) {
	nv := uint32(535<<22 | 98<<14 | 0<<6 | 0)
	if got := DriverVersion(0x10DE, nv); got != "535.98.0.0" {
		t.Errorf("Unexpected NVIDIA driver version %q", got)
	}
	if got := DriverVersion(0x8086, vk.MakeVersion(1, 2, 3)); got != vk.Version(vk.MakeVersion(1, 2, 3)).String() {
		t.Errorf("Non NVIDIA drivers should use the api encoding, got %q", got)
	}
}

func TestQueueFlagNames(t *testing.T) {
	got := QueueFlagNames(vk.QueueFlags(vk.QueueGraphicsBit | vk.QueueTransferBit))
	if want := []string{"graphics", "transfer"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if got := QueueFlagNames(0); got != nil {
		t.Errorf("Expected no names for empty flags, got %v", got)
	}
}

func TestNames(t *testing.T) {
	if VendorName(0x1002) != "AMD" || VendorName(0x1234) != "unknown" {
		t.Errorf("Vendor lookup broken")
	}
	if DeviceTypeName(vk.PhysicalDeviceTypeDiscreteGpu) != "discrete gpu" {
		t.Errorf("Device type lookup broken")
	}
}
