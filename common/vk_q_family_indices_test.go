package common

import (
	"errors"
	"reflect"
	"testing"

	vk "github.com/goki/vulkan"
)

func family(bits vk.QueueFlagBits) vk.QueueFamilyProperties {
	return vk.QueueFamilyProperties{QueueFlags: vk.QueueFlags(bits), QueueCount: 1}
}

func TestFindQueueFamiliesShared(t *testing.T) {
	fams := []vk.QueueFamilyProperties{family(vk.QueueTransferBit), family(vk.QueueGraphicsBit | vk.QueueComputeBit)}
	idx, err := FindQueueFamilies(fams, func(i uint32) bool { return i == 1 })
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if *idx.GraphicsFamily != 1 || *idx.PresentFamily != 1 || !idx.Shared() {
		t.Errorf("Expected family 1 for both, got %d/%d", *idx.GraphicsFamily, *idx.PresentFamily)
	}
	if got := idx.UniqueFamilies(); !reflect.DeepEqual(got, []uint32{1}) {
		t.Errorf("Expected one unique family, got %v", got)
	}
}

func TestFindQueueFamiliesSplit(t *testing.T) {
	fams := []vk.QueueFamilyProperties{family(vk.QueueGraphicsBit), family(vk.QueueTransferBit)}
	idx, err := FindQueueFamilies(fams, func(i uint32) bool { return i == 1 })
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if idx.Shared() {
		t.Errorf("Families should not be shared")
	}
	if got := idx.toQueueCreateInfos(); len(got) != 2 || got[0].QueueFamilyIndex != 0 || got[1].QueueFamilyIndex != 1 {
		t.Errorf("Unexpected queue create infos %+v", got)
	}
}

func TestFindQueueFamiliesMissing(t *testing.T) {
	fams := []vk.QueueFamilyProperties{family(vk.QueueComputeBit)}
	if _, err := FindQueueFamilies(fams, func(uint32) bool { return true }); !errors.Is(err, ErrNoGraphicsQueue) {
		t.Errorf("Expected missing graphics queue, got %v", err)
	}
	fams = []vk.QueueFamilyProperties{family(vk.QueueGraphicsBit)}
	if _, err := FindQueueFamilies(fams, func(uint32) bool { return false }); !errors.Is(err, ErrNoPresentQueue) {
		t.Errorf("Expected missing present queue, got %v", err)
	}
}
