package common

import (
	"unsafe"
)

// Provides general helper functions for comparisons and conversions

// MissingFrom lists every entry of required that is not contained in available. This is mainly used to check for
// extension and layer support during the initialization process.
func MissingFrom(required []string, available []string) []string {
	var missing []string
	for _, r := range required {
		isIn := false
		for _, a := range available {
			if r == a {
				isIn = true
				break
			}
		}
		if !isIn {
			missing = append(missing, r)
		}
	}
	return missing
}

// TerminatedStr ensures the given string is \x00 terminated as vulkan expects this in certain structs
func TerminatedStr(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\x00' {
		return s + "\x00"
	}
	return s
}

// TerminatedStrs returns terminated copies and leaves strs untouched.
func TerminatedStrs(strs []string) []string {
	out := make([]string, len(strs))
	for i := range strs {
		out[i] = TerminatedStr(strs[i])
	}
	return out
}

// AsUint32Arr reinterprets SPIR-V bytes as the word slice vk.ShaderModuleCreateInfo wants. len(data) must be a
// multiple of 4, which spirv.Parse checks beforehand.
func AsUint32Arr(data []byte) []uint32 {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&data[0])), len(data)/4)
}
