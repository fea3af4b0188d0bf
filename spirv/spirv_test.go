package spirv

import (
	"encoding/binary"
	"errors"
	"testing"
)

func ins(op uint32, operands ...uint32) []uint32 {
	return append([]uint32{uint32(len(operands)+1)<<16 | op}, operands...)
}

// vertexShader mimics the interface of the vertex color shader: two located
// inputs plus gl_VertexIndex as a built-in input.
func vertexShader() []uint32 {
	w := []uint32{Magic, 0x00010000, 0, 100, 0}
	w = append(w, ins(opEntryPoint, ModelVertex, 4, 0x6e69616d, 0, 10, 11)...) // "main"
	w = append(w, ins(opDecorate, 10, decorLocation, 0)...)
	w = append(w, ins(opDecorate, 11, decorLocation, 1)...)
	w = append(w, ins(opDecorate, 12, decorBuiltIn, 42)...)
	w = append(w, ins(opVariable, 20, 12, storageInput)...)
	w = append(w, ins(opVariable, 21, 11, storageInput)...)
	w = append(w, ins(opVariable, 21, 10, storageInput)...)
	w = append(w, ins(opVariable, 22, 13, 3)...) // Output
	w = append(w, ins(opDecorate, 13, decorLocation, 0)...)
	return w
}

func toBytes(words []uint32, order binary.ByteOrder) []byte {
	b := make([]byte, len(words)*4)
	for i, w := range words {
		order.PutUint32(b[i*4:], w)
	}
	return b
}

func TestParseVertexShader(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		m, err := Parse(toBytes(vertexShader(), order))
		if err != nil {
			t.Fatalf("Parse failed for %s: %s", order, err)
		}
		if !m.HasEntryPoint(ModelVertex, "main") {
			t.Errorf("Expected vertex entry point main, got %+v", m.EntryPoints())
		}
		locs := m.InputLocations()
		if len(locs) != 2 || locs[0] != 0 || locs[1] != 1 {
			t.Errorf("Expected input locations [0 1], got %v", locs)
		}
		if err := m.RequireInputs(0, 1); err != nil {
			t.Errorf("Position and color should satisfy the shader: %s", err)
		}
		if err := m.RequireInputs(0); !errors.Is(err, ErrMissingAttr) {
			t.Errorf("Missing color should be reported, got %v", err)
		}
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	good := toBytes(vertexShader(), binary.LittleEndian)
	tests := []struct {
		name string
		code []byte
		want error
	}{
		{"unaligned", good[:len(good)-1], ErrNotAligned},
		{"too short", good[:8], ErrTooShort},
		{"bad magic", append([]byte{1, 2, 3, 4}, good[4:]...), ErrBadMagic},
		{"truncated instruction", good[:len(good)-4], ErrTruncated},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.code); !errors.Is(err, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestZeroWordCountIsTruncation(t *testing.T) {
	w := []uint32{Magic, 0x00010000, 0, 1, 0, 0}
	if _, err := Parse(toBytes(w, binary.LittleEndian)); !errors.Is(err, ErrTruncated) {
		t.Errorf("Expected truncation error, got %v", err)
	}
}
