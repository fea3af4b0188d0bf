// Package spirv reads the parts of a SPIR-V module needed to match a vertex
// shader's inputs against a vertex format.
package spirv

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
)

const (
	Magic         uint32 = 0x07230203
	headerWords          = 5
	opEntryPoint         = 15
	opDecorate           = 71
	opVariable           = 59
	decorBuiltIn         = 11
	decorLocation        = 30
	storageInput         = 1
)

// ExecutionModel values of OpEntryPoint.
const (
	ModelVertex   uint32 = 0
	ModelFragment uint32 = 4
)

var (
	ErrTooShort    = errors.New("spirv: module shorter than its header")
	ErrNotAligned  = errors.New("spirv: module size is not a multiple of 4")
	ErrBadMagic    = errors.New("spirv: bad magic number")
	ErrTruncated   = errors.New("spirv: instruction runs past end of module")
	ErrMissingAttr = errors.New("spirv: shader input not provided by vertex format")
)

type EntryPoint struct {
	Model uint32
	Name  string
}

type Module struct {
	Words       []uint32
	Version     uint32
	entryPoints []EntryPoint
	locations   map[uint32]uint32 // result id -> Location
	builtIns    map[uint32]bool
	inputs      []uint32 // result ids of Input variables
}

// Parse decodes a SPIR-V binary in either byte order.
func Parse(code []byte) (*Module, error) {
	if len(code)%4 != 0 {
		return nil, ErrNotAligned
	}
	if len(code) < headerWords*4 {
		return nil, ErrTooShort
	}
	var order binary.ByteOrder = binary.LittleEndian
	if order.Uint32(code) != Magic {
		order = binary.BigEndian
		if order.Uint32(code) != Magic {
			return nil, fmt.Errorf("%w: 0x%08x", ErrBadMagic, binary.LittleEndian.Uint32(code))
		}
	}
	words := make([]uint32, len(code)/4)
	for i := range words {
		words[i] = order.Uint32(code[i*4:])
	}
	return parseWords(words)
}

func parseWords(words []uint32) (*Module, error) {
	m := &Module{
		Words:     words,
		Version:   words[1],
		locations: map[uint32]uint32{},
		builtIns:  map[uint32]bool{},
	}
	for pc := headerWords; pc < len(words); {
		wc := int(words[pc] >> 16)
		op := words[pc] & 0xffff
		if wc == 0 || pc+wc > len(words) {
			return nil, fmt.Errorf("%w at word %d", ErrTruncated, pc)
		}
		ins := words[pc : pc+wc]
		switch op {
		case opEntryPoint:
			if wc >= 4 {
				m.entryPoints = append(m.entryPoints, EntryPoint{Model: ins[1], Name: literalString(ins[3:])})
			}
		case opDecorate:
			if wc >= 3 {
				switch ins[2] {
				case decorLocation:
					if wc >= 4 {
						m.locations[ins[1]] = ins[3]
					}
				case decorBuiltIn:
					m.builtIns[ins[1]] = true
				}
			}
		case opVariable:
			if wc >= 4 && ins[3] == storageInput {
				m.inputs = append(m.inputs, ins[2])
			}
		}
		pc += wc
	}
	return m, nil
}

func literalString(words []uint32) string {
	b := make([]byte, 0, len(words)*4)
	for _, w := range words {
		for i := 0; i < 4; i++ {
			c := byte(w >> (8 * i))
			if c == 0 {
				return string(b)
			}
			b = append(b, c)
		}
	}
	return string(b)
}

func (m *Module) EntryPoints() []EntryPoint {
	return m.entryPoints
}

// HasEntryPoint reports whether the module declares name for the given model.
func (m *Module) HasEntryPoint(model uint32, name string) bool {
	for _, ep := range m.entryPoints {
		if ep.Model == model && ep.Name == name {
			return true
		}
	}
	return false
}

// InputLocations lists the Location of every user defined input variable,
// sorted ascending. Built-in inputs carry no location and are skipped.
func (m *Module) InputLocations() []uint32 {
	var locs []uint32
	for _, id := range m.inputs {
		if m.builtIns[id] {
			continue
		}
		if loc, ok := m.locations[id]; ok {
			locs = append(locs, loc)
		}
	}
	sort.Slice(locs, func(i, j int) bool { return locs[i] < locs[j] })
	return locs
}

// RequireInputs fails when the shader consumes a location that provided
// does not cover. Extra provided locations are fine.
func (m *Module) RequireInputs(provided ...uint32) error {
	have := map[uint32]bool{}
	for _, p := range provided {
		have[p] = true
	}
	for _, loc := range m.InputLocations() {
		if !have[loc] {
			return fmt.Errorf("%w: location %d", ErrMissingAttr, loc)
		}
	}
	return nil
}
