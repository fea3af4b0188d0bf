// Package featurelevel negotiates the graphics API level from an ordered
// list of preferences.
package featurelevel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnsupported = errors.New("no preferred feature level is supported")

type Level struct {
	Major uint32
	Minor uint32
}

var (
	Level1_0 = Level{1, 0}
	Level1_1 = Level{1, 1}
	Level1_2 = Level{1, 2}
	Level1_3 = Level{1, 3}
)

// Default is the preference order tried at startup, highest first.
func Default() []Level {
	return []Level{Level1_3, Level1_2, Level1_1, Level1_0}
}

func Parse(s string) (Level, error) {
	major, minor, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok {
		return Level{}, fmt.Errorf("feature level %q: expected <major>.<minor>", s)
	}
	ma, err := strconv.ParseUint(major, 10, 7)
	if err != nil {
		return Level{}, fmt.Errorf("feature level %q: %w", s, err)
	}
	mi, err := strconv.ParseUint(minor, 10, 10)
	if err != nil {
		return Level{}, fmt.Errorf("feature level %q: %w", s, err)
	}
	return Level{Major: uint32(ma), Minor: uint32(mi)}, nil
}

func ParseAll(strs []string) ([]Level, error) {
	levels := make([]Level, 0, len(strs))
	for _, s := range strs {
		l, err := Parse(s)
		if err != nil {
			return nil, err
		}
		levels = append(levels, l)
	}
	return levels, nil
}

func (l Level) String() string {
	return fmt.Sprintf("%d.%d", l.Major, l.Minor)
}

// Encode packs the level the way Vulkan packs API versions, patch 0.
func (l Level) Encode() uint32 {
	return l.Major<<22 | l.Minor<<12
}

// Decode drops the variant and patch bits of a packed Vulkan version.
func Decode(v uint32) Level {
	return Level{Major: (v >> 22) & 0x7f, Minor: (v >> 12) & 0x3ff}
}

func (l Level) AtMost(o Level) bool {
	if l.Major != o.Major {
		return l.Major < o.Major
	}
	return l.Minor <= o.Minor
}

// Negotiate returns the first preference that does not exceed supported.
func Negotiate(supported Level, prefs []Level) (Level, error) {
	for _, p := range prefs {
		if p.AtMost(supported) {
			return p, nil
		}
	}
	return Level{}, fmt.Errorf("%w: device offers %s, asked for %v", ErrUnsupported, supported, prefs)
}
