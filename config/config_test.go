package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.Window.Title != "3DGame" || c.Window.Width != 1280 || c.Window.Height != 720 {
		t.Errorf("Unexpected default window %+v", c.Window)
	}
	if c.Renderer.FrameIntervalMs != 16 {
		t.Errorf("Expected a 16 ms frame interval, got %d", c.Renderer.FrameIntervalMs)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Defaults must validate: %s", err)
	}
	levels, err := c.Levels()
	if err != nil || len(levels) != 4 || levels[0].String() != "1.3" || levels[3].String() != "1.0" {
		t.Errorf("Unexpected default levels %v, %v", levels, err)
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Missing config should not fail: %s", err)
	}
	if c.Window != Default().Window {
		t.Errorf("Expected defaults, got %+v", c.Window)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.yml")
	data := []byte("window:\n  width: 800\n  height: 600\nrenderer:\n  feature_levels: [\"1.1\"]\n  validation: true\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	if c.Window.Width != 800 || c.Window.Height != 600 || c.Window.Title != "3DGame" {
		t.Errorf("Overlay not applied over defaults: %+v", c.Window)
	}
	if !c.Renderer.Validation || len(c.Renderer.FeatureLevels) != 1 {
		t.Errorf("Renderer overlay not applied: %+v", c.Renderer)
	}
	if c.Renderer.VertexShader != Default().Renderer.VertexShader {
		t.Errorf("Unset fields should keep their defaults")
	}
	if c.Aspect() != 800.0/600.0 {
		t.Errorf("Unexpected aspect %f", c.Aspect())
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	for _, doc := range []string{
		"window: {width: 0}",
		"renderer: {frame_interval_ms: 0}",
		"renderer: {frames_in_flight: 9}",
		"renderer: {feature_levels: []}",
		"renderer: {feature_levels: [\"eleven\"]}",
		"renderer: {clear_color: [2, 0, 0, 1]}",
		"window: [not, a, map]",
	} {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("Expected %q to be rejected", doc)
		}
	}
}
