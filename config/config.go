package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/mei1161/0522-3D/featurelevel"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "cube.yml"

// Prevent accidental loading of something that is not a config file
const maxConfigSize = 64 * 1024

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
}

type RendererConfig struct {
	Validation      bool       `yaml:"validation"`
	FeatureLevels   []string   `yaml:"feature_levels"`
	FrameIntervalMs uint32     `yaml:"frame_interval_ms"`
	FramesInFlight  int        `yaml:"frames_in_flight"`
	ClearColor      [4]float32 `yaml:"clear_color"`
	VertexShader    string     `yaml:"vertex_shader"`
	FragmentShader  string     `yaml:"fragment_shader"`
}

type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Renderer RendererConfig `yaml:"renderer"`
}

// Default reproduces the fixed setup of the demo.
func Default() Config {
	levels := featurelevel.Default()
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = l.String()
	}
	return Config{
		Window: WindowConfig{
			Title:  "3DGame",
			Width:  1280,
			Height: 720,
		},
		Renderer: RendererConfig{
			Validation:      false,
			FeatureLevels:   names,
			FrameIntervalMs: 16,
			FramesInFlight:  2,
			ClearColor:      [4]float32{0.392156899, 0.584313750, 0.929411829, 1}, // cornflower blue
			VertexShader:    "shaders_spv/vertex_color.vert.spv",
			FragmentShader:  "shaders_spv/vertex_color.frag.spv",
		},
	}
}

// Load overlays the YAML file at path onto Default. A missing file is not an
// error and yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("No config at %s, using defaults", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("stat config %s: %w", path, err)
	}
	if info.Size() > maxConfigSize {
		return cfg, fmt.Errorf("config %s is too large (%d bytes)", path, info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err = Parse(data)
	if err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	log.Printf("Loaded config from %s", path)
	return cfg, nil
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Renderer.FrameIntervalMs == 0 {
		return errors.New("frame_interval_ms must be positive")
	}
	if c.Renderer.FramesInFlight < 1 || c.Renderer.FramesInFlight > 3 {
		return fmt.Errorf("frames_in_flight %d must be between 1 and 3", c.Renderer.FramesInFlight)
	}
	for i, v := range c.Renderer.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("clear_color[%d] = %f is outside of [0, 1]", i, v)
		}
	}
	if len(c.Renderer.FeatureLevels) == 0 {
		return errors.New("feature_levels must not be empty")
	}
	if _, err := c.Levels(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Levels() ([]featurelevel.Level, error) {
	return featurelevel.ParseAll(c.Renderer.FeatureLevels)
}

// Aspect is the width to height ratio of the client area.
func (c *Config) Aspect() float64 {
	return float64(c.Window.Width) / float64(c.Window.Height)
}
