package common

import (
	"errors"
	"fmt"
	"log"
	"unsafe"

	vk "github.com/goki/vulkan"
	"github.com/mattn/go-pointer"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/mei1161/0522-3D/config"
	"github.com/mei1161/0522-3D/events"
	"github.com/mei1161/0522-3D/featurelevel"
	"github.com/mei1161/0522-3D/stage"
)

const APPLICATION_NAME = "3DGame"
const APP_MAJOR, APP_MINOR, APP_PATCH = 1, 0, 0
const ENGINE_NAME = "No Engine"
const ENGINE_MAJOR, ENGINE_MINOR, ENGINE_PATCH = 1, 0, 0

const SDL_MAJOR, SDL_MINOR, SDL_PATCH = int(sdl.MAJOR_VERSION), int(sdl.MINOR_VERSION), int(sdl.PATCHLEVEL)

var VALIDATION_LAYERS = []string{
	"VK_LAYER_KHRONOS_validation",
}

// Key under which the event sink is attached to the sdl window.
const sinkDataKey = "events.sink"

var ErrNoLevelAccepted = errors.New("driver accepted none of the preferred api versions")

// Window owns the SDL window, the Vulkan instance created for it and the surface to present on. Events
// pumped from SDL are routed to the sink attached at creation time.
type Window struct {
	Win    *sdl.Window
	ID     uint32
	Width  int32
	Height int32

	Inst  vk.Instance
	Surf  vk.Surface
	Level featurelevel.Level

	sinkRef unsafe.Pointer
}

// NewWindow registers SDL, creates the hidden window and brings up the instance and surface. On failure
// everything created so far is torn down again and the error carries the failing stage.
func NewWindow(cfg config.WindowConfig, validation bool, levels []featurelevel.Level, sink events.EventSink) (*Window, error) {
	w := &Window{Width: cfg.Width, Height: cfg.Height}
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS | sdl.INIT_TIMER); err != nil {
		return nil, stage.Wrap(stage.WindowClass, err)
	}
	log.Printf("Initialized SDL v%d.%d.%d", SDL_MAJOR, SDL_MINOR, SDL_PATCH)

	if err := w.initSDLWindow(cfg.Title, sink); err != nil {
		w.Destroy()
		return nil, stage.Wrap(stage.Window, err)
	}
	if err := w.createVulkanInstance(validation, levels); err != nil {
		w.Destroy()
		return nil, stage.Wrap(stage.Instance, err)
	}
	surf, err := SdlCreateVkSurface(w.Win, w.Inst)
	if err != nil {
		w.Destroy()
		return nil, stage.Wrap(stage.Surface, err)
	}
	w.Surf = surf
	log.Printf("Generated SDL/Vulkan window %q (%dx%d), api %s", cfg.Title, w.Width, w.Height, w.Level)
	return w, nil
}

func (w *Window) initSDLWindow(title string, sink events.EventSink) error {
	win, err := sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		w.Width,
		w.Height,
		sdl.WINDOW_HIDDEN|sdl.WINDOW_VULKAN,
	)
	if err != nil {
		return err
	}
	w.Win = win
	w.ID, err = win.GetID()
	if err != nil {
		return err
	}
	w.sinkRef = pointer.Save(sink)
	win.SetData(sinkDataKey, w.sinkRef)
	return nil
}

// createVulkanInstance tries the preferred api versions in order and keeps the first the driver accepts.
func (w *Window) createVulkanInstance(validation bool, levels []featurelevel.Level) error {
	vk.SetGetInstanceProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err := vk.Init(); err != nil {
		return fmt.Errorf("initialize vulkan api: %w", err)
	}

	requiredExtensions := w.Win.VulkanGetInstanceExtensions()
	supportedExtensions, err := ReadInstanceExtensionPropertyNames()
	if err != nil {
		return err
	}
	if missing := MissingFrom(requiredExtensions, supportedExtensions); len(missing) > 0 {
		return fmt.Errorf("unsupported instance extensions %v", missing)
	}

	var layers []string
	if validation {
		supportedLayers, err := ReadInstanceLayerPropertyNames()
		if err != nil {
			return err
		}
		if missing := MissingFrom(VALIDATION_LAYERS, supportedLayers); len(missing) > 0 {
			log.Printf("Validation requested but layers %v are missing, continuing without", missing)
		} else {
			layers = VALIDATION_LAYERS
		}
	}

	for _, level := range levels {
		applicationInfo := &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			PApplicationName:   TerminatedStr(APPLICATION_NAME),
			ApplicationVersion: vk.MakeVersion(APP_MAJOR, APP_MINOR, APP_PATCH),
			PEngineName:        TerminatedStr(ENGINE_NAME),
			EngineVersion:      vk.MakeVersion(ENGINE_MAJOR, ENGINE_MINOR, ENGINE_PATCH),
			ApiVersion:         level.Encode(),
		}
		createInfo := &vk.InstanceCreateInfo{
			SType:                   vk.StructureTypeInstanceCreateInfo,
			PApplicationInfo:        applicationInfo,
			EnabledLayerCount:       uint32(len(layers)),
			PpEnabledLayerNames:     TerminatedStrs(layers),
			EnabledExtensionCount:   uint32(len(requiredExtensions)),
			PpEnabledExtensionNames: TerminatedStrs(requiredExtensions),
		}
		ins, err := VkCreateInstance(createInfo, nil)
		if errors.Is(err, ErrIncompatibleDriver) {
			log.Printf("Driver rejected api %s, trying next", level)
			continue
		}
		if err != nil {
			return err
		}
		w.Inst = ins
		w.Level = level
		return nil
	}
	return ErrNoLevelAccepted
}

// Show makes the window visible. It is called once initialization has completed.
func (w *Window) Show() {
	w.Win.Show()
}

// PostClose queues a close request for this window. It is delivered as a destroy on a later Pump.
func (w *Window) PostClose() error {
	_, err := sdl.PushEvent(&sdl.WindowEvent{
		Type:      sdl.WINDOWEVENT,
		Timestamp: sdl.GetTicks(),
		WindowID:  w.ID,
		Event:     sdl.WINDOWEVENT_CLOSE,
	})
	return err
}

// Pump drains all pending events without blocking and dispatches them to the sink. It returns the number
// of events that were pending.
func (w *Window) Pump() int {
	sink := w.sink()
	n := 0
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		n++
		if sink != nil {
			Dispatch(event, w.ID, sink)
		}
	}
	return n
}

func (w *Window) sink() events.EventSink {
	if w.Win == nil {
		return nil
	}
	ref := w.Win.GetData(sinkDataKey)
	if ref == nil {
		return nil
	}
	s, ok := pointer.Restore(ref).(events.EventSink)
	if !ok {
		return nil
	}
	return s
}

// Dispatch routes a single SDL event to the sink. Events addressed to other windows are ignored. It reports
// whether the event was handled.
func Dispatch(event sdl.Event, windowID uint32, sink events.EventSink) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		sink.OnDestroy()
		return true
	case *sdl.WindowEvent:
		if e.WindowID != windowID {
			return false
		}
		switch e.Event {
		case sdl.WINDOWEVENT_EXPOSED:
			sink.OnPaint()
			return true
		case sdl.WINDOWEVENT_CLOSE:
			sink.OnDestroy()
			return true
		}
	case *sdl.KeyboardEvent:
		if e.WindowID != windowID || e.Type != sdl.KEYDOWN {
			return false
		}
		sink.OnKeyDown(TranslateKey(e.Keysym.Sym))
		return true
	}
	return false
}

func TranslateKey(sym sdl.Keycode) events.Key {
	switch sym {
	case sdl.K_ESCAPE:
		return events.KeyEscape
	case sdl.K_UNKNOWN:
		return events.KeyUnknown
	default:
		return events.KeyOther
	}
}

// Destroy tears down the surface, the instance and the sdl window in that order. It is safe on a partially
// constructed Window.
func (w *Window) Destroy() {
	if w.Surf != nil {
		vk.DestroySurface(w.Inst, w.Surf, nil)
		w.Surf = nil
	}
	if w.Inst != nil {
		vk.DestroyInstance(w.Inst, nil)
		w.Inst = nil
	}
	if w.Win != nil {
		if err := w.Win.Destroy(); err != nil {
			log.Printf("Failed to destroy sdl window: %s", err)
		}
		w.Win = nil
	}
	if w.sinkRef != nil {
		pointer.Unref(w.sinkRef)
		w.sinkRef = nil
	}
	sdl.Quit()
}
