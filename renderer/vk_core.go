package renderer

import (
	"errors"
	"fmt"
	"log"
	"math"

	vk "github.com/goki/vulkan"
	"github.com/veandco/go-sdl2/sdl"

	com "github.com/mei1161/0522-3D/common"
	"github.com/mei1161/0522-3D/config"
	"github.com/mei1161/0522-3D/events"
	"github.com/mei1161/0522-3D/model"
	"github.com/mei1161/0522-3D/pacing"
	"github.com/mei1161/0522-3D/platform"
	"github.com/mei1161/0522-3D/primitive"
	"github.com/mei1161/0522-3D/stage"
)

type State int

const (
	Initializing State = iota
	Running
	ShuttingDown
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case ShuttingDown:
		return "shutting down"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var ErrNotInitializing = errors.New("render core already initialized")

// pumper drains pending window events and reports how many there were.
type pumper interface {
	Pump() int
}

type Core struct {
	cfg   config.Config
	state State
	sink  *events.AppSink

	// OS/Window level
	Win    *com.Window
	device *com.Device
	com    *platform.COM

	// Target level
	swapChain  *com.SwapChain
	renderPass vk.RenderPass

	// Drawing infrastructure level
	frames *frameContext
	effect *Effect
	states *CommonStates
	batch  *PrimitiveBatch

	// Frame level
	currentFrameIdx int
	pump            pumper
	clock           pacing.Clock
	gate            *pacing.FrameGate
	draw            func() error
	frameCount      uint64

	// 3D World
	Cam     *model.Camera
	spinner model.Spinner
	mesh    *model.Mesh
}

func NewRenderCore(cfg config.Config) *Core {
	c := &Core{
		cfg:   cfg,
		state: Initializing,
		sink:  events.NewAppSink(),
		clock: sdl.GetTicks,
		Cam:   model.NewCamera(int(cfg.Window.Width), int(cfg.Window.Height)),
		mesh:  model.NewCubeMesh(),
	}
	c.draw = c.drawFrame
	return c
}

func (c *Core) State() State {
	return c.state
}

// Initialize brings up everything the loop needs. Every failure names the stage it happened in; whatever
// was created up to that point is released by Destroy.
func (c *Core) Initialize() error {
	if c.state != Initializing {
		return ErrNotInitializing
	}
	levels, err := c.cfg.Levels()
	if err != nil {
		return stage.Wrap(stage.Instance, err)
	}

	// 1. window, instance, device and swap chain
	c.Win, err = com.NewWindow(c.cfg.Window, c.cfg.Renderer.Validation, levels, c.sink)
	if err != nil {
		return err
	}
	c.sink.Attach(c.Win)
	c.device, err = com.NewDevice(c.Win, levels, c.cfg.Renderer.Validation)
	if err != nil {
		return stage.Wrap(stage.Device, err)
	}
	c.swapChain, err = com.NewSwapChain(c.device, c.Win)
	if err != nil {
		return err
	}
	c.frames, err = newFrameContext(c.device, c.cfg.Renderer.FramesInFlight, len(c.swapChain.Images))
	if err != nil {
		return stage.Wrap(stage.Device, err)
	}

	// 2. + 3. back buffer views bound as the only render target
	c.renderPass, err = createRenderTarget(c.device, c.swapChain)
	if err != nil {
		return err
	}

	// 5. platform component subsystem
	c.com, err = platform.InitCOM()
	if err != nil {
		return stage.Wrap(stage.Platform, err)
	}

	// 4. + 6. effect with its static viewport and input layout
	c.effect, err = NewEffect(c.device, c.renderPass, c.swapChain.Extent, c.cfg.Renderer.VertexShader, c.cfg.Renderer.FragmentShader)
	if err != nil {
		return err
	}

	// 7. common states and the batch feeding the effect
	c.states, err = NewCommonStates(c.device, c.effect)
	if err != nil {
		return err
	}
	c.batch, err = NewPrimitiveBatch(c.device, c.cfg.Renderer.FramesInFlight)
	if err != nil {
		return stage.Wrap(stage.States, err)
	}

	// 8.
	c.Win.Show()
	c.pump = c.Win
	c.gate = pacing.NewFrameGate(c.clock, c.cfg.Renderer.FrameIntervalMs)
	c.state = Running
	log.Printf("Render core running at level %s", c.device.Level)
	return nil
}

// Run is the message loop. Pending events are drained first; only an iteration without events gives the
// frame gate a chance to update and draw. It returns once the sink saw the window go away.
func (c *Core) Run() {
	if c.state != Running {
		log.Printf("Run called while %s", c.state)
		return
	}
	for !c.sink.QuitRequested() {
		if c.pump.Pump() > 0 {
			continue
		}
		if !c.gate.Tick() {
			continue
		}
		if err := c.draw(); err != nil {
			log.Printf("Stopping after frame %d: %s", c.frameCount, err)
			break
		}
	}
	c.state = ShuttingDown
	log.Printf("Left loop after %d frames", c.frameCount)
}

// Destroy releases everything in reverse order of creation. It copes with a partial Initialize.
func (c *Core) Destroy() {
	c.state = ShuttingDown
	if c.device != nil {
		c.device.WaitIdle()
	}
	c.com.Release()
	if c.device != nil {
		if c.effect != nil {
			c.effect.Destroy(c.device)
		}
		if c.batch != nil {
			c.batch.Destroy(c.device)
		}
		if c.states != nil {
			c.states.Destroy(c.device)
		}
		if c.swapChain != nil {
			c.swapChain.Destroy(c.device)
		}
		if c.renderPass != nil {
			vk.DestroyRenderPass(c.device.D, c.renderPass, nil)
			c.renderPass = nil
		}
		if c.frames != nil {
			c.frames.destroy(c.device)
		}
		c.device.Destroy()
	}
	if c.Win != nil {
		c.Win.Destroy()
	}
}

// update advances the spinner by one step and returns the transform to upload for this frame.
func (c *Core) update() []byte {
	world := c.spinner.Advance()
	return model.NewEffectMatrices(world, c.Cam).PushConstants()
}

// dropFrame keeps the rotation in step with the gate when a due frame cannot be drawn.
func (c *Core) dropFrame() {
	c.update()
	c.frameCount++
}

func (c *Core) recordDrawCommands(buffer vk.CommandBuffer, imageIdx uint32, pushConstants []byte) error {
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
	}
	if err := vk.Error(vk.BeginCommandBuffer(buffer, &beginInfo)); err != nil {
		return fmt.Errorf("begin command buffer: %w", err)
	}

	clearValues := []vk.ClearValue{
		vk.NewClearValue(c.cfg.Renderer.ClearColor[:]),
	}
	renderPassInfo := vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  c.renderPass,
		Framebuffer: c.swapChain.FrameBuffers[imageIdx],
		RenderArea: vk.Rect2D{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: c.swapChain.Extent,
		},
		ClearValueCount: uint32(len(clearValues)),
		PClearValues:    clearValues,
	}
	vk.CmdBeginRenderPass(buffer, &renderPassInfo, vk.SubpassContentsInline)

	c.effect.Apply(buffer, pushConstants, c.states)
	err := c.drawMesh(buffer)

	vk.CmdEndRenderPass(buffer)
	if endErr := vk.Error(vk.EndCommandBuffer(buffer)); endErr != nil && err == nil {
		err = fmt.Errorf("end command buffer: %w", endErr)
	}
	return err
}

func (c *Core) drawMesh(buffer vk.CommandBuffer) error {
	if err := c.batch.Begin(c.currentFrameIdx); err != nil {
		return err
	}
	if err := c.batch.DrawIndexed(primitive.TriangleList, c.mesh.Indices, c.mesh.Vertices); err != nil {
		c.batch.Discard()
		return err
	}
	return c.batch.End(buffer)
}

func (c *Core) drawFrame() error {
	fr := c.frames
	idx := c.currentFrameIdx
	// Wait for frame to be ready - signalled by the inFlight fence
	vk.WaitForFences(c.device.D, 1, []vk.Fence{fr.inFlight[idx]}, vk.True, math.MaxUint64)

	var imgIdx uint32
	result := vk.AcquireNextImage(c.device.D, c.swapChain.Handle, math.MaxUint64, fr.imageAvailable[idx], nil, &imgIdx)
	if result == vk.ErrorOutOfDate {
		c.dropFrame()
		return c.recreateSwapChain()
	} else if result != vk.Success && result != vk.Suboptimal {
		log.Printf("Failed to acquire image, AcquireNextImage(...) result code: %d", result)
		return nil
	}

	pushConstants := c.update()
	vk.ResetCommandBuffer(fr.commandBuffers[idx], 0)
	if err := c.recordDrawCommands(fr.commandBuffers[idx], imgIdx, pushConstants); err != nil {
		return err
	}

	renderFinished, err := fr.presentSemaphore(imgIdx)
	if err != nil {
		return err
	}

	// Reset the fence only once work that signals it is certain to be submitted
	vk.ResetFences(c.device.D, 1, []vk.Fence{fr.inFlight[idx]})
	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{fr.imageAvailable[idx]},
		PWaitDstStageMask: []vk.PipelineStageFlags{
			vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{fr.commandBuffers[idx]},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{renderFinished},
	}
	if err := vk.Error(vk.QueueSubmit(c.device.GraphicsQ, 1, []vk.SubmitInfo{submitInfo}, fr.inFlight[idx])); err != nil {
		return fmt.Errorf("submit command buffer: %w", err)
	}

	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{renderFinished},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{c.swapChain.Handle},
		PImageIndices:      []uint32{imgIdx},
	}
	result = vk.QueuePresent(c.device.PresentQ, &presentInfo)
	c.frameCount++
	c.currentFrameIdx = (c.currentFrameIdx + 1) % len(fr.commandBuffers)
	if result == vk.ErrorOutOfDate || result == vk.Suboptimal {
		return c.recreateSwapChain()
	} else if result != vk.Success {
		log.Printf("Failed to present image, QueuePresent(...) result code: %d", result)
	}
	return nil
}

func (c *Core) recreateSwapChain() error {
	c.device.WaitIdle()
	c.swapChain.Destroy(c.device)
	sc, err := com.NewSwapChain(c.device, c.Win)
	if err != nil {
		c.swapChain = nil
		return err
	}
	c.swapChain = sc
	if err := c.frames.ensureRenderFinished(c.device, len(sc.Images)); err != nil {
		return err
	}
	return c.swapChain.CreateFrameBuffers(c.device, c.renderPass)
}
