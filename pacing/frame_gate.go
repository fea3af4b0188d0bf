package pacing

// Clock reports a wrapping millisecond timestamp, like sdl.GetTicks.
type Clock func() uint32

const DefaultIntervalMs uint32 = 16

// FrameGate lets a frame through once at least one interval has elapsed
// since the last frame, carrying the remainder into the next measurement.
type FrameGate struct {
	clock      Clock
	intervalMs uint32
	last       uint32
	carry      uint32
}

func NewFrameGate(clock Clock, intervalMs uint32) *FrameGate {
	if intervalMs == 0 {
		intervalMs = DefaultIntervalMs
	}
	return &FrameGate{
		clock:      clock,
		intervalMs: intervalMs,
		last:       clock(),
	}
}

// Tick samples the clock and reports whether a frame is due. Unsigned
// subtraction keeps the delta correct across a wrap of the clock.
func (g *FrameGate) Tick() bool {
	now := g.clock()
	dt := (now - g.last) + g.carry
	if dt < g.intervalMs {
		return false
	}
	g.last = now
	g.carry = dt % g.intervalMs
	return true
}

func (g *FrameGate) Carry() uint32 {
	return g.carry
}

func (g *FrameGate) Interval() uint32 {
	return g.intervalMs
}
