package events

import "log"

// Key identifies a keyboard key independent of the windowing backend.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyOther
)

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "Escape"
	case KeyOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// EventSink receives the window events the program reacts to.
type EventSink interface {
	OnPaint()
	OnKeyDown(k Key)
	OnDestroy()
}

// Closer queues a close request for the window, to be delivered as a
// destroy on a later pump.
type Closer interface {
	PostClose() error
}

// AppSink is the event sink of the demo: escape asks the window to close
// and a destroyed window raises the quit signal.
type AppSink struct {
	closer  Closer
	quit    bool
	painted int
}

func NewAppSink() *AppSink {
	return &AppSink{}
}

// Attach connects the sink to the window that will carry out close requests.
func (s *AppSink) Attach(c Closer) {
	s.closer = c
}

func (s *AppSink) OnPaint() {
	s.painted++
}

func (s *AppSink) OnKeyDown(k Key) {
	if k != KeyEscape {
		return
	}
	if s.closer == nil {
		log.Printf("Escape pressed without an attached window, quitting directly")
		s.quit = true
		return
	}
	if err := s.closer.PostClose(); err != nil {
		log.Printf("Failed to post close request: %s", err)
		s.quit = true
	}
}

func (s *AppSink) OnDestroy() {
	s.quit = true
}

func (s *AppSink) QuitRequested() bool {
	return s.quit
}

// Painted counts acknowledged paint requests.
func (s *AppSink) Painted() int {
	return s.painted
}
