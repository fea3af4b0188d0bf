package events

import (
	"errors"
	"testing"
)

type recordingCloser struct {
	posts int
	err   error
}

func (c *recordingCloser) PostClose() error {
	c.posts++
	return c.err
}

func TestEscapePostsExactlyOneClose(t *testing.T) {
	c := &recordingCloser{}
	s := NewAppSink()
	s.Attach(c)
	s.OnKeyDown(KeyEscape)
	if c.posts != 1 {
		t.Errorf("Expected one close request, got %d", c.posts)
	}
	if s.QuitRequested() {
		t.Errorf("Quit must wait for the destroy event")
	}
	s.OnDestroy()
	if !s.QuitRequested() {
		t.Errorf("Destroy should raise the quit signal")
	}
}

func TestOtherKeysPostNothing(t *testing.T) {
	c := &recordingCloser{}
	s := NewAppSink()
	s.Attach(c)
	for _, k := range []Key{KeyUnknown, KeyOther} {
		s.OnKeyDown(k)
	}
	if c.posts != 0 {
		t.Errorf("Expected no close requests, got %d", c.posts)
	}
	if s.QuitRequested() {
		t.Errorf("Other keys must not quit")
	}
}

func TestPaintIsAcknowledged(t *testing.T) {
	s := NewAppSink()
	s.OnPaint()
	s.OnPaint()
	if s.Painted() != 2 || s.QuitRequested() {
		t.Errorf("Paint should only be acknowledged, got painted=%d quit=%v", s.Painted(), s.QuitRequested())
	}
}

func TestFailedCloseQuits(t *testing.T) {
	c := &recordingCloser{err: errors.New("queue full")}
	s := NewAppSink()
	s.Attach(c)
	s.OnKeyDown(KeyEscape)
	if !s.QuitRequested() {
		t.Errorf("A close request that cannot be queued should quit directly")
	}
}

func TestKeyString(t *testing.T) {
	if KeyEscape.String() != "Escape" || Key(99).String() != "Unknown" {
		t.Errorf("Unexpected key names: %s %s", KeyEscape, Key(99))
	}
}
