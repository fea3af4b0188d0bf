// Package stage tags startup failures with the initialization step that
// produced them.
package stage

import (
	"errors"
	"fmt"
)

type Stage int

const (
	Unknown Stage = iota
	WindowClass
	Window
	Instance
	Surface
	Device
	SwapChain
	BackBuffer
	RenderTargetView
	Platform
	Effect
	InputLayout
	States
)

var names = map[Stage]string{
	Unknown:          "unknown",
	WindowClass:      "window class",
	Window:           "window",
	Instance:         "instance",
	Surface:          "surface",
	Device:           "device",
	SwapChain:        "swap chain",
	BackBuffer:       "back buffer",
	RenderTargetView: "render target view",
	Platform:         "platform",
	Effect:           "effect",
	InputLayout:      "input layout",
	States:           "states",
}

func (s Stage) String() string {
	if n, ok := names[s]; ok {
		return n
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("init %s: %s", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap tags err with s. A nil err stays nil and an already tagged error
// keeps its original stage.
func Wrap(s Stage, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return &Error{Stage: s, Err: err}
}

// Of returns the stage err was tagged with, or Unknown.
func Of(err error) Stage {
	var se *Error
	if errors.As(err, &se) {
		return se.Stage
	}
	return Unknown
}
