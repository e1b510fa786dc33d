package controller

import "github.com/go-gl/mathgl/mgl32"

// InputEvent is a discrete event delivered by the input system.
type InputEvent interface {
	inputEvent()
}

// ActionEvent is sent when an action changes state.
type ActionEvent struct {
	Action  string
	Pressed bool
	// Echo is set for key-repeat events.
	Echo bool
}

// MouseMotionEvent carries a relative mouse movement in pixels.
type MouseMotionEvent struct {
	Relative mgl32.Vec2
}

func (ActionEvent) inputEvent()      {}
func (MouseMotionEvent) inputEvent() {}

// isActionPressed returns true if the event is the press edge of the given action.
func isActionPressed(ev InputEvent, action string) bool {
	a, ok := ev.(ActionEvent)
	return ok && a.Pressed && !a.Echo && a.Action == action
}
