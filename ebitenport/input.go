package ebitenport

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/oomph-ac/protocontroller/controller"
	"github.com/oomph-ac/protocontroller/input"
	"github.com/oomph-ac/protocontroller/settings"
)

// Binding binds a keyboard key to an action.
type Binding struct {
	Key    ebiten.Key
	Action string
}

// DefaultBindings binds WASD, space, left shift, left control, N and escape to the configured actions.
func DefaultBindings(a settings.Actions) []Binding {
	return []Binding{
		{Key: ebiten.KeyW, Action: a.MoveForward},
		{Key: ebiten.KeyS, Action: a.MoveBackward},
		{Key: ebiten.KeyA, Action: a.MoveLeft},
		{Key: ebiten.KeyD, Action: a.MoveRight},
		{Key: ebiten.KeySpace, Action: a.Jump},
		{Key: ebiten.KeyShiftLeft, Action: a.Sprint},
		{Key: ebiten.KeyControlLeft, Action: a.Crouch},
		{Key: ebiten.KeyN, Action: a.Noclip},
		{Key: ebiten.KeyEscape, Action: a.Cancel},
	}
}

// Source is the device state polled once per frame.
type Source interface {
	JustPressed(key ebiten.Key) bool
	JustReleased(key ebiten.Key) bool
	CursorPosition() (x, y int)
	SetCursorMode(mode ebiten.CursorModeType)
}

// Ebiten reads keyboard and mouse state from the running ebiten game.
type Ebiten struct{}

// JustPressed ...
func (Ebiten) JustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// JustReleased ...
func (Ebiten) JustReleased(key ebiten.Key) bool {
	return inpututil.IsKeyJustReleased(key)
}

// CursorPosition ...
func (Ebiten) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

// SetCursorMode ...
func (Ebiten) SetCursorMode(mode ebiten.CursorModeType) {
	ebiten.SetCursorMode(mode)
}

// Input turns device state into controller input events through an action map.
type Input struct {
	src      Source
	actions  *input.ActionMap
	bindings []Binding

	lastX, lastY int
	haveCursor   bool
	mode         controller.MouseMode
}

// NewInput creates an input adapter for the action map. The window cursor is assumed to start visible, so
// a mouse captured before the adapter was created is applied by the first SyncCursor.
func NewInput(src Source, actions *input.ActionMap, bindings []Binding) *Input {
	return &Input{src: src, actions: actions, bindings: bindings, mode: controller.MouseModeVisible}
}

// Poll returns the events of the current frame: key presses and releases in binding order, followed by
// the cursor movement while the mouse is captured.
func (in *Input) Poll() []controller.InputEvent {
	var events []controller.InputEvent
	for _, b := range in.bindings {
		if in.src.JustPressed(b.Key) {
			events = append(events, in.actions.Press(b.Action))
		}
		if in.src.JustReleased(b.Key) {
			events = append(events, in.actions.Release(b.Action))
		}
	}

	x, y := in.src.CursorPosition()
	if in.haveCursor && in.actions.MouseMode() == controller.MouseModeCaptured && (x != in.lastX || y != in.lastY) {
		events = append(events, in.actions.Motion(float32(x-in.lastX), float32(y-in.lastY)))
	}
	in.lastX, in.lastY, in.haveCursor = x, y, true
	return events
}

// SyncCursor applies the mouse mode chosen by the controller to the window cursor.
func (in *Input) SyncCursor() {
	mode := in.actions.MouseMode()
	if mode == in.mode {
		return
	}
	in.mode = mode
	if mode == controller.MouseModeCaptured {
		in.src.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		in.src.SetCursorMode(ebiten.CursorModeVisible)
	}
	// The cursor jumps when the mode changes.
	in.haveCursor = false
}
