package input

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/protocontroller/controller"
)

// ActionMap is an input system of named actions. It implements controller.InputProvider and turns
// presses and releases into controller input events. An ActionMap is not safe for concurrent use.
type ActionMap struct {
	// actions maps registered action names to whether they are held.
	actions *orderedmap.OrderedMap[string, bool]
	mode    controller.MouseMode
}

// NewActionMap returns an action map with the given actions registered.
func NewActionMap(names ...string) *ActionMap {
	m := &ActionMap{actions: orderedmap.NewOrderedMap[string, bool]()}
	for _, name := range names {
		m.Register(name)
	}
	return m
}

// Register adds an action. Registering an action twice has no effect.
func (m *ActionMap) Register(name string) {
	if _, ok := m.actions.Get(name); !ok {
		m.actions.Set(name, false)
	}
}

// Actions returns the registered actions in registration order.
func (m *ActionMap) Actions() []string {
	return m.actions.Keys()
}

// HasAction ...
func (m *ActionMap) HasAction(name string) bool {
	_, ok := m.actions.Get(name)
	return ok
}

// IsActionPressed ...
func (m *ActionMap) IsActionPressed(name string) bool {
	held, _ := m.actions.Get(name)
	return held
}

// MouseMode ...
func (m *ActionMap) MouseMode() controller.MouseMode {
	return m.mode
}

// SetMouseMode ...
func (m *ActionMap) SetMouseMode(mode controller.MouseMode) {
	m.mode = mode
}

// Press marks the action as held and returns the event to deliver to the controller. Pressing a held
// action produces an echo event. Unregistered actions are never held, but still produce an event.
func (m *ActionMap) Press(name string) controller.ActionEvent {
	held, ok := m.actions.Get(name)
	if ok {
		m.actions.Set(name, true)
	}
	return controller.ActionEvent{Action: name, Pressed: true, Echo: held}
}

// Release marks the action as no longer held and returns the event to deliver to the controller.
func (m *ActionMap) Release(name string) controller.ActionEvent {
	if _, ok := m.actions.Get(name); ok {
		m.actions.Set(name, false)
	}
	return controller.ActionEvent{Action: name}
}

// ReleaseAll releases every held action and returns the release events.
func (m *ActionMap) ReleaseAll() []controller.ActionEvent {
	var events []controller.ActionEvent
	for _, name := range m.actions.Keys() {
		if m.IsActionPressed(name) {
			events = append(events, m.Release(name))
		}
	}
	return events
}

// Motion returns a mouse motion event for the given relative movement.
func (m *ActionMap) Motion(dx, dy float32) controller.MouseMotionEvent {
	return controller.MouseMotionEvent{Relative: mgl32.Vec2{dx, dy}}
}
