package controller

// Handler is notified of controller transitions, for example to play sounds or drive animations. The
// methods are called synchronously from Update and HandleInput.
type Handler interface {
	// HandleJump is called when a jump is triggered.
	HandleJump(c *Controller)
	// HandleCrouch is called when the character starts crouching or stands back up.
	HandleCrouch(c *Controller, crouching bool)
	// HandleSprint is called when the sprint state changes.
	HandleSprint(c *Controller, sprinting bool)
	// HandleNoclip is called after no-clip is toggled.
	HandleNoclip(c *Controller, enabled bool)
	// HandleMouseMode is called after the mouse mode is changed by the controller.
	HandleMouseMode(c *Controller, mode MouseMode)
}

// NopHandler implements Handler and does nothing.
type NopHandler struct{}

func (NopHandler) HandleJump(*Controller)                 {}
func (NopHandler) HandleCrouch(*Controller, bool)         {}
func (NopHandler) HandleSprint(*Controller, bool)         {}
func (NopHandler) HandleNoclip(*Controller, bool)         {}
func (NopHandler) HandleMouseMode(*Controller, MouseMode) {}
