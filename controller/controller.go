package controller

import (
	"github.com/oomph-ac/protocontroller/settings"
	"github.com/sirupsen/logrus"
)

// Mode decides whether a controller reacts to ticks and input events.
type Mode uint8

const (
	// ModeActive is the normal runtime mode.
	ModeActive Mode = iota
	// ModeInert makes Update and HandleInput no-ops, for example while a level is being edited.
	ModeInert
)

// Controller converts input and physics results into the velocity and orientation of a first-person
// character. A controller is not safe for concurrent use: Update and HandleInput are expected to be called
// from the same loop.
type Controller struct {
	log      *logrus.Logger
	settings settings.Settings
	mode     Mode

	physics PhysicsProvider
	scene   SceneProvider
	input   *inputAdapter

	h Handler

	capabilities [featureCount]capability
	state        State
	ready        bool
	// activated is set once the active-mode part of Ready has run.
	activated bool
	// capsule is set when the collider was a capsule at activation.
	capsule bool
}

// New creates a controller for the character exposed by the physics and scene providers. Ready must be
// called once before the first Update.
func New(log *logrus.Logger, s settings.Settings, physics PhysicsProvider, scene SceneProvider, input InputProvider) *Controller {
	c := &Controller{
		log:      log,
		settings: s,
		physics:  physics,
		scene:    scene,
		input:    newInputAdapter(input),
		h:        NopHandler{},
	}
	c.state.GravityMultiplier = s.Jump.GravityMultiplier
	c.initCapabilities()
	return c
}

// SetMode sets the runtime mode of the controller. Switching a readied controller to ModeActive runs the
// active-mode initialisation of Ready if it has not run yet.
func (c *Controller) SetMode(m Mode) {
	c.mode = m
	if m == ModeActive && c.ready {
		c.activate()
	}
}

// Mode returns the runtime mode of the controller.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Handle sets the handler notified of controller transitions. Passing nil restores the NopHandler.
func (c *Controller) Handle(h Handler) {
	if h == nil {
		h = NopHandler{}
	}
	c.h = h
}

// Settings returns the settings the controller was created with.
func (c *Controller) Settings() settings.Settings {
	return c.settings
}

// State returns a copy of the current locomotion state.
func (c *Controller) State() State {
	return c.state
}

// Ready initialises the controller. The collision layer, collision mask and gravity multiplier are always
// snapshotted so that no-clip can restore them; action validation, mouse capture and caching of the
// original collider dimensions only happen in ModeActive, and are deferred until SetMode(ModeActive) for a
// controller readied while inert. Calling Ready more than once has no effect.
func (c *Controller) Ready() {
	if c.ready {
		return
	}
	c.ready = true

	c.state.OriginalCollisionLayer = c.physics.CollisionLayer()
	c.state.OriginalCollisionMask = c.physics.CollisionMask()
	c.state.OriginalGravityMultiplier = c.state.GravityMultiplier

	if c.mode == ModeInert {
		return
	}
	c.activate()
}

// activate validates the input actions, captures the mouse and caches the original collider dimensions.
// It runs at most once.
func (c *Controller) activate() {
	if c.activated {
		return
	}
	c.activated = true

	a := c.settings.Actions
	c.input.validate(c.log,
		[]string{a.MoveForward, a.MoveBackward, a.MoveLeft, a.MoveRight, a.Jump},
		[]string{a.Sprint, a.Crouch, a.Noclip},
	)
	c.captureMouse()
	c.cacheOriginalDimensions()
}

// Update advances the controller by one physics tick of delta seconds.
func (c *Controller) Update(delta float32) {
	if c.mode == ModeInert || !c.ready {
		return
	}

	c.applyGravity(delta)
	// Jumps are not arbitrated while flying: the jump action moves the character up instead.
	if !c.state.Noclip {
		c.runTick(FeatureJump, delta)
	}
	c.handleMovement(delta)
	c.runTick(FeatureCrouch, delta)
	c.updateSprint()

	c.state.Velocity = c.physics.MoveAndSlide(c.state.Velocity)
	c.updateTimers(delta)
	c.adjustMeshPosition()
}

// HandleInput processes a single input event.
func (c *Controller) HandleInput(ev InputEvent) {
	if c.mode == ModeInert || !c.ready {
		return
	}

	if isActionPressed(ev, c.settings.Actions.Cancel) {
		c.toggleMouseCapture()
	}
	c.runPress(ev)

	if !c.settings.Capabilities.Look || c.input.provider.MouseMode() != MouseModeCaptured {
		return
	}
	if motion, ok := ev.(MouseMotionEvent); ok {
		c.handleMouseLook(motion.Relative)
	}
}

// updateSprint recomputes the sprint flag and notifies the handler when it changes.
func (c *Controller) updateSprint() {
	was := c.state.Sprinting
	if c.Available(FeatureSprint) {
		c.runTick(FeatureSprint, 0)
	} else {
		c.state.Sprinting = false
	}
	if was != c.state.Sprinting {
		c.h.HandleSprint(c, c.state.Sprinting)
	}
}

// updateTimers runs the second, unconditional decay of the jump timers after the physics step. Together
// with the decay in handleJump the coyote timer runs down twice per airborne tick.
func (c *Controller) updateTimers(delta float32) {
	if c.state.CoyoteTimer > 0 {
		c.state.CoyoteTimer -= delta
	}
	if c.state.JumpBufferTimer > 0 {
		c.state.JumpBufferTimer -= delta
	}
	c.state.clampTimers()
}
