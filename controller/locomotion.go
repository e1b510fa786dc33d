package controller

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/protocontroller/game"
)

// applyGravity pulls an airborne character down. A grounded character has any downward velocity removed
// so that it does not build up while standing.
func (c *Controller) applyGravity(delta float32) {
	vel := c.state.Velocity
	if !c.physics.IsOnFloor() {
		vel[1] -= c.settings.Physics.Gravity * c.state.GravityMultiplier * delta
	} else if vel[1] < 0 {
		vel[1] = 0
	}
	c.state.Velocity = vel
}

// handleJump runs coyote time and jump buffering. A jump is triggered when a press is buffered, the
// coyote window is still open and no jump is in progress.
func (c *Controller) handleJump(delta float32) {
	s := &c.state
	if c.physics.IsOnFloor() {
		s.CoyoteTimer = c.settings.Jump.CoyoteTime
		s.Jumping = false
	} else {
		s.CoyoteTimer = math32.Max(0, s.CoyoteTimer-delta)
	}

	if c.input.isPressed(c.settings.Actions.Jump) {
		s.JumpBufferTimer = c.settings.Jump.JumpBufferTime
	}

	if s.JumpBufferTimer > 0 && s.CoyoteTimer > 0 && !s.Jumping {
		s.Velocity[1] = c.settings.Jump.JumpVelocity
		s.Jumping = true
		s.JumpBufferTimer = 0
		s.CoyoteTimer = 0
		c.log.Debugf("jump triggered (vel=%v)", s.Velocity)
		c.h.HandleJump(c)
	}
}

// handleMovement accelerates the character toward the velocity requested by the movement actions.
func (c *Controller) handleMovement(delta float32) {
	if !c.settings.Capabilities.Movement {
		return
	}
	if c.state.Noclip {
		c.handleNoclipMovement(delta)
		return
	}

	a := c.settings.Actions
	inputAxis := game.NormalizeSafe2(mgl32.Vec2{
		c.input.axis(a.MoveRight, a.MoveLeft),
		c.input.axis(a.MoveForward, a.MoveBackward),
	})

	// Forward is -Z in the body's local space.
	direction := mgl32.Vec3{inputAxis.X(), 0, -inputAxis.Y()}
	direction = c.scene.Transform().Basis.Rotate(direction)

	onFloor := c.physics.IsOnFloor()
	moving := direction.LenSqr() > 0
	if onFloor && moving {
		direction = c.limitSlopeDirection(direction)
	}

	m := c.settings.Movement
	targetSpeed := m.BaseSpeed
	if c.state.Sprinting {
		targetSpeed *= m.SprintMultiplier
	}
	controlFactor := float32(1)
	if !onFloor {
		controlFactor = m.AirControl
	}
	rate := m.Deceleration
	if moving {
		rate = m.Acceleration
	}

	horizontal := game.Horizontal(c.state.Velocity)
	horizontal = game.LerpVec3(horizontal, direction.Mul(targetSpeed), rate*controlFactor*delta)
	c.state.Velocity = mgl32.Vec3{horizontal.X(), c.state.Velocity.Y(), horizontal.Z()}
}

// limitSlopeDirection slides the direction along the floor when the floor is steeper than the walkable
// limit, so that the character cannot walk up it.
func (c *Controller) limitSlopeDirection(direction mgl32.Vec3) mgl32.Vec3 {
	normal := c.physics.FloorNormal()
	if game.AngleTo(normal, game.Up) <= mgl32.DegToRad(c.settings.Movement.SlopeMaxAngle) {
		return direction
	}
	return game.NormalizeSafe(game.Slide(direction, normal))
}

// handleNoclipMovement flies the character along the camera's axes. Jump and crouch move straight up
// and down.
func (c *Controller) handleNoclipMovement(delta float32) {
	a := c.settings.Actions
	vertical := c.input.pressedValue(a.Jump) - c.input.pressedValue(a.Crouch)
	forward := c.input.pressedValue(a.MoveForward) - c.input.pressedValue(a.MoveBackward)
	right := c.input.pressedValue(a.MoveRight) - c.input.pressedValue(a.MoveLeft)

	basis := c.cameraBasis()
	direction := basis.Rotate(mgl32.Vec3{0, 0, -1}).Mul(forward)
	direction = direction.Add(basis.Rotate(mgl32.Vec3{1, 0, 0}).Mul(right))
	direction = direction.Add(game.Up.Mul(vertical))
	direction = game.NormalizeSafe(direction)

	target := direction.Mul(c.settings.Movement.BaseSpeed)
	c.state.Velocity = game.LerpVec3(c.state.Velocity, target, c.settings.Movement.Acceleration*delta)
}

// cameraBasis returns the world rotation of the camera: the body's yaw followed by the pivot's pitch.
func (c *Controller) cameraBasis() mgl32.Quat {
	pitch := c.scene.PivotRotationDegrees().X()
	return c.scene.Transform().Basis.Mul(game.PitchRotation(pitch))
}

// handleSprint recomputes the sprint flag. Sprinting needs the sprint action, floor contact, no crouch,
// and forward held without backward.
func (c *Controller) handleSprint() {
	a := c.settings.Actions
	c.state.Sprinting = c.input.isPressed(a.Sprint) &&
		c.physics.IsOnFloor() &&
		!c.state.Crouching &&
		c.input.isPressed(a.MoveForward) &&
		!c.input.isPressed(a.MoveBackward)
}
