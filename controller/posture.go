package controller

import (
	"github.com/oomph-ac/protocontroller/game"
)

// cacheOriginalDimensions stores the standing collider height, camera pivot position and mesh position.
func (c *Controller) cacheOriginalDimensions() {
	if capsule, ok := c.scene.CollisionShape().(*CapsuleShape); ok {
		c.state.OriginalHeight = capsule.Height
		c.state.CurrentHeight = capsule.Height
		c.capsule = true
	} else {
		c.log.Debugf("collider is %T, not a capsule: crouch and mesh follow disabled", c.scene.CollisionShape())
	}

	c.state.OriginalPivotPosition = c.scene.PivotPosition()
	c.state.CurrentPivotPosition = c.state.OriginalPivotPosition

	if mesh, ok := c.scene.Mesh(); ok {
		c.state.MeshOriginalPosition = mesh.Position()
	}
}

// handleCrouch starts and ends crouching and eases the collider and camera pivot toward their targets.
// Standing up is only allowed once the space above the character is free; until then the character stays
// crouched and the check is repeated every tick.
func (c *Controller) handleCrouch(delta float32) {
	s := &c.state
	if c.input.isPressed(c.settings.Actions.Crouch) {
		if !s.Crouching && c.physics.IsOnFloor() {
			s.Crouching = true
			s.CurrentHeight = s.OriginalHeight * game.CrouchHeightScale
			s.CurrentPivotPosition = s.OriginalPivotPosition.Mul(game.CrouchHeightScale)
			c.log.Debug("started crouching")
			c.h.HandleCrouch(c, true)
		}
	} else if s.Crouching && c.canStandUp() {
		s.Crouching = false
		s.CurrentHeight = s.OriginalHeight
		s.CurrentPivotPosition = s.OriginalPivotPosition
		c.log.Debug("stood up")
		c.h.HandleCrouch(c, false)
	}

	weight := game.PostureEaseRate * delta
	if capsule, ok := c.scene.CollisionShape().(*CapsuleShape); ok {
		capsule.Height = game.Lerp(capsule.Height, s.CurrentHeight, weight)
	}
	c.scene.SetPivotPosition(game.LerpVec3(c.scene.PivotPosition(), s.CurrentPivotPosition, weight))

	if s.Crouching {
		s.Sprinting = false
	}
}

// canStandUp tests the collider, raised by the height lost to crouching, against the world.
func (c *Controller) canStandUp() bool {
	shape := c.scene.CollisionShape()
	if shape == nil {
		return true
	}
	query := ShapeQuery{
		Shape:         shape,
		Transform:     c.scene.Transform().Translated(game.Up.Mul(c.state.OriginalHeight - c.state.CurrentHeight)),
		CollisionMask: c.physics.CollisionMask(),
		Exclude:       []BodyID{c.physics.BodyID()},
	}
	return len(c.physics.IntersectShape(query)) == 0
}

// adjustMeshPosition keeps the visual mesh aligned with the collider as it shrinks and grows.
func (c *Controller) adjustMeshPosition() {
	mesh, ok := c.scene.Mesh()
	if !ok {
		return
	}
	capsule, ok := c.scene.CollisionShape().(*CapsuleShape)
	if !ok || !c.capsule {
		return
	}
	heightDifference := c.state.OriginalHeight - capsule.Height
	pos := c.state.MeshOriginalPosition
	pos[1] -= heightDifference / 2
	mesh.SetPosition(pos)
}
