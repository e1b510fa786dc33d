package controller

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/protocontroller/game"
)

// handleMouseLook yaws the body and pitches the camera pivot by the relative mouse movement. The
// rotation is applied immediately without smoothing.
func (c *Controller) handleMouseLook(relative mgl32.Vec2) {
	l := c.settings.Look
	c.scene.RotateY(mgl32.DegToRad(-relative.X() * l.MouseSensitivity))

	verticalFactor := float32(-1)
	if l.InvertY {
		verticalFactor = 1
	}
	pitch := c.state.VerticalLookRotation + relative.Y()*l.MouseSensitivity*verticalFactor
	c.state.VerticalLookRotation = game.ClampFloat32(pitch, -l.VerticalLookLimit, l.VerticalLookLimit)

	c.scene.SetPivotRotationDegrees(mgl32.Vec3{c.state.VerticalLookRotation, 0, 0})
}
