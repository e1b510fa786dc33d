package controller

import "github.com/go-gl/mathgl/mgl32"

func (c *Controller) captureMouse() {
	c.setMouseMode(MouseModeCaptured)
}

// toggleMouseCapture switches between a captured and a visible cursor.
func (c *Controller) toggleMouseCapture() {
	if c.input.provider.MouseMode() == MouseModeCaptured {
		c.setMouseMode(MouseModeVisible)
		return
	}
	c.setMouseMode(MouseModeCaptured)
}

func (c *Controller) setMouseMode(mode MouseMode) {
	c.input.provider.SetMouseMode(mode)
	c.h.HandleMouseMode(c, mode)
}

// toggleNoclip switches no-clip. Enabling it removes gravity and all collision; disabling it restores the
// values snapshotted by Ready. Velocity is reset either way.
func (c *Controller) toggleNoclip() {
	if !c.settings.Capabilities.Noclip {
		return
	}
	s := &c.state
	s.Noclip = !s.Noclip

	if s.Noclip {
		s.GravityMultiplier = 0
		c.physics.SetCollisionLayer(0)
		c.physics.SetCollisionMask(0)
	} else {
		s.GravityMultiplier = s.OriginalGravityMultiplier
		c.physics.SetCollisionLayer(s.OriginalCollisionLayer)
		c.physics.SetCollisionMask(s.OriginalCollisionMask)
	}
	s.Velocity = mgl32.Vec3{}

	c.log.WithField("noclip", s.Noclip).Debug("toggled noclip")
	c.h.HandleNoclip(c, s.Noclip)
}
