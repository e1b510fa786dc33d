package controller

import "github.com/go-gl/mathgl/mgl32"

// State holds the locomotion state owned by a controller.
type State struct {
	// Velocity is the linear velocity handed to the physics solver each tick.
	Velocity mgl32.Vec3
	// VerticalLookRotation is the camera pitch in degrees, within the configured look limit.
	VerticalLookRotation float32

	CoyoteTimer     float32
	JumpBufferTimer float32

	Jumping   bool
	Sprinting bool
	Crouching bool
	Noclip    bool

	// GravityMultiplier is the multiplier in effect. It is forced to zero while no-clip is active.
	GravityMultiplier float32

	// CurrentHeight is the collider height the posture step eases toward, and CurrentPivotPosition the
	// camera pivot position it eases toward.
	CurrentHeight        float32
	CurrentPivotPosition mgl32.Vec3

	OriginalHeight        float32
	OriginalPivotPosition mgl32.Vec3
	MeshOriginalPosition  mgl32.Vec3

	OriginalCollisionLayer    uint32
	OriginalCollisionMask     uint32
	OriginalGravityMultiplier float32
}

// clampTimers keeps both jump timers non-negative.
func (s *State) clampTimers() {
	if s.CoyoteTimer < 0 {
		s.CoyoteTimer = 0
	}
	if s.JumpBufferTimer < 0 {
		s.JumpBufferTimer = 0
	}
}
