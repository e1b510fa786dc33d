package game

const (
	// DefaultGravity is the downward acceleration in metres per second squared applied to airborne bodies
	// before the gravity multiplier.
	DefaultGravity = float32(9.8)

	// CrouchHeightScale is the fraction of the standing collider height and camera pivot offset used while
	// crouched.
	CrouchHeightScale = float32(0.6)
	// PostureEaseRate is the per-second rate at which the collider height and camera pivot approach their
	// posture targets.
	PostureEaseRate = float32(15)

	// FloorProbeDistance is how far below the feet the reference solver searches for a supporting surface
	// when the body is not moving downward.
	FloorProbeDistance = float32(0.01)
)
