package controller

import "github.com/go-gl/mathgl/mgl32"

// BodyID identifies a body in the physics world.
type BodyID uint64

// Transform is a rigid world transform.
type Transform struct {
	Origin mgl32.Vec3
	Basis  mgl32.Quat
}

// Translated returns the transform moved by the given world-space offset.
func (t Transform) Translated(offset mgl32.Vec3) Transform {
	t.Origin = t.Origin.Add(offset)
	return t
}

// Shape is a collision shape. Implementations are pointers so that size changes are seen by the physics
// world, the same way an engine shape resource is shared between a node and the solver.
type Shape interface {
	// Extents returns the full size of the shape's bounding box.
	Extents() mgl32.Vec3
}

// CapsuleShape is an upright capsule. Crouching only works with a capsule collider.
type CapsuleShape struct {
	Radius float32
	Height float32
}

// Extents ...
func (c *CapsuleShape) Extents() mgl32.Vec3 {
	return mgl32.Vec3{c.Radius * 2, c.Height, c.Radius * 2}
}

// BoxShape is an axis-aligned box.
type BoxShape struct {
	Size mgl32.Vec3
}

// Extents ...
func (b *BoxShape) Extents() mgl32.Vec3 {
	return b.Size
}

// ShapeQuery describes an overlap test of a shape placed at a transform.
type ShapeQuery struct {
	Shape         Shape
	Transform     Transform
	CollisionMask uint32
	Exclude       []BodyID
}

// Contact is a single overlap reported by a shape query.
type Contact struct {
	Body  BodyID
	Point mgl32.Vec3
}

// PhysicsProvider bridges the physics solver that owns the character body.
type PhysicsProvider interface {
	// IsOnFloor reports floor contact from the last MoveAndSlide.
	IsOnFloor() bool
	// FloorNormal returns the normal of the floor touched during the last MoveAndSlide.
	FloorNormal() mgl32.Vec3
	// MoveAndSlide moves the body by the given velocity over one physics step, sliding along anything it
	// hits, and returns the velocity left after collisions.
	MoveAndSlide(velocity mgl32.Vec3) mgl32.Vec3
	// IntersectShape returns every body overlapping the query shape.
	IntersectShape(query ShapeQuery) []Contact

	CollisionLayer() uint32
	SetCollisionLayer(layer uint32)
	CollisionMask() uint32
	SetCollisionMask(mask uint32)

	// BodyID returns the identifier of the character body itself.
	BodyID() BodyID
}

// MeshNode is a visual node whose local position can be read and written.
type MeshNode interface {
	Position() mgl32.Vec3
	SetPosition(pos mgl32.Vec3)
}

// SceneProvider bridges the scene graph holding the character's transform and its child nodes.
type SceneProvider interface {
	// Transform returns the world transform of the character body.
	Transform() Transform
	// RotateY rotates the character body around world-up by the given angle in radians.
	RotateY(angle float32)

	PivotPosition() mgl32.Vec3
	SetPivotPosition(pos mgl32.Vec3)
	// PivotRotationDegrees returns the camera pivot's local Euler rotation in degrees.
	PivotRotationDegrees() mgl32.Vec3
	SetPivotRotationDegrees(rot mgl32.Vec3)

	// CollisionShape returns the shape of the character's collider.
	CollisionShape() Shape
	// Mesh returns the visual mesh of the character, if it has one.
	Mesh() (MeshNode, bool)
}

// MouseMode is the cursor mode of the input system.
type MouseMode uint8

const (
	MouseModeVisible MouseMode = iota
	MouseModeCaptured
)

// String ...
func (m MouseMode) String() string {
	if m == MouseModeCaptured {
		return "captured"
	}
	return "visible"
}

// InputProvider bridges the input-polling service.
type InputProvider interface {
	// HasAction reports whether the action is registered with the input system.
	HasAction(action string) bool
	// IsActionPressed reports whether the action is currently held.
	IsActionPressed(action string) bool
	MouseMode() MouseMode
	SetMouseMode(mode MouseMode)
}
