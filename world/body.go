package world

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/protocontroller/controller"
	"github.com/oomph-ac/protocontroller/game"
)

// BodyConfig holds the initial state of a character body.
type BodyConfig struct {
	// Position is the position of the body's feet.
	Position mgl32.Vec3
	// Yaw is the initial rotation around world-up in radians.
	Yaw float32

	Radius float32
	Height float32

	// PivotPosition is the camera pivot position relative to the feet.
	PivotPosition mgl32.Vec3
	// MeshPosition is the position of the visual mesh relative to the feet. It is only used when
	// WithMesh is set.
	MeshPosition mgl32.Vec3
	WithMesh     bool

	Layer uint32
	Mask  uint32
}

// DefaultBodyConfig returns the configuration of a 1.8m tall character standing at the origin.
func DefaultBodyConfig() BodyConfig {
	return BodyConfig{
		Radius:        0.4,
		Height:        1.8,
		PivotPosition: mgl32.Vec3{0, 1.6, 0},
		MeshPosition:  mgl32.Vec3{0, 0.9, 0},
		WithMesh:      true,
		Layer:         2,
		Mask:          DefaultLayer,
	}
}

// Mesh is the visual mesh of a body. It has no geometry; only its offset from the body is tracked.
type Mesh struct {
	pos mgl32.Vec3
}

// Position ...
func (m *Mesh) Position() mgl32.Vec3 {
	return m.pos
}

// SetPosition ...
func (m *Mesh) SetPosition(pos mgl32.Vec3) {
	m.pos = pos
}

// Body is a kinematic character body. It implements controller.PhysicsProvider and
// controller.SceneProvider.
type Body struct {
	w  *World
	id controller.BodyID

	pos mgl32.Vec3
	yaw float32

	shape *controller.CapsuleShape
	mesh  *Mesh

	pivotPos mgl32.Vec3
	pivotRot mgl32.Vec3

	layer, mask uint32

	onFloor     bool
	floorNormal mgl32.Vec3
}

// NewBody creates a character body and adds it to the world.
func (w *World) NewBody(conf BodyConfig) *Body {
	b := &Body{
		w:           w,
		id:          w.id(),
		pos:         conf.Position,
		yaw:         conf.Yaw,
		shape:       &controller.CapsuleShape{Radius: conf.Radius, Height: conf.Height},
		pivotPos:    conf.PivotPosition,
		layer:       conf.Layer,
		mask:        conf.Mask,
		floorNormal: game.Up,
	}
	if conf.WithMesh {
		b.mesh = &Mesh{pos: conf.MeshPosition}
	}
	w.bodies.Set(b.id, b)
	w.log.WithField("id", b.id).Debugf("added body at %v", conf.Position)
	return b
}

// Position returns the position of the body's feet.
func (b *Body) Position() mgl32.Vec3 {
	return b.pos
}

// Teleport moves the body without collision and clears its floor contact.
func (b *Body) Teleport(pos mgl32.Vec3) {
	b.pos = pos
	b.onFloor = false
	b.floorNormal = game.Up
}

// Yaw returns the rotation of the body around world-up in radians.
func (b *Body) Yaw() float32 {
	return b.yaw
}

// BBox returns the bounding box of the body's collider in world space.
func (b *Body) BBox() cube.BBox {
	return game.AABBFromSize(b.shape.Extents()).Translate(b.pos)
}

// BodyID ...
func (b *Body) BodyID() controller.BodyID {
	return b.id
}

// IsOnFloor ...
func (b *Body) IsOnFloor() bool {
	return b.onFloor
}

// FloorNormal ...
func (b *Body) FloorNormal() mgl32.Vec3 {
	return b.floorNormal
}

// CollisionLayer ...
func (b *Body) CollisionLayer() uint32 {
	return b.layer
}

// SetCollisionLayer ...
func (b *Body) SetCollisionLayer(layer uint32) {
	b.layer = layer
}

// CollisionMask ...
func (b *Body) CollisionMask() uint32 {
	return b.mask
}

// SetCollisionMask ...
func (b *Body) SetCollisionMask(mask uint32) {
	b.mask = mask
}

// IntersectShape ...
func (b *Body) IntersectShape(q controller.ShapeQuery) []controller.Contact {
	return b.w.IntersectShape(q)
}

// MoveAndSlide moves the body by velocity over one world step. Movement is resolved one axis at a time,
// Y first, then X, then Z, and every axis that hits geometry has its velocity removed. The returned
// velocity is what is left after collisions.
func (b *Body) MoveAndSlide(velocity mgl32.Vec3) mgl32.Vec3 {
	motion := velocity.Mul(b.w.step)
	bb := b.BBox()
	candidates := b.w.collidingBoxes(bb.Extend(motion).Grow(game.FloorProbeDistance), b.mask)

	var (
		floor    Box
		hitFloor bool
	)
	for _, axis := range [3]int{1, 0, 2} {
		want := motion[axis]
		d := want
		for _, c := range candidates {
			clipped := game.ClipAxis(c.BBox, bb, axis, d)
			if clipped != d && axis == 1 && want < 0 {
				floor, hitFloor = c, true
			}
			d = clipped
		}
		bb = bb.Translate(game.AxisVec(axis, d))
		b.pos[axis] += d
		if !mgl32.FloatEqualThreshold(d, want, 1e-6) {
			velocity[axis] = 0
		}
	}

	if !hitFloor && velocity.Y() <= 0 {
		floor, hitFloor = b.probeFloor(bb, candidates)
	}
	b.onFloor = hitFloor
	b.floorNormal = game.Up
	if hitFloor {
		b.floorNormal = floor.SurfaceNormal()
	}
	return velocity
}

// probeFloor looks for a box directly under the feet of the body.
func (b *Body) probeFloor(bb cube.BBox, candidates []Box) (Box, bool) {
	lo, hi := bb.Min(), bb.Max()
	probe := cube.Box(lo.X(), lo.Y()-game.FloorProbeDistance, lo.Z(), hi.X(), lo.Y(), hi.Z())
	for _, c := range candidates {
		if c.BBox.IntersectsWith(probe) {
			return c, true
		}
	}
	return Box{}, false
}

// Transform returns the feet position and yaw of the body.
func (b *Body) Transform() controller.Transform {
	return controller.Transform{Origin: b.pos, Basis: game.YawRotation(b.yaw)}
}

// RotateY ...
func (b *Body) RotateY(angle float32) {
	b.yaw += angle
}

// PivotPosition ...
func (b *Body) PivotPosition() mgl32.Vec3 {
	return b.pivotPos
}

// SetPivotPosition ...
func (b *Body) SetPivotPosition(pos mgl32.Vec3) {
	b.pivotPos = pos
}

// PivotRotationDegrees ...
func (b *Body) PivotRotationDegrees() mgl32.Vec3 {
	return b.pivotRot
}

// SetPivotRotationDegrees ...
func (b *Body) SetPivotRotationDegrees(rot mgl32.Vec3) {
	b.pivotRot = rot
}

// CollisionShape ...
func (b *Body) CollisionShape() controller.Shape {
	return b.shape
}

// Mesh ...
func (b *Body) Mesh() (controller.MeshNode, bool) {
	if b.mesh == nil {
		return nil, false
	}
	return b.mesh, true
}

// Eye returns the world position of the camera pivot.
func (b *Body) Eye() mgl32.Vec3 {
	return b.pos.Add(game.YawRotation(b.yaw).Rotate(b.pivotPos))
}
