package world

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/protocontroller/controller"
	"github.com/oomph-ac/protocontroller/game"
	"github.com/sirupsen/logrus"
)

// DefaultLayer is the collision layer static geometry is placed on when a level does not name one.
const DefaultLayer uint32 = 1

// Box is a static, axis-aligned piece of level geometry.
type Box struct {
	// Name is an optional label used in logs.
	Name string
	BBox cube.BBox
	// Layer is the collision layer of the box. Bodies only collide with boxes whose layer intersects
	// their mask.
	Layer uint32
	// Normal is the surface normal reported to a body standing on the box. The zero vector means
	// world-up. Tilting it models a slope without changing the collision geometry.
	Normal mgl32.Vec3
}

// SurfaceNormal returns the normal reported for the top face of the box.
func (b Box) SurfaceNormal() mgl32.Vec3 {
	if b.Normal.LenSqr() == 0 {
		return game.Up
	}
	return game.NormalizeSafe(b.Normal)
}

// World is a static box world with kinematic character bodies. It implements the physics and scene
// side of a controller. A World is not safe for concurrent use.
type World struct {
	log  *logrus.Logger
	step float32

	nextID controller.BodyID
	boxes  *orderedmap.OrderedMap[controller.BodyID, Box]
	bodies *orderedmap.OrderedMap[controller.BodyID, *Body]
}

// New creates an empty world that advances bodies by step seconds on every MoveAndSlide.
func New(log *logrus.Logger, step float32) *World {
	return &World{
		log:    log,
		step:   step,
		boxes:  orderedmap.NewOrderedMap[controller.BodyID, Box](),
		bodies: orderedmap.NewOrderedMap[controller.BodyID, *Body](),
	}
}

// Step returns the physics step of the world in seconds.
func (w *World) Step() float32 {
	return w.step
}

func (w *World) id() controller.BodyID {
	w.nextID++
	return w.nextID
}

// AddBox adds static geometry to the world and returns its id.
func (w *World) AddBox(b Box) controller.BodyID {
	if b.Layer == 0 {
		b.Layer = DefaultLayer
	}
	id := w.id()
	w.boxes.Set(id, b)
	w.log.WithField("id", id).Debugf("added box %q %v-%v", b.Name, b.BBox.Min(), b.BBox.Max())
	return id
}

// Box returns the box with the given id.
func (w *World) Box(id controller.BodyID) (Box, bool) {
	return w.boxes.Get(id)
}

// Boxes returns all boxes in the order they were added.
func (w *World) Boxes() []Box {
	boxes := make([]Box, 0, w.boxes.Len())
	for _, id := range w.boxes.Keys() {
		b, _ := w.boxes.Get(id)
		boxes = append(boxes, b)
	}
	return boxes
}

// Body returns the body with the given id.
func (w *World) Body(id controller.BodyID) (*Body, bool) {
	return w.bodies.Get(id)
}

// RemoveBody removes a body from the world. It no longer shows up in shape queries.
func (w *World) RemoveBody(id controller.BodyID) {
	w.bodies.Delete(id)
}

// collidingBoxes returns the boxes on a layer in mask that intersect bb.
func (w *World) collidingBoxes(bb cube.BBox, mask uint32) []Box {
	if mask == 0 {
		return nil
	}
	var hits []Box
	for _, id := range w.boxes.Keys() {
		b, _ := w.boxes.Get(id)
		if b.Layer&mask != 0 && b.BBox.IntersectsWith(bb) {
			hits = append(hits, b)
		}
	}
	return hits
}

// IntersectShape returns a contact for every box and body on a layer in the query mask whose bounding box
// overlaps the query shape placed at the query transform. Shapes are tested by their axis-aligned bounds
// and touching faces do not count as an overlap.
func (w *World) IntersectShape(q controller.ShapeQuery) []controller.Contact {
	if q.Shape == nil || q.CollisionMask == 0 {
		return nil
	}
	bb := game.AABBFromSize(q.Shape.Extents()).Translate(q.Transform.Origin)

	excluded := func(id controller.BodyID) bool {
		for _, ex := range q.Exclude {
			if ex == id {
				return true
			}
		}
		return false
	}

	var contacts []controller.Contact
	for _, id := range w.boxes.Keys() {
		b, _ := w.boxes.Get(id)
		if excluded(id) || b.Layer&q.CollisionMask == 0 || !b.BBox.IntersectsWith(bb) {
			continue
		}
		contacts = append(contacts, controller.Contact{Body: id, Point: overlapCentre(b.BBox, bb)})
	}
	for _, id := range w.bodies.Keys() {
		body, _ := w.bodies.Get(id)
		if excluded(id) || body.layer&q.CollisionMask == 0 {
			continue
		}
		other := body.BBox()
		if !other.IntersectsWith(bb) {
			continue
		}
		contacts = append(contacts, controller.Contact{Body: id, Point: overlapCentre(other, bb)})
	}
	return contacts
}

// overlapCentre returns the centre of the region shared by two overlapping boxes.
func overlapCentre(a, b cube.BBox) mgl32.Vec3 {
	var centre mgl32.Vec3
	for i := 0; i < 3; i++ {
		lo := max(a.Min()[i], b.Min()[i])
		hi := min(a.Max()[i], b.Max()[i])
		centre[i] = (lo + hi) / 2
	}
	return centre
}
