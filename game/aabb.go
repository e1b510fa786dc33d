package game

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// clipEpsilon is the tolerance under which two faces are considered touching rather than overlapping.
const clipEpsilon = 1e-6

// AABBFromDimensions returns a bounding box from the given dimensions. The box is anchored at the
// feet: its bottom face lies on Y=0 and it is centred on the X and Z axes.
func AABBFromDimensions(width, height float32) cube.BBox {
	h := width / 2
	return cube.Box(
		-h, 0, -h,
		h, height, h,
	)
}

// AABBFromSize returns a feet-anchored bounding box with independent X and Z extents.
func AABBFromSize(size mgl32.Vec3) cube.BBox {
	hx, hz := size.X()/2, size.Z()/2
	return cube.Box(
		-hx, 0, -hz,
		hx, size.Y(), hz,
	)
}

// ClipAxis limits the movement d of the moving box along the given axis (0=X, 1=Y, 2=Z) so that it
// does not pass into the stationary box. Boxes that do not overlap on the two other axes never clip.
func ClipAxis(stationary, moving cube.BBox, axis int, d float32) float32 {
	if d == 0 {
		return 0
	}
	for i := 0; i < 3; i++ {
		if i == axis {
			continue
		}
		if moving.Max()[i] <= stationary.Min()[i]+clipEpsilon || moving.Min()[i] >= stationary.Max()[i]-clipEpsilon {
			return d
		}
	}

	if d > 0 && moving.Max()[axis] <= stationary.Min()[axis]+clipEpsilon {
		if gap := math32.Max(0, stationary.Min()[axis]-moving.Max()[axis]); gap < d {
			d = gap
		}
	} else if d < 0 && moving.Min()[axis] >= stationary.Max()[axis]-clipEpsilon {
		if gap := math32.Min(0, stationary.Max()[axis]-moving.Min()[axis]); gap > d {
			d = gap
		}
	}
	return d
}

// AxisVec returns a vector with only the given axis set to v.
func AxisVec(axis int, v float32) mgl32.Vec3 {
	var vec mgl32.Vec3
	vec[axis] = v
	return vec
}

// BBHasZeroVolume returns true if the box does not enclose any space.
func BBHasZeroVolume(bb cube.BBox) bool {
	return bb.Min() == bb.Max()
}
