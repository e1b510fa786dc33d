package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Up is the world-up axis. The scene uses a right-handed, Y-up frame with -Z as forward.
var Up = mgl32.Vec3{0, 1, 0}

// Lerp linearly interpolates between a and b by the given weight. The weight is clamped to [0, 1] so
// that a long frame can never overshoot the target.
func Lerp(a, b, weight float32) float32 {
	return a + (b-a)*LerpWeight(weight)
}

// LerpVec3 linearly interpolates between two vectors by the given weight. The weight is clamped in the
// same way as Lerp.
func LerpVec3(a, b mgl32.Vec3, weight float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(LerpWeight(weight)))
}

// LerpWeight clamps an interpolation weight to [0, 1].
func LerpWeight(weight float32) float32 {
	return ClampFloat32(weight, 0, 1)
}

// ClampFloat32 clamps the given value to the given range.
func ClampFloat32(num, min, max float32) float32 {
	if num < min {
		return min
	}
	return math32.Min(num, max)
}

// NormalizeSafe returns the unit vector of v, or the zero vector if v has no length. mgl32's Normalize
// returns NaN components for a zero vector.
func NormalizeSafe(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l <= 1e-6 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// NormalizeSafe2 is the two-dimensional counterpart of NormalizeSafe.
func NormalizeSafe2(v mgl32.Vec2) mgl32.Vec2 {
	l := v.Len()
	if l <= 1e-6 {
		return mgl32.Vec2{}
	}
	return v.Mul(1 / l)
}

// Slide removes the component of v along the plane normal n, leaving the part of v that lies in the
// plane. n is expected to be normalized.
func Slide(v, n mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(n.Mul(v.Dot(n)))
}

// AngleTo returns the unsigned angle in radians between two vectors.
func AngleTo(a, b mgl32.Vec3) float32 {
	return math32.Atan2(a.Cross(b).Len(), a.Dot(b))
}

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// Vec3ApproxEq is Float32ApproxEq applied to every component of two vectors.
func Vec3ApproxEq(a, b mgl32.Vec3) bool {
	return Float32ApproxEq(a[0], b[0]) && Float32ApproxEq(a[1], b[1]) && Float32ApproxEq(a[2], b[2])
}

// Vec3HzDistSqr returns the squared horizontal distance in a vector.
func Vec3HzDistSqr(vec3 mgl32.Vec3) float32 {
	return vec3.X()*vec3.X() + vec3.Z()*vec3.Z()
}

// Horizontal returns the vector with its vertical component removed.
func Horizontal(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X(), 0, v.Z()}
}

// YawRotation returns the rotation of the given angle in radians around the world-up axis.
func YawRotation(angle float32) mgl32.Quat {
	return mgl32.QuatRotate(angle, Up)
}

// PitchRotation returns the rotation of the given angle in degrees around the local X axis.
func PitchRotation(degrees float32) mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(degrees), mgl32.Vec3{1, 0, 0})
}

// Round32 will round a float32 to a given precision.
func Round32(val float32, precision int) float32 {
	pwr := math32.Pow(10, float32(precision))
	return math32.Round(val*pwr) / pwr
}

// RoundVec32 will round a 32-bit vector to a given precision.
func RoundVec32(v mgl32.Vec3, p int) mgl32.Vec3 {
	return mgl32.Vec3{Round32(v.X(), p), Round32(v.Y(), p), Round32(v.Z(), p)}
}
