package math3d

// Vec4 is a homogeneous point (W=1) or direction (W=0).
type Vec4 struct {
	X, Y, Z, W float64
}

// V4FromV3 extends v with the given W.
func V4FromV3(v Vec3, w float64) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// Vec3 drops W without dividing by it.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}
