package math3d

// TranslateScale creates a matrix that scales uniformly by s and then
// translates by t.
func TranslateScale(t Vec3, s float64) Mat4 {
	return Mat4{
		s, 0, 0, 0,
		0, s, 0, 0,
		0, 0, s, 0,
		t.X, t.Y, t.Z, 1,
	}
}

// Model builds an object's model matrix from a translation, a uniform scale
// and Euler angles (radians) about X, Y and Z.
//
// The result is TranslateScale * Rz * Ry * Rx, so a vertex is rotated about
// X first, then Y, then Z, then scaled and moved into place.
func Model(translation Vec3, scale float64, rotation Vec3) Mat4 {
	rot := RotateZ(rotation.Z).Mul(RotateY(rotation.Y)).Mul(RotateX(rotation.X))
	return TranslateScale(translation, scale).Mul(rot)
}
