package raster

import (
	"math"

	"ao-lightmap-baker/internal/mathutil"
)

// LightTransform builds the combined view-projection for a directional light
// shining along -dir onto a mesh bounded by the sphere (center, radius).
//
// The eye sits at the sphere center looking away from the light; orthographic
// extents of [-r, r] on all three axes enclose the sphere no matter which
// direction is sampled. The up-vector is derived from whichever world axis is
// not dominant in dir, so it can never be parallel to the view direction.
func LightTransform(dir, center mathutil.Vec3, radius float64) mathutil.Mat4 {
	axis := mathutil.Vec3{0, 1, 0}
	if math.Abs(dir[1]) >= math.Abs(dir[0]) && math.Abs(dir[1]) >= math.Abs(dir[2]) {
		axis = mathutil.Vec3{1, 0, 0}
	}
	up := dir.Cross(axis).Normalize()

	view := mathutil.LookAt(center, center.Sub(dir), up)
	proj := mathutil.Ortho(-radius, radius, -radius, radius, -radius, radius)
	return mathutil.Mat4Mul(proj, view)
}
