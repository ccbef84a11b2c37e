package mathutil

import "math"

// Vec3 is a 3-component vector (value type, stack-allocated).
type Vec3 [3]float64

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func (v Vec3) Neg() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// Bilinear evaluates the bilinear patch spanned by corners a, b, c, d at (s, t).
// Corner layout: a=(0,0), b=(1,0), c=(0,1), d=(1,1). Parameters outside [0,1]
// extrapolate the patch.
func Bilinear(a, b, c, d Vec3, s, t float64) Vec3 {
	w00 := (1 - s) * (1 - t)
	w10 := s * (1 - t)
	w01 := (1 - s) * t
	w11 := s * t
	return Vec3{
		a[0]*w00 + b[0]*w10 + c[0]*w01 + d[0]*w11,
		a[1]*w00 + b[1]*w10 + c[1]*w01 + d[1]*w11,
		a[2]*w00 + b[2]*w10 + c[2]*w01 + d[2]*w11,
	}
}
