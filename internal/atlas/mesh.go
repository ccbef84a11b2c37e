// Package atlas builds quad meshes laid out on a square lightmap atlas.
//
// Every quad owns one atlas cell. Each vertex carries two UV sets: an atlas UV
// inset by half a texel from the cell edges (safe for bilinear reads of the
// finished lightmap) and a margin UV exactly on the cell edges (used when
// rasterizing into the atlas, so adjacent cells meet without sub-texel gaps).
// Alongside the true position each vertex also carries a margin position, the
// quad extrapolated slightly past its corners, so the rasterized cell covers
// its border texels and no light leaks in from neighboring cells.
package atlas

import (
	"ao-lightmap-baker/internal/mathutil"
)

// Mesh is a compiled quad mesh with per-vertex attribute streams laid out as
// flat parallel slices. Frozen after Builder.Compile; only read afterwards.
type Mesh struct {
	Positions       []mathutil.Vec3 // true geometry, used by the depth pass
	Normals         []mathutil.Vec3 // flat per-quad normal, shared by all 4 corners
	AtlasUVs        [][2]float64    // half-texel inset, for sampling the lightmap
	MarginPositions []mathutil.Vec3 // extrapolated geometry, used by the accumulation pass
	MarginUVs       [][2]float64    // exact cell edges, rasterization target coords
	FaceUVs         [][2]float64    // per-quad parametric corner (0/1), for surface textures
	Indices         [][3]int

	QuadCount     int
	CellsPerSide  int
	TexelsPerCell int

	// Bounding sphere over both position streams.
	Center mathutil.Vec3
	Radius float64
}

// TextureSize returns the atlas texture dimension in texels.
func (m *Mesh) TextureSize() int {
	return m.CellsPerSide * m.TexelsPerCell
}

// Lightmap is the persistent single-channel accumulation target, one float per
// atlas texel. It is never reset during a bake; each blend refines it in place.
type Lightmap struct {
	Size   int
	Texels []float64
}

// NewLightmap allocates a zeroed size×size lightmap.
func NewLightmap(size int) *Lightmap {
	return &Lightmap{
		Size:   size,
		Texels: make([]float64, size*size),
	}
}

// Blend folds value v into texel i with weight w:
//
//	L = L*(1-w) + v*w
//
// With w = 1/(1+n) after n prior samples this is an online running average;
// the first sample (w=1) overwrites whatever the texel held.
func (lm *Lightmap) Blend(i int, v, w float64) {
	lm.Texels[i] = lm.Texels[i]*(1-w) + v*w
}

// Sample reads the lightmap bilinearly at UV coordinates in [0,1], clamping at
// the edges. Callers are expected to pass atlas UVs, whose half-texel inset
// keeps the filter kernel inside the owning cell.
func (lm *Lightmap) Sample(u, v float64) float64 {
	s := lm.Size
	fx := u*float64(s) - 0.5
	fy := v*float64(s) - 0.5

	x0 := int(fx)
	y0 := int(fy)
	if fx < 0 {
		x0 = -1
	}
	if fy < 0 {
		y0 = -1
	}
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	x1 := clampIdx(x0+1, s)
	y1 := clampIdx(y0+1, s)
	x0 = clampIdx(x0, s)
	y0 = clampIdx(y0, s)

	v00 := lm.Texels[y0*s+x0]
	v10 := lm.Texels[y0*s+x1]
	v01 := lm.Texels[y1*s+x0]
	v11 := lm.Texels[y1*s+x1]

	top := v00*(1-dx) + v10*dx
	bot := v01*(1-dx) + v11*dx
	return top*(1-dy) + bot*dy
}

func clampIdx(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
