package raster

// DepthBuffer is a square single-channel render target holding light-space
// depth in [0,1]. It is transient scratch: fully overwritten by each capture
// and read back within the same frame.
type DepthBuffer struct {
	Size  int
	Depth []float64 // len = Size*Size, cleared to 1.0 (far)
}

// NewDepthBuffer allocates a cleared size×size depth buffer.
func NewDepthBuffer(size int) *DepthBuffer {
	db := &DepthBuffer{
		Size:  size,
		Depth: make([]float64, size*size),
	}
	db.Clear()
	return db
}

// Clear resets every texel to the far plane.
func (db *DepthBuffer) Clear() {
	for i := range db.Depth {
		db.Depth[i] = 1.0
	}
}

// Sample reads the buffer bilinearly at UV coordinates. Outside [0,1] it
// returns 1.0, the software equivalent of clamp-to-border with a white border:
// fragments projecting past the light frustum count as unoccluded.
func (db *DepthBuffer) Sample(u, v float64) float64 {
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return 1.0
	}
	s := db.Size
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

	v00 := db.Depth[y0*s+x0]
	v10 := db.Depth[y0*s+x1]
	v01 := db.Depth[y1*s+x0]
	v11 := db.Depth[y1*s+x1]

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
