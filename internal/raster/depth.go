package raster

import (
	"math"

	"ao-lightmap-baker/internal/atlas"
	"ao-lightmap-baker/internal/mathutil"
)

// CaptureDepth rasterizes the mesh's true positions through viewProj into db,
// keeping the nearest (smallest) depth per texel. The caller clears db first;
// depth is clip-space z remapped to [0,1].
//
// This is a hot path: per-triangle setup hoisted, zero allocation in the
// pixel loop.
func CaptureDepth(db *DepthBuffer, m *atlas.Mesh, viewProj mathutil.Mat4) {
	size := db.Size
	n := len(m.Positions)

	// Project every vertex once.
	sx := make([]float64, n)
	sy := make([]float64, n)
	sz := make([]float64, n)
	for i, p := range m.Positions {
		c := viewProj.MulPoint(p)
		sx[i] = (c[0]*0.5 + 0.5) * float64(size)
		sy[i] = (c[1]*0.5 + 0.5) * float64(size)
		sz[i] = c[2]*0.5 + 0.5
	}

	for _, tri := range m.Indices {
		x0, y0, z0 := sx[tri[0]], sy[tri[0]], sz[tri[0]]
		x1, y1, z1 := sx[tri[1]], sy[tri[1]], sz[tri[1]]
		x2, y2, z2 := sx[tri[2]], sy[tri[2]], sz[tri[2]]

		minX, maxX, minY, maxY := pixelBounds(x0, y0, x1, y1, x2, y2, size)
		if minX > maxX || minY > maxY {
			continue
		}

		det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
		if det > -1e-12 && det < 1e-12 {
			continue // edge-on to the light, no depth contribution
		}
		invDet := 1.0 / det
		dy12 := y1 - y2
		dx21 := x2 - x1
		dy20 := y2 - y0
		dx02 := x0 - x2

		for py := minY; py <= maxY; py++ {
			dsy := float64(py) + 0.5 - y2
			rowOff := py * size
			for px := minX; px <= maxX; px++ {
				dsx := float64(px) + 0.5 - x2
				w0 := (dy12*dsx + dx21*dsy) * invDet
				w1 := (dy20*dsx + dx02*dsy) * invDet
				w2 := 1.0 - w0 - w1
				if w0 < -1e-6 || w1 < -1e-6 || w2 < -1e-6 {
					continue
				}

				z := w0*z0 + w1*z1 + w2*z2
				idx := rowOff + px
				if z < db.Depth[idx] {
					db.Depth[idx] = z
				}
			}
		}
	}
}

// pixelBounds returns the clamped inclusive pixel bounding box of a triangle,
// for sampling at pixel centers.
func pixelBounds(x0, y0, x1, y1, x2, y2 float64, size int) (minX, maxX, minY, maxY int) {
	minX = int(math.Floor(math.Min(math.Min(x0, x1), x2) - 0.5))
	maxX = int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY = int(math.Floor(math.Min(math.Min(y0, y1), y2) - 0.5))
	maxY = int(math.Ceil(math.Max(math.Max(y0, y1), y2)))
	if minX < 0 {
		minX = 0
	}
	if maxX > size-1 {
		maxX = size - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY > size-1 {
		maxY = size - 1
	}
	return
}
