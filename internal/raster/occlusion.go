package raster

import (
	"ao-lightmap-baker/internal/atlas"
	"ao-lightmap-baker/internal/mathutil"
)

// OcclusionParams holds the bias constants of the accumulation pass.
// The defaults are tuned for unit-scale geometry; scale them with the scene.
type OcclusionParams struct {
	// SlopeOffset shifts each fragment along the component of its normal
	// perpendicular to the light before the depth comparison, in world units.
	// Counteracts DepthBias without letting light bleed through thin walls.
	SlopeOffset float64
	// DepthBias is added to the fragment's light-space depth before comparing
	// against the captured depth. Slightly negative to absorb depth-precision
	// error at the surface itself.
	DepthBias float64
}

// DefaultOcclusionParams returns the stock bias constants.
func DefaultOcclusionParams() OcclusionParams {
	return OcclusionParams{
		SlopeOffset: 0.02,
		DepthBias:   -0.0025,
	}
}

// Accumulate blends one binary visibility sample per atlas texel into lm with
// the given weight.
//
// Each quad's margin UVs span exactly its atlas cell, so the pass walks the
// cell's texel block directly and touches every texel exactly once per call.
// Blend is not idempotent, so single coverage is load-bearing: texels on the
// quad's shared diagonal belong to the lower-right triangle (a,b,d), the
// half-open rule a hardware rasterizer enforces on shared edges. Fragment
// positions interpolate the margin positions linearly over whichever triangle
// covers the texel, then get the slope offset and the biased depth compare
// against the light's captured depth. A texel is lit when its surface faces
// the light and nothing sits nearer along the light ray.
func Accumulate(lm *atlas.Lightmap, db *DepthBuffer, m *atlas.Mesh, dir mathutil.Vec3, viewProj mathutil.Mat4, weight float64, p OcclusionParams) {
	size := lm.Size
	tpc := float64(m.TexelsPerCell)

	for q := 0; q < m.QuadCount; q++ {
		base := q * 4

		// Flat normal, shared by the whole quad.
		normal := m.Normals[base]
		facing := normal.Dot(dir) > 0

		// Offset direction: the component of the normal perpendicular to the
		// light. Vanishes when the surface faces the light head-on, where no
		// slope compensation is needed.
		var offset mathutil.Vec3
		if facing && p.SlopeOffset != 0 {
			perp := dir.Cross(normal.Cross(dir))
			if perp.Len() > 1e-9 {
				offset = perp.Normalize().Scale(p.SlopeOffset)
			}
		}

		pa := m.MarginPositions[base]
		pb := m.MarginPositions[base+1]
		pc := m.MarginPositions[base+2]
		pd := m.MarginPositions[base+3]

		// Corner a's margin UV sits on the cell's min corner.
		cellX := m.MarginUVs[base][0] * float64(size)
		cellY := m.MarginUVs[base][1] * float64(size)
		x0 := int(cellX)
		y0 := int(cellY)

		for ty := y0; ty < y0+m.TexelsPerCell; ty++ {
			v := (float64(ty) + 0.5 - cellY) / tpc
			rowOff := ty * size
			for tx := x0; tx < x0+m.TexelsPerCell; tx++ {
				u := (float64(tx) + 0.5 - cellX) / tpc

				visibility := 0.0
				if facing {
					// Triangle (a,b,d) covers v <= u, triangle (a,d,c) the
					// rest; weights solved from the cell-local corner layout.
					var wa, wb, wc, wd float64
					if v <= u {
						wa, wb, wd = 1-u, u-v, v
					} else {
						wa, wc, wd = 1-v, v-u, u
					}
					frag := mathutil.Vec3{
						wa*pa[0] + wb*pb[0] + wc*pc[0] + wd*pd[0] + offset[0],
						wa*pa[1] + wb*pb[1] + wc*pc[1] + wd*pd[1] + offset[1],
						wa*pa[2] + wb*pb[2] + wc*pc[2] + wd*pd[2] + offset[2],
					}
					c := viewProj.MulPoint(frag)
					cu := c[0]*0.5 + 0.5
					cv := c[1]*0.5 + 0.5
					cz := c[2]*0.5 + 0.5

					if p.DepthBias+cz-db.Sample(cu, cv) <= 0 {
						visibility = 1.0
					}
				}

				lm.Blend(rowOff+tx, visibility, weight)
			}
		}
	}
}
