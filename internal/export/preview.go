package export

import (
	"image"
	"math"

	"ao-lightmap-baker/internal/atlas"
	"ao-lightmap-baker/internal/mathutil"
	"ao-lightmap-baker/internal/raster"
)

// RenderPreview rasterizes the mesh from viewDir with the lightmap texture
// mapped onto it, orthographically framed to the mesh's bounding sphere.
// baseTex optionally modulates each quad via its face UVs; nil renders the
// bare lightmap. Output is gamma-encoded for display, with a transparent
// background.
func RenderPreview(m *atlas.Mesh, lm *atlas.Lightmap, baseTex *image.NRGBA, viewDir mathutil.Vec3, size int) *image.NRGBA {
	viewProj := raster.LightTransform(viewDir.Normalize(), m.Center, m.Radius)

	n := len(m.Positions)
	sx := make([]float64, n)
	sy := make([]float64, n)
	sz := make([]float64, n)
	for i, p := range m.Positions {
		c := viewProj.MulPoint(p)
		sx[i] = (c[0]*0.5 + 0.5) * float64(size)
		// Flip so world up is image up.
		sy[i] = (1 - (c[1]*0.5 + 0.5)) * float64(size)
		sz[i] = c[2]*0.5 + 0.5
	}

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	zbuf := make([]float64, size*size)
	for i := range zbuf {
		zbuf[i] = math.Inf(1)
	}

	const invGamma = 1.0 / 2.2

	for _, tri := range m.Indices {
		i0, i1, i2 := tri[0], tri[1], tri[2]
		x0, y0, z0 := sx[i0], sy[i0], sz[i0]
		x1, y1, z1 := sx[i1], sy[i1], sz[i1]
		x2, y2, z2 := sx[i2], sy[i2], sz[i2]

		minX := clampInt(int(math.Floor(math.Min(math.Min(x0, x1), x2)-0.5)), 0, size-1)
		maxX := clampInt(int(math.Ceil(math.Max(math.Max(x0, x1), x2))), 0, size-1)
		minY := clampInt(int(math.Floor(math.Min(math.Min(y0, y1), y2)-0.5)), 0, size-1)
		maxY := clampInt(int(math.Ceil(math.Max(math.Max(y0, y1), y2))), 0, size-1)
		if minX > maxX || minY > maxY {
			continue
		}

		det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
		if det > -1e-12 && det < 1e-12 {
			continue
		}
		invDet := 1.0 / det
		dy12 := y1 - y2
		dx21 := x2 - x1
		dy20 := y2 - y0
		dx02 := x0 - x2

		au0, av0 := m.AtlasUVs[i0][0], m.AtlasUVs[i0][1]
		au1, av1 := m.AtlasUVs[i1][0], m.AtlasUVs[i1][1]
		au2, av2 := m.AtlasUVs[i2][0], m.AtlasUVs[i2][1]
		fu0, fv0 := m.FaceUVs[i0][0], m.FaceUVs[i0][1]
		fu1, fv1 := m.FaceUVs[i1][0], m.FaceUVs[i1][1]
		fu2, fv2 := m.FaceUVs[i2][0], m.FaceUVs[i2][1]

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
				if z >= zbuf[rowOff+px] {
					continue
				}
				zbuf[rowOff+px] = z

				ao := lm.Sample(w0*au0+w1*au1+w2*au2, w0*av0+w1*av1+w2*av2)
				if ao < 0 {
					ao = 0
				}
				shade := math.Pow(ao, invGamma)

				var r, g, b float64 = shade * 255, shade * 255, shade * 255
				if baseTex != nil {
					tr, tg, tb := sampleNRGBA(baseTex, w0*fu0+w1*fu1+w2*fu2, w0*fv0+w1*fv1+w2*fv2)
					r = shade * float64(tr)
					g = shade * float64(tg)
					b = shade * float64(tb)
				}

				i := (rowOff + px) * 4
				img.Pix[i] = clamp255(r)
				img.Pix[i+1] = clamp255(g)
				img.Pix[i+2] = clamp255(b)
				img.Pix[i+3] = 255
			}
		}
	}

	return img
}

// sampleNRGBA performs bilinear filtering with UV wrapping.
// Accesses tex.Pix directly to stay allocation-free.
func sampleNRGBA(tex *image.NRGBA, u, v float64) (r, g, b uint8) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()
	if w == 0 || h == 0 {
		return 255, 255, 255
	}

	u = u - math.Floor(u)
	v = v - math.Floor(v)

	fx := u * float64(w-1)
	fy := v * float64(h-1)
	x0 := int(fx)
	y0 := int(fy)
	x1 := (x0 + 1) % w
	y1 := (y0 + 1) % h
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	stride := tex.Stride
	pix := tex.Pix

	i00 := y0*stride + x0*4
	i10 := y0*stride + x1*4
	i01 := y1*stride + x0*4
	i11 := y1*stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	fr := float64(pix[i00])*w00 + float64(pix[i10])*w10 + float64(pix[i01])*w01 + float64(pix[i11])*w11
	fg := float64(pix[i00+1])*w00 + float64(pix[i10+1])*w10 + float64(pix[i01+1])*w01 + float64(pix[i11+1])*w11
	fb := float64(pix[i00+2])*w00 + float64(pix[i10+2])*w10 + float64(pix[i01+2])*w01 + float64(pix[i11+2])*w11

	return uint8(fr + 0.5), uint8(fg + 0.5), uint8(fb + 0.5)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
