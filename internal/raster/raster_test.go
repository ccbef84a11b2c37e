package raster

import (
	"math"
	"math/rand"
	"testing"

	"ao-lightmap-baker/internal/atlas"
	"ao-lightmap-baker/internal/mathutil"
)

// upQuadMesh compiles a single quad in the XZ plane at height y, facing +Y,
// spanning [-half, half] on X and Z.
func upQuadMesh(t *testing.T, y, half float64, texels int) (*atlas.Mesh, *atlas.Lightmap) {
	t.Helper()
	b, err := atlas.NewBuilder(1, texels)
	if err != nil {
		t.Fatal(err)
	}
	err = b.AddQuad(
		mathutil.Vec3{-half, y, -half},
		mathutil.Vec3{-half, y, half},
		mathutil.Vec3{half, y, -half},
		mathutil.Vec3{half, y, half},
	)
	if err != nil {
		t.Fatal(err)
	}
	m, lm, err := b.Compile()
	if err != nil {
		t.Fatal(err)
	}
	return m, lm
}

func TestLightTransformEnclosesSphere(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	center := mathutil.Vec3{3, -2, 7}
	radius := 4.5

	randomUnit := func() mathutil.Vec3 {
		z := 2*rng.Float64() - 1
		phi := 2 * math.Pi * rng.Float64()
		r := math.Sqrt(1 - z*z)
		return mathutil.Vec3{r * math.Cos(phi), z, r * math.Sin(phi)}
	}

	for i := 0; i < 200; i++ {
		dir := randomUnit()
		if dir[1] < 0 {
			dir = dir.Neg()
		}
		vp := LightTransform(dir, center, radius)

		p := center.Add(randomUnit().Scale(radius * rng.Float64()))
		c := vp.MulPoint(p)
		for k := 0; k < 3; k++ {
			if math.Abs(c[k]) > 1+1e-9 {
				t.Fatalf("dir %v: point %v maps to clip %v, axis %d out of [-1,1]", dir, p, c, k)
			}
		}
	}
}

func TestLightTransformDegenerateAxes(t *testing.T) {
	tests := []struct {
		name string
		dir  mathutil.Vec3
	}{
		{"straight up", mathutil.Vec3{0, 1, 0}},
		{"x axis", mathutil.Vec3{1, 0, 0}},
		{"z axis", mathutil.Vec3{0, 0, 1}},
		{"near vertical", mathutil.Vec3{0.01, 1, 0.01}.Normalize()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			vp := LightTransform(tc.dir, mathutil.Vec3{}, 1)
			for i, v := range vp {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("matrix element %d not finite: %v", i, v)
				}
			}
			c := vp.MulPoint(mathutil.Vec3{})
			if c.Len() > 1e-9 {
				t.Errorf("sphere center should map to clip origin, got %v", c)
			}
		})
	}
}

func TestDepthBufferClearAndBorder(t *testing.T) {
	db := NewDepthBuffer(8)
	for i, d := range db.Depth {
		if d != 1.0 {
			t.Fatalf("texel %d not cleared to far plane: %v", i, d)
		}
	}

	db.Depth[0] = 0.25
	if got := db.Sample(-0.1, 0.5); got != 1.0 {
		t.Errorf("out-of-range sample = %v, want 1 (border)", got)
	}
	if got := db.Sample(0.5, 1.1); got != 1.0 {
		t.Errorf("out-of-range sample = %v, want 1 (border)", got)
	}

	db.Clear()
	if db.Depth[0] != 1.0 {
		t.Error("Clear did not reset written texel")
	}
}

func TestCaptureDepthFromAbove(t *testing.T) {
	m, _ := upQuadMesh(t, 0, 0.5, 8)
	dir := mathutil.Vec3{0, 1, 0}
	vp := LightTransform(dir, m.Center, m.Radius)

	db := NewDepthBuffer(64)
	CaptureDepth(db, m, vp)

	// The quad plane passes through the sphere center, so its depth is 0.5.
	center := db.Depth[32*64+32]
	if math.Abs(center-0.5) > 0.01 {
		t.Errorf("center depth = %v, want ≈0.5", center)
	}

	// Far corners lie outside the quad's footprint.
	if corner := db.Depth[1*64+1]; corner != 1.0 {
		t.Errorf("corner depth = %v, want 1 (untouched)", corner)
	}
}

func TestCaptureDepthKeepsNearest(t *testing.T) {
	// Two stacked quads; the upper one must win the depth test.
	b, err := atlas.NewBuilder(2, 8)
	if err != nil {
		t.Fatal(err)
	}
	add := func(y, half float64) {
		t.Helper()
		if err := b.AddQuad(
			mathutil.Vec3{-half, y, -half},
			mathutil.Vec3{-half, y, half},
			mathutil.Vec3{half, y, -half},
			mathutil.Vec3{half, y, half},
		); err != nil {
			t.Fatal(err)
		}
	}
	add(0, 0.5)
	add(0.5, 0.5)
	m, _, err := b.Compile()
	if err != nil {
		t.Fatal(err)
	}

	dir := mathutil.Vec3{0, 1, 0}
	vp := LightTransform(dir, m.Center, m.Radius)
	db := NewDepthBuffer(64)
	CaptureDepth(db, m, vp)

	// Depth at the shared footprint must come from the upper quad: nearer to
	// the light means below 0.5 (the center plane maps to 0.5).
	center := db.Depth[32*64+32]
	if center >= 0.5 {
		t.Errorf("center depth = %v, want < 0.5 (upper quad)", center)
	}
}

func TestAccumulateUnoccludedAndBackfacing(t *testing.T) {
	m, lm := upQuadMesh(t, 0, 0.5, 8)
	dir := mathutil.Vec3{0, 1, 0}
	vp := LightTransform(dir, m.Center, m.Radius)
	db := NewDepthBuffer(64)
	CaptureDepth(db, m, vp)

	Accumulate(lm, db, m, dir, vp, 1.0, DefaultOcclusionParams())
	for i, v := range lm.Texels {
		if math.Abs(v-1) > 1e-9 {
			t.Fatalf("texel %d = %v, want 1 (open quad lit from above)", i, v)
		}
	}

	// Same geometry lit from below the quad normal: backfacing, visibility 0.
	down := mathutil.Vec3{0.3, 1, 0.1}.Normalize()
	flipped, flm := func() (*atlas.Mesh, *atlas.Lightmap) {
		b, err := atlas.NewBuilder(1, 8)
		if err != nil {
			t.Fatal(err)
		}
		// Swapped b/c corners: normal points -Y.
		if err := b.AddQuad(
			mathutil.Vec3{-0.5, 0, -0.5},
			mathutil.Vec3{0.5, 0, -0.5},
			mathutil.Vec3{-0.5, 0, 0.5},
			mathutil.Vec3{0.5, 0, 0.5},
		); err != nil {
			t.Fatal(err)
		}
		fm, fl, err := b.Compile()
		if err != nil {
			t.Fatal(err)
		}
		return fm, fl
	}()

	fvp := LightTransform(down, flipped.Center, flipped.Radius)
	db.Clear()
	CaptureDepth(db, flipped, fvp)
	Accumulate(flm, db, flipped, down, fvp, 1.0, DefaultOcclusionParams())
	for i, v := range flm.Texels {
		if v != 0 {
			t.Fatalf("texel %d = %v, want 0 (backfacing quad)", i, v)
		}
	}
}

func TestAccumulateRunningAverageAcrossPasses(t *testing.T) {
	// Visibility that changes between passes exposes any texel blended more
	// than once per pass: blending twice with weight w leaves
	// L(1-w)^2 + v(1-(1-w)^2) instead of the running average. Texels on the
	// quad's shared diagonal are the ones at risk.
	m, lm := upQuadMesh(t, 0, 0.5, 8)
	up := mathutil.Vec3{0, 1, 0}
	down := mathutil.Vec3{0, -1, 0}
	params := DefaultOcclusionParams()
	db := NewDepthBuffer(64)

	// Pass 1: lit from above, every texel sees 1.
	vpUp := LightTransform(up, m.Center, m.Radius)
	CaptureDepth(db, m, vpUp)
	Accumulate(lm, db, m, up, vpUp, 1.0, params)

	// Pass 2: lit from below, backfacing, every texel sees 0.
	vpDown := LightTransform(down, m.Center, m.Radius)
	db.Clear()
	CaptureDepth(db, m, vpDown)
	Accumulate(lm, db, m, down, vpDown, 1.0/2, params)

	// Pass 3: from above again.
	db.Clear()
	CaptureDepth(db, m, vpUp)
	Accumulate(lm, db, m, up, vpUp, 1.0/3, params)

	want := 2.0 / 3 // mean of 1, 0, 1
	for i, v := range lm.Texels {
		if math.Abs(v-want) > 1e-12 {
			t.Fatalf("texel %d (%d,%d) = %v, want %v", i, i%lm.Size, i/lm.Size, v, want)
		}
	}
}

func TestAccumulateShadowed(t *testing.T) {
	// Small quad under a larger one; lit straight from above, the lower quad
	// is fully shadowed and the upper fully lit.
	b, err := atlas.NewBuilder(2, 8)
	if err != nil {
		t.Fatal(err)
	}
	add := func(y, half float64) {
		t.Helper()
		if err := b.AddQuad(
			mathutil.Vec3{-half, y, -half},
			mathutil.Vec3{-half, y, half},
			mathutil.Vec3{half, y, -half},
			mathutil.Vec3{half, y, half},
		); err != nil {
			t.Fatal(err)
		}
	}
	add(0, 0.5)   // lower, cell 0
	add(0.5, 1.0) // upper, cell 1
	m, lm, err := b.Compile()
	if err != nil {
		t.Fatal(err)
	}

	dir := mathutil.Vec3{0, 1, 0}
	vp := LightTransform(dir, m.Center, m.Radius)
	db := NewDepthBuffer(128)
	CaptureDepth(db, m, vp)
	Accumulate(lm, db, m, dir, vp, 1.0, DefaultOcclusionParams())

	tpc := m.TexelsPerCell
	size := lm.Size
	for y := 0; y < tpc; y++ {
		for x := 0; x < tpc; x++ {
			if v := lm.Texels[y*size+x]; v != 0 {
				t.Fatalf("lower quad texel (%d,%d) = %v, want 0 (shadowed)", x, y, v)
			}
			if v := lm.Texels[y*size+tpc+x]; math.Abs(v-1) > 1e-9 {
				t.Fatalf("upper quad texel (%d,%d) = %v, want 1 (lit)", x, y, v)
			}
		}
	}
}
