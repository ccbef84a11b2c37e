// Package baker drives the incremental ambient-occlusion bake: one depth
// capture plus one accumulation pass per step, converging the lightmap toward
// the fraction of unoccluded sky directions per texel.
package baker

import (
	"fmt"

	"ao-lightmap-baker/internal/atlas"
	"ao-lightmap-baker/internal/mathutil"
	"ao-lightmap-baker/internal/raster"
	"ao-lightmap-baker/internal/sampler"
)

// Params configures a bake. Zero values fall back to defaults in New.
type Params struct {
	// DepthSize is the side length of the scratch depth buffer in texels.
	DepthSize int
	// KeyLight is the fixed direction the sampler biases alternate frames
	// toward. Normalized internally.
	KeyLight mathutil.Vec3
	// Jitter is the key-light jitter radius (see sampler).
	Jitter float64
	// Seed drives the direction stream. Equal seeds give bitwise-identical
	// bakes.
	Seed int64
	// Occlusion holds the depth comparison bias constants.
	Occlusion raster.OcclusionParams
}

// DefaultDepthSize is the stock depth buffer resolution.
const DefaultDepthSize = 512

// Baker owns the persistent lightmap, the transient depth buffer, and the
// sample counter for one compiled mesh. It is single-owner state: all passes
// run synchronously on the calling goroutine, and the depth buffer produced by
// a step is consumed within that same step.
type Baker struct {
	mesh     *atlas.Mesh
	lightmap *atlas.Lightmap
	depth    *raster.DepthBuffer
	dirs     *sampler.Directional
	params   raster.OcclusionParams
	samples  int
}

// New creates a baker for a compiled mesh and its lightmap.
func New(mesh *atlas.Mesh, lightmap *atlas.Lightmap, p Params) (*Baker, error) {
	if mesh == nil || mesh.QuadCount == 0 {
		return nil, fmt.Errorf("baker: mesh is empty")
	}
	if lightmap == nil || lightmap.Size != mesh.TextureSize() {
		return nil, fmt.Errorf("baker: lightmap size does not match atlas (%d texels per side expected)", mesh.TextureSize())
	}
	if p.DepthSize == 0 {
		p.DepthSize = DefaultDepthSize
	}
	if p.DepthSize < 1 {
		return nil, fmt.Errorf("baker: depth buffer size must be positive, got %d", p.DepthSize)
	}
	if p.KeyLight.Len() < 1e-12 {
		p.KeyLight = sampler.DefaultKeyLight
	}
	if p.Jitter == 0 {
		p.Jitter = sampler.DefaultJitter
	}
	if p.Occlusion == (raster.OcclusionParams{}) {
		p.Occlusion = raster.DefaultOcclusionParams()
	}

	return &Baker{
		mesh:     mesh,
		lightmap: lightmap,
		depth:    raster.NewDepthBuffer(p.DepthSize),
		dirs:     sampler.New(p.KeyLight, p.Jitter, p.Seed),
		params:   p.Occlusion,
	}, nil
}

// Step performs one sample: draw a light direction, capture depth from it, and
// blend the visibility classification into the lightmap with weight
// 1/(1+samples). Returns the direction used.
func (b *Baker) Step() mathutil.Vec3 {
	dir := b.dirs.Next()
	viewProj := raster.LightTransform(dir, b.mesh.Center, b.mesh.Radius)

	b.depth.Clear()
	raster.CaptureDepth(b.depth, b.mesh, viewProj)

	weight := 1.0 / float64(1+b.samples)
	raster.Accumulate(b.lightmap, b.depth, b.mesh, dir, viewProj, weight, b.params)
	b.samples++

	return dir
}

// Bake runs n steps.
func (b *Baker) Bake(n int) {
	for i := 0; i < n; i++ {
		b.Step()
	}
}

// Samples returns how many accumulation passes have run.
func (b *Baker) Samples() int {
	return b.samples
}

// Lightmap returns the persistent accumulation target. Valid to read at any
// point; stopping between steps never leaves it in a partial state.
func (b *Baker) Lightmap() *atlas.Lightmap {
	return b.lightmap
}

// Mesh returns the compiled mesh the baker renders.
func (b *Baker) Mesh() *atlas.Mesh {
	return b.mesh
}
