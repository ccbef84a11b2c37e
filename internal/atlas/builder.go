package atlas

import (
	"fmt"
	"math"

	"ao-lightmap-baker/internal/mathutil"
)

// cornerParams maps the 4 quad corners to bilinear parameters.
// Corner order: a=(0,0), b=(1,0), c=(0,1), d=(1,1).
var cornerParams = [4][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}

// Builder accumulates quads into a mesh with atlas-cell UV layout.
// The cell grid is sized up front from the exact quad count, so cell
// assignment can never overflow at runtime.
type Builder struct {
	texelsPerCell int
	side          int
	capacity      int
	mesh          *Mesh
	compiled      bool
}

// NewBuilder creates a builder for exactly quadCount quads, each owning a
// texelsPerCell×texelsPerCell atlas cell.
func NewBuilder(quadCount, texelsPerCell int) (*Builder, error) {
	if quadCount < 1 {
		return nil, fmt.Errorf("atlas: quad count must be positive, got %d", quadCount)
	}
	if texelsPerCell < 2 {
		return nil, fmt.Errorf("atlas: texels per cell must be at least 2, got %d", texelsPerCell)
	}

	side := int(math.Ceil(math.Sqrt(float64(quadCount))))
	return &Builder{
		texelsPerCell: texelsPerCell,
		side:          side,
		capacity:      quadCount,
		mesh: &Mesh{
			Positions:       make([]mathutil.Vec3, 0, quadCount*4),
			Normals:         make([]mathutil.Vec3, 0, quadCount*4),
			AtlasUVs:        make([][2]float64, 0, quadCount*4),
			MarginPositions: make([]mathutil.Vec3, 0, quadCount*4),
			MarginUVs:       make([][2]float64, 0, quadCount*4),
			FaceUVs:         make([][2]float64, 0, quadCount*4),
			Indices:         make([][3]int, 0, quadCount*2),
			CellsPerSide:    side,
			TexelsPerCell:   texelsPerCell,
		},
	}, nil
}

// AddQuad appends one quad with corners a, b, c, d (consistent winding,
// corner layout a=(0,0) b=(1,0) c=(0,1) d=(1,1) in quad parameter space)
// and assigns it the next free atlas cell.
func (bld *Builder) AddQuad(a, b, c, d mathutil.Vec3) error {
	if bld.compiled {
		return fmt.Errorf("atlas: AddQuad after Compile")
	}
	i := bld.mesh.QuadCount
	if i >= bld.capacity {
		return fmt.Errorf("atlas: cell grid full (%d quads)", bld.capacity)
	}

	normal := b.Sub(a).Cross(c.Sub(a)).Normalize()

	col := i % bld.side
	row := i / bld.side
	side := float64(bld.side)
	// Half a texel, in cell-local parameter units.
	h := 0.5 / float64(bld.texelsPerCell)

	m := bld.mesh
	for _, p := range cornerParams {
		pu, pv := p[0], p[1]

		m.AtlasUVs = append(m.AtlasUVs, [2]float64{
			(float64(col) + h + pu*(1-2*h)) / side,
			(float64(row) + h + pv*(1-2*h)) / side,
		})
		m.MarginUVs = append(m.MarginUVs, [2]float64{
			(float64(col) + pu) / side,
			(float64(row) + pv) / side,
		})
		m.FaceUVs = append(m.FaceUVs, [2]float64{pu, pv})

		// Extrapolate the corner half a texel outward: 0 → -h, 1 → 1+h.
		ms := pu*(1+2*h) - h
		mt := pv*(1+2*h) - h
		m.MarginPositions = append(m.MarginPositions, mathutil.Bilinear(a, b, c, d, ms, mt))

		m.Normals = append(m.Normals, normal)
	}
	m.Positions = append(m.Positions, a, b, c, d)

	base := i * 4
	m.Indices = append(m.Indices,
		[3]int{base, base + 1, base + 3},
		[3]int{base, base + 3, base + 2},
	)
	m.QuadCount++
	return nil
}

// AddDoubleQuad appends both faces of a double-sided quad. Each face gets its
// own atlas cell and an opposite normal, so the two sides accumulate
// independent occlusion.
func (bld *Builder) AddDoubleQuad(a, b, c, d mathutil.Vec3) error {
	if err := bld.AddQuad(a, b, c, d); err != nil {
		return err
	}
	// Swapping b and c reverses the winding and flips the normal.
	return bld.AddQuad(a, c, b, d)
}

// Compile freezes the mesh, computes its bounding sphere over both position
// streams, and allocates the lightmap at cellsPerSide×texelsPerCell
// resolution. The builder cannot be reused afterwards.
func (bld *Builder) Compile() (*Mesh, *Lightmap, error) {
	if bld.compiled {
		return nil, nil, fmt.Errorf("atlas: Compile called twice")
	}
	m := bld.mesh
	if m.QuadCount == 0 {
		return nil, nil, fmt.Errorf("atlas: no quads added")
	}
	bld.compiled = true

	var lo, hi mathutil.Vec3
	for k := 0; k < 3; k++ {
		lo[k] = math.Inf(1)
		hi[k] = math.Inf(-1)
	}
	grow := func(p mathutil.Vec3) {
		for k := 0; k < 3; k++ {
			if p[k] < lo[k] {
				lo[k] = p[k]
			}
			if p[k] > hi[k] {
				hi[k] = p[k]
			}
		}
	}
	for _, p := range m.Positions {
		grow(p)
	}
	for _, p := range m.MarginPositions {
		grow(p)
	}

	m.Center = lo.Add(hi).Scale(0.5)
	for _, p := range m.Positions {
		if d := p.Sub(m.Center).Len(); d > m.Radius {
			m.Radius = d
		}
	}
	for _, p := range m.MarginPositions {
		if d := p.Sub(m.Center).Len(); d > m.Radius {
			m.Radius = d
		}
	}
	if m.Radius < 1e-9 {
		return nil, nil, fmt.Errorf("atlas: degenerate mesh, zero bounding radius")
	}

	return m, NewLightmap(m.TextureSize()), nil
}
