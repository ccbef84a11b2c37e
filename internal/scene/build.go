package scene

import (
	"fmt"

	"ao-lightmap-baker/internal/atlas"
	"ao-lightmap-baker/internal/mathutil"
)

// Build compiles the scene into an atlas mesh and its lightmap.
func (s *Scene) Build(texelsPerCell int) (*atlas.Mesh, *atlas.Lightmap, error) {
	bld, err := atlas.NewBuilder(s.QuadCount(), texelsPerCell)
	if err != nil {
		return nil, nil, fmt.Errorf("scene: %w", err)
	}

	for _, q := range s.Quads {
		a := mathutil.Vec3(q.Corners[0])
		b := mathutil.Vec3(q.Corners[1])
		c := mathutil.Vec3(q.Corners[2])
		d := mathutil.Vec3(q.Corners[3])
		if q.DoubleSided {
			err = bld.AddDoubleQuad(a, b, c, d)
		} else {
			err = bld.AddQuad(a, b, c, d)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("scene: %w", err)
		}
	}

	for _, box := range s.Boxes {
		for _, f := range boxFaces(box) {
			if box.DoubleSided {
				err = bld.AddDoubleQuad(f[0], f[1], f[2], f[3])
			} else {
				err = bld.AddQuad(f[0], f[1], f[2], f[3])
			}
			if err != nil {
				return nil, nil, fmt.Errorf("scene: %w", err)
			}
		}
	}

	mesh, lightmap, err := bld.Compile()
	if err != nil {
		return nil, nil, fmt.Errorf("scene: %w", err)
	}
	return mesh, lightmap, nil
}

// boxFaces expands a box into six corner quadruples wound so normals point
// outward, or inward when box.Inward is set.
func boxFaces(box Box) [6][4]mathutil.Vec3 {
	x0, y0, z0 := box.Min[0], box.Min[1], box.Min[2]
	x1, y1, z1 := box.Max[0], box.Max[1], box.Max[2]

	faces := [6][4]mathutil.Vec3{
		// +Y (top)
		{{x0, y1, z0}, {x0, y1, z1}, {x1, y1, z0}, {x1, y1, z1}},
		// -Y (bottom)
		{{x0, y0, z0}, {x1, y0, z0}, {x0, y0, z1}, {x1, y0, z1}},
		// +X
		{{x1, y0, z0}, {x1, y1, z0}, {x1, y0, z1}, {x1, y1, z1}},
		// -X
		{{x0, y0, z0}, {x0, y0, z1}, {x0, y1, z0}, {x0, y1, z1}},
		// +Z
		{{x0, y0, z1}, {x1, y0, z1}, {x0, y1, z1}, {x1, y1, z1}},
		// -Z
		{{x0, y0, z0}, {x0, y1, z0}, {x1, y0, z0}, {x1, y1, z0}},
	}

	if box.Inward {
		for i := range faces {
			faces[i][1], faces[i][2] = faces[i][2], faces[i][1]
		}
	}
	return faces
}
