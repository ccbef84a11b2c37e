// Package scene describes bake input geometry: free quads and axis-aligned
// boxes, loaded from JSON files or picked from built-in demos.
package scene

import (
	"encoding/json"
	"fmt"
	"os"
)

// Scene is the JSON-facing geometry description.
type Scene struct {
	Name  string `json:"name"`
	Quads []Quad `json:"quads,omitempty"`
	Boxes []Box  `json:"boxes,omitempty"`
}

// Quad is four world-space corners in bilinear order: a=(0,0), b=(1,0),
// c=(0,1), d=(1,1). Winding determines the lit face; double-sided quads get an
// atlas cell per face.
type Quad struct {
	Corners     [4][3]float64 `json:"corners"`
	DoubleSided bool          `json:"double_sided,omitempty"`
}

// Box is an axis-aligned box expanded into six quads. Faces wind outward
// unless Inward is set (for enclosing rooms).
type Box struct {
	Min         [3]float64 `json:"min"`
	Max         [3]float64 `json:"max"`
	Inward      bool       `json:"inward,omitempty"`
	DoubleSided bool       `json:"double_sided,omitempty"`
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}

	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks the scene has geometry and well-formed boxes.
func (s *Scene) Validate() error {
	if len(s.Quads) == 0 && len(s.Boxes) == 0 {
		return fmt.Errorf("no geometry")
	}
	for i, b := range s.Boxes {
		for k := 0; k < 3; k++ {
			if b.Min[k] >= b.Max[k] {
				return fmt.Errorf("box %d: min must be strictly below max on every axis", i)
			}
		}
	}
	return nil
}

// QuadCount returns the number of atlas cells the scene needs.
func (s *Scene) QuadCount() int {
	n := 0
	for _, q := range s.Quads {
		n++
		if q.DoubleSided {
			n++
		}
	}
	for _, b := range s.Boxes {
		n += 6
		if b.DoubleSided {
			n += 6
		}
	}
	return n
}
