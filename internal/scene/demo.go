package scene

import (
	"fmt"
	"sort"
)

// demos are the built-in scenes, usable anywhere a scene file path is
// expected.
var demos = map[string]*Scene{
	"plate": {
		Name: "plate",
		Quads: []Quad{
			{Corners: [4][3]float64{{-0.5, 0, -0.5}, {-0.5, 0, 0.5}, {0.5, 0, -0.5}, {0.5, 0, 0.5}}},
		},
	},
	"courtyard": {
		Name: "courtyard",
		Quads: []Quad{
			// Ground plane facing up.
			{Corners: [4][3]float64{{-2, 0, -2}, {-2, 0, 2}, {2, 0, -2}, {2, 0, 2}}},
		},
		Boxes: []Box{
			{Min: [3]float64{-1.2, 0, -1.2}, Max: [3]float64{-0.4, 0.8, -0.4}},
			{Min: [3]float64{0.3, 0, 0.2}, Max: [3]float64{1.4, 0.5, 1.1}},
		},
	},
	"room": {
		Name: "room",
		Quads: []Quad{
			// Floating double-sided panel inside the sealed room.
			{
				Corners:     [4][3]float64{{-0.4, 0.5, -0.4}, {-0.4, 0.5, 0.4}, {0.4, 0.5, -0.4}, {0.4, 0.5, 0.4}},
				DoubleSided: true,
			},
		},
		Boxes: []Box{
			{Min: [3]float64{-1, 0, -1}, Max: [3]float64{1, 1.2, 1}, Inward: true},
		},
	},
}

// Demo returns a built-in scene by name.
func Demo(name string) (*Scene, error) {
	s, ok := demos[name]
	if !ok {
		return nil, fmt.Errorf("scene: unknown demo %q (have %v)", name, DemoNames())
	}
	return s, nil
}

// DemoNames lists the built-in scenes in sorted order.
func DemoNames() []string {
	names := make([]string, 0, len(demos))
	for n := range demos {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
