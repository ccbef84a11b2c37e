package scene

import (
	"os"
	"path/filepath"
	"testing"

	"ao-lightmap-baker/internal/mathutil"
)

func TestQuadCount(t *testing.T) {
	tests := []struct {
		name string
		s    Scene
		want int
	}{
		{"single quad", Scene{Quads: []Quad{{}}}, 1},
		{"double-sided quad", Scene{Quads: []Quad{{DoubleSided: true}}}, 2},
		{"box", Scene{Boxes: []Box{{Min: [3]float64{0, 0, 0}, Max: [3]float64{1, 1, 1}}}}, 6},
		{"double-sided box", Scene{Boxes: []Box{{DoubleSided: true}}}, 12},
		{
			"mixed",
			Scene{
				Quads: []Quad{{}, {DoubleSided: true}},
				Boxes: []Box{{}},
			},
			9,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.s.QuadCount(); got != tc.want {
				t.Errorf("QuadCount() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestBoxFaceNormalsOutward(t *testing.T) {
	box := Box{Min: [3]float64{-1, -1, -1}, Max: [3]float64{1, 1, 1}}
	faces := boxFaces(box)

	seen := make(map[mathutil.Vec3]bool)
	for i, f := range faces {
		n := f[1].Sub(f[0]).Cross(f[2].Sub(f[0])).Normalize()
		// Outward: the normal must point away from the box center (origin).
		center := mathutil.Bilinear(f[0], f[1], f[2], f[3], 0.5, 0.5)
		if n.Dot(center) <= 0 {
			t.Errorf("face %d: normal %v points inward", i, n)
		}
		seen[n] = true
	}
	if len(seen) != 6 {
		t.Errorf("expected 6 distinct face normals, got %d", len(seen))
	}

	box.Inward = true
	for i, f := range boxFaces(box) {
		n := f[1].Sub(f[0]).Cross(f[2].Sub(f[0])).Normalize()
		center := mathutil.Bilinear(f[0], f[1], f[2], f[3], 0.5, 0.5)
		if n.Dot(center) >= 0 {
			t.Errorf("inward face %d: normal %v points outward", i, n)
		}
	}
}

func TestBuildDemoScenes(t *testing.T) {
	for _, name := range DemoNames() {
		t.Run(name, func(t *testing.T) {
			sc, err := Demo(name)
			if err != nil {
				t.Fatal(err)
			}
			m, lm, err := sc.Build(8)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if m.QuadCount != sc.QuadCount() {
				t.Errorf("mesh has %d quads, scene declares %d", m.QuadCount, sc.QuadCount())
			}
			if lm.Size != m.TextureSize() {
				t.Errorf("lightmap size %d, want %d", lm.Size, m.TextureSize())
			}
		})
	}
}

func TestDemoUnknown(t *testing.T) {
	if _, err := Demo("no-such-scene"); err == nil {
		t.Error("expected error for unknown demo name")
	}
}

func TestLoadSceneFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")
	data := `{
		"name": "test",
		"quads": [
			{"corners": [[0,0,0],[1,0,0],[0,0,1],[1,0,1]], "double_sided": true}
		],
		"boxes": [
			{"min": [0,0,0], "max": [1,1,1], "inward": true}
		]
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sc.Name != "test" {
		t.Errorf("name = %q, want test", sc.Name)
	}
	if got := sc.QuadCount(); got != 8 {
		t.Errorf("QuadCount() = %d, want 8", got)
	}
	if !sc.Boxes[0].Inward {
		t.Error("box should be inward")
	}
}

func TestLoadRejectsBadScenes(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{`},
		{"no geometry", `{"name": "empty"}`},
		{"degenerate box", `{"boxes": [{"min": [0,0,0], "max": [0,1,1]}]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".json")
			if err := os.WriteFile(path, []byte(tc.data), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
