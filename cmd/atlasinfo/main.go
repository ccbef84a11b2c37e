package main

import (
	"flag"
	"fmt"
	"os"

	"ao-lightmap-baker/internal/scene"
)

// atlasinfo dumps the atlas layout of a scene: cell assignment, UV ranges,
// and per-quad normals. Debugging aid for seam/crack issues.
func main() {
	scenePath := flag.String("scene", "courtyard", "Scene file or demo name")
	texelsPerCell := flag.Int("texels", 16, "Texels per atlas cell")
	flag.Parse()

	var sc *scene.Scene
	var err error
	if _, statErr := os.Stat(*scenePath); statErr == nil {
		sc, err = scene.Load(*scenePath)
	} else {
		sc, err = scene.Demo(*scenePath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	mesh, _, err := sc.Build(*texelsPerCell)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Scene: %s\n", sc.Name)
	fmt.Printf("Quads: %d, grid: %d×%d cells, texture: %d×%d texels\n",
		mesh.QuadCount, mesh.CellsPerSide, mesh.CellsPerSide, mesh.TextureSize(), mesh.TextureSize())
	fmt.Printf("Bounding sphere: center (%.3f, %.3f, %.3f), radius %.3f\n",
		mesh.Center[0], mesh.Center[1], mesh.Center[2], mesh.Radius)
	fmt.Println("------------------------------------------------------------")

	for q := 0; q < mesh.QuadCount; q++ {
		col := q % mesh.CellsPerSide
		row := q / mesh.CellsPerSide
		v0 := q * 4
		n := mesh.Normals[v0]
		uvMin := mesh.AtlasUVs[v0]
		uvMax := mesh.AtlasUVs[v0+3]
		fmt.Printf("quad %3d  cell (%d,%d)  normal (%+.2f, %+.2f, %+.2f)  atlas UV [%.4f,%.4f]×[%.4f,%.4f]\n",
			q, col, row, n[0], n[1], n[2], uvMin[0], uvMax[0], uvMin[1], uvMax[1])
	}
}
