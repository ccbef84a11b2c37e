package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry describes one baked scene in the output manifest.
type ManifestEntry struct {
	Name     string `json:"name"`
	Scene    string `json:"scene"`
	Lightmap string `json:"lightmap"`
	Preview  string `json:"preview"`
	Samples  int    `json:"samples"`
}

// WriteManifest writes manifest.json listing the successfully baked scenes.
func WriteManifest(path string, results []Result) error {
	var entries []ManifestEntry
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Name:     r.Name,
			Scene:    r.Scene,
			Lightmap: filepath.Base(r.Lightmap),
			Preview:  filepath.Base(r.Preview),
			Samples:  r.Samples,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
