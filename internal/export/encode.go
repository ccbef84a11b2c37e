package export

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
)

// WriteImage encodes img to path, creating parent directories. Format is
// "webp" (lossless) or "png".
func WriteImage(path, format string, img *image.NRGBA) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer f.Close()

	switch format {
	case "webp":
		if err := nativewebp.Encode(f, img, nil); err != nil {
			return fmt.Errorf("export: webp encode %s: %w", path, err)
		}
	case "png":
		if err := png.Encode(f, img); err != nil {
			return fmt.Errorf("export: png encode %s: %w", path, err)
		}
	default:
		return fmt.Errorf("export: unknown format %q", format)
	}
	return nil
}
