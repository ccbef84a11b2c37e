package export

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"ao-lightmap-baker/internal/atlas"
)

func TestLightmapImageValues(t *testing.T) {
	lm := atlas.NewLightmap(2)
	lm.Texels[0] = 0
	lm.Texels[1] = 0.5
	lm.Texels[2] = 1
	lm.Texels[3] = 1.7 // out of range, must clamp

	img := LightmapImage(lm)
	if got := img.Bounds(); got.Dx() != 2 || got.Dy() != 2 {
		t.Fatalf("bounds = %v, want 2x2", got)
	}

	tests := []struct {
		x, y int
		want uint8
	}{
		{0, 0, 0},
		{1, 0, 128},
		{0, 1, 255},
		{1, 1, 255},
	}
	for _, tc := range tests {
		i := img.PixOffset(tc.x, tc.y)
		r, g, b, a := img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]
		if r != tc.want || g != tc.want || b != tc.want {
			t.Errorf("pixel (%d,%d) = %d/%d/%d, want gray %d", tc.x, tc.y, r, g, b, tc.want)
		}
		if a != 255 {
			t.Errorf("pixel (%d,%d) alpha = %d, want 255", tc.x, tc.y, a)
		}
	}
}

func TestDownsample(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i] = 200
		src.Pix[i+1] = 100
		src.Pix[i+2] = 50
		src.Pix[i+3] = 255
	}

	dst := Downsample(src, 16)
	if b := dst.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Fatalf("bounds = %v, want 16x16", b)
	}
	// A constant opaque image stays constant under filtering.
	i := dst.PixOffset(8, 8)
	if dst.Pix[i] != 200 || dst.Pix[i+1] != 100 || dst.Pix[i+2] != 50 || dst.Pix[i+3] != 255 {
		t.Errorf("center pixel = %v, want 200/100/50/255", dst.Pix[i:i+4])
	}

	// Already at or below target size: returned unchanged.
	small := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	if got := Downsample(small, 16); got != small {
		t.Error("small image should pass through untouched")
	}
}

func TestDownsampleTransparentBackground(t *testing.T) {
	// Opaque white square on a transparent background. Without premultiplied
	// filtering, the zero-color transparent texels would darken the edges.
	src := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 16; y < 48; y++ {
		for x := 16; x < 48; x++ {
			i := src.PixOffset(x, y)
			src.Pix[i] = 255
			src.Pix[i+1] = 255
			src.Pix[i+2] = 255
			src.Pix[i+3] = 255
		}
	}

	dst := Downsample(src, 16)
	i := dst.PixOffset(8, 8)
	if dst.Pix[i] != 255 || dst.Pix[i+3] != 255 {
		t.Errorf("square interior = %v, want opaque white", dst.Pix[i:i+4])
	}
	// Interior pixels adjacent to the edge must stay white, not gray.
	i = dst.PixOffset(5, 8)
	if dst.Pix[i] < 250 {
		t.Errorf("near-edge pixel darkened to %d, transparent background bled in", dst.Pix[i])
	}
}

func TestWriteImage(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}

	path := filepath.Join(dir, "nested", "out.png")
	if err := WriteImage(path, "png", img); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("decoded bounds = %v, want 4x4", b)
	}

	if err := WriteImage(filepath.Join(dir, "out.webp"), "webp", img); err != nil {
		t.Fatalf("WriteImage webp: %v", err)
	}

	if err := WriteImage(filepath.Join(dir, "out.bmp"), "bmp", img); err == nil {
		t.Error("expected error for unknown format")
	}
}
