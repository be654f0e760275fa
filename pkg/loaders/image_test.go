package loaders

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func createTestImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})
	return img
}

func TestSavePNGAndLoadImage(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "nested", "out.png")

	if err := SavePNG(testFile, createTestImage()); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	imageData, err := LoadImage(testFile)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if imageData.Width != 2 || imageData.Height != 2 {
		t.Fatalf("Expected 2x2 image, got %dx%d", imageData.Width, imageData.Height)
	}

	tests := []struct {
		x, y     int
		expected core.Vec3
	}{
		{0, 0, core.NewVec3(1, 1, 1)},
		{1, 0, core.NewVec3(1, 0, 0)},
		{0, 1, core.NewVec3(0, 1, 0)},
		{1, 1, core.NewVec3(0, 0, 1)},
	}
	for _, tt := range tests {
		got := imageData.At(tt.x, tt.y)
		if math.Abs(got.X-tt.expected.X) > 1e-3 || math.Abs(got.Y-tt.expected.Y) > 1e-3 || math.Abs(got.Z-tt.expected.Z) > 1e-3 {
			t.Errorf("pixel (%d, %d): expected %v, got %v", tt.x, tt.y, tt.expected, got)
		}
	}

	// No temporary files are left behind
	entries, err := os.ReadDir(filepath.Dir(testFile))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the output file, found %d entries", len(entries))
	}
}

func TestSavePNG_FileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Unix permissions only")
	}
	dir := t.TempDir()
	testFile := filepath.Join(dir, "frame.png")

	if err := SavePNG(testFile, createTestImage()); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
	info, err := os.Stat(testFile)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if got := info.Mode().Perm(); got != 0o644 {
		t.Errorf("Expected mode 0644, got %#o", got)
	}

	// No temporary files are left next to the output
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the output file, found %d entries", len(entries))
	}
}

func TestEncodePNGSignature(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, createTestImage()); err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("Output does not start with the PNG signature")
	}
}

func TestLoadImage_Errors(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}

	bogus := filepath.Join(t.TempDir(), "bogus.png")
	if err := os.WriteFile(bogus, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadImage(bogus); err == nil {
		t.Error("Expected error for undecodable file")
	}
}

func TestCompareImages(t *testing.T) {
	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)
	a := &ImageData{Width: 2, Height: 1, Pixels: []core.Vec3{white, black}}

	same, err := CompareImages(a, a)
	if err != nil {
		t.Fatalf("CompareImages failed: %v", err)
	}
	if !same.Identical() || same.MaxDiff != 0 || same.RMSE != 0 || same.Pixels != 2 {
		t.Errorf("Expected identical images, got %+v", same)
	}

	b := &ImageData{Width: 2, Height: 1, Pixels: []core.Vec3{white, core.NewVec3(1, 0, 0)}}
	diff, err := CompareImages(a, b)
	if err != nil {
		t.Fatalf("CompareImages failed: %v", err)
	}
	if diff.DiffPixels != 1 || diff.MaxDiff != 1 {
		t.Errorf("Expected one fully different channel, got %+v", diff)
	}
	// One channel of six differs by 1
	if want := math.Sqrt(1.0 / 6); math.Abs(diff.RMSE-want) > 1e-12 {
		t.Errorf("Expected RMSE %v, got %v", want, diff.RMSE)
	}

	c := &ImageData{Width: 1, Height: 2, Pixels: []core.Vec3{white, black}}
	if _, err := CompareImages(a, c); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Expected ErrSizeMismatch, got %v", err)
	}
}
