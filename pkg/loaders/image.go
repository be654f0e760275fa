package loaders

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// At returns the color at (x, y) in [0, 1]
func (d *ImageData) At(x, y int) core.Vec3 {
	return d.Pixels[y*d.Width+x]
}

// EncodePNG writes img as PNG to w
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// SavePNG writes img to filename, creating parent directories as needed.
// The image is written to a temporary file first so readers never see a
// partially written PNG.
func SavePNG(filename string, img image.Image) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".render-*.png")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := EncodePNG(tmp, img); err != nil {
		tmp.Close()
		return err
	}
	// CreateTemp uses 0600; frames are regular output files
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set output file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to move output file into place: %w", err)
	}
	return nil
}

// LoadImage loads a PNG or JPEG image and converts it to Vec3 color array
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// ErrSizeMismatch is returned when comparing images of different sizes
var ErrSizeMismatch = errors.New("loaders: image sizes differ")

// ImageDiff summarizes per-channel differences between two images, in [0, 1]
type ImageDiff struct {
	MaxDiff    float64 // Largest single channel difference
	RMSE       float64 // Root mean squared channel difference
	DiffPixels int     // Pixels with any channel difference
	Pixels     int     // Pixels compared
}

// Identical reports whether no pixel differs
func (d ImageDiff) Identical() bool {
	return d.DiffPixels == 0
}

// CompareImages compares two equally sized images channel by channel
func CompareImages(a, b *ImageData) (ImageDiff, error) {
	if a.Width != b.Width || a.Height != b.Height {
		return ImageDiff{}, fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch, a.Width, a.Height, b.Width, b.Height)
	}

	diff := ImageDiff{Pixels: len(a.Pixels)}
	sumSquares := 0.0
	for i := range a.Pixels {
		d := a.Pixels[i].Subtract(b.Pixels[i])
		channels := [3]float64{math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)}
		changed := false
		for _, c := range channels {
			diff.MaxDiff = max(diff.MaxDiff, c)
			sumSquares += c * c
			changed = changed || c > 0
		}
		if changed {
			diff.DiffPixels++
		}
	}
	if n := len(a.Pixels) * 3; n > 0 {
		diff.RMSE = math.Sqrt(sumSquares / float64(n))
	}
	return diff, nil
}
