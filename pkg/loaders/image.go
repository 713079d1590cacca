package loaders

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Format string
	Width  int
	Height int
	Pixels []core.Vec3
}

// AverageLuminance returns the mean luminance of all pixels
func (d *ImageData) AverageLuminance() float64 {
	if len(d.Pixels) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range d.Pixels {
		sum += p.Luminance()
	}
	return sum / float64(len(d.Pixels))
}

// LoadImage loads a PPM, PNG or JPEG image and converts it to Vec3 color array
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects the format from the file header)
	img, format, err := image.Decode(file)
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
		Format: format,
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// SaveImage writes img to filename, choosing the encoder from the extension.
// A filename of "-" writes PPM to stdout.
func SaveImage(filename string, img image.Image) error {
	if filename == "-" {
		return EncodePPM(os.Stdout, img)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".ppm", ".png", ".jpg", ".jpeg":
	default:
		return fmt.Errorf("unsupported file extension %q (supported: ppm, png, jpg/jpeg)", ext)
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	switch ext {
	case ".ppm":
		err = EncodePPM(file, img)
	case ".png":
		err = png.Encode(file, img)
	default:
		err = jpeg.Encode(file, img, &jpeg.Options{Quality: 95})
	}
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", ext, err)
	}

	return file.Close()
}
