package loaders

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestEncodePPM(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})

	var buf bytes.Buffer
	if err := EncodePPM(&buf, img); err != nil {
		t.Fatalf("EncodePPM failed: %v", err)
	}

	expected := "P3\n2 2\n255\n255 255 255\n255 0 0\n0 255 0\n0 0 255\n"
	if buf.String() != expected {
		t.Errorf("Expected:\n%s\ngot:\n%s", expected, buf.String())
	}
}

func TestDecodePPM(t *testing.T) {
	input := "P3\n# rendered by a test\n3 1 255\n10 20 30  40 50 60\n70 80 90\n"

	img, format, err := image.Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if format != "ppm" {
		t.Errorf("Expected format ppm, got %q", format)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 1 {
		t.Fatalf("Expected 3x1 image, got %v", img.Bounds())
	}

	rgba := img.(*image.RGBA)
	if c := rgba.RGBAAt(2, 0); c != (color.RGBA{R: 70, G: 80, B: 90, A: 255}) {
		t.Errorf("Expected last pixel (70,80,90), got %v", c)
	}
}

func TestDecodePPM_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"wrong magic", "P6\n1 1\n255\n0 0 0\n"},
		{"truncated pixels", "P3\n2 1\n255\n0 0 0\n"},
		{"value out of range", "P3\n1 1\n255\n0 300 0\n"},
		{"zero width", "P3\n0 1\n255\n"},
		{"not a number", "P3\n1 x\n255\n"},
		{"huge size", "P3\n4000000000 4000000000\n255\n0 0 0\n"},
		{"too many pixels", fmt.Sprintf("P3\n%d 2\n255\n0 0 0\n", MaxPPMPixels)},
		{"product overflows", "P3\n9223372036854775807 9223372036854775807\n255\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodePPM(strings.NewReader(tt.input)); err == nil {
				t.Errorf("Expected error for %q", tt.input)
			}
		})
	}
}

func TestDecodePPMConfig_RejectsHugeSize(t *testing.T) {
	if _, err := DecodePPMConfig(strings.NewReader("P3\n100000 100000\n255\n")); err == nil {
		t.Error("Expected error for 100000x100000 header")
	}
}

func TestDecodePPM_WideRowOnOneLine(t *testing.T) {
	const width = 10000
	var b strings.Builder
	fmt.Fprintf(&b, "P3\n%d 1\n255\n", width)
	for x := 0; x < width; x++ {
		b.WriteString("255 128 0 ")
	}
	b.WriteString("\n")
	if b.Len() <= 64*1024 {
		t.Fatalf("Test row is only %d bytes, want more than 64 KiB", b.Len())
	}

	img, err := DecodePPM(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("DecodePPM() error: %v", err)
	}
	if img.Bounds().Dx() != width {
		t.Errorf("Width = %d, want %d", img.Bounds().Dx(), width)
	}
	r, g, bl, _ := img.At(width-1, 0).RGBA()
	if r>>8 != 255 || g>>8 != 128 || bl>>8 != 0 {
		t.Errorf("Last pixel = (%d, %d, %d), want (255, 128, 0)", r>>8, g>>8, bl>>8)
	}
}

func TestPPMRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 5, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 50), G: uint8(y * 80), B: uint8(x*y + 7), A: 255})
		}
	}

	var buf bytes.Buffer
	if err := EncodePPM(&buf, img); err != nil {
		t.Fatalf("EncodePPM failed: %v", err)
	}

	config, err := DecodePPMConfig(bytes.NewReader(buf.Bytes()))
	if err != nil || config.Width != 5 || config.Height != 3 {
		t.Fatalf("Expected 5x3 config, got %+v (err=%v)", config, err)
	}

	decoded, err := DecodePPM(&buf)
	if err != nil {
		t.Fatalf("DecodePPM failed: %v", err)
	}
	if !bytes.Equal(decoded.(*image.RGBA).Pix, img.Pix) {
		t.Error("Decoded pixels differ from the encoded image")
	}
}
