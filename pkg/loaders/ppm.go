package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"
)

// ppmMagic is the format tag of plain (ASCII) PPM files
const ppmMagic = "P3"

const (
	// MaxPPMPixels bounds width*height accepted by the decoder
	MaxPPMPixels = 1 << 26
	// maxPPMLine is the longest line the tokenizer accepts
	maxPPMLine = 64 << 20
)

func init() {
	image.RegisterFormat("ppm", ppmMagic, DecodePPM, DecodePPMConfig)
}

// EncodePPM writes img as a plain text PPM: a header line with the format tag,
// width, height and max channel value, then one "R G B" line per pixel in
// row-major order from the top-left.
func EncodePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n255\n", ppmMagic, bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// ppmReader tokenizes a plain PPM stream, skipping '#' comments
type ppmReader struct {
	scanner *bufio.Scanner
	fields  []string
}

func newPPMReader(r io.Reader) *ppmReader {
	scanner := bufio.NewScanner(r)
	// A whole image row may sit on a single line
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxPPMLine)
	return &ppmReader{scanner: scanner}
}

func (p *ppmReader) token() (string, error) {
	for len(p.fields) == 0 {
		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		line := p.scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		p.fields = strings.Fields(line)
	}
	tok := p.fields[0]
	p.fields = p.fields[1:]
	return tok, nil
}

func (p *ppmReader) int() (int, error) {
	tok, err := p.token()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("ppm: invalid integer %q", tok)
	}
	return v, nil
}

func (p *ppmReader) header() (width, height, maxVal int, err error) {
	magic, err := p.token()
	if err != nil {
		return 0, 0, 0, err
	}
	if magic != ppmMagic {
		return 0, 0, 0, fmt.Errorf("ppm: unsupported format tag %q", magic)
	}
	if width, err = p.int(); err != nil {
		return 0, 0, 0, err
	}
	if height, err = p.int(); err != nil {
		return 0, 0, 0, err
	}
	if maxVal, err = p.int(); err != nil {
		return 0, 0, 0, err
	}
	if width <= 0 || height <= 0 {
		return 0, 0, 0, fmt.Errorf("ppm: invalid size %dx%d", width, height)
	}
	if width > MaxPPMPixels/height {
		return 0, 0, 0, fmt.Errorf("ppm: size %dx%d exceeds %d pixels", width, height, MaxPPMPixels)
	}
	if maxVal <= 0 || maxVal > 255 {
		return 0, 0, 0, errors.New("ppm: only 8-bit max values are supported")
	}
	return width, height, maxVal, nil
}

// DecodePPMConfig returns the dimensions of a plain PPM image
func DecodePPMConfig(r io.Reader) (image.Config, error) {
	width, height, _, err := newPPMReader(r).header()
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: width, Height: height}, nil
}

// DecodePPM reads a plain PPM image
func DecodePPM(r io.Reader) (image.Image, error) {
	p := newPPMReader(r)
	width, height, maxVal, err := p.header()
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scale := func(v int) (uint8, error) {
		if v < 0 || v > maxVal {
			return 0, fmt.Errorf("ppm: channel value %d out of range [0, %d]", v, maxVal)
		}
		return uint8(v * 255 / maxVal), nil
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var rgb [3]uint8
			for c := range rgb {
				v, err := p.int()
				if err != nil {
					return nil, fmt.Errorf("ppm: pixel (%d, %d): %w", x, y, err)
				}
				if rgb[c], err = scale(v); err != nil {
					return nil, err
				}
			}
			img.SetRGBA(x, y, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}

	return img, nil
}
