package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Seed            int64 // Base seed; row j uses Seed+j
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           200,
		Height:          100,
		SamplesPerPixel: 100,
		MaxDepth:        integrator.DefaultMaxDepth,
		Seed:            42,
	}
}

// Raytracer handles the rendering process
type Raytracer struct {
	camera     *Camera
	world      geometry.Shape
	integrator integrator.Integrator
	config     SamplingConfig
	logger     core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(camera *Camera, world geometry.Shape, integ integrator.Integrator, config SamplingConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		camera:     camera,
		world:      world,
		integrator: integ,
		config:     config,
		logger:     logger,
	}
}

// Validate checks the sampling configuration
func (rt *Raytracer) Validate() error {
	if rt.config.Width <= 0 || rt.config.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", rt.config.Width, rt.config.Height)
	}
	if rt.config.SamplesPerPixel <= 0 {
		return fmt.Errorf("invalid samples per pixel %d", rt.config.SamplesPerPixel)
	}
	if rt.camera == nil || rt.world == nil || rt.integrator == nil {
		return fmt.Errorf("raytracer requires a camera, a world and an integrator")
	}
	return nil
}

// Render renders the full frame using the worker pool
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	if err := rt.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	img := image.NewRGBA(image.Rect(0, 0, rt.config.Width, rt.config.Height))
	pool := NewWorkerPool(rt, rt.config.Height, rt.config.NumWorkers)

	rt.logger.Infof("rendering %dx%d with %d samples per pixel using %d workers",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, pool.GetNumWorkers())

	startTime := time.Now()
	pool.Start()

	// Rows are submitted top-to-bottom
	for j := rt.config.Height - 1; j >= 0; j-- {
		pool.SubmitTask(RowTask{Row: j, Image: img, Context: ctx})
	}
	pool.Stop()

	var firstErr error
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil && firstErr == nil {
			firstErr = result.Error
		}
	}

	stats := pool.Stats()
	stats.RenderTime = time.Since(startTime)
	if firstErr != nil {
		return nil, stats, fmt.Errorf("render aborted: %w", firstErr)
	}

	rt.logger.Infof("render completed in %v", stats.RenderTime)
	return img, stats, nil
}

// RenderRow renders image row j (0 = bottom) into img.
// Every row owns a generator seeded from the base seed, so the result does not
// depend on which worker renders it.
func (rt *Raytracer) RenderRow(j int, img *image.RGBA) int {
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(rt.config.Seed + int64(j))))
	nx, ny := float64(rt.config.Width), float64(rt.config.Height)
	y := rt.config.Height - 1 - j

	for i := 0; i < rt.config.Width; i++ {
		colorAccum := core.Vec3{}
		for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
			// Convert pixel coordinates to normalized coordinates with jitter
			u := (float64(i) + sampler.Get1D()) / nx
			v := (float64(j) + sampler.Get1D()) / ny

			ray := rt.camera.GetRay(u, v, sampler)
			colorAccum = colorAccum.Add(rt.integrator.RayColor(ray, rt.world, sampler))
		}

		colorVec := colorAccum.Divide(float64(rt.config.SamplesPerPixel))
		img.SetRGBA(i, y, Vec3ToColor(colorVec))
	}

	return rt.config.Width * rt.config.SamplesPerPixel
}

// Vec3ToColor converts a linear Vec3 color to RGBA with clamping and gamma 2 correction
func Vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0).GammaCorrect(2.0)

	return color.RGBA{
		R: uint8(255.99 * colorVec.X),
		G: uint8(255.99 * colorVec.Y),
		B: uint8(255.99 * colorVec.Z),
		A: 255,
	}
}
