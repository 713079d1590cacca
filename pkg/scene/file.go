package scene

import (
	"fmt"
	"os"
	"sort"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"gopkg.in/yaml.v2"
)

// Material type names used in scene files
const (
	MaterialLambertian = "lambertian"
	MaterialMetal      = "metal"
	MaterialDielectric = "dielectric"
)

// File is the YAML description of a scene
type File struct {
	Name      string                 `yaml:"name"`
	Camera    CameraSettings         `yaml:"camera"`
	Sampling  SamplingSettings       `yaml:"sampling"`
	Materials map[string]MaterialDef `yaml:"materials"`
	Spheres   []SphereDef            `yaml:"spheres"`
}

// CameraSettings describes the camera
type CameraSettings struct {
	LookFrom      []float64 `yaml:"look_from"`
	LookAt        []float64 `yaml:"look_at"`
	Up            []float64 `yaml:"up,omitempty"`
	VFov          float64   `yaml:"vfov"`
	Aperture      float64   `yaml:"aperture"`
	FocusDistance float64   `yaml:"focus_distance,omitempty"` // 0 = distance to look_at
}

// SamplingSettings describes the image and sampling parameters.
// Nil fields take the renderer defaults; an explicit zero is kept.
type SamplingSettings struct {
	Width           *int   `yaml:"width,omitempty"`
	Height          *int   `yaml:"height,omitempty"`
	SamplesPerPixel *int   `yaml:"samples_per_pixel,omitempty"`
	MaxDepth        *int   `yaml:"max_depth,omitempty"`
	Seed            *int64 `yaml:"seed,omitempty"`
}

// MaterialDef describes one named material
type MaterialDef struct {
	Type            string    `yaml:"type"`
	Albedo          []float64 `yaml:"albedo,omitempty"`
	Fuzz            float64   `yaml:"fuzz,omitempty"`
	RefractiveIndex float64   `yaml:"refractive_index,omitempty"`
}

// SphereDef describes one sphere; Material names an entry of File.Materials
type SphereDef struct {
	Center   []float64 `yaml:"center"`
	Radius   float64   `yaml:"radius"`
	Material string    `yaml:"material"`
}

// ParseFile decodes a YAML scene description
func ParseFile(data []byte) (*File, error) {
	f := &File{}
	if err := yaml.UnmarshalStrict(data, f); err != nil {
		return nil, fmt.Errorf("error parsing scene: %w", err)
	}
	return f, nil
}

// LoadFile reads and decodes a YAML scene file
func LoadFile(filePath string) (*File, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading scene file: %w", err)
	}
	f, err := ParseFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	if f.Name == "" {
		f.Name = filePath
	}
	return f, nil
}

// LoadSceneFile reads a YAML scene file and builds the scene
func LoadSceneFile(filePath string) (*Scene, error) {
	f, err := LoadFile(filePath)
	if err != nil {
		return nil, err
	}
	s, err := f.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return s, nil
}

// Marshal encodes the scene description as YAML
func (f *File) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("error serializing scene: %w", err)
	}
	return data, nil
}

// SaveFile writes the scene description to filePath
func (f *File) SaveFile(filePath string) error {
	data, err := f.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing scene file: %w", err)
	}
	return nil
}

// Build validates the description and constructs the scene.
// Spheres naming the same material share one material instance.
func (f *File) Build() (*Scene, error) {
	cameraConfig, err := f.Camera.config()
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	samplingConfig, err := f.Sampling.config()
	if err != nil {
		return nil, fmt.Errorf("sampling: %w", err)
	}

	// Build materials in name order so errors are reported deterministically
	names := make([]string, 0, len(f.Materials))
	for name := range f.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	materials := make(map[string]material.Material, len(f.Materials))
	for _, name := range names {
		mat, err := f.Materials[name].build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	s := NewScene(f.Name, cameraConfig, samplingConfig)
	for i, def := range f.Spheres {
		center, err := toVec3(def.Center)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: center: %w", i, err)
		}
		if def.Radius == 0 {
			return nil, fmt.Errorf("sphere %d: radius must be non-zero", i)
		}
		mat, ok := materials[def.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: unknown material %q", i, def.Material)
		}
		s.AddSphere(center, def.Radius, mat)
	}

	return s, nil
}

func (c CameraSettings) config() (renderer.CameraConfig, error) {
	lookFrom, err := toVec3(c.LookFrom)
	if err != nil {
		return renderer.CameraConfig{}, fmt.Errorf("look_from: %w", err)
	}
	lookAt, err := toVec3(c.LookAt)
	if err != nil {
		return renderer.CameraConfig{}, fmt.Errorf("look_at: %w", err)
	}
	up := core.NewVec3(0, 1, 0)
	if len(c.Up) > 0 {
		if up, err = toVec3(c.Up); err != nil {
			return renderer.CameraConfig{}, fmt.Errorf("up: %w", err)
		}
	}
	if lookFrom == lookAt {
		return renderer.CameraConfig{}, fmt.Errorf("look_from and look_at must differ")
	}
	if c.VFov <= 0 || c.VFov >= 180 {
		return renderer.CameraConfig{}, fmt.Errorf("vfov %v must be in (0, 180)", c.VFov)
	}
	if c.Aperture < 0 || c.FocusDistance < 0 {
		return renderer.CameraConfig{}, fmt.Errorf("aperture and focus_distance must not be negative")
	}
	return renderer.CameraConfig{
		LookFrom:      lookFrom,
		LookAt:        lookAt,
		Up:            up,
		VFov:          c.VFov,
		Aperture:      c.Aperture,
		FocusDistance: c.FocusDistance,
	}, nil
}

func (s SamplingSettings) config() (renderer.SamplingConfig, error) {
	config := renderer.DefaultSamplingConfig()
	if s.Width != nil {
		config.Width = *s.Width
	}
	if s.Height != nil {
		config.Height = *s.Height
	}
	if s.SamplesPerPixel != nil {
		config.SamplesPerPixel = *s.SamplesPerPixel
	}
	if s.MaxDepth != nil {
		config.MaxDepth = *s.MaxDepth
	}
	if s.Seed != nil {
		config.Seed = *s.Seed
	}
	if config.Width <= 0 || config.Height <= 0 {
		return config, fmt.Errorf("invalid image size %dx%d", config.Width, config.Height)
	}
	if config.SamplesPerPixel <= 0 {
		return config, fmt.Errorf("samples_per_pixel must be positive, got %d", config.SamplesPerPixel)
	}
	if config.MaxDepth <= 0 {
		return config, fmt.Errorf("max_depth must be positive, got %d", config.MaxDepth)
	}
	return config, nil
}

func (m MaterialDef) build() (material.Material, error) {
	switch m.Type {
	case MaterialLambertian, MaterialMetal:
		albedo, err := toVec3(m.Albedo)
		if err != nil {
			return nil, fmt.Errorf("albedo: %w", err)
		}
		if m.Type == MaterialLambertian {
			return material.NewLambertian(albedo), nil
		}
		return material.NewMetal(albedo, m.Fuzz), nil
	case MaterialDielectric:
		if m.RefractiveIndex <= 0 {
			return nil, fmt.Errorf("refractive_index must be positive, got %v", m.RefractiveIndex)
		}
		return material.NewDielectric(m.RefractiveIndex), nil
	}
	return nil, fmt.Errorf("unknown material type %q", m.Type)
}

func toVec3(v []float64) (core.Vec3, error) {
	if len(v) != 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(v))
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

func vec(v core.Vec3) []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// Ptr returns a pointer to v, for filling optional SamplingSettings fields
func Ptr[T any](v T) *T {
	return &v
}

// NewSamplingSettings returns settings with every field set
func NewSamplingSettings(width, height, samplesPerPixel, maxDepth int, seed int64) SamplingSettings {
	return SamplingSettings{
		Width:           Ptr(width),
		Height:          Ptr(height),
		SamplesPerPixel: Ptr(samplesPerPixel),
		MaxDepth:        Ptr(maxDepth),
		Seed:            Ptr(seed),
	}
}
