package scene

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// Built-in scene names
const (
	DefaultSceneName = "default"
	RandomSceneName  = "random"
	EmptySceneName   = "empty"
)

var builtins = map[string]func(seed int64) *File{
	DefaultSceneName: func(seed int64) *File { return NewDefaultSceneFile() },
	RandomSceneName:  NewRandomSceneFile,
	EmptySceneName:   func(seed int64) *File { return NewEmptySceneFile() },
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the description of a built-in scene.
// The seed only affects procedurally generated scenes.
func Lookup(name string, seed int64) (*File, error) {
	build, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, Names())
	}
	return build(seed), nil
}

// NewDefaultSceneFile describes three spheres resting on a large ground sphere:
// a diffuse one in the middle, metal on the right and a hollow glass bubble on the left
func NewDefaultSceneFile() *File {
	return &File{
		Name:   DefaultSceneName,
		Camera: CameraSettings{
			LookFrom: []float64{-2, 2, 1},
			LookAt:   []float64{0, 0, -1},
			Up:       []float64{0, 1, 0},
			VFov:     40,
		},
		Sampling:  NewSamplingSettings(200, 100, 100, 50, 42),
		Materials: map[string]MaterialDef{
			"ground": {Type: MaterialLambertian, Albedo: []float64{0.8, 0.8, 0.0}},
			"matte":  {Type: MaterialLambertian, Albedo: []float64{0.1, 0.2, 0.5}},
			"metal":  {Type: MaterialMetal, Albedo: []float64{0.8, 0.6, 0.2}, Fuzz: 0.3},
			"glass":  {Type: MaterialDielectric, RefractiveIndex: 1.5},
		},
		Spheres: []SphereDef{
			{Center: []float64{0, -100.5, -1}, Radius: 100, Material: "ground"},
			{Center: []float64{0, 0, -1}, Radius: 0.5, Material: "matte"},
			{Center: []float64{1, 0, -1}, Radius: 0.5, Material: "metal"},
			{Center: []float64{-1, 0, -1}, Radius: 0.5, Material: "glass"},
			// Negative radius flips the normals inward, making the glass hollow
			{Center: []float64{-1, 0, -1}, Radius: -0.45, Material: "glass"},
		},
	}
}

// NewRandomSceneFile describes a field of small random spheres around three large ones.
// The layout is fully determined by seed.
func NewRandomSceneFile(seed int64) *File {
	random := rand.New(rand.NewSource(seed))

	f := &File{
		Name:   RandomSceneName,
		Camera: CameraSettings{
			LookFrom:      []float64{13, 2, 3},
			LookAt:        []float64{0, 0, 0},
			Up:            []float64{0, 1, 0},
			VFov:          20,
			Aperture:      0.1,
			FocusDistance: 10,
		},
		Sampling:  NewSamplingSettings(300, 200, 100, 50, seed),
		Materials: map[string]MaterialDef{
			"ground": {Type: MaterialLambertian, Albedo: []float64{0.5, 0.5, 0.5}},
			"glass":  {Type: MaterialDielectric, RefractiveIndex: 1.5},
			"brown":  {Type: MaterialLambertian, Albedo: []float64{0.4, 0.2, 0.1}},
			"mirror": {Type: MaterialMetal, Albedo: []float64{0.7, 0.6, 0.5}},
		},
		Spheres: []SphereDef{
			{Center: []float64{0, -1000, 0}, Radius: 1000, Material: "ground"},
		},
	}

	keepClear := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
			if center.Subtract(keepClear).Length() <= 0.9 {
				continue
			}

			var def MaterialDef
			switch {
			case chooseMat < 0.8:
				def = MaterialDef{Type: MaterialLambertian, Albedo: []float64{
					random.Float64() * random.Float64(),
					random.Float64() * random.Float64(),
					random.Float64() * random.Float64(),
				}}
			case chooseMat < 0.95:
				def = MaterialDef{Type: MaterialMetal, Albedo: []float64{
					0.5 * (1 + random.Float64()),
					0.5 * (1 + random.Float64()),
					0.5 * (1 + random.Float64()),
				}, Fuzz: 0.5 * random.Float64()}
			default:
				f.Spheres = append(f.Spheres, SphereDef{Center: vec(center), Radius: 0.2, Material: "glass"})
				continue
			}

			name := fmt.Sprintf("%s_%d_%d", def.Type, a+11, b+11)
			f.Materials[name] = def
			f.Spheres = append(f.Spheres, SphereDef{Center: vec(center), Radius: 0.2, Material: name})
		}
	}

	f.Spheres = append(f.Spheres,
		SphereDef{Center: []float64{0, 1, 0}, Radius: 1, Material: "glass"},
		SphereDef{Center: []float64{-4, 1, 0}, Radius: 1, Material: "brown"},
		SphereDef{Center: []float64{4, 1, 0}, Radius: 1, Material: "mirror"},
	)
	return f
}

// NewEmptySceneFile describes a scene with no objects; only the sky is visible
func NewEmptySceneFile() *File {
	return &File{
		Name:   EmptySceneName,
		Camera: CameraSettings{
			LookFrom: []float64{0, 0, 0},
			LookAt:   []float64{0, 0, -1},
			Up:       []float64{0, 1, 0},
			VFov:     90,
		},
		Sampling:  NewSamplingSettings(200, 100, 1, 50, 42),
		Materials: map[string]MaterialDef{},
	}
}
