package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// MockMaterial implements material.Material for testing
type MockMaterial struct {
	calls     int
	scatterFn func(rayIn core.Ray, hit material.HitRecord) (material.ScatterResult, bool)
}

func (m *MockMaterial) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	m.calls++
	return m.scatterFn(rayIn, hit)
}

// MockShape implements geometry.Shape for testing
type MockShape struct {
	hitFn func(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}

func (m MockShape) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return m.hitFn(ray, tMin, tMax)
}

func assertColor(t *testing.T, expected, actual core.Vec3, tolerance float64) {
	t.Helper()
	if actual.Subtract(expected).Length() > tolerance {
		t.Errorf("Expected color %v, got %v", expected, actual)
	}
}

func TestSkyColor(t *testing.T) {
	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up", core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"straight down", core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1)},
		{"forward", core.NewVec3(0, 0, -1), core.NewVec3(0.75, 0.85, 1.0)},
		{"unnormalized up", core.NewVec3(0, 5, 0), core.NewVec3(0.5, 0.7, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.NewVec3(0, 0, 0), tt.direction)
			assertColor(t, tt.expected, SkyColor(ray), 1e-12)
		})
	}
}

func TestPathTracingEmptySceneReturnsSky(t *testing.T) {
	integrator := NewPathTracingIntegrator(50)
	world := geometry.NewHitableList()
	sampler := core.NewSeededSampler(42)

	up := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), world, sampler)
	if up != core.NewVec3(0.5, 0.7, 1.0) {
		t.Errorf("Expected (0.5, 0.7, 1.0) for straight up, got %v", up)
	}

	down := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0)), world, sampler)
	if down != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected white for straight down, got %v", down)
	}
}

func TestPathTracingDepthTermination(t *testing.T) {
	// Every ray hits and every hit scatters, so only the bounce budget ends the path
	mat := &MockMaterial{scatterFn: func(rayIn core.Ray, hit material.HitRecord) (material.ScatterResult, bool) {
		return material.ScatterResult{Scattered: rayIn, Attenuation: core.NewVec3(1, 1, 1)}, true
	}}
	world := MockShape{hitFn: func(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
		return &material.HitRecord{T: 1, Point: ray.At(1), Normal: core.NewVec3(0, 1, 0), Material: mat}, true
	}}

	for _, maxDepth := range []int{1, 5, 50} {
		mat.calls = 0
		integrator := NewPathTracingIntegrator(maxDepth)
		color := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), world, core.NewSeededSampler(1))
		if color != (core.Vec3{}) {
			t.Errorf("MaxDepth %d: expected black, got %v", maxDepth, color)
		}
		if mat.calls != maxDepth {
			t.Errorf("MaxDepth %d: expected %d scatter calls, got %d", maxDepth, maxDepth, mat.calls)
		}
	}
}

func TestPathTracingDefaultDepth(t *testing.T) {
	if NewPathTracingIntegrator(0).MaxDepth != DefaultMaxDepth {
		t.Errorf("Expected default depth %d", DefaultMaxDepth)
	}
}

func TestPathTracingAbsorption(t *testing.T) {
	mat := &MockMaterial{scatterFn: func(rayIn core.Ray, hit material.HitRecord) (material.ScatterResult, bool) {
		return material.ScatterResult{}, false
	}}
	world := geometry.NewHitableList(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, mat))

	color := NewPathTracingIntegrator(50).RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), world, core.NewSeededSampler(1))
	if color != (core.Vec3{}) {
		t.Errorf("Expected black for absorbed ray, got %v", color)
	}
}

func TestPathTracingAttenuationMultiplies(t *testing.T) {
	// One bounce straight up into the sky
	attenuation := core.NewVec3(0.5, 0.25, 0.8)
	mat := &MockMaterial{scatterFn: func(rayIn core.Ray, hit material.HitRecord) (material.ScatterResult, bool) {
		return material.ScatterResult{
			Scattered:   core.NewRay(hit.Point, core.NewVec3(0, 1, 0)),
			Attenuation: attenuation,
		}, true
	}}
	world := MockShape{hitFn: func(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
		if ray.Direction.Y > 0 {
			return nil, false
		}
		return &material.HitRecord{T: 1, Point: ray.At(1), Normal: core.NewVec3(0, 1, 0), Material: mat}, true
	}}

	color := NewPathTracingIntegrator(50).RayColor(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), world, core.NewSeededSampler(1))
	assertColor(t, attenuation.MultiplyVec(core.NewVec3(0.5, 0.7, 1.0)), color, 1e-12)
}

func TestPathTracingHitIntervalExcludesOrigin(t *testing.T) {
	var seenMin, seenMax float64
	world := MockShape{hitFn: func(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
		seenMin, seenMax = tMin, tMax
		return nil, false
	}}

	NewPathTracingIntegrator(50).RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), world, core.NewSeededSampler(1))
	if seenMin != 0.001 || !math.IsInf(seenMax, 1) {
		t.Errorf("Expected interval (0.001, +Inf), got (%f, %f)", seenMin, seenMax)
	}
}

func TestPathTracingDeterministic(t *testing.T) {
	world := geometry.NewHitableList(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, material.NewDielectric(1.5)),
	)
	integrator := NewPathTracingIntegrator(50)

	render := func() []core.Vec3 {
		sampler := core.NewSeededSampler(2024)
		colors := make([]core.Vec3, 0, 100)
		for i := 0; i < 100; i++ {
			direction := core.NewVec3(sampler.Get1D()*2-1, sampler.Get1D()-0.5, -1)
			colors = append(colors, integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), direction), world, sampler))
		}
		return colors
	}

	first, second := render(), render()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Sample %d differs between runs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestPathTracingLambertianGroundIsDarkerThanSky(t *testing.T) {
	world := geometry.NewHitableList(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)
	integrator := NewPathTracingIntegrator(50)
	sampler := core.NewSeededSampler(5)
	ray := core.NewRay(core.NewVec3(0, 0, -1), core.NewVec3(0, -1, 0))

	sum := core.Vec3{}
	n := 500
	for i := 0; i < n; i++ {
		sum = sum.Add(integrator.RayColor(ray, world, sampler))
	}
	avg := sum.Divide(float64(n))

	// A grey ground only ever returns half the sky light or less per bounce
	if avg.X <= 0 || avg.X > 0.5 || avg.Z > 0.5 {
		t.Errorf("Expected attenuated ground color in (0, 0.5], got %v", avg)
	}
}
