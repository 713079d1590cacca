package integrator

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
)

// DefaultMaxDepth is the bounce budget used when none is configured
const DefaultMaxDepth = 50

// shadowEpsilon is the lower bound of the hit interval; it keeps a scattered
// ray from re-hitting the surface it left.
const shadowEpsilon = 0.001

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color seen along ray
	RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3
}

var (
	white   = core.NewVec3(1.0, 1.0, 1.0)
	skyBlue = core.NewVec3(0.5, 0.7, 1.0)
)

// SkyColor returns the background gradient for a ray that escapes the scene
func SkyColor(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*white + t*blue
	return white.Multiply(1.0 - t).Add(skyBlue.Multiply(t))
}

// New returns the integrator for the named shading mode
func New(shading string, maxDepth int) (Integrator, bool) {
	switch shading {
	case "", "path":
		return NewPathTracingIntegrator(maxDepth), true
	case "normals":
		return NewNormalIntegrator(), true
	}
	return nil, false
}

// NormalIntegrator shades hits by their surface normal, mapped from [-1,1] to [0,1]
type NormalIntegrator struct{}

// NewNormalIntegrator creates a new normal shading integrator
func NewNormalIntegrator() *NormalIntegrator {
	return &NormalIntegrator{}
}

// RayColor implements Integrator
func (n *NormalIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3 {
	hit, isHit := world.Hit(ray, shadowEpsilon, math.Inf(1))
	if !isHit {
		return SkyColor(ray)
	}
	return hit.Normal.Add(white).Multiply(0.5)
}
