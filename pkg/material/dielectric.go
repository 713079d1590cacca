package material

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter implements the Material interface for dielectric scattering.
// Exactly one of the reflected or refracted rays is returned, chosen with the
// Schlick reflectance as probability. Dielectrics never absorb.
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Dielectrics always attenuate by 1.0 (no color absorption for clear glass)
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	direction := rayIn.Direction
	reflected := Reflect(direction, hit.Normal)

	// Orient the normal against the ray and pick the index ratio for the side we're on
	var outwardNormal core.Vec3
	var refractionRatio, cosine float64
	if direction.Dot(hit.Normal) > 0 {
		// Exiting the material (from glass to air)
		outwardNormal = hit.Normal.Negate()
		refractionRatio = d.RefractiveIndex
		cosine = d.RefractiveIndex * direction.Dot(hit.Normal) / direction.Length()
	} else {
		// Entering the material (from air to glass)
		outwardNormal = hit.Normal
		refractionRatio = 1.0 / d.RefractiveIndex
		cosine = -direction.Dot(hit.Normal) / direction.Length()
	}

	refracted, canRefract := Refract(direction, outwardNormal, refractionRatio)

	// Total internal reflection leaves only the reflected ray
	reflectProbability := 1.0
	if canRefract {
		reflectProbability = Schlick(cosine, d.RefractiveIndex)
	}

	var scattered core.Ray
	if sampler.Get1D() < reflectProbability {
		scattered = core.NewRay(hit.Point, reflected)
	} else {
		scattered = core.NewRay(hit.Point, refracted)
	}

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: attenuation,
	}, true
}

// Refract calculates the refraction of v through a surface with normal n using Snell's law.
// Returns false on total internal reflection.
func Refract(v, n core.Vec3, niOverNt float64) (core.Vec3, bool) {
	uv := v.Normalize()
	dt := uv.Dot(n)
	discriminant := 1.0 - niOverNt*niOverNt*(1-dt*dt)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}
	return uv.Subtract(n.Multiply(dt)).Multiply(niOverNt).Subtract(n.Multiply(math.Sqrt(discriminant))), true
}

// Schlick calculates the Fresnel reflectance using Schlick's approximation
func Schlick(cosine, refractiveIndex float64) float64 {
	// R0 is the reflectance at normal incidence
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
