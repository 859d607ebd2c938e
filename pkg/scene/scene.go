package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/davidtemplin/mmlt/pkg/core"
	"github.com/davidtemplin/mmlt/pkg/geometry"
	"github.com/davidtemplin/mmlt/pkg/lights"
)

// Minimum ray distance, avoids re-hitting the surface a ray leaves from
const rayEpsilon = 1e-3

// LightSampling selects how SampleLight chooses among lights
type LightSampling string

const (
	UniformLightSampling LightSampling = "uniform" // Every light equally likely
	PowerLightSampling   LightSampling = "power"   // Proportional to emitted flux
)

// Scene contains all the elements needed for rendering
type Scene struct {
	camera   core.Camera
	lights   []*lights.DiffuseAreaLight
	objects  []*SurfaceObject
	sampling LightSampling

	bvh               *geometry.BVH // Acceleration structure over lights and objects
	lightDistribution *core.Distribution
}

// New builds a scene, assigning every light its selection probability
func New(camera core.Camera, lightList []*lights.DiffuseAreaLight, objects []*SurfaceObject, sampling LightSampling) (*Scene, error) {
	if camera == nil {
		return nil, errors.New("scene has no camera")
	}
	if len(lightList) == 0 {
		return nil, errors.New("scene has no lights")
	}

	weights := make([]float64, len(lightList))
	for i, light := range lightList {
		switch sampling {
		case UniformLightSampling, "":
			weights[i] = 1
		case PowerLightSampling:
			weights[i] = light.Power()
		default:
			return nil, fmt.Errorf("unknown light sampling %q", sampling)
		}
	}
	if sampling == "" {
		sampling = UniformLightSampling
	}

	distribution := core.NewDistribution(weights)
	for i, light := range lightList {
		if distribution.PDF(i) == 0 {
			return nil, fmt.Errorf("light %d emits no power", light.ID())
		}
		light.SetSamplingPDF(distribution.PDF(i))
	}

	primitives := make([]geometry.Primitive, 0, len(lightList)+len(objects))
	for _, light := range lightList {
		primitives = append(primitives, light)
	}
	for _, object := range objects {
		primitives = append(primitives, object)
	}

	return &Scene{
		camera:            camera,
		lights:            lightList,
		objects:           objects,
		sampling:          sampling,
		bvh:               geometry.NewBVH(primitives),
		lightDistribution: distribution,
	}, nil
}

// Camera returns the scene camera
func (s *Scene) Camera() core.Camera {
	return s.camera
}

// Lights returns the scene lights
func (s *Scene) Lights() []*lights.DiffuseAreaLight {
	return s.lights
}

// Objects returns the scene objects
func (s *Scene) Objects() []*SurfaceObject {
	return s.objects
}

// LightSampling returns the light selection strategy
func (s *Scene) LightSampling() LightSampling {
	return s.sampling
}

// Intersect returns the nearest of the camera, a light or an object along the ray
func (s *Scene) Intersect(ray core.Ray) (*core.Interaction, bool) {
	closest, found := s.camera.Intersect(ray, rayEpsilon, math.Inf(1))
	tMax := math.Inf(1)
	if found {
		tMax = closest.Distance
	}
	if hit, ok := s.bvh.Intersect(ray, rayEpsilon, tMax); ok {
		return hit, true
	}
	return closest, found
}

// SampleLight draws one value and picks a light with the configured strategy
func (s *Scene) SampleLight(sampler core.Sampler) core.Light {
	index, _, ok := s.lightDistribution.Sample(sampler.Sample(0, 1))
	if !ok {
		panic("scene has no light to sample")
	}
	return s.lights[index]
}
