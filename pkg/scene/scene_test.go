package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidtemplin/mmlt/pkg/core"
	"github.com/davidtemplin/mmlt/pkg/geometry"
	"github.com/davidtemplin/mmlt/pkg/lights"
	"github.com/davidtemplin/mmlt/pkg/material"
	"github.com/davidtemplin/mmlt/pkg/sampler"
)

func newTestScene(t *testing.T, sampling LightSampling) *Scene {
	camera := geometry.NewPinholeCamera(1, geometry.CameraConfig{
		Eye:    core.NewVec3(0, 0, 5),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40,
		Width:  32,
		Height: 32,
	})
	dim := lights.NewDiffuseAreaLight(2, geometry.NewSphere(core.NewVec3(-3, 3, 0), 0.5), core.Fill(1))
	bright := lights.NewDiffuseAreaLight(3, geometry.NewSphere(core.NewVec3(3, 3, 0), 0.5), core.Fill(3))
	ball := NewSurfaceObject(4, geometry.NewSphere(core.NewVec3(0, 0, 0), 1),
		material.NewLambertian(material.NewSolidColor(core.Fill(0.5))))

	s, err := New(camera, []*lights.DiffuseAreaLight{dim, bright}, []*SurfaceObject{ball}, sampling)
	require.NoError(t, err)
	return s
}

func TestScene_IntersectNearest(t *testing.T) {
	s := newTestScene(t, UniformLightSampling)

	tests := []struct {
		name     string
		ray      core.Ray
		expected core.InteractionKind
		id       uint64
		distance float64
	}{
		{"object in front of the camera", core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), core.ObjectInteraction, 4, 4},
		{"light above", core.NewRay(core.NewVec3(3, 0, 0), core.NewVec3(0, 1, 0)), core.LightInteraction, 3, 2.5},
		{"camera from the object", core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1)), core.CameraInteraction, 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := s.Intersect(tt.ray)
			require.True(t, ok)
			assert.Equal(t, tt.expected, hit.Kind)
			assert.Equal(t, tt.id, hit.ID())
			assert.InDelta(t, tt.distance, hit.Distance, 1e-9)
		})
	}

	// An object between a point and the camera occludes it
	hit, ok := s.Intersect(core.NewRay(core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1)))
	require.True(t, ok)
	assert.Equal(t, core.ObjectInteraction, hit.Kind)

	_, ok = s.Intersect(core.NewRay(core.NewVec3(0, 0, -3), core.NewVec3(0, -1, 0)))
	assert.False(t, ok)
}

func TestScene_SampleLight(t *testing.T) {
	tests := []struct {
		name     string
		sampling LightSampling
		u        float64
		id       uint64
		pdf      float64
	}{
		{"uniform first", UniformLightSampling, 0.49, 2, 0.5},
		{"uniform second", UniformLightSampling, 0.5, 3, 0.5},
		{"power favors bright light", PowerLightSampling, 0.3, 3, 0.75},
		{"power dim light", PowerLightSampling, 0.2, 2, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScene(t, tt.sampling)
			light := s.SampleLight(sampler.NewSequenceSampler(tt.u))
			assert.Equal(t, tt.id, light.ID())
			assert.InDelta(t, tt.pdf, light.SamplingPDF().Value, 1e-12)
		})
	}
}

func TestNew_Errors(t *testing.T) {
	camera := geometry.NewPinholeCamera(1, geometry.CameraConfig{
		Eye: core.NewVec3(0, 0, 1), Up: core.NewVec3(0, 1, 0), VFov: 40, Width: 4, Height: 4,
	})
	light := lights.NewDiffuseAreaLight(2, geometry.NewSphere(core.Vec3{}, 1), core.Fill(1))
	dark := lights.NewDiffuseAreaLight(3, geometry.NewSphere(core.Vec3{}, 1), core.Black())

	_, err := New(nil, []*lights.DiffuseAreaLight{light}, nil, UniformLightSampling)
	assert.Error(t, err)

	_, err = New(camera, nil, nil, UniformLightSampling)
	assert.Error(t, err)

	_, err = New(camera, []*lights.DiffuseAreaLight{light}, nil, "importance")
	assert.Error(t, err)

	_, err = New(camera, []*lights.DiffuseAreaLight{light, dark}, nil, PowerLightSampling)
	assert.Error(t, err)

	s, err := New(camera, []*lights.DiffuseAreaLight{light}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, UniformLightSampling, s.LightSampling())
}

func TestCornellScene(t *testing.T) {
	s := NewCornellScene(64, 48)

	width, height := s.Camera().Resolution()
	assert.Equal(t, 64, width)
	assert.Equal(t, 48, height)
	assert.Len(t, s.Lights(), 1)
	assert.Len(t, s.Objects(), 7)

	// Identities are unique
	seen := map[uint64]bool{s.Camera().ID(): true}
	for _, light := range s.Lights() {
		assert.False(t, seen[light.ID()])
		seen[light.ID()] = true
	}
	for _, object := range s.Objects() {
		assert.False(t, seen[object.ID()])
		seen[object.ID()] = true
	}

	// Straight up from the floor reaches the light's lit face
	hit, ok := s.Intersect(core.NewRay(core.NewVec3(278, 1, 278), core.NewVec3(0, 1, 0)))
	require.True(t, ok)
	require.Equal(t, core.LightInteraction, hit.Kind)
	assert.False(t, hit.Light.Radiance(hit.Point, hit.Normal, hit.Direction.Negate()).IsBlack())
	assert.InDelta(t, 553, hit.Distance, 1e-9)

	// The view ray through the center reaches the back wall
	center, ok := s.Intersect(core.NewRay(core.NewVec3(278, 278, -800), core.NewVec3(0, 0, 1)))
	require.True(t, ok)
	assert.Equal(t, core.ObjectInteraction, center.Kind)
	assert.InDelta(t, 1355, center.Distance, 1e-6)
	assert.False(t, math.IsNaN(center.Point.X))
}
