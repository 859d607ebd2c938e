package material

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidtemplin/mmlt/pkg/core"
	"github.com/davidtemplin/mmlt/pkg/sampler"
)

var up = core.NewVec3(0, 1, 0)

func TestDiffuseBSDF_Reflectance(t *testing.T) {
	bsdf := &DiffuseBSDF{Albedo: core.Fill(0.8), Normal: up}

	same := bsdf.Reflectance(core.NewVec3(1, 1, 0), core.NewVec3(-1, 1, 0))
	assert.InDelta(t, 0.8/math.Pi, same.R, 1e-12)

	opposite := bsdf.Reflectance(core.NewVec3(1, 1, 0), core.NewVec3(-1, -1, 0))
	assert.True(t, opposite.IsBlack())

	// Both faces scatter
	below := bsdf.Reflectance(core.NewVec3(1, -1, 0), core.NewVec3(-1, -1, 0))
	assert.InDelta(t, 0.8/math.Pi, below.G, 1e-12)
}

func TestDiffuseBSDF_PDFMatchesSide(t *testing.T) {
	bsdf := &DiffuseBSDF{Albedo: core.Fill(0.5), Normal: up}
	wo := core.NewVec3(0, 1, 0)
	wi := core.NewVec3(1, 1, 0).Normalize()

	camera := bsdf.PDF(wo, wi, core.CameraSide)
	light := bsdf.PDF(wo, wi, core.LightSide)

	assert.False(t, camera.Delta)
	assert.InDelta(t, wi.Dot(up)/math.Pi, camera.Value, 1e-12)
	assert.InDelta(t, 1/math.Pi, light.Value, 1e-12)
	assert.True(t, bsdf.PDF(wo, wi.Negate(), core.CameraSide).IsZero())
}

func TestDiffuseBSDF_SampleFollowsGivenSide(t *testing.T) {
	bsdf := &DiffuseBSDF{Albedo: core.Fill(0.5), Normal: up}

	tests := []struct {
		name  string
		given core.Vec3
		sign  float64
	}{
		{"above", core.NewVec3(0.3, 1, 0), 1},
		{"below", core.NewVec3(0.3, -1, 0), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sampler.NewSequenceSampler(0.25, 0.6)
			direction, ok := bsdf.Sample(tt.given, core.CameraSide, s)
			require.True(t, ok)
			assert.Equal(t, 2, s.Drawn())
			assert.Greater(t, tt.sign*direction.Dot(up), 0.0)
			assert.InDelta(t, 1, direction.Length(), 1e-9)

			pdf := bsdf.PDF(tt.given, direction, core.CameraSide)
			assert.Greater(t, pdf.Value, 0.0)
		})
	}
}

func TestSpecularBSDF(t *testing.T) {
	bsdf := &SpecularBSDF{Albedo: core.Fill(0.9), Normal: up}
	wo := core.NewVec3(1, 1, 0).Normalize()

	s := sampler.NewSequenceSampler(0.1, 0.2)
	wi, ok := bsdf.Sample(wo, core.CameraSide, s)
	require.True(t, ok)
	assert.Equal(t, 2, s.Drawn())
	assert.InDelta(t, -wo.X, wi.X, 1e-12)
	assert.InDelta(t, wo.Y, wi.Y, 1e-12)

	pdf := bsdf.PDF(wo, wi, core.CameraSide)
	assert.True(t, pdf.Delta)
	assert.Equal(t, 1.0, pdf.Value)

	f := bsdf.Reflectance(wo, wi)
	assert.InDelta(t, 0.9/wi.Dot(up), f.R, 1e-9)

	// Any other direction has no reflectance and no density
	other := core.NewVec3(0, 1, 0)
	assert.True(t, bsdf.Reflectance(wo, other).IsBlack())
	assert.True(t, bsdf.PDF(wo, other, core.CameraSide).IsZero())
	assert.True(t, bsdf.IsDelta())
}

func TestFresnelDielectric(t *testing.T) {
	// Normal incidence on glass: ((n-1)/(n+1))²
	assert.InDelta(t, 0.04, FresnelDielectric(1, 1.5), 1e-12)
	// Symmetric at normal incidence from inside
	assert.InDelta(t, 0.04, FresnelDielectric(-1, 1.5), 1e-12)
	// Grazing incidence reflects everything
	assert.InDelta(t, 1, FresnelDielectric(0, 1.5), 1e-9)
	// Beyond the critical angle from inside
	assert.Equal(t, 1.0, FresnelDielectric(-0.2, 1.5))
}

func TestRefract_Reversible(t *testing.T) {
	tests := []struct {
		name string
		w    core.Vec3
	}{
		{"from outside", core.NewVec3(0.5, 1, 0.2)},
		{"from inside", core.NewVec3(0.2, -1, 0.1)},
		{"normal incidence", core.NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := tt.w.Normalize()
			refracted, ok := Refract(w, up, 1.5)
			require.True(t, ok)
			assert.Less(t, refracted.Dot(up)*w.Dot(up), 0.0, "refraction crosses the surface")

			back, ok := Refract(refracted, up, 1.5)
			require.True(t, ok)
			assert.InDelta(t, w.X, back.X, 1e-9)
			assert.InDelta(t, w.Y, back.Y, 1e-9)
			assert.InDelta(t, w.Z, back.Z, 1e-9)
		})
	}

	_, ok := Refract(core.NewVec3(1, -0.2, 0).Normalize(), up, 1.5)
	assert.False(t, ok, "total internal reflection")
}

func TestDielectricBSDF_LobesAndDensities(t *testing.T) {
	bsdf := &DielectricBSDF{RefractiveIndex: 1.5, Tint: core.Fill(1), Normal: up}
	wo := core.NewVec3(0.4, 1, 0).Normalize()
	fresnel := FresnelDielectric(wo.Dot(up), 1.5)

	reflected, ok := bsdf.Sample(wo, core.CameraSide, sampler.NewSequenceSampler(fresnel/2, 0.5))
	require.True(t, ok)
	assert.Greater(t, reflected.Dot(up), 0.0)
	assert.InDelta(t, fresnel, bsdf.PDF(wo, reflected, core.CameraSide).Value, 1e-12)

	transmitted, ok := bsdf.Sample(wo, core.CameraSide, sampler.NewSequenceSampler(0.9, 0.5))
	require.True(t, ok)
	assert.Less(t, transmitted.Dot(up), 0.0)

	pdf := bsdf.PDF(wo, transmitted, core.CameraSide)
	assert.True(t, pdf.Delta)
	assert.InDelta(t, 1-fresnel, pdf.Value, 1e-12)

	// Camera side: f |cos θi| / p = 1 through the interface
	f := bsdf.Reflectance(wo, transmitted)
	assert.InDelta(t, 1, f.R*up.AbsDot(transmitted)/pdf.Value, 1e-9)

	// Light side: f |cos θo| / p = 1 through the interface
	lightPDF := bsdf.PDF(wo, transmitted, core.LightSide)
	assert.InDelta(t, 1, f.R*up.AbsDot(wo)/lightPDF.Value, 1e-9)

	assert.True(t, bsdf.Reflectance(wo, core.NewVec3(1, 0.1, 0)).IsBlack())
}

func TestCheckerTexture(t *testing.T) {
	even := core.Fill(1)
	odd := core.Fill(0)
	checker := NewCheckerTexture(even, odd, 1)

	tests := []struct {
		point    core.Vec3
		expected core.Spectrum
	}{
		{core.NewVec3(0.5, 0.5, 0.5), even},
		{core.NewVec3(1.5, 0.5, 0.5), odd},
		{core.NewVec3(-0.5, 0.5, 0.5), odd},
		{core.NewVec3(-0.5, -0.5, 0.5), even},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, checker.Evaluate(core.Geometry{Point: tt.point}), "point %v", tt.point)
	}

	assert.Panics(t, func() { NewCheckerTexture(even, odd, 0) })
}

func TestMaterials_ComputeBSDF(t *testing.T) {
	geometry := core.Geometry{Point: core.NewVec3(0, 0, 0), Normal: up}

	matte := NewLambertian(NewSolidColor(core.Fill(0.5))).ComputeBSDF(geometry)
	assert.False(t, matte.IsDelta())

	mirror := NewMetal(core.Fill(1)).ComputeBSDF(geometry)
	assert.True(t, mirror.IsDelta())

	glass := NewDielectric(1.5, core.Fill(1)).ComputeBSDF(geometry)
	assert.True(t, glass.IsDelta())
}
