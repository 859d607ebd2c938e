package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleCosineHemisphere(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	normals := []Vec3{NewVec3(0, 0, 1), NewVec3(0, -1, 0), NewVec3(1, 1, 0).Normalize()}

	for _, normal := range normals {
		meanCos := 0.0
		const n = 20000
		for i := 0; i < n; i++ {
			direction := SampleCosineHemisphere(normal, random.Float64(), random.Float64())
			assert.InDelta(t, 1, direction.Length(), 1e-9)
			cos := direction.Dot(normal)
			assert.GreaterOrEqual(t, cos, -1e-12)
			assert.InDelta(t, cos/math.Pi, CosineHemispherePDF(normal, direction), 1e-9)
			meanCos += cos
		}
		// E[cos] = 2/3 under cosine-weighted sampling
		assert.InDelta(t, 2.0/3.0, meanCos/n, 0.01)
	}
}

func TestCosineHemispherePDF_BelowSurface(t *testing.T) {
	assert.Equal(t, 0.0, CosineHemispherePDF(NewVec3(0, 0, 1), NewVec3(0, 0, -1)))
}

func TestSampleOnUnitSphere(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	var mean Vec3
	const n = 20000
	for i := 0; i < n; i++ {
		p := SampleOnUnitSphere(random.Float64(), random.Float64())
		assert.InDelta(t, 1, p.Length(), 1e-9)
		mean = mean.Add(p)
	}
	assert.InDelta(t, 0, mean.Divide(n).Length(), 0.03)
}
