package integrator

import (
	"math"

	"github.com/davidtemplin/mmlt/pkg/core"
)

// Technique splits a path of a given length into the number of vertices
// traced from the camera and from the light
type Technique struct {
	CameraCount int
	LightCount  int
}

// SampleTechnique draws a technique uniformly from the pathLength+1
// possible splits using the technique stream
func SampleTechnique(sampler core.Sampler, pathLength int) Technique {
	sampler.StartStream(core.TechniqueStream)
	u := sampler.Sample(0, 1)
	cameraCount := min(int(math.Floor(u*float64(pathLength+1))), pathLength)
	return Technique{CameraCount: cameraCount, LightCount: pathLength - cameraCount}
}

// PathLength returns the number of vertices the technique produces
func (t Technique) PathLength() int {
	return t.CameraCount + t.LightCount
}
