package integrator

import (
	"math"

	"github.com/davidtemplin/mmlt/pkg/core"
)

// pointTolerance is the relative distance under which a visibility ray is
// considered to have reached its target
const pointTolerance = 1e-5

// Vertex carries the per-interaction quantities the estimator needs
type Vertex struct {
	Throughput core.Spectrum // Factor contributed by this vertex to the path throughput
	Forward    core.Density  // Density of generating the vertex from the camera side
	Reverse    core.Density  // Density of generating the vertex from the light side
	Specular   bool          // Reached only through a Dirac distribution
}

// Path is a complete camera-to-light path with one vertex per interaction.
// Vertex 0 lies on the camera and the last vertex on a light.
type Path struct {
	Vertices  []Vertex
	Technique Technique
	Pixel     core.Pixel
}

// Generate builds a path of pathLength vertices from the sampler's streams.
// It returns false when the chosen technique cannot produce a complete path.
func Generate(scene core.Scene, sampler core.Sampler, pathLength int) (*Path, bool) {
	technique := SampleTechnique(sampler, pathLength)
	interactions, ok := construct(scene, sampler, technique)
	if !ok {
		return nil, false
	}
	return connect(scene.Camera(), interactions, technique)
}

// construct traces the two subpaths of a technique and joins them in
// camera-to-light order
func construct(scene core.Scene, sampler core.Sampler, technique Technique) ([]*core.Interaction, bool) {
	c, l := technique.CameraCount, technique.LightCount

	switch {
	case c == 0:
		lightPath := traceLight(scene, sampler, l)
		if len(lightPath) != l || lightPath[l-1].Kind != core.CameraInteraction {
			return nil, false
		}
		return reversed(lightPath), true

	case l == 0:
		cameraPath := traceCamera(scene, sampler, c)
		if len(cameraPath) != c || cameraPath[c-1].Kind != core.LightInteraction {
			return nil, false
		}
		return cameraPath, true
	}

	cameraPath := traceCamera(scene, sampler, c)
	if len(cameraPath) != c {
		return nil, false
	}
	lightPath := traceLight(scene, sampler, l)
	if len(lightPath) != l {
		return nil, false
	}

	cameraEnd, lightEnd := cameraPath[c-1], lightPath[l-1]
	if c > 1 && cameraEnd.Kind != core.ObjectInteraction {
		return nil, false
	}
	if l > 1 && lightEnd.Kind != core.ObjectInteraction {
		return nil, false
	}

	// Rays leave the light-side vertex so endpoint identity can be checked
	if !visible(scene, lightEnd, cameraEnd) {
		return nil, false
	}

	interactions := make([]*core.Interaction, 0, c+l)
	interactions = append(interactions, cameraPath...)
	interactions = append(interactions, reversed(lightPath)...)
	return interactions, true
}

func traceCamera(scene core.Scene, sampler core.Sampler, count int) []*core.Interaction {
	sampler.StartStream(core.CameraStream)
	seed := scene.Camera().SampleInteraction(sampler)
	return trace(scene, seed, count, core.CameraSide, sampler)
}

func traceLight(scene core.Scene, sampler core.Sampler, count int) []*core.Interaction {
	sampler.StartStream(core.LightStream)
	light := scene.SampleLight(sampler)
	if light == nil {
		return nil
	}
	seed := light.SampleInteraction(sampler)
	return trace(scene, seed, count, core.LightSide, sampler)
}

// trace extends a subpath from its seed until it holds count interactions or
// a ray escapes the scene or stops at an endpoint
func trace(scene core.Scene, seed *core.Interaction, count int, side core.PathSide, sampler core.Sampler) []*core.Interaction {
	path := make([]*core.Interaction, 0, count)
	path = append(path, seed)

	current := seed
	for len(path) < count {
		ray, ok := current.GenerateRay(side, sampler)
		if !ok {
			break
		}
		hit, ok := scene.Intersect(ray)
		if !ok {
			break
		}
		path = append(path, hit)
		current = hit
	}
	return path
}

// visible reports whether a ray from one interaction reaches the other
// without hitting anything else first
func visible(scene core.Scene, from, to *core.Interaction) bool {
	direction := to.Point.Subtract(from.Point)
	if direction.IsZero() {
		return false
	}
	hit, ok := scene.Intersect(core.NewRay(from.Point, direction))
	if !ok || hit.Kind != to.Kind || hit.ID() != to.ID() {
		return false
	}
	scale := math.Max(1, to.Point.Length())
	return hit.Point.Distance(to.Point) <= pointTolerance*scale
}

func reversed(interactions []*core.Interaction) []*core.Interaction {
	out := make([]*core.Interaction, len(interactions))
	for i, interaction := range interactions {
		out[len(interactions)-1-i] = interaction
	}
	return out
}

// connect evaluates throughput factors and both generation densities for
// every vertex in a single camera-to-light pass. Each vertex fills in its own
// throughput, the forward density of its successor and the reverse density of
// its predecessor.
func connect(camera core.Camera, interactions []*core.Interaction, technique Technique) (*Path, bool) {
	k := len(interactions)
	if k < 2 {
		return nil, false
	}

	pixel, ok := camera.RasterPosition(interactions[1].Point.Subtract(interactions[0].Point))
	if !ok {
		return nil, false
	}

	vertices := make([]Vertex, k)
	for i, interaction := range interactions {
		vertices[i].Specular = interaction.IsSpecular()
	}

	// A density pointing into a delta endpoint can never generate it
	patchReverse := func(i int, density core.Density) {
		if (i == 0 || i == k-1) && vertices[i].Specular {
			density = core.Density{}
		}
		vertices[i].Reverse = density
	}

	for i, x := range interactions {
		switch {
		case i == 0:
			if x.Kind != core.CameraInteraction {
				return nil, false
			}
			next := interactions[1]
			d := next.Point.Subtract(x.Point)
			vertices[0].Throughput = camera.Importance(x.Point, d).Scale(core.GeometryTerm(d, x.Normal, next.Normal))
			vertices[0].Forward = camera.PositionalPDF(x.Point)
			vertices[1].Forward = camera.DirectionalPDF(d).Scale(core.DirectionToArea(d, next.Normal))

		case i == k-1:
			if x.Kind != core.LightInteraction {
				return nil, false
			}
			light := x.Light
			previous := interactions[k-2]
			d := previous.Point.Subtract(x.Point)
			vertices[i].Throughput = light.Radiance(x.Point, x.Normal, d)
			vertices[i].Reverse = light.SamplingPDF().Times(light.PositionalPDF(x.Point))
			patchReverse(k-2, light.DirectionalPDF(x.Normal, d).Scale(core.DirectionToArea(d, previous.Normal)))

		default:
			if x.Kind != core.ObjectInteraction {
				return nil, false
			}
			previous, next := interactions[i-1], interactions[i+1]
			toCamera := previous.Point.Subtract(x.Point)
			toLight := next.Point.Subtract(x.Point)
			wo, wi := toCamera.Normalize(), toLight.Normalize()

			bsdf := x.BSDF()
			vertices[i].Throughput = bsdf.Reflectance(wo, wi).Scale(core.GeometryTerm(toLight, x.Normal, next.Normal))
			vertices[i+1].Forward = bsdf.PDF(wo, wi, core.CameraSide).Scale(core.DirectionToArea(toLight, next.Normal))
			patchReverse(i-1, bsdf.PDF(wo, wi, core.LightSide).Scale(core.DirectionToArea(toCamera, previous.Normal)))
		}
	}

	return &Path{Vertices: vertices, Technique: technique, Pixel: pixel}, true
}
