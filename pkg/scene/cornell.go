package scene

import (
	"github.com/davidtemplin/mmlt/pkg/core"
	"github.com/davidtemplin/mmlt/pkg/geometry"
	"github.com/davidtemplin/mmlt/pkg/lights"
	"github.com/davidtemplin/mmlt/pkg/material"
)

// NewCornellScene creates a classic Cornell box with a ceiling light, a mirror
// sphere and a glass sphere
func NewCornellScene(width, height int) *Scene {
	var nextID uint64
	newID := func() uint64 {
		nextID++
		return nextID
	}

	camera := geometry.NewPinholeCamera(newID(), geometry.CameraConfig{
		Eye:    core.NewVec3(278, 278, -800), // Outside the box looking in
		LookAt: core.NewVec3(278, 278, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
		Width:  width,
		Height: height,
	})

	white := material.NewLambertian(material.NewSolidColor(core.NewSpectrum(0.73, 0.73, 0.73)))
	red := material.NewLambertian(material.NewSolidColor(core.NewSpectrum(0.65, 0.05, 0.05)))
	green := material.NewLambertian(material.NewSolidColor(core.NewSpectrum(0.12, 0.45, 0.15)))

	// Standard 555x555x555 box with an open front
	boxSize := 555.0

	walls := []struct {
		origin, u, v core.Vec3
		material     material.Material
	}{
		// Floor - XZ plane at y=0
		{core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white},
		// Ceiling - XZ plane at y=boxSize
		{core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white},
		// Back wall - XY plane at z=boxSize
		{core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), white},
		// Left wall - YZ plane at x=0
		{core.NewVec3(0, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0), red},
		// Right wall - YZ plane at x=boxSize
		{core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), green},
	}

	var objects []*SurfaceObject
	for _, wall := range walls {
		objects = append(objects, NewSurfaceObject(newID(), geometry.NewParallelogram(wall.origin, wall.u, wall.v), wall.material))
	}

	// Left sphere (mirror)
	objects = append(objects, NewSurfaceObject(newID(),
		geometry.NewSphere(core.NewVec3(185, 82.5, 169), 82.5),
		material.NewMetal(core.NewSpectrum(0.8, 0.8, 0.9)),
	))

	// Right sphere (glass)
	objects = append(objects, NewSurfaceObject(newID(),
		geometry.NewSphere(core.NewVec3(370, 90, 351), 90),
		material.NewDielectric(1.5, core.Fill(1)),
	))

	// Ceiling light slightly below the ceiling, facing down
	lightSize := 130.0
	lightOffset := (boxSize - lightSize) / 2.0
	light := lights.NewDiffuseAreaLight(newID(), geometry.NewParallelogram(
		core.NewVec3(lightOffset, boxSize-1, lightOffset),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
	), core.Fill(15.0))

	s, err := New(camera, []*lights.DiffuseAreaLight{light}, objects, UniformLightSampling)
	if err != nil {
		panic(err)
	}
	return s
}
