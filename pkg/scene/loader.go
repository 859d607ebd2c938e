package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/davidtemplin/mmlt/pkg/core"
	"github.com/davidtemplin/mmlt/pkg/geometry"
	"github.com/davidtemplin/mmlt/pkg/lights"
	"github.com/davidtemplin/mmlt/pkg/loaders"
	"github.com/davidtemplin/mmlt/pkg/material"
)

// Every polymorphic node names its variant in a "type" field and is resolved
// by a factory switch.

type sceneConfig struct {
	Camera        yaml.Node   `yaml:"camera"`
	LightSampling string      `yaml:"light_sampling"`
	Lights        []yaml.Node `yaml:"lights"`
	Objects       []yaml.Node `yaml:"objects"`
}

type vectorConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v vectorConfig) vec3() core.Vec3 {
	return core.NewVec3(v.X, v.Y, v.Z)
}

type spectrumConfig struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
}

func (s spectrumConfig) spectrum() core.Spectrum {
	return core.NewSpectrum(s.R, s.G, s.B)
}

type pinholeCameraConfig struct {
	Eye    vectorConfig  `yaml:"eye"`
	LookAt vectorConfig  `yaml:"look_at"`
	Up     *vectorConfig `yaml:"up"`
	FOV    float64       `yaml:"fov"`
	Width  int           `yaml:"width"`
	Height int           `yaml:"height"`
}

type sphereConfig struct {
	Center vectorConfig `yaml:"center"`
	Radius float64      `yaml:"radius"`
}

type parallelogramConfig struct {
	Origin vectorConfig `yaml:"origin"`
	U      vectorConfig `yaml:"u"`
	V      vectorConfig `yaml:"v"`
}

type triangleConfig struct {
	V0 vectorConfig `yaml:"v0"`
	V1 vectorConfig `yaml:"v1"`
	V2 vectorConfig `yaml:"v2"`
}

type constantTextureConfig struct {
	Spectrum spectrumConfig `yaml:"spectrum"`
}

type checkerTextureConfig struct {
	Even  spectrumConfig `yaml:"even"`
	Odd   spectrumConfig `yaml:"odd"`
	Scale float64        `yaml:"scale"`
}

type matteMaterialConfig struct {
	Texture yaml.Node `yaml:"texture"`
}

type mirrorMaterialConfig struct {
	Reflectance spectrumConfig `yaml:"reflectance"`
}

type glassMaterialConfig struct {
	Index       float64         `yaml:"index"`
	Reflectance *spectrumConfig `yaml:"reflectance"`
}

type diffuseAreaLightConfig struct {
	Shape    yaml.Node      `yaml:"shape"`
	Radiance spectrumConfig `yaml:"radiance"`
}

type surfaceObjectConfig struct {
	Shape    yaml.Node `yaml:"shape"`
	Material yaml.Node `yaml:"material"`
}

type meshObjectConfig struct {
	Path      string       `yaml:"path"` // PLY file, relative to the scene file
	Scale     *float64     `yaml:"scale"`
	Translate vectorConfig `yaml:"translate"`
	Material  yaml.Node    `yaml:"material"`
}

// Load reads a YAML scene file
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	s, err := parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load scene %s: %w", path, err)
	}
	return s, nil
}

// Parse builds a scene from YAML. Relative mesh paths resolve against the
// working directory.
func Parse(data []byte) (*Scene, error) {
	return parse(data, "")
}

func parse(data []byte, baseDir string) (*Scene, error) {
	var config sceneConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid scene YAML: %w", err)
	}

	// Identities are unique across the camera, lights and objects
	var nextID uint64
	newID := func() uint64 {
		nextID++
		return nextID
	}

	camera, err := buildCamera(&config.Camera, newID())
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	lightList := make([]*lights.DiffuseAreaLight, 0, len(config.Lights))
	for i := range config.Lights {
		light, err := buildLight(&config.Lights[i], newID())
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		lightList = append(lightList, light)
	}

	objects := make([]*SurfaceObject, 0, len(config.Objects))
	for i := range config.Objects {
		built, err := buildObjects(&config.Objects[i], newID, baseDir)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		objects = append(objects, built...)
	}

	return New(camera, lightList, objects, LightSampling(config.LightSampling))
}

// variant decodes the "type" tag of a polymorphic node
func variant(node *yaml.Node) (string, error) {
	if node.Kind == 0 {
		return "", errors.New("missing definition")
	}
	var tag struct {
		Type string `yaml:"type"`
	}
	if err := node.Decode(&tag); err != nil {
		return "", err
	}
	if tag.Type == "" {
		return "", errors.New("missing type")
	}
	return tag.Type, nil
}

func buildCamera(node *yaml.Node, id uint64) (*geometry.PinholeCamera, error) {
	kind, err := variant(node)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "pinhole":
		var c pinholeCameraConfig
		if err := node.Decode(&c); err != nil {
			return nil, err
		}
		if c.Width <= 0 || c.Height <= 0 {
			return nil, fmt.Errorf("invalid resolution %dx%d", c.Width, c.Height)
		}
		if c.FOV <= 0 || c.FOV >= 180 {
			return nil, fmt.Errorf("field of view %g outside (0, 180)", c.FOV)
		}
		up := core.NewVec3(0, 1, 0)
		if c.Up != nil {
			up = c.Up.vec3()
		}
		forward := c.LookAt.vec3().Subtract(c.Eye.vec3())
		if forward.IsZero() || forward.Cross(up).IsZero() {
			return nil, errors.New("degenerate view direction")
		}
		return geometry.NewPinholeCamera(id, geometry.CameraConfig{
			Eye:    c.Eye.vec3(),
			LookAt: c.LookAt.vec3(),
			Up:     up,
			VFov:   c.FOV,
			Width:  c.Width,
			Height: c.Height,
		}), nil
	default:
		return nil, fmt.Errorf("unknown camera type %q", kind)
	}
}

func buildShape(node *yaml.Node) (geometry.Shape, error) {
	kind, err := variant(node)
	if err != nil {
		return nil, fmt.Errorf("shape: %w", err)
	}
	switch kind {
	case "sphere":
		var c sphereConfig
		if err := node.Decode(&c); err != nil {
			return nil, err
		}
		if c.Radius <= 0 {
			return nil, fmt.Errorf("sphere radius %g must be positive", c.Radius)
		}
		return geometry.NewSphere(c.Center.vec3(), c.Radius), nil
	case "parallelogram":
		var c parallelogramConfig
		if err := node.Decode(&c); err != nil {
			return nil, err
		}
		if c.U.vec3().Cross(c.V.vec3()).IsZero() {
			return nil, errors.New("parallelogram edges are parallel")
		}
		return geometry.NewParallelogram(c.Origin.vec3(), c.U.vec3(), c.V.vec3()), nil
	case "triangle":
		var c triangleConfig
		if err := node.Decode(&c); err != nil {
			return nil, err
		}
		if c.V1.vec3().Subtract(c.V0.vec3()).Cross(c.V2.vec3().Subtract(c.V0.vec3())).IsZero() {
			return nil, errors.New("triangle is degenerate")
		}
		return geometry.NewTriangle(c.V0.vec3(), c.V1.vec3(), c.V2.vec3()), nil
	default:
		return nil, fmt.Errorf("unknown shape type %q", kind)
	}
}

func buildTexture(node *yaml.Node) (material.Texture, error) {
	kind, err := variant(node)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	switch kind {
	case "constant":
		var c constantTextureConfig
		if err := node.Decode(&c); err != nil {
			return nil, err
		}
		return material.NewSolidColor(c.Spectrum.spectrum()), nil
	case "checker":
		var c checkerTextureConfig
		if err := node.Decode(&c); err != nil {
			return nil, err
		}
		if c.Scale <= 0 {
			return nil, fmt.Errorf("checker scale %g must be positive", c.Scale)
		}
		return material.NewCheckerTexture(c.Even.spectrum(), c.Odd.spectrum(), c.Scale), nil
	default:
		return nil, fmt.Errorf("unknown texture type %q", kind)
	}
}

func buildMaterial(node *yaml.Node) (material.Material, error) {
	kind, err := variant(node)
	if err != nil {
		return nil, fmt.Errorf("material: %w", err)
	}
	switch kind {
	case "matte":
		var c matteMaterialConfig
		if err := node.Decode(&c); err != nil {
			return nil, err
		}
		texture, err := buildTexture(&c.Texture)
		if err != nil {
			return nil, err
		}
		return material.NewLambertian(texture), nil
	case "mirror":
		var c mirrorMaterialConfig
		if err := node.Decode(&c); err != nil {
			return nil, err
		}
		return material.NewMetal(c.Reflectance.spectrum()), nil
	case "glass":
		var c glassMaterialConfig
		if err := node.Decode(&c); err != nil {
			return nil, err
		}
		if c.Index <= 0 {
			return nil, fmt.Errorf("glass index %g must be positive", c.Index)
		}
		tint := core.Fill(1)
		if c.Reflectance != nil {
			tint = c.Reflectance.spectrum()
		}
		return material.NewDielectric(c.Index, tint), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", kind)
	}
}

func buildLight(node *yaml.Node, id uint64) (*lights.DiffuseAreaLight, error) {
	kind, err := variant(node)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "diffuse_area":
		var c diffuseAreaLightConfig
		if err := node.Decode(&c); err != nil {
			return nil, err
		}
		shape, err := buildShape(&c.Shape)
		if err != nil {
			return nil, err
		}
		return lights.NewDiffuseAreaLight(id, shape, c.Radiance.spectrum()), nil
	default:
		return nil, fmt.Errorf("unknown light type %q", kind)
	}
}

// buildObjects returns one object per surface. A mesh yields one object per
// triangle sharing a single material.
func buildObjects(node *yaml.Node, newID func() uint64, baseDir string) ([]*SurfaceObject, error) {
	kind, err := variant(node)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "surface":
		var c surfaceObjectConfig
		if err := node.Decode(&c); err != nil {
			return nil, err
		}
		shape, err := buildShape(&c.Shape)
		if err != nil {
			return nil, err
		}
		mat, err := buildMaterial(&c.Material)
		if err != nil {
			return nil, err
		}
		return []*SurfaceObject{NewSurfaceObject(newID(), shape, mat)}, nil
	case "mesh":
		var c meshObjectConfig
		if err := node.Decode(&c); err != nil {
			return nil, err
		}
		if c.Path == "" {
			return nil, errors.New("mesh has no path")
		}
		mat, err := buildMaterial(&c.Material)
		if err != nil {
			return nil, err
		}
		path := c.Path
		if !filepath.IsAbs(path) && baseDir != "" {
			path = filepath.Join(baseDir, path)
		}
		mesh, err := loaders.LoadPLY(path)
		if err != nil {
			return nil, err
		}
		scale := 1.0
		if c.Scale != nil {
			scale = *c.Scale
		}
		if scale <= 0 {
			return nil, fmt.Errorf("invalid mesh scale %g", scale)
		}
		mesh.Transform(scale, c.Translate.vec3())

		triangles := mesh.Triangles()
		if len(triangles) == 0 {
			return nil, errors.New("mesh has no triangles")
		}
		objects := make([]*SurfaceObject, len(triangles))
		for i, triangle := range triangles {
			objects[i] = NewSurfaceObject(newID(), triangle, mat)
		}
		return objects, nil
	default:
		return nil, fmt.Errorf("unknown object type %q", kind)
	}
}
