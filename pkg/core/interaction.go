package core

// InteractionKind tags the variant of an Interaction
type InteractionKind int

const (
	CameraInteraction InteractionKind = iota
	LightInteraction
	ObjectInteraction
)

func (k InteractionKind) String() string {
	switch k {
	case CameraInteraction:
		return "camera"
	case LightInteraction:
		return "light"
	case ObjectInteraction:
		return "object"
	default:
		return "unknown"
	}
}

// Interaction is a point where a path touches the camera, a light or an object
type Interaction struct {
	Kind InteractionKind
	Geometry
	Distance float64 // Distance along the ray that produced the hit; 0 for sampled endpoints
	Sampled  bool    // Produced by SampleInteraction; Direction is the sampled emission direction

	Camera Camera
	Light  Light
	Object Object

	bsdf BSDF
}

// NewCameraInteraction creates a camera interaction
func NewCameraInteraction(camera Camera, geometry Geometry, distance float64) *Interaction {
	return &Interaction{Kind: CameraInteraction, Geometry: geometry, Distance: distance, Camera: camera}
}

// NewLightInteraction creates a light interaction
func NewLightInteraction(light Light, geometry Geometry, distance float64) *Interaction {
	return &Interaction{Kind: LightInteraction, Geometry: geometry, Distance: distance, Light: light}
}

// NewObjectInteraction creates an object interaction
func NewObjectInteraction(object Object, geometry Geometry, distance float64) *Interaction {
	return &Interaction{Kind: ObjectInteraction, Geometry: geometry, Distance: distance, Object: object}
}

// ID returns the identity of the camera, light or object that was hit
func (i *Interaction) ID() uint64 {
	switch i.Kind {
	case CameraInteraction:
		return i.Camera.ID()
	case LightInteraction:
		return i.Light.ID()
	default:
		return i.Object.ID()
	}
}

// BSDF returns the scattering function of an object interaction, computing it on first use
func (i *Interaction) BSDF() BSDF {
	if i.Kind != ObjectInteraction {
		return nil
	}
	if i.bsdf == nil {
		i.bsdf = i.Object.ComputeBSDF(i.Geometry)
	}
	return i.bsdf
}

// GenerateRay returns the next ray of a subpath leaving this interaction.
// Sampled endpoints emit along their sampled direction; objects sample their
// BSDF; endpoints reached by a ray terminate the subpath.
func (i *Interaction) GenerateRay(side PathSide, sampler Sampler) (Ray, bool) {
	if i.Kind != ObjectInteraction {
		if !i.Sampled {
			return Ray{}, false
		}
		return NewRay(i.Point, i.Direction), true
	}
	direction, ok := i.BSDF().Sample(i.Direction.Negate(), side, sampler)
	if !ok {
		return Ray{}, false
	}
	return NewRay(i.Point, direction), true
}

// IsSpecular reports whether the interaction can only be reached through a Dirac distribution
func (i *Interaction) IsSpecular() bool {
	switch i.Kind {
	case CameraInteraction:
		return i.Camera.PositionalPDF(i.Point).Delta
	case LightInteraction:
		return i.Light.PositionalPDF(i.Point).Delta
	default:
		return i.BSDF().IsDelta()
	}
}
