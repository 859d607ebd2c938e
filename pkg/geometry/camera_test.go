package geometry

import (
	"math"
	"testing"

	"github.com/davidtemplin/mmlt/pkg/core"
	"github.com/davidtemplin/mmlt/pkg/sampler"
)

func newTestCamera() *PinholeCamera {
	return NewPinholeCamera(1, CameraConfig{
		Eye:    core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   90,
		Width:  100,
		Height: 100,
	})
}

func TestPinholeCamera_SampleMapsToRaster(t *testing.T) {
	camera := newTestCamera()

	tests := []struct {
		name     string
		u, v     float64
		expected core.Pixel
	}{
		{"top left quadrant", 0.255, 0.255, core.Pixel{X: 25, Y: 25}},
		{"bottom right quadrant", 0.755, 0.905, core.Pixel{X: 75, Y: 90}},
		{"center", 0.505, 0.505, core.Pixel{X: 50, Y: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interaction := camera.SampleInteraction(sampler.NewSequenceSampler(tt.u, tt.v))
			if !interaction.Sampled || interaction.Kind != core.CameraInteraction {
				t.Fatal("Expected a sampled camera interaction")
			}
			pixel, ok := camera.RasterPosition(interaction.Direction)
			if !ok {
				t.Fatal("Expected sampled direction to be inside the frame")
			}
			if pixel != tt.expected {
				t.Errorf("Expected pixel %v, got %v", tt.expected, pixel)
			}
		})
	}
}

func TestPinholeCamera_RasterOrientation(t *testing.T) {
	camera := newTestCamera()

	// +X is right and +Y is up; raster rows grow downward
	pixel, ok := camera.RasterPosition(core.NewVec3(0.5, 0.5, -1))
	if !ok {
		t.Fatal("Expected direction inside the frame")
	}
	if pixel.X < 50 || pixel.Y >= 50 {
		t.Errorf("Expected upper right pixel, got %v", pixel)
	}

	if _, ok := camera.RasterPosition(core.NewVec3(0, 0, 1)); ok {
		t.Error("Expected direction behind the camera to be rejected")
	}
	if _, ok := camera.RasterPosition(core.NewVec3(2, 0, -1)); ok {
		t.Error("Expected direction outside the field of view to be rejected")
	}
}

func TestPinholeCamera_ImportanceAndDensity(t *testing.T) {
	camera := newTestCamera()
	eye := core.NewVec3(0, 0, 0)

	// Film spans [-1, 1]² at unit distance, so A = 4
	center := camera.Importance(eye, core.NewVec3(0, 0, -1))
	if math.Abs(center.R-0.25) > 1e-9 {
		t.Errorf("Expected center importance 0.25, got %f", center.R)
	}

	pdf := camera.DirectionalPDF(core.NewVec3(0, 0, -1))
	if pdf.Delta || math.Abs(pdf.Value-0.25) > 1e-9 {
		t.Errorf("Expected continuous density 0.25, got %+v", pdf)
	}

	// W / p = 1 / cos θ everywhere in the frame
	d := core.NewVec3(0.6, -0.3, -1)
	cosTheta := d.Normalize().Dot(core.NewVec3(0, 0, -1))
	ratio := camera.Importance(eye, d).R / camera.DirectionalPDF(d).Value
	if math.Abs(ratio-1/cosTheta) > 1e-9 {
		t.Errorf("Expected W/p = %f, got %f", 1/cosTheta, ratio)
	}

	if !camera.PositionalPDF(eye).Delta {
		t.Error("Expected a delta positional density")
	}
	if !camera.Importance(eye, core.NewVec3(0, 0, 1)).IsBlack() {
		t.Error("Expected zero importance behind the camera")
	}
}

func TestPinholeCamera_Intersect(t *testing.T) {
	camera := newTestCamera()

	tests := []struct {
		name     string
		origin   core.Vec3
		dir      core.Vec3
		expected bool
	}{
		{"aimed at eye from the front", core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1), true},
		{"aimed at eye off axis", core.NewVec3(1, 1, -3), core.NewVec3(-1, -1, 3), true},
		{"slightly off the eye", core.NewVec3(0, 0, -5), core.NewVec3(0.001, 0, 1), false},
		{"aimed from behind", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), false},
		{"eye beyond tMax", core.NewVec3(0, 0, -2000), core.NewVec3(0, 0, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := camera.Intersect(core.NewRay(tt.origin, tt.dir), 0.001, 1000)
			if ok != tt.expected {
				t.Fatalf("Expected hit=%v, got %v", tt.expected, ok)
			}
			if ok {
				if hit.Kind != core.CameraInteraction || hit.Sampled {
					t.Errorf("Expected an unsampled camera interaction, got %+v", hit)
				}
				if math.Abs(hit.Distance-tt.origin.Length()) > 1e-9 {
					t.Errorf("Expected distance %f, got %f", tt.origin.Length(), hit.Distance)
				}
			}
		})
	}
}
