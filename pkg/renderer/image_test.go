package renderer

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"

	"github.com/davidtemplin/mmlt/pkg/core"
)

func TestImage_ContributeScaleMerge(t *testing.T) {
	img := NewImage(4, 3)
	img.Contribute(core.NewSpectrum(1, 2, 3), core.Pixel{X: 1, Y: 2})
	img.Contribute(core.NewSpectrum(1, 0, 0), core.Pixel{X: 1, Y: 2})
	img.Contribute(core.NewSpectrum(math.NaN(), 0, 0), core.Pixel{X: 0, Y: 0})
	img.Contribute(core.NewSpectrum(math.Inf(1), 0, 0), core.Pixel{X: 0, Y: 0})

	assert.Equal(t, core.NewSpectrum(2, 2, 3), img.At(1, 2))
	assert.Equal(t, core.Black(), img.At(0, 0))

	img.Scale(0.5)
	assert.Equal(t, core.NewSpectrum(1, 1, 1.5), img.At(1, 2))

	other := NewImage(4, 3)
	other.Contribute(core.Fill(1), core.Pixel{X: 1, Y: 2})
	img.Merge(other)
	assert.Equal(t, core.NewSpectrum(2, 2, 2.5), img.At(1, 2))

	assert.Panics(t, func() { img.Merge(NewImage(3, 4)) })
	assert.Panics(t, func() { img.Contribute(core.Fill(1), core.Pixel{X: 4, Y: 0}) })
	assert.Panics(t, func() { NewImage(0, 1) })
}

func TestImage_RGBA(t *testing.T) {
	img := NewImage(2, 1)
	img.Contribute(core.Fill(1), core.Pixel{X: 0, Y: 0})
	img.Contribute(core.NewSpectrum(4, 0.25, -1), core.Pixel{X: 1, Y: 0})

	rgba := img.RGBA()
	white := rgba.RGBAAt(0, 0)
	assert.Equal(t, uint8(255), white.R)
	assert.Equal(t, uint8(255), white.A)

	mixed := rgba.RGBAAt(1, 0)
	assert.Equal(t, uint8(255), mixed.R, "clamped")
	assert.Equal(t, uint8(math.Round(255*math.Pow(0.25, 1/2.2))), mixed.G)
	assert.Equal(t, uint8(0), mixed.B)
}

func TestWritePFM_Layout(t *testing.T) {
	img := NewImage(2, 2)
	img.Contribute(core.NewSpectrum(1, 2, 3), core.Pixel{X: 0, Y: 0}) // Top left
	img.Contribute(core.NewSpectrum(4, 5, 6), core.Pixel{X: 1, Y: 1}) // Bottom right

	var buf bytes.Buffer
	require.NoError(t, WritePFM(&buf, img))

	header := "PF\n2 2\n-1.0\n"
	data := buf.Bytes()
	require.Equal(t, len(header)+2*2*3*4, len(data))
	assert.Equal(t, header, string(data[:len(header)]))

	floats := make([]float32, 12)
	require.NoError(t, binary.Read(bytes.NewReader(data[len(header):]), binary.LittleEndian, floats))

	// First row written is the bottom row
	assert.Equal(t, []float32{0, 0, 0, 4, 5, 6}, floats[:6])
	assert.Equal(t, []float32{1, 2, 3, 0, 0, 0}, floats[6:])
}

func TestWrite_Formats(t *testing.T) {
	img := NewImage(3, 2)
	img.Contribute(core.Fill(0.5), core.Pixel{X: 2, Y: 1})
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "out.png")
	require.NoError(t, Write(img, pngPath))
	file, err := os.Open(pngPath)
	require.NoError(t, err)
	decoded, err := png.Decode(file)
	file.Close()
	require.NoError(t, err)
	assert.Equal(t, 3, decoded.Bounds().Dx())
	assert.Equal(t, 2, decoded.Bounds().Dy())

	tiffPath := filepath.Join(dir, "out.tiff")
	require.NoError(t, Write(img, tiffPath))
	file, err = os.Open(tiffPath)
	require.NoError(t, err)
	decoded, err = tiff.Decode(file)
	file.Close()
	require.NoError(t, err)
	r, g, b, _ := decoded.At(2, 1).RGBA()
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
	assert.NotZero(t, r)

	pfmPath := filepath.Join(dir, "out.PFM")
	require.NoError(t, Write(img, pfmPath))
	info, err := os.Stat(pfmPath)
	require.NoError(t, err)
	assert.Equal(t, int64(len("PF\n3 2\n-1.0\n")+3*2*12), info.Size())

	err = Write(img, filepath.Join(dir, "out.jpg"))
	assert.ErrorContains(t, err, "unsupported image format")
}

func TestImage_AverageLuminance(t *testing.T) {
	img := NewImage(2, 2)
	img.Contribute(core.Fill(4), core.Pixel{X: 0, Y: 1})
	assert.InDelta(t, 1.0, img.AverageLuminance(), 1e-9)
}
