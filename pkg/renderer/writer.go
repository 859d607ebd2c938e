package renderer

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"
)

// Write encodes the image in the format named by the path extension
// (.pfm, .png, .tif or .tiff)
func Write(img *Image, path string) error {
	var encode func(io.Writer, *Image) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pfm":
		encode = WritePFM
	case ".png":
		encode = WritePNG
	case ".tif", ".tiff":
		encode = WriteTIFF
	default:
		return fmt.Errorf("unsupported image format %q", ext)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := encode(w, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}

// WritePFM writes a binary little-endian color PFM. Rows run bottom to top.
func WritePFM(w io.Writer, img *Image) error {
	if _, err := fmt.Fprintf(w, "PF\n%d %d\n-1.0\n", img.width, img.height); err != nil {
		return err
	}

	row := make([]byte, img.width*3*4)
	for y := img.height - 1; y >= 0; y-- {
		for x := 0; x < img.width; x++ {
			p := img.At(x, y)
			offset := x * 12
			binary.LittleEndian.PutUint32(row[offset:], math.Float32bits(float32(p.R)))
			binary.LittleEndian.PutUint32(row[offset+4:], math.Float32bits(float32(p.G)))
			binary.LittleEndian.PutUint32(row[offset+8:], math.Float32bits(float32(p.B)))
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WritePNG writes a gamma corrected 8-bit PNG
func WritePNG(w io.Writer, img *Image) error {
	return png.Encode(w, img.RGBA())
}

// WriteTIFF writes a gamma corrected 8-bit TIFF
func WriteTIFF(w io.Writer, img *Image) error {
	return tiff.Encode(w, img.RGBA(), &tiff.Options{Compression: tiff.Deflate})
}
