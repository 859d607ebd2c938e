// Package loaders reads external mesh formats into triangle lists.
package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/davidtemplin/mmlt/pkg/core"
	"github.com/davidtemplin/mmlt/pkg/geometry"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format      string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version     string // Usually "1.0"
	VertexCount int
	FaceCount   int
	VertexProps []PLYProperty
	FaceProps   []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// Mesh is an indexed triangle mesh
type Mesh struct {
	Vertices []core.Vec3
	Faces    [][3]int // Triangle vertex indices; polygons are fan-triangulated
}

// LoadPLY loads a PLY file
func LoadPLY(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	mesh, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read PLY file %s: %w", filename, err)
	}
	return mesh, nil
}

// ReadPLY parses PLY data in ASCII or binary form. Only vertex positions and
// face vertex indices are kept.
func ReadPLY(r io.Reader) (*Mesh, error) {
	reader := bufio.NewReader(r)
	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var elements elementReader
	switch header.Format {
	case "ascii":
		elements = newASCIIReader(reader)
	case "binary_little_endian":
		elements = &binaryReader{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		elements = &binaryReader{reader: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %s", header.Format)
	}

	mesh := &Mesh{
		Vertices: make([]core.Vec3, 0, header.VertexCount),
		Faces:    make([][3]int, 0, header.FaceCount),
	}

	for i := 0; i < header.VertexCount; i++ {
		var position [3]float64
		for _, prop := range header.VertexProps {
			if prop.IsList {
				if _, err := elements.list(prop); err != nil {
					return nil, fmt.Errorf("vertex %d: %w", i, err)
				}
				continue
			}
			value, err := elements.scalar(prop.Type)
			if err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i, err)
			}
			switch prop.Name {
			case "x":
				position[0] = value
			case "y":
				position[1] = value
			case "z":
				position[2] = value
			}
		}
		mesh.Vertices = append(mesh.Vertices, core.NewVec3(position[0], position[1], position[2]))
	}

	for i := 0; i < header.FaceCount; i++ {
		for _, prop := range header.FaceProps {
			if !prop.IsList {
				if _, err := elements.scalar(prop.Type); err != nil {
					return nil, fmt.Errorf("face %d: %w", i, err)
				}
				continue
			}
			values, err := elements.list(prop)
			if err != nil {
				return nil, fmt.Errorf("face %d: %w", i, err)
			}
			if prop.Name != "vertex_indices" && prop.Name != "vertex_index" {
				continue
			}
			if len(values) < 3 {
				return nil, fmt.Errorf("face %d has %d vertices", i, len(values))
			}
			indices := make([]int, len(values))
			for j, v := range values {
				index := int(v)
				if index < 0 || index >= len(mesh.Vertices) {
					return nil, fmt.Errorf("face %d references vertex %d of %d", i, index, len(mesh.Vertices))
				}
				indices[j] = index
			}
			for j := 1; j+1 < len(indices); j++ {
				mesh.Faces = append(mesh.Faces, [3]int{indices[0], indices[j], indices[j+1]})
			}
		}
	}

	return mesh, nil
}

// Triangles returns the non-degenerate triangles of the mesh
func (m *Mesh) Triangles() []*geometry.Triangle {
	triangles := make([]*geometry.Triangle, 0, len(m.Faces))
	for _, face := range m.Faces {
		triangle := geometry.NewTriangle(m.Vertices[face[0]], m.Vertices[face[1]], m.Vertices[face[2]])
		if triangle.Area() > 0 {
			triangles = append(triangles, triangle)
		}
	}
	return triangles
}

// Transform scales the mesh about the origin and then translates it
func (m *Mesh) Transform(scale float64, translate core.Vec3) {
	for i, v := range m.Vertices {
		m.Vertices[i] = v.Multiply(scale).Add(translate)
	}
}

// parsePLYHeader parses the PLY header, leaving the reader at the first element
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	var currentElement string

	magic, err := reader.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, errors.New("missing ply magic number")
	}

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("error reading header: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) >= 3 {
				header.Format = parts[1]
				header.Version = parts[2]
			}
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element definition: %s", line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}

			currentElement = parts[1]
			switch currentElement {
			case "vertex":
				header.VertexCount = count
			case "face":
				header.FaceCount = count
			default:
				if count > 0 {
					return nil, fmt.Errorf("unsupported element %q", currentElement)
				}
			}
		case "property":
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %w", err)
			}

			switch currentElement {
			case "vertex":
				header.VertexProps = append(header.VertexProps, prop)
			case "face":
				header.FaceProps = append(header.FaceProps, prop)
			}
		}
	}

	return header, nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, errors.New("invalid property definition")
	}

	prop := PLYProperty{}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, errors.New("invalid list property definition")
		}
		prop.IsList = true
		prop.ListType = parts[1]
		prop.DataType = parts[2]
		prop.Name = parts[3]
	} else {
		prop.Type = parts[0]
		prop.Name = parts[1]
	}

	return prop, nil
}

// elementReader decodes property values in the body of a PLY file
type elementReader interface {
	scalar(dataType string) (float64, error)
	list(prop PLYProperty) ([]float64, error)
}

// binaryReader reads binary PLY bodies in either byte order
type binaryReader struct {
	reader *bufio.Reader
	order  binary.ByteOrder
}

func (b *binaryReader) scalar(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
	var buf [8]byte
	if _, err := io.ReadFull(b.reader, buf[:size]); err != nil {
		return 0, err
	}

	data := buf[:size]
	switch dataType {
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(data))), nil
	case "double", "float64":
		return math.Float64frombits(b.order.Uint64(data)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(data))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(data)), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(data))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(data)), nil
	case "char", "int8":
		return float64(int8(data[0])), nil
	default:
		return float64(data[0]), nil
	}
}

func (b *binaryReader) list(prop PLYProperty) ([]float64, error) {
	count, err := b.scalar(prop.ListType)
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("negative list length %g", count)
	}
	values := make([]float64, int(count))
	for i := range values {
		if values[i], err = b.scalar(prop.DataType); err != nil {
			return nil, err
		}
	}
	return values, nil
}

// asciiReader reads whitespace separated PLY bodies
type asciiReader struct {
	scanner *bufio.Scanner
}

func newASCIIReader(reader *bufio.Reader) *asciiReader {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanWords)
	return &asciiReader{scanner: scanner}
}

func (a *asciiReader) scalar(dataType string) (float64, error) {
	if getTypeSize(dataType) == 0 {
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseFloat(a.scanner.Text(), 64)
}

func (a *asciiReader) list(prop PLYProperty) ([]float64, error) {
	count, err := a.scalar(prop.ListType)
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("negative list length %g", count)
	}
	values := make([]float64, int(count))
	for i := range values {
		if values[i], err = a.scalar(prop.DataType); err != nil {
			return nil, err
		}
	}
	return values, nil
}

// getTypeSize returns the size in bytes of a PLY data type, or 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "double", "float64":
		return 8
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 0
	}
}
