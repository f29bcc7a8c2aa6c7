package renderer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrEdgeIndex          = errors.New("edge references a vertex out of range")
	ErrShortEdge          = errors.New("edge needs at least two vertices")
	ErrUnknownModelFormat = errors.New("unknown model format")
)

// Model is a wireframe: vertices plus edges, where every edge is a polyline
// of indices into Vertices.
type Model struct {
	Name     string    `yaml:"name"`
	Vertices []Vector3 `yaml:"vertices"`
	Edges    [][]int   `yaml:"edges"`
}

func (m *Model) Validate() error {
	for i, edge := range m.Edges {
		if len(edge) < 2 {
			return fmt.Errorf("edge %d: %w", i, ErrShortEdge)
		}
		for _, idx := range edge {
			if idx < 0 || idx >= len(m.Vertices) {
				return fmt.Errorf("edge %d: index %d of %d vertices: %w", i, idx, len(m.Vertices), ErrEdgeIndex)
			}
		}
	}
	return nil
}

// AddVertex appends v and returns its index.
func (m *Model) AddVertex(v Vector3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

func (m *Model) AddEdge(indices ...int) {
	edge := make([]int, len(indices))
	copy(edge, indices)
	m.Edges = append(m.Edges, edge)
}

// Merge appends other's vertices and edges, re-indexing the edges.
func (m *Model) Merge(other *Model) {
	offset := len(m.Vertices)
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, edge := range other.Edges {
		shifted := make([]int, len(edge))
		for i, idx := range edge {
			shifted[i] = idx + offset
		}
		m.Edges = append(m.Edges, shifted)
	}
}

// Translate moves every vertex by offset.
func (m *Model) Translate(offset Vector3) {
	for i := range m.Vertices {
		m.Vertices[i] = Sum(m.Vertices[i], offset)
	}
}

// UnmarshalYAML accepts either a [x, y, z] sequence or an {x, y, z} mapping.
func (v *Vector3) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var xyz []float64
		if err := node.Decode(&xyz); err != nil {
			return err
		}
		if len(xyz) != 3 {
			return fmt.Errorf("line %d: vector needs 3 components, got %d", node.Line, len(xyz))
		}
		*v = NewVector3(xyz[0], xyz[1], xyz[2])
		return nil
	case yaml.MappingNode:
		var xyz struct {
			X float64 `yaml:"x"`
			Y float64 `yaml:"y"`
			Z float64 `yaml:"z"`
		}
		if err := node.Decode(&xyz); err != nil {
			return err
		}
		*v = NewVector3(xyz.X, xyz.Y, xyz.Z)
		return nil
	}
	return fmt.Errorf("line %d: cannot decode vector from YAML node kind %v", node.Line, node.Kind)
}

// LoadModelYAML reads a model of the form
//
//	name: cube
//	vertices: [[0, 0, 0], [1, 0, 0]]
//	edges: [[0, 1]]
func LoadModelYAML(r io.Reader) (*Model, error) {
	var m Model
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode YAML model: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

type plyElement struct {
	name       string
	count      int
	properties []string
}

// LoadModelPLY reads an ASCII PLY file. Faces become closed polylines and
// edge elements become two point polylines. Unknown elements are skipped.
func LoadModelPLY(r io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "ply" {
		return nil, fmt.Errorf("missing ply magic: %w", ErrUnknownModelFormat)
	}

	var elements []*plyElement
	var current *plyElement
	headerDone := false

	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 2 || parts[1] != "ascii" {
				return nil, fmt.Errorf("only ascii PLY is supported: %w", ErrUnknownModelFormat)
			}
		case "element":
			if len(parts) != 3 {
				return nil, fmt.Errorf("malformed element line %q", scanner.Text())
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("bad element count %q", parts[2])
			}
			current = &plyElement{name: parts[1], count: count}
			elements = append(elements, current)
		case "property":
			if current != nil {
				current.properties = append(current.properties, parts[len(parts)-1])
			}
		case "end_header":
			headerDone = true
		}
		if headerDone {
			break
		}
	}
	if !headerDone {
		return nil, fmt.Errorf("unexpected end of file in PLY header")
	}

	m := &Model{}
	for _, el := range elements {
		for i := 0; i < el.count; i++ {
			if !scanner.Scan() {
				return nil, fmt.Errorf("unexpected end of file while reading %s %d", el.name, i)
			}
			parts := strings.Fields(scanner.Text())

			switch el.name {
			case "vertex":
				v, err := parsePLYVertex(el, parts)
				if err != nil {
					return nil, fmt.Errorf("vertex %d: %w", i, err)
				}
				m.AddVertex(v)
			case "face":
				indices, err := parseInts(parts)
				if err != nil || len(indices) == 0 || indices[0] < 2 || len(indices) < indices[0]+1 {
					return nil, fmt.Errorf("invalid face data in face %d", i)
				}
				n := indices[0]
				loop := append(indices[1:n+1:n+1], indices[1])
				m.AddEdge(loop...)
			case "edge":
				indices, err := parseInts(parts)
				if err != nil || len(indices) < 2 {
					return nil, fmt.Errorf("invalid edge data in edge %d", i)
				}
				m.AddEdge(indices[0], indices[1])
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from PLY source: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func parsePLYVertex(el *plyElement, parts []string) (Vector3, error) {
	xi, yi, zi := 0, 1, 2
	for i, p := range el.properties {
		switch p {
		case "x":
			xi = i
		case "y":
			yi = i
		case "z":
			zi = i
		}
	}
	var xyz [3]float64
	for k, idx := range [3]int{xi, yi, zi} {
		if idx >= len(parts) {
			return Vector3{}, fmt.Errorf("expected at least %d fields, got %d", idx+1, len(parts))
		}
		f, err := strconv.ParseFloat(parts[idx], 64)
		if err != nil {
			return Vector3{}, fmt.Errorf("could not parse float value '%s': %w", parts[idx], err)
		}
		xyz[k] = f
	}
	return NewVector3(xyz[0], xyz[1], xyz[2]), nil
}

func parseInts(parts []string) ([]int, error) {
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// LoadModelDXF reads the 3DFACE entities of a simplified ASCII DXF file.
// Each face becomes a closed polyline; a face whose fourth corner repeats
// the third is a triangle.
func LoadModelDXF(r io.Reader) (*Model, error) {
	m := &Model{}
	scanner := bufio.NewScanner(r)

	readFloatLine := func() (float64, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(scanner.Text()), 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse float value '%s': %w", scanner.Text(), err)
		}
		return val, nil
	}

	face := 0
	for scanner.Scan() {
		if !strings.HasPrefix(strings.TrimSpace(scanner.Text()), "3DFACE") {
			continue
		}

		// layer group code, layer name, first x group code
		for i := 0; i < 3; i++ {
			if !scanner.Scan() {
				return nil, fmt.Errorf("unexpected end of file while parsing 3DFACE header")
			}
		}

		var corners [4]Vector3
		for c := range corners {
			var xyz [3]float64
			for k, axis := range [3]string{"X", "Y", "Z"} {
				f, err := readFloatLine()
				if err != nil {
					return nil, fmt.Errorf("face %d: error reading %s coordinate for vertex %d: %w", face, axis, c, err)
				}
				xyz[k] = f
				// next group code
				scanner.Scan()
			}
			corners[c] = NewVector3(xyz[0], xyz[1], xyz[2])
		}

		n := len(corners)
		if corners[3] == corners[2] {
			n = 3
		}
		loop := make([]int, 0, n+1)
		for _, p := range corners[:n] {
			loop = append(loop, m.AddVertex(p))
		}
		m.AddEdge(append(loop, loop[0])...)
		face++
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from DXF source: %w", err)
	}
	return m, nil
}

// LoadModelFile picks a loader from the file extension.
func LoadModelFile(fileName string) (*Model, error) {
	var load func(io.Reader) (*Model, error)
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".yaml", ".yml":
		load = LoadModelYAML
	case ".ply":
		load = LoadModelPLY
	case ".dxf":
		load = LoadModelDXF
	default:
		return nil, fmt.Errorf("%s: %w", fileName, ErrUnknownModelFormat)
	}

	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open model file %s: %w", fileName, err)
	}
	defer file.Close()

	m, err := load(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing model file %s: %w", fileName, err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	}
	return m, nil
}

// NewCubeModel is an axis aligned cube of the given edge length centred on
// the origin.
func NewCubeModel(size float64) *Model {
	s := size / 2
	m := &Model{Name: "cube"}
	for _, z := range []float64{-s, s} {
		m.AddVertex(NewVector3(-s, -s, z))
		m.AddVertex(NewVector3(s, -s, z))
		m.AddVertex(NewVector3(s, s, z))
		m.AddVertex(NewVector3(-s, s, z))
	}
	m.AddEdge(0, 1, 2, 3, 0) // bottom
	m.AddEdge(4, 5, 6, 7, 4) // top
	for i := 0; i < 4; i++ {
		m.AddEdge(i, i+4)
	}
	return m
}

// NewUVSphereModel is a wire sphere of parallels and meridians. The poles
// are shared vertices.
func NewUVSphereModel(radius float64, slices, stacks int) *Model {
	if slices < 3 {
		slices = 3
	}
	if stacks < 2 {
		stacks = 2
	}

	m := &Model{Name: "sphere"}
	south := m.AddVertex(NewVector3(0, 0, -radius))

	rings := make([][]int, 0, stacks-1)
	for j := 1; j < stacks; j++ {
		phi := math.Pi*float64(j)/float64(stacks) - math.Pi/2
		ring := make([]int, slices)
		for i := 0; i < slices; i++ {
			theta := 2 * math.Pi * float64(i) / float64(slices)
			ring[i] = m.AddVertex(NewVector3(
				radius*math.Cos(phi)*math.Cos(theta),
				radius*math.Cos(phi)*math.Sin(theta),
				radius*math.Sin(phi),
			))
		}
		rings = append(rings, ring)
	}
	north := m.AddVertex(NewVector3(0, 0, radius))

	for _, ring := range rings {
		m.AddEdge(append(ring, ring[0])...)
	}
	for i := 0; i < slices; i++ {
		meridian := []int{south}
		for _, ring := range rings {
			meridian = append(meridian, ring[i])
		}
		m.AddEdge(append(meridian, north)...)
	}
	return m
}

// NewGridModel is a square grid of lines in the plane at height z.
func NewGridModel(size, step, z float64) *Model {
	m := &Model{Name: "grid"}
	if step <= 0 || size <= 0 {
		return m
	}
	half := size / 2
	n := int(math.Floor(size/step + 1e-9))
	for i := 0; i <= n; i++ {
		t := -half + float64(i)*step
		a := m.AddVertex(NewVector3(t, -half, z))
		b := m.AddVertex(NewVector3(t, half, z))
		m.AddEdge(a, b)
		c := m.AddVertex(NewVector3(-half, t, z))
		d := m.AddVertex(NewVector3(half, t, z))
		m.AddEdge(c, d)
	}
	return m
}

// DefaultScene is shown when no model file is given: a cube and a sphere
// standing on a grid in front of the default camera.
func DefaultScene() *Model {
	scene := &Model{Name: "default"}

	scene.Merge(NewGridModel(8, 1, -1))

	scene.Merge(NewCubeModel(2))

	sphere := NewUVSphereModel(0.75, 12, 8)
	sphere.Translate(NewVector3(2.5, 1.5, -0.25))
	scene.Merge(sphere)

	return scene
}
