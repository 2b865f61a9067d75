package ir

import (
	"fmt"
	"sort"
)

// SectionKind tags the geometric profile family of a section.
type SectionKind string

// Section kinds understood by the generator.
const (
	KindAngle       SectionKind = "Angle"
	KindBox         SectionKind = "Box"
	KindCircular    SectionKind = "Circular"
	KindI           SectionKind = "I"
	KindPipe        SectionKind = "Pipe"
	KindRectangular SectionKind = "Rectangular"
	KindTrapezoidal SectionKind = "Trapezoidal"
	KindGeneral     SectionKind = "General"
	KindShell       SectionKind = "Shell"
	KindSolid       SectionKind = "Solid"
	KindTruss       SectionKind = "Truss"
)

// SectionKinds lists every kind in registry order.
var SectionKinds = []SectionKind{
	KindAngle, KindBox, KindCircular, KindI, KindPipe, KindRectangular,
	KindTrapezoidal, KindGeneral, KindShell, KindSolid, KindTruss,
}

// MaterialElasticIsotropic is the kind tag of linear isotropic materials.
const MaterialElasticIsotropic = "ElasticIsotropic"

// Vector is a 3-component direction. A nil Vector means "not assigned".
type Vector []float64

// Axes holds the optional local axes of an element.
type Axes struct {
	EX Vector `json:"ex,omitempty"`
	EY Vector `json:"ey,omitempty"`
	EZ Vector `json:"ez,omitempty"`
}

// Element is an ordered connectivity list plus optional local axes.
type Element struct {
	Index int   `json:"index"`
	Nodes []int `json:"nodes"`
	Axes  Axes  `json:"axes"`
}

// Section is a named geometric profile.
type Section struct {
	Name     string             `json:"name"`
	Kind     SectionKind        `json:"kind"`
	Geometry map[string]float64 `json:"geometry"`
	Index    int                `json:"index"`
}

// Number returns the 1-based serialization index.
func (s *Section) Number() int { return s.Index + 1 }

// Material is a named physical law. E, G and V hold the elastic moduli and
// Poisson ratios keyed by component ("E", "G", "v" for isotropic laws).
type Material struct {
	Name  string             `json:"name"`
	Kind  string             `json:"kind"`
	E     map[string]float64 `json:"E"`
	G     map[string]float64 `json:"G"`
	V     map[string]float64 `json:"v"`
	P     float64            `json:"p"`
	Index int                `json:"index"`
}

// Number returns the 1-based serialization index.
func (m *Material) Number() int { return m.Index + 1 }

// RebarLayer is one named reinforcement layer of a shell section.
// Pos is measured from the mid-surface, positive towards the top face.
type RebarLayer struct {
	Name     string  `json:"name"`
	Pos      float64 `json:"pos"`
	Spacing  float64 `json:"spacing"`
	Material string  `json:"material"`
	Angle    float64 `json:"angle"`
	Dia      float64 `json:"dia"`
}

// ElementProperties binds one section and one material to a group of
// elements, given either as explicit indices or as set names.
type ElementProperties struct {
	Name          string       `json:"name"`
	Material      string       `json:"material"`
	Section       string       `json:"section"`
	Elsets        []string     `json:"elset,omitempty"`
	Elements      []int        `json:"elements,omitempty"`
	Reinforcement []RebarLayer `json:"reinforcement,omitempty"`
}

// NewElementProperties validates p and returns a copy of it.
// Either Elements or Elsets must be non-empty; when both are given the
// explicit element list takes precedence.
func NewElementProperties(p ElementProperties) (*ElementProperties, error) {
	if len(p.Elements) == 0 && len(p.Elsets) == 0 {
		return nil, &ConfigurationError{
			Property: p.Name,
			Message:  "element properties require elements or element sets",
		}
	}
	out := p
	out.Elsets = append([]string(nil), p.Elsets...)
	out.Elements = append([]int(nil), p.Elements...)
	out.Reinforcement = append([]RebarLayer(nil), p.Reinforcement...)
	return &out, nil
}

// HasReinforcement reports whether any reinforcement layer is defined.
func (p *ElementProperties) HasReinforcement() bool {
	return len(p.Reinforcement) > 0
}

// Model is the complete structural model handed to the deck generator.
type Model struct {
	Name       string
	Nodes      []Vector
	Elements   []Element
	Sections   map[string]*Section
	Materials  map[string]*Material
	Properties []*ElementProperties
	Sets       *SetRegistry
}

// NewModel returns an empty model with an empty set registry.
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Sections:  make(map[string]*Section),
		Materials: make(map[string]*Material),
		Sets:      NewSetRegistry(),
	}
}

// AddNode appends a node and returns its index.
func (m *Model) AddNode(x, y, z float64) int {
	m.Nodes = append(m.Nodes, Vector{x, y, z})
	return len(m.Nodes) - 1
}

// AddElement appends an element and returns its index.
func (m *Model) AddElement(nodes []int, axes Axes) int {
	idx := len(m.Elements)
	m.Elements = append(m.Elements, Element{
		Index: idx,
		Nodes: append([]int(nil), nodes...),
		Axes:  axes,
	})
	return idx
}

// AddSection registers a section under name, assigning the next index.
func (m *Model) AddSection(name string, kind SectionKind, geometry map[string]float64) (*Section, error) {
	if _, exists := m.Sections[name]; exists {
		return nil, fmt.Errorf("duplicate section %q", name)
	}
	geo := make(map[string]float64, len(geometry))
	for k, v := range geometry {
		geo[k] = v
	}
	s := &Section{Name: name, Kind: kind, Geometry: geo, Index: len(m.Sections)}
	m.Sections[name] = s
	return s, nil
}

// AddMaterial registers mat under mat.Name, assigning the next index.
func (m *Model) AddMaterial(mat Material) (*Material, error) {
	if _, exists := m.Materials[mat.Name]; exists {
		return nil, fmt.Errorf("duplicate material %q", mat.Name)
	}
	out := mat
	out.Index = len(m.Materials)
	m.Materials[mat.Name] = &out
	return &out, nil
}

// AddProperties appends an element-properties record.
func (m *Model) AddProperties(p *ElementProperties) error {
	for _, existing := range m.Properties {
		if existing.Name == p.Name {
			return fmt.Errorf("duplicate element properties %q", p.Name)
		}
	}
	m.Properties = append(m.Properties, p)
	return nil
}

// Element returns the element at index, if present.
func (m *Model) Element(index int) (*Element, bool) {
	if index < 0 || index >= len(m.Elements) {
		return nil, false
	}
	return &m.Elements[index], true
}

// OrderedSections returns sections sorted by serialization index.
func (m *Model) OrderedSections() []*Section {
	out := make([]*Section, 0, len(m.Sections))
	for _, s := range m.Sections {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// OrderedMaterials returns materials sorted by serialization index.
func (m *Model) OrderedMaterials() []*Material {
	out := make([]*Material, 0, len(m.Materials))
	for _, mat := range m.Materials {
		out = append(out, mat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}
