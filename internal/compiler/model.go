package compiler

import (
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/token"

	"github.com/roach88/fedeck/internal/ir"
)

// Document shapes decoded from a model value after it was unified with the
// schema, so every default is already filled in.
type (
	modelDoc struct {
		Name       string          `json:"name"`
		Nodes      [][]float64     `json:"nodes"`
		Materials  []materialDoc   `json:"materials"`
		Sections   []sectionDoc    `json:"sections"`
		Elements   []elementDoc    `json:"elements"`
		Sets       []setDoc        `json:"sets"`
		Properties []propertiesDoc `json:"properties"`
	}

	materialDoc struct {
		Name string   `json:"name"`
		Kind string   `json:"kind"`
		E    float64  `json:"E"`
		G    *float64 `json:"G"`
		V    float64  `json:"v"`
		P    float64  `json:"p"`
	}

	sectionDoc struct {
		Name     string             `json:"name"`
		Kind     string             `json:"kind"`
		Geometry map[string]float64 `json:"geometry"`
	}

	elementDoc struct {
		Nodes []int     `json:"nodes"`
		EX    []float64 `json:"ex"`
		EY    []float64 `json:"ey"`
		EZ    []float64 `json:"ez"`
	}

	setDoc struct {
		Name     string `json:"name"`
		Elements []int  `json:"elements"`
	}

	propertiesDoc struct {
		Name          string          `json:"name"`
		Material      string          `json:"material"`
		Section       string          `json:"section"`
		Elset         nameList        `json:"elset"`
		Elements      []int           `json:"elements"`
		Reinforcement []ir.RebarLayer `json:"reinforcement"`
	}
)

// nameList holds set names given either as one name or as a list.
type nameList []string

func (n *nameList) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*n = nameList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*n = many
	return nil
}

// CompileModel unifies v with the model schema and builds an ir.Model.
//
// Sections, materials, elements and sets are indexed in declaration order.
// Missing derived quantities are filled in: the shear modulus of isotropic
// materials and the area and stiffness constants of standard beam profiles.
// Reference checks are left to ValidateModel.
func CompileModel(v cue.Value) (*ir.Model, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	schema, err := modelSchema(v.Context())
	if err != nil {
		return nil, err
	}
	unified := schema.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var doc modelDoc
	if err := unified.Decode(&doc); err != nil {
		return nil, formatCUEError(err)
	}

	m := ir.NewModel(doc.Name)
	for _, n := range doc.Nodes {
		m.AddNode(n[0], n[1], n[2])
	}

	for i, md := range doc.Materials {
		if _, err := m.AddMaterial(buildMaterial(md)); err != nil {
			return nil, &CompileError{
				Field:   fmt.Sprintf("materials.%d", i),
				Message: err.Error(),
				Pos:     listPos(unified, "materials", i),
			}
		}
	}

	for i, sd := range doc.Sections {
		kind := ir.SectionKind(sd.Kind)
		if _, err := m.AddSection(sd.Name, kind, deriveSection(kind, sd.Geometry)); err != nil {
			return nil, &CompileError{
				Field:   fmt.Sprintf("sections.%d", i),
				Message: err.Error(),
				Pos:     listPos(unified, "sections", i),
			}
		}
	}

	for _, ed := range doc.Elements {
		m.AddElement(ed.Nodes, ir.Axes{
			EX: vector(ed.EX),
			EY: vector(ed.EY),
			EZ: vector(ed.EZ),
		})
	}

	for i, sd := range doc.Sets {
		if _, err := m.Sets.Add(sd.Name, sd.Elements); err != nil {
			return nil, &CompileError{
				Field:   fmt.Sprintf("sets.%d", i),
				Message: err.Error(),
				Pos:     listPos(unified, "sets", i),
			}
		}
	}

	for i, pd := range doc.Properties {
		props, err := ir.NewElementProperties(ir.ElementProperties{
			Name:          pd.Name,
			Material:      pd.Material,
			Section:       pd.Section,
			Elsets:        []string(pd.Elset),
			Elements:      pd.Elements,
			Reinforcement: pd.Reinforcement,
		})
		if err == nil {
			err = m.AddProperties(props)
		}
		if err != nil {
			return nil, &CompileError{
				Field:   fmt.Sprintf("properties.%d", i),
				Message: err.Error(),
				Pos:     listPos(unified, "properties", i),
			}
		}
	}

	return m, nil
}

func buildMaterial(md materialDoc) ir.Material {
	g := shearModulus(md.E, md.V)
	if md.G != nil {
		g = *md.G
	}
	return ir.Material{
		Name: md.Name,
		Kind: md.Kind,
		E:    map[string]float64{"E": md.E},
		G:    map[string]float64{"G": g},
		V:    map[string]float64{"v": md.V},
		P:    md.P,
	}
}

func vector(v []float64) ir.Vector {
	if len(v) == 0 {
		return nil
	}
	return ir.Vector(v)
}

// listPos returns the source position of v.<field>[i], if known.
func listPos(v cue.Value, field string, i int) token.Pos {
	return v.LookupPath(cue.MakePath(cue.Str(field), cue.Index(i))).Pos()
}
