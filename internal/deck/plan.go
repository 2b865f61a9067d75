package deck

import (
	"fmt"
	"slices"

	"github.com/roach88/fedeck/internal/ir"
)

// ResolvedSet is one element group of a property.
type ResolvedSet struct {
	Name string
	// Index is the 1-based registry index, or 0 for the single-element
	// shorthand which has no registry entry.
	Index    int
	Elements []int
	// Synthesized is true for the ad-hoc set of an explicit element list.
	Synthesized bool
}

// HasIndex reports whether the set can be addressed by index in a deck.
func (s ResolvedSet) HasIndex() bool { return s.Index > 0 }

// PropertyPlan is an element-properties record with every reference bound.
type PropertyPlan struct {
	Property *ir.ElementProperties
	Section  *ir.Section
	Material *ir.Material
	Info     SectionInfo
	// RebarMaterial is the material of the first reinforcement layer, nil
	// when the property carries no reinforcement.
	RebarMaterial *ir.Material
	Sets          []ResolvedSet
}

// Name returns the property name.
func (p *PropertyPlan) Name() string { return p.Property.Name }

// Plan is the immutable result of set resolution.
type Plan struct {
	Properties []PropertyPlan
	// NewSets lists the sets to register before emitting, in order.
	NewSets []ir.ElementSet
}

// Resolve binds every property of m to its section, material and element
// sets without modifying the model.
//
// A property with an explicit element list gets a synthesized set named
// "elset_<property>". If the registry already holds that name with the same
// selection (a previous run committed it) the entry is reused; a different
// selection is an error since registry entries are never replaced.
func Resolve(m *ir.Model, tables Tables) (*Plan, error) {
	if m.Sets == nil {
		return nil, fmt.Errorf("model %q has no set registry", m.Name)
	}

	plan := &Plan{}
	nextIndex := m.Sets.Len()

	for _, prop := range m.Properties {
		pp, err := bindProperty(m, tables, prop)
		if err != nil {
			return nil, err
		}

		if len(prop.Elements) > 0 {
			set, isNew, err := synthesizeSet(m.Sets, prop, nextIndex)
			if err != nil {
				return nil, err
			}
			if isNew {
				plan.NewSets = append(plan.NewSets, ir.ElementSet{
					Name:      set.Name,
					Selection: slices.Clone(set.Elements),
					Index:     set.Index - 1,
				})
				nextIndex++
			}
			pp.Sets = []ResolvedSet{set}
		} else {
			for _, name := range prop.Elsets {
				set, err := resolveNamedSet(m.Sets, prop.Name, name)
				if err != nil {
					return nil, err
				}
				pp.Sets = append(pp.Sets, set)
			}
		}

		for _, set := range pp.Sets {
			for _, idx := range set.Elements {
				if _, ok := m.Element(idx); !ok {
					return nil, &LookupError{What: "element", Name: fmt.Sprint(idx), Property: prop.Name}
				}
			}
		}

		plan.Properties = append(plan.Properties, pp)
	}

	return plan, nil
}

func bindProperty(m *ir.Model, tables Tables, prop *ir.ElementProperties) (PropertyPlan, error) {
	section, ok := m.Sections[prop.Section]
	if !ok {
		return PropertyPlan{}, &LookupError{What: "section", Name: prop.Section, Property: prop.Name}
	}
	material, ok := m.Materials[prop.Material]
	if !ok {
		return PropertyPlan{}, &LookupError{What: "material", Name: prop.Material, Property: prop.Name}
	}
	info, err := tables.Sections.Lookup(section.Kind)
	if err != nil {
		if le, ok := err.(*LookupError); ok {
			le.Property = prop.Name
		}
		return PropertyPlan{}, err
	}

	pp := PropertyPlan{
		Property: prop,
		Section:  section,
		Material: material,
		Info:     info,
	}
	for i, layer := range prop.Reinforcement {
		rmat, ok := m.Materials[layer.Material]
		if !ok {
			return PropertyPlan{}, &LookupError{What: "rebar material", Name: layer.Material, Property: prop.Name}
		}
		if i == 0 {
			pp.RebarMaterial = rmat
		}
	}
	return pp, nil
}

func synthesizeSet(reg *ir.SetRegistry, prop *ir.ElementProperties, nextIndex int) (ResolvedSet, bool, error) {
	name := ir.SyntheticSetName(prop.Name)
	if existing, ok := reg.Lookup(name); ok {
		if !slices.Equal(existing.Selection, prop.Elements) {
			return ResolvedSet{}, false, fmt.Errorf("property %q: element set %q already registered with a different selection", prop.Name, name)
		}
		return ResolvedSet{
			Name:        name,
			Index:       existing.Number(),
			Elements:    existing.Selection,
			Synthesized: true,
		}, false, nil
	}
	return ResolvedSet{
		Name:        name,
		Index:       nextIndex + 1,
		Elements:    slices.Clone(prop.Elements),
		Synthesized: true,
	}, true, nil
}

func resolveNamedSet(reg *ir.SetRegistry, property, name string) (ResolvedSet, error) {
	if idx, ok := ir.ParseElementRef(name); ok {
		return ResolvedSet{Name: name, Elements: []int{idx}}, nil
	}
	set, ok := reg.Lookup(name)
	if !ok {
		return ResolvedSet{}, &LookupError{What: "element set", Name: name, Property: property}
	}
	return ResolvedSet{
		Name:     name,
		Index:    set.Number(),
		Elements: set.Selection,
	}, nil
}

// Commit registers the plan's synthesized sets. It fails if the registry
// changed since Resolve in a way that would shift their indices.
func (p *Plan) Commit(reg *ir.SetRegistry) error {
	for _, s := range p.NewSets {
		added, err := reg.Add(s.Name, s.Selection)
		if err != nil {
			return fmt.Errorf("commit plan: %w", err)
		}
		if added.Index != s.Index {
			return fmt.Errorf("commit plan: set %q registered at index %d, planned %d", s.Name, added.Index, s.Index)
		}
	}
	return nil
}
