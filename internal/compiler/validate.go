package compiler

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/roach88/fedeck/internal/deck"
	"github.com/roach88/fedeck/internal/ir"
)

// Validation error codes (E120-E139)
const (
	ErrDanglingNode       = "E120" // element references a missing node
	ErrEmptyConnectivity  = "E121" // element has no nodes
	ErrUnknownSection     = "E122" // property references a missing section
	ErrUnknownMaterial    = "E123" // property or layer references a missing material
	ErrUnknownSet         = "E124" // property references a missing element set
	ErrElementOutOfRange  = "E125" // set or property selects a missing element
	ErrNodeCount          = "E126" // node count no target supports for the family
	ErrAxisNotUnit        = "E127" // local axis is not a 3-component unit vector
	ErrAxesNotOrthogonal  = "E128" // local axes are not mutually orthogonal
	ErrRebarOnNonShell    = "E129" // reinforcement on a non-shell section
	ErrTooManyLayers      = "E130" // more than two layers on one shell face
	ErrUnknownSectionKind = "E131" // section kind not in the registry
	ErrMissingGeometry    = "E132" // geometry value required by the section kind
	ErrNoSelection        = "E133" // property selects no elements
)

// axisTolerance bounds |‖e‖-1| and |e_i·e_j| for local axes.
const axisTolerance = 1e-6

// ValidationError represents a model validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// supportedNodeCounts lists the connectivity lengths at least one target
// format can lower, per family.
var supportedNodeCounts = map[deck.Family][]int{
	deck.FamilyBeam:  {2},
	deck.FamilyTruss: {2},
	deck.FamilyShell: {3, 4},
	deck.FamilySolid: {4, 8},
}

// ValidateModel checks m against tables and returns every problem found
// (does not fail-fast). A model that passes resolves without lookup errors.
func ValidateModel(m *ir.Model, tables deck.Tables) []ValidationError {
	var errs []ValidationError

	for _, s := range m.OrderedSections() {
		errs = append(errs, validateSection(s, tables.Sections)...)
	}

	for i := range m.Elements {
		errs = append(errs, validateElement(m, &m.Elements[i])...)
	}

	for _, set := range m.Sets.Sets() {
		for _, idx := range set.Selection {
			if _, ok := m.Element(idx); !ok {
				errs = append(errs, ValidationError{
					Field:   "sets." + set.Name,
					Message: fmt.Sprintf("element %d does not exist", idx),
					Code:    ErrElementOutOfRange,
				})
			}
		}
	}

	for _, p := range m.Properties {
		errs = append(errs, validateProperties(m, p)...)
	}

	return errs
}

func validateSection(s *ir.Section, table deck.SectionTable) []ValidationError {
	field := "sections." + s.Name
	info, err := table.Lookup(s.Kind)
	if err != nil {
		return []ValidationError{{
			Field:   field,
			Message: fmt.Sprintf("unknown section kind %q", s.Kind),
			Code:    ErrUnknownSectionKind,
		}}
	}

	var errs []ValidationError
	seen := map[string]bool{}
	for _, key := range info.Geometry {
		if seen[key] {
			continue
		}
		seen[key] = true
		if _, ok := s.Geometry[key]; !ok {
			errs = append(errs, ValidationError{
				Field:   field + ".geometry",
				Message: fmt.Sprintf("%s sections require %q", s.Kind, key),
				Code:    ErrMissingGeometry,
			})
		}
	}
	return errs
}

func validateElement(m *ir.Model, el *ir.Element) []ValidationError {
	field := fmt.Sprintf("elements.%d", el.Index)
	if len(el.Nodes) == 0 {
		return []ValidationError{{Field: field, Message: "element has no nodes", Code: ErrEmptyConnectivity}}
	}

	var errs []ValidationError
	for _, n := range el.Nodes {
		if n < 0 || n >= len(m.Nodes) {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("node %d does not exist", n),
				Code:    ErrDanglingNode,
			})
		}
	}
	return append(errs, validateAxes(field, el.Axes)...)
}

// validateAxes checks that every assigned local axis is a unit vector and
// that assigned axes are pairwise orthogonal.
func validateAxes(field string, axes ir.Axes) []ValidationError {
	type axis struct {
		name string
		vec  *mat.VecDense
	}

	var errs []ValidationError
	var assigned []axis
	for _, a := range []struct {
		name string
		v    ir.Vector
	}{{"ex", axes.EX}, {"ey", axes.EY}, {"ez", axes.EZ}} {
		if a.v == nil {
			continue
		}
		if len(a.v) != 3 {
			errs = append(errs, ValidationError{
				Field:   field + "." + a.name,
				Message: fmt.Sprintf("expected 3 components, got %d", len(a.v)),
				Code:    ErrAxisNotUnit,
			})
			continue
		}
		vec := mat.NewVecDense(3, append([]float64(nil), a.v...))
		if norm := mat.Norm(vec, 2); math.Abs(norm-1) > axisTolerance {
			errs = append(errs, ValidationError{
				Field:   field + "." + a.name,
				Message: fmt.Sprintf("not a unit vector (norm %g)", norm),
				Code:    ErrAxisNotUnit,
			})
		}
		assigned = append(assigned, axis{a.name, vec})
	}

	for i := 0; i < len(assigned); i++ {
		for j := i + 1; j < len(assigned); j++ {
			if dot := mat.Dot(assigned[i].vec, assigned[j].vec); math.Abs(dot) > axisTolerance {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: fmt.Sprintf("%s and %s are not orthogonal (dot %g)", assigned[i].name, assigned[j].name, dot),
					Code:    ErrAxesNotOrthogonal,
				})
			}
		}
	}
	return errs
}

func validateProperties(m *ir.Model, p *ir.ElementProperties) []ValidationError {
	field := "properties." + p.Name
	var errs []ValidationError

	if _, ok := m.Materials[p.Material]; !ok {
		errs = append(errs, ValidationError{
			Field:   field + ".material",
			Message: fmt.Sprintf("material %q does not exist", p.Material),
			Code:    ErrUnknownMaterial,
		})
	}

	section, ok := m.Sections[p.Section]
	if !ok {
		errs = append(errs, ValidationError{
			Field:   field + ".section",
			Message: fmt.Sprintf("section %q does not exist", p.Section),
			Code:    ErrUnknownSection,
		})
	}

	selected, selErrs := selectedElements(m, p, field)
	errs = append(errs, selErrs...)

	if section != nil {
		fam := deck.Classify(section.Kind)
		for _, idx := range selected {
			el, ok := m.Element(idx)
			if !ok {
				continue
			}
			if !slices.Contains(supportedNodeCounts[fam], len(el.Nodes)) {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("%s.elements.%d", field, idx),
					Message: fmt.Sprintf("%s elements with %d nodes are not supported by any target", fam, len(el.Nodes)),
					Code:    ErrNodeCount,
				})
			}
		}
		if p.HasReinforcement() && fam != deck.FamilyShell {
			errs = append(errs, ValidationError{
				Field:   field + ".reinforcement",
				Message: fmt.Sprintf("reinforcement requires a shell section, %q is %s", section.Name, section.Kind),
				Code:    ErrRebarOnNonShell,
			})
		}
	}

	var upper, lower int
	for _, layer := range p.Reinforcement {
		if _, ok := m.Materials[layer.Material]; !ok {
			errs = append(errs, ValidationError{
				Field:   field + ".reinforcement." + layer.Name,
				Message: fmt.Sprintf("material %q does not exist", layer.Material),
				Code:    ErrUnknownMaterial,
			})
		}
		switch {
		case layer.Pos > 0:
			upper++
		case layer.Pos < 0:
			lower++
		}
	}
	for _, face := range []struct {
		name  string
		count int
	}{{"upper", upper}, {"lower", lower}} {
		if face.count > 2 {
			errs = append(errs, ValidationError{
				Field:   field + ".reinforcement",
				Message: fmt.Sprintf("%d layers on the %s face (at most 2)", face.count, face.name),
				Code:    ErrTooManyLayers,
			})
		}
	}

	return errs
}

// selectedElements returns the element indices p selects, reporting
// unknown set names. Explicit element lists take precedence over sets.
func selectedElements(m *ir.Model, p *ir.ElementProperties, field string) ([]int, []ValidationError) {
	var errs []ValidationError
	var selected []int

	switch {
	case len(p.Elements) > 0:
		selected = p.Elements
	case len(p.Elsets) > 0:
		for _, name := range p.Elsets {
			if idx, ok := ir.ParseElementRef(name); ok {
				selected = append(selected, idx)
				continue
			}
			set, ok := m.Sets.Lookup(name)
			if !ok {
				errs = append(errs, ValidationError{
					Field:   field + ".elset",
					Message: fmt.Sprintf("element set %q does not exist", name),
					Code:    ErrUnknownSet,
				})
				continue
			}
			selected = append(selected, set.Selection...)
		}
	default:
		errs = append(errs, ValidationError{
			Field:   field,
			Message: "no elements or element sets given",
			Code:    ErrNoSelection,
		})
	}

	for _, idx := range selected {
		if _, ok := m.Element(idx); !ok {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("element %d does not exist", idx),
				Code:    ErrElementOutOfRange,
			})
		}
	}
	return selected, errs
}
