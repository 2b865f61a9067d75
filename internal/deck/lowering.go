package deck

import (
	"fmt"

	"github.com/roach88/fedeck/internal/ir"
)

// ElementContext is one resolved (property, set, element) tuple.
type ElementContext struct {
	Property *PropertyPlan
	Set      ResolvedSet
	Element  *ir.Element
}

// Number returns the 1-based element number.
func (ec *ElementContext) Number() int { return ec.Element.Index + 1 }

// Name returns the per-element set name used by grammars that address
// elements through sets, e.g. "element_4".
func (ec *ElementContext) Name() string { return ir.ElementRef(ec.Element.Index) }

// Lowering writes the statements of one target format.
//
// Emit methods must either write a complete record or nothing at all: an
// implementation that returns ErrUnsupported must not have written.
type Lowering interface {
	// BeginProperty runs once per property before any of its sets.
	BeginProperty(w *Writer, p *PropertyPlan, fam Family) error
	// BeginSet runs once per resolved set before its elements.
	BeginSet(w *Writer, p *PropertyPlan, set ResolvedSet, fam Family) error
	EmitBeam(w *Writer, ec *ElementContext) error
	EmitTruss(w *Writer, ec *ElementContext) error
	EmitShell(w *Writer, ec *ElementContext) error
	EmitSolid(w *Writer, ec *ElementContext) error
}

// NewLowering returns the lowering of f.
func NewLowering(f Format) (Lowering, error) {
	switch f {
	case Abaqus:
		return abaqusLowering{}, nil
	case OpenSees:
		return openSeesLowering{}, nil
	case Sofistik:
		return sofistikLowering{}, nil
	case Ansys:
		return ansysLowering{}, nil
	default:
		return nil, &LookupError{What: "target format", Name: string(f)}
	}
}

// emit dispatches ec to the emitter of fam.
func emit(l Lowering, w *Writer, fam Family, ec *ElementContext) error {
	switch fam {
	case FamilyBeam:
		return l.EmitBeam(w, ec)
	case FamilyTruss:
		return l.EmitTruss(w, ec)
	case FamilyShell:
		return l.EmitShell(w, ec)
	case FamilySolid:
		return l.EmitSolid(w, ec)
	default:
		return fmt.Errorf("unknown family %d", fam)
	}
}

// geometryValue reads a required geometry value of the property's section.
func geometryValue(p *PropertyPlan, key string) (float64, error) {
	v, ok := p.Section.Geometry[key]
	if !ok {
		return 0, &LookupError{What: "geometry value", Name: key, Property: p.Name()}
	}
	return v, nil
}

// materialValue reads a required modulus entry, e.g. E["E"].
func materialValue(p *PropertyPlan, table map[string]float64, key string) (float64, error) {
	v, ok := table[key]
	if !ok {
		return 0, &LookupError{What: "material constant", Name: p.Material.Name + "." + key, Property: p.Name()}
	}
	return v, nil
}
