package deck

import (
	"math"
	"strings"

	"github.com/roach88/fedeck/internal/ir"
)

// abaqusLowering writes keyword-card decks (*ELEMENT, *BEAM SECTION, ...).
// Every element gets its own single-member ELSET so that sections and
// orientations can be attached per element.
type abaqusLowering struct{}

func (abaqusLowering) BeginProperty(*Writer, *PropertyPlan, Family) error { return nil }

func (abaqusLowering) BeginSet(*Writer, *PropertyPlan, ResolvedSet, Family) error { return nil }

func (abaqusLowering) EmitBeam(w *Writer, ec *ElementContext) error {
	nodes := ec.Element.Nodes
	if len(nodes) != 2 {
		return unsupported(Abaqus, FamilyBeam, len(nodes))
	}
	p := ec.Property

	values := make([]float64, len(p.Info.Geometry))
	for i, key := range p.Info.Geometry {
		v, err := geometryValue(p, key)
		if err != nil {
			return err
		}
		values[i] = v
	}

	keyword := "*BEAM SECTION"
	if p.Section.Kind == ir.KindGeneral {
		keyword = "*BEAM GENERAL SECTION"
	}

	w.Linef("*ELEMENT, TYPE=B31, ELSET=%s", ec.Name())
	w.Linef("%d, %d,%d", ec.Number(), nodes[0]+1, nodes[1]+1)
	w.Linef("%s, SECTION=%s, ELSET=%s, MATERIAL=%s", keyword, p.Info.DisplayName, ec.Name(), p.Material.Name)
	w.Line(joinFloats(values, ", "))
	if ex := ec.Element.Axes.EX; len(ex) > 0 {
		w.Line(joinFloats(ex, ", "))
	}
	w.Line("**")
	return nil
}

func (abaqusLowering) EmitTruss(w *Writer, ec *ElementContext) error {
	nodes := ec.Element.Nodes
	if len(nodes) != 2 {
		return unsupported(Abaqus, FamilyTruss, len(nodes))
	}
	area, err := geometryValue(ec.Property, "A")
	if err != nil {
		return err
	}

	w.Linef("*ELEMENT, TYPE=T3D2, ELSET=%s", ec.Name())
	w.Linef("%d, %d,%d", ec.Number(), nodes[0]+1, nodes[1]+1)
	w.Linef("*SOLID SECTION, ELSET=%s, MATERIAL=%s", ec.Name(), ec.Property.Material.Name)
	w.Line(formatFloat(area))
	w.Line("**")
	return nil
}

func (abaqusLowering) EmitShell(w *Writer, ec *ElementContext) error {
	nodes := ec.Element.Nodes
	var etype string
	switch len(nodes) {
	case 3:
		etype = "S3"
	case 4:
		etype = "S4"
	default:
		return unsupported(Abaqus, FamilyShell, len(nodes))
	}
	p := ec.Property
	t, err := geometryValue(p, "t")
	if err != nil {
		return err
	}

	w.Linef("*ELEMENT, TYPE=%s, ELSET=%s", etype, ec.Name())
	w.Linef("%d, %s", ec.Number(), joinNodes(nodes, ","))

	const pre = "*SHELL SECTION, ELSET="
	ex, ey := ec.Element.Axes.EX, ec.Element.Axes.EY
	if len(ex) > 0 && len(ey) > 0 {
		ori := "ORI_" + ec.Name()
		w.Linef("*ORIENTATION, NAME=%s", ori)
		w.Line(joinFloats(ex, ", ") + ", " + joinFloats(ey, ", "))
		w.Line("**")
		w.Linef("%s%s, MATERIAL=%s, ORIENTATION=%s", pre, ec.Name(), p.Material.Name, ori)
	} else {
		w.Linef("%s%s, MATERIAL=%s", pre, ec.Name(), p.Material.Name)
	}
	w.Line(formatFloat(t))

	if p.Property.HasReinforcement() {
		w.Line("*REBAR LAYER")
		for _, layer := range p.Property.Reinforcement {
			if layer.Dia == 0 {
				continue
			}
			w.Line(strings.Join([]string{
				layer.Name,
				formatFloat(rebarArea(layer.Dia)),
				formatFloat(layer.Spacing),
				formatFloat(layer.Pos),
				layer.Material,
				formatFloat(layer.Angle),
			}, ", "))
		}
	}

	w.Line("**")
	return nil
}

func (abaqusLowering) EmitSolid(w *Writer, ec *ElementContext) error {
	nodes := ec.Element.Nodes
	var etype string
	switch len(nodes) {
	case 4:
		etype = "C3D4"
	case 8:
		etype = "C3D8"
	default:
		return unsupported(Abaqus, FamilySolid, len(nodes))
	}

	w.Linef("*ELEMENT, TYPE=%s, ELSET=%s", etype, ec.Name())
	w.Linef("%d, %s", ec.Number(), joinNodes(nodes, ","))
	w.Linef("*SOLID SECTION, ELSET=%s, MATERIAL=%s", ec.Name(), ec.Property.Material.Name)
	w.Line("")
	w.Line("**")
	return nil
}

// rebarArea is the cross-section area of one bar of diameter dia.
func rebarArea(dia float64) float64 {
	return 0.25 * math.Pi * (dia * dia)
}
