package deck

import (
	"strconv"
	"strings"

	"github.com/roach88/fedeck/internal/ir"
)

// openSeesLowering writes Tcl commands. Beams carry their section constants
// inline, so the section table is never referenced by index.
type openSeesLowering struct{}

// BeginProperty declares the uniaxial material of truss properties once,
// before any truss element refers to it.
func (openSeesLowering) BeginProperty(w *Writer, p *PropertyPlan, fam Family) error {
	if fam != FamilyTruss || p.Material.Kind != ir.MaterialElasticIsotropic {
		return nil
	}
	e, err := materialValue(p, p.Material.E, "E")
	if err != nil {
		return err
	}
	w.Linef("uniaxialMaterial Elastic %d %s", p.Material.Number(), formatFloat(e))
	w.Line("#")
	return nil
}

func (openSeesLowering) BeginSet(*Writer, *PropertyPlan, ResolvedSet, Family) error { return nil }

func (openSeesLowering) EmitBeam(w *Writer, ec *ElementContext) error {
	nodes := ec.Element.Nodes
	if len(nodes) != 2 {
		return unsupported(OpenSees, FamilyBeam, len(nodes))
	}
	p := ec.Property

	ex := ec.Element.Axes.EX
	if len(ex) == 0 {
		return &LookupError{What: "local axis ex of element", Name: strconv.Itoa(ec.Element.Index), Property: p.Name()}
	}
	e, err := materialValue(p, p.Material.E, "E")
	if err != nil {
		return err
	}
	g, err := materialValue(p, p.Material.G, "G")
	if err != nil {
		return err
	}
	constants := make([]string, 0, 4)
	for _, key := range []string{"A", "J", "Ixx", "Iyy"} {
		v, err := geometryValue(p, key)
		if err != nil {
			return err
		}
		constants = append(constants, formatFloat(v))
	}

	n := strconv.Itoa(ec.Number())
	w.Linef("geomTransf Corotational %s %s", n, joinFloats(ex, " "))
	fields := []string{
		"element elasticBeamColumn", n,
		strconv.Itoa(nodes[0] + 1), strconv.Itoa(nodes[1] + 1),
		constants[0], formatFloat(e), formatFloat(g),
		constants[1], constants[2], constants[3],
		n,
	}
	w.Line(strings.Join(fields, " "))
	w.Line("#")
	return nil
}

func (openSeesLowering) EmitTruss(w *Writer, ec *ElementContext) error {
	nodes := ec.Element.Nodes
	if len(nodes) != 2 {
		return unsupported(OpenSees, FamilyTruss, len(nodes))
	}
	area, err := geometryValue(ec.Property, "A")
	if err != nil {
		return err
	}
	w.Linef("element corotTruss %d %d %d %s %d",
		ec.Number(), nodes[0]+1, nodes[1]+1, formatFloat(area), ec.Property.Material.Number())
	w.Line("#")
	return nil
}

// EmitShell supports quadrilaterals only; ShellNLDKGQ has no triangular
// counterpart with the same section command.
func (openSeesLowering) EmitShell(w *Writer, ec *ElementContext) error {
	nodes := ec.Element.Nodes
	if len(nodes) != 4 {
		return unsupported(OpenSees, FamilyShell, len(nodes))
	}
	p := ec.Property
	t, err := geometryValue(p, "t")
	if err != nil {
		return err
	}
	e, err := materialValue(p, p.Material.E, "E")
	if err != nil {
		return err
	}
	v, err := materialValue(p, p.Material.V, "v")
	if err != nil {
		return err
	}

	n := ec.Number()
	w.Linef("section ElasticMembranePlateSection %d %s %s %s %s",
		n, formatFloat(e), formatFloat(v), formatFloat(t), formatFloat(p.Material.P))
	w.Linef("element ShellNLDKGQ %d %s %d", n, joinNodes(nodes, " "), n)
	w.Line("#")
	return nil
}

func (openSeesLowering) EmitSolid(_ *Writer, ec *ElementContext) error {
	return unsupported(OpenSees, FamilySolid, len(ec.Element.Nodes))
}
