package deck

import (
	"strconv"
	"strings"
)

// sofistikLowering writes SOFIMSHA tabular records. Elements are grouped by
// set: every indexed set opens a GRP whose base number is derived from the
// set index.
type sofistikLowering struct{}

func (sofistikLowering) BeginProperty(*Writer, *PropertyPlan, Family) error { return nil }

func (sofistikLowering) BeginSet(w *Writer, _ *PropertyPlan, set ResolvedSet, fam Family) error {
	if fam == FamilyTruss || !set.HasIndex() {
		return nil
	}
	w.Linef("GRP %d BASE %d0000", set.Index, set.Index)
	w.Line("$")
	return nil
}

func (sofistikLowering) EmitBeam(w *Writer, ec *ElementContext) error {
	return sofistikLine(w, ec, FamilyBeam, "BEAM NO NA NE NCS")
}

func (sofistikLowering) EmitTruss(w *Writer, ec *ElementContext) error {
	return sofistikLine(w, ec, FamilyTruss, "TRUS NO NA NE NCS")
}

func sofistikLine(w *Writer, ec *ElementContext, fam Family, header string) error {
	nodes := ec.Element.Nodes
	if len(nodes) != 2 {
		return unsupported(Sofistik, fam, len(nodes))
	}
	w.Line(header)
	w.Linef("%d %d %d %d", ec.Number(), nodes[0]+1, nodes[1]+1, ec.Property.Section.Number())
	w.Line("$")
	return nil
}

// EmitShell writes QUAD records. Triangles have no QUAD layout and are
// skipped.
func (sofistikLowering) EmitShell(w *Writer, ec *ElementContext) error {
	nodes := ec.Element.Nodes
	if len(nodes) != 4 {
		return unsupported(Sofistik, FamilyShell, len(nodes))
	}
	p := ec.Property
	t, err := geometryValue(p, "t")
	if err != nil {
		return err
	}

	data := []string{strconv.Itoa(ec.Number()), joinNodes(nodes, " "), strconv.Itoa(p.Material.Number())}
	for range nodes {
		data = append(data, formatFloat(t))
	}
	header := "QUAD NO N1 N2 N3 N4 MNO T1 T2 T3 T4"
	if p.RebarMaterial != nil {
		header += " MRF"
		data = append(data, strconv.Itoa(p.RebarMaterial.Number()))
	}

	w.Line(header)
	w.Line(strings.Join(data, " "))
	w.Line("$")
	return nil
}

func (sofistikLowering) EmitSolid(w *Writer, ec *ElementContext) error {
	nodes := ec.Element.Nodes
	if len(nodes) != 8 {
		return unsupported(Sofistik, FamilySolid, len(nodes))
	}
	w.Line("BRIC NO N1 N2 N3 N4 N5 N6 N7 N8 MNO")
	w.Linef("%d %s %d", ec.Number(), joinNodes(nodes, " "), ec.Property.Material.Number())
	w.Line("$")
	return nil
}
