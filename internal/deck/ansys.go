package deck

// ansysLowering only contributes the comment marker. No element family has
// an APDL lowering yet, so every element is reported as skipped.
type ansysLowering struct{}

func (ansysLowering) BeginProperty(*Writer, *PropertyPlan, Family) error { return nil }

func (ansysLowering) BeginSet(*Writer, *PropertyPlan, ResolvedSet, Family) error { return nil }

func (ansysLowering) EmitBeam(_ *Writer, ec *ElementContext) error {
	return unsupported(Ansys, FamilyBeam, len(ec.Element.Nodes))
}

func (ansysLowering) EmitTruss(_ *Writer, ec *ElementContext) error {
	return unsupported(Ansys, FamilyTruss, len(ec.Element.Nodes))
}

func (ansysLowering) EmitShell(_ *Writer, ec *ElementContext) error {
	return unsupported(Ansys, FamilyShell, len(ec.Element.Nodes))
}

func (ansysLowering) EmitSolid(_ *Writer, ec *ElementContext) error {
	return unsupported(Ansys, FamilySolid, len(ec.Element.Nodes))
}
