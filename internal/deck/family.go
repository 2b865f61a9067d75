package deck

import "github.com/roach88/fedeck/internal/ir"

// Family is the coarse structural category that selects an emitter.
type Family int

const (
	FamilyBeam Family = iota
	FamilyTruss
	FamilyShell
	FamilySolid
)

func (f Family) String() string {
	switch f {
	case FamilyBeam:
		return "beam"
	case FamilyTruss:
		return "truss"
	case FamilyShell:
		return "shell"
	case FamilySolid:
		return "solid"
	default:
		return "unknown"
	}
}

// Classify maps a section kind to its family. Truss, Shell and Solid are
// their own families; every other kind is a beam.
func Classify(kind ir.SectionKind) Family {
	switch kind {
	case ir.KindTruss:
		return FamilyTruss
	case ir.KindShell:
		return FamilyShell
	case ir.KindSolid:
		return FamilySolid
	default:
		return FamilyBeam
	}
}
