package deck

import (
	"sort"

	"github.com/roach88/fedeck/internal/ir"
)

// SectionInfo is the serialization data of one section kind.
// DisplayName is empty for kinds that emit no section-type keyword; Geometry
// is nil for kinds that emit no geometry line.
type SectionInfo struct {
	DisplayName string
	Geometry    []string
}

// SectionTable maps section kinds to their serialization data.
type SectionTable struct {
	entries map[ir.SectionKind]SectionInfo
}

// NewSectionTable builds a table from explicit entries. Geometry slices are
// copied so the table stays immutable.
func NewSectionTable(entries map[ir.SectionKind]SectionInfo) SectionTable {
	t := SectionTable{entries: make(map[ir.SectionKind]SectionInfo, len(entries))}
	for kind, info := range entries {
		if info.Geometry != nil {
			info.Geometry = append([]string(nil), info.Geometry...)
		}
		t.entries[kind] = info
	}
	return t
}

// DefaultSectionTable returns the section kinds understood by every target.
func DefaultSectionTable() SectionTable {
	return NewSectionTable(map[ir.SectionKind]SectionInfo{
		ir.KindAngle:       {DisplayName: "L", Geometry: []string{"b", "h", "t", "t"}},
		ir.KindBox:         {DisplayName: "BOX", Geometry: []string{"b", "h", "tw", "tf", "tw", "tf"}},
		ir.KindCircular:    {DisplayName: "CIRC", Geometry: []string{"r"}},
		ir.KindI:           {DisplayName: "I", Geometry: []string{"c", "h", "b", "b", "tf", "tf", "tw"}},
		ir.KindPipe:        {DisplayName: "PIPE", Geometry: []string{"r", "t"}},
		ir.KindRectangular: {DisplayName: "RECTANGULAR", Geometry: []string{"b", "h"}},
		ir.KindTrapezoidal: {DisplayName: "TRAPEZOID", Geometry: []string{"b1", "h", "b2", "c"}},
		ir.KindGeneral:     {DisplayName: "GENERAL", Geometry: []string{"A", "I11", "I12", "I22", "J", "g0", "gw"}},
		ir.KindShell:       {Geometry: []string{"t"}},
		ir.KindSolid:       {},
		ir.KindTruss:       {Geometry: []string{"A"}},
	})
}

// Lookup returns the serialization data of kind.
func (t SectionTable) Lookup(kind ir.SectionKind) (SectionInfo, error) {
	info, ok := t.entries[kind]
	if !ok {
		return SectionInfo{}, &LookupError{What: "section kind", Name: string(kind)}
	}
	out := info
	if info.Geometry != nil {
		out.Geometry = append([]string(nil), info.Geometry...)
	}
	return out, nil
}

// Kinds returns the registered section kinds in sorted order.
func (t SectionTable) Kinds() []ir.SectionKind {
	out := make([]ir.SectionKind, 0, len(t.entries))
	for kind := range t.entries {
		out = append(out, kind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Tables bundles the static lookup data the generator needs.
type Tables struct {
	Sections SectionTable
	Traits   TraitsTable
}

// DefaultTables returns the built-in section and format tables.
func DefaultTables() Tables {
	return Tables{
		Sections: DefaultSectionTable(),
		Traits:   DefaultTraitsTable(),
	}
}
