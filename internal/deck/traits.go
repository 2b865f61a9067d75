package deck

import "sort"

// Format identifies a target solver grammar.
type Format string

// Supported target formats.
const (
	Abaqus   Format = "abaqus"
	OpenSees Format = "opensees"
	Sofistik Format = "sofistik"
	Ansys    Format = "ansys"
)

// Traits holds per-format boilerplate.
type Traits struct {
	// Comment is the line-comment marker.
	Comment string
	// Footer is written verbatim after the element blocks, if non-empty.
	Footer string
	// DesignPass enables the reinforcement design directives.
	DesignPass bool
}

// TraitsTable maps formats to their traits.
type TraitsTable struct {
	entries map[Format]Traits
}

// NewTraitsTable builds a table from explicit entries.
func NewTraitsTable(entries map[Format]Traits) TraitsTable {
	t := TraitsTable{entries: make(map[Format]Traits, len(entries))}
	for f, tr := range entries {
		t.entries[f] = tr
	}
	return t
}

// DefaultTraitsTable returns the traits of the four supported formats.
func DefaultTraitsTable() TraitsTable {
	return NewTraitsTable(map[Format]Traits{
		Abaqus:   {Comment: "**"},
		OpenSees: {Comment: "#"},
		Sofistik: {Comment: "$", Footer: "END\n$\n$\n", DesignPass: true},
		Ansys:    {Comment: "!"},
	})
}

// Lookup returns the traits of f.
func (t TraitsTable) Lookup(f Format) (Traits, error) {
	tr, ok := t.entries[f]
	if !ok {
		return Traits{}, &LookupError{What: "target format", Name: string(f)}
	}
	return tr, nil
}

// Formats returns the known formats in sorted order.
func (t TraitsTable) Formats() []Format {
	out := make([]Format, 0, len(t.entries))
	for f := range t.entries {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
