package deck

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/roach88/fedeck/internal/ir"
)

// Options configures a Generator.
type Options struct {
	Target Format
	// Tables overrides the built-in lookup tables when non-nil.
	Tables *Tables
	// Logger receives skip and synthesis events. Defaults to a discard logger.
	Logger *slog.Logger
}

// Skip records one element that had no lowering for the target.
type Skip struct {
	Property string `json:"property"`
	Set      string `json:"set"`
	Element  int    `json:"element"`
	Family   string `json:"family"`
	Nodes    int    `json:"nodes"`
	Reason   string `json:"reason"`
}

// Report summarizes one generation run.
type Report struct {
	Target     Format `json:"target"`
	Properties int    `json:"properties"`
	// Elements counts element records written.
	Elements int    `json:"elements"`
	Lines    int    `json:"lines"`
	Skipped  []Skip `json:"skipped,omitempty"`
	// Plan is the resolution result the deck was emitted from.
	Plan *Plan `json:"-"`
}

// Generator writes decks for one target format.
type Generator struct {
	target   Format
	tables   Tables
	traits   Traits
	lowering Lowering
	logger   *slog.Logger
}

// NewGenerator validates opts and returns a generator.
func NewGenerator(opts Options) (*Generator, error) {
	tables := DefaultTables()
	if opts.Tables != nil {
		tables = *opts.Tables
	}
	traits, err := tables.Traits.Lookup(opts.Target)
	if err != nil {
		return nil, err
	}
	lowering, err := NewLowering(opts.Target)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{
		target:   opts.Target,
		tables:   tables,
		traits:   traits,
		lowering: lowering,
		logger:   logger,
	}, nil
}

// Target returns the generator's format.
func (g *Generator) Target() Format { return g.target }

// Generate resolves m, commits synthesized sets to m.Sets and writes the
// deck to w. Resolution failures abort before anything is written; a
// missing value discovered while emitting aborts with a partial deck in w.
func (g *Generator) Generate(w io.Writer, m *ir.Model) (*Report, error) {
	plan, err := Resolve(m, g.tables)
	if err != nil {
		return nil, err
	}
	for _, s := range plan.NewSets {
		g.logger.Debug("synthesizing element set", "set", s.Name, "index", s.Index+1, "elements", len(s.Selection))
	}
	if err := plan.Commit(m.Sets); err != nil {
		return nil, err
	}
	return g.Emit(w, m, plan)
}

// Emit writes the deck for an already committed plan.
func (g *Generator) Emit(w io.Writer, m *ir.Model, plan *Plan) (*Report, error) {
	out := NewWriter(w)
	c := g.traits.Comment
	report := &Report{Target: g.target, Plan: plan}

	out.Linef("%s %s", c, strings.Repeat("-", 77))
	out.Linef("%s %s Elements", c, strings.Repeat("-", 68))
	out.Line(c)

	for i := range plan.Properties {
		p := &plan.Properties[i]
		if err := g.emitProperty(out, m, p, report); err != nil {
			return nil, err
		}
		report.Properties++
	}

	out.Line(c)
	out.Raw(g.traits.Footer)

	if g.traits.DesignPass {
		if err := writeDesignDirectives(out, plan, g.logger); err != nil {
			return nil, err
		}
	}

	if err := out.Err(); err != nil {
		return nil, fmt.Errorf("write deck: %w", err)
	}
	report.Lines = out.Lines()
	return report, nil
}

func (g *Generator) emitProperty(out *Writer, m *ir.Model, p *PropertyPlan, report *Report) error {
	c := g.traits.Comment
	name := p.Name()
	fam := Classify(p.Section.Kind)

	out.Linef("%s Property: %s", c, name)
	out.Linef("%s ----------%s", c, strings.Repeat("-", utf8.RuneCountInString(name)))
	out.Line(c)

	if err := g.lowering.BeginProperty(out, p, fam); err != nil {
		return err
	}

	for _, set := range p.Sets {
		if err := g.lowering.BeginSet(out, p, set, fam); err != nil {
			return err
		}
		for _, idx := range set.Elements {
			el, ok := m.Element(idx)
			if !ok {
				return &LookupError{What: "element", Name: fmt.Sprint(idx), Property: name}
			}
			ec := &ElementContext{Property: p, Set: set, Element: el}
			err := emit(g.lowering, out, fam, ec)
			switch {
			case err == nil:
				report.Elements++
			case IsUnsupported(err):
				g.logger.Warn("unsupported, skipped",
					"target", g.target, "property", name, "element", idx,
					"family", fam.String(), "nodes", len(el.Nodes))
				report.Skipped = append(report.Skipped, Skip{
					Property: name,
					Set:      set.Name,
					Element:  idx,
					Family:   fam.String(),
					Nodes:    len(el.Nodes),
					Reason:   err.Error(),
				})
			default:
				return err
			}
		}
	}
	return nil
}

// Generate is a convenience wrapper that builds a Generator with default
// tables for target and runs it.
func Generate(w io.Writer, target Format, m *ir.Model) (*Report, error) {
	g, err := NewGenerator(Options{Target: target})
	if err != nil {
		return nil, err
	}
	return g.Generate(w, m)
}
