package store

import (
	"github.com/roach88/fedeck/internal/deck"
	"github.com/roach88/fedeck/internal/ir"
)

// DeckRecord is one archived deck.
type DeckRecord struct {
	ID               string      `json:"id"`
	Seq              int64       `json:"seq"`
	ModelName        string      `json:"model_name"`
	ModelHash        string      `json:"model_hash"`
	Target           string      `json:"target"`
	DeckHash         string      `json:"deck_hash"`
	GeneratorVersion string      `json:"generator_version"`
	Properties       int         `json:"properties"`
	Elements         int         `json:"elements"`
	Lines            int         `json:"lines"`
	Sets             []SetRecord `json:"sets"`
	Skipped          []deck.Skip `json:"skipped"`
	// Content is the deck text. ListDecks leaves it nil.
	Content []byte `json:"-"`
}

// SetRecord is one element set a property was resolved to.
type SetRecord struct {
	Property string `json:"property"`
	Name     string `json:"name"`
	// Index is the 1-based registry index, 0 for the single-element shorthand.
	Index       int   `json:"index"`
	Elements    []int `json:"elements"`
	Synthesized bool  `json:"synthesized"`
}

// NewDeckRecord builds an unsaved record from a generation report.
// modelHash must be computed before generation, since generation commits
// synthesized sets to the model.
func NewDeckRecord(modelName, modelHash string, report *deck.Report, content []byte) DeckRecord {
	rec := DeckRecord{
		ModelName:        modelName,
		ModelHash:        modelHash,
		Target:           string(report.Target),
		DeckHash:         ir.DeckHash(string(report.Target), content),
		GeneratorVersion: ir.GeneratorVersion,
		Properties:       report.Properties,
		Elements:         report.Elements,
		Lines:            report.Lines,
		Skipped:          append([]deck.Skip{}, report.Skipped...),
		Content:          append([]byte(nil), content...),
	}
	if report.Plan != nil {
		for _, p := range report.Plan.Properties {
			for _, set := range p.Sets {
				rec.Sets = append(rec.Sets, SetRecord{
					Property:    p.Name(),
					Name:        set.Name,
					Index:       set.Index,
					Elements:    append([]int(nil), set.Elements...),
					Synthesized: set.Synthesized,
				})
			}
		}
	}
	if rec.Sets == nil {
		rec.Sets = []SetRecord{}
	}
	return rec
}

// ListFilter narrows ListDecks. Empty fields match everything.
type ListFilter struct {
	ModelHash string
	Target    string
}
