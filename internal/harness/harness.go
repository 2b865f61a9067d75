package harness

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/fedeck/internal/compiler"
	"github.com/roach88/fedeck/internal/deck"
)

// Harness runs scenarios with a fixed set of lookup tables.
type Harness struct {
	tables deck.Tables
	logger *slog.Logger
}

// New returns a harness using tables. Logs are discarded unless logger is
// non-nil.
func New(tables deck.Tables, logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{tables: tables, logger: logger}
}

// Run executes a scenario with the default tables.
func Run(scenario *Scenario) (*Result, error) {
	return New(deck.DefaultTables(), nil).Run(scenario)
}

// Run compiles the scenario's model, generates the deck and evaluates the
// assertions. The returned error is non-nil only if the deck could not be
// produced; failed assertions are reported in the Result.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	m, err := compiler.LoadModel(scenario.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}

	target := deck.Format(scenario.Target)
	gen, err := deck.NewGenerator(deck.Options{
		Target: target,
		Tables: &h.tables,
		Logger: h.logger.With("scenario", scenario.Name),
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	report, err := gen.Generate(&buf, m)
	if err != nil {
		return nil, fmt.Errorf("failed to generate deck: %w", err)
	}

	result := NewResult(target)
	result.Deck = buf.String()
	result.Report = report

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}
