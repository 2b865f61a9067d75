package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/fedeck/internal/compiler"
	"github.com/roach88/fedeck/internal/deck"
	"github.com/roach88/fedeck/internal/ir"
	"github.com/roach88/fedeck/internal/store"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Target   string
	Output   string // deck file; stdout when empty
	Database string // archive; no archiving when empty
	Strict   bool   // abort on validation errors
}

// GenerateResult is the report of one generate run.
type GenerateResult struct {
	Model      string      `json:"model"`
	ModelHash  string      `json:"model_hash"`
	Target     string      `json:"target"`
	DeckHash   string      `json:"deck_hash"`
	Properties int         `json:"properties"`
	Elements   int         `json:"elements"`
	Lines      int         `json:"lines"`
	Skipped    []deck.Skip `json:"skipped"`
	Output     string      `json:"output,omitempty"`
	ArchiveID  string      `json:"archive_id,omitempty"`
	Archived   bool        `json:"archived,omitempty"`
	// Deck holds the deck text in JSON mode when no output file is given.
	Deck string `json:"deck,omitempty"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <model>",
		Short: "Write the element deck of a model",
		Long: `Compile a model and write the element section of a solver input deck.

Elements the target cannot express are skipped and reported. With --db the
deck is archived; archiving the same deck twice is a no-op.

Examples:
  fedeck generate model.cue --target abaqus
  fedeck generate slab.yaml --target sofistik -o slab.dat --db decks.db
  fedeck generate ./model --target opensees --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Target, "target", "t", "", "target format (abaqus|opensees|sofistik|ansys)")
	_ = cmd.MarkFlagRequired("target")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "deck file (default stdout)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "archive the deck in this SQLite database")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail on model validation errors")

	return cmd
}

func runGenerate(opts *GenerateOptions, modelPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())
	tables := deck.DefaultTables()
	target := deck.Format(strings.ToLower(opts.Target))

	if _, err := tables.Traits.Lookup(target); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeUnknownTarget,
			fmt.Sprintf("unknown target %q: must be one of %v", opts.Target, tables.Traits.Formats()), nil)
	}

	logger.Debug("loading model", "path", modelPath)
	m, err := LoadModel(modelPath)
	if err != nil {
		return formatter.FailLoad(err)
	}

	// Generation registers synthesized sets on the model, so the hash is
	// taken first.
	modelHash, err := ir.ModelHash(m)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("hashing model: %v", err), nil)
	}
	logger.Debug("model loaded", "model", m.Name, "hash", modelHash,
		"elements", len(m.Elements), "properties", len(m.Properties))

	if verrs := compiler.ValidateModel(m, tables); len(verrs) > 0 {
		if opts.Strict {
			return outputValidationErrors(formatter, verrs)
		}
		for _, v := range verrs {
			logger.Warn("model validation", "code", v.Code, "field", v.Field, "error", v.Message)
		}
	}

	gen, err := deck.NewGenerator(deck.Options{Target: target, Tables: &tables, Logger: logger})
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeUnknownTarget, err.Error(), nil)
	}

	var buf bytes.Buffer
	report, err := gen.Generate(&buf, m)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGenerateFailed, err.Error(), generateErrorDetails(err))
	}
	logger.Info("deck generated", "target", target, "elements", report.Elements,
		"skipped", len(report.Skipped), "lines", report.Lines)

	rec := store.NewDeckRecord(m.Name, modelHash, report, buf.Bytes())
	result := GenerateResult{
		Model:      m.Name,
		ModelHash:  modelHash,
		Target:     string(target),
		DeckHash:   rec.DeckHash,
		Properties: report.Properties,
		Elements:   report.Elements,
		Lines:      report.Lines,
		Skipped:    rec.Skipped,
		Output:     opts.Output,
	}

	if opts.Database != "" {
		stored, created, err := archiveDeck(commandContext(cmd), opts, rec)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeArchiveFailed, err.Error(), nil)
		}
		result.ArchiveID = stored.ID
		result.Archived = created
		logger.Debug("deck archived", "id", stored.ID, "seq", stored.Seq, "created", created)
	}

	switch {
	case opts.Output != "":
		if err := os.WriteFile(opts.Output, buf.Bytes(), 0644); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing deck: %v", err), nil)
		}
	case opts.Format == "json":
		result.Deck = buf.String()
	default:
		if _, err := formatter.Writer.Write(buf.Bytes()); err != nil {
			return WrapExitError(ExitCommandError, "writing deck", err)
		}
	}

	return outputGenerateResult(formatter, result)
}

func archiveDeck(ctx context.Context, opts *GenerateOptions, rec store.DeckRecord) (store.DeckRecord, bool, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return store.DeckRecord{}, false, err
	}
	defer st.Close()
	return st.WriteDeck(ctx, rec)
}

func generateErrorDetails(err error) interface{} {
	var lookupErr *deck.LookupError
	if errors.As(err, &lookupErr) {
		return map[string]string{
			"what":     lookupErr.What,
			"name":     lookupErr.Name,
			"property": lookupErr.Property,
		}
	}
	return nil
}

// outputGenerateResult prints the report. In text mode it goes to stderr
// when the deck itself was written to stdout.
func outputGenerateResult(formatter *OutputFormatter, result GenerateResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	if result.Output == "" {
		w = formatter.GetErrWriter()
	}
	fmt.Fprintf(w, "✓ Generated %s deck for %s: %d element(s), %d line(s)\n",
		result.Target, result.Model, result.Elements, result.Lines)
	if len(result.Skipped) > 0 {
		fmt.Fprintf(w, "  %d element(s) skipped:\n", len(result.Skipped))
		for _, s := range result.Skipped {
			fmt.Fprintf(w, "    element %d (%s, %d nodes) in %s: %s\n", s.Element, s.Family, s.Nodes, s.Property, s.Reason)
		}
	}
	if result.Output != "" {
		fmt.Fprintf(w, "Wrote deck to %s\n", result.Output)
	}
	if result.ArchiveID != "" {
		state := "archived"
		if !result.Archived {
			state = "already archived"
		}
		fmt.Fprintf(w, "Deck %s as %s\n", state, result.ArchiveID)
	}
	return nil
}
