package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/fedeck/internal/ir"
	"github.com/roach88/fedeck/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Target   string
	Model    string // model file; restricts to decks of its hash
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived decks",
		Long: `List the decks archived by generate --db, oldest first.

Examples:
  fedeck history --db decks.db
  fedeck history --db decks.db --target sofistik
  fedeck history --db decks.db --model slab.cue --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Target, "target", "", "only decks for this target")
	cmd.Flags().StringVar(&opts.Model, "model", "", "only decks generated from this model file")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	filter := store.ListFilter{Target: opts.Target}
	if opts.Model != "" {
		m, err := LoadModel(opts.Model)
		if err != nil {
			return formatter.FailLoad(err)
		}
		if filter.ModelHash, err = ir.ModelHash(m); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("hashing model: %v", err), nil)
		}
	}

	st, err := openArchive(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeArchiveFailed, err.Error(), nil)
	}
	defer st.Close()

	decks, err := st.ListDecks(commandContext(cmd), filter)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeArchiveFailed, err.Error(), nil)
	}

	if formatter.Format == "json" {
		return formatter.Success(decks)
	}

	w := formatter.Writer
	if len(decks) == 0 {
		fmt.Fprintln(w, "No archived decks.")
		return nil
	}
	for _, d := range decks {
		fmt.Fprintf(w, "%4d  %s  %-9s %-16s %5d element(s)  %s\n",
			d.Seq, d.ID, d.Target, d.ModelName, d.Elements, shortHash(d.DeckHash))
	}
	return nil
}

// openArchive opens an existing archive. Unlike store.Open it does not
// create a missing database file.
func openArchive(path string) (*store.Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database not found: %s", path)
	}
	return store.Open(path)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// shortHash trims a hex hash for display.
func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
