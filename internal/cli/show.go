package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/fedeck/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Database string
}

// ShowResult is an archived deck with its content as text.
type ShowResult struct {
	store.DeckRecord
	Deck string `json:"deck"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print an archived deck",
		Long: `Print an archived deck. The id may be abbreviated to any unique
prefix of at least 8 characters.

With --verbose the resolved element sets and skipped elements are listed
on stderr.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runShow(opts *ShowOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openArchive(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeArchiveFailed, err.Error(), nil)
	}
	defer st.Close()

	rec, err := st.ReadDeck(commandContext(cmd), id)
	if errors.Is(err, store.ErrNotFound) {
		return formatter.Fail(ExitCommandError, ErrCodeDeckNotFound, err.Error(), nil)
	}
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeArchiveFailed, err.Error(), nil)
	}

	if formatter.Format == "json" {
		return formatter.Success(ShowResult{DeckRecord: rec, Deck: string(rec.Content)})
	}

	formatter.VerboseLog("Deck %s (seq %d): %s for %s, generator %s",
		rec.ID, rec.Seq, rec.Target, rec.ModelName, rec.GeneratorVersion)
	for _, set := range rec.Sets {
		formatter.VerboseLog("  set %s of %s: %d element(s), index %d", set.Name, set.Property, len(set.Elements), set.Index)
	}
	for _, skip := range rec.Skipped {
		formatter.VerboseLog("  skipped element %d in %s: %s", skip.Element, skip.Property, skip.Reason)
	}

	if _, err := formatter.Writer.Write(rec.Content); err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("writing deck %s", rec.ID), err)
	}
	return nil
}
