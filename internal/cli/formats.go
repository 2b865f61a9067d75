package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/fedeck/internal/compiler"
	"github.com/roach88/fedeck/internal/deck"
)

// FormatInfo describes one target format.
type FormatInfo struct {
	Name       string `json:"name"`
	Comment    string `json:"comment"`
	DesignPass bool   `json:"design_pass"`
}

// SectionKindInfo describes one section kind.
type SectionKindInfo struct {
	Kind     string   `json:"kind"`
	Family   string   `json:"family"`
	Keyword  string   `json:"keyword,omitempty"`
	Geometry []string `json:"geometry,omitempty"`
}

// FormatsResult lists the built-in tables.
type FormatsResult struct {
	Formats  []FormatInfo      `json:"formats"`
	Sections []SectionKindInfo `json:"sections"`
	// Schema is the CUE model schema, set under --schema.
	Schema string `json:"schema,omitempty"`
}

// FormatsOptions holds flags for the formats command.
type FormatsOptions struct {
	*RootOptions
	Schema bool
}

// NewFormatsCommand creates the formats command.
func NewFormatsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FormatsOptions{RootOptions: rootOpts}
	cmd := &cobra.Command{
		Use:           "formats",
		Short:         "List target formats and section kinds",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormats(opts, cmd)
		},
	}
	cmd.Flags().BoolVar(&opts.Schema, "schema", false, "also print the CUE schema model files are checked against")
	return cmd
}

func runFormats(opts *FormatsOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	result, err := describeTables(deck.DefaultTables())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}
	if opts.Schema {
		result.Schema = compiler.SchemaSource()
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintln(w, "Targets:")
	for _, f := range result.Formats {
		extra := ""
		if f.DesignPass {
			extra = ", design directives"
		}
		fmt.Fprintf(w, "  %-9s comment %q%s\n", f.Name, f.Comment, extra)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Section kinds:")
	for _, s := range result.Sections {
		fmt.Fprintf(w, "  %-12s %-6s %-12s %s\n", s.Kind, s.Family, s.Keyword, strings.Join(s.Geometry, " "))
	}
	if result.Schema != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Model schema:")
		fmt.Fprint(w, result.Schema)
	}
	return nil
}

func describeTables(tables deck.Tables) (FormatsResult, error) {
	var result FormatsResult
	for _, f := range tables.Traits.Formats() {
		tr, err := tables.Traits.Lookup(f)
		if err != nil {
			return FormatsResult{}, err
		}
		result.Formats = append(result.Formats, FormatInfo{Name: string(f), Comment: tr.Comment, DesignPass: tr.DesignPass})
	}
	for _, kind := range tables.Sections.Kinds() {
		info, err := tables.Sections.Lookup(kind)
		if err != nil {
			return FormatsResult{}, err
		}
		result.Sections = append(result.Sections, SectionKindInfo{
			Kind:     string(kind),
			Family:   deck.Classify(kind).String(),
			Keyword:  info.DisplayName,
			Geometry: info.Geometry,
		})
	}
	return result, nil
}
