package cli

import (
	"github.com/spf13/cobra"

	"github.com/turtacn/ghscrunch/pkg/reference"
)

// lookupView is a two or more column listing of reference table entries.
type lookupView struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

func (v lookupView) TableHeaders() []string { return v.Headers }
func (v lookupView) TableRows() [][]string  { return v.Rows }

// NewLookupCmd prints entries of the built-in reference tables.
func NewLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Query the GHS chapter, hazard statement and HSNO translation tables",
	}
	cmd.AddCommand(
		newLookupChapterCmd(reference.Default()),
		newLookupStatementCmd(reference.Default()),
		newLookupHSNOCmd(reference.Default()),
	)
	return cmd
}

func newLookupChapterCmd(tables *reference.Tables) *cobra.Command {
	return &cobra.Command{
		Use:     "chapter [ref]",
		Short:   "Hazard class name of a GHS chapter, or every chapter",
		Example: "  ghscrunch lookup chapter 3.4",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			refs := tables.ChapterRefs()
			if len(args) == 1 {
				refs = args
			}
			view := lookupView{Headers: []string{"Chapter", "Hazard class"}}
			for _, ref := range refs {
				name, err := tables.Chapter(ref)
				if err != nil {
					return err
				}
				view.Rows = append(view.Rows, []string{ref, name})
			}
			return PrintResult(cmd, view)
		},
	}
}

func newLookupStatementCmd(tables *reference.Tables) *cobra.Command {
	return &cobra.Command{
		Use:     "h [code]",
		Aliases: []string{"statement"},
		Short:   "Text of a hazard statement, or every statement",
		Example: "  ghscrunch lookup h H317",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := tables.StatementCodes()
			if len(args) == 1 {
				codes = args
			}
			view := lookupView{Headers: []string{"Code", "Statement"}}
			for _, code := range codes {
				text, err := tables.Statement(code)
				if err != nil {
					return err
				}
				view.Rows = append(view.Rows, []string{code, text})
			}
			return PrintResult(cmd, view)
		},
	}
}

// The HSNO table is partial, so a miss is reported in the output rather
// than as an error.
func newLookupHSNOCmd(tables *reference.Tables) *cobra.Command {
	return &cobra.Command{
		Use:     "hsno [code]",
		Short:   "GHS translation of an HSNO classification code, or every code",
		Example: "  ghscrunch lookup hsno \"6.1A (oral)\"",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := tables.TranslationCodes()
			if len(args) == 1 {
				codes = args
			}
			view := lookupView{Headers: []string{"HSNO code", "GHS translation"}}
			for _, code := range codes {
				tr, known := tables.Translate(code)
				text := tr.String()
				switch {
				case !known:
					text = "no translation"
				case tr.IsZero():
					text = "no GHS equivalent"
				}
				view.Rows = append(view.Rows, []string{code, text})
			}
			return PrintResult(cmd, view)
		},
	}
}
