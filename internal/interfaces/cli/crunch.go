package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/turtacn/ghscrunch/internal/application/crunch"
	"github.com/turtacn/ghscrunch/internal/infrastructure/monitoring/logging"
)

// NewCrunchCmd runs the selected workflows once and prints the run report.
func NewCrunchCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "crunch [jp|kr|nz]...",
		Short: "Reconcile the selected datasets and write the output tables",
		Long: "Runs the Japan revision merge (jp), the Korea hazard class\n" +
			"disambiguation (kr) and the New Zealand redundancy filter (nz) in the\n" +
			"order given, or all three when no dataset is named. Processing stops at\n" +
			"the first dataset that fails.",
		Example: "  ghscrunch crunch jp kr\n  ghscrunch crunch nz --dry-run -o json",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			datasets, err := parseDatasets(args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if cliCtx.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, cliCtx.Timeout)
				defer cancel()
			}

			rt, err := newRuntime(ctx, cliCtx.Config, cliCtx.Logger, dryRun)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := rt.Close(); cerr != nil {
					cliCtx.Logger.Warn("failed to close sinks", logging.Err(cerr))
				}
			}()

			report, runErr := rt.service.Run(ctx, datasets)
			if report != nil {
				if err := PrintResult(cmd, reportView{report}); err != nil {
					return err
				}
			}
			return runErr
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "run the workflows without writing any output")
	return cmd
}

// reportView renders a crunch.Report as a summary table followed by the
// diagnostics.
type reportView struct {
	*crunch.Report
}

func (v reportView) TableHeaders() []string {
	return []string{"Dataset", "Rows", "Skipped", "Substances", "Retained", "Omitted", "Diagnostics", "Duration", "Status"}
}

func (v reportView) TableRows() [][]string {
	rows := make([][]string, 0, len(v.Datasets))
	for _, d := range v.Datasets {
		status := color.GreenString("ok")
		if d.Error != "" {
			status = color.RedString("failed")
		}
		rows = append(rows, []string{
			string(d.Dataset),
			strconv.Itoa(d.Stats.Rows),
			strconv.Itoa(d.Stats.Skipped),
			strconv.Itoa(d.Stats.Substances),
			strconv.Itoa(d.Stats.Retained),
			strconv.Itoa(d.Stats.Omitted),
			strconv.Itoa(len(d.Diagnostics)),
			d.Duration.Round(time.Millisecond).String(),
			status,
		})
	}
	return rows
}

// WriteDetails prints the diagnostics and errors below the summary table.
func (v reportView) WriteDetails(w io.Writer) {
	var rows [][]string
	for _, d := range v.Datasets {
		for _, diag := range d.Diagnostics {
			rows = append(rows, []string{diag.Dataset, string(diag.Code), diag.Source, diag.Location, diag.Message})
		}
	}
	if len(rows) > 0 {
		fmt.Fprintln(w)
		writeTable(w, []string{"Dataset", "Code", "Source", "Location", "Message"}, rows)
	}
	for _, d := range v.Datasets {
		if d.Error != "" {
			fmt.Fprintf(w, "\n%s %s: %s\n", color.RedString("failed"), d.Dataset, d.Error)
		}
	}
}
