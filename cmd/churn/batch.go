package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/churn/internal/batch"
	"github.com/Veraticus/churn/internal/cli"
	"github.com/spf13/cobra"
)

func batchCmd() *cobra.Command {
	var (
		output string
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:   "batch <input.csv>",
		Short: "Score every customer in a CSV file",
		Long: `Score every customer in a CSV file.

The header must name every customer field. The input columns are copied to the
output followed by each model's prediction and probability, the average
probability, the risk label and, for rows that could not be scored, the error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			rt, _, err := loadRuntime(settings)
			if err != nil {
				return err
			}

			in, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open input: %w", err)
			}
			defer func() { _ = in.Close() }()

			var out io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, createErr := os.Create(output)
				if createErr != nil {
					return fmt.Errorf("failed to create output: %w", createErr)
				}
				defer closeOutput(f, &err)
				out = f
			}

			models := rt.Models()
			names := make([]string, 0, len(models))
			for _, m := range models {
				names = append(names, m.Name)
			}

			cfg := batch.Config{Models: names, CreditScoreMax: settings.Form.CreditScoreMax}
			if !quiet {
				cfg.Progress = cmd.ErrOrStderr()
			}

			summary, err := batch.NewScorer(rt, cfg).Score(cmd.Context(), in, out)
			if err != nil {
				return err
			}

			msg := fmt.Sprintf("Scored %d of %d customers", summary.Scored, summary.Rows)
			if summary.Failed > 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatError(fmt.Sprintf("%s, %d failed", msg, summary.Failed)))
				return nil
			}
			fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess(msg))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")

	return cmd
}

// closeOutput closes a written file and reports its error through errp unless
// an earlier error is already set. A failed close can mean lost writes.
func closeOutput(c io.Closer, errp *error) {
	if cerr := c.Close(); cerr != nil && *errp == nil {
		*errp = fmt.Errorf("failed to close output: %w", cerr)
	}
}
