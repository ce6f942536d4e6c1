/*
Copyright © 2025 The AIRE Impact Dashboard Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/aire-program/aire-impact-dashboard/pkg/dataset"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getValidateCmd returns the validate command.
func getValidateCmd() *cobra.Command {
	var dir string

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a dataset against the table schemas",
		Long: `Check the six CSV tables against their schemas.

Every table must be present. All violations are reported at once:
missing required columns, missing values, values of a wrong type,
values out of range and values outside their allowed set.

Examples:
  # Validate the bundled reference dataset
  aire validate

  # Validate a directory
  aire validate --dir ./data`,
		RunE: func(cmd *cobra.Command, args []string) error {
			versionFlag(cmd)
			cfg.Update(dirOption(cmd, dir))
			err := runValidate(cmd.Context())
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	addDirFlag(validateCmd, &dir)
	return validateCmd
}

func runValidate(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	gn.Info("Validating <em>%s</em>", sourceName(cfg))
	raw, err := dataLoader(cfg).Load(ctx)
	if err != nil {
		printIssues(err)
		return err
	}

	ds, err := dataset.Build(raw)
	if err != nil {
		printIssues(err)
		return err
	}

	counts := ds.Counts()
	for _, t := range dataset.TableNames() {
		gn.Message("  %-26s %s rows", t.FileName(), humanize.Comma(int64(counts[t])))
	}
	elapsed := gnfmt.TimeString(time.Since(start).Seconds())
	gn.Info("Dataset <em>%s</em> is valid (%s)", ds.ID, elapsed)
	slog.Info("Dataset validated", "dataset_id", ds.ID, "duration", elapsed)
	return nil
}

func printIssues(err error) {
	issues := dataset.Issues(err)
	if len(issues) == 0 {
		return
	}
	gn.Warn("<warn>Found %d schema issues</warn>", len(issues))
	for _, v := range issues {
		gn.Message("  %s", v.String())
	}
	slog.Error("Dataset validation failed", "issues", len(issues))
}
