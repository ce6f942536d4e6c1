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

	"github.com/aire-program/aire-impact-dashboard/internal/ioexport"
	"github.com/aire-program/aire-impact-dashboard/pkg/config"
	"github.com/aire-program/aire-impact-dashboard/pkg/dashboard"
	"github.com/aire-program/aire-impact-dashboard/pkg/dataset"
	"github.com/aire-program/aire-impact-dashboard/pkg/source"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getReportCmd returns the report command.
func getReportCmd() *cobra.Command {
	var (
		dir         string
		from, to    string
		departments []string
		roles       []string
		format      string
		out         string
		focus       string
	)

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Compute indicators and export result tables",
		Long: `Run a dashboard pass over a dataset and export every result table.

Filters are applied date first, then department, then role. A date
filter needs both --from and --to. Role "mixed" alone selects every
role, together with other roles it is ignored.

Formats:
  csv     one file per table in the output directory
  xlsx    aire-report.xlsx with one sheet per table
  sqlite  aire-report.sqlite with one table per result
  json    aire-report.json with all tables

Examples:
  # Report on the bundled reference dataset
  aire report

  # Restrict to two departments and faculty in spring 2024
  aire report --from 2024-01-01 --to 2024-06-30 \
    --departments D01,D02 --roles faculty --format xlsx

  # Add a department snapshot
  aire report --focus D03`,
		RunE: func(cmd *cobra.Command, args []string) error {
			versionFlag(cmd)
			reportOpts := dirOption(cmd, dir)
			if cmd.Flags().Changed("from") {
				reportOpts = append(reportOpts, config.OptReportFrom(from))
			}
			if cmd.Flags().Changed("to") {
				reportOpts = append(reportOpts, config.OptReportTo(to))
			}
			if cmd.Flags().Changed("departments") {
				reportOpts = append(reportOpts, config.OptReportDepartmentIDs(departments))
			}
			if cmd.Flags().Changed("roles") {
				reportOpts = append(reportOpts, config.OptReportRoles(roles))
			}
			if cmd.Flags().Changed("format") {
				reportOpts = append(reportOpts, config.OptReportFormat(format))
			}
			if cmd.Flags().Changed("out") {
				reportOpts = append(reportOpts, config.OptReportOutputDir(out))
			}
			if cmd.Flags().Changed("focus") {
				reportOpts = append(reportOpts, config.OptReportFocusDepartment(focus))
			}
			cfg.Update(reportOpts)

			err := runReport(cmd.Context())
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	addDirFlag(reportCmd, &dir)
	reportCmd.Flags().StringVar(&from, "from", "", "start date YYYY-MM-DD (inclusive)")
	reportCmd.Flags().StringVar(&to, "to", "", "end date YYYY-MM-DD (inclusive)")
	reportCmd.Flags().StringSliceVar(
		&departments, "departments", []string{},
		"department IDs to include (empty = all)",
	)
	reportCmd.Flags().StringSliceVar(
		&roles, "roles", []string{},
		"roles to include: faculty, staff, graduate student, mixed",
	)
	reportCmd.Flags().StringVarP(&format, "format", "f", "", "export format: csv, xlsx, sqlite, json")
	reportCmd.Flags().StringVarP(&out, "out", "o", "", "output directory or file")
	reportCmd.Flags().StringVar(&focus, "focus", "", "department ID for a focus snapshot")

	return reportCmd
}

func runReport(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	rc := cfg.Report

	exp, err := ioexport.New(rc.Format)
	if err != nil {
		return err
	}

	sel, err := dashboard.ParseSelections(rc.From, rc.To, rc.DepartmentIDs, rc.Roles)
	if err != nil {
		return err
	}

	ds, err := activeDataset(ctx)
	if err != nil {
		printIssues(err)
		return err
	}

	rep := dashboard.Build(ds, sel)
	tables := rep.Tables()
	if rc.FocusDepartment != "" {
		f, err := rep.Focus(rc.FocusDepartment)
		if err != nil {
			return err
		}
		tables = append(tables, f.Tables()...)
	}

	path, err := exp.Export(rc.OutputDir, tables)
	if err != nil {
		return err
	}

	printOverview(rep)
	elapsed := gnfmt.TimeString(time.Since(start).Seconds())
	gn.Info("Exported <em>%d</em> tables to <em>%s</em> (%s)", len(tables), path, elapsed)
	slog.Info("Report exported",
		"dataset_id", ds.ID,
		"format", exp.Format(),
		"path", path,
		"duration", elapsed,
	)
	return nil
}

// activeDataset resolves the dataset of a report. A data directory is
// treated as an upload on top of the reference dataset, so it must
// validate completely to be used.
func activeDataset(ctx context.Context) (*dataset.Dataset, error) {
	sess := source.NewSession("cli", source.NewReferenceCache(referenceLoader()))
	if cfg.Data.Dir != "" {
		raw, err := dataLoader(cfg).Load(ctx)
		if err != nil {
			return nil, err
		}
		if err = sess.Upload(raw); err != nil {
			return nil, err
		}
	}

	ds, st, err := sess.Active()
	if err != nil {
		return nil, err
	}
	gn.Info("Using <em>%s</em> data (%s)", st, sourceName(cfg))
	return ds, nil
}

func printOverview(rep *dashboard.Report) {
	o := rep.Overview
	p := rep.Participation
	gn.Message("<em>Overview</em>")
	gn.Message("  Adoption index:        %.1f", o.AdoptionOverall)
	gn.Message("  Training coverage:     %.0f%%", o.CoverageRate*100)
	gn.Message("  Average completion:    %.0f%%", o.AverageCompletion*100)
	gn.Message("  Workshops:             %s", humanize.Comma(int64(p.Workshops)))
	gn.Message("  Registrations:         %s", humanize.Comma(int64(p.Registrations)))
	gn.Message("  Attendances:           %s", humanize.Comma(int64(p.Attendances)))
	gn.Message("  Attendance rate:       %.1f%%", p.AttendanceRate)
	gn.Message("  Readiness leader:      %s", o.ReadinessLeader)
	gn.Message("  Last refreshed:        %s", o.LastRefreshed)
	for _, n := range o.Notes {
		gn.Message("  - %s", n)
	}
}
