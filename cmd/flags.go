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
	"fmt"
	"os"

	"github.com/aire-program/aire-impact-dashboard/internal/iocsv"
	"github.com/aire-program/aire-impact-dashboard/internal/ioref"
	aire "github.com/aire-program/aire-impact-dashboard/pkg"
	"github.com/aire-program/aire-impact-dashboard/pkg/config"
	"github.com/aire-program/aire-impact-dashboard/pkg/dataset"
	"github.com/spf13/cobra"
)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", aire.Version, aire.Build)
		os.Exit(0)
	}
}

// addDirFlag registers --dir, a directory with the six CSV tables.
func addDirFlag(cmd *cobra.Command, dir *string) {
	cmd.Flags().StringVarP(
		dir, "dir", "d", "",
		"directory with the six CSV tables (default: bundled reference data)",
	)
}

// dirOption turns an explicitly set --dir flag into a config option.
func dirOption(cmd *cobra.Command, dir string) []config.Option {
	if !cmd.Flags().Changed("dir") {
		return nil
	}
	return []config.Option{config.OptDataDir(dir)}
}

// referenceLoader returns the loader of the bundled reference dataset.
func referenceLoader() dataset.Loader {
	return ioref.NewLoader()
}

// dataLoader returns a loader for the configured data directory, or the
// reference loader when none is set.
func dataLoader(c *config.Config) dataset.Loader {
	if c.Data.Dir == "" {
		return referenceLoader()
	}
	return iocsv.NewDirLoader(c.Data.Dir)
}

// sourceName describes where data come from for console output.
func sourceName(c *config.Config) string {
	if c.Data.Dir == "" {
		return "bundled reference dataset"
	}
	return c.Data.Dir
}
