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
	"os"
	"os/signal"
	"syscall"

	"github.com/aire-program/aire-impact-dashboard/internal/ioweb"
	"github.com/aire-program/aire-impact-dashboard/pkg/config"
	"github.com/aire-program/aire-impact-dashboard/pkg/source"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getServeCmd returns the serve command.
func getServeCmd() *cobra.Command {
	var (
		dir  string
		port int
	)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API for the dashboard front end",
		Long: `Start an HTTP server with session-scoped data sources.

Every browser session starts on the reference dataset and may upload
its own six CSV tables. Uploads live in memory only and are lost when
the server stops.

Endpoints:
  GET    /healthcheck
  GET    /api/source          current source of the session
  PUT    /api/source          switch between reference and uploaded data
  POST   /api/upload          multipart upload of the six tables
  DELETE /api/upload          discard uploaded data
  GET    /api/dashboard       all indicators as JSON
  GET    /api/tables/:name    one result table as CSV
  GET    /api/focus/:dept     department snapshot as JSON

Dashboard endpoints accept from, to, departments and roles query
parameters.

Examples:
  aire serve
  aire serve --port 9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			versionFlag(cmd)
			serveOpts := dirOption(cmd, dir)
			if cmd.Flags().Changed("port") {
				serveOpts = append(serveOpts, config.OptServerPort(port))
			}
			cfg.Update(serveOpts)

			err := runServe(cmd.Context())
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	addDirFlag(serveCmd, &dir)
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP port")
	return serveCmd
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ref := source.NewReferenceCache(dataLoader(cfg))
	if _, err := ref.Dataset(); err != nil {
		printIssues(err)
		return err
	}

	gn.Info("Serving <em>%s</em> on port <em>%d</em>", sourceName(cfg), cfg.Server.Port)
	srv := ioweb.New(cfg.Server, ref)
	return srv.Run(ctx)
}
