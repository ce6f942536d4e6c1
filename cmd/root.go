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
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aire-program/aire-impact-dashboard/internal/iofs"
	"github.com/aire-program/aire-impact-dashboard/internal/iologger"
	aire "github.com/aire-program/aire-impact-dashboard/pkg"
	"github.com/aire-program/aire-impact-dashboard/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir   string
	opts      []config.Option
	cfg       *config.Config
	logCloser io.Closer
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", aire.Version, aire.Build),
		Use:     "aire",
		Short:   "AIRE impact dashboard KPI engine",
		Long: `aire computes AI-readiness indicators for an institution from six
CSV tables: departments, workshops, participants, pre and post
confidence surveys and reflections.

Commands:
  - validate: check a dataset against the table schemas
  - report: compute all indicators and export result tables
  - serve: run the HTTP API for the dashboard front end

Without --dir the synthetic reference dataset bundled with the
binary is used.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (AIRE_*)
  3. Config file (~/.config/aire/config.yaml)
  4. Built-in defaults

Environment Variables:
  AIRE_LOG_LEVEL             Log level (debug/info/warn/error)
  AIRE_LOG_FORMAT            Log format (json/text)
  AIRE_LOG_DESTINATION       Log destination (file/stdout/stderr)
  AIRE_DATA_DIR              Directory with the six CSV tables
  AIRE_REPORT_FORMAT         Export format (csv/xlsx/sqlite/json)
  AIRE_REPORT_OUTPUT_DIR     Export location
  AIRE_SERVER_PORT           HTTP port
  AIRE_SERVER_MAX_UPLOAD_MB  Upload size limit in megabytes
  AIRE_SERVER_SESSION_TTL_MINUTES
                             Minutes an idle session is kept`,
		PersistentPreRunE: bootstrap,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "aire version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for aire")

	rootCmd.AddCommand(getValidateCmd())
	rootCmd.AddCommand(getReportCmd())
	rootCmd.AddCommand(getServeCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Catch YAML syntax errors before viper hides them behind defaults.
	if _, err = iofs.ReadConfigFile(config.ConfigFilePath(homeDir)); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if logCloser, err = iologger.Init(config.LogDir(homeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)
	return nil
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// We bind variables manually so it is clear which ones are allowed.
	// They match the fields returned by config.ToOptions().
	v.SetEnvPrefix("AIRE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Log configuration
	v.BindEnv("log.level", "AIRE_LOG_LEVEL")
	v.BindEnv("log.format", "AIRE_LOG_FORMAT")
	v.BindEnv("log.destination", "AIRE_LOG_DESTINATION")

	// Data configuration
	v.BindEnv("data.dir", "AIRE_DATA_DIR")

	// Report configuration
	v.BindEnv("report.format", "AIRE_REPORT_FORMAT")
	v.BindEnv("report.output_dir", "AIRE_REPORT_OUTPUT_DIR")

	// Server configuration
	v.BindEnv("server.port", "AIRE_SERVER_PORT")
	v.BindEnv("server.max_upload_mb", "AIRE_SERVER_MAX_UPLOAD_MB")
	v.BindEnv("server.session_ttl_minutes", "AIRE_SERVER_SESSION_TTL_MINUTES")

	v.AutomaticEnv()
}
