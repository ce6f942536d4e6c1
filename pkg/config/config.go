// Package config provides configuration management for the AIRE impact
// dashboard.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Log: level, format, destination
//   - Data: dir
//   - Report: format, output_dir
//   - Server: port, max_upload_mb, session_ttl_minutes
//
// Runtime-only fields (CLI flags only):
//   - Report.From, To, DepartmentIDs, Roles, FocusDepartment (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use AIRE_ prefix with underscores for nesting:
//
//	AIRE_LOG_LEVEL=info
//	AIRE_DATA_DIR=/srv/aire/data
//	AIRE_REPORT_FORMAT=xlsx
//	AIRE_SERVER_PORT=8080
package config

// Config represents the complete application configuration.
type Config struct {
	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Data points to the tables the dashboard works with.
	Data DataConfig `mapstructure:"data" yaml:"data"`

	// Report contains settings for the report command.
	Report ReportConfig `mapstructure:"report" yaml:"report"`

	// Server contains settings for the HTTP surface.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DataConfig describes where input tables come from.
type DataConfig struct {
	// Dir is a directory with the six CSV tables. When empty, the
	// reference dataset bundled with the binary is used.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// ReportConfig contains settings specific to the report command.
type ReportConfig struct {
	// Format of exported result tables: "csv", "xlsx", "sqlite" or "json".
	Format string `mapstructure:"format" yaml:"format"`

	// OutputDir is where exported reports are written.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// From is the inclusive start date (YYYY-MM-DD) of the date filter.
	// Empty means no lower bound, which disables date filtering.
	From string `mapstructure:"from" yaml:"from"`

	// To is the inclusive end date (YYYY-MM-DD) of the date filter.
	To string `mapstructure:"to" yaml:"to"`

	// DepartmentIDs restricts the report to these departments.
	// Empty slice means no restriction.
	DepartmentIDs []string `mapstructure:"department_ids" yaml:"department_ids"`

	// Roles restricts the report to these participant roles.
	// Empty slice means no restriction.
	Roles []string `mapstructure:"roles" yaml:"roles"`

	// FocusDepartment adds a department snapshot to the report.
	FocusDepartment string `mapstructure:"focus_department" yaml:"focus_department"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Port the HTTP server listens on.
	Port int `mapstructure:"port" yaml:"port"`

	// MaxUploadMB limits the size of a multipart upload bundle.
	MaxUploadMB int `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`

	// SessionTTLMinutes is how long an idle session, with its uploaded
	// data, is kept in memory.
	SessionTTLMinutes int `mapstructure:"session_ttl_minutes" yaml:"session_ttl_minutes"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
		Report: ReportConfig{
			Format:    "csv",
			OutputDir: "aire-report",
		},
		Server: ServerConfig{
			Port:              8080,
			MaxUploadMB:       20,
			SessionTTLMinutes: 30,
		},
	}

	return res
}
