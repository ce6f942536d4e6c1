package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptDataDir sets the directory with the six input CSV tables.
func OptDataDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Data Directory", s) {
			c.Data.Dir = s
		}
	}
}

// OptReportFormat sets the export format of result tables.
// Valid values: "csv", "xlsx", "sqlite", "json".
func OptReportFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Report.Format", s) {
			c.Report.Format = s
		}
	}
}

// OptReportOutputDir sets where reports are written.
func OptReportOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Report Output Directory", s) {
			c.Report.OutputDir = s
		}
	}
}

// OptReportFrom sets the inclusive start of the date filter.
// Runtime-only field - not in ToOptions().
func OptReportFrom(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Report From", s) {
			c.Report.From = s
		}
	}
}

// OptReportTo sets the inclusive end of the date filter.
// Runtime-only field - not in ToOptions().
func OptReportTo(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Report To", s) {
			c.Report.To = s
		}
	}
}

// OptReportDepartmentIDs restricts reports to the given departments.
// Runtime-only field - not in ToOptions().
func OptReportDepartmentIDs(ss []string) Option {
	ss = cleanList(ss)
	return func(c *Config) {
		if len(ss) > 0 {
			c.Report.DepartmentIDs = ss
		}
	}
}

// OptReportRoles restricts reports to the given participant roles.
// Runtime-only field - not in ToOptions().
func OptReportRoles(ss []string) Option {
	ss = cleanList(ss)
	return func(c *Config) {
		if len(ss) > 0 {
			c.Report.Roles = ss
		}
	}
}

// OptReportFocusDepartment adds a department snapshot to reports.
// Runtime-only field - not in ToOptions().
func OptReportFocusDepartment(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Focus Department", s) {
			c.Report.FocusDepartment = s
		}
	}
}

// OptServerPort sets the HTTP port.
func OptServerPort(i int) Option {
	return func(c *Config) {
		if isValidPort(i) {
			c.Server.Port = i
		}
	}
}

// OptServerMaxUploadMB sets the upload size limit in megabytes.
func OptServerMaxUploadMB(i int) Option {
	return func(c *Config) {
		if isValidInt("Server Max Upload MB", i) {
			c.Server.MaxUploadMB = i
		}
	}
}

// OptServerSessionTTLMinutes sets how long idle sessions are kept.
func OptServerSessionTTLMinutes(i int) Option {
	return func(c *Config) {
		if isValidInt("Server Session TTL Minutes", i) {
			c.Server.SessionTTLMinutes = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

func cleanList(ss []string) []string {
	var res []string
	for _, v := range ss {
		v = strings.TrimSpace(v)
		if v != "" {
			res = append(res, v)
		}
	}
	return res
}
