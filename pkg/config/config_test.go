package config_test

import (
	"path/filepath"
	"testing"

	"github.com/aire-program/aire-impact-dashboard/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "aire"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "aire"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "aire", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "aire", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()
	require.NotNil(t, cfg)

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Log.Destination)

	assert.Equal(t, "", cfg.Data.Dir)

	assert.Equal(t, "csv", cfg.Report.Format)
	assert.Equal(t, "aire-report", cfg.Report.OutputDir)
	assert.Nil(t, cfg.Report.DepartmentIDs)
	assert.Nil(t, cfg.Report.Roles)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 20, cfg.Server.MaxUploadMB)
	assert.Equal(t, 30, cfg.Server.SessionTTLMinutes)
}

func TestOptionLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets debug", "debug", "debug"},
		{"sets error", "error", "error"},
		{"normalizes to lowercase", "WARN", "warn"},
		{"ignores invalid value", "trace", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLogLevel(tt.input)})
			assert.Equal(t, tt.expected, cfg.Log.Level)
		})
	}
}

func TestOptionLogFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets json", "json", "json"},
		{"sets text", "text", "text"},
		{"ignores invalid value", "xml", "json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLogFormat(tt.input)})
			assert.Equal(t, tt.expected, cfg.Log.Format)
		})
	}
}

func TestOptionReportFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets csv", "csv", "csv"},
		{"sets xlsx", "xlsx", "xlsx"},
		{"sets sqlite", " SQLite ", "sqlite"},
		{"sets json", "json", "json"},
		{"ignores invalid value", "parquet", "csv"},
		{"ignores empty value", "", "csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptReportFormat(tt.input)})
			assert.Equal(t, tt.expected, cfg.Report.Format)
		})
	}
}

func TestOptionDataDir(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptDataDir("  /srv/aire  ")})
	assert.Equal(t, "/srv/aire", cfg.Data.Dir)

	cfg.Update([]config.Option{config.OptDataDir("   ")})
	assert.Equal(t, "/srv/aire", cfg.Data.Dir)
}

func TestOptionServerPort(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"sets valid port", 9000, 9000},
		{"ignores zero", 0, 8080},
		{"ignores negative", -1, 8080},
		{"ignores too large", 70000, 8080},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptServerPort(tt.input)})
			assert.Equal(t, tt.expected, cfg.Server.Port)
		})
	}
}

func TestOptionServerSessionTTL(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptServerSessionTTLMinutes(0)})
	assert.Equal(t, 30, cfg.Server.SessionTTLMinutes)

	cfg.Update([]config.Option{config.OptServerSessionTTLMinutes(90)})
	assert.Equal(t, 90, cfg.Server.SessionTTLMinutes)
}

func TestOptionReportLists(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptReportDepartmentIDs([]string{" D01 ", "", "D02"}),
		config.OptReportRoles([]string{"faculty"}),
	})
	assert.Equal(t, []string{"D01", "D02"}, cfg.Report.DepartmentIDs)
	assert.Equal(t, []string{"faculty"}, cfg.Report.Roles)

	cfg.Update([]config.Option{config.OptReportRoles([]string{"  "})})
	assert.Equal(t, []string{"faculty"}, cfg.Report.Roles)
}

func TestMultipleOptions(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptLogLevel("debug"),
		config.OptReportFormat("xlsx"),
		config.OptReportOutputDir("/tmp/out"),
		config.OptServerMaxUploadMB(5),
		config.OptReportFrom("2024-01-01"),
		config.OptReportTo("2024-06-30"),
		config.OptReportFocusDepartment("D03"),
	})

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "xlsx", cfg.Report.Format)
	assert.Equal(t, "/tmp/out", cfg.Report.OutputDir)
	assert.Equal(t, 5, cfg.Server.MaxUploadMB)
	assert.Equal(t, "2024-01-01", cfg.Report.From)
	assert.Equal(t, "2024-06-30", cfg.Report.To)
	assert.Equal(t, "D03", cfg.Report.FocusDepartment)
}

func TestToOptions(t *testing.T) {
	t.Run("converts config to options correctly", func(t *testing.T) {
		original := config.New()
		original.Update([]config.Option{
			config.OptLogLevel("debug"),
			config.OptLogFormat("text"),
			config.OptLogDestination("stdout"),
			config.OptDataDir("/data"),
			config.OptReportFormat("sqlite"),
			config.OptReportOutputDir("/out"),
			config.OptServerPort(9090),
			config.OptServerMaxUploadMB(50),
			config.OptServerSessionTTLMinutes(5),
		})

		newCfg := config.New()
		newCfg.Update(original.ToOptions())

		assert.Equal(t, original.Log, newCfg.Log)
		assert.Equal(t, original.Data, newCfg.Data)
		assert.Equal(t, original.Report.Format, newCfg.Report.Format)
		assert.Equal(t, original.Report.OutputDir, newCfg.Report.OutputDir)
		assert.Equal(t, original.Server, newCfg.Server)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptHomeDir("/custom/home"),
			config.OptReportFrom("2024-01-01"),
			config.OptReportDepartmentIDs([]string{"D01"}),
			config.OptReportFocusDepartment("D01"),
		})

		newCfg := config.New()
		newCfg.Update(cfg.ToOptions())

		assert.Equal(t, "", newCfg.HomeDir)
		assert.Equal(t, "", newCfg.Report.From)
		assert.Nil(t, newCfg.Report.DepartmentIDs)
		assert.Equal(t, "", newCfg.Report.FocusDepartment)
	})
}
