package cmd

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/aire-program/aire-impact-dashboard/internal/ioref"
	"github.com/aire-program/aire-impact-dashboard/pkg/config"
	"github.com/aire-program/aire-impact-dashboard/pkg/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// copyReference writes the bundled tables into a directory.
func copyReference(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, tn := range dataset.TableNames() {
		data, err := fs.ReadFile(ioref.FS(), tn.FileName())
		require.NoError(t, err)
		err = os.WriteFile(filepath.Join(dir, tn.FileName()), data, 0644)
		require.NoError(t, err)
	}
	return dir
}

func TestGetReportCmd_Flags(t *testing.T) {
	cmd := getReportCmd()
	assert.Equal(t, "report", cmd.Use)
	for _, v := range []string{
		"dir", "from", "to", "departments", "roles", "format", "out", "focus",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(v), "--%s flag should exist", v)
	}
}

func TestGetServeCmd_Flags(t *testing.T) {
	cmd := getServeCmd()
	assert.Equal(t, "serve", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("port"))
	assert.NotNil(t, cmd.Flags().Lookup("dir"))
	assert.Contains(t, cmd.Long, "/api/dashboard")
}

func TestRunValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("reference", func(t *testing.T) {
		cfg = config.New()
		assert.NoError(t, runValidate(ctx))
	})

	t.Run("directory", func(t *testing.T) {
		cfg = config.New()
		cfg.Update([]config.Option{config.OptDataDir(copyReference(t))})
		assert.NoError(t, runValidate(ctx))
	})

	t.Run("missing files", func(t *testing.T) {
		cfg = config.New()
		cfg.Update([]config.Option{config.OptDataDir(t.TempDir())})
		err := runValidate(ctx)
		require.Error(t, err)
		assert.True(t, dataset.IsMissingInput(err))
	})

	t.Run("bad values", func(t *testing.T) {
		dir := copyReference(t)
		bad := "department_id,department_name,division," +
			"baseline_readiness_score,current_readiness_score," +
			"training_coverage_rate\nD01,Biology,Sciences,0.3,2.5,0.6\n"
		err := os.WriteFile(filepath.Join(dir, "departments.csv"), []byte(bad), 0644)
		require.NoError(t, err)

		cfg = config.New()
		cfg.Update([]config.Option{config.OptDataDir(dir)})
		err = runValidate(ctx)
		require.Error(t, err)
		assert.NotEmpty(t, dataset.Issues(err))
	})
}

func TestRunReport(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		msg    string
		format string
		file   string
	}{
		{"csv", "csv", "overview_readiness.csv"},
		{"xlsx", "xlsx", "aire-report.xlsx"},
		{"json", "json", "aire-report.json"},
		{"sqlite", "sqlite", "aire-report.sqlite"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			if v.format == "sqlite" && testing.Short() {
				t.Skip("skipping SQLite export in short mode")
			}
			out := t.TempDir()
			cfg = config.New()
			cfg.Update([]config.Option{
				config.OptReportFormat(v.format),
				config.OptReportOutputDir(out),
			})
			require.NoError(t, runReport(ctx))
			assert.FileExists(t, filepath.Join(out, v.file))
		})
	}
}

func TestRunReport_Selections(t *testing.T) {
	ctx := context.Background()
	out := t.TempDir()

	cfg = config.New()
	cfg.Update([]config.Option{
		config.OptDataDir(copyReference(t)),
		config.OptReportOutputDir(out),
		config.OptReportFrom("2024-01-01"),
		config.OptReportTo("2024-06-30"),
		config.OptReportDepartmentIDs([]string{"D01", "D02"}),
		config.OptReportRoles([]string{"faculty"}),
		config.OptReportFocusDepartment("D01"),
	})
	require.NoError(t, runReport(ctx))

	for _, v := range []string{
		"adoption_readiness.csv",
		"learning_impact.csv",
		"engagement_timeseries.csv",
		"reflections_themes.csv",
		"D01_snapshot.csv",
		"D01_timeseries.csv",
		"D01_themes.csv",
	} {
		assert.FileExists(t, filepath.Join(out, v))
	}
}

func TestRunReport_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("focus outside selection", func(t *testing.T) {
		cfg = config.New()
		cfg.Update([]config.Option{
			config.OptReportOutputDir(t.TempDir()),
			config.OptReportDepartmentIDs([]string{"D02"}),
			config.OptReportFocusDepartment("D01"),
		})
		assert.Error(t, runReport(ctx))
	})

	t.Run("reversed dates", func(t *testing.T) {
		cfg = config.New()
		cfg.Update([]config.Option{
			config.OptReportOutputDir(t.TempDir()),
			config.OptReportFrom("2024-06-30"),
			config.OptReportTo("2024-01-01"),
		})
		assert.Error(t, runReport(ctx))
	})
}
