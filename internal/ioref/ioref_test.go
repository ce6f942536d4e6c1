package ioref_test

import (
	"context"
	"testing"

	"github.com/aire-program/aire-impact-dashboard/internal/ioref"
	"github.com/aire-program/aire-impact-dashboard/pkg/dashboard"
	"github.com/aire-program/aire-impact-dashboard/pkg/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReferenceIsValid guards the bundled data: every table must pass
// its schema with zero issues.
func TestReferenceIsValid(t *testing.T) {
	raw, err := ioref.NewLoader().Load(context.Background())
	require.NoError(t, err)

	err = dataset.Validate(raw)
	require.NoError(t, err)
	assert.Empty(t, dataset.Issues(err))

	for _, tn := range dataset.TableNames() {
		assert.NotEmpty(t, raw[tn], tn)
	}
}

func TestReferenceDashboard(t *testing.T) {
	raw, err := ioref.NewLoader().Load(context.Background())
	require.NoError(t, err)
	ds, err := dataset.Build(raw)
	require.NoError(t, err)

	r := dashboard.Build(ds, dashboard.Selections{})
	assert.Len(t, r.Adoption.Rows, len(ds.Departments))
	assert.NotEmpty(t, r.Impact.Summary)
	assert.NotEmpty(t, r.Engagement.Timeseries)
	assert.NotEqual(t, dashboard.NotAvailable, r.Overview.ReadinessLeader)
	assert.Greater(t, r.Overview.TotalAttendance, 0)

	ds2, err := dataset.Build(raw)
	require.NoError(t, err)
	assert.Equal(t, ds.ID, ds2.ID)
}
