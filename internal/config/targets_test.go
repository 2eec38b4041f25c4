package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, Defaults().Validate())
}

func TestLoadTargets_EmptyPathReturnsDefaults(t *testing.T) {
	got, err := LoadTargets("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)
}

func TestLoadTargets_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("customers: 3\nreview_ratio: 0.5\n"), 0o644))

	got, err := LoadTargets(path)
	require.NoError(t, err)

	want := Defaults()
	want.Customers = 3
	want.ReviewRatio = 0.5
	assert.Equal(t, want, got)
}

func TestLoadTargets_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTargets(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("customers: [1, 2"), 0o644))
	_, err = LoadTargets(bad)
	require.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("review_ratio: 1.5\n"), 0o644))
	_, err = LoadTargets(invalid)
	require.ErrorContains(t, err, "review ratio")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Targets)
		want   string
	}{
		{"negative customers", func(t *Targets) { t.Customers = -1 }, "cannot be negative"},
		{"zero pets", func(t *Targets) { t.MaxPetsPerCustomer = 0 }, "max pets"},
		{"zero items", func(t *Targets) { t.MaxItemsPerReceipt = 0 }, "max items"},
		{"ratio below zero", func(t *Targets) { t.ReviewRatio = -0.1 }, "review ratio"},
		{"zero batch", func(t *Targets) { t.BatchSize = 0 }, "batch sizes"},
		{"zero detail batch", func(t *Targets) { t.DetailBatchSize = 0 }, "batch sizes"},
		{"zero history", func(t *Targets) { t.HistoryYears = 0 }, "history years"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets := Defaults()
			tt.mutate(&targets)
			assert.ErrorContains(t, targets.Validate(), tt.want)
		})
	}
}
