package validation

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffgap/internal/shared/testutil"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("test"), 0644))
	return path
}

func TestFileValidator_ValidateFile(t *testing.T) {
	dir := t.TempDir()
	logger, logs := testutil.NewTestLogger(t)
	v := NewFileValidator(logger)

	tests := []struct {
		name          string
		path          string
		wantErr       bool
		errorContains string
	}{
		{"readable file", writeFile(t, dir, "hours.csv"), false, ""},
		{"missing file", filepath.Join(dir, "missing.csv"), true, "does not exist"},
		{"directory", dir, true, "is a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateFile(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}
			assert.NoError(t, err)
		})
	}

	assert.True(t, logs.ContainsMessage("File does not exist"))
}

func TestFileValidator_ValidateWorkbook(t *testing.T) {
	dir := t.TempDir()
	logger, _ := testutil.NewTestLogger(t)
	v := NewFileValidator(logger)

	tests := []struct {
		name          string
		file          string
		errorContains string
	}{
		{"xlsx workbook", "defs.xlsx", ""},
		{"upper case extension", "DEFS.XLSX", ""},
		{"legacy xls", "defs.xls", "not an xlsx workbook"},
		{"lock file", "~$defs.xlsx", "temporary Excel file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateWorkbook(writeFile(t, dir, tt.file))
			if tt.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestFileValidator_ValidateExport(t *testing.T) {
	dir := t.TempDir()
	logger, _ := testutil.NewTestLogger(t)
	v := NewFileValidator(logger)

	assert.NoError(t, v.ValidateExport(writeFile(t, dir, "active.csv")))

	err := v.ValidateExport(writeFile(t, dir, "active.xlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a CSV export")
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	v := NewFileValidator(logger)

	t.Run("creates nested directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "reports", "2025")
		require.NoError(t, v.ValidateOutputDirectory(dir))
		assert.DirExists(t, dir)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries, "write probe is removed")
	})

	t.Run("read-only directory", func(t *testing.T) {
		if runtime.GOOS == "windows" || os.Geteuid() == 0 {
			t.Skip("permission bits are not enforced")
		}
		dir := t.TempDir()
		require.NoError(t, os.Chmod(dir, 0555))
		t.Cleanup(func() { os.Chmod(dir, 0755) })

		err := v.ValidateOutputDirectory(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not writable")
	})
}
