package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadFrom tests configuration loading with various scenarios
func TestLoadFrom(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		fileContent string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no env vars or file",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, []int{13, 26}, cfg.Headcount.Windows)
				assert.Equal(t, DefaultMaxUploadBytes, cfg.Headcount.MaxUploadBytes)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.True(t, cfg.Security.RateLimit.Enabled)
			},
		},
		{
			name: "environment overrides",
			env: map[string]string{
				"STAFFGAP_SERVER_PORT":       "9090",
				"STAFFGAP_HEADCOUNT_WINDOWS": "12",
				"STAFFGAP_LOGGING_LEVEL":     "debug",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, []int{12}, cfg.Headcount.Windows)
				assert.Equal(t, "debug", cfg.Logging.Level)
			},
		},
		{
			name: "yaml file applies where env is unset",
			fileContent: `
server:
  port: 7070
headcount:
  windows: [26]
paths:
  base_dir: /srv/staffgap
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7070, cfg.Server.Port)
				assert.Equal(t, []int{26}, cfg.Headcount.Windows)
				assert.Equal(t, "/srv/staffgap", cfg.Paths.BaseDir)
			},
		},
		{
			name: "env wins over yaml file",
			env:  map[string]string{"STAFFGAP_SERVER_PORT": "9191"},
			fileContent: `
server:
  port: 7070
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9191, cfg.Server.Port)
			},
		},
		{
			name:    "unsupported window rejected",
			env:     map[string]string{"STAFFGAP_HEADCOUNT_WINDOWS": "13,52"},
			wantErr: true,
		},
		{
			name:    "invalid port rejected",
			env:     map[string]string{"STAFFGAP_SERVER_PORT": "70000"},
			wantErr: true,
		},
		{
			name:        "malformed yaml rejected",
			fileContent: "server: [unterminated",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			configFile := ""
			if tt.fileContent != "" {
				configFile = filepath.Join(t.TempDir(), "config.yaml")
				require.NoError(t, os.WriteFile(configFile, []byte(tt.fileContent), 0644))
			}

			cfg, err := LoadFrom(configFile)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestLoadFromMissingFileFallsBackToEnv(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestValidateNormalisesLogging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "text"
	cfg.Logging.Output = "syslog"
	cfg.Logging.FilePath = ""

	require.NoError(t, cfg.validate())
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "both", cfg.Logging.Output)
	assert.Equal(t, "logs/app.log", cfg.Logging.FilePath)
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().validate())
}

func TestIsAllowedWindow(t *testing.T) {
	for _, w := range []int{12, 13, 26} {
		assert.True(t, IsAllowedWindow(w), "window %d", w)
	}
	for _, w := range []int{0, -1, 1, 14, 52} {
		assert.False(t, IsAllowedWindow(w), "window %d", w)
	}
}

func TestParseWindows(t *testing.T) {
	tests := []struct {
		raw      string
		expected []int
		wantErr  bool
	}{
		{"", nil, false},
		{"13", []int{13}, false},
		{" 13 , 26 ", []int{13, 26}, false},
		{"13,x", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseWindows(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
