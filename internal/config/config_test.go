package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/odeivp/internal/ivp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "polynomial", cfg.Problem)
	assert.Equal(t, "rk4", cfg.Method)
	assert.Greater(t, cfg.B, cfg.A)
	assert.Positive(t, cfg.Steps)
	require.NoError(t, cfg.Validate())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := []byte("problem: logistic\nmethod: rkf45\nb: 5\ntolerance: 1e-7\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "logistic", cfg.Problem)
	assert.Equal(t, "rkf45", cfg.Method)
	assert.Equal(t, 5.0, cfg.B)
	assert.Equal(t, 1e-7, cfg.Tolerance)
	assert.Equal(t, DefaultHMax, cfg.HMax, "omitted keys keep their defaults")
	assert.Equal(t, DefaultSteps, cfg.Steps)
}

func TestLoadOver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("problem: decay\nsteps: 30\n"), 0644))

	base := DefaultConfig()
	base.A, base.B, base.X0 = 0, 3, 1

	cfg, err := LoadOver(path, base)
	require.NoError(t, err)
	assert.Equal(t, "decay", cfg.Problem)
	assert.Equal(t, 30, cfg.Steps)
	assert.Equal(t, 3.0, cfg.B, "omitted keys keep the base values")
	assert.Equal(t, 1.0, cfg.X0)

	assert.Equal(t, DefaultSteps, base.Steps, "base must not be modified")
	assert.Equal(t, DefaultProblem, base.Problem)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	cfg := GetPreset("gaussian", "tight")
	require.NotNil(t, cfg)

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps: [not, a, number]\n"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty problem", func(c *Config) { c.Problem = "" }},
		{"empty method", func(c *Config) { c.Method = "" }},
		{"reversed interval", func(c *Config) { c.A, c.B = 2, 0 }},
		{"zero steps", func(c *Config) { c.Steps = 0 }},
		{"zero tolerance", func(c *Config) { c.Tolerance = 0 }},
		{"hmin above hmax", func(c *Config) { c.HMin, c.HMax = 1, 0.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ivp.ErrInvalidParameter)
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("polynomial", "rkf45")
	require.NotNil(t, cfg)
	assert.Equal(t, 1e-5, cfg.Tolerance)
	assert.Equal(t, 0.01, cfg.HMin)
	assert.Equal(t, 0.25, cfg.HMax)

	cfg.Tolerance = 1
	assert.Equal(t, 1e-5, Presets["polynomial"]["rkf45"].Tolerance, "GetPreset must return a copy")
}

func TestGetPreset_NotFound(t *testing.T) {
	assert.Nil(t, GetPreset("polynomial", "nonexistent"))
	assert.Nil(t, GetPreset("nonexistent", "rk4"))
}

func TestListPresets(t *testing.T) {
	assert.Equal(t, []string{"abm4", "euler", "rk4", "rkf45"}, ListPresets("polynomial"))
	assert.Nil(t, ListPresets("nonexistent"))
}

func TestPresetsAreValid(t *testing.T) {
	for problem, presets := range Presets {
		for name, cfg := range presets {
			assert.NoError(t, cfg.Validate(), "%s/%s", problem, name)
			assert.Equal(t, problem, cfg.Problem, "%s/%s", problem, name)
		}
	}
}
