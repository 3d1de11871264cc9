package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/rkloop/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Field != "rotation" {
		t.Errorf("expected field rotation, got %s", cfg.Field)
	}
	if cfg.Dt != 0.02 {
		t.Errorf("expected dt 0.02, got %f", cfg.Dt)
	}
	if cfg.N != 5000 {
		t.Errorf("expected n 5000, got %d", cfg.N)
	}
	if cfg.EStop != 0.01 {
		t.Errorf("expected e_stop 0.01, got %f", cfg.EStop)
	}
	if cfg.R != 3.1 {
		t.Errorf("expected r 3.1, got %f", cfg.R)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("vanderpol", "limit_cycle")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Field != "vanderpol" {
		t.Errorf("expected field vanderpol, got %s", cfg.Field)
	}
	if cfg.Mu != 2 {
		t.Errorf("expected mu 2, got %f", cfg.Mu)
	}
}

func TestGetPreset_ReturnsCopy(t *testing.T) {
	a := GetPreset("rotation", "circle")
	a.X0[0] = 42
	a.Dt = 1

	b := GetPreset("rotation", "circle")
	if b.X0[0] != 1 || b.Dt != DefaultDt {
		t.Errorf("preset was mutated through a previous copy: %+v", b)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("rotation", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "circle"); cfg != nil {
		t.Error("expected nil for nonexistent field")
	}
}

func TestListPresets(t *testing.T) {
	want := []string{"chaos", "period2", "period4"}
	if diff := cmp.Diff(want, ListPresets("logistic")); diff != "" {
		t.Errorf("ListPresets mismatch (-want +got):\n%s", diff)
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent field")
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, group := range Groups() {
		for _, name := range ListPresets(group) {
			if err := GetPreset(group, name).Validate(); err != nil {
				t.Errorf("preset %s/%s: %v", group, name, err)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"zero n", func(c *Config) { c.N = 0 }},
		{"adaptive without tolerance", func(c *Config) { c.Adaptive = true; c.Err = 0 }},
		{"empty x0", func(c *Config) { c.X0 = nil }},
		{"zero n_skip", func(c *Config) { c.NSkip = 0 }},
		{"zero map_n", func(c *Config) { c.MapN = 0 }},
		{"reversed xlim", func(c *Config) { c.XLim = []float64{4, -4} }},
		{"short ylim", func(c *Config) { c.YLim = []float64{1} }},
		{"flat lims", func(c *Config) { c.Lims = []float64{1, 1} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, dynamo.ErrPrecondition) {
				t.Errorf("expected ErrPrecondition, got %v", err)
			}
		})
	}
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := []byte("field: vanderpol\nmu: 3.5\nx0: [0.5, 0.5]\ne_stop: -1\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := DefaultConfig()
	want.Field = "vanderpol"
	want.Mu = 3.5
	want.X0 = []float64{0.5, 0.5}
	want.EStop = -1
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("dt: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, dynamo.ErrPrecondition) {
		t.Errorf("expected ErrPrecondition, got %v", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	orig := GetPreset("linear", "spiral")
	if err := Save(path, orig); err != nil {
		t.Fatalf("Save: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(orig, back); diff != "" {
		t.Errorf("config changed after save/load (-want +got):\n%s", diff)
	}
}

func TestGetInitState(t *testing.T) {
	cfg := DefaultConfig()
	x := cfg.GetInitState()
	x[0] = 7
	if cfg.X0[0] != 1 {
		t.Error("GetInitState should return a copy")
	}
}
