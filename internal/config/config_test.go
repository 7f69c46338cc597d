package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		name string
		cfg  RuntimeConfig
	}{
		{"rho zero", RuntimeConfig{RhoMax: 0, EnergyMultiplier: 2}},
		{"rho one", RuntimeConfig{RhoMax: 1, EnergyMultiplier: 2}},
		{"rho negative", RuntimeConfig{RhoMax: -0.5, EnergyMultiplier: 2}},
		{"multiplier zero", RuntimeConfig{RhoMax: 0.9, EnergyMultiplier: 0}},
		{"multiplier too large", RuntimeConfig{RhoMax: 0.9, EnergyMultiplier: 4.5}},
	}
	for _, tc := range cases {
		if err := tc.cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
	if err := DefaultRuntimeConfig().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestUpdateBumpsVersionAndKeepsOldOnError(t *testing.T) {
	store, err := NewStore(DefaultRuntimeConfig(), "")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if v := store.Current(); v.Version != 1 {
		t.Fatalf("expected version 1, got %d", v.Version)
	}

	next, err := store.Update(RuntimeConfig{RhoMax: 0.8, EnergyMultiplier: 3.0})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if next.Version != 2 || next.Config.RhoMax != 0.8 {
		t.Fatalf("unexpected versioned value: %+v", next)
	}

	if _, err := store.Update(RuntimeConfig{RhoMax: 2.0, EnergyMultiplier: 3.0}); err == nil {
		t.Fatal("expected invalid update to fail")
	}
	if v := store.Current(); v.Version != 2 || v.Config.RhoMax != 0.8 {
		t.Fatalf("failed update must not change live config: %+v", v)
	}
}

func TestLoadPersistRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "governor.yaml")

	store, err := Load(path)
	if err != nil {
		t.Fatalf("load missing file: %v", err)
	}
	if got := store.Current().Config; got != DefaultRuntimeConfig() {
		t.Fatalf("missing file should yield defaults, got %+v", got)
	}

	if _, err := store.Update(RuntimeConfig{RhoMax: 0.75, EnergyMultiplier: 1.5}); err != nil {
		t.Fatalf("update: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got := reloaded.Current().Config
	if got.RhoMax != 0.75 || got.EnergyMultiplier != 1.5 {
		t.Fatalf("persisted config not round-tripped: %+v", got)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "governor.yaml")
	if err := os.WriteFile(path, []byte("rho_max: [not a number"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
