package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/decker502/folio-fx/pkg/embedded"
)

func TestLoadEffects(t *testing.T) {
	embedded.Init(fstest.MapFS{
		EffectsConfigPath: {Data: []byte("particles:\n  count: 42\nscene:\n  variant: blackhole\n")},
	})
	t.Cleanup(func() { embedded.Init(nil) })

	cfg, err := LoadEffects("")
	if err != nil {
		t.Fatalf("LoadEffects(embedded) error: %v", err)
	}
	if cfg.Particles.Count != 42 || cfg.Scene.Variant != "blackhole" {
		t.Errorf("embedded config = %+v", cfg)
	}
	// 未写出的字段取默认值
	if cfg.Window.Width != 1280 || cfg.Cards.Intensity != "medium" {
		t.Errorf("defaults not applied: window %d, intensity %s", cfg.Window.Width, cfg.Cards.Intensity)
	}

	path := filepath.Join(t.TempDir(), "fx.yaml")
	if err := os.WriteFile(path, []byte("cards:\n  intensity: high\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadEffects(path)
	if err != nil {
		t.Fatalf("LoadEffects(file) error: %v", err)
	}
	if cfg.Cards.Intensity != "high" || cfg.Particles.Count != 80 {
		t.Errorf("file config = %+v", cfg)
	}
}

func TestLoadEffectsErrors(t *testing.T) {
	embedded.Init(nil)
	if _, err := LoadEffects(""); !errors.Is(err, embedded.ErrNotInitialized) {
		t.Errorf("uninitialized error = %v, want ErrNotInitialized", err)
	}
	if _, err := LoadEffects(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}

	embedded.Init(fstest.MapFS{EffectsConfigPath: {Data: []byte("cards:\n  intensity: extreme\n")}})
	t.Cleanup(func() { embedded.Init(nil) })
	if _, err := LoadEffects(""); err == nil {
		t.Error("invalid intensity should fail")
	}
}
