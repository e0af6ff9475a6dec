package game

import (
	"os"
	"testing"

	"github.com/decker502/folio-fx/pkg/config"
	"github.com/decker502/folio-fx/pkg/effects"
	"github.com/decker502/folio-fx/pkg/fx"
	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下创建 gdata manager
func openTestGdata(t *testing.T, app string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultSettings 测试默认设置与默认配置一致
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.Intensity != "medium" {
		t.Errorf("Intensity: got %q, want medium", s.Intensity)
	}
	if !s.HoverEnabled {
		t.Error("HoverEnabled: got false, want true")
	}
	if s.SceneVariant != "nodes" {
		t.Errorf("SceneVariant: got %q, want nodes", s.SceneVariant)
	}
	if s.ParticleCount != 80 {
		t.Errorf("ParticleCount: got %d, want 80", s.ParticleCount)
	}
	if s.TimeScaledMotion || s.Fullscreen {
		t.Error("TimeScaledMotion and Fullscreen should default to false")
	}
}

// TestApplyTo 测试设置写回配置
func TestApplyTo(t *testing.T) {
	cfg := config.Defaults()
	s := &EffectSettings{Intensity: "high", SceneVariant: "off", ParticleCount: 12, TimeScaledMotion: true}
	s.ApplyTo(cfg)

	if cfg.Cards.IntensityValue() != fx.IntensityHigh {
		t.Errorf("intensity = %v", cfg.Cards.IntensityValue())
	}
	if cfg.Cards.Hover() {
		t.Error("hover should be disabled")
	}
	if cfg.Scene.Variant != "off" || cfg.Particles.Count != 12 || !cfg.Particles.TimeScaledMotion {
		t.Errorf("cfg = %+v %+v", cfg.Scene, cfg.Particles)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil, nil)

	if sm.GetSettings().Intensity != "medium" {
		t.Errorf("Degraded mode Intensity: got %q", sm.GetSettings().Intensity)
	}
	// 降级模式下 Save() 不报错
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got: %v", err)
	}

	// Load() 恢复回退值
	sm.SetParticleCount(10)
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should return nil, got: %v", err)
	}
	if sm.GetSettings().ParticleCount != 80 {
		t.Errorf("After Load(), ParticleCount: got %d, want 80", sm.GetSettings().ParticleCount)
	}
}

// TestCustomDefaults 测试使用配置派生的回退设置
func TestCustomDefaults(t *testing.T) {
	defaults := &EffectSettings{Intensity: "low", SceneVariant: "blackhole", ParticleCount: 30}
	sm := NewSettingsManager(nil, defaults)

	defaults.ParticleCount = 99
	if sm.GetSettings().ParticleCount != 30 {
		t.Errorf("manager should copy defaults, got %d", sm.GetSettings().ParticleCount)
	}
	if sm.GetSettings().SceneVariant != "blackhole" {
		t.Errorf("SceneVariant: got %q", sm.GetSettings().SceneVariant)
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 往返
func TestSettingsLoadSave(t *testing.T) {
	m := openTestGdata(t, "test_fx_settings")

	sm1 := NewSettingsManager(m, nil)
	sm1.SetIntensity(fx.IntensityHigh)
	sm1.SetHoverEnabled(false)
	sm1.SetSceneVariant(effects.SceneBlackhole)
	sm1.SetParticleCount(42)
	sm1.SetTimeScaledMotion(true)
	sm1.SetFullscreen(true)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewSettingsManager(m, nil)
	got := *sm2.GetSettings()
	want := EffectSettings{
		Intensity:        "high",
		HoverEnabled:     false,
		SceneVariant:     "blackhole",
		ParticleCount:    42,
		TimeScaledMotion: true,
		Fullscreen:       true,
	}
	if got != want {
		t.Errorf("loaded settings = %+v, want %+v", got, want)
	}
}

// TestLoadSanitizesFields 测试非法字段回退为默认值
func TestLoadSanitizesFields(t *testing.T) {
	m := openTestGdata(t, "test_fx_settings_sanitize")

	raw := []byte("intensity: extreme\nsceneVariant: galaxy\nparticleCount: 500\nfullscreen: true\n")
	if err := m.SaveObjectProp(settingsObject, settingsProperty, raw); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := NewSettingsManager(m, nil)
	s := sm.GetSettings()
	if s.Intensity != "medium" || s.SceneVariant != "nodes" || s.ParticleCount != 80 {
		t.Errorf("sanitized settings = %+v", s)
	}
	// 合法字段保留
	if !s.Fullscreen {
		t.Error("Fullscreen should be kept")
	}
}

// TestLoadCorruptData 测试损坏数据时返回错误并使用默认设置
func TestLoadCorruptData(t *testing.T) {
	m := openTestGdata(t, "test_fx_settings_corrupt")
	if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte("::: not yaml [")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := NewSettingsManager(m, nil)
	if err := sm.Load(); err == nil {
		t.Error("Load() should fail on corrupt data")
	}
	if sm.GetSettings().Intensity != "medium" {
		t.Errorf("Intensity after failed load: %q", sm.GetSettings().Intensity)
	}
}

// TestSetParticleCountClamp 测试粒子数量范围校验
func TestSetParticleCountClamp(t *testing.T) {
	sm := NewSettingsManager(nil, nil)

	tests := []struct {
		input    int
		expected int
	}{
		{50, 50},   // 正常值
		{1, 1},     // 下限
		{100, 100}, // 上限
		{0, 1},     // 低于下限
		{-5, 1},
		{250, 100}, // 高于上限
	}

	for _, tt := range tests {
		sm.SetParticleCount(tt.input)
		if got := sm.GetSettings().ParticleCount; got != tt.expected {
			t.Errorf("SetParticleCount(%d): got %d, want %d", tt.input, got, tt.expected)
		}
	}
}

// TestOpenSettings 测试按应用名打开存储
func TestOpenSettings(t *testing.T) {
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", originalHome)

	sm := OpenSettings("test_fx_open", nil)
	sm.SetIntensity(fx.IntensityLow)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if got := OpenSettings("test_fx_open", nil).GetSettings().Intensity; got != "low" {
		t.Errorf("reopened Intensity = %q, want low", got)
	}
}
