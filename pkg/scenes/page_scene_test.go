package scenes

import (
	"testing"

	"github.com/decker502/folio-fx/pkg/config"
	"github.com/decker502/folio-fx/pkg/effects"
	"github.com/decker502/folio-fx/pkg/fx"
	"github.com/decker502/folio-fx/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func newTestPageScene(t *testing.T) (*PageScene, *game.SettingsManager) {
	t.Helper()
	cfg := config.Defaults()
	cfg.Window.Width, cfg.Window.Height = 320, 240
	settings := game.NewSettingsManager(nil, game.SettingsFromConfig(cfg))
	s, err := NewPageScene(cfg, settings, 1)
	if err != nil {
		t.Fatalf("NewPageScene() error: %v", err)
	}
	t.Cleanup(s.Unmount)
	return s, settings
}

// TestPageSceneKeys 快捷键同时修改舞台和设置
func TestPageSceneKeys(t *testing.T) {
	s, settings := newTestPageScene(t)

	tests := []struct {
		name  string
		key   ebiten.Key
		check func(t *testing.T)
	}{
		{"强度 high", ebiten.Key3, func(t *testing.T) {
			if s.Stage().Intensity() != fx.IntensityHigh || settings.GetSettings().Intensity != "high" {
				t.Errorf("intensity stage=%v settings=%q", s.Stage().Intensity(), settings.GetSettings().Intensity)
			}
		}},
		{"强度 low", ebiten.Key1, func(t *testing.T) {
			if s.Stage().Intensity() != fx.IntensityLow {
				t.Errorf("intensity = %v", s.Stage().Intensity())
			}
		}},
		{"切换场景", ebiten.KeyS, func(t *testing.T) {
			if s.Stage().SceneVariant() != effects.SceneBlackhole || settings.GetSettings().SceneVariant != "blackhole" {
				t.Errorf("variant = %v", s.Stage().SceneVariant())
			}
		}},
		{"关闭悬停", ebiten.KeyH, func(t *testing.T) {
			if settings.GetSettings().HoverEnabled || s.Stage().HoverEnabled() {
				t.Error("hover should be disabled")
			}
		}},
		{"重新开启悬停", ebiten.KeyH, func(t *testing.T) {
			if !settings.GetSettings().HoverEnabled || !s.Stage().HoverEnabled() {
				t.Error("hover should be enabled again")
			}
		}},
		{"运动模式", ebiten.KeyT, func(t *testing.T) {
			if !settings.GetSettings().TimeScaledMotion {
				t.Error("time scaled motion should be toggled on")
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.handleKey(tt.key)
			tt.check(t)
		})
	}
}

// TestPageSceneHoverToggleWithoutSettings 没有设置管理器时 H 键按舞台当前状态切换
func TestPageSceneHoverToggleWithoutSettings(t *testing.T) {
	cfg := config.Defaults()
	cfg.Window.Width, cfg.Window.Height = 320, 240
	s, err := NewPageScene(cfg, nil, 1)
	if err != nil {
		t.Fatalf("NewPageScene() error: %v", err)
	}
	t.Cleanup(s.Unmount)

	for i, want := range []bool{false, true, false} {
		s.handleKey(ebiten.KeyH)
		if got := s.Stage().HoverEnabled(); got != want {
			t.Errorf("第 %d 次按 H 后 HoverEnabled() = %v, want %v", i+1, got, want)
		}
	}
}

// TestPageSceneUnmount 卸载后舞台停止
func TestPageSceneUnmount(t *testing.T) {
	s, _ := newTestPageScene(t)
	s.Unmount()
	if s.Stage().Mounted() {
		t.Error("stage should be unmounted")
	}
	if n := s.Stage().Host().ListenerCount(); n != 0 {
		t.Errorf("listeners after unmount = %d", n)
	}
}
