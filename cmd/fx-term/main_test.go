package main

import (
	"strings"
	"testing"
	"time"

	"github.com/decker502/folio-fx/pkg/config"
	"github.com/decker502/folio-fx/pkg/effects"
	"github.com/decker502/folio-fx/pkg/fx"
	"github.com/decker502/folio-fx/pkg/stage"
	"github.com/gdamore/tcell/v2"
)

// newTestPreview 在 80x30 的模拟终端上创建预览
func newTestPreview(t *testing.T) *Preview {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("simulation screen: %v", err)
	}
	screen.SetSize(80, 30)
	p, err := newPreview(screen, config.Defaults(), 1)
	if err != nil {
		t.Fatalf("newPreview() error: %v", err)
	}
	t.Cleanup(p.cleanup)
	return p
}

func TestPreviewMountsAllLayers(t *testing.T) {
	p := newTestPreview(t)
	if want := len(stage.Layers()); len(p.layers) != want {
		t.Fatalf("layers = %d, want %d", len(p.layers), want)
	}
	if w, h := p.stage.Host().Viewport(); w != 80*8 || h != 30*16 {
		t.Errorf("viewport = %dx%d, want 640x480", w, h)
	}

	p.step(p.last.Add(16 * time.Millisecond))
	p.draw()
	if p.stage.Frames() < 2 {
		t.Errorf("frames = %d after two draws", p.stage.Frames())
	}
}

// 测试按键映射
func TestPreviewKeys(t *testing.T) {
	tests := []struct {
		name  string
		ev    *tcell.EventKey
		check func(p *Preview) bool
		quit  bool
	}{
		{"1 低强度", tcell.NewEventKey(tcell.KeyRune, '1', tcell.ModNone),
			func(p *Preview) bool { return p.stage.Intensity() == fx.IntensityLow }, false},
		{"3 高强度", tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModNone),
			func(p *Preview) bool { return p.stage.Intensity() == fx.IntensityHigh }, false},
		{"s 切换场景", tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone),
			func(p *Preview) bool { return p.stage.SceneVariant() == effects.SceneBlackhole }, false},
		{"h 关闭悬停", tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone),
			func(p *Preview) bool { return !p.stage.HoverEnabled() }, false},
		{"下箭头滚动", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone),
			func(p *Preview) bool { off, _ := p.stage.Host().Scroll(); return off == 60 }, false},
		{"q 退出", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), nil, true},
		{"Esc 退出", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPreview(t)
			if cont := p.handleInput(tt.ev); cont == tt.quit {
				t.Fatalf("handleInput() = %v, want %v", cont, !tt.quit)
			}
			if tt.check != nil && !tt.check(p) {
				t.Errorf("state not updated: %s", p.statusLine())
			}
		})
	}
}

func TestPreviewMouse(t *testing.T) {
	p := newTestPreview(t)
	p.handleInput(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone))
	x, y, ok := p.stage.Host().Pointer()
	if !ok || x != 84 || y != 88 {
		t.Errorf("pointer = (%v,%v,%v), want cell centre (84,88)", x, y, ok)
	}

	p.handleInput(tcell.NewEventMouse(10, 5, tcell.WheelDown, tcell.ModNone))
	if off, _ := p.stage.Host().Scroll(); off != 60 {
		t.Errorf("scroll after wheel = %v, want 60", off)
	}
}

func TestPreviewResize(t *testing.T) {
	p := newTestPreview(t)
	p.resize(40, 20)
	if w, h := p.stage.Host().Viewport(); w != 320 || h != 320 {
		t.Errorf("viewport = %dx%d, want 320x320", w, h)
	}
	if c, r := p.cols, p.rows; c != 40 || r != 20 {
		t.Errorf("cells = %dx%d", c, r)
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("", "off", "high", 500)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Scene.Variant != "off" || cfg.Cards.Intensity != "high" || cfg.Particles.Count != effects.MaxParticles {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if _, err := loadConfig("", "sparkles", "", 0); err == nil || !strings.Contains(err.Error(), "--scene") {
		t.Errorf("invalid scene error = %v", err)
	}
	if _, err := loadConfig("", "", "extreme", 0); err == nil {
		t.Error("invalid intensity should fail")
	}
}
