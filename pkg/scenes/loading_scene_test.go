package scenes

import (
	"image/color"
	"math"
	"testing"

	"github.com/decker502/folio-fx/pkg/config"
	"github.com/decker502/folio-fx/pkg/game"
	"github.com/decker502/folio-fx/pkg/render"
	"github.com/hajimehoshi/ebiten/v2"
)

// TestLoadingTimelineSteps 步骤按顺序各触发一次
func TestLoadingTimelineSteps(t *testing.T) {
	tl := NewLoadingTimeline(config.LoadingSteps)

	var fired []string
	for i := 0; i < 240; i++ {
		for _, s := range tl.Advance(1.0 / 60) {
			fired = append(fired, s.Label)
		}
	}

	if len(fired) != len(config.LoadingSteps) {
		t.Fatalf("fired %v, want %d steps", fired, len(config.LoadingSteps))
	}
	for i, s := range config.LoadingSteps {
		if fired[i] != s.Label {
			t.Errorf("step %d = %q, want %q", i, fired[i], s.Label)
		}
	}
}

// TestLoadingTimelineLargeStep 一次大步长触发多个步骤
func TestLoadingTimelineLargeStep(t *testing.T) {
	tl := NewLoadingTimeline(config.LoadingSteps)
	if got := tl.Advance(0.4); len(got) != 0 {
		t.Errorf("Advance(0.4) fired %v", got)
	}
	if got := tl.Advance(1.2); len(got) != 2 {
		t.Errorf("Advance to 1.6s fired %d steps, want 2", len(got))
	}
	if tl.Label() != "Loading assets" {
		t.Errorf("Label() = %q", tl.Label())
	}
	// 负数时间不回退
	tl.Advance(-5)
	if tl.Elapsed() != 1.6 {
		t.Errorf("Elapsed() = %v, want 1.6", tl.Elapsed())
	}
}

// TestLoadingTimelineFade 测试完成与淡出
func TestLoadingTimelineFade(t *testing.T) {
	tests := []struct {
		name     string
		at       float64
		complete bool
		done     bool
		opacity  float64
	}{
		{"开始", 0, false, false, 1},
		{"完成前", 2.9, false, false, 1},
		{"完成时刻", 3.0, true, false, 1},
		{"淡出中", 3.25, true, false, 0.25},
		{"淡出结束", 3.5, true, true, 0},
		{"之后", 10, true, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := NewLoadingTimeline(config.LoadingSteps)
			tl.Advance(tt.at)
			if tl.Complete() != tt.complete || tl.Done() != tt.done {
				t.Errorf("Complete=%v Done=%v", tl.Complete(), tl.Done())
			}
			if math.Abs(tl.Opacity()-tt.opacity) > 1e-9 {
				t.Errorf("Opacity() = %v, want %v", tl.Opacity(), tt.opacity)
			}
			if tl.Progress() < 0 || tl.Progress() > 1 {
				t.Errorf("Progress() = %v out of range", tl.Progress())
			}
		})
	}
}

// stubScene 用于检测场景切换
type stubScene struct{}

func (*stubScene) Update(float64)      {}
func (*stubScene) Draw(*ebiten.Image) {}

// TestLoadingSceneSwitchesOnce 淡出结束后只切换一次
func TestLoadingSceneSwitchesOnce(t *testing.T) {
	sm := game.NewSceneManager()
	loads := 0
	sm.Register("page", func() game.Scene {
		loads++
		return &stubScene{}
	})

	s := NewLoadingScene(sm, "page", 320, 240, nil)
	sm.SwitchTo(s)
	for i := 0; i < 300; i++ {
		s.Update(1.0 / 60)
	}
	if loads != 1 {
		t.Errorf("page scene loaded %d times, want 1", loads)
	}
	if _, ok := sm.GetCurrentScene().(*stubScene); !ok {
		t.Error("scene manager should hold the page scene")
	}
}

// TestLoadingSceneDraw 测试进度条随时间增长
func TestLoadingSceneDraw(t *testing.T) {
	s := NewLoadingScene(nil, "page", 320, 240, []color.NRGBA{{255, 0, 0, 255}, {0, 0, 255, 255}})
	rec := render.NewRecorder(320, 240)

	s.drawTo(rec)
	// 背景 + 轨道，尚无填充
	if got := rec.Count(render.OpFillRect); got != 2 {
		t.Errorf("fill_rect ops at t=0: %d, want 2", got)
	}
	if got := rec.Count(render.OpCircle); got != 12 {
		t.Errorf("ring dots = %d, want 12", got)
	}

	s.Update(1.5)
	s.drawTo(rec)
	ops := rec.Ops()
	fill := ops[len(ops)-1]
	if fill.Kind != render.OpFillRect || math.Abs(fill.W-config.LoadingBarWidth/2) > 1e-9 {
		t.Errorf("progress fill = %+v, want half the bar", fill)
	}
}
