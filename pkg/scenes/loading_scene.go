package scenes

import (
	"image/color"
	"log"
	"math"

	"github.com/decker502/folio-fx/pkg/config"
	"github.com/decker502/folio-fx/pkg/game"
	"github.com/decker502/folio-fx/pkg/render"
	"github.com/decker502/folio-fx/pkg/render/ebitenrender"
	"github.com/decker502/folio-fx/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// LoadingTimeline 加载界面的时间轴
// 步骤按时间顺序各触发一次，到达完成时刻后开始淡出
type LoadingTimeline struct {
	steps   []config.LoadingStep
	elapsed float64
	fired   int
}

// NewLoadingTimeline 创建时间轴
func NewLoadingTimeline(steps []config.LoadingStep) *LoadingTimeline {
	return &LoadingTimeline{steps: steps}
}

// Advance 推进 dt 秒，返回本次新触发的步骤
func (t *LoadingTimeline) Advance(dt float64) []config.LoadingStep {
	if dt > 0 {
		t.elapsed += dt
	}
	start := t.fired
	for t.fired < len(t.steps) && t.elapsed >= t.steps[t.fired].At {
		t.fired++
	}
	return t.steps[start:t.fired]
}

// Elapsed 已经过的时间（秒）
func (t *LoadingTimeline) Elapsed() float64 { return t.elapsed }

// Progress 进度条比例 [0, 1]
func (t *LoadingTimeline) Progress() float64 {
	return math.Min(t.elapsed/config.LoadingCompleteAt, 1)
}

// Label 最近一次触发的步骤名称，尚未触发时为空
func (t *LoadingTimeline) Label() string {
	if t.fired == 0 {
		return ""
	}
	return t.steps[t.fired-1].Label
}

// Complete 是否已到达完成时刻
func (t *LoadingTimeline) Complete() bool {
	return t.elapsed >= config.LoadingCompleteAt
}

// Opacity 加载界面不透明度，完成后在淡出时间内降到 0
func (t *LoadingTimeline) Opacity() float64 {
	if !t.Complete() {
		return 1
	}
	p := (t.elapsed - config.LoadingCompleteAt) / config.LoadingFadeDuration
	return 1 - utils.EaseOutQuad(math.Min(p, 1))
}

// Done 淡出结束
func (t *LoadingTimeline) Done() bool {
	return t.elapsed >= config.LoadingCompleteAt+config.LoadingFadeDuration
}

// LoadingScene 启动时显示的加载界面
// 淡出结束后通过 SceneManager 切换到 next 场景
type LoadingScene struct {
	sceneManager *game.SceneManager
	next         string

	timeline *LoadingTimeline
	surface  *ebitenrender.Surface
	palette  []color.NRGBA
	face     text.Face
	switched bool
}

// NewLoadingScene creates a new loading scene.
func NewLoadingScene(sm *game.SceneManager, next string, width, height int, palette []color.NRGBA) *LoadingScene {
	if len(palette) == 0 {
		palette = []color.NRGBA{{0x3b, 0x82, 0xf6, 0xff}}
	}
	return &LoadingScene{
		sceneManager: sm,
		next:         next,
		timeline:     NewLoadingTimeline(config.LoadingSteps),
		surface:      ebitenrender.NewSurface(width, height),
		palette:      palette,
		face:         text.NewGoXFace(basicfont.Face7x13),
	}
}

// Timeline 返回时间轴
func (s *LoadingScene) Timeline() *LoadingTimeline {
	return s.timeline
}

// Update updates the loading scene logic.
func (s *LoadingScene) Update(deltaTime float64) {
	for _, step := range s.timeline.Advance(deltaTime) {
		log.Printf("[LoadingScene] %.1fs: %s", step.At, step.Label)
	}
	if s.timeline.Done() && !s.switched {
		s.switched = true
		log.Printf("[LoadingScene] 加载完成，切换到 %s", s.next)
		if s.sceneManager != nil {
			s.sceneManager.Load(s.next)
		}
	}
}

// Draw renders the loading screen.
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	s.surface.Resize(w, h)
	ctx, err := s.surface.Context2D()
	if err != nil {
		return
	}
	s.drawTo(ctx)

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(s.timeline.Opacity()))
	screen.DrawImage(s.surface.Image(), op)
	s.drawLabel(screen, float64(w), float64(h))
}

// drawTo 绘制背景、旋转光环和进度条
func (s *LoadingScene) drawTo(ctx render.Context2D) {
	w, h := ctx.Size()
	cx, cy := float64(w)/2, float64(h)/2

	ctx.Clear()
	ctx.FillRect(0, 0, float64(w), float64(h), color.NRGBA{0x0a, 0x0a, 0x14, 0xff})

	// 光环：12 个点，头部最亮
	const dots = 12
	head := s.timeline.Elapsed() * 2 * math.Pi
	for i := 0; i < dots; i++ {
		a := head - float64(i)*2*math.Pi/dots
		c := s.palette[i%len(s.palette)]
		c.A = uint8(255 * (1 - float64(i)/dots))
		x := cx + math.Cos(a)*config.LoadingRingRadius
		y := cy - 40 + math.Sin(a)*config.LoadingRingRadius
		ctx.FillCircle(x, y, 3, c, 6)
	}

	barX := cx - config.LoadingBarWidth/2
	barY := cy + 30
	ctx.FillRect(barX, barY, config.LoadingBarWidth, config.LoadingBarHeight, color.NRGBA{255, 255, 255, 30})
	if p := s.timeline.Progress(); p > 0 {
		fill := render.Mix(s.palette[0], s.palette[len(s.palette)-1], p)
		ctx.FillRect(barX, barY, config.LoadingBarWidth*p, config.LoadingBarHeight, fill)
	}
}

func (s *LoadingScene) drawLabel(screen *ebiten.Image, w, h float64) {
	label := s.timeline.Label()
	if label == "" {
		return
	}
	tw, _ := text.Measure(label, s.face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate((w-tw)/2, h/2+50)
	op.ColorScale.ScaleAlpha(float32(0.7 * s.timeline.Opacity()))
	text.Draw(screen, label, s.face, op)
}
