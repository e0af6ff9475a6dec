package effects

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/decker502/folio-fx/pkg/fx"
	"github.com/decker502/folio-fx/pkg/render"
	"github.com/decker502/folio-fx/pkg/signal"
)

// MaxParticles 粒子数量上限，连线是 O(n²) 的遍历
const MaxParticles = 100

// ParticleFieldOptions 粒子场参数
type ParticleFieldOptions struct {
	Count           int
	LinkDistance    float64
	LinkAlphaScale  float64
	LinkWidth       float64
	Glow            float64
	HighlightRadius float64
	// TimeScaled 为 true 时速度乘以 dt*60，使运动与刷新率无关
	TimeScaled bool
	Ranges     fx.ParticleRanges
	LinkColor  color.NRGBA
	Background []render.GradientStop
	Highlight  []render.GradientStop
}

// DefaultParticleFieldOptions 原站点背景的取值
func DefaultParticleFieldOptions() ParticleFieldOptions {
	return ParticleFieldOptions{
		Count:           80,
		LinkDistance:    100,
		LinkAlphaScale:  0.1,
		LinkWidth:       0.5,
		Glow:            20,
		HighlightRadius: 150,
		Ranges:          fx.DefaultParticleRanges(),
		LinkColor:       color.NRGBA{R: 59, G: 130, B: 246, A: 255},
		Background: []render.GradientStop{
			{Offset: 0, Color: render.HSL(220, 0.13, 0.12)},
			{Offset: 0.5, Color: render.HSL(220, 0.13, 0.09)},
			{Offset: 1, Color: render.HSL(220, 0.13, 0.06)},
		},
		Highlight: []render.GradientStop{
			{Offset: 0, Color: render.HSLA(217, 0.91, 0.6, 0.1)},
			{Offset: 0.5, Color: render.HSLA(280, 1, 0.7, 0.05)},
			{Offset: 1, Color: color.NRGBA{}},
		},
	}
}

func (o *ParticleFieldOptions) normalize() {
	def := DefaultParticleFieldOptions()
	if o.Count <= 0 {
		o.Count = def.Count
	}
	if o.Count > MaxParticles {
		o.Count = MaxParticles
	}
	if o.LinkDistance <= 0 {
		o.LinkDistance = def.LinkDistance
	}
	if o.LinkAlphaScale <= 0 {
		o.LinkAlphaScale = def.LinkAlphaScale
	}
	if o.LinkWidth <= 0 {
		o.LinkWidth = def.LinkWidth
	}
	if o.HighlightRadius <= 0 {
		o.HighlightRadius = def.HighlightRadius
	}
	if o.Ranges == (fx.ParticleRanges{}) {
		o.Ranges = def.Ranges
	}
	if o.LinkColor == (color.NRGBA{}) {
		o.LinkColor = def.LinkColor
	}
	if len(o.Background) == 0 {
		o.Background = def.Background
	}
	if len(o.Highlight) == 0 {
		o.Highlight = def.Highlight
	}
}

// ParticleField 全视口粒子背景
//
// 每帧按固定顺序：清空 → 背景渐变 → 推进并绘制粒子 → 近距离连线 → 指针高光。
// 视口尺寸变化时表面同步调整，粒子按新尺寸全部重建。
type ParticleField struct {
	opts    ParticleFieldOptions
	pointer *signal.Pointer
	rng     *rand.Rand
	loop    loop

	particles []fx.Particle
	links     []fx.Link
	frames    int
}

// NewParticleField 创建粒子场，pointer 可为 nil（不绘制指针高光）
func NewParticleField(surface render.Surface, h Host, pointer *signal.Pointer, rng *rand.Rand, opts ParticleFieldOptions) *ParticleField {
	opts.normalize()
	f := &ParticleField{opts: opts, pointer: pointer, rng: rng}
	f.loop = loop{
		name:     "ParticleField",
		host:     h,
		surface:  surface,
		onFrame:  f.frame,
		onResize: f.reset,
	}
	return f
}

// Mount 挂载：调整表面、生成粒子、开始帧循环
// 无法获取绘图上下文时什么也不做，返回 false
func (f *ParticleField) Mount() bool {
	if !f.loop.start() {
		return false
	}
	w, h := f.loop.surface.Size()
	f.reset(w, h)
	return true
}

// Unmount 取消帧循环并丢弃粒子
func (f *ParticleField) Unmount() {
	f.loop.stop()
	f.particles = nil
	f.links = nil
}

// Mounted 报告帧循环是否在运行
func (f *ParticleField) Mounted() bool {
	return f.loop.running
}

func (f *ParticleField) reset(width, height int) {
	f.particles = fx.NewParticles(f.rng, f.opts.Count, float64(width), float64(height), f.opts.Ranges)
}

// Particles 返回当前粒子的副本
func (f *ParticleField) Particles() []fx.Particle {
	out := make([]fx.Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Links 返回最近一帧的连线副本
func (f *ParticleField) Links() []fx.Link {
	out := make([]fx.Link, len(f.links))
	copy(out, f.links)
	return out
}

// Frames 已绘制的帧数
func (f *ParticleField) Frames() int {
	return f.frames
}

func (f *ParticleField) frame(ctx render.Context2D, dt, _ time.Duration) {
	iw, ih := ctx.Size()
	w, h := float64(iw), float64(ih)

	scale := 1.0
	if f.opts.TimeScaled {
		scale = dt.Seconds() * 60
	}

	ctx.Clear()
	ctx.FillRadialGradient(w/2, h/2, math.Max(w, h)/2, f.opts.Background)

	for i := range f.particles {
		p := &f.particles[i]
		p.Step(w, h, scale)
		ctx.FillCircle(p.X, p.Y, p.Radius, render.WithAlpha(p.Color, p.Opacity), f.opts.Glow)
	}

	f.links = fx.Links(f.particles, f.opts.LinkDistance, f.opts.LinkAlphaScale, f.links)
	for _, l := range f.links {
		a, b := f.particles[l.A], f.particles[l.B]
		ctx.StrokeLine(a.X, a.Y, b.X, b.Y, f.opts.LinkWidth, render.WithAlpha(f.opts.LinkColor, l.Alpha))
	}

	if f.pointer != nil {
		if x, y, ok := f.pointer.Position(); ok {
			ctx.FillRadialGradient(x, y, f.opts.HighlightRadius, f.opts.Highlight)
		}
	}
	f.frames++
}
