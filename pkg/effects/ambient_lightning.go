package effects

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/decker502/folio-fx/pkg/render"
)

// 环境闪电参数
const (
	AmbientBoltCount     = 8
	EnergyParticleCount  = 15
	ambientBoltWidth     = 2.0
	ambientBoltOpacity   = 0.2
	energyParticleAlpha  = 0.4
	energyParticleRadius = 2.0
	energyParticleGlow   = 6.0
	energyFloatAmplitude = 12.0
	energyPeriodMin      = 4.0
	energyPeriodSpan     = 3.0
)

var (
	lightningPrimary = render.HSL(217, 0.91, 0.6)
	lightningAccent  = render.HSL(280, 1, 0.7)
)

// AmbientBolt 一道背景闪电（视口坐标）
type AmbientBolt struct {
	X0, Y0, X1, Y1 float64
	// Angle 旋转角度（度，顺时针）
	Angle float64
	// Height 闪电长度（像素）
	Height float64
	// Period 明暗脉动周期（秒）
	Period float64
}

// AmbientBoltAt 第 i 道背景闪电在 width×height 视口中的几何
//
// 元素左上角位于 (10+12i%, sin(0.5i)*20+50%)，宽 2px、高 60+sin(i)*20 px，
// 绕自身中心旋转 15+10i 度，脉动周期 3+0.5i 秒。
func AmbientBoltAt(i int, width, height float64) AmbientBolt {
	fi := float64(i)
	left := (10 + fi*12) / 100 * width
	top := (math.Sin(fi*0.5)*20 + 50) / 100 * height
	length := 60 + math.Sin(fi)*20
	angle := 15 + fi*10

	cx, cy := left+ambientBoltWidth/2, top+length/2
	// 竖直线段 (0, ±length/2) 按屏幕坐标顺时针旋转
	a := angle * math.Pi / 180
	dx, dy := -math.Sin(a)*length/2, math.Cos(a)*length/2
	return AmbientBolt{
		X0: cx - dx, Y0: cy - dy,
		X1: cx + dx, Y1: cy + dy,
		Angle:  angle,
		Height: length,
		Period: 3 + fi*0.5,
	}
}

// Pulse 闪电在 t 秒时的透明度，在基础透明度的 50%~100% 之间脉动
func (b AmbientBolt) Pulse(t float64) float64 {
	return ambientBoltOpacity * (0.75 + 0.25*math.Cos(2*math.Pi*t/b.Period))
}

// EnergyParticle 漂浮的能量粒子，位置为视口比例 [0, 1)
type EnergyParticle struct {
	XFrac, YFrac float64
	Period       float64
	Accent       bool
}

// NewEnergyParticles 在挂载时生成 n 个能量粒子，之后只读
// 偶数下标使用主色，奇数下标使用强调色
func NewEnergyParticles(rng *rand.Rand, n int) []EnergyParticle {
	ps := make([]EnergyParticle, n)
	for i := range ps {
		ps[i] = EnergyParticle{
			XFrac:  rng.Float64(),
			YFrac:  rng.Float64(),
			Period: energyPeriodMin + rng.Float64()*energyPeriodSpan,
			Accent: i%2 == 1,
		}
	}
	return ps
}

// FloatOffset 粒子在 t 秒时的纵向漂浮位移
func (p EnergyParticle) FloatOffset(t float64) float64 {
	return -math.Sin(2*math.Pi*t/p.Period) * energyFloatAmplitude
}

// Color 粒子颜色
func (p EnergyParticle) Color() color.NRGBA {
	if p.Accent {
		return lightningAccent
	}
	return lightningPrimary
}

// AmbientLightning 固定在视口的环境闪电层：8 道脉动的背景闪电和 15 个漂浮能量粒子
// 粒子在挂载时随机生成，使用视口比例坐标，因此调整窗口后不需要重建。
type AmbientLightning struct {
	rng       *rand.Rand
	particles []EnergyParticle
	loop      loop

	clock float64
}

// NewAmbientLightning 创建环境闪电层
func NewAmbientLightning(surface render.Surface, h Host, rng *rand.Rand) *AmbientLightning {
	l := &AmbientLightning{rng: rng}
	l.loop = loop{name: "AmbientLightning", host: h, surface: surface, onFrame: l.frame}
	return l
}

// Mount 生成能量粒子并开始帧循环，无法获取上下文时返回 false
func (l *AmbientLightning) Mount() bool {
	if l.loop.running {
		return true
	}
	if !l.loop.start() {
		return false
	}
	l.particles = NewEnergyParticles(l.rng, EnergyParticleCount)
	l.clock = 0
	return true
}

// Unmount 停止帧循环
func (l *AmbientLightning) Unmount() {
	l.loop.stop()
}

// Mounted 报告帧循环是否在运行
func (l *AmbientLightning) Mounted() bool {
	return l.loop.running
}

// Particles 返回能量粒子的副本
func (l *AmbientLightning) Particles() []EnergyParticle {
	out := make([]EnergyParticle, len(l.particles))
	copy(out, l.particles)
	return out
}

func (l *AmbientLightning) frame(ctx render.Context2D, dt, _ time.Duration) {
	l.clock += dt.Seconds()
	w, h := ctx.Size()
	fw, fh := float64(w), float64(h)

	ctx.Clear()
	for i := 0; i < AmbientBoltCount; i++ {
		l.drawBolt(ctx, AmbientBoltAt(i, fw, fh))
	}
	for _, p := range l.particles {
		y := p.YFrac*fh + p.FloatOffset(l.clock)
		ctx.FillCircle(p.XFrac*fw, y, energyParticleRadius, render.WithAlpha(p.Color(), energyParticleAlpha), energyParticleGlow)
	}
}

// drawBolt 沿闪电分四段绘制：两端淡出，前半主色、后半强调色
func (l *AmbientLightning) drawBolt(ctx render.Context2D, b AmbientBolt) {
	alpha := b.Pulse(l.clock)
	fade := [4]float64{0.4, 1, 1, 0.4}
	for k := 0; k < 4; k++ {
		t0, t1 := float64(k)/4, float64(k+1)/4
		c := lightningPrimary
		if k >= 2 {
			c = lightningAccent
		}
		ctx.StrokeLine(
			b.X0+(b.X1-b.X0)*t0, b.Y0+(b.Y1-b.Y0)*t0,
			b.X0+(b.X1-b.X0)*t1, b.Y0+(b.Y1-b.Y0)*t1,
			ambientBoltWidth, render.WithAlpha(c, alpha*fade[k]))
	}
}
