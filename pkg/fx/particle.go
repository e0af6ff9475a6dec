// Package fx 包含特效层的纯计算部分
//
// 粒子运动与连线、卡片倾斜与投影、装饰元素描述、弹簧跟随。
// 这里不涉及任何绘制或事件注册，便于直接测试不变式。
package fx

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/decker502/folio-fx/pkg/render"
)

// Particle 粒子场中的单个粒子
// 速度、半径、透明度和颜色在创建后保持不变（速度只会在碰到边界时反向）
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Radius  float64
	Opacity float64
	Color   color.NRGBA
}

// ParticleRanges 粒子随机属性的取值范围
type ParticleRanges struct {
	Speed      float64 // 每个分量 ∈ [-Speed/2, Speed/2)
	RadiusMin  float64
	RadiusSpan float64
	AlphaMin   float64
	AlphaSpan  float64
	HueBase    float64 // 色相基准（度）
	HueSpan    float64
	Saturation float64
	Lightness  float64
}

// DefaultParticleRanges 原站点背景使用的取值
func DefaultParticleRanges() ParticleRanges {
	return ParticleRanges{
		Speed:      0.5,
		RadiusMin:  1,
		RadiusSpan: 2,
		AlphaMin:   0.1,
		AlphaSpan:  0.3,
		HueBase:    217,
		HueSpan:    60,
		Saturation: 0.91,
		Lightness:  0.6,
	}
}

// NewParticle 在 width×height 范围内随机生成一个粒子
func NewParticle(rng *rand.Rand, width, height float64, pr ParticleRanges) Particle {
	return Particle{
		X:       rng.Float64() * width,
		Y:       rng.Float64() * height,
		VX:      (rng.Float64() - 0.5) * pr.Speed,
		VY:      (rng.Float64() - 0.5) * pr.Speed,
		Radius:  rng.Float64()*pr.RadiusSpan + pr.RadiusMin,
		Opacity: rng.Float64()*pr.AlphaSpan + pr.AlphaMin,
		Color:   render.HSL(pr.HueBase+rng.Float64()*pr.HueSpan, pr.Saturation, pr.Lightness),
	}
}

// NewParticles 生成 n 个粒子
func NewParticles(rng *rand.Rand, n int, width, height float64, pr ParticleRanges) []Particle {
	ps := make([]Particle, n)
	for i := range ps {
		ps[i] = NewParticle(rng, width, height, pr)
	}
	return ps
}

// Step 按速度前进一步，scale 为速度倍数（逐帧运动时为 1）
//
// 若本步会离开 [0, width]，该分量速度先反向再前进（反射边界）。
// 由于视口缩小等原因已经位于范围外的粒子会被镜像折回范围内，
// 因此 Step 之后位置总在范围内。
func (p *Particle) Step(width, height, scale float64) {
	p.X, p.VX = reflectStep(p.X, p.VX*scale, p.VX, width)
	p.Y, p.VY = reflectStep(p.Y, p.VY*scale, p.VY, height)
}

func reflectStep(pos, delta, vel, span float64) (float64, float64) {
	next := pos + delta
	if next < 0 || next > span {
		vel = -vel
		next = pos - delta
	}
	return foldInto(next, span), vel
}

// foldInto 把 v 镜像折叠到 [0, span]
func foldInto(v, span float64) float64 {
	if span <= 0 {
		return 0
	}
	if v >= 0 && v <= span {
		return v
	}
	period := 2 * span
	m := math.Mod(v, period)
	if m < 0 {
		m += period
	}
	if m > span {
		m = period - m
	}
	return m
}

// Link 两个粒子之间的连线
type Link struct {
	A, B  int
	Alpha float64
}

// Links 找出所有距离小于 threshold 的无序粒子对
//
// 连线透明度 = (threshold - distance) / threshold * alphaScale。
// 这是 O(n²) 的遍历，调用方应把粒子数量控制在 100 以内。
// dst 用于复用切片，可为 nil。
func Links(ps []Particle, threshold, alphaScale float64, dst []Link) []Link {
	dst = dst[:0]
	if threshold <= 0 {
		return dst
	}
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			d := math.Hypot(ps[i].X-ps[j].X, ps[i].Y-ps[j].Y)
			if d >= threshold {
				continue
			}
			dst = append(dst, Link{A: i, B: j, Alpha: (threshold - d) / threshold * alphaScale})
		}
	}
	return dst
}
