package effects

import (
	"image/color"
	"math"
	"time"

	"github.com/decker502/folio-fx/pkg/fx"
	"github.com/decker502/folio-fx/pkg/render"
	"github.com/decker502/folio-fx/pkg/signal"
)

// 光标跟随参数
const (
	followerStiffness = 700
	followerDamping   = 25
	orbitPeriod       = 2.0 // 秒
	orbitRadius       = 24.0
	boltSwayDegrees   = 15.0
	boltSwayRate      = 0.005 // 每毫秒弧度
	boltLength        = 18.0
)

var (
	followerCore  = color.NRGBA{R: 0x60, G: 0xa5, B: 0xfa, A: 255}
	followerGlow  = color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 255}
	followerOrbit = color.NRGBA{R: 0xa8, G: 0x55, B: 0xf7, A: 255}
	followerBolt  = color.NRGBA{R: 0xfa, G: 0xcc, B: 0x15, A: 255}
)

// CursorFollower 自定义光标：弹簧平滑跟随指针
//
// 组成：光晕、核心圆点、绕核心公转的小圆点（周期 2 秒、半径 24px）
// 和一道左右摆动的闪电（角度 = sin(t_ms*0.005)*15°）。
// 首次观测到指针时直接跳到该位置，避免从原点飞入。
type CursorFollower struct {
	pointer *signal.Pointer
	spring  *fx.Spring2D
	loop    loop

	clock   float64 // 秒
	visible bool
}

// NewCursorFollower 创建光标跟随特效
func NewCursorFollower(surface render.Surface, h Host, pointer *signal.Pointer) *CursorFollower {
	c := &CursorFollower{
		pointer: pointer,
		spring:  fx.NewSpring2D(followerStiffness, followerDamping),
	}
	c.loop = loop{name: "CursorFollower", host: h, surface: surface, onFrame: c.frame}
	return c
}

// Mount 开始帧循环
func (c *CursorFollower) Mount() bool {
	return c.loop.start()
}

// Unmount 停止帧循环
func (c *CursorFollower) Unmount() {
	c.loop.stop()
	c.visible = false
}

// Position 光标当前（平滑后）的位置，尚未观测到指针时 ok=false
func (c *CursorFollower) Position() (x, y float64, ok bool) {
	if !c.visible {
		return 0, 0, false
	}
	x, y = c.spring.Position()
	return x, y, true
}

// OrbitPosition 公转圆点相对光标中心的偏移
func OrbitPosition(t float64) (dx, dy float64) {
	a := 2 * math.Pi * t / orbitPeriod
	return math.Cos(a) * orbitRadius, math.Sin(a) * orbitRadius
}

// BoltAngle 闪电在 t 秒时的摆动角度（度）
func BoltAngle(t float64) float64 {
	return math.Sin(t*1000*boltSwayRate) * boltSwayDegrees
}

func (c *CursorFollower) frame(ctx render.Context2D, dt, _ time.Duration) {
	step := dt.Seconds()
	c.clock += step

	px, py, ok := c.pointer.Position()
	if ok {
		if !c.visible {
			c.spring.Jump(px, py)
			c.visible = true
		}
		c.spring.SetTarget(px, py)
		c.spring.Step(step)
	}

	ctx.Clear()
	if !c.visible {
		return
	}
	x, y := c.spring.Position()

	ctx.FillCircle(x, y, 16, render.WithAlpha(followerGlow, 0.15), 24)
	ctx.FillCircle(x, y, 4, followerCore, 6)

	ox, oy := OrbitPosition(c.clock)
	ctx.FillCircle(x+ox, y+oy, 2, render.WithAlpha(followerOrbit, 0.8), 4)

	c.drawBolt(ctx, x, y)
}

// drawBolt 从光标右上方伸出的三段折线闪电
func (c *CursorFollower) drawBolt(ctx render.Context2D, x, y float64) {
	a := (BoltAngle(c.clock) - 90) * math.Pi / 180
	dirX, dirY := math.Cos(a), math.Sin(a)
	nX, nY := -dirY, dirX

	seg := boltLength / 3
	pts := [4]render.Point{{X: x + 8, Y: y - 8}}
	zig := []float64{4, -4, 0}
	for i := 1; i < 4; i++ {
		d := seg * float64(i)
		pts[i] = render.Point{
			X: pts[0].X + dirX*d + nX*zig[i-1],
			Y: pts[0].Y + dirY*d + nY*zig[i-1],
		}
	}
	for i := 0; i < 3; i++ {
		ctx.StrokeLine(pts[i].X, pts[i].Y, pts[i+1].X, pts[i+1].Y, 1.5, render.WithAlpha(followerBolt, 0.9))
	}
}
