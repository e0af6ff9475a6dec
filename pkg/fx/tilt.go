package fx

import (
	"fmt"
	"math"

	"github.com/decker502/folio-fx/pkg/render"
	"github.com/decker502/folio-fx/pkg/vmath"
)

// TiltConfig 卡片倾斜参数
type TiltConfig struct {
	MaxDegrees  float64 // 边缘处的最大旋转角
	Perspective float64 // 透视距离（像素）
	HoverScale  float64 // 悬停时的缩放
}

// DefaultTiltConfig 原站点卡片使用的取值
func DefaultTiltConfig() TiltConfig {
	return TiltConfig{MaxDegrees: 15, Perspective: 1000, HoverScale: 1.02}
}

// Tilt 卡片的倾斜状态
type Tilt struct {
	RotateX float64 // 度
	RotateY float64 // 度
	Scale   float64
	// SpotX/SpotY 指针在卡片内的位置百分比，作为聚光渐变的圆心
	SpotX, SpotY float64
}

// NeutralTilt 无旋转、无缩放的状态
func NeutralTilt() Tilt {
	return Tilt{Scale: 1, SpotX: 50, SpotY: 50}
}

// ComputeTilt 根据指针相对卡片中心的偏移计算倾斜
//
// 偏移按半宽/半高归一化并限制在 [-1, 1]，再乘以最大角度：
// rotateX = ny * max，rotateY = -nx * max。中心处为 (0, 0)，
// 越靠近边缘角度越大，在边缘达到 max。
func ComputeTilt(bounds vmath.Rect, px, py float64, cfg TiltConfig) Tilt {
	if bounds.W <= 0 || bounds.H <= 0 {
		return NeutralTilt()
	}
	cx, cy := bounds.Center()
	nx := vmath.Clamp((px-cx)/(bounds.W/2), -1, 1)
	ny := vmath.Clamp((py-cy)/(bounds.H/2), -1, 1)

	scale := cfg.HoverScale
	if scale == 0 {
		scale = 1
	}
	return Tilt{
		RotateX: ny * cfg.MaxDegrees,
		RotateY: -nx * cfg.MaxDegrees,
		Scale:   scale,
		SpotX:   vmath.Clamp((px-bounds.X)/bounds.W*100, 0, 100),
		SpotY:   vmath.Clamp((py-bounds.Y)/bounds.H*100, 0, 100),
	}
}

// Magnitude 返回合成旋转角（度）
func (t Tilt) Magnitude() float64 {
	return math.Hypot(t.RotateX, t.RotateY)
}

// IsNeutral 报告是否为无旋转状态
func (t Tilt) IsNeutral() bool {
	return t.RotateX == 0 && t.RotateY == 0
}

// CSS 以 CSS transform 语法描述倾斜，供预览服务输出
func (t Tilt) CSS(perspective float64) string {
	return fmt.Sprintf("perspective(%gpx) rotateX(%.2fdeg) rotateY(%.2fdeg) scale3d(%g, %g, %g)",
		perspective, t.RotateX, t.RotateY, t.Scale, t.Scale, t.Scale)
}

// ProjectQuad 把卡片四个角经过倾斜变换和透视投影到屏幕
//
// 坐标系与 CSS 相同：y 向下，z 指向观察者。变换顺序为
// 缩放 → rotateY → rotateX → 透视除法，绕卡片中心进行。
// 返回顺序：左上、右上、右下、左下。
func ProjectQuad(bounds vmath.Rect, t Tilt, perspective float64) [4]render.Point {
	cx, cy := bounds.Center()
	hw, hh := bounds.W/2, bounds.H/2
	corners := [4]vmath.Vec3{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}}

	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	ax := vmath.Deg2Rad(t.RotateX)
	ay := vmath.Deg2Rad(t.RotateY)

	var out [4]render.Point
	for i, c := range corners {
		p := vmath.V3Scale(c, scale)
		p = vmath.RotateY(p, ay)
		p = vmath.RotateX(p, ax)
		f := 1.0
		if perspective > 0 && perspective-p.Z > 1e-6 {
			f = perspective / (perspective - p.Z)
		}
		out[i] = render.Point{X: cx + p.X*f, Y: cy + p.Y*f}
	}
	return out
}

// Offset 磁吸按钮的位移：(指针 - 中心) * strength
func Offset(bounds vmath.Rect, px, py, strength float64) (dx, dy float64) {
	cx, cy := bounds.Center()
	return (px - cx) * strength, (py - cy) * strength
}
