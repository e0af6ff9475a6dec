// Package render 定义特效层的绘制目标
//
// Surface 相当于浏览器中的 <canvas> 元素：它有像素尺寸，可以被调整大小，
// 并且可能无法提供 2D 绘图上下文（例如 GPU 不可用、终端尺寸为零）。
// 特效组件只依赖 Context2D 接口，具体实现有三种：
//   - ebitenrender.Surface：离屏 *ebiten.Image，桌面程序使用（独立子包）
//   - TerminalSurface：tcell 字符单元格缓冲，终端预览使用
//   - Recorder：记录绘制指令，测试和无头预览服务使用
package render

import (
	"errors"
	"image/color"
)

// ErrNoContext 表示绘制目标无法提供 2D 上下文
var ErrNoContext = errors.New("render: 2d context unavailable")

// Point 二维点
type Point struct {
	X, Y float64
}

// GradientStop 渐变色标
type GradientStop struct {
	Offset float64     // [0, 1]
	Color  color.NRGBA // 非预乘 alpha
}

// Context2D 2D 绘图上下文
// 所有颜色都携带 alpha，相当于 canvas 的 fillStyle + globalAlpha
type Context2D interface {
	Size() (width, height int)
	Clear()
	FillRect(x, y, w, h float64, c color.NRGBA)
	// FillRadialGradient 以 (cx, cy) 为圆心、radius 为半径的径向渐变填充整个表面
	// 半径之外使用最后一个色标的颜色（与 canvas fillRect 行为一致）
	FillRadialGradient(cx, cy, radius float64, stops []GradientStop)
	// FillCircle 绘制实心圆，glow > 0 时附加相同颜色的模糊光晕
	FillCircle(x, y, r float64, c color.NRGBA, glow float64)
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA)
	FillPolygon(pts []Point, c color.NRGBA)
}

// Surface 可调整大小的绘制目标
type Surface interface {
	Size() (width, height int)
	Resize(width, height int)
	Context2D() (Context2D, error)
}

// NullSurface 永远无法提供上下文的绘制目标
// 用于模拟不支持绘图的环境
type NullSurface struct {
	width, height int
}

// Size 实现 Surface
func (s *NullSurface) Size() (int, int) { return s.width, s.height }

// Resize 实现 Surface
func (s *NullSurface) Resize(width, height int) { s.width, s.height = width, height }

// Context2D 实现 Surface，总是返回 ErrNoContext
func (s *NullSurface) Context2D() (Context2D, error) { return nil, ErrNoContext }

// SampleGradient 计算渐变在 t ∈ [0, 1] 处的颜色（非预乘空间线性插值）
func SampleGradient(stops []GradientStop, t float64) color.NRGBA {
	if len(stops) == 0 {
		return color.NRGBA{}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		f := (t - a.Offset) / span
		return lerpNRGBA(a.Color, b.Color, f)
	}
	return last.Color
}

func lerpNRGBA(a, b color.NRGBA, t float64) color.NRGBA {
	l := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: l(a.A, b.A)}
}
