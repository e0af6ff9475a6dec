package render

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// HSLA 根据 CSS 风格的 hsl(h, s%, l%, a) 参数构造颜色
// h 单位为度，s/l/a ∈ [0, 1]
func HSLA(h, s, l, a float64) color.NRGBA {
	c := colorful.Hsl(h, s, l).Clamped()
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha8(a)}
}

// HSL 不透明的 hsl 颜色
func HSL(h, s, l float64) color.NRGBA {
	return HSLA(h, s, l, 1)
}

// ParseHex 解析 #rrggbb 颜色
func ParseHex(s string) (color.NRGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// WithAlpha 返回替换了 alpha 的颜色，a ∈ [0, 1]
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = alpha8(a)
	return c
}

// ScaleAlpha 将颜色 alpha 乘以 f（相当于 globalAlpha）
func ScaleAlpha(c color.NRGBA, f float64) color.NRGBA {
	c.A = alpha8(float64(c.A) / 255 * f)
	return c
}

// Over 将 src 按其 alpha 合成到不透明的 dst 上
func Over(dst colorful.Color, src color.NRGBA) colorful.Color {
	if src.A == 0 {
		return dst
	}
	s := colorful.Color{R: float64(src.R) / 255, G: float64(src.G) / 255, B: float64(src.B) / 255}
	return dst.BlendRgb(s, float64(src.A)/255)
}

// Mix 在 Lab 空间混合两种颜色，t=0 为 a，t=1 为 b；alpha 线性插值
func Mix(a, b color.NRGBA, t float64) color.NRGBA {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendLab(cb, t).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: bl, A: uint8(float64(a.A) + (float64(b.A)-float64(a.A))*t)}
}

func alpha8(a float64) uint8 {
	if a <= 0 {
		return 0
	}
	if a >= 1 {
		return 255
	}
	return uint8(a*255 + 0.5)
}
