// Package ebitenrender 提供基于 Ebitengine 离屏图像的 render.Surface 实现
//
// 只有桌面场景依赖这个包，无头预览和终端预览不会链接 Ebitengine。
package ebitenrender

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/folio-fx/pkg/render"
)

// gradientTextureSize 径向渐变贴图的边长
// 贴图按需缩放到目标半径，足够平滑且上传开销小
const gradientTextureSize = 256

var (
	// whiteSubImage 用于 DrawTriangles 纯色填充
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

var _ render.Surface = (*Surface)(nil)

// Surface 基于离屏 *ebiten.Image 的绘制目标
type Surface struct {
	img           *ebiten.Image
	width, height int

	gradients map[string]*ebiten.Image
	glow      *ebiten.Image
	vertices  []ebiten.Vertex
	indices   []uint16
}

// NewSurface 创建离屏绘制目标
func NewSurface(width, height int) *Surface {
	s := &Surface{gradients: make(map[string]*ebiten.Image)}
	s.Resize(width, height)
	return s
}

// Image 返回离屏图像，尺寸为零时为 nil
func (s *Surface) Image() *ebiten.Image {
	return s.img
}

// Size 实现 render.Surface/render.Context2D
func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// Resize 实现 render.Surface，重新分配离屏图像（内容被清空，与 canvas 一致）
func (s *Surface) Resize(width, height int) {
	if s.img != nil && width == s.width && height == s.height {
		return
	}
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	s.width, s.height = width, height
	if width > 0 && height > 0 {
		s.img = ebiten.NewImage(width, height)
	}
}

// Context2D 实现 render.Surface
func (s *Surface) Context2D() (render.Context2D, error) {
	if s.img == nil {
		return nil, render.ErrNoContext
	}
	return s, nil
}

// Clear 实现 Context2D
func (s *Surface) Clear() {
	s.img.Clear()
}

// FillRect 实现 Context2D
func (s *Surface) FillRect(x, y, w, h float64, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), c, false)
}

// FillRadialGradient 实现 Context2D
// 先用最后一个色标铺满表面，再把缓存的渐变贴图缩放到 radius 绘制在圆心处
func (s *Surface) FillRadialGradient(cx, cy, radius float64, stops []render.GradientStop) {
	if len(stops) == 0 || radius <= 0 {
		return
	}
	last := stops[len(stops)-1].Color
	if last.A > 0 {
		s.FillRect(0, 0, float64(s.width), float64(s.height), last)
	}

	tex := s.gradientTexture(stops)
	op := &ebiten.DrawImageOptions{}
	scale := radius * 2 / gradientTextureSize
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx-radius, cy-radius)
	op.Filter = ebiten.FilterLinear
	s.img.DrawImage(tex, op)
}

// FillCircle 实现 Context2D
// 光晕用加法混合的柔和贴图近似 canvas 的 shadowBlur
func (s *Surface) FillCircle(x, y, r float64, c color.NRGBA, glow float64) {
	if c.A == 0 {
		return
	}
	if glow > 0 {
		tex := s.glowTexture()
		extent := r + glow
		op := &ebiten.DrawImageOptions{}
		scale := extent * 2 / gradientTextureSize
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x-extent, y-extent)
		op.ColorScale.ScaleWithColor(c)
		op.Blend = ebiten.BlendLighter
		op.Filter = ebiten.FilterLinear
		s.img.DrawImage(tex, op)
	}
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(r), c, true)
}

// StrokeLine 实现 Context2D
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	vector.StrokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}

// FillPolygon 实现 Context2D
func (s *Surface) FillPolygon(pts []render.Point, c color.NRGBA) {
	if len(pts) < 3 || c.A == 0 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	s.vertices, s.indices = path.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
	// 顶点颜色使用预乘 alpha
	a := float32(c.A) / 255
	cr := float32(c.R) / 255 * a
	cg := float32(c.G) / 255 * a
	cb := float32(c.B) / 255 * a
	for i := range s.vertices {
		s.vertices[i].SrcX = 1
		s.vertices[i].SrcY = 1
		s.vertices[i].ColorR = cr
		s.vertices[i].ColorG = cg
		s.vertices[i].ColorB = cb
		s.vertices[i].ColorA = a
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	op.FillRule = ebiten.FillRuleNonZero
	s.img.DrawTriangles(s.vertices, s.indices, whiteSubImage, op)
}

// gradientTexture 返回（并缓存）色标对应的径向渐变贴图
func (s *Surface) gradientTexture(stops []render.GradientStop) *ebiten.Image {
	key := gradientKey(stops)
	if tex, ok := s.gradients[key]; ok {
		return tex
	}
	tex := ebiten.NewImageFromImage(render.RadialGradientImage(gradientTextureSize, stops))
	s.gradients[key] = tex
	return tex
}

func (s *Surface) glowTexture() *ebiten.Image {
	if s.glow == nil {
		s.glow = ebiten.NewImageFromImage(render.RadialGradientImage(gradientTextureSize, []render.GradientStop{
			{Offset: 0, Color: color.NRGBA{255, 255, 255, 160}},
			{Offset: 0.35, Color: color.NRGBA{255, 255, 255, 60}},
			{Offset: 1, Color: color.NRGBA{255, 255, 255, 0}},
		}))
	}
	return s.glow
}

func gradientKey(stops []render.GradientStop) string {
	b := make([]byte, 0, len(stops)*6)
	for _, st := range stops {
		o := uint16(st.Offset * 65535)
		b = append(b, byte(o>>8), byte(o), st.Color.R, st.Color.G, st.Color.B, st.Color.A)
	}
	return string(b)
}
