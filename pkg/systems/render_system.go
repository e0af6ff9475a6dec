package systems

import (
	"image/color"
	"math"

	"github.com/decker502/folio-fx/pkg/components"
	"github.com/decker502/folio-fx/pkg/ecs"
	"github.com/decker502/folio-fx/pkg/fx"
	"github.com/decker502/folio-fx/pkg/host"
	"github.com/decker502/folio-fx/pkg/render"
)

var (
	sectionFill   = color.NRGBA{R: 255, G: 255, B: 255, A: 8}
	sectionRule   = color.NRGBA{R: 255, G: 255, B: 255, A: 24}
	cardFill      = color.NRGBA{R: 0x1f, G: 0x24, B: 0x2e, A: 235}
	cardBorder    = color.NRGBA{R: 255, G: 255, B: 255, A: 26}
	buttonFill    = color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 200}
	buttonHovered = color.NRGBA{R: 0x60, G: 0xa5, B: 0xfa, A: 235}
)

// RenderSystem 页面元素渲染系统
//
// 渲染顺序（从底到顶）：分区面板 → 卡片 → 磁吸按钮。
// 所有绘制都走 render.Context2D，桌面、终端和录制表面共用同一套逻辑。
// 视口之外的元素直接跳过。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	scroll        host.ScrollEvents
	quad          []render.Point
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, scroll host.ScrollEvents) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		scroll:        scroll,
		quad:          make([]render.Point, 4),
	}
}

// Draw 绘制全部页面元素
func (s *RenderSystem) Draw(ctx render.Context2D) {
	if ctx == nil {
		return
	}
	offset, _ := s.scroll.Scroll()
	w, h := ctx.Size()
	s.drawSections(ctx, offset, float64(w), float64(h))
	s.drawCards(ctx, offset, float64(h))
	s.drawButtons(ctx, offset)
}

// revealOf 返回实体的显现透明度和位移
// 分区成员跟随所属分区，其余实体使用自己的 RevealComponent，都没有时始终可见
func (s *RenderSystem) revealOf(id ecs.EntityID) (alpha, dy float64) {
	reveal, ok := SectionReveal(s.entityManager, id)
	if !ok {
		reveal, ok = ecs.GetComponent[*components.RevealComponent](s.entityManager, id)
	}
	if !ok {
		return 1, 0
	}
	if !reveal.Visible {
		return 0, 0
	}
	return RevealStyle(reveal)
}

func (s *RenderSystem) drawSections(ctx render.Context2D, offset, vw, vh float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.SectionComponent, *components.BoundsComponent](s.entityManager) {
		bounds, _ := ecs.GetComponent[*components.BoundsComponent](s.entityManager, id)
		alpha, dy := s.revealOf(id)
		if alpha <= 0 {
			continue
		}
		r := bounds.Viewport(offset).Translate(0, dy)
		if r.Y > vh || r.Y+r.H < 0 {
			continue
		}
		ctx.FillRect(r.X, r.Y, r.W, r.H, render.ScaleAlpha(sectionFill, alpha))
		ctx.StrokeLine(r.X, r.Y, r.X+r.W, r.Y, 1, render.ScaleAlpha(sectionRule, alpha))
		// 标题条
		ctx.FillRect(r.X+24, r.Y+24, math.Min(240, r.W/3), 6, render.ScaleAlpha(sectionRule, alpha))
	}
}

func (s *RenderSystem) drawCards(ctx render.Context2D, offset, vh float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.TiltCardComponent, *components.BoundsComponent](s.entityManager) {
		card, _ := ecs.GetComponent[*components.TiltCardComponent](s.entityManager, id)
		bounds, _ := ecs.GetComponent[*components.BoundsComponent](s.entityManager, id)
		alpha, dy := s.revealOf(id)
		if alpha <= 0 {
			continue
		}
		r := bounds.Viewport(offset).Translate(0, dy)
		if r.Y > vh || r.Y+r.H < 0 {
			continue
		}

		q := fx.ProjectQuad(r, card.Tilt, card.Config.Perspective)
		copy(s.quad, q[:])
		ctx.FillPolygon(s.quad, render.ScaleAlpha(cardFill, alpha))

		border := cardBorder
		if card.Active {
			s.drawOverlay(ctx, card, q, alpha)
			border = borderColor(card)
		}
		for i := range q {
			a, b := q[i], q[(i+1)%4]
			ctx.StrokeLine(a.X, a.Y, b.X, b.Y, 1, render.ScaleAlpha(border, alpha))
		}
	}
}

// drawOverlay 激活状态下的聚光、闪电条和浮动光点
func (s *RenderSystem) drawOverlay(ctx render.Context2D, card *components.TiltCardComponent, q [4]render.Point, alpha float64) {
	accent := paletteAt(card.Palette, 0)

	spot := quadPoint(q, card.Tilt.SpotX/100, card.Tilt.SpotY/100)
	size := math.Min(q[1].X-q[0].X, q[3].Y-q[0].Y)
	ctx.FillCircle(spot.X, spot.Y, size*0.25, render.WithAlpha(accent, 0.12*alpha), size*0.3)

	for _, st := range card.Decor.Streaks() {
		a := fx.StreakAlpha(st, card.Clock) * alpha
		if a <= 0 {
			continue
		}
		top := quadPoint(q, st.LeftPct/100, st.TopPct/100)
		ctx.StrokeLine(top.X, top.Y, top.X, top.Y+st.Height, st.Width, render.WithAlpha(st.Color, a))
	}
	for _, d := range card.Decor.Dots() {
		dy, a := fx.DotOffset(d, card.Clock)
		if a <= 0 {
			continue
		}
		p := quadPoint(q, d.LeftPct/100, d.TopPct/100)
		ctx.FillCircle(p.X, p.Y+dy, 2, render.WithAlpha(d.Color, a*alpha), 6)
	}
}

// borderColor 激活边框沿调色板循环渐变（每种颜色 1 秒）
func borderColor(card *components.TiltCardComponent) color.NRGBA {
	n := len(card.Palette)
	if n == 0 {
		return render.WithAlpha(paletteAt(nil, 0), 0.8)
	}
	t := math.Mod(card.Clock, float64(n))
	i := int(t)
	from, to := card.Palette[i], card.Palette[(i+1)%n]
	return render.WithAlpha(render.Mix(from, to, t-float64(i)), 0.8)
}

func paletteAt(p []color.NRGBA, i int) color.NRGBA {
	if len(p) == 0 {
		return color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 255}
	}
	return p[i%len(p)]
}

// quadPoint 四边形内的双线性插值点，(u, v) ∈ [0, 1]²
func quadPoint(q [4]render.Point, u, v float64) render.Point {
	top := render.Point{X: q[0].X + (q[1].X-q[0].X)*u, Y: q[0].Y + (q[1].Y-q[0].Y)*u}
	bottom := render.Point{X: q[3].X + (q[2].X-q[3].X)*u, Y: q[3].Y + (q[2].Y-q[3].Y)*u}
	return render.Point{X: top.X + (bottom.X-top.X)*v, Y: top.Y + (bottom.Y-top.Y)*v}
}

func (s *RenderSystem) drawButtons(ctx render.Context2D, offset float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.MagneticComponent, *components.BoundsComponent](s.entityManager) {
		mag, _ := ecs.GetComponent[*components.MagneticComponent](s.entityManager, id)
		bounds, _ := ecs.GetComponent[*components.BoundsComponent](s.entityManager, id)
		alpha, dy := s.revealOf(id)
		if alpha <= 0 {
			continue
		}
		r := bounds.Viewport(offset).Translate(mag.OffsetX, mag.OffsetY+dy)
		c := buttonFill
		if mag.Hovered {
			c = buttonHovered
		}
		ctx.FillRect(r.X, r.Y, r.W, r.H, render.ScaleAlpha(c, alpha))
	}
}
