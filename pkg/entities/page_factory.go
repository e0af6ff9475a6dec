package entities

import (
	"fmt"

	"github.com/decker502/folio-fx/pkg/components"
	"github.com/decker502/folio-fx/pkg/config"
	"github.com/decker502/folio-fx/pkg/ecs"
	"github.com/decker502/folio-fx/pkg/fx"
	"github.com/decker502/folio-fx/pkg/systems"
	"github.com/decker502/folio-fx/pkg/vmath"
)

// PageEntities 由页面布局创建的实体，按页面自上而下排列
type PageEntities struct {
	Sections []ecs.EntityID
	Cards    []ecs.EntityID
	Buttons  []ecs.EntityID
	// Height 页面总高度，作为宿主的文档高度
	Height float64
}

// NewPage 根据配置创建页面实体
//
// 分区自上而下堆叠，卡片和按钮的坐标从分区相对坐标换算为页面坐标。
// 分区带有 RevealComponent，卡片跟随所属分区显现，按钮始终可见。
//
// 参数：
//   - em: 实体管理器
//   - cfg: 已通过校验的特效配置
//
// 返回：
//   - 创建的实体
//   - 错误信息（卡片强度无法解析时）
func NewPage(em *ecs.EntityManager, cfg *config.EffectsConfig) (PageEntities, error) {
	page := cfg.Page
	width := page.Width
	if width <= 0 {
		width = float64(cfg.Window.Width)
	}
	threshold := cfg.Reveal.Threshold
	if threshold <= 0 {
		threshold = systems.DefaultRevealThreshold
	}

	var out PageEntities
	for i, section := range page.Sections {
		top := page.SectionTop(i)
		sectionID := NewSection(em, section.Name, vmath.Rect{Y: top, W: width, H: section.Height}, threshold)
		out.Sections = append(out.Sections, sectionID)

		for j, c := range section.Cards {
			intensity := cfg.Cards.IntensityValue()
			if c.Intensity != "" {
				in, err := fx.ParseIntensity(c.Intensity)
				if err != nil {
					return out, fmt.Errorf("section %s card %d: %w", section.Name, j, err)
				}
				intensity = in
			}
			card := &components.TiltCardComponent{
				Config:       cfg.Cards.TiltConfig(),
				Intensity:    intensity,
				Palette:      cfg.Cards.Palette(),
				HoverEnabled: cfg.Cards.Hover(),
			}
			out.Cards = append(out.Cards, NewTiltCard(em, c.Rect().Translate(0, top), card, sectionID))
		}

		for _, b := range section.Buttons {
			out.Buttons = append(out.Buttons, NewMagneticButton(em, b.Label, b.Rect().Translate(0, top)))
		}
	}
	out.Height = page.Height()
	return out, nil
}

// NewSection 创建分区实体
func NewSection(em *ecs.EntityManager, name string, page vmath.Rect, threshold float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.SectionComponent{Name: name})
	ecs.AddComponent(em, id, &components.BoundsComponent{Page: page})
	ecs.AddComponent(em, id, &components.RevealComponent{Threshold: threshold})
	return id
}

// NewTiltCard 创建倾斜卡片实体，卡片随 section 一起显现
func NewTiltCard(em *ecs.EntityManager, page vmath.Rect, card *components.TiltCardComponent, section ecs.EntityID) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, card)
	ecs.AddComponent(em, id, &components.BoundsComponent{Page: page})
	ecs.AddComponent(em, id, &components.SectionMemberComponent{Section: section})
	return id
}

// NewMagneticButton 创建磁吸按钮实体
func NewMagneticButton(em *ecs.EntityManager, label string, page vmath.Rect) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.MagneticComponent{
		Strength: systems.DefaultMagneticStrength,
		Label:    label,
	})
	ecs.AddComponent(em, id, &components.BoundsComponent{Page: page})
	return id
}
