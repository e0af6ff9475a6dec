package systems

import (
	"github.com/decker502/folio-fx/pkg/components"
	"github.com/decker502/folio-fx/pkg/ecs"
	"github.com/decker502/folio-fx/pkg/fx"
	"github.com/decker502/folio-fx/pkg/host"
)

// DefaultMagneticStrength 磁吸按钮默认强度
const DefaultMagneticStrength = 0.4

// MagneticSystem 磁吸按钮系统
// 悬停时按钮跟随指针偏移，离开时立即归位
type MagneticSystem struct {
	entityManager *ecs.EntityManager
	events        PageEvents

	subscriptions []host.Unsubscribe
}

// NewMagneticSystem 创建磁吸按钮系统
func NewMagneticSystem(em *ecs.EntityManager, events PageEvents) *MagneticSystem {
	return &MagneticSystem{entityManager: em, events: events}
}

// Mount 为所有磁吸按钮注册悬停回调
func (s *MagneticSystem) Mount() {
	s.Unmount()
	entities := ecs.GetEntitiesWith2[*components.MagneticComponent, *components.BoundsComponent](s.entityManager)
	for _, id := range entities {
		mag, _ := ecs.GetComponent[*components.MagneticComponent](s.entityManager, id)
		bounds, _ := ecs.GetComponent[*components.BoundsComponent](s.entityManager, id)
		if mag.Strength == 0 {
			mag.Strength = DefaultMagneticStrength
		}

		// 命中测试使用未平移的布局矩形，避免按钮追着指针跑出自身范围
		el := viewportElement(s.events, bounds)
		move := func(x, y float64) {
			mag.Hovered = true
			mag.OffsetX, mag.OffsetY = fx.Offset(el.Bounds(), x, y, mag.Strength)
		}
		s.subscriptions = append(s.subscriptions, s.events.OnHover(el, host.HoverHandlers{
			Enter: move,
			Move:  move,
			Leave: func(x, y float64) {
				mag.Hovered = false
				mag.OffsetX, mag.OffsetY = 0, 0
			},
		}))
	}
}

// Unmount 注销所有回调并让按钮归位
func (s *MagneticSystem) Unmount() {
	for _, unsubscribe := range s.subscriptions {
		unsubscribe()
	}
	s.subscriptions = nil
	for _, id := range ecs.GetEntitiesWith1[*components.MagneticComponent](s.entityManager) {
		mag, _ := ecs.GetComponent[*components.MagneticComponent](s.entityManager, id)
		mag.Hovered = false
		mag.OffsetX, mag.OffsetY = 0, 0
	}
}
