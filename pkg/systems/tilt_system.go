package systems

import (
	"log"
	"math/rand"

	"github.com/decker502/folio-fx/pkg/components"
	"github.com/decker502/folio-fx/pkg/ecs"
	"github.com/decker502/folio-fx/pkg/fx"
	"github.com/decker502/folio-fx/pkg/host"
	"github.com/decker502/folio-fx/pkg/vmath"
)

// PageEvents 页面元素系统需要的宿主能力：元素悬停 + 滚动位置
type PageEvents interface {
	host.HoverEvents
	host.ScrollEvents
}

// viewportElement 把实体的页面矩形适配为宿主可命中测试的元素
func viewportElement(events host.ScrollEvents, bounds *components.BoundsComponent) host.Element {
	return host.ElementFunc(func() vmath.Rect {
		offset, _ := events.Scroll()
		return bounds.Viewport(offset)
	})
}

// TiltSystem 卡片倾斜系统
//
// 职责：
//   - 为每张卡片在宿主上注册悬停回调（enter/move/leave）
//   - enter：激活卡片并计算倾斜；move：重新计算倾斜；leave：恢复中性并取消激活
//   - 所属分区尚未显现时 enter/move 不生效
//   - 挂载时为卡片生成一次装饰描述
//   - Update 推进卡片动画时钟
//
// HoverEnabled 为 false 的卡片不注册回调，永远保持中性。
type TiltSystem struct {
	entityManager *ecs.EntityManager
	events        PageEvents
	rng           *rand.Rand

	subscriptions map[ecs.EntityID]host.Unsubscribe
}

// NewTiltSystem 创建卡片倾斜系统
func NewTiltSystem(em *ecs.EntityManager, events PageEvents, rng *rand.Rand) *TiltSystem {
	return &TiltSystem{
		entityManager: em,
		events:        events,
		rng:           rng,
		subscriptions: make(map[ecs.EntityID]host.Unsubscribe),
	}
}

// Mount 为所有尚未挂载的卡片注册悬停回调
func (s *TiltSystem) Mount() {
	entities := ecs.GetEntitiesWith2[*components.TiltCardComponent, *components.BoundsComponent](s.entityManager)
	for _, id := range entities {
		if _, mounted := s.subscriptions[id]; mounted {
			continue
		}
		s.mountCard(id)
	}
}

func (s *TiltSystem) mountCard(id ecs.EntityID) {
	card, _ := ecs.GetComponent[*components.TiltCardComponent](s.entityManager, id)
	bounds, _ := ecs.GetComponent[*components.BoundsComponent](s.entityManager, id)

	card.Decor = fx.GenerateDecor(s.rng, card.Intensity, card.Palette)
	card.Tilt = fx.NeutralTilt()
	card.Active = false
	card.Clock = 0

	if !card.HoverEnabled {
		s.subscriptions[id] = func() {}
		return
	}

	el := viewportElement(s.events, bounds)
	// 所属分区尚未显现时卡片不可见，忽略指针
	revealed := func() bool {
		reveal, ok := SectionReveal(s.entityManager, id)
		return !ok || reveal.Visible
	}
	update := func(x, y float64) {
		if !revealed() {
			return
		}
		card.Active = true
		card.Tilt = fx.ComputeTilt(el.Bounds(), x, y, card.Config)
	}
	s.subscriptions[id] = s.events.OnHover(el, host.HoverHandlers{
		Enter: update,
		Move:  update,
		Leave: func(x, y float64) {
			card.Active = false
			card.Tilt = fx.NeutralTilt()
		},
	})
	log.Printf("[TiltSystem] 卡片 %d 已挂载（强度 %s，%d 条闪电）", id, card.Intensity, card.Decor.StreakCount())
}

// Update 推进卡片动画时钟
func (s *TiltSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.TiltCardComponent](s.entityManager) {
		card, _ := ecs.GetComponent[*components.TiltCardComponent](s.entityManager, id)
		card.Clock += deltaTime
	}
}

// Unmount 注销所有悬停回调，卡片恢复中性
func (s *TiltSystem) Unmount() {
	for id, unsubscribe := range s.subscriptions {
		unsubscribe()
		if card, ok := ecs.GetComponent[*components.TiltCardComponent](s.entityManager, id); ok {
			card.Active = false
			card.Tilt = fx.NeutralTilt()
		}
	}
	if len(s.subscriptions) > 0 {
		log.Printf("[TiltSystem] 已注销 %d 张卡片", len(s.subscriptions))
	}
	s.subscriptions = make(map[ecs.EntityID]host.Unsubscribe)
}

// Mounted 已挂载的卡片数量
func (s *TiltSystem) Mounted() int {
	return len(s.subscriptions)
}
