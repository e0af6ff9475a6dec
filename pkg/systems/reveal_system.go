package systems

import (
	"errors"
	"log"

	"github.com/decker502/folio-fx/pkg/components"
	"github.com/decker502/folio-fx/pkg/ecs"
	"github.com/decker502/folio-fx/pkg/host"
	"github.com/decker502/folio-fx/pkg/utils"
)

// DefaultRevealThreshold 分区可见面积达到 20% 时显现
const DefaultRevealThreshold = 0.2

// IntersectionHost 滚动显现需要的宿主能力
type IntersectionHost interface {
	host.ScrollEvents
	Observe(el host.Element, threshold float64, fn host.IntersectionFunc) (host.Unsubscribe, error)
}

// RevealSystem 滚动显现系统
//
// 每个分区注册一次相交观察；首次越过阈值时 Visible 置为 true 并立即停止观察，
// 因此之后滚出视口也不会重新隐藏。宿主不支持相交观察时，分区在挂载时直接显现。
type RevealSystem struct {
	entityManager *ecs.EntityManager
	host          IntersectionHost

	observing map[ecs.EntityID]host.Unsubscribe
}

// NewRevealSystem 创建滚动显现系统
func NewRevealSystem(em *ecs.EntityManager, h IntersectionHost) *RevealSystem {
	return &RevealSystem{
		entityManager: em,
		host:          h,
		observing:     make(map[ecs.EntityID]host.Unsubscribe),
	}
}

// Mount 为所有尚未显现、尚未观察的分区注册观察
func (s *RevealSystem) Mount() {
	entities := ecs.GetEntitiesWith2[*components.RevealComponent, *components.BoundsComponent](s.entityManager)
	for _, id := range entities {
		reveal, _ := ecs.GetComponent[*components.RevealComponent](s.entityManager, id)
		if reveal.Visible {
			continue
		}
		if _, ok := s.observing[id]; ok {
			continue
		}
		bounds, _ := ecs.GetComponent[*components.BoundsComponent](s.entityManager, id)
		s.observe(id, reveal, bounds)
	}
}

func (s *RevealSystem) observe(id ecs.EntityID, reveal *components.RevealComponent, bounds *components.BoundsComponent) {
	threshold := reveal.Threshold
	if threshold <= 0 {
		threshold = DefaultRevealThreshold
	}

	// Observe 会在返回前同步通知一次，此时还拿不到注销句柄
	revealedEarly := false
	unobserve, err := s.host.Observe(viewportElement(s.host, bounds), threshold, func(e host.IntersectionEntry) {
		if !e.IsIntersecting || reveal.Visible {
			return
		}
		reveal.Visible = true
		if fn, ok := s.observing[id]; ok {
			fn()
			delete(s.observing, id)
		} else {
			revealedEarly = true
		}
	})
	if errors.Is(err, host.ErrIntersectionUnsupported) {
		// 无法观察时直接显现，避免内容永远隐藏
		reveal.Visible = true
		reveal.Progress = 1
		log.Printf("[RevealSystem] 宿主不支持相交观察，分区 %d 直接显现", id)
		return
	}
	if err != nil {
		log.Printf("[RevealSystem] 观察分区 %d 失败: %v", id, err)
		reveal.Visible = true
		reveal.Progress = 1
		return
	}
	if revealedEarly {
		unobserve()
		return
	}
	s.observing[id] = unobserve
}

// Update 推进已显现分区的淡入进度
func (s *RevealSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.RevealComponent](s.entityManager) {
		reveal, _ := ecs.GetComponent[*components.RevealComponent](s.entityManager, id)
		if !reveal.Visible || reveal.Progress >= 1 {
			continue
		}
		reveal.Progress += deltaTime / components.RevealDuration
		if reveal.Progress > 1 {
			reveal.Progress = 1
		}
	}
}

// Observing 仍在观察中的分区数量
func (s *RevealSystem) Observing() int {
	return len(s.observing)
}

// Unmount 停止所有观察，已显现的分区保持显现
func (s *RevealSystem) Unmount() {
	for _, unobserve := range s.observing {
		unobserve()
	}
	s.observing = make(map[ecs.EntityID]host.Unsubscribe)
}

// SectionReveal 返回实体所属分区的显现状态
// 实体不属于任何分区（或分区没有 RevealComponent）时 ok=false
func SectionReveal(em *ecs.EntityManager, id ecs.EntityID) (reveal *components.RevealComponent, ok bool) {
	member, ok := ecs.GetComponent[*components.SectionMemberComponent](em, id)
	if !ok {
		return nil, false
	}
	return ecs.GetComponent[*components.RevealComponent](em, member.Section)
}

// RevealStyle 把淡入进度换算成透明度和向上位移（像素）
func RevealStyle(reveal *components.RevealComponent) (alpha, offsetY float64) {
	e := utils.EaseOutCubic(reveal.Progress)
	return e, utils.Lerp(30, 0, e)
}
