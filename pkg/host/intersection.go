package host

import (
	"errors"

	"github.com/decker502/folio-fx/pkg/vmath"
)

// ErrIntersectionUnsupported 宿主不支持视口相交观察
var ErrIntersectionUnsupported = errors.New("host: intersection observation not supported")

// IntersectionEntry 相交通知
type IntersectionEntry struct {
	Ratio          float64 // 元素可见面积占比 [0, 1]
	IsIntersecting bool    // Ratio 是否达到观察阈值
}

// IntersectionFunc 相交状态变化回调
type IntersectionFunc func(entry IntersectionEntry)

type observation struct {
	el        Element
	threshold float64
	fn        IntersectionFunc
	// reported 最近一次通知的 IsIntersecting，首次检查前为 nil
	reported *bool
}

type intersectionObserver struct {
	host    *Host
	entries registry[*observation]
}

func newIntersectionObserver(h *Host) *intersectionObserver {
	return &intersectionObserver{host: h}
}

// Observe 观察元素与视口的相交比例
//
// 注册后立即进行一次检查并通知当前状态；此后只有当比例越过
// threshold（从低于到不低于，或反之）时才再次通知。
// 宿主不支持相交观察时返回 ErrIntersectionUnsupported。
func (h *Host) Observe(el Element, threshold float64, fn IntersectionFunc) (Unsubscribe, error) {
	if !h.intersectionSupported {
		return noopUnsubscribe, ErrIntersectionUnsupported
	}
	if h.closed || el == nil || fn == nil {
		return noopUnsubscribe, nil
	}
	obs := &observation{el: el, threshold: vmath.Clamp(threshold, 0, 1), fn: fn}
	l := h.observer.entries.add(obs)
	h.observer.checkOne(obs)
	return func() { h.observer.entries.remove(l) }, nil
}

// IntersectionRatio 计算元素包围盒可见部分的面积占比
// 零面积元素位于视口内时视为完全可见
func IntersectionRatio(bounds, viewport vmath.Rect) float64 {
	area := bounds.Area()
	if area == 0 {
		if viewport.Contains(bounds.X, bounds.Y) {
			return 1
		}
		return 0
	}
	return bounds.Intersect(viewport).Area() / area
}

func (o *intersectionObserver) check() {
	o.entries.each(o.checkOne)
}

func (o *intersectionObserver) checkOne(obs *observation) {
	ratio := IntersectionRatio(obs.el.Bounds(), o.host.ViewportRect())
	intersecting := ratio > 0 && ratio >= obs.threshold
	if obs.reported != nil && *obs.reported == intersecting {
		return
	}
	obs.reported = &intersecting
	obs.fn(IntersectionEntry{Ratio: ratio, IsIntersecting: intersecting})
}

func (o *intersectionObserver) len() int {
	return o.entries.len()
}

func (o *intersectionObserver) clear() {
	o.entries.clear()
}
