// Package host 模拟特效层所依赖的浏览器环境
//
// Host 持有视口尺寸、页面滚动位置和指针位置，负责：
//   - 指针移动、元素悬停（enter/move/leave）、视口尺寸变化、滚动的监听器注册与派发
//   - 帧回调调度（RequestFrame/CancelFrame/Tick）
//   - 视口相交观察（Observe）
//
// 所有派发都在调用方线程上同步完成，Host 本身不是并发安全的，
// 与 Ebitengine 的 Update/Draw 循环一样只应在单一 goroutine 中使用。
// 每个注册函数都返回注销句柄，Close 之后不会再触发任何回调。
package host

import (
	"time"

	"github.com/decker502/folio-fx/pkg/vmath"
)

// Element 可被命中测试的页面元素
// Bounds 返回视口坐标系下的包围盒（随滚动变化）
type Element interface {
	Bounds() vmath.Rect
}

// ElementFunc 将函数适配为 Element
type ElementFunc func() vmath.Rect

// Bounds 实现 Element
func (f ElementFunc) Bounds() vmath.Rect { return f() }

// PointerMoveFunc 全局指针移动回调（视口坐标）
type PointerMoveFunc func(x, y float64)

// ResizeFunc 视口尺寸变化回调
type ResizeFunc func(width, height int)

// ScrollFunc 滚动回调，offset ∈ [0, max]
type ScrollFunc func(offset, max float64)

// HoverHandlers 单个元素的悬停回调，任意字段可为 nil
type HoverHandlers struct {
	Enter func(x, y float64)
	Move  func(x, y float64)
	Leave func(x, y float64)
}

// PointerEvents 全局指针事件源
type PointerEvents interface {
	OnPointerMove(fn PointerMoveFunc) Unsubscribe
}

// HoverEvents 元素级悬停事件源
type HoverEvents interface {
	OnHover(el Element, h HoverHandlers) Unsubscribe
}

// ViewportEvents 视口事件源
type ViewportEvents interface {
	Viewport() (width, height int)
	OnResize(fn ResizeFunc) Unsubscribe
}

// ScrollEvents 滚动事件源
type ScrollEvents interface {
	Scroll() (offset, max float64)
	OnScroll(fn ScrollFunc) Unsubscribe
}

// Options 宿主能力配置
type Options struct {
	Width, Height int
	// DocumentHeight 页面总高度，决定最大滚动距离
	DocumentHeight float64
	// NoIntersection 模拟不支持视口相交观察的环境
	NoIntersection bool
}

type hoverEntry struct {
	el     Element
	h      HoverHandlers
	inside bool
}

// Host 浏览器环境的替身
type Host struct {
	width, height  int
	documentHeight float64
	scrollOffset   float64

	pointerX, pointerY float64
	pointerSet         bool
	pointerInWindow    bool

	moveListeners   registry[PointerMoveFunc]
	hoverListeners  registry[*hoverEntry]
	resizeListeners registry[ResizeFunc]
	scrollListeners registry[ScrollFunc]
	frames          *frameQueue
	observer        *intersectionObserver

	intersectionSupported bool
	closed                bool
}

// New 创建宿主
func New(opts Options) *Host {
	h := &Host{
		width:                 opts.Width,
		height:                opts.Height,
		documentHeight:        opts.DocumentHeight,
		frames:                newFrameQueue(),
		intersectionSupported: !opts.NoIntersection,
	}
	h.observer = newIntersectionObserver(h)
	return h
}

// Viewport 返回视口尺寸
func (h *Host) Viewport() (int, int) {
	return h.width, h.height
}

// ViewportRect 返回视口矩形（视口坐标系，恒以原点为左上角）
func (h *Host) ViewportRect() vmath.Rect {
	return vmath.Rect{W: float64(h.width), H: float64(h.height)}
}

// OnPointerMove 注册全局指针移动监听
func (h *Host) OnPointerMove(fn PointerMoveFunc) Unsubscribe {
	if h.closed || fn == nil {
		return noopUnsubscribe
	}
	l := h.moveListeners.add(fn)
	return func() { h.moveListeners.remove(l) }
}

// OnHover 注册元素悬停监听
// 注册时若指针已在元素内，不补发 Enter（与浏览器一致，等待下一次移动）
func (h *Host) OnHover(el Element, hh HoverHandlers) Unsubscribe {
	if h.closed || el == nil {
		return noopUnsubscribe
	}
	entry := &hoverEntry{el: el, h: hh}
	l := h.hoverListeners.add(entry)
	return func() { h.hoverListeners.remove(l) }
}

// OnResize 注册视口尺寸变化监听
func (h *Host) OnResize(fn ResizeFunc) Unsubscribe {
	if h.closed || fn == nil {
		return noopUnsubscribe
	}
	l := h.resizeListeners.add(fn)
	return func() { h.resizeListeners.remove(l) }
}

// OnScroll 注册滚动监听
func (h *Host) OnScroll(fn ScrollFunc) Unsubscribe {
	if h.closed || fn == nil {
		return noopUnsubscribe
	}
	l := h.scrollListeners.add(fn)
	return func() { h.scrollListeners.remove(l) }
}

// RequestFrame 请求在下一次 Tick 时执行 cb
func (h *Host) RequestFrame(cb FrameCallback) FrameID {
	if h.closed || cb == nil {
		return 0
	}
	return h.frames.request(cb)
}

// CancelFrame 取消尚未执行的帧回调
func (h *Host) CancelFrame(id FrameID) {
	h.frames.cancel(id)
}

// Tick 执行一帧：运行所有在本次调用之前请求的帧回调
// 返回实际执行的回调数量
func (h *Host) Tick(now time.Duration) int {
	if h.closed {
		return 0
	}
	return h.frames.run(now)
}

// PendingFrames 返回等待执行的帧回调数量
func (h *Host) PendingFrames() int {
	return h.frames.len()
}

// ListenerCount 返回当前注册的监听器总数（不含帧回调）
func (h *Host) ListenerCount() int {
	return h.moveListeners.len() + h.hoverListeners.len() +
		h.resizeListeners.len() + h.scrollListeners.len() + h.observer.len()
}

// Pointer 返回宿主记录的最后指针位置
func (h *Host) Pointer() (x, y float64, ok bool) {
	return h.pointerX, h.pointerY, h.pointerSet
}

// MovePointer 指针移动到 (x, y)
//
// 派发顺序：全局移动监听 → 各元素的 leave/enter → 元素内的 move
func (h *Host) MovePointer(x, y float64) {
	if h.closed {
		return
	}
	if h.pointerSet && h.pointerInWindow && x == h.pointerX && y == h.pointerY {
		return
	}
	h.pointerX, h.pointerY = x, y
	h.pointerSet = true
	h.pointerInWindow = true

	h.moveListeners.each(func(fn PointerMoveFunc) { fn(x, y) })
	h.hitTest(true)
}

// PointerLeaveWindow 指针离开窗口，所有处于悬停状态的元素收到 leave
// 指针最后位置保持不变
func (h *Host) PointerLeaveWindow() {
	if h.closed || !h.pointerInWindow {
		return
	}
	h.pointerInWindow = false
	h.hoverListeners.each(func(e *hoverEntry) {
		if e.inside {
			e.inside = false
			if e.h.Leave != nil {
				e.h.Leave(h.pointerX, h.pointerY)
			}
		}
	})
}

// RefreshHover 按当前指针位置重新进行悬停命中测试
// 用于元素重新注册之后：包含指针的元素收到 enter 和 move
func (h *Host) RefreshHover() {
	if h.closed {
		return
	}
	h.hitTest(true)
}

// hitTest 根据当前指针位置重新计算各元素的悬停状态
// withMove 为 true 时对指针所在元素派发 move
func (h *Host) hitTest(withMove bool) {
	if !h.pointerSet || !h.pointerInWindow {
		return
	}
	x, y := h.pointerX, h.pointerY
	h.hoverListeners.each(func(e *hoverEntry) {
		inside := e.el.Bounds().Contains(x, y)
		switch {
		case inside && !e.inside:
			e.inside = true
			if e.h.Enter != nil {
				e.h.Enter(x, y)
			}
			if withMove && e.h.Move != nil {
				e.h.Move(x, y)
			}
		case !inside && e.inside:
			e.inside = false
			if e.h.Leave != nil {
				e.h.Leave(x, y)
			}
		case inside && withMove:
			if e.h.Move != nil {
				e.h.Move(x, y)
			}
		}
	})
}

// Resize 改变视口尺寸
func (h *Host) Resize(width, height int) {
	if h.closed {
		return
	}
	if width == h.width && height == h.height {
		return
	}
	h.width, h.height = width, height
	h.clampScroll()

	h.resizeListeners.each(func(fn ResizeFunc) { fn(width, height) })
	h.observer.check()
	h.hitTest(false)
}

// SetDocumentHeight 设置页面总高度
func (h *Host) SetDocumentHeight(height float64) {
	h.documentHeight = height
	h.clampScroll()
}

// Scroll 返回当前滚动位置与最大滚动距离
func (h *Host) Scroll() (offset, max float64) {
	return h.scrollOffset, h.maxScroll()
}

// ScrollTo 滚动到 offset（限制在 [0, max]）
// 滚动会移动元素，因此同时重新进行相交检查和悬停命中测试
func (h *Host) ScrollTo(offset float64) {
	if h.closed {
		return
	}
	offset = vmath.Clamp(offset, 0, h.maxScroll())
	if offset == h.scrollOffset {
		return
	}
	h.scrollOffset = offset
	max := h.maxScroll()

	h.scrollListeners.each(func(fn ScrollFunc) { fn(offset, max) })
	h.observer.check()
	h.hitTest(true)
}

// ScrollBy 相对滚动
func (h *Host) ScrollBy(delta float64) {
	h.ScrollTo(h.scrollOffset + delta)
}

func (h *Host) maxScroll() float64 {
	m := h.documentHeight - float64(h.height)
	if m < 0 {
		return 0
	}
	return m
}

func (h *Host) clampScroll() {
	h.scrollOffset = vmath.Clamp(h.scrollOffset, 0, h.maxScroll())
}

// Close 拆除宿主：注销全部监听器、取消全部帧回调
func (h *Host) Close() {
	if h.closed {
		return
	}
	h.closed = true
	h.moveListeners.clear()
	h.hoverListeners.clear()
	h.resizeListeners.clear()
	h.scrollListeners.clear()
	h.frames.clear()
	h.observer.clear()
}

// Closed 报告宿主是否已拆除
func (h *Host) Closed() bool {
	return h.closed
}
