// Package effects 实现挂载在宿主上的画布特效
//
// 每个特效都拥有自己的 render.Surface，挂载时把表面调整为视口尺寸并
// 开始帧循环，卸载时取消帧回调并注销全部监听。无法取得 2D 上下文时
// 特效保持静默，不注册任何回调。
package effects

import (
	"log"
	"time"

	"github.com/decker502/folio-fx/pkg/host"
	"github.com/decker502/folio-fx/pkg/render"
)

// Host 特效需要的宿主能力
type Host interface {
	host.ViewportEvents
	host.Frames
}

// defaultFrameTime 首帧或时钟停滞时使用的帧间隔
const defaultFrameTime = time.Second / 60

// frameFunc 每帧绘制回调，dt 为距上一帧的时间
type frameFunc func(ctx render.Context2D, dt time.Duration, now time.Duration)

// loop 画布特效共用的挂载/帧循环/卸载逻辑
type loop struct {
	name    string
	host    Host
	surface render.Surface

	onFrame  frameFunc
	onResize func(width, height int)

	frameID     host.FrameID
	unsubResize host.Unsubscribe
	last        time.Duration
	ticked      bool
	running     bool
}

// start 调整表面尺寸并开始帧循环，无法获取上下文时返回 false
func (l *loop) start() bool {
	if l.running {
		return true
	}
	w, h := l.host.Viewport()
	l.surface.Resize(w, h)
	if _, err := l.surface.Context2D(); err != nil {
		log.Printf("[%s] 无法获取绘图上下文，特效停用: %v", l.name, err)
		return false
	}
	l.running = true
	l.ticked = false
	l.unsubResize = l.host.OnResize(l.resize)
	l.frameID = l.host.RequestFrame(l.tick)
	log.Printf("[%s] 已挂载 (%dx%d)", l.name, w, h)
	return true
}

func (l *loop) resize(width, height int) {
	l.surface.Resize(width, height)
	if l.onResize != nil {
		l.onResize(width, height)
	}
}

func (l *loop) tick(now time.Duration) {
	l.frameID = 0
	if !l.running {
		return
	}
	dt := defaultFrameTime
	if l.ticked && now > l.last {
		dt = now - l.last
	}
	l.last = now
	l.ticked = true

	// 视口为零等情况下暂时没有上下文，跳过本帧但保持循环
	if ctx, err := l.surface.Context2D(); err == nil {
		l.onFrame(ctx, dt, now)
	}
	if l.running {
		l.frameID = l.host.RequestFrame(l.tick)
	}
}

// stop 取消帧回调并注销尺寸监听
func (l *loop) stop() {
	if !l.running {
		return
	}
	l.running = false
	if l.frameID != 0 {
		l.host.CancelFrame(l.frameID)
		l.frameID = 0
	}
	if l.unsubResize != nil {
		l.unsubResize()
		l.unsubResize = nil
	}
	log.Printf("[%s] 已卸载", l.name)
}
