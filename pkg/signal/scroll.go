package signal

import (
	"math"
	"time"

	"github.com/decker502/folio-fx/pkg/host"
)

// Scroll 页面滚动信号
type Scroll struct {
	offset   float64
	max      float64
	velocity float64 // px/ms，取绝对值
}

// Offset 当前滚动距离（像素）
func (s *Scroll) Offset() float64 {
	return s.offset
}

// Progress 归一化滚动进度 [0, 1]，页面不可滚动时为 0
func (s *Scroll) Progress() float64 {
	if s.max <= 0 {
		return 0
	}
	p := s.offset / s.max
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Velocity 最近一帧的滚动速度绝对值（像素/毫秒）
func (s *Scroll) Velocity() float64 {
	return s.velocity
}

// ScrollSource 滚动跟踪器需要的宿主能力
type ScrollSource interface {
	host.ScrollEvents
	host.Frames
}

// ScrollTracker 写入 Scroll 信号
//
// 滚动事件更新 offset；每帧采样一次用于计算速度：
// velocity = |Δoffset / Δt|，首帧只记录基准不产生速度。
type ScrollTracker struct {
	signal *Scroll
	src    ScrollSource

	unsubscribe host.Unsubscribe
	frameID     host.FrameID

	lastOffset float64
	lastTime   time.Duration
	sampled    bool
}

// TrackScroll 开始跟踪滚动
func TrackScroll(src ScrollSource) *ScrollTracker {
	s := &Scroll{}
	s.offset, s.max = src.Scroll()
	t := &ScrollTracker{signal: s, src: src}
	t.unsubscribe = src.OnScroll(func(offset, max float64) {
		s.offset, s.max = offset, max
	})
	t.frameID = src.RequestFrame(t.sample)
	return t
}

// Signal 返回被写入的滚动信号
func (t *ScrollTracker) Signal() *Scroll {
	return t.signal
}

func (t *ScrollTracker) sample(now time.Duration) {
	// 最大滚动距离会随视口尺寸变化，每帧同步一次
	t.signal.offset, t.signal.max = t.src.Scroll()

	if t.sampled {
		dt := float64(now-t.lastTime) / float64(time.Millisecond)
		if dt > 0 {
			t.signal.velocity = math.Abs((t.signal.offset - t.lastOffset) / dt)
		}
	}
	t.lastOffset = t.signal.offset
	t.lastTime = now
	t.sampled = true

	t.frameID = t.src.RequestFrame(t.sample)
}

// Stop 注销滚动监听并取消帧采样
func (t *ScrollTracker) Stop() {
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
	if t.frameID != 0 {
		t.src.CancelFrame(t.frameID)
		t.frameID = 0
	}
}
