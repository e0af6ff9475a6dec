package signal

import (
	"math"
	"testing"
	"time"

	"github.com/decker502/folio-fx/pkg/host"
)

func TestPointerUnsetUntilFirstMove(t *testing.T) {
	h := host.New(host.Options{Width: 800, Height: 600})
	tracker := TrackPointer(h)
	defer tracker.Stop()

	if _, _, ok := tracker.Signal().Position(); ok {
		t.Fatal("pointer should be unset before the first move")
	}

	h.MovePointer(120, 80)
	x, y, ok := tracker.Signal().Position()
	if !ok || x != 120 || y != 80 {
		t.Errorf("Position() = (%v, %v, %v), want (120, 80, true)", x, y, ok)
	}
	if tracker.Signal().Version() != 1 {
		t.Errorf("Version() = %d, want 1", tracker.Signal().Version())
	}
}

// TestPointerSharedByReaders 测试多个读方看到同一个值
func TestPointerSharedByReaders(t *testing.T) {
	h := host.New(host.Options{Width: 800, Height: 600})
	tracker := TrackPointer(h)
	readerA := tracker.Signal()
	readerB := tracker.Signal()

	h.MovePointer(10, 20)
	ax, ay, _ := readerA.Position()
	bx, by, _ := readerB.Position()
	if ax != bx || ay != by {
		t.Errorf("readers disagree: (%v,%v) vs (%v,%v)", ax, ay, bx, by)
	}
}

// TestPointerTrackerStop 测试停止后信号不再变化且监听被注销
func TestPointerTrackerStop(t *testing.T) {
	h := host.New(host.Options{Width: 800, Height: 600})
	tracker := TrackPointer(h)
	h.MovePointer(1, 2)
	tracker.Stop()
	tracker.Stop()

	h.MovePointer(300, 400)
	if x, y, _ := tracker.Signal().Position(); x != 1 || y != 2 {
		t.Errorf("signal changed after Stop: (%v, %v)", x, y)
	}
	if h.ListenerCount() != 0 {
		t.Errorf("ListenerCount() = %d, want 0", h.ListenerCount())
	}
}

func TestScrollProgressAndVelocity(t *testing.T) {
	h := host.New(host.Options{Width: 800, Height: 600, DocumentHeight: 2600})
	tracker := TrackScroll(h)
	defer tracker.Stop()
	s := tracker.Signal()

	h.Tick(0) // 建立基准
	if s.Velocity() != 0 {
		t.Errorf("first sample velocity = %v, want 0", s.Velocity())
	}

	h.ScrollTo(500)
	h.Tick(10 * time.Millisecond)

	if math.Abs(s.Progress()-0.25) > 1e-9 {
		t.Errorf("Progress() = %v, want 0.25", s.Progress())
	}
	if math.Abs(s.Velocity()-50) > 1e-9 {
		t.Errorf("Velocity() = %v, want 50 px/ms", s.Velocity())
	}

	// 向上滚动速度仍为正
	h.ScrollTo(400)
	h.Tick(20 * time.Millisecond)
	if math.Abs(s.Velocity()-10) > 1e-9 {
		t.Errorf("Velocity() = %v, want 10 px/ms", s.Velocity())
	}
}

func TestScrollProgressUnscrollablePage(t *testing.T) {
	h := host.New(host.Options{Width: 800, Height: 600, DocumentHeight: 300})
	tracker := TrackScroll(h)
	defer tracker.Stop()
	if p := tracker.Signal().Progress(); p != 0 {
		t.Errorf("Progress() = %v, want 0 for a page shorter than the viewport", p)
	}
}

func TestScrollTrackerStopCancelsFrame(t *testing.T) {
	h := host.New(host.Options{Width: 800, Height: 600, DocumentHeight: 2000})
	tracker := TrackScroll(h)
	tracker.Stop()
	if h.PendingFrames() != 0 {
		t.Errorf("PendingFrames() = %d, want 0 after Stop", h.PendingFrames())
	}
	if h.ListenerCount() != 0 {
		t.Errorf("ListenerCount() = %d, want 0 after Stop", h.ListenerCount())
	}
}
