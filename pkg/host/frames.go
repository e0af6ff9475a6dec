package host

import "time"

// FrameID 帧回调句柄，0 为无效值
type FrameID uint64

// FrameCallback 帧回调，now 为宿主时钟的当前时间
type FrameCallback func(now time.Duration)

// Frames 帧调度接口（相当于 requestAnimationFrame / cancelAnimationFrame）
type Frames interface {
	RequestFrame(cb FrameCallback) FrameID
	CancelFrame(id FrameID)
}

// frameQueue 保存等待下一次 Tick 的回调
type frameQueue struct {
	nextID  FrameID
	pending map[FrameID]FrameCallback
	order   []FrameID
}

func newFrameQueue() *frameQueue {
	return &frameQueue{pending: make(map[FrameID]FrameCallback)}
}

func (q *frameQueue) request(cb FrameCallback) FrameID {
	q.nextID++
	id := q.nextID
	q.pending[id] = cb
	q.order = append(q.order, id)
	return id
}

func (q *frameQueue) cancel(id FrameID) {
	delete(q.pending, id)
}

// run 执行本次 Tick 之前请求的全部回调
// 回调内部再次请求的帧进入新队列，在下一次 Tick 执行
func (q *frameQueue) run(now time.Duration) int {
	batch := q.order
	q.order = nil
	ran := 0
	for _, id := range batch {
		cb, ok := q.pending[id]
		if !ok {
			continue
		}
		delete(q.pending, id)
		cb(now)
		ran++
	}
	return ran
}

func (q *frameQueue) len() int {
	return len(q.pending)
}

func (q *frameQueue) clear() {
	q.pending = make(map[FrameID]FrameCallback)
	q.order = nil
}
