// Package signal 提供特效层共享的只读输入信号
//
// Pointer 与 Scroll 都是"单写多读"对象：只有对应的 Tracker 会写入，
// 特效组件持有指针并在自己的节奏（通常是每帧）读取最新值。
// 写入方法不导出，消费方无法回写，因此不存在读改写竞争。
package signal

import (
	"log"

	"github.com/decker502/folio-fx/pkg/host"
)

// Pointer 最后观测到的全局指针位置
// 首次移动之前处于未设置状态
type Pointer struct {
	x, y    float64
	set     bool
	version uint64
}

// NewPointer 创建未设置状态的指针信号
func NewPointer() *Pointer {
	return &Pointer{}
}

// Position 返回最后的指针位置，ok=false 表示尚未观测到移动
func (p *Pointer) Position() (x, y float64, ok bool) {
	return p.x, p.y, p.set
}

// Version 每次写入递增，读方可据此判断是否有新值
func (p *Pointer) Version() uint64 {
	return p.version
}

func (p *Pointer) write(x, y float64) {
	p.x, p.y = x, y
	p.set = true
	p.version++
}

// PointerTracker 在宿主上注册唯一的全局指针移动监听，并写入 Pointer
type PointerTracker struct {
	signal *Pointer
	stop   host.Unsubscribe
}

// TrackPointer 开始跟踪指针
func TrackPointer(events host.PointerEvents) *PointerTracker {
	t := &PointerTracker{signal: NewPointer()}
	t.stop = events.OnPointerMove(t.signal.write)
	log.Printf("[PointerTracker] 开始跟踪全局指针")
	return t
}

// Signal 返回被写入的指针信号
func (t *PointerTracker) Signal() *Pointer {
	return t.signal
}

// Stop 注销监听，之后信号保持最后的值
func (t *PointerTracker) Stop() {
	if t.stop != nil {
		t.stop()
		t.stop = nil
		log.Printf("[PointerTracker] 停止跟踪")
	}
}
