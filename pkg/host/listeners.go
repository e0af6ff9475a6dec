package host

// Unsubscribe 注销一个已注册的监听器，可重复调用
type Unsubscribe func()

func noopUnsubscribe() {}

// listener 注册表中的单个条目
// removed 在注销时置位，派发过程中据此跳过已注销的条目
type listener[F any] struct {
	id      uint64
	fn      F
	removed bool
}

// registry 按注册顺序保存监听器
type registry[F any] struct {
	nextID  uint64
	entries []*listener[F]
}

func (r *registry[F]) add(fn F) *listener[F] {
	r.nextID++
	l := &listener[F]{id: r.nextID, fn: fn}
	r.entries = append(r.entries, l)
	return l
}

func (r *registry[F]) remove(l *listener[F]) {
	if l.removed {
		return
	}
	l.removed = true
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e != l {
			kept = append(kept, e)
		}
	}
	// 清掉尾部残留指针
	for i := len(kept); i < len(r.entries); i++ {
		r.entries[i] = nil
	}
	r.entries = kept
}

// each 对快照中仍然有效的监听器依次调用 call
// 派发期间注销的监听器不会再被调用，派发期间新增的监听器等到下一次派发
func (r *registry[F]) each(call func(F)) {
	snapshot := make([]*listener[F], len(r.entries))
	copy(snapshot, r.entries)
	for _, l := range snapshot {
		if l.removed {
			continue
		}
		call(l.fn)
	}
}

func (r *registry[F]) len() int {
	return len(r.entries)
}

func (r *registry[F]) clear() {
	for _, e := range r.entries {
		e.removed = true
	}
	r.entries = nil
}
