package render

import (
	"image/color"
	"math"
)

// OpKind 绘制指令类型
type OpKind string

const (
	OpClear          OpKind = "clear"
	OpFillRect       OpKind = "fill_rect"
	OpRadialGradient OpKind = "radial_gradient"
	OpCircle         OpKind = "circle"
	OpLine           OpKind = "line"
	OpPolygon        OpKind = "polygon"
)

// Op 一条记录下来的绘制指令
// 未使用的字段保持零值，JSON 中省略
type Op struct {
	Kind   OpKind         `json:"kind"`
	X      float64        `json:"x,omitempty"`
	Y      float64        `json:"y,omitempty"`
	X1     float64        `json:"x1,omitempty"`
	Y1     float64        `json:"y1,omitempty"`
	W      float64        `json:"w,omitempty"`
	H      float64        `json:"h,omitempty"`
	R      float64        `json:"r,omitempty"`
	Glow   float64        `json:"glow,omitempty"`
	Color  color.NRGBA    `json:"color"`
	Stops  []GradientStop `json:"stops,omitempty"`
	Points []Point        `json:"points,omitempty"`
}

// Recorder 记录绘制指令的 Surface/Context2D 实现
//
// Clear 会丢弃之前的指令并记录一条 OpClear，因此 Ops() 总是
// 最近一帧的完整内容。Disabled 为 true 时模拟上下文不可用。
type Recorder struct {
	width, height int
	ops           []Op
	resizes       int
	mutations     int

	Disabled bool
}

// NewRecorder 创建指定尺寸的记录器
func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: width, height: height}
}

// Size 实现 Surface/Context2D
func (r *Recorder) Size() (int, int) { return r.width, r.height }

// Resize 实现 Surface
func (r *Recorder) Resize(width, height int) {
	r.width, r.height = width, height
	r.resizes++
}

// Context2D 实现 Surface
func (r *Recorder) Context2D() (Context2D, error) {
	if r.Disabled {
		return nil, ErrNoContext
	}
	return r, nil
}

// Ops 返回自最近一次 Clear 以来的指令副本
func (r *Recorder) Ops() []Op {
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Count 统计指定类型的指令数量
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Mutations 返回累计的绘制调用次数（含 Clear）
func (r *Recorder) Mutations() int {
	return r.mutations
}

// Resizes 返回 Resize 调用次数
func (r *Recorder) Resizes() int {
	return r.resizes
}

func (r *Recorder) record(op Op) {
	r.ops = append(r.ops, op)
	r.mutations++
}

// Clear 实现 Context2D
func (r *Recorder) Clear() {
	r.ops = r.ops[:0]
	r.record(Op{Kind: OpClear})
}

// FillRect 实现 Context2D
func (r *Recorder) FillRect(x, y, w, h float64, c color.NRGBA) {
	r.record(Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

// FillRadialGradient 实现 Context2D
func (r *Recorder) FillRadialGradient(cx, cy, radius float64, stops []GradientStop) {
	cp := make([]GradientStop, len(stops))
	copy(cp, stops)
	r.record(Op{Kind: OpRadialGradient, X: cx, Y: cy, R: radius, Stops: cp})
}

// FillCircle 实现 Context2D
func (r *Recorder) FillCircle(x, y, rad float64, c color.NRGBA, glow float64) {
	r.record(Op{Kind: OpCircle, X: x, Y: y, R: rad, Color: c, Glow: glow})
}

// StrokeLine 实现 Context2D
func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	r.record(Op{Kind: OpLine, X: x0, Y: y0, X1: x1, Y1: y1, W: width, Color: c})
}

// FillPolygon 实现 Context2D
func (r *Recorder) FillPolygon(pts []Point, c color.NRGBA) {
	cp := make([]Point, len(pts))
	copy(cp, pts)
	r.record(Op{Kind: OpPolygon, Points: cp, Color: c})
}

// LineLength 返回线段指令的长度
func (op Op) LineLength() float64 {
	return math.Hypot(op.X1-op.X, op.Y1-op.Y)
}
