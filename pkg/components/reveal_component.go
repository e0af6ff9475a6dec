package components

// RevealDuration 分区首次进入视口后的淡入时长（秒）
const RevealDuration = 0.6

// RevealComponent 滚动显现状态
//
// Visible 只会从 false 变为 true 一次，之后不再改变。
// Progress 是淡入动画的线性进度 [0, 1]，由 RevealSystem 推进。
type RevealComponent struct {
	Threshold float64
	Visible   bool
	Progress  float64
}
