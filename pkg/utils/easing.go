// Package utils 提供不依赖渲染后端的通用工具函数
package utils

import "math"

// 缓动函数
//
// 输入进度 t 先被限制到 [0, 1]，因此调用方可以直接传入
// elapsed/duration 而不必自己截断。

// EaseOutCubic 三次方缓出，开始快结束慢
// 用于滚动显现的淡入与位移
func EaseOutCubic(t float64) float64 {
	t = clamp01(t)
	return 1 - math.Pow(1-t, 3)
}

// EaseOutQuad 二次方缓出
// 用于加载界面淡出
func EaseOutQuad(t float64) float64 {
	t = clamp01(t)
	return 1 - (1-t)*(1-t)
}

// Lerp 线性插值，t 不做限制
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
