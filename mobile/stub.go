//go:build !mobile

// Package mobile 桌面构建下的占位，真正的绑定入口见 mobile.go（-tags mobile）
package mobile

// Dummy 与移动端构建导出相同的符号
func Dummy() {}
