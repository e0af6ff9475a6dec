package utils

// WheelStep 鼠标滚轮一格对应的滚动距离（像素）
// 桌面输入和终端预览共用
const WheelStep = 60.0
