package config

// Loading Scene 配置常量

const (
	// LoadingCompleteAt 加载时间轴完成时刻（秒）
	LoadingCompleteAt float64 = 3.0

	// LoadingFadeDuration 完成后淡出时长（秒）
	LoadingFadeDuration float64 = 0.5

	// LoadingBarWidth 进度条宽度（像素）
	LoadingBarWidth float64 = 320

	// LoadingBarHeight 进度条高度（像素）
	LoadingBarHeight float64 = 4

	// LoadingRingRadius 旋转光环半径
	LoadingRingRadius float64 = 36
)

// LoadingStep 加载时间轴上的一步
type LoadingStep struct {
	At    float64 // 触发时刻（秒）
	Label string
}

// LoadingSteps 加载步骤，按时间升序
var LoadingSteps = []LoadingStep{
	{At: 0.5, Label: "Initializing"},
	{At: 1.5, Label: "Loading assets"},
	{At: 2.2, Label: "Preparing scene"},
}
