package fx

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"strings"
)

// Intensity 装饰元素密度
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// dotsPerCard 每张卡片的浮动光点数量（与强度无关）
const dotsPerCard = 4

// ParseIntensity 解析强度字符串，大小写不敏感，空串视为 medium
func ParseIntensity(s string) (Intensity, error) {
	switch Intensity(strings.ToLower(strings.TrimSpace(s))) {
	case IntensityLow:
		return IntensityLow, nil
	case IntensityMedium, "":
		return IntensityMedium, nil
	case IntensityHigh:
		return IntensityHigh, nil
	}
	return "", fmt.Errorf("unknown intensity %q (want low, medium or high)", s)
}

// StreakCount 强度对应的闪电条数量：low=3, medium=5, high=8
func (i Intensity) StreakCount() int {
	switch i {
	case IntensityLow:
		return 3
	case IntensityHigh:
		return 8
	default:
		return 5
	}
}

// Next 循环切换到下一档强度
func (i Intensity) Next() Intensity {
	switch i {
	case IntensityLow:
		return IntensityMedium
	case IntensityMedium:
		return IntensityHigh
	default:
		return IntensityLow
	}
}

// Streak 一条装饰闪电条，位置为卡片尺寸的百分比
type Streak struct {
	LeftPct, TopPct float64
	Width, Height   float64 // 像素
	Delay           float64 // 秒
	Duration        float64 // 秒
	Color           color.NRGBA
}

// Dot 一个浮动光点
type Dot struct {
	LeftPct, TopPct float64
	Delay           float64
	Duration        float64
	Color           color.NRGBA
}

// Decor 一张卡片的全部装饰描述
// 在挂载时生成一次，之后只读；访问器返回副本
type Decor struct {
	streaks []Streak
	dots    []Dot
}

// GenerateDecor 随机生成装饰描述
// 第 i 个元素使用 palette[i % len(palette)] 的颜色
func GenerateDecor(rng *rand.Rand, intensity Intensity, palette []color.NRGBA) Decor {
	if len(palette) == 0 {
		palette = []color.NRGBA{{R: 0x3b, G: 0x82, B: 0xf6, A: 255}}
	}
	n := intensity.StreakCount()
	d := Decor{
		streaks: make([]Streak, n),
		dots:    make([]Dot, dotsPerCard),
	}
	for i := range d.streaks {
		d.streaks[i] = Streak{
			LeftPct:  rng.Float64()*80 + 10,
			TopPct:   rng.Float64()*80 + 10,
			Width:    2,
			Height:   rng.Float64()*60 + 20,
			Delay:    rng.Float64() * 2,
			Duration: 1.5 + rng.Float64(),
			Color:    palette[i%len(palette)],
		}
	}
	for i := range d.dots {
		d.dots[i] = Dot{
			LeftPct:  rng.Float64()*90 + 5,
			TopPct:   rng.Float64()*90 + 5,
			Delay:    rng.Float64() * 3,
			Duration: 3 + rng.Float64()*2,
			Color:    palette[i%len(palette)],
		}
	}
	return d
}

// Streaks 返回闪电条描述的副本
func (d Decor) Streaks() []Streak {
	out := make([]Streak, len(d.streaks))
	copy(out, d.streaks)
	return out
}

// Dots 返回光点描述的副本
func (d Decor) Dots() []Dot {
	out := make([]Dot, len(d.dots))
	copy(out, d.dots)
	return out
}

// StreakCount 闪电条数量
func (d Decor) StreakCount() int {
	return len(d.streaks)
}

// phase 返回 [0, 1) 内的动画相位，延迟未到时返回 -1
func phase(t, delay, duration float64) float64 {
	if duration <= 0 || t < delay {
		return -1
	}
	p := math.Mod(t-delay, duration) / duration
	return p
}

// StreakAlpha 闪电条在时刻 t 的透明度
// 每个周期开头快速闪亮两次，其余时间保持暗淡
func StreakAlpha(s Streak, t float64) float64 {
	p := phase(t, s.Delay, s.Duration)
	switch {
	case p < 0:
		return 0
	case p < 0.05:
		return 1
	case p < 0.1:
		return 0.3
	case p < 0.15:
		return 0.9
	default:
		return 0.15
	}
}

// DotOffset 光点在时刻 t 的竖直漂浮位移（像素，负值向上）和透明度
func DotOffset(d Dot, t float64) (dy, alpha float64) {
	p := phase(t, d.Delay, d.Duration)
	if p < 0 {
		return 0, 0
	}
	s := math.Sin(p * 2 * math.Pi)
	return -10 * s, 0.6 + 0.4*math.Abs(s)
}
