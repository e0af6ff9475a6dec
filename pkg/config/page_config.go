package config

import (
	"fmt"

	"github.com/decker502/folio-fx/pkg/vmath"
)

// 默认窗口尺寸
const (
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720
)

// PageConfig 虚拟页面布局：自上而下堆叠的分区
type PageConfig struct {
	Width    float64         `yaml:"width"` // 内容宽度，默认与窗口同宽
	Sections []SectionLayout `yaml:"sections"`
}

// SectionLayout 一个分区
// 卡片和按钮坐标相对分区左上角
type SectionLayout struct {
	Name    string         `yaml:"name"`
	Height  float64        `yaml:"height"`
	Cards   []CardLayout   `yaml:"cards"`
	Buttons []ButtonLayout `yaml:"buttons"`
}

// CardLayout 卡片位置，Intensity 为空时使用 cards.intensity
type CardLayout struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	W         float64 `yaml:"w"`
	H         float64 `yaml:"h"`
	Intensity string  `yaml:"intensity"`
}

// ButtonLayout 磁吸按钮
type ButtonLayout struct {
	Label string  `yaml:"label"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	W     float64 `yaml:"w"`
	H     float64 `yaml:"h"`
}

// Rect 卡片相对分区的矩形
func (c CardLayout) Rect() vmath.Rect { return vmath.Rect{X: c.X, Y: c.Y, W: c.W, H: c.H} }

// Rect 按钮相对分区的矩形
func (b ButtonLayout) Rect() vmath.Rect { return vmath.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H} }

// DefaultPage 原站点的六个分区
func DefaultPage() PageConfig {
	return PageConfig{
		Sections: []SectionLayout{
			{Name: "hero", Height: 720, Buttons: []ButtonLayout{
				{Label: "View Work", X: 120, Y: 460, W: 160, H: 48},
				{Label: "Contact", X: 300, Y: 460, W: 140, H: 48},
			}},
			{Name: "about", Height: 640, Cards: []CardLayout{
				{X: 120, Y: 140, W: 480, H: 360},
			}},
			{Name: "skills", Height: 600, Cards: []CardLayout{
				{X: 120, Y: 140, W: 320, H: 200, Intensity: "low"},
				{X: 480, Y: 140, W: 320, H: 200},
				{X: 840, Y: 140, W: 320, H: 200, Intensity: "high"},
			}},
			{Name: "projects", Height: 760, Cards: []CardLayout{
				{X: 120, Y: 140, W: 500, H: 280, Intensity: "high"},
				{X: 660, Y: 140, W: 500, H: 280, Intensity: "high"},
			}},
			{Name: "experience", Height: 640, Cards: []CardLayout{
				{X: 120, Y: 140, W: 1040, H: 160},
				{X: 120, Y: 340, W: 1040, H: 160},
			}},
			{Name: "contact", Height: 560, Buttons: []ButtonLayout{
				{Label: "Send", X: 560, Y: 380, W: 160, H: 48},
			}},
		},
	}
}

// Height 页面总高度
func (p PageConfig) Height() float64 {
	h := 0.0
	for _, s := range p.Sections {
		h += s.Height
	}
	return h
}

// SectionTop 第 i 个分区在页面中的顶边
func (p PageConfig) SectionTop(i int) float64 {
	top := 0.0
	for j := 0; j < i && j < len(p.Sections); j++ {
		top += p.Sections[j].Height
	}
	return top
}

func validatePage(p *PageConfig) error {
	for i, s := range p.Sections {
		if s.Name == "" {
			return fmt.Errorf("page.sections[%d]: name is required", i)
		}
		if s.Height <= 0 {
			return fmt.Errorf("page.sections[%d] %s: height must be positive, got %v", i, s.Name, s.Height)
		}
		for j, c := range s.Cards {
			if c.W <= 0 || c.H <= 0 {
				return fmt.Errorf("page.sections[%d].cards[%d]: size must be positive", i, j)
			}
			if c.Intensity != "" {
				if _, err := parseIntensity(c.Intensity); err != nil {
					return fmt.Errorf("page.sections[%d].cards[%d]: %w", i, j, err)
				}
			}
		}
		for j, b := range s.Buttons {
			if b.W <= 0 || b.H <= 0 {
				return fmt.Errorf("page.sections[%d].buttons[%d]: size must be positive", i, j)
			}
		}
	}
	return nil
}
