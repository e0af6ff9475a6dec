package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/decker502/folio-fx/pkg/fx"
	"github.com/decker502/folio-fx/pkg/render"
	"gopkg.in/yaml.v3"
)

// ErrInvalidIntensity 卡片强度不是 low/medium/high
var ErrInvalidIntensity = errors.New("invalid intensity")

// EffectsConfig 特效层配置（data/effects.yaml）
type EffectsConfig struct {
	Window    WindowConfig   `yaml:"window"`
	Particles ParticleConfig `yaml:"particles"`
	Cards     CardConfig     `yaml:"cards"`
	Scene     SceneConfig    `yaml:"scene"`
	Reveal    RevealConfig   `yaml:"reveal"`
	Page      PageConfig     `yaml:"page"`
}

// WindowConfig 桌面窗口
type WindowConfig struct {
	Width  int    `yaml:"width"`  // 逻辑宽度，默认 1280
	Height int    `yaml:"height"` // 逻辑高度，默认 720
	Title  string `yaml:"title"`
}

// ParticleConfig 粒子背景参数
type ParticleConfig struct {
	Count            int     `yaml:"count"`            // 粒子数量，默认 80，最多 100
	LinkDistance     float64 `yaml:"linkDistance"`     // 连线距离阈值（像素），默认 100
	LinkAlpha        float64 `yaml:"linkAlpha"`        // 连线透明度系数，默认 0.1
	Glow             float64 `yaml:"glow"`             // 光晕模糊半径，默认 20
	HighlightRadius  float64 `yaml:"highlightRadius"`  // 指针高光半径，默认 150
	TimeScaledMotion bool    `yaml:"timeScaledMotion"` // 速度按实际帧间隔缩放，默认 false（逐帧运动）
}

// CardConfig 倾斜卡片参数（所有卡片的默认值，可在布局中逐张覆盖强度）
type CardConfig struct {
	Intensity    string   `yaml:"intensity"`    // low / medium / high，默认 medium
	Colors       []string `yaml:"colors"`       // 调色板，#rrggbb
	HoverEnabled *bool    `yaml:"hoverEnabled"` // 默认 true
	MaxTilt      float64  `yaml:"maxTilt"`      // 最大倾斜角（度），默认 15
	Perspective  float64  `yaml:"perspective"`  // 透视距离，默认 1000
	HoverScale   float64  `yaml:"hoverScale"`   // 悬停缩放，默认 1.02
}

// SceneConfig 3D 背景
type SceneConfig struct {
	Variant string `yaml:"variant"` // nodes / blackhole / off，默认 nodes
}

// RevealConfig 滚动显现
type RevealConfig struct {
	Threshold float64 `yaml:"threshold"` // 可见比例阈值，默认 0.2
}

// Defaults 返回未配置任何字段时的取值
func Defaults() *EffectsConfig {
	cfg := &EffectsConfig{}
	applyEffectsDefaults(cfg)
	return cfg
}

// LoadEffectsConfig 从文件加载特效配置
func LoadEffectsConfig(path string) (*EffectsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read effects config file %s: %w", path, err)
	}
	return ParseEffectsConfig(data, path)
}

// ParseEffectsConfig 解析 YAML 内容，source 仅用于错误信息
func ParseEffectsConfig(data []byte, source string) (*EffectsConfig, error) {
	var cfg EffectsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse effects config YAML from %s: %w", source, err)
	}
	applyEffectsDefaults(&cfg)
	if err := validateEffectsConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid effects config in %s: %w", source, err)
	}
	return &cfg, nil
}

func applyEffectsDefaults(cfg *EffectsConfig) {
	if cfg.Window.Width == 0 {
		cfg.Window.Width = DefaultWindowWidth
	}
	if cfg.Window.Height == 0 {
		cfg.Window.Height = DefaultWindowHeight
	}
	if cfg.Window.Title == "" {
		cfg.Window.Title = "folio-fx"
	}

	p := &cfg.Particles
	if p.Count == 0 {
		p.Count = 80
	}
	if p.LinkDistance == 0 {
		p.LinkDistance = 100
	}
	if p.LinkAlpha == 0 {
		p.LinkAlpha = 0.1
	}
	if p.Glow == 0 {
		p.Glow = 20
	}
	if p.HighlightRadius == 0 {
		p.HighlightRadius = 150
	}

	c := &cfg.Cards
	if c.Intensity == "" {
		c.Intensity = string(fx.IntensityMedium)
	}
	if len(c.Colors) == 0 {
		c.Colors = []string{"#3b82f6", "#8b5cf6", "#06b6d4"}
	}
	if c.HoverEnabled == nil {
		enabled := true
		c.HoverEnabled = &enabled
	}
	if c.MaxTilt == 0 {
		c.MaxTilt = 15
	}
	if c.Perspective == 0 {
		c.Perspective = 1000
	}
	if c.HoverScale == 0 {
		c.HoverScale = 1.02
	}

	if cfg.Scene.Variant == "" {
		cfg.Scene.Variant = "nodes"
	}
	if cfg.Reveal.Threshold == 0 {
		cfg.Reveal.Threshold = 0.2
	}
	if len(cfg.Page.Sections) == 0 {
		cfg.Page = DefaultPage()
	}
}

func validateEffectsConfig(cfg *EffectsConfig) error {
	if cfg.Window.Width < 0 || cfg.Window.Height < 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Particles.Count < 0 || cfg.Particles.Count > 100 {
		return fmt.Errorf("particles.count must be between 1 and 100, got %d", cfg.Particles.Count)
	}
	if cfg.Particles.LinkDistance < 0 {
		return fmt.Errorf("particles.linkDistance cannot be negative")
	}
	if _, err := parseIntensity(cfg.Cards.Intensity); err != nil {
		return fmt.Errorf("cards.intensity: %w", err)
	}
	if _, err := parsePalette(cfg.Cards.Colors); err != nil {
		return fmt.Errorf("cards.colors: %w", err)
	}
	if cfg.Cards.MaxTilt < 0 || cfg.Cards.MaxTilt > 90 {
		return fmt.Errorf("cards.maxTilt must be between 0 and 90, got %v", cfg.Cards.MaxTilt)
	}
	switch cfg.Scene.Variant {
	case "nodes", "blackhole", "off":
	default:
		return fmt.Errorf("scene.variant must be one of: nodes, blackhole, off, got %q", cfg.Scene.Variant)
	}
	if cfg.Reveal.Threshold < 0 || cfg.Reveal.Threshold > 1 {
		return fmt.Errorf("reveal.threshold must be between 0 and 1, got %v", cfg.Reveal.Threshold)
	}
	return validatePage(&cfg.Page)
}

func parseIntensity(s string) (fx.Intensity, error) {
	in, err := fx.ParseIntensity(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidIntensity, s)
	}
	return in, nil
}

func parsePalette(colors []string) ([]color.NRGBA, error) {
	out := make([]color.NRGBA, 0, len(colors))
	for i, s := range colors {
		c, err := render.ParseHex(s)
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// IntensityValue 返回卡片默认强度（配置已通过校验）
func (c CardConfig) IntensityValue() fx.Intensity {
	in, _ := fx.ParseIntensity(c.Intensity)
	return in
}

// Palette 返回解析后的调色板（配置已通过校验）
func (c CardConfig) Palette() []color.NRGBA {
	p, _ := parsePalette(c.Colors)
	return p
}

// Hover 报告是否启用悬停效果
func (c CardConfig) Hover() bool {
	return c.HoverEnabled == nil || *c.HoverEnabled
}

// TiltConfig 转换为倾斜参数
func (c CardConfig) TiltConfig() fx.TiltConfig {
	return fx.TiltConfig{MaxDegrees: c.MaxTilt, Perspective: c.Perspective, HoverScale: c.HoverScale}
}
