package game

import (
	"fmt"
	"log"

	"github.com/decker502/folio-fx/pkg/config"
	"github.com/decker502/folio-fx/pkg/effects"
	"github.com/decker502/folio-fx/pkg/fx"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// EffectSettings 用户在运行时选择的特效选项
// 保存后下次启动覆盖 data/effects.yaml 中的对应字段
type EffectSettings struct {
	Intensity        string `yaml:"intensity"`        // 卡片强度 low / medium / high
	HoverEnabled     bool   `yaml:"hoverEnabled"`     // 卡片悬停开关
	SceneVariant     string `yaml:"sceneVariant"`     // 3D 背景 nodes / blackhole / off
	ParticleCount    int    `yaml:"particleCount"`    // 粒子数量 1 ~ 100
	TimeScaledMotion bool   `yaml:"timeScaledMotion"` // 粒子速度按帧间隔缩放

	// 显示设置
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
}

// DefaultSettings 返回与默认配置一致的设置
func DefaultSettings() *EffectSettings {
	return SettingsFromConfig(config.Defaults())
}

// SettingsFromConfig 从配置文件取出可由用户修改的字段
func SettingsFromConfig(cfg *config.EffectsConfig) *EffectSettings {
	return &EffectSettings{
		Intensity:        cfg.Cards.Intensity,
		HoverEnabled:     cfg.Cards.Hover(),
		SceneVariant:     cfg.Scene.Variant,
		ParticleCount:    cfg.Particles.Count,
		TimeScaledMotion: cfg.Particles.TimeScaledMotion,
	}
}

// ApplyTo 将设置写回配置
func (s *EffectSettings) ApplyTo(cfg *config.EffectsConfig) {
	cfg.Cards.Intensity = s.Intensity
	hover := s.HoverEnabled
	cfg.Cards.HoverEnabled = &hover
	cfg.Scene.Variant = s.SceneVariant
	cfg.Particles.Count = s.ParticleCount
	cfg.Particles.TimeScaledMotion = s.TimeScaledMotion
}

// SettingsManager 设置管理器
// 负责特效设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager  // gdata 跨平台存储管理器，可为 nil（降级模式）
	defaults     EffectSettings  // 加载失败时回退的设置
	settings     *EffectSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "effects"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//   - defaults: 回退设置，为 nil 时使用 DefaultSettings()
//
// 加载失败不是致命错误，只记录日志并使用回退设置。
func NewSettingsManager(gdataManager *gdata.Manager, defaults *EffectSettings) *SettingsManager {
	if defaults == nil {
		defaults = DefaultSettings()
	}
	sm := &SettingsManager{
		gdataManager: gdataManager,
		defaults:     *defaults,
	}
	sm.reset()

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

func (sm *SettingsManager) reset() {
	s := sm.defaults
	sm.settings = &s
}

// Load 从 gdata 加载设置
//
// gdataManager 为 nil 或尚未保存过时恢复回退设置。
// 已保存的字段若非法（未知强度、数量越界等），该字段使用回退值。
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.reset()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.reset()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := sm.defaults
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.reset()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	sm.sanitize(&loaded)

	sm.settings = &loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

func (sm *SettingsManager) sanitize(s *EffectSettings) {
	if _, err := fx.ParseIntensity(s.Intensity); err != nil {
		s.Intensity = sm.defaults.Intensity
	}
	if _, err := effects.ParseSceneVariant(s.SceneVariant); err != nil {
		s.SceneVariant = sm.defaults.SceneVariant
	}
	if s.ParticleCount < 1 || s.ParticleCount > effects.MaxParticles {
		s.ParticleCount = sm.defaults.ParticleCount
	}
}

// Save 保存设置到 gdata
// gdataManager 为 nil 时返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *EffectSettings {
	return sm.settings
}

// SetIntensity 设置卡片强度
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetIntensity(in fx.Intensity) {
	sm.settings.Intensity = string(in)
}

// SetHoverEnabled 设置卡片悬停开关
func (sm *SettingsManager) SetHoverEnabled(enabled bool) {
	sm.settings.HoverEnabled = enabled
}

// SetSceneVariant 设置 3D 背景
func (sm *SettingsManager) SetSceneVariant(v effects.SceneVariant) {
	sm.settings.SceneVariant = string(v)
}

// SetParticleCount 设置粒子数量，限制在 1 ~ MaxParticles
func (sm *SettingsManager) SetParticleCount(n int) {
	sm.settings.ParticleCount = clampCount(n)
}

// SetTimeScaledMotion 设置粒子运动模式
func (sm *SettingsManager) SetTimeScaledMotion(enabled bool) {
	sm.settings.TimeScaledMotion = enabled
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

func clampCount(n int) int {
	if n < 1 {
		return 1
	}
	if n > effects.MaxParticles {
		return effects.MaxParticles
	}
	return n
}

// StorageAppName gdata 存储目录使用的应用名
const StorageAppName = "folio_fx"

// OpenSettings 打开 gdata 存储并创建设置管理器
// gdata 初始化失败时记录日志，返回降级模式（仅内存）的管理器
func OpenSettings(appName string, defaults *EffectSettings) *SettingsManager {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SettingsManager] Warning: gdata unavailable: %v (settings will not persist)", err)
		return NewSettingsManager(nil, defaults)
	}
	return NewSettingsManager(m, defaults)
}
