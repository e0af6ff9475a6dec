// Package app 提供特效应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/folio-fx/pkg/config"
	"github.com/decker502/folio-fx/pkg/embedded"
	"github.com/decker502/folio-fx/pkg/game"
	"github.com/decker502/folio-fx/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EffectsConfigPath 嵌入的特效配置路径
const EffectsConfigPath = "data/effects.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部配置文件，为空时使用嵌入的 data/effects.yaml
	ConfigPath string
	// SkipLoadingScene 跳过加载场景，直接进入页面
	SkipLoadingScene bool
	// Seed 随机种子，0 表示每次启动不同
	Seed int64
	// Overrides 在设置加载之后应用的命令行覆盖，可为 nil
	Overrides func(cfg *config.EffectsConfig)
	// NoPersist 不读写 gdata 中保存的设置
	NoPersist bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	effects                  *config.EffectsConfig
	settings                 *game.SettingsManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// LoadEffects 读取特效配置：外部文件优先，否则读取嵌入数据
func LoadEffects(path string) (*config.EffectsConfig, error) {
	if path != "" {
		return config.LoadEffectsConfig(path)
	}
	data, err := embedded.ReadFile(EffectsConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded %s: %w", EffectsConfigPath, err)
	}
	return config.ParseEffectsConfig(data, EffectsConfigPath)
}

// NewApp 创建并初始化应用
//
// 使用嵌入配置时，调用此函数前必须先调用 embedded.Init()。
// 配置的优先级：命令行覆盖 > 保存的设置 > 配置文件 > 内置默认值。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	effects, err := LoadEffects(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("特效配置加载失败: %w", err)
	}
	log.Printf("[Config] 页面 %d 个分区，总高度 %.0f", len(effects.Page.Sections), effects.Page.Height())

	var settings *game.SettingsManager
	if cfg.NoPersist {
		settings = game.NewSettingsManager(nil, game.SettingsFromConfig(effects))
	} else {
		settings = game.OpenSettings(game.StorageAppName, game.SettingsFromConfig(effects))
	}
	settings.GetSettings().ApplyTo(effects)
	if cfg.Overrides != nil {
		cfg.Overrides(effects)
	}

	sceneManager := game.NewSceneManager()
	var pageErr error
	sceneManager.Register(scenes.PageSceneName, func() game.Scene {
		page, err := scenes.NewPageScene(effects, settings, cfg.Seed)
		if err != nil {
			pageErr = err
			log.Printf("[App] %v", err)
			return nil
		}
		return page
	})

	if cfg.SkipLoadingScene {
		log.Printf("[App] SkipLoadingScene enabled, loading page directly")
		if !sceneManager.Load(scenes.PageSceneName) {
			return nil, fmt.Errorf("页面场景创建失败: %w", pageErr)
		}
	} else {
		loading := scenes.NewLoadingScene(sceneManager, scenes.PageSceneName,
			effects.Window.Width, effects.Window.Height, effects.Cards.Palette())
		sceneManager.SwitchTo(loading)
	}

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager: sceneManager,
		effects:      effects,
		settings:     settings,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.effects.Window.Width, a.effects.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.effects.Window.Width, a.effects.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			a.settings.SetFullscreen(false)
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
			a.settings.SetFullscreen(true)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.effects.Window.Width, a.effects.Window.Height
}

// Effects 返回生效的特效配置
func (a *App) Effects() *config.EffectsConfig {
	return a.effects
}

// Shutdown 卸载当前场景并保存设置
// 在 RunGame 返回后调用
func (a *App) Shutdown() {
	a.sceneManager.Shutdown()
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
