// folio-fx 桌面端入口
//
// 用法:
//
//	go run . [flags]
//
// 参数:
//
//	--verbose             输出详细日志
//	--config <path>       使用外部特效配置（默认读取嵌入的 data/effects.yaml）
//	--scene <variant>     背景场景：nodes / blackhole / off
//	--intensity <level>   卡片强度：low / medium / high
//	--particles <n>       粒子数量（最多 100）
//	--seed <n>            随机种子，0 表示按时间
//	--skip-loading        跳过加载场景
//	--no-persist          不读写保存的设置
//
// 按键:
//
//	1/2/3   切换卡片强度
//	S       切换背景场景
//	H       开关卡片悬停
//	T       开关按时间缩放的粒子运动（下次启动生效）
//	F11     切换全屏
//	Esc     退出
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/folio-fx/pkg/app"
	"github.com/decker502/folio-fx/pkg/config"
	"github.com/decker502/folio-fx/pkg/effects"
	"github.com/decker502/folio-fx/pkg/embedded"
	"github.com/decker502/folio-fx/pkg/fx"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	configPath := flag.String("config", "", "Path to an effects config file (default: embedded data/effects.yaml)")
	sceneFlag := flag.String("scene", "", "Ambient scene variant: nodes, blackhole or off")
	intensityFlag := flag.String("intensity", "", "Card intensity: low, medium or high")
	particles := flag.Int("particles", 0, "Particle count (1-100)")
	seed := flag.Int64("seed", 0, "Random seed (0: time based)")
	skipLoading := flag.Bool("skip-loading", false, "Skip the loading scene")
	noPersist := flag.Bool("no-persist", false, "Do not read or write saved settings")
	flag.Parse()

	// 在创建应用之前校验参数，避免窗口打开后才失败
	var variant effects.SceneVariant
	if *sceneFlag != "" {
		v, err := effects.ParseSceneVariant(*sceneFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --scene: %v\n", err)
			os.Exit(2)
		}
		variant = v
	}
	var intensity fx.Intensity
	if *intensityFlag != "" {
		in, err := fx.ParseIntensity(*intensityFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --intensity: %v\n", err)
			os.Exit(2)
		}
		intensity = in
	}
	if *particles < 0 || *particles > effects.MaxParticles {
		fmt.Fprintf(os.Stderr, "invalid --particles: %d (must be 1-%d)\n", *particles, effects.MaxParticles)
		os.Exit(2)
	}

	// 初始化嵌入资源（必须在创建应用之前）
	embedded.Init(dataFS)

	application, err := app.NewApp(app.Config{
		Verbose:          *verbose,
		ConfigPath:       *configPath,
		SkipLoadingScene: *skipLoading,
		Seed:             *seed,
		NoPersist:        *noPersist,
		Overrides: func(cfg *config.EffectsConfig) {
			if *sceneFlag != "" {
				cfg.Scene.Variant = string(variant)
			}
			if *intensityFlag != "" {
				cfg.Cards.Intensity = string(intensity)
			}
			if *particles > 0 {
				cfg.Particles.Count = *particles
			}
		},
	})
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Failed to initialize app: %v", err)
	}

	window := application.Effects().Window
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(application); err != nil {
		application.Shutdown()
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
	application.Shutdown()
}
