// Package main 启动无窗口的特效预览服务
//
// 用法:
//
//	go run ./cmd/fx-preview [flags]
//
// 参数从环境变量读取，启动时自动加载当前目录的 .env：
//
//	PORT            监听端口（默认 8080）
//	FX_CONFIG       特效配置文件（默认使用内置默认值）
//	FX_SEED         随机种子，固定后每次启动画面一致
//	FX_SNAPSHOT_DB  帧快照数据库路径，为空时关闭快照接口
//	GIN_MODE        gin 运行模式（debug / release / test）
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/decker502/folio-fx/internal/preview"
	"github.com/decker502/folio-fx/pkg/config"
	"github.com/gin-gonic/gin"
)

func main() {
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	envFile := flag.String("env", "", "Read settings from this env file instead of .env")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	var (
		opts preview.Options
		err  error
	)
	if *envFile != "" {
		opts, err = preview.LoadEnvFile(*envFile)
	} else {
		opts, err = preview.OptionsFromEnv(nil)
	}
	if err != nil {
		fatal(err)
	}
	if os.Getenv(preview.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := run(opts); err != nil {
		fatal(err)
	}
}

// run 打开快照库、创建服务并阻塞监听，返回前关闭已打开的资源
func run(opts preview.Options) error {
	cfg := config.Defaults()
	if opts.ConfigPath != "" {
		var err error
		if cfg, err = config.LoadEffectsConfig(opts.ConfigPath); err != nil {
			return err
		}
	}

	var snapshots *preview.SnapshotStore
	if opts.SnapshotDB != "" {
		var err error
		if snapshots, err = preview.OpenSnapshotStore(opts.SnapshotDB); err != nil {
			return err
		}
		defer snapshots.Close()
	}

	server, err := preview.NewServer(cfg, opts.Seed, snapshots)
	if err != nil {
		return err
	}
	defer server.Close()

	log.Printf("[Preview] listening on :%s", opts.Port)
	if err := server.Router().Run(":" + opts.Port); err != nil {
		return fmt.Errorf("preview server stopped: %w", err)
	}
	return nil
}

// fatal 只在 main 中调用，此时 run 的 defer 都已执行
func fatal(err error) {
	log.SetOutput(os.Stderr)
	log.Fatal(err)
}
