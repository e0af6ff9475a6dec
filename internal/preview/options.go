// Package preview 提供无窗口的特效预览服务
//
// 服务器持有一个使用 render.Recorder 作为图层表面的 stage.Stage，
// 通过 HTTP 接口驱动指针、滚动和帧推进，并以 JSON 返回最近一帧的
// 绘制指令与卡片、分区、按钮状态。
package preview

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// 环境变量名
const (
	EnvPort       = "PORT"
	EnvConfig     = "FX_CONFIG"
	EnvSeed       = "FX_SEED"
	EnvSnapshotDB = "FX_SNAPSHOT_DB"
	EnvGinMode    = "GIN_MODE"
)

// Options 服务启动参数
type Options struct {
	Port       string
	ConfigPath string
	Seed       int64
	// SnapshotDB 为空时不启用快照接口
	SnapshotDB string
}

// OptionsFromEnv 从环境变量读取参数，getenv 为 nil 时使用 os.Getenv
func OptionsFromEnv(getenv func(string) string) (Options, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	opts := Options{
		Port:       getenv(EnvPort),
		ConfigPath: getenv(EnvConfig),
		SnapshotDB: getenv(EnvSnapshotDB),
	}
	if opts.Port == "" {
		opts.Port = "8080"
	}
	if s := getenv(EnvSeed); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Options{}, fmt.Errorf("invalid %s %q: %w", EnvSeed, s, err)
		}
		opts.Seed = seed
	}
	return opts, nil
}

// LoadEnvFile 读取 .env 文件中的参数，不修改进程环境
// 进程环境中已有的变量优先
func LoadEnvFile(path string) (Options, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return Options{}, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return OptionsFromEnv(func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return env[key]
	})
}
