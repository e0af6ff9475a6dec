package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/decker502/folio-fx/internal/preview"
	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// 启动失败时 run 返回错误而不是直接退出，快照库已关闭可以重新打开
func TestRunReturnsErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		opts    preview.Options
		wantErr error
	}{
		{
			name:    "配置文件不存在",
			opts:    preview.Options{Port: "0", ConfigPath: filepath.Join(dir, "missing.yaml")},
			wantErr: os.ErrNotExist,
		},
		{
			name: "端口无效",
			opts: preview.Options{Port: "invalid-port", SnapshotDB: filepath.Join(dir, "snapshots.db")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.opts)
			if err == nil {
				t.Fatal("run() = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("run() = %v, want errors.Is %v", err, tt.wantErr)
			}
			if tt.opts.SnapshotDB == "" {
				return
			}
			store, err := preview.OpenSnapshotStore(tt.opts.SnapshotDB)
			if err != nil {
				t.Fatalf("reopen snapshot db: %v", err)
			}
			defer store.Close()
			if _, err := store.Save("after-run", preview.Frame{}); err != nil {
				t.Errorf("Save() after run = %v", err)
			}
		})
	}
}
