// Package main 在终端中预览特效层
//
// 用法:
//
//	go run ./cmd/fx-term [flags]
//
// 参数:
//
//	--config <path>       特效配置文件（默认使用内置默认值）
//	--scene <variant>     背景场景：nodes / blackhole / off
//	--intensity <level>   卡片强度：low / medium / high
//	--particles <n>       粒子数量（最多 100）
//	--seed <n>            随机种子
//	--log <path>          把日志写入文件（终端被占用，不输出到 stderr）
//
// 按键:
//
//	鼠标移动          移动指针
//	滚轮 / ↑ ↓        滚动页面
//	PgUp / PgDn       按一屏滚动
//	1/2/3             切换卡片强度
//	s                 切换背景场景
//	h                 开关卡片悬停
//	q / Esc / Ctrl-C  退出
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/folio-fx/pkg/config"
	"github.com/decker502/folio-fx/pkg/effects"
	"github.com/decker502/folio-fx/pkg/fx"
	"github.com/decker502/folio-fx/pkg/render"
	"github.com/decker502/folio-fx/pkg/stage"
	"github.com/decker502/folio-fx/pkg/utils"
	"github.com/gdamore/tcell/v2"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

// Preview 终端预览状态
type Preview struct {
	screen     tcell.Screen
	stage      *stage.Stage
	layers     []*render.TerminalSurface
	cols, rows int
	last       time.Time
}

// NewPreview 初始化 tcell 屏幕并挂载舞台
func NewPreview(cfg *config.EffectsConfig, seed int64) (*Preview, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	p, err := newPreview(screen, cfg, seed)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return p, nil
}

// newPreview 在已初始化的屏幕上创建并挂载舞台
func newPreview(screen tcell.Screen, cfg *config.EffectsConfig, seed int64) (*Preview, error) {
	cols, rows := screen.Size()
	own := *cfg
	own.Window.Width = cols * render.CellPixelWidth
	own.Window.Height = rows * render.CellPixelHeight

	st, err := stage.New(stage.Options{
		Config: &own,
		Seed:   seed,
		Surfaces: func(_ stage.Layer, w, h int) render.Surface {
			return render.NewTerminalSurface(nil, w/render.CellPixelWidth, h/render.CellPixelHeight)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create stage: %w", err)
	}

	p := &Preview{screen: screen, stage: st, cols: cols, rows: rows, last: time.Now()}
	for _, layer := range stage.Layers() {
		p.layers = append(p.layers, st.Surface(layer).(*render.TerminalSurface))
	}
	st.Mount()
	return p, nil
}

// handleInput 处理一个 tcell 事件，返回 false 表示退出
func (p *Preview) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			p.stage.ScrollBy(-utils.WheelStep)
		case tcell.KeyDown:
			p.stage.ScrollBy(utils.WheelStep)
		case tcell.KeyPgUp:
			p.stage.ScrollBy(-p.pageHeight())
		case tcell.KeyPgDn:
			p.stage.ScrollBy(p.pageHeight())
		case tcell.KeyRune:
			return p.handleRune(ev.Rune())
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		// 指针取单元格中心
		p.stage.MovePointer(
			float64(col*render.CellPixelWidth+render.CellPixelWidth/2),
			float64(row*render.CellPixelHeight+render.CellPixelHeight/2),
		)
		buttons := ev.Buttons()
		if buttons&tcell.WheelUp != 0 {
			p.stage.ScrollBy(-utils.WheelStep)
		}
		if buttons&tcell.WheelDown != 0 {
			p.stage.ScrollBy(utils.WheelStep)
		}

	case *tcell.EventResize:
		p.screen.Sync()
		p.resize(p.screen.Size())
	}
	return true
}

func (p *Preview) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case '1':
		p.stage.SetIntensity(fx.IntensityLow)
	case '2':
		p.stage.SetIntensity(fx.IntensityMedium)
	case '3':
		p.stage.SetIntensity(fx.IntensityHigh)
	case 's':
		p.stage.SetSceneVariant(p.stage.SceneVariant().Next())
	case 'h':
		p.stage.SetHoverEnabled(!p.stage.HoverEnabled())
	}
	return true
}

func (p *Preview) pageHeight() float64 {
	return float64(p.rows * render.CellPixelHeight)
}

func (p *Preview) resize(cols, rows int) {
	if cols == p.cols && rows == p.rows {
		return
	}
	p.cols, p.rows = cols, rows
	p.stage.Resize(cols*render.CellPixelWidth, rows*render.CellPixelHeight)
	log.Printf("[Preview] 终端尺寸 %dx%d", cols, rows)
}

// step 推进一帧，dt 取两次绘制之间的真实间隔
func (p *Preview) step(now time.Time) {
	dt := now.Sub(p.last)
	p.last = now
	p.stage.Step(dt)
}

func (p *Preview) draw() {
	p.step(time.Now())

	p.screen.Clear()
	render.PresentLayers(p.screen, p.layers...)
	p.drawStatus()
	p.screen.Show()
}

// statusLine 底部状态栏内容
func (p *Preview) statusLine() string {
	offset, max := p.stage.Host().Scroll()
	return fmt.Sprintf(" scene=%s intensity=%s hover=%t scroll=%.0f/%.0f  [1/2/3] [s] [h] [q]",
		p.stage.SceneVariant(), p.stage.Intensity(), p.stage.HoverEnabled(), offset, max)
}

func (p *Preview) drawStatus() {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	row := p.rows - 1
	for col, r := range []rune(p.statusLine()) {
		if col >= p.cols {
			break
		}
		p.screen.SetContent(col, row, r, nil, style)
	}
}

func (p *Preview) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				// 屏幕已关闭
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !p.handleInput(ev) {
				return
			}
		case <-ticker.C:
			p.draw()
		}
	}
}

func (p *Preview) cleanup() {
	p.stage.Unmount()
	p.screen.Fini()
}

// loadConfig 读取配置并应用命令行覆盖
func loadConfig(path, scene, intensity string, particles int) (*config.EffectsConfig, error) {
	cfg := config.Defaults()
	if path != "" {
		loaded, err := config.LoadEffectsConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if scene != "" {
		if _, err := effects.ParseSceneVariant(scene); err != nil {
			return nil, fmt.Errorf("invalid --scene: %w", err)
		}
		cfg.Scene.Variant = scene
	}
	if intensity != "" {
		if _, err := fx.ParseIntensity(intensity); err != nil {
			return nil, fmt.Errorf("invalid --intensity: %w", err)
		}
		cfg.Cards.Intensity = intensity
	}
	if particles > 0 {
		cfg.Particles.Count = min(particles, effects.MaxParticles)
	}
	return cfg, nil
}

func main() {
	configPath := flag.String("config", "", "Path to an effects config file")
	sceneFlag := flag.String("scene", "", "Ambient scene variant: nodes, blackhole or off")
	intensityFlag := flag.String("intensity", "", "Card intensity: low, medium or high")
	particles := flag.Int("particles", 0, "Particle count (1-100)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	logPath := flag.String("log", "", "Write logs to this file")
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := loadConfig(*configPath, *sceneFlag, *intensityFlag, *particles)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	preview, err := NewPreview(cfg, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer preview.cleanup()

	preview.run()
}
