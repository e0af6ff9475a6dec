package scenes

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/decker502/folio-fx/pkg/components"
	"github.com/decker502/folio-fx/pkg/config"
	"github.com/decker502/folio-fx/pkg/ecs"
	"github.com/decker502/folio-fx/pkg/fx"
	"github.com/decker502/folio-fx/pkg/game"
	"github.com/decker502/folio-fx/pkg/input"
	"github.com/decker502/folio-fx/pkg/render"
	"github.com/decker502/folio-fx/pkg/render/ebitenrender"
	"github.com/decker502/folio-fx/pkg/stage"
	"github.com/decker502/folio-fx/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// PageSceneName 在 SceneManager 中注册的名称
const PageSceneName = "page"

// helpLine 页面底部的快捷键提示
const helpLine = "1/2/3 intensity   S scene   H hover   T motion   F11 fullscreen"

var labelColor = color.NRGBA{0xe5, 0xe7, 0xeb, 0xff}

// PageScene 作品集页面：在 Ebitengine 窗口中运行完整的特效层
//
// 每帧把鼠标/触摸输入转发给宿主，推进舞台，并按图层顺序合成。
// 快捷键修改的选项写入 SettingsManager，卸载时保存。
type PageScene struct {
	stage    *stage.Stage
	settings *game.SettingsManager
	drag     *input.DragManager
	face     text.Face

	width, height int
}

// NewPageScene 创建页面场景并挂载特效层
// settings 可为 nil（不保存运行时选项）
func NewPageScene(cfg *config.EffectsConfig, settings *game.SettingsManager, seed int64) (*PageScene, error) {
	st, err := stage.New(stage.Options{
		Config: cfg,
		Seed:   seed,
		Surfaces: func(_ stage.Layer, w, h int) render.Surface {
			return ebitenrender.NewSurface(w, h)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create page scene: %w", err)
	}
	s := &PageScene{
		stage:    st,
		settings: settings,
		drag:     input.NewDragManager(),
		face:     text.NewGoXFace(basicfont.Face7x13),
		width:    cfg.Window.Width,
		height:   cfg.Window.Height,
	}
	st.Mount()
	return s, nil
}

// Stage 返回特效层
func (s *PageScene) Stage() *stage.Stage {
	return s.stage
}

// Update 转发输入并推进一帧
func (s *PageScene) Update(deltaTime float64) {
	in := input.ReadFrameInput(s.width, s.height, s.drag)
	if in.InWindow {
		s.stage.MovePointer(float64(in.X), float64(in.Y))
	} else {
		s.stage.LeaveWindow()
	}
	if d := in.ScrollDelta(); d != 0 {
		s.stage.ScrollBy(d)
	}

	for _, key := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.KeyS, ebiten.KeyH, ebiten.KeyT} {
		if inpututil.IsKeyJustPressed(key) {
			s.handleKey(key)
		}
	}

	s.stage.Step(time.Duration(deltaTime * float64(time.Second)))
}

// handleKey 处理快捷键
func (s *PageScene) handleKey(key ebiten.Key) {
	switch key {
	case ebiten.Key1, ebiten.Key2, ebiten.Key3:
		in := map[ebiten.Key]fx.Intensity{
			ebiten.Key1: fx.IntensityLow,
			ebiten.Key2: fx.IntensityMedium,
			ebiten.Key3: fx.IntensityHigh,
		}[key]
		s.stage.SetIntensity(in)
		if s.settings != nil {
			s.settings.SetIntensity(in)
		}
		log.Printf("[PageScene] 卡片强度: %s", in)

	case ebiten.KeyS:
		next := s.stage.SceneVariant().Next()
		s.stage.SetSceneVariant(next)
		if s.settings != nil {
			s.settings.SetSceneVariant(next)
		}

	case ebiten.KeyH:
		enabled := !s.stage.HoverEnabled()
		s.stage.SetHoverEnabled(enabled)
		if s.settings != nil {
			s.settings.SetHoverEnabled(enabled)
		}
		log.Printf("[PageScene] 卡片悬停: %v", enabled)

	case ebiten.KeyT:
		// 运动模式在粒子重建时生效，这里只记录选项
		if s.settings != nil {
			scaled := !s.settings.GetSettings().TimeScaledMotion
			s.settings.SetTimeScaledMotion(scaled)
			log.Printf("[PageScene] 粒子按帧间隔缩放: %v（下次启动生效）", scaled)
		}
	}
}

// Draw 按图层顺序合成并绘制文字标签
func (s *PageScene) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if w != s.width || h != s.height {
		s.width, s.height = w, h
		s.stage.Resize(w, h)
	}

	for _, layer := range stage.Layers() {
		surface, ok := s.stage.Surface(layer).(*ebitenrender.Surface)
		if !ok || surface.Image() == nil {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		if layer == stage.LayerCursor {
			op.Blend = ebiten.BlendLighter
		}
		screen.DrawImage(surface.Image(), op)
	}

	s.drawLabels(screen)
	s.drawText(screen, helpLine, 12, float64(h)-20, 0.5)
}

// drawLabels 分区标题和按钮文字（Context2D 不绘制文字）
func (s *PageScene) drawLabels(screen *ebiten.Image) {
	em := s.stage.EntityManager()
	offset, _ := s.stage.Host().Scroll()

	for _, id := range s.stage.Page().Sections {
		section, _ := ecs.GetComponent[*components.SectionComponent](em, id)
		bounds, _ := ecs.GetComponent[*components.BoundsComponent](em, id)
		alpha, dy := 1.0, 0.0
		if reveal, ok := ecs.GetComponent[*components.RevealComponent](em, id); ok {
			if !reveal.Visible {
				continue
			}
			alpha, dy = systems.RevealStyle(reveal)
		}
		vp := bounds.Viewport(offset)
		s.drawText(screen, section.Name, vp.X+120, vp.Y+64+dy, alpha)
	}

	for _, id := range s.stage.Page().Buttons {
		mag, _ := ecs.GetComponent[*components.MagneticComponent](em, id)
		bounds, _ := ecs.GetComponent[*components.BoundsComponent](em, id)
		vp := bounds.Viewport(offset).Translate(mag.OffsetX, mag.OffsetY)
		tw, th := text.Measure(mag.Label, s.face, 0)
		s.drawText(screen, mag.Label, vp.X+(vp.W-tw)/2, vp.Y+(vp.H-th)/2, 1)
	}
}

func (s *PageScene) drawText(screen *ebiten.Image, str string, x, y, alpha float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(labelColor)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, str, s.face, op)
}

// Unmount 卸载特效层并保存运行时选项
func (s *PageScene) Unmount() {
	s.stage.Unmount()
	if s.settings != nil {
		if err := s.settings.Save(); err != nil {
			log.Printf("[PageScene] Warning: %v", err)
		}
	}
}
