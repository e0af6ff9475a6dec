// Package stage 组装完整的特效层：宿主、指针与滚动信号、页面实体与系统、
// 以及四个画布特效（粒子背景、3D 背景、环境闪电、光标跟随）。
//
// Stage 不关心画面输出到哪里：每个图层的 render.Surface 由调用方的
// SurfaceFactory 提供。桌面程序使用 Ebitengine 图像，预览服务器和测试
// 使用 render.Recorder。
package stage

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/folio-fx/pkg/components"
	"github.com/decker502/folio-fx/pkg/config"
	"github.com/decker502/folio-fx/pkg/ecs"
	"github.com/decker502/folio-fx/pkg/effects"
	"github.com/decker502/folio-fx/pkg/entities"
	"github.com/decker502/folio-fx/pkg/fx"
	"github.com/decker502/folio-fx/pkg/host"
	"github.com/decker502/folio-fx/pkg/render"
	"github.com/decker502/folio-fx/pkg/signal"
	"github.com/decker502/folio-fx/pkg/systems"
)

// Layer 图层名称
type Layer string

// 图层，按合成顺序自下而上
const (
	LayerParticles Layer = "particles"
	LayerScene     Layer = "scene"
	LayerLightning Layer = "lightning"
	LayerPage      Layer = "page"
	LayerCursor    Layer = "cursor"
)

// Layers 返回合成顺序
func Layers() []Layer {
	return []Layer{LayerParticles, LayerScene, LayerLightning, LayerPage, LayerCursor}
}

// SurfaceFactory 为图层创建绘制表面
type SurfaceFactory func(layer Layer, width, height int) render.Surface

// Options 舞台参数
type Options struct {
	Config   *config.EffectsConfig
	Surfaces SurfaceFactory
	// Seed 随机种子，相同种子产生相同的粒子与装饰
	Seed int64
	// NoIntersection 模拟不支持视口相交观察的宿主
	NoIntersection bool
}

// Stage 一个挂载在宿主上的完整特效层
type Stage struct {
	cfg  *config.EffectsConfig
	host *host.Host
	rng  *rand.Rand

	surfaces map[Layer]render.Surface

	pointer *signal.PointerTracker
	scroll  *signal.ScrollTracker

	entityManager *ecs.EntityManager
	page          entities.PageEntities
	tilt          *systems.TiltSystem
	magnetic      *systems.MagneticSystem
	reveal        *systems.RevealSystem
	renderer      *systems.RenderSystem

	particles *effects.ParticleField
	scene     *effects.AmbientScene
	lightning *effects.AmbientLightning
	cursor    *effects.CursorFollower

	now     time.Duration
	frames  int
	mounted bool
}

// New 创建舞台，尚未挂载
func New(opts Options) (*Stage, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Defaults()
	}
	if opts.Surfaces == nil {
		return nil, fmt.Errorf("stage: surface factory is required")
	}
	if _, err := effects.ParseSceneVariant(cfg.Scene.Variant); err != nil {
		return nil, fmt.Errorf("stage: %w", err)
	}
	// 运行时切换强度、场景只修改副本
	own := *cfg
	cfg = &own

	w, h := cfg.Window.Width, cfg.Window.Height
	s := &Stage{
		cfg:           cfg,
		rng:           rand.New(rand.NewSource(opts.Seed)),
		surfaces:      make(map[Layer]render.Surface),
		entityManager: ecs.NewEntityManager(),
	}

	var err error
	s.page, err = entities.NewPage(s.entityManager, cfg)
	if err != nil {
		return nil, fmt.Errorf("stage: failed to build page: %w", err)
	}
	s.host = host.New(host.Options{
		Width:          w,
		Height:         h,
		DocumentHeight: s.page.Height,
		NoIntersection: opts.NoIntersection,
	})
	for _, layer := range Layers() {
		s.surfaces[layer] = opts.Surfaces(layer, w, h)
	}

	s.tilt = systems.NewTiltSystem(s.entityManager, s.host, s.rng)
	s.magnetic = systems.NewMagneticSystem(s.entityManager, s.host)
	s.reveal = systems.NewRevealSystem(s.entityManager, s.host)
	s.renderer = systems.NewRenderSystem(s.entityManager, s.host)
	return s, nil
}

func (s *Stage) particleOptions() effects.ParticleFieldOptions {
	opts := effects.DefaultParticleFieldOptions()
	p := s.cfg.Particles
	opts.Count = p.Count
	opts.LinkDistance = p.LinkDistance
	opts.LinkAlphaScale = p.LinkAlpha
	opts.Glow = p.Glow
	opts.HighlightRadius = p.HighlightRadius
	opts.TimeScaled = p.TimeScaledMotion
	return opts
}

// Mount 开始跟踪信号、挂载页面系统和画布特效
func (s *Stage) Mount() {
	if s.mounted || s.host.Closed() {
		return
	}
	s.mounted = true

	s.pointer = signal.TrackPointer(s.host)
	s.scroll = signal.TrackScroll(s.host)

	s.tilt.Mount()
	s.magnetic.Mount()
	s.reveal.Mount()

	s.particles = effects.NewParticleField(s.surfaces[LayerParticles], s.host, s.pointer.Signal(), s.rng, s.particleOptions())
	s.particles.Mount()
	s.mountScene()
	s.lightning = effects.NewAmbientLightning(s.surfaces[LayerLightning], s.host, s.rng)
	s.lightning.Mount()
	s.cursor = effects.NewCursorFollower(s.surfaces[LayerCursor], s.host, s.pointer.Signal())
	s.cursor.Mount()

	log.Printf("[Stage] 挂载完成: %d 个分区, %d 张卡片, %d 个按钮, 场景 %s",
		len(s.page.Sections), len(s.page.Cards), len(s.page.Buttons), s.cfg.Scene.Variant)
}

func (s *Stage) mountScene() {
	v, _ := effects.ParseSceneVariant(s.cfg.Scene.Variant)
	s.scene = effects.NewAmbientScene(s.surfaces[LayerScene], s.host, s.scroll.Signal(), s.rng, v)
	if !s.scene.Mount() {
		// 关闭或无法绘制时清空残留画面
		if ctx, err := s.surfaces[LayerScene].Context2D(); err == nil {
			ctx.Clear()
		}
	}
}

// Unmount 卸载全部组件并拆除宿主，之后 Step 不再产生任何绘制
func (s *Stage) Unmount() {
	if !s.mounted {
		return
	}
	s.mounted = false

	s.cursor.Unmount()
	s.lightning.Unmount()
	s.scene.Unmount()
	s.particles.Unmount()
	s.reveal.Unmount()
	s.magnetic.Unmount()
	s.tilt.Unmount()
	s.scroll.Stop()
	s.pointer.Stop()
	s.host.Close()
	log.Printf("[Stage] 已卸载")
}

// Mounted 报告舞台是否已挂载
func (s *Stage) Mounted() bool {
	return s.mounted
}

// Step 推进一帧
//
// 顺序：宿主执行帧回调（画布特效、滚动采样），然后推进卡片动画时钟和
// 显现进度，最后重绘页面图层。
func (s *Stage) Step(dt time.Duration) {
	if !s.mounted {
		return
	}
	if dt < 0 {
		dt = 0
	}
	s.now += dt
	s.frames++
	s.host.Tick(s.now)

	sec := dt.Seconds()
	s.tilt.Update(sec)
	s.reveal.Update(sec)

	if ctx, err := s.surfaces[LayerPage].Context2D(); err == nil {
		ctx.Clear()
		s.renderer.Draw(ctx)
	}
}

// MovePointer 指针移动到视口坐标 (x, y)
func (s *Stage) MovePointer(x, y float64) { s.host.MovePointer(x, y) }

// LeaveWindow 指针离开窗口
func (s *Stage) LeaveWindow() { s.host.PointerLeaveWindow() }

// ScrollBy 相对滚动
func (s *Stage) ScrollBy(delta float64) { s.host.ScrollBy(delta) }

// ScrollTo 滚动到指定位置
func (s *Stage) ScrollTo(offset float64) { s.host.ScrollTo(offset) }

// Resize 改变视口尺寸，页面图层随之调整
func (s *Stage) Resize(width, height int) {
	s.surfaces[LayerPage].Resize(width, height)
	s.host.Resize(width, height)
}

// SetIntensity 改变全部卡片的强度并重新生成装饰
func (s *Stage) SetIntensity(in fx.Intensity) {
	s.cfg.Cards.Intensity = string(in)
	s.updateCards(func(card *components.TiltCardComponent) { card.Intensity = in })
}

// SetHoverEnabled 开关卡片悬停效果
func (s *Stage) SetHoverEnabled(enabled bool) {
	s.cfg.Cards.HoverEnabled = &enabled
	s.updateCards(func(card *components.TiltCardComponent) { card.HoverEnabled = enabled })
}

func (s *Stage) updateCards(fn func(card *components.TiltCardComponent)) {
	if s.mounted {
		s.tilt.Unmount()
	}
	for _, id := range s.page.Cards {
		if card, ok := ecs.GetComponent[*components.TiltCardComponent](s.entityManager, id); ok {
			fn(card)
		}
	}
	if s.mounted {
		s.tilt.Mount()
		// 指针已在卡片内时立即进入悬停状态
		s.host.RefreshHover()
	}
}

// SetSceneVariant 切换 3D 背景
func (s *Stage) SetSceneVariant(v effects.SceneVariant) {
	s.cfg.Scene.Variant = string(v)
	if !s.mounted {
		return
	}
	s.scene.Unmount()
	s.mountScene()
	log.Printf("[Stage] 切换场景: %s", v)
}

// SceneVariant 当前的 3D 背景
func (s *Stage) SceneVariant() effects.SceneVariant {
	v, _ := effects.ParseSceneVariant(s.cfg.Scene.Variant)
	return v
}

// Intensity 当前的卡片强度
func (s *Stage) Intensity() fx.Intensity {
	return s.cfg.Cards.IntensityValue()
}

// HoverEnabled 卡片悬停是否开启
func (s *Stage) HoverEnabled() bool {
	return s.cfg.Cards.Hover()
}

// Surface 返回图层的绘制表面
func (s *Stage) Surface(layer Layer) render.Surface {
	return s.surfaces[layer]
}

// Host 返回宿主
func (s *Stage) Host() *host.Host {
	return s.host
}

// EntityManager 返回页面实体管理器
func (s *Stage) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Page 返回页面实体
func (s *Stage) Page() entities.PageEntities {
	return s.page
}

// Particles 返回粒子背景，挂载之前为 nil
func (s *Stage) Particles() *effects.ParticleField {
	return s.particles
}

// Cursor 返回光标跟随，挂载之前为 nil
func (s *Stage) Cursor() *effects.CursorFollower {
	return s.cursor
}

// Lightning 返回环境闪电层，挂载之前为 nil
func (s *Stage) Lightning() *effects.AmbientLightning {
	return s.lightning
}

// Scene 返回 3D 背景，挂载之前为 nil
func (s *Stage) Scene() *effects.AmbientScene {
	return s.scene
}

// Elapsed 舞台时钟
func (s *Stage) Elapsed() time.Duration {
	return s.now
}

// Frames 已执行的帧数
func (s *Stage) Frames() int {
	return s.frames
}
