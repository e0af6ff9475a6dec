package effects

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/decker502/folio-fx/pkg/render"
	"github.com/decker502/folio-fx/pkg/signal"
	"github.com/decker502/folio-fx/pkg/vmath"
)

// SceneVariant 3D 背景的种类
type SceneVariant string

const (
	SceneNodes     SceneVariant = "nodes"
	SceneBlackhole SceneVariant = "blackhole"
	SceneOff       SceneVariant = "off"
)

// ParseSceneVariant 解析场景名，空串视为 nodes
func ParseSceneVariant(s string) (SceneVariant, error) {
	switch v := SceneVariant(strings.ToLower(strings.TrimSpace(s))); v {
	case "", SceneNodes:
		return SceneNodes, nil
	case SceneBlackhole, SceneOff:
		return v, nil
	}
	return "", fmt.Errorf("unknown scene variant %q (want nodes, blackhole or off)", s)
}

// Next 循环切换场景
func (v SceneVariant) Next() SceneVariant {
	switch v {
	case SceneNodes:
		return SceneBlackhole
	case SceneBlackhole:
		return SceneOff
	default:
		return SceneNodes
	}
}

const (
	sceneFOV      = 75.0
	nodeCount     = 50
	nodeSpread    = 100.0
	cloudCount    = 1000
	holeRadius    = 3.0
	holeGlow      = 3.2
	ringInner     = 3.5
	ringOuter     = 8.0
	globeRadius   = 8.0
	ringSegments  = 48
	globeSegments = 24
)

var (
	nodeColor  = color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 255}
	ringColor  = color.NRGBA{R: 0x8b, G: 0x5c, B: 0xf6, A: 255}
	glowColor  = color.NRGBA{R: 0x6d, G: 0x28, B: 0xd9, A: 255}
	globeColor = color.NRGBA{R: 0x8b, G: 0x5c, B: 0xf6, A: 255}
)

// NodesPose 节点星群在某一时刻的姿态
type NodesPose struct {
	Group  vmath.Transform
	Camera vmath.Vec3
}

// NodesPoseAt 由滚动进度和动画时钟（秒）计算星群姿态
// 星群 z = progress*50-25，相机 z = 50-progress*100 并始终看向原点
func NodesPoseAt(progress, t float64) NodesPose {
	return NodesPose{
		Group: vmath.Transform{
			Position: vmath.Vec3{Z: progress*50 - 25},
			Rotation: vmath.Vec3{X: math.Sin(t*0.03) * 0.1, Y: t * 0.05},
			Scale:    1,
		},
		Camera: vmath.Vec3{Z: 50 - progress*100},
	}
}

// BlackholePose 黑洞场景在某一时刻的姿态
type BlackholePose struct {
	Hole   vmath.Transform
	Globe  vmath.Transform
	Points vmath.Transform
}

// BlackholePoseAt 由滚动进度和动画时钟（秒）计算黑洞场景姿态
func BlackholePoseAt(progress, t float64) BlackholePose {
	return BlackholePose{
		Hole: vmath.Transform{
			Position: vmath.Vec3{X: math.Sin(progress*2*math.Pi) * 10, Y: -progress * 20, Z: -20},
			Rotation: vmath.Vec3{Z: t * 0.5},
			Scale:    1 + math.Sin(t)*0.1,
		},
		Globe: vmath.Transform{
			Position: vmath.Vec3{X: -15, Y: math.Sin(t*0.5) * 2, Z: -30},
			Rotation: vmath.Vec3{X: math.Sin(t*0.1) * 0.1, Y: t * 0.2},
			Scale:    1,
		},
		Points: vmath.Transform{
			Rotation: vmath.Vec3{X: t * 0.01, Y: t * 0.02},
			Scale:    1,
		},
	}
}

type sceneNode struct {
	pos   vmath.Vec3
	scale float64
}

type cloudPoint struct {
	pos   vmath.Vec3
	color color.NRGBA
}

// octahedron 单位八面体的顶点与棱
var (
	octaVerts = [6]vmath.Vec3{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1}}
	octaEdges = [12][2]int{
		{0, 2}, {0, 3}, {0, 4}, {0, 5},
		{1, 2}, {1, 3}, {1, 4}, {1, 5},
		{2, 4}, {4, 3}, {3, 5}, {5, 2},
	}
)

// AmbientScene 滚动驱动的 3D 装饰背景
//
// 没有 GPU 三维管线，场景用透视相机把线框和点投影到 2D 上下文。
// 节点和点云在挂载时随机生成一次。
type AmbientScene struct {
	variant SceneVariant
	scroll  *signal.Scroll
	rng     *rand.Rand
	loop    loop
	camera  *vmath.Camera

	clock  float64
	nodes  []sceneNode
	cloud  []cloudPoint
	frames int
}

// NewAmbientScene 创建 3D 背景，scroll 可为 nil（进度恒为 0）
func NewAmbientScene(surface render.Surface, h Host, scroll *signal.Scroll, rng *rand.Rand, variant SceneVariant) *AmbientScene {
	s := &AmbientScene{
		variant: variant,
		scroll:  scroll,
		rng:     rng,
		camera:  vmath.NewCamera(vmath.Vec3{Z: 50}, sceneFOV),
	}
	s.loop = loop{name: "AmbientScene", host: h, surface: surface, onFrame: s.frame}
	return s
}

// Variant 当前场景种类
func (s *AmbientScene) Variant() SceneVariant {
	return s.variant
}

// Mount 生成场景内容并开始帧循环；SceneOff 不挂载
func (s *AmbientScene) Mount() bool {
	if s.variant == SceneOff {
		return false
	}
	if !s.loop.start() {
		return false
	}
	s.clock = 0
	switch s.variant {
	case SceneBlackhole:
		s.cloud = make([]cloudPoint, cloudCount)
		for i := range s.cloud {
			s.cloud[i] = cloudPoint{
				pos: s.randomPoint(),
				color: color.NRGBA{
					R: uint8((0.5 + s.rng.Float64()*0.5) * 255),
					G: uint8((0.1 + s.rng.Float64()*0.4) * 255),
					B: uint8((0.8 + s.rng.Float64()*0.2) * 255),
					A: 204,
				},
			}
		}
	default:
		s.nodes = make([]sceneNode, nodeCount)
		for i := range s.nodes {
			s.nodes[i] = sceneNode{pos: s.randomPoint(), scale: s.rng.Float64()*0.5 + 0.2}
		}
	}
	return true
}

func (s *AmbientScene) randomPoint() vmath.Vec3 {
	return vmath.Vec3{
		X: (s.rng.Float64() - 0.5) * nodeSpread,
		Y: (s.rng.Float64() - 0.5) * nodeSpread,
		Z: (s.rng.Float64() - 0.5) * nodeSpread,
	}
}

// Unmount 停止帧循环并释放场景内容
func (s *AmbientScene) Unmount() {
	s.loop.stop()
	s.nodes = nil
	s.cloud = nil
}

// Mounted 报告帧循环是否在运行
func (s *AmbientScene) Mounted() bool {
	return s.loop.running
}

// Camera 返回场景相机（只读使用）
func (s *AmbientScene) Camera() vmath.Camera {
	return *s.camera
}

// Frames 已绘制的帧数
func (s *AmbientScene) Frames() int {
	return s.frames
}

func (s *AmbientScene) progress() float64 {
	if s.scroll == nil {
		return 0
	}
	return s.scroll.Progress()
}

func (s *AmbientScene) frame(ctx render.Context2D, dt, _ time.Duration) {
	s.clock += dt.Seconds()
	ctx.Clear()
	switch s.variant {
	case SceneBlackhole:
		s.drawBlackhole(ctx)
	default:
		s.drawNodes(ctx)
	}
	s.frames++
}

// line 投影并绘制一条 3D 线段，任一端点在相机后方时跳过
func (s *AmbientScene) line(ctx render.Context2D, a, b vmath.Vec3, w, h float64, c color.NRGBA) {
	ax, ay, _, okA := s.camera.Project(a, w, h)
	bx, by, _, okB := s.camera.Project(b, w, h)
	if okA && okB {
		ctx.StrokeLine(ax, ay, bx, by, 1, c)
	}
}

func (s *AmbientScene) drawNodes(ctx render.Context2D) {
	iw, ih := ctx.Size()
	w, h := float64(iw), float64(ih)
	pose := NodesPoseAt(s.progress(), s.clock)
	s.camera.Position = pose.Camera
	s.camera.LookAt(vmath.Vec3{})

	wire := render.WithAlpha(nodeColor, 0.6)
	for _, n := range s.nodes {
		var verts [6]vmath.Vec3
		for i, v := range octaVerts {
			verts[i] = pose.Group.Apply(vmath.V3Add(n.pos, vmath.V3Scale(v, n.scale)))
		}
		for _, e := range octaEdges {
			s.line(ctx, verts[e[0]], verts[e[1]], w, h, wire)
		}
	}

	chain := render.WithAlpha(nodeColor, 0.2)
	for i := 0; i+1 < len(s.nodes); i++ {
		s.line(ctx, pose.Group.Apply(s.nodes[i].pos), pose.Group.Apply(s.nodes[i+1].pos), w, h, chain)
	}
}

func (s *AmbientScene) drawBlackhole(ctx render.Context2D) {
	iw, ih := ctx.Size()
	w, h := float64(iw), float64(ih)
	pose := BlackholePoseAt(s.progress(), s.clock)
	s.camera.Position = vmath.Vec3{Z: 50}
	s.camera.LookAt(vmath.Vec3{})

	// 点云
	for _, p := range s.cloud {
		x, y, ppu, ok := s.camera.Project(pose.Points.Apply(p.pos), w, h)
		if !ok {
			continue
		}
		ctx.FillCircle(x, y, math.Max(0.4*ppu, 0.5), p.color, 0)
	}

	s.drawGlobe(ctx, pose.Globe, w, h)

	// 吸积盘：在黑洞局部坐标的 XZ 平面上（先绕 X 轴转 90°）
	ring := render.WithAlpha(ringColor, 0.4)
	for _, radius := range []float64{ringInner, (ringInner + ringOuter) / 2, ringOuter} {
		prev := s.ringPoint(pose.Hole, radius, 0)
		for i := 1; i <= ringSegments; i++ {
			next := s.ringPoint(pose.Hole, radius, 2*math.Pi*float64(i)/ringSegments)
			s.line(ctx, prev, next, w, h, ring)
			prev = next
		}
	}

	cx, cy, ppu, ok := s.camera.Project(pose.Hole.Position, w, h)
	if !ok {
		return
	}
	scale := pose.Hole.Scale
	ctx.FillCircle(cx, cy, holeGlow*scale*ppu, render.WithAlpha(glowColor, 0.6), holeGlow*ppu)
	ctx.FillCircle(cx, cy, holeRadius*scale*ppu, color.NRGBA{A: 255}, 0)
}

func (s *AmbientScene) ringPoint(hole vmath.Transform, radius, a float64) vmath.Vec3 {
	local := vmath.RotateX(vmath.Vec3{X: math.Cos(a) * radius, Y: math.Sin(a) * radius}, math.Pi/2)
	return hole.Apply(local)
}

// drawGlobe 经纬线框球体
func (s *AmbientScene) drawGlobe(ctx render.Context2D, tr vmath.Transform, w, h float64) {
	c := render.WithAlpha(globeColor, 0.35)
	point := func(lat, lon float64) vmath.Vec3 {
		return tr.Apply(vmath.Vec3{
			X: globeRadius * math.Cos(lat) * math.Cos(lon),
			Y: globeRadius * math.Sin(lat),
			Z: globeRadius * math.Cos(lat) * math.Sin(lon),
		})
	}
	// 纬线
	for i := 1; i < 6; i++ {
		lat := -math.Pi/2 + math.Pi*float64(i)/6
		for j := 0; j < globeSegments; j++ {
			a := 2 * math.Pi * float64(j) / globeSegments
			b := 2 * math.Pi * float64(j+1) / globeSegments
			s.line(ctx, point(lat, a), point(lat, b), w, h, c)
		}
	}
	// 经线
	for i := 0; i < 8; i++ {
		lon := 2 * math.Pi * float64(i) / 8
		for j := 0; j < globeSegments/2; j++ {
			a := -math.Pi/2 + math.Pi*float64(j)/float64(globeSegments/2)
			b := -math.Pi/2 + math.Pi*float64(j+1)/float64(globeSegments/2)
			s.line(ctx, point(a, lon), point(b, lon), w, h, c)
		}
	}
}
