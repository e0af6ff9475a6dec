package preview

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/decker502/folio-fx/pkg/config"
	"github.com/decker502/folio-fx/pkg/effects"
	"github.com/decker502/folio-fx/pkg/fx"
	"github.com/decker502/folio-fx/pkg/render"
	"github.com/decker502/folio-fx/pkg/stage"
	"github.com/gin-gonic/gin"
)

// FrameTime 每次 step 推进的时间
const FrameTime = time.Second / 60

// MaxSteps 单次请求最多推进的帧数
const MaxSteps = 600

// Server 预览服务
//
// gin 的处理函数并发执行，舞台本身是单线程的，所有访问都持有 mu。
type Server struct {
	mu        sync.Mutex
	cfg       *config.EffectsConfig
	stage     *stage.Stage
	recorders map[stage.Layer]*render.Recorder
	snapshots *SnapshotStore
}

// NewServer 创建并挂载无窗口舞台，snapshots 可为 nil
func NewServer(cfg *config.EffectsConfig, seed int64, snapshots *SnapshotStore) (*Server, error) {
	if cfg == nil {
		cfg = config.Defaults()
	}
	s := &Server{
		cfg:       cfg,
		recorders: make(map[stage.Layer]*render.Recorder),
		snapshots: snapshots,
	}
	st, err := stage.New(stage.Options{
		Config: cfg,
		Seed:   seed,
		Surfaces: func(layer stage.Layer, w, h int) render.Surface {
			rec := render.NewRecorder(w, h)
			s.recorders[layer] = rec
			return rec
		},
	})
	if err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	s.stage = st
	st.Mount()
	return s, nil
}

// Close 卸载舞台
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stage.Unmount()
}

type pointerRequest struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Leave bool    `json:"leave"`
}

type scrollRequest struct {
	Offset *float64 `json:"offset"`
	Delta  float64  `json:"delta"`
}

type resizeRequest struct {
	Width  int `json:"width" binding:"required,min=1"`
	Height int `json:"height" binding:"required,min=1"`
}

type intensityRequest struct {
	Intensity string `json:"intensity" binding:"required"`
}

type sceneRequest struct {
	Variant string `json:"variant" binding:"required"`
}

type hoverRequest struct {
	Enabled bool `json:"enabled"`
}

type snapshotRequest struct {
	Name string `json:"name" binding:"required"`
}

// Router 注册全部路由
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if gin.Mode() == gin.DebugMode {
		r.Use(gin.Logger())
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/config", s.handleConfig)
	api.POST("/pointer", s.handlePointer)
	api.POST("/scroll", s.handleScroll)
	api.POST("/resize", s.handleResize)
	api.POST("/step", s.handleStep)
	api.GET("/frame", s.handleFrame)
	api.POST("/intensity", s.handleIntensity)
	api.POST("/scene", s.handleScene)
	api.POST("/hover", s.handleHover)

	snaps := api.Group("/snapshots")
	snaps.Use(s.requireSnapshots())
	snaps.GET("", s.handleListSnapshots)
	snaps.POST("", s.handleSaveSnapshot)
	snaps.GET("/:id", s.handleGetSnapshot)
	snaps.DELETE("/:id", s.handleDeleteSnapshot)
	return r
}

func (s *Server) handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, s.cfg)
}

func (s *Server) handlePointer(c *gin.Context) {
	var req pointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.Leave {
		s.stage.LeaveWindow()
	} else {
		s.stage.MovePointer(req.X, req.Y)
	}
	x, y, ok := s.stage.Host().Pointer()
	c.JSON(http.StatusOK, gin.H{"x": x, "y": y, "inside": ok})
}

func (s *Server) handleScroll(c *gin.Context) {
	var req scrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.Offset != nil {
		s.stage.ScrollTo(*req.Offset)
	} else {
		s.stage.ScrollBy(req.Delta)
	}
	offset, max := s.stage.Host().Scroll()
	c.JSON(http.StatusOK, ScrollState{Offset: offset, Max: max})
}

func (s *Server) handleResize(c *gin.Context) {
	var req resizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stage.Resize(req.Width, req.Height)
	w, h := s.stage.Host().Viewport()
	c.JSON(http.StatusOK, gin.H{"width": w, "height": h})
}

func (s *Server) handleStep(c *gin.Context) {
	n := 1
	if q := c.Query("n"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil || v < 1 || v > MaxSteps {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("n must be an integer in [1, %d]", MaxSteps)})
			return
		}
		n = v
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.stage.Step(FrameTime)
	}
	c.JSON(http.StatusOK, gin.H{
		"frames":    s.stage.Frames(),
		"elapsedMs": float64(s.stage.Elapsed().Microseconds()) / 1000,
	})
}

func (s *Server) handleFrame(c *gin.Context) {
	c.JSON(http.StatusOK, s.Frame())
}

// Frame 采集当前帧
func (s *Server) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return captureFrame(s.stage, s.recorders)
}

func (s *Server) handleIntensity(c *gin.Context) {
	var req intensityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, err := fx.ParseIntensity(req.Intensity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stage.SetIntensity(in)
	c.JSON(http.StatusOK, gin.H{"intensity": in})
}

func (s *Server) handleScene(c *gin.Context) {
	var req sceneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v, err := effects.ParseSceneVariant(req.Variant)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stage.SetSceneVariant(v)
	c.JSON(http.StatusOK, gin.H{"variant": v})
}

func (s *Server) handleHover(c *gin.Context) {
	var req hoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stage.SetHoverEnabled(req.Enabled)
	c.JSON(http.StatusOK, gin.H{"enabled": s.stage.HoverEnabled()})
}

// requireSnapshots 未配置数据库时快照接口返回 503
func (s *Server) requireSnapshots() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.snapshots == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "snapshots are disabled (set " + EnvSnapshotDB + ")"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) handleListSnapshots(c *gin.Context) {
	list, err := s.snapshots.List()
	if err != nil {
		log.Printf("[Preview] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleSaveSnapshot(c *gin.Context) {
	var req snapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	frame := s.Frame()
	id, err := s.snapshots.Save(req.Name, frame)
	if err != nil {
		log.Printf("[Preview] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "name": req.Name, "frames": frame.Frames})
}

func (s *Server) snapshotID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid snapshot id"})
		return 0, false
	}
	return id, true
}

func (s *Server) handleGetSnapshot(c *gin.Context) {
	id, ok := s.snapshotID(c)
	if !ok {
		return
	}
	snap, err := s.snapshots.Get(id)
	if errors.Is(err, ErrSnapshotNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleDeleteSnapshot(c *gin.Context) {
	id, ok := s.snapshotID(c)
	if !ok {
		return
	}
	err := s.snapshots.Delete(id)
	if errors.Is(err, ErrSnapshotNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "snapshot deleted"})
}
