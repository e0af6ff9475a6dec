package preview

import (
	"github.com/decker502/folio-fx/pkg/components"
	"github.com/decker502/folio-fx/pkg/ecs"
	"github.com/decker502/folio-fx/pkg/fx"
	"github.com/decker502/folio-fx/pkg/render"
	"github.com/decker502/folio-fx/pkg/stage"
	"github.com/decker502/folio-fx/pkg/vmath"
)

// Frame 最近一帧的可观察状态
type Frame struct {
	Frames    int                    `json:"frames"`
	ElapsedMS float64                `json:"elapsedMs"`
	Scene     string                 `json:"scene"`
	Intensity string                 `json:"intensity"`
	Scroll    ScrollState            `json:"scroll"`
	Layers    map[string][]render.Op `json:"layers"`
	Cards     []CardState            `json:"cards"`
	Sections  []SectionState         `json:"sections"`
	Buttons   []ButtonState          `json:"buttons"`
}

// ScrollState 滚动位置
type ScrollState struct {
	Offset float64 `json:"offset"`
	Max    float64 `json:"max"`
}

// CardState 卡片的倾斜状态
type CardState struct {
	ID        ecs.EntityID `json:"id"`
	Bounds    vmath.Rect   `json:"bounds"`
	Active    bool         `json:"active"`
	Intensity string       `json:"intensity"`
	Tilt      fx.Tilt      `json:"tilt"`
	Streaks   int          `json:"streaks"`
	Dots      int          `json:"dots"`
}

// SectionState 分区的显现状态
type SectionState struct {
	ID       ecs.EntityID `json:"id"`
	Name     string       `json:"name"`
	Visible  bool         `json:"visible"`
	Progress float64      `json:"progress"`
}

// ButtonState 磁吸按钮的偏移
type ButtonState struct {
	ID      ecs.EntityID `json:"id"`
	Label   string       `json:"label"`
	Hovered bool         `json:"hovered"`
	OffsetX float64      `json:"offsetX"`
	OffsetY float64      `json:"offsetY"`
}

// captureFrame 从舞台和各图层记录器采集一帧
func captureFrame(st *stage.Stage, recorders map[stage.Layer]*render.Recorder) Frame {
	em := st.EntityManager()
	page := st.Page()
	offset, max := st.Host().Scroll()

	f := Frame{
		Frames:    st.Frames(),
		ElapsedMS: float64(st.Elapsed().Microseconds()) / 1000,
		Scene:     string(st.SceneVariant()),
		Intensity: string(st.Intensity()),
		Scroll:    ScrollState{Offset: offset, Max: max},
		Layers:    make(map[string][]render.Op, len(recorders)),
		Cards:     make([]CardState, 0, len(page.Cards)),
		Sections:  make([]SectionState, 0, len(page.Sections)),
		Buttons:   make([]ButtonState, 0, len(page.Buttons)),
	}
	for layer, rec := range recorders {
		f.Layers[string(layer)] = rec.Ops()
	}

	for _, id := range page.Cards {
		card, ok := ecs.GetComponent[*components.TiltCardComponent](em, id)
		if !ok {
			continue
		}
		cs := CardState{
			ID:        id,
			Active:    card.Active,
			Intensity: string(card.Intensity),
			Tilt:      card.Tilt,
			Streaks:   card.Decor.StreakCount(),
			Dots:      len(card.Decor.Dots()),
		}
		if b, ok := ecs.GetComponent[*components.BoundsComponent](em, id); ok {
			cs.Bounds = b.Page
		}
		f.Cards = append(f.Cards, cs)
	}

	for _, id := range page.Sections {
		ss := SectionState{ID: id}
		if sec, ok := ecs.GetComponent[*components.SectionComponent](em, id); ok {
			ss.Name = sec.Name
		}
		if r, ok := ecs.GetComponent[*components.RevealComponent](em, id); ok {
			ss.Visible, ss.Progress = r.Visible, r.Progress
		}
		f.Sections = append(f.Sections, ss)
	}

	for _, id := range page.Buttons {
		m, ok := ecs.GetComponent[*components.MagneticComponent](em, id)
		if !ok {
			continue
		}
		f.Buttons = append(f.Buttons, ButtonState{
			ID: id, Label: m.Label, Hovered: m.Hovered, OffsetX: m.OffsetX, OffsetY: m.OffsetY,
		})
	}
	return f
}
