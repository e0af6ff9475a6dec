package entities

import (
	"testing"

	"github.com/decker502/folio-fx/pkg/components"
	"github.com/decker502/folio-fx/pkg/config"
	"github.com/decker502/folio-fx/pkg/ecs"
	"github.com/decker502/folio-fx/pkg/fx"
)

// TestNewPageDefaultLayout 默认布局生成的实体数量与页面高度
func TestNewPageDefaultLayout(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.Defaults()

	page, err := NewPage(em, cfg)
	if err != nil {
		t.Fatalf("NewPage() error: %v", err)
	}
	if len(page.Sections) != 6 || len(page.Cards) != 8 || len(page.Buttons) != 3 {
		t.Errorf("sections=%d cards=%d buttons=%d, want 6/8/3", len(page.Sections), len(page.Cards), len(page.Buttons))
	}
	if page.Height != cfg.Page.Height() {
		t.Errorf("Height = %v, want %v", page.Height, cfg.Page.Height())
	}
}

// TestNewPageCoordinates 分区内坐标换算为页面坐标，卡片强度可逐张覆盖
func TestNewPageCoordinates(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.Defaults()
	cfg.Page = config.PageConfig{Width: 900, Sections: []config.SectionLayout{
		{Name: "a", Height: 500},
		{Name: "b", Height: 400, Cards: []config.CardLayout{
			{X: 10, Y: 20, W: 100, H: 50, Intensity: "high"},
			{X: 10, Y: 120, W: 100, H: 50},
		}, Buttons: []config.ButtonLayout{{Label: "Go", X: 5, Y: 300, W: 80, H: 30}}},
	}}
	cfg.Reveal.Threshold = 0.35

	page, err := NewPage(em, cfg)
	if err != nil {
		t.Fatalf("NewPage() error: %v", err)
	}

	second, _ := ecs.GetComponent[*components.BoundsComponent](em, page.Sections[1])
	if second.Page.Y != 500 || second.Page.W != 900 {
		t.Errorf("section b bounds = %+v", second.Page)
	}
	if reveal, ok := ecs.GetComponent[*components.RevealComponent](em, page.Sections[1]); !ok || reveal.Threshold != 0.35 {
		t.Errorf("section b reveal = %+v", reveal)
	}

	tests := []struct {
		name      string
		id        ecs.EntityID
		wantY     float64
		intensity fx.Intensity
	}{
		{"覆盖强度", page.Cards[0], 520, fx.IntensityHigh},
		{"默认强度", page.Cards[1], 620, fx.IntensityMedium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bounds, _ := ecs.GetComponent[*components.BoundsComponent](em, tt.id)
			card, _ := ecs.GetComponent[*components.TiltCardComponent](em, tt.id)
			member, ok := ecs.GetComponent[*components.SectionMemberComponent](em, tt.id)
			if bounds.Page.Y != tt.wantY {
				t.Errorf("card Y = %v, want %v", bounds.Page.Y, tt.wantY)
			}
			if card.Intensity != tt.intensity || !card.HoverEnabled {
				t.Errorf("card = %+v", card)
			}
			if !ok || member.Section != page.Sections[1] {
				t.Errorf("card section = %+v, want %d", member, page.Sections[1])
			}
			if ecs.HasComponent[*components.RevealComponent](em, tt.id) {
				t.Error("cards reveal with their section, not on their own")
			}
		})
	}

	btn, _ := ecs.GetComponent[*components.BoundsComponent](em, page.Buttons[0])
	mag, _ := ecs.GetComponent[*components.MagneticComponent](em, page.Buttons[0])
	if btn.Page.Y != 800 || mag.Label != "Go" || mag.Strength != 0.4 {
		t.Errorf("button bounds=%+v magnetic=%+v", btn.Page, mag)
	}
	if ecs.HasComponent[*components.RevealComponent](em, page.Buttons[0]) {
		t.Error("buttons should not reveal on scroll")
	}
}

// TestNewPageInvalidCardIntensity 未经校验的非法强度返回错误
func TestNewPageInvalidCardIntensity(t *testing.T) {
	cfg := config.Defaults()
	cfg.Page = config.PageConfig{Sections: []config.SectionLayout{
		{Name: "x", Height: 100, Cards: []config.CardLayout{{W: 10, H: 10, Intensity: "wild"}}},
	}}
	if _, err := NewPage(ecs.NewEntityManager(), cfg); err == nil {
		t.Error("NewPage() should reject unknown intensity")
	}
}
