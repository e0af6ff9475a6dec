package fx

import (
	"math"
	"strings"
	"testing"

	"github.com/decker502/folio-fx/pkg/vmath"
)

var card = vmath.Rect{X: 100, Y: 200, W: 300, H: 200}

// TestTiltAtCenterIsZero 测试指针在中心时旋转为 (0, 0)
func TestTiltAtCenterIsZero(t *testing.T) {
	cx, cy := card.Center()
	tilt := ComputeTilt(card, cx, cy, DefaultTiltConfig())
	if tilt.RotateX != 0 || tilt.RotateY != 0 {
		t.Errorf("tilt at center = (%v, %v), want (0, 0)", tilt.RotateX, tilt.RotateY)
	}
	if tilt.SpotX != 50 || tilt.SpotY != 50 {
		t.Errorf("spotlight = (%v, %v), want (50, 50)", tilt.SpotX, tilt.SpotY)
	}
}

// TestTiltMonotonic 测试旋转幅度随离中心距离单调增加，并在边缘达到最大值
func TestTiltMonotonic(t *testing.T) {
	cfg := DefaultTiltConfig()
	cx, cy := card.Center()
	directions := []struct{ dx, dy float64 }{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {-0.6, 0.8},
	}
	for _, dir := range directions {
		prev := -1.0
		for s := 0.0; s <= 1.0001; s += 0.05 {
			px := cx + dir.dx*s*card.W/2
			py := cy + dir.dy*s*card.H/2
			mag := ComputeTilt(card, px, py, cfg).Magnitude()
			if mag < prev {
				t.Errorf("direction %+v: magnitude decreased from %v to %v at s=%v", dir, prev, mag, s)
			}
			prev = mag
		}
	}

	right := ComputeTilt(card, card.X+card.W, cy, cfg)
	if math.Abs(right.RotateY+15) > 1e-9 || right.RotateX != 0 {
		t.Errorf("right edge tilt = %+v, want rotateY=-15", right)
	}
	bottom := ComputeTilt(card, cx, card.Y+card.H, cfg)
	if math.Abs(bottom.RotateX-15) > 1e-9 {
		t.Errorf("bottom edge tilt = %+v, want rotateX=15", bottom)
	}
}

func TestTiltClampedOutsideBounds(t *testing.T) {
	tilt := ComputeTilt(card, card.X+card.W*5, card.Y-card.H*5, DefaultTiltConfig())
	if math.Abs(tilt.RotateX) > 15 || math.Abs(tilt.RotateY) > 15 {
		t.Errorf("tilt %+v exceeds the configured maximum", tilt)
	}
}

func TestTiltDegenerateBounds(t *testing.T) {
	tilt := ComputeTilt(vmath.Rect{X: 10, Y: 10}, 20, 20, DefaultTiltConfig())
	if !tilt.IsNeutral() {
		t.Errorf("zero-size element should stay neutral, got %+v", tilt)
	}
}

func TestProjectQuadNeutral(t *testing.T) {
	q := ProjectQuad(card, NeutralTilt(), 1000)
	if q[0].X != card.X || q[0].Y != card.Y {
		t.Errorf("top-left = %+v, want (%v, %v)", q[0], card.X, card.Y)
	}
	if q[2].X != card.X+card.W || q[2].Y != card.Y+card.H {
		t.Errorf("bottom-right = %+v", q[2])
	}
}

// TestProjectQuadRotateY 测试 rotateY 为负时右边缘朝向观察者（投影变长）
func TestProjectQuadRotateY(t *testing.T) {
	q := ProjectQuad(card, Tilt{RotateY: -15, Scale: 1}, 1000)
	rightEdge := q[2].Y - q[1].Y
	leftEdge := q[3].Y - q[0].Y
	if rightEdge <= leftEdge {
		t.Errorf("right edge %v should appear longer than left edge %v", rightEdge, leftEdge)
	}
}

func TestTiltCSS(t *testing.T) {
	css := NeutralTilt().CSS(1000)
	for _, part := range []string{"perspective(1000px)", "rotateX(0.00deg)", "rotateY(0.00deg)", "scale3d(1, 1, 1)"} {
		if !strings.Contains(css, part) {
			t.Errorf("CSS() = %q, missing %q", css, part)
		}
	}
}

func TestMagneticOffset(t *testing.T) {
	dx, dy := Offset(vmath.Rect{X: 0, Y: 0, W: 100, H: 40}, 100, 40, 0.4)
	if math.Abs(dx-20) > 1e-9 || math.Abs(dy-8) > 1e-9 {
		t.Errorf("Offset() = (%v, %v), want (20, 8)", dx, dy)
	}
}
