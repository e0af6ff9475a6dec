package fx

import (
	"image/color"
	"math"
	"math/rand"
	"testing"
)

var testPalette = []color.NRGBA{
	{0x3b, 0x82, 0xf6, 255},
	{0x8b, 0x5c, 0xf6, 255},
	{0x06, 0xb6, 0xd4, 255},
}

// TestIntensityOrdering 测试 low < medium < high
func TestIntensityOrdering(t *testing.T) {
	low := IntensityLow.StreakCount()
	medium := IntensityMedium.StreakCount()
	high := IntensityHigh.StreakCount()
	if !(low < medium && medium < high) {
		t.Errorf("streak counts low=%d medium=%d high=%d are not strictly increasing", low, medium, high)
	}
	if low != 3 || medium != 5 || high != 8 {
		t.Errorf("streak counts = %d/%d/%d, want 3/5/8", low, medium, high)
	}
}

func TestParseIntensity(t *testing.T) {
	tests := []struct {
		in      string
		want    Intensity
		wantErr bool
	}{
		{"low", IntensityLow, false},
		{"HIGH", IntensityHigh, false},
		{"", IntensityMedium, false},
		{" medium ", IntensityMedium, false},
		{"extreme", "", true},
	}
	for _, tt := range tests {
		got, err := ParseIntensity(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseIntensity(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseIntensity(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateDecor(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, in := range []Intensity{IntensityLow, IntensityMedium, IntensityHigh} {
		d := GenerateDecor(rng, in, testPalette)
		streaks := d.Streaks()
		if len(streaks) != in.StreakCount() {
			t.Errorf("%s: %d streaks, want %d", in, len(streaks), in.StreakCount())
		}
		for i, s := range streaks {
			if s.LeftPct < 10 || s.LeftPct >= 90 || s.TopPct < 10 || s.TopPct >= 90 {
				t.Errorf("streak %d position (%v, %v) out of [10, 90)", i, s.LeftPct, s.TopPct)
			}
			if s.Height < 20 || s.Height >= 80 {
				t.Errorf("streak %d height %v out of [20, 80)", i, s.Height)
			}
			if s.Color != testPalette[i%len(testPalette)] {
				t.Errorf("streak %d color = %v, want palette[%d]", i, s.Color, i%len(testPalette))
			}
		}
		if len(d.Dots()) != 4 {
			t.Errorf("%s: %d dots, want 4", in, len(d.Dots()))
		}
	}
}

// TestDecorImmutable 测试修改访问器返回值不会影响卡片保存的描述
func TestDecorImmutable(t *testing.T) {
	d := GenerateDecor(rand.New(rand.NewSource(9)), IntensityMedium, testPalette)
	before := d.Streaks()[0]
	s := d.Streaks()
	s[0].LeftPct = -1
	if d.Streaks()[0] != before {
		t.Error("mutating the returned slice changed the stored decor")
	}
}

func TestStreakAlpha(t *testing.T) {
	s := Streak{Delay: 1, Duration: 2}
	if a := StreakAlpha(s, 0.5); a != 0 {
		t.Errorf("alpha before delay = %v, want 0", a)
	}
	if a := StreakAlpha(s, 1.01); a != 1 {
		t.Errorf("alpha at cycle start = %v, want 1", a)
	}
	if a := StreakAlpha(s, 2); a != 0.15 {
		t.Errorf("alpha mid cycle = %v, want 0.15", a)
	}
}

func TestSpringConverges(t *testing.T) {
	s := NewSpring2D(700, 25)
	s.SetTarget(300, -120)
	for i := 0; i < 120; i++ {
		s.Step(1.0 / 60)
	}
	x, y := s.Position()
	if math.Abs(x-300) > 0.5 || math.Abs(y+120) > 0.5 {
		t.Errorf("spring at (%v, %v) after 2s, want near (300, -120)", x, y)
	}
	if !s.X.Settled(0.5) {
		t.Errorf("spring not settled: value=%v velocity=%v", s.X.Value, s.X.Velocity)
	}
}

func TestSpringJump(t *testing.T) {
	s := NewSpring2D(700, 25)
	s.SetTarget(100, 100)
	s.Step(0.1)
	s.Jump(5, 6)
	if x, y := s.Position(); x != 5 || y != 6 || s.X.Velocity != 0 {
		t.Errorf("Jump() left state (%v, %v, v=%v)", x, y, s.X.Velocity)
	}
}
