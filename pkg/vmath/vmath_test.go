package vmath

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		wantArea float64
	}{
		{"完全包含", Rect{0, 0, 100, 100}, Rect{10, 10, 20, 20}, 400},
		{"部分重叠", Rect{0, 0, 100, 100}, Rect{50, 50, 100, 100}, 2500},
		{"不相交", Rect{0, 0, 10, 10}, Rect{20, 20, 10, 10}, 0},
		{"边相接", Rect{0, 0, 10, 10}, Rect{10, 0, 10, 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Intersect(tt.b).Area()
			if math.Abs(got-tt.wantArea) > epsilon {
				t.Errorf("Intersect().Area() = %v, want %v", got, tt.wantArea)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 100, H: 50}
	if !r.Contains(10, 10) || !r.Contains(110, 60) {
		t.Error("边界点应被视为在矩形内")
	}
	if r.Contains(9, 30) || r.Contains(50, 61) {
		t.Error("矩形外的点不应被包含")
	}
	cx, cy := r.Center()
	if cx != 60 || cy != 35 {
		t.Errorf("Center() = (%v, %v), want (60, 35)", cx, cy)
	}
}

func TestRotatePreservesLength(t *testing.T) {
	v := Vec3{3, 4, 12}
	for _, a := range []float64{0, 0.3, math.Pi / 2, 2.5} {
		for _, rotated := range []Vec3{RotateX(v, a), RotateY(v, a), RotateZ(v, a)} {
			if math.Abs(V3Mag(rotated)-13) > 1e-9 {
				t.Errorf("rotation by %v changed length to %v", a, V3Mag(rotated))
			}
		}
	}
}

func TestCameraProjectCenter(t *testing.T) {
	cam := NewCamera(Vec3{0, 0, 50}, 75)
	cam.LookAt(Vec3{})

	sx, sy, _, ok := cam.Project(Vec3{}, 800, 600)
	if !ok {
		t.Fatal("原点应位于相机前方")
	}
	if math.Abs(sx-400) > epsilon || math.Abs(sy-300) > epsilon {
		t.Errorf("Project(origin) = (%v, %v), want (400, 300)", sx, sy)
	}

	// Y 轴正方向在屏幕上方
	_, upY, _, _ := cam.Project(Vec3{0, 10, 0}, 800, 600)
	if upY >= 300 {
		t.Errorf("+Y 应投影到屏幕上半部分, got y=%v", upY)
	}
}

func TestCameraBehind(t *testing.T) {
	cam := NewCamera(Vec3{0, 0, 50}, 75)
	cam.LookAt(Vec3{})

	if _, _, _, ok := cam.Project(Vec3{0, 0, 60}, 800, 600); ok {
		t.Error("相机后方的点不应可见")
	}
}

func TestCameraLookAtFlipsWhenPassingTarget(t *testing.T) {
	cam := NewCamera(Vec3{0, 0, -10}, 75)
	cam.LookAt(Vec3{})
	if f := cam.Forward(); math.Abs(f.Z-1) > epsilon {
		t.Errorf("Forward() = %+v, want +Z", f)
	}

	// 与目标重合时保留上一次朝向
	cam.Position = Vec3{}
	cam.LookAt(Vec3{})
	if f := cam.Forward(); math.Abs(f.Z-1) > epsilon {
		t.Errorf("degenerate LookAt changed forward to %+v", f)
	}
}

func TestTransformApply(t *testing.T) {
	tr := Transform{Position: Vec3{1, 2, 3}, Scale: 2}
	got := tr.Apply(Vec3{1, 1, 1})
	want := Vec3{3, 4, 5}
	if got != want {
		t.Errorf("Apply() = %+v, want %+v", got, want)
	}
}

// 多轴旋转按 Rx·Ry·Rz 组合：先 Z 后 Y 最后 X
func TestTransformApplyEulerOrder(t *testing.T) {
	tests := []struct {
		name string
		rot  Vec3
		in   Vec3
		want Vec3
	}{
		{"X 与 Y 各转 90°", Vec3{X: math.Pi / 2, Y: math.Pi / 2}, Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"Y 与 Z 各转 90°", Vec3{Y: math.Pi / 2, Z: math.Pi / 2}, Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"X 与 Z 各转 90°", Vec3{X: math.Pi / 2, Z: math.Pi / 2}, Vec3{1, 0, 0}, Vec3{0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Transform{Rotation: tt.rot}.Apply(tt.in)
			if V3Mag(V3Sub(got, tt.want)) > epsilon {
				t.Errorf("Apply(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
			manual := RotateX(RotateY(RotateZ(tt.in, tt.rot.Z), tt.rot.Y), tt.rot.X)
			if V3Mag(V3Sub(got, manual)) > epsilon {
				t.Errorf("Apply(%+v) = %+v, Rx·Ry·Rz = %+v", tt.in, got, manual)
			}
		})
	}
}
