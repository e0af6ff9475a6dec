package vmath

import "math"

// Camera 透视相机
//
// 观察方向通过 LookAt 设定，默认朝向 -Z（与 three.js 默认一致）。
// 视口尺寸用于把 NDC 映射回像素坐标。
type Camera struct {
	Position Vec3
	FOV      float64 // 垂直视角（度）
	Near     float64

	forward, right, up Vec3
}

// NewCamera 创建位于 pos、垂直视角为 fov 的相机
func NewCamera(pos Vec3, fov float64) *Camera {
	c := &Camera{Position: pos, FOV: fov, Near: 0.1}
	c.forward = Vec3{0, 0, -1}
	c.right = Vec3{1, 0, 0}
	c.up = Vec3{0, 1, 0}
	return c
}

// LookAt 将相机朝向 target
// 相机与目标重合时保持原朝向
func (c *Camera) LookAt(target Vec3) {
	f := V3Normalize(V3Sub(target, c.Position))
	if f == (Vec3{}) {
		return
	}
	worldUp := Vec3{0, 1, 0}
	r := V3Cross(f, worldUp)
	if V3Mag(r) < 1e-9 {
		// 正对上下方时换一个参考轴
		r = V3Cross(f, Vec3{0, 0, 1})
	}
	r = V3Normalize(r)
	c.forward = f
	c.right = r
	c.up = V3Cross(r, f)
}

// Forward 返回当前观察方向
func (c *Camera) Forward() Vec3 {
	return c.forward
}

// Project 将世界坐标投影到 width×height 的屏幕
//
// 返回屏幕坐标、该点处单位长度对应的像素数（用于半径换算）以及
// 点是否位于近裁剪面之前。
func (c *Camera) Project(p Vec3, width, height float64) (sx, sy, pxPerUnit float64, ok bool) {
	rel := V3Sub(p, c.Position)
	depth := V3Dot(rel, c.forward)
	if depth <= c.Near {
		return 0, 0, 0, false
	}
	x := V3Dot(rel, c.right)
	y := V3Dot(rel, c.up)

	focal := (height / 2) / math.Tan(Deg2Rad(c.FOV)/2)
	pxPerUnit = focal / depth
	sx = width/2 + x*pxPerUnit
	sy = height/2 - y*pxPerUnit
	return sx, sy, pxPerUnit, true
}
