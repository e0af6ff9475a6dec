package vmath

import "math"

// Vec3 float64 三维向量
type Vec3 struct {
	X, Y, Z float64
}

func V3Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3Scale(v Vec3, s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func V3Dot(a, b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3Cross(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func V3Mag(v Vec3) float64 {
	return math.Sqrt(V3Dot(v, v))
}

func V3Normalize(v Vec3) Vec3 {
	mag := V3Mag(v)
	if mag == 0 {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// RotateX 绕 X 轴旋转（弧度，右手系）
func RotateX(v Vec3, a float64) Vec3 {
	s, c := math.Sincos(a)
	return Vec3{v.X, v.Y*c - v.Z*s, v.Y*s + v.Z*c}
}

// RotateY 绕 Y 轴旋转
func RotateY(v Vec3, a float64) Vec3 {
	s, c := math.Sincos(a)
	return Vec3{v.X*c + v.Z*s, v.Y, -v.X*s + v.Z*c}
}

// RotateZ 绕 Z 轴旋转
func RotateZ(v Vec3, a float64) Vec3 {
	s, c := math.Sincos(a)
	return Vec3{v.X*c - v.Y*s, v.X*s + v.Y*c, v.Z}
}

// Transform 由缩放、欧拉旋转和平移组成的变换
// 旋转矩阵为 Rx·Ry·Rz（与 three.js 的 XYZ 欧拉顺序一致），
// 因此向量先绕 Z 轴、再绕 Y 轴、最后绕 X 轴旋转
type Transform struct {
	Position Vec3
	Rotation Vec3 // 弧度
	Scale    float64
}

// Apply 将局部坐标变换到父坐标系
func (t Transform) Apply(v Vec3) Vec3 {
	s := t.Scale
	if s == 0 {
		s = 1
	}
	v = V3Scale(v, s)
	v = RotateZ(v, t.Rotation.Z)
	v = RotateY(v, t.Rotation.Y)
	v = RotateX(v, t.Rotation.X)
	return V3Add(v, t.Position)
}
