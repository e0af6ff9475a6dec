package fx

import "math"

// maxSpringStep 弹簧积分的最大子步长（秒）
const maxSpringStep = 1.0 / 240

// Spring 一维阻尼弹簧，Value 追随 Target
type Spring struct {
	Stiffness float64
	Damping   float64
	Mass      float64

	Value    float64
	Velocity float64
	Target   float64
}

// Step 推进 dt 秒（半隐式欧拉，按 maxSpringStep 细分）
func (s *Spring) Step(dt float64) {
	if dt <= 0 {
		return
	}
	mass := s.Mass
	if mass <= 0 {
		mass = 1
	}
	steps := int(math.Ceil(dt / maxSpringStep))
	h := dt / float64(steps)
	for i := 0; i < steps; i++ {
		force := -s.Stiffness*(s.Value-s.Target) - s.Damping*s.Velocity
		s.Velocity += force / mass * h
		s.Value += s.Velocity * h
	}
}

// Settled 报告是否已经静止在目标附近
func (s *Spring) Settled(eps float64) bool {
	return math.Abs(s.Value-s.Target) < eps && math.Abs(s.Velocity) < eps
}

// Spring2D 二维弹簧（两个独立分量）
type Spring2D struct {
	X, Y Spring
}

// NewSpring2D 创建指定刚度和阻尼的二维弹簧
func NewSpring2D(stiffness, damping float64) *Spring2D {
	return &Spring2D{
		X: Spring{Stiffness: stiffness, Damping: damping, Mass: 1},
		Y: Spring{Stiffness: stiffness, Damping: damping, Mass: 1},
	}
}

// SetTarget 设置目标位置
func (s *Spring2D) SetTarget(x, y float64) {
	s.X.Target, s.Y.Target = x, y
}

// Jump 直接跳到 (x, y) 并清零速度
func (s *Spring2D) Jump(x, y float64) {
	s.X.Value, s.Y.Value = x, y
	s.X.Target, s.Y.Target = x, y
	s.X.Velocity, s.Y.Velocity = 0, 0
}

// Step 推进 dt 秒
func (s *Spring2D) Step(dt float64) {
	s.X.Step(dt)
	s.Y.Step(dt)
}

// Position 当前位置
func (s *Spring2D) Position() (float64, float64) {
	return s.X.Value, s.Y.Value
}
