package arena

import "math"

const (
	WorldW = 16000
	WorldH = 9000
	// CheckpointRadius 进入该半径即算通过检查点
	CheckpointRadius = 600
	// RotationSpeed 每回合最大转向（18 度）
	RotationSpeed = 18 * math.Pi / 180
	// SpeedReduction 每回合速度衰减
	SpeedReduction = 0.85
	// BoostThrust BOOST 折算的推力
	BoostThrust = 200
	Laps        = 3
)

// Pod 模拟器中的赛车（权威状态）
type Pod struct {
	Pos Vector
	Vel Vector
	Ang float64 // 弧度
}

// Control 单回合的物理输入
type Control struct {
	Thrust      float64
	TargetAngle float64
}

// Move 转向（受限）→ 沿机头加速 → 位移 → 摩擦
func (p *Pod) Move(c Control) {
	rel := RelativeAngle(c.TargetAngle, p.Ang)
	p.Ang += clamp(rel, -RotationSpeed, RotationSpeed)
	p.Vel = p.Vel.Add(Vector{X: 1}.Rotate(p.Ang).Scale(c.Thrust))
	p.Pos = p.Pos.Add(p.Vel)
	p.Vel = p.Vel.Scale(SpeedReduction)
}
