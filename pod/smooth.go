package pod

import "madpod/protocol"

// Smooth 平滑油门驾驶：按距离和角度的 smoothstep 乘积给油，
// 远距离且正对检查点时加速一次。模拟器里用作对照基线。
type Smooth struct {
	boostUsed bool
}

const (
	smoothDistScale  = 0.00025
	smoothAngleScale = 0.015
	smoothBoostDist  = 5000
)

func NewSmooth() *Smooth { return &Smooth{} }

func smoothstep(x float64) float64 {
	if x < 0 {
		x = 0
	} else if x > 1 {
		x = 1
	}
	return 3*x*x - 2*x*x*x
}

func (p *Smooth) Turn(s GameState) Action {
	angle := s.NextCheckpointAngle
	if angle < 0 {
		angle = -angle
	}
	a := Action{TargetX: s.NextCheckpointX, TargetY: s.NextCheckpointY}

	if !p.boostUsed && angle < boostAngle && s.NextCheckpointDist >= smoothBoostDist {
		p.boostUsed = true
		a.Thrust = protocol.Boost
		return a
	}

	byDist := smoothstep(float64(s.NextCheckpointDist) * smoothDistScale)
	byAngle := smoothstep(float64(90-angle) * smoothAngleScale)
	a.Thrust = protocol.Thrust(100 * byDist * byAngle)
	return a
}
