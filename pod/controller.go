package pod

import (
	"madpod/logging"
	"madpod/protocol"
)

const (
	// 检查点在身后时断油，避免转弯时冲过头
	behindAngle = 90
	// 机头几乎正对检查点时才使用加速
	boostAngle = 10
)

// Action 单回合决策：目标点 + 油门
type Action struct {
	TargetX, TargetY int
	Thrust           protocol.Thrust
}

func (a Action) Command() protocol.Command {
	return protocol.Command{X: a.TargetX, Y: a.TargetY, Thrust: a.Thrust}
}

// Pilot 每回合把局面映射为动作
type Pilot interface {
	Turn(s GameState) Action
}

// Decide 纯函数：同样的输入总是得到同样的输出，不修改 boostUsed
func Decide(s GameState, boostUsed bool) Action {
	a := Action{TargetX: s.NextCheckpointX, TargetY: s.NextCheckpointY, Thrust: 100}
	if s.NextCheckpointAngle > behindAngle || s.NextCheckpointAngle < -behindAngle {
		a.Thrust = 0
	}

	switch s.Condition {
	case FarFromAll, CloseToAll:
		if !boostUsed && s.NextCheckpointAngle < boostAngle {
			a.Thrust = protocol.Boost
		}
	case CloseToCheckpointOnly, CloseToOpponentOnly:
		// 基础油门
	}
	return a
}

// Controller 回合控制器，持有整场比赛唯一的加速标记
type Controller struct {
	boostUsed bool
}

func NewController() *Controller {
	return &Controller{}
}

func (c *Controller) BoostUsed() bool { return c.boostUsed }

// Turn 计算派生几何、输出诊断、决策；发出 BOOST 后标记单向置位
func (c *Controller) Turn(s GameState) Action {
	s.UpdateGeometry()
	logging.Log.Debugw("turn",
		"opponent_checkpoint_dist", s.OpponentCheckpointDist,
		"opponent_dist", s.OpponentDist,
		"next_checkpoint_dist", s.NextCheckpointDist,
		"next_checkpoint_angle", s.NextCheckpointAngle,
		"game_condition", int(s.Condition),
	)

	a := Decide(s, c.boostUsed)
	if a.Thrust.IsBoost() {
		c.boostUsed = true
	}
	return a
}
