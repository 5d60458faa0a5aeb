package pod

import (
	"math"

	"madpod/protocol"
)

// GameState 单回合的局面快照，不跨回合保存
type GameState struct {
	X, Y int

	NextCheckpointX     int
	NextCheckpointY     int
	NextCheckpointDist  int // 由裁判给出
	NextCheckpointAngle int // 机头相对检查点方向的角度，[-180, 180]

	OpponentX int
	OpponentY int

	OpponentDist           int // 本机到对手
	OpponentCheckpointDist int // 检查点到对手

	Condition Condition
}

// StateFromTurn 由协议输入构造局面（派生字段尚未计算）
func StateFromTurn(t protocol.Turn) GameState {
	return GameState{
		X:                   t.X,
		Y:                   t.Y,
		NextCheckpointX:     t.CheckpointX,
		NextCheckpointY:     t.CheckpointY,
		NextCheckpointDist:  t.CheckpointDist,
		NextCheckpointAngle: t.CheckpointAngle,
		OpponentX:           t.OpponentX,
		OpponentY:           t.OpponentY,
	}
}

// Distance 欧氏距离，四舍五入到整数
func Distance(ax, ay, bx, by int) int {
	dx := float64(ax - bx)
	dy := float64(ay - by)
	return int(math.Round(math.Hypot(dx, dy)))
}

// UpdateGeometry 计算对手相关距离并重新分类
func (s *GameState) UpdateGeometry() {
	s.OpponentCheckpointDist = Distance(s.NextCheckpointX, s.NextCheckpointY, s.OpponentX, s.OpponentY)
	s.OpponentDist = Distance(s.X, s.Y, s.OpponentX, s.OpponentY)
	s.Condition = Classify(s.OpponentDist, s.NextCheckpointDist)
}
