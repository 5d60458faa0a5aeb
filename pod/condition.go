package pod

import "fmt"

const (
	// K 阈值缩放系数
	K = 2.5
	// CheckpointRadius 下一个检查点“接近”的距离阈值（600*K）
	CheckpointRadius = int(600 * K)
	// ForceField 对手“接近”的距离阈值（400*K）
	ForceField = int(400 * K)
)

// Condition 每回合重新计算的局面分类
type Condition int

const (
	FarFromAll Condition = iota
	CloseToCheckpointOnly
	CloseToOpponentOnly
	CloseToAll
)

func (c Condition) String() string {
	switch c {
	case FarFromAll:
		return "FAR_FROM_ALL"
	case CloseToCheckpointOnly:
		return "CLOSE_TO_CHECKPOINT_ONLY"
	case CloseToOpponentOnly:
		return "CLOSE_TO_OPPONENT_ONLY"
	case CloseToAll:
		return "CLOSE_TO_ALL"
	default:
		return fmt.Sprintf("Condition(%d)", int(c))
	}
}

// Classify 纯函数，无历史：对手优先于检查点
func Classify(opponentDist, checkpointDist int) Condition {
	nearOpponent := opponentDist < ForceField
	nearCheckpoint := checkpointDist < CheckpointRadius
	switch {
	case nearOpponent && nearCheckpoint:
		return CloseToAll
	case nearOpponent:
		return CloseToOpponentOnly
	case nearCheckpoint:
		return CloseToCheckpointOnly
	default:
		return FarFromAll
	}
}
