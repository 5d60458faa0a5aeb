package server

import (
	"sync/atomic"
)

// RaceMetrics 记录比赛运行期的关键指标（用于监控与调试）
type RaceMetrics struct {
	TurnCount      int64 // 推进的回合数
	Boosts         int64 // 发出的 BOOST 次数
	Checkpoints    int64 // 通过检查点次数（所有车合计）
	StrategyErrors int64 // 策略超时或输出非法
	FramesDropped  int64 // 因观战通道满被丢弃的帧
	Spectators     int64 // 当前观众数
	TotalTurnNs    int64 // 回合累计耗时（纳秒，含策略响应）
}

func (m *RaceMetrics) IncBoost() { atomic.AddInt64(&m.Boosts, 1) }
func (m *RaceMetrics) IncCheckpoint() { atomic.AddInt64(&m.Checkpoints, 1) }
func (m *RaceMetrics) IncStrategyError() { atomic.AddInt64(&m.StrategyErrors, 1) }
func (m *RaceMetrics) IncFramesDropped() { atomic.AddInt64(&m.FramesDropped, 1) }
func (m *RaceMetrics) SetSpectators(n int) { atomic.StoreInt64(&m.Spectators, int64(n)) }
func (m *RaceMetrics) AddTurn(ns int64) {
	atomic.AddInt64(&m.TurnCount, 1)
	atomic.AddInt64(&m.TotalTurnNs, ns)
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *RaceMetrics) Snapshot() map[string]any {
	turns := atomic.LoadInt64(&m.TurnCount)
	total := atomic.LoadInt64(&m.TotalTurnNs)
	var avgMs float64
	if turns > 0 {
		avgMs = float64(total) / float64(turns) / 1e6
	}
	return map[string]any{
		"turn_count":      turns,
		"boosts":          atomic.LoadInt64(&m.Boosts),
		"checkpoints":     atomic.LoadInt64(&m.Checkpoints),
		"strategy_errors": atomic.LoadInt64(&m.StrategyErrors),
		"frames_dropped":  atomic.LoadInt64(&m.FramesDropped),
		"spectators":      atomic.LoadInt64(&m.Spectators),
		"avg_turn_ms":     avgMs,
	}
}
