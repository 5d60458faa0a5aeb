package arena

import (
	"context"
	"fmt"
	"time"

	"madpod/logging"
	"madpod/protocol"
)

// Recorder 比赛运行指标的接收方（由 server.RaceMetrics 实现）
type Recorder interface {
	AddTurn(ns int64)
	IncBoost()
	IncCheckpoint()
	IncStrategyError()
}

// Options 比赛循环参数
type Options struct {
	Limit       int           // 最大回合数，<=0 时取 DefaultLimit
	TurnTimeout time.Duration // 单个策略单回合超时，0 表示不限
	Observe     func(Frame)   // 每回合结束后回调（可视化/观战）
	Metrics     Recorder
}

const DefaultLimit = 500

// Outcome 比赛结果：有车完赛或达到回合上限
type Outcome struct {
	Winner int
	Limit  bool
	Turns  int
}

func (o Outcome) String() string {
	if o.Limit {
		return "Step limit reached"
	}
	return fmt.Sprintf("pod #%d won", o.Winner)
}

// Play 单线程推进比赛：收集指令 → Step → 回调；任何策略出错即终止
func Play(ctx context.Context, g *Game, strategies []Strategy, opts Options) (Outcome, error) {
	if len(strategies) != len(g.Pods) {
		return Outcome{}, fmt.Errorf("%w: %d strategies for %d pods", ErrConfig, len(strategies), len(g.Pods))
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	logging.Log.Infof("race started: seed=%d pods=%d checkpoints=%d limit=%d",
		g.Seed, len(g.Pods), len(g.Checkpoints), limit)

	if opts.Observe != nil {
		opts.Observe(g.Frame())
	}
	cmds := make([]protocol.Command, len(strategies))
	for turn := 1; turn <= limit; turn++ {
		if err := ctx.Err(); err != nil {
			return Outcome{Turns: turn - 1}, err
		}
		start := time.Now()
		for i, s := range strategies {
			c, err := react(ctx, s, g.Input(i), opts.TurnTimeout)
			if err != nil {
				if opts.Metrics != nil {
					opts.Metrics.IncStrategyError()
				}
				return Outcome{Turns: turn - 1}, fmt.Errorf("turn %d pod #%d: %w", turn, i, err)
			}
			if c.Message != "" {
				logging.Log.Debugf("pod #%d: %s", i, c.Message)
			}
			cmds[i] = c
		}

		before := append([]int(nil), g.Next...)
		res, err := g.Step(cmds)
		if err != nil {
			return Outcome{Turns: turn}, err
		}
		if opts.Metrics != nil {
			opts.Metrics.AddTurn(time.Since(start).Nanoseconds())
			for i, c := range cmds {
				if c.Thrust.IsBoost() {
					opts.Metrics.IncBoost()
				}
				if g.Next[i] != before[i] {
					opts.Metrics.IncCheckpoint()
				}
			}
		}
		if opts.Observe != nil {
			opts.Observe(g.Frame())
		}
		if res.Finished {
			logging.Log.Infof("pod #%d won in %d turns", res.Winner, turn)
			return Outcome{Winner: res.Winner, Turns: turn}, nil
		}
	}
	logging.Log.Infof("step limit reached: %d turns", limit)
	return Outcome{Limit: true, Turns: limit}, nil
}

func react(ctx context.Context, s Strategy, t protocol.Turn, timeout time.Duration) (protocol.Command, error) {
	if timeout <= 0 {
		return s.React(ctx, t)
	}
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.React(tctx, t)
}
