package arena

import (
	"errors"
	"fmt"
	"math/rand"

	"madpod/protocol"
)

// ErrConfig 比赛参数或回合输入数量不合法
var ErrConfig = errors.New("invalid race config")

// Game 一场比赛的权威状态
type Game struct {
	Seed        int64
	Pods        []*Pod
	Checkpoints []Vector
	Next        []int // 每辆车下一个检查点下标
	Laps        []int // 每辆车剩余圈数
	Turn        int

	last []protocol.Command
}

// Result 单步推进结果；Finished 时 Winner 为获胜车号
type Result struct {
	Finished bool
	Winner   int
}

// NewGame 随机生成检查点（世界中间 80% 区域），所有车从 0 号检查点出发
func NewGame(pods, checkpoints int, seed int64) (*Game, error) {
	if checkpoints < 2 {
		return nil, fmt.Errorf("%w: checkpoints must be >= 2, got %d", ErrConfig, checkpoints)
	}
	if pods < 1 {
		return nil, fmt.Errorf("%w: pods must be >= 1, got %d", ErrConfig, pods)
	}
	rnd := rand.New(rand.NewSource(seed))
	cps := make([]Vector, checkpoints)
	for i := range cps {
		cps[i] = Vector{
			X: float64(randBetween(rnd, WorldW*0.1, WorldW*0.9)),
			Y: float64(randBetween(rnd, WorldH*0.1, WorldH*0.9)),
		}
	}
	return NewGameOn(pods, cps, seed)
}

// NewGameOn 在给定的检查点上开局
func NewGameOn(pods int, cps []Vector, seed int64) (*Game, error) {
	if len(cps) < 2 {
		return nil, fmt.Errorf("%w: checkpoints must be >= 2, got %d", ErrConfig, len(cps))
	}
	if pods < 1 {
		return nil, fmt.Errorf("%w: pods must be >= 1, got %d", ErrConfig, pods)
	}
	g := &Game{
		Seed:        seed,
		Checkpoints: cps,
		Next:        make([]int, pods),
		Laps:        make([]int, pods),
	}
	for i := 0; i < pods; i++ {
		g.Pods = append(g.Pods, &Pod{Pos: cps[0]})
		g.Next[i] = 1
		g.Laps[i] = Laps
	}
	return g, nil
}

func randBetween(rnd *rand.Rand, lo, hi float64) int {
	return int(lo) + rnd.Intn(int(hi)-int(lo)+1)
}

// Input 第 i 辆车本回合看到的协议输入；对手为下一辆车，单车比赛时对手在原点
func (g *Game) Input(i int) protocol.Turn {
	p := g.Pods[i]
	cp := g.Checkpoints[g.Next[i]]
	v := cp.Sub(p.Pos)

	var enemy Vector
	if len(g.Pods) >= 2 {
		enemy = g.Pods[(i+1)%len(g.Pods)].Pos
	}
	return protocol.Turn{
		X:               int(p.Pos.X),
		Y:               int(p.Pos.Y),
		CheckpointX:     int(cp.X),
		CheckpointY:     int(cp.Y),
		CheckpointDist:  int(v.Rho()),
		CheckpointAngle: int(degrees(RelativeAngle(v.Phi(), p.Ang))),
		OpponentX:       int(enemy.X),
		OpponentY:       int(enemy.Y),
	}
}

// Step 应用所有车的指令并推进一回合
func (g *Game) Step(cmds []protocol.Command) (Result, error) {
	if len(cmds) != len(g.Pods) {
		return Result{}, fmt.Errorf("%w: %d commands for %d pods", ErrConfig, len(cmds), len(g.Pods))
	}
	g.Turn++
	g.last = append(g.last[:0], cmds...)

	for i, p := range g.Pods {
		c := cmds[i]
		thrust := float64(c.Thrust)
		if c.Thrust.IsBoost() {
			thrust = BoostThrust
		}
		target := Vector{X: float64(c.X), Y: float64(c.Y)}
		p.Move(Control{Thrust: thrust, TargetAngle: target.Sub(p.Pos).Phi()})
	}

	for i, p := range g.Pods {
		if p.Pos.Dist(g.Checkpoints[g.Next[i]]) > CheckpointRadius {
			continue
		}
		g.Next[i]++
		if g.Next[i] == len(g.Checkpoints) {
			g.Next[i] = 0
			g.Laps[i]--
			if g.Laps[i] == 0 {
				return Result{Finished: true, Winner: i}, nil
			}
		}
	}
	return Result{}, nil
}
