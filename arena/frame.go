package arena

// PodFrame 可视化用的单车快照
type PodFrame struct {
	Pos     Vector  `msgpack:"pos" json:"pos"`
	Ang     float64 `msgpack:"ang" json:"ang"`
	Next    int     `msgpack:"next" json:"next"`
	Laps    int     `msgpack:"laps" json:"laps"`
	Thrust  string  `msgpack:"thrust" json:"thrust"`
	Message string  `msgpack:"msg,omitempty" json:"msg,omitempty"`
}

// Frame 一回合结束后的比赛快照，推送给观战端与终端视图
type Frame struct {
	Turn        int        `msgpack:"turn" json:"turn"`
	Checkpoints []Vector   `msgpack:"checkpoints" json:"checkpoints"`
	Pods        []PodFrame `msgpack:"pods" json:"pods"`
}

// Frame 复制当前状态，调用方可以跨 goroutine 持有
func (g *Game) Frame() Frame {
	f := Frame{
		Turn:        g.Turn,
		Checkpoints: append([]Vector(nil), g.Checkpoints...),
		Pods:        make([]PodFrame, len(g.Pods)),
	}
	for i, p := range g.Pods {
		pf := PodFrame{Pos: p.Pos, Ang: p.Ang, Next: g.Next[i], Laps: g.Laps[i]}
		if i < len(g.last) {
			pf.Thrust = g.last[i].Thrust.String()
			pf.Message = g.last[i].Message
		}
		f.Pods[i] = pf
	}
	return f
}
