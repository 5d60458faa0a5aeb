package tui

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"madpod/arena"
)

var podRunes = []rune{'@', '&', '%', '$'}

var podStyles = []tcell.Style{
	tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true),
	tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
	tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true),
}

var (
	checkpointStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	headingStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	hudStyle        = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// Viewer 终端比赛视图（替代窗口可视化）
type Viewer struct {
	screen        tcell.Screen
	width, height int
}

func NewViewer() (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	v := &Viewer{screen: screen}
	v.width, v.height = screen.Size()
	return v, nil
}

// Project 世界坐标映射到终端格子；最后一行留给状态栏
func Project(p arena.Vector, width, height int) (col, row int) {
	rows := height - 1
	if width <= 0 || rows <= 0 {
		return 0, 0
	}
	col = int(p.X / arena.WorldW * float64(width))
	row = int(p.Y / arena.WorldH * float64(rows))
	col = min(max(col, 0), width-1)
	row = min(max(row, 0), rows-1)
	return col, row
}

func (v *Viewer) draw(f arena.Frame) {
	v.screen.Clear()
	for i, cp := range f.Checkpoints {
		c, r := Project(cp, v.width, v.height)
		v.screen.SetContent(c, r, rune('0'+i%10), nil, checkpointStyle)
	}
	for i, p := range f.Pods {
		// 机头方向标记
		tip := p.Pos.Add(arena.Vector{X: 1}.Rotate(p.Ang).Scale(arena.CheckpointRadius))
		c, r := Project(tip, v.width, v.height)
		v.screen.SetContent(c, r, headingRune(p.Ang), nil, headingStyle)

		c, r = Project(p.Pos, v.width, v.height)
		v.screen.SetContent(c, r, podRunes[i%len(podRunes)], nil, podStyles[i%len(podStyles)])
	}

	hud := fmt.Sprintf("turn %d", f.Turn)
	for i, p := range f.Pods {
		hud += fmt.Sprintf(" | %c next=%d laps=%d thrust=%s", podRunes[i%len(podRunes)], p.Next, p.Laps, p.Thrust)
	}
	for i, ch := range []rune(hud) {
		if i >= v.width {
			break
		}
		v.screen.SetContent(i, v.height-1, ch, nil, hudStyle)
	}
	v.screen.Show()
}

// headingRune 按 45 度分区选择方向字符（屏幕 y 轴向下）
func headingRune(ang float64) rune {
	sector := int(math.Round(arena.RelativeAngle(ang, 0)/(math.Pi/4))) & 7
	return []rune{'-', '\\', '|', '/', '-', '\\', '|', '/'}[sector]
}

// Run 每隔 frameDelay 取一帧绘制；ESC / Ctrl+C / q 退出，帧通道关闭后等待按键退出
func (v *Viewer) Run(frames <-chan arena.Frame, frameDelay time.Duration) error {
	defer v.screen.Fini()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	ticker := time.NewTicker(frameDelay)
	defer ticker.Stop()

	var last *arena.Frame
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
			case *tcell.EventResize:
				v.width, v.height = v.screen.Size()
				v.screen.Sync()
				if last != nil {
					v.draw(*last)
				}
			}

		case <-ticker.C:
			if frames == nil {
				continue
			}
			select {
			case f, ok := <-frames:
				if !ok {
					frames = nil
					continue
				}
				last = &f
				v.draw(f)
			default:
			}
		}
	}
}
