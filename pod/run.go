package pod

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"madpod/protocol"
)

// Run 单线程同步循环：读一回合 → 决策 → 写一行并 flush → 下一回合。
// 输入在回合边界正常结束时返回 nil。
func Run(r io.Reader, w io.Writer, p Pilot) error {
	in := protocol.NewReader(r)
	out := bufio.NewWriter(w)
	for turn := 1; ; turn++ {
		t, err := in.ReadTurn()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("turn %d: read: %w", turn, err)
		}

		a := p.Turn(StateFromTurn(t))
		if _, err := fmt.Fprintln(out, a.Command()); err != nil {
			return fmt.Errorf("turn %d: write: %w", turn, err)
		}
		if err := out.Flush(); err != nil {
			return fmt.Errorf("turn %d: flush: %w", turn, err)
		}
	}
}
