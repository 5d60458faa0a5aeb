package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrMalformed 输入中出现无法解析为整数的字段
var ErrMalformed = errors.New("malformed turn input")

// Turn 单回合输入：
//
//	x y next_checkpoint_x next_checkpoint_y next_checkpoint_dist next_checkpoint_angle
//	opponent_x opponent_y
type Turn struct {
	X, Y            int
	CheckpointX     int
	CheckpointY     int
	CheckpointDist  int
	CheckpointAngle int
	OpponentX       int
	OpponentY       int
}

const turnFields = 8

// Encode 按协议写出两行
func (t Turn) Encode(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%d %d %d %d %d %d\n%d %d\n",
		t.X, t.Y, t.CheckpointX, t.CheckpointY, t.CheckpointDist, t.CheckpointAngle,
		t.OpponentX, t.OpponentY)
	return err
}

// Reader 以空白分隔读取回合输入，行边界不影响解析
type Reader struct {
	sc *bufio.Scanner
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &Reader{sc: sc}
}

// ReadTurn 阻塞读取下一回合。
// 回合开始前输入结束返回 io.EOF；回合中途结束返回 io.ErrUnexpectedEOF。
func (r *Reader) ReadTurn() (Turn, error) {
	var v [turnFields]int
	for i := range v {
		if !r.sc.Scan() {
			if err := r.sc.Err(); err != nil {
				return Turn{}, err
			}
			if i == 0 {
				return Turn{}, io.EOF
			}
			return Turn{}, io.ErrUnexpectedEOF
		}
		n, err := strconv.Atoi(r.sc.Text())
		if err != nil {
			return Turn{}, fmt.Errorf("%w: field %d %q", ErrMalformed, i, r.sc.Text())
		}
		v[i] = n
	}
	return Turn{
		X: v[0], Y: v[1],
		CheckpointX: v[2], CheckpointY: v[3],
		CheckpointDist: v[4], CheckpointAngle: v[5],
		OpponentX: v[6], OpponentY: v[7],
	}, nil
}
