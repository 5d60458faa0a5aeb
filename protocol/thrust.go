package protocol

import (
	"errors"
	"fmt"
	"strconv"
)

// MaxThrust 裁判接受的最大数值推力
const MaxThrust = 200

// ErrBadThrust 推力既不是 BOOST 也不是 [0, MaxThrust] 内的整数
var ErrBadThrust = errors.New("bad thrust")

// Thrust 每回合的油门指令：0..MaxThrust 的整数，或一次性的 Boost
type Thrust int

// Boost 加速指令（整场比赛只生效一次）
const Boost Thrust = -1

func (t Thrust) IsBoost() bool { return t == Boost }

func (t Thrust) String() string {
	if t == Boost {
		return "BOOST"
	}
	return strconv.Itoa(int(t))
}

// ParseThrust 解析输出行中的第三个字段
func ParseThrust(s string) (Thrust, error) {
	if s == "BOOST" {
		return Boost, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > MaxThrust {
		return 0, fmt.Errorf("%w: %q", ErrBadThrust, s)
	}
	return Thrust(v), nil
}
