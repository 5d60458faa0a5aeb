package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// Command 单回合输出 "x y thrust"
type Command struct {
	X, Y   int
	Thrust Thrust
	// Message 策略进程在本回合写到 stderr 的内容（仅模拟器使用，不参与协议）
	Message string
}

func (c Command) String() string {
	return fmt.Sprintf("%d %d %s", c.X, c.Y, c.Thrust)
}

// ParseCommand 解析策略输出的一行
func ParseCommand(line string) (Command, error) {
	fs := strings.Fields(line)
	if len(fs) != 3 {
		return Command{}, fmt.Errorf("%w: want 3 fields, got %d in %q", ErrMalformed, len(fs), line)
	}
	x, err := strconv.Atoi(fs[0])
	if err != nil {
		return Command{}, fmt.Errorf("%w: target x %q", ErrMalformed, fs[0])
	}
	y, err := strconv.Atoi(fs[1])
	if err != nil {
		return Command{}, fmt.Errorf("%w: target y %q", ErrMalformed, fs[1])
	}
	t, err := ParseThrust(fs[2])
	if err != nil {
		return Command{}, err
	}
	return Command{X: x, Y: y, Thrust: t}, nil
}
