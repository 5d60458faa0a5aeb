package arena

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"madpod/logging"
	"madpod/pod"
	"madpod/protocol"
)

// ErrStrategy 策略进程无法启动、超时或输出非法
var ErrStrategy = errors.New("strategy failure")

// Strategy 每回合对协议输入给出一条指令
type Strategy interface {
	React(ctx context.Context, t protocol.Turn) (protocol.Command, error)
	Close() error
}

// PilotStrategy 进程内策略，直接驱动 pod.Pilot
type PilotStrategy struct {
	Pilot pod.Pilot
}

func (s *PilotStrategy) React(_ context.Context, t protocol.Turn) (protocol.Command, error) {
	return s.Pilot.Turn(pod.StateFromTurn(t)).Command(), nil
}

func (s *PilotStrategy) Close() error { return nil }

// Builtin 按名称创建进程内策略：reactive | smooth
func Builtin(name string) (Strategy, error) {
	switch name {
	case "reactive":
		return &PilotStrategy{Pilot: pod.NewController()}, nil
	case "smooth":
		return &PilotStrategy{Pilot: pod.NewSmooth()}, nil
	default:
		return nil, fmt.Errorf("%w: unknown builtin strategy %q", ErrConfig, name)
	}
}

// ProcessStrategy 子进程策略：stdin 写回合，stdout 每回合读一行，stderr 收集为附带消息
type ProcessStrategy struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader

	mu     sync.Mutex
	stderr []string

	lines   chan lineResult
	done    chan struct{}
	readers sync.WaitGroup
	// 已写出但尚未读到回复的回合数；超时回合的迟到回复在下一回合被丢弃
	pending int

	closeOnce sync.Once
	closeErr  error
}

// closeGrace 关闭 stdin 后等待策略自行退出的时间，超时则 Kill
const closeGrace = 500 * time.Millisecond

type lineResult struct {
	line string
	err  error
}

// StartProcess 启动命令行（按空白切分，不经过 shell）
func StartProcess(cmdline string) (*ProcessStrategy, error) {
	args := strings.Fields(cmdline)
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: empty command line", ErrConfig)
	}
	cmd := exec.Command(args[0], args[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdin pipe: %v", ErrStrategy, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdout pipe: %v", ErrStrategy, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stderr pipe: %v", ErrStrategy, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: start %q: %v", ErrStrategy, cmdline, err)
	}

	s := &ProcessStrategy{
		cmd:    cmd,
		stdin:  stdin,
		stdout: bufio.NewReader(stdout),
		lines:  make(chan lineResult, 1),
		done:   make(chan struct{}),
	}
	s.readers.Add(2)
	go s.readStdout()
	go s.readStderr(stderr)
	logging.Log.Infof("strategy process started: pid=%d cmd=%q", cmd.Process.Pid, cmdline)
	return s, nil
}

// readStdout 独立协程逐行读取输出，出错后退出
func (s *ProcessStrategy) readStdout() {
	defer s.readers.Done()
	for {
		line, err := s.stdout.ReadString('\n')
		select {
		case s.lines <- lineResult{line: line, err: err}:
		case <-s.done:
			return
		}
		if err != nil {
			return
		}
	}
}

// readStderr 独立协程，避免 stderr 写满管道阻塞子进程
func (s *ProcessStrategy) readStderr(r io.Reader) {
	defer s.readers.Done()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s.mu.Lock()
		s.stderr = append(s.stderr, sc.Text())
		s.mu.Unlock()
	}
}

func (s *ProcessStrategy) drainStderr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := strings.Join(s.stderr, "\n")
	s.stderr = s.stderr[:0]
	return msg
}

// React 写入本回合并等待一行输出；ctx 到期视为超时
func (s *ProcessStrategy) React(ctx context.Context, t protocol.Turn) (protocol.Command, error) {
	if err := t.Encode(s.stdin); err != nil {
		return protocol.Command{}, fmt.Errorf("%w: write turn: %v", ErrStrategy, err)
	}
	s.pending++

	for {
		var res lineResult
		select {
		case <-ctx.Done():
			return protocol.Command{}, fmt.Errorf("%w: %w", ErrStrategy, ctx.Err())
		case res = <-s.lines:
		}
		if res.err != nil && res.line == "" {
			return protocol.Command{}, fmt.Errorf("%w: read command: %v", ErrStrategy, res.err)
		}
		s.pending--
		if s.pending > 0 {
			logging.Log.Debugf("discarding late reply %q", strings.TrimSpace(res.line))
			continue
		}
		c, err := protocol.ParseCommand(res.line)
		if err != nil {
			return protocol.Command{}, fmt.Errorf("%w: %v", ErrStrategy, err)
		}
		c.Message = s.drainStderr()
		return c, nil
	}
}

// Close 关闭 stdin 并等待策略退出，超过 closeGrace 则 Kill；可重复调用
func (s *ProcessStrategy) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.stdin.Close()

		// 管道读完后才能 Wait
		readersDone := make(chan struct{})
		go func() {
			s.readers.Wait()
			close(readersDone)
		}()
		select {
		case <-readersDone:
		case <-time.After(closeGrace):
			logging.Log.Warnf("strategy process pid=%d still running after stdin closed, killing", s.cmd.Process.Pid)
			_ = s.cmd.Process.Kill()
			<-readersDone
		}

		err := s.cmd.Wait()
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// 被 Kill 或以非零状态退出都属于正常收尾
			err = nil
		}
		s.closeErr = err
	})
	return s.closeErr
}
