package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap/zapcore"

	"madpod/arena"
	"madpod/config"
	"madpod/logging"
	"madpod/server"
	"madpod/tui"
)

// arena 入口：本地模拟比赛，驱动一个或两个策略（子进程或内置），可选终端视图与观战服务
func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}

	var o options
	flag.StringVar(&o.cmd1, "cmd1", "", "command line of the first strategy, e.g. ./madpod")
	flag.StringVar(&o.cmd2, "cmd2", "", "command line of an optional opponent strategy")
	flag.StringVar(&o.builtin1, "builtin1", "", "built-in first strategy instead of -cmd1: reactive|smooth")
	flag.StringVar(&o.builtin2, "builtin2", "", "built-in opponent instead of -cmd2: reactive|smooth")
	flag.IntVar(&o.checkpoints, "checkpoints", 4, "number of checkpoints")
	flag.IntVar(&o.limit, "limit", config.EnvInt("MADPOD_LIMIT", arena.DefaultLimit), "step limit")
	flag.Int64Var(&o.seed, "seed", config.EnvInt64("MADPOD_SEED", 0), "track seed (0 = random)")
	flag.StringVar(&o.vis, "vis", "none", "visualization: none|tui")
	flag.DurationVar(&o.frameDuration, "frame-duration", 300*time.Millisecond, "delay between rendered frames")
	flag.DurationVar(&o.turnTimeout, "turn-timeout", time.Second, "per strategy response timeout")
	flag.StringVar(&o.addr, "addr", config.Env("MADPOD_ADDR", ""), "spectator server listen address, e.g. :8080 (empty disables)")
	flag.StringVar(&o.logFile, "log-file", config.Env("MADPOD_LOG_FILE", "arena.log"), "log file (empty = stderr, not allowed with -vis tui)")
	flag.Parse()

	if err := logging.Init(o.logFile, zapcore.DebugLevel); err != nil {
		panic(err)
	}
	defer logging.Sync()

	if err := run(o); err != nil {
		logging.Log.Errorf("arena: %v", err)
		logging.Sync()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	cmd1, cmd2         string
	builtin1, builtin2 string
	checkpoints, limit int
	seed               int64
	vis                string
	frameDuration      time.Duration
	turnTimeout        time.Duration
	addr               string
	logFile            string
}

func openStrategy(cmdline, builtin string) (arena.Strategy, error) {
	if builtin != "" {
		return arena.Builtin(builtin)
	}
	return arena.StartProcess(cmdline)
}

func run(o options) error {
	if o.cmd1 == "" && o.builtin1 == "" {
		return fmt.Errorf("%w: -cmd1 or -builtin1 is required", arena.ErrConfig)
	}
	if o.vis != "none" && o.vis != "tui" {
		return fmt.Errorf("%w: unknown -vis %q", arena.ErrConfig, o.vis)
	}
	// 终端视图独占终端，日志不能再写 stderr
	if o.vis == "tui" && o.logFile == "" {
		return fmt.Errorf("%w: -vis tui needs -log-file", arena.ErrConfig)
	}
	seed := o.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var strategies []arena.Strategy
	defer func() {
		for _, s := range strategies {
			_ = s.Close()
		}
	}()
	s, err := openStrategy(o.cmd1, o.builtin1)
	if err != nil {
		return err
	}
	strategies = append(strategies, s)
	if o.cmd2 != "" || o.builtin2 != "" {
		s, err := openStrategy(o.cmd2, o.builtin2)
		if err != nil {
			return err
		}
		strategies = append(strategies, s)
	}

	g, err := arena.NewGame(len(strategies), o.checkpoints, seed)
	if err != nil {
		return err
	}
	fmt.Printf("Seed is %d\n", seed)

	// 优雅退出（Ctrl+C）；关闭终端视图同样中止比赛
	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, abort := context.WithCancel(sigCtx)
	defer abort()

	metrics := &server.RaceMetrics{}
	var observers []func(arena.Frame)

	if o.addr != "" {
		hub := server.NewHub(metrics)
		hubCtx, hubCancel := context.WithCancel(context.Background())
		defer hubCancel()
		go hub.Run(hubCtx)

		srv := &http.Server{Addr: o.addr, Handler: server.NewMux(hub)}
		go func() {
			logging.Log.Infof("spectator server listening on %s", o.addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Log.Errorf("listen: %v", err)
			}
		}()
		defer srv.Close()
		observers = append(observers, hub.Publish)
	}

	var (
		frames   chan arena.Frame
		viewDone chan error
	)
	if o.vis == "tui" {
		viewer, err := tui.NewViewer()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		// 视图按 frameDuration 回放，比赛循环在通道满时等待
		frames = make(chan arena.Frame, 1)
		viewDone = make(chan error, 1)
		go func() {
			err := viewer.Run(frames, o.frameDuration)
			abort()
			viewDone <- err
		}()
		observers = append(observers, func(f arena.Frame) {
			select {
			case frames <- f:
			case <-ctx.Done():
			}
		})
	}

	outcome, err := arena.Play(ctx, g, strategies, arena.Options{
		Limit:       o.limit,
		TurnTimeout: o.turnTimeout,
		Metrics:     metrics,
		Observe: func(f arena.Frame) {
			for _, obs := range observers {
				obs(f)
			}
		},
	})
	if frames != nil {
		close(frames)
		if verr := <-viewDone; verr != nil {
			logging.Log.Warnf("viewer: %v", verr)
		}
	}
	if errors.Is(err, context.Canceled) {
		logging.Log.Infof("race aborted after %d turns", outcome.Turns)
		fmt.Println("Race aborted")
		return nil
	}
	if err != nil {
		return err
	}
	logging.Log.Infow("race finished", "outcome", outcome.String(), "turns", outcome.Turns, "metrics", metrics.Snapshot())
	fmt.Println(outcome)
	return nil
}
