package main

import (
	"os"

	"go.uber.org/zap/zapcore"

	"madpod/logging"
	"madpod/pod"
)

// madpod 入口：stdin 读回合，stdout 写 "x y thrust"，诊断信息走 stderr
func main() {
	if err := logging.Init("", zapcore.DebugLevel); err != nil {
		panic(err)
	}
	defer logging.Sync()

	if err := pod.Run(os.Stdin, os.Stdout, pod.NewController()); err != nil {
		logging.Log.Errorf("madpod: %v", err)
		logging.Sync()
		os.Exit(1)
	}
}
