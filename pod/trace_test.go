package pod

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"madpod/logging"
)

func TestControllerLogsTraceEveryTurn(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logging.Log
	logging.Log = zap.New(core).Sugar()
	defer func() { logging.Log = prev }()

	c := NewController()
	s := GameState{NextCheckpointX: 1000, NextCheckpointDist: 1000, NextCheckpointAngle: 5, OpponentX: 3000}
	c.Turn(s)
	c.Turn(s)

	entries := logs.FilterMessage("turn").All()
	if len(entries) != 2 {
		t.Fatalf("trace entries = %d, want 2", len(entries))
	}
	want := map[string]int64{
		"opponent_checkpoint_dist": 2000,
		"opponent_dist":            3000,
		"next_checkpoint_dist":     1000,
		"next_checkpoint_angle":    5,
		"game_condition":           int64(CloseToCheckpointOnly),
	}
	for i, e := range entries {
		if e.Level != zapcore.DebugLevel {
			t.Fatalf("entry %d level = %v, want debug", i, e.Level)
		}
		fields := e.ContextMap()
		for key, v := range want {
			got, ok := fields[key].(int64)
			if !ok {
				t.Fatalf("entry %d: field %q = %#v, want an integer", i, key, fields[key])
			}
			if got != v {
				t.Fatalf("entry %d: %s = %d, want %d", i, key, got, v)
			}
		}
	}
}
