package pod

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"madpod/protocol"
)

func TestClassifyBoundaryGrid(t *testing.T) {
	for _, od := range []int{999, 1000, 1001} {
		for _, cd := range []int{1499, 1500, 1501} {
			nearOpp := od < 1000
			nearCp := cd < 1500
			var want Condition
			switch {
			case nearOpp && nearCp:
				want = CloseToAll
			case nearOpp:
				want = CloseToOpponentOnly
			case nearCp:
				want = CloseToCheckpointOnly
			default:
				want = FarFromAll
			}
			if got := Classify(od, cd); got != want {
				t.Errorf("Classify(%d, %d) = %v, want %v", od, cd, got, want)
			}
		}
	}
}

func TestThresholds(t *testing.T) {
	if CheckpointRadius != 1500 || ForceField != 1000 {
		t.Fatalf("thresholds = %d/%d, want 1500/1000", CheckpointRadius, ForceField)
	}
}

func TestConditionString(t *testing.T) {
	if CloseToAll.String() != "CLOSE_TO_ALL" || FarFromAll.String() != "FAR_FROM_ALL" {
		t.Fatalf("unexpected names %q %q", CloseToAll, FarFromAll)
	}
	if int(CloseToOpponentOnly) != 2 || int(CloseToCheckpointOnly) != 1 {
		t.Fatalf("numeric tags changed")
	}
}

func TestDistanceRightTriangle(t *testing.T) {
	s := GameState{NextCheckpointX: 3, NextCheckpointY: 4, X: -6, Y: -8}
	s.UpdateGeometry()
	if s.OpponentCheckpointDist != 5 {
		t.Fatalf("opponent_checkpoint_dist = %d, want 5", s.OpponentCheckpointDist)
	}
	if s.OpponentDist != 10 {
		t.Fatalf("opponent_dist = %d, want 10", s.OpponentDist)
	}
	if d := Distance(0, 0, 1, 1); d != 1 {
		t.Fatalf("Distance rounding: got %d want 1", d)
	}
	if d := Distance(0, 0, 5000, 5000); d != 7071 {
		t.Fatalf("Distance(0,0,5000,5000) = %d, want 7071", d)
	}
}

func TestDecideBehindCutoff(t *testing.T) {
	// 对手很近、检查点很远，不会触发加速
	base := GameState{NextCheckpointX: 10, NextCheckpointY: 20, NextCheckpointDist: 5000, Condition: CloseToOpponentOnly}
	cases := map[int]protocol.Thrust{91: 0, -91: 0, 90: 100, -90: 100, 180: 0, -180: 0, 0: 100}
	for angle, want := range cases {
		s := base
		s.NextCheckpointAngle = angle
		a := Decide(s, false)
		if a.Thrust != want {
			t.Errorf("angle %d: thrust = %v, want %v", angle, a.Thrust, want)
		}
		if a.TargetX != 10 || a.TargetY != 20 {
			t.Errorf("angle %d: target = (%d,%d), want checkpoint", angle, a.TargetX, a.TargetY)
		}
	}
}

func TestDecideBoostEligibility(t *testing.T) {
	cases := []struct {
		cond      Condition
		angle     int
		boostUsed bool
		want      protocol.Thrust
	}{
		{FarFromAll, 0, false, protocol.Boost},
		{FarFromAll, 9, false, protocol.Boost},
		{FarFromAll, 10, false, 100},
		{FarFromAll, 0, true, 100},
		// 负角度同样满足 angle < 10（保持原控制律），身后时仍会加速
		{FarFromAll, -120, false, protocol.Boost},
		{FarFromAll, -120, true, 0},
		{CloseToAll, 5, false, protocol.Boost},
		{CloseToAll, 5, true, 100},
		{CloseToAll, 95, false, 0},
		{CloseToCheckpointOnly, 0, false, 100},
		{CloseToOpponentOnly, 0, false, 100},
	}
	for _, c := range cases {
		s := GameState{NextCheckpointAngle: c.angle, Condition: c.cond}
		if got := Decide(s, c.boostUsed).Thrust; got != c.want {
			t.Errorf("%v angle=%d used=%v: thrust = %v, want %v", c.cond, c.angle, c.boostUsed, got, c.want)
		}
	}
}

func TestDecideIsIdempotent(t *testing.T) {
	s := GameState{NextCheckpointX: 1000, NextCheckpointAngle: 0, Condition: FarFromAll}
	a1 := Decide(s, false)
	a2 := Decide(s, false)
	if a1 != a2 {
		t.Fatalf("Decide not idempotent: %+v vs %+v", a1, a2)
	}
}

func TestControllerBoostsOnce(t *testing.T) {
	c := NewController()
	s := GameState{
		NextCheckpointX:    1000,
		NextCheckpointDist: 2000,
		OpponentX:          5000,
		OpponentY:          5000,
	}
	boosts := 0
	for i := 0; i < 20; i++ {
		a := c.Turn(s)
		if a.Thrust.IsBoost() {
			boosts++
			continue
		}
		if a.Thrust != 100 {
			t.Fatalf("turn %d: thrust = %v, want 100", i, a.Thrust)
		}
	}
	if boosts != 1 {
		t.Fatalf("boost emitted %d times, want exactly 1", boosts)
	}
	if !c.BoostUsed() {
		t.Fatalf("BoostUsed() = false after boosting")
	}
}

func TestRunScenarioCloseToCheckpoint(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("0 0 1000 0 1000 5\n5000 5000\n")
	if err := Run(in, &out, NewController()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "1000 0 100\n" {
		t.Fatalf("output = %q, want %q", out.String(), "1000 0 100\n")
	}
}

func TestRunScenarioBoostThenThrottle(t *testing.T) {
	var out bytes.Buffer
	turn := "0 0 1000 0 2000 0\n5000 5000\n"
	if err := Run(strings.NewReader(turn+turn), &out, NewController()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "1000 0 BOOST\n1000 0 100\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunMalformedInputFailsFast(t *testing.T) {
	var out bytes.Buffer
	err := Run(strings.NewReader("0 0 1000 0 2000 zero\n5000 5000\n"), &out, NewController())
	if !errors.Is(err, protocol.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestSmoothPilot(t *testing.T) {
	p := NewSmooth()
	far := GameState{NextCheckpointX: 1, NextCheckpointY: 2, NextCheckpointDist: 6000, NextCheckpointAngle: -3}
	if a := p.Turn(far); !a.Thrust.IsBoost() {
		t.Fatalf("expected boost on long straight, got %v", a.Thrust)
	}
	if a := p.Turn(far); a.Thrust != 100 {
		t.Fatalf("expected full thrust after boost, got %v", a.Thrust)
	}

	behind := far
	behind.NextCheckpointAngle = 120
	if a := p.Turn(behind); a.Thrust != 0 {
		t.Fatalf("expected zero thrust when checkpoint is behind, got %v", a.Thrust)
	}

	near := GameState{NextCheckpointDist: 1000, NextCheckpointAngle: 0}
	a := p.Turn(near)
	if a.Thrust <= 0 || a.Thrust >= 100 {
		t.Fatalf("expected partial thrust near checkpoint, got %v", a.Thrust)
	}
}
