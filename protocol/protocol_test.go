package protocol

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestReadTurnAcrossLines(t *testing.T) {
	r := NewReader(strings.NewReader("0 0 1000 0 1000 5\n5000 5000\n1 2 3 4 5 -6\n7 8\n"))

	got, err := r.ReadTurn()
	if err != nil {
		t.Fatalf("first turn: %v", err)
	}
	want := Turn{CheckpointX: 1000, CheckpointDist: 1000, CheckpointAngle: 5, OpponentX: 5000, OpponentY: 5000}
	if got != want {
		t.Fatalf("first turn = %+v, want %+v", got, want)
	}

	got, err = r.ReadTurn()
	if err != nil {
		t.Fatalf("second turn: %v", err)
	}
	if got.CheckpointAngle != -6 || got.OpponentY != 8 {
		t.Fatalf("second turn = %+v", got)
	}

	if _, err := r.ReadTurn(); err != io.EOF {
		t.Fatalf("expected io.EOF after last turn, got %v", err)
	}
}

func TestReadTurnTruncated(t *testing.T) {
	r := NewReader(strings.NewReader("0 0 1000 0 1000 5\n"))
	if _, err := r.ReadTurn(); err != io.ErrUnexpectedEOF {
		t.Fatalf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestReadTurnMalformed(t *testing.T) {
	r := NewReader(strings.NewReader("0 0 abc 0 1000 5\n1 1\n"))
	_, err := r.ReadTurn()
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestTurnEncodeRoundsThroughReader(t *testing.T) {
	in := Turn{X: 1, Y: 2, CheckpointX: 3, CheckpointY: 4, CheckpointDist: 5, CheckpointAngle: -170, OpponentX: 7, OpponentY: 8}
	var buf bytes.Buffer
	if err := in.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if buf.String() != "1 2 3 4 5 -170\n7 8\n" {
		t.Fatalf("unexpected encoding %q", buf.String())
	}
	out, err := NewReader(&buf).ReadTurn()
	if err != nil || out != in {
		t.Fatalf("decode = %+v, %v", out, err)
	}
}

func TestThrustString(t *testing.T) {
	if Boost.String() != "BOOST" {
		t.Fatalf("Boost.String() = %q", Boost.String())
	}
	if Thrust(100).String() != "100" || Thrust(0).String() != "0" {
		t.Fatalf("numeric thrust formatting broken")
	}
}

func TestParseThrustLimits(t *testing.T) {
	for _, s := range []string{"0", "100", "200"} {
		if _, err := ParseThrust(s); err != nil {
			t.Errorf("ParseThrust(%q) unexpected error %v", s, err)
		}
	}
	for _, s := range []string{"-1", "201", "SHIELD", "boost", ""} {
		if _, err := ParseThrust(s); !errors.Is(err, ErrBadThrust) {
			t.Errorf("ParseThrust(%q) = %v, want ErrBadThrust", s, err)
		}
	}
	th, err := ParseThrust("BOOST")
	if err != nil || !th.IsBoost() {
		t.Fatalf("ParseThrust(BOOST) = %v, %v", th, err)
	}
}

func TestParseCommand(t *testing.T) {
	c, err := ParseCommand("1000 0 BOOST\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.X != 1000 || c.Y != 0 || !c.Thrust.IsBoost() {
		t.Fatalf("unexpected command %+v", c)
	}
	if c.String() != "1000 0 BOOST" {
		t.Fatalf("String() = %q", c.String())
	}

	if _, err := ParseCommand("1000 0"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed for two fields, got %v", err)
	}
	if _, err := ParseCommand("x 0 100"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed for bad x, got %v", err)
	}
	if _, err := ParseCommand("1 0 999"); !errors.Is(err, ErrBadThrust) {
		t.Fatalf("expected ErrBadThrust, got %v", err)
	}
}
