package control

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/suikasim/internal/game"
	"github.com/san-kum/suikasim/internal/physics"
	"github.com/san-kum/suikasim/internal/sim"
)

func newState(seed int64) *game.State {
	return game.New(physics.DefaultParams(), game.DefaultRules(), seed)
}

// drive applies policy commands the way the simulator does and returns a
// snapshot of each ball at the moment it was dropped.
func drive(t *testing.T, s *game.State, p sim.Policy, drops int) []*physics.Ball {
	t.Helper()
	var dropped []*physics.Ball
	for i := 0; i < 5000 && len(dropped) < drops; i++ {
		cmd := p.Compute(s)
		if cmd.Hold {
			_ = s.SwapHold()
		}
		if cmd.Move != 0 {
			_ = s.Move(cmd.Move)
		}
		if cmd.Drop {
			dropped = append(dropped, s.Current.Clone())
			if err := s.Drop(); err != nil {
				t.Fatalf("drop: %v", err)
			}
		}
		if _, err := s.Tick(); err != nil {
			t.Fatalf("tick %d: %v", s.Ticks, err)
		}
	}
	if len(dropped) < drops {
		t.Fatalf("expected %d drops, got %d", drops, len(dropped))
	}
	return dropped
}

func TestNone(t *testing.T) {
	s := newState(1)
	cmd := NewNone().Compute(s)
	if cmd != (sim.Command{}) {
		t.Errorf("expected empty command, got %+v", cmd)
	}
}

func TestPID(t *testing.T) {
	ctrl := NewPID(10.0, 0.1, 5.0, 0.0)
	u := ctrl.Compute(1.0, 0.0)
	if u >= 0 {
		t.Error("PID should output negative control for positive error")
	}

	ctrl.Compute(0.5, 1.0)
	ctrl.Reset()
	if u := ctrl.Compute(1.0, 2.0); u != -10 {
		t.Errorf("expected proportional-only output after reset, got %f", u)
	}

	ctrl.SetParam("Kp", 2)
	if ctrl.GetParams()["Kp"] != 2 {
		t.Error("SetParam did not update Kp")
	}
}

func TestGreedyAimsAtPartner(t *testing.T) {
	s := newState(1)
	p := s.Params
	s.Current = p.NewBall(500, 110, 0)
	s.Balls = []*physics.Ball{p.NewBall(200, 1400, 0)}

	g := NewGreedy(10, 0, 2, 45)
	for i := 0; i < 200; i++ {
		cmd := g.Compute(s)
		if cmd.Drop {
			if math.Abs(s.Current.X-200) > s.Rules.MoveStep/2 {
				t.Errorf("dropped at x=%f, want near 200", s.Current.X)
			}
			return
		}
		if cmd.Move < -1 || cmd.Move > 1 {
			t.Fatalf("move %f out of range", cmd.Move)
		}
		if err := s.Move(cmd.Move); err != nil {
			t.Fatal(err)
		}
	}
	t.Fatal("greedy never dropped")
}

func TestGreedyPrefersOpenColumn(t *testing.T) {
	s := newState(1)
	p := s.Params
	s.Current = p.NewBall(500, 110, 0)
	s.Balls = []*physics.Ball{p.NewBall(500, 1310, 3)}

	g := NewGreedy(10, 0, 2, 45)
	g.Compute(s)

	blocked := s.Balls[0].Radius + s.Current.Radius
	if math.Abs(g.target-500) < blocked {
		t.Errorf("target %f sits above the pile", g.target)
	}
}

func TestGreedyEmptyBoardTargetsCentre(t *testing.T) {
	s := newState(1)
	g := NewGreedy(10, 0, 2, 45)
	g.Compute(s)
	if g.target != s.Params.Width/2 {
		t.Errorf("expected centre target, got %f", g.target)
	}
}

func TestGreedyUsesHold(t *testing.T) {
	s := newState(1)
	p := s.Params
	s.Current = p.NewBall(500, 110, 1)
	s.Hold = p.NewBall(500, 110, 0)
	s.Balls = []*physics.Ball{p.NewBall(300, 1400, 0)}

	g := NewGreedy(10, 0, 2, 45)
	if cmd := g.Compute(s); !cmd.Hold {
		t.Errorf("expected hold swap, got %+v", cmd)
	}

	s.HoldUsed = true
	s.Current = p.NewBall(500, 110, 1)
	if cmd := g.Compute(s); cmd.Hold {
		t.Error("hold requested after it was used")
	}
}

func TestColumnsCycle(t *testing.T) {
	s := newState(3)
	c := NewColumns([]float64{100, 900}, 1)
	dropped := drive(t, s, c, 4)

	for i, b := range dropped {
		want := []float64{100, 900}[i%2]
		want = math.Max(b.Radius, math.Min(s.Params.Width-b.Radius, want))
		if math.Abs(b.X-want) > s.Rules.MoveStep/2 {
			t.Errorf("drop %d at x=%f, want near %f", i, b.X, want)
		}
	}
}

func TestColumnsEmpty(t *testing.T) {
	s := newState(1)
	if cmd := NewColumns(nil, 1).Compute(s); cmd != (sim.Command{}) {
		t.Errorf("expected empty command, got %+v", cmd)
	}
}

func TestRandomCadence(t *testing.T) {
	const interval = 45
	s := sim.New(physics.DefaultParams(), game.DefaultRules(), NewRandom(7, interval))
	res, err := s.Run(context.Background(), sim.Config{MaxTicks: 900, Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	if res.Drops == 0 {
		t.Fatal("random policy never dropped")
	}
	if max := res.Ticks/interval + 1; res.Drops > max {
		t.Errorf("%d drops in %d ticks exceeds cadence (max %d)", res.Drops, res.Ticks, max)
	}
}

func TestRandomSameSeed(t *testing.T) {
	a := drive(t, newState(2), NewRandom(5, 10), 3)
	b := drive(t, newState(2), NewRandom(5, 10), 3)
	for i := range a {
		if a[i].X != b[i].X {
			t.Errorf("drop %d: %f != %f", i, a[i].X, b[i].X)
		}
	}
}

func TestGreedyPlaysFullGame(t *testing.T) {
	s := sim.New(physics.DefaultParams(), game.DefaultRules(), NewGreedy(10, 0, 2, 45))
	res, err := s.Run(context.Background(), sim.Config{MaxTicks: 3000, Seed: 11})
	if err != nil {
		t.Fatal(err)
	}
	if res.Drops == 0 {
		t.Error("greedy never dropped")
	}
	if res.Score < 0 {
		t.Errorf("negative score %d", res.Score)
	}
}
