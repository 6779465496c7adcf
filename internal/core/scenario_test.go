package core

import "testing"

func testScenario() *Scenario {
	return &Scenario{
		Width:  4,
		Height: 3,
		Start:  Cell{0, 0},
		Finish: Cell{3, 2},
		Grid: [][]uint8{
			{0, 0, 1, 0},
			{0, 1, 1, 0},
			{0, 0, 0, 0},
		},
		Obstacles: []Trajectory{
			{{X: 3, Y: 0, T: 0}, {X: 3, Y: 2, T: 2}},
			{{X: 0, Y: 2, T: 0}},
		},
		Path:      Trajectory{{X: 0, Y: 0, T: 0}, {X: 0, Y: 2, T: 2}, {X: 3, Y: 2, T: 5}},
		Duration:  5,
		PathFound: true,
	}
}

func TestScenarioBlocked(t *testing.T) {
	sc := testScenario()

	tests := []struct {
		cell Cell
		want bool
	}{
		{Cell{0, 0}, false},
		{Cell{2, 0}, true},
		{Cell{1, 1}, true},
		{Cell{3, 2}, false},
		{Cell{-1, 0}, true},
		{Cell{4, 0}, true},
		{Cell{0, 3}, true},
	}

	for _, tt := range tests {
		if got := sc.Blocked(tt.cell); got != tt.want {
			t.Errorf("Blocked(%v) = %v, want %v", tt.cell, got, tt.want)
		}
	}

	if n := sc.BlockedCount(); n != 3 {
		t.Errorf("BlockedCount() = %d, want 3", n)
	}
}

func TestScenarioPositions(t *testing.T) {
	sc := testScenario()

	agent, obstacles := sc.Positions(1)
	if agent != (Vec{0, 1}) {
		t.Errorf("agent at t=1 = %v, want {0 1}", agent)
	}
	if len(obstacles) != 2 {
		t.Fatalf("got %d obstacle positions, want 2", len(obstacles))
	}
	if obstacles[0] != (Vec{3, 1}) {
		t.Errorf("obstacle 0 at t=1 = %v, want {3 1}", obstacles[0])
	}
	if obstacles[1] != (Vec{0, 2}) {
		t.Errorf("obstacle 1 at t=1 = %v, want {0 2}", obstacles[1])
	}

	if h := sc.Horizon(); h != 5 {
		t.Errorf("Horizon() = %g, want 5", h)
	}
}
