package core

// Summary is the planner's report attached to a result file.
type Summary struct {
	PathLength float64
	Steps      int
	SearchTime float64
}

// Scenario is a grid map with a start, a finish, moving obstacles and the
// agent's planned path. It is built once and only read afterwards.
type Scenario struct {
	Width, Height int
	Start, Finish Cell
	Grid          [][]uint8 // Grid[y][x], 1 = blocked
	Obstacles     []Trajectory
	Path          Trajectory
	Duration      float64 // Total path time
	PathFound     bool    // False when Path was synthesized at Start

	Summary *Summary // nil when the file has no log
	HWeight float64  // Heuristic weight from options (0 if absent)
}

// InBounds checks if c lies on the grid.
func (s *Scenario) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < s.Width && c.Y >= 0 && c.Y < s.Height
}

// Blocked reports whether c is a static obstacle. Cells off the grid are blocked.
func (s *Scenario) Blocked(c Cell) bool {
	if !s.InBounds(c) {
		return true
	}
	return s.Grid[c.Y][c.X] != 0
}

// BlockedCount returns the number of static obstacle cells.
func (s *Scenario) BlockedCount() int {
	n := 0
	for _, row := range s.Grid {
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

// Positions samples the agent and every obstacle at time t.
func (s *Scenario) Positions(t float64) (agent Vec, obstacles []Vec) {
	return s.Path.Sample(t), SampleAll(s.Obstacles, t)
}

// Horizon returns the latest timestamp of any trajectory.
func (s *Scenario) Horizon() float64 {
	h := s.Path.End()
	for _, o := range s.Obstacles {
		if e := o.End(); e > h {
			h = e
		}
	}
	return h
}
