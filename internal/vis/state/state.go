// Package state manages the visualization state.
package state

import (
	"math"

	"github.com/elektrokombinacija/gridpath/internal/check"
	"github.com/elektrokombinacija/gridpath/internal/config"
	"github.com/elektrokombinacija/gridpath/internal/core"
)

// CollisionWindow is how long around its time a collision stays highlighted.
const CollisionWindow = 0.5

// State holds all visualization state.
type State struct {
	Scenario   *core.Scenario
	Config     config.Render
	Playback   *PlaybackState
	Collisions []check.Collision
}

// NewState prepares playback of sc. Collisions are computed once with the
// default body model.
func NewState(sc *core.Scenario, cfg config.Render) *State {
	return &State{
		Scenario:   sc,
		Config:     cfg,
		Playback:   NewPlaybackState(sc.Duration+cfg.Tail, cfg.Window.Speed, cfg.Window.Loop),
		Collisions: check.Scenario(sc, check.DefaultOptions()).Collisions,
	}
}

// Positions samples the agent and every obstacle at the playback time.
func (s *State) Positions() (agent core.Vec, obstacles []core.Vec) {
	return s.Scenario.Positions(s.Playback.CurrentTime)
}

// Trail returns the waypoints the agent has passed by the playback time,
// ending at its current position.
func (s *State) Trail() []core.Vec {
	path := s.Scenario.Path
	if len(path) == 0 {
		return nil
	}

	now := s.Playback.CurrentTime
	var trail []core.Vec
	for _, p := range path {
		if p.T > now {
			break
		}
		trail = append(trail, core.Vec{X: float64(p.X), Y: float64(p.Y)})
	}
	return append(trail, path.Sample(now))
}

// ActiveCollisions returns collisions within CollisionWindow of the
// playback time.
func (s *State) ActiveCollisions() []check.Collision {
	var out []check.Collision
	for _, c := range s.Collisions {
		if math.Abs(c.Time-s.Playback.CurrentTime) <= CollisionWindow {
			out = append(out, c)
		}
	}
	return out
}
