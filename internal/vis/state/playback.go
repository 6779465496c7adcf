package state

import "time"

// Speed bounds and the factor applied by one speed-up or slow-down click.
const (
	MinSpeed    = 0.1
	MaxSpeed    = 10
	SpeedFactor = 1.5
)

// PlaybackState manages scenario playback timing.
type PlaybackState struct {
	CurrentTime float64 // Current playback time in scenario units
	MaxTime     float64 // Path duration plus the tail
	Speed       float64 // Playback speed multiplier (1.0 = real-time)
	Playing     bool
	Loop        bool // Restart from 0 when the end is reached
	lastUpdate  time.Time
}

// NewPlaybackState creates a paused playback at time 0.
func NewPlaybackState(maxTime, speed float64, loop bool) *PlaybackState {
	p := &PlaybackState{
		MaxTime:    maxTime,
		Speed:      1,
		Loop:       loop,
		lastUpdate: time.Now(),
	}
	p.SetSpeed(speed)
	return p
}

// TogglePlay toggles playback on/off.
func (p *PlaybackState) TogglePlay() {
	if p.Playing {
		p.Pause()
		return
	}
	if p.CurrentTime >= p.MaxTime {
		p.CurrentTime = 0
	}
	p.Play()
}

// Play starts playback.
func (p *PlaybackState) Play() {
	p.Playing = true
	p.lastUpdate = time.Now()
}

// Pause stops playback.
func (p *PlaybackState) Pause() {
	p.Playing = false
}

// Reset rewinds to the beginning and pauses.
func (p *PlaybackState) Reset() {
	p.CurrentTime = 0
	p.Playing = false
}

// ToggleLoop switches looping on/off.
func (p *PlaybackState) ToggleLoop() {
	p.Loop = !p.Loop
}

// Advance advances playback by the wall time elapsed since the last update.
func (p *PlaybackState) Advance() {
	now := time.Now()
	elapsed := now.Sub(p.lastUpdate).Seconds()
	p.lastUpdate = now
	p.AdvanceBy(elapsed)
}

// AdvanceBy advances playback by elapsed wall seconds scaled by Speed.
func (p *PlaybackState) AdvanceBy(elapsed float64) {
	if !p.Playing {
		return
	}

	p.CurrentTime += elapsed * p.Speed
	if p.CurrentTime < p.MaxTime {
		return
	}

	if p.Loop && p.MaxTime > 0 {
		for p.CurrentTime >= p.MaxTime {
			p.CurrentTime -= p.MaxTime
		}
		return
	}
	p.CurrentTime = p.MaxTime
	p.Playing = false
}

// SetTime sets the current playback time, clamped to [0, MaxTime].
func (p *PlaybackState) SetTime(t float64) {
	if t < 0 {
		t = 0
	}
	if t > p.MaxTime {
		t = p.MaxTime
	}
	p.CurrentTime = t
}

// StepForward pauses and advances by 1% of the timeline.
func (p *PlaybackState) StepForward() {
	p.Pause()
	p.SetTime(p.CurrentTime + p.step())
}

// StepBack pauses and goes back by 1% of the timeline.
func (p *PlaybackState) StepBack() {
	p.Pause()
	p.SetTime(p.CurrentTime - p.step())
}

func (p *PlaybackState) step() float64 {
	return max(p.MaxTime/100, 0.1)
}

// SetSpeed sets the playback speed multiplier, clamped to [MinSpeed, MaxSpeed].
func (p *PlaybackState) SetSpeed(speed float64) {
	p.Speed = min(max(speed, MinSpeed), MaxSpeed)
}

// SpeedUp multiplies the speed by SpeedFactor.
func (p *PlaybackState) SpeedUp() { p.SetSpeed(p.Speed * SpeedFactor) }

// SlowDown divides the speed by SpeedFactor.
func (p *PlaybackState) SlowDown() { p.SetSpeed(p.Speed / SpeedFactor) }

// Progress returns current progress as 0-1.
func (p *PlaybackState) Progress() float64 {
	if p.MaxTime <= 0 {
		return 0
	}
	return p.CurrentTime / p.MaxTime
}
