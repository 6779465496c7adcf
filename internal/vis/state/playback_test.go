package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvanceStopsAtEnd(t *testing.T) {
	p := NewPlaybackState(10, 1, false)
	p.Play()

	p.AdvanceBy(4)
	assert.Equal(t, 4.0, p.CurrentTime)

	p.AdvanceBy(20)
	assert.Equal(t, 10.0, p.CurrentTime)
	assert.False(t, p.Playing)
	assert.Equal(t, 1.0, p.Progress())

	p.TogglePlay()
	assert.True(t, p.Playing)
	assert.Equal(t, 0.0, p.CurrentTime, "replay from the start")
}

func TestAdvanceLoops(t *testing.T) {
	p := NewPlaybackState(10, 2, true)
	p.Play()

	p.AdvanceBy(6)
	assert.Equal(t, 2.0, p.CurrentTime)
	assert.True(t, p.Playing)

	p.ToggleLoop()
	p.AdvanceBy(100)
	assert.Equal(t, 10.0, p.CurrentTime)
	assert.False(t, p.Playing)
}

func TestAdvancePaused(t *testing.T) {
	p := NewPlaybackState(10, 1, true)
	p.AdvanceBy(5)
	assert.Equal(t, 0.0, p.CurrentTime)
}

func TestSpeedClamp(t *testing.T) {
	p := NewPlaybackState(10, 50, true)
	assert.Equal(t, float64(MaxSpeed), p.Speed)

	p.SetSpeed(0.01)
	assert.Equal(t, float64(MinSpeed), p.Speed)

	p.SetSpeed(1)
	p.SpeedUp()
	assert.InDelta(t, 1.5, p.Speed, 1e-12)
	p.SlowDown()
	p.SlowDown()
	assert.InDelta(t, 1/1.5, p.Speed, 1e-12)
}

func TestStepAndSeek(t *testing.T) {
	p := NewPlaybackState(200, 1, true)
	p.Play()

	p.StepForward()
	assert.False(t, p.Playing)
	assert.Equal(t, 2.0, p.CurrentTime)

	p.StepBack()
	p.StepBack()
	assert.Equal(t, 0.0, p.CurrentTime)

	p.SetTime(500)
	assert.Equal(t, 200.0, p.CurrentTime)

	short := NewPlaybackState(1, 1, true)
	short.StepForward()
	assert.Equal(t, 0.1, short.CurrentTime, "minimum step")

	p.Reset()
	assert.Equal(t, 0.0, p.CurrentTime)
	assert.False(t, p.Playing)
}
