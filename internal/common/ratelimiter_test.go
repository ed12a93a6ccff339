package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStopwatchReportsTimeout(t *testing.T) {
	s := NewStopwatch(10 * time.Millisecond)
	s.Start()

	stopped, _ := s.Stopped()
	assert.False(t, stopped)

	time.Sleep(20 * time.Millisecond)
	stopped, elapsed := s.Stopped()
	assert.True(t, stopped)
	assert.GreaterOrEqual(t, elapsed, time.Duration(0))
}

func TestRestrictionAllowsUnderTheLimit(t *testing.T) {
	restriction := Restriction{Requests: 2, Duration: time.Minute}

	history := []time.Time{time.Now()}
	analysis := restriction.Analyse(history)
	assert.True(t, analysis.Allowed)
}

func TestRestrictionBlocksAtTheLimit(t *testing.T) {
	restriction := Restriction{Requests: 2, Duration: time.Minute}

	now := time.Now()
	history := []time.Time{now.Add(-time.Second), now}
	analysis := restriction.Analyse(history)
	assert.False(t, analysis.Allowed)
	assert.Greater(t, analysis.Wait, time.Duration(0))
}

func TestRestrictionIgnoresOldRequests(t *testing.T) {
	restriction := Restriction{Requests: 2, Duration: time.Minute}

	now := time.Now()
	history := []time.Time{now.Add(-2 * time.Minute), now.Add(-90 * time.Second)}
	analysis := restriction.Analyse(history)
	assert.True(t, analysis.Allowed)
}

func TestRateLimiterRejectsNonVitalRequests(t *testing.T) {
	rl := NewRateLimiter([]Restriction{{Requests: 1, Duration: time.Minute}}, time.Minute)

	assert.True(t, rl.Allowed(false))
	assert.False(t, rl.Allowed(false))
}

func TestRateLimiterDelaysVitalRequests(t *testing.T) {
	rl := NewRateLimiter([]Restriction{{Requests: 1, Duration: 20 * time.Millisecond}}, time.Minute)

	start := time.Now()
	assert.True(t, rl.Allowed(true))
	assert.True(t, rl.Allowed(true))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}
