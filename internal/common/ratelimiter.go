package common

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Analysis struct {
	Allowed bool          // If the request is allowed
	Wait    time.Duration // The minimal time to wait before the request is allowed
}

// RateLimiter paces requests towards the platform so that the
// configured restrictions are never exceeded. Discord tolerates only
// a few reaction requests per second, and the platform punishes
// offenders with server-side rate limits
type RateLimiter struct {
	mtx                  sync.Mutex
	restrictions         []Restriction          // Restrictions to consider
	history              []time.Time            // History of requests
	duration             time.Duration          // Min duration to wait for all restrictions to be lifted
	pendingVitalRequests map[uuid.UUID]struct{} // Set of pending vital requests
	cooldown             Stopwatch              // Cooldown after a server-side rate limit
}

func NewRateLimiter(restrictions []Restriction, cooldown time.Duration) *RateLimiter {
	rl := RateLimiter{}
	rl.restrictions = append(rl.restrictions, restrictions...)
	for _, restriction := range restrictions {
		if restriction.Duration > rl.duration {
			rl.duration = restriction.Duration
		}
	}
	rl.pendingVitalRequests = map[uuid.UUID]struct{}{}
	rl.cooldown = NewStopwatch(cooldown)

	return &rl
}

// Decide if a request is allowed. If the request is not allowed
// but vital, execution will block here until it is allowed
func (rl *RateLimiter) Allowed(vital bool) bool {

	// Give this request a unique identifier
	requestid := uuid.New()
	for {
		rl.mtx.Lock()
		// Trim history first
		rl.trim()
		// Check if the restrictions allow this request
		analysis := rl.analyse()
		if analysis.Allowed {
			if vital || len(rl.pendingVitalRequests) == 0 {
				delete(rl.pendingVitalRequests, requestid)
				// Include this request in the history as it is allowed
				rl.history = append(rl.history, time.Now())
				rl.mtx.Unlock()
				return true
			}
			rl.mtx.Unlock()
			// Request is not vital and the vital queue is not empty,
			// so we have to reject the request
			log.Warn().Msg("Rejecting non vital request because the vital queue is not empty")
			return false
		}
		if !vital {
			rl.mtx.Unlock()
			log.Warn().Msg("Rejecting a non vital request because restrictions do not allow it")
			return false
		}
		// Request is vital and not allowed, so queue it
		// and sleep until the restrictions lift
		rl.pendingVitalRequests[requestid] = struct{}{}
		wait := analysis.Wait
		rl.mtx.Unlock()
		log.Debug().Msg(fmt.Sprintf("Vital request %s delayed %.2f seconds", requestid, wait.Seconds()))
		time.Sleep(wait)
	}
}

// Tell the rate limiter the platform has rate limited us server side,
// so that it backs off for the configured cooldown
func (rl *RateLimiter) ReceivedRateLimit() {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()
	rl.cooldown.Start()
}

// Trim the current history, leaving only the requests
// that are young enough to be affected by at least one restriction
func (rl *RateLimiter) trim() {
	currentTime := time.Now()
	// Find the index from which we need to keep the history.
	// Start searching at the end of the slice.
	// Times are stored in chronological order
	index := 0
	for i := len(rl.history) - 1; i >= 0; i-- {
		if currentTime.Sub(rl.history[i]) > rl.duration {
			index = i + 1
			break
		}
	}
	rl.history = rl.history[index:]
}

func (rl *RateLimiter) analyse() Analysis {

	// A running cooldown overrides every restriction
	if rl.cooldown.Running {
		if stopped, _ := rl.cooldown.Stopped(); !stopped {
			return Analysis{Allowed: false, Wait: -rl.cooldown.TimeStopped()}
		}
		rl.cooldown.Stop()
	}

	// Perform an analysis for each of the restrictions
	// and merge the results
	var wait time.Duration
	allowed := true
	for _, restriction := range rl.restrictions {
		analysis := restriction.Analyse(rl.history)
		allowed = allowed && analysis.Allowed
		if analysis.Wait > wait {
			wait = analysis.Wait
		}
	}
	return Analysis{allowed, wait}
}
