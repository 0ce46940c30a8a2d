package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kurumrehberi/institution-directory/backend/internal/geo"
	"github.com/kurumrehberi/institution-directory/backend/internal/search"
	"github.com/kurumrehberi/institution-directory/backend/pkg/debounce"
	"github.com/rs/zerolog/log"
)

// SessionResult is one pushed evaluation. Generation increases with every
// accepted update; consumers drop results whose generation is older than
// the newest one they have seen.
type SessionResult struct {
	Generation uint64
	Result     *search.Result
	Criteria   *search.Criteria
	Err        error
}

// SearchSession drives one interactive client over the directory service.
// Keystroke-level criteria updates are debounced and map-viewport updates
// throttled, so rapid successive triggers collapse into a single evaluation
// of the latest state. Evaluation itself is synchronous and side-effect-free;
// superseded updates need no cancellation.
type SearchSession struct {
	svc       *DirectoryService
	debouncer *debounce.Debouncer
	throttler *debounce.Throttler
	onResult  func(SessionResult)

	generation atomic.Uint64

	mu    sync.Mutex
	input search.Input
	prev  *search.Criteria
}

// NewSession creates a session over the service using its configured
// debounce and throttle intervals
func (s *DirectoryService) NewSession(onResult func(SessionResult)) *SearchSession {
	debounceInterval := s.tuning.DebounceInterval
	if debounceInterval <= 0 {
		debounceInterval = search.DefaultDebounceInterval
	}
	throttleInterval := s.tuning.ThrottleInterval
	if throttleInterval <= 0 {
		throttleInterval = search.DefaultThrottleInterval
	}
	return NewSearchSession(s, debounceInterval, throttleInterval, onResult)
}

// NewSearchSession creates a session pushing evaluations to onResult.
// debounceInterval applies to criteria changes, throttleInterval to
// viewport changes.
func NewSearchSession(svc *DirectoryService, debounceInterval, throttleInterval time.Duration, onResult func(SessionResult)) *SearchSession {
	return &SearchSession{
		svc:       svc,
		debouncer: debounce.NewDebouncer(debounceInterval),
		throttler: debounce.NewThrottler(throttleInterval),
		onResult:  onResult,
	}
}

// UpdateCriteria records a criteria change and schedules a debounced
// evaluation of the latest state
func (s *SearchSession) UpdateCriteria(in search.Input) {
	s.mu.Lock()
	s.input = in
	s.mu.Unlock()

	gen := s.generation.Add(1)
	s.debouncer.Trigger(func() { s.evaluate(gen) })
}

// UpdateViewport records a new map viewport and schedules a throttled
// evaluation, so intermediate pan/zoom frames do not each re-query
func (s *SearchSession) UpdateViewport(box geo.BoundingBox) {
	s.mu.Lock()
	s.input.BoundingBox = &box
	s.input.OriginRadius = nil
	s.input.NearMe = false
	s.mu.Unlock()

	gen := s.generation.Add(1)
	s.throttler.Trigger(func() { s.evaluate(gen) })
}

// Close stops any pending evaluations
func (s *SearchSession) Close() {
	s.debouncer.Stop()
	s.throttler.Stop()
}

func (s *SearchSession) evaluate(gen uint64) {
	// a newer update superseded this one before it fired
	if gen < s.generation.Load() {
		return
	}

	s.mu.Lock()
	in := s.input
	prev := s.prev
	s.mu.Unlock()

	result, crit, err := s.svc.Query(context.Background(), in, prev)
	if err != nil {
		log.Debug().Err(err).Msg("session evaluation failed")
		s.onResult(SessionResult{Generation: gen, Err: err})
		return
	}

	s.mu.Lock()
	s.prev = crit
	s.mu.Unlock()

	s.onResult(SessionResult{Generation: gen, Result: result, Criteria: crit})
}
