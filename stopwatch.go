package timer

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"
)

var (
	// ErrAlreadyRunning is returned by Start when the stopwatch is running.
	ErrAlreadyRunning = errors.New("timer is running, use Stop() before starting again")
	// ErrNotRunning is returned by Stop when the stopwatch is idle.
	ErrNotRunning = errors.New("timer is not running, use Start() first")
	// ErrNeverRun is returned by Elapsed before any start/stop cycle has completed.
	ErrNeverRun = errors.New("timer has not run yet, use Start() and Stop() first")
)

const notRunYet = "Timer has not run yet"

// globalStopwatch backs the package-level functions, which are not safe for
// concurrent use.
var globalStopwatch = New()

// Start stopwatch. Not safe for concurrent use.
func Start() error {
	return globalStopwatch.Start()
}

// Stop stopwatch. Not safe for concurrent use.
func Stop() error {
	return globalStopwatch.Stop()
}

// Elapsed returns the duration of the last completed cycle
func Elapsed() (time.Duration, error) {
	return globalStopwatch.Elapsed()
}

// Reset measurement result
func Reset() {
	globalStopwatch.Reset()
}

// IsRunning reports whether the stopwatch is running
func IsRunning() bool {
	return globalStopwatch.IsRunning()
}

// Measure runs fn between Start and Stop of the stopwatch
func Measure(fn func() error) error {
	return globalStopwatch.Measure(fn)
}

// Stopwatch measures the elapsed time between a Start and the matching Stop.
//
// A Stopwatch is either idle or running. It is reusable: every completed
// cycle overwrites the recorded duration, which survives until the next
// completed cycle or Reset. A Stopwatch must not be driven from more than
// one goroutine at a time. The zero value is an idle Stopwatch without an ID.
type Stopwatch struct {
	id        any
	startedAt *time.Time
	elapsed   *time.Duration

	now func() time.Time
}

// New returns a new idle Stopwatch with a generated ID
func New() *Stopwatch {
	return NewWithID(xid.New().String())
}

// NewWithID returns a new idle Stopwatch identified by id
func NewWithID(id any) *Stopwatch {
	return &Stopwatch{
		id:  id,
		now: time.Now,
	}
}

// ID returns the identifier of the stopwatch
func (s *Stopwatch) ID() any {
	return s.id
}

// Start stopwatch. It fails with ErrAlreadyRunning if the stopwatch is running.
func (s *Stopwatch) Start() error {
	if s.IsRunning() {
		return ErrAlreadyRunning
	}
	s.start()
	return nil
}

// Stop stopwatch and record the elapsed time since Start. It fails with
// ErrNotRunning if the stopwatch is idle.
func (s *Stopwatch) Stop() error {
	if !s.IsRunning() {
		return ErrNotRunning
	}
	s.stop()
	return nil
}

// Elapsed returns the duration of the last completed cycle.
func (s *Stopwatch) Elapsed() (time.Duration, error) {
	if s.elapsed == nil {
		return 0, ErrNeverRun
	}
	return *s.elapsed, nil
}

// Reset measurement result of stopwatch
func (s *Stopwatch) Reset() {
	s.startedAt = nil
	s.elapsed = nil
}

// IsRunning reports whether Start has been called without a matching Stop.
func (s *Stopwatch) IsRunning() bool {
	return s.startedAt != nil
}

// Scope starts the stopwatch and returns the matching stop, meant to be
// deferred:
//
//	stop, err := s.Scope()
//	if err != nil {
//		return err
//	}
//	defer stop()
//
// If the stopwatch is already running, Scope returns ErrAlreadyRunning and a nil stop.
func (s *Stopwatch) Scope() (stop func() error, err error) {
	if err := s.Start(); err != nil {
		return nil, err
	}
	return s.Stop, nil
}

// Measure runs fn with the stopwatch running. The stopwatch is stopped on
// every exit path of fn, including a panic, which continues to propagate.
// An error from fn is returned as is.
func (s *Stopwatch) Measure(fn func() error) (err error) {
	stop, err := s.Scope()
	if err != nil {
		return err
	}
	defer func() {
		if serr := stop(); err == nil {
			err = serr
		}
	}()
	return fn()
}

// String renders the last elapsed duration in seconds.
func (s *Stopwatch) String() string {
	if s.elapsed == nil {
		return notRunYet
	}
	return fmt.Sprintf("%.6f seconds", s.elapsed.Seconds())
}

// GoString renders the internal state for debugging.
func (s *Stopwatch) GoString() string {
	elapsed := "<nil>"
	if s.elapsed != nil {
		elapsed = s.elapsed.String()
	}
	return fmt.Sprintf("Stopwatch(id=%v, running=%t, elapsed=%s)", s.id, s.IsRunning(), elapsed)
}

func (s *Stopwatch) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		ID      any            `json:"id,omitempty"`
		Running bool           `json:"running"`
		Elapsed *time.Duration `json:"elapsed"`
	}{
		ID:      s.id,
		Running: s.IsRunning(),
		Elapsed: s.elapsed,
	})
}

// Copy returns a copy of the stopwatch.
func (s *Stopwatch) Copy() *Stopwatch {
	cp := &Stopwatch{
		id:  s.id,
		now: s.now,
	}
	if s.startedAt != nil {
		startedAt := *s.startedAt
		cp.startedAt = &startedAt
	}
	if s.elapsed != nil {
		elapsed := *s.elapsed
		cp.elapsed = &elapsed
	}
	return cp
}

func (s *Stopwatch) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func (s *Stopwatch) start() {
	start := s.clock()
	s.startedAt = &start
}

func (s *Stopwatch) stop() {
	end := s.clock()
	elapsed := end.Sub(*s.startedAt)
	// end < startedAt
	if elapsed < 0 {
		elapsed = 0
	}
	s.elapsed = &elapsed
	s.startedAt = nil
}
