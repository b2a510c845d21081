package timer

import (
	"math"
	"time"
)

const (
	Func1Label = "func1"
	Func2Label = "func2"
)

// Comparison is the result of CompareFunctions.
type Comparison[R any] struct {
	Result1 R
	Result2 R
	Time1   time.Duration
	Time2   time.Duration
	// Faster is Func1Label or Func2Label. Ties go to Func1Label.
	Faster string
	// Speedup is the slower duration divided by the faster one, +Inf when
	// the faster duration is zero.
	Speedup float64
}

// Func times a single call of fn on a fresh Stopwatch.
//
// The stopwatch is stopped only when fn returns normally; a panic in fn
// propagates with the stopwatch left running.
func Func[R any](fn func() R) (R, time.Duration) {
	s := New()
	s.start()
	r := fn()
	s.stop()
	return r, *s.elapsed
}

// TimeFunction times fn(arg).
func TimeFunction[A, R any](fn func(A) R, arg A) (R, time.Duration) {
	return Func(func() R {
		return fn(arg)
	})
}

// TimeFunctionE times fn(arg). An error from fn is returned unmodified with
// a zero duration.
func TimeFunctionE[A, R any](fn func(A) (R, error), arg A) (R, time.Duration, error) {
	s := New()
	s.start()
	r, err := fn(arg)
	if err != nil {
		return r, 0, err
	}
	s.stop()
	return r, *s.elapsed, nil
}

// CompareFunctions times fn1(arg) and fn2(arg) and reports which was faster.
func CompareFunctions[A, R any](fn1, fn2 func(A) R, arg A) *Comparison[R] {
	r1, t1 := TimeFunction(fn1, arg)
	r2, t2 := TimeFunction(fn2, arg)
	faster, speedup := compare(t1, t2)
	return &Comparison[R]{
		Result1: r1,
		Result2: r2,
		Time1:   t1,
		Time2:   t2,
		Faster:  faster,
		Speedup: speedup,
	}
}

func compare(t1, t2 time.Duration) (string, float64) {
	faster, slow, fast := Func1Label, t2, t1
	if t2 < t1 {
		faster, slow, fast = Func2Label, t1, t2
	}
	if fast == 0 {
		return faster, math.Inf(1)
	}
	return faster, float64(slow) / float64(fast)
}
