package decision

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var (
	// ErrNoPendingRequest is returned when an answer arrives while nothing is asked.
	ErrNoPendingRequest = errors.New("no value is requested")
	// ErrWrongKind is returned when an answer does not match the requested kind.
	ErrWrongKind = errors.New("it was not this type of value expected")
	// ErrOutOfRange is returned when a numeric answer falls outside the request bounds.
	ErrOutOfRange = errors.New("this value is out of range")
)

// Generator produces chance outcomes without operator involvement.
type Generator interface {
	// Bool reports whether an event with the given percentage rate happens.
	Bool(rate float64) bool
	// Int returns an integer in [lo, hi].
	Int(lo, hi int) int
	// Real returns a number in [lo, hi).
	Real(lo, hi float64) float64
}

// RandGenerator is a Generator backed by math/rand.
type RandGenerator struct {
	rng *rand.Rand
}

// NewRandGenerator creates a generator with a fixed seed.
func NewRandGenerator(seed int64) *RandGenerator {
	return &RandGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Bool succeeds with the given percent chance.
func (g *RandGenerator) Bool(rate float64) bool {
	return g.rng.Float64()*100 <= rate
}

// Int returns a uniform integer in [lo, hi].
func (g *RandGenerator) Int(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

// Real returns a uniform real in [lo, hi).
func (g *RandGenerator) Real(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// queues holds one FIFO per value kind.
type queues struct {
	bools []bool
	ints  []int
	reals []float64
}

func (q *queues) empty() bool {
	return len(q.bools) == 0 && len(q.ints) == 0 && len(q.reals) == 0
}

func (q *queues) clone() queues {
	return queues{
		bools: append([]bool(nil), q.bools...),
		ints:  append([]int(nil), q.ints...),
		reals: append([]float64(nil), q.reals...),
	}
}

// Source is the single supplier of randomness for a competition.
//
// In autonomous mode draws come from a Generator. In debug mode every draw
// is served from the replay queues; when a queue runs dry the draw records a
// pending Request and reports that no value is available. The caller then
// unwinds, the operator answers through Submit, and the caller re-runs the
// same logic from the start of the current decision point, at which point
// the earlier answers are replayed in order.
type Source struct {
	gen      Generator
	answered queues
	replay   queues
	pending  *Request
}

// NewSeeded creates an autonomous source seeded for reproducible play.
func NewSeeded(seed int64) *Source {
	return NewAutonomous(NewRandGenerator(seed))
}

// NewAutonomous creates an autonomous source driven by the given generator.
func NewAutonomous(g Generator) *Source {
	return &Source{gen: g}
}

// NewDebug creates a source that asks the operator for every value.
func NewDebug() *Source {
	return &Source{}
}

// Debug reports whether values come from the operator.
func (s *Source) Debug() bool {
	return s.gen == nil
}

// DrawBool decides an event that happens with the given percentage rate.
func (s *Source) DrawBool(rate float64) (bool, bool) {
	if !s.Debug() {
		return s.gen.Bool(rate), true
	}
	if len(s.replay.bools) == 0 {
		s.pending = &Request{Kind: KindBool}
		return false, false
	}
	v := s.replay.bools[0]
	s.replay.bools = s.replay.bools[1:]
	return v, true
}

// DrawInt picks an integer in [lo, hi].
func (s *Source) DrawInt(lo, hi int) (int, bool) {
	if !s.Debug() {
		return s.gen.Int(lo, hi), true
	}
	if len(s.replay.ints) == 0 {
		s.pending = &Request{Kind: KindInt, Low: float64(lo), High: float64(hi)}
		return 0, false
	}
	v := s.replay.ints[0]
	s.replay.ints = s.replay.ints[1:]
	return v, true
}

// DrawReal picks a number in [lo, hi).
func (s *Source) DrawReal(lo, hi float64) (float64, bool) {
	if !s.Debug() {
		return s.gen.Real(lo, hi), true
	}
	if len(s.replay.reals) == 0 {
		s.pending = &Request{Kind: KindReal, Low: lo, High: hi}
		return 0, false
	}
	v := s.replay.reals[0]
	s.replay.reals = s.replay.reals[1:]
	return v, true
}

// IsFirstExecution reports whether every answer supplied so far has been
// replayed, meaning the code now running has not run before with these
// values. State mutations are applied only when this is true.
func (s *Source) IsFirstExecution() bool {
	return s.replay.empty()
}

// Pending returns the request waiting for an answer, if any.
func (s *Source) Pending() (Request, bool) {
	if s.pending == nil {
		return Request{}, false
	}
	return *s.pending, true
}

// Submit records the operator's answer to the pending request and rewinds
// the replay queues. A rejected answer leaves the source untouched.
func (s *Source) Submit(a Answer) error {
	if s.pending == nil {
		return ErrNoPendingRequest
	}
	req := *s.pending
	if a.Kind != req.Kind {
		return fmt.Errorf("%w: want %s, got %s", ErrWrongKind, req.Kind, a.Kind)
	}

	switch a.Kind {
	case KindBool:
		s.answered.bools = append(s.answered.bools, a.Bool)
	case KindInt:
		if float64(a.Int) < req.Low || float64(a.Int) > req.High {
			return fmt.Errorf("%w: %d not in [%d, %d]", ErrOutOfRange, a.Int, int(req.Low), int(req.High))
		}
		s.answered.ints = append(s.answered.ints, a.Int)
	case KindReal:
		if math.IsNaN(a.Real) || math.IsInf(a.Real, 0) || a.Real < req.Low || a.Real >= req.High {
			return fmt.Errorf("%w: %s not in [%s, %s)", ErrOutOfRange,
				formatReal(a.Real), formatReal(req.Low), formatReal(req.High))
		}
		s.answered.reals = append(s.answered.reals, a.Real)
	}

	s.pending = nil
	s.Rewind()
	return nil
}

// Rewind refills the replay queues with every answer of the current
// decision point so its logic can run again from the beginning.
func (s *Source) Rewind() {
	s.replay = s.answered.clone()
}

// ResetDecisionPoint forgets all answers and any pending request.
// Call it once the logic that consumed them has completed.
func (s *Source) ResetDecisionPoint() {
	s.answered = queues{}
	s.replay = queues{}
	s.pending = nil
}
