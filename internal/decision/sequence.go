package decision

// Sequence is a Generator that hands out predetermined values in order.
// It reproduces a recorded competition without a seed. Once a queue is
// exhausted Bool reports whether the rate is certain and Int and Real
// return their lower bound.
type Sequence struct {
	Bools []bool
	Ints  []int
	Reals []float64
}

// Bool returns the next scripted boolean.
func (s *Sequence) Bool(rate float64) bool {
	if len(s.Bools) == 0 {
		return rate >= 100
	}
	v := s.Bools[0]
	s.Bools = s.Bools[1:]
	return v
}

// Int returns the next scripted integer. The bounds are not checked.
func (s *Sequence) Int(lo, hi int) int {
	if len(s.Ints) == 0 {
		return lo
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	return v
}

// Real returns the next scripted real.
func (s *Sequence) Real(lo, hi float64) float64 {
	if len(s.Reals) == 0 {
		return lo
	}
	v := s.Reals[0]
	s.Reals = s.Reals[1:]
	return v
}
