package sim

import (
	"errors"
	"math/rand/v2"
)

// ErrScheduleExhausted is returned by a Scripted scheduler that has no
// entries left.
var ErrScheduleExhausted = errors.New("schedule exhausted")

// Scheduler picks the agent that visits on a given day.
type Scheduler interface {
	Next(day int) (int, error)
}

// Uniform picks agents uniformly at random with replacement.
type Uniform struct {
	n   int
	rng *rand.Rand
}

// NewUniform returns a uniform scheduler over n agents. The pair
// (seed, stream) fully determines the sequence.
func NewUniform(n int, seed, stream uint64) *Uniform {
	return &Uniform{
		n:   n,
		rng: rand.New(rand.NewPCG(seed, stream)),
	}
}

// Next returns a uniformly random agent id in [0, n).
func (u *Uniform) Next(int) (int, error) {
	return u.rng.IntN(u.n), nil
}

// Scripted replays a fixed sequence of agent ids.
type Scripted struct {
	ids []int
	pos int
}

// NewScripted returns a scheduler that yields ids in order.
func NewScripted(ids ...int) *Scripted {
	return &Scripted{ids: ids}
}

// Next returns the next scripted id or ErrScheduleExhausted.
func (s *Scripted) Next(int) (int, error) {
	if s.pos >= len(s.ids) {
		return 0, ErrScheduleExhausted
	}
	id := s.ids[s.pos]
	s.pos++
	return id, nil
}
