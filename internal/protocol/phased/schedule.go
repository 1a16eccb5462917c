package phased

import (
	"fmt"
	"sort"
)

// Phase is a contiguous span of days during which the light has one fixed
// meaning. Index is -1 for the days before the first phase.
type Phase struct {
	Index  int
	Start  int
	Length int
}

// End returns the first day after the phase.
func (p Phase) End() int {
	return p.Start + p.Length
}

// Schedule lays phases end to end starting at the offset day: first the tuned
// lengths in Prefix, then the lengths in Cycle repeated forever. Phases are
// computed on demand, so there is no horizon beyond which the schedule
// changes behaviour.
type Schedule struct {
	offset    int
	prefix    []int
	starts    []int // starts[i] is the first day of prefix phase i
	prefixEnd int
	cycle     []int
	cycleLen  int
}

// NewSchedule builds a schedule. Every length must be positive and the
// cycle must not be empty.
func NewSchedule(offset int, prefix, cycle []int) (*Schedule, error) {
	if offset < 0 {
		return nil, fmt.Errorf("schedule offset must not be negative, got %d", offset)
	}
	if len(cycle) == 0 {
		return nil, fmt.Errorf("schedule needs at least one steady-state phase length")
	}

	s := &Schedule{
		offset: offset,
		prefix: append([]int(nil), prefix...),
		starts: make([]int, len(prefix)),
		cycle:  append([]int(nil), cycle...),
	}

	day := offset
	for i, length := range prefix {
		if length <= 0 {
			return nil, fmt.Errorf("phase %d has non-positive length %d", i, length)
		}
		s.starts[i] = day
		day += length
	}
	s.prefixEnd = day

	for i, length := range cycle {
		if length <= 0 {
			return nil, fmt.Errorf("steady-state phase %d has non-positive length %d", i, length)
		}
		s.cycleLen += length
	}
	return s, nil
}

// At returns the phase containing day.
func (s *Schedule) At(day int) Phase {
	if day < s.offset {
		return Phase{Index: -1, Start: 0, Length: s.offset}
	}

	if day < s.prefixEnd {
		i := sort.Search(len(s.starts), func(i int) bool { return s.starts[i] > day }) - 1
		return Phase{Index: i, Start: s.starts[i], Length: s.prefix[i]}
	}

	rel := day - s.prefixEnd
	rounds := rel / s.cycleLen
	start := s.prefixEnd + rounds*s.cycleLen
	index := len(s.prefix) + rounds*len(s.cycle)
	for _, length := range s.cycle {
		ph := Phase{Index: index, Start: start, Length: length}
		if day < ph.End() {
			return ph
		}
		start = ph.End()
		index++
	}
	// unreachable: the cycle covers cycleLen days
	panic("phased: schedule cycle does not cover day")
}
