package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// ExpandRanges turns catalogue selections such as "1-3,7" into 1-based
// positions, in the order written. Items may themselves hold comma separated
// parts; empty parts are skipped. Positions above limit are rejected before
// anything is expanded.
//
// Examples:
//   - ["1-5"] → [1 2 3 4 5]
//   - ["1", "3-5", "8"] → [1 3 4 5 8]
func ExpandRanges(input []string, limit int) ([]int, error) {
	var positions []int

	for _, item := range input {
		for part := range strings.SplitSeq(item, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			lo, hi, err := parseSpan(part)
			if err != nil {
				return nil, err
			}
			if hi > limit {
				return nil, fmt.Errorf("invalid selection %q: only positions 1-%d exist", part, limit)
			}
			for p := lo; p <= hi; p++ {
				positions = append(positions, p)
			}
		}
	}

	return positions, nil
}

// parseSpan reads "n" or "lo-hi". A leading '-' is a sign, not a range.
func parseSpan(part string) (int, int, error) {
	from, to, isRange := strings.Cut(part[1:], "-")
	if !isRange || to == "" {
		n, err := parsePosition(part, "value", part)
		return n, n, err
	}
	from = part[:1] + from

	lo, err := parsePosition(part, "start value", from)
	if err != nil {
		return 0, 0, err
	}
	hi, err := parsePosition(part, "end value", to)
	if err != nil {
		return 0, 0, err
	}
	if lo > hi {
		return 0, 0, fmt.Errorf("invalid range %q: start (%d) is greater than end (%d)", part, lo, hi)
	}
	return lo, hi, nil
}

func parsePosition(part, what, s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid selection %q: %s %q is not a valid number", part, what, s)
	}
	if n < 1 {
		return 0, fmt.Errorf("invalid selection %q: positions start at 1", part)
	}
	return n, nil
}
