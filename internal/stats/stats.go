// Package stats folds trial outcomes into per-configuration summaries.
package stats

import "math"

// DaysPerYear converts a day count into years for reporting.
const DaysPerYear = 365

// Aggregate summarises the elapsed days of every trial of one configuration.
// The zero value is ready to use.
type Aggregate struct {
	Name       string
	Protocol   string
	Agents     int
	Trials     int
	Min        int
	Max        int
	Sum        int64
	Violations int
}

// Add folds one trial into the aggregate.
func (a *Aggregate) Add(days int, sound bool) {
	if a.Trials == 0 {
		a.Min = days
		a.Max = days
	} else {
		a.Min = min(a.Min, days)
		a.Max = max(a.Max, days)
	}
	a.Trials++
	a.Sum += int64(days)
	if !sound {
		a.Violations++
	}
}

// Merge folds b into a. Min and max span both; the identity fields of a are
// kept, so merging different configurations yields a run total.
func (a *Aggregate) Merge(b Aggregate) {
	if b.Trials == 0 {
		return
	}
	if a.Trials == 0 {
		a.Min, a.Max = b.Min, b.Max
	} else {
		a.Min = min(a.Min, b.Min)
		a.Max = max(a.Max, b.Max)
	}
	a.Trials += b.Trials
	a.Sum += b.Sum
	a.Violations += b.Violations
}

// Mean returns the mean elapsed days, or NaN when no trial was added.
func (a Aggregate) Mean() float64 {
	if a.Trials == 0 {
		return math.NaN()
	}
	return float64(a.Sum) / float64(a.Trials)
}

// MeanYears returns Mean expressed in years.
func (a Aggregate) MeanYears() float64 {
	return a.Mean() / DaysPerYear
}

// Sound reports whether no trial declared prematurely.
func (a Aggregate) Sound() bool {
	return a.Violations == 0
}
