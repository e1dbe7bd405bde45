// Package streaks derives streak and completion-rate statistics from a
// habit's completion history. It is a pure computation layer: callers pass
// the schedule, the completion dates and the reference "today", and get the
// same answer every time. All date arithmetic happens on UTC civil dates.
package streaks

import (
	"math"
	"sort"
	"time"
)

// Kind selects the continuity regime that governs a habit's streaks.
type Kind int

const (
	Daily Kind = iota
	Weekly
	CustomDays
	Interval
)

// Schedule describes when a habit is due. Exactly one Kind is active and
// only that Kind's parameter is read; parameter validation is the habit
// creation path's job, not this package's.
type Schedule struct {
	Kind         Kind
	WeeklyTarget int            // Weekly: completions expected per week, 1-7
	Weekdays     []time.Weekday // CustomDays: due weekdays, non-empty
	IntervalDays int            // Interval: one completion every N days, N >= 2
}

// Result holds the derived streak lengths. Longest is always >= Current.
type Result struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Day reduces a timestamp to its UTC civil date (midnight).
func Day(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// daysBetween returns a-b in whole days. Both arguments must already be
// civil dates, so the difference is always an integer day count.
func daysBetween(a, b time.Time) int {
	return int(a.Sub(b).Hours() / 24)
}

// Normalize reduces timestamps to unique UTC civil dates, newest first.
// Duplicate same-day completions collapse to one entry.
func Normalize(completions []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(completions))
	dates := make([]time.Time, 0, len(completions))

	for _, t := range completions {
		d := Day(t)
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].After(dates[j])
	})

	return dates
}

// Compute derives the current and longest streak for a completion history.
//
// Daily, Weekly and CustomDays share the calendar-day regime: two entries
// chain only when exactly one day apart. Gaps are measured in calendar days
// even for Weekly and CustomDays habits, so days on which the habit was not
// due still break the chain; this mirrors how streaks have always been
// counted here and is kept on purpose.
//
// Interval(N) relaxes the tolerance to N days, both for chaining entries
// and for deciding whether the streak is still alive today.
//
// The current streak counts only while alive: the newest completion must be
// at most tolerance days ago. A single completion is a streak of one.
func Compute(s Schedule, completions []time.Time, today time.Time) Result {
	dates := Normalize(completions)
	if len(dates) == 0 {
		return Result{}
	}

	tolerance := 1
	if s.Kind == Interval {
		tolerance = s.IntervalDays
	}

	sinceLast := daysBetween(Day(today), dates[0])
	alive := sinceLast >= 0 && sinceLast <= tolerance

	current := 0
	if alive {
		current = 1
	}

	longest, run := 1, 1
	counting := alive

	for i := 0; i < len(dates)-1; i++ {
		if daysBetween(dates[i], dates[i+1]) <= tolerance {
			run++
			if counting {
				current++
			}
		} else {
			counting = false
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return Result{Current: current, Longest: longest}
}

// CompletionRate returns the percentage of expected occurrences actually
// completed since the habit was created, as an integer in [0, 100].
//
// The numerator is the raw completion count, not the deduplicated one, and
// the result saturates at 100: duplicate catch-up entries can never push a
// habit above a perfect score.
func CompletionRate(s Schedule, completions []time.Time, createdAt, today time.Time) int {
	if len(completions) == 0 {
		return 0
	}

	created := Day(createdAt)
	ref := Day(today)

	days := daysBetween(ref, created) + 1
	if days <= 0 {
		return 0
	}

	expected := 0
	switch s.Kind {
	case Daily:
		expected = days
	case Weekly:
		weeks := (days + 6) / 7
		expected = weeks * s.WeeklyTarget
	case CustomDays:
		due := make(map[time.Weekday]bool, len(s.Weekdays))
		for _, wd := range s.Weekdays {
			due[wd] = true
		}
		for d := created; !d.After(ref); d = d.AddDate(0, 0, 1) {
			if due[d.Weekday()] {
				expected++
			}
		}
	case Interval:
		// The creation day counts as one occurrence, plus one per full
		// interval elapsed since.
		expected = days/s.IntervalDays + 1
	}

	if expected <= 0 {
		return 0
	}

	rate := 100 * float64(len(completions)) / float64(expected)
	if rate > 100 {
		rate = 100
	}

	return int(math.Round(rate))
}
