package streaks

import (
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// WeekBucket counts completions inside one 7-day window, labeled by the
// window's start date.
type WeekBucket struct {
	WeekStart string `json:"week_start"`
	Count     int    `json:"count"`
}

// MonthBucket counts completions inside one calendar month, labeled YYYY-MM.
type MonthBucket struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// Histograms bundles the three chart reductions over a completion history.
// ByWeekday is indexed 0 (Sunday) through 6 (Saturday).
type Histograms struct {
	ByWeekday [7]int        `json:"by_weekday"`
	ByWeek    []WeekBucket  `json:"by_week"`
	ByMonth   []MonthBucket `json:"by_month"`
}

// BuildHistograms reduces a completion history into the per-weekday,
// last-12-weeks and last-12-months histograms. Every completion counts,
// duplicates included; the week and month windows only cover the trailing
// twelve periods ending today.
//
// Week windows are anchored so that the most recent one starts on the
// Sunday of the current week and therefore always contains today.
func BuildHistograms(completions []time.Time, today time.Time) Histograms {
	ref := Day(today)

	var h Histograms
	h.ByWeek = make([]WeekBucket, 0, 12)
	h.ByMonth = make([]MonthBucket, 0, 12)

	dates := make([]time.Time, 0, len(completions))
	for _, t := range completions {
		d := Day(t)
		dates = append(dates, d)
		h.ByWeekday[int(d.Weekday())]++
	}

	for i := 11; i >= 0; i-- {
		start := ref.AddDate(0, 0, -(i*7 + int(ref.Weekday())))
		end := start.AddDate(0, 0, 6)

		count := 0
		for _, d := range dates {
			if !d.Before(start) && !d.After(end) {
				count++
			}
		}

		h.ByWeek = append(h.ByWeek, WeekBucket{
			WeekStart: start.Format(dateLayout),
			Count:     count,
		})
	}

	// Anchor month stepping on the first of the month so AddDate never
	// spills into a neighboring month on short months.
	anchor := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)

	for i := 11; i >= 0; i-- {
		m := anchor.AddDate(0, -i, 0)

		count := 0
		for _, d := range dates {
			if d.Year() == m.Year() && d.Month() == m.Month() {
				count++
			}
		}

		h.ByMonth = append(h.ByMonth, MonthBucket{
			Month: m.Format("2006-01"),
			Count: count,
		})
	}

	return h
}

// HabitSeries pairs a habit's display identity with its completion dates,
// ready for cross-habit calendar aggregation.
type HabitSeries struct {
	HabitID string
	Name    string
	Color   string
	Dates   []time.Time
}

// HeatmapHabit identifies one habit completed on a heatmap day.
type HeatmapHabit struct {
	HabitID string `json:"habit_id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
}

// HeatmapDay reports how many habits were completed on one calendar date,
// and which ones.
type HeatmapDay struct {
	Date   string         `json:"date"`
	Count  int            `json:"count"`
	Habits []HeatmapHabit `json:"habits"`
}

// CalendarHeatmap groups completions by civil date across habits, limited
// to [from, to] inclusive. Dates without completions are omitted and each
// habit appears at most once per date. Days come back oldest first.
func CalendarHeatmap(series []HabitSeries, from, to time.Time) []HeatmapDay {
	lo, hi := Day(from), Day(to)

	byDate := make(map[string][]HeatmapHabit)
	for _, s := range series {
		marked := make(map[string]bool, len(s.Dates))
		for _, t := range s.Dates {
			d := Day(t)
			if d.Before(lo) || d.After(hi) {
				continue
			}
			key := d.Format(dateLayout)
			if marked[key] {
				continue
			}
			marked[key] = true
			byDate[key] = append(byDate[key], HeatmapHabit{
				HabitID: s.HabitID,
				Name:    s.Name,
				Color:   s.Color,
			})
		}
	}

	days := make([]HeatmapDay, 0, len(byDate))
	for date, habits := range byDate {
		days = append(days, HeatmapDay{Date: date, Count: len(habits), Habits: habits})
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})

	return days
}
