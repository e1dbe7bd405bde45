package domain

import "github.com/mkurdziel/baseline-habit-tracker/internal/core/streaks"

// HabitOverview is one row of the dashboard: identity plus the derived
// streak and rate numbers for a single habit.
type HabitOverview struct {
	HabitID        string `json:"habit_id"`
	Name           string `json:"name"`
	Color          string `json:"color"`
	Icon           string `json:"icon"`
	FrequencyType  string `json:"frequency_type"`
	CurrentStreak  int    `json:"current_streak"`
	LongestStreak  int    `json:"longest_streak"`
	CompletionRate int    `json:"completion_rate"`
	CompletedToday bool   `json:"completed_today"`
}

type Overview struct {
	Date           string          `json:"date"`
	TotalHabits    int             `json:"total_habits"`
	CompletedToday int             `json:"completed_today"`
	Habits         []HabitOverview `json:"habits"`
}

// HabitAnalytics is the full per-habit report: streaks, rate and the three
// chart histograms.
type HabitAnalytics struct {
	HabitID        string             `json:"habit_id"`
	Name           string             `json:"name"`
	Streak         streaks.Result     `json:"streak"`
	CompletionRate int                `json:"completion_rate"`
	Histograms     streaks.Histograms `json:"histograms"`
}

type Heatmap struct {
	From string               `json:"from"`
	To   string               `json:"to"`
	Days []streaks.HeatmapDay `json:"days"`
}
