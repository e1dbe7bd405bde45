package domain

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkurdziel/baseline-habit-tracker/internal/core/streaks"
)

var (
	ErrHabitNameEmpty      = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong    = errors.New("habit name is too long (max 100 chars)")
	ErrHabitDescTooLong    = errors.New("habit description is too long (max 500 chars)")
	ErrHabitInvalidUserID  = errors.New("invalid user id")
	ErrInvalidColor        = errors.New("invalid color format (must be #RRGGBB)")
	ErrInvalidFrequency    = errors.New("invalid frequency (must be daily, weekly, custom_days, or interval)")
	ErrInvalidWeekdays     = errors.New("custom_days requires a non-empty set of weekdays 0-6")
	ErrInvalidWeeklyTarget = errors.New("weekly target must be between 1 and 7")
	ErrInvalidInterval     = errors.New("interval must be at least 2 days")
	ErrHabitArchived       = errors.New("cannot update an archived habit")
)

var colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

const (
	FreqDaily      = "daily"
	FreqWeekly     = "weekly"
	FreqCustomDays = "custom_days"
	FreqInterval   = "interval"

	DefaultIcon  = "default_icon"
	DefaultColor = "#4A90D9"
	MaxNameLen   = 100
	MaxDescLen   = 500
)

type Habit struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`

	FrequencyType string `json:"frequency_type"`
	WeeklyTarget  int    `json:"weekly_target,omitempty"`
	Weekdays      []int  `json:"weekdays,omitempty"`
	IntervalDays  int    `json:"interval_days,omitempty"`

	// Denormalized streak counters, refreshed asynchronously after every
	// completion change. The stats endpoints always recompute from scratch.
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`

	Version    int        `json:"version"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
}

func normalizeWeekdays(days []int) []int {
	if len(days) == 0 {
		return nil
	}

	seen := make(map[int]bool, len(days))
	var unique []int
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			unique = append(unique, d)
		}
	}

	sort.Ints(unique)
	return unique
}

func validateSchedule(frequency string, weeklyTarget, intervalDays int, weekdays []int) error {
	switch frequency {
	case FreqDaily:
	case FreqWeekly:
		if weeklyTarget < 1 || weeklyTarget > 7 {
			return ErrInvalidWeeklyTarget
		}
	case FreqCustomDays:
		if len(weekdays) == 0 {
			return ErrInvalidWeekdays
		}
		for _, d := range weekdays {
			if d < 0 || d > 6 {
				return ErrInvalidWeekdays
			}
		}
	case FreqInterval:
		if intervalDays < 2 {
			return ErrInvalidInterval
		}
	default:
		return ErrInvalidFrequency
	}
	return nil
}

func validateDisplay(name, desc, color string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrHabitNameEmpty
	}
	if len(trimmed) > MaxNameLen {
		return "", ErrHabitNameTooLong
	}

	if len(strings.TrimSpace(desc)) > MaxDescLen {
		return "", ErrHabitDescTooLong
	}

	if color != "" && !colorRegex.MatchString(color) {
		return "", ErrInvalidColor
	}

	return trimmed, nil
}

func NewHabit(userID, name, description, color, icon, frequency string, weeklyTarget, intervalDays int, weekdays []int) (*Habit, error) {
	if userID == "" {
		return nil, ErrHabitInvalidUserID
	}

	if frequency == "" {
		frequency = FreqDaily
	}

	cleanName, err := validateDisplay(name, description, color)
	if err != nil {
		return nil, err
	}

	if err := validateSchedule(frequency, weeklyTarget, intervalDays, weekdays); err != nil {
		return nil, err
	}

	if icon == "" {
		icon = DefaultIcon
	}
	if color == "" {
		color = DefaultColor
	}

	now := time.Now().UTC()

	return &Habit{
		ID:            uuid.New().String(),
		UserID:        userID,
		Name:          cleanName,
		Description:   strings.TrimSpace(description),
		Color:         color,
		Icon:          icon,
		FrequencyType: frequency,
		WeeklyTarget:  weeklyTarget,
		Weekdays:      normalizeWeekdays(weekdays),
		IntervalDays:  intervalDays,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Update replaces the habit's display and scheduling fields. Editing the
// schedule never rewrites history: stats are recomputed against the current
// rule on every query.
func (h *Habit) Update(name, description, color, icon, frequency string, weeklyTarget, intervalDays int, weekdays []int) error {
	if h.ArchivedAt != nil {
		return ErrHabitArchived
	}

	if frequency == "" {
		frequency = h.FrequencyType
	}

	cleanName, err := validateDisplay(name, description, color)
	if err != nil {
		return err
	}

	if err := validateSchedule(frequency, weeklyTarget, intervalDays, weekdays); err != nil {
		return err
	}

	if icon == "" {
		icon = DefaultIcon
	}
	if color == "" {
		color = DefaultColor
	}

	h.Name = cleanName
	h.Description = strings.TrimSpace(description)
	h.Color = color
	h.Icon = icon
	h.FrequencyType = frequency
	h.WeeklyTarget = weeklyTarget
	h.Weekdays = normalizeWeekdays(weekdays)
	h.IntervalDays = intervalDays
	h.UpdatedAt = time.Now().UTC()

	return nil
}

func (h *Habit) Archive() {
	if h.ArchivedAt != nil {
		return
	}

	now := time.Now().UTC()
	h.ArchivedAt = &now
	h.UpdatedAt = now
}

func (h *Habit) Restore() {
	if h.ArchivedAt == nil {
		return
	}
	h.ArchivedAt = nil
	h.UpdatedAt = time.Now().UTC()
}

func (h *Habit) IsArchived() bool {
	return h.ArchivedAt != nil
}

// Schedule maps the stored frequency fields onto the engine's tagged
// variant. Unknown frequency strings fall back to daily; the constructor
// and Update guarantee that never happens for persisted habits.
func (h *Habit) Schedule() streaks.Schedule {
	switch h.FrequencyType {
	case FreqWeekly:
		return streaks.Schedule{Kind: streaks.Weekly, WeeklyTarget: h.WeeklyTarget}
	case FreqCustomDays:
		days := make([]time.Weekday, 0, len(h.Weekdays))
		for _, d := range h.Weekdays {
			days = append(days, time.Weekday(d))
		}
		return streaks.Schedule{Kind: streaks.CustomDays, Weekdays: days}
	case FreqInterval:
		return streaks.Schedule{Kind: streaks.Interval, IntervalDays: h.IntervalDays}
	default:
		return streaks.Schedule{Kind: streaks.Daily}
	}
}
