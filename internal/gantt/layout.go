// Package gantt turns a task list into a timeline: a window of whole weeks
// and one bar per task positioned by day offsets inside that window.
package gantt

import (
	"time"

	"github.com/thenoetrevino/tablero/internal/models"
)

const (
	day  = 24 * time.Hour
	week = 7
)

// ChartTask is a task annotated with its bar geometry
type ChartTask struct {
	Task            models.Task  `json:"task"`
	StartOffsetDays int          `json:"start_offset_days"`
	DurationDays    int          `json:"duration_days"`
	Assignee        *models.User `json:"assignee,omitempty"`
}

// LeftFraction is where the bar starts, as a fraction of the chart width
func (c ChartTask) LeftFraction(numWeeks int) float64 {
	if numWeeks <= 0 {
		return 0
	}
	return float64(c.StartOffsetDays) / float64(numWeeks*week)
}

// WidthFraction is how wide the bar is, as a fraction of the chart width.
// Renderers apply their own minimum width on top of this.
func (c ChartTask) WidthFraction(numWeeks int) float64 {
	if numWeeks <= 0 {
		return 0
	}
	return float64(c.DurationDays) / float64(numWeeks*week)
}

// Layout is the renderable timeline
type Layout struct {
	Weeks      []time.Time `json:"weeks"`
	ChartTasks []ChartTask `json:"chart_tasks"`
	StartDate  time.Time   `json:"start_date"`
	EndDate    time.Time   `json:"end_date"`
}

// Empty reports whether there is nothing to draw
func (l Layout) Empty() bool {
	return len(l.ChartTasks) == 0
}

// TotalDays is the number of day slots the weeks cover
func (l Layout) TotalDays() int {
	return len(l.Weeks) * week
}

type options struct {
	weekStart time.Weekday
}

// Option tweaks how the layout is computed
type Option func(*options)

// WithWeekStart sets the first day of the calendar week (Sunday by default)
func WithWeekStart(d time.Weekday) Option {
	return func(o *options) {
		o.weekStart = d
	}
}

// ComputeLayout builds the timeline for tasks, resolving assignees against
// users. It only looks at the tasks' own dates and never at the clock.
func ComputeLayout(tasks []models.Task, users []models.User, opts ...Option) Layout {
	cfg := options{weekStart: time.Sunday}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(tasks) == 0 {
		return Layout{Weeks: []time.Time{}, ChartTasks: []ChartTask{}}
	}

	minDate, maxDate := dateRange(tasks)

	startDate := StartOfWeek(minDate, cfg.weekStart)
	endDate := maxDate.AddDate(0, 0, week)

	numWeeks := ceilDiv(DaysBetween(startDate, endDate), week)
	weeks := make([]time.Time, 0, numWeeks)
	for i := 0; i < numWeeks; i++ {
		weeks = append(weeks, startDate.AddDate(0, 0, i*week))
	}

	chartTasks := make([]ChartTask, 0, len(tasks))
	for _, task := range tasks {
		chartTasks = append(chartTasks, ChartTask{
			Task:            task,
			StartOffsetDays: max(0, DaysBetween(startDate, task.CreatedAt)),
			DurationDays:    max(1, DaysBetween(task.CreatedAt, task.DueDate)+1),
			Assignee:        models.FindUser(users, task.AssigneeID),
		})
	}

	return Layout{
		Weeks:      weeks,
		ChartTasks: chartTasks,
		StartDate:  startDate,
		EndDate:    endDate,
	}
}

// dateRange returns the earliest and latest of every start and due date
func dateRange(tasks []models.Task) (time.Time, time.Time) {
	minDate, maxDate := tasks[0].CreatedAt, tasks[0].CreatedAt
	for _, task := range tasks {
		for _, ts := range [2]time.Time{task.CreatedAt, task.DueDate} {
			if ts.Before(minDate) {
				minDate = ts
			}
			if ts.After(maxDate) {
				maxDate = ts
			}
		}
	}
	return minDate, maxDate
}

// StartOfWeek returns midnight of the first day of the week containing t,
// in t's location
func StartOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	back := (int(midnight.Weekday()) - int(weekStart) + week) % week
	return midnight.AddDate(0, 0, -back)
}

// DaysBetween counts whole days from a to b on the calendar of a's
// location, truncated toward zero: a day is complete once b's clock time
// reaches a's. It is negative when b is before a. In a fixed-offset zone
// this equals the number of whole 24h periods; across a DST change the
// shortened or lengthened day still counts as one.
func DaysBetween(a, b time.Time) int {
	b = b.In(a.Location())
	days := civilDay(b) - civilDay(a)
	switch ca, cb := clock(a), clock(b); {
	case days > 0 && cb < ca:
		days--
	case days < 0 && cb > ca:
		days++
	}
	return days
}

// civilDay numbers t's calendar date, ignoring its location's offset
func civilDay(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / int64(day/time.Second))
}

// clock is the wall-clock time of day of t
func clock(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second + time.Duration(t.Nanosecond())
}

func ceilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n + d - 1) / d
}
