package domain

// DailySummary is computed on demand from the task and session collections
// plus the caller-supplied "now". It owns no state.
type DailySummary struct {
	TasksCompletedToday int    `json:"tasksCompletedToday"`
	TotalTasksToday     int    `json:"totalTasksToday"`
	SessionsToday       int    `json:"sessionsToday"`
	TotalMinutesToday   int    `json:"totalMinutesToday"`
	UpcomingDeadlines   []Task `json:"upcomingDeadlines"`
}

// ProjectActivity names the project with the highest session count in a window.
type ProjectActivity struct {
	Name     Project `json:"name"`
	Sessions int     `json:"sessions"`
}

// WeeklySummary covers the trailing seven days.
// CompletionRate is a whole percentage in [0,100]; it is 0, not undefined,
// when no tasks were created in the window.
type WeeklySummary struct {
	TotalMinutesLastWeek   int              `json:"totalMinutesLastWeek"`
	TotalSessionsLastWeek  int              `json:"totalSessionsLastWeek"`
	TasksCreatedLastWeek   int              `json:"tasksCreatedLastWeek"`
	TasksCompletedLastWeek int              `json:"tasksCompletedLastWeek"`
	CompletionRate         int              `json:"completionRate"`
	MostActiveProject      *ProjectActivity `json:"mostActiveProject"`
	AverageRating          *float64         `json:"averageRating"`
}

// WeeklyInsights extends the weekly summary with streak and heuristic output.
type WeeklyInsights struct {
	TotalFocusMinutes  int      `json:"totalFocusMinutes"`
	TotalFocusHours    float64  `json:"totalFocusHours"`
	SessionsCount      int      `json:"sessionsCount"`
	AvgSessionDuration int      `json:"avgSessionDuration"`
	TasksCreated       int      `json:"tasksCreated"`
	TasksCompleted     int      `json:"tasksCompleted"`
	CompletionRate     int      `json:"completionRate"`
	MostActiveProject  string   `json:"mostActiveProject,omitempty"`
	DaysWithFocus      int      `json:"daysWithFocus"`
	Streak             int      `json:"streak"`
	Suggestions        []string `json:"suggestions"`
}
