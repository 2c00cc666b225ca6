package backend

import "context"

// Trends holds week-over-week percentage changes.
type Trends struct {
	Sessions float64 `json:"sessions"`
	Quizzes  float64 `json:"quizzes"`
	Score    float64 `json:"score"`
}

// DashboardStats is the study-activity summary the backend aggregates from
// saved quizzes and chat logs.
type DashboardStats struct {
	TotalStudySessions int     `json:"total_study_sessions"`
	QuizzesCompleted   int     `json:"quizzes_completed"`
	AverageScore       float64 `json:"average_score"`
	StudyStreak        int     `json:"study_streak"`
	Trends             Trends  `json:"trends"`
}

// DashboardStats fetches the activity summary for the dashboard view.
func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.get(ctx, "/dashboard-stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
