package models

// TeamStats is one team's aggregate slice of the dashboard.
type TeamStats struct {
	TeamName           string  `json:"team_name"`
	TotalTimeSaved     float64 `json:"total_time_saved"`
	TotalEntries       int     `json:"total_entries"`
	AverageEfficiency  float64 `json:"average_efficiency"`
	AssistantUsageRate float64 `json:"assistant_usage_rate"`
	DevelopersCount    int     `json:"developers_count"`
}

// DeveloperStats is one leaderboard row.
type DeveloperStats struct {
	DeveloperName      string  `json:"developer_name"`
	TotalTimeSaved     float64 `json:"total_time_saved"`
	TotalEntries       int     `json:"total_entries"`
	EfficiencyRate     float64 `json:"efficiency_rate"`
	AssistantUsageRate float64 `json:"assistant_usage_rate"`
	AvgHoursPerEntry   float64 `json:"avg_hours_per_entry"`
}

// TrendPoint is a monthly or daily aggregation bucket. Bucket holds
// "2006-01" for monthly points and "2006-01-02" for daily points.
type TrendPoint struct {
	Bucket             string  `json:"bucket"`
	TimeSaved          float64 `json:"time_saved"`
	Entries            int     `json:"entries"`
	EfficiencyRate     float64 `json:"efficiency_rate"`
	AssistantUsageRate float64 `json:"assistant_usage_rate"`
}

// CategorySlice is one category's share of the total time saved.
type CategorySlice struct {
	Category   string  `json:"category"`
	TimeSaved  float64 `json:"time_saved"`
	Entries    int     `json:"entries"`
	Percentage float64 `json:"percentage"`
}

// DashboardStats is the consolidated organization-wide dashboard.
type DashboardStats struct {
	TotalTimeSaved     float64          `json:"total_time_saved"`
	TotalEntries       int              `json:"total_entries"`
	AverageEfficiency  float64          `json:"average_efficiency"`
	AssistantUsageRate float64          `json:"assistant_usage_rate"`
	TeamsCount         int              `json:"teams_count"`
	DevelopersCount    int              `json:"developers_count"`
	TeamStats          []TeamStats      `json:"team_stats"`
	Leaderboard        []DeveloperStats `json:"leaderboard"`
	MonthlyTrends      []TrendPoint     `json:"monthly_trends"`
	DailyTrends        []TrendPoint     `json:"daily_trends"`
	CategoryBreakdown  []CategorySlice  `json:"category_breakdown"`
}

// EngineerStats is the per-developer dashboard returned to engineers.
type EngineerStats struct {
	DeveloperName     string  `json:"developer_name"`
	TeamName          string  `json:"team_name"`
	TotalTimeSaved    float64 `json:"total_time_saved"`
	TotalEntries      int     `json:"total_entries"`
	AverageEfficiency float64 `json:"average_efficiency"`
	RecentEntries     []Entry `json:"recent_entries"`
}
