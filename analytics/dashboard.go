package analytics

import (
	"context"
	"log"
	"sort"
	"time"

	"efftrack/models"
	"efftrack/storage"
)

// Assembler builds consolidated dashboards across every known team. A broken
// or unreadable team is logged and skipped; a failing directory or record
// store degrades to an all-zero dashboard. The dashboard endpoint never fails
// because of analytics alone.
type Assembler struct {
	records storage.RecordStore
	teams   storage.TeamDirectory
	now     func() time.Time
}

func NewAssembler(records storage.RecordStore, teams storage.TeamDirectory) *Assembler {
	return &Assembler{records: records, teams: teams, now: time.Now}
}

// Dashboard aggregates every team's collection into one organization-wide
// view.
func (a *Assembler) Dashboard(ctx context.Context) models.DashboardStats {
	dashboard := emptyDashboard()

	teams, err := a.teams.Load(ctx)
	if err != nil {
		log.Printf("dashboard: team directory unavailable, returning empty stats: %v", err)
		return dashboard
	}
	dashboard.TeamsCount = len(teams)
	if len(teams) == 0 {
		return dashboard
	}

	names := make([]string, 0, len(teams))
	for name := range teams {
		names = append(names, name)
	}
	sort.Strings(names)

	var combined []models.Entry
	for _, name := range names {
		rows, err := a.records.Load(ctx, name)
		if err != nil {
			log.Printf("dashboard: skipping team %q: %v", name, err)
			continue
		}
		if len(rows) == 0 {
			continue
		}
		if err := ValidateSchema(rows); err != nil {
			log.Printf("dashboard: skipping team %q: %v", name, err)
			continue
		}

		summary := Summarize(rows)
		dashboard.TeamStats = append(dashboard.TeamStats, models.TeamStats{
			TeamName:           name,
			TotalTimeSaved:     summary.TotalTimeSaved,
			TotalEntries:       summary.TotalEntries,
			AverageEfficiency:  summary.AverageEfficiency,
			AssistantUsageRate: summary.AssistantUsageRate,
			DevelopersCount:    summary.DevelopersCount,
		})
		combined = append(combined, rows...)
	}

	if len(combined) == 0 {
		return dashboard
	}

	summary := Summarize(combined)
	dashboard.TotalTimeSaved = summary.TotalTimeSaved
	dashboard.TotalEntries = summary.TotalEntries
	dashboard.AverageEfficiency = summary.AverageEfficiency
	dashboard.AssistantUsageRate = summary.AssistantUsageRate
	dashboard.DevelopersCount = summary.DevelopersCount
	dashboard.Leaderboard = Leaderboard(combined)
	dashboard.MonthlyTrends = MonthlyTrends(combined)
	dashboard.DailyTrends = DailyTrends(combined, a.now())
	dashboard.CategoryBreakdown = CategoryBreakdown(combined)
	return dashboard
}

// TeamStats aggregates a single team's collection. The team must exist in
// the directory; absent or unusable data yields zero stats, not an error.
func (a *Assembler) TeamStats(ctx context.Context, teamName string) (models.TeamStats, error) {
	stats := models.TeamStats{TeamName: teamName}

	teams, err := a.teams.Load(ctx)
	if err != nil {
		log.Printf("team stats: team directory unavailable for %q: %v", teamName, err)
		return stats, nil
	}
	if _, ok := teams[teamName]; !ok {
		return stats, storage.ErrTeamNotFound
	}

	rows, err := a.usableRows(ctx, teamName)
	if err != nil || len(rows) == 0 {
		return stats, nil
	}

	summary := Summarize(rows)
	stats.TotalTimeSaved = summary.TotalTimeSaved
	stats.TotalEntries = summary.TotalEntries
	stats.AverageEfficiency = summary.AverageEfficiency
	stats.AssistantUsageRate = summary.AssistantUsageRate
	stats.DevelopersCount = summary.DevelopersCount
	return stats, nil
}

// TeamLeaderboard ranks developers within one team, or across every team
// when teamName is empty.
func (a *Assembler) TeamLeaderboard(ctx context.Context, teamName string) ([]models.DeveloperStats, error) {
	if teamName != "" {
		teams, err := a.teams.Load(ctx)
		if err != nil {
			log.Printf("leaderboard: team directory unavailable for %q: %v", teamName, err)
			return []models.DeveloperStats{}, nil
		}
		if _, ok := teams[teamName]; !ok {
			return nil, storage.ErrTeamNotFound
		}
		rows, err := a.usableRows(ctx, teamName)
		if err != nil {
			return []models.DeveloperStats{}, nil
		}
		return Leaderboard(rows), nil
	}

	teams, err := a.teams.Load(ctx)
	if err != nil {
		log.Printf("leaderboard: team directory unavailable: %v", err)
		return []models.DeveloperStats{}, nil
	}
	names := make([]string, 0, len(teams))
	for name := range teams {
		names = append(names, name)
	}
	sort.Strings(names)

	var combined []models.Entry
	for _, name := range names {
		rows, err := a.usableRows(ctx, name)
		if err != nil {
			continue
		}
		combined = append(combined, rows...)
	}
	return Leaderboard(combined), nil
}

// usableRows loads a team's collection and applies the boundary schema check.
func (a *Assembler) usableRows(ctx context.Context, teamName string) ([]models.Entry, error) {
	rows, err := a.records.Load(ctx, teamName)
	if err != nil {
		log.Printf("analytics: skipping team %q: %v", teamName, err)
		return nil, err
	}
	if err := ValidateSchema(rows); err != nil {
		log.Printf("analytics: skipping team %q: %v", teamName, err)
		return nil, err
	}
	return rows, nil
}

func emptyDashboard() models.DashboardStats {
	return models.DashboardStats{
		TeamStats:         []models.TeamStats{},
		Leaderboard:       []models.DeveloperStats{},
		MonthlyTrends:     []models.TrendPoint{},
		DailyTrends:       []models.TrendPoint{},
		CategoryBreakdown: []models.CategorySlice{},
	}
}
