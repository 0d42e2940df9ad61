package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"efftrack/models"
	"efftrack/storage"
)

func seedTeams(t *testing.T, dir *storage.MemoryTeamDirectory, names ...string) {
	t.Helper()
	teams := make(map[string]models.Team)
	for _, name := range names {
		teams[name] = models.Team{Name: name}
	}
	require.NoError(t, dir.Save(context.Background(), teams))
}

func TestDashboardZeroTeams(t *testing.T) {
	a := NewAssembler(storage.NewMemoryRecordStore(), storage.NewMemoryTeamDirectory())

	d := a.Dashboard(context.Background())
	assert.Equal(t, 0.0, d.TotalTimeSaved)
	assert.Equal(t, 0, d.TotalEntries)
	assert.Equal(t, 0, d.TeamsCount)
	assert.Empty(t, d.TeamStats)
	assert.Empty(t, d.Leaderboard)
	assert.Empty(t, d.MonthlyTrends)
	assert.Empty(t, d.CategoryBreakdown)
}

func TestDashboardDirectoryFailure(t *testing.T) {
	dir := storage.NewMemoryTeamDirectory()
	dir.LoadErr = errors.New("store unreachable")
	a := NewAssembler(storage.NewMemoryRecordStore(), dir)

	d := a.Dashboard(context.Background())
	assert.Equal(t, 0, d.TeamsCount)
	assert.NotNil(t, d.TeamStats)
	assert.Empty(t, d.TeamStats)
}

func TestDashboardCombinesTeams(t *testing.T) {
	ctx := context.Background()
	records := storage.NewMemoryRecordStore()
	dir := storage.NewMemoryTeamDirectory()
	seedTeams(t, dir, "backend", "frontend")

	require.NoError(t, records.Save(ctx, "backend", []models.Entry{
		row("alice", 10, 5),
		row("bob", 10, 2, withAssistant("No")),
	}))
	require.NoError(t, records.Save(ctx, "frontend", []models.Entry{
		row("carol", 20, 10),
	}))

	a := NewAssembler(records, dir)
	d := a.Dashboard(ctx)

	assert.Equal(t, 2, d.TeamsCount)
	assert.Equal(t, 3, d.TotalEntries)
	assert.InDelta(t, 17.0, d.TotalTimeSaved, 1e-9)
	// (5+2+10)/(10+10+20)
	assert.InDelta(t, 42.5, d.AverageEfficiency, 1e-9)
	assert.Equal(t, 3, d.DevelopersCount)
	require.Len(t, d.TeamStats, 2)
	assert.Equal(t, "backend", d.TeamStats[0].TeamName)
	assert.Equal(t, "frontend", d.TeamStats[1].TeamName)
	require.NotEmpty(t, d.Leaderboard)
	assert.Equal(t, "carol", d.Leaderboard[0].DeveloperName)
}

func TestDashboardSkipsUnusableTeam(t *testing.T) {
	ctx := context.Background()
	records := storage.NewMemoryRecordStore()
	dir := storage.NewMemoryTeamDirectory()
	seedTeams(t, dir, "good", "broken")

	require.NoError(t, records.Save(ctx, "good", []models.Entry{row("alice", 10, 5)}))
	// No row in this collection carries a developer name.
	require.NoError(t, records.Save(ctx, "broken", []models.Entry{
		{EfficiencyGainedHours: fptr(99)},
	}))

	a := NewAssembler(records, dir)
	d := a.Dashboard(ctx)

	require.Len(t, d.TeamStats, 1)
	assert.Equal(t, "good", d.TeamStats[0].TeamName)
	assert.InDelta(t, 5.0, d.TotalTimeSaved, 1e-9)
	assert.Equal(t, 1, d.TotalEntries)
	assert.Equal(t, 2, d.TeamsCount)
}

func TestDashboardTrendsFromTimestamps(t *testing.T) {
	ctx := context.Background()
	records := storage.NewMemoryRecordStore()
	dir := storage.NewMemoryTeamDirectory()
	seedTeams(t, dir, "backend")

	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	require.NoError(t, records.Save(ctx, "backend", []models.Entry{
		row("alice", 10, 5, withCreatedAt(time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC))),
		row("alice", 10, 3, withCreatedAt(now.AddDate(0, 0, -2))),
	}))

	a := NewAssembler(records, dir)
	a.now = func() time.Time { return now }

	d := a.Dashboard(ctx)
	require.Len(t, d.MonthlyTrends, 2)
	assert.Equal(t, "2026-06", d.MonthlyTrends[0].Bucket)
	assert.Equal(t, "2026-08", d.MonthlyTrends[1].Bucket)
	require.Len(t, d.DailyTrends, 1)
	assert.Equal(t, "2026-08-29", d.DailyTrends[0].Bucket)
}

func TestTeamStatsNotFound(t *testing.T) {
	dir := storage.NewMemoryTeamDirectory()
	seedTeams(t, dir, "backend")
	a := NewAssembler(storage.NewMemoryRecordStore(), dir)

	_, err := a.TeamStats(context.Background(), "nope")
	assert.ErrorIs(t, err, storage.ErrTeamNotFound)
}

func TestTeamStatsEmptyCollection(t *testing.T) {
	dir := storage.NewMemoryTeamDirectory()
	seedTeams(t, dir, "backend")
	a := NewAssembler(storage.NewMemoryRecordStore(), dir)

	stats, err := a.TeamStats(context.Background(), "backend")
	require.NoError(t, err)
	assert.Equal(t, "backend", stats.TeamName)
	assert.Equal(t, 0.0, stats.TotalTimeSaved)
	assert.Equal(t, 0, stats.TotalEntries)
}

func TestTeamStatsRecordFailureDegradesToZero(t *testing.T) {
	dir := storage.NewMemoryTeamDirectory()
	seedTeams(t, dir, "backend")
	records := storage.NewMemoryRecordStore()
	records.LoadErr = errors.New("store unreachable")

	a := NewAssembler(records, dir)
	stats, err := a.TeamStats(context.Background(), "backend")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalEntries)
}

func TestTeamLeaderboardScopes(t *testing.T) {
	ctx := context.Background()
	records := storage.NewMemoryRecordStore()
	dir := storage.NewMemoryTeamDirectory()
	seedTeams(t, dir, "backend", "frontend")

	require.NoError(t, records.Save(ctx, "backend", []models.Entry{row("alice", 10, 5)}))
	require.NoError(t, records.Save(ctx, "frontend", []models.Entry{row("bob", 10, 8)}))

	a := NewAssembler(records, dir)

	all, err := a.TeamLeaderboard(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "bob", all[0].DeveloperName)

	one, err := a.TeamLeaderboard(ctx, "backend")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "alice", one[0].DeveloperName)

	_, err = a.TeamLeaderboard(ctx, "nope")
	assert.ErrorIs(t, err, storage.ErrTeamNotFound)
}
