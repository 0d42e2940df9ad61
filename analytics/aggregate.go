// Package analytics computes dashboard statistics over entry collections:
// totals, weighted efficiency rates, assistant usage, per-developer
// leaderboards, category breakdowns and time-bucketed trends.
//
// Every function here is total over its input: missing hours count as zero,
// missing developer names collapse into an "Unknown" bucket, and collections
// without usable timestamps produce empty trends instead of errors. The only
// error surfaced is the schema check, and callers use it to skip a collection,
// never to abort a dashboard.
package analytics

import (
	"errors"
	"sort"
	"strings"
	"time"

	"efftrack/models"
)

// ErrSchemaUnusable marks a collection that cannot participate in aggregates,
// e.g. one where no row carries a developer name.
var ErrSchemaUnusable = errors.New("record collection schema unusable")

// ValidateSchema is the single boundary check for a loaded collection.
// A non-empty collection in which no row has a developer name came from a
// source missing that column entirely; such a team is skipped as a whole.
func ValidateSchema(rows []models.Entry) error {
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		if rows[i].DeveloperName != nil && *rows[i].DeveloperName != "" {
			return nil
		}
	}
	return ErrSchemaUnusable
}

// Summary holds the headline numbers for one collection.
type Summary struct {
	TotalTimeSaved     float64
	TotalEntries       int
	AverageEfficiency  float64
	AssistantUsageRate float64
	DevelopersCount    int
}

// Summarize computes the headline numbers over a collection.
func Summarize(rows []models.Entry) Summary {
	s := Summary{TotalEntries: len(rows)}
	developers := make(map[string]struct{})
	yes := 0
	for i := range rows {
		s.TotalTimeSaved += rows[i].GainedHours()
		developers[rows[i].Developer()] = struct{}{}
		if assistantUsed(rows[i].AssistantUsed) {
			yes++
		}
	}
	s.AverageEfficiency = weightedEfficiency(rows)
	if len(rows) > 0 {
		s.AssistantUsageRate = float64(yes) / float64(len(rows)) * 100
		s.DevelopersCount = len(developers)
	}
	return s
}

// Leaderboard groups a collection by developer and ranks by total time saved,
// descending. The sort is stable: developers tied on time saved keep the
// order in which they first appear in the collection.
func Leaderboard(rows []models.Entry) []models.DeveloperStats {
	type acc struct {
		gained       float64
		entries      int
		gainedEst    float64
		estimate     float64
		assistantYes int
	}
	accs := make(map[string]*acc)
	order := make([]string, 0)
	for i := range rows {
		name := rows[i].Developer()
		a, ok := accs[name]
		if !ok {
			a = &acc{}
			accs[name] = a
			order = append(order, name)
		}
		a.gained += rows[i].GainedHours()
		a.entries++
		if est := rows[i].EstimateHours(); est > 0 {
			a.gainedEst += rows[i].GainedHours()
			a.estimate += est
		}
		if assistantUsed(rows[i].AssistantUsed) {
			a.assistantYes++
		}
	}

	board := make([]models.DeveloperStats, 0, len(order))
	for _, name := range order {
		a := accs[name]
		stats := models.DeveloperStats{
			DeveloperName:  name,
			TotalTimeSaved: a.gained,
			TotalEntries:   a.entries,
		}
		if a.estimate > 0 {
			stats.EfficiencyRate = a.gainedEst / a.estimate * 100
		}
		if a.entries > 0 {
			stats.AssistantUsageRate = float64(a.assistantYes) / float64(a.entries) * 100
			stats.AvgHoursPerEntry = a.gained / float64(a.entries)
		}
		board = append(board, stats)
	}

	sort.SliceStable(board, func(i, j int) bool {
		return board[i].TotalTimeSaved > board[j].TotalTimeSaved
	})
	return board
}

// CategoryBreakdown groups by category and reports each category's share of
// the grand total time saved. Categories are emitted in ascending name order.
func CategoryBreakdown(rows []models.Entry) []models.CategorySlice {
	type acc struct {
		gained  float64
		entries int
	}
	accs := make(map[string]*acc)
	var grandTotal float64
	for i := range rows {
		grandTotal += rows[i].GainedHours()
		a, ok := accs[rows[i].Category]
		if !ok {
			a = &acc{}
			accs[rows[i].Category] = a
		}
		a.gained += rows[i].GainedHours()
		a.entries++
	}

	names := make([]string, 0, len(accs))
	for name := range accs {
		names = append(names, name)
	}
	sort.Strings(names)

	breakdown := make([]models.CategorySlice, 0, len(names))
	for _, name := range names {
		a := accs[name]
		slice := models.CategorySlice{
			Category:  name,
			TimeSaved: a.gained,
			Entries:   a.entries,
		}
		if grandTotal > 0 {
			slice.Percentage = a.gained / grandTotal * 100
		}
		breakdown = append(breakdown, slice)
	}
	return breakdown
}

// MonthlyTrends buckets a collection by the calendar month of each entry's
// creation timestamp, in chronological order. Rows without a usable timestamp
// are left out; if none is usable the result is empty.
func MonthlyTrends(rows []models.Entry) []models.TrendPoint {
	return bucketTrends(rows, func(t time.Time) string {
		return t.Format("2006-01")
	})
}

// DailyTrends buckets the trailing 30 days (relative to now) by calendar day.
func DailyTrends(rows []models.Entry, now time.Time) []models.TrendPoint {
	cutoff := now.AddDate(0, 0, -30)
	recent := make([]models.Entry, 0, len(rows))
	for i := range rows {
		if rows[i].CreatedAt.IsZero() || rows[i].CreatedAt.Before(cutoff) {
			continue
		}
		recent = append(recent, rows[i])
	}
	return bucketTrends(recent, func(t time.Time) string {
		return t.Format("2006-01-02")
	})
}

func bucketTrends(rows []models.Entry, key func(time.Time) string) []models.TrendPoint {
	buckets := make(map[string][]models.Entry)
	for i := range rows {
		if rows[i].CreatedAt.IsZero() {
			continue
		}
		k := key(rows[i].CreatedAt)
		buckets[k] = append(buckets[k], rows[i])
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	// Zero-padded date keys sort chronologically as strings.
	sort.Strings(keys)

	trends := make([]models.TrendPoint, 0, len(keys))
	for _, k := range keys {
		scoped := buckets[k]
		point := models.TrendPoint{
			Bucket:  k,
			Entries: len(scoped),
		}
		yes := 0
		for i := range scoped {
			point.TimeSaved += scoped[i].GainedHours()
			if assistantUsed(scoped[i].AssistantUsed) {
				yes++
			}
		}
		point.EfficiencyRate = weightedEfficiency(scoped)
		point.AssistantUsageRate = float64(yes) / float64(len(scoped)) * 100
		trends = append(trends, point)
	}
	return trends
}

// weightedEfficiency is sum(gained)/sum(estimate)*100 over rows with a
// positive estimate, 0 when no such row exists. Deliberately a weighted
// ratio, not a mean of per-row percentages.
func weightedEfficiency(rows []models.Entry) float64 {
	var gained, estimate float64
	for i := range rows {
		if est := rows[i].EstimateHours(); est > 0 {
			gained += rows[i].GainedHours()
			estimate += est
		}
	}
	if estimate <= 0 {
		return 0
	}
	return gained / estimate * 100
}

func assistantUsed(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "yes")
}
