package service

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pageza/cookbook/backend/internal/model"
)

const (
	topRecipes     = 3
	recentActivity = 5
)

// StatsStore answers the reporting queries behind the dashboard.
type StatsStore interface {
	Totals(ctx context.Context) (model.Totals, error)
	CookDatesSince(ctx context.Context, since time.Time) ([]time.Time, error)
	MostCooked(ctx context.Context, limit uint64) ([]model.RecipeStat, error)
	HighestRated(ctx context.Context, limit uint64) ([]model.RecipeStat, error)
	RecentActivity(ctx context.Context, limit uint64) ([]model.ActivityEntry, error)
}

var rangeDays = map[string]int{
	"week":  7,
	"month": 30,
	"year":  365,
}

// DashboardService aggregates cook logs into dashboard figures.
type DashboardService struct {
	stats StatsStore
	now   func() time.Time
}

func NewDashboardService(stats StatsStore) *DashboardService {
	return &DashboardService{stats: stats, now: time.Now}
}

// Stats builds the dashboard for a range of week, month or year. An empty
// range means month.
func (s *DashboardService) Stats(ctx context.Context, rangeName string) (*model.DashboardStats, error) {
	rangeName = strings.ToLower(strings.TrimSpace(rangeName))
	if rangeName == "" {
		rangeName = "month"
	}
	days, ok := rangeDays[rangeName]
	if !ok {
		return nil, validationError("Range must be one of week, month, year")
	}

	today := truncateDay(s.now())
	since := today.AddDate(0, 0, -days)

	totals, err := s.stats.Totals(ctx)
	if err != nil {
		return nil, s.fail(err)
	}
	dates, err := s.stats.CookDatesSince(ctx, since)
	if err != nil {
		return nil, s.fail(err)
	}
	mostCooked, err := s.stats.MostCooked(ctx, topRecipes)
	if err != nil {
		return nil, s.fail(err)
	}
	highestRated, err := s.stats.HighestRated(ctx, topRecipes)
	if err != nil {
		return nil, s.fail(err)
	}
	recent, err := s.stats.RecentActivity(ctx, recentActivity)
	if err != nil {
		return nil, s.fail(err)
	}

	for i := range mostCooked {
		mostCooked[i].AverageRating = model.RoundRating(mostCooked[i].AverageRating)
	}
	for i := range highestRated {
		highestRated[i].AverageRating = model.RoundRating(highestRated[i].AverageRating)
	}

	return &model.DashboardStats{
		Range:          rangeName,
		TotalRecipes:   totals.Recipes,
		TotalCooks:     totals.Cooks,
		AverageRating:  model.RoundRating(totals.AverageRating),
		CooksInRange:   int64(len(dates)),
		MostCooked:     nonNil(mostCooked),
		HighestRated:   nonNil(highestRated),
		RecentActivity: nonNil(recent),
		Activity:       bucketByDay(since, today, dates),
	}, nil
}

func (s *DashboardService) fail(err error) error {
	logrus.WithError(err).Error("dashboard query failed")
	return storageError("Failed to load dashboard statistics", err)
}

// bucketByDay counts dates per UTC calendar day from first to last inclusive.
func bucketByDay(first, last time.Time, dates []time.Time) []model.DayCount {
	counts := make(map[string]int, len(dates))
	for _, d := range dates {
		counts[d.UTC().Format("2006-01-02")]++
	}

	buckets := []model.DayCount{}
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		buckets = append(buckets, model.DayCount{Date: key, Count: counts[key]})
	}
	return buckets
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
