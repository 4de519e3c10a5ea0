package service

import (
	"context"
	"sort"
	"time"

	apperrors "workoutjournal/backend/internal/errors"
	"workoutjournal/backend/internal/repository"
)

// HistoryService aggregates completed sessions into per-day counts. Sessions
// without a completion timestamp are excluded entirely; an abandoned workout
// never shows up in history.
type HistoryService struct {
	workoutRepo *repository.WorkoutRepository
	now         func() time.Time
}

func NewHistoryService(workoutRepo *repository.WorkoutRepository) *HistoryService {
	return &HistoryService{workoutRepo: workoutRepo, now: time.Now}
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type HistoryView struct {
	TotalSessions int        `json:"total_sessions"`
	TotalDays     int        `json:"total_days"`
	SessionsByDay []DayCount `json:"sessions_by_day"`
}

// Aggregate computes the history window and rolls completed sessions up into
// per-day counts. period and the explicit from/to bounds are mutually
// exclusive; with neither, the whole history is aggregated.
func (s *HistoryService) Aggregate(ctx context.Context, userID, period, fromDate, toDate string) (*HistoryView, *apperrors.APIError) {
	if period != "" && (fromDate != "" || toDate != "") {
		return nil, apperrors.Validation("period cannot be combined with from_date or to_date")
	}

	if period != "" {
		var apiErr *apperrors.APIError
		fromDate, toDate, apiErr = s.periodWindow(period)
		if apiErr != nil {
			return nil, apiErr
		}
	} else {
		for _, bound := range []string{fromDate, toDate} {
			if bound == "" {
				continue
			}
			if _, err := time.Parse(dateLayout, bound); err != nil {
				return nil, apperrors.Validation("dates must be formatted YYYY-MM-DD")
			}
		}
	}

	sessions, err := s.workoutRepo.ListSessions(ctx, userID, fromDate, toDate)
	if err != nil {
		return nil, apperrors.Upstream("failed to load workout history")
	}

	counts := make(map[string]int)
	total := 0
	for _, session := range sessions {
		if session.CompletedAt == nil {
			continue
		}
		counts[session.Date]++
		total++
	}

	days := make([]string, 0, len(counts))
	for date := range counts {
		days = append(days, date)
	}
	sort.Strings(days)

	byDay := make([]DayCount, 0, len(days))
	for _, date := range days {
		byDay = append(byDay, DayCount{Date: date, Count: counts[date]})
	}

	return &HistoryView{
		TotalSessions: total,
		TotalDays:     len(days),
		SessionsByDay: byDay,
	}, nil
}

// periodWindow resolves a named period to inclusive date bounds relative to
// today: week is the trailing seven days, month and year are the current
// calendar month and year.
func (s *HistoryService) periodWindow(period string) (string, string, *apperrors.APIError) {
	today := s.now().UTC()
	switch period {
	case "week":
		return today.AddDate(0, 0, -7).Format(dateLayout), today.Format(dateLayout), nil
	case "month":
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)
		return first.Format(dateLayout), last.Format(dateLayout), nil
	case "year":
		first := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		last := time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
		return first.Format(dateLayout), last.Format(dateLayout), nil
	default:
		return "", "", apperrors.Validation("period must be one of week, month, year")
	}
}
