package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countRows(n int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

// expectStatsQueries arms the mock with the fixed query sequence Stats
// issues: distinct on-site users, distinct off-site users, employees,
// worksites, today's check-ins, windowed check-ins and, when the window is
// non-empty, verified check-ins.
func expectStatsQueries(mock sqlmock.Sqlmock, now time.Time, active, offsite, employees, worksites, today, inWindow, verified int64) {
	activeSince := now.Add(-8 * time.Hour)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	mock.ExpectQuery(`(?i)SELECT count\(DISTINCT.*user_id`).
		WithArgs(activeSince, true).
		WillReturnRows(countRows(active))
	mock.ExpectQuery(`(?i)SELECT count\(DISTINCT.*user_id`).
		WithArgs(activeSince, false).
		WillReturnRows(countRows(offsite))
	mock.ExpectQuery(`(?i)SELECT count\(\*\) FROM "users"`).
		WithArgs("employee", true).
		WillReturnRows(countRows(employees))
	mock.ExpectQuery(`(?i)SELECT count\(\*\) FROM "worksites"`).
		WithArgs(true).
		WillReturnRows(countRows(worksites))
	mock.ExpectQuery(`(?i)SELECT count\(\*\) FROM "checkins"`).
		WithArgs(midnight).
		WillReturnRows(countRows(today))
	mock.ExpectQuery(`(?i)SELECT count\(\*\) FROM "checkins"`).
		WithArgs(activeSince).
		WillReturnRows(countRows(inWindow))
	if inWindow > 0 {
		mock.ExpectQuery(`(?i)SELECT count\(\*\) FROM "checkins"`).
			WithArgs(activeSince, "verified").
			WillReturnRows(countRows(verified))
	}
}

func TestStats(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewDashboardService(db)
	now := time.Now()

	expectStatsQueries(mock, now, 3, 2, 12, 4, 9, 8, 5)

	stats, err := svc.Stats(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.ActiveEmployees)
	assert.Equal(t, int64(2), stats.OffSiteEmployees)
	assert.Equal(t, int64(12), stats.TotalEmployees)
	assert.Equal(t, int64(4), stats.TotalWorksites)
	assert.Equal(t, int64(9), stats.CheckInsToday)
	// 5 of 8 verified in the window, rounded to one decimal.
	assert.Equal(t, 62.5, stats.VerificationRate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsVerificationRateRounding(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewDashboardService(db)
	now := time.Now()

	// 1 of 3 verified: 33.333... rounds to 33.3.
	expectStatsQueries(mock, now, 1, 0, 3, 1, 3, 3, 1)

	stats, err := svc.Stats(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 33.3, stats.VerificationRate)
}

func TestStatsEmptyWindow(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewDashboardService(db)
	now := time.Now()

	// Zero check-ins in the window: the rate is 0, not an error or NaN.
	expectStatsQueries(mock, now, 0, 0, 5, 2, 0, 0, 0)

	stats, err := svc.Stats(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.ActiveEmployees)
	assert.Equal(t, 0.0, stats.VerificationRate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsQueryFailurePropagates(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewDashboardService(db)
	now := time.Now()

	mock.ExpectQuery(`(?i)SELECT count\(DISTINCT.*user_id`).
		WillReturnError(context.DeadlineExceeded)

	// Degraded partial stats are never returned.
	stats, err := svc.Stats(context.Background(), now)
	assert.ErrorIs(t, err, ErrStorage)
	assert.Nil(t, stats)
}

func TestStatsTodayBoundaryUsesLocalMidnight(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewDashboardService(db)

	// A fixed clock just after midnight: the today filter must be the
	// midnight of that day, excluding anything from the night before.
	loc := time.Local
	now := time.Date(2026, 8, 29, 0, 0, 1, 0, loc)

	expectStatsQueries(mock, now, 0, 0, 0, 0, 1, 1, 0)

	_, err := svc.Stats(context.Background(), now)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
