package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestWeekStart(t *testing.T) {
	monday := time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   time.Time
	}{
		{"monday maps to itself", time.Date(2025, 8, 25, 13, 30, 0, 0, time.UTC)},
		{"wednesday", time.Date(2025, 8, 27, 9, 0, 0, 0, time.UTC)},
		{"saturday", time.Date(2025, 8, 30, 23, 59, 59, 0, time.UTC)},
		// Sunday belongs to the week that began the previous Monday
		{"sunday", time.Date(2025, 8, 31, 0, 0, 1, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, monday, WeekStart(tc.in))
		})
	}

	t.Run("next monday starts a new week", func(t *testing.T) {
		in := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, in, WeekStart(in))
	})
}

func TestWeekEnd(t *testing.T) {
	monday := time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC), WeekEnd(monday))
}

func TestAssignRanks(t *testing.T) {
	t.Run("distinct totals", func(t *testing.T) {
		entries := []LeaderboardEntry{
			{UserID: 1, Coins: 300},
			{UserID: 2, Coins: 200},
			{UserID: 3, Coins: 100},
		}
		AssignRanks(entries)
		assert.Equal(t, []int{1, 2, 3}, ranksOf(entries))
	})

	t.Run("ties share a rank and skip the next", func(t *testing.T) {
		entries := []LeaderboardEntry{
			{UserID: 1, Coins: 300},
			{UserID: 2, Coins: 300},
			{UserID: 3, Coins: 100},
			{UserID: 4, Coins: 100},
			{UserID: 5, Coins: 50},
		}
		AssignRanks(entries)
		assert.Equal(t, []int{1, 1, 3, 3, 5}, ranksOf(entries))
	})

	t.Run("empty board", func(t *testing.T) {
		AssignRanks(nil)
	})
}

func ranksOf(entries []LeaderboardEntry) []int {
	ranks := make([]int, len(entries))
	for i, e := range entries {
		ranks[i] = e.Rank
	}
	return ranks
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func TestRecordWeeklyCoins(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Date(2025, 8, 27, 10, 0, 0, 0, time.UTC)
	weekStart := time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO leaderboard_weeks (week_start_date, user_id, coins, created_at, updated_at) VALUES (?, ?, ?, ?, ?) "+
			"ON DUPLICATE KEY UPDATE coins = coins + VALUES(coins), updated_at = VALUES(updated_at)")).
		WithArgs(weekStart, uint(7), 25, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := RecordWeeklyCoins(db, 7, 25, now)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordWeeklyCoinsSkipsNonPositive(t *testing.T) {
	db, mock := newMockDB(t)

	require.NoError(t, RecordWeeklyCoins(db, 7, 0, time.Now()))
	require.NoError(t, RecordWeeklyCoins(db, 7, -5, time.Now()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRank(t *testing.T) {
	now := time.Date(2025, 8, 27, 10, 0, 0, 0, time.UTC)
	weekStart := time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)

	t.Run("ranked user", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := NewLeaderboardService(db)

		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT coins FROM leaderboard_weeks WHERE week_start_date = ? AND user_id = ?")).
			WithArgs(weekStart, uint(7)).
			WillReturnRows(sqlmock.NewRows([]string{"coins"}).AddRow(120))
		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT COUNT(*) FROM leaderboard_weeks WHERE week_start_date = ? AND coins > ?")).
			WithArgs(weekStart, 120).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT COUNT(*) FROM leaderboard_weeks WHERE week_start_date = ?")).
			WithArgs(weekStart).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))

		res, err := svc.UserRank(7, now)
		require.NoError(t, err)
		require.NotNil(t, res.Rank)
		assert.Equal(t, 3, *res.Rank)
		assert.Equal(t, 120, res.Coins)
		assert.Equal(t, 9, res.TotalPlayers)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("user without an entry", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := NewLeaderboardService(db)

		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT coins FROM leaderboard_weeks WHERE week_start_date = ? AND user_id = ?")).
			WithArgs(weekStart, uint(7)).
			WillReturnRows(sqlmock.NewRows([]string{"coins"}))

		res, err := svc.UserRank(7, now)
		require.NoError(t, err)
		assert.Nil(t, res.Rank)
		assert.Equal(t, 0, res.Coins)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTop(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewLeaderboardService(db)
	now := time.Date(2025, 8, 27, 10, 0, 0, 0, time.UTC)
	weekStart := time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT lw.user_id, u.username, u.avatar_url, lw.coins FROM leaderboard_weeks lw "+
			"JOIN users u ON u.id = lw.user_id "+
			"WHERE lw.week_start_date = ? ORDER BY lw.coins DESC, lw.user_id ASC LIMIT ?")).
		WithArgs(weekStart, LeaderboardTopN).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "username", "avatar_url", "coins"}).
			AddRow(2, "ada", "", 300).
			AddRow(5, "brin", "", 300).
			AddRow(9, "cleo", "", 40))

	board, err := svc.Top(LeaderboardTopN, now)
	require.NoError(t, err)
	assert.Equal(t, weekStart, board.WeekStart)
	assert.Equal(t, weekStart.AddDate(0, 0, 6), board.WeekEnd)
	require.Len(t, board.Entries, 3)
	assert.Equal(t, []int{1, 1, 3}, ranksOf(board.Entries))
	assert.Equal(t, "ada", board.Entries[0].Username)
	assert.Equal(t, 40, board.Entries[2].Coins)
	require.NoError(t, mock.ExpectationsWereMet())
}
