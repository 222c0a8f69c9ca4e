package services

import (
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

// LeaderboardTopN caps the ranked view returned to clients.
const LeaderboardTopN = 50

// WeekStart normalizes any instant to 00:00:00 of the Monday of its week, in
// t's location. Monday is the canonical week start everywhere in this service;
// the uniqueness key of leaderboard_weeks depends on it.
func WeekStart(t time.Time) time.Time {
	day := DayOf(t)
	sinceMonday := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -sinceMonday)
}

// WeekEnd returns the last day (Sunday) of the week starting at weekStart.
func WeekEnd(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, 6)
}

// LeaderboardService maintains per-user weekly coin totals and produces ranked
// views. Writes go through a single atomic upsert so concurrent trip
// completions for one user cannot lose increments.
type LeaderboardService struct {
	db *gorm.DB
}

// NewLeaderboardService creates a LeaderboardService on the given DB handle.
func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

// RecordCoins adds amount to the user's bucket for the week containing now,
// creating the row on first earn of the week.
func (l *LeaderboardService) RecordCoins(userID uint, amount int, now time.Time) error {
	return RecordWeeklyCoins(l.db, userID, amount, now)
}

// RecordWeeklyCoins is the transaction-friendly form used by trip completion.
func RecordWeeklyCoins(tx *gorm.DB, userID uint, amount int, now time.Time) error {
	if amount <= 0 {
		return nil
	}
	return tx.Exec(
		"INSERT INTO leaderboard_weeks (week_start_date, user_id, coins, created_at, updated_at) VALUES (?, ?, ?, ?, ?) "+
			"ON DUPLICATE KEY UPDATE coins = coins + VALUES(coins), updated_at = VALUES(updated_at)",
		WeekStart(now), userID, amount, time.Now(), time.Now(),
	).Error
}

// LeaderboardEntry is one ranked row of the weekly board.
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	Coins     int    `json:"coins"`
}

// Leaderboard is the ranked weekly view with its week bounds.
type Leaderboard struct {
	WeekStart time.Time          `json:"week_start"`
	WeekEnd   time.Time          `json:"week_end"`
	Entries   []LeaderboardEntry `json:"entries"`
}

// Top returns up to n ranked entries for the week containing now, ordered by
// coins descending. Ranks use competition ranking ("players strictly ahead
// plus one"), the same rule UserRank applies, so ties share a rank.
func (l *LeaderboardService) Top(n int, now time.Time) (*Leaderboard, error) {
	weekStart := WeekStart(now)

	rows, err := l.db.Raw(
		"SELECT lw.user_id, u.username, u.avatar_url, lw.coins FROM leaderboard_weeks lw "+
			"JOIN users u ON u.id = lw.user_id "+
			"WHERE lw.week_start_date = ? ORDER BY lw.coins DESC, lw.user_id ASC LIMIT ?",
		weekStart, n,
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]LeaderboardEntry, 0, n)
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.AvatarURL, &e.Coins); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	AssignRanks(entries)

	return &Leaderboard{
		WeekStart: weekStart,
		WeekEnd:   WeekEnd(weekStart),
		Entries:   entries,
	}, nil
}

// AssignRanks fills the Rank field of a coins-descending slice using
// competition ranking: tied totals share a rank, the next distinct total
// resumes at its list position plus one.
func AssignRanks(entries []LeaderboardEntry) {
	for i := range entries {
		if i > 0 && entries[i].Coins == entries[i-1].Coins {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}
}

// RankResult locates one user on the current week's board. Rank is nil when
// the user has no entry yet.
type RankResult struct {
	Rank         *int `json:"rank"`
	Coins        int  `json:"coins"`
	TotalPlayers int  `json:"total_players"`
}

// UserRank computes the user's competition rank for the week containing now:
// one plus the count of players with strictly more coins.
func (l *LeaderboardService) UserRank(userID uint, now time.Time) (*RankResult, error) {
	weekStart := WeekStart(now)

	var coins int
	err := l.db.Raw(
		"SELECT coins FROM leaderboard_weeks WHERE week_start_date = ? AND user_id = ?",
		weekStart, userID,
	).Row().Scan(&coins)
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
		return &RankResult{Rank: nil, TotalPlayers: 0}, nil
	}
	if err != nil {
		return nil, err
	}

	var ahead, total int
	if err := l.db.Raw(
		"SELECT COUNT(*) FROM leaderboard_weeks WHERE week_start_date = ? AND coins > ?",
		weekStart, coins,
	).Row().Scan(&ahead); err != nil {
		return nil, err
	}
	if err := l.db.Raw(
		"SELECT COUNT(*) FROM leaderboard_weeks WHERE week_start_date = ?",
		weekStart,
	).Row().Scan(&total); err != nil {
		return nil, err
	}

	rank := ahead + 1
	return &RankResult{Rank: &rank, Coins: coins, TotalPlayers: total}, nil
}
