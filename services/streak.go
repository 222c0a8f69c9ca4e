package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/svenriksen/syncshack-2025/models"
)

// Streak multiplier tuning: +10% per consecutive day, capped at 50%.
const (
	MultiplierPerDay = 10
	MaxMultiplier    = 50
)

// Multiplier derives the coin bonus percentage from a streak length. It is
// never persisted.
func Multiplier(streak int) int {
	m := streak * MultiplierPerDay
	if m > MaxMultiplier {
		m = MaxMultiplier
	}
	return m
}

// DayOf strips the time component, keeping the calendar date in t's location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StreakState is the persisted streak portion of a profile.
type StreakState struct {
	Current    int
	Longest    int
	LastActive *time.Time
}

// StreakChange is the outcome of applying one activity day to a streak.
type StreakChange struct {
	Current int
	Longest int
	// Wither is set when a missed day broke the streak and the newest alive
	// tree must be withered alongside the profile update.
	Wither  bool
	Changed bool
	Message string
}

// NextStreak computes the transition for a valid-trip day. today must already
// be date-normalized. The function is pure; persistence and the withering side
// effect are applied by the caller in one transaction.
func NextStreak(s StreakState, today time.Time) StreakChange {
	if s.LastActive != nil {
		last := DayOf(*s.LastActive)
		if last.Equal(today) {
			return StreakChange{
				Current: s.Current,
				Longest: s.Longest,
				Message: "Already completed a trip today",
			}
		}
		yesterday := today.AddDate(0, 0, -1)
		if !last.Equal(yesterday) {
			// Missed at least one day: the triggering day still counts as
			// day 1 of the new streak.
			longest := s.Longest
			if s.Current > longest {
				longest = s.Current
			}
			return StreakChange{
				Current: 1,
				Longest: maxInt(longest, 1),
				Wither:  true,
				Changed: true,
				Message: "Streak reset, last tree withered, and started new day",
			}
		}
	}

	current := s.Current + 1
	longest := s.Longest
	if current > longest {
		longest = current
	}
	return StreakChange{
		Current: current,
		Longest: longest,
		Changed: true,
		Message: "Streak incremented",
	}
}

// StreakService maintains per-user consecutive-day streaks and the garden
// withering that accompanies a broken streak.
type StreakService struct {
	db *gorm.DB
}

// NewStreakService creates a StreakService on the given DB handle.
func NewStreakService(db *gorm.DB) *StreakService {
	return &StreakService{db: db}
}

// StreakStatus is the read-only streak view.
type StreakStatus struct {
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	Multiplier    int        `json:"multiplier"`
	LastActive    *time.Time `json:"last_active_date"`
}

// Status returns the user's streak and derived multiplier.
func (s *StreakService) Status(userID uint) (*StreakStatus, error) {
	var profile models.Profile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return &StreakStatus{
		CurrentStreak: profile.CurrentStreak,
		LongestStreak: profile.LongestStreak,
		Multiplier:    Multiplier(profile.CurrentStreak),
		LastActive:    profile.LastActiveDate,
	}, nil
}

// Increment credits today as an active day, evaluated once per calendar day.
// Same-day repeats are no-ops; a gap of two or more days resets the streak and
// withers the newest alive tree in the same transaction.
func (s *StreakService) Increment(userID uint, now time.Time) (*StreakChange, error) {
	today := DayOf(now)
	var change *StreakChange
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		change, err = advanceStreak(tx, userID, today)
		return err
	})
	if err != nil {
		return nil, err
	}
	return change, nil
}

// advanceStreak applies one activity day inside an open transaction. Shared
// by Increment and trip completion so both paths keep the profile update and
// any withering in a single atomic unit.
func advanceStreak(tx *gorm.DB, userID uint, today time.Time) (*StreakChange, error) {
	profile, err := lockProfile(tx, userID)
	if err != nil {
		return nil, err
	}

	change := NextStreak(StreakState{
		Current:    profile.CurrentStreak,
		Longest:    profile.LongestStreak,
		LastActive: profile.LastActiveDate,
	}, today)
	if !change.Changed {
		return &change, nil
	}

	if change.Wither {
		if err := witherNewestTree(tx, userID); err != nil {
			return nil, err
		}
	}
	err = tx.Model(&models.Profile{}).Where("user_id = ?", userID).
		UpdateColumns(map[string]interface{}{
			"current_streak":   change.Current,
			"longest_streak":   change.Longest,
			"last_active_date": today,
			"updated_at":       time.Now(),
		}).Error
	if err != nil {
		return nil, err
	}
	return &change, nil
}

// Reset zeroes the streak unconditionally, rolling the longest-streak high
// water mark and withering the newest alive tree. Intended for a scheduled
// day-rollover job; repeated calls on the same day are no-ops.
func (s *StreakService) Reset(userID uint, now time.Time) (*StreakChange, error) {
	today := DayOf(now)
	var change StreakChange
	err := s.db.Transaction(func(tx *gorm.DB) error {
		profile, err := lockProfile(tx, userID)
		if err != nil {
			return err
		}

		if profile.CurrentStreak == 0 && profile.LastActiveDate != nil &&
			DayOf(*profile.LastActiveDate).Equal(today) {
			change = StreakChange{Longest: profile.LongestStreak, Message: "Streak already reset"}
			return nil
		}

		longest := profile.LongestStreak
		if profile.CurrentStreak > longest {
			longest = profile.CurrentStreak
		}
		change = StreakChange{
			Current: 0,
			Longest: longest,
			Wither:  true,
			Changed: true,
			Message: "Streak reset",
		}

		if err := witherNewestTree(tx, userID); err != nil {
			return err
		}
		return tx.Model(&models.Profile{}).Where("user_id = ?", userID).
			UpdateColumns(map[string]interface{}{
				"current_streak":   0,
				"longest_streak":   longest,
				"last_active_date": today,
				"updated_at":       time.Now(),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &change, nil
}

// CheckResult answers the scheduler's "should this streak be reset" query
// without mutating anything; actual enforcement stays reactive.
type CheckResult struct {
	ShouldReset bool   `json:"should_reset"`
	Reason      string `json:"reason"`
	DaysMissed  int    `json:"days_missed,omitempty"`
}

// Check reports whether the user's streak is stale as of now.
func (s *StreakService) Check(userID uint, now time.Time) (*CheckResult, error) {
	var profile models.Profile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && profile.LastActiveDate == nil) {
		return &CheckResult{ShouldReset: false, Reason: "No last active date"}, nil
	}
	if err != nil {
		return nil, err
	}

	today := DayOf(now)
	last := DayOf(*profile.LastActiveDate)
	yesterday := today.AddDate(0, 0, -1)
	if last.Before(yesterday) {
		missed := int(today.Sub(last).Hours()/24) - 1
		return &CheckResult{ShouldReset: true, Reason: "Missed a day", DaysMissed: missed}, nil
	}
	return &CheckResult{ShouldReset: false, Reason: "Streak is current"}, nil
}

// witherNewestTree marks the most recently planted non-withered tile as
// withered. No-op when every tile is already withered or the garden is empty.
func witherNewestTree(tx *gorm.DB, userID uint) error {
	var tile models.GardenTile
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND type <> ?", userID, models.TreeWithered).
		Order("planted_at DESC").First(&tile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return tx.Model(&models.GardenTile{}).Where("id = ?", tile.ID).
		UpdateColumns(map[string]interface{}{
			"type":   models.TreeWithered,
			"status": models.TileWithered,
		}).Error
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
