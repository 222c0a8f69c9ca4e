package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/svenriksen/syncshack-2025/models"
)

// CO2SavedPerKm is the grams of CO2 saved per km walked or cycled instead of
// driven, used for the impact figures.
const CO2SavedPerKm = 120.0

// TripService validates completed journeys and applies their rewards: coin
// balance, weekly leaderboard bucket and streak advance as one atomic unit.
type TripService struct {
	db *gorm.DB
}

// NewTripService creates a TripService on the given DB handle.
func NewTripService(db *gorm.DB) *TripService {
	return &TripService{db: db}
}

// TripResult is the completion outcome returned to the client.
type TripResult struct {
	Trip         models.Trip   `json:"trip"`
	Valid        bool          `json:"valid"`
	CoinsAwarded int           `json:"coins_awarded"`
	ModeGuess    string        `json:"mode_guess"`
	AvgSpeedKmh  float64       `json:"avg_speed_kmh"`
	Streak       *StreakChange `json:"streak,omitempty"`
}

// Complete validates a finished journey, persists the immutable trip record
// and, for valid trips, credits coins, bumps the weekly leaderboard and
// advances the streak, all in one transaction. Invalid trips are recorded
// with zero coins and never fail the call.
func (t *TripService) Complete(userID uint, in TripInput, now time.Time) (*TripResult, error) {
	validation := ValidateTrip(in)
	coins := CoinsForTrip(in.DistanceM, validation.Valid)

	result := TripResult{
		Valid:        validation.Valid,
		CoinsAwarded: coins,
		ModeGuess:    validation.ModeGuess,
		AvgSpeedKmh:  validation.AvgSpeedKmh,
	}

	err := t.db.Transaction(func(tx *gorm.DB) error {
		trip := models.Trip{
			UserID:       userID,
			StartLat:     in.StartLat,
			StartLng:     in.StartLng,
			EndLat:       in.EndLat,
			EndLng:       in.EndLng,
			DistanceM:    in.DistanceM,
			DurationS:    in.DurationS,
			ModeGuess:    validation.ModeGuess,
			Valid:        validation.Valid,
			CoinsAwarded: coins,
			StartedAt:    now.Add(-time.Duration(in.DurationS) * time.Second),
			EndedAt:      now,
			Polyline:     in.Polyline,
		}
		if err := tx.Create(&trip).Error; err != nil {
			return err
		}
		result.Trip = trip

		if !validation.Valid || coins == 0 {
			return nil
		}
		if err := CreditCoins(tx, userID, coins); err != nil {
			return err
		}
		if err := RecordWeeklyCoins(tx, userID, coins, now); err != nil {
			return err
		}
		change, err := advanceStreak(tx, userID, DayOf(now))
		if err != nil {
			return err
		}
		result.Streak = change
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// TripPage is a paginated trip listing, newest first.
type TripPage struct {
	Trips   []models.Trip `json:"trips"`
	Total   int64         `json:"total"`
	HasMore bool          `json:"has_more"`
}

// List returns the user's trips newest-first with offset pagination.
func (t *TripService) List(userID uint, limit, offset int) (*TripPage, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	var trips []models.Trip
	if err := t.db.Where("user_id = ?", userID).
		Order("started_at DESC").Limit(limit).Offset(offset).
		Find(&trips).Error; err != nil {
		return nil, err
	}
	var total int64
	if err := t.db.Model(&models.Trip{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, err
	}
	return &TripPage{
		Trips:   trips,
		Total:   total,
		HasMore: int64(offset+limit) < total,
	}, nil
}

// Today returns the user's trips started on the current calendar day.
func (t *TripService) Today(userID uint, now time.Time) ([]models.Trip, error) {
	dayStart := DayOf(now)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var trips []models.Trip
	err := t.db.Where("user_id = ? AND started_at >= ? AND started_at < ?", userID, dayStart, dayEnd).
		Order("started_at DESC").Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}

// TripStats aggregates a user's trip history.
type TripStats struct {
	TotalTrips       int64   `json:"total_trips"`
	ValidTrips       int64   `json:"valid_trips"`
	TotalDistanceM   float64 `json:"total_distance_m"`
	TotalDurationS   int64   `json:"total_duration_s"`
	TotalCoinsEarned int64   `json:"total_coins_earned"`
	WeeklyDistanceKm float64 `json:"weekly_distance_km"`
	WeeklyCO2SavedG  float64 `json:"weekly_co2_saved_g"`
}

// Stats aggregates lifetime totals plus this week's distance and the CO2
// figure derived from it.
func (t *TripService) Stats(userID uint, now time.Time) (*TripStats, error) {
	var stats TripStats

	type sums struct {
		Count    int64
		Valid    int64
		Distance float64
		Duration int64
		Coins    int64
	}
	var life sums
	err := t.db.Model(&models.Trip{}).Where("user_id = ?", userID).
		Select("COUNT(*) AS count, COALESCE(SUM(valid), 0) AS valid, COALESCE(SUM(distance_m), 0) AS distance, " +
			"COALESCE(SUM(duration_s), 0) AS duration, COALESCE(SUM(coins_awarded), 0) AS coins").
		Scan(&life).Error
	if err != nil {
		return nil, err
	}
	stats.TotalTrips = life.Count
	stats.ValidTrips = life.Valid
	stats.TotalDistanceM = life.Distance
	stats.TotalDurationS = life.Duration
	stats.TotalCoinsEarned = life.Coins

	var weekDistance float64
	err = t.db.Model(&models.Trip{}).
		Where("user_id = ? AND started_at >= ?", userID, WeekStart(now)).
		Select("COALESCE(SUM(distance_m), 0)").Scan(&weekDistance).Error
	if err != nil {
		return nil, err
	}
	stats.WeeklyDistanceKm = weekDistance / 1000
	stats.WeeklyCO2SavedG = stats.WeeklyDistanceKm * CO2SavedPerKm

	return &stats, nil
}
