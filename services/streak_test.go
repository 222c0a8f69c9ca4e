package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMultiplier(t *testing.T) {
	assert.Equal(t, 0, Multiplier(0))
	assert.Equal(t, 10, Multiplier(1))
	assert.Equal(t, 30, Multiplier(3))
	assert.Equal(t, 50, Multiplier(5))
	// capped beyond five days
	assert.Equal(t, 50, Multiplier(6))
	assert.Equal(t, 50, Multiplier(100))
}

func TestDayOf(t *testing.T) {
	loc := time.FixedZone("AEST", 10*3600)
	got := DayOf(time.Date(2025, 8, 27, 23, 59, 58, 123, loc))
	assert.Equal(t, time.Date(2025, 8, 27, 0, 0, 0, 0, loc), got)
}

func TestNextStreak(t *testing.T) {
	today := time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	threeDaysAgo := today.AddDate(0, 0, -3)

	t.Run("first ever active day", func(t *testing.T) {
		ch := NextStreak(StreakState{}, today)
		assert.Equal(t, 1, ch.Current)
		assert.Equal(t, 1, ch.Longest)
		assert.True(t, ch.Changed)
		assert.False(t, ch.Wither)
	})

	t.Run("same day is a no-op", func(t *testing.T) {
		active := today.Add(9 * time.Hour) // stored with a time component
		ch := NextStreak(StreakState{Current: 3, Longest: 5, LastActive: &active}, today)
		assert.Equal(t, 3, ch.Current)
		assert.Equal(t, 5, ch.Longest)
		assert.False(t, ch.Changed)
		assert.False(t, ch.Wither)
		assert.Equal(t, "Already completed a trip today", ch.Message)
	})

	t.Run("consecutive day increments", func(t *testing.T) {
		ch := NextStreak(StreakState{Current: 3, Longest: 5, LastActive: &yesterday}, today)
		assert.Equal(t, 4, ch.Current)
		assert.Equal(t, 5, ch.Longest)
		assert.True(t, ch.Changed)
		assert.False(t, ch.Wither)
	})

	t.Run("increment extends longest", func(t *testing.T) {
		ch := NextStreak(StreakState{Current: 5, Longest: 5, LastActive: &yesterday}, today)
		assert.Equal(t, 6, ch.Current)
		assert.Equal(t, 6, ch.Longest)
	})

	t.Run("missed day resets and withers", func(t *testing.T) {
		ch := NextStreak(StreakState{Current: 3, Longest: 5, LastActive: &threeDaysAgo}, today)
		assert.Equal(t, 1, ch.Current)
		assert.Equal(t, 5, ch.Longest)
		assert.True(t, ch.Wither)
		assert.True(t, ch.Changed)
	})

	t.Run("broken streak still rolls into longest", func(t *testing.T) {
		ch := NextStreak(StreakState{Current: 7, Longest: 5, LastActive: &threeDaysAgo}, today)
		assert.Equal(t, 1, ch.Current)
		assert.Equal(t, 7, ch.Longest)
		assert.True(t, ch.Wither)
	})

	t.Run("longest never below current", func(t *testing.T) {
		for _, s := range []StreakState{
			{},
			{Current: 1, Longest: 1, LastActive: &yesterday},
			{Current: 9, Longest: 9, LastActive: &threeDaysAgo},
		} {
			ch := NextStreak(s, today)
			assert.GreaterOrEqual(t, ch.Longest, ch.Current)
		}
	})
}
