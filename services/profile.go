package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/svenriksen/syncshack-2025/models"
)

// ProfileView is the combined account + game-state view shown on the profile
// page.
type ProfileView struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Bio      string    `json:"bio"`
	Location string    `json:"location"`
	Avatar   string    `json:"avatar"`
	Joined   time.Time `json:"joined"`
	Stats    UserStats `json:"stats"`
}

// UserStats summarizes headline numbers for the profile card.
type UserStats struct {
	Trips      int64   `json:"trips"`
	DistanceKm float64 `json:"distance_km"`
	Coins      int     `json:"coins"`
	Trees      int     `json:"trees"`
}

// ProfileService reads and updates the user-facing profile. The game counters
// it exposes are owned by the other services; this one only aggregates.
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a ProfileService on the given DB handle.
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// Get loads the profile view, creating the profile row lazily when absent.
func (p *ProfileService) Get(userID uint) (*ProfileView, error) {
	var user models.User
	if err := p.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	var profile models.Profile
	err := p.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{UserID: userID}
		if err := p.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&profile).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	type agg struct {
		Count    int64
		Distance float64
	}
	var trips agg
	err = p.db.Model(&models.Trip{}).Where("user_id = ?", userID).
		Select("COUNT(*) AS count, COALESCE(SUM(distance_m), 0) AS distance").
		Scan(&trips).Error
	if err != nil {
		return nil, err
	}

	return &ProfileView{
		Name:     user.Username,
		Email:    user.Email,
		Username: handleFromEmail(user.Email),
		Bio:      profile.Bio,
		Location: profile.Location,
		Avatar:   user.AvatarURL,
		Joined:   user.CreatedAt,
		Stats: UserStats{
			Trips:      trips.Count,
			DistanceKm: roundKm(trips.Distance / 1000),
			Coins:      profile.TotalCoins,
			Trees:      profile.TreesPlantedVirtual + profile.TreesPlantedReal,
		},
	}, nil
}

// ProfileUpdate carries the editable fields; nil means "leave unchanged".
// Callers sanitize the strings before handing them over.
type ProfileUpdate struct {
	Name     *string
	Bio      *string
	Location *string
}

// Update applies the edits and returns the fresh view.
func (p *ProfileService) Update(userID uint, in ProfileUpdate) (*ProfileView, error) {
	err := p.db.Transaction(func(tx *gorm.DB) error {
		if in.Name != nil {
			if err := tx.Model(&models.User{}).Where("id = ?", userID).
				Update("username", *in.Name).Error; err != nil {
				return err
			}
		}
		if in.Bio == nil && in.Location == nil {
			return nil
		}

		if _, err := lockProfile(tx, userID); err != nil {
			return err
		}
		fields := map[string]interface{}{"updated_at": time.Now()}
		if in.Bio != nil {
			fields["bio"] = *in.Bio
		}
		if in.Location != nil {
			fields["location"] = *in.Location
		}
		return tx.Model(&models.Profile{}).Where("user_id = ?", userID).
			UpdateColumns(fields).Error
	})
	if err != nil {
		return nil, err
	}
	return p.Get(userID)
}

// handleFromEmail derives a display handle like "@alice" from an email.
func handleFromEmail(email string) string {
	if email == "" {
		return ""
	}
	local := email
	if i := strings.IndexByte(email, '@'); i >= 0 {
		local = email[:i]
	}
	return "@" + local
}

// roundKm keeps one decimal for display.
func roundKm(km float64) float64 {
	return float64(int(km*10+0.5)) / 10
}
