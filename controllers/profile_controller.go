package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/svenriksen/syncshack-2025/services"
	"github.com/svenriksen/syncshack-2025/utils"
)

// ProfileController exposes the combined account and game-state profile.
type ProfileController struct {
	profiles *services.ProfileService
}

// NewProfileController creates a new controller instance.
func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{profiles: services.NewProfileService(db)}
}

// GetProfile returns the profile view, creating the profile row lazily.
func (p *ProfileController) GetProfile(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	view, err := p.profiles.Get(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to load profile")
		return
	}
	utils.Success(ctx, view)
}

// UpdateProfile edits display name, bio and location. User-supplied text is
// sanitized before it reaches storage.
func (p *ProfileController) UpdateProfile(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Name     *string `json:"name" binding:"omitempty,min=1,max=80"`
		Bio      *string `json:"bio" binding:"omitempty,max=280"`
		Location *string `json:"location" binding:"omitempty,max=80"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid request payload")
		return
	}

	update := services.ProfileUpdate{}
	if req.Name != nil {
		name := strings.TrimSpace(utils.Sanitize(*req.Name))
		if name == "" {
			utils.Error(ctx, http.StatusBadRequest, 40051, "name cannot be empty")
			return
		}
		update.Name = &name
	}
	if req.Bio != nil {
		bio := utils.Sanitize(*req.Bio)
		update.Bio = &bio
	}
	if req.Location != nil {
		location := utils.Sanitize(*req.Location)
		update.Location = &location
	}

	view, err := p.profiles.Update(userID, update)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to update profile")
		return
	}
	utils.Success(ctx, view)
}
