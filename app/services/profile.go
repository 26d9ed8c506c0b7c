package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/lodge/app/models"
	"github.com/shashiranjanraj/lodge/app/repositories"
)

type ProfileInput struct {
	FullName        string `json:"full_name"        validate:"max=255"`
	Username        string `json:"username"         validate:"max=100"`
	ShippingAddress string `json:"shipping_address" validate:"max=1000"`
}

type ProfileService struct {
	profiles *repositories.ProfileRepository
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{profiles: repositories.NewProfileRepository(db)}
}

// Get returns the profile, creating it with a zero balance on first use.
func (s *ProfileService) Get(ctx context.Context, userID string) (models.Profile, error) {
	p, err := s.profiles.FindOrCreate(ctx, userID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

// Update replaces the editable profile fields. The wallet balance is not
// editable here.
func (s *ProfileService) Update(ctx context.Context, userID string, in ProfileInput) (models.Profile, error) {
	if err := checkInput(in); err != nil {
		return models.Profile{}, err
	}
	if _, err := s.Get(ctx, userID); err != nil {
		return models.Profile{}, err
	}

	err := s.profiles.Update(ctx, userID, map[string]interface{}{
		"full_name":        strings.TrimSpace(in.FullName),
		"username":         strings.TrimSpace(in.Username),
		"shipping_address": strings.TrimSpace(in.ShippingAddress),
	})
	if err != nil {
		return models.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return s.Get(ctx, userID)
}
