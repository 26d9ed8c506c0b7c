package controllers

import (
	"github.com/shashiranjanraj/lodge/app/services"
	"github.com/shashiranjanraj/lodge/pkg/ctx"
)

type ProfileController struct {
	profiles *services.ProfileService
}

func NewProfileController(profiles *services.ProfileService) *ProfileController {
	return &ProfileController{profiles: profiles}
}

// Show GET /api/profile
func (pc *ProfileController) Show(c *ctx.Context) {
	p, err := pc.profiles.Get(c.Context(), c.UserID())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(p)
}

// Update PUT /api/profile
func (pc *ProfileController) Update(c *ctx.Context) {
	var in services.ProfileInput
	if !c.DecodeJSON(&in) {
		return
	}
	p, err := pc.profiles.Update(c.Context(), c.UserID(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(p)
}
