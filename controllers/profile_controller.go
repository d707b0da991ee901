package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/appLSI/decentralized-rental-app-sub000/dto"
)

// ProfileController maneja el perfil del usuario logueado
type ProfileController struct{}

func NewProfileController() *ProfileController {
	return &ProfileController{}
}

// GetProfile maneja GET /api/profile; recarga si el perfil quedó viejo
func (ctrl *ProfileController) GetProfile(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	user, err := s.Profile.Get(s.Context(c.Request.Context()))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile maneja PUT /api/profile
func (ctrl *ProfileController) UpdateProfile(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := s.Profile.Update(s.Context(c.Request.Context()), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Profile updated successfully", Data: user})
}
