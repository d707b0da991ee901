package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/appLSI/decentralized-rental-app-sub000/dto"
	"github.com/appLSI/decentralized-rental-app-sub000/services"
)

// SaveSearchRequest es el body de POST /api/saved-searches
type SaveSearchRequest struct {
	Name  string `json:"name" binding:"required"`
	Query string `json:"query"`
}

// SavedSearchController maneja las búsquedas guardadas (MySQL)
type SavedSearchController struct {
	service services.SavedSearchService
}

func NewSavedSearchController(service services.SavedSearchService) *SavedSearchController {
	return &SavedSearchController{service: service}
}

// List maneja GET /api/saved-searches
func (ctrl *SavedSearchController) List(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	searches, err := ctrl.service.List(s.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, searches)
}

// Create maneja POST /api/saved-searches
func (ctrl *SavedSearchController) Create(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var req SaveSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	saved, err := ctrl.service.Create(s.UserID, req.Name, req.Query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// Delete maneja DELETE /api/saved-searches/:id
func (ctrl *SavedSearchController) Delete(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		badRequest(c, "Invalid saved search ID")
		return
	}

	if err := ctrl.service.Delete(s.UserID, uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Saved search deleted"})
}
