package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mailintel/internal/model"
	"mailintel/internal/repository"
	"mailintel/internal/service"
)

type PreferencesHandler struct {
	prefsRepo *repository.PreferencesRepository
	digestSvc *service.DigestService
}

func NewPreferencesHandler(prefsRepo *repository.PreferencesRepository, digestSvc *service.DigestService) *PreferencesHandler {
	return &PreferencesHandler{
		prefsRepo: prefsRepo,
		digestSvc: digestSvc,
	}
}

// GetPreferences handles GET /preferences
func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	prefs, err := h.prefsRepo.GetByUserID(c.Request.Context(), userID.(int))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch preferences"})
		return
	}
	if prefs == nil {
		prefs = &model.UserEmailPreferences{}
	}

	c.JSON(http.StatusOK, prefs)
}

// PutPreferences handles PUT /preferences
func (h *PreferencesHandler) PutPreferences(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var prefs model.UserEmailPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid preferences payload"})
		return
	}

	if err := h.prefsRepo.Upsert(c.Request.Context(), userID.(int), &prefs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save preferences"})
		return
	}

	// 偏好变了，旧摘要作废
	h.digestSvc.InvalidateDigest(c.Request.Context(), userID.(int))

	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}
