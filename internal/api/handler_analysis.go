package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mailintel/internal/repository"
)

const (
	defaultAnalysisLimit = 50
	maxAnalysisLimit     = 200
)

type AnalysisQueryHandler struct {
	analysisRepo *repository.AnalysisRepository
}

func NewAnalysisQueryHandler(analysisRepo *repository.AnalysisRepository) *AnalysisQueryHandler {
	return &AnalysisQueryHandler{
		analysisRepo: analysisRepo,
	}
}

// ListAnalyses handles GET /analyses?limit=50
func (h *AnalysisQueryHandler) ListAnalyses(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	limit := defaultAnalysisLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxAnalysisLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 200"})
			return
		}
		limit = parsed
	}

	analyses, err := h.analysisRepo.ListRecent(c.Request.Context(), userID.(int), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch analyses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analyses": analyses,
	})
}
