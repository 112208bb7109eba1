package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mailintel/internal/service"
)

// Window bounds for the on-demand digest.
const (
	minDigestHours = 1
	maxDigestHours = 168 // one week
)

type DigestHandler struct {
	digestSvc    *service.DigestService
	defaultHours int
}

func NewDigestHandler(digestSvc *service.DigestService, defaultHours int) *DigestHandler {
	return &DigestHandler{
		digestSvc:    digestSvc,
		defaultHours: defaultHours,
	}
}

// GetDigest handles GET /digest?hours=24
func (h *DigestHandler) GetDigest(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	hours := h.defaultHours
	if raw := c.Query("hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < minDigestHours || parsed > maxDigestHours {
			c.JSON(http.StatusBadRequest, gin.H{"error": "hours must be between 1 and 168"})
			return
		}
		hours = parsed
	}

	digest, err := h.digestSvc.BuildDigest(c.Request.Context(), userID.(int), hours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build digest"})
		return
	}

	c.JSON(http.StatusOK, digest)
}
