package handlers

import (
	"net/http"

	"portfolio-server/services"

	"github.com/gin-gonic/gin"
)

type CacheHandler struct {
	janitor *services.CacheJanitor
}

func NewCacheHandler(janitor *services.CacheJanitor) *CacheHandler {
	return &CacheHandler{janitor: janitor}
}

// PruneCache POST /api/cache/prune
func (h *CacheHandler) PruneCache(c *gin.Context) {
	removed := h.janitor.Sweep()
	c.JSON(http.StatusOK, gin.H{"status": "pruned", "removed": removed})
}

// GetCacheStats GET /api/cache/stats
func (h *CacheHandler) GetCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"stats":  h.janitor.Stats(),
	})
}
