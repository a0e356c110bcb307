package httpHandler

import (
	"errors"
	"net/http"
	"strconv"

	"portfolio-server/repositories"
	"portfolio-server/schema"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// respondError maps storage and validation errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var verr *schema.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"message": verr.Error(),
			"errors":  verr.Fields,
		})
	case errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, repositories.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}

// bindObject decodes the request body as a JSON object.
func bindObject(c *gin.Context, entity string) (map[string]any, bool) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		respondError(c, schema.InvalidPayload(entity))
		return nil, false
	}
	return raw, true
}

// idParam reads the integer :id path parameter.
func idParam(c *gin.Context, entity string) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, &schema.ValidationError{
			Entity: entity,
			Fields: []schema.FieldError{{Field: "id", Problem: "expected integer"}},
		})
		return 0, false
	}
	return id, true
}
