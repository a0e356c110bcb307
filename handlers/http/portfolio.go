package httpHandler

import (
	"net/http"

	"portfolio-server/schema"
	"portfolio-server/usecases"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	useCase *usecases.PortfolioUseCase
}

func NewPortfolioHandler(useCase *usecases.PortfolioUseCase) *PortfolioHandler {
	return &PortfolioHandler{useCase: useCase}
}

// GetSection handles GET /api/portfolio/:section
func (h *PortfolioHandler) GetSection(c *gin.Context) {
	section := c.Param("section")

	content, err := h.useCase.GetSection(section)
	if err != nil {
		respondError(c, err)
		return
	}
	if content == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Content not found"})
		return
	}
	c.JSON(http.StatusOK, content)
}

// UpdateSection handles PUT /api/portfolio/:section
func (h *PortfolioHandler) UpdateSection(c *gin.Context) {
	raw, ok := bindObject(c, schema.EntityPortfolioContent)
	if !ok {
		return
	}

	content, err := h.useCase.UpdateSection(c.Param("section"), raw)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, content)
}
