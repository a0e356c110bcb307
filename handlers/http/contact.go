package httpHandler

import (
	"net/http"

	"portfolio-server/schema"
	"portfolio-server/usecases"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	useCase *usecases.PortfolioUseCase
}

func NewContactHandler(useCase *usecases.PortfolioUseCase) *ContactHandler {
	return &ContactHandler{useCase: useCase}
}

// SubmitContact handles POST /api/contact
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	raw, ok := bindObject(c, schema.EntityContact)
	if !ok {
		return
	}

	contact, duplicate, err := h.useCase.SubmitContact(raw)
	if err != nil {
		respondError(c, err)
		return
	}

	if duplicate {
		c.JSON(http.StatusOK, gin.H{
			"message":   "Message already received",
			"duplicate": true,
			"contact":   contact,
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Message sent successfully",
		"duplicate": false,
		"contact":   contact,
	})
}

// GetContacts handles GET /api/contact
func (h *ContactHandler) GetContacts(c *gin.Context) {
	contacts, err := h.useCase.ListContacts()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}
