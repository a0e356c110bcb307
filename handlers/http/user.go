package httpHandler

import (
	"net/http"

	"portfolio-server/entities"
	"portfolio-server/schema"
	"portfolio-server/usecases"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	useCase *usecases.UsersUseCase
}

func NewUserHandler(useCase *usecases.UsersUseCase) *UserHandler {
	return &UserHandler{useCase: useCase}
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	raw, ok := bindObject(c, schema.EntityUser)
	if !ok {
		return
	}

	user, err := h.useCase.Register(raw)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetUser handles GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := idParam(c, schema.EntityUser)
	if !ok {
		return
	}

	user, err := h.useCase.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondUser(c, user)
}

// FindUser handles GET /api/users?username=<name>
func (h *UserHandler) FindUser(c *gin.Context) {
	user, err := h.useCase.GetByUsername(c.Query("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondUser(c, user)
}

func (h *UserHandler) respondUser(c *gin.Context, user *entities.User) {
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
