package httpHandler

import (
	"net/http"

	"portfolio-server/schema"
	"portfolio-server/usecases"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	useCase *usecases.PortfolioUseCase
}

func NewProjectHandler(useCase *usecases.PortfolioUseCase) *ProjectHandler {
	return &ProjectHandler{useCase: useCase}
}

// GetProjects handles GET /api/projects
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects, err := h.useCase.ListProjects()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// CreateProject handles POST /api/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	raw, ok := bindObject(c, schema.EntityProject)
	if !ok {
		return
	}

	project, err := h.useCase.CreateProject(raw)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// UpdateProject handles PUT /api/projects/:id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := idParam(c, schema.EntityProject)
	if !ok {
		return
	}
	raw, ok := bindObject(c, schema.EntityProject)
	if !ok {
		return
	}

	project, err := h.useCase.UpdateProject(id, raw)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// DeleteProject handles DELETE /api/projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := idParam(c, schema.EntityProject)
	if !ok {
		return
	}

	if err := h.useCase.DeleteProject(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
