package handlers

import (
	"net/http"

	"github.com/anonto42/project-showcase/backend/internal/logger"
	"github.com/anonto42/project-showcase/backend/internal/middleware"
	"github.com/anonto42/project-showcase/backend/internal/models"
	"github.com/anonto42/project-showcase/backend/internal/repositories"
	"github.com/anonto42/project-showcase/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ProjectHandler handles project moderation
type ProjectHandler struct {
	projects repositories.ProjectRepository
	notifier *services.Notifier
	log      logger.Logger
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projects repositories.ProjectRepository, notifier *services.Notifier, log logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		notifier: notifier,
		log:      log,
	}
}

// RegisterProjectRoutes registers project routes
func (h *ProjectHandler) RegisterProjectRoutes(g *echo.Group) {
	g.PUT("/projects/:project_id/status", h.UpdateStatus, middleware.RequireRoles(models.RoleFaculty, models.RoleAdmin))
}

// UpdateStatus approves or rejects a project and tells its members
func (h *ProjectHandler) UpdateStatus(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	projectID := c.Param("project_id")

	var req models.UpdateProjectStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	project, err := h.projects.UpdateProjectStatus(ctx, projectID, req.Status)
	if err != nil {
		return err
	}

	results, err := h.notifier.NotifyProjectMembers(ctx, projectID, currentUserID, services.EventStatusChanged(req.Status, req.Note))
	if err != nil {
		h.log.Warn("project members not notified", projectID, err)
		results = []services.FanOutResult{}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"project":       project,
			"notifications": results,
		},
	})
}
