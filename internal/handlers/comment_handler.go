package handlers

import (
	"net/http"

	"github.com/anonto42/project-showcase/backend/internal/logger"
	"github.com/anonto42/project-showcase/backend/internal/models"
	"github.com/anonto42/project-showcase/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	comments *services.CommentService
	notifier *services.Notifier
	log      logger.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments *services.CommentService, notifier *services.Notifier, log logger.Logger) *CommentHandler {
	return &CommentHandler{
		comments: comments,
		notifier: notifier,
		log:      log,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/projects/:project_id/comments", h.CreateComment)
	g.GET("/projects/:project_id/comments", h.GetCommentsByProjectID)
	g.GET("/comments/:id", h.GetComment)
	g.POST("/comments/:id/replies", h.CreateReply)
}

// CreateComment adds a comment to a project and notifies its members
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	projectID := c.Param("project_id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	comment, err := h.comments.AddComment(ctx, projectID, currentUserID, req.Text)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data": echo.Map{
			"comment":       comment,
			"notifications": h.notifyMembers(c, projectID, services.EventCommentAdded(comment.Text)),
		},
	})
}

// GetCommentsByProjectID lists a project's comments, newest first
func (h *CommentHandler) GetCommentsByProjectID(c echo.Context) error {
	comments, err := h.comments.ListCommentsForProject(c.Request().Context(), c.Param("project_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"comments": comments}})
}

func (h *CommentHandler) GetComment(c echo.Context) error {
	comment, err := h.comments.GetComment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"comment": comment}})
}

// CreateReply appends a reply to a comment and notifies the project members
func (h *CommentHandler) CreateReply(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.comments.AddReply(c.Request().Context(), c.Param("id"), currentUserID, req.Text)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"comment":       comment,
			"notifications": h.notifyMembers(c, comment.ProjectID.Hex(), services.EventReplyAdded(req.Text)),
		},
	})
}

// notifyMembers runs after the comment is stored; its failures are reported
// per recipient and never fail the request.
func (h *CommentHandler) notifyMembers(c echo.Context, projectID string, ev services.ProjectEvent) []services.FanOutResult {
	results, err := h.notifier.NotifyProjectMembers(c.Request().Context(), projectID, getUserIDFromContext(c), ev)
	if err != nil {
		h.log.Warn("project members not notified", projectID, err)
		return []services.FanOutResult{}
	}
	return results
}
