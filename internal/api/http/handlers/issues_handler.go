package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Moonidhi/CivicIssueManager/internal/api/dto"
	"github.com/Moonidhi/CivicIssueManager/internal/auth"
	"github.com/Moonidhi/CivicIssueManager/internal/domain"
	"github.com/Moonidhi/CivicIssueManager/internal/service"
	apperrors "github.com/Moonidhi/CivicIssueManager/pkg/util"
)

// IssuesHandler manages issue endpoints.
type IssuesHandler struct {
	service *service.IssueService
}

// NewIssuesHandler constructs handler.
func NewIssuesHandler(issueService *service.IssueService) *IssuesHandler {
	return &IssuesHandler{service: issueService}
}

// CreateIssue POST /issues.
func (h *IssuesHandler) CreateIssue(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	issue, err := h.service.CreateIssue(c.Context(), actor, service.IssueCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Priority:    req.Priority,
		PhotoURLs:   req.PhotoURLs,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewIssueResponse(issue)})
}

// ListIssues GET /issues.
func (h *IssuesHandler) ListIssues(c *fiber.Ctx) error {
	filter := service.IssueFilter{
		SearchTerm: c.Query("search"),
		Category:   c.Query("category", service.FilterAll),
		Status:     c.Query("status", service.FilterAll),
		Priority:   c.Query("priority", service.FilterAll),
	}
	issues, err := h.service.ListIssues(c.Context(), filter)
	if err != nil {
		return err
	}

	items := make([]dto.IssueResponse, 0, len(issues))
	for i := range issues {
		items = append(items, dto.NewIssueResponse(&issues[i]))
	}
	return c.JSON(fiber.Map{"data": items, "count": len(items)})
}

// GetIssue GET /issues/:id.
func (h *IssuesHandler) GetIssue(c *fiber.Ctx) error {
	issue, comments, err := h.service.GetIssue(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	thread := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		thread = append(thread, dto.NewCommentResponse(&comments[i]))
	}
	return c.JSON(fiber.Map{"data": dto.IssueDetailResponse{
		IssueResponse: dto.NewIssueResponse(issue),
		Comments:      thread,
	}})
}

// ChangeStatus PATCH /issues/:id/status. Admin only.
func (h *IssuesHandler) ChangeStatus(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}

	issue, err := h.service.ChangeStatus(c.Context(), actor, c.Params("id"), domain.IssueStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIssueResponse(issue)})
}

// AddComment POST /issues/:id/comments.
func (h *IssuesHandler) AddComment(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	comment, err := h.service.AddComment(c.Context(), actor, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCommentResponse(comment)})
}
