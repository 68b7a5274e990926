package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Moonidhi/CivicIssueManager/internal/service"
)

// AnalyticsHandler serves aggregate views over the issue collection.
type AnalyticsHandler struct {
	service *service.AnalyticsService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: analyticsService}
}

// Report GET /analytics.
func (h *AnalyticsHandler) Report(c *fiber.Ctx) error {
	report, err := h.service.Report(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": report})
}

// Dashboard GET /admin/dashboard. Admin only, enforced by routing.
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	dashboard, err := h.service.Dashboard(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dashboard})
}
