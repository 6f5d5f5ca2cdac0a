package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/apierror"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/issue/dto"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/issue/service"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/middleware"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/validation"
)

type IssueHandler struct {
	issueService *service.IssueService
}

func NewIssueHandler(issueService *service.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

func (h *IssueHandler) List(c *fiber.Ctx) error {
	issues, err := h.issueService.List(c.UserContext(), middleware.UserID(c), c.Query("type"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"issues": dto.FromIssues(issues),
	})
}

func (h *IssueHandler) Create(c *fiber.Ctx) error {
	var input dto.CreateIssueInput
	if err := c.BodyParser(&input); err != nil {
		return apierror.Validation("Request body must be valid JSON", nil)
	}
	if err := validation.Struct(input); err != nil {
		return err
	}

	issue, err := h.issueService.Create(c.UserContext(), middleware.UserID(c), middleware.UserEmail(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"issue": dto.FromIssue(issue),
	})
}

func (h *IssueHandler) Get(c *fiber.Ctx) error {
	issue, err := h.issueService.GetByID(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"issue": dto.FromIssue(issue),
	})
}

func (h *IssueHandler) Update(c *fiber.Ctx) error {
	var input dto.UpdateIssueInput
	if err := c.BodyParser(&input); err != nil {
		return apierror.Validation("Request body must be valid JSON", nil)
	}
	if input.Empty() {
		return apierror.Validation("At least one field must be provided", nil)
	}
	if err := validation.Struct(input); err != nil {
		return err
	}

	if err := h.issueService.Update(c.UserContext(), middleware.UserID(c), c.Params("id"), input); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (h *IssueHandler) Delete(c *fiber.Ctx) error {
	if err := h.issueService.Delete(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}
