package server

import (
	"fmt"

	"recipebox/internal/middleware"
	"recipebox/internal/models"

	"github.com/gofiber/fiber/v2"
)

type roleRequestBody struct {
	Reason string `json:"reason"`
}

type processRequestBody struct {
	Status    string `json:"status"`
	AdminNote string `json:"adminNote"`
}

// CreateRoleRequest submits a Reader's request to become a Writer.
// @Summary Submit role upgrade request
// @Tags role-requests
// @Accept json
// @Produce json
// @Param request body object{reason=string} true "Request reason"
// @Success 201 {object} object{message=string,requestId=int}
// @Failure 400 {object} object{message=string,code=string}
// @Failure 409 {object} object{message=string,code=string}
// @Security BearerAuth
// @Router /role-requests [post]
func (s *Server) CreateRoleRequest(c *fiber.Ctx) error {
	var req roleRequestBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	request, err := s.roleRequestService.Submit(c.UserContext(), currentUserID(c), req.Reason)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "role request submitted",
		"request_id", request.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Role upgrade request submitted successfully",
		"requestId": request.ID,
	})
}

// GetRoleRequests returns every request for the admin review screen.
// @Summary List role requests
// @Tags role-requests
// @Produce json
// @Success 200 {array} object{}
// @Failure 403 {object} object{message=string,code=string}
// @Security BearerAuth
// @Router /role-requests [get]
func (s *Server) GetRoleRequests(c *fiber.Ctx) error {
	requests, err := s.roleRequestService.ListAll(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(requests)
}

// GetMyRoleRequests returns the caller's own requests.
// @Summary List own role requests
// @Tags role-requests
// @Produce json
// @Success 200 {array} object{}
// @Security BearerAuth
// @Router /role-requests/mine [get]
func (s *Server) GetMyRoleRequests(c *fiber.Ctx) error {
	requests, err := s.roleRequestService.ListMine(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(requests)
}

// ProcessRoleRequest applies an admin decision to a request. Approval grants
// the Writer role.
// @Summary Approve or reject role request
// @Tags role-requests
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param request body object{status=string,adminNote=string} true "Decision"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{message=string,code=string}
// @Failure 403 {object} object{message=string,code=string}
// @Failure 404 {object} object{message=string,code=string}
// @Security BearerAuth
// @Router /role-requests/{id} [patch]
func (s *Server) ProcessRoleRequest(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request ID"))
	}

	var req processRequestBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	request, err := s.roleRequestService.Process(c.UserContext(), id, req.Status, req.AdminNote)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "role request processed",
		"request_id", request.ID, "status", string(request.Status))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":     fmt.Sprintf("Role request %s", request.Status),
		"roleRequest": request,
	})
}

// MarkRoleRequestRead flags a processed request as seen by its owner.
// @Summary Mark own role request as read
// @Tags role-requests
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{message=string,code=string}
// @Failure 404 {object} object{message=string,code=string}
// @Security BearerAuth
// @Router /role-requests/{id}/read [patch]
func (s *Server) MarkRoleRequestRead(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request ID"))
	}

	if err := s.roleRequestService.MarkRead(c.UserContext(), id, currentUserID(c)); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Request marked as read",
	})
}

// GetPendingRequestCount returns the admin notification badge value.
// @Summary Count pending role requests
// @Tags role-requests
// @Produce json
// @Success 200 {object} object{count=int}
// @Failure 403 {object} object{message=string,code=string}
// @Security BearerAuth
// @Router /role-requests/count/unread [get]
func (s *Server) GetPendingRequestCount(c *fiber.Ctx) error {
	count, err := s.roleRequestService.CountPending(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": count,
	})
}
