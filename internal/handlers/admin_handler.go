package handlers

import (
	"careernest/internal/middleware"
	"careernest/internal/models"
	"careernest/internal/service"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type AdminHandler struct {
	adminService        *service.AdminService
	verificationService *service.VerificationService
	jwtService          *service.JWTService
}

func NewAdminHandler(adminService *service.AdminService, verificationService *service.VerificationService, jwtService *service.JWTService) *AdminHandler {
	return &AdminHandler{
		adminService:        adminService,
		verificationService: verificationService,
		jwtService:          jwtService,
	}
}

func (h *AdminHandler) RegisterRoutes(app *fiber.App) {
	adminGroup := app.Group("/protected/admin",
		middleware.RequireAuth(h.jwtService),
		middleware.RequireRole(models.RoleAdmin))

	adminGroup.Get("/stats", h.Stats)
	adminGroup.Get("/companies", h.Companies)
	adminGroup.Patch("/companies/:id/status", h.DecideCompany)
	adminGroup.Delete("/companies/:id", h.DeleteCompany)
	adminGroup.Get("/seekers", h.Seekers)
	adminGroup.Delete("/seekers/:id", h.DeleteSeeker)
}

func (h *AdminHandler) Stats(c fiber.Ctx) error {
	stats, err := h.adminService.Stats(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Stats fetched",
		"data":    stats,
	})
}

func (h *AdminHandler) Companies(c fiber.Ctx) error {
	status := models.VerificationStatus(c.Query("status"))
	companies, err := h.adminService.Companies(c.Context(), status, queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Companies fetched",
		"data":    fiber.Map{"companies": companies},
	})
}

// DecideCompany records the admin verdict on a verification submission.
func (h *AdminHandler) DecideCompany(c fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return invalidID(c, "company")
	}

	var req struct {
		Status models.VerificationStatus `json:"status"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	company, err := h.verificationService.DecideCompany(c.Context(), id, req.Status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Company status updated",
		"data":    fiber.Map{"company": company},
	})
}

func (h *AdminHandler) DeleteCompany(c fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return invalidID(c, "company")
	}
	if err := h.adminService.DeleteCompany(c.Context(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Company deleted"})
}

func (h *AdminHandler) Seekers(c fiber.Ctx) error {
	seekers, err := h.adminService.Seekers(c.Context(), queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Seekers fetched",
		"data":    fiber.Map{"seekers": seekers},
	})
}

func (h *AdminHandler) DeleteSeeker(c fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return invalidID(c, "seeker")
	}
	if err := h.adminService.DeleteSeeker(c.Context(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Seeker deleted"})
}
