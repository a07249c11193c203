package handlers

import (
	"careernest/internal/middleware"
	"careernest/internal/models"
	"careernest/internal/service"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type CompanyHandler struct {
	profileService      *service.ProfileService
	verificationService *service.VerificationService
	jobService          *service.JobService
	listingService      *service.ListingService
	applicationService  *service.ApplicationService
	jwtService          *service.JWTService
}

func NewCompanyHandler(profileService *service.ProfileService, verificationService *service.VerificationService, jobService *service.JobService, listingService *service.ListingService, applicationService *service.ApplicationService, jwtService *service.JWTService) *CompanyHandler {
	return &CompanyHandler{
		profileService:      profileService,
		verificationService: verificationService,
		jobService:          jobService,
		listingService:      listingService,
		applicationService:  applicationService,
		jwtService:          jwtService,
	}
}

func (h *CompanyHandler) RegisterRoutes(app *fiber.App) {
	companyGroup := app.Group("/protected/company",
		middleware.RequireAuth(h.jwtService),
		middleware.RequireRole(models.RoleCompany))

	companyGroup.Get("/profile", h.Profile)
	companyGroup.Patch("/profile", h.UpdateProfile)
	companyGroup.Put("/profile/logo", h.ReplaceLogo)
	companyGroup.Post("/verification", h.SubmitVerification)

	companyGroup.Get("/jobs", h.Jobs)
	companyGroup.Post("/jobs", h.CreateJob)
	companyGroup.Delete("/jobs/:id", h.DeleteJob)
	companyGroup.Get("/jobs/:id/applications", h.JobApplications)
	companyGroup.Patch("/applications/:id", h.DecideApplication)
}

func companyID(c fiber.Ctx) (bson.ObjectID, bool) {
	principal := middleware.Principal(c)
	if principal == nil {
		return bson.NilObjectID, false
	}
	id, err := bson.ObjectIDFromHex(principal.CompanyID)
	if err != nil {
		return bson.NilObjectID, false
	}
	return id, true
}

func (h *CompanyHandler) Profile(c fiber.Ctx) error {
	id, ok := companyID(c)
	if !ok {
		return invalidSession(c)
	}
	company, err := h.profileService.GetCompany(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Profile fetched",
		"data":    fiber.Map{"company": company},
	})
}

func (h *CompanyHandler) UpdateProfile(c fiber.Ctx) error {
	id, ok := companyID(c)
	if !ok {
		return invalidSession(c)
	}

	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Bio   string `json:"bio"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	company, err := h.profileService.UpdateCompany(c.Context(), id, req.Name, req.Phone, req.Bio)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"data":    fiber.Map{"company": company},
	})
}

func (h *CompanyHandler) ReplaceLogo(c fiber.Ctx) error {
	id, ok := companyID(c)
	if !ok {
		return invalidSession(c)
	}
	file, err := c.FormFile("logo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File is required",
		})
	}

	company, err := h.profileService.ReplaceCompanyLogo(c.Context(), id, file)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Logo updated",
		"data":    fiber.Map{"company": company},
	})
}

// SubmitVerification uploads the registration document and moves the
// company into the admin review queue.
func (h *CompanyHandler) SubmitVerification(c fiber.Ctx) error {
	id, ok := companyID(c)
	if !ok {
		return invalidSession(c)
	}
	document, err := c.FormFile("document")
	if err != nil {
		document = nil
	}

	company, err := h.verificationService.SubmitCompanyVerification(
		c.Context(), id,
		c.FormValue("phone"),
		c.FormValue("area"),
		c.FormValue("city"),
		c.FormValue("district"),
		c.FormValue("bio"),
		document,
	)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Verification submitted",
		"data":    fiber.Map{"company": company},
	})
}

func (h *CompanyHandler) Jobs(c fiber.Ctx) error {
	id, ok := companyID(c)
	if !ok {
		return invalidSession(c)
	}
	page, err := h.listingService.CompanyJobs(c.Context(), id, queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Jobs fetched",
		"data":    page,
	})
}

func (h *CompanyHandler) CreateJob(c fiber.Ctx) error {
	id, ok := companyID(c)
	if !ok {
		return invalidSession(c)
	}

	var req models.CreateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	job, err := h.jobService.Create(c.Context(), id, req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Job posted",
		"data":    fiber.Map{"job": job},
	})
}

func (h *CompanyHandler) DeleteJob(c fiber.Ctx) error {
	id, ok := companyID(c)
	if !ok {
		return invalidSession(c)
	}
	jobID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return invalidID(c, "job")
	}

	if err := h.jobService.Delete(c.Context(), id, jobID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Job deleted"})
}

func (h *CompanyHandler) JobApplications(c fiber.Ctx) error {
	id, ok := companyID(c)
	if !ok {
		return invalidSession(c)
	}
	jobID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return invalidID(c, "job")
	}

	applications, err := h.applicationService.ByJob(c.Context(), id, jobID, queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Applicants fetched",
		"data":    fiber.Map{"applications": applications},
	})
}

func (h *CompanyHandler) DecideApplication(c fiber.Ctx) error {
	id, ok := companyID(c)
	if !ok {
		return invalidSession(c)
	}
	applicationID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return invalidID(c, "application")
	}

	var req struct {
		Status models.ApplicationStatus `json:"status"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	application, err := h.applicationService.Decide(c.Context(), id, applicationID, req.Status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Application decided",
		"data":    fiber.Map{"application": application},
	})
}
