package handlers

import (
	"strconv"

	"careernest/internal/apperr"
	"careernest/internal/middleware"
	"careernest/internal/models"
	"careernest/internal/service"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type JobHandler struct {
	listingService *service.ListingService
	jwtService     *service.JWTService
}

func NewJobHandler(listingService *service.ListingService, jwtService *service.JWTService) *JobHandler {
	return &JobHandler{
		listingService: listingService,
		jwtService:     jwtService,
	}
}

func (h *JobHandler) RegisterRoutes(app *fiber.App) {
	// optional auth so a logged-in seeker gets personalized ordering and
	// annotations on the same endpoints everyone else uses
	jobGroup := app.Group("/public/jobs", middleware.OptionalAuth(h.jwtService))
	jobGroup.Get("/", h.List)
	jobGroup.Get("/:id", h.Detail)
}

func (h *JobHandler) List(c fiber.Ctx) error {
	mode := models.ListMode(c.Query("mode", string(models.ModeLatest)))
	if !mode.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown listing mode",
		})
	}

	query := models.ListQuery{
		Mode:   mode,
		Search: c.Query("search"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
	}

	page, err := h.listingService.List(c.Context(), middleware.Principal(c), query)
	if err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{
			"error": apperr.MessageOf(err),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Jobs fetched",
		"data":    page,
	})
}

func (h *JobHandler) Detail(c fiber.Ctx) error {
	jobID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job id",
		})
	}

	detail, err := h.listingService.Detail(c.Context(), middleware.Principal(c), jobID)
	if err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{
			"error": apperr.MessageOf(err),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Job fetched",
		"data":    detail,
	})
}

func queryInt(c fiber.Ctx, key string, fallback int) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return value
}
