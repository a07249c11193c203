package handlers

import (
	"careernest/internal/apperr"
	"careernest/internal/middleware"
	"careernest/internal/models"
	"careernest/internal/service"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type SeekerHandler struct {
	profileService      *service.ProfileService
	applicationService  *service.ApplicationService
	bookmarkService     *service.BookmarkService
	notificationService *service.NotificationService
	jwtService          *service.JWTService
}

func NewSeekerHandler(profileService *service.ProfileService, applicationService *service.ApplicationService, bookmarkService *service.BookmarkService, notificationService *service.NotificationService, jwtService *service.JWTService) *SeekerHandler {
	return &SeekerHandler{
		profileService:      profileService,
		applicationService:  applicationService,
		bookmarkService:     bookmarkService,
		notificationService: notificationService,
		jwtService:          jwtService,
	}
}

func (h *SeekerHandler) RegisterRoutes(app *fiber.App) {
	seekerGroup := app.Group("/protected/seeker",
		middleware.RequireAuth(h.jwtService),
		middleware.RequireRole(models.RoleSeeker))

	seekerGroup.Get("/profile", h.Profile)
	seekerGroup.Patch("/profile", h.UpdateProfile)
	seekerGroup.Put("/profile/resume", h.ReplaceResume)
	seekerGroup.Put("/profile/picture", h.ReplacePicture)

	seekerGroup.Get("/applications", h.Applications)
	seekerGroup.Post("/jobs/:id/apply", h.Apply)
	seekerGroup.Delete("/jobs/:id/apply", h.Withdraw)

	seekerGroup.Get("/bookmarks", h.Bookmarks)
	seekerGroup.Post("/jobs/:id/bookmark", h.AddBookmark)
	seekerGroup.Delete("/jobs/:id/bookmark", h.RemoveBookmark)

	seekerGroup.Get("/notifications", h.Notifications)
	seekerGroup.Get("/notifications/unread-count", h.UnreadCount)
	seekerGroup.Patch("/notifications/:id/read", h.MarkNotificationRead)
}

func seekerID(c fiber.Ctx) (bson.ObjectID, bool) {
	principal := middleware.Principal(c)
	if principal == nil {
		return bson.NilObjectID, false
	}
	id, err := bson.ObjectIDFromHex(principal.SeekerID)
	if err != nil {
		return bson.NilObjectID, false
	}
	return id, true
}

func (h *SeekerHandler) Profile(c fiber.Ctx) error {
	id, ok := seekerID(c)
	if !ok {
		return invalidSession(c)
	}
	seeker, err := h.profileService.GetSeeker(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Profile fetched",
		"data":    fiber.Map{"seeker": seeker},
	})
}

func (h *SeekerHandler) UpdateProfile(c fiber.Ctx) error {
	id, ok := seekerID(c)
	if !ok {
		return invalidSession(c)
	}

	var req struct {
		FullName   string   `json:"fullName"`
		Phone      string   `json:"phone"`
		Bio        string   `json:"bio"`
		Experience string   `json:"experience"`
		Skills     []string `json:"skills"`
		Area       string   `json:"area"`
		City       string   `json:"city"`
		District   string   `json:"district"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	seeker, err := h.profileService.UpdateSeeker(c.Context(), id, service.SeekerUpdate{
		FullName:         req.FullName,
		Phone:            req.Phone,
		Bio:              req.Bio,
		ExperienceBucket: req.Experience,
		Skills:           req.Skills,
		Area:             req.Area,
		City:             req.City,
		District:         req.District,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"data":    fiber.Map{"seeker": seeker},
	})
}

func (h *SeekerHandler) ReplaceResume(c fiber.Ctx) error {
	return h.replaceFile(c, "resume")
}

func (h *SeekerHandler) ReplacePicture(c fiber.Ctx) error {
	return h.replaceFile(c, "picture")
}

func (h *SeekerHandler) replaceFile(c fiber.Ctx, field string) error {
	id, ok := seekerID(c)
	if !ok {
		return invalidSession(c)
	}
	file, err := c.FormFile(field)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File is required",
		})
	}

	seeker, err := h.profileService.ReplaceSeekerFile(c.Context(), id, file, field)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "File updated",
		"data":    fiber.Map{"seeker": seeker},
	})
}

func (h *SeekerHandler) Applications(c fiber.Ctx) error {
	id, ok := seekerID(c)
	if !ok {
		return invalidSession(c)
	}
	applications, err := h.applicationService.BySeeker(c.Context(), id, queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Applications fetched",
		"data":    fiber.Map{"applications": applications},
	})
}

func (h *SeekerHandler) Apply(c fiber.Ctx) error {
	id, ok := seekerID(c)
	if !ok {
		return invalidSession(c)
	}
	jobID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return invalidID(c, "job")
	}

	application, err := h.applicationService.Apply(c.Context(), id, jobID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Application submitted",
		"data":    fiber.Map{"application": application},
	})
}

func (h *SeekerHandler) Withdraw(c fiber.Ctx) error {
	id, ok := seekerID(c)
	if !ok {
		return invalidSession(c)
	}
	jobID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return invalidID(c, "job")
	}

	if err := h.applicationService.Withdraw(c.Context(), id, jobID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Application withdrawn"})
}

func (h *SeekerHandler) Bookmarks(c fiber.Ctx) error {
	id, ok := seekerID(c)
	if !ok {
		return invalidSession(c)
	}
	bookmarks, err := h.bookmarkService.BySeeker(c.Context(), id, queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Bookmarks fetched",
		"data":    fiber.Map{"bookmarks": bookmarks},
	})
}

func (h *SeekerHandler) AddBookmark(c fiber.Ctx) error {
	id, ok := seekerID(c)
	if !ok {
		return invalidSession(c)
	}
	jobID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return invalidID(c, "job")
	}

	bookmark, err := h.bookmarkService.Add(c.Context(), id, jobID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Job bookmarked",
		"data":    fiber.Map{"bookmark": bookmark},
	})
}

func (h *SeekerHandler) RemoveBookmark(c fiber.Ctx) error {
	id, ok := seekerID(c)
	if !ok {
		return invalidSession(c)
	}
	jobID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return invalidID(c, "job")
	}

	if err := h.bookmarkService.Remove(c.Context(), id, jobID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Bookmark removed"})
}

func (h *SeekerHandler) Notifications(c fiber.Ctx) error {
	id, ok := seekerID(c)
	if !ok {
		return invalidSession(c)
	}
	notifications, err := h.notificationService.BySeeker(c.Context(), id, queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Notifications fetched",
		"data":    fiber.Map{"notifications": notifications},
	})
}

func (h *SeekerHandler) UnreadCount(c fiber.Ctx) error {
	id, ok := seekerID(c)
	if !ok {
		return invalidSession(c)
	}
	count, err := h.notificationService.UnreadCount(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Unread count fetched",
		"data":    fiber.Map{"count": count},
	})
}

func (h *SeekerHandler) MarkNotificationRead(c fiber.Ctx) error {
	id, ok := seekerID(c)
	if !ok {
		return invalidSession(c)
	}
	notificationID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return invalidID(c, "notification")
	}

	if err := h.notificationService.MarkRead(c.Context(), id, notificationID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notification marked read"})
}

func fail(c fiber.Ctx, err error) error {
	return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{
		"error": apperr.MessageOf(err),
	})
}

func invalidSession(c fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Invalid session",
	})
}

func invalidID(c fiber.Ctx, what string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid " + what + " id",
	})
}
