package handlers

import (
	"careernest/internal/apperr"
	"careernest/internal/service"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careernest_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"status", "role"},
	)

	registrationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careernest_registration_attempts_total",
			Help: "Total number of registration attempts",
		},
		[]string{"status", "role"},
	)

	verificationCompletions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careernest_seeker_verifications_total",
			Help: "Total number of seeker verification completions",
		},
		[]string{"status"},
	)
)

type AuthHandler struct {
	authService         *service.AuthService
	verificationService *service.VerificationService
}

func NewAuthHandler(authService *service.AuthService, verificationService *service.VerificationService) *AuthHandler {
	return &AuthHandler{
		authService:         authService,
		verificationService: verificationService,
	}
}

func (h *AuthHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", h.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authGroup := app.Group("/public/auth")
	authGroup.Post("/seeker/register", h.RegisterSeeker)
	authGroup.Post("/seeker/verify", h.VerifySeeker)
	authGroup.Post("/seeker/login", h.LoginSeeker)
	authGroup.Post("/company/register", h.RegisterCompany)
	authGroup.Post("/company/login", h.LoginCompany)
	authGroup.Post("/admin/login", h.LoginAdmin)
}

func (h *AuthHandler) HealthCheck(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *AuthHandler) RegisterSeeker(c fiber.Ctx) error {
	var req struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind().Body(&req); err != nil {
		registrationAttempts.WithLabelValues("failure", "seeker").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.authService.RegisterSeeker(c.Context(), req.FullName, req.Email, req.Password); err != nil {
		registrationAttempts.WithLabelValues("failure", "seeker").Inc()
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{
			"error": apperr.MessageOf(err),
		})
	}

	registrationAttempts.WithLabelValues("success", "seeker").Inc()
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Verification email sent",
	})
}

// VerifySeeker is the second registration step: the emailed token plus the
// profile form, multipart because it carries the resume.
func (h *AuthHandler) VerifySeeker(c fiber.Ctx) error {
	resume, err := c.FormFile("resume")
	if err != nil {
		resume = nil
	}

	in := service.SeekerVerificationInput{
		Token:            c.FormValue("token"),
		Phone:            c.FormValue("phone"),
		Area:             c.FormValue("area"),
		City:             c.FormValue("city"),
		District:         c.FormValue("district"),
		ExperienceBucket: c.FormValue("experience"),
		Resume:           resume,
	}
	if form, err := c.MultipartForm(); err == nil {
		in.Skills = form.Value["skills"]
	}

	seeker, token, err := h.verificationService.CompleteSeekerVerification(c.Context(), in)
	if err != nil {
		verificationCompletions.WithLabelValues("failure").Inc()
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{
			"error": apperr.MessageOf(err),
		})
	}

	verificationCompletions.WithLabelValues("success").Inc()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Account verified",
		"data": fiber.Map{
			"token":  token,
			"seeker": seeker,
		},
	})
}

func (h *AuthHandler) LoginSeeker(c fiber.Ctx) error {
	email, password, ok := bindLogin(c)
	if !ok {
		loginAttempts.WithLabelValues("failure", "seeker").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}

	token, seeker, err := h.authService.LoginSeeker(c.Context(), email, password)
	if err != nil {
		loginAttempts.WithLabelValues("failure", "seeker").Inc()
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{
			"error": apperr.MessageOf(err),
		})
	}

	loginAttempts.WithLabelValues("success", "seeker").Inc()
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"data": fiber.Map{
			"token":  token,
			"seeker": seeker,
		},
	})
}

func (h *AuthHandler) RegisterCompany(c fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind().Body(&req); err != nil {
		registrationAttempts.WithLabelValues("failure", "company").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	company, err := h.authService.RegisterCompany(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		registrationAttempts.WithLabelValues("failure", "company").Inc()
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{
			"error": apperr.MessageOf(err),
		})
	}

	registrationAttempts.WithLabelValues("success", "company").Inc()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Company registered",
		"data":    fiber.Map{"company": company},
	})
}

func (h *AuthHandler) LoginCompany(c fiber.Ctx) error {
	email, password, ok := bindLogin(c)
	if !ok {
		loginAttempts.WithLabelValues("failure", "company").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}

	token, company, err := h.authService.LoginCompany(c.Context(), email, password)
	if err != nil {
		loginAttempts.WithLabelValues("failure", "company").Inc()
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{
			"error": apperr.MessageOf(err),
		})
	}

	loginAttempts.WithLabelValues("success", "company").Inc()
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"data": fiber.Map{
			"token":   token,
			"company": company,
		},
	})
}

func (h *AuthHandler) LoginAdmin(c fiber.Ctx) error {
	email, password, ok := bindLogin(c)
	if !ok {
		loginAttempts.WithLabelValues("failure", "admin").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}

	token, err := h.authService.LoginAdmin(c.Context(), email, password)
	if err != nil {
		loginAttempts.WithLabelValues("failure", "admin").Inc()
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{
			"error": apperr.MessageOf(err),
		})
	}

	loginAttempts.WithLabelValues("success", "admin").Inc()
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"data":    fiber.Map{"token": token},
	})
}

func bindLogin(c fiber.Ctx) (email, password string, ok bool) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return "", "", false
	}
	if req.Email == "" || req.Password == "" {
		return "", "", false
	}
	return req.Email, req.Password, true
}

