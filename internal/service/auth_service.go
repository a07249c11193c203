package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"careernest/internal/apperr"
	"careernest/internal/config"
	"careernest/internal/mailer"
	"careernest/internal/models"

	redis_v9 "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/crypto/bcrypt"
)

const loginLockKeyPrefix = "careernest:login-lock:"

type AuthService struct {
	seekerRepo  SeekerStore
	companyRepo CompanyStore
	shadowRepo  ShadowStore
	redisClient *redis_v9.Client
	jwtService  *JWTService
	sender      mailer.Sender
	cfg         *config.Config

	mu             sync.Mutex
	failedAttempts map[string]*failedLogin
}

type failedLogin struct {
	failedAt     int64
	failedNumber int
}

func NewAuthService(seekerRepo SeekerStore, companyRepo CompanyStore, shadowRepo ShadowStore, redisClient *redis_v9.Client, jwtService *JWTService, sender mailer.Sender, cfg *config.Config) *AuthService {
	return &AuthService{
		seekerRepo:     seekerRepo,
		companyRepo:    companyRepo,
		shadowRepo:     shadowRepo,
		redisClient:    redisClient,
		jwtService:     jwtService,
		sender:         sender,
		cfg:            cfg,
		failedAttempts: make(map[string]*failedLogin),
	}
}

// RegisterSeeker runs step one of seeker registration: a shadow record in
// ephemeral storage keyed by a signed token, delivered by email. The
// durable profile is only created when verification completes before the
// token lapses. An email delivery failure rolls the shadow record back.
func (s *AuthService) RegisterSeeker(ctx context.Context, fullName, email, password string) error {
	if fullName == "" || email == "" || password == "" {
		return apperr.Validation("full name, email, and password are required")
	}
	if !validEmail(email) {
		return apperr.Validation("invalid email format")
	}
	if len(password) < 8 {
		return apperr.Validation("password must be at least 8 characters")
	}

	if _, err := s.seekerRepo.FindByEmail(ctx, email); err == nil {
		return apperr.Conflict("an account with this email already exists")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to check existing seeker: %w", err)
	}

	pending, err := s.shadowRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check pending registrations: %w", err)
	}
	if pending {
		return apperr.Conflict("a registration for this email is already awaiting verification")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	tokenString, tokenID, err := s.jwtService.GenerateShadowToken(email)
	if err != nil {
		return err
	}

	shadow := &models.ShadowSeeker{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    int(time.Now().Unix()),
	}
	if err := s.shadowRepo.Save(ctx, tokenID, shadow, s.cfg.ShadowTokenTTL); err != nil {
		return err
	}

	body := fmt.Sprintf("Hello %s,\n\nComplete your CareerNest registration within %d minutes using this token:\n\n%s\n",
		fullName, int(s.cfg.ShadowTokenTTL.Minutes()), tokenString)
	if err := s.sender.Send(email, "Verify your CareerNest registration", body); err != nil {
		// Initial-registration email is authoritative: no mail, no account.
		if delErr := s.shadowRepo.Delete(ctx, tokenID); delErr != nil {
			log.Printf("Failed to roll back shadow registration %s: %v", tokenID, delErr)
		}
		return apperr.External("could not send verification email", err)
	}

	// One-shot sweep per registration attempt, independent of the token's
	// own expiry; deleting an already-expired key is a no-op.
	time.AfterFunc(s.cfg.ShadowCleanupDelay, func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.shadowRepo.Delete(cleanupCtx, tokenID); err != nil {
			log.Printf("Shadow cleanup for %s: %v", tokenID, err)
		}
	})

	return nil
}

// RegisterCompany creates a company account in the unverified state. The
// welcome email is authoritative here too: a send failure deletes the
// just-created account.
func (s *AuthService) RegisterCompany(ctx context.Context, name, email, password string) (*models.Company, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperr.Validation("company name, email, and password are required")
	}
	if !validEmail(email) {
		return nil, apperr.Validation("invalid email format")
	}
	if len(password) < 8 {
		return nil, apperr.Validation("password must be at least 8 characters")
	}

	if _, err := s.companyRepo.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("a company with this email already exists")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check existing company: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	company := &models.Company{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Status:       models.StatusUnverified,
	}
	created, err := s.companyRepo.New(ctx, company)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict("a company with this email already exists")
		}
		return nil, err
	}

	body := fmt.Sprintf("Hello %s,\n\nYour CareerNest company account has been created. Submit your verification documents to start posting jobs.", name)
	if err := s.sender.Send(email, "Welcome to CareerNest", body); err != nil {
		if delErr := s.companyRepo.Delete(ctx, created.ID); delErr != nil {
			log.Printf("Failed to roll back company %s after email failure: %v", created.ID.Hex(), delErr)
		}
		return nil, apperr.External("could not send welcome email", err)
	}

	return created, nil
}

// LoginSeeker authenticates a seeker and issues a session token.
func (s *AuthService) LoginSeeker(ctx context.Context, email, password string) (string, *models.Seeker, error) {
	if err := s.checkLock(ctx, email); err != nil {
		return "", nil, err
	}

	seeker, err := s.seekerRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.recordFailure(ctx, email)
			return "", nil, apperr.Unauthorized("invalid email or password")
		}
		return "", nil, fmt.Errorf("failed to find seeker: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(seeker.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return "", nil, apperr.Unauthorized("invalid email or password")
	}

	token, err := s.jwtService.GenerateSessionToken(models.RoleSeeker, seeker.ID.Hex(), seeker.Email)
	if err != nil {
		return "", nil, err
	}
	return token, seeker, nil
}

func (s *AuthService) LoginCompany(ctx context.Context, email, password string) (string, *models.Company, error) {
	if err := s.checkLock(ctx, email); err != nil {
		return "", nil, err
	}

	company, err := s.companyRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.recordFailure(ctx, email)
			return "", nil, apperr.Unauthorized("invalid email or password")
		}
		return "", nil, fmt.Errorf("failed to find company: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(company.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return "", nil, apperr.Unauthorized("invalid email or password")
	}

	token, err := s.jwtService.GenerateSessionToken(models.RoleCompany, company.ID.Hex(), company.Email)
	if err != nil {
		return "", nil, err
	}
	return token, company, nil
}

// LoginAdmin checks the fixed admin credential pair from configuration;
// there is no admin lifecycle beyond this.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (string, error) {
	if err := s.checkLock(ctx, email); err != nil {
		return "", err
	}

	if email != s.cfg.AdminEmail ||
		bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return "", apperr.Unauthorized("invalid email or password")
	}

	return s.jwtService.GenerateSessionToken(models.RoleAdmin, "", email)
}

func (s *AuthService) checkLock(ctx context.Context, email string) error {
	if s.redisClient == nil {
		return nil
	}
	locked, err := s.redisClient.Get(ctx, loginLockKeyPrefix+email).Int64()
	if err == nil && locked != 0 {
		return apperr.Forbidden("account temporarily locked, try again later")
	}
	return nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	now := time.Now().UnixMilli()

	s.mu.Lock()
	attempt := s.failedAttempts[email]
	if attempt == nil {
		attempt = &failedLogin{}
		s.failedAttempts[email] = attempt
	}
	rapid := now-attempt.failedAt < 1000
	attempt.failedAt = now
	attempt.failedNumber++
	count := attempt.failedNumber
	s.mu.Unlock()

	if s.redisClient == nil {
		return
	}
	if rapid {
		log.Printf("WARN: Suspicious login activity for %s. Instant lock activated", email)
		s.redisClient.Set(ctx, loginLockKeyPrefix+email, now, 10*time.Minute)
	}
	if count > 10 {
		log.Printf("Login for %s failed %v times. Locked for 10 minutes", email, count)
		s.redisClient.Set(ctx, loginLockKeyPrefix+email, now, 10*time.Minute)
	}
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && strings.Contains(email[at:], ".")
}
