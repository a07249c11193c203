package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"careernest/internal/apperr"
	"careernest/internal/events"
	"careernest/internal/location"
	"careernest/internal/matching"
	"careernest/internal/models"
	"careernest/internal/repository"
	"careernest/internal/storage"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type VerificationService struct {
	seekerRepo  SeekerStore
	companyRepo CompanyStore
	shadowRepo  ShadowStore
	jwtService  *JWTService
	resolver    location.Resolver
	uploader    storage.Uploader
	publisher   events.Publisher
}

func NewVerificationService(seekerRepo SeekerStore, companyRepo CompanyStore, shadowRepo ShadowStore, jwtService *JWTService, resolver location.Resolver, uploader storage.Uploader, publisher events.Publisher) *VerificationService {
	return &VerificationService{
		seekerRepo:  seekerRepo,
		companyRepo: companyRepo,
		shadowRepo:  shadowRepo,
		jwtService:  jwtService,
		resolver:    resolver,
		uploader:    uploader,
		publisher:   publisher,
	}
}

// SeekerVerificationInput carries the second registration step: the emailed
// token plus the profile fields collected on the verification form.
type SeekerVerificationInput struct {
	Token            string
	Phone            string
	Area             string
	City             string
	District         string
	ExperienceBucket string
	Skills           []string
	Resume           *multipart.FileHeader
}

// CompleteSeekerVerification turns a shadow registration into a durable
// verified seeker. Validation runs before any side effect; the uploaded
// resume is removed again if the insert afterwards fails.
func (s *VerificationService) CompleteSeekerVerification(ctx context.Context, in SeekerVerificationInput) (*models.Seeker, string, error) {
	claims, err := s.jwtService.VerifyShadowToken(in.Token)
	if err != nil {
		return nil, "", err
	}
	shadow, err := s.shadowRepo.Get(ctx, claims.TokenID)
	if err != nil {
		if errors.Is(err, repository.ErrShadowNotFound) {
			return nil, "", apperr.NotFound("registration token is invalid or has expired")
		}
		return nil, "", err
	}

	if in.Phone == "" {
		return nil, "", apperr.Validation("phone number is required")
	}
	if !models.ValidExperienceBucket(in.ExperienceBucket) {
		return nil, "", apperr.Validation("invalid experience bucket")
	}
	skills := matching.NormalizeSkills(in.Skills)
	if len(skills) == 0 {
		return nil, "", apperr.Validation("at least one recognized skill is required")
	}
	if in.Resume == nil {
		return nil, "", apperr.Validation("resume file is required")
	}

	taken, err := s.seekerRepo.ExistsByPhone(ctx, in.Phone)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check phone uniqueness: %w", err)
	}
	if taken {
		return nil, "", apperr.Conflict("this phone number is already in use")
	}

	normalized, err := s.resolver.Resolve(ctx, in.Area, in.City, in.District)
	if err != nil {
		return nil, "", err
	}

	resumeURL, err := s.uploader.Upload(ctx, in.Resume, "resumes")
	if err != nil {
		return nil, "", apperr.External("could not store resume", err)
	}

	now := int(time.Now().Unix())
	seeker := &models.Seeker{
		FullName:         shadow.FullName,
		Email:            shadow.Email,
		Phone:            in.Phone,
		PasswordHash:     shadow.PasswordHash,
		Location:         normalized.Location,
		Skills:           skills,
		ExperienceBucket: in.ExperienceBucket,
		ResumeURL:        resumeURL,
		IsVerified:       true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	created, err := s.seekerRepo.New(ctx, seeker)
	if err != nil {
		if remErr := s.uploader.Remove(ctx, resumeURL); remErr != nil {
			log.Printf("Failed to remove orphaned resume %s: %v", resumeURL, remErr)
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", apperr.Conflict("an account with this email or phone already exists")
		}
		return nil, "", err
	}

	if err := s.shadowRepo.Delete(ctx, claims.TokenID); err != nil {
		log.Printf("Failed to delete consumed shadow record %s: %v", claims.TokenID, err)
	}

	token, err := s.jwtService.GenerateSessionToken(models.RoleSeeker, created.ID.Hex(), created.Email)
	if err != nil {
		return nil, "", err
	}
	return created, token, nil
}

// SubmitCompanyVerification moves a company to pending after it uploads a
// registration document and a resolvable location. Only unverified and
// rejected companies may submit; a resubmission replaces the old document.
func (s *VerificationService) SubmitCompanyVerification(ctx context.Context, companyID bson.ObjectID, phone, area, city, district, bio string, document *multipart.FileHeader) (*models.Company, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("company not found")
		}
		return nil, err
	}

	if !company.Status.CanSubmitVerification() {
		return nil, apperr.Conflict(fmt.Sprintf("verification cannot be submitted while status is %s", company.Status))
	}
	if document == nil {
		return nil, apperr.Validation("registration document is required")
	}
	if phone == "" {
		return nil, apperr.Validation("phone number is required")
	}

	normalized, err := s.resolver.Resolve(ctx, area, city, district)
	if err != nil {
		return nil, err
	}

	documentURL, err := s.uploader.Upload(ctx, document, "documents")
	if err != nil {
		return nil, apperr.External("could not store registration document", err)
	}

	oldDocumentURL := company.DocumentURL
	updated, err := s.companyRepo.Update(ctx, companyID, bson.M{
		"phone":       phone,
		"location":    normalized.Location,
		"bio":         bio,
		"documentUrl": documentURL,
		"status":      models.StatusPending,
		"updatedAt":   int(time.Now().Unix()),
	})
	if err != nil {
		if remErr := s.uploader.Remove(ctx, documentURL); remErr != nil {
			log.Printf("Failed to remove orphaned document %s: %v", documentURL, remErr)
		}
		return nil, err
	}

	if oldDocumentURL != "" && oldDocumentURL != documentURL {
		if err := s.uploader.Remove(ctx, oldDocumentURL); err != nil {
			log.Printf("Failed to remove superseded document %s: %v", oldDocumentURL, err)
		}
	}
	return updated, nil
}

// DecideCompany records an admin verdict on a pending company, or flips a
// previously settled verdict. Approval requires a document on file. The
// outcome notification goes out asynchronously; publish failures never
// fail the decision itself.
func (s *VerificationService) DecideCompany(ctx context.Context, companyID bson.ObjectID, target models.VerificationStatus) (*models.Company, error) {
	if target != models.StatusVerified && target != models.StatusRejected {
		return nil, apperr.Validation("decision must be verified or rejected")
	}

	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("company not found")
		}
		return nil, err
	}

	if !company.Status.CanDecide(target) {
		return nil, apperr.Conflict(fmt.Sprintf("cannot move company from %s to %s", company.Status, target))
	}
	if target == models.StatusVerified && company.DocumentURL == "" {
		return nil, apperr.Conflict("company has no registration document on file")
	}

	updated, err := s.companyRepo.Update(ctx, companyID, bson.M{
		"status":    target,
		"updatedAt": int(time.Now().Unix()),
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishCompanyStatusChanged(ctx, updated.ID.Hex(), updated.Name, updated.Email, target); err != nil {
			log.Printf("Failed to publish status change for company %s: %v", updated.ID.Hex(), err)
		}
	}
	return updated, nil
}
