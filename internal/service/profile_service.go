package service

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"time"

	"careernest/internal/apperr"
	"careernest/internal/location"
	"careernest/internal/matching"
	"careernest/internal/models"
	"careernest/internal/storage"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type ProfileService struct {
	seekerRepo  SeekerStore
	companyRepo CompanyStore
	resolver    location.Resolver
	uploader    storage.Uploader
}

func NewProfileService(seekerRepo SeekerStore, companyRepo CompanyStore, resolver location.Resolver, uploader storage.Uploader) *ProfileService {
	return &ProfileService{
		seekerRepo:  seekerRepo,
		companyRepo: companyRepo,
		resolver:    resolver,
		uploader:    uploader,
	}
}

// SeekerUpdate carries the editable seeker profile fields. Nil or empty
// fields are left untouched; skills and location are replaced wholesale
// when provided.
type SeekerUpdate struct {
	FullName         string
	Phone            string
	Bio              string
	ExperienceBucket string
	Skills           []string
	Area             string
	City             string
	District         string
}

func (s *ProfileService) GetSeeker(ctx context.Context, seekerID bson.ObjectID) (*models.Seeker, error) {
	seeker, err := s.seekerRepo.FindByID(ctx, seekerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("seeker not found")
		}
		return nil, err
	}
	return seeker, nil
}

func (s *ProfileService) UpdateSeeker(ctx context.Context, seekerID bson.ObjectID, update SeekerUpdate) (*models.Seeker, error) {
	fields := bson.M{"updatedAt": int(time.Now().Unix())}

	if update.FullName != "" {
		fields["fullName"] = update.FullName
	}
	if update.Bio != "" {
		fields["bio"] = update.Bio
	}
	if update.Phone != "" {
		taken, err := s.seekerRepo.ExistsByPhone(ctx, update.Phone)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("this phone number is already in use")
		}
		fields["phone"] = update.Phone
	}
	if update.ExperienceBucket != "" {
		if !models.ValidExperienceBucket(update.ExperienceBucket) {
			return nil, apperr.Validation("invalid experience bucket")
		}
		fields["experience"] = update.ExperienceBucket
	}
	if update.Skills != nil {
		skills := matching.NormalizeSkills(update.Skills)
		if len(skills) == 0 {
			return nil, apperr.Validation("at least one recognized skill is required")
		}
		fields["skills"] = skills
	}
	if update.Area != "" || update.City != "" || update.District != "" {
		normalized, err := s.resolver.Resolve(ctx, update.Area, update.City, update.District)
		if err != nil {
			return nil, err
		}
		fields["location"] = normalized.Location
	}

	updated, err := s.seekerRepo.Update(ctx, seekerID, fields)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("seeker not found")
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict("this phone number is already in use")
		}
		return nil, err
	}
	return updated, nil
}

// ReplaceSeekerFile swaps the seeker's resume or profile picture, removing
// the previous object once the new one is stored and recorded.
func (s *ProfileService) ReplaceSeekerFile(ctx context.Context, seekerID bson.ObjectID, file *multipart.FileHeader, field string) (*models.Seeker, error) {
	var folder, bsonField string
	switch field {
	case "resume":
		folder, bsonField = "resumes", "resumeUrl"
	case "picture":
		folder, bsonField = "pictures", "pictureUrl"
	default:
		return nil, apperr.Validation("unknown file field")
	}
	if file == nil {
		return nil, apperr.Validation("file is required")
	}

	seeker, err := s.GetSeeker(ctx, seekerID)
	if err != nil {
		return nil, err
	}

	newURL, err := s.uploader.Upload(ctx, file, folder)
	if err != nil {
		return nil, apperr.External("could not store file", err)
	}

	updated, err := s.seekerRepo.Update(ctx, seekerID, bson.M{
		bsonField:   newURL,
		"updatedAt": int(time.Now().Unix()),
	})
	if err != nil {
		if remErr := s.uploader.Remove(ctx, newURL); remErr != nil {
			log.Printf("Failed to remove orphaned upload %s: %v", newURL, remErr)
		}
		return nil, err
	}

	oldURL := seeker.ResumeURL
	if field == "picture" {
		oldURL = seeker.PictureURL
	}
	if oldURL != "" && oldURL != newURL {
		if err := s.uploader.Remove(ctx, oldURL); err != nil {
			log.Printf("Failed to remove replaced file %s: %v", oldURL, err)
		}
	}
	return updated, nil
}

func (s *ProfileService) GetCompany(ctx context.Context, companyID bson.ObjectID) (*models.Company, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("company not found")
		}
		return nil, err
	}
	return company, nil
}

// UpdateCompany edits the company's display fields. Verification fields
// (document, status) are owned by the verification flow, not this one.
func (s *ProfileService) UpdateCompany(ctx context.Context, companyID bson.ObjectID, name, phone, bio string) (*models.Company, error) {
	fields := bson.M{"updatedAt": int(time.Now().Unix())}
	if name != "" {
		fields["name"] = name
	}
	if phone != "" {
		fields["phone"] = phone
	}
	if bio != "" {
		fields["bio"] = bio
	}

	updated, err := s.companyRepo.Update(ctx, companyID, fields)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("company not found")
		}
		return nil, err
	}
	return updated, nil
}

// ReplaceCompanyLogo swaps the company logo, dropping the old object.
func (s *ProfileService) ReplaceCompanyLogo(ctx context.Context, companyID bson.ObjectID, file *multipart.FileHeader) (*models.Company, error) {
	if file == nil {
		return nil, apperr.Validation("file is required")
	}

	company, err := s.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	newURL, err := s.uploader.Upload(ctx, file, "logos")
	if err != nil {
		return nil, apperr.External("could not store logo", err)
	}

	updated, err := s.companyRepo.Update(ctx, companyID, bson.M{
		"logoUrl":   newURL,
		"updatedAt": int(time.Now().Unix()),
	})
	if err != nil {
		if remErr := s.uploader.Remove(ctx, newURL); remErr != nil {
			log.Printf("Failed to remove orphaned logo %s: %v", newURL, remErr)
		}
		return nil, err
	}

	if company.LogoURL != "" && company.LogoURL != newURL {
		if err := s.uploader.Remove(ctx, company.LogoURL); err != nil {
			log.Printf("Failed to remove replaced logo %s: %v", company.LogoURL, err)
		}
	}
	return updated, nil
}
