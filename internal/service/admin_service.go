package service

import (
	"context"
	"errors"

	"careernest/internal/apperr"
	"careernest/internal/models"
	"careernest/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type AdminService struct {
	seekerRepo      SeekerStore
	companyRepo     CompanyStore
	jobRepo         JobStore
	applicationRepo ApplicationStore
}

func NewAdminService(seekerRepo SeekerStore, companyRepo CompanyStore, jobRepo JobStore, applicationRepo ApplicationStore) *AdminService {
	return &AdminService{
		seekerRepo:      seekerRepo,
		companyRepo:     companyRepo,
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
	}
}

// Companies lists companies, optionally narrowed to one verification
// status. The admin review queue is the pending slice of this.
func (s *AdminService) Companies(ctx context.Context, status models.VerificationStatus, page, limit int) ([]*models.Company, error) {
	page, limit = clampPage(page, limit)
	if status == "" {
		return s.companyRepo.FindAll(ctx, page, limit)
	}
	if !status.Valid() {
		return nil, apperr.Validation("invalid verification status")
	}
	return s.companyRepo.FindByStatus(ctx, status, page, limit)
}

func (s *AdminService) Seekers(ctx context.Context, page, limit int) ([]*models.Seeker, error) {
	page, limit = clampPage(page, limit)
	return s.seekerRepo.FindAll(ctx, page, limit)
}

func (s *AdminService) Stats(ctx context.Context) (*models.PlatformStats, error) {
	seekers, err := s.seekerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	companies, err := s.companyRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.companyRepo.CountByStatus(ctx, models.StatusPending)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobRepo.Count(ctx, repository.JobFilter{})
	if err != nil {
		return nil, err
	}
	applications, err := s.applicationRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &models.PlatformStats{
		Seekers:          seekers,
		Companies:        companies,
		PendingCompanies: pending,
		Jobs:             jobs,
		Applications:     applications,
	}, nil
}

func (s *AdminService) DeleteSeeker(ctx context.Context, seekerID bson.ObjectID) error {
	if err := s.seekerRepo.Delete(ctx, seekerID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFound("seeker not found")
		}
		return err
	}
	return nil
}

func (s *AdminService) DeleteCompany(ctx context.Context, companyID bson.ObjectID) error {
	if err := s.companyRepo.Delete(ctx, companyID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFound("company not found")
		}
		return err
	}
	return nil
}
