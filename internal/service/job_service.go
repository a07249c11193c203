package service

import (
	"context"
	"errors"
	"log"
	"time"

	"careernest/internal/apperr"
	"careernest/internal/events"
	"careernest/internal/matching"
	"careernest/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type JobService struct {
	jobRepo         JobStore
	companyRepo     CompanyStore
	seekerRepo      SeekerStore
	applicationRepo ApplicationStore
	bookmarkRepo    BookmarkStore
	publisher       events.Publisher
}

func NewJobService(jobRepo JobStore, companyRepo CompanyStore, seekerRepo SeekerStore, applicationRepo ApplicationStore, bookmarkRepo BookmarkStore, publisher events.Publisher) *JobService {
	return &JobService{
		jobRepo:         jobRepo,
		companyRepo:     companyRepo,
		seekerRepo:      seekerRepo,
		applicationRepo: applicationRepo,
		bookmarkRepo:    bookmarkRepo,
		publisher:       publisher,
	}
}

// Create posts a new job for a verified company. Skill tags are normalized
// through the platform dictionary; a posting whose tags all fall outside
// the dictionary is rejected since it could never be matched or searched.
func (s *JobService) Create(ctx context.Context, companyID bson.ObjectID, req models.CreateJobRequest) (*models.Job, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("company not found")
		}
		return nil, err
	}
	if company.Status != models.StatusVerified {
		return nil, apperr.Forbidden("only verified companies can post jobs")
	}

	if req.Title == "" || req.Description == "" {
		return nil, apperr.Validation("title and description are required")
	}
	if !req.JobType.Valid() {
		return nil, apperr.Validation("invalid job type")
	}
	if !req.ExperienceLevel.Valid() {
		return nil, apperr.Validation("invalid experience level")
	}
	if req.Vacancies < 1 {
		return nil, apperr.Validation("vacancies must be at least 1")
	}
	if req.Deadline <= int(time.Now().Unix()) {
		return nil, apperr.Validation("deadline must be in the future")
	}
	skills := matching.NormalizeSkills(req.Skills)
	if len(skills) == 0 {
		return nil, apperr.Validation("at least one recognized skill is required")
	}

	salary := req.Salary
	if salary == "" {
		salary = "Negotiable"
	}

	now := int(time.Now().Unix())
	job := &models.Job{
		CompanyID:          companyID,
		Title:              req.Title,
		Description:        req.Description,
		Skills:             skills,
		JobType:            req.JobType,
		RequiredExperience: req.RequiredExperience,
		ExperienceLevel:    req.ExperienceLevel,
		Salary:             salary,
		Vacancies:          req.Vacancies,
		Deadline:           req.Deadline,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	created, err := s.jobRepo.New(ctx, job)
	if err != nil {
		return nil, err
	}

	if err := s.companyRepo.IncJobCount(ctx, companyID, 1); err != nil {
		log.Printf("Failed to increment job count for company %s: %v", companyID.Hex(), err)
	}
	return created, nil
}

// Delete removes a posting and cascades over everything hanging off it:
// applications, bookmarks, and the per-entity counters they contributed
// to. Applicants are told about the removal through the event bus.
func (s *JobService) Delete(ctx context.Context, companyID, jobID bson.ObjectID) error {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFound("job not found")
		}
		return err
	}
	if job.CompanyID != companyID {
		return apperr.Forbidden("job belongs to another company")
	}

	applications, err := s.applicationRepo.FindAllByJob(ctx, jobID)
	if err != nil {
		return err
	}
	bookmarks, err := s.bookmarkRepo.FindAllByJob(ctx, jobID)
	if err != nil {
		return err
	}

	if err := s.jobRepo.Delete(ctx, jobID); err != nil {
		return err
	}

	if _, err := s.applicationRepo.DeleteByJob(ctx, jobID); err != nil {
		log.Printf("Failed to delete applications for job %s: %v", jobID.Hex(), err)
	}
	if _, err := s.bookmarkRepo.DeleteByJob(ctx, jobID); err != nil {
		log.Printf("Failed to delete bookmarks for job %s: %v", jobID.Hex(), err)
	}

	for _, application := range applications {
		if err := s.seekerRepo.IncApplicationCount(ctx, application.SeekerID, -1); err != nil {
			log.Printf("Failed to decrement application count for seeker %s: %v", application.SeekerID.Hex(), err)
		}
	}
	for _, bookmark := range bookmarks {
		if err := s.seekerRepo.IncBookmarkCount(ctx, bookmark.SeekerID, -1); err != nil {
			log.Printf("Failed to decrement bookmark count for seeker %s: %v", bookmark.SeekerID.Hex(), err)
		}
	}
	if err := s.companyRepo.IncJobCount(ctx, companyID, -1); err != nil {
		log.Printf("Failed to decrement job count for company %s: %v", companyID.Hex(), err)
	}

	if s.publisher != nil && len(applications) > 0 {
		seekerIDs := make([]string, 0, len(applications))
		for _, application := range applications {
			seekerIDs = append(seekerIDs, application.SeekerID.Hex())
		}
		if err := s.publisher.PublishJobDeleted(ctx, jobID.Hex(), job.Title, seekerIDs); err != nil {
			log.Printf("Failed to publish deletion of job %s: %v", jobID.Hex(), err)
		}
	}
	return nil
}
