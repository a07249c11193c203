package service

import (
	"context"
	"errors"
	"log"
	"time"

	"careernest/internal/apperr"
	"careernest/internal/matching"
	"careernest/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type ApplicationService struct {
	applicationRepo ApplicationStore
	jobRepo         JobStore
	seekerRepo      SeekerStore
	companyRepo     CompanyStore
}

func NewApplicationService(applicationRepo ApplicationStore, jobRepo JobStore, seekerRepo SeekerStore, companyRepo CompanyStore) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		seekerRepo:      seekerRepo,
		companyRepo:     companyRepo,
	}
}

// Apply submits one application per seeker per job, snapshotting the
// seeker's current resume. Uniqueness is enforced by the database index,
// not a racy read-then-write.
func (s *ApplicationService) Apply(ctx context.Context, seekerID, jobID bson.ObjectID) (*models.Application, error) {
	seeker, err := s.seekerRepo.FindByID(ctx, seekerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Unauthorized("account no longer exists")
		}
		return nil, err
	}
	if seeker.ResumeURL == "" {
		return nil, apperr.Validation("upload a resume before applying")
	}

	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("job not found")
		}
		return nil, err
	}
	if job.Deadline <= int(time.Now().Unix()) {
		return nil, apperr.Validation("the application deadline has passed")
	}

	now := int(time.Now().Unix())
	application := &models.Application{
		SeekerID:  seekerID,
		JobID:     jobID,
		ResumeURL: seeker.ResumeURL,
		Status:    models.ApplicationPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.applicationRepo.New(ctx, application)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict("you have already applied to this job")
		}
		return nil, err
	}

	if err := s.jobRepo.IncApplicationCount(ctx, jobID, 1); err != nil {
		log.Printf("Failed to increment application count for job %s: %v", jobID.Hex(), err)
	}
	if err := s.seekerRepo.IncApplicationCount(ctx, seekerID, 1); err != nil {
		log.Printf("Failed to increment application count for seeker %s: %v", seekerID.Hex(), err)
	}
	return created, nil
}

// Withdraw removes the seeker's own application and reverses the counters
// it incremented.
func (s *ApplicationService) Withdraw(ctx context.Context, seekerID, jobID bson.ObjectID) error {
	application, err := s.applicationRepo.FindBySeekerAndJob(ctx, seekerID, jobID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFound("application not found")
		}
		return err
	}

	if err := s.applicationRepo.Delete(ctx, application.ID); err != nil {
		return err
	}
	if err := s.jobRepo.IncApplicationCount(ctx, jobID, -1); err != nil {
		log.Printf("Failed to decrement application count for job %s: %v", jobID.Hex(), err)
	}
	if err := s.seekerRepo.IncApplicationCount(ctx, seekerID, -1); err != nil {
		log.Printf("Failed to decrement application count for seeker %s: %v", seekerID.Hex(), err)
	}
	return nil
}

// Decide lets the owning company accept or reject a pending application.
// A settled application stays settled.
func (s *ApplicationService) Decide(ctx context.Context, companyID, applicationID bson.ObjectID, target models.ApplicationStatus) (*models.Application, error) {
	if !target.Terminal() {
		return nil, apperr.Validation("decision must be accepted or rejected")
	}

	application, err := s.applicationRepo.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("application not found")
		}
		return nil, err
	}

	job, err := s.jobRepo.FindByID(ctx, application.JobID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("job not found")
		}
		return nil, err
	}
	// Applications are only visible to the owning company. A foreign
	// application looks the same as a missing one.
	if job.CompanyID != companyID {
		return nil, apperr.NotFound("application not found")
	}

	if application.Status.Terminal() {
		return nil, apperr.Conflict("application has already been decided")
	}

	return s.applicationRepo.UpdateStatus(ctx, applicationID, target)
}

// BySeeker lists the seeker's own applications joined with their postings,
// each scored against the seeker's current profile. Records whose posting
// or company has vanished are dropped rather than surfaced half-joined.
func (s *ApplicationService) BySeeker(ctx context.Context, seekerID bson.ObjectID, page, limit int) ([]*models.ApplicationWithJob, error) {
	seeker, err := s.seekerRepo.FindByID(ctx, seekerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Unauthorized("account no longer exists")
		}
		return nil, err
	}

	page, limit = clampPage(page, limit)
	applications, err := s.applicationRepo.FindBySeeker(ctx, seekerID, page, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]bson.ObjectID, 0, len(applications))
	for _, application := range applications {
		ids = append(ids, application.JobID)
	}
	jobs, err := joinJobsByID(ctx, s.jobRepo, s.companyRepo, ids)
	if err != nil {
		return nil, err
	}

	views := make([]*models.ApplicationWithJob, 0, len(applications))
	for _, application := range applications {
		job, ok := jobs[application.JobID]
		if !ok {
			continue
		}
		scored := *job
		scored.MatchScore = matching.Score(seeker, &scored)
		views = append(views, &models.ApplicationWithJob{
			Application: *application,
			Job:         &scored,
		})
	}
	return views, nil
}

// ByJob lists applicants for a job the company owns.
func (s *ApplicationService) ByJob(ctx context.Context, companyID, jobID bson.ObjectID, page, limit int) ([]*models.Application, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("job not found")
		}
		return nil, err
	}
	if job.CompanyID != companyID {
		return nil, apperr.Forbidden("job belongs to another company")
	}

	page, limit = clampPage(page, limit)
	return s.applicationRepo.FindByJob(ctx, jobID, page, limit)
}
