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

type BookmarkService struct {
	bookmarkRepo BookmarkStore
	jobRepo      JobStore
	seekerRepo   SeekerStore
	companyRepo  CompanyStore
}

func NewBookmarkService(bookmarkRepo BookmarkStore, jobRepo JobStore, seekerRepo SeekerStore, companyRepo CompanyStore) *BookmarkService {
	return &BookmarkService{
		bookmarkRepo: bookmarkRepo,
		jobRepo:      jobRepo,
		seekerRepo:   seekerRepo,
		companyRepo:  companyRepo,
	}
}

// Add bookmarks a job for later. Like applications, at most one per
// seeker per job, enforced by the unique index.
func (s *BookmarkService) Add(ctx context.Context, seekerID, jobID bson.ObjectID) (*models.Bookmark, error) {
	if _, err := s.jobRepo.FindByID(ctx, jobID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("job not found")
		}
		return nil, err
	}

	bookmark := &models.Bookmark{
		SeekerID:  seekerID,
		JobID:     jobID,
		CreatedAt: int(time.Now().Unix()),
	}
	created, err := s.bookmarkRepo.New(ctx, bookmark)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict("job is already bookmarked")
		}
		return nil, err
	}

	if err := s.seekerRepo.IncBookmarkCount(ctx, seekerID, 1); err != nil {
		log.Printf("Failed to increment bookmark count for seeker %s: %v", seekerID.Hex(), err)
	}
	return created, nil
}

func (s *BookmarkService) Remove(ctx context.Context, seekerID, jobID bson.ObjectID) error {
	if err := s.bookmarkRepo.DeleteBySeekerAndJob(ctx, seekerID, jobID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFound("bookmark not found")
		}
		return err
	}

	if err := s.seekerRepo.IncBookmarkCount(ctx, seekerID, -1); err != nil {
		log.Printf("Failed to decrement bookmark count for seeker %s: %v", seekerID.Hex(), err)
	}
	return nil
}

// BySeeker lists the seeker's bookmarks joined with their postings, each
// scored against the seeker's current profile.
func (s *BookmarkService) BySeeker(ctx context.Context, seekerID bson.ObjectID, page, limit int) ([]*models.BookmarkWithJob, error) {
	seeker, err := s.seekerRepo.FindByID(ctx, seekerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Unauthorized("account no longer exists")
		}
		return nil, err
	}

	page, limit = clampPage(page, limit)
	bookmarks, err := s.bookmarkRepo.FindBySeeker(ctx, seekerID, page, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]bson.ObjectID, 0, len(bookmarks))
	for _, bookmark := range bookmarks {
		ids = append(ids, bookmark.JobID)
	}
	jobs, err := joinJobsByID(ctx, s.jobRepo, s.companyRepo, ids)
	if err != nil {
		return nil, err
	}

	views := make([]*models.BookmarkWithJob, 0, len(bookmarks))
	for _, bookmark := range bookmarks {
		job, ok := jobs[bookmark.JobID]
		if !ok {
			continue
		}
		scored := *job
		scored.MatchScore = matching.Score(seeker, &scored)
		views = append(views, &models.BookmarkWithJob{
			Bookmark: *bookmark,
			Job:      &scored,
		})
	}
	return views, nil
}
