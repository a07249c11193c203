package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"careernest/internal/apperr"
	"careernest/internal/matching"
	"careernest/internal/models"
	"careernest/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50

	// Personalized modes fetch a fixed window from the database, rerank it
	// in memory, then slice the requested page out of the reranked order.
	rerankWindow = 100
)

type ListingService struct {
	jobRepo         JobStore
	companyRepo     CompanyStore
	seekerRepo      SeekerStore
	applicationRepo ApplicationStore
	bookmarkRepo    BookmarkStore
}

func NewListingService(jobRepo JobStore, companyRepo CompanyStore, seekerRepo SeekerStore, applicationRepo ApplicationStore, bookmarkRepo BookmarkStore) *ListingService {
	return &ListingService{
		jobRepo:         jobRepo,
		companyRepo:     companyRepo,
		seekerRepo:      seekerRepo,
		applicationRepo: applicationRepo,
		bookmarkRepo:    bookmarkRepo,
	}
}

// List dispatches a listing query to its mode pipeline. Expired postings
// never appear in any mode. The principal is optional: anonymous callers
// get latest, top, and search, while recommended requires a seeker.
func (s *ListingService) List(ctx context.Context, principal *models.Principal, query models.ListQuery) (*models.JobPage, error) {
	page, limit := clampPage(query.Page, query.Limit)

	switch query.Mode {
	case models.ModeLatest:
		return s.listSorted(ctx, "createdAt", page, limit)
	case models.ModeTop:
		return s.listSorted(ctx, "applicationCount", page, limit)
	case models.ModeRecommended:
		seeker, err := s.requireSeeker(ctx, principal)
		if err != nil {
			return nil, err
		}
		return s.listRecommended(ctx, seeker, page, limit)
	case models.ModeSearch:
		var seeker *models.Seeker
		if principal != nil && principal.IsSeeker() {
			if found, err := s.requireSeeker(ctx, principal); err == nil {
				seeker = found
			}
		}
		return s.listSearch(ctx, seeker, query.Search, page, limit)
	default:
		return nil, apperr.Validation("unknown listing mode")
	}
}

func (s *ListingService) listSorted(ctx context.Context, sortField string, page, limit int) (*models.JobPage, error) {
	filter := repository.JobFilter{NonExpired: true}

	total, err := s.jobRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobRepo.Find(ctx, filter, sortField, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	joined, err := joinCompanies(ctx, s.companyRepo, jobs)
	if err != nil {
		return nil, err
	}
	return &models.JobPage{
		Jobs:        joined,
		TotalCount:  total,
		CurrentPage: page,
		PageCount:   pageCount(total, limit),
	}, nil
}

func (s *ListingService) listRecommended(ctx context.Context, seeker *models.Seeker, page, limit int) (*models.JobPage, error) {
	if len(seeker.Skills) == 0 {
		return &models.JobPage{
			Jobs:        []*models.JobWithCompany{},
			CurrentPage: page,
			Notice:      "add skills to your profile to receive recommendations",
		}, nil
	}

	filter := repository.JobFilter{NonExpired: true, Skills: seeker.Skills}
	return s.rerankedPage(ctx, seeker, filter, page, limit)
}

func (s *ListingService) listSearch(ctx context.Context, seeker *models.Seeker, search string, page, limit int) (*models.JobPage, error) {
	parsed := matching.ParseQuery(search)
	if parsed.Empty() {
		return nil, apperr.NotFound("no jobs match the search terms")
	}

	filter := repository.JobFilter{
		NonExpired:       true,
		Skills:           parsed.Skills,
		JobTypes:         parsed.JobTypes,
		ExperienceLevels: parsed.ExperienceLevels,
	}
	return s.rerankedPage(ctx, seeker, filter, page, limit)
}

// rerankedPage fetches a recency window of candidates, joins companies,
// scores and reorders the whole window for the seeker, then slices the
// requested page. TotalCount still reflects the full database match count,
// so pages beyond the window fall back to recency order implicitly by
// being empty within it.
func (s *ListingService) rerankedPage(ctx context.Context, seeker *models.Seeker, filter repository.JobFilter, page, limit int) (*models.JobPage, error) {
	total, err := s.jobRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	window, err := s.jobRepo.Find(ctx, filter, "createdAt", 0, rerankWindow)
	if err != nil {
		return nil, err
	}
	joined, err := joinCompanies(ctx, s.companyRepo, window)
	if err != nil {
		return nil, err
	}

	if seeker != nil {
		matching.RankForSeeker(seeker, joined)
	}

	start := (page - 1) * limit
	if start > len(joined) {
		start = len(joined)
	}
	end := start + limit
	if end > len(joined) {
		end = len(joined)
	}

	return &models.JobPage{
		Jobs:        joined[start:end],
		TotalCount:  total,
		CurrentPage: page,
		PageCount:   pageCount(total, limit),
	}, nil
}

// Detail returns a single posting joined with its company, annotated with
// the requesting seeker's applied and bookmarked flags when present.
func (s *ListingService) Detail(ctx context.Context, principal *models.Principal, jobID bson.ObjectID) (*models.JobDetail, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("job not found")
		}
		return nil, err
	}

	joined, err := joinCompanies(ctx, s.companyRepo, []*models.Job{job})
	if err != nil {
		return nil, err
	}
	if len(joined) == 0 {
		return nil, apperr.NotFound("job not found")
	}
	detail := &models.JobDetail{JobWithCompany: *joined[0]}

	if principal != nil && principal.IsSeeker() {
		seekerID, err := bson.ObjectIDFromHex(principal.SeekerID)
		if err != nil {
			return nil, apperr.Unauthorized("invalid session")
		}
		if _, err := s.applicationRepo.FindBySeekerAndJob(ctx, seekerID, jobID); err == nil {
			detail.Applied = true
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		if _, err := s.bookmarkRepo.FindBySeekerAndJob(ctx, seekerID, jobID); err == nil {
			detail.Bookmarked = true
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		if seeker, err := s.seekerRepo.FindByID(ctx, seekerID); err == nil {
			detail.MatchScore = matching.Score(seeker, joined[0])
		}
	}
	return detail, nil
}

// CompanyJobs lists a company's own postings, including expired ones.
func (s *ListingService) CompanyJobs(ctx context.Context, companyID bson.ObjectID, page, limit int) (*models.JobPage, error) {
	page, limit = clampPage(page, limit)
	filter := repository.JobFilter{CompanyID: companyID}

	total, err := s.jobRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobRepo.Find(ctx, filter, "createdAt", (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	joined, err := joinCompanies(ctx, s.companyRepo, jobs)
	if err != nil {
		return nil, err
	}
	return &models.JobPage{
		Jobs:        joined,
		TotalCount:  total,
		CurrentPage: page,
		PageCount:   pageCount(total, limit),
	}, nil
}

// joinCompanies resolves company display fields for a batch of jobs with a
// single lookup. Jobs whose company has vanished are dropped rather than
// surfaced half-joined. Shared with the applied-jobs and bookmark views.
func joinCompanies(ctx context.Context, companyRepo CompanyStore, jobs []*models.Job) ([]*models.JobWithCompany, error) {
	if len(jobs) == 0 {
		return []*models.JobWithCompany{}, nil
	}

	seen := make(map[bson.ObjectID]bool, len(jobs))
	ids := make([]bson.ObjectID, 0, len(jobs))
	for _, job := range jobs {
		if !seen[job.CompanyID] {
			seen[job.CompanyID] = true
			ids = append(ids, job.CompanyID)
		}
	}

	companies, err := companyRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to join companies: %w", err)
	}
	byID := make(map[bson.ObjectID]*models.Company, len(companies))
	for _, company := range companies {
		byID[company.ID] = company
	}

	joined := make([]*models.JobWithCompany, 0, len(jobs))
	for _, job := range jobs {
		company, ok := byID[job.CompanyID]
		if !ok {
			continue
		}
		joined = append(joined, &models.JobWithCompany{
			Job:             *job,
			CompanyName:     company.Name,
			CompanyLogoURL:  company.LogoURL,
			CompanyLocation: company.Location,
		})
	}
	return joined, nil
}

// joinJobsByID loads the referenced postings and joins their companies,
// keyed by job ID. IDs whose posting or company is gone are absent from the
// result rather than an error; the job-delete cascade makes that window
// small but not empty.
func joinJobsByID(ctx context.Context, jobRepo JobStore, companyRepo CompanyStore, ids []bson.ObjectID) (map[bson.ObjectID]*models.JobWithCompany, error) {
	jobs := make([]*models.Job, 0, len(ids))
	for _, id := range ids {
		job, err := jobRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				continue
			}
			return nil, err
		}
		jobs = append(jobs, job)
	}

	joined, err := joinCompanies(ctx, companyRepo, jobs)
	if err != nil {
		return nil, err
	}
	byID := make(map[bson.ObjectID]*models.JobWithCompany, len(joined))
	for _, job := range joined {
		byID[job.ID] = job
	}
	return byID, nil
}

func (s *ListingService) requireSeeker(ctx context.Context, principal *models.Principal) (*models.Seeker, error) {
	if principal == nil || !principal.IsSeeker() {
		return nil, apperr.Forbidden("seeker account required")
	}
	seekerID, err := bson.ObjectIDFromHex(principal.SeekerID)
	if err != nil {
		return nil, apperr.Unauthorized("invalid session")
	}
	seeker, err := s.seekerRepo.FindByID(ctx, seekerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Unauthorized("account no longer exists")
		}
		return nil, err
	}
	return seeker, nil
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func pageCount(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}
