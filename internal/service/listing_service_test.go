package service

import (
	"context"
	"testing"
	"time"

	"careernest/internal/apperr"
	"careernest/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type listingFixture struct {
	svc          *ListingService
	seekers      *fakeSeekerStore
	companies    *fakeCompanyStore
	jobs         *fakeJobStore
	applications *fakeApplicationStore
	bookmarks    *fakeBookmarkStore
	company      *models.Company
}

func newListingFixture(t *testing.T) *listingFixture {
	t.Helper()
	f := &listingFixture{
		seekers:      newFakeSeekerStore(),
		companies:    newFakeCompanyStore(),
		jobs:         newFakeJobStore(),
		applications: newFakeApplicationStore(),
		bookmarks:    newFakeBookmarkStore(),
	}
	f.svc = NewListingService(f.jobs, f.companies, f.seekers, f.applications, f.bookmarks)

	company, err := f.companies.New(context.Background(), &models.Company{
		Name:   "Acme",
		Email:  "acme@test.com",
		Status: models.StatusVerified,
		Location: models.Location{
			Area: "Baneshwor", City: "Kathmandu", District: "Kathmandu",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	f.company = company
	return f
}

func (f *listingFixture) addJob(t *testing.T, title string, skills []string, appCount int) *models.Job {
	t.Helper()
	job, err := f.jobs.New(context.Background(), &models.Job{
		CompanyID:          f.company.ID,
		Title:              title,
		Description:        "desc",
		Skills:             skills,
		JobType:            models.JobTypeFullTime,
		RequiredExperience: "1 year",
		ExperienceLevel:    models.LevelEntry,
		Vacancies:          1,
		Deadline:           int(time.Now().Add(24 * time.Hour).Unix()),
		ApplicationCount:   appCount,
		CreatedAt:          int(time.Now().Unix()),
	})
	if err != nil {
		t.Fatal(err)
	}
	return job
}

func (f *listingFixture) addSeeker(t *testing.T, skills []string) *models.Seeker {
	t.Helper()
	seeker, err := f.seekers.New(context.Background(), &models.Seeker{
		FullName:         "Test Seeker",
		Email:            "seeker@test.com",
		Phone:            "9800000001",
		Skills:           skills,
		ExperienceBucket: "1 year",
		IsVerified:       true,
		Location: models.Location{
			Area: "Baneshwor", City: "Kathmandu", District: "Kathmandu",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return seeker
}

func seekerPrincipal(seeker *models.Seeker) *models.Principal {
	return &models.Principal{
		Role:     models.RoleSeeker,
		SeekerID: seeker.ID.Hex(),
		Email:    seeker.Email,
	}
}

func TestListLatestOrdersByRecency(t *testing.T) {
	f := newListingFixture(t)
	f.addJob(t, "older", []string{"go"}, 0)
	f.addJob(t, "newer", []string{"go"}, 0)

	page, err := f.svc.List(context.Background(), nil, models.ListQuery{Mode: models.ModeLatest, Page: 1, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(page.Jobs))
	}
	if page.Jobs[0].Title != "newer" || page.Jobs[1].Title != "older" {
		t.Errorf("wrong order: %s, %s", page.Jobs[0].Title, page.Jobs[1].Title)
	}
	if page.TotalCount != 2 {
		t.Errorf("total = %d, want 2", page.TotalCount)
	}
}

func TestListTopOrdersByApplications(t *testing.T) {
	f := newListingFixture(t)
	f.addJob(t, "quiet", []string{"go"}, 2)
	f.addJob(t, "busy", []string{"go"}, 50)

	page, err := f.svc.List(context.Background(), nil, models.ListQuery{Mode: models.ModeTop, Page: 1, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if page.Jobs[0].Title != "busy" {
		t.Errorf("expected busy first, got %s", page.Jobs[0].Title)
	}
}

func TestListExcludesExpired(t *testing.T) {
	f := newListingFixture(t)
	f.addJob(t, "live", []string{"go"}, 0)
	expired := f.addJob(t, "expired", []string{"go"}, 0)
	f.jobs.jobs[expired.ID].Deadline = int(time.Now().Add(-time.Hour).Unix())

	page, err := f.svc.List(context.Background(), nil, models.ListQuery{Mode: models.ModeLatest, Page: 1, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Jobs) != 1 || page.Jobs[0].Title != "live" {
		t.Errorf("expired job leaked into listing: %+v", page.Jobs)
	}
}

func TestListRecommendedReranksByRelevance(t *testing.T) {
	f := newListingFixture(t)
	seeker := f.addSeeker(t, []string{"go", "react"})

	// popular: half the skills but heavy application traffic
	// relevance 0.7*score + 0.3*applications favors it over the
	// perfect but unnoticed match
	f.addJob(t, "perfect", []string{"go", "react"}, 0)
	f.addJob(t, "popular", []string{"go", "python"}, 200)

	page, err := f.svc.List(context.Background(), seekerPrincipal(seeker), models.ListQuery{Mode: models.ModeRecommended, Page: 1, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(page.Jobs))
	}
	if page.Jobs[0].Title != "popular" {
		t.Errorf("expected popular first, got %s", page.Jobs[0].Title)
	}
	if page.Jobs[0].MatchScore == 0 || page.Jobs[1].MatchScore == 0 {
		t.Error("expected match scores on recommended results")
	}
}

func TestListRecommendedWithoutSkills(t *testing.T) {
	f := newListingFixture(t)
	seeker := f.addSeeker(t, nil)
	f.addJob(t, "anything", []string{"go"}, 0)

	page, err := f.svc.List(context.Background(), seekerPrincipal(seeker), models.ListQuery{Mode: models.ModeRecommended, Page: 1, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Jobs) != 0 {
		t.Errorf("expected empty page, got %d jobs", len(page.Jobs))
	}
	if page.Notice == "" {
		t.Error("expected a notice explaining the empty page")
	}
}

func TestListRecommendedRequiresSeeker(t *testing.T) {
	f := newListingFixture(t)
	_, err := f.svc.List(context.Background(), nil, models.ListQuery{Mode: models.ModeRecommended, Page: 1, Limit: 10})
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Errorf("expected forbidden, got %v", err)
	}
}

func TestListSearchResolvesVocabulary(t *testing.T) {
	f := newListingFixture(t)
	f.addJob(t, "go role", []string{"go"}, 0)
	f.addJob(t, "design role", []string{"figma"}, 0)

	page, err := f.svc.List(context.Background(), nil, models.ListQuery{Mode: models.ModeSearch, Search: "golang developer", Page: 1, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Jobs) != 1 || page.Jobs[0].Title != "go role" {
		t.Errorf("search missed: %+v", page.Jobs)
	}
}

func TestListSearchNoVocabularyMatch(t *testing.T) {
	f := newListingFixture(t)
	f.addJob(t, "go role", []string{"go"}, 0)

	_, err := f.svc.List(context.Background(), nil, models.ListQuery{Mode: models.ModeSearch, Search: "zzqx qwerty", Page: 1, Limit: 10})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected not_found for unresolvable query, got %v", err)
	}
}

func TestDetailAnnotatesSeekerFlags(t *testing.T) {
	f := newListingFixture(t)
	seeker := f.addSeeker(t, []string{"go"})
	job := f.addJob(t, "go role", []string{"go"}, 0)

	ctx := context.Background()
	if _, err := f.applications.New(ctx, &models.Application{SeekerID: seeker.ID, JobID: job.ID, Status: models.ApplicationPending}); err != nil {
		t.Fatal(err)
	}

	detail, err := f.svc.Detail(ctx, seekerPrincipal(seeker), job.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !detail.Applied {
		t.Error("expected applied flag")
	}
	if detail.Bookmarked {
		t.Error("unexpected bookmarked flag")
	}
	if detail.MatchScore == 0 {
		t.Error("expected a match score for the seeker")
	}

	anon, err := f.svc.Detail(ctx, nil, job.ID)
	if err != nil {
		t.Fatal(err)
	}
	if anon.Applied || anon.Bookmarked || anon.MatchScore != 0 {
		t.Error("anonymous detail should carry no seeker annotations")
	}
}

func TestDetailUnknownJob(t *testing.T) {
	f := newListingFixture(t)
	_, err := f.svc.Detail(context.Background(), nil, bson.NewObjectID())
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected not_found, got %v", err)
	}
}

func TestJoinDropsOrphanedJobs(t *testing.T) {
	f := newListingFixture(t)
	f.addJob(t, "kept", []string{"go"}, 0)
	orphan := f.addJob(t, "orphan", []string{"go"}, 0)
	f.jobs.jobs[orphan.ID].CompanyID = bson.NewObjectID()

	page, err := f.svc.List(context.Background(), nil, models.ListQuery{Mode: models.ModeLatest, Page: 1, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Jobs) != 1 || page.Jobs[0].Title != "kept" {
		t.Errorf("orphaned job surfaced: %+v", page.Jobs)
	}
}
