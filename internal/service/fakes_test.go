package service

import (
	"context"
	"mime/multipart"
	"sync"
	"time"

	"careernest/internal/location"
	"careernest/internal/models"
	"careernest/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// duplicateKeyErr mimics the server error the real driver surfaces on a
// unique index violation, so mongo.IsDuplicateKeyError recognizes it.
var duplicateKeyErr = mongo.WriteException{
	WriteErrors: []mongo.WriteError{{Code: 11000}},
}

type fakeSeekerStore struct {
	mu      sync.Mutex
	seekers map[bson.ObjectID]*models.Seeker
}

func newFakeSeekerStore() *fakeSeekerStore {
	return &fakeSeekerStore{seekers: make(map[bson.ObjectID]*models.Seeker)}
}

func (f *fakeSeekerStore) New(ctx context.Context, seeker *models.Seeker) (*models.Seeker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.seekers {
		if existing.Email == seeker.Email || existing.Phone == seeker.Phone {
			return nil, duplicateKeyErr
		}
	}
	copied := *seeker
	copied.ID = bson.NewObjectID()
	f.seekers[copied.ID] = &copied
	return &copied, nil
}

func (f *fakeSeekerStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.Seeker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seeker, ok := f.seekers[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *seeker
	return &copied, nil
}

func (f *fakeSeekerStore) FindByEmail(ctx context.Context, email string) (*models.Seeker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, seeker := range f.seekers {
		if seeker.Email == email {
			copied := *seeker
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeSeekerStore) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, seeker := range f.seekers {
		if seeker.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSeekerStore) Update(ctx context.Context, id bson.ObjectID, fields bson.M) (*models.Seeker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seeker, ok := f.seekers[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	applySeekerFields(seeker, fields)
	copied := *seeker
	return &copied, nil
}

func applySeekerFields(seeker *models.Seeker, fields bson.M) {
	for key, value := range fields {
		switch key {
		case "fullName":
			seeker.FullName = value.(string)
		case "phone":
			seeker.Phone = value.(string)
		case "bio":
			seeker.Bio = value.(string)
		case "experience":
			seeker.ExperienceBucket = value.(string)
		case "skills":
			seeker.Skills = value.([]string)
		case "location":
			seeker.Location = value.(models.Location)
		case "resumeUrl":
			seeker.ResumeURL = value.(string)
		case "pictureUrl":
			seeker.PictureURL = value.(string)
		case "updatedAt":
			seeker.UpdatedAt = value.(int)
		}
	}
}

func (f *fakeSeekerStore) Delete(ctx context.Context, id bson.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.seekers[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.seekers, id)
	return nil
}

func (f *fakeSeekerStore) FindAll(ctx context.Context, page, limit int) ([]*models.Seeker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Seeker, 0, len(f.seekers))
	for _, seeker := range f.seekers {
		copied := *seeker
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeSeekerStore) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.seekers)), nil
}

func (f *fakeSeekerStore) IncApplicationCount(ctx context.Context, id bson.ObjectID, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if seeker, ok := f.seekers[id]; ok {
		seeker.ApplicationCount += delta
	}
	return nil
}

func (f *fakeSeekerStore) IncBookmarkCount(ctx context.Context, id bson.ObjectID, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if seeker, ok := f.seekers[id]; ok {
		seeker.BookmarkCount += delta
	}
	return nil
}

type fakeCompanyStore struct {
	mu        sync.Mutex
	companies map[bson.ObjectID]*models.Company
}

func newFakeCompanyStore() *fakeCompanyStore {
	return &fakeCompanyStore{companies: make(map[bson.ObjectID]*models.Company)}
}

func (f *fakeCompanyStore) New(ctx context.Context, company *models.Company) (*models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.companies {
		if existing.Email == company.Email {
			return nil, duplicateKeyErr
		}
	}
	copied := *company
	copied.ID = bson.NewObjectID()
	f.companies[copied.ID] = &copied
	return &copied, nil
}

func (f *fakeCompanyStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	company, ok := f.companies[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *company
	return &copied, nil
}

func (f *fakeCompanyStore) FindByEmail(ctx context.Context, email string) (*models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, company := range f.companies {
		if company.Email == email {
			copied := *company
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeCompanyStore) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]*models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Company, 0, len(ids))
	for _, id := range ids {
		if company, ok := f.companies[id]; ok {
			copied := *company
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeCompanyStore) Update(ctx context.Context, id bson.ObjectID, fields bson.M) (*models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	company, ok := f.companies[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	for key, value := range fields {
		switch key {
		case "name":
			company.Name = value.(string)
		case "phone":
			company.Phone = value.(string)
		case "bio":
			company.Bio = value.(string)
		case "location":
			company.Location = value.(models.Location)
		case "logoUrl":
			company.LogoURL = value.(string)
		case "documentUrl":
			company.DocumentURL = value.(string)
		case "status":
			company.Status = value.(models.VerificationStatus)
		case "updatedAt":
			company.UpdatedAt = value.(int)
		}
	}
	copied := *company
	return &copied, nil
}

func (f *fakeCompanyStore) Delete(ctx context.Context, id bson.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.companies[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.companies, id)
	return nil
}

func (f *fakeCompanyStore) FindByStatus(ctx context.Context, status models.VerificationStatus, page, limit int) ([]*models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Company
	for _, company := range f.companies {
		if company.Status == status {
			copied := *company
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeCompanyStore) FindAll(ctx context.Context, page, limit int) ([]*models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Company, 0, len(f.companies))
	for _, company := range f.companies {
		copied := *company
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeCompanyStore) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.companies)), nil
}

func (f *fakeCompanyStore) CountByStatus(ctx context.Context, status models.VerificationStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, company := range f.companies {
		if company.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeCompanyStore) IncJobCount(ctx context.Context, id bson.ObjectID, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if company, ok := f.companies[id]; ok {
		company.JobCount += delta
	}
	return nil
}

type fakeJobStore struct {
	mu   sync.Mutex
	jobs map[bson.ObjectID]*models.Job
	// insertion order, newest last, so "createdAt" sorting is deterministic
	// even when test fixtures share a timestamp
	order []bson.ObjectID
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: make(map[bson.ObjectID]*models.Job)}
}

func (f *fakeJobStore) New(ctx context.Context, job *models.Job) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *job
	copied.ID = bson.NewObjectID()
	f.jobs[copied.ID] = &copied
	f.order = append(f.order, copied.ID)
	return &copied, nil
}

func (f *fakeJobStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *job
	return &copied, nil
}

func (f *fakeJobStore) Delete(ctx context.Context, id bson.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.jobs[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.jobs, id)
	return nil
}

func (f *fakeJobStore) matches(job *models.Job, filter repository.JobFilter) bool {
	if filter.NonExpired && job.Deadline <= int(time.Now().Unix()) {
		return false
	}
	if !filter.CompanyID.IsZero() && job.CompanyID != filter.CompanyID {
		return false
	}
	if len(filter.Skills) == 0 && len(filter.JobTypes) == 0 && len(filter.ExperienceLevels) == 0 {
		return true
	}
	for _, want := range filter.Skills {
		for _, have := range job.Skills {
			if have == want {
				return true
			}
		}
	}
	for _, want := range filter.JobTypes {
		if job.JobType == want {
			return true
		}
	}
	for _, want := range filter.ExperienceLevels {
		if job.ExperienceLevel == want {
			return true
		}
	}
	return false
}

func (f *fakeJobStore) Find(ctx context.Context, filter repository.JobFilter, sortField string, skip, limit int) ([]*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*models.Job
	// iterate newest first to mirror the descending database sort
	for i := len(f.order) - 1; i >= 0; i-- {
		job, ok := f.jobs[f.order[i]]
		if !ok || !f.matches(job, filter) {
			continue
		}
		copied := *job
		matched = append(matched, &copied)
	}
	if sortField == "applicationCount" {
		for i := 0; i < len(matched); i++ {
			for j := i + 1; j < len(matched); j++ {
				if matched[j].ApplicationCount > matched[i].ApplicationCount {
					matched[i], matched[j] = matched[j], matched[i]
				}
			}
		}
	}
	if skip > len(matched) {
		skip = len(matched)
	}
	matched = matched[skip:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeJobStore) Count(ctx context.Context, filter repository.JobFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, job := range f.jobs {
		if f.matches(job, filter) {
			count++
		}
	}
	return count, nil
}

func (f *fakeJobStore) IncApplicationCount(ctx context.Context, id bson.ObjectID, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if job, ok := f.jobs[id]; ok {
		job.ApplicationCount += delta
	}
	return nil
}

type fakeApplicationStore struct {
	mu           sync.Mutex
	applications map[bson.ObjectID]*models.Application
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{applications: make(map[bson.ObjectID]*models.Application)}
}

func (f *fakeApplicationStore) New(ctx context.Context, application *models.Application) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.applications {
		if existing.SeekerID == application.SeekerID && existing.JobID == application.JobID {
			return nil, duplicateKeyErr
		}
	}
	copied := *application
	copied.ID = bson.NewObjectID()
	f.applications[copied.ID] = &copied
	return &copied, nil
}

func (f *fakeApplicationStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	application, ok := f.applications[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *application
	return &copied, nil
}

func (f *fakeApplicationStore) FindBySeekerAndJob(ctx context.Context, seekerID, jobID bson.ObjectID) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, application := range f.applications {
		if application.SeekerID == seekerID && application.JobID == jobID {
			copied := *application
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeApplicationStore) FindBySeeker(ctx context.Context, seekerID bson.ObjectID, page, limit int) ([]*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Application
	for _, application := range f.applications {
		if application.SeekerID == seekerID {
			copied := *application
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeApplicationStore) FindByJob(ctx context.Context, jobID bson.ObjectID, page, limit int) ([]*models.Application, error) {
	return f.FindAllByJob(ctx, jobID)
}

func (f *fakeApplicationStore) FindAllByJob(ctx context.Context, jobID bson.ObjectID) ([]*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Application
	for _, application := range f.applications {
		if application.JobID == jobID {
			copied := *application
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeApplicationStore) UpdateStatus(ctx context.Context, id bson.ObjectID, status models.ApplicationStatus) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	application, ok := f.applications[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	application.Status = status
	copied := *application
	return &copied, nil
}

func (f *fakeApplicationStore) Delete(ctx context.Context, id bson.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.applications[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.applications, id)
	return nil
}

func (f *fakeApplicationStore) DeleteByJob(ctx context.Context, jobID bson.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for id, application := range f.applications {
		if application.JobID == jobID {
			delete(f.applications, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeApplicationStore) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.applications)), nil
}

type fakeBookmarkStore struct {
	mu        sync.Mutex
	bookmarks map[bson.ObjectID]*models.Bookmark
}

func newFakeBookmarkStore() *fakeBookmarkStore {
	return &fakeBookmarkStore{bookmarks: make(map[bson.ObjectID]*models.Bookmark)}
}

func (f *fakeBookmarkStore) New(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.bookmarks {
		if existing.SeekerID == bookmark.SeekerID && existing.JobID == bookmark.JobID {
			return nil, duplicateKeyErr
		}
	}
	copied := *bookmark
	copied.ID = bson.NewObjectID()
	f.bookmarks[copied.ID] = &copied
	return &copied, nil
}

func (f *fakeBookmarkStore) FindBySeekerAndJob(ctx context.Context, seekerID, jobID bson.ObjectID) (*models.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, bookmark := range f.bookmarks {
		if bookmark.SeekerID == seekerID && bookmark.JobID == jobID {
			copied := *bookmark
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeBookmarkStore) FindBySeeker(ctx context.Context, seekerID bson.ObjectID, page, limit int) ([]*models.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Bookmark
	for _, bookmark := range f.bookmarks {
		if bookmark.SeekerID == seekerID {
			copied := *bookmark
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeBookmarkStore) FindAllByJob(ctx context.Context, jobID bson.ObjectID) ([]*models.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Bookmark
	for _, bookmark := range f.bookmarks {
		if bookmark.JobID == jobID {
			copied := *bookmark
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeBookmarkStore) DeleteBySeekerAndJob(ctx context.Context, seekerID, jobID bson.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, bookmark := range f.bookmarks {
		if bookmark.SeekerID == seekerID && bookmark.JobID == jobID {
			delete(f.bookmarks, id)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeBookmarkStore) DeleteByJob(ctx context.Context, jobID bson.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for id, bookmark := range f.bookmarks {
		if bookmark.JobID == jobID {
			delete(f.bookmarks, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeNotificationStore struct {
	mu            sync.Mutex
	notifications []*models.Notification
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{}
}

func (f *fakeNotificationStore) New(ctx context.Context, notification *models.Notification) (*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *notification
	copied.ID = bson.NewObjectID()
	f.notifications = append(f.notifications, &copied)
	return &copied, nil
}

func (f *fakeNotificationStore) NewMany(ctx context.Context, notifications []*models.Notification) error {
	for _, notification := range notifications {
		if _, err := f.New(ctx, notification); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeNotificationStore) FindBySeeker(ctx context.Context, seekerID bson.ObjectID, page, limit int) ([]*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Notification
	for _, notification := range f.notifications {
		if notification.SeekerID == seekerID {
			copied := *notification
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) MarkRead(ctx context.Context, seekerID, id bson.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, notification := range f.notifications {
		if notification.ID == id && notification.SeekerID == seekerID {
			notification.IsRead = true
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeNotificationStore) CountUnread(ctx context.Context, seekerID bson.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, notification := range f.notifications {
		if notification.SeekerID == seekerID && !notification.IsRead {
			count++
		}
	}
	return count, nil
}

type fakeShadowStore struct {
	mu      sync.Mutex
	shadows map[string]*models.ShadowSeeker
}

func newFakeShadowStore() *fakeShadowStore {
	return &fakeShadowStore{shadows: make(map[string]*models.ShadowSeeker)}
}

func (f *fakeShadowStore) Save(ctx context.Context, tokenID string, shadow *models.ShadowSeeker, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *shadow
	f.shadows[tokenID] = &copied
	return nil
}

func (f *fakeShadowStore) Get(ctx context.Context, tokenID string) (*models.ShadowSeeker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	shadow, ok := f.shadows[tokenID]
	if !ok {
		return nil, repository.ErrShadowNotFound
	}
	copied := *shadow
	return &copied, nil
}

func (f *fakeShadowStore) Delete(ctx context.Context, tokenID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.shadows, tokenID)
	return nil
}

func (f *fakeShadowStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, shadow := range f.shadows {
		if shadow.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeSender struct {
	mu    sync.Mutex
	sent  []string
	fail  bool
	fails int
}

func (f *fakeSender) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		f.fails++
		return errSendFailed
	}
	f.sent = append(f.sent, to)
	return nil
}

var errSendFailed = &sendError{}

type sendError struct{}

func (e *sendError) Error() string { return "smtp unavailable" }

type fakeUploader struct {
	mu      sync.Mutex
	stored  map[string]bool
	fail    bool
	counter int
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{stored: make(map[string]bool)}
}

func (f *fakeUploader) Upload(ctx context.Context, file *multipart.FileHeader, folder string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return "", errSendFailed
	}
	f.counter++
	url := "http://files.local/" + folder + "/" + bson.NewObjectID().Hex()
	f.stored[url] = true
	return url, nil
}

func (f *fakeUploader) Remove(ctx context.Context, fileURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.stored, fileURL)
	return nil
}

type fakeResolver struct {
	fail bool
}

func (f *fakeResolver) Resolve(ctx context.Context, area, city, district string) (*location.Normalized, error) {
	if f.fail {
		return nil, errSendFailed
	}
	return &location.Normalized{
		Location: models.Location{Area: area, City: city, District: district},
		Country:  "Nepal",
	}, nil
}

type fakePublisher struct {
	mu             sync.Mutex
	jobDeletions   int
	statusChanges  []models.VerificationStatus
	lastSeekerIDs  []string
	lastCompanyID  string
	lastJobDeleted string
}

func (f *fakePublisher) PublishJobDeleted(ctx context.Context, jobID, jobTitle string, seekerIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobDeletions++
	f.lastJobDeleted = jobID
	f.lastSeekerIDs = seekerIDs
	return nil
}

func (f *fakePublisher) PublishCompanyStatusChanged(ctx context.Context, companyID, name, email string, status models.VerificationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusChanges = append(f.statusChanges, status)
	f.lastCompanyID = companyID
	return nil
}

func (f *fakePublisher) Close() error { return nil }
