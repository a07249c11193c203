package service

import (
	"context"
	"time"

	"careernest/internal/models"
	"careernest/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// The services accept these store interfaces rather than the concrete
// repository types so the state machine and ranking logic can be exercised
// against in-memory fakes. The repository package satisfies all of them.

type SeekerStore interface {
	New(ctx context.Context, seeker *models.Seeker) (*models.Seeker, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Seeker, error)
	FindByEmail(ctx context.Context, email string) (*models.Seeker, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	Update(ctx context.Context, id bson.ObjectID, fields bson.M) (*models.Seeker, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	FindAll(ctx context.Context, page, limit int) ([]*models.Seeker, error)
	Count(ctx context.Context) (int64, error)
	IncApplicationCount(ctx context.Context, id bson.ObjectID, delta int) error
	IncBookmarkCount(ctx context.Context, id bson.ObjectID, delta int) error
}

type CompanyStore interface {
	New(ctx context.Context, company *models.Company) (*models.Company, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Company, error)
	FindByEmail(ctx context.Context, email string) (*models.Company, error)
	FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]*models.Company, error)
	Update(ctx context.Context, id bson.ObjectID, fields bson.M) (*models.Company, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	FindByStatus(ctx context.Context, status models.VerificationStatus, page, limit int) ([]*models.Company, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Company, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.VerificationStatus) (int64, error)
	IncJobCount(ctx context.Context, id bson.ObjectID, delta int) error
}

type JobStore interface {
	New(ctx context.Context, job *models.Job) (*models.Job, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Job, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	Find(ctx context.Context, filter repository.JobFilter, sortField string, skip, limit int) ([]*models.Job, error)
	Count(ctx context.Context, filter repository.JobFilter) (int64, error)
	IncApplicationCount(ctx context.Context, id bson.ObjectID, delta int) error
}

type ApplicationStore interface {
	New(ctx context.Context, application *models.Application) (*models.Application, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Application, error)
	FindBySeekerAndJob(ctx context.Context, seekerID, jobID bson.ObjectID) (*models.Application, error)
	FindBySeeker(ctx context.Context, seekerID bson.ObjectID, page, limit int) ([]*models.Application, error)
	FindByJob(ctx context.Context, jobID bson.ObjectID, page, limit int) ([]*models.Application, error)
	FindAllByJob(ctx context.Context, jobID bson.ObjectID) ([]*models.Application, error)
	UpdateStatus(ctx context.Context, id bson.ObjectID, status models.ApplicationStatus) (*models.Application, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	DeleteByJob(ctx context.Context, jobID bson.ObjectID) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type BookmarkStore interface {
	New(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error)
	FindBySeekerAndJob(ctx context.Context, seekerID, jobID bson.ObjectID) (*models.Bookmark, error)
	FindBySeeker(ctx context.Context, seekerID bson.ObjectID, page, limit int) ([]*models.Bookmark, error)
	FindAllByJob(ctx context.Context, jobID bson.ObjectID) ([]*models.Bookmark, error)
	DeleteBySeekerAndJob(ctx context.Context, seekerID, jobID bson.ObjectID) error
	DeleteByJob(ctx context.Context, jobID bson.ObjectID) (int64, error)
}

type NotificationStore interface {
	New(ctx context.Context, notification *models.Notification) (*models.Notification, error)
	NewMany(ctx context.Context, notifications []*models.Notification) error
	FindBySeeker(ctx context.Context, seekerID bson.ObjectID, page, limit int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, seekerID, id bson.ObjectID) error
	CountUnread(ctx context.Context, seekerID bson.ObjectID) (int64, error)
}

type ShadowStore interface {
	Save(ctx context.Context, tokenID string, shadow *models.ShadowSeeker, ttl time.Duration) error
	Get(ctx context.Context, tokenID string) (*models.ShadowSeeker, error)
	Delete(ctx context.Context, tokenID string) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
