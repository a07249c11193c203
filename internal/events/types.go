package events

import (
	"encoding/json"
	"time"

	"careernest/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type EventType string

const (
	// JobDeleted is published after a posting and its applications are
	// removed, so applicants can be notified.
	JobDeleted EventType = "job.deleted"
	// CompanyStatusChanged is published after an admin verification
	// decision commits.
	CompanyStatusChanged EventType = "company.status.changed"
)

const (
	JobEventsExchange     = "job-events"
	CompanyEventsExchange = "company-events"

	JobDeletedQueue           = "job.deleted.notifications"
	CompanyStatusChangedQueue = "company.status.mail"
)

type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp int64     `json:"timestamp"`
	Version   string    `json:"version"`
}

func newBaseEvent(t EventType) BaseEvent {
	return BaseEvent{
		ID:        bson.NewObjectID().Hex(),
		Type:      t,
		Timestamp: time.Now().Unix(),
		Version:   "1.0",
	}
}

type JobDeletedEvent struct {
	BaseEvent
	JobID     string   `json:"job_id"`
	JobTitle  string   `json:"job_title"`
	SeekerIDs []string `json:"seeker_ids"`
}

func NewJobDeletedEvent(jobID, jobTitle string, seekerIDs []string) *JobDeletedEvent {
	return &JobDeletedEvent{
		BaseEvent: newBaseEvent(JobDeleted),
		JobID:     jobID,
		JobTitle:  jobTitle,
		SeekerIDs: seekerIDs,
	}
}

func (e *JobDeletedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

type CompanyStatusChangedEvent struct {
	BaseEvent
	CompanyID    string                    `json:"company_id"`
	CompanyName  string                    `json:"company_name"`
	CompanyEmail string                    `json:"company_email"`
	NewStatus    models.VerificationStatus `json:"new_status"`
}

func NewCompanyStatusChangedEvent(companyID, name, email string, status models.VerificationStatus) *CompanyStatusChangedEvent {
	return &CompanyStatusChangedEvent{
		BaseEvent:    newBaseEvent(CompanyStatusChanged),
		CompanyID:    companyID,
		CompanyName:  name,
		CompanyEmail: email,
		NewStatus:    status,
	}
}

func (e *CompanyStatusChangedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
