package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Application links one seeker to one job. ResumeURL is a snapshot taken at
// apply time, not a live reference to the seeker's current resume.
type Application struct {
	ID        bson.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"`
	SeekerID  bson.ObjectID     `json:"seekerId" bson:"seekerId"`
	JobID     bson.ObjectID     `json:"jobId" bson:"jobId"`
	ResumeURL string            `json:"resumeUrl" bson:"resumeUrl"`
	Status    ApplicationStatus `json:"status" bson:"status"`
	CreatedAt int               `json:"createdAt" bson:"createdAt"`
	UpdatedAt int               `json:"updatedAt" bson:"updatedAt"`
}

type Bookmark struct {
	ID        bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SeekerID  bson.ObjectID `json:"seekerId" bson:"seekerId"`
	JobID     bson.ObjectID `json:"jobId" bson:"jobId"`
	CreatedAt int           `json:"createdAt" bson:"createdAt"`
}
