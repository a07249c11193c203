package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

type Job struct {
	ID                 bson.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	CompanyID          bson.ObjectID   `json:"companyId" bson:"companyId"`
	Title              string          `json:"title" bson:"title"`
	Description        string          `json:"description" bson:"description"`
	Skills             []string        `json:"skills" bson:"skills"`
	JobType            JobType         `json:"jobType" bson:"jobType"`
	RequiredExperience string          `json:"requiredExperience" bson:"requiredExperience"`
	ExperienceLevel    ExperienceLevel `json:"experienceLevel" bson:"experienceLevel"`
	Salary             string          `json:"salary" bson:"salary"`
	Vacancies          int             `json:"vacancies" bson:"vacancies"`
	Deadline           int             `json:"deadline" bson:"deadline"`
	ApplicationCount   int             `json:"applicationCount" bson:"applicationCount"`
	CreatedAt          int             `json:"createdAt" bson:"createdAt"`
	UpdatedAt          int             `json:"updatedAt" bson:"updatedAt"`
}

// JobWithCompany is the listing read model: a posting joined with the
// fields of its owning company the scoring engine and clients need.
type JobWithCompany struct {
	Job             `bson:",inline"`
	CompanyName     string   `json:"companyName" bson:"companyName"`
	CompanyLogoURL  string   `json:"companyLogoUrl,omitempty" bson:"companyLogoUrl,omitempty"`
	CompanyLocation Location `json:"companyLocation" bson:"companyLocation"`
	MatchScore      int      `json:"matchScore" bson:"-"`
}

// JobDetail annotates a single posting with the requesting seeker's flags.
type JobDetail struct {
	JobWithCompany
	Applied    bool `json:"applied"`
	Bookmarked bool `json:"bookmarked"`
}
