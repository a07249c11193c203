package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

type Seeker struct {
	ID               bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FullName         string        `json:"fullName" bson:"fullName"`
	Email            string        `json:"email" bson:"email"`
	Phone            string        `json:"phone" bson:"phone"`
	PasswordHash     string        `json:"-" bson:"passwordHash"`
	Location         Location      `json:"location" bson:"location"`
	Bio              string        `json:"bio,omitempty" bson:"bio,omitempty"`
	Skills           []string      `json:"skills" bson:"skills"`
	ExperienceBucket string        `json:"experience" bson:"experience"`
	ResumeURL        string        `json:"resumeUrl,omitempty" bson:"resumeUrl,omitempty"`
	PictureURL       string        `json:"pictureUrl,omitempty" bson:"pictureUrl,omitempty"`
	IsVerified       bool          `json:"isVerified" bson:"isVerified"`
	ApplicationCount int           `json:"applicationCount" bson:"applicationCount"`
	BookmarkCount    int           `json:"bookmarkCount" bson:"bookmarkCount"`
	CreatedAt        int           `json:"createdAt" bson:"createdAt"`
	UpdatedAt        int           `json:"updatedAt" bson:"updatedAt"`
}

// HasSkill reports presence of a normalized tag in the seeker's skill set.
func (s *Seeker) HasSkill(tag string) bool {
	for _, have := range s.Skills {
		if have == tag {
			return true
		}
	}
	return false
}

// ShadowSeeker is the ephemeral pre-verification registration record held
// in Redis under a signed token until the seeker completes the second step.
type ShadowSeeker struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	CreatedAt    int    `json:"createdAt"`
}
