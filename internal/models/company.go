package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

type Company struct {
	ID           bson.ObjectID      `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	Phone        string             `json:"phone,omitempty" bson:"phone,omitempty"`
	PasswordHash string             `json:"-" bson:"passwordHash"`
	Location     Location           `json:"location" bson:"location"`
	Bio          string             `json:"bio,omitempty" bson:"bio,omitempty"`
	LogoURL      string             `json:"logoUrl,omitempty" bson:"logoUrl,omitempty"`
	DocumentURL  string             `json:"documentUrl,omitempty" bson:"documentUrl,omitempty"`
	Status       VerificationStatus `json:"status" bson:"status"`
	JobCount     int                `json:"jobCount" bson:"jobCount"`
	CreatedAt    int                `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int                `json:"updatedAt" bson:"updatedAt"`
}
