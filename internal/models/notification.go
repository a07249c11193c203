package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Notification is a system-generated message for a seeker. A TTL index on
// createdAt removes records after the retention window regardless of the
// read flag.
type Notification struct {
	ID        bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SeekerID  bson.ObjectID `json:"seekerId" bson:"seekerId"`
	Title     string        `json:"title" bson:"title"`
	Message   string        `json:"message" bson:"message"`
	IsRead    bool          `json:"isRead" bson:"isRead"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
}
