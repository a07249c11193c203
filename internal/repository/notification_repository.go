package repository

import (
	"context"
	"fmt"
	"time"

	"careernest/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type NotificationRepository struct {
	collection *mongo.Collection
	retention  time.Duration
}

func NewNotificationRepository(db *mongo.Database, retention time.Duration) *NotificationRepository {
	return &NotificationRepository{
		collection: db.Collection("Notification"),
		retention:  retention,
	}
}

func (r *NotificationRepository) New(ctx context.Context, notification *models.Notification) (*models.Notification, error) {
	if notification.ID.IsZero() {
		notification.ID = bson.NewObjectID()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, notification)
	if err != nil {
		return nil, fmt.Errorf("failed to insert notification: %w", err)
	}
	return notification, nil
}

func (r *NotificationRepository) NewMany(ctx context.Context, notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	docs := make([]any, 0, len(notifications))
	now := time.Now()
	for _, n := range notifications {
		if n.ID.IsZero() {
			n.ID = bson.NewObjectID()
		}
		if n.CreatedAt.IsZero() {
			n.CreatedAt = now
		}
		docs = append(docs, n)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to insert notifications: %w", err)
	}
	return nil
}

func (r *NotificationRepository) FindBySeeker(ctx context.Context, seekerID bson.ObjectID, page, limit int) ([]*models.Notification, error) {
	opts := options.Find()
	opts.SetSort(bson.M{"createdAt": -1})
	opts.SetSkip(int64((page - 1) * limit))
	opts.SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"seekerId": seekerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []*models.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, seekerID, id bson.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "seekerId": seekerID},
		bson.M{"$set": bson.M{"isRead": true}})
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, seekerID bson.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"seekerId": seekerID, "isRead": false})
}

// CreateIndexes includes the TTL index removing notifications after the
// retention window, read or not.
func (r *NotificationRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(r.retention.Seconds())),
		},
		{
			Keys: bson.D{{Key: "seekerId", Value: 1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create notification indexes: %w", err)
	}
	return nil
}
