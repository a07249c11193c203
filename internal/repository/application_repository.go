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

type ApplicationRepository struct {
	collection *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{
		collection: db.Collection("Application"),
	}
}

// New inserts an application. The (seekerId, jobId) unique index rejects a
// concurrent duplicate; callers surface that as a conflict.
func (r *ApplicationRepository) New(ctx context.Context, application *models.Application) (*models.Application, error) {
	if application.ID.IsZero() {
		application.ID = bson.NewObjectID()
	}
	currentTime := int(time.Now().Unix())
	application.CreatedAt = currentTime
	application.UpdatedAt = currentTime
	if application.Status == "" {
		application.Status = models.ApplicationPending
	}

	_, err := r.collection.InsertOne(ctx, application)
	if err != nil {
		return nil, err
	}
	return application, nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Application, error) {
	var application models.Application
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&application)
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepository) FindBySeekerAndJob(ctx context.Context, seekerID, jobID bson.ObjectID) (*models.Application, error) {
	var application models.Application
	err := r.collection.FindOne(ctx, bson.M{"seekerId": seekerID, "jobId": jobID}).Decode(&application)
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepository) FindBySeeker(ctx context.Context, seekerID bson.ObjectID, page, limit int) ([]*models.Application, error) {
	opts := options.Find()
	opts.SetSort(bson.M{"createdAt": -1})
	opts.SetSkip(int64((page - 1) * limit))
	opts.SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"seekerId": seekerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var applications []*models.Application
	if err = cursor.All(ctx, &applications); err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *ApplicationRepository) FindByJob(ctx context.Context, jobID bson.ObjectID, page, limit int) ([]*models.Application, error) {
	opts := options.Find()
	opts.SetSort(bson.M{"createdAt": -1})
	opts.SetSkip(int64((page - 1) * limit))
	opts.SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"jobId": jobID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var applications []*models.Application
	if err = cursor.All(ctx, &applications); err != nil {
		return nil, err
	}
	return applications, nil
}

// FindAllByJob returns the complete ledger for a job, used by the delete
// cascade to notify every applicant.
func (r *ApplicationRepository) FindAllByJob(ctx context.Context, jobID bson.ObjectID) ([]*models.Application, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"jobId": jobID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var applications []*models.Application
	if err = cursor.All(ctx, &applications); err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id bson.ObjectID, status models.ApplicationStatus) (*models.Application, error) {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": int(time.Now().Unix())}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Application
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *ApplicationRepository) DeleteByJob(ctx context.Context, jobID bson.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"jobId": jobID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete applications for job: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *ApplicationRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *ApplicationRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "seekerId", Value: 1}, {Key: "jobId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "jobId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create application indexes: %w", err)
	}
	return nil
}
