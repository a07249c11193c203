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

// JobFilter narrows a listing query. Zero values are ignored; the three
// vocabulary slices combine into a single $or when any is set.
type JobFilter struct {
	NonExpired       bool
	CompanyID        bson.ObjectID
	Skills           []string
	JobTypes         []models.JobType
	ExperienceLevels []models.ExperienceLevel
}

func (f JobFilter) toBSON() bson.M {
	filter := bson.M{}
	if f.NonExpired {
		filter["deadline"] = bson.M{"$gte": int(time.Now().Unix())}
	}
	if !f.CompanyID.IsZero() {
		filter["companyId"] = f.CompanyID
	}

	var or []bson.M
	if len(f.Skills) > 0 {
		or = append(or, bson.M{"skills": bson.M{"$in": f.Skills}})
	}
	if len(f.JobTypes) > 0 {
		or = append(or, bson.M{"jobType": bson.M{"$in": f.JobTypes}})
	}
	if len(f.ExperienceLevels) > 0 {
		or = append(or, bson.M{"experienceLevel": bson.M{"$in": f.ExperienceLevels}})
	}
	if len(or) > 0 {
		filter["$or"] = or
	}
	return filter
}

type JobRepository struct {
	collection *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{
		collection: db.Collection("Job"),
	}
}

func (r *JobRepository) New(ctx context.Context, job *models.Job) (*models.Job, error) {
	if job.ID.IsZero() {
		job.ID = bson.NewObjectID()
	}
	currentTime := int(time.Now().Unix())
	if job.CreatedAt == 0 {
		job.CreatedAt = currentTime
	}
	job.UpdatedAt = currentTime

	_, err := r.collection.InsertOne(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("failed to insert job: %w", err)
	}
	return job, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Job, error) {
	var job models.Job
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Find returns a sorted slice of the filter's matches. sortField is a bson
// field name; descending order.
func (r *JobRepository) Find(ctx context.Context, filter JobFilter, sortField string, skip, limit int) ([]*models.Job, error) {
	opts := options.Find()
	opts.SetSort(bson.M{sortField: -1})
	opts.SetSkip(int64(skip))
	opts.SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter.toBSON(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find jobs: %w", err)
	}
	defer cursor.Close(ctx)

	var jobs []*models.Job
	if err = cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepository) Count(ctx context.Context, filter JobFilter) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, filter.toBSON())
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}

func (r *JobRepository) IncApplicationCount(ctx context.Context, id bson.ObjectID, delta int) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"applicationCount": delta}})
	if err != nil {
		return fmt.Errorf("failed to update application count: %w", err)
	}
	return nil
}

func (r *JobRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "companyId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "deadline", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "applicationCount", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "skills", Value: 1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create job indexes: %w", err)
	}
	return nil
}
