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

type BookmarkRepository struct {
	collection *mongo.Collection
}

func NewBookmarkRepository(db *mongo.Database) *BookmarkRepository {
	return &BookmarkRepository{
		collection: db.Collection("Bookmark"),
	}
}

func (r *BookmarkRepository) New(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error) {
	if bookmark.ID.IsZero() {
		bookmark.ID = bson.NewObjectID()
	}
	bookmark.CreatedAt = int(time.Now().Unix())

	_, err := r.collection.InsertOne(ctx, bookmark)
	if err != nil {
		return nil, err
	}
	return bookmark, nil
}

func (r *BookmarkRepository) FindBySeekerAndJob(ctx context.Context, seekerID, jobID bson.ObjectID) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	err := r.collection.FindOne(ctx, bson.M{"seekerId": seekerID, "jobId": jobID}).Decode(&bookmark)
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (r *BookmarkRepository) FindBySeeker(ctx context.Context, seekerID bson.ObjectID, page, limit int) ([]*models.Bookmark, error) {
	opts := options.Find()
	opts.SetSort(bson.M{"createdAt": -1})
	opts.SetSkip(int64((page - 1) * limit))
	opts.SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"seekerId": seekerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookmarks []*models.Bookmark
	if err = cursor.All(ctx, &bookmarks); err != nil {
		return nil, err
	}
	return bookmarks, nil
}

func (r *BookmarkRepository) FindAllByJob(ctx context.Context, jobID bson.ObjectID) ([]*models.Bookmark, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"jobId": jobID})
	if err != nil {
		return nil, fmt.Errorf("failed to find bookmarks for job: %w", err)
	}
	defer cursor.Close(ctx)

	var bookmarks []*models.Bookmark
	if err = cursor.All(ctx, &bookmarks); err != nil {
		return nil, err
	}
	return bookmarks, nil
}

func (r *BookmarkRepository) DeleteBySeekerAndJob(ctx context.Context, seekerID, jobID bson.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"seekerId": seekerID, "jobId": jobID})
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *BookmarkRepository) DeleteByJob(ctx context.Context, jobID bson.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"jobId": jobID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete bookmarks for job: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *BookmarkRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "seekerId", Value: 1}, {Key: "jobId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "jobId", Value: 1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create bookmark indexes: %w", err)
	}
	return nil
}
