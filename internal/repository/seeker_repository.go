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

type SeekerRepository struct {
	collection *mongo.Collection
}

func NewSeekerRepository(db *mongo.Database) *SeekerRepository {
	return &SeekerRepository{
		collection: db.Collection("Seeker"),
	}
}

func (r *SeekerRepository) New(ctx context.Context, seeker *models.Seeker) (*models.Seeker, error) {
	if seeker.ID.IsZero() {
		seeker.ID = bson.NewObjectID()
	}
	currentTime := int(time.Now().Unix())
	if seeker.CreatedAt == 0 {
		seeker.CreatedAt = currentTime
	}
	seeker.UpdatedAt = currentTime

	_, err := r.collection.InsertOne(ctx, seeker)
	if err != nil {
		return nil, fmt.Errorf("failed to insert seeker: %w", err)
	}
	return seeker, nil
}

func (r *SeekerRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Seeker, error) {
	var seeker models.Seeker
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&seeker)
	if err != nil {
		return nil, err
	}
	return &seeker, nil
}

func (r *SeekerRepository) FindByEmail(ctx context.Context, email string) (*models.Seeker, error) {
	var seeker models.Seeker
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&seeker)
	if err != nil {
		return nil, err
	}
	return &seeker, nil
}

func (r *SeekerRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"phone": phone})
	if err != nil {
		return false, fmt.Errorf("failed to count seekers by phone: %w", err)
	}
	return count > 0, nil
}

func (r *SeekerRepository) Update(ctx context.Context, id bson.ObjectID, fields bson.M) (*models.Seeker, error) {
	fields["updatedAt"] = int(time.Now().Unix())

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Seeker
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update seeker: %w", err)
	}
	return &updated, nil
}

func (r *SeekerRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete seeker: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *SeekerRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Seeker, error) {
	opts := options.Find()
	opts.SetSort(bson.M{"createdAt": -1})
	opts.SetSkip(int64((page - 1) * limit))
	opts.SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var seekers []*models.Seeker
	if err = cursor.All(ctx, &seekers); err != nil {
		return nil, err
	}
	return seekers, nil
}

func (r *SeekerRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// IncApplicationCount adjusts the derived counter with a single-document
// atomic increment; callers never set the counter directly.
func (r *SeekerRepository) IncApplicationCount(ctx context.Context, id bson.ObjectID, delta int) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"applicationCount": delta}})
	if err != nil {
		return fmt.Errorf("failed to update application count: %w", err)
	}
	return nil
}

func (r *SeekerRepository) IncBookmarkCount(ctx context.Context, id bson.ObjectID, delta int) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"bookmarkCount": delta}})
	if err != nil {
		return fmt.Errorf("failed to update bookmark count: %w", err)
	}
	return nil
}

func (r *SeekerRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create seeker indexes: %w", err)
	}
	return nil
}
