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

type CompanyRepository struct {
	collection *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) *CompanyRepository {
	return &CompanyRepository{
		collection: db.Collection("Company"),
	}
}

func (r *CompanyRepository) New(ctx context.Context, company *models.Company) (*models.Company, error) {
	if company.ID.IsZero() {
		company.ID = bson.NewObjectID()
	}
	currentTime := int(time.Now().Unix())
	if company.CreatedAt == 0 {
		company.CreatedAt = currentTime
	}
	company.UpdatedAt = currentTime
	if company.Status == "" {
		company.Status = models.StatusUnverified
	}

	_, err := r.collection.InsertOne(ctx, company)
	if err != nil {
		return nil, fmt.Errorf("failed to insert company: %w", err)
	}
	return company, nil
}

func (r *CompanyRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Company, error) {
	var company models.Company
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&company)
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) FindByEmail(ctx context.Context, email string) (*models.Company, error) {
	var company models.Company
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&company)
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) Update(ctx context.Context, id bson.ObjectID, fields bson.M) (*models.Company, error) {
	fields["updatedAt"] = int(time.Now().Unix())

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Company
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return &updated, nil
}

func (r *CompanyRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *CompanyRepository) FindByStatus(ctx context.Context, status models.VerificationStatus, page, limit int) ([]*models.Company, error) {
	opts := options.Find()
	opts.SetSort(bson.M{"createdAt": -1})
	opts.SetSkip(int64((page - 1) * limit))
	opts.SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var companies []*models.Company
	if err = cursor.All(ctx, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *CompanyRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Company, error) {
	opts := options.Find()
	opts.SetSort(bson.M{"createdAt": -1})
	opts.SetSkip(int64((page - 1) * limit))
	opts.SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var companies []*models.Company
	if err = cursor.All(ctx, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *CompanyRepository) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]*models.Company, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find companies: %w", err)
	}
	defer cursor.Close(ctx)

	var companies []*models.Company
	if err = cursor.All(ctx, &companies); err != nil {
		return nil, fmt.Errorf("failed to decode companies: %w", err)
	}
	return companies, nil
}

func (r *CompanyRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *CompanyRepository) CountByStatus(ctx context.Context, status models.VerificationStatus) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}

func (r *CompanyRepository) IncJobCount(ctx context.Context, id bson.ObjectID, delta int) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"jobCount": delta}})
	if err != nil {
		return fmt.Errorf("failed to update job count: %w", err)
	}
	return nil
}

func (r *CompanyRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create company indexes: %w", err)
	}
	return nil
}
