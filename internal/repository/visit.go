package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shixiaoya/materials/internal/model"
)

const (
	visitsDatabase   = "materials"
	visitsCollection = "visits"
)

// VisitRepository is page-visit analytics storage
type VisitRepository interface {
	Insert(context.Context, model.Visit) error
	CountSince(context.Context, time.Time) (int64, error)
}

type mongoVisitRepository struct {
	client *mongo.Client
}

// NewMongoVisitRepository builds VisitRepository on top of mongo client
func NewMongoVisitRepository(client *mongo.Client) VisitRepository {
	return &mongoVisitRepository{client: client}
}

func (r *mongoVisitRepository) visits() *mongo.Collection {
	return r.client.Database(visitsDatabase).Collection(visitsCollection)
}

func (r *mongoVisitRepository) Insert(ctx context.Context, v model.Visit) error {
	if _, err := r.visits().InsertOne(ctx, v); err != nil {
		return err
	}
	return nil
}

func (r *mongoVisitRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	count, err := r.visits().CountDocuments(ctx, bson.M{"visitedAt": bson.M{"$gte": since}})
	if err != nil {
		return 0, err
	}
	return count, nil
}
