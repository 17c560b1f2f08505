package boatRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lagocruise/database"
	"lagocruise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BoatRepository defines the read surface the booking engine needs from the
// boat catalogue.
type BoatRepository interface {
	GetByID(id string) (*models.Boat, error)
	ListAvailable(skip, limit int64) ([]models.Boat, int64, error)
}

// MongoBoatRepo implements BoatRepository using MongoDB.
type MongoBoatRepo struct {
	coll *mongo.Collection
}

// NewMongoBoatRepo creates a new instance of BoatRepository using MongoDB.
func NewMongoBoatRepo() BoatRepository {
	coll := database.Collection("boats")
	repo := &MongoBoatRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBoatRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "boat_type", Value: 1}}},
		{Keys: bson.D{{Key: "is_available", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a boat by its unique ID.
func (r *MongoBoatRepo) GetByID(id string) (*models.Boat, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var boat models.Boat
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&boat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get boat with id %s: %w", id, err)
	}
	return &boat, nil
}

// ListAvailable returns a page of boats open for booking.
func (r *MongoBoatRepo) ListAvailable(skip, limit int64) ([]models.Boat, int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"is_available": true}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count boats: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "price_per_hour", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list boats: %w", err)
	}
	defer cursor.Close(ctx)

	var boats []models.Boat
	if err := cursor.All(ctx, &boats); err != nil {
		return nil, 0, fmt.Errorf("failed to decode boats: %w", err)
	}
	return boats, total, nil
}
