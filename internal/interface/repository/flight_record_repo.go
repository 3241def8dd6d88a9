package repository

import (
	"context"
	"fmt"
	"time"

	"flightreport-ingestor/internal/domain/entity"
	"flightreport-ingestor/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFlightRecordRepository implements FlightRecordRepository
type MongoFlightRecordRepository struct {
	collection *mongo.Collection
}

// NewMongoFlightRecordRepository creates a new flight record repository
func NewMongoFlightRecordRepository(db *mongo.Database) repository.FlightRecordRepository {
	collection := db.Collection("flight_reports")

	// Create unique index on filename; re-archiving a report replaces it
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"filename": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoFlightRecordRepository{
		collection: collection,
	}
}

// Archive upserts the run's records keyed by source filename.
func (r *MongoFlightRecordRepository) Archive(ctx context.Context, records []*entity.FlightRecord) error {
	for _, record := range records {
		doc := bson.M(record.Document())
		doc["archivedAt"] = time.Now()

		opts := options.Update().SetUpsert(true)
		filter := bson.M{"filename": record.Filename()}

		if _, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": doc}, opts); err != nil {
			return fmt.Errorf("archive %s: %w", record.Filename(), err)
		}
	}
	return nil
}
