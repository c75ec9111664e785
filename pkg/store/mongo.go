package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mwittig/packsize/pkg/analyzer"
	"github.com/mwittig/packsize/pkg/errors"
)

// MongoStore archives reports in a MongoDB collection, one document per
// report with the report ID as _id.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

type reportDocument struct {
	ID          string          `bson:"_id"`
	GeneratedAt time.Time       `bson:"generated_at"`
	Ecosystem   string          `bson:"ecosystem"`
	Report      analyzer.Report `bson:"report"`
}

// NewMongoStore connects to MongoDB at uri and verifies the connection.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

// Save archives a report.
func (s *MongoStore) Save(ctx context.Context, report *analyzer.Report) error {
	doc := reportDocument{
		ID:          report.ID,
		GeneratedAt: report.GeneratedAt,
		Ecosystem:   string(report.Ecosystem),
		Report:      *report,
	}
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New(errors.ErrCodeInvalidInput, "report %s already saved", report.ID)
		}
		return err
	}
	return nil
}

// Get retrieves a report by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*analyzer.Report, error) {
	var doc reportDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeReportNotFound, "report not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &doc.Report, nil
}

// List returns reports newest first.
func (s *MongoStore) List(ctx context.Context, limit int) ([]analyzer.Report, error) {
	opts := options.Find().SetSort(bson.D{{Key: "generated_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []analyzer.Report
	for cursor.Next(ctx) {
		var doc reportDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.Report)
	}
	return out, cursor.Err()
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
