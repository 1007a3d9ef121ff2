package repository

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoCollection holds the CRUD plumbing shared by the document backed
// repositories. Documents are keyed by the same string id the SQL backend uses.
type mongoCollection[T any] struct {
	coll *mongo.Collection
}

func newMongoCollection[T any](database *mongo.Database, name string) mongoCollection[T] {
	return mongoCollection[T]{coll: database.Collection(name)}
}

func (m mongoCollection[T]) find(ctx context.Context, filter bson.M, sort bson.D) ([]T, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := m.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// findOne returns mongo.ErrNoDocuments when nothing matches.
func (m mongoCollection[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	if err := m.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (m mongoCollection[T]) insert(ctx context.Context, doc *T) error {
	_, err := m.coll.InsertOne(ctx, doc)
	return err
}

func (m mongoCollection[T]) replace(ctx context.Context, id string, doc *T) error {
	result, err := m.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (m mongoCollection[T]) deleteOne(ctx context.Context, filter bson.M) error {
	result, err := m.coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// equalFold matches a string field exactly, ignoring case.
func equalFold(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}
