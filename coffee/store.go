// Package coffee stores the coffee catalogue in the "coffee" collection.
//
// Documents are schema-less. Reads return whatever is stored, and only updates are
// limited to a known set of fields.
package coffee

import (
	"context"
	"errors"
	"fmt"

	"github.com/circleci/ex/mongoex"
	"github.com/circleci/ex/o11y"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/circleci/coffeeshop/database"
)

const entity = "coffee"

var ErrNotFound = o11y.NewWarning("coffee not found")

// Update holds the fields an update may set. Nil fields are left as they are.
type Update struct {
	Category *string `bson:"category,omitempty"`
	Details  *string `bson:"details,omitempty"`
	Name     *string `bson:"name,omitempty"`
	Photo    *string `bson:"photo,omitempty"`
	Quantity *int    `bson:"quantity,omitempty"`
	Supplier *string `bson:"supplier,omitempty"`
	Taste    *string `bson:"taste,omitempty"`
}

func (u Update) empty() bool {
	return u == Update{}
}

type Store struct {
	coll *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		coll: db.Collection(entity),
	}
}

// List returns every coffee document as stored, in natural order.
func (s *Store) List(ctx context.Context) (docs []bson.M, err error) {
	ctx, span := mongoex.Span(ctx, entity, "list")
	defer o11y.End(span, &err)

	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find coffee: %w", err)
	}

	docs = []bson.M{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("read coffee: %w", err)
	}
	span.AddField("count", len(docs))
	return docs, nil
}

// ByID returns the coffee document with the given id, or ErrNotFound.
func (s *Store) ByID(ctx context.Context, id primitive.ObjectID) (doc bson.M, err error) {
	ctx, span := mongoex.Span(ctx, entity, "by_id")
	defer o11y.End(span, &err)
	span.AddField("id", id.Hex())

	err = s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("find coffee: %w", err)
	}
	return doc, nil
}

// Add inserts doc. Any _id in doc is ignored, the driver mints a new one.
func (s *Store) Add(ctx context.Context, doc bson.M) (res database.InsertResult, err error) {
	ctx, span := mongoex.Span(ctx, entity, "add")
	defer o11y.End(span, &err)
	span.AddField("fields", len(doc))

	r, err := s.coll.InsertOne(ctx, database.WithoutID(doc))
	if err != nil {
		return res, fmt.Errorf("insert coffee: %w", err)
	}
	return database.NewInsertResult(r), nil
}

// Update sets the non nil fields of u on the coffee with the given id, creating it
// if there is none.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, u Update) (res database.UpdateResult, err error) {
	ctx, span := mongoex.Span(ctx, entity, "update")
	defer o11y.End(span, &err)
	span.AddField("id", id.Hex())

	// $set must not be empty, so with nothing to set only the upsert can happen
	change := bson.D{{Key: "$set", Value: u}}
	if u.empty() {
		change = bson.D{{Key: "$setOnInsert", Value: bson.D{{Key: "_id", Value: id}}}}
	}

	r, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		change,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return res, fmt.Errorf("update coffee: %w", err)
	}
	span.AddField("upserted", r.UpsertedCount > 0)
	return database.NewUpdateResult(r), nil
}

// Delete removes the coffee with the given id. Deleting nothing is not an error.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (res database.DeleteResult, err error) {
	ctx, span := mongoex.Span(ctx, entity, "delete")
	defer o11y.End(span, &err)
	span.AddField("id", id.Hex())

	r, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return res, fmt.Errorf("delete coffee: %w", err)
	}
	span.AddField("deleted", r.DeletedCount)
	return database.NewDeleteResult(r), nil
}
