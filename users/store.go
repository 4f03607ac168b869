// Package users stores user profiles in the "users" collection, keyed for updates by email.
package users

import (
	"context"
	"fmt"

	"github.com/circleci/ex/mongoex"
	"github.com/circleci/ex/o11y"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/circleci/coffeeshop/database"
)

const entity = "users"

type Store struct {
	coll *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		coll: db.Collection(entity),
	}
}

// List returns every user document as stored.
func (s *Store) List(ctx context.Context) (docs []bson.M, err error) {
	ctx, span := mongoex.Span(ctx, entity, "list")
	defer o11y.End(span, &err)

	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}

	docs = []bson.M{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}
	span.AddField("count", len(docs))
	return docs, nil
}

// Add inserts doc with a driver minted _id. Timestamps are stored as the client sent them.
func (s *Store) Add(ctx context.Context, doc bson.M) (res database.InsertResult, err error) {
	ctx, span := mongoex.Span(ctx, entity, "add")
	defer o11y.End(span, &err)

	r, err := s.coll.InsertOne(ctx, database.WithoutID(doc))
	if err != nil {
		return res, fmt.Errorf("insert user: %w", err)
	}
	return database.NewInsertResult(r), nil
}

// UpdateLastLoggedAt records a login for the user with the given email. Unlike coffee
// updates this never creates a user, an unknown email matches nothing.
func (s *Store) UpdateLastLoggedAt(ctx context.Context, email, lastLoggedAt string) (res database.UpdateResult, err error) {
	ctx, span := mongoex.Span(ctx, entity, "update_last_logged_at")
	defer o11y.End(span, &err)

	r, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "email", Value: email}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "lastLoggedAt", Value: lastLoggedAt}}}},
	)
	if err != nil {
		return res, fmt.Errorf("update user: %w", err)
	}
	span.AddField("matched", r.MatchedCount)
	return database.NewUpdateResult(r), nil
}

// Delete removes the user with the given id. Deleting nothing is not an error.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (res database.DeleteResult, err error) {
	ctx, span := mongoex.Span(ctx, entity, "delete")
	defer o11y.End(span, &err)
	span.AddField("id", id.Hex())

	r, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return res, fmt.Errorf("delete user: %w", err)
	}
	return database.NewDeleteResult(r), nil
}
