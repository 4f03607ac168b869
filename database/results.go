package database

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InsertResult acknowledges a single document insert.
type InsertResult struct {
	Acknowledged bool        `json:"acknowledged"`
	InsertedID   interface{} `json:"insertedId"`
}

// UpdateResult acknowledges a single document update. UpsertedID is null unless the
// update created a document.
type UpdateResult struct {
	Acknowledged  bool        `json:"acknowledged"`
	MatchedCount  int64       `json:"matchedCount"`
	ModifiedCount int64       `json:"modifiedCount"`
	UpsertedCount int64       `json:"upsertedCount"`
	UpsertedID    interface{} `json:"upsertedId"`
}

// DeleteResult acknowledges a single document delete. A DeletedCount of zero is not an error.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// The driver only returns a result once the server has acknowledged the write,
// so results built from one are always acknowledged.

func NewInsertResult(r *mongo.InsertOneResult) InsertResult {
	return InsertResult{
		Acknowledged: true,
		InsertedID:   r.InsertedID,
	}
}

func NewUpdateResult(r *mongo.UpdateResult) UpdateResult {
	return UpdateResult{
		Acknowledged:  true,
		MatchedCount:  r.MatchedCount,
		ModifiedCount: r.ModifiedCount,
		UpsertedCount: r.UpsertedCount,
		UpsertedID:    r.UpsertedID,
	}
}

func NewDeleteResult(r *mongo.DeleteResult) DeleteResult {
	return DeleteResult{
		Acknowledged: true,
		DeletedCount: r.DeletedCount,
	}
}

// WithoutID returns a copy of doc with any _id removed, so inserts always get a
// driver minted identifier.
func WithoutID(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		out[k] = v
	}
	return out
}
