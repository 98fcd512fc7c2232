// Package mongorepos implements the repositories over MongoDB, the store the schedule historically lived in.
package mongorepos

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mocnepiwko/uni-diary/core"
)

const (
	usersCollection     = "users"
	lessonsCollection   = "lessons"
	homeworksCollection = "homeworks"
)

// Open connects to conf.Database.MongoURI and returns the app database.
func Open(ctx context.Context, conf *core.Config) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.Database.MongoURI))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongodb")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err = client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "pinging mongodb")
	}
	return client.Database(conf.Database.Name), nil
}

// EnsureIndexes creates the indexes the repositories rely on, the unique user email among them.
// It is meant to run once at startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		lessonsCollection: {
			{Keys: bson.D{{Key: "day", Value: 1}, {Key: "startTime", Value: 1}}},
		},
		homeworksCollection: {
			{Keys: bson.D{{Key: "subject", Value: 1}, {Key: "deadline", Value: 1}}},
		},
	}
	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrap(err, "creating "+coll+" indexes")
		}
	}
	return nil
}

// objectID parses a hex id. ok is false for anything that cannot be a document id.
func objectID(id string) (oid primitive.ObjectID, ok bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}
