// Package mongodb adapts MongoDB to the document-store contract the sync
// coordinator consumes: per-user collections with store-assigned ids and
// push subscriptions that deliver full replacement snapshots on every
// change.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Client owns the MongoDB connection shared by the typed collections.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewClient connects to MongoDB and verifies the connection.
func NewClient(ctx context.Context, uri, dbName string) (*Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Client{client: client, db: client.Database(dbName)}, nil
}

// Close closes the MongoDB connection.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Collection is a typed, user-scoped view over one MongoDB collection. It
// implements the syncer.Store contract.
type Collection[T any] struct {
	coll   *mongo.Collection
	user   string
	logger *zap.Logger
	now    func() time.Time
}

// NewCollection binds a typed collection scoped to the given user.
func NewCollection[T any](client *Client, name, user string, logger *zap.Logger) *Collection[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collection[T]{
		coll:   client.db.Collection(name),
		user:   user,
		logger: logger,
		now:    time.Now,
	}
}

// Create inserts the record and returns the store-assigned id. Creation
// timestamps are stamped store-side: createdAt always, and startDate when
// the record carries one.
func (c *Collection[T]) Create(ctx context.Context, record T) (string, error) {
	doc, err := toDocument(record)
	if err != nil {
		return "", err
	}

	id := primitive.NewObjectID().Hex()
	now := c.now().UTC()
	doc["_id"] = id
	doc["user"] = c.user
	doc["createdAt"] = now
	if _, ok := doc["startDate"]; ok {
		doc["startDate"] = now
	}

	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert into %s: %w", c.coll.Name(), err)
	}
	return id, nil
}

// Update applies a partial field patch to one document.
func (c *Collection[T]) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	filter := bson.M{"_id": id, "user": c.user}
	if _, err := c.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M(fields)}); err != nil {
		return fmt.Errorf("update %s/%s: %w", c.coll.Name(), id, err)
	}
	return nil
}

// Delete removes one document.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	filter := bson.M{"_id": id, "user": c.user}
	if _, err := c.coll.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("delete %s/%s: %w", c.coll.Name(), id, err)
	}
	return nil
}

// Subscribe registers a change-stream driven push channel. An initial
// snapshot is delivered before Subscribe returns; afterwards every remote
// change triggers a full re-read of the user's documents, delivered as a
// complete id-to-record snapshot. The returned function cancels the stream.
func (c *Collection[T]) Subscribe(ctx context.Context, onSnapshot func(map[string]T), onError func(error)) (func(), error) {
	docs, err := c.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	streamCtx, cancel := context.WithCancel(context.Background())
	stream, err := c.coll.Watch(streamCtx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("watch %s: %w", c.coll.Name(), err)
	}

	onSnapshot(docs)

	go func() {
		defer func() {
			if err := stream.Close(context.Background()); err != nil {
				c.logger.Debug("change stream close failed", zap.Error(err))
			}
		}()

		for stream.Next(streamCtx) {
			snapshot, err := c.fetchAll(streamCtx)
			if err != nil {
				onError(fmt.Errorf("refresh %s after change: %w", c.coll.Name(), err))
				continue
			}
			onSnapshot(snapshot)
		}

		if err := stream.Err(); err != nil && !errors.Is(err, context.Canceled) {
			onError(fmt.Errorf("change stream on %s: %w", c.coll.Name(), err))
		}
	}()

	return cancel, nil
}

func (c *Collection[T]) fetchAll(ctx context.Context) (map[string]T, error) {
	cursor, err := c.coll.Find(ctx, bson.M{"user": c.user})
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", c.coll.Name(), err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	docs := make(map[string]T)
	for cursor.Next(ctx) {
		id, ok := documentID(cursor.Current)
		if !ok {
			c.logger.Warn("skipping document without readable _id", zap.String("collection", c.coll.Name()))
			continue
		}

		var record T
		if err := cursor.Decode(&record); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", c.coll.Name(), id, err)
		}
		docs[id] = record
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", c.coll.Name(), err)
	}

	return docs, nil
}

func documentID(raw bson.Raw) (string, bool) {
	value := raw.Lookup("_id")
	if id, ok := value.StringValueOK(); ok {
		return id, true
	}
	if oid, ok := value.ObjectIDOK(); ok {
		return oid.Hex(), true
	}
	return "", false
}

func toDocument(record any) (bson.M, error) {
	raw, err := bson.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}

	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	delete(doc, "_id") // ids are store-assigned
	return doc, nil
}
