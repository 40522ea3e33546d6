// Package mongostore implements the storage repositories on MongoDB, with
// users and books kept in two collections of one database.
package mongostore

import (
	"context"
	"fmt"

	"github.com/isdelr/book-tracker-be/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection = "users"
	booksCollection = "books"
)

// Store is a storage.Store over a connected *mongo.Client.
type Store struct {
	client *mongo.Client
	users  *UserRepository
	books  *BookRepository
}

// Open connects to uri, checks the primary is reachable and makes sure the
// indexes backing the uniqueness and ownership lookups exist.
func Open(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping: %w", err)
	}

	db := client.Database(dbName)
	if err := ensureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("indexes: %w", err)
	}

	return &Store{
		client: client,
		users:  NewUserRepository(db.Collection(usersCollection)),
		books:  NewBookRepository(db.Collection(booksCollection)),
	}, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return err
	}
	_, err = db.Collection(booksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "_id", Value: 1}},
	})
	return err
}

func (s *Store) Users() storage.UserRepository { return s.users }
func (s *Store) Books() storage.BookRepository { return s.books }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
