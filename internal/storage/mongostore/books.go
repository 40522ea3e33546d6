package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/isdelr/book-tracker-be/internal/models"
	"github.com/isdelr/book-tracker-be/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bookDoc struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Title  string             `bson:"title"`
	Author string             `bson:"author"`
	Genre  string             `bson:"genre"`
	Rating *int               `bson:"rating"`
	Notes  string             `bson:"notes"`
	UserID string             `bson:"userId"`
}

func (d bookDoc) model() models.Book {
	return models.Book{
		ID:     d.ID.Hex(),
		Title:  d.Title,
		Author: d.Author,
		Genre:  d.Genre,
		Rating: d.Rating,
		Notes:  d.Notes,
		UserID: d.UserID,
	}
}

// BookRepository stores books in the books collection.
type BookRepository struct {
	coll *mongo.Collection
}

func NewBookRepository(coll *mongo.Collection) *BookRepository {
	return &BookRepository{coll: coll}
}

// ValidID accepts 24 character hex ObjectIDs.
func (r *BookRepository) ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// owned is the filter shared by every operation that addresses a single
// book: the document must carry the id and belong to the caller.
func owned(ownerID, id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, storage.ErrNotFound
	}
	return bson.M{"_id": oid, "userId": ownerID}, nil
}

func (r *BookRepository) Insert(ctx context.Context, b *models.Book) error {
	doc := bookDoc{
		ID:     primitive.NewObjectID(),
		Title:  b.Title,
		Author: b.Author,
		Genre:  b.Genre,
		Rating: b.Rating,
		Notes:  b.Notes,
		UserID: b.UserID,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	b.ID = doc.ID.Hex()
	return nil
}

func (r *BookRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Book, error) {
	// ObjectIDs grow with insertion time.
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"userId": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	var docs []bookDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	books := make([]models.Book, 0, len(docs))
	for _, d := range docs {
		books = append(books, d.model())
	}
	return books, nil
}

func (r *BookRepository) UpdateOwned(ctx context.Context, ownerID, id string, upd models.BookUpdate) (models.Book, error) {
	filter, err := owned(ownerID, id)
	if err != nil {
		return models.Book{}, err
	}

	var res *mongo.SingleResult
	if upd.Empty() {
		// An empty $set is rejected by the server.
		res = r.coll.FindOne(ctx, filter)
	} else {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		res = r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": setDocument(upd)}, opts)
	}

	var doc bookDoc
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Book{}, storage.ErrNotFound
		}
		return models.Book{}, fmt.Errorf("db error: %w", err)
	}
	return doc.model(), nil
}

func (r *BookRepository) DeleteOwned(ctx context.Context, ownerID, id string) error {
	filter, err := owned(ownerID, id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func setDocument(upd models.BookUpdate) bson.M {
	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Author != nil {
		set["author"] = *upd.Author
	}
	if upd.Genre != nil {
		set["genre"] = *upd.Genre
	}
	if upd.Rating != nil {
		set["rating"] = *upd.Rating
	}
	if upd.Notes != nil {
		set["notes"] = *upd.Notes
	}
	return set
}
