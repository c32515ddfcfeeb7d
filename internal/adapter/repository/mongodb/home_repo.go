package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/homes-service/internal/home/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const homesCollection = "homes"

type HomeRepository struct {
	collection *mongo.Collection
}

func NewHomeRepository(db *mongo.Database) *HomeRepository {
	return &HomeRepository{collection: db.Collection(homesCollection)}
}

// Create inserts home and sets home.ID to the generated ObjectID hex.
func (r *HomeRepository) Create(ctx context.Context, home *domain.Home) error {
	doc := toHomeDocument(home)
	doc.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert home: %w", err)
	}
	home.ID = doc.ID.Hex()
	return nil
}

// FindByID returns domain.ErrHomeNotFound for unknown or malformed ids.
func (r *HomeRepository) FindByID(ctx context.Context, id string) (*domain.Home, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrHomeNotFound
	}

	var doc homeDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrHomeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find home %s: %w", id, err)
	}
	return toDomainHome(&doc), nil
}
