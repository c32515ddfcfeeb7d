package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/homes-service/internal/home/domain"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestHomeDocumentConversion(t *testing.T) {
	now := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	home := &domain.Home{
		Title: "Loft", Description: "Bright loft", Price: 120, Guests: 2, Beds: 1, Baths: 1,
		Image: "http://minio/images/homes/a.png", CreatedAt: now, UpdatedAt: now,
	}

	doc := toHomeDocument(home)
	assert.True(t, doc.ID.IsZero())
	doc.ID = primitive.NewObjectID()

	back := toDomainHome(doc)
	assert.Equal(t, doc.ID.Hex(), back.ID)
	back.ID = ""
	assert.Equal(t, home, back)
}

func TestHomeRepository_FindByID_MalformedID(t *testing.T) {
	r := &HomeRepository{}
	_, err := r.FindByID(context.Background(), "not-an-object-id")
	assert.ErrorIs(t, err, domain.ErrHomeNotFound)
}
