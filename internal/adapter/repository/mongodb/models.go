package mongodb

import (
	"time"

	"github.com/Abdurahmanit/GroupProject/homes-service/internal/home/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type homeDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Price       int                `bson:"price"`
	Guests      int                `bson:"guests"`
	Beds        int                `bson:"beds"`
	Baths       int                `bson:"baths"`
	Image       string             `bson:"image"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func toHomeDocument(h *domain.Home) *homeDocument {
	return &homeDocument{
		Title:       h.Title,
		Description: h.Description,
		Price:       h.Price,
		Guests:      h.Guests,
		Beds:        h.Beds,
		Baths:       h.Baths,
		Image:       h.Image,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

func toDomainHome(d *homeDocument) *domain.Home {
	return &domain.Home{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Guests:      d.Guests,
		Beds:        d.Beds,
		Baths:       d.Baths,
		Image:       d.Image,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
