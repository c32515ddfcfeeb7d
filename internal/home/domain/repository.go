package domain

import "context"

// HomeRepository persists homes.
type HomeRepository interface {
	Create(ctx context.Context, home *Home) error
	FindByID(ctx context.Context, id string) (*Home, error)
}

// HomeCache is a read-through cache for homes. Get returns (nil, nil) on a miss.
type HomeCache interface {
	Get(ctx context.Context, id string) (*Home, error)
	Set(ctx context.Context, home *Home) error
}

// Storage writes objects to the image bucket and returns their public URL.
type Storage interface {
	Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error)
}

// EventPublisher announces home lifecycle events.
type EventPublisher interface {
	PublishHomeCreated(ctx context.Context, home *Home) error
}
