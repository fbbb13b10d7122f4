package event

import (
	"context"

	"family-tree-go/internal/domain/media"
)

type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
}

// MediaService is the slice of the media service event flows consume;
// satisfied by *media.Service.
type MediaService interface {
	UploadMany(ctx context.Context, files []media.File, ownerID string, ownerType media.OwnerType) ([]media.Media, error)
	GetMediaByOwners(ctx context.Context, ownerIDs []string, ownerType media.OwnerType) ([]media.Media, error)
	DeleteMedia(ctx context.Context, id string) (*media.Media, error)
	DeleteManyMedia(ctx context.Context, ids []string) error
}
