package media

import "context"

type Repository interface {
	Create(ctx context.Context, media *Media) error
	CreateMany(ctx context.Context, media []Media) error
	GetByID(ctx context.Context, id string) (*Media, error)
	GetByIDs(ctx context.Context, ids []string) ([]Media, error)
	List(ctx context.Context) ([]Media, error)
	FindByOwners(ctx context.Context, ownerIDs []string, ownerType OwnerType) ([]Media, error)
	Update(ctx context.Context, media *Media) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) error
}

// Storage is the external object store (a Cloudinary-compatible API).
type Storage interface {
	Upload(ctx context.Context, file File) (StoredObject, error)
	Delete(ctx context.Context, publicID string) error
	// ExtractPublicID recovers the provider object id from a stored URL.
	ExtractPublicID(url string) string
}

type StoredObject struct {
	URL      string
	PublicID string
}

// FaceCropper turns a portrait photo into a cropped, circular-masked PNG of
// the most prominent face.
type FaceCropper interface {
	DetectAndCrop(ctx context.Context, image []byte) ([]byte, error)
}
