package history

import (
	"context"

	"family-tree-go/internal/domain/media"
)

type Repository interface {
	Create(ctx context.Context, record *FamilyHistoryRecord) error
	// GetByRecordID looks up by the generated HIST- id.
	GetByRecordID(ctx context.Context, recordID string) (*FamilyHistoryRecord, error)
	FindByFamily(ctx context.Context, familyID string) ([]FamilyHistoryRecord, error)
	Search(ctx context.Context, familyID string, filter SearchFilter) ([]FamilyHistoryRecord, int64, error)
	Update(ctx context.Context, record *FamilyHistoryRecord) error
	Delete(ctx context.Context, recordID string) error
	ExistsByRecordID(ctx context.Context, recordID string) (bool, error)
}

// MediaService is satisfied by *media.Service.
type MediaService interface {
	UploadMany(ctx context.Context, files []media.File, ownerID string, ownerType media.OwnerType) ([]media.Media, error)
}
