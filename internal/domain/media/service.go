package media

import (
	"context"
	"fmt"
	"strings"

	"family-tree-go/pkg/logger"
	"github.com/google/uuid"
)

type Service struct {
	repo    Repository
	storage Storage
	cropper FaceCropper
	log     logger.Logger
}

func NewService(repo Repository, storage Storage, cropper FaceCropper, log logger.Logger) *Service {
	return &Service{repo: repo, storage: storage, cropper: cropper, log: log}
}

// Upload pushes the file to object storage and records its metadata. If the
// metadata write fails the stored object is deleted again.
func (s *Service) Upload(ctx context.Context, file File, ownerID string, ownerType OwnerType) (*Media, error) {
	if len(file.Data) == 0 {
		return nil, ErrFileRequired
	}
	if !ownerType.Valid() {
		return nil, ErrInvalidOwnerType
	}

	stored, err := s.storage.Upload(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	m := Media{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		OwnerType: ownerType,
		URL:       stored.URL,
		FileName:  file.Name,
		MimeType:  file.MimeType,
		Size:      file.Size,
	}
	if err := s.repo.Create(ctx, &m); err != nil {
		if delErr := s.storage.Delete(ctx, stored.PublicID); delErr != nil {
			s.log.Error("media: orphaned object after failed metadata write", "err", delErr, "public_id", stored.PublicID)
		}
		return nil, err
	}
	return &m, nil
}

// UploadMany uploads every file for the same owner. On failure the objects
// already stored are deleted and no metadata is persisted.
func (s *Service) UploadMany(ctx context.Context, files []File, ownerID string, ownerType OwnerType) ([]Media, error) {
	if len(files) == 0 {
		return nil, ErrFileRequired
	}
	if !ownerType.Valid() {
		return nil, ErrInvalidOwnerType
	}

	stored := make([]StoredObject, 0, len(files))
	rollback := func() {
		for _, obj := range stored {
			if err := s.storage.Delete(ctx, obj.PublicID); err != nil {
				s.log.Error("media: rollback delete failed", "err", err, "public_id", obj.PublicID)
			}
		}
	}

	records := make([]Media, 0, len(files))
	for _, file := range files {
		if len(file.Data) == 0 {
			rollback()
			return nil, ErrFileRequired
		}
		obj, err := s.storage.Upload(ctx, file)
		if err != nil {
			rollback()
			return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		stored = append(stored, obj)
		records = append(records, Media{
			ID:        uuid.NewString(),
			OwnerID:   ownerID,
			OwnerType: ownerType,
			URL:       obj.URL,
			FileName:  file.Name,
			MimeType:  file.MimeType,
			Size:      file.Size,
		})
	}

	if err := s.repo.CreateMany(ctx, records); err != nil {
		rollback()
		return nil, err
	}
	return records, nil
}

func (s *Service) GetMediaByID(ctx context.Context, id string) (*Media, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListMedia(ctx context.Context) ([]Media, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetMediaByOwners(ctx context.Context, ownerIDs []string, ownerType OwnerType) ([]Media, error) {
	if !ownerType.Valid() {
		return nil, ErrInvalidOwnerType
	}
	if len(ownerIDs) == 0 {
		return []Media{}, nil
	}
	return s.repo.FindByOwners(ctx, ownerIDs, ownerType)
}

func (s *Service) UpdateMedia(ctx context.Context, id string, input UpdateInput) (*Media, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FileName != nil {
		m.FileName = *input.FileName
	}
	if input.MimeType != nil {
		m.MimeType = *input.MimeType
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteMedia removes the stored object, then the metadata row.
func (s *Service) DeleteMedia(ctx context.Context, id string) (*Media, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if publicID := s.storage.ExtractPublicID(m.URL); publicID != "" {
		if err := s.storage.Delete(ctx, publicID); err != nil {
			s.log.Warn("media: storage delete failed", "err", err, "media_id", id)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteManyMedia bulk-deletes records and their stored objects, keyed by the
// public ids extracted from the stored URLs. Unknown ids are skipped.
func (s *Service) DeleteManyMedia(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	records, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	for _, m := range records {
		publicID := s.storage.ExtractPublicID(m.URL)
		if publicID == "" {
			continue
		}
		if err := s.storage.Delete(ctx, publicID); err != nil {
			s.log.Warn("media: storage delete failed", "err", err, "media_id", m.ID)
		}
	}

	found := make([]string, 0, len(records))
	for _, m := range records {
		found = append(found, m.ID)
	}
	return s.repo.DeleteMany(ctx, found)
}

// ProcessAvatar runs face detection on the image, crops to the detected face
// and uploads the derived PNG as the member's avatar.
func (s *Service) ProcessAvatar(ctx context.Context, file File, ownerID string) (*Media, error) {
	if len(file.Data) == 0 {
		return nil, ErrFileRequired
	}

	cropped, err := s.cropper.DetectAndCrop(ctx, file.Data)
	if err != nil {
		return nil, err
	}

	avatar := File{
		Name:     replaceExtension(file.Name, ".png"),
		MimeType: "image/png",
		Size:     int64(len(cropped)),
		Data:     cropped,
	}
	return s.Upload(ctx, avatar, ownerID, OwnerMember)
}

func replaceExtension(name, ext string) string {
	if idx := strings.LastIndex(name, "."); idx > 0 {
		return name[:idx] + ext
	}
	return name + ext
}
