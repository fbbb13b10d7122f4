package history

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"family-tree-go/internal/domain/media"
	"family-tree-go/pkg/logger"
	"github.com/google/uuid"
)

const idAttempts = 5

type Service struct {
	repo  Repository
	media MediaService
	log   logger.Logger
}

func NewService(repo Repository, mediaService MediaService, log logger.Logger) *Service {
	return &Service{repo: repo, media: mediaService, log: log}
}

// CreateRecord stores a history record under a generated HIST- id and uploads
// any attached images against the owning family.
func (s *Service) CreateRecord(ctx context.Context, input CreateInput, files []media.File) (*FamilyHistoryRecord, error) {
	recordID, err := s.generateRecordID(ctx)
	if err != nil {
		return nil, err
	}

	record := FamilyHistoryRecord{
		ID:                 uuid.NewString(),
		HistoricalRecordID: recordID,
		FamilyID:           input.FamilyID,
		Title:              input.Title,
		Summary:            input.Summary,
		Details:            input.Details,
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
	}
	if err := s.repo.Create(ctx, &record); err != nil {
		return nil, err
	}

	if len(files) > 0 {
		if _, err := s.media.UploadMany(ctx, files, input.FamilyID, media.OwnerFamilyHistory); err != nil {
			if delErr := s.repo.Delete(ctx, recordID); delErr != nil {
				s.log.Error("history: compensation delete failed", "err", delErr, "record_id", recordID)
			}
			return nil, err
		}
	}

	return &record, nil
}

// generateRecordID produces HIST-<yyyymmdd>-<8 hex>, retrying on the unlikely
// collision.
func (s *Service) generateRecordID(ctx context.Context) (string, error) {
	for i := 0; i < idAttempts; i++ {
		var buf [4]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return "", err
		}
		candidate := fmt.Sprintf("HIST-%s-%s", time.Now().UTC().Format("20060102"), hex.EncodeToString(buf[:]))

		taken, err := s.repo.ExistsByRecordID(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrIDGeneration
}

func (s *Service) GetRecordByID(ctx context.Context, recordID string) (*FamilyHistoryRecord, error) {
	return s.repo.GetByRecordID(ctx, recordID)
}

// GetRecordsByFamily returns a family's records sorted by start date.
func (s *Service) GetRecordsByFamily(ctx context.Context, familyID string) ([]FamilyHistoryRecord, error) {
	return s.repo.FindByFamily(ctx, familyID)
}

// SearchRecords pages through a family's records filtered by title substring
// and date range.
func (s *Service) SearchRecords(ctx context.Context, familyID string, filter SearchFilter) (Page, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	items, total, err := s.repo.Search(ctx, familyID, filter)
	if err != nil {
		return Page{}, err
	}
	if items == nil {
		items = []FamilyHistoryRecord{}
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return Page{
		Items:       items,
		TotalItems:  total,
		CurrentPage: filter.Page,
		PageSize:    filter.Limit,
		TotalPages:  totalPages,
	}, nil
}

func (s *Service) UpdateRecord(ctx context.Context, recordID string, input UpdateInput) (*FamilyHistoryRecord, error) {
	record, err := s.repo.GetByRecordID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		record.Title = *input.Title
	}
	if input.Summary != nil {
		record.Summary = *input.Summary
	}
	if input.Details != nil {
		record.Details = *input.Details
	}
	if input.StartDate != nil {
		record.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		record.EndDate = input.EndDate
	}

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) DeleteRecord(ctx context.Context, recordID string) (*FamilyHistoryRecord, error) {
	record, err := s.repo.GetByRecordID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, recordID); err != nil {
		return nil, err
	}
	return record, nil
}
