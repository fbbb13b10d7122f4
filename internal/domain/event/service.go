package event

import (
	"context"

	"family-tree-go/internal/domain/media"
	"family-tree-go/pkg/logger"
	"github.com/google/uuid"
)

type Service struct {
	repo  Repository
	media MediaService
	log   logger.Logger
}

func NewService(repo Repository, mediaService MediaService, log logger.Logger) *Service {
	return &Service{repo: repo, media: mediaService, log: log}
}

// CreateEvent stores the event and uploads any attached files. A failed upload
// removes the just-created event so no half-created record survives.
func (s *Service) CreateEvent(ctx context.Context, input CreateInput, files []media.File) (*EventWithMedia, error) {
	e := Event{
		ID:                uuid.NewString(),
		CreatedBy:         input.CreatedBy,
		RelaTypeName:      input.RelaTypeName,
		EventScope:        input.EventScope,
		EventType:         input.EventType,
		EventName:         input.EventName,
		EventDescription:  input.EventDescription,
		GregorianDate:     input.GregorianDate,
		LunarDate:         input.LunarDate,
		RecurrenceRule:    input.RecurrenceRule,
		EndRecurrenceDate: input.EndRecurrenceDate,
		Location:          input.Location,
	}
	if err := s.repo.Create(ctx, &e); err != nil {
		return nil, err
	}

	var attachments []media.Media
	if len(files) > 0 {
		uploaded, err := s.media.UploadMany(ctx, files, e.ID, media.OwnerEvent)
		if err != nil {
			if delErr := s.repo.Delete(ctx, e.ID); delErr != nil {
				s.log.Error("events: compensation delete failed", "err", delErr, "event_id", e.ID)
			}
			return nil, err
		}
		attachments = uploaded
	}

	return &EventWithMedia{Event: e, Media: orEmpty(attachments)}, nil
}

func (s *Service) GetEventByID(ctx context.Context, id string) (*EventWithMedia, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	attachments, err := s.media.GetMediaByOwners(ctx, []string{id}, media.OwnerEvent)
	if err != nil {
		return nil, err
	}
	return &EventWithMedia{Event: *e, Media: orEmpty(attachments)}, nil
}

func (s *Service) ListEvents(ctx context.Context) ([]Event, error) {
	return s.repo.List(ctx)
}

// UpdateEvent applies field changes and reconciles attachments: listed ids are
// deleted, new uploads either replace the remainder (IsChangeImage) or are
// merged with it, deduplicated by URL.
func (s *Service) UpdateEvent(ctx context.Context, id string, input UpdateInput, files []media.File) (*EventWithMedia, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing, err := s.media.GetMediaByOwners(ctx, []string{id}, media.OwnerEvent)
	if err != nil {
		return nil, err
	}

	if input.IsChangeImage && len(input.DeleteImageIDs) > 0 {
		for _, mediaID := range input.DeleteImageIDs {
			if _, err := s.media.DeleteMedia(ctx, mediaID); err != nil {
				s.log.Warn("events: attachment delete failed", "err", err, "media_id", mediaID)
			}
		}
		existing = withoutIDs(existing, input.DeleteImageIDs)
	}

	attachments := existing
	if len(files) > 0 {
		uploaded, err := s.media.UploadMany(ctx, files, id, media.OwnerEvent)
		if err != nil {
			return nil, err
		}
		if input.IsChangeImage {
			attachments = uploaded
		} else {
			attachments = mergeByURL(existing, uploaded)
		}
	}

	applyUpdate(e, input)
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	return &EventWithMedia{Event: *e, Media: orEmpty(attachments)}, nil
}

func applyUpdate(e *Event, input UpdateInput) {
	if input.RelaTypeName != nil {
		e.RelaTypeName = *input.RelaTypeName
	}
	if input.EventScope != nil {
		e.EventScope = *input.EventScope
	}
	if input.EventType != nil {
		e.EventType = *input.EventType
	}
	if input.EventName != nil {
		e.EventName = *input.EventName
	}
	if input.EventDescription != nil {
		e.EventDescription = *input.EventDescription
	}
	if input.GregorianDate != nil {
		e.GregorianDate = input.GregorianDate
	}
	if input.LunarDate != nil {
		e.LunarDate = *input.LunarDate
	}
	if input.RecurrenceRule != nil {
		e.RecurrenceRule = *input.RecurrenceRule
	}
	if input.EndRecurrenceDate != nil {
		e.EndRecurrenceDate = input.EndRecurrenceDate
	}
	if input.Location != nil {
		e.Location = *input.Location
	}
}

// DeleteEvent removes the event and every attachment it owns.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	attachments, err := s.media.GetMediaByOwners(ctx, []string{id}, media.OwnerEvent)
	if err != nil {
		return err
	}
	if len(attachments) > 0 {
		ids := make([]string, 0, len(attachments))
		for _, m := range attachments {
			ids = append(ids, m.ID)
		}
		if err := s.media.DeleteManyMedia(ctx, ids); err != nil {
			return err
		}
	}

	return s.repo.Delete(ctx, id)
}

func withoutIDs(items []media.Media, ids []string) []media.Media {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := make([]media.Media, 0, len(items))
	for _, m := range items {
		if _, gone := drop[m.ID]; !gone {
			kept = append(kept, m)
		}
	}
	return kept
}

func mergeByURL(existing, uploaded []media.Media) []media.Media {
	seen := make(map[string]struct{}, len(existing)+len(uploaded))
	merged := make([]media.Media, 0, len(existing)+len(uploaded))
	for _, m := range append(existing, uploaded...) {
		if m.URL == "" {
			continue
		}
		if _, dup := seen[m.URL]; dup {
			continue
		}
		seen[m.URL] = struct{}{}
		merged = append(merged, m)
	}
	return merged
}

func orEmpty(items []media.Media) []media.Media {
	if items == nil {
		return []media.Media{}
	}
	return items
}
