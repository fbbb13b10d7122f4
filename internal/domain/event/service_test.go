package event

import (
	"context"
	"fmt"
	"testing"
	"time"

	"family-tree-go/internal/domain/media"
	"family-tree-go/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventRepo struct {
	events map[string]*Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[string]*Event)}
}

func (r *fakeEventRepo) Create(ctx context.Context, e *Event) error {
	r.events[e.ID] = e
	return nil
}

func (r *fakeEventRepo) GetByID(ctx context.Context, id string) (*Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeEventRepo) List(ctx context.Context) ([]Event, error) {
	result := make([]Event, 0, len(r.events))
	for _, e := range r.events {
		result = append(result, *e)
	}
	return result, nil
}

func (r *fakeEventRepo) Update(ctx context.Context, e *Event) error {
	r.events[e.ID] = e
	return nil
}

func (r *fakeEventRepo) Delete(ctx context.Context, id string) error {
	delete(r.events, id)
	return nil
}

type fakeEventMedia struct {
	byID       map[string]media.Media
	next       int
	failUpload bool
}

func newFakeEventMedia() *fakeEventMedia {
	return &fakeEventMedia{byID: make(map[string]media.Media)}
}

func (f *fakeEventMedia) UploadMany(ctx context.Context, files []media.File, ownerID string, ownerType media.OwnerType) ([]media.Media, error) {
	if f.failUpload {
		return nil, fmt.Errorf("storage down")
	}
	uploaded := make([]media.Media, 0, len(files))
	for _, file := range files {
		f.next++
		m := media.Media{
			ID:        fmt.Sprintf("media-%d", f.next),
			OwnerID:   ownerID,
			OwnerType: ownerType,
			URL:       fmt.Sprintf("https://cdn.example.com/%s", file.Name),
			FileName:  file.Name,
		}
		f.byID[m.ID] = m
		uploaded = append(uploaded, m)
	}
	return uploaded, nil
}

func (f *fakeEventMedia) GetMediaByOwners(ctx context.Context, ownerIDs []string, ownerType media.OwnerType) ([]media.Media, error) {
	result := make([]media.Media, 0)
	for _, m := range f.byID {
		for _, ownerID := range ownerIDs {
			if m.OwnerID == ownerID && m.OwnerType == ownerType {
				result = append(result, m)
			}
		}
	}
	return result, nil
}

func (f *fakeEventMedia) DeleteMedia(ctx context.Context, id string) (*media.Media, error) {
	m, ok := f.byID[id]
	if !ok {
		return nil, media.ErrMediaNotFound
	}
	delete(f.byID, id)
	return &m, nil
}

func (f *fakeEventMedia) DeleteManyMedia(ctx context.Context, ids []string) error {
	for _, id := range ids {
		delete(f.byID, id)
	}
	return nil
}

func eventFixture() (*Service, *fakeEventRepo, *fakeEventMedia) {
	repo := newFakeEventRepo()
	uploads := newFakeEventMedia()
	return NewService(repo, uploads, logger.NewFromEnv()), repo, uploads
}

func TestCreateEventUploadsAttachments(t *testing.T) {
	svc, _, uploads := eventFixture()

	date := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	created, err := svc.CreateEvent(context.Background(), CreateInput{
		CreatedBy:     "member-1",
		EventName:     "Death anniversary",
		GregorianDate: &date,
	}, []media.File{{Name: "altar.jpg", Data: []byte("x")}})
	require.NoError(t, err)

	require.Len(t, created.Media, 1)
	assert.Equal(t, created.ID, created.Media[0].OwnerID)
	assert.Equal(t, media.OwnerEvent, created.Media[0].OwnerType)
	assert.Len(t, uploads.byID, 1)
}

func TestCreateEventCompensatesOnUploadFailure(t *testing.T) {
	svc, repo, uploads := eventFixture()
	uploads.failUpload = true

	_, err := svc.CreateEvent(context.Background(), CreateInput{
		CreatedBy: "member-1",
		EventName: "Wedding",
	}, []media.File{{Name: "a.jpg", Data: []byte("x")}})
	require.Error(t, err)
	assert.Empty(t, repo.events, "event should be removed when upload fails")
}

func TestUpdateEventMergesAttachments(t *testing.T) {
	svc, _, _ := eventFixture()
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, CreateInput{
		CreatedBy: "member-1",
		EventName: "Reunion",
	}, []media.File{{Name: "old.jpg", Data: []byte("x")}})
	require.NoError(t, err)

	updated, err := svc.UpdateEvent(ctx, created.ID, UpdateInput{},
		[]media.File{{Name: "new.jpg", Data: []byte("y")}})
	require.NoError(t, err)

	urls := make([]string, 0, len(updated.Media))
	for _, m := range updated.Media {
		urls = append(urls, m.URL)
	}
	assert.ElementsMatch(t, []string{
		"https://cdn.example.com/old.jpg",
		"https://cdn.example.com/new.jpg",
	}, urls)
}

func TestUpdateEventReplacesAttachments(t *testing.T) {
	svc, _, uploads := eventFixture()
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, CreateInput{
		CreatedBy: "member-1",
		EventName: "Reunion",
	}, []media.File{{Name: "old.jpg", Data: []byte("x")}})
	require.NoError(t, err)
	oldID := created.Media[0].ID

	newName := "Reunion 2026"
	updated, err := svc.UpdateEvent(ctx, created.ID, UpdateInput{
		EventName:      &newName,
		IsChangeImage:  true,
		DeleteImageIDs: []string{oldID},
	}, []media.File{{Name: "new.jpg", Data: []byte("y")}})
	require.NoError(t, err)

	assert.Equal(t, "Reunion 2026", updated.EventName)
	require.Len(t, updated.Media, 1)
	assert.Equal(t, "https://cdn.example.com/new.jpg", updated.Media[0].URL)
	_, stillStored := uploads.byID[oldID]
	assert.False(t, stillStored, "deleted attachment should be gone from storage")
}

func TestDeleteEventRemovesAttachments(t *testing.T) {
	svc, repo, uploads := eventFixture()
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, CreateInput{
		CreatedBy: "member-1",
		EventName: "Memorial",
	}, []media.File{{Name: "a.jpg", Data: []byte("x")}, {Name: "b.jpg", Data: []byte("y")}})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEvent(ctx, created.ID))
	assert.Empty(t, repo.events)
	assert.Empty(t, uploads.byID)

	err = svc.DeleteEvent(ctx, created.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}
