package media

import (
	"context"
	"fmt"
	"testing"

	"family-tree-go/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMediaRepo struct {
	records    map[string]*Media
	failCreate bool
}

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{records: make(map[string]*Media)}
}

func (r *fakeMediaRepo) Create(ctx context.Context, m *Media) error {
	if r.failCreate {
		return fmt.Errorf("db down")
	}
	r.records[m.ID] = m
	return nil
}

func (r *fakeMediaRepo) CreateMany(ctx context.Context, media []Media) error {
	if r.failCreate {
		return fmt.Errorf("db down")
	}
	for i := range media {
		m := media[i]
		r.records[m.ID] = &m
	}
	return nil
}

func (r *fakeMediaRepo) GetByID(ctx context.Context, id string) (*Media, error) {
	m, ok := r.records[id]
	if !ok {
		return nil, ErrMediaNotFound
	}
	return m, nil
}

func (r *fakeMediaRepo) GetByIDs(ctx context.Context, ids []string) ([]Media, error) {
	result := make([]Media, 0, len(ids))
	for _, id := range ids {
		if m, ok := r.records[id]; ok {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (r *fakeMediaRepo) List(ctx context.Context) ([]Media, error) {
	result := make([]Media, 0, len(r.records))
	for _, m := range r.records {
		result = append(result, *m)
	}
	return result, nil
}

func (r *fakeMediaRepo) FindByOwners(ctx context.Context, ownerIDs []string, ownerType OwnerType) ([]Media, error) {
	wanted := make(map[string]struct{}, len(ownerIDs))
	for _, id := range ownerIDs {
		wanted[id] = struct{}{}
	}
	result := make([]Media, 0)
	for _, m := range r.records {
		if _, ok := wanted[m.OwnerID]; ok && m.OwnerType == ownerType {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (r *fakeMediaRepo) Update(ctx context.Context, m *Media) error {
	r.records[m.ID] = m
	return nil
}

func (r *fakeMediaRepo) Delete(ctx context.Context, id string) error {
	delete(r.records, id)
	return nil
}

func (r *fakeMediaRepo) DeleteMany(ctx context.Context, ids []string) error {
	for _, id := range ids {
		delete(r.records, id)
	}
	return nil
}

type fakeStorage struct {
	uploads    int
	deleted    []string
	failUpload bool
}

func (s *fakeStorage) Upload(ctx context.Context, file File) (StoredObject, error) {
	if s.failUpload {
		return StoredObject{}, fmt.Errorf("storage down")
	}
	s.uploads++
	publicID := fmt.Sprintf("uploads/obj%d", s.uploads)
	return StoredObject{
		URL:      fmt.Sprintf("https://cdn.example.com/image/upload/v1/%s.png", publicID),
		PublicID: publicID,
	}, nil
}

func (s *fakeStorage) Delete(ctx context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	return nil
}

func (s *fakeStorage) ExtractPublicID(url string) string {
	var publicID string
	if _, err := fmt.Sscanf(url, "https://cdn.example.com/image/upload/v1/uploads/%s", &publicID); err != nil {
		return ""
	}
	return "uploads/" + publicID[:len(publicID)-len(".png")]
}

type fakeCropper struct {
	out  []byte
	fail error
}

func (c *fakeCropper) DetectAndCrop(ctx context.Context, image []byte) ([]byte, error) {
	if c.fail != nil {
		return nil, c.fail
	}
	return c.out, nil
}

type mediaFixture struct {
	repo    *fakeMediaRepo
	storage *fakeStorage
	cropper *fakeCropper
	svc     *Service
}

func newMediaFixture() *mediaFixture {
	f := &mediaFixture{
		repo:    newFakeMediaRepo(),
		storage: &fakeStorage{},
		cropper: &fakeCropper{out: []byte("cropped")},
	}
	f.svc = NewService(f.repo, f.storage, f.cropper, logger.NewFromEnv())
	return f
}

func testFile(name string) File {
	return File{Name: name, MimeType: "image/jpeg", Size: 4, Data: []byte("data")}
}

func TestUploadStoresMetadata(t *testing.T) {
	f := newMediaFixture()

	m, err := f.svc.Upload(context.Background(), testFile("photo.jpg"), "owner-1", OwnerEvent)
	require.NoError(t, err)

	assert.Equal(t, "owner-1", m.OwnerID)
	assert.Equal(t, OwnerEvent, m.OwnerType)
	assert.Equal(t, "photo.jpg", m.FileName)
	assert.Contains(t, m.URL, "uploads/obj1")
	assert.Len(t, f.repo.records, 1)
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	f := newMediaFixture()

	_, err := f.svc.Upload(context.Background(), File{Name: "x"}, "owner-1", OwnerEvent)
	assert.ErrorIs(t, err, ErrFileRequired)
}

func TestUploadRejectsBadOwnerType(t *testing.T) {
	f := newMediaFixture()

	_, err := f.svc.Upload(context.Background(), testFile("x.jpg"), "owner-1", OwnerType("playlist"))
	assert.ErrorIs(t, err, ErrInvalidOwnerType)
	assert.Zero(t, f.storage.uploads)
}

func TestUploadDeletesObjectWhenMetadataFails(t *testing.T) {
	f := newMediaFixture()
	f.repo.failCreate = true

	_, err := f.svc.Upload(context.Background(), testFile("x.jpg"), "owner-1", OwnerEvent)
	require.Error(t, err)
	assert.Equal(t, []string{"uploads/obj1"}, f.storage.deleted)
}

func TestUploadManyRollsBack(t *testing.T) {
	f := newMediaFixture()
	f.repo.failCreate = true

	files := []File{testFile("a.jpg"), testFile("b.jpg")}
	_, err := f.svc.UploadMany(context.Background(), files, "owner-1", OwnerFamilyHistory)
	require.Error(t, err)

	assert.Empty(t, f.repo.records)
	assert.ElementsMatch(t, []string{"uploads/obj1", "uploads/obj2"}, f.storage.deleted)
}

func TestDeleteManyMediaRemovesStoredObjects(t *testing.T) {
	f := newMediaFixture()
	ctx := context.Background()

	a, err := f.svc.Upload(ctx, testFile("a.jpg"), "owner-1", OwnerEvent)
	require.NoError(t, err)
	b, err := f.svc.Upload(ctx, testFile("b.jpg"), "owner-1", OwnerEvent)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteManyMedia(ctx, []string{a.ID, b.ID, "missing"}))

	assert.Empty(t, f.repo.records)
	assert.ElementsMatch(t, []string{"uploads/obj1", "uploads/obj2"}, f.storage.deleted)
}

func TestProcessAvatarUploadsCroppedPNG(t *testing.T) {
	f := newMediaFixture()

	m, err := f.svc.ProcessAvatar(context.Background(), testFile("portrait.jpg"), "member-1")
	require.NoError(t, err)

	assert.Equal(t, "portrait.png", m.FileName)
	assert.Equal(t, "image/png", m.MimeType)
	assert.Equal(t, OwnerMember, m.OwnerType)
	assert.Equal(t, "member-1", m.OwnerID)
	assert.Equal(t, int64(len("cropped")), m.Size)
}

func TestProcessAvatarNoFace(t *testing.T) {
	f := newMediaFixture()
	f.cropper.fail = ErrNoFaceDetected

	_, err := f.svc.ProcessAvatar(context.Background(), testFile("portrait.jpg"), "member-1")
	assert.ErrorIs(t, err, ErrNoFaceDetected)
	assert.Zero(t, f.storage.uploads)
	assert.Empty(t, f.repo.records)
}

func TestReplaceExtension(t *testing.T) {
	assert.Equal(t, "photo.png", replaceExtension("photo.jpg", ".png"))
	assert.Equal(t, "photo.png", replaceExtension("photo", ".png"))
	assert.Equal(t, "archive.tar.png", replaceExtension("archive.tar.gz", ".png"))
}
