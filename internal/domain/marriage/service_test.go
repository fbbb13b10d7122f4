package marriage

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMarriageRepo struct {
	marriages map[string]*Marriage
	// wrapNotFound makes lookups return the sentinel behind a wrapping error,
	// as the gorm layer does.
	wrapNotFound bool
}

func newFakeMarriageRepo() *fakeMarriageRepo {
	return &fakeMarriageRepo{marriages: make(map[string]*Marriage)}
}

func (r *fakeMarriageRepo) notFound() error {
	if r.wrapNotFound {
		return fmt.Errorf("find marriage: %w", ErrMarriageNotFound)
	}
	return ErrMarriageNotFound
}

func (r *fakeMarriageRepo) Create(ctx context.Context, m *Marriage) error {
	r.marriages[m.ID] = m
	return nil
}

func (r *fakeMarriageRepo) GetByID(ctx context.Context, id string) (*Marriage, error) {
	m, ok := r.marriages[id]
	if !ok {
		return nil, r.notFound()
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMarriageRepo) List(ctx context.Context) ([]Marriage, error) {
	result := make([]Marriage, 0, len(r.marriages))
	for _, m := range r.marriages {
		result = append(result, *m)
	}
	return result, nil
}

func (r *fakeMarriageRepo) Update(ctx context.Context, m *Marriage) error {
	r.marriages[m.ID] = m
	return nil
}

func (r *fakeMarriageRepo) Delete(ctx context.Context, id string) error {
	delete(r.marriages, id)
	return nil
}

func (r *fakeMarriageRepo) FindByMember(ctx context.Context, memberID string) (*Marriage, error) {
	for _, m := range r.marriages {
		if m.HusbandID == memberID || m.WifeID == memberID {
			copied := *m
			return &copied, nil
		}
	}
	return nil, r.notFound()
}

func (r *fakeMarriageRepo) FindByMembers(ctx context.Context, memberIDs []string) ([]Marriage, error) {
	result := make([]Marriage, 0)
	for _, m := range r.marriages {
		for _, id := range memberIDs {
			if m.HusbandID == id || m.WifeID == id {
				result = append(result, *m)
				break
			}
		}
	}
	return result, nil
}

func (r *fakeMarriageRepo) DeleteByMember(ctx context.Context, memberID string) error {
	for id, m := range r.marriages {
		if m.HusbandID == memberID || m.WifeID == memberID {
			delete(r.marriages, id)
		}
	}
	return nil
}

func TestCreateMarriageRejectsSamePerson(t *testing.T) {
	svc := NewService(newFakeMarriageRepo())

	_, err := svc.CreateMarriage(context.Background(), CreateInput{
		HusbandID: "member-1",
		WifeID:    "member-1",
	})
	assert.ErrorIs(t, err, ErrSamePerson)
}

func TestGetSpouseUnmarriedReturnsNil(t *testing.T) {
	repo := newFakeMarriageRepo()
	svc := NewService(repo)

	m, err := svc.GetSpouse(context.Background(), "member-1")
	require.NoError(t, err)
	assert.Nil(t, m)

	// The sentinel still maps to nil when the repository wraps it.
	repo.wrapNotFound = true
	m, err = svc.GetSpouse(context.Background(), "member-1")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestGetSpouseFindsEitherSide(t *testing.T) {
	repo := newFakeMarriageRepo()
	svc := NewService(repo)

	created, err := svc.CreateMarriage(context.Background(), CreateInput{
		HusbandID: "member-1",
		WifeID:    "member-2",
	})
	require.NoError(t, err)

	fromHusband, err := svc.GetSpouse(context.Background(), "member-1")
	require.NoError(t, err)
	fromWife, err := svc.GetSpouse(context.Background(), "member-2")
	require.NoError(t, err)
	assert.Equal(t, created.ID, fromHusband.ID)
	assert.Equal(t, created.ID, fromWife.ID)
}
