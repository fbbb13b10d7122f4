package account

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAccountRepo struct {
	byID       map[string]*Account
	byUsername map[string]*Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		byID:       make(map[string]*Account),
		byUsername: make(map[string]*Account),
	}
}

func (r *fakeAccountRepo) Create(ctx context.Context, acc *Account) error {
	if acc.ID == "" {
		acc.ID = uuid.NewString()
	}
	r.byID[acc.ID] = acc
	r.byUsername[acc.Username] = acc
	return nil
}

func (r *fakeAccountRepo) GetByID(ctx context.Context, id string) (*Account, error) {
	acc, ok := r.byID[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return acc, nil
}

func (r *fakeAccountRepo) GetByMemberID(ctx context.Context, memberID string) (*Account, error) {
	for _, acc := range r.byID {
		if acc.MemberID == memberID {
			return acc, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (r *fakeAccountRepo) GetByUsername(ctx context.Context, username string) (*Account, error) {
	acc, ok := r.byUsername[username]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return acc, nil
}

func (r *fakeAccountRepo) GetByRefreshToken(ctx context.Context, token string) (*Account, error) {
	for _, acc := range r.byID {
		if acc.RefreshToken != nil && *acc.RefreshToken == token {
			return acc, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (r *fakeAccountRepo) List(ctx context.Context) ([]Account, error) {
	result := make([]Account, 0, len(r.byID))
	for _, acc := range r.byID {
		result = append(result, *acc)
	}
	return result, nil
}

func (r *fakeAccountRepo) Update(ctx context.Context, acc *Account) error {
	r.byID[acc.ID] = acc
	r.byUsername[acc.Username] = acc
	return nil
}

func (r *fakeAccountRepo) Delete(ctx context.Context, id string) error {
	acc, ok := r.byID[id]
	if !ok {
		return nil
	}
	delete(r.byUsername, acc.Username)
	delete(r.byID, id)
	return nil
}

func (r *fakeAccountRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, ok := r.byUsername[username]
	return ok, nil
}

func (r *fakeAccountRepo) UpdateRefreshToken(ctx context.Context, memberID string, token *string) error {
	for _, acc := range r.byID {
		if acc.MemberID == memberID {
			acc.RefreshToken = token
			return nil
		}
	}
	return ErrAccountNotFound
}

func TestCreateAccountHashesPassword(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewService(repo)

	acc, err := svc.CreateAccount(context.Background(), CreateInput{
		MemberID: "m-1", Username: "ann", Password: "secret",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "secret", acc.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte("secret")))
}

func TestCreateAccountSuffixesTakenUsername(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewService(repo)
	ctx := context.Background()

	first, err := svc.CreateAccount(ctx, CreateInput{MemberID: "m-1", Username: "john", Password: "x"})
	require.NoError(t, err)
	second, err := svc.CreateAccount(ctx, CreateInput{MemberID: "m-2", Username: "john", Password: "x"})
	require.NoError(t, err)
	third, err := svc.CreateAccount(ctx, CreateInput{MemberID: "m-3", Username: "john", Password: "x"})
	require.NoError(t, err)

	assert.Equal(t, "john", first.Username)
	assert.Equal(t, "john01", second.Username)
	assert.Equal(t, "john02", third.Username)
}

func TestCreateAccountStrictConflicts(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.CreateAccountStrict(ctx, CreateInput{MemberID: "m-1", Username: "ann", Password: "x"})
	require.NoError(t, err)

	_, err = svc.CreateAccountStrict(ctx, CreateInput{MemberID: "m-2", Username: "ann", Password: "x"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUpdateAccountChangesPassword(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewService(repo)
	ctx := context.Background()

	acc, err := svc.CreateAccount(ctx, CreateInput{MemberID: "m-1", Username: "ann", Password: "old"})
	require.NoError(t, err)

	newPassword := "new"
	updated, err := svc.UpdateAccount(ctx, acc.ID, UpdateInput{Password: &newPassword})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("new")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("old")))
}

func TestGenerateUsername(t *testing.T) {
	cases := []struct {
		first, middle, last string
		want                string
	}{
		{"An", "Van", "Nguyen", "annv"},
		{"An", "", "Nguyen", "ann"},
		{"An", "", "", "an"},
		{"", "", "", "user"},
		{"Thi Minh", "", "Le", "thiminhl"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, GenerateUsername(tc.first, tc.middle, tc.last))
	}
}
