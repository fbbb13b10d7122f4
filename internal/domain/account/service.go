package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const maxUsernameAttempts = 100

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateAccount hashes the password and stores the account. When the requested
// username is taken a numeric suffix is appended ("john" becomes "john01").
func (s *Service) CreateAccount(ctx context.Context, input CreateInput) (*Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	username, err := s.uniqueUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}

	acc := Account{
		ID:           uuid.NewString(),
		MemberID:     input.MemberID,
		Username:     username,
		PasswordHash: string(hash),
		Email:        input.Email,
		IsAdmin:      input.IsAdmin,
	}
	if err := s.repo.Create(ctx, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

// CreateAccountStrict rejects with ErrUsernameTaken instead of suffixing. Used
// for the family-leader path where the caller picked the username explicitly.
func (s *Service) CreateAccountStrict(ctx context.Context, input CreateInput) (*Account, error) {
	taken, err := s.repo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acc := Account{
		ID:           uuid.NewString(),
		MemberID:     input.MemberID,
		Username:     input.Username,
		PasswordHash: string(hash),
		Email:        input.Email,
		IsAdmin:      input.IsAdmin,
	}
	if err := s.repo.Create(ctx, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

func (s *Service) uniqueUsername(ctx context.Context, username string) (string, error) {
	candidate := username
	for i := 1; i <= maxUsernameAttempts; i++ {
		taken, err := s.repo.ExistsByUsername(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%02d", username, i)
	}
	return "", ErrUsernameTaken
}

func (s *Service) GetAccountByID(ctx context.Context, id string) (*Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetAccountByMemberID(ctx context.Context, memberID string) (*Account, error) {
	return s.repo.GetByMemberID(ctx, memberID)
}

func (s *Service) ListAccounts(ctx context.Context) ([]Account, error) {
	return s.repo.List(ctx)
}

func (s *Service) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.repo.ExistsByUsername(ctx, username)
}

func (s *Service) UpdateAccount(ctx context.Context, id string, input UpdateInput) (*Account, error) {
	acc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != acc.Username {
		username, err := s.uniqueUsername(ctx, *input.Username)
		if err != nil {
			return nil, err
		}
		acc.Username = username
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		acc.PasswordHash = string(hash)
	}
	if input.Email != nil {
		acc.Email = strings.TrimSpace(*input.Email)
	}
	if input.IsAdmin != nil {
		acc.IsAdmin = *input.IsAdmin
	}

	if err := s.repo.Update(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *Service) DeleteAccount(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// GenerateUsername derives a login name from a member's names, e.g.
// "Nguyen Van An" becomes "annv".
func GenerateUsername(firstName, middleName, lastName string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(strings.TrimSpace(firstName)))
	for _, part := range []string{lastName, middleName} {
		part = strings.TrimSpace(part)
		if part != "" {
			b.WriteByte(strings.ToLower(part)[0])
		}
	}
	username := strings.ReplaceAll(b.String(), " ", "")
	if username == "" {
		username = "user"
	}
	return username
}
