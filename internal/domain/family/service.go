package family

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateFamily(ctx context.Context, name string) (*Family, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("family name is required")
	}

	family := Family{
		ID:   uuid.NewString(),
		Name: name,
	}
	if err := s.repo.Create(ctx, &family); err != nil {
		return nil, err
	}
	return &family, nil
}

func (s *Service) GetFamilyByID(ctx context.Context, id string) (*Family, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateFamily(ctx context.Context, id, name string) (*Family, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("family name is required")
	}

	family, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateName(ctx, family.ID, name); err != nil {
		return nil, err
	}

	family.Name = name
	return family, nil
}

// SetAdminAccount links the leading account created during registration.
func (s *Service) SetAdminAccount(ctx context.Context, id, accountID string) error {
	return s.repo.UpdateAdminAccount(ctx, id, accountID)
}

func (s *Service) DeleteFamily(ctx context.Context, id string) error {
	return s.repo.Transaction(ctx, func(repo Repository) error {
		if _, err := repo.GetByID(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}
