package marriage

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateMarriage(ctx context.Context, input CreateInput) (*Marriage, error) {
	if input.HusbandID == input.WifeID {
		return nil, ErrSamePerson
	}

	m := Marriage{
		ID:          uuid.NewString(),
		HusbandID:   input.HusbandID,
		WifeID:      input.WifeID,
		MarriedDate: input.MarriedDate,
	}
	if err := s.repo.Create(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) GetMarriageByID(ctx context.Context, id string) (*Marriage, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListMarriages(ctx context.Context) ([]Marriage, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateMarriage(ctx context.Context, id string, input UpdateInput) (*Marriage, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.IsDivorced != nil {
		m.IsDivorced = *input.IsDivorced
	}
	if input.MarriedDate != nil {
		m.MarriedDate = input.MarriedDate
	}
	if input.DivorcedDate != nil {
		m.DivorcedDate = input.DivorcedDate
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) DeleteMarriage(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// GetSpouse returns the marriage a member participates in, or nil when the
// member is unmarried.
func (s *Service) GetSpouse(ctx context.Context, memberID string) (*Marriage, error) {
	m, err := s.repo.FindByMember(ctx, memberID)
	if errors.Is(err, ErrMarriageNotFound) {
		return nil, nil
	}
	return m, err
}

// GetAllSpouses batch-fetches every marriage referencing any of the given
// member ids in a single query.
func (s *Service) GetAllSpouses(ctx context.Context, memberIDs []string) ([]Marriage, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}
	return s.repo.FindByMembers(ctx, memberIDs)
}

// DeleteByMember prunes every marriage referencing the member. Invoked when a
// member is deleted so no dangling edges survive.
func (s *Service) DeleteByMember(ctx context.Context, memberID string) error {
	return s.repo.DeleteByMember(ctx, memberID)
}
