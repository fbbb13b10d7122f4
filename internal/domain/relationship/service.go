package relationship

import (
	"context"

	"github.com/google/uuid"
)

type Service struct {
	repo  Repository
	types TypeRepository
}

func NewService(repo Repository, types TypeRepository) *Service {
	return &Service{repo: repo, types: types}
}

func (s *Service) CreateRelationship(ctx context.Context, input CreateInput) (*ParentChildRelationship, error) {
	if input.ParentID == input.ChildID {
		return nil, ErrSamePerson
	}
	if _, err := s.types.GetByID(ctx, input.RelaTypeID); err != nil {
		return nil, err
	}

	birthOrder := input.BirthOrder
	if birthOrder <= 0 {
		birthOrder = 1
	}

	rel := ParentChildRelationship{
		ID:         uuid.NewString(),
		ParentID:   input.ParentID,
		ChildID:    input.ChildID,
		RelaTypeID: input.RelaTypeID,
		BirthOrder: birthOrder,
	}
	if err := s.repo.Create(ctx, &rel); err != nil {
		return nil, err
	}
	return &rel, nil
}

func (s *Service) GetRelationshipByID(ctx context.Context, id string) (*ParentChildRelationship, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListRelationships(ctx context.Context) ([]ParentChildRelationship, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateRelationship(ctx context.Context, id string, input UpdateInput) (*ParentChildRelationship, error) {
	rel, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.RelaTypeID != nil {
		if _, err := s.types.GetByID(ctx, *input.RelaTypeID); err != nil {
			return nil, err
		}
		rel.RelaTypeID = *input.RelaTypeID
	}
	if input.BirthOrder != nil && *input.BirthOrder > 0 {
		rel.BirthOrder = *input.BirthOrder
	}

	if err := s.repo.Update(ctx, rel); err != nil {
		return nil, err
	}
	return rel, nil
}

func (s *Service) DeleteRelationship(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// FindByParentIDs returns edges where any of the given members is the parent,
// ordered by birth order.
func (s *Service) FindByParentIDs(ctx context.Context, parentIDs []string) ([]ParentChildRelationship, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	return s.repo.FindByParentIDs(ctx, parentIDs)
}

// FindByChildIDs returns edges where any of the given members is the child.
func (s *Service) FindByChildIDs(ctx context.Context, childIDs []string) ([]ParentChildRelationship, error) {
	if len(childIDs) == 0 {
		return nil, nil
	}
	return s.repo.FindByChildIDs(ctx, childIDs)
}

// DeleteByMember prunes every edge where the member appears as parent or
// child. Invoked when a member is deleted.
func (s *Service) DeleteByMember(ctx context.Context, memberID string) error {
	return s.repo.DeleteByMember(ctx, memberID)
}

func (s *Service) GetTypeByID(ctx context.Context, id string) (*Type, error) {
	return s.types.GetByID(ctx, id)
}

func (s *Service) GetTypeByName(ctx context.Context, name string) (*Type, error) {
	return s.types.GetByName(ctx, name)
}

func (s *Service) ListTypes(ctx context.Context) ([]Type, error) {
	return s.types.List(ctx)
}

func (s *Service) CreateType(ctx context.Context, name string) (*Type, error) {
	t := Type{ID: uuid.NewString(), Name: name}
	if err := s.types.Create(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Service) UpdateType(ctx context.Context, id, name string) (*Type, error) {
	t, err := s.types.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Name = name
	if err := s.types.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) DeleteType(ctx context.Context, id string) error {
	if _, err := s.types.GetByID(ctx, id); err != nil {
		return err
	}
	return s.types.Delete(ctx, id)
}
