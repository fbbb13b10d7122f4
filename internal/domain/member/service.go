package member

import (
	"context"
	"errors"
	"sort"

	"family-tree-go/internal/domain/account"
	"family-tree-go/internal/domain/marriage"
	"family-tree-go/internal/domain/relationship"
	"github.com/google/uuid"
)

// defaultPassword is the placeholder assigned to auto-provisioned logins; the
// member is expected to change it on first sign-in.
const defaultPassword = "123456"

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type Service struct {
	repo          Repository
	marriages     Marriages
	relationships Relationships
	accounts      Accounts
}

func NewService(repo Repository, marriages Marriages, relationships Relationships, accounts Accounts) *Service {
	return &Service{
		repo:          repo,
		marriages:     marriages,
		relationships: relationships,
		accounts:      accounts,
	}
}

func (s *Service) CreateMember(ctx context.Context, input CreateInput) (*Member, error) {
	if input.Gender != GenderMale && input.Gender != GenderFemale {
		return nil, ErrInvalidGender
	}

	m := newMember(input)
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func newMember(input CreateInput) *Member {
	return &Member{
		ID:           uuid.NewString(),
		FamilyID:     input.FamilyID,
		FirstName:    input.FirstName,
		MiddleName:   input.MiddleName,
		LastName:     input.LastName,
		DateOfBirth:  input.DateOfBirth,
		DateOfDeath:  input.DateOfDeath,
		PlaceOfBirth: input.PlaceOfBirth,
		PlaceOfDeath: input.PlaceOfDeath,
		IsAlive:      input.IsAlive,
		Generation:   input.Generation,
		Gender:       input.Gender,
		ShortSummary: input.ShortSummary,
	}
}

func (s *Service) GetMemberByID(ctx context.Context, id string) (*Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListMembers(ctx context.Context) ([]Member, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateMember(ctx context.Context, id string, input UpdateInput) (*Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		m.FirstName = *input.FirstName
	}
	if input.MiddleName != nil {
		m.MiddleName = *input.MiddleName
	}
	if input.LastName != nil {
		m.LastName = *input.LastName
	}
	if input.DateOfBirth != nil {
		m.DateOfBirth = input.DateOfBirth
	}
	if input.DateOfDeath != nil {
		m.DateOfDeath = input.DateOfDeath
	}
	if input.PlaceOfBirth != nil {
		m.PlaceOfBirth = *input.PlaceOfBirth
	}
	if input.PlaceOfDeath != nil {
		m.PlaceOfDeath = *input.PlaceOfDeath
	}
	if input.IsAlive != nil {
		m.IsAlive = *input.IsAlive
	}
	if input.Generation != nil {
		m.Generation = *input.Generation
	}
	if input.Gender != nil {
		if *input.Gender != GenderMale && *input.Gender != GenderFemale {
			return nil, ErrInvalidGender
		}
		m.Gender = *input.Gender
	}
	if input.ShortSummary != nil {
		m.ShortSummary = *input.ShortSummary
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteMember soft-deletes the member and prunes marriage and parent-child
// edges referencing it, so enriched views never point at deleted members.
func (s *Service) DeleteMember(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.marriages.DeleteByMember(ctx, id); err != nil {
		return err
	}
	if err := s.relationships.DeleteByMember(ctx, id); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

// FindMembersInFamily returns every live member of the family annotated with
// spouse, parent and children references. Relationship data is batch-fetched
// in two queries and joined in memory, never per member.
func (s *Service) FindMembersInFamily(ctx context.Context, familyID string) ([]EnrichedMember, error) {
	members, err := s.repo.FindByFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []EnrichedMember{}, nil
	}

	memberIDs := make([]string, 0, len(members))
	genderByID := make(map[string]string, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.ID)
		genderByID[m.ID] = m.Gender
	}

	marriages, err := s.marriages.GetAllSpouses(ctx, memberIDs)
	if err != nil {
		return nil, err
	}
	parentEdges, err := s.relationships.FindByParentIDs(ctx, memberIDs)
	if err != nil {
		return nil, err
	}
	childEdges, err := s.relationships.FindByChildIDs(ctx, memberIDs)
	if err != nil {
		return nil, err
	}

	spouseMap := buildSpouseMap(marriages)
	childrenMap := buildChildrenMap(parentEdges)
	marriageByMember := indexMarriagesByMember(marriages)
	parentMap := buildParentMap(childEdges, marriageByMember, genderByID)

	enriched := make([]EnrichedMember, 0, len(members))
	for _, m := range members {
		enriched = append(enriched, EnrichedMember{
			Member:   m,
			Spouse:   spouseMap[m.ID],
			Parent:   parentMap[m.ID],
			Children: childrenMap[m.ID],
		})
	}
	return enriched, nil
}

// buildSpouseMap maps husband to wife and wife to husband so spouse lookup is
// O(1) per member.
func buildSpouseMap(marriages []marriage.Marriage) map[string]*Spouse {
	spouseMap := make(map[string]*Spouse, 2*len(marriages))
	for _, m := range marriages {
		spouseMap[m.HusbandID] = &Spouse{WifeID: m.WifeID}
		spouseMap[m.WifeID] = &Spouse{HusbandID: m.HusbandID}
	}
	return spouseMap
}

// buildChildrenMap groups edges by parent, children ordered by birth order.
func buildChildrenMap(parentEdges []relationship.ParentChildRelationship) map[string][]string {
	ordered := make([]relationship.ParentChildRelationship, len(parentEdges))
	copy(ordered, parentEdges)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].BirthOrder < ordered[j].BirthOrder
	})

	childrenMap := make(map[string][]string)
	seen := make(map[string]map[string]struct{})
	for _, edge := range ordered {
		if seen[edge.ParentID] == nil {
			seen[edge.ParentID] = make(map[string]struct{})
		}
		if _, dup := seen[edge.ParentID][edge.ChildID]; dup {
			continue
		}
		seen[edge.ParentID][edge.ChildID] = struct{}{}
		childrenMap[edge.ParentID] = append(childrenMap[edge.ParentID], edge.ChildID)
	}
	return childrenMap
}

func indexMarriagesByMember(marriages []marriage.Marriage) map[string]*marriage.Marriage {
	index := make(map[string]*marriage.Marriage, 2*len(marriages))
	for i := range marriages {
		index[marriages[i].HusbandID] = &marriages[i]
		index[marriages[i].WifeID] = &marriages[i]
	}
	return index
}

// buildParentMap resolves father/mother slots for each child by looking at the
// marriage of the edge's parent. A parent without a marriage still fills the
// slot matching their own gender.
func buildParentMap(childEdges []relationship.ParentChildRelationship, marriageByMember map[string]*marriage.Marriage, genderByID map[string]string) map[string]*Parent {
	parentMap := make(map[string]*Parent)
	for _, edge := range childEdges {
		parent := parentMap[edge.ChildID]
		if parent == nil {
			parent = &Parent{}
			parentMap[edge.ChildID] = parent
		}

		if m := marriageByMember[edge.ParentID]; m != nil {
			parent.FatherID = m.HusbandID
			parent.MotherID = m.WifeID
			continue
		}

		switch genderByID[edge.ParentID] {
		case GenderMale:
			parent.FatherID = edge.ParentID
		case GenderFemale:
			parent.MotherID = edge.ParentID
		}
	}
	return parentMap
}

// CreateSpouse creates a new member married to an existing one. The spouse
// inherits family and generation, gets the opposite gender, and receives a
// login account when alive. Failures after the member row exists are
// compensated by removing what was created.
func (s *Service) CreateSpouse(ctx context.Context, input CreateSpouseInput) (*Member, error) {
	base, err := s.repo.GetByID(ctx, input.MemberID)
	if err != nil {
		return nil, err
	}
	if base.Gender != GenderMale && base.Gender != GenderFemale {
		return nil, ErrInvalidGender
	}

	spouseGender := GenderFemale
	if base.Gender == GenderFemale {
		spouseGender = GenderMale
	}

	spouse := newMember(CreateInput{
		FamilyID:     base.FamilyID,
		FirstName:    input.FirstName,
		MiddleName:   input.MiddleName,
		LastName:     input.LastName,
		DateOfBirth:  input.DateOfBirth,
		DateOfDeath:  input.DateOfDeath,
		PlaceOfBirth: input.PlaceOfBirth,
		PlaceOfDeath: input.PlaceOfDeath,
		IsAlive:      input.IsAlive,
		Generation:   base.Generation,
		Gender:       spouseGender,
		ShortSummary: input.ShortSummary,
	})
	if err := s.repo.Create(ctx, spouse); err != nil {
		return nil, err
	}

	marriageInput := marriage.CreateInput{HusbandID: base.ID, WifeID: spouse.ID}
	if base.Gender == GenderFemale {
		marriageInput = marriage.CreateInput{HusbandID: spouse.ID, WifeID: base.ID}
	}
	if _, err := s.marriages.CreateMarriage(ctx, marriageInput); err != nil {
		_ = s.repo.HardDelete(ctx, spouse.ID)
		return nil, err
	}

	if spouse.IsAlive {
		if err := s.provisionAccount(ctx, spouse); err != nil {
			_ = s.marriages.DeleteByMember(ctx, spouse.ID)
			_ = s.repo.HardDelete(ctx, spouse.ID)
			return nil, err
		}
	}

	return spouse, nil
}

func (s *Service) provisionAccount(ctx context.Context, m *Member) error {
	_, err := s.accounts.CreateAccount(ctx, account.CreateInput{
		MemberID: m.ID,
		Username: account.GenerateUsername(m.FirstName, m.MiddleName, m.LastName),
		Password: defaultPassword,
	})
	return err
}

// CreateChild creates a member one generation below the parent and tags a
// father or mother edge per known parent. Both edges share the birth order.
func (s *Service) CreateChild(ctx context.Context, input CreateChildInput) (*Member, error) {
	if input.ParentSpouseID != "" && input.ParentID == input.ParentSpouseID {
		return nil, ErrSameParentSpouse
	}
	if input.Gender != GenderMale && input.Gender != GenderFemale {
		return nil, ErrInvalidGender
	}

	parent, err := s.repo.GetByID(ctx, input.ParentID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return nil, ErrParentNotFound
		}
		return nil, err
	}

	var parentSpouse *Member
	if input.ParentSpouseID != "" {
		spouses, err := s.marriages.GetAllSpouses(ctx, []string{parent.ID})
		if err != nil {
			return nil, err
		}
		married := false
		for _, m := range spouses {
			if m.HusbandID == input.ParentSpouseID || m.WifeID == input.ParentSpouseID {
				married = true
				break
			}
		}
		if !married {
			return nil, ErrSpouseNotMarried
		}

		parentSpouse, err = s.repo.GetByID(ctx, input.ParentSpouseID)
		if err != nil {
			if errors.Is(err, ErrMemberNotFound) {
				return nil, ErrSpouseNotFound
			}
			return nil, err
		}
	}

	child := newMember(CreateInput{
		FamilyID:     parent.FamilyID,
		FirstName:    input.FirstName,
		MiddleName:   input.MiddleName,
		LastName:     input.LastName,
		DateOfBirth:  input.DateOfBirth,
		DateOfDeath:  input.DateOfDeath,
		PlaceOfBirth: input.PlaceOfBirth,
		PlaceOfDeath: input.PlaceOfDeath,
		IsAlive:      input.IsAlive,
		Generation:   parent.Generation + 1,
		Gender:       input.Gender,
		ShortSummary: input.ShortSummary,
	})
	if err := s.repo.Create(ctx, child); err != nil {
		return nil, err
	}

	parents := []*Member{parent}
	if parentSpouse != nil {
		parents = append(parents, parentSpouse)
	}
	for _, p := range parents {
		if err := s.createParentEdge(ctx, p, child, input.BirthOrder); err != nil {
			_ = s.relationships.DeleteByMember(ctx, child.ID)
			_ = s.repo.HardDelete(ctx, child.ID)
			return nil, err
		}
	}

	if child.IsAlive {
		if err := s.provisionAccount(ctx, child); err != nil {
			_ = s.relationships.DeleteByMember(ctx, child.ID)
			_ = s.repo.HardDelete(ctx, child.ID)
			return nil, err
		}
	}

	return child, nil
}

func (s *Service) createParentEdge(ctx context.Context, parent *Member, child *Member, birthOrder int) error {
	typeName := relationship.TypeMother
	if parent.Gender == GenderMale {
		typeName = relationship.TypeFather
	}

	relaType, err := s.relationships.GetTypeByName(ctx, typeName)
	if err != nil {
		return err
	}

	_, err = s.relationships.CreateRelationship(ctx, relationship.CreateInput{
		ParentID:   parent.ID,
		ChildID:    child.ID,
		RelaTypeID: relaType.ID,
		BirthOrder: birthOrder,
	})
	return err
}

// CreateFamilyLeader creates the generation-0 member of a new family together
// with its admin account. Username uniqueness is strict here: a duplicate is a
// conflict, not a suffixed retry.
func (s *Service) CreateFamilyLeader(ctx context.Context, input CreateLeaderInput) (*Member, error) {
	if input.Gender != GenderMale && input.Gender != GenderFemale {
		return nil, ErrInvalidGender
	}

	leader := newMember(CreateInput{
		FamilyID:     input.FamilyID,
		FirstName:    input.FirstName,
		MiddleName:   input.MiddleName,
		LastName:     input.LastName,
		DateOfBirth:  input.DateOfBirth,
		PlaceOfBirth: input.PlaceOfBirth,
		IsAlive:      true,
		Generation:   0,
		Gender:       input.Gender,
		ShortSummary: input.ShortSummary,
	})
	if err := s.repo.Create(ctx, leader); err != nil {
		return nil, err
	}

	_, err := s.accounts.CreateAccountStrict(ctx, account.CreateInput{
		MemberID: leader.ID,
		Username: input.Username,
		Password: input.Password,
		Email:    input.Email,
		IsAdmin:  true,
	})
	if err != nil {
		_ = s.repo.HardDelete(ctx, leader.ID)
		return nil, err
	}

	return leader, nil
}

// GetMemberDetails is the single-member variant of the family enrichment.
func (s *Service) GetMemberDetails(ctx context.Context, id string) (*EnrichedMember, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	enriched := EnrichedMember{Member: *m}

	own, err := s.marriages.GetSpouse(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	if own != nil {
		if m.Gender == GenderMale {
			enriched.Spouse = &Spouse{WifeID: own.WifeID}
		} else {
			enriched.Spouse = &Spouse{HusbandID: own.HusbandID}
		}
	}

	childEdges, err := s.relationships.FindByChildIDs(ctx, []string{m.ID})
	if err != nil {
		return nil, err
	}
	if len(childEdges) > 0 {
		marriageByMember := make(map[string]*marriage.Marriage)
		genderByID := make(map[string]string)
		for _, edge := range childEdges {
			if _, ok := marriageByMember[edge.ParentID]; ok {
				continue
			}
			pm, err := s.marriages.GetSpouse(ctx, edge.ParentID)
			if err != nil {
				return nil, err
			}
			if pm != nil {
				marriageByMember[edge.ParentID] = pm
				continue
			}
			if p, err := s.repo.GetByID(ctx, edge.ParentID); err == nil {
				genderByID[edge.ParentID] = p.Gender
			}
		}
		enriched.Parent = buildParentMap(childEdges, marriageByMember, genderByID)[m.ID]
	}

	return &enriched, nil
}

// SearchMembers runs a paginated filtered query scoped to a family.
func (s *Service) SearchMembers(ctx context.Context, familyID string, filter SearchFilter) (Page, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	items, total, err := s.repo.Search(ctx, familyID, filter)
	if err != nil {
		return Page{}, err
	}
	return NewPage(items, total, filter.Page, filter.Limit), nil
}
