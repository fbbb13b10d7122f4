package auth

import (
	"context"
	"errors"

	"family-tree-go/internal/domain/account"
	"family-tree-go/internal/domain/family"
	"family-tree-go/internal/domain/member"
	"golang.org/x/crypto/bcrypt"
)

// Accounts is the slice of the account repository the auth flows need.
type Accounts interface {
	GetByUsername(ctx context.Context, username string) (*account.Account, error)
	GetByMemberID(ctx context.Context, memberID string) (*account.Account, error)
	GetByRefreshToken(ctx context.Context, token string) (*account.Account, error)
	UpdateRefreshToken(ctx context.Context, memberID string, token *string) error
}

// Members is satisfied by *member.Service.
type Members interface {
	GetMemberByID(ctx context.Context, id string) (*member.Member, error)
	CreateFamilyLeader(ctx context.Context, input member.CreateLeaderInput) (*member.Member, error)
}

// Families is satisfied by *family.Service.
type Families interface {
	CreateFamily(ctx context.Context, name string) (*family.Family, error)
	SetAdminAccount(ctx context.Context, id, accountID string) error
	DeleteFamily(ctx context.Context, id string) error
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

type RegisterInput struct {
	FamilyName string
	Username   string
	Password   string
	Email      string
}

type Service struct {
	accounts Accounts
	members  Members
	families Families
	tokens   *TokenManager
	store    TokenStore
}

func NewService(accounts Accounts, members Members, families Families, tokens *TokenManager, store TokenStore) *Service {
	return &Service{
		accounts: accounts,
		members:  members,
		families: families,
		tokens:   tokens,
		store:    store,
	}
}

// Login verifies credentials and issues an access/refresh pair. The refresh
// token is stored on the account row (single active session per account) and
// its jti allow-listed in the token store.
func (s *Service) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	acc, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	m, err := s.members.GetMemberByID(ctx, acc.MemberID)
	if err != nil {
		return nil, err
	}

	role := RoleMember
	if acc.IsAdmin {
		role = RoleAdmin
	}

	access, _, err := s.tokens.Generate(acc.Username, acc.MemberID, m.FamilyID, role, s.tokens.AccessTTL())
	if err != nil {
		return nil, err
	}
	refresh, jti, err := s.tokens.Generate(acc.Username, acc.MemberID, m.FamilyID, role, s.tokens.RefreshTTL())
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveRefresh(ctx, jti, acc.MemberID, s.tokens.RefreshTTL()); err != nil {
		return nil, err
	}
	if err := s.accounts.UpdateRefreshToken(ctx, acc.MemberID, &refresh); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a stored refresh token for a new access token. The token
// must verify, still be the one stored on the account, and its jti must still
// be allow-listed.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	valid, err := s.store.IsRefreshValid(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, ErrInvalidToken
	}

	acc, err := s.accounts.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	role := RoleMember
	if acc.IsAdmin {
		role = RoleAdmin
	}

	access, _, err := s.tokens.Generate(acc.Username, acc.MemberID, claims.FamilyID, role, s.tokens.AccessTTL())
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access}, nil
}

// Logout revokes the member's refresh token in both the account row and the
// token store.
func (s *Service) Logout(ctx context.Context, memberID string) error {
	acc, err := s.accounts.GetByMemberID(ctx, memberID)
	if err != nil {
		return err
	}

	if acc.RefreshToken != nil {
		if claims, err := s.tokens.Verify(*acc.RefreshToken); err == nil {
			if err := s.store.RevokeRefresh(ctx, claims.ID); err != nil {
				return err
			}
		}
	}

	return s.accounts.UpdateRefreshToken(ctx, memberID, nil)
}

// Register creates a family with its leading member and admin account. If
// leader creation fails the family is removed again.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*member.Member, error) {
	fam, err := s.families.CreateFamily(ctx, input.FamilyName)
	if err != nil {
		return nil, err
	}

	leader, err := s.members.CreateFamilyLeader(ctx, member.CreateLeaderInput{
		FamilyID:  fam.ID,
		FirstName: "admin",
		LastName:  "admin",
		Gender:    member.GenderMale,
		Username:  input.Username,
		Password:  input.Password,
		Email:     input.Email,
	})
	if err != nil {
		_ = s.families.DeleteFamily(ctx, fam.ID)
		return nil, err
	}

	if acc, err := s.accounts.GetByMemberID(ctx, leader.ID); err == nil {
		_ = s.families.SetAdminAccount(ctx, fam.ID, acc.ID)
	}

	return leader, nil
}
