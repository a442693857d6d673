// Package services contains server-side business logic. This file implements
// AuthService: registration, login and resolving the caller's profile.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/rentals/internal/common"
	"github.com/dmitrijs2005/rentals/internal/server/auth"
	"github.com/dmitrijs2005/rentals/internal/server/models"
	"github.com/dmitrijs2005/rentals/internal/server/repositories/repomanager"
)

// decoyPassword is hashed once at startup. Login verifies against that hash
// when the identity is unknown so both failure paths cost one bcrypt compare.
const decoyPassword = "decoy-password-never-matches"

// AuthService composes the credential store, password hasher and token
// issuer.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	issuer      *auth.Issuer
	decoyHash   string
}

// NewAuthService constructs an AuthService. It fails only if the hasher
// cannot produce the decoy hash.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher, issuer *auth.Issuer) (*AuthService, error) {
	decoy, err := hasher.Hash(context.Background(), decoyPassword)
	if err != nil {
		return nil, fmt.Errorf("decoy hash: %w", err)
	}
	return &AuthService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		issuer:      issuer,
		decoyHash:   decoy,
	}, nil
}

// Register stores a new credential and returns a token for it. A duplicate
// email yields auth.ErrIdentityAlreadyExists; empty or overlong fields yield
// common.ErrorValidation.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return "", fmt.Errorf("%w: name, email and password are required", common.ErrorValidation)
	}
	if utf8.RuneCountInString(name) > models.MaxUserNameLen {
		return "", fmt.Errorf("%w: name longer than %d characters", common.ErrorValidation, models.MaxUserNameLen)
	}
	if utf8.RuneCountInString(email) > models.MaxEmailLen {
		return "", fmt.Errorf("%w: email longer than %d characters", common.ErrorValidation, models.MaxEmailLen)
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", auth.ErrIdentityAlreadyExists
		}
		return "", fmt.Errorf("error creating user: %w", err)
	}

	return s.issue(user.Email)
}

// Login checks email and password and returns a fresh token. Unknown email
// and wrong password both yield auth.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(ctx, password, s.decoyHash)
			return "", auth.ErrInvalidCredentials
		}
		return "", fmt.Errorf("error loading user: %w", err)
	}

	if !s.hasher.Verify(ctx, password, user.PasswordHash) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "", auth.ErrInvalidCredentials
	}

	return s.issue(user.Email)
}

// CurrentIdentity resolves the profile behind p. A user deleted after the
// token was issued yields auth.ErrIdentityNotFound.
func (s *AuthService) CurrentIdentity(ctx context.Context, p auth.Principal) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, p.Identity)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, auth.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

func (s *AuthService) issue(identity string) (string, error) {
	token, err := s.issuer.Issue(identity)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return token, nil
}
