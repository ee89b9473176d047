// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, profile maintenance, and
// account deletion.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avasiliev/taskkeeper/internal/common"
	"github.com/avasiliev/taskkeeper/internal/dbx"
	"github.com/avasiliev/taskkeeper/internal/server/auth"
	"github.com/avasiliev/taskkeeper/internal/server/config"
	"github.com/avasiliev/taskkeeper/internal/server/models"
	"github.com/avasiliev/taskkeeper/internal/server/repositories/repomanager"
)

// ProfilePatch carries optional profile changes. Nil fields are left
// untouched. Password is plaintext here; it is hashed before it reaches
// storage.
type ProfilePatch struct {
	Email    *string
	Password *string
}

// UserService provides identity-related operations:
// - Register: hash the password and create the user
// - Login: verify credentials and mint an access token
// - UpdateProfile/DeleteAccount: self-service, keyed by the caller's own id
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	hasher                      *auth.PasswordHasher
	validator                   auth.Validator
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
// The password validator is built over the same user store the service writes
// to.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.PasswordHasher, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		hasher:                      hasher,
		validator:                   auth.NewPasswordValidator(m.Users(db), hasher),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new user from an email and a plaintext password. The
// password is hashed before storage; a taken email surfaces as
// common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	digest, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, &models.User{Email: email, PasswordHash: digest})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %v", err)
	}
	return u, nil
}

// Login verifies the email/password pair and, on success, returns a signed
// access token. Unknown email and wrong password both come back as
// common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	identity, err := s.validator.Validate(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := auth.GenerateToken(identity.ID, identity.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// GetUser returns the user with the given id or common.ErrorNotFound.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	return repo.GetByID(ctx, id)
}

// ListUsers returns all registered users.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	repo := s.repomanager.Users(s.db)
	return repo.List(ctx)
}

// UpdateProfile applies the patch to the caller's own record. ownerID comes
// from the verified token, never from a request argument. A new password is
// re-hashed before it reaches storage.
func (s *UserService) UpdateProfile(ctx context.Context, ownerID int64, patch *ProfilePatch) (*models.User, error) {
	stored := &models.UserPatch{Email: patch.Email}

	if patch.Password != nil {
		digest, err := s.hasher.Hash(ctx, *patch.Password)
		if err != nil {
			return nil, common.ErrorInternal
		}
		stored.PasswordHash = &digest
	}

	repo := s.repomanager.Users(s.db)
	return repo.UpdateByID(ctx, ownerID, stored)
}

// DeleteAccount removes the caller's record together with every task they
// own, in one transaction. ownerID comes from the verified token.
func (s *UserService) DeleteAccount(ctx context.Context, ownerID int64) (*models.User, error) {
	var deleted *models.User
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Tasks(tx).DeleteByOwner(ctx, ownerID); err != nil {
			return fmt.Errorf("error deleting tasks: %v", err)
		}
		var delErr error
		deleted, delErr = s.repomanager.Users(tx).DeleteByID(ctx, ownerID)
		return delErr
	}); err != nil {
		return nil, err
	}
	return deleted, nil
}
