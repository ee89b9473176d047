package auth

import (
	"context"
	"errors"

	"github.com/avasiliev/taskkeeper/internal/common"
	"github.com/avasiliev/taskkeeper/internal/server/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	_ Validator = (*PasswordValidator)(nil)
	_ Validator = (*TokenValidator)(nil)
)

// Identity is the minimal public-safe representation of an authenticated
// user. It never carries the password digest.
type Identity struct {
	ID    int64
	Email string
}

// Validator resolves one kind of credential to an Identity. Implementations
// are stateless values safe for concurrent use.
type Validator interface {
	Validate(ctx context.Context, identifier, secret string) (*Identity, error)
}

// CredentialSource is the subset of the user store needed for password
// validation.
type CredentialSource interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// PasswordValidator checks an email/password pair against stored
// credentials.
type PasswordValidator struct {
	users       CredentialSource
	hasher      *PasswordHasher
	dummyDigest string
}

// NewPasswordValidator builds a password validator. The dummy digest is a
// hash of a random throwaway value; it is verified against when the email is
// unknown so that both failure paths cost one bcrypt comparison.
func NewPasswordValidator(users CredentialSource, hasher *PasswordHasher) *PasswordValidator {
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), hasher.cost)
	if err != nil {
		// bcrypt only fails on out-of-range cost, which the hasher clamps
		dummy = []byte{}
	}
	return &PasswordValidator{
		users:       users,
		hasher:      hasher,
		dummyDigest: string(dummy),
	}
}

// Validate returns the Identity for a matching email/password pair. Unknown
// email and wrong password are indistinguishable to the caller: both return
// common.ErrorUnauthorized. The stored digest never leaves this component.
func (v *PasswordValidator) Validate(ctx context.Context, email, password string) (*Identity, error) {
	user, err := v.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn a comparison so the miss costs as much as a mismatch
			if _, verr := v.hasher.Verify(ctx, password, v.dummyDigest); verr != nil {
				return nil, verr
			}
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	ok, err := v.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	return &Identity{ID: user.ID, Email: user.Email}, nil
}

// TokenValidator checks a signed bearer token. The identifier argument is
// unused for this credential kind.
type TokenValidator struct {
	secretKey []byte
}

// NewTokenValidator builds a token validator bound to the process secret.
func NewTokenValidator(secretKey []byte) *TokenValidator {
	return &TokenValidator{secretKey: secretKey}
}

// Validate parses and verifies the token and rebuilds the Identity from its
// claims.
func (v *TokenValidator) Validate(ctx context.Context, _, token string) (*Identity, error) {
	claims, err := ParseToken(token, v.secretKey)
	if err != nil {
		return nil, err
	}

	id, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	return &Identity{ID: id, Email: claims.Email}, nil
}
