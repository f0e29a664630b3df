package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/pbkdf2"

	"github.com/retailops/store-console/internal/core/domain"
	"github.com/retailops/store-console/internal/core/ports"
)

const (
	saltBytes   = 16
	hashBytes   = 32
	pbkdf2Iters = 100_000
)

// AuthService implements registration and login against the person store.
// Passwords are stored as PBKDF2-SHA256 hashes with a per-record random salt;
// migrated records with an empty hash are provisioned on first login.
type AuthService struct {
	persons  ports.PersonRepository
	audit    ports.AuditRecorder
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewAuthService(persons ports.PersonRepository, audit ports.AuditRecorder, logger zerolog.Logger) *AuthService {
	return &AuthService{
		persons:  persons,
		audit:    audit,
		validate: newValidator(),
		logger:   logger,
	}
}

// Register creates a new USER-role person from a self-service registration.
// The existing record is left untouched when the email is already taken.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Person, error) {
	if err := checkInput(s.validate, input); err != nil {
		return nil, err
	}

	taken, err := s.persons.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		s.logger.Warn().Str("email", input.Email).Msg("registration with existing email")
		return nil, domain.ErrEmailExists
	}

	salt, err := generateSalt()
	if err != nil {
		return nil, err
	}
	hash, err := hashPassword(input.Password, salt)
	if err != nil {
		return nil, err
	}

	person := &domain.Person{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hash,
		Salt:         salt,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.persons.Create(ctx, person)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("person_id", created.ID).Str("email", created.Email).Msg("person registered")
	s.audit.UserAction(created.ID, "register", "registered as "+created.Email)
	return created, nil
}

// Authenticate verifies credentials and issues a session. Every failure is
// reported as ErrInvalidCredentials without indicating which factor was wrong.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	person, err := s.persons.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrPersonNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if person.PasswordHash == "" {
		// Migrated record: provision credentials from this first login.
		salt, err := generateSalt()
		if err != nil {
			return nil, err
		}
		hash, err := hashPassword(password, salt)
		if err != nil {
			return nil, err
		}
		if err := s.persons.UpdateCredentials(ctx, email, hash, salt); err != nil {
			return nil, err
		}
		person.PasswordHash = hash
		person.Salt = salt
		s.logger.Info().Int64("person_id", person.ID).Msg("credentials provisioned on first login")
	} else {
		computed, err := hashPassword(password, person.Salt)
		if err != nil {
			return nil, err
		}
		if subtle.ConstantTimeCompare([]byte(computed), []byte(person.PasswordHash)) != 1 {
			s.logger.Warn().Str("email", email).Msg("failed login attempt")
			return nil, domain.ErrInvalidCredentials
		}
	}

	s.audit.UserAction(person.ID, "login", "authenticated as "+person.Email)
	return domain.NewSession(person), nil
}

// generateSalt returns a base64-encoded 128-bit random salt.
func generateSalt() (string, error) {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// hashPassword derives the stored hash for a password under the given salt.
func hashPassword(password, salt string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("decode salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), raw, pbkdf2Iters, hashBytes, sha256.New)
	return base64.StdEncoding.EncodeToString(key), nil
}
