package services

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/quizhub/quizhub/internal/errors"
	"github.com/quizhub/quizhub/internal/logger"
	"github.com/quizhub/quizhub/internal/models"
	"github.com/quizhub/quizhub/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const maxUsernameLen = 100

// AuthService is the credential store: it registers users and verifies
// credentials. Password hashes never leave this service.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type authService struct {
	users     repository.UserRepository
	cost      int
	dummyHash []byte
}

// NewAuthService creates a new AuthService hashing passwords with the given
// bcrypt cost.
func NewAuthService(users repository.UserRepository, cost int) AuthService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	// Compared against when the username is unknown, so lookups take the
	// same time either way.
	dummy, err := bcrypt.GenerateFromPassword([]byte("quizhub.invalid"), cost)
	if err != nil {
		panic(err)
	}
	return &authService{users: users, cost: cost, dummyHash: dummy}
}

func (s *authService) Register(ctx context.Context, username, password string) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("registering user: username=%s", username)

	if username == "" {
		return nil, errors.NewValidationError("username", "must not be empty")
	}
	if len(username) > maxUsernameLen {
		return nil, errors.NewValidationError("username", "too long")
	}
	if password == "" {
		return nil, errors.NewValidationError("password", "must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		log.Error("failed to hash password: %v", err)
		return nil, errors.NewInternalError(err)
	}

	id, err := s.users.Insert(ctx, username, string(hash))
	if err != nil {
		if stderrors.Is(err, repository.ErrDuplicateUsername) {
			return nil, errors.NewConflictError("username already exists")
		}
		log.Error("failed to register user: %v", err)
		return nil, errors.NewInternalError(err)
	}

	user, err := s.users.Get(ctx, id)
	if err != nil {
		log.Error("failed to load registered user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("user registered: id=%d, username=%s", user.ID, user.Username)
	return user, nil
}

func (s *authService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("authenticating user: username=%s", username)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			// Burn a comparison anyway so unknown users are not
			// distinguishable by response time.
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, errors.NewUnauthorizedError("invalid username or password")
		}
		log.Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errors.NewUnauthorizedError("invalid username or password")
	}

	log.Info("user authenticated: id=%d", user.ID)
	return user, nil
}

func (s *authService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("user", id)
		}
		return nil, errors.NewInternalError(err)
	}
	return user, nil
}

// DeleteUser removes a user and, via foreign key cascades, every quiz and
// attempt the user owns. Administrative operation, not routed.
func (s *authService) DeleteUser(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	if err := s.users.Delete(ctx, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewNotFoundError("user", id)
		}
		log.Error("failed to delete user: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("user deleted: id=%d", id)
	return nil
}
