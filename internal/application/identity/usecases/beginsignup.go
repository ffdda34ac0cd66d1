package usecases

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"tessera/internal/domain/user"
	"tessera/internal/shared/biztime"
	apperrors "tessera/internal/shared/errors"
	"tessera/internal/shared/id"
	"tessera/internal/shared/logger"
)

const signupTokenLength = 32

type BeginSignupCommand struct {
	Email    string
	Name     string
	Password string
}

type BeginSignupResult struct {
	// Token confirms the signup. In production it is delivered by mail, not
	// returned to the caller.
	Token string
}

type BeginSignupUseCase struct {
	userDir    user.Directory
	store      SignupSessionStore
	bcryptCost int
	logger     logger.Interface
}

func NewBeginSignupUseCase(
	userDir user.Directory,
	store SignupSessionStore,
	bcryptCost int,
	logger logger.Interface,
) *BeginSignupUseCase {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &BeginSignupUseCase{
		userDir:    userDir,
		store:      store,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (uc *BeginSignupUseCase) Execute(ctx context.Context, cmd BeginSignupCommand) (*BeginSignupResult, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" {
		return nil, apperrors.NewValidationError("email is required")
	}
	if len(cmd.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters")
	}

	existing, err := uc.userDir.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to check email", "error", err)
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), uc.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	token, err := id.Generate(signupTokenLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate signup token: %w", err)
	}

	session := &SignupSession{
		Token:        token,
		Email:        email,
		Name:         strings.TrimSpace(cmd.Name),
		PasswordHash: string(hash),
		CreatedAt:    biztime.NowUTC(),
	}
	if err := uc.store.Put(ctx, session); err != nil {
		uc.logger.Errorw("failed to store signup session", "error", err)
		return nil, fmt.Errorf("failed to store signup session: %w", err)
	}

	uc.logger.Infow("signup started", "email", email)
	return &BeginSignupResult{Token: token}, nil
}
