package usecases

import (
	"context"
	"fmt"

	"tessera/internal/domain/user"
	apperrors "tessera/internal/shared/errors"
	"tessera/internal/shared/id"
	"tessera/internal/shared/logger"
)

type CompleteSignupCommand struct {
	Token string
}

type CompleteSignupResult struct {
	User *user.User
}

type CompleteSignupUseCase struct {
	userDir user.Directory
	store   SignupSessionStore
	logger  logger.Interface
}

func NewCompleteSignupUseCase(
	userDir user.Directory,
	store SignupSessionStore,
	logger logger.Interface,
) *CompleteSignupUseCase {
	return &CompleteSignupUseCase{
		userDir: userDir,
		store:   store,
		logger:  logger,
	}
}

func (uc *CompleteSignupUseCase) Execute(ctx context.Context, cmd CompleteSignupCommand) (*CompleteSignupResult, error) {
	if cmd.Token == "" {
		return nil, apperrors.NewValidationError("signup token is required")
	}

	session, err := uc.store.Get(ctx, cmd.Token)
	if err != nil {
		uc.logger.Errorw("failed to load signup session", "error", err)
		return nil, fmt.Errorf("failed to load signup session: %w", err)
	}
	if session == nil {
		return nil, apperrors.NewNotFoundError("signup session not found or expired")
	}

	// The session survived an email check, but the address may have been
	// registered since.
	existing, err := uc.userDir.GetByEmail(ctx, session.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		_ = uc.store.Delete(ctx, cmd.Token)
		return nil, apperrors.NewConflictError("email is already registered")
	}

	sid, err := id.GenerateWithPrefix(id.PrefixUser, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate user SID: %w", err)
	}

	u, err := user.NewUser(sid, session.Email, session.Name, session.PasswordHash, user.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if err := uc.userDir.Create(ctx, u); err != nil {
		uc.logger.Errorw("failed to persist user", "error", err, "email", session.Email)
		return nil, fmt.Errorf("failed to persist user: %w", err)
	}

	if err := uc.store.Delete(ctx, cmd.Token); err != nil {
		uc.logger.Warnw("failed to delete signup session", "error", err)
	}

	uc.logger.Infow("signup completed", "user_id", u.ID(), "user_sid", u.SID())
	return &CompleteSignupResult{User: u}, nil
}
