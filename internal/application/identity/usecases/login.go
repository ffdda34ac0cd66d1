package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tessera/internal/domain/user"
	apperrors "tessera/internal/shared/errors"
	"tessera/internal/shared/logger"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	User      *user.User
	Token     string
	ExpiresAt time.Time
}

type LoginUseCase struct {
	userDir user.Directory
	issuer  TokenIssuer
	logger  logger.Interface
}

func NewLoginUseCase(userDir user.Directory, issuer TokenIssuer, logger logger.Interface) *LoginUseCase {
	return &LoginUseCase{
		userDir: userDir,
		issuer:  issuer,
		logger:  logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" || cmd.Password == "" {
		return nil, apperrors.NewValidationError("email and password are required")
	}

	u, err := uc.userDir.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	// Same error for unknown email and wrong password.
	if u == nil || !u.IsActive() {
		return nil, apperrors.NewForbiddenError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash()), []byte(cmd.Password)); err != nil {
		return nil, apperrors.NewForbiddenError("invalid credentials")
	}

	token, expiresAt, err := uc.issuer.Issue(u.ID(), u.SID(), u.Role())
	if err != nil {
		uc.logger.Errorw("failed to issue token", "error", err, "user_id", u.ID())
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	uc.logger.Infow("user logged in", "user_id", u.ID(), "user_sid", u.SID())
	return &LoginResult{User: u, Token: token, ExpiresAt: expiresAt}, nil
}
