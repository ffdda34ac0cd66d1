// Package email delivers lifecycle notifications over SMTP. Delivery is best
// effort by contract: callers log failures and move on.
package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"tessera/internal/domain/user"
	"tessera/internal/shared/config"
	"tessera/internal/shared/logger"
)

// NotificationService sends subscription lifecycle and quota mail. It
// resolves recipient addresses through the user directory so callers only
// hand over user IDs.
type NotificationService struct {
	dialer  *gomail.Dialer
	from    string
	userDir user.Directory
	logger  logger.Interface
}

func NewNotificationService(cfg *config.EmailConfig, userDir user.Directory, logger logger.Interface) *NotificationService {
	from := cfg.FromAddress
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress)
	}
	return &NotificationService{
		dialer:  gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:    from,
		userDir: userDir,
		logger:  logger,
	}
}

func (s *NotificationService) NotifySubscriptionActivated(ctx context.Context, userID uint, planName string) error {
	subject := fmt.Sprintf("Your %s subscription is active", planName)
	body := fmt.Sprintf("Your %s subscription is now active. Happy downloading!", planName)
	return s.send(ctx, userID, subject, body)
}

func (s *NotificationService) NotifySubscriptionExpired(ctx context.Context, userID uint, planName string) error {
	subject := fmt.Sprintf("Your %s subscription has expired", planName)
	body := fmt.Sprintf("Your %s subscription has ended. Renew to keep downloading.", planName)
	return s.send(ctx, userID, subject, body)
}

func (s *NotificationService) NotifyLowQuota(ctx context.Context, userID uint, remaining int) error {
	subject := "You are running low on downloads"
	body := fmt.Sprintf("You have %d downloads left in your current subscription.", remaining)
	return s.send(ctx, userID, subject, body)
}

func (s *NotificationService) send(ctx context.Context, userID uint, subject, body string) error {
	u, err := s.userDir.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to resolve recipient: %w", err)
	}
	if u == nil {
		return fmt.Errorf("recipient user %d not found", userID)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", u.Email())
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", u.Email(), err)
	}

	s.logger.Debugw("notification sent", "user_id", userID, "subject", subject)
	return nil
}
