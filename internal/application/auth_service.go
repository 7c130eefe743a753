package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/revuehub/api/internal/apperr"
	"github.com/revuehub/api/internal/domain/entity"
	repo "github.com/revuehub/api/internal/domain/repository"
	"github.com/revuehub/api/pkg/helpers"
	"github.com/revuehub/api/pkg/mailer"
)

// EmailEnqueuer publishes email jobs; satisfied by helpers.RabbitPublisher.
type EmailEnqueuer interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuthService implements signup (confirmation-code issue) and token exchange.
type AuthService struct {
	Users       repo.UserRepository
	JWT         *helpers.JWTManager
	Mail        EmailEnqueuer
	MailEnabled bool
	Logger      *logrus.Logger
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, mail EmailEnqueuer, mailEnabled bool, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Mail: mail, MailEnabled: mailEnabled, Logger: logger}
}

// Signup registers the (username, email) identity if new, rotates its
// confirmation code unconditionally and enqueues the confirmation email.
// Re-invoking for an already-registered pair never creates a second user; the
// old code simply stops working.
func (s *AuthService) Signup(ctx context.Context, username, email string) error {
	if username == entity.ReservedUsername {
		return apperr.FieldErrors(map[string]string{"username": "this username is reserved"})
	}

	byName, err := s.Users.GetByUsername(ctx, username)
	if err != nil && apperr.KindOf(err) != apperr.KindNotFound {
		return err
	}
	byEmail, err := s.Users.GetByEmail(ctx, email)
	if err != nil && apperr.KindOf(err) != apperr.KindNotFound {
		return err
	}

	// The pair must match a single identity or none at all.
	if byName != nil && byName.Email != email {
		return apperr.FieldErrors(map[string]string{"username": "already taken"})
	}
	if byEmail != nil && byEmail.Username != username {
		return apperr.FieldErrors(map[string]string{"email": "already registered"})
	}

	user := byName
	if user == nil {
		user = &entity.User{Username: username, Email: email, Role: entity.RoleUser}
		if err := s.Users.Create(ctx, user); err != nil {
			return err
		}
	}

	code, err := helpers.NewConfirmationCode()
	if err != nil {
		return err
	}
	if err := s.Users.UpsertVerification(ctx, user.ID, code); err != nil {
		return err
	}

	if s.Mail == nil || !s.MailEnabled {
		if s.Logger != nil {
			s.Logger.WithField("username", username).Info("mail sending disabled, skipping confirmation email")
		}
		return nil
	}
	job := mailer.EmailJob{To: email, Username: username, Code: code}
	if err := s.Mail.PublishJSON(ctx, job); err != nil {
		// The code is already persisted; a retried signup rotates it and
		// re-sends, so surfacing the failure is enough.
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("username", username).Error("failed to enqueue confirmation email")
		}
		return err
	}
	return nil
}

// IssueToken exchanges a confirmation code for an access token.
func (s *AuthService) IssueToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	v, err := s.Users.GetVerification(ctx, user.ID)
	if err != nil {
		return "", err
	}
	if v.ConfirmationCode != code {
		return "", apperr.FieldErrors(map[string]string{"confirmation_code": "invalid confirmation code"})
	}
	token, _, err := s.JWT.GenerateAccessToken(user.ID)
	return token, err
}
