package authService

import (
	"SimOCRBackend/internal/api/auth"
	contextPkg "SimOCRBackend/pkg/context"
	"SimOCRBackend/pkg/email"
	jwtPkg "SimOCRBackend/pkg/jwt"
	"SimOCRBackend/pkg/redis"
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

const resetTokenKeyPrefix = "auth:password_reset:"

func (s *passwordDomainImpl) UpdatePassword(c context.Context, userID string, req auth.UpdatePasswordRequest) error {
	requestID := contextPkg.GetRequestID(c)
	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	user, err := repo.Users.GetByID(c, userID)
	if err != nil {
		return err
	}

	if !s.bcryptUtils.VerifyPassword(user.HashedPassword, req.CurrentPassword) {
		return auth.ErrIncorrectPassword
	}
	if req.CurrentPassword == req.NewPassword {
		return auth.ErrPasswordSame
	}

	hashed, err := s.bcryptUtils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return repo.Users.UpdatePassword(c, user.ID, hashed)
}

// RecoverPassword signs a single-use reset token for email, records it and
// mails the reset link. No token is issued while SMTP is unconfigured.
func (s *passwordDomainImpl) RecoverPassword(c context.Context, emailTo string) error {
	requestID := contextPkg.GetRequestID(c)

	if s.smtpMailer == nil || !s.smtpMailer.Enabled() {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("Password recovery requested but SMTP is not configured")
		return auth.ErrEmailNotConfigured
	}

	data, err := s.recoveryEmail(c, emailTo)
	if err != nil {
		return err
	}

	if err := s.smtpMailer.SendHTML(emailTo, data.Subject, data.HTMLContent); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to send password recovery email")
		return err
	}

	return nil
}

func (s *passwordDomainImpl) RecoveryHTMLContent(c context.Context, emailTo string) (email.Data, error) {
	return s.recoveryEmail(c, emailTo)
}

func (s *passwordDomainImpl) recoveryEmail(c context.Context, emailTo string) (email.Data, error) {
	requestID := contextPkg.GetRequestID(c)
	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return email.Data{}, err
	}

	if _, err := repo.Users.GetByEmail(c, emailTo); err != nil {
		return email.Data{}, err
	}

	token, _, err := jwtPkg.Sign(emailTo, jwtPkg.PurposePasswordReset, s.cfg.ResetTokenTTL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign password reset token")
		return email.Data{}, err
	}

	if err := s.redisServer.Set(c, s.resetTokenKey(token), emailTo, s.cfg.ResetTokenTTL); err != nil {
		return email.Data{}, err
	}

	return s.renderer.ResetPassword(emailTo, token, int(s.cfg.ResetTokenTTL.Hours()))
}

func (s *passwordDomainImpl) ResetPassword(c context.Context, req auth.ResetPasswordRequest) error {
	requestID := contextPkg.GetRequestID(c)

	claims, err := jwtPkg.Parse(req.Token, jwtPkg.PurposePasswordReset)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid password reset token")
		return auth.ErrInvalidToken
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	user, err := repo.Users.GetByEmail(c, claims.Subject)
	if err != nil {
		return err
	}
	if !user.IsActive {
		return auth.ErrInactiveUser
	}

	owner, err := s.redisServer.GetDel(c, s.resetTokenKey(req.Token))
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"user_id":    user.ID,
			}).Warn("Password reset token already used")
			return auth.ErrInvalidToken
		}
		return err
	}
	if owner != claims.Subject {
		return auth.ErrInvalidToken
	}

	hashed, err := s.bcryptUtils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := repo.Users.UpdatePassword(c, user.ID, hashed); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
	}).Info("Password reset")

	return nil
}

func (s *passwordDomainImpl) resetTokenKey(token string) string {
	return resetTokenKeyPrefix + s.utils.HashBytes([]byte(token))
}
