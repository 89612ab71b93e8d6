package authService

import (
	"SimOCRBackend/internal/api/auth"
	contextPkg "SimOCRBackend/pkg/context"
	jwtPkg "SimOCRBackend/pkg/jwt"
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
)

func (s *authDomainImpl) Login(c context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	requestID := contextPkg.GetRequestID(c)
	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.TokenResponse{}, err
	}

	user, err := repo.Users.GetByEmail(c, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, auth.ErrUserWithEmailNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Warn("Login with unknown email")
			return auth.TokenResponse{}, auth.ErrIncorrectCredentials
		}
		return auth.TokenResponse{}, err
	}

	if !s.bcryptUtils.VerifyPassword(user.HashedPassword, req.Password) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    user.ID,
		}).Warn("Login with wrong password")
		return auth.TokenResponse{}, auth.ErrIncorrectCredentials
	}

	if !user.IsActive {
		return auth.TokenResponse{}, auth.ErrInactiveUser
	}

	token, _, err := jwtPkg.Sign(user.ID, jwtPkg.PurposeAccess, s.cfg.AccessTokenTTL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign access token")
		return auth.TokenResponse{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
	}).Info("User logged in")

	return auth.TokenResponse{
		AccessToken: token,
		TokenType:   auth.TokenTypeBearer,
	}, nil
}
