package authService

import (
	"SimOCRBackend/internal/api/auth"
	"SimOCRBackend/internal/entity"
	contextPkg "SimOCRBackend/pkg/context"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *userDomainImpl) Register(c context.Context, req auth.RegisterRequest) (entity.User, error) {
	requestID := contextPkg.GetRequestID(c)
	return s.createUser(c, requestID, req.Email, req.Password, req.FullName, false)
}

func (s *userDomainImpl) createUser(c context.Context, requestID, email, password, fullName string, superuser bool) (entity.User, error) {
	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.User{}, err
	}

	email = strings.TrimSpace(email)

	if _, err := repo.Users.GetByEmail(c, email); err == nil {
		return entity.User{}, auth.ErrEmailAlreadyExists
	} else if !errors.Is(err, auth.ErrUserWithEmailNotFound) {
		return entity.User{}, err
	}

	hashed, err := s.bcryptUtils.HashPassword(password)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash password")
		return entity.User{}, err
	}

	now := time.Now()
	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		return entity.User{}, err
	}

	user := entity.User{
		ID:             id,
		Email:          email,
		FullName:       fullName,
		HashedPassword: hashed,
		IsActive:       true,
		IsSuperuser:    superuser,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := repo.Users.CreateUser(c, user); err != nil {
		return entity.User{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
		"superuser":  superuser,
	}).Info("User created")

	return user, nil
}

func (s *userDomainImpl) GetByID(c context.Context, id string) (entity.User, error) {
	return s.repo.GetUserByID(c, id)
}

func (s *userDomainImpl) UpdateMe(c context.Context, userID string, req auth.UpdateMeRequest) (entity.User, error) {
	requestID := contextPkg.GetRequestID(c)
	repo, err := s.repo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.User{}, err
	}
	defer func() {
		if err != nil {
			_ = repo.Rollback()
		}
	}()

	user, err := repo.Users.GetByID(c, userID)
	if err != nil {
		return entity.User{}, err
	}

	if req.Email != nil {
		newEmail := strings.TrimSpace(*req.Email)
		if newEmail != user.Email {
			var existing entity.User
			existing, err = repo.Users.GetByEmail(c, newEmail)
			switch {
			case err == nil && existing.ID != user.ID:
				err = auth.ErrEmailAlreadyExists
				return entity.User{}, err
			case err != nil && !errors.Is(err, auth.ErrUserWithEmailNotFound):
				return entity.User{}, err
			}
			user.Email = newEmail
		}
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}

	if err = repo.Users.UpdateUser(c, user); err != nil {
		return entity.User{}, err
	}

	if err = repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit user update")
		return entity.User{}, err
	}

	return user, nil
}

func (s *userDomainImpl) DeleteMe(c context.Context, user entity.UserLoginData) error {
	requestID := contextPkg.GetRequestID(c)
	if user.IsSuperuser {
		return auth.ErrSuperuserSelfDelete
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	if err := repo.Users.DeleteUser(c, user.ID); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
	}).Info("User deleted")

	return nil
}

// EnsureSuperuser creates the first superuser when no account with email
// exists yet. An existing account is left untouched.
func (s *userDomainImpl) EnsureSuperuser(c context.Context, email string, password string) error {
	requestID := contextPkg.GetRequestID(c)
	_, err := s.createUser(c, requestID, email, password, "", true)
	if errors.Is(err, auth.ErrEmailAlreadyExists) {
		return nil
	}
	return err
}
