package jwtPkg

import (
	"SimOCRBackend/internal/entity"
	"errors"
	"fmt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"os"
	"strings"
	"time"
)

const (
	SecretEnvKey = "JWT_ACCESS_TOKEN_SECRET"

	PurposeAccess        = "access"
	PurposePasswordReset = "password_reset"

	userLocalKey = "user"
)

var (
	ErrSecretNotSet   = errors.New("JWT_ACCESS_TOKEN_SECRET not set")
	ErrWrongPurpose   = errors.New("token issued for another purpose")
	ErrMissingSubject = errors.New("token subject is missing")
)

type Claims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func secret() ([]byte, error) {
	key := os.Getenv(SecretEnvKey)
	if key == "" {
		return nil, ErrSecretNotSet
	}
	return []byte(key), nil
}

// Sign issues an HS256 token for subject, valid from now for ttl.
func Sign(subject string, purpose string, ttl time.Duration) (string, int64, error) {
	key, err := secret()
	if err != nil {
		return "", 0, err
	}

	now := time.Now()
	expiredAt := now.Add(ttl)

	claims := Claims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiredAt),
		},
	}

	logrus.WithFields(logrus.Fields{
		"purpose": purpose,
		"exp":     expiredAt.Unix(),
	}).Debug("Creating token")

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token")
		return "", 0, err
	}

	return token, expiredAt.Unix(), nil
}

// Parse verifies signature, expiry and purpose and returns the claims.
func Parse(tokenString string, purpose string) (*Claims, error) {
	key, err := secret()
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims.Purpose != purpose {
		return nil, ErrWrongPurpose
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	return claims, nil
}

func VerifyTokenHeader(c *fiber.Ctx) (*Claims, error) {
	log := logrus.WithField("func", "VerifyTokenHeader")

	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return nil, errors.New("empty Authorization header")
	}

	accessToken, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		log.Debug("Invalid Authorization format")
		return nil, errors.New("invalid Authorization format")
	}

	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, errors.New("empty token")
	}

	claims, err := Parse(accessToken, PurposeAccess)
	if err != nil {
		log.WithError(err).Debug("Failed to parse JWT token")
		return nil, err
	}

	return claims, nil
}

func SetUserLoginData(c *fiber.Ctx, user entity.UserLoginData) {
	c.Locals(userLocalKey, user)
}

func GetUserLoginData(c *fiber.Ctx) (entity.UserLoginData, error) {
	user, ok := c.Locals(userLocalKey).(entity.UserLoginData)
	if !ok {
		return entity.UserLoginData{}, fiber.ErrUnauthorized
	}

	return user, nil
}
