package authService

import (
	"SimOCRBackend/internal/api/auth"
	authRepository "SimOCRBackend/internal/api/auth/repository"
	"SimOCRBackend/internal/entity"
	"SimOCRBackend/pkg/bcrypt"
	"SimOCRBackend/pkg/email"
	"SimOCRBackend/pkg/redis"
	"SimOCRBackend/pkg/smtp"
	"SimOCRBackend/pkg/utils"
	"context"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

type AuthService interface {
	User() UserDomain
	Auth() AuthDomain
	Password() PasswordDomain
	GetRepository() authRepository.Repository
}

type UserDomain interface {
	Register(c context.Context, req auth.RegisterRequest) (entity.User, error)
	GetByID(c context.Context, id string) (entity.User, error)
	UpdateMe(c context.Context, userID string, req auth.UpdateMeRequest) (entity.User, error)
	DeleteMe(c context.Context, user entity.UserLoginData) error
	EnsureSuperuser(c context.Context, email string, password string) error
}

type AuthDomain interface {
	Login(c context.Context, req auth.LoginRequest) (auth.TokenResponse, error)
}

type PasswordDomain interface {
	UpdatePassword(c context.Context, userID string, req auth.UpdatePasswordRequest) error
	RecoverPassword(c context.Context, email string) error
	ResetPassword(c context.Context, req auth.ResetPasswordRequest) error
	RecoveryHTMLContent(c context.Context, email string) (email.Data, error)
}

type Config struct {
	AccessTokenTTL time.Duration
	ResetTokenTTL  time.Duration
}

// ConfigFromEnv reads ACCESS_TOKEN_EXPIRE_MINUTES and
// EMAIL_RESET_TOKEN_EXPIRE_HOURS, defaulting to eight days and 48 hours.
func ConfigFromEnv() Config {
	cfg := Config{
		AccessTokenTTL: 11520 * time.Minute,
		ResetTokenTTL:  48 * time.Hour,
	}

	if v, err := strconv.Atoi(os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES")); err == nil && v > 0 {
		cfg.AccessTokenTTL = time.Duration(v) * time.Minute
	}
	if v, err := strconv.Atoi(os.Getenv("EMAIL_RESET_TOKEN_EXPIRE_HOURS")); err == nil && v > 0 {
		cfg.ResetTokenTTL = time.Duration(v) * time.Hour
	}

	return cfg
}

type authService struct {
	authRepository authRepository.Repository

	userDomain     UserDomain
	authDomain     AuthDomain
	passwordDomain PasswordDomain
}

func (a *authService) User() UserDomain {
	return a.userDomain
}

func (a *authService) Auth() AuthDomain {
	return a.authDomain
}

func (a *authService) Password() PasswordDomain {
	return a.passwordDomain
}

func (a *authService) GetRepository() authRepository.Repository {
	return a.authRepository
}

type userDomainImpl struct {
	log         *logrus.Logger
	repo        authRepository.Repository
	bcryptUtils bcrypt.IBcrypt
	utils       utils.IUtils
}

type authDomainImpl struct {
	log         *logrus.Logger
	repo        authRepository.Repository
	bcryptUtils bcrypt.IBcrypt
	cfg         Config
}

type passwordDomainImpl struct {
	log         *logrus.Logger
	repo        authRepository.Repository
	smtpMailer  smtp.ItfSmtp
	renderer    *email.Renderer
	redisServer redis.IRedis
	bcryptUtils bcrypt.IBcrypt
	utils       utils.IUtils
	cfg         Config
}

func New(log *logrus.Logger,
	authRepo authRepository.Repository,
	redisServer redis.IRedis,
	smtpMailer smtp.ItfSmtp,
	renderer *email.Renderer,
	bcryptUtils bcrypt.IBcrypt,
	utils utils.IUtils,
	cfg Config,
) AuthService {
	return &authService{
		authRepository: authRepo,

		userDomain: &userDomainImpl{log: log, repo: authRepo, bcryptUtils: bcryptUtils, utils: utils},
		authDomain: &authDomainImpl{log: log, repo: authRepo, bcryptUtils: bcryptUtils, cfg: cfg},
		passwordDomain: &passwordDomainImpl{
			log:         log,
			repo:        authRepo,
			smtpMailer:  smtpMailer,
			renderer:    renderer,
			redisServer: redisServer,
			bcryptUtils: bcryptUtils,
			utils:       utils,
			cfg:         cfg,
		},
	}
}
