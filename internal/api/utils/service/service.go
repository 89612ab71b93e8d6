package utilsService

import (
	utilsApi "SimOCRBackend/internal/api/utils"
	contextPkg "SimOCRBackend/pkg/context"
	"SimOCRBackend/pkg/email"
	"SimOCRBackend/pkg/smtp"
	"context"

	"github.com/sirupsen/logrus"
)

type IUtilsService interface {
	SendTestEmail(ctx context.Context, emailTo string) error
}

type utilsService struct {
	log        *logrus.Logger
	smtpMailer smtp.ItfSmtp
	renderer   *email.Renderer
}

func NewUtilsService(log *logrus.Logger, smtpMailer smtp.ItfSmtp, renderer *email.Renderer) IUtilsService {
	return &utilsService{
		log:        log,
		smtpMailer: smtpMailer,
		renderer:   renderer,
	}
}

func (s *utilsService) SendTestEmail(ctx context.Context, emailTo string) error {
	requestID := contextPkg.GetRequestID(ctx)

	if s.smtpMailer == nil || !s.smtpMailer.Enabled() {
		return utilsApi.ErrEmailNotConfigured
	}

	data, err := s.renderer.TestEmail(emailTo)
	if err != nil {
		return err
	}

	if err := s.smtpMailer.SendHTML(emailTo, data.Subject, data.HTMLContent); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to send test email")
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
	}).Info("Test email sent")

	return nil
}
