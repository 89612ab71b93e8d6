package smtp

import (
	"errors"
	"fmt"
	"mime"
	smtpPkg "net/smtp"
	"os"
	"strings"
	"time"
)

var ErrNotConfigured = errors.New("smtp is not configured")

type ItfSmtp interface {
	SendHTML(to string, subject string, html string) error
	Enabled() bool
}

type sendFunc func(addr string, a smtpPkg.Auth, from string, to []string, msg []byte) error

type smtp struct {
	auth     smtpPkg.Auth
	addr     string
	mail     string
	fromName string
	send     sendFunc
}

func New() ItfSmtp {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	mail := os.Getenv("SMTP_MAIL")
	password := os.Getenv("SMTP_PASSWORD")

	var auth smtpPkg.Auth
	if password != "" {
		auth = smtpPkg.PlainAuth("", mail, password, host)
	}

	return &smtp{
		auth:     auth,
		addr:     fmt.Sprintf("%s:%s", host, port),
		mail:     mail,
		fromName: os.Getenv("EMAILS_FROM_NAME"),
		send:     smtpPkg.SendMail,
	}
}

func (s *smtp) Enabled() bool {
	return s.mail != ""
}

func (s *smtp) SendHTML(to string, subject string, html string) error {
	if !s.Enabled() {
		return ErrNotConfigured
	}

	return s.send(s.addr, s.auth, s.mail, []string{to}, s.buildMessage(to, subject, html))
}

func (s *smtp) buildMessage(to string, subject string, html string) []byte {
	from := s.mail
	if s.fromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", s.fromName), s.mail)
	}

	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(html)

	return []byte(b.String())
}
