// Package email renders the transactional e-mails sent by the service.
// Bodies are written as Markdown templates and converted to HTML with goldmark.
package email

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type Data struct {
	Subject     string
	HTMLContent string
}

type Renderer struct {
	projectName  string
	frontendHost string
	md           goldmark.Markdown
}

func NewRenderer(projectName, frontendHost string) *Renderer {
	if projectName == "" {
		projectName = "SIM OCR"
	}
	return &Renderer{
		projectName:  projectName,
		frontendHost: frontendHost,
		md:           goldmark.New(goldmark.WithExtensions(extension.Linkify)),
	}
}

// NewRendererFromEnv reads PROJECT_NAME and FRONTEND_HOST.
func NewRendererFromEnv() *Renderer {
	host := os.Getenv("FRONTEND_HOST")
	if host == "" {
		host = "http://localhost:5173"
	}
	return NewRenderer(os.Getenv("PROJECT_NAME"), host)
}

var (
	resetPasswordTmpl = template.Must(template.New("reset_password").Parse(`# {{.ProjectName}}

Hello {{.Username}},

We received a request to recover the password of your account.
Use the link below to choose a new password:

[Reset password]({{.Link}})

The link expires in {{.ValidHours}} hours. If you did not request a password
recovery you can ignore this e-mail.
`))

	testEmailTmpl = template.Must(template.New("test_email").Parse(`# {{.ProjectName}}

Test e-mail for **{{.Email}}**.
`))
)

func (r *Renderer) render(t *template.Template, data any) (string, error) {
	var md bytes.Buffer
	if err := t.Execute(&md, data); err != nil {
		return "", fmt.Errorf("execute %s template: %w", t.Name(), err)
	}

	var html bytes.Buffer
	if err := r.md.Convert(md.Bytes(), &html); err != nil {
		return "", fmt.Errorf("render %s markdown: %w", t.Name(), err)
	}
	return html.String(), nil
}

func (r *Renderer) ResetPassword(emailTo string, token string, validHours int) (Data, error) {
	link := fmt.Sprintf("%s/reset-password?token=%s", r.frontendHost, token)

	html, err := r.render(resetPasswordTmpl, map[string]any{
		"ProjectName": r.projectName,
		"Username":    emailTo,
		"Link":        link,
		"ValidHours":  validHours,
	})
	if err != nil {
		return Data{}, err
	}

	return Data{
		Subject:     fmt.Sprintf("%s - Password recovery for user %s", r.projectName, emailTo),
		HTMLContent: html,
	}, nil
}

func (r *Renderer) TestEmail(emailTo string) (Data, error) {
	html, err := r.render(testEmailTmpl, map[string]any{
		"ProjectName": r.projectName,
		"Email":       emailTo,
	})
	if err != nil {
		return Data{}, err
	}

	return Data{
		Subject:     fmt.Sprintf("%s - Test email", r.projectName),
		HTMLContent: html,
	}, nil
}
