package utils

type TestEmailRequest struct {
	EmailTo string `query:"email_to" validate:"required,email"`
}
