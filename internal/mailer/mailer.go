package mailer

import (
	"context"
	"fmt"
)

// Mailer sends account emails.
type Mailer interface {
	SendAccountConfirmation(ctx context.Context, toEmail, toName, confirmationURL string) error
}

var (
	_ Mailer = (*SMTPMailer)(nil)
	_ Mailer = (*LogMailer)(nil)
)

const confirmationSubject = "Confirm your account"

func confirmationBodies(toName, confirmationURL string) (html, text string) {
	if toName == "" {
		toName = "there"
	}
	html = fmt.Sprintf(`<p>Hello %s,</p>
<p>Thanks for signing up. Please confirm your email address by following the link below:</p>
<p><a href="%s">Confirm my account</a></p>
<p>If you did not create an account, you can ignore this email.</p>`, toName, confirmationURL)
	text = fmt.Sprintf(`Hello %s,

Thanks for signing up. Please confirm your email address by opening this link:
%s

If you did not create an account, you can ignore this email.`, toName, confirmationURL)
	return html, text
}
