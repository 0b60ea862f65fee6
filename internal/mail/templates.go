package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"

	"menuplanner-backend/internal/models"
)

var (
	activationTmpl = template.Must(template.New("activation").Parse(`<p>Hello {{.Name}},</p>
<p>Thanks for signing up. Please activate your account:</p>
<p><a href="{{.Link}}">Activate account</a></p>`))

	passwordResetTmpl = template.Must(template.New("password-reset").Parse(`<p>Hello {{.Name}},</p>
<p>Somebody asked to reset your password. The link is valid for 15 minutes:</p>
<p><a href="{{.Link}}">Reset password</a></p>
<p>If this was not you, you can ignore this mail.</p>`))

	emailChangeTmpl = template.Must(template.New("email-change").Parse(`<p>Hello {{.Name}},</p>
<p>Please confirm {{.Email}} as the new address of your account. The link is valid for 2 hours:</p>
<p><a href="{{.Link}}">Confirm email</a></p>`))

	securityWarningTmpl = template.Must(template.New("security-warning").Parse(`<p>Security alert <b>{{.Type}}</b> for user {{.Name}} ({{.Email}}).</p>
<p>{{.Message}}</p>
<p><a href="{{.Link}}">Review security events</a></p>`))
)

// Mailer renders the application mails and hands them to a Sender. Links
// point to the web client at baseURL.
type Mailer struct {
	sender  Sender
	baseURL string
}

func NewMailer(sender Sender, baseURL string) *Mailer {
	return &Mailer{sender: sender, baseURL: baseURL}
}

func (m *Mailer) SendActivation(user *models.User, token string) error {
	return m.send(user.Email, "Activate your account", activationTmpl, map[string]string{
		"Name": user.Name,
		"Link": m.baseURL + "/auth/activate?token=" + url.QueryEscape(token),
	})
}

func (m *Mailer) SendPasswordReset(user *models.User, token string) error {
	return m.send(user.Email, "Reset your password", passwordResetTmpl, map[string]string{
		"Name": user.Name,
		"Link": m.baseURL + "/auth/password-reset/confirm?token=" + url.QueryEscape(token),
	})
}

// SendEmailChange goes to the new address, not the current one.
func (m *Mailer) SendEmailChange(user *models.User, newEmail, token string) error {
	return m.send(newEmail, "Confirm your new email", emailChangeTmpl, map[string]string{
		"Name":  user.Name,
		"Email": newEmail,
		"Link":  m.baseURL + "/users/email-confirm?token=" + url.QueryEscape(token),
	})
}

// SendSecurityWarning tells admin about an unverified event of subject.
func (m *Mailer) SendSecurityWarning(admin, subject *models.User, event *models.SecurityEvent) error {
	return m.send(admin.Email, fmt.Sprintf("Important! Security alert %s", event.Type), securityWarningTmpl, map[string]string{
		"Type":    string(event.Type),
		"Name":    subject.Name,
		"Email":   subject.Email,
		"Message": event.Message,
		"Link":    m.baseURL + "/auth/admin/security",
	})
}

func (m *Mailer) send(to, subject string, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render %s mail: %w", tmpl.Name(), err)
	}
	return m.sender.Send(Message{To: to, Subject: subject, HTML: buf.String()})
}
