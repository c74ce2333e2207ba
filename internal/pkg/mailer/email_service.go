// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"
	"html/template"
	"strings"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendStageNotification(toEmail string, n StageNotification) error
}

// StageNotification tells a reviewer mailbox that a submission is waiting
// on its stage.
type StageNotification struct {
	SubmissionId string
	CompanyName  string
	SubmittedBy  string
	StageLabel   string
	ReviewURL    string
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

var stageTemplate = template.Must(template.New("stage").Parse(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Supplier onboarding: {{.StageLabel}}</h2>
			<p>A supplier request is waiting for your review.</p>
			<table style="border-collapse: collapse;">
				<tr><td style="padding-right: 12px;"><strong>Supplier</strong></td><td>{{.CompanyName}}</td></tr>
				<tr><td style="padding-right: 12px;"><strong>Requested by</strong></td><td>{{.SubmittedBy}}</td></tr>
				<tr><td style="padding-right: 12px;"><strong>Reference</strong></td><td>{{.SubmissionId}}</td></tr>
			</table>
			<p><a href="{{.ReviewURL}}" style="background-color: #005EB8; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Open review</a></p>
			<p>Or copy this link:</p>
			<p>{{.ReviewURL}}</p>
		</div>
`))

func (s *emailService) SendStageNotification(toEmail string, n StageNotification) error {
	var body strings.Builder
	if err := stageTemplate.Execute(&body, n); err != nil {
		return fmt.Errorf("render notification: %w", err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("[Supplier onboarding] %s required: %s", n.StageLabel, n.CompanyName))
	m.SetBody("text/html", body.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		return err
	}
	return nil
}
