package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"go.uber.org/zap"
)

type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
}

//go:generate mockgen -source=sender.go -destination=mock/sender_mock.go -package=mock
type Sender interface {
	SendOtpMail(to, fullName, otpCode string) error
	SendApplicationReceivedMail(to, jobTitle, applicantName string) error
}

type smtpSender struct {
	cfg    Config
	logger *zap.Logger
}

func NewSMTPSender(cfg Config, logger ...*zap.Logger) Sender {
	l := zap.L().Named("mail.sender")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("mail.sender")
	}
	return &smtpSender{cfg: cfg, logger: l}
}

const otpTemplate = `
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
    <h2>Verify your email</h2>
    <p>Hi {{.FullName}},</p>
    <p>Your verification code is:</p>
    <p style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">{{.OtpCode}}</p>
    <p>The code expires in 5 minutes. If you did not sign up, ignore this mail.</p>
</body>
</html>
`

const applicationReceivedTemplate = `
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
    <h2>New application received</h2>
    <p>{{.ApplicantName}} just applied for your job post <b>{{.JobTitle}}</b>.</p>
    <p>Open your employer dashboard to review the application.</p>
</body>
</html>
`

var (
	otpTmpl                 = template.Must(template.New("otp").Parse(otpTemplate))
	applicationReceivedTmpl = template.Must(template.New("application_received").Parse(applicationReceivedTemplate))
)

func (s *smtpSender) SendOtpMail(to, fullName, otpCode string) error {
	var body bytes.Buffer
	if err := otpTmpl.Execute(&body, map[string]string{
		"FullName": fullName,
		"OtpCode":  otpCode,
	}); err != nil {
		return fmt.Errorf("render otp mail: %w", err)
	}

	return s.send(to, "Your verification code", body.Bytes())
}

func (s *smtpSender) SendApplicationReceivedMail(to, jobTitle, applicantName string) error {
	var body bytes.Buffer
	if err := applicationReceivedTmpl.Execute(&body, map[string]string{
		"JobTitle":      jobTitle,
		"ApplicantName": applicantName,
	}); err != nil {
		return fmt.Errorf("render application mail: %w", err)
	}

	return s.send(to, "New application for "+jobTitle, body.Bytes())
}

func (s *smtpSender) send(to, subject string, body []byte) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n",
		s.cfg.FromEmail, to, subject,
	))
	msg = append(msg, body...)

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{to}, msg); err != nil {
		s.logger.Error("send mail failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return fmt.Errorf("send mail: %w", err)
	}

	s.logger.Info("mail sent",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}
